package schedule

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newActivityID derives an id from the target day, the clock and a random
// suffix, e.g. "monday-1718000000000-3f9a1c07".
func newActivityID(day string, now time.Time) string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand does not fail on supported platforms; fall back to
		// the nanosecond clock so the id stays unique.
		return fmt.Sprintf("%s-%d-%x", strings.ToLower(day), now.UnixMilli(), now.UnixNano())
	}
	return fmt.Sprintf("%s-%d-%s", strings.ToLower(day), now.UnixMilli(), hex.EncodeToString(b[:]))
}

func newScheduleID() string {
	return "schedule-" + uuid.NewString()
}
