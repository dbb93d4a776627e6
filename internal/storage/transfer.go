package storage

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"weekplan/internal/schedule"
)

// Import rejections. A *schedule.ValidationError is returned when the file
// parses but does not describe a valid state.
var (
	ErrMalformedImport  = errors.New("file is not valid JSON")
	ErrMissingSchedules = errors.New("invalid backup file format: missing schedules array")
)

// maxImportSize bounds how much of an import file is read.
const maxImportSize = 32 << 20

// ExportFilename returns the suggested backup name for now, e.g.
// "schedule-backup-2024-03-04.json". The date is the UTC calendar day.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("schedule-backup-%s.json", now.UTC().Format("2006-01-02"))
}

// Export renders the state as pretty-printed JSON with two-space indentation.
func Export(st schedule.State) ([]byte, error) {
	data, err := json.MarshalIndent(schedule.Normalize(st), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serialize backup: %w", err)
	}
	return append(data, '\n'), nil
}

// Import reads a backup file in full and returns the state it describes.
// When the file omits them, the current schedule falls back to the first
// schedule (then "default") and the view mode to weekly. The caller applies
// the result; nothing is mutated here.
func Import(r io.Reader) (schedule.State, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImportSize+1))
	if err != nil {
		return schedule.State{}, fmt.Errorf("read backup: %w", err)
	}
	if len(data) > maxImportSize {
		return schedule.State{}, fmt.Errorf("%w: file exceeds %d bytes", ErrMalformedImport, maxImportSize)
	}
	return decodeState(data)
}
