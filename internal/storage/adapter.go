package storage

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"weekplan/internal/schedule"
)

// StorageKey is the slot key the whole state is kept under.
const StorageKey = "schedule-viewer-data"

// Adapter saves and loads the schedule state through a Slot. It never
// returns persistence errors to callers; they are logged.
type Adapter struct {
	slot Slot
	log  *zap.Logger
}

// NewAdapter wraps slot. A nil logger discards log output.
func NewAdapter(slot Slot, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{slot: slot, log: log}
}

// Save serializes st and writes it to the slot.
func (a *Adapter) Save(st schedule.State) {
	data, err := json.Marshal(schedule.Normalize(st))
	if err != nil {
		a.log.Error("serialize schedule state", zap.Error(err))
		return
	}
	if err := a.slot.Set(StorageKey, string(data)); err != nil {
		a.log.Error("save schedule state", zap.String("key", StorageKey), zap.Error(err))
		return
	}
	a.log.Debug("schedule state saved", zap.Int("bytes", len(data)), zap.Int("schedules", len(st.Schedules)))
}

// Load returns the persisted state, or nil when nothing usable is stored.
// An unusable value is logged; if the slot keeps a backup of the previous
// value, that backup is tried before giving up.
func (a *Adapter) Load() *schedule.State {
	raw, ok, err := a.slot.Get(StorageKey)
	if err != nil {
		a.log.Error("read schedule state", zap.Error(err))
		return a.loadBackup()
	}
	if !ok {
		return nil
	}

	st, err := decodeState([]byte(raw))
	if err == nil {
		return &st
	}

	a.log.Warn("stored schedule state is unusable", zap.Error(err))
	recovered := a.loadBackup()
	if q, ok := a.slot.(quarantiner); ok {
		if moved, qErr := q.Quarantine(StorageKey); qErr == nil {
			a.log.Warn("moved unusable schedule state aside", zap.String("path", moved))
		}
	}
	return recovered
}

func (a *Adapter) loadBackup() *schedule.State {
	b, ok := a.slot.(backupSlot)
	if !ok {
		return nil
	}
	raw, ok, err := b.GetBackup(StorageKey)
	if err != nil || !ok {
		return nil
	}
	st, err := decodeState([]byte(raw))
	if err != nil {
		a.log.Warn("schedule state backup is unusable", zap.Error(err))
		return nil
	}
	a.log.Info("recovered schedule state from backup")
	return &st
}

// decodeState parses a persisted or exported state, fills defaults for the
// optional top-level fields and validates the result.
func decodeState(data []byte) (schedule.State, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return schedule.State{}, fmt.Errorf("%w: empty input", ErrMalformedImport)
	}

	var probe struct {
		Schedules json.RawMessage `json:"schedules"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return schedule.State{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	if trimmed := bytes.TrimSpace(probe.Schedules); len(trimmed) == 0 || trimmed[0] != '[' {
		return schedule.State{}, ErrMissingSchedules
	}

	var st schedule.State
	if err := json.Unmarshal(data, &st); err != nil {
		return schedule.State{}, fmt.Errorf("%w: %v", ErrMalformedImport, err)
	}
	st = schedule.Normalize(st)

	if !st.ViewMode.Valid() {
		st.ViewMode = schedule.ViewWeekly
	}
	if st.CurrentScheduleID == "" {
		st.CurrentScheduleID = schedule.DefaultScheduleID
		if len(st.Schedules) > 0 && st.Schedules[0].ID != "" {
			st.CurrentScheduleID = st.Schedules[0].ID
		}
	}

	if err := schedule.Validate(st); err != nil {
		return schedule.State{}, err
	}
	return st, nil
}
