package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"weekplan/internal/schedule"
)

// createTestSlot creates a FileSlot in a temporary directory.
func createTestSlot(t *testing.T) *FileSlot {
	t.Helper()
	slot, err := NewFileSlot(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("failed to create test slot: %v", err)
	}
	return slot
}

// =============================================================================
// Slot Tests
// =============================================================================

func TestFileSlot_GetSet(t *testing.T) {
	slot := createTestSlot(t)

	if _, ok, err := slot.Get("k"); ok || err != nil {
		t.Fatalf("Get(unset) = ok %v, err %v", ok, err)
	}
	if err := slot.Set("k", "v1"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := slot.Set("k", "v2"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	v, ok, err := slot.Get("k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("Get() = %q, %v, %v", v, ok, err)
	}
	bak, ok, err := slot.GetBackup("k")
	if err != nil || !ok || bak != "v1" {
		t.Fatalf("GetBackup() = %q, %v, %v", bak, ok, err)
	}

	info, err := os.Stat(filepath.Join(slot.Dir(), "k.json"))
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file perm = %o, want 600", perm)
	}
}

func TestFileSlot_InvalidKeys(t *testing.T) {
	slot := createTestSlot(t)
	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		if err := slot.Set(key, "x"); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Set(%q) error = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestMemorySlot(t *testing.T) {
	slot := NewMemorySlot()
	if _, ok, _ := slot.Get("k"); ok {
		t.Fatal("Get(unset) ok = true")
	}
	_ = slot.Set("k", "v")
	if v, ok, _ := slot.Get("k"); !ok || v != "v" {
		t.Fatalf("Get() = %q, %v", v, ok)
	}
}

// =============================================================================
// Adapter Tests
// =============================================================================

func TestAdapter_SaveLoadRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		state func() schedule.State
	}{
		{"default", schedule.DefaultState},
		{"blank", schedule.BlankState},
		{
			name: "dangling pointer and daily view",
			state: func() schedule.State {
				st := schedule.DefaultState()
				st.CurrentScheduleID = "gone"
				st.ViewMode = schedule.ViewDaily
				return st
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAdapter(createTestSlot(t), nil)
			want := tt.state()

			a.Save(want)
			got := a.Load()
			if got == nil {
				t.Fatal("Load() = nil")
			}

			wantJSON, _ := json.Marshal(want)
			gotJSON, _ := json.Marshal(got)
			if string(wantJSON) != string(gotJSON) {
				t.Errorf("round trip mismatch\n got: %s\nwant: %s", gotJSON, wantJSON)
			}
		})
	}
}

func TestAdapter_LoadAbsent(t *testing.T) {
	a := NewAdapter(NewMemorySlot(), nil)
	if got := a.Load(); got != nil {
		t.Errorf("Load() = %+v, want nil", got)
	}
}

func TestAdapter_LoadUnusable(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", "{not json"},
		{"empty", "   "},
		{"no schedules", `{"currentScheduleId":"x"}`},
		{"schedules not array", `{"schedules":{}}`},
		{"six days", `{"schedules":[{"id":"a","name":"a","data":[]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := NewMemorySlot()
			_ = slot.Set(StorageKey, tt.value)
			if got := NewAdapter(slot, nil).Load(); got != nil {
				t.Errorf("Load() = %+v, want nil", got)
			}
		})
	}
}

func TestAdapter_LoadRecoversFromBackup(t *testing.T) {
	slot := createTestSlot(t)
	a := NewAdapter(slot, nil)

	good := schedule.DefaultState()
	a.Save(good)

	// A second save creates the .bak; then the primary is corrupted.
	a.Save(good)
	path, _ := slot.Path(StorageKey)
	if err := os.WriteFile(path, []byte("{truncated"), 0o600); err != nil {
		t.Fatal(err)
	}

	got := a.Load()
	if got == nil {
		t.Fatal("Load() = nil, want state recovered from backup")
	}
	if len(got.Schedules) != 1 || got.Schedules[0].Name != "Spring 2024 Semester" {
		t.Errorf("recovered = %+v", got.Schedules)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt primary was not moved aside")
	}
	matches, _ := filepath.Glob(path + ".corrupt.*")
	if len(matches) != 1 {
		t.Errorf("corrupt copies = %v, want 1", matches)
	}
}

func TestAdapter_SaveFailureIsSwallowed(t *testing.T) {
	a := NewAdapter(failingSlot{}, nil)
	a.Save(schedule.DefaultState()) // must not panic
	if got := a.Load(); got != nil {
		t.Errorf("Load() = %+v, want nil", got)
	}
}

type failingSlot struct{}

func (failingSlot) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingSlot) Set(string, string) error { return errors.New("disk gone") }

// =============================================================================
// Export / Import Tests
// =============================================================================

func TestExportFilename(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"utc", time.Date(2024, 3, 4, 23, 59, 0, 0, time.UTC), "schedule-backup-2024-03-04.json"},
		{"ahead of utc after midnight", time.Date(2024, 3, 5, 0, 30, 0, 0, time.FixedZone("CET", 3600)), "schedule-backup-2024-03-04.json"},
		{"behind utc before midnight", time.Date(2024, 3, 4, 20, 0, 0, 0, time.FixedZone("EST", -5*3600)), "schedule-backup-2024-03-05.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExportFilename(tt.now); got != tt.want {
				t.Errorf("ExportFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExport_PrettyPrinted(t *testing.T) {
	data, err := Export(schedule.BlankState())
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "{\n  \"schedules\": [") {
		t.Errorf("Export() not two-space indented:\n%s", text)
	}
	if !strings.Contains(text, `"activities": []`) {
		t.Error("empty activities should serialize as []")
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	want := schedule.DefaultState()
	data, err := Export(want)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Import(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	again, err := Export(got)
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != string(data) {
		t.Errorf("re-export differs\n got: %s\nwant: %s", again, data)
	}
}

func TestImport_Fallbacks(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCurrent string
		wantView    schedule.ViewMode
	}{
		{
			name:        "pointer and view kept",
			input:       backupJSON("s1", `"currentScheduleId":"s1","viewMode":"daily"`),
			wantCurrent: "s1",
			wantView:    schedule.ViewDaily,
		},
		{
			name:        "missing pointer falls back to first schedule",
			input:       backupJSON("s1", `"viewMode":"schedule"`),
			wantCurrent: "s1",
			wantView:    schedule.ViewSchedule,
		},
		{
			name:        "missing view mode falls back to weekly",
			input:       backupJSON("s1", `"currentScheduleId":"s1"`),
			wantCurrent: "s1",
			wantView:    schedule.ViewWeekly,
		},
		{
			name:        "unknown view mode falls back to weekly",
			input:       backupJSON("s1", `"currentScheduleId":"s1","viewMode":"monthly"`),
			wantCurrent: "s1",
			wantView:    schedule.ViewWeekly,
		},
		{
			name:        "dangling pointer is preserved",
			input:       backupJSON("s1", `"currentScheduleId":"other"`),
			wantCurrent: "other",
			wantView:    schedule.ViewWeekly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := Import(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if st.CurrentScheduleID != tt.wantCurrent {
				t.Errorf("CurrentScheduleID = %q, want %q", st.CurrentScheduleID, tt.wantCurrent)
			}
			if st.ViewMode != tt.wantView {
				t.Errorf("ViewMode = %q, want %q", st.ViewMode, tt.wantView)
			}
			act := st.Schedules[0].Data[0].Activities[0]
			if act.UpcomingTests == nil || act.ImportantDates == nil {
				t.Error("missing list fields should decode as empty lists")
			}
		})
	}
}

func TestImport_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantErr   error
		wantValid bool
	}{
		{name: "not json", input: "hello", wantErr: ErrMalformedImport},
		{name: "empty file", input: "", wantErr: ErrMalformedImport},
		{name: "json array", input: "[]", wantErr: ErrMalformedImport},
		{name: "missing schedules", input: `{"viewMode":"weekly"}`, wantErr: ErrMissingSchedules},
		{name: "schedules is object", input: `{"schedules":{"a":1}}`, wantErr: ErrMissingSchedules},
		{name: "empty schedules", input: `{"schedules":[]}`, wantValid: true},
		{name: "activity without name", input: strings.Replace(backupJSON("s1", `"currentScheduleId":"s1"`), `"name":"Gym",`, "", 1), wantValid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Import() error = nil")
			}
			if tt.wantValid {
				var verr *schedule.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("Import() error = %v, want *ValidationError", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Import() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestImport_TwiceIsFullReplacement(t *testing.T) {
	data, _ := Export(schedule.DefaultState())
	store := schedule.NewStore(schedule.BlankState())

	for i := 0; i < 2; i++ {
		st, err := Import(strings.NewReader(string(data)))
		if err != nil {
			t.Fatalf("Import() #%d error = %v", i+1, err)
		}
		if err := store.Replace(st); err != nil {
			t.Fatalf("Replace() #%d error = %v", i+1, err)
		}
	}

	snap := store.Snapshot()
	if len(snap.Schedules) != 1 || snap.Schedules[0].ActivityCount() != 6 {
		t.Errorf("after double import: %d schedules, %d activities", len(snap.Schedules), snap.Schedules[0].ActivityCount())
	}
}

// backupJSON builds a one-schedule backup with a single Monday activity and
// the given extra top-level fields.
func backupJSON(scheduleID, extra string) string {
	days := []string{}
	for i, d := range schedule.Weekdays {
		acts := "[]"
		if i == 0 {
			acts = `[{"id":"monday-1","name":"Gym","time":"6:00 PM - 7:00 PM"}]`
		}
		days = append(days, `{"day":"`+d+`","activities":`+acts+`}`)
	}
	out := `{"schedules":[{"id":"` + scheduleID + `","name":"Imported","data":[` + strings.Join(days, ",") + `]}]`
	if extra != "" {
		out += "," + extra
	}
	return out + "}"
}
