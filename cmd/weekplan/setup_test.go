package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"weekplan/internal/config"
	"weekplan/internal/schedule"
	"weekplan/internal/storage"
)

func TestFirstRunState(t *testing.T) {
	cfg := config.Default()

	st := firstRunState(cfg)
	if st.Schedules[0].Name != "Spring 2024 Semester" {
		t.Errorf("seeded name = %q, want Spring 2024 Semester", st.Schedules[0].Name)
	}

	cfg.UX.ShowSeedData = false
	cfg.UX.DefaultView = "daily"
	st = firstRunState(cfg)
	if st.Schedules[0].Name != "New Schedule" {
		t.Errorf("blank name = %q, want New Schedule", st.Schedules[0].Name)
	}
	if st.ViewMode != schedule.ViewDaily {
		t.Errorf("ViewMode = %q, want daily", st.ViewMode)
	}

	cfg.UX.DefaultView = "sideways"
	if got := firstRunState(cfg).ViewMode; got != schedule.ViewWeekly {
		t.Errorf("invalid default view gave %q, want weekly", got)
	}
}

func TestOpenEnv_PersistsChanges(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	e, err := openEnv(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("openEnv() error = %v", err)
	}
	if !e.seeded {
		t.Error("empty data directory should start from the first-run state")
	}
	if _, err := e.store.CreateSchedule("Summer", ""); err != nil {
		t.Fatalf("CreateSchedule() error = %v", err)
	}
	e.close()

	again, err := openEnv(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("openEnv() error = %v", err)
	}
	defer again.close()
	if again.seeded {
		t.Error("second open should load the stored state")
	}
	if n := len(again.store.Snapshot().Schedules); n != 2 {
		t.Errorf("schedules after reopen = %d, want 2", n)
	}
	if _, err := os.Stat(filepath.Join(cfg.DataDir, storage.StorageKey+".json")); err != nil {
		t.Errorf("store file missing: %v", err)
	}
}

func TestGridSlots(t *testing.T) {
	cfg := config.Default()
	if n := len(gridSlots(cfg)); n != 11 {
		t.Errorf("default slots = %d, want 11", n)
	}
	cfg.Grid.StartHour, cfg.Grid.Slots = 6, 4
	slots := gridSlots(cfg)
	if len(slots) != 4 || slots[0].Hour != 6 {
		t.Errorf("custom slots = %+v, want 4 starting at 6", slots)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"yes", true},
	}
	for _, tt := range tests {
		got, err := confirm(strings.NewReader(tt.input), "ok?")
		if err != nil {
			t.Fatalf("confirm(%q) error = %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := confirm(strings.NewReader(""), "ok?"); err == nil {
		t.Error("confirm on closed input should fail")
	}
}

func TestFormatAge(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{10 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{3 * time.Hour, "3 hours ago"},
		{24 * time.Hour, "1 day ago"},
		{15 * 24 * time.Hour, "2 weeks ago"},
	}
	for _, tt := range tests {
		if got := formatAge(tt.d); got != tt.want {
			t.Errorf("formatAge(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	if err := writeOutput(path, []byte("{}")); err != nil {
		t.Fatalf("writeOutput() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{}" {
		t.Errorf("file = %q, want {}", data)
	}
}
