package schedule

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// createTestStore returns a store seeded with the sample data and a fixed clock.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(DefaultState())
	s.SetNowFunc(func() time.Time { return time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC) })
	return s
}

func strPtr(s string) *string { return &s }

// =============================================================================
// Schedule Tests
// =============================================================================

func TestNewStore_InvalidInitialFallsBack(t *testing.T) {
	s := NewStore(State{})
	snap := s.Snapshot()
	if len(snap.Schedules) != 1 || snap.Schedules[0].ID != DefaultScheduleID {
		t.Fatalf("NewStore(empty) schedules = %+v, want default", snap.Schedules)
	}
	if snap.Schedules[0].Name != "Spring 2024 Semester" {
		t.Errorf("name = %q, want sample schedule", snap.Schedules[0].Name)
	}
}

func TestCreateSchedule(t *testing.T) {
	s := createTestStore(t)

	sch, err := s.CreateSchedule("  Fall 2024  ", "next term")
	if err != nil {
		t.Fatalf("CreateSchedule() error = %v", err)
	}
	if sch.Name != "Fall 2024" {
		t.Errorf("Name = %q, want trimmed", sch.Name)
	}
	if !strings.HasPrefix(sch.ID, "schedule-") {
		t.Errorf("ID = %q, want schedule- prefix", sch.ID)
	}
	if len(sch.Data) != 7 {
		t.Fatalf("len(Data) = %d, want 7", len(sch.Data))
	}
	for i, d := range sch.Data {
		if d.Day != Weekdays[i] || len(d.Activities) != 0 {
			t.Errorf("Data[%d] = %+v, want empty %s", i, d, Weekdays[i])
		}
	}

	snap := s.Snapshot()
	if len(snap.Schedules) != 2 {
		t.Fatalf("len(Schedules) = %d, want 2", len(snap.Schedules))
	}
	if snap.CurrentScheduleID != sch.ID {
		t.Errorf("CurrentScheduleID = %q, want %q", snap.CurrentScheduleID, sch.ID)
	}
}

func TestCreateSchedule_EmptyName(t *testing.T) {
	s := createTestStore(t)
	before := s.Snapshot()

	if _, err := s.CreateSchedule("   ", "desc"); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("CreateSchedule(blank) error = %v, want ErrNameRequired", err)
	}
	if got := len(s.Snapshot().Schedules); got != len(before.Schedules) {
		t.Errorf("len(Schedules) = %d, want %d", got, len(before.Schedules))
	}
}

func TestDuplicateSchedule(t *testing.T) {
	s := createTestStore(t)

	dup, err := s.DuplicateSchedule(DefaultScheduleID)
	if err != nil {
		t.Fatalf("DuplicateSchedule() error = %v", err)
	}
	if dup.Name != "Spring 2024 Semester (Copy)" {
		t.Errorf("Name = %q", dup.Name)
	}
	if dup.ID == DefaultScheduleID {
		t.Error("duplicate kept the source id")
	}
	if dup.ActivityCount() != 6 {
		t.Errorf("ActivityCount() = %d, want 6", dup.ActivityCount())
	}
	if s.Snapshot().CurrentScheduleID != dup.ID {
		t.Error("duplicate was not made current")
	}

	// Editing the copy must not affect the source.
	act := dup.Data[0].Activities[0]
	if _, err := s.EditActivity(act.ID, ActivityPatch{Name: strPtr("Changed")}); err != nil {
		t.Fatalf("EditActivity() error = %v", err)
	}
	snap := s.Snapshot()
	src, _ := snap.Find(DefaultScheduleID)
	if src.Data[0].Activities[0].Name != "Mobile Development" {
		t.Errorf("source activity renamed to %q", src.Data[0].Activities[0].Name)
	}

	if err := Validate(snap); err != nil {
		t.Errorf("Validate() after duplicate = %v", err)
	}
}

func TestDuplicateSchedule_Unknown(t *testing.T) {
	s := createTestStore(t)
	if _, err := s.DuplicateSchedule("nope"); !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("error = %v, want ErrScheduleNotFound", err)
	}
}

func TestDeleteSchedule(t *testing.T) {
	tests := []struct {
		name        string
		deleteFirst bool
		wantCurrent func(created Schedule) string
	}{
		{
			name:        "delete current moves pointer to first remaining",
			deleteFirst: false,
			wantCurrent: func(Schedule) string { return DefaultScheduleID },
		},
		{
			name:        "delete other keeps pointer",
			deleteFirst: true,
			wantCurrent: func(created Schedule) string { return created.ID },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createTestStore(t)
			created, err := s.CreateSchedule("Second", "")
			if err != nil {
				t.Fatalf("CreateSchedule() error = %v", err)
			}

			target := created.ID
			if tt.deleteFirst {
				target = DefaultScheduleID
			}
			if err := s.DeleteSchedule(target); err != nil {
				t.Fatalf("DeleteSchedule() error = %v", err)
			}

			snap := s.Snapshot()
			if len(snap.Schedules) != 1 {
				t.Fatalf("len(Schedules) = %d, want 1", len(snap.Schedules))
			}
			if want := tt.wantCurrent(created); snap.CurrentScheduleID != want {
				t.Errorf("CurrentScheduleID = %q, want %q", snap.CurrentScheduleID, want)
			}
		})
	}
}

func TestDeleteSchedule_Last(t *testing.T) {
	s := createTestStore(t)
	if err := s.DeleteSchedule(DefaultScheduleID); !errors.Is(err, ErrLastSchedule) {
		t.Fatalf("error = %v, want ErrLastSchedule", err)
	}
	if len(s.Snapshot().Schedules) != 1 {
		t.Error("last schedule was removed")
	}
}

func TestDeleteSchedule_Unknown(t *testing.T) {
	s := createTestStore(t)
	if _, err := s.CreateSchedule("Second", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteSchedule("nope"); !errors.Is(err, ErrScheduleNotFound) {
		t.Fatalf("error = %v, want ErrScheduleNotFound", err)
	}
}

func TestSelectSchedule_Dangling(t *testing.T) {
	s := createTestStore(t)
	s.SelectSchedule("missing")

	if _, ok := s.Current(); ok {
		t.Error("Current() ok = true for dangling pointer")
	}
	days := s.CurrentDays()
	if len(days) != 7 {
		t.Fatalf("len(CurrentDays()) = %d, want 7", len(days))
	}
	for _, d := range days {
		if len(d.Activities) != 0 {
			t.Errorf("%s has %d activities, want 0", d.Day, len(d.Activities))
		}
	}

	if _, err := s.AddActivity("Monday", ActivityDraft{Name: "x", Time: "8:00 AM - 9:00 AM"}); !errors.Is(err, ErrNoCurrentSchedule) {
		t.Errorf("AddActivity() error = %v, want ErrNoCurrentSchedule", err)
	}
}

func TestSetViewMode(t *testing.T) {
	s := createTestStore(t)

	if err := s.SetViewMode(ViewSchedule); err != nil {
		t.Fatalf("SetViewMode() error = %v", err)
	}
	if s.ViewMode() != ViewSchedule {
		t.Errorf("ViewMode() = %q", s.ViewMode())
	}
	if err := s.SetViewMode("monthly"); !errors.Is(err, ErrInvalidViewMode) {
		t.Errorf("SetViewMode(monthly) error = %v", err)
	}
	if s.ViewMode() != ViewSchedule {
		t.Error("invalid mode changed state")
	}
}

// =============================================================================
// Activity Tests
// =============================================================================

func TestAddActivity(t *testing.T) {
	tests := []struct {
		name    string
		day     string
		draft   ActivityDraft
		wantErr error
		wantDay int
	}{
		{
			name:    "valid",
			day:     "Wednesday",
			draft:   ActivityDraft{Name: "Algorithms", Time: "1:00 PM - 2:30 PM"},
			wantDay: 2,
		},
		{
			name:    "lowercase day",
			day:     "friday",
			draft:   ActivityDraft{Name: "Gym", Time: "6:00 PM - 7:00 PM", Description: "legs"},
			wantDay: 4,
		},
		{
			name:    "empty name",
			day:     "Monday",
			draft:   ActivityDraft{Name: "", Time: "8:00 AM - 9:00 AM"},
			wantErr: ErrNameRequired,
		},
		{
			name:    "empty time",
			day:     "Monday",
			draft:   ActivityDraft{Name: "Reading", Time: "  "},
			wantErr: ErrTimeRequired,
		},
		{
			name:    "empty day",
			day:     "",
			draft:   ActivityDraft{Name: "Reading", Time: "8:00 AM - 9:00 AM"},
			wantErr: ErrDayRequired,
		},
		{
			name:    "unknown day",
			day:     "Someday",
			draft:   ActivityDraft{Name: "Reading", Time: "8:00 AM - 9:00 AM"},
			wantErr: ErrUnknownDay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createTestStore(t)
			before, _ := s.Current()

			act, err := s.AddActivity(tt.day, tt.draft)
			after, _ := s.Current()

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("AddActivity() error = %v, want %v", err, tt.wantErr)
				}
				if after.ActivityCount() != before.ActivityCount() {
					t.Errorf("ActivityCount() = %d, want unchanged %d", after.ActivityCount(), before.ActivityCount())
				}
				return
			}

			if err != nil {
				t.Fatalf("AddActivity() error = %v", err)
			}
			if after.ActivityCount() != before.ActivityCount()+1 {
				t.Errorf("ActivityCount() = %d, want %d", after.ActivityCount(), before.ActivityCount()+1)
			}
			day := after.Data[tt.wantDay]
			last := day.Activities[len(day.Activities)-1]
			if last.ID != act.ID || last.Name != tt.draft.Name {
				t.Errorf("last activity = %+v, want %+v", last, act)
			}
			if !strings.HasPrefix(act.ID, strings.ToLower(Weekdays[tt.wantDay])+"-") {
				t.Errorf("ID = %q, want day prefix", act.ID)
			}
			if act.UpcomingTests == nil || act.ImportantDates == nil {
				t.Error("list fields should be empty, not nil")
			}
		})
	}
}

func TestAddActivity_UniqueIDsUnderFixedClock(t *testing.T) {
	s := createTestStore(t)
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		act, err := s.AddActivity("Monday", ActivityDraft{Name: "x", Time: "8:00 AM - 9:00 AM"})
		if err != nil {
			t.Fatalf("AddActivity() error = %v", err)
		}
		if seen[act.ID] {
			t.Fatalf("duplicate id %q", act.ID)
		}
		seen[act.ID] = true
	}
	if err := Validate(s.Snapshot()); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestEditActivity(t *testing.T) {
	s := createTestStore(t)

	updated, err := s.EditActivity("tue-1", ActivityPatch{
		Time:             strPtr("9:00 AM - 10:00 AM"),
		UpcomingTests:    []string{},
		SetUpcomingTests: true,
	})
	if err != nil {
		t.Fatalf("EditActivity() error = %v", err)
	}
	if updated.Name != "Web Development" {
		t.Errorf("Name = %q, want unchanged", updated.Name)
	}
	if updated.Time != "9:00 AM - 10:00 AM" {
		t.Errorf("Time = %q", updated.Time)
	}
	if len(updated.UpcomingTests) != 0 {
		t.Errorf("UpcomingTests = %v, want cleared", updated.UpcomingTests)
	}
	if len(updated.ImportantDates) != 2 {
		t.Errorf("ImportantDates = %v, want untouched", updated.ImportantDates)
	}

	got, day, ok := s.FindActivity("tue-1")
	if !ok || day != "Tuesday" {
		t.Fatalf("FindActivity() = %v, %q, %v", got, day, ok)
	}
	if got.Time != "9:00 AM - 10:00 AM" {
		t.Errorf("stored Time = %q", got.Time)
	}
}

func TestEditActivity_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		patch   ActivityPatch
		wantErr error
	}{
		{"unknown id", "nope", ActivityPatch{Name: strPtr("x")}, ErrActivityNotFound},
		{"blank name", "mon-1", ActivityPatch{Name: strPtr("  ")}, ErrNameRequired},
		{"blank time", "mon-1", ActivityPatch{Time: strPtr("")}, ErrTimeRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createTestStore(t)
			before := s.Snapshot()

			if _, err := s.EditActivity(tt.id, tt.patch); !errors.Is(err, tt.wantErr) {
				t.Fatalf("EditActivity() error = %v, want %v", err, tt.wantErr)
			}

			after := s.Snapshot()
			a, _ := before.Find(DefaultScheduleID)
			b, _ := after.Find(DefaultScheduleID)
			if a.Data[0].Activities[0].Name != b.Data[0].Activities[0].Name ||
				a.Data[0].Activities[0].Time != b.Data[0].Activities[0].Time {
				t.Error("rejected edit changed the activity")
			}
		})
	}
}

func TestEditActivity_OnlyCurrentSchedule(t *testing.T) {
	s := createTestStore(t)
	if _, err := s.CreateSchedule("Other", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := s.EditActivity("mon-1", ActivityPatch{Name: strPtr("x")}); !errors.Is(err, ErrActivityNotFound) {
		t.Fatalf("error = %v, want ErrActivityNotFound", err)
	}
}

func TestDeleteActivity(t *testing.T) {
	s := createTestStore(t)

	if err := s.DeleteActivity("mon-2"); err != nil {
		t.Fatalf("DeleteActivity() error = %v", err)
	}
	cur, _ := s.Current()
	monday := cur.Data[0].Activities
	if len(monday) != 3 {
		t.Fatalf("len(Monday) = %d, want 3", len(monday))
	}
	want := []string{"mon-1", "mon-3", "mon-4"}
	for i, a := range monday {
		if a.ID != want[i] {
			t.Errorf("Monday[%d].ID = %q, want %q", i, a.ID, want[i])
		}
	}

	if err := s.DeleteActivity("mon-2"); !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("second delete error = %v, want ErrActivityNotFound", err)
	}
}

func TestDeleteActivity_DoesNotTouchSnapshots(t *testing.T) {
	s := createTestStore(t)
	snap := s.Snapshot()

	if err := s.DeleteActivity("mon-1"); err != nil {
		t.Fatal(err)
	}
	sch, _ := snap.Find(DefaultScheduleID)
	if len(sch.Data[0].Activities) != 4 || sch.Data[0].Activities[0].ID != "mon-1" {
		t.Error("snapshot was mutated by DeleteActivity")
	}
}

// =============================================================================
// Store-wide Tests
// =============================================================================

func TestClearAll(t *testing.T) {
	s := createTestStore(t)
	if _, err := s.CreateSchedule("Extra", ""); err != nil {
		t.Fatal(err)
	}
	if err := s.SetViewMode(ViewDaily); err != nil {
		t.Fatal(err)
	}

	s.ClearAll()

	snap := s.Snapshot()
	if len(snap.Schedules) != 1 {
		t.Fatalf("len(Schedules) = %d, want 1", len(snap.Schedules))
	}
	sch := snap.Schedules[0]
	if sch.ID != DefaultScheduleID || sch.Name != "New Schedule" || sch.Description != "Start fresh with a new schedule" {
		t.Errorf("schedule = %+v", sch)
	}
	if sch.ActivityCount() != 0 {
		t.Errorf("ActivityCount() = %d, want 0", sch.ActivityCount())
	}
	if snap.CurrentScheduleID != DefaultScheduleID || snap.ViewMode != ViewWeekly {
		t.Errorf("pointer/view = %q/%q", snap.CurrentScheduleID, snap.ViewMode)
	}
}

func TestReplace(t *testing.T) {
	s := createTestStore(t)

	next := BlankState()
	next.Schedules[0].Name = "Imported"
	if err := s.Replace(next); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if cur, _ := s.Current(); cur.Name != "Imported" {
		t.Errorf("Current().Name = %q", cur.Name)
	}

	bad := BlankState()
	bad.Schedules[0].Data = bad.Schedules[0].Data[:5]
	var verr *ValidationError
	if err := s.Replace(bad); !errors.As(err, &verr) {
		t.Fatalf("Replace(bad) error = %v, want ValidationError", err)
	}
	if cur, _ := s.Current(); cur.Name != "Imported" {
		t.Error("failed Replace changed state")
	}
}

func TestOnChange(t *testing.T) {
	s := createTestStore(t)

	var events []ChangeEvent
	s.SetOnChange(func(ev ChangeEvent) {
		// Reentrant reads must not deadlock.
		_ = s.Snapshot()
		events = append(events, ev)
	})

	if _, err := s.AddActivity("Monday", ActivityDraft{Name: "Web Development", Time: "8:00 AM - 9:00 AM"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddActivity("Monday", ActivityDraft{Name: ""}); err == nil {
		t.Fatal("expected rejection")
	}
	s.ClearAll()

	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if got := events[0].Description(); got != "add activity: Web Development" {
		t.Errorf("Description() = %q", got)
	}
	if got := events[1].Description(); got != "clear store" {
		t.Errorf("Description() = %q", got)
	}
	if events[0].State.Schedules[0].ActivityCount() != 7 {
		t.Errorf("event state ActivityCount() = %d, want 7", events[0].State.Schedules[0].ActivityCount())
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := createTestStore(t)
	s.SetNowFunc(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			day := Weekdays[i%7]
			for j := 0; j < 20; j++ {
				act, err := s.AddActivity(day, ActivityDraft{Name: "x", Time: "8:00 AM - 9:00 AM"})
				if err != nil {
					t.Errorf("AddActivity() error = %v", err)
					return
				}
				if j%2 == 0 {
					_ = s.DeleteActivity(act.ID)
				}
				_ = s.Snapshot()
			}
		}(i)
	}
	wg.Wait()

	snap := s.Snapshot()
	if err := Validate(snap); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got := snap.Schedules[0].ActivityCount(); got != 6+8*10 {
		t.Errorf("ActivityCount() = %d, want %d", got, 6+8*10)
	}
}

// TestOnChange_CommitOrder holds the first notification inside the hook
// while a second edit commits. The second must not be delivered until the
// first returns, so the last state a listener sees is the newest one.
func TestOnChange_CommitOrder(t *testing.T) {
	s := createTestStore(t)

	firstIn := make(chan struct{})
	release := make(chan struct{})
	var releaseOnce sync.Once
	unblock := func() { releaseOnce.Do(func() { close(release) }) }
	defer unblock()

	var (
		mu    sync.Mutex
		calls int
		seqs  []uint64
		sizes []int
	)
	s.SetOnChange(func(ev ChangeEvent) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(firstIn)
			<-release
		}
		mu.Lock()
		seqs = append(seqs, ev.Seq)
		sizes = append(sizes, len(ev.State.Schedules))
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := s.CreateSchedule("Summer", ""); err != nil {
			t.Errorf("CreateSchedule() error = %v", err)
		}
	}()
	<-firstIn

	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := s.CreateSchedule("Fall", ""); err != nil {
			t.Errorf("CreateSchedule() error = %v", err)
		}
	}()
	deadline := time.Now().Add(5 * time.Second)
	for len(s.Snapshot().Schedules) != 3 {
		if time.Now().After(deadline) {
			t.Fatal("second edit never committed")
		}
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	early := len(seqs)
	mu.Unlock()
	if early != 0 {
		t.Fatalf("%d events delivered while the first was still in the hook", early)
	}

	unblock()
	wg.Wait()

	if len(seqs) != 2 || seqs[0] != 1 || seqs[1] != 2 {
		t.Fatalf("delivered seqs = %v, want [1 2]", seqs)
	}
	if sizes[1] != 3 {
		t.Errorf("last delivered state has %d schedules, want 3", sizes[1])
	}
}

func TestOnChange_CarriesBefore(t *testing.T) {
	s := createTestStore(t)
	var got ChangeEvent
	s.SetOnChange(func(ev ChangeEvent) { got = ev })

	if err := s.DeleteActivity("mon-1"); err != nil {
		t.Fatal(err)
	}
	if n := got.Before.Schedules[0].ActivityCount(); n != 6 {
		t.Errorf("Before ActivityCount() = %d, want 6", n)
	}
	if n := got.State.Schedules[0].ActivityCount(); n != 5 {
		t.Errorf("State ActivityCount() = %d, want 5", n)
	}
}

func TestTrack_Errors(t *testing.T) {
	s := createTestStore(t)
	tr := s.Track()

	if _, _, err := tr.AddActivity("Monday", ActivityDraft{Time: "8:00 AM - 9:00 AM"}); !errors.Is(err, ErrNameRequired) {
		t.Errorf("AddActivity() error = %v, want ErrNameRequired", err)
	}
	if _, err := tr.DeleteActivity("missing"); !errors.Is(err, ErrActivityNotFound) {
		t.Errorf("DeleteActivity() error = %v, want ErrActivityNotFound", err)
	}
	if _, err := tr.DeleteSchedule(DefaultScheduleID); !errors.Is(err, ErrLastSchedule) {
		t.Errorf("DeleteSchedule() error = %v, want ErrLastSchedule", err)
	}
}

func TestTrack_ClearAll(t *testing.T) {
	s := createTestStore(t)
	ev := s.Track().ClearAll()
	if ev.Before.Schedules[0].ID != DefaultScheduleID {
		t.Errorf("Before holds %q, want the sample schedule", ev.Before.Schedules[0].ID)
	}
	if len(ev.State.Schedules) != 1 || ev.State.Schedules[0].ActivityCount() != 0 {
		t.Errorf("State = %+v, want one blank schedule", ev.State.Schedules)
	}
}

// TestTrack_ConcurrentEditsKeepTheirOwnStates checks that every tracked
// edit gets the states on either side of itself, even when edits from other
// goroutines interleave.
func TestTrack_ConcurrentEditsKeepTheirOwnStates(t *testing.T) {
	s := createTestStore(t)
	s.SetNowFunc(nil)
	tr := s.Track()

	has := func(st State, id string) bool {
		for _, d := range st.Schedules[0].Data {
			for _, a := range d.Activities {
				if a.ID == id {
					return true
				}
			}
		}
		return false
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				act, ev, err := tr.AddActivity(Weekdays[i%7], ActivityDraft{Name: "x", Time: "8:00 AM - 9:00 AM"})
				if err != nil {
					t.Errorf("AddActivity() error = %v", err)
					return
				}
				before, after := ev.Before.Schedules[0].ActivityCount(), ev.State.Schedules[0].ActivityCount()
				if after != before+1 || has(ev.Before, act.ID) || !has(ev.State, act.ID) {
					t.Errorf("add %s: before=%d after=%d", act.ID, before, after)
					return
				}

				dev, err := tr.DeleteActivity(act.ID)
				if err != nil {
					t.Errorf("DeleteActivity() error = %v", err)
					return
				}
				if !has(dev.Before, act.ID) || has(dev.State, act.ID) {
					t.Errorf("delete %s: change does not belong to this edit", act.ID)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if got := s.Snapshot().Schedules[0].ActivityCount(); got != 6 {
		t.Errorf("ActivityCount() = %d, want 6", got)
	}
}
