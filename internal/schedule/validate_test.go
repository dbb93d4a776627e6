package schedule

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(s *State)
		wantField string
	}{
		{
			name:   "default state",
			mutate: func(*State) {},
		},
		{
			name:   "blank state",
			mutate: func(s *State) { *s = BlankState() },
		},
		{
			name:   "dangling current pointer is allowed",
			mutate: func(s *State) { s.CurrentScheduleID = "gone" },
		},
		{
			name:      "no schedules",
			mutate:    func(s *State) { s.Schedules = []Schedule{} },
			wantField: "schedules",
		},
		{
			name:      "unknown view mode",
			mutate:    func(s *State) { s.ViewMode = "monthly" },
			wantField: "viewMode",
		},
		{
			name:      "six days",
			mutate:    func(s *State) { s.Schedules[0].Data = s.Schedules[0].Data[:6] },
			wantField: "schedules[0].data",
		},
		{
			name: "days out of order",
			mutate: func(s *State) {
				d := s.Schedules[0].Data
				d[0], d[1] = d[1], d[0]
			},
			wantField: "schedules[0].data[0].day",
		},
		{
			name:      "bad weekday name",
			mutate:    func(s *State) { s.Schedules[0].Data[3].Day = "Funday" },
			wantField: "schedules[0].data[3].day",
		},
		{
			name:      "activity without name",
			mutate:    func(s *State) { s.Schedules[0].Data[0].Activities[1].Name = "" },
			wantField: "schedules[0].data[0].activities[1].name",
		},
		{
			name:      "activity without time",
			mutate:    func(s *State) { s.Schedules[0].Data[1].Activities[0].Time = "" },
			wantField: "schedules[0].data[1].activities[0].time",
		},
		{
			name:      "schedule without id",
			mutate:    func(s *State) { s.Schedules[0].ID = "" },
			wantField: "schedules[0].id",
		},
		{
			name: "duplicate schedule id",
			mutate: func(s *State) {
				s.Schedules = append(s.Schedules, Schedule{ID: DefaultScheduleID, Name: "again", Data: EmptyDays()})
			},
			wantField: "schedules[1].id",
		},
		{
			name: "duplicate activity id across schedules",
			mutate: func(s *State) {
				other := Schedule{ID: "other", Name: "other", Data: EmptyDays()}
				other.Data[6].Activities = []Activity{{ID: "mon-1", Name: "x", Time: "8:00 AM - 9:00 AM"}}
				s.Schedules = append(s.Schedules, other)
			},
			wantField: "schedules[1].data[6].activities[0].id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultState()
			tt.mutate(&s)

			err := Validate(s)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q (rule %q)", verr.Field, tt.wantField, verr.Rule)
			}
		})
	}
}

func TestCanonicalDay(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Monday", "Monday"},
		{"monday", "Monday"},
		{"  SUNDAY ", "Sunday"},
		{"wed", "Wednesday"},
		{"Thu", "Thursday"},
		{"m", ""},
		{"", ""},
		{"Mondays", ""},
	}
	for _, tt := range tests {
		if got := CanonicalDay(tt.in); got != tt.want {
			t.Errorf("CanonicalDay(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	orig := DefaultState()
	cp := orig.Clone()

	cp.Schedules[0].Name = "changed"
	cp.Schedules[0].Data[0].Activities[0].UpcomingTests[0] = "changed"
	cp.Schedules[0].Data[1].Activities = append(cp.Schedules[0].Data[1].Activities, Activity{ID: "new"})

	if orig.Schedules[0].Name != "Spring 2024 Semester" {
		t.Error("schedule name leaked into original")
	}
	if orig.Schedules[0].Data[0].Activities[0].UpcomingTests[0] != "March 15, 2024 - Midterm Exam" {
		t.Error("list element leaked into original")
	}
	if len(orig.Schedules[0].Data[1].Activities) != 2 {
		t.Error("appended activity leaked into original")
	}
}

func TestNormalize_FillsNilSlices(t *testing.T) {
	s := State{
		Schedules: []Schedule{{
			ID:   "a",
			Name: "a",
			Data: []DaySchedule{{Day: "Monday", Activities: []Activity{{ID: "x", Name: "x", Time: "t"}}}},
		}},
	}
	n := Normalize(s)
	a := n.Schedules[0].Data[0].Activities[0]
	if a.UpcomingTests == nil || a.ImportantDates == nil {
		t.Error("Normalize left nil list fields")
	}
}
