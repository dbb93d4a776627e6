package schedule

import "strings"

// Weekdays is the fixed, ordered set of day names every schedule carries.
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ViewMode selects how the current schedule is presented.
type ViewMode string

const (
	ViewDaily    ViewMode = "daily"
	ViewWeekly   ViewMode = "weekly"
	ViewSchedule ViewMode = "schedule" // hour grid
)

// Valid reports whether m is one of the known view modes.
func (m ViewMode) Valid() bool {
	switch m {
	case ViewDaily, ViewWeekly, ViewSchedule:
		return true
	}
	return false
}

// Activity is one scheduled occurrence on a day.
type Activity struct {
	ID             string   `json:"id" validate:"required"`
	Name           string   `json:"name" validate:"required"`
	Time           string   `json:"time" validate:"required"`
	Description    string   `json:"description,omitempty"`
	UpcomingTests  []string `json:"upcomingTests"`
	ImportantDates []string `json:"importantDates"`
}

// DaySchedule holds the activities of one weekday in display order.
type DaySchedule struct {
	Day        string     `json:"day" validate:"required,weekday"`
	Activities []Activity `json:"activities" validate:"dive"`
}

// Schedule is a named week of activities.
type Schedule struct {
	ID          string        `json:"id" validate:"required"`
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description,omitempty"`
	Data        []DaySchedule `json:"data" validate:"len=7,dive"`
}

// State is the top-level persisted unit.
type State struct {
	Schedules         []Schedule `json:"schedules" validate:"required,min=1,dive"`
	CurrentScheduleID string     `json:"currentScheduleId"`
	ViewMode          ViewMode   `json:"viewMode" validate:"viewmode"`
}

// ActivityDraft carries the fields of a new activity.
type ActivityDraft struct {
	Name           string
	Time           string
	Description    string
	UpcomingTests  []string
	ImportantDates []string
}

// ActivityPatch lists the fields to overwrite on an existing activity.
// Nil fields are left untouched.
type ActivityPatch struct {
	Name           *string
	Time           *string
	Description    *string
	UpcomingTests  []string
	ImportantDates []string

	// SetUpcomingTests and SetImportantDates distinguish "replace with an
	// empty list" from "leave as is".
	SetUpcomingTests  bool
	SetImportantDates bool
}

// EmptyDays returns the seven canonical days with no activities.
func EmptyDays() []DaySchedule {
	days := make([]DaySchedule, len(Weekdays))
	for i, name := range Weekdays {
		days[i] = DaySchedule{Day: name, Activities: []Activity{}}
	}
	return days
}

// CanonicalDay maps case-insensitive input ("monday", "MON") to the
// canonical weekday name. It returns "" for unknown input.
func CanonicalDay(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	for _, name := range Weekdays {
		lower := strings.ToLower(name)
		if s == lower || (len(s) >= 3 && strings.HasPrefix(lower, s)) {
			return name
		}
	}
	return ""
}

// DayIndex returns the position of a canonical day name, or -1.
func DayIndex(day string) int {
	for i, name := range Weekdays {
		if name == day {
			return i
		}
	}
	return -1
}

// Find returns the schedule with the given id.
func (s *State) Find(id string) (*Schedule, bool) {
	for i := range s.Schedules {
		if s.Schedules[i].ID == id {
			return &s.Schedules[i], true
		}
	}
	return nil, false
}

// ActivityCount returns the number of activities across all days.
func (s Schedule) ActivityCount() int {
	n := 0
	for _, d := range s.Data {
		n += len(d.Activities)
	}
	return n
}
