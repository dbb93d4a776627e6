// Package views projects a schedule state into one of the three
// presentations: the day-by-day list, the week in columns, or the hour grid.
package views

import (
	"time"

	"weekplan/internal/layout"
	"weekplan/internal/schedule"
)

// FallbackTitle is shown when the current schedule cannot be resolved.
const FallbackTitle = "My Schedule"

// View is a read-only projection. Exactly one of Buckets or Grid is set,
// depending on Mode. Daily and weekly views both hold all seven buckets;
// they differ in layout, and the daily view also names a Focus day.
type View struct {
	Mode        schedule.ViewMode  `json:"mode"`
	ScheduleID  string             `json:"scheduleId"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Focus       string             `json:"focus,omitempty"`
	Buckets     []layout.DayBucket `json:"buckets,omitempty"`
	Grid        *layout.Grid       `json:"grid,omitempty"`
}

// Options tune a projection. The zero value uses the default grid and
// today's weekday as focus.
type Options struct {
	Focus string        // focused weekday of the daily view; "" means today
	Slots []layout.Slot // grid rows; nil means layout.DefaultSlots
	Now   func() time.Time
}

// Project renders st in the given mode. An invalid mode falls back to the
// state's own mode, then to weekly.
func Project(st schedule.State, mode schedule.ViewMode, opts Options) View {
	if !mode.Valid() {
		mode = st.ViewMode
	}
	if !mode.Valid() {
		mode = schedule.ViewWeekly
	}

	v := View{Mode: mode, Title: FallbackTitle}
	days := schedule.EmptyDays()
	if sch, ok := st.Find(st.CurrentScheduleID); ok {
		v.ScheduleID = sch.ID
		v.Title = sch.Name
		v.Description = sch.Description
		days = sch.Data
	}

	switch mode {
	case schedule.ViewDaily:
		v.Focus = ResolveFocus(opts.Focus, opts.Now)
		v.Buckets = layout.Buckets(days)
	case schedule.ViewSchedule:
		slots := opts.Slots
		if slots == nil {
			slots = layout.DefaultSlots()
		}
		g := layout.Build(days, slots)
		v.Grid = &g
	default:
		v.Buckets = layout.Buckets(days)
	}
	return v
}

// ResolveFocus returns the canonical weekday for focus, or today's weekday
// when focus is empty or unknown.
func ResolveFocus(focus string, now func() time.Time) string {
	if day := schedule.CanonicalDay(focus); day != "" {
		return day
	}
	if now == nil {
		now = time.Now
	}
	return Weekday(now())
}

// Weekday maps t to the Monday-first weekday name used by schedules.
func Weekday(t time.Time) string {
	return schedule.Weekdays[(int(t.Weekday())+6)%7]
}

// Empty reports whether the view has nothing to show.
func (v View) Empty() bool {
	if v.Grid != nil {
		return v.Grid.Count() == 0
	}
	for _, b := range v.Buckets {
		if len(b.Activities) > 0 {
			return false
		}
	}
	return true
}
