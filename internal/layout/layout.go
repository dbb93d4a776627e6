// Package layout places activities on the hourly grid and groups them into
// per-day buckets for the list views.
package layout

import (
	"weekplan/internal/schedule"
	"weekplan/internal/timewindow"
)

const (
	// DefaultStartHour is the first hour shown on the grid (8 AM).
	DefaultStartHour = 8
	// DefaultSlotCount covers 8 AM through 6 PM inclusive.
	DefaultSlotCount = 11
)

// Slot is one hourly row of the grid.
type Slot struct {
	Hour  int    // 0-23
	Label string // "8:00 AM"
}

// Slots returns count consecutive hourly slots starting at startHour.
// Hours past 23 are dropped.
func Slots(startHour, count int) []Slot {
	if startHour < 0 {
		startHour = 0
	}
	out := make([]Slot, 0, count)
	for h := startHour; h < startHour+count && h < 24; h++ {
		out = append(out, Slot{Hour: h, Label: timewindow.SlotLabel(h)})
	}
	return out
}

// DefaultSlots returns the 8 AM to 6 PM slots.
func DefaultSlots() []Slot {
	return Slots(DefaultStartHour, DefaultSlotCount)
}

// Placement positions an activity inside the slot of its start hour.
// TopOffsetPercent and HeightPercent are relative to one slot height, so
// an activity longer than an hour has HeightPercent above 100. Negative
// durations are passed through unchanged.
type Placement struct {
	Day              string            `json:"day"`
	Activity         schedule.Activity `json:"activity"`
	Window           timewindow.Window `json:"window"`
	TopOffsetPercent float64           `json:"topOffsetPercent"`
	HeightPercent    float64           `json:"heightPercent"`
}

// Place computes the placement of a single activity.
func Place(day string, a schedule.Activity) Placement {
	w := timewindow.Parse(a.Time)
	return Placement{
		Day:              day,
		Activity:         a,
		Window:           w,
		TopOffsetPercent: float64(w.StartMinutes) / 60 * 100,
		HeightPercent:    float64(w.DurationMinutes()) / 60 * 100,
	}
}

// Cell is the intersection of one slot and one day.
type Cell struct {
	Day        string      `json:"day"`
	Placements []Placement `json:"placements"`
}

// Row is one slot across all days.
type Row struct {
	Slot  Slot   `json:"slot"`
	Cells []Cell `json:"cells"`
}

// Grid is the hour-by-day table of the schedule view.
type Grid struct {
	Days []string `json:"days"`
	Rows []Row    `json:"rows"`

	// Outside holds activities whose start hour has no slot; they are not
	// drawn on the grid.
	Outside []Placement `json:"outside"`
}

// Build lays days out over slots. An activity appears only in the slot
// whose hour equals its start hour. Activities sharing a slot keep their
// stored order and share positioning; no overlap resolution is done.
func Build(days []schedule.DaySchedule, slots []Slot) Grid {
	g := Grid{
		Days:    make([]string, len(days)),
		Rows:    make([]Row, len(slots)),
		Outside: []Placement{},
	}
	rowByHour := make(map[int]int, len(slots))
	for i, s := range slots {
		rowByHour[s.Hour] = i
		g.Rows[i] = Row{Slot: s, Cells: make([]Cell, len(days))}
		for j, d := range days {
			g.Rows[i].Cells[j] = Cell{Day: d.Day, Placements: []Placement{}}
		}
	}

	for j, d := range days {
		g.Days[j] = d.Day
		for _, a := range d.Activities {
			p := Place(d.Day, a)
			i, ok := rowByHour[p.Window.StartHour]
			if !ok {
				g.Outside = append(g.Outside, p)
				continue
			}
			g.Rows[i].Cells[j].Placements = append(g.Rows[i].Cells[j].Placements, p)
		}
	}
	return g
}

// Cell returns the cell for the given hour and day. ok is false when the
// grid has no such slot or day.
func (g Grid) Cell(hour int, day string) (Cell, bool) {
	for _, r := range g.Rows {
		if r.Slot.Hour != hour {
			continue
		}
		for _, c := range r.Cells {
			if c.Day == day {
				return c, true
			}
		}
	}
	return Cell{}, false
}

// Count returns the number of activities drawn on the grid.
func (g Grid) Count() int {
	n := 0
	for _, r := range g.Rows {
		for _, c := range r.Cells {
			n += len(c.Placements)
		}
	}
	return n
}

// DayBucket is one day of a list view.
type DayBucket struct {
	Day        string              `json:"day"`
	Activities []schedule.Activity `json:"activities"`
}

// Buckets groups activities by day, keeping stored order. Empty days are
// included; the caller decides whether to show them.
func Buckets(days []schedule.DaySchedule) []DayBucket {
	out := make([]DayBucket, len(days))
	for i, d := range days {
		acts := make([]schedule.Activity, len(d.Activities))
		for j, a := range d.Activities {
			acts[j] = a.Clone()
		}
		out[i] = DayBucket{Day: d.Day, Activities: acts}
	}
	return out
}
