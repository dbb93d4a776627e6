// Package calendar converts schedules to and from iCalendar data. Export
// anchors each activity on one concrete week; no recurrence is emitted.
package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"weekplan/internal/schedule"
	"weekplan/internal/timewindow"
)

// ProductID identifies calendars produced by Export.
const ProductID = "-//weekplan//weekly schedule//EN"

// ErrEmptyCalendar is returned by Parse for input with no data.
var ErrEmptyCalendar = errors.New("empty calendar")

// WeekStart returns midnight of the Monday of the week containing t, in loc.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	t = t.In(loc)
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, loc)
}

// Export renders one VEVENT per activity of sch, placed on the week that
// contains weekOf. Wall-clock times are interpreted in loc.
func Export(sch schedule.Schedule, weekOf time.Time, loc *time.Location) []byte {
	if loc == nil {
		loc = time.Local
	}
	monday := WeekStart(weekOf, loc)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetName(sch.Name)
	if sch.Description != "" {
		cal.SetDescription(sch.Description)
	}

	for i, day := range sch.Data {
		date := monday.AddDate(0, 0, i)
		for _, a := range day.Activities {
			w := timewindow.Parse(a.Time)
			start := time.Date(date.Year(), date.Month(), date.Day(), w.StartHour, w.StartMinutes, 0, 0, loc)
			end := time.Date(date.Year(), date.Month(), date.Day(), w.EndHour, w.EndMinutes, 0, 0, loc)
			if end.Before(start) {
				end = start
			}

			ev := cal.AddEvent(a.ID + "@weekplan")
			ev.SetDtStampTime(monday)
			ev.SetStartAt(start)
			ev.SetEndAt(end)
			ev.SetSummary(a.Name)
			if desc := eventDescription(a); desc != "" {
				ev.SetDescription(desc)
			}
		}
	}

	return []byte(cal.Serialize())
}

func eventDescription(a schedule.Activity) string {
	var parts []string
	if a.Description != "" {
		parts = append(parts, a.Description)
	}
	if len(a.UpcomingTests) > 0 {
		parts = append(parts, "Upcoming tests:\n"+strings.Join(a.UpcomingTests, "\n"))
	}
	if len(a.ImportantDates) > 0 {
		parts = append(parts, "Important dates:\n"+strings.Join(a.ImportantDates, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

// Entry is one timed event read from a calendar, reduced to what a
// schedule can hold.
type Entry struct {
	UID         string
	Day         string // canonical weekday
	Time        string // canonical "H:MM AM - H:MM PM"
	Summary     string
	Description string
}

// Parse reads a calendar and returns its timed events converted to loc.
// All-day events, events without a start and events without a summary are
// skipped and counted in skipped.
func Parse(r io.Reader, loc *time.Location) (entries []Entry, skipped int, err error) {
	if loc == nil {
		loc = time.Local
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("read calendar: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, 0, ErrEmptyCalendar
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("parse calendar: %w", err)
	}

	for _, ev := range cal.Events() {
		entry, ok := parseEvent(ev, loc)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}

func parseEvent(ev *ical.VEvent, loc *time.Location) (Entry, bool) {
	var out Entry

	startProp := ev.GetProperty(ical.ComponentPropertyDtStart)
	if startProp == nil || !strings.Contains(startProp.Value, "T") {
		return out, false
	}
	if vs, ok := startProp.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return out, false
	}

	summary := ev.GetProperty(ical.ComponentPropertySummary)
	if summary == nil || strings.TrimSpace(summary.Value) == "" {
		return out, false
	}
	out.Summary = strings.TrimSpace(summary.Value)

	start, err := ev.GetStartAt()
	if err != nil {
		return out, false
	}
	end, err := ev.GetEndAt()
	if err != nil || end.Before(start) {
		end = start.Add(time.Hour)
	}
	start, end = start.In(loc), end.In(loc)

	if p := ev.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		out.UID = p.Value
	}
	if p := ev.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Description = strings.TrimSpace(p.Value)
	}

	out.Day = schedule.Weekdays[(int(start.Weekday())+6)%7]
	out.Time = timewindow.FormatClock(start.Hour(), start.Minute()) + timewindow.Separator +
		timewindow.FormatClock(end.Hour(), end.Minute())
	return out, true
}
