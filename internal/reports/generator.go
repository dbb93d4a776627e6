package reports

import (
	"sort"
	"time"

	"weekplan/internal/schedule"
	"weekplan/internal/timewindow"
)

// Generator creates reports from schedules.
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a new report generator.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// SetNowFunc overrides the clock used for GeneratedAt. Passing nil resets
// it to time.Now.
func (g *Generator) SetNowFunc(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	g.now = now
}

// GenerateWeekly summarizes sch. Activities with an inverted time range
// count as zero minutes.
func (g *Generator) GenerateWeekly(sch schedule.Schedule) *WeeklyReport {
	report := &WeeklyReport{
		ScheduleID:     sch.ID,
		ScheduleName:   sch.Name,
		Description:    sch.Description,
		ByDay:          make([]DaySummary, 0, len(sch.Data)),
		ByActivity:     []ActivityTotal{},
		UpcomingTests:  []Deadline{},
		ImportantDates: []Deadline{},
		GeneratedAt:    g.now(),
	}

	byName := make(map[string]*ActivityTotal)
	var order []string

	for _, day := range sch.Data {
		summary := DaySummary{Day: day.Day, ActivityCount: len(day.Activities)}
		first, last := -1, -1

		for _, a := range day.Activities {
			w := timewindow.Parse(a.Time)
			mins := w.DurationMinutes()
			if mins < 0 {
				mins = 0
			}
			summary.Minutes += mins

			start := w.StartHour*60 + w.StartMinutes
			end := w.EndHour*60 + w.EndMinutes
			if first < 0 || start < first {
				first = start
			}
			if end > last {
				last = end
			}

			total, ok := byName[a.Name]
			if !ok {
				total = &ActivityTotal{Name: a.Name}
				byName[a.Name] = total
				order = append(order, a.Name)
			}
			total.Sessions++
			total.Minutes += mins

			for _, text := range a.UpcomingTests {
				report.UpcomingTests = append(report.UpcomingTests, Deadline{Activity: a.Name, Day: day.Day, Text: text})
			}
			for _, text := range a.ImportantDates {
				report.ImportantDates = append(report.ImportantDates, Deadline{Activity: a.Name, Day: day.Day, Text: text})
			}
		}

		if first >= 0 {
			summary.FirstStart = clock(first)
			summary.LastEnd = clock(last)
		}
		report.TotalActivities += summary.ActivityCount
		report.TotalMinutes += summary.Minutes
		report.ByDay = append(report.ByDay, summary)
	}

	for _, name := range order {
		total := *byName[name]
		if report.TotalMinutes > 0 {
			total.Percentage = float64(total.Minutes) / float64(report.TotalMinutes) * 100
		}
		report.ByActivity = append(report.ByActivity, total)
	}
	sort.SliceStable(report.ByActivity, func(i, j int) bool {
		return report.ByActivity[i].Minutes > report.ByActivity[j].Minutes
	})

	return report
}

// clock renders minutes since midnight, wrapping past 24h.
func clock(mins int) string {
	mins = ((mins % (24 * 60)) + 24*60) % (24 * 60)
	return timewindow.FormatClock(mins/60, mins%60)
}
