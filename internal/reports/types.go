// Package reports summarizes a weekly schedule: load per day, time per
// activity, and the upcoming tests and important dates attached to it.
package reports

import "time"

// WeeklyReport contains aggregated data for one schedule's week.
type WeeklyReport struct {
	ScheduleID      string          `json:"schedule_id"`
	ScheduleName    string          `json:"schedule_name"`
	Description     string          `json:"description,omitempty"`
	TotalActivities int             `json:"total_activities"`
	TotalMinutes    int             `json:"total_minutes"`
	ByDay           []DaySummary    `json:"by_day"`
	ByActivity      []ActivityTotal `json:"by_activity"`
	UpcomingTests   []Deadline      `json:"upcoming_tests"`
	ImportantDates  []Deadline      `json:"important_dates"`
	GeneratedAt     time.Time       `json:"generated_at"`
}

// DaySummary provides a quick overview of a single weekday.
type DaySummary struct {
	Day           string `json:"day"`
	ActivityCount int    `json:"activity_count"`
	Minutes       int    `json:"minutes"`
	FirstStart    string `json:"first_start,omitempty"` // "8:00 AM"
	LastEnd       string `json:"last_end,omitempty"`
}

// ActivityTotal is the weekly time spent on activities sharing a name.
type ActivityTotal struct {
	Name       string  `json:"name"`
	Sessions   int     `json:"sessions"`
	Minutes    int     `json:"minutes"`
	Percentage float64 `json:"percentage"`
}

// Deadline is one upcoming test or important date, tagged with the
// activity it belongs to.
type Deadline struct {
	Activity string `json:"activity"`
	Day      string `json:"day"`
	Text     string `json:"text"`
}
