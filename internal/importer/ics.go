package importer

import (
	"io"
	"time"

	"weekplan/internal/calendar"
	"weekplan/internal/schedule"
)

// ICSImporter reads timed events from an iCalendar file. Each event becomes
// an activity on the weekday of its start; dates and recurrence are dropped.
type ICSImporter struct {
	// Location converts event times to wall-clock times. Nil means time.Local.
	Location *time.Location
}

// Name returns the importer name.
func (i *ICSImporter) Name() string {
	return "ics"
}

// Import reads events and adds them to the current schedule.
func (i *ICSImporter) Import(reader io.Reader, store *schedule.Store) (*ImportResult, error) {
	items, skipped, err := i.parse(reader)
	if err != nil {
		return nil, err
	}
	var parseErrors []string
	for n := 0; n < skipped; n++ {
		parseErrors = append(parseErrors, "all-day or untitled event skipped")
	}
	return apply(store, items, parseErrors), nil
}

// Preview returns the activities that would be imported.
func (i *ICSImporter) Preview(reader io.Reader) ([]PreviewActivity, error) {
	items, _, err := i.parse(reader)
	return items, err
}

func (i *ICSImporter) parse(reader io.Reader) ([]PreviewActivity, int, error) {
	entries, skipped, err := calendar.Parse(reader, i.Location)
	if err != nil {
		return nil, 0, err
	}
	items := make([]PreviewActivity, 0, len(entries))
	for _, e := range entries {
		items = append(items, PreviewActivity{
			Day:            e.Day,
			Name:           e.Summary,
			Time:           e.Time,
			Description:    e.Description,
			UpcomingTests:  []string{},
			ImportantDates: []string{},
		})
	}
	return items, skipped, nil
}
