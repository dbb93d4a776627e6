// Package importer adds activities from other calendar and spreadsheet
// formats to the current schedule.
package importer

import (
	"fmt"
	"io"

	"weekplan/internal/schedule"
)

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Imported int      // Number of activities added
	Skipped  int      // Rows or events that could not become activities
	Errors   []string // One message per skipped item
}

// PreviewActivity is an activity as it would be added.
type PreviewActivity struct {
	Day            string
	Name           string
	Time           string // canonical 12-hour range
	Description    string
	UpcomingTests  []string
	ImportantDates []string
}

// Importer defines the interface for import implementations.
type Importer interface {
	// Import reads activities from the reader and adds them to the
	// current schedule of store.
	Import(reader io.Reader, store *schedule.Store) (*ImportResult, error)

	// Preview reads activities from the reader without importing.
	Preview(reader io.Reader) ([]PreviewActivity, error)

	// Name returns the importer name (e.g., "ics", "csv").
	Name() string
}

// GetImporter returns the appropriate importer for the given format.
func GetImporter(format string) Importer {
	switch format {
	case "ics":
		return &ICSImporter{}
	case "csv":
		return &CSVImporter{}
	default:
		return nil
	}
}

// SupportedFormats returns the list of supported import formats.
func SupportedFormats() []string {
	return []string{"ics", "csv"}
}

// apply adds parsed activities through the store so ids and validation
// stay in one place.
func apply(store *schedule.Store, items []PreviewActivity, parseErrors []string) *ImportResult {
	result := &ImportResult{
		Skipped: len(parseErrors),
		Errors:  append([]string(nil), parseErrors...),
	}
	for _, it := range items {
		_, err := store.AddActivity(it.Day, schedule.ActivityDraft{
			Name:           it.Name,
			Time:           it.Time,
			Description:    it.Description,
			UpcomingTests:  it.UpcomingTests,
			ImportantDates: it.ImportantDates,
		})
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", it.Name, err))
			continue
		}
		result.Imported++
	}
	return result
}
