package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"weekplan/internal/schedule"
	"weekplan/internal/timewindow"
)

// CSVImporter reads a spreadsheet with the columns NAME, DAY and TIME and
// optionally DESCRIPTION, UPCOMING_TESTS and IMPORTANT_DATES. List columns
// separate entries with ";". Column order and case do not matter.
type CSVImporter struct{}

// Name returns the importer name.
func (c *CSVImporter) Name() string {
	return "csv"
}

// Import reads activities from CSV and adds them to the current schedule.
func (c *CSVImporter) Import(reader io.Reader, store *schedule.Store) (*ImportResult, error) {
	items, parseErrors, err := c.parse(reader)
	if err != nil {
		return nil, err
	}
	return apply(store, items, parseErrors), nil
}

// Preview returns the activities that would be imported.
func (c *CSVImporter) Preview(reader io.Reader) ([]PreviewActivity, error) {
	items, _, err := c.parse(reader)
	return items, err
}

func (c *CSVImporter) parse(reader io.Reader) ([]PreviewActivity, []string, error) {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		if i == 0 {
			col = strings.TrimPrefix(col, "\ufeff") // UTF-8 BOM
		}
		colIndex[strings.ToUpper(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{"NAME", "DAY", "TIME"} {
		if _, ok := colIndex[col]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	field := func(record []string, col string) string {
		idx, ok := colIndex[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var items []PreviewActivity
	var parseErrors []string
	line := 1

	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV row: %w", err)
		}
		line++
		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}

		item := PreviewActivity{
			Name:           field(record, "NAME"),
			Description:    field(record, "DESCRIPTION"),
			UpcomingTests:  splitList(field(record, "UPCOMING_TESTS")),
			ImportantDates: splitList(field(record, "IMPORTANT_DATES")),
		}
		if item.Name == "" {
			parseErrors = append(parseErrors, fmt.Sprintf("line %d: missing name", line))
			continue
		}

		rawDay := field(record, "DAY")
		item.Day = schedule.CanonicalDay(rawDay)
		if item.Day == "" {
			parseErrors = append(parseErrors, fmt.Sprintf("line %d (%s): unknown day %q", line, item.Name, rawDay))
			continue
		}

		item.Time, err = timewindow.Canonical(field(record, "TIME"))
		if err != nil {
			parseErrors = append(parseErrors, fmt.Sprintf("line %d (%s): %v", line, item.Name, err))
			continue
		}

		items = append(items, item)
	}

	return items, parseErrors, nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
