package ui

import (
	"fmt"
	"math"
	"strings"

	"weekplan/internal/layout"
	"weekplan/internal/schedule"
	"weekplan/internal/views"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	gridLabelWidth = 9
	minColumnWidth = 10

	// Rows around the daily list: title, tabs, description, pane border
	// and help bar.
	dailyChromeLines = 7
)

// renderView draws the projection for the current mode.
func (a *App) renderView(v views.View) string {
	var body string
	switch {
	case v.Grid != nil:
		body = a.renderGrid(*v.Grid)
	case v.Mode == schedule.ViewDaily:
		body = a.renderDaily(v)
	default:
		body = a.renderWeekly(v)
	}
	if v.Description != "" {
		body = a.styles.ActivityDescStyle.Render(truncateText(v.Description, max(20, a.width-2))) + "\n" + body
	}
	return body
}

func (a *App) today() string {
	return views.Weekday(a.now())
}

// dayHeader renders label for day, marking today.
func (a *App) dayHeader(day, label string) string {
	if day == a.today() {
		return a.styles.DayHeaderTodayStyle.Render(label + " *")
	}
	return a.styles.DayHeaderStyle.Render(label)
}

// ===== Daily =====

// renderDaily stacks every day with full activity details. The focused day
// carries the cursor; when the list is taller than the terminal it scrolls
// so the focused day's header stays on screen.
func (a *App) renderDaily(v views.View) string {
	var lines []string
	focusLine := 0
	for _, bucket := range v.Buckets {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		focused := bucket.Day == v.Focus
		header := a.dayHeader(bucket.Day, bucket.Day)
		if focused {
			focusLine = len(lines)
			header = a.styles.InputPromptStyle.Render("› ") + header
		}
		lines = append(lines, header)

		if len(bucket.Activities) == 0 {
			msg := "No activities"
			if focused {
				msg = fmt.Sprintf("No activities on %s. Press a to add one.", bucket.Day)
			}
			lines = append(lines, "  "+a.styles.EmptyStyle.Render(msg))
			continue
		}
		for j, act := range bucket.Activities {
			if focused && j == a.cursor {
				lines = append(lines, a.styles.ActivitySelectedStyle.Render("› "+act.Time+"  "+act.Name))
			} else {
				lines = append(lines, "  "+a.styles.ActivityTimeStyle.Render(act.Time)+"  "+act.Name)
			}
			if act.Description != "" {
				lines = append(lines, "    "+a.styles.ActivityDescStyle.Render(act.Description))
			}
			for _, test := range act.UpcomingTests {
				lines = append(lines, "    "+a.styles.TestBadgeStyle.Render("Test: ")+test)
			}
			for _, date := range act.ImportantDates {
				lines = append(lines, "    "+a.styles.DateBadgeStyle.Render("Date: ")+date)
			}
		}
	}

	if avail := a.height - dailyChromeLines; a.height > 0 && avail > 0 && len(lines) > avail {
		start := min(focusLine, len(lines)-avail)
		lines = lines[start : start+avail]
	}
	return a.pane(strings.Join(lines, "\n"), true, 0)
}

// ===== Weekly =====

// renderWeekly shows all seven days: side by side on wide terminals and
// stacked below the narrow-layout threshold.
func (a *App) renderWeekly(v views.View) string {
	threshold := a.config.NarrowLayoutThreshold
	if threshold <= 0 {
		threshold = 100
	}
	if a.width < threshold {
		return a.renderWeeklyStacked(v)
	}

	// Seven bordered columns: two border cells and two padding cells each.
	colWidth := max(minColumnWidth, (a.width-7*4)/7)
	cols := make([]string, 0, len(v.Buckets))
	for i, bucket := range v.Buckets {
		selected := i == a.dayIdx
		var b strings.Builder
		b.WriteString(a.dayHeader(bucket.Day, shortDay(bucket.Day)))
		b.WriteString("\n")
		if len(bucket.Activities) == 0 {
			b.WriteString(a.styles.EmptyStyle.Render("-"))
		}
		for j, act := range bucket.Activities {
			start := strings.SplitN(act.Time, " - ", 2)[0]
			b.WriteString(a.styles.ActivityTimeStyle.Render(truncateText(start, colWidth)) + "\n")
			name := truncateText(act.Name, colWidth)
			if selected && j == a.cursor {
				b.WriteString(a.styles.ActivitySelectedStyle.Render(name))
			} else {
				b.WriteString(a.styles.ActivityStyle.Render(name))
			}
			if len(act.UpcomingTests) > 0 {
				b.WriteString(a.styles.TestBadgeStyle.Render(" !"))
			}
			b.WriteString("\n")
		}
		cols = append(cols, a.pane(strings.TrimRight(b.String(), "\n"), selected, colWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (a *App) renderWeeklyStacked(v views.View) string {
	var b strings.Builder
	for i, bucket := range v.Buckets {
		selected := i == a.dayIdx
		header := a.dayHeader(bucket.Day, bucket.Day)
		if selected {
			header = a.styles.InputPromptStyle.Render("› ") + header
		}
		b.WriteString(header)
		b.WriteString("\n")
		if len(bucket.Activities) == 0 {
			b.WriteString("  " + a.styles.EmptyStyle.Render("No activities") + "\n")
		}
		for j, act := range bucket.Activities {
			line := fmt.Sprintf("%-20s %s", act.Time, act.Name)
			if selected && j == a.cursor {
				b.WriteString("  " + a.styles.ActivitySelectedStyle.Render(line) + "\n")
			} else {
				b.WriteString("  " + a.styles.ActivityStyle.Render(line) + "\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// ===== Grid =====

// renderGrid draws the hour-by-day table. Each activity is written in the
// row of its start hour; rows it runs into are marked with a rule.
func (a *App) renderGrid(g layout.Grid) string {
	colWidth := max(minColumnWidth, (a.width-gridLabelWidth-1)/max(1, len(g.Days)))
	selectedID := ""
	if act, ok := a.selected(); ok {
		selectedID = act.ID
	}

	// continued[row][col] is set when an earlier activity spills into it.
	continued := make([][]bool, len(g.Rows))
	for i := range continued {
		continued[i] = make([]bool, len(g.Days))
	}
	for i, row := range g.Rows {
		for j, cell := range row.Cells {
			for _, p := range cell.Placements {
				for k := 1; k < spanRows(p) && i+k < len(g.Rows); k++ {
					continued[i+k][j] = true
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridLabelWidth))
	for j, day := range g.Days {
		h := padCell(shortDay(day), colWidth)
		if j == a.dayIdx {
			b.WriteString(a.styles.TabActiveStyle.Render(h))
		} else {
			b.WriteString(a.styles.DayHeaderStyle.Render(h))
		}
	}
	b.WriteString("\n")

	for i, row := range g.Rows {
		b.WriteString(a.styles.GridLabelStyle.Render(padCell(row.Slot.Label, gridLabelWidth)))
		for j, cell := range row.Cells {
			b.WriteString(a.renderGridCell(cell, continued[i][j], selectedID, colWidth))
		}
		b.WriteString("\n")
	}

	if len(g.Outside) > 0 {
		names := make([]string, len(g.Outside))
		for i, p := range g.Outside {
			names[i] = fmt.Sprintf("%s %s (%s)", shortDay(p.Day), p.Activity.Name, p.Activity.Time)
		}
		b.WriteString(a.styles.EmptyStyle.Render("Outside grid: " + strings.Join(names, ", ")))
		b.WriteString("\n")
	}

	if act, ok := a.selected(); ok {
		b.WriteString(a.styles.ActivitySelectedStyle.Render(fmt.Sprintf("%s · %s · %s", a.day(), act.Time, act.Name)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a *App) renderGridCell(cell layout.Cell, continued bool, selectedID string, width int) string {
	if len(cell.Placements) == 0 {
		if continued {
			return a.styles.GridBlockStyle.Render(padCell("┆", width-1)) + " "
		}
		return a.styles.GridCellStyle.Render(padCell("·", width))
	}

	first := cell.Placements[0]
	text := first.Activity.Name
	if first.TopOffsetPercent > 0 {
		text = fmt.Sprintf(":%02d %s", first.Window.StartMinutes, text)
	}
	if extra := len(cell.Placements) - 1; extra > 0 {
		text = truncateText(text, width-4) + fmt.Sprintf(" +%d", extra)
	}
	text = padCell(text, width-1)

	for _, p := range cell.Placements {
		if p.Activity.ID == selectedID {
			return a.styles.ActivitySelectedStyle.Render(text) + " "
		}
	}
	return a.styles.GridBlockStyle.Render(text) + " "
}

// spanRows is the number of grid rows a placement touches, at least one.
func spanRows(p layout.Placement) int {
	end := p.TopOffsetPercent + p.HeightPercent
	if end <= 100 {
		return 1
	}
	return int(math.Ceil(end / 100))
}

// padCell truncates or right-pads s to exactly width cells.
func padCell(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = runewidth.Truncate(s, width, "..")
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

func shortDay(day string) string {
	if len(day) < 3 {
		return day
	}
	return day[:3]
}

// pane wraps content in the pane border. width 0 leaves it unsized.
func (a *App) pane(content string, focused bool, width int) string {
	style := a.styles.PaneStyle
	if focused {
		style = a.styles.PaneFocusedStyle
	}
	if width > 0 {
		style = style.Width(width + 2)
	}
	return style.Render(content)
}

// formatMinutes renders 150 as "2h 30m".
func formatMinutes(mins int) string {
	h, m := mins/60, mins%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
