package reports

import (
	"fmt"
	"strings"
)

// FormatWeeklyMarkdown formats a weekly report as Markdown.
func FormatWeeklyMarkdown(report *WeeklyReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Weekly Schedule: %s\n\n", report.ScheduleName)
	if report.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", report.Description)
	}
	fmt.Fprintf(&b, "**%d activities**, %s scheduled\n\n", report.TotalActivities, formatMinutes(report.TotalMinutes))

	b.WriteString("## By Day\n\n")
	b.WriteString("| Day | Activities | Time | Span |\n")
	b.WriteString("|-----|-----------:|-----:|------|\n")
	for _, d := range report.ByDay {
		span := "-"
		if d.FirstStart != "" {
			span = d.FirstStart + " - " + d.LastEnd
		}
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n", d.Day, d.ActivityCount, formatMinutes(d.Minutes), span)
	}
	b.WriteString("\n")

	if len(report.ByActivity) > 0 {
		b.WriteString("## By Activity\n\n")
		for _, a := range report.ByActivity {
			fmt.Fprintf(&b, "- **%s**: %s over %d session(s) (%.0f%%)\n",
				escapeMarkdown(a.Name), formatMinutes(a.Minutes), a.Sessions, a.Percentage)
		}
		b.WriteString("\n")
	}

	writeDeadlines(&b, "Upcoming Tests", report.UpcomingTests)
	writeDeadlines(&b, "Important Dates", report.ImportantDates)

	fmt.Fprintf(&b, "---\n_Generated %s_\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	return b.String()
}

func writeDeadlines(b *strings.Builder, title string, items []Deadline) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, d := range items {
		fmt.Fprintf(b, "- %s (%s, %s)\n", escapeMarkdown(d.Text), escapeMarkdown(d.Activity), d.Day)
	}
	b.WriteString("\n")
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

var markdownEscaper = strings.NewReplacer("*", `\*`, "_", `\_`, "`", "\\`", "|", `\|`)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
