package ui

import (
	"weekplan/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Default palette. The first five can be overridden from the theme section of
// the config file; the rest carry fixed meaning (danger for deletes, warning
// for today and deadlines).
const (
	defaultPrimary    = "#2563EB"
	defaultAccent     = "#3B82F6"
	defaultMuted      = "#6B7280"
	defaultBackground = "#1F2937"
	defaultText       = "#F9FAFB"

	timeColor      = "#10B981"
	dangerColor    = "#EF4444"
	warningColor   = "#F59E0B"
	successColor   = "#10B981"
	highlightColor = "#374151"
	dimTextColor   = "#9CA3AF"
)

// Styles holds the palette and every rendered component style.
type Styles struct {
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorBg        lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorWarning   lipgloss.Color

	// Chrome
	TitleStyle       lipgloss.Style
	DateStyle        lipgloss.Style
	TabActiveStyle   lipgloss.Style
	TabInactiveStyle lipgloss.Style
	StatLabelStyle   lipgloss.Style
	StatValueStyle   lipgloss.Style

	// Day columns of the weekly view and the daily list
	PaneStyle           lipgloss.Style
	PaneFocusedStyle    lipgloss.Style
	PaneTitleStyle      lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Activity lines
	ActivityStyle         lipgloss.Style
	ActivitySelectedStyle lipgloss.Style
	ActivityTimeStyle     lipgloss.Style
	ActivityDescStyle     lipgloss.Style
	TestBadgeStyle        lipgloss.Style
	DateBadgeStyle        lipgloss.Style
	EmptyStyle            lipgloss.Style

	// Hour grid
	GridLabelStyle lipgloss.Style
	GridCellStyle  lipgloss.Style
	GridBlockStyle lipgloss.Style

	// Help bar and status line
	HelpStyle    lipgloss.Style
	HelpKeyStyle lipgloss.Style
	StatusStyle  lipgloss.Style
	ErrorStyle   lipgloss.Style

	// Activity and schedule forms
	InputPromptStyle lipgloss.Style
	InputLabelStyle  lipgloss.Style
	InputTextStyle   lipgloss.Style
}

// NewStyles builds the styles for cfg's theme.
func NewStyles(cfg *config.Config) *Styles {
	return NewStylesFromTheme(&cfg.Theme)
}

// NewStylesFromTheme builds the styles for theme, falling back to the default
// palette for every empty color.
func NewStylesFromTheme(theme *config.ThemeConfig) *Styles {
	s := &Styles{
		ColorPrimary:   colorOrDefault(theme.Primary, defaultPrimary),
		ColorAccent:    colorOrDefault(theme.Accent, defaultAccent),
		ColorMuted:     colorOrDefault(theme.Muted, defaultMuted),
		ColorBg:        colorOrDefault(theme.Background, defaultBackground),
		ColorText:      colorOrDefault(theme.Text, defaultText),
		ColorTextMuted: lipgloss.Color(dimTextColor),
		ColorDanger:    lipgloss.Color(dangerColor),
		ColorWarning:   lipgloss.Color(warningColor),
	}
	s.build()
	return s
}

func colorOrDefault(hex, fallback string) lipgloss.Color {
	if hex == "" {
		return lipgloss.Color(fallback)
	}
	return lipgloss.Color(hex)
}

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func pane(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
}

func (s *Styles) build() {
	highlight := lipgloss.Color(highlightColor)

	s.TitleStyle = fg(s.ColorText).Bold(true).Background(s.ColorPrimary).Padding(0, 1)
	s.DateStyle = fg(s.ColorTextMuted)
	s.TabActiveStyle = fg(s.ColorPrimary).Bold(true)
	s.TabInactiveStyle = fg(s.ColorTextMuted)
	s.StatLabelStyle = fg(s.ColorTextMuted)
	s.StatValueStyle = fg(s.ColorText).Bold(true)

	s.PaneStyle = pane(s.ColorMuted)
	s.PaneFocusedStyle = pane(s.ColorPrimary)
	s.PaneTitleStyle = fg(s.ColorPrimary).Bold(true).MarginBottom(1)
	s.DayHeaderStyle = fg(s.ColorAccent).Bold(true)
	s.DayHeaderTodayStyle = fg(s.ColorWarning).Bold(true).Underline(true)

	s.ActivityStyle = fg(s.ColorText)
	s.ActivitySelectedStyle = fg(s.ColorText).Bold(true).Background(highlight)
	s.ActivityTimeStyle = fg(lipgloss.Color(timeColor))
	s.ActivityDescStyle = fg(s.ColorTextMuted).Italic(true)
	s.TestBadgeStyle = fg(s.ColorDanger).Bold(true)
	s.DateBadgeStyle = fg(s.ColorWarning)
	s.EmptyStyle = fg(s.ColorMuted).Italic(true)

	s.GridLabelStyle = fg(s.ColorTextMuted)
	s.GridCellStyle = fg(s.ColorText)
	s.GridBlockStyle = fg(s.ColorText).Background(highlight)

	s.HelpStyle = fg(s.ColorTextMuted)
	s.HelpKeyStyle = fg(s.ColorAccent).Bold(true)
	s.StatusStyle = fg(lipgloss.Color(successColor)).Italic(true)
	s.ErrorStyle = fg(s.ColorDanger).Bold(true)

	s.InputPromptStyle = fg(s.ColorPrimary).Bold(true)
	s.InputLabelStyle = fg(s.ColorTextMuted).Width(16)
	s.InputTextStyle = fg(s.ColorText)
}

// RenderHelp renders key/description pairs as "[key] desc". A trailing key
// without a description is dropped.
func (s *Styles) RenderHelp(pairs ...string) string {
	var out string
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			out += "  "
		}
		out += s.HelpKeyStyle.Render("["+pairs[i]+"]") + " " + s.HelpStyle.Render(pairs[i+1])
	}
	return out
}
