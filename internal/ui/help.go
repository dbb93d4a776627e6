package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a help screen
type HelpOverlay struct {
	width  int
	height int
	styles *Styles

	global    GlobalKeyMap
	activity  ActivityKeyMap
	schedules ScheduleKeyMap
	input     InputKeyMap
}

// NewHelpOverlay creates a help overlay listing the default bindings.
func NewHelpOverlay(styles *Styles) *HelpOverlay {
	return &HelpOverlay{
		styles:    styles,
		global:    DefaultGlobalKeyMap(),
		activity:  DefaultActivityKeyMap(),
		schedules: DefaultScheduleKeyMap(),
		input:     DefaultInputKeyMap(),
	}
}

// SetKeys makes the overlay show customized bindings.
func (h *HelpOverlay) SetKeys(global GlobalKeyMap, activity ActivityKeyMap, schedules ScheduleKeyMap, input InputKeyMap) {
	h.global = global
	h.activity = activity
	h.schedules = schedules
	h.input = input
}

// SetSize sets the overlay dimensions
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// keyNames joins every key of a binding, e.g. "ctrl+z / u".
func keyNames(b key.Binding) string {
	return strings.Join(b.Keys(), " / ")
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	overlayWidth := 60
	if h.width > 0 {
		overlayWidth = min(60, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(16)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	mutedStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorTextMuted).
		Italic(true)

	var b strings.Builder
	line := func(keys, desc string) {
		b.WriteString(keyStyle.Render(keys) + descStyle.Render(desc) + "\n")
	}
	section := func(title string) {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(title))
		b.WriteString("\n")
	}

	b.WriteString(titleStyle.Render("weekplan - Keyboard Shortcuts"))
	b.WriteString("\n")

	section("Views")
	line(keyNames(h.global.ViewDaily)+" / "+keyNames(h.global.ViewWeekly)+" / "+keyNames(h.global.ViewGrid), "Daily / weekly / grid")
	line(keyNames(h.global.CycleView), "Next view")
	line(keyNames(h.activity.PrevDay)+" / "+keyNames(h.activity.NextDay), "Previous / next day")
	line(keyNames(h.activity.Up)+" / "+keyNames(h.activity.Down), "Select activity")
	line(keyNames(h.activity.Top)+" / "+keyNames(h.activity.Bottom), "First / last activity")

	section("Activities")
	line(keyNames(h.activity.Add), "Add activity")
	line(keyNames(h.activity.Edit), "Edit activity")
	line(keyNames(h.activity.Delete), "Delete activity")

	section("Schedules")
	line(keyNames(h.schedules.Prev)+" / "+keyNames(h.schedules.Next), "Previous / next schedule")
	line(keyNames(h.schedules.New), "New schedule")
	line(keyNames(h.schedules.Duplicate), "Duplicate schedule")
	line(keyNames(h.schedules.Delete), "Delete schedule")
	line(keyNames(h.schedules.ClearAll), "Clear all schedules")

	section("General")
	line(keyNames(h.global.Export), "Export backup file")
	line(keyNames(h.global.Undo), "Undo")
	line(keyNames(h.global.Redo), "Redo")
	line(keyNames(h.global.Help), "Toggle help")
	line(keyNames(h.global.Quit), "Quit")

	section("Forms")
	line(keyNames(h.input.NextField)+" / "+keyNames(h.input.PrevField), "Next / previous field")
	line(keyNames(h.input.Confirm), "Save")
	line(keyNames(h.input.Cancel), "Cancel")

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press ? or Esc to close"))

	content := overlayStyle.Render(b.String())

	return lipgloss.Place(
		h.width,
		h.height,
		lipgloss.Center,
		lipgloss.Center,
		content,
	)
}

// RenderCentered centers content in the terminal
func RenderCentered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
