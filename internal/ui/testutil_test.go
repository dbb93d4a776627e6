package ui

import (
	"testing"
	"time"

	"weekplan/internal/config"
	"weekplan/internal/schedule"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// testNow is a Monday morning.
var testNow = time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)

// setupTest prepares the test environment for deterministic rendering.
func setupTest(t *testing.T) {
	t.Helper()
	// Use ASCII profile to disable all color codes in output
	lipgloss.SetColorProfile(termenv.Ascii)
}

// createTestStore creates a store holding the sample week.
func createTestStore(t *testing.T) *schedule.Store {
	t.Helper()
	store := schedule.NewStore(schedule.DefaultState())
	store.SetNowFunc(func() time.Time { return testNow })
	return store
}

// createTestStyles creates a default Styles instance for testing.
func createTestStyles() *Styles {
	return NewStylesFromTheme(&config.ThemeConfig{})
}

// newTestApp builds an app over the sample week at a wide terminal size.
func newTestApp(t *testing.T) (*App, *schedule.Store) {
	t.Helper()
	setupTest(t)
	store := createTestStore(t)
	app := NewApp(store, createTestStyles(), &AppConfig{
		Keys:                  &config.KeysConfig{},
		ConfirmDeletions:      true,
		ConfirmClear:          true,
		NarrowLayoutThreshold: 100,
		ExportDir:             t.TempDir(),
		Now:                   func() time.Time { return testNow },
	})
	app.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return app, store
}

// keyMsg builds the key message bubbletea would deliver for k.
func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "ctrl+z":
		return tea.KeyMsg{Type: tea.KeyCtrlZ}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key and runs the store commands they return, feeding
// the results back into the app.
func press(t *testing.T, a *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, cmd := a.Update(keyMsg(k))
		drain(a, cmd)
	}
}

// typeText types s into the focused form field. Cursor blink commands are
// dropped.
func typeText(a *App, s string) {
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func drain(a *App, cmd tea.Cmd) {
	for cmd != nil {
		switch msg := cmd().(type) {
		case tea.BatchMsg:
			for _, c := range msg {
				drain(a, c)
			}
			return
		case activitySavedMsg, activityDeletedMsg, scheduleChangedMsg, scheduleSelectedMsg,
			viewModeChangedMsg, clearedMsg, exportedMsg, undoResultMsg, redoResultMsg:
			_, cmd = a.Update(msg)
		default:
			return
		}
	}
}
