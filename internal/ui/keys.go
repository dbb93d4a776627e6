// Package ui provides the terminal interface for weekplan.
// This file defines key bindings using the Bubble Tea key package for
// type-safe key matching, help text generation, and user customization.
package ui

import (
	"strings"

	"weekplan/internal/config"

	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// Helpers
// =============================================================================

// parseKeys splits a comma-separated string into individual keys.
// If the input is empty, returns the default keys.
func parseKeys(customKeys string, defaultKeys ...string) []string {
	if customKeys == "" {
		return defaultKeys
	}
	keys := strings.Split(customKeys, ",")
	result := make([]string, 0, len(keys))
	for _, k := range keys {
		trimmed := strings.TrimSpace(k)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// helpLabel shows the first bound key, e.g. "ctrl+z" for "ctrl+z,u".
func helpLabel(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}

func binding(custom, desc string, defaults ...string) key.Binding {
	keys := parseKeys(custom, defaults...)
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(helpLabel(keys), desc),
	)
}

// =============================================================================
// Global Keys (available outside forms and dialogs)
// =============================================================================

// GlobalKeyMap defines keys available throughout the application.
type GlobalKeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Undo       key.Binding
	Redo       key.Binding
	ViewDaily  key.Binding
	ViewWeekly key.Binding
	ViewGrid   key.Binding
	CycleView  key.Binding
	Export     key.Binding
}

// DefaultGlobalKeyMap returns the default global key bindings.
func DefaultGlobalKeyMap() GlobalKeyMap {
	return NewGlobalKeyMap(&config.KeysConfig{})
}

// NewGlobalKeyMap creates global key bindings from config.
func NewGlobalKeyMap(cfg *config.KeysConfig) GlobalKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return GlobalKeyMap{
		Quit:       binding(cfg.Quit, "quit", "q", "ctrl+c"),
		Help:       binding(cfg.Help, "help", "?"),
		Undo:       binding(cfg.Undo, "undo", "ctrl+z", "u"),
		Redo:       binding(cfg.Redo, "redo", "ctrl+y"),
		ViewDaily:  binding(cfg.ViewDaily, "daily", "1"),
		ViewWeekly: binding(cfg.ViewWeekly, "weekly", "2"),
		ViewGrid:   binding(cfg.ViewGrid, "grid", "3"),
		CycleView:  binding(cfg.CycleView, "next view", "tab"),
		Export:     binding(cfg.Export, "export", "E"),
	}
}

// =============================================================================
// Navigation Keys
// =============================================================================

// NavigationKeyMap moves the selection between days and activities.
type NavigationKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Top     key.Binding
	Bottom  key.Binding
	PrevDay key.Binding
	NextDay key.Binding
}

// DefaultNavigationKeyMap returns the default navigation key bindings.
func DefaultNavigationKeyMap() NavigationKeyMap {
	return NewNavigationKeyMap(&config.KeysConfig{})
}

// NewNavigationKeyMap creates navigation key bindings from config.
func NewNavigationKeyMap(cfg *config.KeysConfig) NavigationKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return NavigationKeyMap{
		Up:      binding(cfg.Up, "up", "k", "up"),
		Down:    binding(cfg.Down, "down", "j", "down"),
		Top:     binding(cfg.Top, "top", "g"),
		Bottom:  binding(cfg.Bottom, "bottom", "G"),
		PrevDay: binding(cfg.PrevDay, "prev day", "h", "left"),
		NextDay: binding(cfg.NextDay, "next day", "l", "right"),
	}
}

// =============================================================================
// Activity Keys
// =============================================================================

// ActivityKeyMap defines keys that act on the selected activity.
type ActivityKeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	NavigationKeyMap
}

// DefaultActivityKeyMap returns the default activity key bindings.
func DefaultActivityKeyMap() ActivityKeyMap {
	return NewActivityKeyMap(&config.KeysConfig{})
}

// NewActivityKeyMap creates activity key bindings from config.
func NewActivityKeyMap(cfg *config.KeysConfig) ActivityKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return ActivityKeyMap{
		Add:              binding(cfg.AddActivity, "add", "a"),
		Edit:             binding(cfg.EditActivity, "edit", "e", "enter"),
		Delete:           binding(cfg.DeleteActivity, "delete", "x"),
		NavigationKeyMap: NewNavigationKeyMap(cfg),
	}
}

// ShortHelp implements help.KeyMap.
func (k ActivityKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Delete, k.NextDay}
}

// FullHelp implements help.KeyMap.
func (k ActivityKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Edit, k.Delete},
		{k.Up, k.Down, k.Top, k.Bottom, k.PrevDay, k.NextDay},
	}
}

// =============================================================================
// Schedule Keys
// =============================================================================

// ScheduleKeyMap defines keys that manage whole schedules.
type ScheduleKeyMap struct {
	Next      key.Binding
	Prev      key.Binding
	New       key.Binding
	Duplicate key.Binding
	Delete    key.Binding
	ClearAll  key.Binding
}

// DefaultScheduleKeyMap returns the default schedule key bindings.
func DefaultScheduleKeyMap() ScheduleKeyMap {
	return NewScheduleKeyMap(&config.KeysConfig{})
}

// NewScheduleKeyMap creates schedule key bindings from config.
func NewScheduleKeyMap(cfg *config.KeysConfig) ScheduleKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return ScheduleKeyMap{
		Next:      binding(cfg.NextSchedule, "next schedule", "]"),
		Prev:      binding(cfg.PrevSchedule, "prev schedule", "["),
		New:       binding(cfg.NewSchedule, "new schedule", "n"),
		Duplicate: binding(cfg.DuplicateSchedule, "duplicate", "c"),
		Delete:    binding(cfg.DeleteSchedule, "delete schedule", "X"),
		ClearAll:  binding(cfg.ClearAll, "clear all", "ctrl+x"),
	}
}

// ShortHelp implements help.KeyMap.
func (k ScheduleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.New, k.Duplicate}
}

// FullHelp implements help.KeyMap.
func (k ScheduleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.New, k.Duplicate, k.Delete, k.ClearAll},
	}
}

// =============================================================================
// Input Keys (forms)
// =============================================================================

// InputKeyMap defines keys for form input mode.
type InputKeyMap struct {
	Confirm   key.Binding
	Cancel    key.Binding
	NextField key.Binding
	PrevField key.Binding
}

// DefaultInputKeyMap returns the default input key bindings.
func DefaultInputKeyMap() InputKeyMap {
	return NewInputKeyMap(&config.KeysConfig{})
}

// NewInputKeyMap creates input key bindings from config.
func NewInputKeyMap(cfg *config.KeysConfig) InputKeyMap {
	if cfg == nil {
		cfg = &config.KeysConfig{}
	}
	return InputKeyMap{
		Confirm:   binding(cfg.Confirm, "save", "enter"),
		Cancel:    binding(cfg.Cancel, "cancel", "esc"),
		NextField: binding(cfg.NextField, "next field", "tab"),
		PrevField: binding(cfg.PrevField, "prev field", "shift+tab"),
	}
}

// =============================================================================
// Help Overlay Keys
// =============================================================================

// HelpKeyMap defines keys for the help overlay.
type HelpKeyMap struct {
	Close key.Binding
}

// DefaultHelpKeyMap returns the default help overlay key bindings.
func DefaultHelpKeyMap() HelpKeyMap {
	return HelpKeyMap{
		Close: key.NewBinding(
			key.WithKeys("?", "esc", "q", "enter", " "),
			key.WithHelp("any key", "close"),
		),
	}
}
