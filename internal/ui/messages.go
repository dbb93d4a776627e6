// Package ui provides the terminal interface for weekplan.
// This file defines the result messages of the store commands in
// commands.go. Every mutation reports the state before and after it so
// the app can record an undo step.
package ui

import (
	"weekplan/internal/schedule"
)

// =============================================================================
// Undo/Redo Messages
// =============================================================================

// undoResultMsg is sent when an undo operation completes.
type undoResultMsg struct {
	desc string
	err  error
}

// redoResultMsg is sent when a redo operation completes.
type redoResultMsg struct {
	desc string
	err  error
}

// =============================================================================
// Activity Messages
// =============================================================================

// activitySavedMsg is sent when an activity is added or edited.
type activitySavedMsg struct {
	activity schedule.Activity
	day      string
	edited   bool
	before   schedule.State
	after    schedule.State
	err      error
}

// activityDeletedMsg is sent when an activity is removed.
type activityDeletedMsg struct {
	name   string
	before schedule.State
	after  schedule.State
	err    error
}

// =============================================================================
// Schedule Messages
// =============================================================================

// scheduleOp names the schedule mutation behind a scheduleChangedMsg.
type scheduleOp string

const (
	opCreated    scheduleOp = "Created"
	opDuplicated scheduleOp = "Duplicated"
	opDeleted    scheduleOp = "Deleted"
)

// scheduleChangedMsg is sent when a schedule is created, duplicated or
// deleted.
type scheduleChangedMsg struct {
	op       scheduleOp
	schedule schedule.Schedule
	before   schedule.State
	after    schedule.State
	err      error
}

// scheduleSelectedMsg is sent when the current schedule pointer moves.
// Selection is navigation and is not recorded for undo.
type scheduleSelectedMsg struct {
	id string
}

// viewModeChangedMsg is sent when the persisted view mode changes.
type viewModeChangedMsg struct {
	mode schedule.ViewMode
	err  error
}

// clearedMsg is sent when every schedule has been wiped.
type clearedMsg struct {
	before schedule.State
	after  schedule.State
}

// =============================================================================
// Export Messages
// =============================================================================

// exportedMsg is sent when a backup file has been written.
type exportedMsg struct {
	path string
	err  error
}
