// Package ui provides the terminal interface for weekplan.
// This file contains tea.Cmd factories that wrap store operations. Each
// command returns a corresponding message type defined in messages.go.
// Disk writes happen behind the store's change hook, off the event loop.
package ui

import (
	"fmt"
	"path/filepath"
	"time"

	"weekplan/internal/fsutil"
	"weekplan/internal/schedule"
	"weekplan/internal/storage"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// Activity Commands
// =============================================================================

// addActivityCmd returns a command that adds an activity to day.
func addActivityCmd(store *schedule.Store, day string, draft schedule.ActivityDraft) tea.Cmd {
	return func() tea.Msg {
		a, ev, err := store.Track().AddActivity(day, draft)
		if err != nil {
			return activitySavedMsg{err: err}
		}
		return activitySavedMsg{activity: a, day: activityDay(ev.State, a.ID), before: ev.Before, after: ev.State}
	}
}

// editActivityCmd returns a command that patches an existing activity.
func editActivityCmd(store *schedule.Store, id string, patch schedule.ActivityPatch) tea.Cmd {
	return func() tea.Msg {
		a, ev, err := store.Track().EditActivity(id, patch)
		if err != nil {
			return activitySavedMsg{edited: true, err: err}
		}
		return activitySavedMsg{activity: a, day: activityDay(ev.State, a.ID), edited: true, before: ev.Before, after: ev.State}
	}
}

// deleteActivityCmd returns a command that removes an activity.
func deleteActivityCmd(store *schedule.Store, id string) tea.Cmd {
	return func() tea.Msg {
		ev, err := store.Track().DeleteActivity(id)
		if err != nil {
			return activityDeletedMsg{err: err}
		}
		return activityDeletedMsg{name: ev.ItemName, before: ev.Before, after: ev.State}
	}
}

// activityDay returns the weekday holding id in the current schedule of st.
func activityDay(st schedule.State, id string) string {
	sch, ok := st.Find(st.CurrentScheduleID)
	if !ok {
		return ""
	}
	for _, d := range sch.Data {
		for _, a := range d.Activities {
			if a.ID == id {
				return d.Day
			}
		}
	}
	return ""
}

// =============================================================================
// Schedule Commands
// =============================================================================

// createScheduleCmd returns a command that creates and selects a schedule.
func createScheduleCmd(store *schedule.Store, name, description string) tea.Cmd {
	return func() tea.Msg {
		sch, ev, err := store.Track().CreateSchedule(name, description)
		if err != nil {
			return scheduleChangedMsg{op: opCreated, err: err}
		}
		return scheduleChangedMsg{op: opCreated, schedule: sch, before: ev.Before, after: ev.State}
	}
}

// duplicateScheduleCmd returns a command that copies a schedule.
func duplicateScheduleCmd(store *schedule.Store, id string) tea.Cmd {
	return func() tea.Msg {
		sch, ev, err := store.Track().DuplicateSchedule(id)
		if err != nil {
			return scheduleChangedMsg{op: opDuplicated, err: err}
		}
		return scheduleChangedMsg{op: opDuplicated, schedule: sch, before: ev.Before, after: ev.State}
	}
}

// deleteScheduleCmd returns a command that removes a schedule.
func deleteScheduleCmd(store *schedule.Store, id string) tea.Cmd {
	return func() tea.Msg {
		ev, err := store.Track().DeleteSchedule(id)
		if err != nil {
			return scheduleChangedMsg{op: opDeleted, err: err}
		}
		var deleted schedule.Schedule
		if sch, ok := ev.Before.Find(id); ok {
			deleted = *sch
		}
		return scheduleChangedMsg{op: opDeleted, schedule: deleted, before: ev.Before, after: ev.State}
	}
}

// selectScheduleCmd returns a command that makes id current.
func selectScheduleCmd(store *schedule.Store, id string) tea.Cmd {
	return func() tea.Msg {
		store.SelectSchedule(id)
		return scheduleSelectedMsg{id: id}
	}
}

// setViewModeCmd returns a command that persists the view mode.
func setViewModeCmd(store *schedule.Store, mode schedule.ViewMode) tea.Cmd {
	return func() tea.Msg {
		err := store.SetViewMode(mode)
		return viewModeChangedMsg{mode: mode, err: err}
	}
}

// clearAllCmd returns a command that resets the store to a single blank
// schedule.
func clearAllCmd(store *schedule.Store) tea.Cmd {
	return func() tea.Msg {
		ev := store.Track().ClearAll()
		return clearedMsg{before: ev.Before, after: ev.State}
	}
}

// =============================================================================
// Export Commands
// =============================================================================

// exportCmd returns a command that writes schedule-backup-YYYY-MM-DD.json
// into dir.
func exportCmd(store *schedule.Store, dir string, now time.Time) tea.Cmd {
	return func() tea.Msg {
		data, err := storage.Export(store.Snapshot())
		if err != nil {
			return exportedMsg{err: err}
		}
		path := filepath.Join(dir, storage.ExportFilename(now))
		if err := fsutil.WriteFileAtomic(path, data, fsutil.FilePerm); err != nil {
			return exportedMsg{path: path, err: fmt.Errorf("write %s: %w", path, err)}
		}
		return exportedMsg{path: path}
	}
}

// =============================================================================
// Undo/Redo Commands
// =============================================================================

func undoCmd(h *History) tea.Cmd {
	return func() tea.Msg {
		desc, err := h.Undo()
		return undoResultMsg{desc: desc, err: err}
	}
}

func redoCmd(h *History) tea.Cmd {
	return func() tea.Msg {
		desc, err := h.Redo()
		return redoResultMsg{desc: desc, err: err}
	}
}
