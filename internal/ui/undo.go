// Package ui provides the terminal interface for weekplan.
// This file implements undo/redo as whole-state snapshots: each undoable
// edit records the store state before and after it.
package ui

import (
	"sync"

	"weekplan/internal/schedule"

	"github.com/mattn/go-runewidth"
)

// defaultHistoryLimit bounds how many edits can be undone.
const defaultHistoryLimit = 50

// snapshot is one recorded edit.
type snapshot struct {
	desc   string
	before schedule.State
	after  schedule.State
}

// History is the undo/redo log of a store. Undo puts the store back to the
// state before an edit; redo reapplies the state after it. Both replace the
// whole state, so the current-schedule pointer and view mode travel with it.
type History struct {
	store *schedule.Store
	limit int

	mu     sync.Mutex
	past   []snapshot // oldest first
	future []snapshot // most recently undone last
}

// NewHistory creates an empty history for store keeping at most limit
// edits. A limit of zero or less uses the default.
func NewHistory(store *schedule.Store, limit int) *History {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &History{store: store, limit: limit}
}

// Record logs an edit. Anything previously undone can no longer be redone.
func (h *History) Record(desc string, before, after schedule.State) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.future = nil
	if len(h.past) >= h.limit {
		h.past = h.past[len(h.past)-h.limit+1:]
	}
	h.past = append(h.past, snapshot{desc: desc, before: before, after: after})
}

// CanUndo reports whether an edit is available to undo.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.past) > 0
}

// CanRedo reports whether an undone edit is available to redo.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.future) > 0
}

// Undo restores the state before the latest edit and returns its
// description. It returns "" with a nil error when there is nothing to undo.
// A failed restore leaves the edit in place.
func (h *History) Undo() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.past) == 0 {
		return "", nil
	}
	s := h.past[len(h.past)-1]
	if err := h.store.Replace(s.before); err != nil {
		return "", err
	}
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, s)
	return s.desc, nil
}

// Redo reapplies the most recently undone edit.
func (h *History) Redo() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.future) == 0 {
		return "", nil
	}
	s := h.future[len(h.future)-1]
	if err := h.store.Replace(s.after); err != nil {
		return "", err
	}
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, s)
	return s.desc, nil
}

// Clear forgets every recorded edit.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.past = nil
	h.future = nil
}

// truncateText shortens text to maxLen cells with ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	return runewidth.Truncate(text, maxLen, "..")
}
