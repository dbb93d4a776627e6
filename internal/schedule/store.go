// Package schedule holds the weekly schedule data model and the Store that
// edits it. The Store enforces the model's invariants: every schedule has
// the seven weekdays in order, activity ids are unique across the store,
// and there is always at least one schedule.
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Validation rejections. The store is left untouched when one is returned.
var (
	ErrNameRequired      = errors.New("name is required")
	ErrTimeRequired      = errors.New("time is required")
	ErrDayRequired       = errors.New("day is required")
	ErrUnknownDay        = errors.New("unknown day")
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrActivityNotFound  = errors.New("activity not found")
	ErrLastSchedule      = errors.New("cannot delete the last schedule")
	ErrInvalidViewMode   = errors.New("invalid view mode")
	ErrNoCurrentSchedule = errors.New("current schedule does not exist")
)

// ChangeEvent describes a completed mutation. It carries deep copies of the
// state on both sides of it, so listeners may keep them without
// synchronization.
type ChangeEvent struct {
	Seq       uint64 // commit order, starting at 1
	Operation string // "create", "duplicate", "delete", "select", "add", "edit", "remove", "view", "clear", "replace"
	ItemType  string // "schedule", "activity", "store"
	ItemName  string // schedule or activity name, truncated
	Before    State
	State     State
}

// Description renders the event as a short human-readable line,
// e.g. "add activity: Web Development".
func (e ChangeEvent) Description() string {
	if e.ItemName == "" {
		return e.Operation + " " + e.ItemType
	}
	return fmt.Sprintf("%s %s: %s", e.Operation, e.ItemType, e.ItemName)
}

// Store owns the in-memory schedule state. All methods are safe for
// concurrent use and atomic from the caller's point of view.
type Store struct {
	mu       sync.Mutex
	state    State
	now      func() time.Time
	onChange func(ChangeEvent)
	seq      uint64

	// Change events are delivered one at a time in Seq order.
	deliverMu   sync.Mutex
	deliverCond *sync.Cond
	delivered   uint64
}

// NewStore creates a store holding a copy of initial. A state that fails
// Validate is replaced by DefaultState.
func NewStore(initial State) *Store {
	st := Normalize(initial)
	if Validate(st) != nil {
		st = DefaultState()
	}
	s := &Store{state: st, now: time.Now}
	s.deliverCond = sync.NewCond(&s.deliverMu)
	return s
}

// SetNowFunc overrides the clock used for id generation. Passing nil resets
// it to time.Now.
func (s *Store) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// SetOnChange registers the callback invoked after every successful
// mutation. Persistence write-through hangs off this hook. Calls never
// overlap and arrive in commit order. The callback may read the store but
// must not mutate it.
func (s *Store) SetOnChange(fn func(ChangeEvent)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// commit must be called with s.mu held, after the mutation. It returns the
// event and the delivery to run once the lock is released; every commit
// must be followed by its delivery.
func (s *Store) commit(before State, op, itemType, itemName string) (ChangeEvent, func()) {
	s.seq++
	ev := ChangeEvent{
		Seq:       s.seq,
		Operation: op,
		ItemType:  itemType,
		ItemName:  truncate(itemName, 50),
		Before:    before,
		State:     s.state.Clone(),
	}
	fn := s.onChange
	return ev, func() { s.deliver(ev, fn) }
}

// deliver waits for every earlier event to be delivered, then hands ev to fn.
func (s *Store) deliver(ev ChangeEvent, fn func(ChangeEvent)) {
	s.deliverMu.Lock()
	for s.delivered+1 != ev.Seq {
		s.deliverCond.Wait()
	}
	s.deliverMu.Unlock()

	defer func() {
		s.deliverMu.Lock()
		s.delivered = ev.Seq
		s.deliverCond.Broadcast()
		s.deliverMu.Unlock()
	}()
	if fn != nil {
		fn(ev)
	}
}

func truncate(s string, maxLen int) string {
	if len([]rune(s)) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-1]) + "…"
}

// Snapshot returns a deep copy of the whole state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Current returns a copy of the current schedule. ok is false when the
// current pointer does not resolve.
func (s *Store) Current() (Schedule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sch, ok := s.state.Find(s.state.CurrentScheduleID)
	if !ok {
		return Schedule{}, false
	}
	return sch.Clone(), true
}

// CurrentDays returns the days of the current schedule, or seven empty days
// when the current pointer is dangling.
func (s *Store) CurrentDays() []DaySchedule {
	if sch, ok := s.Current(); ok {
		return sch.Data
	}
	return EmptyDays()
}

// CreateSchedule appends an empty schedule and makes it current.
func (s *Store) CreateSchedule(name, description string) (Schedule, error) {
	sch, _, err := s.createSchedule(name, description)
	return sch, err
}

func (s *Store) createSchedule(name, description string) (Schedule, ChangeEvent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Schedule{}, ChangeEvent{}, ErrNameRequired
	}

	s.mu.Lock()
	before := s.state.Clone()
	sch := Schedule{
		ID:          s.uniqueScheduleID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Data:        EmptyDays(),
	}
	s.state.Schedules = append(s.state.Schedules, sch)
	s.state.CurrentScheduleID = sch.ID
	ev, notify := s.commit(before, "create", "schedule", sch.Name)
	s.mu.Unlock()

	notify()
	return sch.Clone(), ev, nil
}

// DuplicateSchedule deep-copies a schedule under the name "<name> (Copy)",
// appends it and makes it current. Activity ids in the copy are
// regenerated so they stay unique across the store.
func (s *Store) DuplicateSchedule(id string) (Schedule, error) {
	dup, _, err := s.duplicateSchedule(id)
	return dup, err
}

func (s *Store) duplicateSchedule(id string) (Schedule, ChangeEvent, error) {
	s.mu.Lock()
	src, ok := s.state.Find(id)
	if !ok {
		s.mu.Unlock()
		return Schedule{}, ChangeEvent{}, fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}

	before := s.state.Clone()
	dup := src.Clone()
	dup.ID = s.uniqueScheduleID()
	dup.Name = src.Name + " (Copy)"
	for i := range dup.Data {
		for j := range dup.Data[i].Activities {
			dup.Data[i].Activities[j].ID = s.uniqueActivityID(dup.Data[i].Day, &dup)
		}
	}

	s.state.Schedules = append(s.state.Schedules, dup)
	s.state.CurrentScheduleID = dup.ID
	ev, notify := s.commit(before, "duplicate", "schedule", dup.Name)
	s.mu.Unlock()

	notify()
	return dup.Clone(), ev, nil
}

// DeleteSchedule removes a schedule unless it is the last one. When the
// current schedule is removed, the first remaining schedule becomes current.
func (s *Store) DeleteSchedule(id string) error {
	_, err := s.deleteSchedule(id)
	return err
}

func (s *Store) deleteSchedule(id string) (ChangeEvent, error) {
	s.mu.Lock()
	if len(s.state.Schedules) <= 1 {
		s.mu.Unlock()
		return ChangeEvent{}, ErrLastSchedule
	}

	idx := -1
	for i := range s.state.Schedules {
		if s.state.Schedules[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ChangeEvent{}, fmt.Errorf("%w: %s", ErrScheduleNotFound, id)
	}

	before := s.state.Clone()
	name := s.state.Schedules[idx].Name
	s.state.Schedules = append(s.state.Schedules[:idx], s.state.Schedules[idx+1:]...)
	if s.state.CurrentScheduleID == id {
		s.state.CurrentScheduleID = ""
		if len(s.state.Schedules) > 0 {
			s.state.CurrentScheduleID = s.state.Schedules[0].ID
		}
	}
	ev, notify := s.commit(before, "delete", "schedule", name)
	s.mu.Unlock()

	notify()
	return ev, nil
}

// SelectSchedule moves the current pointer. The id is not checked; readers
// fall back to an empty week when it does not resolve.
func (s *Store) SelectSchedule(id string) {
	s.mu.Lock()
	before := s.state.Clone()
	s.state.CurrentScheduleID = id
	name := id
	if sch, ok := s.state.Find(id); ok {
		name = sch.Name
	}
	_, notify := s.commit(before, "select", "schedule", name)
	s.mu.Unlock()

	notify()
}

// SetViewMode changes the presentation mode.
func (s *Store) SetViewMode(mode ViewMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidViewMode, mode)
	}

	s.mu.Lock()
	before := s.state.Clone()
	s.state.ViewMode = mode
	_, notify := s.commit(before, "view", "store", string(mode))
	s.mu.Unlock()

	notify()
	return nil
}

// ViewMode returns the current presentation mode.
func (s *Store) ViewMode() ViewMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ViewMode
}

// AddActivity appends a new activity to a day of the current schedule.
func (s *Store) AddActivity(day string, draft ActivityDraft) (Activity, error) {
	a, _, err := s.addActivity(day, draft)
	return a, err
}

func (s *Store) addActivity(day string, draft ActivityDraft) (Activity, ChangeEvent, error) {
	name := strings.TrimSpace(draft.Name)
	timeRange := strings.TrimSpace(draft.Time)
	switch {
	case strings.TrimSpace(day) == "":
		return Activity{}, ChangeEvent{}, ErrDayRequired
	case name == "":
		return Activity{}, ChangeEvent{}, ErrNameRequired
	case timeRange == "":
		return Activity{}, ChangeEvent{}, ErrTimeRequired
	}

	canonicalDay := CanonicalDay(day)
	if canonicalDay == "" {
		return Activity{}, ChangeEvent{}, fmt.Errorf("%w: %s", ErrUnknownDay, day)
	}

	s.mu.Lock()
	sch, ok := s.state.Find(s.state.CurrentScheduleID)
	if !ok {
		s.mu.Unlock()
		return Activity{}, ChangeEvent{}, ErrNoCurrentSchedule
	}

	before := s.state.Clone()
	activity := Activity{
		ID:             s.uniqueActivityID(canonicalDay, nil),
		Name:           name,
		Time:           timeRange,
		Description:    strings.TrimSpace(draft.Description),
		UpcomingTests:  cloneStrings(draft.UpcomingTests),
		ImportantDates: cloneStrings(draft.ImportantDates),
	}

	i := DayIndex(canonicalDay)
	sch.Data[i].Activities = append(sch.Data[i].Activities, activity)
	ev, notify := s.commit(before, "add", "activity", activity.Name)
	s.mu.Unlock()

	notify()
	return activity.Clone(), ev, nil
}

// EditActivity merges patch over the activity with the given id in the
// current schedule. The activity stays in its day; moving it means deleting
// and re-adding.
func (s *Store) EditActivity(id string, patch ActivityPatch) (Activity, error) {
	a, _, err := s.editActivity(id, patch)
	return a, err
}

func (s *Store) editActivity(id string, patch ActivityPatch) (Activity, ChangeEvent, error) {
	s.mu.Lock()
	target := s.findCurrentActivity(id)
	if target == nil {
		s.mu.Unlock()
		return Activity{}, ChangeEvent{}, fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}

	merged := target.Clone()
	if patch.Name != nil {
		merged.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Time != nil {
		merged.Time = strings.TrimSpace(*patch.Time)
	}
	if patch.Description != nil {
		merged.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.SetUpcomingTests || patch.UpcomingTests != nil {
		merged.UpcomingTests = cloneStrings(patch.UpcomingTests)
	}
	if patch.SetImportantDates || patch.ImportantDates != nil {
		merged.ImportantDates = cloneStrings(patch.ImportantDates)
	}

	if merged.Name == "" {
		s.mu.Unlock()
		return Activity{}, ChangeEvent{}, ErrNameRequired
	}
	if merged.Time == "" {
		s.mu.Unlock()
		return Activity{}, ChangeEvent{}, ErrTimeRequired
	}

	before := s.state.Clone()
	*target = merged
	ev, notify := s.commit(before, "edit", "activity", merged.Name)
	s.mu.Unlock()

	notify()
	return merged.Clone(), ev, nil
}

// DeleteActivity removes the activity with the given id from whichever day
// of the current schedule holds it.
func (s *Store) DeleteActivity(id string) error {
	_, err := s.deleteActivity(id)
	return err
}

func (s *Store) deleteActivity(id string) (ChangeEvent, error) {
	s.mu.Lock()
	sch, ok := s.state.Find(s.state.CurrentScheduleID)
	if !ok {
		s.mu.Unlock()
		return ChangeEvent{}, fmt.Errorf("%w: %s", ErrActivityNotFound, id)
	}

	for i := range sch.Data {
		acts := sch.Data[i].Activities
		for j := range acts {
			if acts[j].ID != id {
				continue
			}
			before := s.state.Clone()
			name := acts[j].Name
			sch.Data[i].Activities = append(acts[:j:j], acts[j+1:]...)
			ev, notify := s.commit(before, "remove", "activity", name)
			s.mu.Unlock()

			notify()
			return ev, nil
		}
	}

	s.mu.Unlock()
	return ChangeEvent{}, fmt.Errorf("%w: %s", ErrActivityNotFound, id)
}

// FindActivity looks up an activity of the current schedule by id and
// returns a copy along with its day.
func (s *Store) FindActivity(id string) (Activity, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sch, ok := s.state.Find(s.state.CurrentScheduleID)
	if !ok {
		return Activity{}, "", false
	}
	for _, d := range sch.Data {
		for _, a := range d.Activities {
			if a.ID == id {
				return a.Clone(), d.Day, true
			}
		}
	}
	return Activity{}, "", false
}

// ClearAll replaces everything with a single blank schedule in weekly view.
// Callers confirm with the user first.
func (s *Store) ClearAll() {
	s.clearAll()
}

func (s *Store) clearAll() ChangeEvent {
	s.mu.Lock()
	before := s.state.Clone()
	s.state = BlankState()
	ev, notify := s.commit(before, "clear", "store", "")
	s.mu.Unlock()

	notify()
	return ev
}

// Replace swaps in a whole new state, as import, restore and undo do. The
// state is validated first; on error nothing changes.
func (s *Store) Replace(next State) error {
	next = Normalize(next)
	if err := Validate(next); err != nil {
		return err
	}

	s.mu.Lock()
	before := s.state.Clone()
	s.state = next
	_, notify := s.commit(before, "replace", "store", "")
	s.mu.Unlock()

	notify()
	return nil
}

// findCurrentActivity must be called with s.mu held.
func (s *Store) findCurrentActivity(id string) *Activity {
	sch, ok := s.state.Find(s.state.CurrentScheduleID)
	if !ok {
		return nil
	}
	for i := range sch.Data {
		for j := range sch.Data[i].Activities {
			if sch.Data[i].Activities[j].ID == id {
				return &sch.Data[i].Activities[j]
			}
		}
	}
	return nil
}

// uniqueActivityID must be called with s.mu held. pending is a schedule not
// yet part of the state whose ids must also be avoided.
func (s *Store) uniqueActivityID(day string, pending *Schedule) string {
	for {
		id := newActivityID(day, s.now())
		if !s.activityIDTaken(id, pending) {
			return id
		}
	}
}

func (s *Store) activityIDTaken(id string, pending *Schedule) bool {
	schedules := s.state.Schedules
	if pending != nil {
		schedules = append(schedules[:len(schedules):len(schedules)], *pending)
	}
	for _, sch := range schedules {
		for _, d := range sch.Data {
			for _, a := range d.Activities {
				if a.ID == id {
					return true
				}
			}
		}
	}
	return false
}

// uniqueScheduleID must be called with s.mu held.
func (s *Store) uniqueScheduleID() string {
	for {
		id := newScheduleID()
		if _, taken := s.state.Find(id); !taken {
			return id
		}
	}
}
