package schedule

// Tracker runs store mutations and returns the ChangeEvent of each. The
// event's Before and State are captured under the same lock as the mutation,
// so they belong to that edit even when other edits run concurrently.
type Tracker struct {
	s *Store
}

// Track returns a Tracker over s.
func (s *Store) Track() Tracker {
	return Tracker{s: s}
}

// CreateSchedule is Store.CreateSchedule returning its change.
func (t Tracker) CreateSchedule(name, description string) (Schedule, ChangeEvent, error) {
	return t.s.createSchedule(name, description)
}

// DuplicateSchedule is Store.DuplicateSchedule returning its change.
func (t Tracker) DuplicateSchedule(id string) (Schedule, ChangeEvent, error) {
	return t.s.duplicateSchedule(id)
}

// DeleteSchedule is Store.DeleteSchedule returning its change.
func (t Tracker) DeleteSchedule(id string) (ChangeEvent, error) {
	return t.s.deleteSchedule(id)
}

// AddActivity is Store.AddActivity returning its change.
func (t Tracker) AddActivity(day string, draft ActivityDraft) (Activity, ChangeEvent, error) {
	return t.s.addActivity(day, draft)
}

// EditActivity is Store.EditActivity returning its change.
func (t Tracker) EditActivity(id string, patch ActivityPatch) (Activity, ChangeEvent, error) {
	return t.s.editActivity(id, patch)
}

// DeleteActivity is Store.DeleteActivity returning its change.
func (t Tracker) DeleteActivity(id string) (ChangeEvent, error) {
	return t.s.deleteActivity(id)
}

// ClearAll is Store.ClearAll returning its change.
func (t Tracker) ClearAll() ChangeEvent {
	return t.s.clearAll()
}
