package schedule

// Clone returns a deep copy of the state. The copy shares no slices with s,
// so edits to either side never leak into the other.
func (s State) Clone() State {
	out := State{
		CurrentScheduleID: s.CurrentScheduleID,
		ViewMode:          s.ViewMode,
		Schedules:         make([]Schedule, len(s.Schedules)),
	}
	for i, sch := range s.Schedules {
		out.Schedules[i] = sch.Clone()
	}
	return out
}

// Clone returns a deep copy of the schedule.
func (s Schedule) Clone() Schedule {
	out := s
	out.Data = cloneDays(s.Data)
	return out
}

// Clone returns a deep copy of the activity.
func (a Activity) Clone() Activity {
	out := a
	out.UpcomingTests = cloneStrings(a.UpcomingTests)
	out.ImportantDates = cloneStrings(a.ImportantDates)
	return out
}

func cloneDays(days []DaySchedule) []DaySchedule {
	if days == nil {
		return nil
	}
	out := make([]DaySchedule, len(days))
	for i, d := range days {
		out[i] = DaySchedule{Day: d.Day, Activities: make([]Activity, len(d.Activities))}
		for j, a := range d.Activities {
			out[i].Activities[j] = a.Clone()
		}
	}
	return out
}

// cloneStrings copies a string slice, normalizing nil to empty.
func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// normalize replaces nil sequences with empty ones so the state always
// serializes with [] rather than null.
func (s *State) normalize() {
	if s.Schedules == nil {
		s.Schedules = []Schedule{}
	}
	for i := range s.Schedules {
		for j := range s.Schedules[i].Data {
			day := &s.Schedules[i].Data[j]
			if day.Activities == nil {
				day.Activities = []Activity{}
			}
			for k := range day.Activities {
				a := &day.Activities[k]
				if a.UpcomingTests == nil {
					a.UpcomingTests = []string{}
				}
				if a.ImportantDates == nil {
					a.ImportantDates = []string{}
				}
			}
		}
	}
}

// Normalize returns a copy of s with every nil sequence replaced by an empty
// one. Loaders call it on decoded data.
func Normalize(s State) State {
	out := s.Clone()
	out.normalize()
	return out
}
