package schedule

// DefaultScheduleID is the id of the schedule created on first run and by ClearAll.
const DefaultScheduleID = "default"

// DefaultState is the state shown before anything has been saved: one
// sample semester schedule.
func DefaultState() State {
	days := EmptyDays()
	days[0].Activities = []Activity{
		{
			ID:          "mon-1",
			Name:        "Mobile Development",
			Time:        "8:00 AM - 10:30 AM",
			Description: "Mobile app development fundamentals",
			UpcomingTests: []string{
				"March 15, 2024 - Midterm Exam",
				"April 20, 2024 - Final Project Due",
			},
			ImportantDates: []string{
				"March 1, 2024 - Assignment 2 Due",
				"March 8, 2024 - Lab Report Due",
			},
		},
		{
			ID:          "mon-2",
			Name:        "Mobile Development",
			Time:        "11:00 AM - 12:00 PM",
			Description: "Practical session and lab work",
			UpcomingTests: []string{
				"March 15, 2024 - Midterm Exam",
				"April 20, 2024 - Final Project Due",
			},
			ImportantDates: []string{
				"March 1, 2024 - Assignment 2 Due",
				"March 8, 2024 - Lab Report Due",
			},
		},
		{
			ID:          "mon-3",
			Name:        "Machine Learning and Deep Learning",
			Time:        "12:40 PM - 2:00 PM",
			Description: "Lab3-Esp-Face",
			UpcomingTests: []string{
				"March 10, 2024 - Quiz 2",
				"March 25, 2024 - Project Presentation",
			},
			ImportantDates: []string{
				"February 28, 2024 - Lab3 Report Due",
				"March 5, 2024 - Dataset Submission",
			},
		},
		{
			ID:            "mon-4",
			Name:          "Daily Finance",
			Time:          "4:00 PM - 4:30 PM",
			Description:   "Personal finance management",
			UpcomingTests: []string{},
			ImportantDates: []string{
				"March 1, 2024 - Budget Review",
				"March 15, 2024 - Investment Analysis",
			},
		},
	}
	days[1].Activities = []Activity{
		{
			ID:          "tue-1",
			Name:        "Web Development",
			Time:        "8:00 AM - 9:00 AM",
			Description: "Frontend and backend development",
			UpcomingTests: []string{
				"March 12, 2024 - Practical Exam",
				"April 5, 2024 - Final Project",
			},
			ImportantDates: []string{
				"March 3, 2024 - Portfolio Due",
				"March 18, 2024 - Code Review",
			},
		},
		{
			ID:            "tue-2",
			Name:          "Degree Project",
			Time:          "9:40 AM - 11:00 AM",
			Description:   "Final degree project work and supervision",
			UpcomingTests: []string{},
			ImportantDates: []string{
				"March 7, 2024 - Progress Report",
				"March 21, 2024 - Supervisor Meeting",
				"April 30, 2024 - Final Submission",
			},
		},
	}

	return State{
		Schedules: []Schedule{{
			ID:          DefaultScheduleID,
			Name:        "Spring 2024 Semester",
			Description: "Current semester schedule",
			Data:        days,
		}},
		CurrentScheduleID: DefaultScheduleID,
		ViewMode:          ViewWeekly,
	}
}

// BlankState is a single empty schedule; it is what ClearAll leaves behind
// and what first run produces when sample data is disabled.
func BlankState() State {
	return State{
		Schedules: []Schedule{{
			ID:          DefaultScheduleID,
			Name:        "New Schedule",
			Description: "Start fresh with a new schedule",
			Data:        EmptyDays(),
		}},
		CurrentScheduleID: DefaultScheduleID,
		ViewMode:          ViewWeekly,
	}
}
