// Package timewindow parses the human-readable time ranges stored on
// activities ("8:00 AM - 10:30 AM" or "08:00 - 10:30") into numeric
// intervals for layout math, and converts editor input into the single
// canonical storage form.
package timewindow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Separator divides the start and end side of a time range.
const Separator = " - "

// Window is a half-open interval [start, end) on a 24-hour clock.
type Window struct {
	StartHour    int `json:"startHour"`
	EndHour      int `json:"endHour"`
	StartMinutes int `json:"startMinutes"`
	EndMinutes   int `json:"endMinutes"`
}

// DurationMinutes returns the length of the window in minutes. Windows that
// cross midnight produce a negative duration; callers render them as is.
func (w Window) DurationMinutes() int {
	return (w.EndHour-w.StartHour)*60 + (w.EndMinutes - w.StartMinutes)
}

// Parse converts a time range into a Window. It never fails: numeric
// fragments that do not parse become 0, and a missing end side means one
// hour after the start hour.
func Parse(s string) Window {
	start, end, hasEnd := strings.Cut(s, Separator)

	var w Window
	w.StartHour, w.StartMinutes = parseSide(start)

	if !hasEnd {
		w.EndHour = w.StartHour + 1
		w.EndMinutes = 0
		return w
	}

	w.EndHour, w.EndMinutes = parseSide(end)
	return w
}

// parseSide parses one "H:MM AM", "H AM" or "HH:MM" fragment.
func parseSide(side string) (hour, minute int) {
	fields := strings.Fields(side)
	if len(fields) == 0 {
		return 0, 0
	}

	clock := fields[0]
	marker := ""
	if len(fields) > 1 {
		marker = strings.ToUpper(fields[1])
	}

	hourStr, minStr, _ := strings.Cut(clock, ":")
	hour = atoiLenient(hourStr)
	minute = atoiLenient(minStr)

	switch {
	case marker == "PM" && hour != 12:
		hour += 12
	case marker == "AM" && hour == 12:
		hour = 0
	}
	return hour, minute
}

// atoiLenient parses the leading digits of s, returning 0 when there are none.
func atoiLenient(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// ErrInvalidTime is returned by Canonical when editor input is not a valid range.
var ErrInvalidTime = errors.New("invalid time range")

// Canonical validates editor input and returns it in the canonical storage
// form "H:MM AM - H:MM PM". Both 12-hour ("1:30 PM") and 24-hour ("13:30")
// sides are accepted; a missing end side defaults to one hour after start.
func Canonical(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidTime)
	}

	start, end, hasEnd := strings.Cut(s, Separator)
	if !hasEnd {
		// Accept "13:00-14:00" style input from quick typing.
		start, end, hasEnd = strings.Cut(s, "-")
	}

	sh, sm, err := strictSide(start)
	if err != nil {
		return "", err
	}

	eh, em := (sh+1)%24, 0
	if hasEnd {
		eh, em, err = strictSide(end)
		if err != nil {
			return "", err
		}
	}

	return FormatClock(sh, sm) + Separator + FormatClock(eh, em), nil
}

func strictSide(side string) (hour, minute int, err error) {
	fields := strings.Fields(side)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, strings.TrimSpace(side))
	}

	hourStr, minStr, hasMin := strings.Cut(fields[0], ":")
	hour, err = strconv.Atoi(hourStr)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: hour %q", ErrInvalidTime, hourStr)
	}
	if hasMin {
		if len(minStr) != 2 {
			return 0, 0, fmt.Errorf("%w: minutes %q", ErrInvalidTime, minStr)
		}
		minute, err = strconv.Atoi(minStr)
		if err != nil || minute < 0 || minute > 59 {
			return 0, 0, fmt.Errorf("%w: minutes %q", ErrInvalidTime, minStr)
		}
	}

	if len(fields) == 1 {
		if hour < 0 || hour > 23 {
			return 0, 0, fmt.Errorf("%w: hour %d", ErrInvalidTime, hour)
		}
		return hour, minute, nil
	}

	switch strings.ToUpper(fields[1]) {
	case "AM":
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("%w: hour %d", ErrInvalidTime, hour)
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("%w: hour %d", ErrInvalidTime, hour)
		}
		if hour != 12 {
			hour += 12
		}
	default:
		return 0, 0, fmt.Errorf("%w: period %q", ErrInvalidTime, fields[1])
	}
	return hour, minute, nil
}

// FormatClock renders a 24-hour clock value as "H:MM AM|PM".
func FormatClock(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, period)
}

// Format renders a window in canonical form.
func (w Window) Format() string {
	return FormatClock(w.StartHour, w.StartMinutes) + Separator + FormatClock(w.EndHour, w.EndMinutes)
}

// SlotLabel renders the label of a one-hour grid row, e.g. "8:00 AM".
func SlotLabel(hour int) string {
	return FormatClock(hour, 0)
}
