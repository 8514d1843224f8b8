package slot

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDatePattern = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})(?:[T ].*)?$`)
	clock12Pattern = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
	clock24Pattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::\d{2})?$`)
)

// ParseDate parses a "YYYY-MM-DD" date (optionally followed by a time part) by constructing the
// date from its year, month and day components. The result is midnight UTC of that calendar day,
// so formatting it never shifts the day for the runtime's local timezone.
// Returns time.Time{} and false if the input is not a valid calendar date.
func ParseDate(dateText string) (time.Time, bool) {
	matches := isoDatePattern.FindStringSubmatch(strings.TrimSpace(dateText))
	if matches == nil {
		return time.Time{}, false
	}

	year, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])
	day, _ := strconv.Atoi(matches[3])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes Feb 30 into March; reject instead
	if t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// ParseTime parses a time of day in either 12-hour ("9:00 AM", "9:00am", "9:00 a.m.", "9 PM")
// or 24-hour ("21:00", "09:30:00") form. Returns the hour (0-23) and minute.
func ParseTime(timeText string) (hour, minute int, ok bool) {
	value := strings.ToLower(strings.TrimSpace(timeText))
	value = strings.ReplaceAll(value, ".", "")

	if matches := clock12Pattern.FindStringSubmatch(value); matches != nil {
		h, _ := strconv.Atoi(matches[1])
		m := 0
		if matches[2] != "" {
			m, _ = strconv.Atoi(matches[2])
		}
		if h < 1 || h > 12 || m > 59 {
			return 0, 0, false
		}
		if h == 12 {
			h = 0
		}
		if matches[3] == "pm" {
			h += 12
		}
		return h, m, true
	}

	if matches := clock24Pattern.FindStringSubmatch(value); matches != nil {
		h, _ := strconv.Atoi(matches[1])
		m, _ := strconv.Atoi(matches[2])
		if h > 23 || m > 59 {
			return 0, 0, false
		}
		return h, m, true
	}

	return 0, 0, false
}

// ParseDateTime combines a slot's date and time into a wall-clock time in loc.
// The time part defaults to midnight when it cannot be parsed.
func (s Slot) ParseDateTime(loc *time.Location) (time.Time, bool) {
	day, ok := ParseDate(s.Date)
	if !ok {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	hour, minute, _ := ParseTime(s.Time)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), true
}
