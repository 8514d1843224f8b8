package filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const monthPattern = `(jan|january|feb|february|mar|march|apr|april|may|jun|june|jul|july|aug|august|sep|sept|september|oct|october|nov|november|dec|december)`

var (
	sameMonthRange  = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*(\d{1,2})$`)
	crossMonthRange = regexp.MustCompile(`(?i)^` + monthPattern + `\s+(\d{1,2})\s*-\s*` + monthPattern + `\s+(\d{1,2})$`)
	wholeMonth      = regexp.MustCompile(`(?i)^` + monthPattern + `$`)
	nextDaysPattern = regexp.MustCompile(`(?i)^next\s+(\d{1,3})\s+days?$`)
)

// ParseDateRange parses a date range string into a from/to pair of calendar days.
//
// Supported formats:
//   - "2025-03-01" - A single day
//   - "2025-03-01..2025-03-07" - An explicit range
//   - "today", "tomorrow" - Relative to now
//   - "next 7 days" - Today and the following six days
//   - "Mar 1-15" or "March 1-15" - Same month, different days
//   - "March 1 - April 15" - Different months
//   - "March" - Entire month
//
// For month names the year is inferred from now: a month earlier than the current one is
// taken to be next year, and a cross-month range that wraps past December ends next year.
//
// Both results are midnight in now's location.
func ParseDateRange(input string, now time.Time) (time.Time, time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("date range cannot be empty")
	}
	today := startOfDay(now)

	switch strings.ToLower(input) {
	case "today":
		return today, today, nil
	case "tomorrow":
		tomorrow := today.AddDate(0, 0, 1)
		return tomorrow, tomorrow, nil
	}

	if from, to, ok := strings.Cut(input, ".."); ok {
		start, err := parseISODay(from, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end, err := parseISODay(to, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if start.After(end) {
			return time.Time{}, time.Time{}, fmt.Errorf("start date must be before end date")
		}
		return start, end, nil
	}

	if day, err := parseISODay(input, now.Location()); err == nil {
		return day, day, nil
	}

	if matches := nextDaysPattern.FindStringSubmatch(input); matches != nil {
		n, err := strconv.Atoi(matches[1])
		if err != nil || n < 1 {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid day count: %s", matches[1])
		}
		return today, today.AddDate(0, 0, n-1), nil
	}

	// Format: "Mar 1-15" or "March 1-15"
	if matches := sameMonthRange.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])
		year := yearForMonth(month, now)

		from, err := calendarDay(year, month, matches[2], now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to, err := calendarDay(year, month, matches[3], now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if from.After(to) {
			return time.Time{}, time.Time{}, fmt.Errorf("start date must be before end date")
		}
		return from, to, nil
	}

	// Format: "Mar 1 - Apr 15" or "March 1 - April 15"
	if matches := crossMonthRange.FindStringSubmatch(input); matches != nil {
		month1 := parseMonth(matches[1])
		month2 := parseMonth(matches[3])

		year1 := yearForMonth(month1, now)
		year2 := year1
		// If month2 < month1, assume month2 is in the next year
		if month2 < month1 {
			year2++
		}

		from, err := calendarDay(year1, month1, matches[2], now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to, err := calendarDay(year2, month2, matches[4], now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if from.After(to) {
			return time.Time{}, time.Time{}, fmt.Errorf("start date must be before end date")
		}
		return from, to, nil
	}

	// Format: "March" or "Mar" (entire month)
	if matches := wholeMonth.FindStringSubmatch(input); matches != nil {
		month := parseMonth(matches[1])
		year := yearForMonth(month, now)
		from := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
		// Day 0 of the next month is the last day of this one
		to := time.Date(year, month+1, 0, 0, 0, 0, 0, now.Location())
		return from, to, nil
	}

	return time.Time{}, time.Time{}, fmt.Errorf("invalid date range format. Use '2025-03-01', '2025-03-01..2025-03-07', 'today', 'next 7 days', 'Mar 1-15', 'March 1 - April 15', or 'March'")
}

// parseISODay parses a YYYY-MM-DD day in loc
func parseISODay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

// calendarDay builds a day, rejecting days that do not exist in the month
func calendarDay(year int, month time.Month, dayText string, loc *time.Location) (time.Time, error) {
	day, err := strconv.Atoi(dayText)
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid day: %s", dayText)
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Month() != month {
		return time.Time{}, fmt.Errorf("invalid day: %s %s", month, dayText)
	}
	return t, nil
}

// parseMonth converts a month name to time.Month
func parseMonth(name string) time.Month {
	name = strings.ToLower(strings.TrimSpace(name))

	months := map[string]time.Month{
		"jan": time.January, "january": time.January,
		"feb": time.February, "february": time.February,
		"mar": time.March, "march": time.March,
		"apr": time.April, "april": time.April,
		"may": time.May,
		"jun": time.June, "june": time.June,
		"jul": time.July, "july": time.July,
		"aug": time.August, "august": time.August,
		"sep": time.September, "sept": time.September, "september": time.September,
		"oct": time.October, "october": time.October,
		"nov": time.November, "november": time.November,
		"dec": time.December, "december": time.December,
	}

	return months[name]
}

// yearForMonth returns the year a month name refers to.
// If the month has already passed this year, returns next year.
func yearForMonth(month time.Month, now time.Time) int {
	year := now.Year()
	if month < now.Month() {
		year++
	}
	return year
}

// ApplyRange sets a parsed range on the builder, using exact mode for a single day
func (b *Builder) ApplyRange(from, to time.Time) {
	if from.Equal(to) {
		b.Mode = ModeExact
		b.Date = from
		return
	}
	b.Mode = ModeRange
	b.RangeFrom = from
	b.RangeTo = to
}
