package format

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/slot"
)

// DateLayout selects how much of a date label is rendered
type DateLayout string

const (
	// DateLong renders "Fri, Jan 31, 2025" (venue date dividers)
	DateLong DateLayout = "Mon, Jan 2, 2006"
	// DateShort renders "Jan 31, 2025" (slot cards and the flat table)
	DateShort DateLayout = "Jan 2, 2006"
	// DateHeading renders "Friday, January 31" (date-first grouping headers)
	DateHeading DateLayout = "Monday, January 2"
)

// Date renders a "YYYY-MM-DD" string using the given layout.
// The date is built from its year, month and day components, so the label is the same
// calendar day in every timezone. Unparseable input is returned unchanged.
func Date(dateText string, layout DateLayout) string {
	day, ok := slot.ParseDate(dateText)
	if !ok {
		return dateText
	}
	return day.Format(string(layout))
}

// RelativeDate renders "Today", "Tomorrow" or the short date relative to now's calendar day.
// Unparseable input is returned unchanged.
func RelativeDate(dateText string, now time.Time) string {
	day, ok := slot.ParseDate(dateText)
	if !ok {
		return dateText
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch int(day.Sub(today).Hours() / 24) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return day.Format(string(DateShort))
	}
}

// SlotCount describes how many slots a venue has
func SlotCount(count int) string {
	switch count {
	case 0:
		return "No slots available"
	case 1:
		return "1 available slot"
	default:
		return fmt.Sprintf("%d available slots", count)
	}
}
