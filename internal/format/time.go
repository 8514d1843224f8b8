package format

import (
	"fmt"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/slot"
)

// NormalizeTime converts "HH:MM" 24-hour times and the various 12-hour spellings
// ("9:00am", "9:00 a.m.", "09:00 PM") into the canonical "H:MM AM/PM" form.
// Unrecognized input is returned unchanged.
//
// Examples: "13:00" -> "1:00 PM", "12:00" -> "12:00 PM", "00:15" -> "12:15 AM".
func NormalizeTime(timeText string) string {
	hour, minute, ok := slot.ParseTime(timeText)
	if !ok {
		return timeText
	}
	return clock(hour, minute)
}

func clock(hour, minute int) string {
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

// Timestamp renders a capture timestamp (RFC 3339 or the backend's ISO form without zone)
// as a wall-clock time like "3:04:05 PM". Returns "N/A" when empty or unparseable.
func Timestamp(ts string) string {
	if ts == "" {
		return "N/A"
	}
	layouts := []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("3:04:05 PM")
		}
	}
	return "N/A"
}
