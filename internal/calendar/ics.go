// Package calendar exports availability slots as an iCalendar feed.
package calendar

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/format"
	"github.com/pfrederiksen/venue-slots/internal/slot"
)

// DefaultDuration is the length of a slot event when the backend gives no end time
const DefaultDuration = time.Hour

// GenerateICS generates an iCalendar (.ics) document with one event per slot.
//
// Slots without a parseable date are skipped. Start times are floating local times, since
// the backend reports venue wall-clock times without a zone. A slot with no parseable time
// becomes an all-day event.
func GenerateICS(slots []slot.Slot, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//Venue Slots//venue-slots//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	stamp := formatICSTime(now)
	for _, s := range slots {
		writeEvent(&ics, s, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

// CountEvents returns how many slots GenerateICS would export
func CountEvents(slots []slot.Slot) int {
	n := 0
	for _, s := range slots {
		if _, ok := slot.ParseDate(s.Date); ok {
			n++
		}
	}
	return n
}

func writeEvent(ics *strings.Builder, s slot.Slot, stamp string) {
	day, ok := slot.ParseDate(s.Date)
	if !ok {
		return
	}

	ics.WriteString("BEGIN:VEVENT\r\n")

	// UID - stable across exports of the same slot
	ics.WriteString(fmt.Sprintf("UID:%s@venue-slots\r\n", uid(s)))

	// DTSTAMP - timestamp when this calendar entry was created
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))

	if hour, minute, ok := slot.ParseTime(s.Time); ok {
		start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
		end := start.Add(DefaultDuration)
		ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatFloating(start)))
		ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatFloating(end)))
	} else {
		ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", day.Format("20060102")))
		ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", day.AddDate(0, 0, 1).Format("20060102")))
	}

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(format.VenueName(s.DisplayName(), s.City))))
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description(s))))

	if s.City != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(s.City)))
	}
	if s.BookingURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", s.BookingURL))
	}

	// Held slots are not bookings
	ics.WriteString("STATUS:TENTATIVE\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")

	ics.WriteString("END:VEVENT\r\n")
}

func description(s slot.Slot) string {
	var lines []string
	if s.Time != "" {
		lines = append(lines, fmt.Sprintf("Time: %s", format.NormalizeTime(s.Time)))
	}
	if price, ok := format.Price(s.Price); ok {
		lines = append(lines, fmt.Sprintf("Price: %s", price))
	}
	if s.Status != "" {
		lines = append(lines, fmt.Sprintf("Status: %s", s.Status))
	}
	if s.Guests != nil {
		lines = append(lines, fmt.Sprintf("Guests: %d", *s.Guests))
	}
	if s.BookingURL != "" {
		lines = append(lines, fmt.Sprintf("Book at: %s", s.BookingURL))
	}
	return strings.Join(lines, "\n")
}

func uid(s slot.Slot) string {
	sum := sha1.Sum([]byte(s.Key()))
	return hex.EncodeToString(sum[:])[:16]
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatFloating formats a wall-clock time with no zone designator
func formatFloating(t time.Time) string {
	return t.Format("20060102T150405")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
