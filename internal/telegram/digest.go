package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/format"
)

// maxSlotsPerDate bounds how many times are listed for one venue and date
const maxSlotsPerDate = 6

// FormatDigest formats venue groups as an HTML digest message.
// Long digests are cut at a venue boundary to fit MaxMessageLength.
func FormatDigest(groups []aggregate.VenueGroup, title string) string {
	if len(groups) == 0 {
		return "No new availability."
	}

	total := 0
	for _, g := range groups {
		total += g.SlotCount()
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("📅 <b>%s</b>\n", html.EscapeString(title)))
	msg.WriteString(fmt.Sprintf("%s across %d venue%s\n\n", format.SlotCount(total), len(groups), pluralize(len(groups))))

	footer := ""
	for i, g := range groups {
		section := formatVenue(g)
		if msg.Len()+len(section) > MaxMessageLength-100 {
			footer = fmt.Sprintf("<i>…and %d more venue%s</i>", len(groups)-i, pluralize(len(groups)-i))
			break
		}
		msg.WriteString(section)
	}
	msg.WriteString(footer)

	return strings.TrimRight(msg.String(), "\n")
}

func formatVenue(g aggregate.VenueGroup) string {
	var section strings.Builder
	section.WriteString(fmt.Sprintf("📍 <b>%s</b> (%d)\n", html.EscapeString(format.VenueName(g.VenueName, "")), g.SlotCount()))

	for _, d := range g.Dates {
		times := make([]string, 0, len(d.Slots))
		for i, s := range d.Slots {
			if i == maxSlotsPerDate {
				times = append(times, fmt.Sprintf("+%d more", len(d.Slots)-maxSlotsPerDate))
				break
			}
			entry := format.NormalizeTime(s.Time)
			if price, ok := format.Price(s.Price); ok {
				entry += " " + price
			}
			times = append(times, entry)
		}
		section.WriteString(fmt.Sprintf("  • %s: %s\n",
			html.EscapeString(format.Date(d.Date, format.DateShort)),
			html.EscapeString(strings.Join(times, ", "))))
	}
	section.WriteString("\n")
	return section.String()
}

// pluralize returns "s" if count is not 1, otherwise returns empty string
func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
