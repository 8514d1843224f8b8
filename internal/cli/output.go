package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/calendar"
	"github.com/pfrederiksen/venue-slots/internal/filter"
	"github.com/pfrederiksen/venue-slots/internal/format"
	"github.com/pfrederiksen/venue-slots/internal/slot"
	"github.com/pfrederiksen/venue-slots/internal/venue"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

// SearchResult contains data to be output. Exactly one of Groups, Slots and Venue is set.
type SearchResult struct {
	CheckedAt  time.Time             `json:"checked_at"`
	Filter     filter.Filter         `json:"filter"`
	MultiVenue bool                  `json:"multi_venue"`
	TotalCount int                   `json:"total_count"`
	Groups     []aggregate.Group     `json:"groups,omitempty"`
	Slots      []slot.Slot           `json:"slots,omitempty"`
	Venue      *aggregate.VenueGroup `json:"venue,omitempty"`

	Primary aggregate.Primary `json:"-"`
}

// allSlots returns the result's slots in display order
func (r *SearchResult) allSlots() []slot.Slot {
	switch {
	case r.Venue != nil:
		var slots []slot.Slot
		for _, d := range r.Venue.Dates {
			slots = append(slots, d.Slots...)
		}
		return slots
	case r.Slots != nil:
		return r.Slots
	default:
		return aggregate.Flatten(r.Groups)
	}
}

// WriteSearch writes the result in the specified format
func WriteSearch(w io.Writer, result *SearchResult, format OutputFormat, verbose bool, t time.Time) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatICS:
		_, err := io.WriteString(w, calendar.GenerateICS(result.allSlots(), t))
		return err
	case FormatText:
		return writeText(w, result, verbose, t)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *SearchResult, verbose bool, t time.Time) error {
	if verbose {
		fmt.Fprintf(w, "%s\n", result.Filter)
	}

	switch {
	case result.Venue != nil:
		writeVenueDetail(w, result.Venue, verbose, t)
		return nil
	case result.TotalCount == 0:
		fmt.Fprintln(w, "No slots found.")
		return nil
	case result.Slots != nil:
		return writeTable(w, result.Slots, verbose)
	}

	for _, g := range result.Groups {
		count := 0
		for _, c := range g.Children {
			count += len(c.Slots)
		}

		if result.Primary == aggregate.ByDate {
			fmt.Fprintf(w, "\n%s (%d):\n", format.Date(g.Key, format.DateHeading), count)
			for _, c := range g.Children {
				fmt.Fprintf(w, "  %s\n", format.VenueName(c.Key, result.Filter.City))
				writeSlotLines(w, c.Slots, "    ", verbose)
			}
			continue
		}

		fmt.Fprintf(w, "\n%s (%s):\n", format.VenueName(g.Key, result.Filter.City), strings.ToLower(format.SlotCount(count)))
		for _, c := range g.Children {
			fmt.Fprintf(w, "  %s\n", dateLabel(c.Key, t))
			writeSlotLines(w, c.Slots, "    ", verbose)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d slot%s across %d %s\n", result.TotalCount, plural(result.TotalCount),
		len(result.Groups), groupLabel(result.Primary, len(result.Groups)))
	return nil
}

func writeVenueDetail(w io.Writer, g *aggregate.VenueGroup, verbose bool, t time.Time) {
	fmt.Fprintf(w, "%s\n", format.VenueName(g.VenueName, ""))
	if md, ok := venue.Lookup(g.VenueName); ok {
		if md.Neighborhood != "" {
			fmt.Fprintf(w, "%s, %s\n", md.Neighborhood, md.City)
		}
		if md.Description != "" {
			fmt.Fprintf(w, "%s\n", md.Description)
		}
		if len(md.Activities) > 0 {
			fmt.Fprintf(w, "Activities: %s\n", strings.Join(md.Activities, ", "))
		}
	}
	fmt.Fprintf(w, "%s\n", format.SlotCount(g.SlotCount()))

	for _, d := range g.Dates {
		fmt.Fprintf(w, "\n%s\n", dateLabel(d.Date, t))
		writeSlotLines(w, d.Slots, "  ", verbose)
	}
}

func writeSlotLines(w io.Writer, slots []slot.Slot, indent string, verbose bool) {
	for _, s := range slots {
		fmt.Fprintf(w, "%s%-8s  %-8s  %s\n", indent, format.NormalizeTime(s.Time), format.PriceOrText(s.Price), statusText(s))
		if verbose {
			if s.Guests != nil {
				fmt.Fprintf(w, "%s  Guests: %d\n", indent, *s.Guests)
			}
			if s.BookingURL != "" {
				fmt.Fprintf(w, "%s  Book: %s\n", indent, s.BookingURL)
			}
			if s.LastUpdated != "" {
				fmt.Fprintf(w, "%s  Updated: %s\n", indent, format.Timestamp(s.LastUpdated))
			}
		}
	}
}

// writeTable prints the flat view as aligned columns
func writeTable(w io.Writer, slots []slot.Slot, verbose bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "DATE\tVENUE\tTIME\tPRICE\tSTATUS"
	if verbose {
		header += "\tGUESTS\tBOOK"
	}
	fmt.Fprintln(tw, header)

	for _, s := range slots {
		line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s",
			format.Date(s.DateKey(), format.DateShort),
			format.VenueName(s.DisplayName(), ""),
			format.NormalizeTime(s.Time),
			format.PriceOrText(s.Price),
			statusText(s))
		if verbose {
			guests := "-"
			if s.Guests != nil {
				guests = fmt.Sprintf("%d", *s.Guests)
			}
			line += fmt.Sprintf("\t%s\t%s", guests, s.BookingURL)
		}
		fmt.Fprintln(tw, line)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nTotal: %d slot%s\n", len(slots), plural(len(slots)))
	return nil
}

// dateLabel is the long date, marked "(Today)" or "(Tomorrow)" relative to t
func dateLabel(date string, t time.Time) string {
	label := format.Date(date, format.DateLong)
	switch rel := format.RelativeDate(date, t); rel {
	case "Today", "Tomorrow":
		label += " (" + rel + ")"
	}
	return label
}

// statusText shows the backend status, or the availability class when it is blank
func statusText(s slot.Slot) string {
	if st := strings.TrimSpace(s.Status); st != "" {
		return st
	}
	return string(s.Availability())
}

func groupLabel(primary aggregate.Primary, n int) string {
	if primary == aggregate.ByDate {
		return "date" + plural(n)
	}
	return "venue" + plural(n)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
