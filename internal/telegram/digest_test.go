package telegram

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/slot"
)

func TestFormatDigest(t *testing.T) {
	slots := []slot.Slot{
		{VenueName: "Swingers (NYC)", Date: "2025-03-01", Time: "19:00", Price: "$45"},
		{VenueName: "Swingers (NYC)", Date: "2025-03-01", Time: "9:00 pm"},
		{VenueName: "Fair Game (London - Canary Wharf)", Date: "2025-03-02", Time: "6:00 PM", Price: "£30"},
	}
	msg := FormatDigest(aggregate.VenueGroups(slots, aggregate.Asc), "New slots <today>")

	wantContains := []string{
		"<b>New slots &lt;today&gt;</b>",
		"3 available slots across 2 venues",
		"<b>Swingers (NYC)</b> (2)",
		"<b>Fair Game (Canary Wharf)</b> (1)",
		"Mar 1, 2025: 7:00 PM $45.00, 9:00 PM",
		"Mar 2, 2025: 6:00 PM £30.00",
	}
	for _, want := range wantContains {
		if !strings.Contains(msg, want) {
			t.Errorf("digest missing %q:\n%s", want, msg)
		}
	}

	// Venues appear alphabetically
	if strings.Index(msg, "Fair Game") > strings.Index(msg, "Swingers") {
		t.Error("venues not in alphabetical order")
	}
}

func TestFormatDigest_Empty(t *testing.T) {
	if got := FormatDigest(nil, "x"); got != "No new availability." {
		t.Errorf("FormatDigest(nil) = %q", got)
	}
}

func TestFormatDigest_TruncatesLongDates(t *testing.T) {
	var slots []slot.Slot
	for h := 1; h <= 9; h++ {
		slots = append(slots, slot.Slot{VenueName: "A", Date: "2025-03-01", Time: fmt.Sprintf("%d:00 PM", h)})
	}
	msg := FormatDigest(aggregate.VenueGroups(slots, aggregate.Asc), "t")
	if !strings.Contains(msg, "+3 more") {
		t.Errorf("expected overflow marker:\n%s", msg)
	}
}

func TestFormatDigest_FitsMessageLimit(t *testing.T) {
	var slots []slot.Slot
	for v := 0; v < 200; v++ {
		for d := 1; d <= 3; d++ {
			slots = append(slots, slot.Slot{
				VenueName: fmt.Sprintf("Venue number %03d (Somewhere)", v),
				Date:      fmt.Sprintf("2025-03-%02d", d),
				Time:      "7:00 PM",
			})
		}
	}
	msg := FormatDigest(aggregate.VenueGroups(slots, aggregate.Asc), "Big")
	if n := utf8.RuneCountInString(msg); n > MaxMessageLength {
		t.Errorf("digest is %d characters, limit %d", n, MaxMessageLength)
	}
	if !strings.Contains(msg, "more venues") {
		t.Error("truncated digest should say how many venues were left out")
	}
}

func TestPluralize(t *testing.T) {
	if pluralize(1) != "" || pluralize(0) != "s" || pluralize(2) != "s" {
		t.Error("pluralize() wrong")
	}
}
