package aggregate

import "github.com/pfrederiksen/venue-slots/internal/slot"

// VenueGroup is the venue-first view: all slots for one venue, subdivided by date
type VenueGroup struct {
	VenueName string      `json:"venue_name"`
	Dates     []DateGroup `json:"dates"`
}

// DateGroup holds the slots of one venue on one date
type DateGroup struct {
	Date  string      `json:"date"`
	Slots []slot.Slot `json:"slots"`
}

// SlotCount returns the number of slots across all dates of the venue
func (v VenueGroup) SlotCount() int {
	n := 0
	for _, d := range v.Dates {
		n += len(d.Slots)
	}
	return n
}

// VenueGroups is Aggregate grouped by venue, returned in the venue/date shape
func VenueGroups(slots []slot.Slot, order Order) []VenueGroup {
	groups := Aggregate(slots, Options{Primary: ByVenue, DateOrder: order})

	result := make([]VenueGroup, 0, len(groups))
	for _, g := range groups {
		vg := VenueGroup{
			VenueName: g.Key,
			Dates:     make([]DateGroup, 0, len(g.Children)),
		}
		for _, c := range g.Children {
			vg.Dates = append(vg.Dates, DateGroup{Date: c.Key, Slots: c.Slots})
		}
		result = append(result, vg)
	}
	return result
}

// Flatten returns the slots of all groups in display order
func Flatten(groups []Group) []slot.Slot {
	var slots []slot.Slot
	for _, g := range groups {
		for _, c := range g.Children {
			slots = append(slots, c.Slots...)
		}
	}
	return slots
}

// Count returns the total number of slots across all groups
func Count(groups []Group) int {
	n := 0
	for _, g := range groups {
		for _, c := range g.Children {
			n += len(c.Slots)
		}
	}
	return n
}

// SortFlat returns a copy of slots ordered for the flat table view:
// by date (in order), then venue, then time of day.
func SortFlat(slots []slot.Slot, order Order) []slot.Slot {
	return Flatten(Aggregate(slots, Options{Primary: ByDate, DateOrder: order}))
}

// ForVenue returns the slots of a single venue, as used by the drill-down view
func ForVenue(slots []slot.Slot, venueName string) []slot.Slot {
	var result []slot.Slot
	for _, s := range slots {
		if s.DisplayName() == venueName {
			result = append(result, s)
		}
	}
	return result
}
