package aggregate

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/venue-slots/internal/slot"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Primary selects the outer grouping key
type Primary string

const (
	ByVenue Primary = "venue"
	ByDate  Primary = "date"
)

// Order is the chronological direction of date groups
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Options parameterizes the aggregation.
// The zero value groups by venue with dates ascending.
type Options struct {
	Primary   Primary
	DateOrder Order
}

// Group is one outer group: a venue (venue-first) or a date (date-first)
type Group struct {
	Key      string     `json:"key"`
	Children []Subgroup `json:"children"`
}

// Subgroup is one inner group: a date within a venue, or a venue within a date
type Subgroup struct {
	Key   string      `json:"key"`
	Slots []slot.Slot `json:"slots"`
}

// Aggregate groups a flat slot list into a two-level hierarchy and sorts every level.
//
//   - Venues are ordered alphabetically using an English collation.
//   - Dates are ordered chronologically in opts.DateOrder. Dates that cannot be parsed
//     (including "Unknown Date") come after all valid dates in either direction.
//   - Slots within a subgroup are ordered by time of day, earliest first. Equal times
//     keep their input order.
//
// The input is not modified, every input slot appears exactly once in the output, and
// calling Aggregate twice on the same input gives the same result.
func Aggregate(slots []slot.Slot, opts Options) []Group {
	if opts.Primary == "" {
		opts.Primary = ByVenue
	}
	if opts.DateOrder == "" {
		opts.DateOrder = Asc
	}

	outerKey := func(s slot.Slot) string { return s.DisplayName() }
	innerKey := func(s slot.Slot) string { return s.DateKey() }
	if opts.Primary == ByDate {
		outerKey, innerKey = innerKey, outerKey
	}

	// Collect groups in first-seen order before sorting so equal keys never reorder slots
	index := make(map[string]int)
	var groups []Group
	for _, s := range slots {
		outer, inner := outerKey(s), innerKey(s)

		gi, exists := index[outer]
		if !exists {
			gi = len(groups)
			index[outer] = gi
			groups = append(groups, Group{Key: outer})
		}

		g := &groups[gi]
		si := -1
		for i := range g.Children {
			if g.Children[i].Key == inner {
				si = i
				break
			}
		}
		if si < 0 {
			g.Children = append(g.Children, Subgroup{Key: inner})
			si = len(g.Children) - 1
		}
		g.Children[si].Slots = append(g.Children[si].Slots, s)
	}

	venues := newVenueComparator()
	dates := func(a, b string) bool { return compareDates(a, b, opts.DateOrder) }

	outerLess, innerLess := venues.less, dates
	if opts.Primary == ByDate {
		outerLess, innerLess = dates, venues.less
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return outerLess(groups[i].Key, groups[j].Key)
	})
	for gi := range groups {
		children := groups[gi].Children
		sort.SliceStable(children, func(i, j int) bool {
			return innerLess(children[i].Key, children[j].Key)
		})
		for ci := range children {
			sortByTime(children[ci].Slots)
		}
	}

	if groups == nil {
		groups = []Group{}
	}
	return groups
}

// sortByTime orders slots by parsed time of day
func sortByTime(slots []slot.Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		return TimeOfDayMinutes(slots[i].Time) < TimeOfDayMinutes(slots[j].Time)
	})
}

// TimeOfDayMinutes converts a slot time to minutes after midnight.
// Both "H:MM AM/PM" (any case, with or without periods) and "HH:MM" are understood.
// Unparseable times count as minute 0, so they sort with the start of the day.
func TimeOfDayMinutes(timeText string) int {
	hour, minute, ok := slot.ParseTime(timeText)
	if !ok {
		return 0
	}
	return hour*60 + minute
}

// compareDates reports whether date a sorts before date b in the given order.
// Valid dates sort before unparseable ones regardless of direction.
func compareDates(a, b string, order Order) bool {
	dateA, okA := slot.ParseDate(a)
	dateB, okB := slot.ParseDate(b)

	if okA && okB {
		if dateA.Equal(dateB) {
			return a < b
		}
		if order == Desc {
			return dateA.After(dateB)
		}
		return dateA.Before(dateB)
	}

	// If only one date is valid, put the valid one first
	if okA {
		return true
	}
	if okB {
		return false
	}

	return strings.ToLower(a) < strings.ToLower(b)
}

// venueComparator orders venue names the way a locale-aware string compare does:
// case and accents are secondary to the base letters.
type venueComparator struct {
	collator *collate.Collator
}

func newVenueComparator() *venueComparator {
	return &venueComparator{
		collator: collate.New(language.English),
	}
}

func (v *venueComparator) less(a, b string) bool {
	if c := v.collator.CompareString(a, b); c != 0 {
		return c < 0
	}
	// Collation-equal but distinct strings still need a total order
	return a < b
}
