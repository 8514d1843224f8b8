// Package filter turns search selections into the query the scraping backend understands.
//
// A Filter carries the constraints sent to GET /data. Every field is optional; an empty
// field is omitted from the query so the backend treats it as "no constraint".
//
// The Builder mirrors the search panel: a location (a whole city or a single venue), a
// date selection mode, and a guest stepper.
//
// Example usage:
//
//	b := filter.NewBuilder()
//	b.Location = filter.AllNewYork
//	b.Today(time.Now())
//
//	f, multiVenue := b.Build(time.Now())
//	slots, err := client.FetchSlots(ctx, f)
package filter

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format for date_from and date_to
const DateLayout = "2006-01-02"

// DefaultGuests is the guest count the search panel starts with
const DefaultGuests = 6

// Filter represents the search constraints sent to the backend
type Filter struct {
	City      string `json:"city,omitempty"`
	DateFrom  string `json:"date_from,omitempty"`
	DateTo    string `json:"date_to,omitempty"`
	VenueName string `json:"venue_name,omitempty"`
	Guests    int    `json:"guests,omitempty"`
}

// IsEmpty checks if the filter has any active criteria.
// An empty filter asks the backend for every stored slot.
func (f Filter) IsEmpty() bool {
	return f.City == "" &&
		f.DateFrom == "" &&
		f.DateTo == "" &&
		f.VenueName == "" &&
		f.Guests <= 0
}

// Query encodes the filter as URL parameters, skipping empty fields
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.City != "" {
		q.Set("city", f.City)
	}
	if f.DateFrom != "" {
		q.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		q.Set("date_to", f.DateTo)
	}
	if f.VenueName != "" {
		q.Set("venue_name", f.VenueName)
	}
	if f.Guests > 0 {
		q.Set("guests", strconv.Itoa(f.Guests))
	}
	return q
}

// FromQuery is the inverse of Query. Unknown parameters are ignored and a non-numeric
// guest count is an error.
func FromQuery(q url.Values) (Filter, error) {
	f := Filter{
		City:      strings.TrimSpace(q.Get("city")),
		DateFrom:  strings.TrimSpace(q.Get("date_from")),
		DateTo:    strings.TrimSpace(q.Get("date_to")),
		VenueName: strings.TrimSpace(q.Get("venue_name")),
	}
	if raw := strings.TrimSpace(q.Get("guests")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Filter{}, fmt.Errorf("invalid guests %q: %w", raw, err)
		}
		if n < 1 {
			n = 1
		}
		f.Guests = n
	}
	return f, nil
}

// String returns a human-readable description of the active filter criteria.
// Format: "City: NYC | From: 2025-03-01 | To: 2025-03-02 | Guests: 6"
func (f Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string
	if f.City != "" {
		parts = append(parts, fmt.Sprintf("City: %s", f.City))
	}
	if f.VenueName != "" {
		parts = append(parts, fmt.Sprintf("Venue: %s", f.VenueName))
	}
	if f.DateFrom != "" {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom))
	}
	if f.DateTo != "" {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo))
	}
	if f.Guests > 0 {
		parts = append(parts, fmt.Sprintf("Guests: %d", f.Guests))
	}

	return strings.Join(parts, " | ")
}

// Location is a search panel location choice: a whole city or a single venue key
type Location string

const (
	AllNewYork Location = "all_new_york"
	AllLondon  Location = "all_london"
)

// venueKeys maps single-venue location keys to the venue name the backend stores
var venueKeys = map[Location]string{
	"swingers_nyc":                 "Swingers (NYC)",
	"swingers_london":              "Swingers (London)",
	"electric_shuffle_nyc":         "Electric Shuffle (NYC)",
	"electric_shuffle_london":      "Electric Shuffle (London)",
	"lawn_club_nyc":                "Lawn Club NYC",
	"spin_nyc":                     "SPIN (NYC)",
	"five_iron_golf_nyc":           "Five Iron Golf (NYC)",
	"lucky_strike_nyc":             "Lucky Strike (NYC)",
	"easybowl_nyc":                 "Easybowl (NYC)",
	"fair_game_canary_wharf":       "Fair Game (Canary Wharf)",
	"fair_game_city":               "Fair Game (City)",
	"clays_bar":                    "Clays Bar",
	"puttshack":                    "Puttshack",
	"flight_club_darts":            "Flight Club Darts (Bloomsbury)",
	"flight_club_darts_angel":      "Flight Club Darts (Angel)",
	"flight_club_darts_shoreditch": "Flight Club Darts (Shoreditch)",
	"flight_club_darts_victoria":   "Flight Club Darts (Victoria)",
	"f1_arcade":                    "F1 Arcade",
}

// ParseLocation maps user input to a Location.
// "nyc", "new york" and "london" select a whole city; known venue keys select one venue.
func ParseLocation(input string) (Location, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	switch value {
	case "nyc", "new york", "new_york", string(AllNewYork):
		return AllNewYork, nil
	case "london", string(AllLondon):
		return AllLondon, nil
	}
	if _, ok := venueKeys[Location(value)]; ok {
		return Location(value), nil
	}
	return "", fmt.Errorf("unknown location %q", input)
}

// IsCity reports whether the location covers every venue of a city
func (l Location) IsCity() bool {
	return l == AllNewYork || l == AllLondon
}

// City returns the backend city value for a city-wide location
func (l Location) City() string {
	switch l {
	case AllNewYork:
		return "NYC"
	case AllLondon:
		return "London"
	}
	return ""
}

// VenueName returns the backend venue name for a single-venue location
func (l Location) VenueName() string {
	return venueKeys[l]
}

// DateMode is how the date constraint is chosen
type DateMode int

const (
	// ModeNone sends no date constraint
	ModeNone DateMode = iota
	// ModeExact constrains to a single day
	ModeExact
	// ModeRange constrains to RangeFrom..RangeTo inclusive
	ModeRange
	// ModeNextDays constrains to today and the following NextDays-1 days
	ModeNextDays
)

// Builder holds search panel selections
type Builder struct {
	Location  Location
	Mode      DateMode
	Date      time.Time
	RangeFrom time.Time
	RangeTo   time.Time
	NextDays  int
	Guests    int
}

// NewBuilder returns a builder with the search panel defaults: all of New York, no date, 6 guests
func NewBuilder() *Builder {
	return &Builder{
		Location: AllNewYork,
		Mode:     ModeNone,
		Guests:   DefaultGuests,
	}
}

// Increment adds one guest
func (b *Builder) Increment() {
	b.Guests = b.guests() + 1
}

// Decrement removes one guest; at one guest it does nothing
func (b *Builder) Decrement() {
	if b.guests() > 1 {
		b.Guests = b.guests() - 1
	}
}

// SetGuests sets the guest count, clamped to a minimum of 1
func (b *Builder) SetGuests(n int) {
	if n < 1 {
		n = 1
	}
	b.Guests = n
}

// Today selects today's date
func (b *Builder) Today(now time.Time) {
	b.Mode = ModeExact
	b.Date = startOfDay(now)
}

// Tomorrow selects tomorrow's date
func (b *Builder) Tomorrow(now time.Time) {
	b.Mode = ModeExact
	b.Date = startOfDay(now).AddDate(0, 0, 1)
}

// Build produces the filter and whether the result should be shown in multi-venue mode.
//
// Range mode with a missing endpoint emits no date constraint. Range endpoints are swapped if
// needed so that date_from never comes after date_to.
func (b *Builder) Build(now time.Time) (Filter, bool) {
	var f Filter

	if b.Location.IsCity() || b.Location == "" {
		loc := b.Location
		if loc == "" {
			loc = AllNewYork
		}
		f.City = loc.City()
	} else {
		f.VenueName = b.Location.VenueName()
		if f.VenueName == "" {
			f.VenueName = string(b.Location)
		}
	}

	switch b.Mode {
	case ModeExact:
		if !b.Date.IsZero() {
			f.DateFrom = formatDay(b.Date)
			f.DateTo = f.DateFrom
		}
	case ModeRange:
		if !b.RangeFrom.IsZero() && !b.RangeTo.IsZero() {
			from, to := b.RangeFrom, b.RangeTo
			if formatDay(from) > formatDay(to) {
				from, to = to, from
			}
			f.DateFrom = formatDay(from)
			f.DateTo = formatDay(to)
		}
	case ModeNextDays:
		if b.NextDays > 0 {
			start := startOfDay(now)
			f.DateFrom = formatDay(start)
			f.DateTo = formatDay(start.AddDate(0, 0, b.NextDays-1))
		}
	}

	f.Guests = b.guests()

	return f, b.Location.IsCity() || b.Location == ""
}

func (b *Builder) guests() int {
	if b.Guests == 0 {
		return DefaultGuests
	}
	if b.Guests < 1 {
		return 1
	}
	return b.Guests
}

// formatDay renders the calendar day of t in t's own location
func formatDay(t time.Time) string {
	return t.Format(DateLayout)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
