package slot

import (
	"fmt"
	"strings"
)

const (
	// UnknownVenue is the grouping key for slots with neither venue_name nor website
	UnknownVenue = "Unknown Venue"
	// UnknownDate is the grouping key for slots without a date
	UnknownDate = "Unknown Date"
)

// Availability is the display class derived from a free-form status string
type Availability string

const (
	Available   Availability = "available"
	FewLeft     Availability = "few-left"
	Unavailable Availability = "unavailable"
)

// Slot represents one bookable availability record for a venue/date/time
type Slot struct {
	ID          int    `json:"id,omitempty"`
	VenueName   string `json:"venue_name,omitempty"`
	Website     string `json:"website,omitempty"`
	Date        string `json:"date,omitempty"` // YYYY-MM-DD when parseable, verbatim otherwise
	Time        string `json:"time,omitempty"`
	Price       string `json:"price,omitempty"`
	Status      string `json:"status,omitempty"`
	BookingURL  string `json:"booking_url,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	LastUpdated string `json:"last_updated,omitempty"`
	City        string `json:"city,omitempty"`
	Guests      *int   `json:"guests,omitempty"`
}

// DisplayName returns the venue display key: venue_name, then website, then UnknownVenue
func (s Slot) DisplayName() string {
	if s.VenueName != "" {
		return s.VenueName
	}
	if s.Website != "" {
		return s.Website
	}
	return UnknownVenue
}

// DateKey returns the date grouping key, or UnknownDate when the slot has no date
func (s Slot) DateKey() string {
	if s.Date == "" {
		return UnknownDate
	}
	return s.Date
}

// HasGuests reports whether the slot was captured for exactly n guests
func (s Slot) HasGuests(n int) bool {
	return s.Guests != nil && *s.Guests == n
}

// Key returns a deterministic identity mirroring the backend's uniqueness constraint
// (venue, date, time, guests). Two captures of the same bookable slot share a key.
func (s Slot) Key() string {
	guests := "-"
	if s.Guests != nil {
		guests = fmt.Sprintf("%d", *s.Guests)
	}
	return strings.Join([]string{s.DisplayName(), s.DateKey(), s.Time, guests}, "|")
}

// Availability classifies the slot's status
func (s Slot) Availability() Availability {
	return StatusClass(s.Status)
}

// StatusClass maps a free-form status to its display class.
// "Few Left" style statuses win over everything else; "Unavailable" and "Full" are unavailable;
// anything else, including an empty status, counts as available.
func StatusClass(status string) Availability {
	value := strings.ToLower(status)
	if strings.Contains(value, "few") {
		return FewLeft
	}
	if strings.Contains(value, "unavailable") || strings.Contains(value, "full") {
		return Unavailable
	}
	return Available
}

// Guests returns a pointer to n, for building slots in code and tests
func Guests(n int) *int {
	return &n
}
