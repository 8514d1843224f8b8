package slot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// flexString accepts a JSON string, number or bool and keeps its text form.
// The backend sends price as either "$37.5" or 37.5 depending on the scraper.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		// Structured values are not displayable; treat as absent
		*f = ""
		return nil
	}
	*f = flexString(data)
	return nil
}

// flexInt accepts a JSON number or a numeric string
type flexInt struct {
	value int
	set   bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	text := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Not a number; leave unset rather than failing the whole record
		return nil
	}
	f.value = int(n)
	f.set = true
	return nil
}

// wireSlot mirrors the backend's JSON record with lenient field types
type wireSlot struct {
	ID          flexInt    `json:"id"`
	VenueName   flexString `json:"venue_name"`
	Website     flexString `json:"website"`
	Date        flexString `json:"date"`
	Time        flexString `json:"time"`
	Price       flexString `json:"price"`
	Status      flexString `json:"status"`
	BookingURL  flexString `json:"booking_url"`
	Timestamp   flexString `json:"timestamp"`
	LastUpdated flexString `json:"last_updated"`
	City        flexString `json:"city"`
	Guests      flexInt    `json:"guests"`
}

// Decode parses the backend's "data" array into normalized slots.
// A null or missing array yields zero slots. Elements that are not JSON objects are skipped and
// counted in skipped; an input that is not an array at all is an error.
func Decode(raw json.RawMessage) (slots []Slot, skipped int, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []Slot{}, 0, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, 0, fmt.Errorf("decoding slot list: %w", err)
	}

	slots = make([]Slot, 0, len(elements))
	for _, element := range elements {
		var w wireSlot
		if err := json.Unmarshal(element, &w); err != nil {
			skipped++
			continue
		}
		slots = append(slots, w.toSlot())
	}
	return slots, skipped, nil
}

func (w wireSlot) toSlot() Slot {
	s := Slot{
		VenueName:   string(w.VenueName),
		Website:     string(w.Website),
		Date:        string(w.Date),
		Time:        string(w.Time),
		Price:       string(w.Price),
		Status:      string(w.Status),
		BookingURL:  string(w.BookingURL),
		Timestamp:   string(w.Timestamp),
		LastUpdated: string(w.LastUpdated),
		City:        string(w.City),
	}
	if w.ID.set {
		s.ID = w.ID.value
	}
	if w.Guests.set {
		s.Guests = Guests(w.Guests.value)
	}
	return Normalize(s)
}

// Normalize trims every text field and canonicalizes a parseable date to YYYY-MM-DD.
// Unparseable dates are kept verbatim so they still display.
func Normalize(s Slot) Slot {
	s.VenueName = strings.TrimSpace(s.VenueName)
	s.Website = strings.TrimSpace(s.Website)
	s.Date = strings.TrimSpace(s.Date)
	s.Time = strings.TrimSpace(s.Time)
	s.Price = strings.TrimSpace(s.Price)
	s.Status = strings.TrimSpace(s.Status)
	s.BookingURL = strings.TrimSpace(s.BookingURL)
	s.Timestamp = strings.TrimSpace(s.Timestamp)
	s.LastUpdated = strings.TrimSpace(s.LastUpdated)
	s.City = strings.TrimSpace(s.City)

	if day, ok := ParseDate(s.Date); ok {
		s.Date = day.Format("2006-01-02")
	}
	return s
}
