package slot

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		slot Slot
		want string
	}{
		{"venue name wins", Slot{VenueName: "Swingers (NYC)", Website: "swingers"}, "Swingers (NYC)"},
		{"falls back to website", Slot{Website: "puttshack"}, "puttshack"},
		{"unknown venue", Slot{}, UnknownVenue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.slot.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	if got := (Slot{}).DateKey(); got != UnknownDate {
		t.Errorf("DateKey() = %q, want %q", got, UnknownDate)
	}
	if got := (Slot{Date: "2025-01-31"}).DateKey(); got != "2025-01-31" {
		t.Errorf("DateKey() = %q, want 2025-01-31", got)
	}
}

func TestKey(t *testing.T) {
	a := Slot{VenueName: "Bounce", Date: "2025-02-01", Time: "7:00 PM", Guests: Guests(6), Price: "$20"}
	b := Slot{VenueName: "Bounce", Date: "2025-02-01", Time: "7:00 PM", Guests: Guests(6), Price: "$25"}
	c := Slot{VenueName: "Bounce", Date: "2025-02-01", Time: "7:00 PM", Guests: Guests(4)}

	if a.Key() != b.Key() {
		t.Errorf("slots differing only by price should share a key: %q vs %q", a.Key(), b.Key())
	}
	if a.Key() == c.Key() {
		t.Errorf("slots with different guests should not share a key: %q", a.Key())
	}
	if got := (Slot{}).Key(); got != "Unknown Venue|Unknown Date||-" {
		t.Errorf("Key() of empty slot = %q", got)
	}
}

func TestStatusClass(t *testing.T) {
	tests := []struct {
		status string
		want   Availability
	}{
		{"Available", Available},
		{"Few Left", FewLeft},
		{"only a FEW spots", FewLeft},
		{"Unavailable", Unavailable},
		{"Full", Unavailable},
		{"Fully booked", Unavailable},
		{"", Available},
		{"Waitlist", Available},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := StatusClass(tt.status); got != tt.want {
				t.Errorf("StatusClass(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestHasGuests(t *testing.T) {
	s := Slot{Guests: Guests(6)}
	if !s.HasGuests(6) {
		t.Error("expected HasGuests(6) to be true")
	}
	if s.HasGuests(2) {
		t.Error("expected HasGuests(2) to be false")
	}
	if (Slot{}).HasGuests(6) {
		t.Error("slot without guests should not match any count")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name      string
		dateText  string
		wantYear  int
		wantMonth time.Month
		wantDay   int
		wantOK    bool
	}{
		{"iso date", "2025-01-31", 2025, time.January, 31, true},
		{"no leading zeros", "2025-3-5", 2025, time.March, 5, true},
		{"with time part", "2025-12-01T18:30:00", 2025, time.December, 1, true},
		{"surrounding whitespace", "  2025-06-15 ", 2025, time.June, 15, true},
		{"impossible day", "2025-02-30", 0, 0, 0, false},
		{"month out of range", "2025-13-01", 0, 0, 0, false},
		{"not a date", "tomorrow", 0, 0, 0, false},
		{"empty", "", 0, 0, 0, false},
		{"us format", "01/31/2025", 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.dateText)
			if ok != tt.wantOK {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.dateText, ok, tt.wantOK)
			}
			if !ok {
				if !got.IsZero() {
					t.Errorf("ParseDate(%q) = %v, want zero time", tt.dateText, got)
				}
				return
			}
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("ParseDate(%q) = %v, want %d-%02d-%02d", tt.dateText, got, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		input      string
		wantHour   int
		wantMinute int
		wantOK     bool
	}{
		{"9:00 AM", 9, 0, true},
		{"9:00am", 9, 0, true},
		{"11:30 a.m.", 11, 30, true},
		{"2:00 PM", 14, 0, true},
		{"2:00 p.m.", 14, 0, true},
		{"12:00 PM", 12, 0, true},
		{"12:15 AM", 0, 15, true},
		{"9 PM", 21, 0, true},
		{"13:00", 13, 0, true},
		{"00:15", 0, 15, true},
		{"09:30:00", 9, 30, true},
		{"24:00", 0, 0, false},
		{"13:00 PM", 0, 0, false},
		{"noon", 0, 0, false},
		{"", 0, 0, false},
		{"6:00 PM - 7:00 PM", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			h, m, ok := ParseTime(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseTime(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && (h != tt.wantHour || m != tt.wantMinute) {
				t.Errorf("ParseTime(%q) = %d:%02d, want %d:%02d", tt.input, h, m, tt.wantHour, tt.wantMinute)
			}
		})
	}
}

func TestParseDateTime(t *testing.T) {
	s := Slot{Date: "2025-01-31", Time: "7:30 PM"}
	got, ok := s.ParseDateTime(time.UTC)
	if !ok {
		t.Fatal("expected ParseDateTime to succeed")
	}
	want := time.Date(2025, time.January, 31, 19, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDateTime() = %v, want %v", got, want)
	}

	if _, ok := (Slot{Date: "soon"}).ParseDateTime(nil); ok {
		t.Error("expected ParseDateTime to fail for unparseable date")
	}
}

func TestDecode(t *testing.T) {
	raw := json.RawMessage(`[
		{"venue_name": " Swingers (NYC) ", "date": "2025-1-5", "time": "7:00 PM", "price": 37.5, "status": "Available", "guests": 6, "city": "NYC"},
		{"website": "Bounce", "date": null, "time": "18:00", "price": "$20", "guests": "4", "booking_url": "https://example.com/book"},
		"not an object",
		{"venue_name": "Hijingo", "date": "next week", "guests": "lots", "price": {"amount": 5}}
	]`)

	slots, skipped, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode() unexpected error: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(slots) != 3 {
		t.Fatalf("len(slots) = %d, want 3", len(slots))
	}

	first := slots[0]
	if first.VenueName != "Swingers (NYC)" {
		t.Errorf("VenueName not trimmed: %q", first.VenueName)
	}
	if first.Date != "2025-01-05" {
		t.Errorf("Date not canonicalized: %q", first.Date)
	}
	if first.Price != "37.5" {
		t.Errorf("numeric price = %q, want 37.5", first.Price)
	}
	if !first.HasGuests(6) {
		t.Errorf("Guests = %v, want 6", first.Guests)
	}

	second := slots[1]
	if second.Date != "" {
		t.Errorf("null date = %q, want empty", second.Date)
	}
	if !second.HasGuests(4) {
		t.Errorf("string guests not parsed: %v", second.Guests)
	}
	if second.DisplayName() != "Bounce" {
		t.Errorf("DisplayName() = %q, want Bounce", second.DisplayName())
	}

	third := slots[2]
	if third.Date != "next week" {
		t.Errorf("unparseable date should be kept verbatim, got %q", third.Date)
	}
	if third.Guests != nil {
		t.Errorf("non-numeric guests should be unset, got %d", *third.Guests)
	}
	if third.Price != "" {
		t.Errorf("structured price should be dropped, got %q", third.Price)
	}
}

func TestDecode_EmptyAndInvalid(t *testing.T) {
	for _, raw := range []string{"", "null", "[]"} {
		slots, _, err := Decode(json.RawMessage(raw))
		if err != nil {
			t.Errorf("Decode(%q) unexpected error: %v", raw, err)
		}
		if len(slots) != 0 {
			t.Errorf("Decode(%q) returned %d slots, want 0", raw, len(slots))
		}
	}

	if _, _, err := Decode(json.RawMessage(`{"venue_name": "x"}`)); err == nil {
		t.Error("Decode() of an object should fail")
	}
}
