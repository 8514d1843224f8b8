package filter

import (
	"testing"
	"time"
)

func TestFilter_IsEmpty(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{
			name:   "empty filter",
			filter: Filter{},
			want:   true,
		},
		{
			name:   "filter with city",
			filter: Filter{City: "NYC"},
			want:   false,
		},
		{
			name:   "filter with guests",
			filter: Filter{Guests: 2},
			want:   false,
		},
		{
			name:   "filter with date to only",
			filter: Filter{DateTo: "2025-03-01"},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.IsEmpty(); got != tt.want {
				t.Errorf("Filter.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilter_Query(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{
			name:   "city and guests",
			filter: Filter{City: "NYC", Guests: 6},
			want:   "city=NYC&guests=6",
		},
		{
			name:   "empty fields omitted",
			filter: Filter{},
			want:   "",
		},
		{
			name:   "zero guests omitted",
			filter: Filter{City: "London", Guests: 0},
			want:   "city=London",
		},
		{
			name:   "venue name is escaped",
			filter: Filter{VenueName: "Swingers (NYC)", DateFrom: "2025-03-01", DateTo: "2025-03-01"},
			want:   "date_from=2025-03-01&date_to=2025-03-01&venue_name=Swingers+%28NYC%29",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Query().Encode(); got != tt.want {
				t.Errorf("Query() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFromQuery(t *testing.T) {
	original := Filter{City: "NYC", DateFrom: "2025-03-01", DateTo: "2025-03-02", Guests: 4}
	got, err := FromQuery(original.Query())
	if err != nil {
		t.Fatalf("FromQuery() unexpected error: %v", err)
	}
	if got != original {
		t.Errorf("FromQuery() = %+v, want %+v", got, original)
	}

	q := original.Query()
	q.Set("guests", "many")
	if _, err := FromQuery(q); err == nil {
		t.Error("FromQuery() expected error for non-numeric guests")
	}
}

func TestFilter_String(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{
			name:   "empty",
			filter: Filter{},
			want:   "No active filters",
		},
		{
			name:   "city with dates",
			filter: Filter{City: "NYC", DateFrom: "2025-03-01", DateTo: "2025-03-02", Guests: 6},
			want:   "City: NYC | From: 2025-03-01 | To: 2025-03-02 | Guests: 6",
		},
		{
			name:   "venue",
			filter: Filter{VenueName: "Puttshack"},
			want:   "Venue: Puttshack",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		input   string
		want    Location
		wantErr bool
	}{
		{"nyc", AllNewYork, false},
		{"NYC", AllNewYork, false},
		{"New York", AllNewYork, false},
		{"london", AllLondon, false},
		{"all_london", AllLondon, false},
		{"puttshack", "puttshack", false},
		{"paris", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLocation(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLocation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLocation(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestBuilder_Build(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	day := func(d int) time.Time { return time.Date(2025, 3, d, 0, 0, 0, 0, time.UTC) }

	tests := []struct {
		name      string
		builder   Builder
		want      Filter
		wantMulti bool
	}{
		{
			name:      "defaults",
			builder:   *NewBuilder(),
			want:      Filter{City: "NYC", Guests: 6},
			wantMulti: true,
		},
		{
			name:      "london exact date",
			builder:   Builder{Location: AllLondon, Mode: ModeExact, Date: day(12), Guests: 2},
			want:      Filter{City: "London", DateFrom: "2025-03-12", DateTo: "2025-03-12", Guests: 2},
			wantMulti: true,
		},
		{
			name:      "single venue",
			builder:   Builder{Location: "swingers_london", Guests: 4},
			want:      Filter{VenueName: "Swingers (London)", Guests: 4},
			wantMulti: false,
		},
		{
			name:      "range endpoints are ordered",
			builder:   Builder{Location: AllNewYork, Mode: ModeRange, RangeFrom: day(20), RangeTo: day(11), Guests: 6},
			want:      Filter{City: "NYC", DateFrom: "2025-03-11", DateTo: "2025-03-20", Guests: 6},
			wantMulti: true,
		},
		{
			name:      "range with one endpoint emits no dates",
			builder:   Builder{Location: AllNewYork, Mode: ModeRange, RangeFrom: day(11), Guests: 6},
			want:      Filter{City: "NYC", Guests: 6},
			wantMulti: true,
		},
		{
			name:      "exact mode without a date emits no dates",
			builder:   Builder{Location: AllNewYork, Mode: ModeExact, Guests: 6},
			want:      Filter{City: "NYC", Guests: 6},
			wantMulti: true,
		},
		{
			name:      "next 7 days includes today",
			builder:   Builder{Location: AllNewYork, Mode: ModeNextDays, NextDays: 7, Guests: 6},
			want:      Filter{City: "NYC", DateFrom: "2025-03-10", DateTo: "2025-03-16", Guests: 6},
			wantMulti: true,
		},
		{
			name:      "unset guests uses default",
			builder:   Builder{Location: AllNewYork},
			want:      Filter{City: "NYC", Guests: DefaultGuests},
			wantMulti: true,
		},
		{
			name:      "negative guests clamp to one",
			builder:   Builder{Location: AllNewYork, Guests: -3},
			want:      Filter{City: "NYC", Guests: 1},
			wantMulti: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, multi := tt.builder.Build(now)
			if got != tt.want {
				t.Errorf("Build() = %+v, want %+v", got, tt.want)
			}
			if multi != tt.wantMulti {
				t.Errorf("Build() multiVenue = %v, want %v", multi, tt.wantMulti)
			}
		})
	}
}

func TestBuilder_DateFromNeverAfterDateTo(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	for a := 1; a <= 28; a += 3 {
		for b := 1; b <= 28; b += 4 {
			builder := Builder{
				Location:  AllNewYork,
				Mode:      ModeRange,
				RangeFrom: time.Date(2025, 2, a, 0, 0, 0, 0, time.UTC),
				RangeTo:   time.Date(2025, 2, b, 0, 0, 0, 0, time.UTC),
			}
			f, _ := builder.Build(now)
			if f.DateFrom > f.DateTo {
				t.Fatalf("Build() from %s after to %s", f.DateFrom, f.DateTo)
			}
		}
	}
}

func TestBuilder_GuestStepper(t *testing.T) {
	b := NewBuilder()
	b.Increment()
	if b.Guests != 7 {
		t.Errorf("after Increment Guests = %d, want 7", b.Guests)
	}

	b.SetGuests(2)
	b.Decrement()
	b.Decrement()
	b.Decrement()
	if b.Guests != 1 {
		t.Errorf("Decrement below 1: Guests = %d, want 1", b.Guests)
	}

	b.SetGuests(0)
	if b.Guests != 1 {
		t.Errorf("SetGuests(0): Guests = %d, want 1", b.Guests)
	}
}

func TestBuilder_QuickSelect(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	// 23:30 local is already the next day in UTC
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, loc)

	b := NewBuilder()
	b.Today(now)
	f, _ := b.Build(now)
	if f.DateFrom != "2025-03-10" || f.DateTo != "2025-03-10" {
		t.Errorf("Today() = %s..%s, want 2025-03-10", f.DateFrom, f.DateTo)
	}

	b.Tomorrow(now)
	f, _ = b.Build(now)
	if f.DateFrom != "2025-03-11" || f.DateTo != "2025-03-11" {
		t.Errorf("Tomorrow() = %s..%s, want 2025-03-11", f.DateFrom, f.DateTo)
	}
}
