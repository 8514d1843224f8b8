package controller

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/api"
	"github.com/pfrederiksen/venue-slots/internal/filter"
	"github.com/pfrederiksen/venue-slots/internal/slot"
	"github.com/pfrederiksen/venue-slots/internal/toast"
)

// fakeFetcher returns canned results and records the filters it was asked for
type fakeFetcher struct {
	mu       sync.Mutex
	slots    []slot.Slot
	err      error
	clearErr error
	filters  []filter.Filter
	clears   int
}

func (f *fakeFetcher) FetchSlots(ctx context.Context, flt filter.Filter) ([]slot.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, flt)
	if f.err != nil {
		return nil, f.err
	}
	return append([]slot.Slot(nil), f.slots...), nil
}

func (f *fakeFetcher) ClearData(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return f.clearErr
}

func (f *fakeFetcher) set(slots []slot.Slot, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots = slots
	f.err = err
}

func noTimers(d time.Duration, fn func()) toast.Timer {
	return time.NewTimer(time.Hour)
}

func newTestController(fetcher Fetcher) *Controller {
	return New(fetcher, toast.New(toast.WithAfterFunc(noTimers)))
}

func nycSlots() []slot.Slot {
	var slots []slot.Slot
	venues := []string{"Swingers (NYC)", "Puttery (NYC)", "Five Iron Golf (NYC - FiDi)"}
	for i := 0; i < 12; i++ {
		slots = append(slots, slot.Slot{
			VenueName: venues[i%3],
			Date:      fmt.Sprintf("2025-03-%02d", 1+i%2),
			Time:      fmt.Sprintf("%d:00 PM", 1+i%10),
			Status:    "Available",
			Guests:    slot.Guests(6),
		})
	}
	return slots
}

func TestSearch_NYCScenario(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [` + slotJSON(nycSlots()) + `], "total_count": 12}`))
	}))
	defer server.Close()

	c := newTestController(api.NewClient(server.URL+"/api", 5*time.Second))

	b := filter.NewBuilder()
	b.Location = filter.AllNewYork
	f, multi := b.Build(time.Now())

	if err := c.Search(context.Background(), f, multi); err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}

	if gotQuery != "city=NYC&guests=6" {
		t.Errorf("query = %q, want city=NYC&guests=6", gotQuery)
	}
	groups := c.VenueGroups(aggregate.Asc)
	if len(groups) != 3 {
		t.Errorf("got %d venue groups, want 3", len(groups))
	}
	if c.Toasts().Len() != 0 {
		t.Errorf("got %d toasts, want 0", c.Toasts().Len())
	}
	if state, _ := c.State(); state != Success {
		t.Errorf("State = %s, want success", state)
	}
	if !c.Snapshot().MultiVenue {
		t.Error("MultiVenue = false for a city search")
	}
}

func slotJSON(slots []slot.Slot) string {
	out := ""
	for i, s := range slots {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"venue_name": %q, "date": %q, "time": %q, "status": %q, "guests": %d}`,
			s.VenueName, s.Date, s.Time, s.Status, *s.Guests)
	}
	return out
}

func TestSearch_ServerErrorScenario(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"db down"}`))
	}))
	defer server.Close()

	fetcher := &fakeFetcher{slots: nycSlots()}
	c := newTestController(fetcher)
	if err := c.Search(context.Background(), filter.Filter{City: "NYC", Guests: 6}, true); err != nil {
		t.Fatal(err)
	}

	// Swap in the failing backend while keeping the previous results
	c.fetcher = api.NewClient(server.URL, 5*time.Second)
	err := c.Search(context.Background(), filter.Filter{City: "NYC", Guests: 6}, true)
	if err == nil {
		t.Fatal("Search() expected error")
	}

	toasts := c.Toasts().List()
	if len(toasts) != 1 {
		t.Fatalf("got %d toasts, want 1", len(toasts))
	}
	if toasts[0].Message != "Error loading data: db down" || toasts[0].Kind != toast.Error {
		t.Errorf("toast = %+v", toasts[0])
	}
	if len(c.Slots()) != 12 {
		t.Errorf("slots changed on failure: got %d, want 12", len(c.Slots()))
	}
	if state, msg := c.State(); state != Failed || msg != "db down" {
		t.Errorf("State = %s %q, want failed \"db down\"", state, msg)
	}
	if c.Loading() {
		t.Error("Loading() = true after failure")
	}
}

func TestSearch_GuestRefilter(t *testing.T) {
	fetcher := &fakeFetcher{slots: []slot.Slot{
		{VenueName: "A", Guests: slot.Guests(2)},
		{VenueName: "B", Guests: slot.Guests(6)},
		{VenueName: "C"},
	}}
	c := newTestController(fetcher)

	if err := c.Search(context.Background(), filter.Filter{Guests: 6}, true); err != nil {
		t.Fatal(err)
	}
	got := c.Slots()
	if len(got) != 1 || got[0].VenueName != "B" {
		t.Errorf("Slots() = %+v, want only B", got)
	}

	if err := c.Search(context.Background(), filter.Filter{}, true); err != nil {
		t.Fatal(err)
	}
	if len(c.Slots()) != 3 {
		t.Errorf("without a guest filter got %d slots, want 3", len(c.Slots()))
	}
}

func TestSearch_ResetsDrillDown(t *testing.T) {
	fetcher := &fakeFetcher{slots: nycSlots()}
	c := newTestController(fetcher)

	if err := c.Search(context.Background(), filter.Filter{City: "NYC"}, true); err != nil {
		t.Fatal(err)
	}
	c.SelectVenue("Puttery (NYC)")
	if c.Selected() != "Puttery (NYC)" {
		t.Fatalf("Selected() = %q", c.Selected())
	}

	if err := c.Search(context.Background(), filter.Filter{City: "NYC"}, true); err != nil {
		t.Fatal(err)
	}
	if c.Selected() != "" {
		t.Errorf("Selected() = %q after new search, want empty", c.Selected())
	}
}

func TestDrillDown(t *testing.T) {
	fetcher := &fakeFetcher{slots: []slot.Slot{
		{VenueName: "Puttery (NYC)", Date: "2025-03-02", Time: "9:00 PM"},
		{VenueName: "Puttery (NYC)", Date: "2025-03-01", Time: "7:00 PM"},
		{VenueName: "Swingers (NYC)", Date: "2025-03-01", Time: "7:00 PM"},
	}}
	c := newTestController(fetcher)
	if err := c.Search(context.Background(), filter.Filter{}, true); err != nil {
		t.Fatal(err)
	}

	if c.VenueSlots() != nil {
		t.Error("VenueSlots() should be nil with no selection")
	}

	c.SelectVenue("Puttery (NYC)")
	detail := c.VenueSlots()
	if detail == nil || detail.SlotCount() != 2 {
		t.Fatalf("VenueSlots() = %+v", detail)
	}
	if detail.Dates[0].Date != "2025-03-01" {
		t.Errorf("detail dates not ascending: %+v", detail.Dates)
	}

	c.SelectVenue("Nowhere")
	if detail := c.VenueSlots(); detail == nil || detail.SlotCount() != 0 {
		t.Errorf("VenueSlots() for unknown venue = %+v, want empty", detail)
	}

	c.Back()
	if c.Selected() != "" {
		t.Errorf("Selected() after Back = %q", c.Selected())
	}
}

// blockingFetcher holds each request until released, so overlapping searches can be ordered
type blockingFetcher struct {
	results map[string][]slot.Slot
	started chan string
	release map[string]chan struct{}
}

func (f *blockingFetcher) FetchSlots(ctx context.Context, flt filter.Filter) ([]slot.Slot, error) {
	f.started <- flt.City
	select {
	case <-f.release[flt.City]:
		return f.results[flt.City], nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (f *blockingFetcher) ClearData(ctx context.Context) error { return nil }

func TestSearch_LatestWins(t *testing.T) {
	fetcher := &blockingFetcher{
		results: map[string][]slot.Slot{
			"NYC":    {{VenueName: "Swingers (NYC)"}},
			"London": {{VenueName: "Swingers (London)"}},
		},
		started: make(chan string, 2),
		release: map[string]chan struct{}{
			"NYC":    make(chan struct{}),
			"London": make(chan struct{}),
		},
	}
	c := newTestController(fetcher)

	firstErr := make(chan error, 1)
	go func() {
		firstErr <- c.Search(context.Background(), filter.Filter{City: "NYC"}, true)
	}()
	<-fetcher.started

	secondErr := make(chan error, 1)
	go func() {
		secondErr <- c.Search(context.Background(), filter.Filter{City: "London"}, true)
	}()
	<-fetcher.started

	// The first request was canceled by the second search
	if err := <-firstErr; !errors.Is(err, ErrSuperseded) {
		t.Errorf("first Search() error = %v, want ErrSuperseded", err)
	}

	close(fetcher.release["London"])
	if err := <-secondErr; err != nil {
		t.Fatalf("second Search() error = %v", err)
	}

	slots := c.Slots()
	if len(slots) != 1 || slots[0].VenueName != "Swingers (London)" {
		t.Errorf("Slots() = %+v, want the London result", slots)
	}
	if c.Toasts().Len() != 0 {
		t.Errorf("superseded search produced %d toasts", c.Toasts().Len())
	}
}

func TestClear(t *testing.T) {
	tests := []struct {
		name       string
		confirm    func() bool
		clearErr   error
		wantClears int
		wantSlots  int
		wantToast  string
		wantKind   toast.Kind
	}{
		{
			name:       "declined",
			confirm:    func() bool { return false },
			wantClears: 0,
			wantSlots:  12,
		},
		{
			name:       "confirmed",
			confirm:    func() bool { return true },
			wantClears: 1,
			wantSlots:  0,
			wantToast:  "Data cleared successfully",
			wantKind:   toast.Success,
		},
		{
			name:       "no confirmation needed",
			wantClears: 1,
			wantSlots:  0,
			wantToast:  "Data cleared successfully",
			wantKind:   toast.Success,
		},
		{
			name:       "backend failure",
			confirm:    func() bool { return true },
			clearErr:   errors.New("connection refused"),
			wantClears: 1,
			wantSlots:  12,
			wantToast:  "Error clearing data: connection refused",
			wantKind:   toast.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &fakeFetcher{slots: nycSlots(), clearErr: tt.clearErr}
			c := newTestController(fetcher)
			if err := c.Search(context.Background(), filter.Filter{}, true); err != nil {
				t.Fatal(err)
			}

			err := c.Clear(context.Background(), tt.confirm)
			if (err != nil) != (tt.clearErr != nil) {
				t.Errorf("Clear() error = %v", err)
			}
			if fetcher.clears != tt.wantClears {
				t.Errorf("backend clears = %d, want %d", fetcher.clears, tt.wantClears)
			}
			if len(c.Slots()) != tt.wantSlots {
				t.Errorf("slots = %d, want %d", len(c.Slots()), tt.wantSlots)
			}

			toasts := c.Toasts().List()
			if tt.wantToast == "" {
				if len(toasts) != 0 {
					t.Errorf("unexpected toasts: %+v", toasts)
				}
				return
			}
			if len(toasts) != 1 || toasts[0].Message != tt.wantToast || toasts[0].Kind != tt.wantKind {
				t.Errorf("toasts = %+v, want %q (%s)", toasts, tt.wantToast, tt.wantKind)
			}
			if tt.wantKind == toast.Success && toasts[0].Duration != ClearedDuration {
				t.Errorf("success toast duration = %v, want %v", toasts[0].Duration, ClearedDuration)
			}
		})
	}
}

func TestNeighborhoodFilter(t *testing.T) {
	fetcher := &fakeFetcher{slots: []slot.Slot{
		{VenueName: "Swingers (NYC)", Date: "2025-03-01"},
		{VenueName: "Puttery (NYC)", Date: "2025-03-01"},
	}}
	c := newTestController(fetcher)
	if err := c.Search(context.Background(), filter.Filter{}, true); err != nil {
		t.Fatal(err)
	}

	c.SetNeighborhoods([]string{"Midtown"})
	groups := c.Groups(aggregate.Options{})
	if len(groups) != 1 || groups[0].Key != "Swingers (NYC)" {
		t.Errorf("Groups() = %+v, want only Swingers (NYC)", groups)
	}
	if len(c.Slots()) != 2 {
		t.Error("neighborhood filter must not change the underlying slot list")
	}

	c.SelectVenue("Puttery (NYC)")
	if detail := c.VenueSlots(); detail == nil || detail.SlotCount() != 0 {
		t.Errorf("drill-down outside the neighborhoods = %+v, want empty", detail)
	}
	if got := c.VenueDetail("Swingers (NYC)").SlotCount(); got != 1 {
		t.Errorf("VenueDetail(Swingers (NYC)) = %d slots, want 1", got)
	}

	c.SetNeighborhoods(nil)
	if len(c.Groups(aggregate.Options{})) != 2 {
		t.Error("clearing neighborhoods should show every venue")
	}
	if detail := c.VenueSlots(); detail == nil || detail.SlotCount() != 1 {
		t.Errorf("drill-down without neighborhoods = %+v, want 1 slot", detail)
	}
}

func TestRefresh(t *testing.T) {
	fetcher := &fakeFetcher{slots: nycSlots()}
	c := newTestController(fetcher)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(fetcher.filters) != 0 {
		t.Fatal("Refresh() before any search should not fetch")
	}

	want := filter.Filter{City: "London", Guests: 2}
	if err := c.Search(context.Background(), want, true); err != nil {
		t.Fatal(err)
	}
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(fetcher.filters) != 2 || fetcher.filters[1] != want {
		t.Errorf("Refresh() filters = %+v", fetcher.filters)
	}
}

func TestSnapshot(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{slots: nycSlots()}
	c := New(fetcher, toast.New(toast.WithAfterFunc(noTimers)), WithClock(func() time.Time { return fixed }))

	if s := c.Snapshot(); s.State != Idle || len(s.Slots) != 0 {
		t.Errorf("initial snapshot = %+v", s)
	}

	if err := c.Search(context.Background(), InitialFilter, true); err != nil {
		t.Fatal(err)
	}
	s := c.Snapshot()
	if s.Filter != InitialFilter || !s.UpdatedAt.Equal(fixed) {
		t.Errorf("snapshot = %+v", s)
	}

	// Mutating the snapshot must not leak into the controller
	s.Slots[0].VenueName = "changed"
	if c.Slots()[0].VenueName == "changed" {
		t.Error("Snapshot() shares its slot slice with the controller")
	}
}
