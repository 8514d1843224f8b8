package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/filter"
	"github.com/pfrederiksen/venue-slots/internal/logger"
	"github.com/pfrederiksen/venue-slots/internal/slot"
	"github.com/pfrederiksen/venue-slots/internal/toast"
	"github.com/pfrederiksen/venue-slots/internal/venue"
)

// ClearConfirmation is the question asked before clearing backend data
const ClearConfirmation = "Are you sure you want to clear all data?"

// ClearedMessage is shown after a successful clear
const ClearedMessage = "Data cleared successfully"

// ClearedDuration is how long the clear confirmation toast stays up
const ClearedDuration = 3 * time.Second

// ErrSuperseded is returned by Search when a newer search started before it finished.
// Its result was discarded.
var ErrSuperseded = errors.New("search superseded by a newer search")

// InitialFilter is the search issued on startup: every London venue for 2 guests
var InitialFilter = filter.Filter{City: "London", Guests: 2}

// State is the fetch lifecycle state
type State string

const (
	Idle    State = "idle"
	Loading State = "loading"
	Success State = "success"
	Failed  State = "failed"
)

// Fetcher is the backend the controller reads from and clears
type Fetcher interface {
	FetchSlots(ctx context.Context, f filter.Filter) ([]slot.Slot, error)
	ClearData(ctx context.Context) error
}

// Controller holds the search state. It is safe for concurrent use.
type Controller struct {
	fetcher Fetcher
	toasts  *toast.Queue
	now     func() time.Time

	mu            sync.Mutex
	state         State
	lastError     string
	slots         []slot.Slot
	filter        filter.Filter
	searched      bool
	multiVenue    bool
	selected      string
	neighborhoods []string
	updatedAt     time.Time
	seq           uint64
	cancel        context.CancelFunc
}

// Option configures a Controller
type Option func(*Controller)

// WithClock replaces the time source, for tests
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		c.now = now
	}
}

// New creates a controller reading from fetcher and reporting failures to toasts
func New(fetcher Fetcher, toasts *toast.Queue, opts ...Option) *Controller {
	c := &Controller{
		fetcher: fetcher,
		toasts:  toasts,
		now:     time.Now,
		state:   Idle,
		slots:   []slot.Slot{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.toasts == nil {
		c.toasts = toast.New()
	}
	return c
}

// Toasts returns the controller's toast queue
func (c *Controller) Toasts() *toast.Queue {
	return c.toasts
}

// Search fetches slots for f and, if it is still the latest search when the response
// arrives, replaces the slot list wholesale and closes any open drill-down.
//
// When f asks for a guest count, slots whose guests field differs are dropped even if the
// backend already filtered them. On failure an error toast is enqueued, the slot list is
// kept, and the error is returned. A search overtaken by a newer one returns ErrSuperseded
// and changes nothing.
func (c *Controller) Search(ctx context.Context, f filter.Filter, multiVenue bool) error {
	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	c.mu.Lock()
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	c.cancel = cancel
	c.state = Loading
	c.lastError = ""
	c.mu.Unlock()

	start := c.now()
	logger.IncrCounter("controller.search")
	logger.Debug("Search started", logger.Fields{
		"seq":    seq,
		"filter": f.String(),
	})

	slots, err := c.fetcher.FetchSlots(reqCtx, f)

	c.mu.Lock()
	if seq != c.seq {
		c.mu.Unlock()
		logger.Debug("Discarding superseded search", logger.Fields{
			"seq": seq,
		})
		return ErrSuperseded
	}
	c.cancel = nil

	if err != nil {
		c.state = Failed
		c.lastError = err.Error()
		c.mu.Unlock()

		logger.Error("Search failed", logger.Fields{
			"filter": f.String(),
		}, err)
		c.toasts.Enqueue(fmt.Sprintf("Error loading data: %s", err.Error()), toast.Error, 0)
		return err
	}

	if f.Guests > 0 {
		slots = filterGuests(slots, f.Guests)
	}
	if slots == nil {
		slots = []slot.Slot{}
	}

	c.slots = slots
	c.filter = f
	c.searched = true
	c.multiVenue = multiVenue
	c.selected = ""
	c.state = Success
	c.updatedAt = c.now()
	c.mu.Unlock()

	logger.SetGauge("controller.slots", float64(len(slots)))
	logger.RecordTiming("controller.search", c.now().Sub(start))
	logger.Info("Search completed", logger.Fields{
		"filter": f.String(),
		"slots":  len(slots),
	})
	return nil
}

// Refresh repeats the last successful search. It does nothing before the first one.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	f, multi, searched := c.filter, c.multiVenue, c.searched
	c.mu.Unlock()

	if !searched {
		return nil
	}
	return c.Search(ctx, f, multi)
}

// filterGuests keeps slots captured for exactly n guests
func filterGuests(slots []slot.Slot, n int) []slot.Slot {
	kept := make([]slot.Slot, 0, len(slots))
	for _, s := range slots {
		if s.HasGuests(n) {
			kept = append(kept, s)
		}
	}
	return kept
}

// Clear asks confirm and, if it returns true, deletes all backend data and empties the
// local slot list. A declined confirmation does nothing. A nil confirm clears without asking.
// Failures become error toasts and are returned.
func (c *Controller) Clear(ctx context.Context, confirm func() bool) error {
	if confirm != nil && !confirm() {
		logger.Debug("Clear declined", nil)
		return nil
	}

	if err := c.fetcher.ClearData(ctx); err != nil {
		logger.Error("Clear failed", nil, err)
		c.toasts.Enqueue(fmt.Sprintf("Error clearing data: %s", err.Error()), toast.Error, 0)
		return err
	}

	c.mu.Lock()
	c.slots = []slot.Slot{}
	c.selected = ""
	c.updatedAt = c.now()
	c.mu.Unlock()

	logger.SetGauge("controller.slots", 0)
	c.toasts.Enqueue(ClearedMessage, toast.Success, ClearedDuration)
	return nil
}

// State returns the fetch state and the message of the last failure, if any
func (c *Controller) State() (State, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.lastError
}

// Loading reports whether a search is in flight
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Loading
}

// Slots returns a copy of the current slot list, ignoring the neighborhood filter
func (c *Controller) Slots() []slot.Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]slot.Slot(nil), c.slots...)
}

// SetNeighborhoods restricts the displayed venues to those neighborhoods.
// An empty list shows every venue.
func (c *Controller) SetNeighborhoods(neighborhoods []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.neighborhoods = append([]string(nil), neighborhoods...)
}

// Visible returns the slot list after the neighborhood filter
func (c *Controller) Visible() []slot.Slot {
	c.mu.Lock()
	slots := c.slots
	neighborhoods := c.neighborhoods
	c.mu.Unlock()

	return venue.FilterByNeighborhoods(slots, neighborhoods)
}

// Groups aggregates the visible slots
func (c *Controller) Groups(opts aggregate.Options) []aggregate.Group {
	return aggregate.Aggregate(c.Visible(), opts)
}

// VenueGroups is the venue-first view of the visible slots
func (c *Controller) VenueGroups(order aggregate.Order) []aggregate.VenueGroup {
	return aggregate.VenueGroups(c.Visible(), order)
}

// SelectVenue opens the drill-down for a venue. Selecting a venue with no slots in the
// current list is allowed and shows an empty detail view.
func (c *Controller) SelectVenue(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = name
}

// Back closes the drill-down
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = ""
}

// Selected returns the open drill-down venue, or "" when none is open
func (c *Controller) Selected() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

// VenueSlots returns the dates of the selected venue in ascending order.
// It returns nil when no venue is selected.
func (c *Controller) VenueSlots() *aggregate.VenueGroup {
	selected := c.Selected()
	if selected == "" {
		return nil
	}
	detail := c.VenueDetail(selected)
	return &detail
}

// VenueDetail returns one venue's visible slots grouped by date, ascending.
// A venue without visible slots gets an empty date list.
func (c *Controller) VenueDetail(name string) aggregate.VenueGroup {
	groups := aggregate.VenueGroups(aggregate.ForVenue(c.Visible(), name), aggregate.Asc)
	if len(groups) == 0 {
		return aggregate.VenueGroup{VenueName: name, Dates: []aggregate.DateGroup{}}
	}
	return groups[0]
}

// Snapshot is a read-only copy of the controller state
type Snapshot struct {
	State         State         `json:"state"`
	Error         string        `json:"error,omitempty"`
	Filter        filter.Filter `json:"filter"`
	MultiVenue    bool          `json:"multi_venue"`
	Selected      string        `json:"selected,omitempty"`
	Neighborhoods []string      `json:"neighborhoods,omitempty"`
	Slots         []slot.Slot   `json:"slots"`
	UpdatedAt     time.Time     `json:"updated_at,omitempty"`
	Toasts        []toast.Toast `json:"toasts"`
}

// Snapshot returns a copy of the current state for renderers
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	s := Snapshot{
		State:         c.state,
		Error:         c.lastError,
		Filter:        c.filter,
		MultiVenue:    c.multiVenue,
		Selected:      c.selected,
		Neighborhoods: append([]string(nil), c.neighborhoods...),
		Slots:         append([]slot.Slot{}, c.slots...),
		UpdatedAt:     c.updatedAt,
	}
	c.mu.Unlock()

	s.Toasts = c.toasts.List()
	return s
}
