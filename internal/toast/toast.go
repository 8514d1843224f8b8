package toast

import (
	"sync"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/logger"
)

// DefaultDuration is how long a toast stays up when no duration is given
const DefaultDuration = 5 * time.Second

// Kind is the visual style of a toast
type Kind string

const (
	Error   Kind = "error"
	Success Kind = "success"
	Info    Kind = "info"
	Warning Kind = "warning"
)

// ID identifies a toast within its queue
type ID uint64

// Toast is one transient notification
type Toast struct {
	ID        ID            `json:"id"`
	Message   string        `json:"message"`
	Kind      Kind          `json:"kind"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// EventType says what happened to a toast
type EventType string

const (
	Added     EventType = "added"
	Dismissed EventType = "dismissed"
	Expired   EventType = "expired"
)

// Event is delivered to the OnChange subscriber
type Event struct {
	Type  EventType
	Toast Toast
}

// Timer is the subset of *time.Timer the queue needs
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. It matches time.AfterFunc so tests can swap in a fake clock.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type entry struct {
	toast Toast
	timer Timer
}

// Queue holds the active toasts. It is safe for concurrent use.
type Queue struct {
	mu       sync.Mutex
	entries  []entry
	nextID   ID
	limit    int
	closed   bool
	after    AfterFunc
	now      func() time.Time
	onChange func(Event)
}

// Option configures a Queue
type Option func(*Queue)

// WithLimit caps the number of visible toasts; the oldest is dropped when exceeded.
// A limit of zero or less means no cap.
func WithLimit(n int) Option {
	return func(q *Queue) {
		q.limit = n
	}
}

// WithOnChange registers a subscriber called after every add, dismiss, and expiry.
// The callback runs without the queue lock held.
func WithOnChange(fn func(Event)) Option {
	return func(q *Queue) {
		q.onChange = fn
	}
}

// WithAfterFunc replaces the timer source, for tests
func WithAfterFunc(fn AfterFunc) Option {
	return func(q *Queue) {
		q.after = fn
	}
}

// WithClock replaces the time source used for CreatedAt
func WithClock(now func() time.Time) Option {
	return func(q *Queue) {
		q.now = now
	}
}

// New creates an empty queue
func New(opts ...Option) *Queue {
	q := &Queue{
		after: realAfterFunc,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends a toast and schedules its expiry. A non-positive duration uses
// DefaultDuration. Enqueue on a closed queue returns 0 and does nothing.
func (q *Queue) Enqueue(message string, kind Kind, d time.Duration) ID {
	if d <= 0 {
		d = DefaultDuration
	}
	if kind == "" {
		kind = Info
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return 0
	}

	q.nextID++
	t := Toast{
		ID:        q.nextID,
		Message:   message,
		Kind:      kind,
		Duration:  d,
		CreatedAt: q.now(),
	}
	id := t.ID
	timer := q.after(d, func() { q.expire(id) })
	q.entries = append(q.entries, entry{toast: t, timer: timer})

	var dropped []Toast
	for q.limit > 0 && len(q.entries) > q.limit {
		oldest := q.entries[0]
		oldest.timer.Stop()
		dropped = append(dropped, oldest.toast)
		q.entries = q.entries[1:]
	}
	onChange := q.onChange
	q.mu.Unlock()

	logger.Debug("Toast enqueued", logger.Fields{
		"id":   id,
		"kind": string(kind),
	})
	logger.IncrCounter("toast.enqueued")

	if onChange != nil {
		onChange(Event{Type: Added, Toast: t})
		for _, old := range dropped {
			onChange(Event{Type: Dismissed, Toast: old})
		}
	}
	return id
}

// Dismiss removes a toast by id and stops its timer.
// It reports whether the toast was still in the queue.
func (q *Queue) Dismiss(id ID) bool {
	t, ok := q.remove(id)
	if ok {
		q.notify(Event{Type: Dismissed, Toast: t})
	}
	return ok
}

func (q *Queue) expire(id ID) {
	t, ok := q.remove(id)
	if ok {
		q.notify(Event{Type: Expired, Toast: t})
	}
}

func (q *Queue) remove(id ID) (Toast, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, e := range q.entries {
		if e.toast.ID == id {
			e.timer.Stop()
			q.entries = append(q.entries[:i:i], q.entries[i+1:]...)
			return e.toast, true
		}
	}
	return Toast{}, false
}

func (q *Queue) notify(ev Event) {
	q.mu.Lock()
	onChange := q.onChange
	q.mu.Unlock()
	if onChange != nil {
		onChange(ev)
	}
}

// List returns a copy of the active toasts in insertion order
func (q *Queue) List() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	toasts := make([]Toast, len(q.entries))
	for i, e := range q.entries {
		toasts[i] = e.toast
	}
	return toasts
}

// Len returns the number of active toasts
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Close stops every pending timer and empties the queue. Later Enqueue calls are ignored.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, e := range q.entries {
		e.timer.Stop()
	}
	q.entries = nil
	q.closed = true
}
