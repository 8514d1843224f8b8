package controller

import (
	"context"
	"sync"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/api"
	"github.com/pfrederiksen/venue-slots/internal/logger"
	"github.com/pfrederiksen/venue-slots/internal/slot"
)

// AutoRefresh repeats the last search every interval until stop is called or ctx is done.
// onRefresh, when non-nil, receives the slots that were not present before each refresh.
// stop blocks until the refresh goroutine has exited and may be called more than once.
func (c *Controller) AutoRefresh(ctx context.Context, interval time.Duration, onRefresh func(added []slot.Slot)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				before := c.Slots()
				if err := c.Refresh(ctx); err != nil {
					// Failures already surfaced as toasts
					logger.Debug("Auto refresh failed", logger.Fields{
						"error": err.Error(),
					})
					continue
				}
				if onRefresh != nil {
					onRefresh(Diff(before, c.Slots()))
				}
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
		<-done
	}
}

// Diff returns the slots in current whose key does not appear in previous, in current's order
func Diff(previous, current []slot.Slot) []slot.Slot {
	seen := make(map[string]bool, len(previous))
	for _, s := range previous {
		seen[s.Key()] = true
	}

	var added []slot.Slot
	for _, s := range current {
		if !seen[s.Key()] {
			added = append(added, s)
			// Duplicates within current are reported once
			seen[s.Key()] = true
		}
	}
	return added
}

// StatusSource reports backend scrape progress
type StatusSource interface {
	Status(ctx context.Context) (*api.ScrapeStatus, error)
	ScrapingDurations(ctx context.Context) (*api.Durations, error)
}

// Stats are the totals shown by the status display
type Stats struct {
	Total       int                `json:"total"`
	Available   int                `json:"available"`
	FewLeft     int                `json:"few_left"`
	Unavailable int                `json:"unavailable"`
	Venues      int                `json:"venues"`
	Scrape      *api.ScrapeStatus  `json:"scrape,omitempty"`
	Durations   []api.ScrapingTask `json:"durations,omitempty"`
	// Errors holds the failed backend calls by name. They are logged and kept out of JSON.
	Errors map[string]string `json:"-"`
}

// Stats summarizes the visible slots and, when src is non-nil, the backend scrape status.
// Status failures are logged and recorded in Errors rather than returned, so the display
// degrades to placeholders.
func (c *Controller) Stats(ctx context.Context, src StatusSource) Stats {
	stats := CountSlots(c.Visible())

	if src == nil {
		return stats
	}

	if status, err := src.Status(ctx); err != nil {
		logger.Warn("Fetching scrape status failed", logger.Fields{"error": err.Error()})
		stats.addError("status", err)
	} else {
		stats.Scrape = status
	}

	if durations, err := src.ScrapingDurations(ctx); err != nil {
		logger.Warn("Fetching scrape durations failed", logger.Fields{"error": err.Error()})
		stats.addError("durations", err)
	} else {
		stats.Durations = durations.Average()
	}

	return stats
}

func (s *Stats) addError(key string, err error) {
	if s.Errors == nil {
		s.Errors = make(map[string]string)
	}
	s.Errors[key] = err.Error()
}

// CountSlots tallies slots by availability and counts distinct venues
func CountSlots(slots []slot.Slot) Stats {
	stats := Stats{Total: len(slots)}
	venues := make(map[string]bool)
	for _, s := range slots {
		venues[s.DisplayName()] = true
		switch s.Availability() {
		case slot.FewLeft:
			stats.FewLeft++
		case slot.Unavailable:
			stats.Unavailable++
		default:
			stats.Available++
		}
	}
	stats.Venues = len(venues)
	return stats
}
