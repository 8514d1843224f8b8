package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/logger"
)

// Notifier defines the interface for announcing new availability
type Notifier interface {
	// Notify posts notifications for the given venue groups
	Notify(ctx context.Context, groups []aggregate.VenueGroup) error
}

// Multi fans a notification out to several notifiers.
// Every notifier is tried; the failures are joined into one error.
type Multi []Notifier

// Notify calls each notifier in order
func (m Multi) Notify(ctx context.Context, groups []aggregate.VenueGroup) error {
	var errs []error
	for i, n := range m {
		if err := n.Notify(ctx, groups); err != nil {
			logger.Error("Notifier failed", logger.Fields{"notifier": i}, err)
			logger.IncrCounter("notify.errors")
			errs = append(errs, fmt.Errorf("notifier %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}
