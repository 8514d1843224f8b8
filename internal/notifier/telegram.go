package notifier

import (
	"context"
	"fmt"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/logger"
	"github.com/pfrederiksen/venue-slots/internal/telegram"
)

// DefaultDigestTitle heads Telegram digests
const DefaultDigestTitle = "New venue availability"

// MessageSender sends one text message; *telegram.Client satisfies it
type MessageSender interface {
	SendMessage(ctx context.Context, text string) error
}

// TelegramNotifier sends all groups as one digest message
type TelegramNotifier struct {
	sender MessageSender
	title  string
}

// NewTelegramNotifier creates a notifier; an empty title uses DefaultDigestTitle
func NewTelegramNotifier(sender MessageSender, title string) *TelegramNotifier {
	if title == "" {
		title = DefaultDigestTitle
	}
	return &TelegramNotifier{sender: sender, title: title}
}

// Notify sends the digest. Nothing is sent when there are no groups.
func (n *TelegramNotifier) Notify(ctx context.Context, groups []aggregate.VenueGroup) error {
	if len(groups) == 0 {
		return nil
	}
	if err := n.sender.SendMessage(ctx, telegram.FormatDigest(groups, n.title)); err != nil {
		return fmt.Errorf("sending telegram digest: %w", err)
	}
	logger.IncrCounter("notify.telegram.sent")
	return nil
}
