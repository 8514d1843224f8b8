package notifier

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/config"
	"github.com/pfrederiksen/venue-slots/internal/format"
	"github.com/pfrederiksen/venue-slots/internal/logger"
)

const (
	// MaxTweetLength is the status length limit, in characters
	MaxTweetLength = 280

	defaultTweetDelay = 2 * time.Second
	maxDatesPerTweet  = 4
	maxTimesPerDate   = 4
)

// TwitterNotifier posts one status per venue
type TwitterNotifier struct {
	client *twitter.Client
	delay  time.Duration
}

// TwitterOption configures a TwitterNotifier
type TwitterOption func(*twitterOptions)

type twitterOptions struct {
	transport http.RoundTripper
	delay     time.Duration
	delaySet  bool
}

// WithTransport sends signed requests through rt instead of the default transport
func WithTransport(rt http.RoundTripper) TwitterOption {
	return func(o *twitterOptions) {
		o.transport = rt
	}
}

// WithDelay sets the pause between consecutive statuses
func WithDelay(d time.Duration) TwitterOption {
	return func(o *twitterOptions) {
		o.delay = d
		o.delaySet = true
	}
}

// NewTwitterNotifier creates a new Twitter notifier from OAuth1 credentials
func NewTwitterNotifier(creds config.TwitterCredentials, opts ...TwitterOption) (*TwitterNotifier, error) {
	if !creds.Complete() {
		return nil, fmt.Errorf("missing required Twitter credentials")
	}

	o := twitterOptions{delay: defaultTweetDelay}
	for _, opt := range opts {
		opt(&o)
	}

	ctx := context.Background()
	if o.transport != nil {
		ctx = context.WithValue(ctx, oauth1.HTTPClient, &http.Client{Transport: o.transport})
	}

	oauthConfig := oauth1.NewConfig(creds.APIKey, creds.APISecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessSecret)
	httpClient := oauthConfig.Client(ctx, token)

	return &TwitterNotifier{
		client: twitter.NewClient(httpClient),
		delay:  o.delay,
	}, nil
}

// Notify posts a status for each venue
func (n *TwitterNotifier) Notify(ctx context.Context, groups []aggregate.VenueGroup) error {
	for i, g := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}

		tweet := formatTweet(g)
		start := time.Now()
		_, _, err := n.client.Statuses.Update(tweet, nil)
		logger.RecordTiming("notify.twitter", time.Since(start))
		if err != nil {
			return fmt.Errorf("failed to post tweet for venue %s: %w", g.VenueName, err)
		}
		logger.IncrCounter("notify.twitter.posted")
		logger.Debug("Posted tweet", logger.Fields{"venue": g.VenueName, "slots": g.SlotCount()})

		// Rate limiting: wait between tweets
		if i < len(groups)-1 && n.delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(n.delay):
			}
		}
	}

	return nil
}

// formatTweet formats a venue's new slots as a status
func formatTweet(g aggregate.VenueGroup) string {
	var tweet strings.Builder
	tweet.WriteString("🎯 New availability!\n\n")
	tweet.WriteString(fmt.Sprintf("📍 %s\n", format.VenueName(g.VenueName, "")))

	for i, d := range g.Dates {
		if i == maxDatesPerTweet {
			tweet.WriteString(fmt.Sprintf("➕ %d more date%s\n", len(g.Dates)-i, pluralize(len(g.Dates)-i)))
			break
		}
		times := make([]string, 0, len(d.Slots))
		for j, s := range d.Slots {
			if j == maxTimesPerDate {
				times = append(times, fmt.Sprintf("+%d", len(d.Slots)-j))
				break
			}
			times = append(times, format.NormalizeTime(s.Time))
		}
		tweet.WriteString(fmt.Sprintf("📅 %s: %s\n", format.Date(d.Date, format.DateShort), strings.Join(times, ", ")))
	}

	if url := bookingURL(g); url != "" {
		tweet.WriteString(fmt.Sprintf("\n🔗 %s\n", url))
	}
	tweet.WriteString("\n#VenueSlots")

	return truncate(tweet.String(), MaxTweetLength)
}

// bookingURL returns the first booking link in the group
func bookingURL(g aggregate.VenueGroup) string {
	for _, d := range g.Dates {
		for _, s := range d.Slots {
			if s.BookingURL != "" {
				return s.BookingURL
			}
		}
	}
	return ""
}

// truncate shortens s to at most limit characters, ending in "..."
func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

func pluralize(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
