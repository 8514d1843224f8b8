package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/config"
	"github.com/pfrederiksen/venue-slots/internal/notifier"
	"github.com/pfrederiksen/venue-slots/internal/slot"
	"github.com/pfrederiksen/venue-slots/internal/telegram"
)

var (
	botToken    = flag.String("bot-token", os.Getenv("TELEGRAM_BOT_TOKEN"), "Telegram bot token (or env: TELEGRAM_BOT_TOKEN)")
	chatID      = flag.String("chat-id", os.Getenv("TELEGRAM_CHAT_ID"), "Telegram chat ID (or env: TELEGRAM_CHAT_ID)")
	slotsFile   = flag.String("slots-file", "", "Path to 'venue-slots search --format json' output (or read from stdin)")
	dryRun      = flag.Bool("dry-run", false, "Print messages without sending")
	useTwitter  = flag.Bool("twitter", false, "Post one status per venue")
	useTelegram = flag.Bool("telegram", false, "Send a Telegram digest")
	maxVenues   = flag.Int("max-venues", 10, "Maximum number of venues to announce")
	venueFilter = flag.String("venue", "", "Only announce venues whose name contains this text")
	hidePast    = flag.Bool("hide-past", true, "Filter out slots on past dates (default: true)")
	daysAhead   = flag.Int("days-ahead", 0, "Only announce slots within N days (0 = disabled)")
	title       = flag.String("title", notifier.DefaultDigestTitle, "Telegram digest title")
)

func main() {
	flag.Parse()

	slots, err := readSlots(*slotsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading slots: %v\n", err)
		os.Exit(1)
	}

	slots = filterByVenue(slots, *venueFilter)
	slots = filterByTime(slots, time.Now(), *hidePast, *daysAhead)

	groups := aggregate.VenueGroups(slots, aggregate.Asc)
	if len(groups) > *maxVenues {
		groups = groups[:*maxVenues]
	}
	if len(groups) == 0 {
		fmt.Println("No slots match criteria")
		os.Exit(0)
	}

	n, err := buildNotifier()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *dryRun {
		fmt.Printf("DRY RUN MODE - Would announce %d venues:\n\n", len(groups))
	}
	if err := n.Notify(context.Background(), groups); err != nil {
		fmt.Fprintf(os.Stderr, "Error sending announcements: %v\n", err)
		os.Exit(1)
	}
	if !*dryRun {
		fmt.Printf("Successfully announced %d venues\n", len(groups))
	}
}

func buildNotifier() (notifier.Notifier, error) {
	if *dryRun {
		return notifier.NewDryRunNotifier(os.Stdout), nil
	}

	cfg := config.Load()
	var all notifier.Multi
	if *useTwitter {
		tw, err := notifier.NewTwitterNotifier(cfg.Twitter)
		if err != nil {
			return nil, fmt.Errorf("initializing Twitter client: %w", err)
		}
		all = append(all, tw)
	}
	if *useTelegram {
		var opts []telegram.Option
		if cfg.TelegramEndpoint != "" {
			opts = append(opts, telegram.WithServerURL(cfg.TelegramEndpoint))
		}
		client, err := telegram.NewClient(*botToken, *chatID, opts...)
		if err != nil {
			return nil, fmt.Errorf("initializing Telegram client: %w", err)
		}
		all = append(all, notifier.NewTelegramNotifier(client, *title))
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("nothing to do: pass --dry-run, --twitter or --telegram")
	}
	return all, nil
}

// readSlots reads search output from file or stdin. Grouped, flat and single-venue
// results are all accepted.
func readSlots(filePath string) ([]slot.Slot, error) {
	var reader io.Reader
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("opening slots file: %w", err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
			}
		}()
		reader = f
	} else {
		reader = os.Stdin
	}
	return decodeSlots(reader)
}

func decodeSlots(r io.Reader) ([]slot.Slot, error) {
	var result struct {
		Groups []aggregate.Group     `json:"groups"`
		Slots  []slot.Slot           `json:"slots"`
		Venue  *aggregate.VenueGroup `json:"venue"`
	}
	if err := json.NewDecoder(r).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	slots := append([]slot.Slot(nil), result.Slots...)
	slots = append(slots, aggregate.Flatten(result.Groups)...)
	if result.Venue != nil {
		for _, d := range result.Venue.Dates {
			slots = append(slots, d.Slots...)
		}
	}
	return slots, nil
}

// filterByVenue keeps slots whose venue name contains text, case-insensitively
func filterByVenue(slots []slot.Slot, text string) []slot.Slot {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return slots
	}
	filtered := make([]slot.Slot, 0, len(slots))
	for _, s := range slots {
		if strings.Contains(strings.ToLower(s.DisplayName()), text) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// filterByTime applies time-based filtering (past dates, days ahead).
// Slots without a parseable date are kept.
func filterByTime(slots []slot.Slot, now time.Time, hidePastSlots bool, daysAheadFilter int) []slot.Slot {
	if !hidePastSlots && daysAheadFilter <= 0 {
		return slots
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	filtered := make([]slot.Slot, 0, len(slots))
	for _, s := range slots {
		day, ok := slot.ParseDate(s.Date)
		if !ok {
			filtered = append(filtered, s)
			continue
		}
		daysUntil := int(day.Sub(today).Hours() / 24)
		if hidePastSlots && daysUntil < 0 {
			continue
		}
		if daysAheadFilter > 0 && daysUntil >= daysAheadFilter {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}
