package notifier

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
)

// DryRunNotifier prints what would be tweeted without actually posting
type DryRunNotifier struct {
	out io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to w (stdout when nil)
func NewDryRunNotifier(w io.Writer) *DryRunNotifier {
	if w == nil {
		w = os.Stdout
	}
	return &DryRunNotifier{out: w}
}

// Notify prints the tweets that would be posted
func (n *DryRunNotifier) Notify(ctx context.Context, groups []aggregate.VenueGroup) error {
	for i, g := range groups {
		if err := ctx.Err(); err != nil {
			return err
		}
		tweet := formatTweet(g)
		fmt.Fprintf(n.out, "--- Tweet %d/%d ---\n", i+1, len(groups))
		fmt.Fprintln(n.out, tweet)
		fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", utf8.RuneCountInString(tweet))
	}
	return nil
}
