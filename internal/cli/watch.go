package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/config"
	"github.com/pfrederiksen/venue-slots/internal/logger"
	"github.com/pfrederiksen/venue-slots/internal/slot"
	"github.com/spf13/cobra"
)

// DefaultWatchInterval is used when neither --interval nor VENUE_SLOTS_REFRESH is set
const DefaultWatchInterval = time.Minute

var flagInterval time.Duration

func newWatchCmd(cfg config.Config) *cobra.Command {
	interval := cfg.Refresh
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Repeat a search and print slots as they appear",
		Long: `Run a search, then repeat it every --interval and print only the slots that
were not there before. Pass --dry-run, --twitter or --telegram to also announce them.
Stops on Ctrl-C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, cfg)
		},
	}

	addFilterFlags(cmd)
	addNotifierFlags(cmd)
	cmd.Flags().DurationVar(&flagInterval, "interval", interval, "Time between searches (or env: VENUE_SLOTS_REFRESH)")
	return cmd
}

func runWatch(cmd *cobra.Command, cfg config.Config) error {
	if flagInterval <= 0 {
		return fmt.Errorf("--interval must be positive")
	}

	t := now()
	f, multiVenue, err := buildFilter(t)
	if err != nil {
		return err
	}

	var notify func(ctx context.Context, added []slot.Slot)
	if anyNotifierSelected() {
		n, err := buildNotifier(cmd, cfg)
		if err != nil {
			return err
		}
		notify = func(ctx context.Context, added []slot.Slot) {
			if err := n.Notify(ctx, aggregate.VenueGroups(added, aggregate.Asc)); err != nil {
				logger.Error("Announcing new slots failed", logger.Fields{"slots": len(added)}, err)
			}
		}
	}

	ctx, cancel := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	out := cmd.OutOrStdout()
	ctrl := newController(newClient(), cmd.ErrOrStderr())
	ctrl.SetNeighborhoods(flagNeighborhoods)

	if err := ctrl.Search(ctx, f, multiVenue); err != nil {
		return fmt.Errorf("searching slots: %w", err)
	}
	fmt.Fprintf(out, "Watching %s every %s (%d slots now). Press Ctrl-C to stop.\n", f, flagInterval, len(ctrl.Visible()))

	stop := ctrl.AutoRefresh(ctx, flagInterval, func(added []slot.Slot) {
		if len(added) == 0 {
			logger.Debug("No new slots", nil)
			return
		}
		fmt.Fprintf(out, "\n%s: %d new slot%s\n", now().Format("15:04:05"), len(added), plural(len(added)))
		if err := writeTable(out, aggregate.SortFlat(added, aggregate.Asc), flagVerbose); err != nil {
			logger.Warn("Writing new slots failed", logger.Fields{"error": err.Error()})
		}
		if notify != nil {
			notify(ctx, added)
		}
	})

	<-ctx.Done()
	stop()
	fmt.Fprintln(out, "Stopped watching.")
	return nil
}
