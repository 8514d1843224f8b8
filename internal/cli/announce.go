package cli

import (
	"fmt"

	"github.com/pfrederiksen/venue-slots/internal/aggregate"
	"github.com/pfrederiksen/venue-slots/internal/config"
	"github.com/pfrederiksen/venue-slots/internal/controller"
	"github.com/pfrederiksen/venue-slots/internal/notifier"
	"github.com/pfrederiksen/venue-slots/internal/storage"
	"github.com/pfrederiksen/venue-slots/internal/telegram"
	"github.com/spf13/cobra"
)

var (
	flagDryRun   bool
	flagTwitter  bool
	flagTelegram bool

	flagNewOnly         bool
	flagRefreshSnapshot bool
	flagDataDir         string
)

func addNotifierFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Print the announcements instead of posting them")
	cmd.Flags().BoolVar(&flagTwitter, "twitter", false, "Post one status per venue (needs TWITTER_* credentials)")
	cmd.Flags().BoolVar(&flagTelegram, "telegram", false, "Send a digest to a Telegram chat (needs TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID)")
}

func anyNotifierSelected() bool {
	return flagDryRun || flagTwitter || flagTelegram
}

// buildNotifier returns the selected notifiers. --dry-run replaces the real ones.
func buildNotifier(cmd *cobra.Command, cfg config.Config) (notifier.Notifier, error) {
	if flagDryRun {
		return notifier.NewDryRunNotifier(cmd.OutOrStdout()), nil
	}

	var all notifier.Multi
	if flagTwitter {
		tw, err := notifier.NewTwitterNotifier(cfg.Twitter)
		if err != nil {
			return nil, fmt.Errorf("creating twitter notifier: %w", err)
		}
		all = append(all, tw)
	}
	if flagTelegram {
		var opts []telegram.Option
		if cfg.TelegramEndpoint != "" {
			opts = append(opts, telegram.WithServerURL(cfg.TelegramEndpoint))
		}
		client, err := telegram.NewClient(cfg.TelegramToken, cfg.TelegramChatID, opts...)
		if err != nil {
			return nil, fmt.Errorf("creating telegram client: %w", err)
		}
		all = append(all, notifier.NewTelegramNotifier(client, ""))
	}

	if len(all) == 0 {
		return nil, fmt.Errorf("choose at least one of --dry-run, --twitter or --telegram")
	}
	if len(all) == 1 {
		return all[0], nil
	}
	return all, nil
}

func newAnnounceCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announce",
		Short: "Announce the slots of a search on Twitter or Telegram",
		Long: `Run a search and announce its slots, one venue at a time.

With --new-only, only slots missing from the previous run of the same search are
announced; the snapshot is updated after a successful announcement. --refresh
updates the snapshot without announcing anything.`,
		Example: `  venue-slots announce --city london --date tomorrow --dry-run
  venue-slots announce --city nyc --next-days 3 --telegram --new-only`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnounce(cmd, cfg)
		},
	}
	addFilterFlags(cmd)
	addNotifierFlags(cmd)
	cmd.Flags().BoolVar(&flagNewOnly, "new-only", false, "Only announce slots not seen by the previous run of this search")
	cmd.Flags().BoolVar(&flagRefreshSnapshot, "refresh", false, "Save the snapshot without announcing")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", storage.DefaultDataDir, "Data directory for snapshots")
	cmd.MarkFlagsMutuallyExclusive("refresh", "dry-run")
	return cmd
}

func runAnnounce(cmd *cobra.Command, cfg config.Config) error {
	var n notifier.Notifier
	if !flagRefreshSnapshot {
		var err error
		if n, err = buildNotifier(cmd, cfg); err != nil {
			return err
		}
	}

	f, multiVenue, err := buildFilter(now())
	if err != nil {
		return err
	}

	var store *storage.Storage
	if flagNewOnly || flagRefreshSnapshot {
		if store, err = storage.New(flagDataDir); err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
	}

	ctx := commandContext(cmd)
	ctrl := newController(newClient(), cmd.ErrOrStderr())
	ctrl.SetNeighborhoods(flagNeighborhoods)
	if err := ctrl.Search(ctx, f, multiVenue); err != nil {
		return fmt.Errorf("searching slots: %w", err)
	}
	current := ctrl.Visible()

	if flagRefreshSnapshot {
		if err := store.Save(f, current); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Snapshot refreshed successfully.")
		return nil
	}

	announce := current
	if flagNewOnly {
		previous, err := store.Load(f)
		if err != nil {
			return fmt.Errorf("loading snapshot: %w", err)
		}
		announce = controller.Diff(previous.List(), current)
		if flagVerbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Loaded previous snapshot with %d slots, %d new\n", len(previous.Slots), len(announce))
		}
	}

	groups := aggregate.VenueGroups(announce, aggregate.Asc)
	if len(groups) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No slots to announce.")
		return nil
	}
	if err := n.Notify(ctx, groups); err != nil {
		return fmt.Errorf("announcing slots: %w", err)
	}

	// A dry run leaves the snapshot alone so the real run still sees the slots as new
	if flagNewOnly && !flagDryRun {
		if err := store.Save(f, current); err != nil {
			return fmt.Errorf("saving snapshot: %w", err)
		}
	}
	if !flagDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Announced %d venue%s.\n", len(groups), plural(len(groups)))
	}
	return nil
}
