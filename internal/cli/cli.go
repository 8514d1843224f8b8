package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/venue-slots/internal/api"
	"github.com/pfrederiksen/venue-slots/internal/config"
	"github.com/pfrederiksen/venue-slots/internal/controller"
	"github.com/pfrederiksen/venue-slots/internal/logger"
	"github.com/pfrederiksen/venue-slots/internal/toast"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagAPIBase  string
	flagFormat   string
	flagVerbose  bool
	flagLogLevel string
	flagTimeout  time.Duration
)

// now is the clock used for relative dates; tests pin it
var now = time.Now

// NewRootCmd creates the root command with every subcommand attached
func NewRootCmd() *cobra.Command {
	cfg := config.Load()

	cmd := &cobra.Command{
		Use:   "venue-slots",
		Short: "Browse bookable venue slots collected by the scraping backend",
		Long: `A CLI for the venue availability scraper.
Searches the slots the backend has collected, groups them by venue or date,
and can watch for new availability, announce it, or serve it over HTTP.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
	}

	cmd.PersistentFlags().StringVar(&flagAPIBase, "api-base", cfg.APIBase, "Backend API base URL (or env: VENUE_SLOTS_API_BASE)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", string(FormatText), "Output format: text, json or ics")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output and debug logging")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", cfg.LogLevel, "Log level: DEBUG, INFO, WARN or ERROR (or env: VENUE_SLOTS_LOG_LEVEL)")
	cmd.PersistentFlags().DurationVar(&flagTimeout, "timeout", cfg.Timeout, "Backend request timeout (or env: VENUE_SLOTS_TIMEOUT)")

	cmd.AddCommand(
		newSearchCmd(),
		newClearCmd(),
		newStatusCmd(),
		newVenuesCmd(),
		newWatchCmd(cfg),
		newAnnounceCmd(cfg),
		newServeCmd(cfg),
	)

	return cmd
}

// setupLogging points the default logger at stderr so stdout carries only command output
func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logger.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	return nil
}

// outputFormat validates --format
func outputFormat() (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(flagFormat)))
	switch format {
	case FormatText, FormatJSON, FormatICS:
		return format, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'ics')", flagFormat)
}

func newClient() *api.Client {
	return api.NewClient(flagAPIBase, flagTimeout)
}

// newController builds a controller whose toasts are printed to w as they appear
func newController(client controller.Fetcher, w io.Writer) *controller.Controller {
	toasts := toast.New(toast.WithOnChange(func(ev toast.Event) {
		if ev.Type == toast.Added {
			fmt.Fprintf(w, "[%s] %s\n", ev.Toast.Kind, ev.Toast.Message)
		}
	}))
	return controller.New(client, toasts)
}

// commandContext returns the command's context, never nil
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
