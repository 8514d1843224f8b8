package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pfrederiksen/venue-slots/internal/controller"
	"github.com/spf13/cobra"
)

// placeholder is shown for values the backend could not provide
const placeholder = "N/A"

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the backend scrape status and scrape durations",
		Args:  cobra.NoArgs,
		RunE:  runStatus,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	format, err := outputFormat()
	if err != nil {
		return err
	}

	client := newClient()
	ctrl := newController(client, cmd.ErrOrStderr())
	stats := ctrl.Stats(commandContext(cmd), client)

	switch format {
	case FormatJSON:
		return writeJSON(cmd.OutOrStdout(), stats)
	case FormatText:
		return writeStatus(cmd.OutOrStdout(), stats, flagVerbose)
	default:
		return fmt.Errorf("format %s is not supported by status", format)
	}
}

// writeStatus prints the scrape status. Failed requests show placeholders instead of failing;
// their errors are only printed in verbose mode.
func writeStatus(w io.Writer, stats controller.Stats, verbose bool) error {
	fmt.Fprintln(w, "Scraper")
	if s := stats.Scrape; s != nil {
		state := "idle"
		switch {
		case s.Running:
			state = "running"
		case s.Completed:
			state = "completed"
		}
		fmt.Fprintf(w, "  State:        %s\n", state)
		fmt.Fprintf(w, "  Progress:     %s\n", orPlaceholder(s.Progress))
		fmt.Fprintf(w, "  Website:      %s\n", orPlaceholder(s.Website))
		fmt.Fprintf(w, "  Current date: %s\n", orPlaceholder(s.CurrentDate))
		fmt.Fprintf(w, "  Slots found:  %d\n", s.TotalSlotsFound)
		if s.Error != "" {
			fmt.Fprintf(w, "  Error:        %s\n", s.Error)
		}
	} else {
		fmt.Fprintf(w, "  State:        %s\n", placeholder)
		if msg, ok := stats.Errors["status"]; ok && verbose {
			fmt.Fprintf(w, "  (%s)\n", msg)
		}
	}

	fmt.Fprintln(w, "\nAverage scrape durations")
	if msg, ok := stats.Errors["durations"]; ok {
		if verbose {
			fmt.Fprintf(w, "  %s (%s)\n", placeholder, msg)
		} else {
			fmt.Fprintf(w, "  %s\n", placeholder)
		}
		return nil
	}
	if len(stats.Durations) == 0 {
		fmt.Fprintf(w, "  %s\n", placeholder)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, d := range stats.Durations {
		fmt.Fprintf(tw, "  %s\t%.1fs\n", d.Website, d.DurationSeconds)
	}
	return tw.Flush()
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
