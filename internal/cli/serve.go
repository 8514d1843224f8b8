package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pfrederiksen/venue-slots/internal/config"
	"github.com/pfrederiksen/venue-slots/internal/controller"
	"github.com/pfrederiksen/venue-slots/internal/logger"
	"github.com/pfrederiksen/venue-slots/internal/server"
	"github.com/spf13/cobra"
)

var flagAddr string

func newServeCmd(cfg config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve search results over HTTP",
		Long: `Start an HTTP server exposing the search controller as JSON.

On startup it runs the default search (every London venue for 2 guests). With
VENUE_SLOTS_REFRESH set, the last search is repeated on that interval.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, cfg)
		},
	}
	cmd.Flags().StringVar(&flagAddr, "addr", cfg.ServeAddr, "Listen address (or env: VENUE_SLOTS_ADDR)")
	return cmd
}

func runServe(cmd *cobra.Command, cfg config.Config) error {
	ctx, cancel := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := newClient()
	ctrl := controller.New(client, nil)

	// A failed initial search is already a toast; the server still starts
	if err := ctrl.Search(ctx, controller.InitialFilter, true); err != nil {
		logger.Warn("Initial search failed", logger.Fields{"error": err.Error()})
	}

	if cfg.Refresh > 0 {
		stop := ctrl.AutoRefresh(ctx, cfg.Refresh, nil)
		defer stop()
	}

	srv := server.New(server.Config{
		Addr:       flagAddr,
		Controller: ctrl,
		Status:     client,
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Serving on %s (backend %s)\n", flagAddr, client.BaseURL())
	return srv.Run(ctx)
}
