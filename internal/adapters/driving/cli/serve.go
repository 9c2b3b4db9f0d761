package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/rest"
	"github.com/custodia-labs/jukebox-cli/internal/logger"
)

// defaultServeAddr is used when neither --addr nor settings give an address.
const defaultServeAddr = ":8080"

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the REST API and Prometheus metrics endpoint.

Endpoints:
  POST /api/v1/ask               {"query": "play hey jude"}
  GET  /api/v1/tracks            ?title=&artist=&limit=&offset=
  GET  /api/v1/tracks/{id}
  GET  /api/v1/tracks/{id}/audio
  GET  /healthz
  GET  /metrics

Prompt files in ~/.jukebox/prompts are reloaded when edited.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from settings, then :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if agentService == nil || libraryService == nil {
		return errors.New("agent and library services not configured")
	}

	server, err := rest.NewServer(&rest.Ports{Agent: agentService, Library: libraryService}, metrics)
	if err != nil {
		return err
	}

	addr := resolveServeAddr()
	g, ctx := errgroup.WithContext(cmd.Context())

	g.Go(func() error {
		cmd.Printf("REST API listening on %s\n", addr)
		return server.Run(ctx, addr)
	})

	if promptWatcher != nil {
		g.Go(func() error {
			// A broken watcher only disables hot reload.
			if err := promptWatcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Warn("prompt watcher stopped: %v", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func resolveServeAddr() string {
	if serveAddr != "" {
		return serveAddr
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.Server.Addr != "" {
			return s.Server.Addr
		}
	}
	return defaultServeAddr
}
