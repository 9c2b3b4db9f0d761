// Command jukebox is a music agent for a local song library.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/rest"
	"github.com/custodia-labs/jukebox-cli/internal/core/graph"
	"github.com/custodia-labs/jukebox-cli/internal/core/services"
	"github.com/custodia-labs/jukebox-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer func() { _ = logger.Sync() }()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	prompts, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("prompts: %w", err)
	}

	store, err := sqlite.NewStore(settings.Library.DataDir)
	if err != nil {
		return fmt.Errorf("library: %w", err)
	}
	defer store.Close()

	var warnings []string
	aiServices, err := ai.Init(ctx, settings)
	if err != nil {
		// A broken LLM config must not lock the user out of 'settings'.
		warnings = append(warnings, err.Error())
		aiServices = &ai.InitResult{}
	}
	defer aiServices.Close()
	warnings = append(warnings, aiServices.Warnings...)

	metrics := rest.NewMetrics(nil)
	agent, err := services.NewMusicAgentService(
		aiServices.LLMService,
		aiServices.WebSearch,
		store.TrackStore(),
		prompts,
		graph.WithObserver(metrics.ObserveNode),
	)
	if err != nil {
		return err
	}

	cli.SetVersion(version)
	cli.SetServices(&cli.Services{
		Agent:         agent,
		Library:       services.NewLibraryService(store.TrackStore(), settings.Library.AudioDir),
		Player:        services.NewPlayerService(),
		Settings:      settingsService,
		Metrics:       metrics,
		PromptWatcher: file.NewWatcher(prompts.Dir(), prompts),
		Warnings:      warnings,
	})

	return cli.Execute(ctx)
}
