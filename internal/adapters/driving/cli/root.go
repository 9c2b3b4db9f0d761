// Package cli provides the cobra command tree for jukebox.
// It is a driving adapter: commands call core services through driving ports.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/rest"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jukebox-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Runner is a long-running background task started by serve.
type Runner interface {
	Run(ctx context.Context) error
}

// Services holds the driving ports and infrastructure the commands use.
type Services struct {
	Agent    driving.MusicAgent
	Library  driving.LibraryService
	Player   driving.PlayerService
	Settings driving.SettingsService

	// Metrics is shared with the agent graph observer. Optional.
	Metrics *rest.Metrics

	// PromptWatcher reloads prompt files while serving. Optional.
	PromptWatcher Runner

	// Warnings are printed once before each command, e.g. "LLM not configured".
	Warnings []string
}

var (
	agentService    driving.MusicAgent
	libraryService  driving.LibraryService
	playerService   driving.PlayerService
	settingsService driving.SettingsService
	metrics         *rest.Metrics
	promptWatcher   Runner
	startupWarnings []string

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "jukebox",
	Short: "A music agent for your local library",
	Long: `Jukebox answers music questions and finds songs in your local library.

Ask for a song ("Play Bohemian Rhapsody") and jukebox looks it up in the
library, falling back to web search to identify it. Ask a question ("Who is
Freddie Mercury?") and it answers from web search results.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
		if cmd.Name() == versionCmd.Name() {
			return
		}
		for _, w := range startupWarnings {
			cmd.PrintErrf("Warning: %s\n", w)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetServices injects the services used by all commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	agentService = s.Agent
	libraryService = s.Library
	playerService = s.Player
	settingsService = s.Settings
	metrics = s.Metrics
	promptWatcher = s.PromptWatcher
	startupWarnings = s.Warnings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command. Command output goes to stdout.
func Execute(ctx context.Context) error {
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// SetOutput redirects command output, used by tests.
func SetOutput(w io.Writer) {
	rootCmd.SetOut(w)
	rootCmd.SetErr(w)
}
