package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/components/markdown"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// lyricsPreviewLen matches what the TUI shows for the selected track.
const lyricsPreviewLen = 1500

var (
	askJSON   bool
	askLyrics bool
)

var askCmd = &cobra.Command{
	Use:   "ask [query]",
	Short: "Ask for a song or a music fact",
	Long: `Runs the music agent once for the given request.

Track requests ("Play Hey Jude by The Beatles") are matched against the local
library, falling back to web search to identify the song. Trivia questions
("Who wrote Bohemian Rhapsody?") are answered from web search results.

Examples:
  jukebox ask "play bohemian rhapsody"
  jukebox ask who is freddie mercury
  jukebox ask --json "songs by queen"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the agent state as JSON")
	askCmd.Flags().BoolVar(&askLyrics, "lyrics", false, "print lyrics of the first track")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if agentService == nil {
		return errors.New("music agent not configured")
	}

	query := strings.Join(args, " ")
	state, err := agentService.Ask(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	printAgentState(cmd, state)
	return nil
}

func printAgentState(cmd *cobra.Command, state *domain.AgentState) {
	if state.Trivia != "" {
		cmd.Println("Music Trivia")
		cmd.Println("============")
		r := markdown.NewRenderer(markdownStyle(cmd.OutOrStdout()))
		r.SetWidth(80)
		cmd.Println(r.Render(state.Trivia))
	}

	if !state.HasTracks() {
		cmd.Println("No tracks found for this input.")
		return
	}

	cmd.Println("Found Tracks")
	cmd.Println()
	for i := range state.Tracks {
		t := &state.Tracks[i]
		cmd.Printf("  %s\n", t.Label(i))
		if !t.HasAudio() {
			cmd.Printf("      Audio file not found: %s\n", t.FilePath)
		}
	}

	if askLyrics {
		t := state.Tracks[0]
		cmd.Println()
		cmd.Printf("Lyrics: %s by %s\n", t.Title, t.Artist)
		// The agent has already filled in the placeholder for missing lyrics.
		if t.Lyrics != "" {
			cmd.Println(t.LyricsPreview(lyricsPreviewLen))
		} else {
			cmd.Println("No lyrics available for this track.")
		}
	}
}

// markdownStyle picks a colour style for terminals and plain output otherwise.
func markdownStyle(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "dark"
	}
	return "notty"
}
