package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

var (
	libraryLimit  int
	libraryOffset int
	libraryJSON   bool

	addTitle      string
	addArtist     string
	addFile       string
	addLyricsFile string
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the music library",
	Long:  `List, inspect, add, remove and import tracks in the local music library.`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracks",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var libraryShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a track with its lyrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryShow,
}

var libraryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a track",
	Long: `Add a track to the library. Relative file paths are resolved against
the configured audio directory.

Example:
  jukebox library add --title "Hey Jude" --artist "The Beatles" --file hey_jude.mp3`,
	Args: cobra.NoArgs,
	RunE: runLibraryAdd,
}

var libraryRemoveCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Remove a track",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryRemove,
}

var libraryImportCmd = &cobra.Command{
	Use:   "import [file.yaml]",
	Short: "Import tracks from a YAML file",
	Long: `Import tracks from a YAML file of the form:

  tracks:
    - title: Bohemian Rhapsody
      artist: Queen
      file: bohemian_rhapsody.mp3
      lyrics: |
        Is this the real life?
    - title: Yesterday
      artist: The Beatles
      lyrics_file: lyrics/yesterday.txt

lyrics_file is read relative to the YAML file.`,
	Args: cobra.ExactArgs(1),
	RunE: runLibraryImport,
}

var libraryPlayCmd = &cobra.Command{
	Use:   "play [id]",
	Short: "Play a track with the system audio player",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryPlay,
}

func init() {
	libraryListCmd.Flags().IntVarP(&libraryLimit, "limit", "n", 50, "maximum number of tracks")
	libraryListCmd.Flags().IntVar(&libraryOffset, "offset", 0, "number of tracks to skip")
	libraryListCmd.Flags().BoolVar(&libraryJSON, "json", false, "output tracks as JSON")

	libraryAddCmd.Flags().StringVar(&addTitle, "title", "", "song title (required)")
	libraryAddCmd.Flags().StringVar(&addArtist, "artist", "", "artist (required)")
	libraryAddCmd.Flags().StringVar(&addFile, "file", "", "audio file path")
	libraryAddCmd.Flags().StringVar(&addLyricsFile, "lyrics-file", "", "text file containing the lyrics")

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryShowCmd)
	libraryCmd.AddCommand(libraryAddCmd)
	libraryCmd.AddCommand(libraryRemoveCmd)
	libraryCmd.AddCommand(libraryImportCmd)
	libraryCmd.AddCommand(libraryPlayCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryList(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}
	ctx := cmd.Context()

	tracks, err := libraryService.List(ctx, libraryLimit, libraryOffset)
	if err != nil {
		return fmt.Errorf("failed to list tracks: %w", err)
	}

	if libraryJSON {
		data, err := json.MarshalIndent(tracks, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal tracks: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(tracks) == 0 {
		cmd.Println("No tracks in the library.")
		return nil
	}

	total, err := libraryService.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count tracks: %w", err)
	}

	cmd.Printf("Tracks (%d of %d):\n\n", len(tracks), total)
	for i := range tracks {
		t := &tracks[i]
		audio := ""
		if !t.HasAudio() {
			audio = "  (no audio)"
		}
		cmd.Printf("  [%d] %s by %s%s\n", t.ID, t.Title, t.Artist, audio)
	}
	return nil
}

func runLibraryShow(cmd *cobra.Command, args []string) error {
	track, err := trackFromArg(cmd, args[0])
	if err != nil {
		return err
	}

	cmd.Printf("ID:     %d\n", track.ID)
	cmd.Printf("Title:  %s\n", track.Title)
	cmd.Printf("Artist: %s\n", track.Artist)
	if track.FilePath != "" {
		cmd.Printf("File:   %s\n", track.FilePath)
	}
	if !track.HasAudio() {
		cmd.Println("        (audio file not found)")
	}
	cmd.Println()
	if track.HasLyrics() {
		cmd.Println(track.Lyrics)
	} else {
		cmd.Println("No lyrics available for this track.")
	}
	return nil
}

func runLibraryAdd(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	track := domain.Track{Title: addTitle, Artist: addArtist, FilePath: addFile}
	if addLyricsFile != "" {
		data, err := os.ReadFile(addLyricsFile)
		if err != nil {
			return fmt.Errorf("failed to read lyrics: %w", err)
		}
		track.Lyrics = string(data)
	}

	saved, err := libraryService.Add(cmd.Context(), track)
	if err != nil {
		return fmt.Errorf("failed to add track: %w", err)
	}

	cmd.Printf("Added track %d: %s by %s\n", saved.ID, saved.Title, saved.Artist)
	return nil
}

func runLibraryRemove(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}
	id, err := parseTrackID(args[0])
	if err != nil {
		return err
	}

	if err := libraryService.Remove(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to remove track: %w", err)
	}

	cmd.Printf("Removed track %d\n", id)
	return nil
}

func runLibraryImport(cmd *cobra.Command, args []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	tracks, err := readTrackFile(args[0])
	if err != nil {
		return err
	}

	n, err := libraryService.Import(cmd.Context(), tracks)
	if err != nil {
		return fmt.Errorf("import stopped after %d tracks: %w", n, err)
	}

	cmd.Printf("Imported %d tracks\n", n)
	return nil
}

func runLibraryPlay(cmd *cobra.Command, args []string) error {
	if playerService == nil {
		return errors.New("player service not configured")
	}
	track, err := trackFromArg(cmd, args[0])
	if err != nil {
		return err
	}

	if err := playerService.Play(cmd.Context(), track); err != nil {
		if errors.Is(err, domain.ErrAudioNotFound) {
			return fmt.Errorf("audio file not found: %s", track.FilePath)
		}
		return fmt.Errorf("failed to play track: %w", err)
	}

	cmd.Printf("Now Playing: %s by %s\n", track.Title, track.Artist)
	return nil
}

func trackFromArg(cmd *cobra.Command, arg string) (*domain.Track, error) {
	if libraryService == nil {
		return nil, errors.New("library service not configured")
	}
	id, err := parseTrackID(arg)
	if err != nil {
		return nil, err
	}
	track, err := libraryService.Get(cmd.Context(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get track %d: %w", id, err)
	}
	return track, nil
}

func parseTrackID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: track id must be a positive integer, got %q", domain.ErrInvalidInput, arg)
	}
	return id, nil
}

// trackEntry is one track in an import file.
type trackEntry struct {
	Title      string `yaml:"title"`
	Artist     string `yaml:"artist"`
	File       string `yaml:"file"`
	Lyrics     string `yaml:"lyrics"`
	LyricsFile string `yaml:"lyrics_file"`
}

type trackFile struct {
	Tracks []trackEntry `yaml:"tracks"`
}

// readTrackFile parses an import file. lyrics_file paths are relative to it.
func readTrackFile(path string) ([]domain.Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f trackFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(f.Tracks) == 0 {
		return nil, fmt.Errorf("%w: %s contains no tracks", domain.ErrInvalidInput, path)
	}

	base := filepath.Dir(path)
	tracks := make([]domain.Track, 0, len(f.Tracks))
	for i, e := range f.Tracks {
		t := domain.Track{Title: e.Title, Artist: e.Artist, FilePath: e.File, Lyrics: e.Lyrics}
		if e.LyricsFile != "" && t.Lyrics == "" {
			lyricsPath := e.LyricsFile
			if !filepath.IsAbs(lyricsPath) {
				lyricsPath = filepath.Join(base, lyricsPath)
			}
			lyrics, err := os.ReadFile(lyricsPath)
			if err != nil {
				return nil, fmt.Errorf("track %d: read lyrics: %w", i+1, err)
			}
			t.Lyrics = string(lyrics)
		}
		tracks = append(tracks, t)
	}
	return tracks, nil
}
