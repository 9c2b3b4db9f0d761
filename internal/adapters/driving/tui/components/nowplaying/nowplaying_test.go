package nowplaying

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

func TestPanel_NilTrack(t *testing.T) {
	assert.Empty(t, NewPanel(nil).View(nil))
}

func TestPanel_MissingAudio(t *testing.T) {
	p := NewPanel(nil)

	view := p.View(&domain.Track{Title: "Imagine", Artist: "John Lennon", FilePath: "/nope/imagine.mp3"})

	assert.Contains(t, view, "Now Playing:")
	assert.Contains(t, view, "Imagine by John Lennon")
	assert.Contains(t, view, "Audio file not found: /nope/imagine.mp3")
	assert.Contains(t, view, "No lyrics available for this track.")
}

func TestPanel_WithAudioAndLyrics(t *testing.T) {
	audio := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(audio, []byte("ID3"), 0o600))

	p := NewPanel(nil)
	p.SetWidth(200)
	view := p.View(&domain.Track{Title: "Yesterday", Artist: "The Beatles", FilePath: audio, Lyrics: "All my troubles"})

	assert.NotContains(t, view, "Audio file not found")
	assert.Contains(t, view, "Lyrics")
	assert.Contains(t, view, "All my troubles")
}

func TestPanel_PlaceholderLyricsShown(t *testing.T) {
	view := NewPanel(nil).View(&domain.Track{Title: "X", Artist: "Y", Lyrics: domain.MissingLyricsPlaceholder})

	assert.Contains(t, view, domain.MissingLyricsPlaceholder)
}

func TestPanel_TruncatesLyrics(t *testing.T) {
	p := NewPanel(nil)
	p.SetWidth(4000)
	lyrics := strings.Repeat("a", LyricsPreviewLen) + "TAIL"

	view := p.View(&domain.Track{Title: "Long", Artist: "Song", Lyrics: lyrics})

	assert.NotContains(t, view, "TAIL")
}
