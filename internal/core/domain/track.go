package domain

import (
	"fmt"
	"os"
	"time"
)

// MissingLyricsPlaceholder replaces empty lyrics once the agent has run.
const MissingLyricsPlaceholder = "Lyrics not available in database."

// Track is a song in the local music library.
type Track struct {
	// ID is the library's primary key.
	ID int64 `json:"id"`

	// Title is the song title.
	Title string `json:"title"`

	// Artist is the performing artist.
	Artist string `json:"artist"`

	// FilePath is the location of the audio file (usually an mp3).
	FilePath string `json:"file_path"`

	// Lyrics is the full lyric text, possibly empty.
	Lyrics string `json:"lyrics"`

	// CreatedAt is when the track was added to the library.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the track was last modified.
	UpdatedAt time.Time `json:"updated_at"`
}

// Validate checks that the track has the fields required for storage.
func (t Track) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("%w: track title is required", ErrInvalidInput)
	}
	if t.Artist == "" {
		return fmt.Errorf("%w: track artist is required", ErrInvalidInput)
	}
	return nil
}

// Label renders the track as a numbered list entry: "1. Title by Artist".
func (t Track) Label(index int) string {
	return fmt.Sprintf("%d. %s by %s", index+1, t.Title, t.Artist)
}

// HasAudio reports whether the audio file exists on disk.
func (t Track) HasAudio() bool {
	if t.FilePath == "" {
		return false
	}
	info, err := os.Stat(t.FilePath)
	return err == nil && !info.IsDir()
}

// HasLyrics reports whether real lyrics are present.
func (t Track) HasLyrics() bool {
	return t.Lyrics != "" && t.Lyrics != MissingLyricsPlaceholder
}

// LyricsPreview returns at most n runes of the lyrics.
func (t Track) LyricsPreview(n int) string {
	runes := []rune(t.Lyrics)
	if n < 0 || len(runes) <= n {
		return t.Lyrics
	}
	return string(runes[:n])
}
