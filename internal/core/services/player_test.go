package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

type recordedCommand struct {
	stdin string
	name  string
	args  []string
}

func newTestPlayer(goos string, available ...string) (*PlayerService, *[]recordedCommand) {
	var cmds []recordedCommand
	p := &PlayerService{
		goos: goos,
		run: func(stdin string, name string, args ...string) error {
			cmds = append(cmds, recordedCommand{stdin: stdin, name: name, args: args})
			return nil
		},
		lookPath: func(file string) (string, error) {
			for _, a := range available {
				if a == file {
					return "/usr/bin/" + file, nil
				}
			}
			return "", errors.New("not found")
		},
	}
	return p, &cmds
}

func audioFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "song.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3"), 0600))
	return path
}

func TestPlayerService_Play(t *testing.T) {
	path := audioFile(t)

	tests := []struct {
		goos string
		name string
		args []string
	}{
		{osDarwin, "open", []string{path}},
		{osLinux, "xdg-open", []string{path}},
		{osWindows, "cmd", []string{"/c", "start", "", path}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p, cmds := newTestPlayer(tt.goos)
			err := p.Play(context.Background(), &domain.Track{Title: "Song", FilePath: path})
			require.NoError(t, err)
			require.Len(t, *cmds, 1)
			assert.Equal(t, tt.name, (*cmds)[0].name)
			assert.Equal(t, tt.args, (*cmds)[0].args)
		})
	}
}

func TestPlayerService_Play_Errors(t *testing.T) {
	p, cmds := newTestPlayer(osLinux)

	err := p.Play(context.Background(), &domain.Track{Title: "Ghost", FilePath: "/nope/ghost.mp3"})
	assert.ErrorIs(t, err, domain.ErrAudioNotFound)

	err = p.Play(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, *cmds)

	plan9, _ := newTestPlayer("plan9")
	err = plan9.Play(context.Background(), &domain.Track{FilePath: audioFile(t)})
	assert.ErrorContains(t, err, "unsupported platform")
}

func TestPlayerService_CopyLyrics(t *testing.T) {
	track := &domain.Track{Title: "Imagine", Lyrics: "Imagine there's no heaven"}

	t.Run("darwin", func(t *testing.T) {
		p, cmds := newTestPlayer(osDarwin)
		require.NoError(t, p.CopyLyrics(context.Background(), track))
		assert.Equal(t, "pbcopy", (*cmds)[0].name)
		assert.Equal(t, track.Lyrics, (*cmds)[0].stdin)
	})

	t.Run("linux prefers xclip", func(t *testing.T) {
		p, cmds := newTestPlayer(osLinux, "xclip", "xsel")
		require.NoError(t, p.CopyLyrics(context.Background(), track))
		assert.Equal(t, "xclip", (*cmds)[0].name)
	})

	t.Run("linux falls back to xsel", func(t *testing.T) {
		p, cmds := newTestPlayer(osLinux, "xsel")
		require.NoError(t, p.CopyLyrics(context.Background(), track))
		assert.Equal(t, "xsel", (*cmds)[0].name)
		assert.Equal(t, []string{"--clipboard", "--input"}, (*cmds)[0].args)
	})

	t.Run("linux without utility", func(t *testing.T) {
		p, _ := newTestPlayer(osLinux)
		assert.ErrorContains(t, p.CopyLyrics(context.Background(), track), "no clipboard utility")
	})

	t.Run("windows", func(t *testing.T) {
		p, cmds := newTestPlayer(osWindows)
		require.NoError(t, p.CopyLyrics(context.Background(), track))
		assert.Equal(t, []string{"/c", "clip"}, (*cmds)[0].args)
	})

	t.Run("placeholder lyrics", func(t *testing.T) {
		p, _ := newTestPlayer(osDarwin)
		err := p.CopyLyrics(context.Background(), &domain.Track{Title: "X", Lyrics: domain.MissingLyricsPlaceholder})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
