package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns agent state", func(t *testing.T) {
		state := domain.NewAgentState("run-42", "who is freddie mercury?")
		state.QueryType = domain.QueryTypeTrivia
		state.Trivia = "Freddie Mercury was the lead vocalist of Queen."
		state.Tracks = []domain.Track{{
			ID: 1, Title: "Bohemian Rhapsody", Artist: "Queen",
			Lyrics: strings.Repeat("a", lyricsPreviewLen+100),
		}}

		server, err := NewServer(&Ports{Agent: &mockAgent{state: &state}, Library: &mockLibrary{}})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Query: state.UserInput})

		require.NoError(t, err)
		assert.Equal(t, "run-42", output.RunID)
		assert.Equal(t, "trivia", output.QueryType)
		assert.Equal(t, state.Trivia, output.Trivia)
		require.Len(t, output.Tracks, 1)
		assert.Equal(t, "jukebox://tracks/1", output.Tracks[0].URI)
		assert.Len(t, output.Tracks[0].Lyrics, lyricsPreviewLen)
		assert.False(t, output.Tracks[0].HasAudio)
	})

	t.Run("returns error on agent failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Agent:   &mockAgent{err: domain.ErrLLMUnavailable},
			Library: &mockLibrary{},
		})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Query: "play something"})
		assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
	})
}

func TestServer_handleFindTracks(t *testing.T) {
	ctx := context.Background()

	tracks := make([]domain.Track, 15)
	for i := range tracks {
		tracks[i] = domain.Track{ID: int64(i + 1), Title: "Song", Artist: "Band", Lyrics: "la la"}
	}

	t.Run("trims input and applies default limit", func(t *testing.T) {
		library := &mockLibrary{tracks: tracks}
		server, err := NewServer(&Ports{Agent: &mockAgent{}, Library: library})
		require.NoError(t, err)

		_, output, err := server.handleFindTracks(ctx, nil, FindTracksInput{Title: " song ", Artist: "band"})

		require.NoError(t, err)
		assert.Equal(t, "song", library.searchTitle)
		assert.Equal(t, "band", library.searchArtist)
		assert.Equal(t, 10, output.Count)
		assert.Len(t, output.Tracks, 10)
		assert.Empty(t, output.Tracks[0].Lyrics)
	})

	t.Run("explicit limit", func(t *testing.T) {
		server, err := NewServer(&Ports{Agent: &mockAgent{}, Library: &mockLibrary{tracks: tracks}})
		require.NoError(t, err)

		_, output, err := server.handleFindTracks(ctx, nil, FindTracksInput{Artist: "band", Limit: 3})
		require.NoError(t, err)
		assert.Equal(t, 3, output.Count)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Agent:   &mockAgent{},
			Library: &mockLibrary{err: errors.New("database error")},
		})
		require.NoError(t, err)

		_, _, err = server.handleFindTracks(ctx, nil, FindTracksInput{Title: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database error")
	})
}
