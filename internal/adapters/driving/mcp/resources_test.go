package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

func TestExtractTrackID(t *testing.T) {
	tests := []struct {
		name   string
		uri    string
		wantID int64
		wantOK bool
	}{
		{name: "valid track URI", uri: "jukebox://tracks/12", wantID: 12, wantOK: true},
		{name: "invalid prefix", uri: "file://tracks/12"},
		{name: "non-numeric id", uri: "jukebox://tracks/abc"},
		{name: "zero id", uri: "jukebox://tracks/0"},
		{name: "list URI", uri: "jukebox://tracks"},
		{name: "empty URI", uri: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := extractTrackID(tt.uri)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

// Helper to create a ReadResourceRequest with the given URI.
func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestServer_handleTracksResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns tracks without lyrics", func(t *testing.T) {
		library := &mockLibrary{tracks: []domain.Track{
			{ID: 1, Title: "Bohemian Rhapsody", Artist: "Queen", Lyrics: "Is this the real life?"},
			{ID: 2, Title: "Imagine", Artist: "John Lennon"},
		}}
		server, err := NewServer(&Ports{Agent: &mockAgent{}, Library: library})
		require.NoError(t, err)

		result, err := server.handleTracksResource(ctx, makeReadResourceRequest("jukebox://tracks"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var got []TrackOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "Queen", got[0].Artist)
		assert.Empty(t, got[0].Lyrics)
	})

	t.Run("empty library is an empty array", func(t *testing.T) {
		server, err := NewServer(&Ports{Agent: &mockAgent{}, Library: &mockLibrary{tracks: []domain.Track{}}})
		require.NoError(t, err)

		result, err := server.handleTracksResource(ctx, makeReadResourceRequest("jukebox://tracks"))
		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("returns error on list failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Agent: &mockAgent{}, Library: &mockLibrary{err: errors.New("database error")}})
		require.NoError(t, err)

		_, err = server.handleTracksResource(ctx, makeReadResourceRequest("jukebox://tracks"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing tracks")
	})
}

func TestServer_handleTrackResource(t *testing.T) {
	ctx := context.Background()
	library := &mockLibrary{tracks: []domain.Track{
		{ID: 7, Title: "Yesterday", Artist: "The Beatles", Lyrics: "All my troubles seemed so far away"},
	}}
	server, err := NewServer(&Ports{Agent: &mockAgent{}, Library: library})
	require.NoError(t, err)

	t.Run("returns full lyrics", func(t *testing.T) {
		result, err := server.handleTrackResource(ctx, makeReadResourceRequest("jukebox://tracks/7"))
		require.NoError(t, err)

		var got TrackOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, int64(7), got.ID)
		assert.Equal(t, "All my troubles seemed so far away", got.Lyrics)
	})

	t.Run("unknown track is not found", func(t *testing.T) {
		_, err := server.handleTrackResource(ctx, makeReadResourceRequest("jukebox://tracks/99"))
		assert.Error(t, err)
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		_, err := server.handleTrackResource(ctx, makeReadResourceRequest("jukebox://tracks/seven"))
		assert.Error(t, err)
	})
}
