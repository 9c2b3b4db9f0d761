package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// lyricsPreviewLen bounds lyrics returned inline by tools.
const lyricsPreviewLen = 1500

// AskInput is the input schema for the ask_music tool.
type AskInput struct {
	Query string `json:"query" jsonschema:"a music request or question, e.g. 'play Bohemian Rhapsody' or 'who is Freddie Mercury?'"`
}

// AskOutput is the output schema for the ask_music tool.
type AskOutput struct {
	RunID           string        `json:"run_id"`
	QueryType       string        `json:"query_type"`
	Trivia          string        `json:"trivia,omitempty"`
	ExtractedTitle  string        `json:"extracted_title,omitempty"`
	ExtractedArtist string        `json:"extracted_artist,omitempty"`
	Tracks          []TrackOutput `json:"tracks"`
}

// FindTracksInput is the input schema for the find_tracks tool.
type FindTracksInput struct {
	Title  string `json:"title,omitempty" jsonschema:"part of the song title"`
	Artist string `json:"artist,omitempty" jsonschema:"part of the artist name"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of tracks to return (default 10)"`
}

// FindTracksOutput is the output schema for the find_tracks tool.
type FindTracksOutput struct {
	Tracks []TrackOutput `json:"tracks"`
	Count  int           `json:"count"`
}

// TrackOutput is a track as seen by MCP clients.
type TrackOutput struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	URI      string `json:"uri"`
	HasAudio bool   `json:"has_audio"`
	Lyrics   string `json:"lyrics,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_music",
		Description: "Ask the music agent a trivia question or request a song from the local library",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_tracks",
		Description: "Find library tracks by partial title or artist",
	}, s.handleFindTracks)
}

// handleAsk runs the agent graph for one request.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	state, err := s.ports.Agent.Ask(ctx, input.Query)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		RunID:           state.RunID,
		QueryType:       state.QueryType.String(),
		Trivia:          state.Trivia,
		ExtractedTitle:  state.ExtractedTitle,
		ExtractedArtist: state.ExtractedArtist,
		Tracks:          toTrackOutputs(state.Tracks, true),
	}, nil
}

// handleFindTracks searches the library directly, without the LLM.
func (s *Server) handleFindTracks(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindTracksInput,
) (*mcp.CallToolResult, FindTracksOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	tracks, err := s.ports.Library.Search(ctx, strings.TrimSpace(input.Title), strings.TrimSpace(input.Artist))
	if err != nil {
		return nil, FindTracksOutput{}, err
	}
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}

	return nil, FindTracksOutput{
		Tracks: toTrackOutputs(tracks, false),
		Count:  len(tracks),
	}, nil
}

func toTrackOutputs(tracks []domain.Track, withLyrics bool) []TrackOutput {
	out := make([]TrackOutput, len(tracks))
	for i := range tracks {
		out[i] = toTrackOutput(&tracks[i], withLyrics)
	}
	return out
}

func toTrackOutput(t *domain.Track, withLyrics bool) TrackOutput {
	o := TrackOutput{
		ID:       t.ID,
		Title:    t.Title,
		Artist:   t.Artist,
		URI:      trackURI(t.ID),
		HasAudio: t.HasAudio(),
	}
	if withLyrics {
		o.Lyrics = t.LyricsPreview(lyricsPreviewLen)
	}
	return o
}
