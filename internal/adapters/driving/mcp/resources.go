package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for Jukebox resources.
	uriScheme = "jukebox://"

	tracksURI = uriScheme + "tracks"

	// resourceListLimit caps the track list resource.
	resourceListLimit = 500
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         tracksURI,
		Name:        "tracks",
		Description: "All tracks in the local music library",
		MIMEType:    "application/json",
	}, s.handleTracksResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: tracksURI + "/{trackId}",
		Name:        "track",
		Description: "A single track with its full lyrics",
		MIMEType:    "application/json",
	}, s.handleTrackResource)
}

// handleTracksResource returns the library as a JSON array.
func (s *Server) handleTracksResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	tracks, err := s.ports.Library.List(ctx, resourceListLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("listing tracks: %w", err)
	}

	return jsonResult(req.Params.URI, toTrackOutputs(tracks, false))
}

// handleTrackResource returns one track including lyrics.
func (s *Server) handleTrackResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractTrackID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	track, err := s.ports.Library.Get(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	out := toTrackOutput(track, false)
	out.Lyrics = track.Lyrics
	return jsonResult(req.Params.URI, out)
}

func jsonResult(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractTrackID parses the ID from a URI like jukebox://tracks/{trackId}.
func extractTrackID(uri string) (int64, bool) {
	const prefix = tracksURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func trackURI(id int64) string {
	return tracksURI + "/" + strconv.FormatInt(id, 10)
}
