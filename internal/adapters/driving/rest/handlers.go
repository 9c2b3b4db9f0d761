package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// maxAskBody bounds the ask request body.
const maxAskBody = 64 << 10

// AskRequest is the body of POST /api/v1/ask.
type AskRequest struct {
	Query string `json:"query"`
}

// TracksResponse wraps track lists.
type TracksResponse struct {
	Tracks []domain.Track `json:"tracks"`
	Total  int            `json:"total,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAskBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: request body: %v", domain.ErrInvalidInput, err))
		return
	}

	state, err := s.ports.Agent.Ask(r.Context(), req.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.observeAsk(state.QueryType.String(), state.HasTracks())
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleListTracks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	title := strings.TrimSpace(q.Get("title"))
	artist := strings.TrimSpace(q.Get("artist"))

	if title != "" || artist != "" {
		tracks, err := s.ports.Library.Search(r.Context(), title, artist)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, TracksResponse{Tracks: tracks, Total: len(tracks)})
		return
	}

	limit, err := intParam(q.Get("limit"), 0)
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := intParam(q.Get("offset"), 0)
	if err != nil {
		writeError(w, err)
		return
	}

	tracks, err := s.ports.Library.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	total, err := s.ports.Library.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TracksResponse{Tracks: tracks, Total: total})
}

func (s *Server) handleGetTrack(w http.ResponseWriter, r *http.Request) {
	track, ok := s.track(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, track)
}

func (s *Server) handleTrackAudio(w http.ResponseWriter, r *http.Request) {
	track, ok := s.track(w, r)
	if !ok {
		return
	}
	if !track.HasAudio() {
		writeError(w, fmt.Errorf("track %d: %w", track.ID, domain.ErrAudioNotFound))
		return
	}
	http.ServeFile(w, r, track.FilePath)
}

// track loads the track named by the {id} route variable, writing the error
// response itself on failure.
func (s *Server) track(w http.ResponseWriter, r *http.Request) (*domain.Track, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, fmt.Errorf("%w: track id", domain.ErrInvalidInput))
		return nil, false
	}
	track, err := s.ports.Library.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}
	return track, true
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative integer", domain.ErrInvalidInput, raw)
	}
	return n, nil
}
