package rest

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// mockAgent is a mock implementation of driving.MusicAgent.
type mockAgent struct {
	state *domain.AgentState
	err   error
	got   string
}

func (m *mockAgent) Ask(_ context.Context, query string) (*domain.AgentState, error) {
	m.got = query
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	return m.state, m.err
}

// mockLibrary is a mock implementation of driving.LibraryService.
type mockLibrary struct {
	tracks []domain.Track
	err    error

	searchTitle  string
	searchArtist string
	listLimit    int
	listOffset   int
}

func (m *mockLibrary) Search(_ context.Context, title, artist string) ([]domain.Track, error) {
	m.searchTitle, m.searchArtist = title, artist
	return m.tracks, m.err
}

func (m *mockLibrary) Get(_ context.Context, id int64) (*domain.Track, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.tracks {
		if m.tracks[i].ID == id {
			t := m.tracks[i]
			return &t, nil
		}
	}
	return nil, fmt.Errorf("track %d: %w", id, domain.ErrNotFound)
}

func (m *mockLibrary) List(_ context.Context, limit, offset int) ([]domain.Track, error) {
	m.listLimit, m.listOffset = limit, offset
	return m.tracks, m.err
}

func (m *mockLibrary) Add(_ context.Context, track domain.Track) (*domain.Track, error) {
	return &track, m.err
}

func (m *mockLibrary) Remove(_ context.Context, _ int64) error {
	return m.err
}

func (m *mockLibrary) Count(_ context.Context) (int, error) {
	return len(m.tracks), m.err
}

func (m *mockLibrary) Import(_ context.Context, tracks []domain.Track) (int, error) {
	return len(tracks), m.err
}
