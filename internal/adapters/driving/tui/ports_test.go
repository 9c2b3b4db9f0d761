package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

type mockAgent struct {
	askFunc func(ctx context.Context, query string) (*domain.AgentState, error)
}

func (m *mockAgent) Ask(ctx context.Context, query string) (*domain.AgentState, error) {
	if m.askFunc != nil {
		return m.askFunc(ctx, query)
	}
	state := domain.NewAgentState("run-1", query)
	state.QueryType = domain.QueryTypeTrivia
	state.Trivia = "**Queen** formed in 1970."
	return &state, nil
}

type mockLibrary struct {
	tracks []domain.Track
}

func (m *mockLibrary) Search(_ context.Context, _, _ string) ([]domain.Track, error) {
	return m.tracks, nil
}

func (m *mockLibrary) Get(_ context.Context, id int64) (*domain.Track, error) {
	for i := range m.tracks {
		if m.tracks[i].ID == id {
			return &m.tracks[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockLibrary) List(_ context.Context, _, _ int) ([]domain.Track, error) {
	return m.tracks, nil
}

func (m *mockLibrary) Add(_ context.Context, t domain.Track) (*domain.Track, error) {
	m.tracks = append(m.tracks, t)
	return &t, nil
}

func (m *mockLibrary) Remove(_ context.Context, _ int64) error { return nil }

func (m *mockLibrary) Count(_ context.Context) (int, error) { return len(m.tracks), nil }

func (m *mockLibrary) Import(_ context.Context, tracks []domain.Track) (int, error) {
	m.tracks = append(m.tracks, tracks...)
	return len(tracks), nil
}

type mockPlayer struct {
	played []string
}

func (m *mockPlayer) Play(_ context.Context, t *domain.Track) error {
	m.played = append(m.played, t.Title)
	return nil
}

func (m *mockPlayer) CopyLyrics(_ context.Context, _ *domain.Track) error { return nil }

func validPorts() *Ports {
	return &Ports{
		Agent:   &mockAgent{},
		Library: &mockLibrary{},
		Player:  &mockPlayer{},
	}
}

func TestPorts_Validate(t *testing.T) {
	tests := []struct {
		name    string
		ports   *Ports
		wantErr error
	}{
		{name: "nil ports", ports: nil, wantErr: ErrInvalidPorts},
		{name: "missing agent", ports: &Ports{Library: &mockLibrary{}, Player: &mockPlayer{}}, wantErr: ErrMissingAgent},
		{name: "missing library", ports: &Ports{Agent: &mockAgent{}, Player: &mockPlayer{}}, wantErr: ErrMissingLibrary},
		{name: "missing player", ports: &Ports{Agent: &mockAgent{}, Library: &mockLibrary{}}, wantErr: ErrMissingPlayer},
		{name: "all required set", ports: validPorts()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ports.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPorts_SettingsOptional(t *testing.T) {
	p := validPorts()
	p.Settings = nil

	assert.NoError(t, p.Validate())
}
