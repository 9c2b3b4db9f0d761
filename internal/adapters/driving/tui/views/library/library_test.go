package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// mockLibrary pages over a fixed slice.
type mockLibrary struct {
	tracks []domain.Track
	err    error
	query  string
}

func (m *mockLibrary) Search(_ context.Context, title, _ string) ([]domain.Track, error) {
	m.query = title
	var out []domain.Track
	for _, t := range m.tracks {
		if strings.Contains(strings.ToLower(t.Title), strings.ToLower(title)) {
			out = append(out, t)
		}
	}
	return out, m.err
}

func (m *mockLibrary) Get(_ context.Context, _ int64) (*domain.Track, error) {
	return nil, domain.ErrNotFound
}

func (m *mockLibrary) List(_ context.Context, limit, offset int) ([]domain.Track, error) {
	if m.err != nil {
		return nil, m.err
	}
	if offset >= len(m.tracks) {
		return []domain.Track{}, nil
	}
	end := offset + limit
	if end > len(m.tracks) {
		end = len(m.tracks)
	}
	return m.tracks[offset:end], nil
}

func (m *mockLibrary) Add(_ context.Context, t domain.Track) (*domain.Track, error) { return &t, nil }

func (m *mockLibrary) Remove(_ context.Context, _ int64) error { return nil }

func (m *mockLibrary) Count(_ context.Context) (int, error) { return len(m.tracks), m.err }

func (m *mockLibrary) Import(_ context.Context, t []domain.Track) (int, error) { return len(t), nil }

type mockPlayer struct {
	played, copied string
	err            error
}

func (m *mockPlayer) Play(_ context.Context, t *domain.Track) error {
	m.played = t.Title
	return m.err
}

func (m *mockPlayer) CopyLyrics(_ context.Context, t *domain.Track) error {
	m.copied = t.Title
	return m.err
}

func manyTracks(n int) []domain.Track {
	tracks := make([]domain.Track, n)
	for i := range tracks {
		tracks[i] = domain.Track{ID: int64(i + 1), Title: fmt.Sprintf("Song %02d", i+1), Artist: "Band"}
	}
	return tracks
}

// run executes cmd and feeds the resulting message back into the view.
func run(t *testing.T, v *View, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	v.Update(cmd())
}

func newLoadedView(t *testing.T, lib *mockLibrary, player *mockPlayer) *View {
	t.Helper()
	v := NewView(nil, nil, lib, player)
	v.SetDimensions(100, 40)
	run(t, v, v.Init())
	return v
}

func TestView_FirstPage(t *testing.T) {
	v := newLoadedView(t, &mockLibrary{tracks: manyTracks(45)}, &mockPlayer{})

	assert.Len(t, v.Tracks(), PageSize)
	assert.Equal(t, 45, v.Total())
	assert.Equal(t, status.StateLibrary, v.Status().State())
	assert.Contains(t, v.View(), "Tracks 1-20 of 45")
}

func TestView_Paging(t *testing.T) {
	v := newLoadedView(t, &mockLibrary{tracks: manyTracks(45)}, &mockPlayer{})

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	run(t, v, cmd)
	assert.Equal(t, 20, v.Offset())

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRight})
	run(t, v, cmd)
	assert.Equal(t, 40, v.Offset())
	assert.Len(t, v.Tracks(), 5)
	assert.Contains(t, v.View(), "41. Song 41 by Band")

	// No page past the end.
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, cmd)

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'h'}})
	run(t, v, cmd)
	assert.Equal(t, 20, v.Offset())
}

func TestView_PrevPageAtStart(t *testing.T) {
	v := newLoadedView(t, &mockLibrary{tracks: manyTracks(5)}, nil)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Nil(t, cmd)
}

func TestView_Filter(t *testing.T) {
	lib := &mockLibrary{tracks: manyTracks(30)}
	v := newLoadedView(t, lib, nil)

	v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	require.True(t, v.Filtering())
	for _, r := range "song 1" {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEnter})
	run(t, v, cmd)

	assert.False(t, v.Filtering())
	assert.Equal(t, "song 1", lib.query)
	assert.Len(t, v.Tracks(), 10) // Song 10..19
	assert.Contains(t, v.View(), `10 matches for "song 1"`)

	// Esc clears the filter before leaving the view.
	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	run(t, v, cmd)
	assert.Len(t, v.Tracks(), PageSize)

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Actions(t *testing.T) {
	player := &mockPlayer{}
	v := newLoadedView(t, &mockLibrary{tracks: manyTracks(3)}, player)

	v.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	run(t, v, cmd)
	assert.Equal(t, "Song 02", player.played)
	assert.Equal(t, "Playing: Song 02", v.Status().Message())

	_, cmd = v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'c'}})
	run(t, v, cmd)
	assert.Equal(t, "Song 02", player.copied)
}

func TestView_ActionError(t *testing.T) {
	player := &mockPlayer{err: domain.ErrAudioNotFound}
	v := newLoadedView(t, &mockLibrary{tracks: manyTracks(1)}, player)

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	run(t, v, cmd)

	assert.Equal(t, status.StateError, v.Status().State())
	assert.Contains(t, v.Status().Message(), "audio file not found")
}

func TestView_LoadError(t *testing.T) {
	v := newLoadedView(t, &mockLibrary{err: errors.New("database locked")}, nil)

	require.Error(t, v.Err())
	assert.Contains(t, v.View(), "Error: database locked")
}

func TestView_EmptyLibrary(t *testing.T) {
	v := newLoadedView(t, &mockLibrary{}, nil)

	assert.Contains(t, v.View(), "The library is empty")
}

func TestView_NoLibrary(t *testing.T) {
	v := NewView(nil, nil, nil, nil)
	v.SetDimensions(80, 24)
	run(t, v, v.Init())

	assert.ErrorIs(t, v.Err(), ErrNoLibrary)
}

func TestView_Reset(t *testing.T) {
	v := newLoadedView(t, &mockLibrary{tracks: manyTracks(45)}, nil)
	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyRight})
	run(t, v, cmd)

	v.Reset()

	assert.Zero(t, v.Offset())
	assert.False(t, v.Filtering())
	assert.Nil(t, v.Err())
}
