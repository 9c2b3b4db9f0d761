package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

func TestLibraryService_Add(t *testing.T) {
	ctx := context.Background()
	audio := t.TempDir()
	svc := NewLibraryService(memory.NewTrackStore(), audio)

	t.Run("resolves relative paths", func(t *testing.T) {
		got, err := svc.Add(ctx, domain.Track{Title: " Imagine ", Artist: "John Lennon", FilePath: "lennon/imagine.mp3"})
		require.NoError(t, err)
		assert.Positive(t, got.ID)
		assert.Equal(t, "Imagine", got.Title)
		assert.Equal(t, filepath.Join(audio, "lennon", "imagine.mp3"), got.FilePath)
	})

	t.Run("keeps absolute paths", func(t *testing.T) {
		abs := filepath.Join(t.TempDir(), "song.mp3")
		got, err := svc.Add(ctx, domain.Track{Title: "Song", Artist: "Band", FilePath: abs})
		require.NoError(t, err)
		assert.Equal(t, abs, got.FilePath)
	})

	t.Run("ignores caller ID", func(t *testing.T) {
		got, err := svc.Add(ctx, domain.Track{ID: 77, Title: "Other", Artist: "Band"})
		require.NoError(t, err)
		assert.NotEqual(t, int64(77), got.ID)
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		_, err := svc.Add(ctx, domain.Track{Title: "   ", Artist: "Band"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		_, err = svc.Add(ctx, domain.Track{Title: "Song"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestLibraryService_Add_NoAudioDir(t *testing.T) {
	svc := NewLibraryService(memory.NewTrackStore(), "")

	got, err := svc.Add(context.Background(), domain.Track{Title: "Song", Artist: "Band", FilePath: "rel/song.mp3"})
	require.NoError(t, err)
	assert.Equal(t, "rel/song.mp3", got.FilePath)
}

func TestLibraryService_SearchGetRemove(t *testing.T) {
	ctx := context.Background()
	svc := NewLibraryService(memory.NewTrackStore(), "")
	added, err := svc.Add(ctx, domain.Track{Title: "Bohemian Rhapsody", Artist: "Queen"})
	require.NoError(t, err)

	found, err := svc.Search(ctx, "  rhapsody ", "")
	require.NoError(t, err)
	require.Len(t, found, 1)

	none, err := svc.Search(ctx, " ", "")
	require.NoError(t, err)
	assert.Empty(t, none)

	got, err := svc.Get(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Queen", got.Artist)

	_, err = svc.Get(ctx, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, svc.Remove(ctx, added.ID))
	_, err = svc.Get(ctx, added.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, svc.Remove(ctx, -1), domain.ErrInvalidInput)
}

func TestLibraryService_ListAndCount(t *testing.T) {
	ctx := context.Background()
	svc := NewLibraryService(memory.NewTrackStore(), "")
	for i := 0; i < 60; i++ {
		_, err := svc.Add(ctx, domain.Track{Title: "Track", Artist: "Band"})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 0, -5)
	require.NoError(t, err)
	assert.Len(t, page, defaultListLimit)

	page, err = svc.List(ctx, 10, 55)
	require.NoError(t, err)
	assert.Len(t, page, 5)

	n, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 60, n)
}

func TestLibraryService_Import(t *testing.T) {
	ctx := context.Background()

	t.Run("imports all", func(t *testing.T) {
		svc := NewLibraryService(memory.NewTrackStore(), "")
		n, err := svc.Import(ctx, []domain.Track{
			{Title: "A", Artist: "X"},
			{Title: "B", Artist: "Y"},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("stops at first invalid", func(t *testing.T) {
		store := memory.NewTrackStore()
		svc := NewLibraryService(store, "")
		n, err := svc.Import(ctx, []domain.Track{
			{Title: "A", Artist: "X"},
			{Title: "B"},
			{Title: "C", Artist: "Z"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Contains(t, err.Error(), "track 2")
		assert.Equal(t, 1, n)

		count, _ := store.Count(ctx)
		assert.Equal(t, 1, count)
	})
}
