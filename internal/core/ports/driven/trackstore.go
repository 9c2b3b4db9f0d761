package driven

import (
	"context"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// TrackStore persists the music library.
type TrackStore interface {
	// Save inserts a track, or updates it when ID is set. Returns the stored ID.
	Save(ctx context.Context, track *domain.Track) (int64, error)

	// Get retrieves a track by ID.
	Get(ctx context.Context, id int64) (*domain.Track, error)

	// Delete removes a track.
	Delete(ctx context.Context, id int64) error

	// Find returns tracks whose title contains title OR whose artist
	// contains artist. Empty arguments are ignored; if both are empty
	// no tracks are returned.
	Find(ctx context.Context, title, artist string) ([]domain.Track, error)

	// List returns tracks ordered by artist then title.
	List(ctx context.Context, limit, offset int) ([]domain.Track, error)

	// Count returns the number of tracks in the library.
	Count(ctx context.Context) (int, error)
}
