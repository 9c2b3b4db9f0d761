package driving

import (
	"context"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// LibraryService manages the local music library.
type LibraryService interface {
	// Search finds tracks by partial title OR partial artist.
	Search(ctx context.Context, title, artist string) ([]domain.Track, error)

	// Get retrieves a track by ID.
	Get(ctx context.Context, id int64) (*domain.Track, error)

	// List returns a page of tracks.
	List(ctx context.Context, limit, offset int) ([]domain.Track, error)

	// Add validates and stores a new track, returning it with its ID.
	Add(ctx context.Context, track domain.Track) (*domain.Track, error)

	// Remove deletes a track.
	Remove(ctx context.Context, id int64) error

	// Count returns the number of tracks in the library.
	Count(ctx context.Context) (int, error)

	// Import adds many tracks, stopping at the first invalid one.
	// Returns the number imported.
	Import(ctx context.Context, tracks []domain.Track) (int, error)
}
