package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driving"
	"github.com/custodia-labs/jukebox-cli/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// Default and maximum page sizes for List.
const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// LibraryService manages the local track catalogue.
type LibraryService struct {
	store    driven.TrackStore
	audioDir string
}

// NewLibraryService creates a new library service.
// Relative file paths of added tracks are resolved against audioDir when it is set.
func NewLibraryService(store driven.TrackStore, audioDir string) *LibraryService {
	return &LibraryService{
		store:    store,
		audioDir: audioDir,
	}
}

// Search finds tracks by partial title OR partial artist.
func (s *LibraryService) Search(ctx context.Context, title, artist string) ([]domain.Track, error) {
	title = strings.TrimSpace(title)
	artist = strings.TrimSpace(artist)
	if title == "" && artist == "" {
		return []domain.Track{}, nil
	}
	return s.store.Find(ctx, title, artist)
}

// Get retrieves a track by ID.
func (s *LibraryService) Get(ctx context.Context, id int64) (*domain.Track, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: track id must be positive", domain.ErrInvalidInput)
	}
	return s.store.Get(ctx, id)
}

// List returns a page of tracks ordered by artist and title.
func (s *LibraryService) List(ctx context.Context, limit, offset int) ([]domain.Track, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.List(ctx, limit, offset)
}

// Add validates and stores a new track.
func (s *LibraryService) Add(ctx context.Context, track domain.Track) (*domain.Track, error) {
	track.Title = strings.TrimSpace(track.Title)
	track.Artist = strings.TrimSpace(track.Artist)
	if err := track.Validate(); err != nil {
		return nil, err
	}
	track.ID = 0
	track.FilePath = s.resolvePath(track.FilePath)

	id, err := s.store.Save(ctx, &track)
	if err != nil {
		return nil, fmt.Errorf("save track: %w", err)
	}
	track.ID = id
	logger.Debug("Added track %d: %s by %s", id, track.Title, track.Artist)
	return &track, nil
}

// Remove deletes a track.
func (s *LibraryService) Remove(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: track id must be positive", domain.ErrInvalidInput)
	}
	return s.store.Delete(ctx, id)
}

// Count returns the number of tracks.
func (s *LibraryService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Import adds tracks in order and stops at the first failure.
func (s *LibraryService) Import(ctx context.Context, tracks []domain.Track) (int, error) {
	for i, t := range tracks {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := s.Add(ctx, t); err != nil {
			return i, fmt.Errorf("track %d (%q): %w", i+1, t.Title, err)
		}
	}
	logger.Info("Imported %d tracks", len(tracks))
	return len(tracks), nil
}

func (s *LibraryService) resolvePath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || s.audioDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.audioDir, path)
}
