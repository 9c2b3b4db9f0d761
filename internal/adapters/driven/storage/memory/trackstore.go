package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

// Ensure TrackStore implements the interface.
var _ driven.TrackStore = (*TrackStore)(nil)

// TrackStore is an in-memory implementation of driven.TrackStore.
// Matching is case-insensitive, like SQLite LIKE on ASCII text.
type TrackStore struct {
	mu     sync.RWMutex
	tracks map[int64]domain.Track
	nextID int64
	now    func() time.Time
}

// NewTrackStore creates a new in-memory track store.
func NewTrackStore() *TrackStore {
	return &TrackStore{
		tracks: make(map[int64]domain.Track),
		nextID: 1,
		now:    time.Now,
	}
}

// Save inserts a track, or replaces it when ID is set.
func (s *TrackStore) Save(_ context.Context, track *domain.Track) (int64, error) {
	if track == nil {
		return 0, domain.ErrInvalidInput
	}
	if err := track.Validate(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	t := *track
	if t.ID == 0 {
		t.ID = s.nextID
		s.nextID++
		t.CreatedAt = now
	} else {
		existing, ok := s.tracks[t.ID]
		if !ok {
			return 0, domain.ErrNotFound
		}
		t.CreatedAt = existing.CreatedAt
	}
	t.UpdatedAt = now
	s.tracks[t.ID] = t
	return t.ID, nil
}

// Get retrieves a track by ID.
func (s *TrackStore) Get(_ context.Context, id int64) (*domain.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tracks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &t, nil
}

// Delete removes a track.
func (s *TrackStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tracks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.tracks, id)
	return nil
}

// Find returns tracks matching title OR artist as substrings.
func (s *TrackStore) Find(_ context.Context, title, artist string) ([]domain.Track, error) {
	result := []domain.Track{}
	if title == "" && artist == "" {
		return result, nil
	}
	title = strings.ToLower(title)
	artist = strings.ToLower(artist)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.sorted() {
		if (title != "" && strings.Contains(strings.ToLower(t.Title), title)) ||
			(artist != "" && strings.Contains(strings.ToLower(t.Artist), artist)) {
			result = append(result, t)
		}
	}
	return result, nil
}

// List returns a page of tracks ordered by artist then title.
func (s *TrackStore) List(_ context.Context, limit, offset int) ([]domain.Track, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.sorted()
	if offset >= len(all) {
		return []domain.Track{}, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

// Count returns the number of tracks.
func (s *TrackStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tracks), nil
}

// sorted returns all tracks in list order. Callers hold the lock.
func (s *TrackStore) sorted() []domain.Track {
	all := make([]domain.Track, 0, len(s.tracks))
	for _, t := range s.tracks {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if !strings.EqualFold(a.Artist, b.Artist) {
			return strings.ToLower(a.Artist) < strings.ToLower(b.Artist)
		}
		if !strings.EqualFold(a.Title, b.Title) {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
		return a.ID < b.ID
	})
	return all
}
