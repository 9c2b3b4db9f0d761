package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

// trackStore implements driven.TrackStore.
type trackStore struct {
	store *Store
}

var _ driven.TrackStore = (*trackStore)(nil)

const trackColumns = "id, title, artist, file_path, lyrics, created_at, updated_at"

// likeEscaper escapes LIKE wildcards so user text matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Save inserts a track, or updates it when ID is set.
func (s *trackStore) Save(ctx context.Context, track *domain.Track) (int64, error) {
	if track == nil {
		return 0, domain.ErrInvalidInput
	}
	if err := track.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)

	if track.ID == 0 {
		res, err := s.store.db.ExecContext(ctx, `
			INSERT INTO tracks (title, artist, file_path, lyrics, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, track.Title, track.Artist, track.FilePath, track.Lyrics, now, now)
		if err != nil {
			return 0, fmt.Errorf("inserting track: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("reading track id: %w", err)
		}
		return id, nil
	}

	res, err := s.store.db.ExecContext(ctx, `
		UPDATE tracks SET title = ?, artist = ?, file_path = ?, lyrics = ?, updated_at = ?
		WHERE id = ?
	`, track.Title, track.Artist, track.FilePath, track.Lyrics, now, track.ID)
	if err != nil {
		return 0, fmt.Errorf("updating track: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return 0, domain.ErrNotFound
	}
	return track.ID, nil
}

// Get retrieves a track by ID.
func (s *trackStore) Get(ctx context.Context, id int64) (*domain.Track, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+trackColumns+" FROM tracks WHERE id = ?", id)
	return scanTrack(row)
}

// Delete removes a track.
func (s *trackStore) Delete(ctx context.Context, id int64) error {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM tracks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting track: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Find returns tracks whose title contains title OR whose artist contains artist.
func (s *trackStore) Find(ctx context.Context, title, artist string) ([]domain.Track, error) {
	var conditions []string
	var args []any
	if title != "" {
		conditions = append(conditions, `title LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(title)+"%")
	}
	if artist != "" {
		conditions = append(conditions, `artist LIKE ? ESCAPE '\'`)
		args = append(args, "%"+likeEscaper.Replace(artist)+"%")
	}
	if len(conditions) == 0 {
		return []domain.Track{}, nil
	}

	query := "SELECT " + trackColumns + " FROM tracks WHERE " + strings.Join(conditions, " OR ") +
		" ORDER BY artist COLLATE NOCASE, title COLLATE NOCASE, id"
	return s.query(ctx, query, args...)
}

// List returns tracks ordered by artist then title.
func (s *trackStore) List(ctx context.Context, limit, offset int) ([]domain.Track, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	return s.query(ctx, "SELECT "+trackColumns+
		" FROM tracks ORDER BY artist COLLATE NOCASE, title COLLATE NOCASE, id LIMIT ? OFFSET ?",
		limit, offset)
}

// Count returns the number of tracks.
func (s *trackStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tracks").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting tracks: %w", err)
	}
	return n, nil
}

func (s *trackStore) query(ctx context.Context, query string, args ...any) ([]domain.Track, error) {
	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tracks: %w", err)
	}
	defer rows.Close()

	tracks := []domain.Track{}
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tracks: %w", err)
	}
	return tracks, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrack(row rowScanner) (*domain.Track, error) {
	var t domain.Track
	var createdAt, updatedAt string
	if err := row.Scan(&t.ID, &t.Title, &t.Artist, &t.FilePath, &t.Lyrics, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning track: %w", err)
	}
	t.CreatedAt = parseTime(createdAt)
	t.UpdatedAt = parseTime(updatedAt)
	return &t, nil
}

// parseTime returns zero time for unparseable values.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
