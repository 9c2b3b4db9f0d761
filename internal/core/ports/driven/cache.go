package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// SearchCache memoises web search results by query.
type SearchCache interface {
	// Get returns cached results and true on a hit.
	Get(ctx context.Context, key string) ([]domain.WebResult, bool, error)

	// Set stores results for ttl.
	Set(ctx context.Context, key string, results []domain.WebResult, ttl time.Duration) error

	// Close releases resources.
	Close() error
}
