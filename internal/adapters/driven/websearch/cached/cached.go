// Package cached wraps a web search provider with a result cache.
package cached

import (
	"context"
	"strings"
	"time"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
	"github.com/custodia-labs/jukebox-cli/internal/logger"
)

// Ensure Search implements the interface.
var _ driven.WebSearch = (*Search)(nil)

// Search serves repeated queries from a SearchCache.
// Cache failures are logged and fall through to the provider.
type Search struct {
	next  driven.WebSearch
	cache driven.SearchCache
	ttl   time.Duration
}

// New wraps next. A nil cache or non-positive ttl returns next unchanged.
func New(next driven.WebSearch, cache driven.SearchCache, ttl time.Duration) driven.WebSearch {
	if next == nil || cache == nil || ttl <= 0 {
		return next
	}
	return &Search{next: next, cache: cache, ttl: ttl}
}

// Name returns the wrapped provider's name.
func (s *Search) Name() string {
	return s.next.Name()
}

// Search returns cached results when present, otherwise queries the provider
// and stores what it returns. Provider errors are not cached.
func (s *Search) Search(ctx context.Context, query string) ([]domain.WebResult, error) {
	key := cacheKey(s.next.Name(), query)

	results, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("search cache get failed: %v", err)
	case ok:
		logger.Debug("search cache hit: %q", query)
		return results, nil
	}

	results, err = s.next.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, results, s.ttl); err != nil {
		logger.Warn("search cache set failed: %v", err)
	}
	return results, nil
}

func cacheKey(provider, query string) string {
	return provider + ":" + strings.ToLower(strings.TrimSpace(query))
}
