// Package memory provides an in-process TTL cache for web search results.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.SearchCache = (*Cache)(nil)

type entry struct {
	results   []domain.WebResult
	expiresAt time.Time
}

// Cache is a mutex-guarded map with per-entry expiry.
// Expired entries are dropped lazily on read and by Set once the map
// grows past maxEntries.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]entry
	maxEntries int
	now        func() time.Time
}

// DefaultMaxEntries bounds the cache size before a sweep.
const DefaultMaxEntries = 1024

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		maxEntries: DefaultMaxEntries,
		now:        time.Now,
	}
}

// Get returns a copy of the cached results for key.
func (c *Cache) Get(_ context.Context, key string) ([]domain.WebResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	out := make([]domain.WebResult, len(e.results))
	copy(out, e.results)
	return out, true, nil
}

// Set stores results for ttl. A non-positive ttl is a no-op.
func (c *Cache) Set(_ context.Context, key string, results []domain.WebResult, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.sweep()
	}
	stored := make([]domain.WebResult, len(results))
	copy(stored, results)
	c.entries[key] = entry{results: stored, expiresAt: c.now().Add(ttl)}
	return nil
}

// sweep drops expired entries, then arbitrary ones until under the bound.
// Caller holds c.mu.
func (c *Cache) sweep() {
	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	for k := range c.entries {
		if len(c.entries) < c.maxEntries {
			break
		}
		delete(c.entries, k)
	}
}

// Len returns the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close releases resources.
func (c *Cache) Close() error {
	return nil
}
