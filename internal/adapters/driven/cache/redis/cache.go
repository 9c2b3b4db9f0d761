// Package redis provides a shared web search cache backed by Redis.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.SearchCache = (*Cache)(nil)

// Default configuration values.
const (
	DefaultKeyPrefix   = "jukebox:websearch:"
	DefaultDialTimeout = 5 * time.Second
)

// Config holds Redis connection settings.
type Config struct {
	// Addr is host:port (required).
	Addr string

	// Password is the optional AUTH password.
	Password string

	// DB selects the logical database.
	DB int

	// KeyPrefix namespaces keys (default: jukebox:websearch:).
	KeyPrefix string
}

// Cache stores JSON-encoded results under hashed query keys.
type Cache struct {
	client *redis.Client
	prefix string
}

// New connects to Redis and verifies the connection with PING.
func New(ctx context.Context, cfg Config) (*Cache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis: address is required")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: DefaultDialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, DefaultDialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: connect %s: %w", cfg.Addr, err)
	}

	return &Cache{client: client, prefix: cfg.KeyPrefix}, nil
}

// Key builds the Redis key for a query. Queries are normalised and hashed.
func (c *Cache) Key(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return c.prefix + hex.EncodeToString(sum[:])
}

// Get returns cached results for key.
func (c *Cache) Get(ctx context.Context, key string) ([]domain.WebResult, bool, error) {
	data, err := c.client.Get(ctx, c.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis: get: %w", err)
	}

	var results []domain.WebResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false, fmt.Errorf("redis: decode entry: %w", err)
	}
	return results, true, nil
}

// Set stores results for ttl. A non-positive ttl is a no-op.
func (c *Cache) Set(ctx context.Context, key string, results []domain.WebResult, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if results == nil {
		results = []domain.WebResult{}
	}
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("redis: encode entry: %w", err)
	}
	if err := c.client.Set(ctx, c.Key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set: %w", err)
	}
	return nil
}

// Close closes the client connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
