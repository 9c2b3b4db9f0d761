// Package brave implements web search against the Brave Search API.
package brave

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driven/websearch"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

// Ensure Search implements the interface.
var _ driven.WebSearch = (*Search)(nil)

// Default configuration values.
const (
	DefaultEndpoint = "https://api.search.brave.com/res/v1/web/search"
	DefaultTimeout  = 10 * time.Second

	// The free plan allows one request per second.
	requestsPerSecond = 1
)

// Config holds configuration for the Brave provider.
type Config struct {
	// APIKey is sent as X-Subscription-Token (required).
	APIKey string

	// Endpoint overrides the search URL. Used by tests.
	Endpoint string

	// Timeout is the request timeout (default: 10s).
	Timeout time.Duration
}

// Search queries the Brave Search API.
type Search struct {
	client   *http.Client
	endpoint string
	apiKey   string
	limiter  *rate.Limiter
}

// New creates a Brave provider.
func New(cfg Config) (*Search, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("brave: API key is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Search{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

// Name returns the provider name.
func (s *Search) Name() string {
	return domain.SearchProviderBrave.String()
}

// Search executes a Brave query.
func (s *Search) Search(ctx context.Context, query string) ([]domain.WebResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("brave: %w: empty query", domain.ErrInvalidInput)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("brave: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(websearch.MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("brave: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("brave: send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("brave: %w (retry after %s)", domain.ErrRateLimited, retryDelay(resp.Header))
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("brave: http %d", resp.StatusCode)
	}

	var payload struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("brave: decode response: %w", err)
	}

	results := make([]domain.WebResult, 0, len(payload.Web.Results))
	for _, r := range payload.Web.Results {
		results = append(results, domain.WebResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: stripTags(r.Description),
		})
		if len(results) >= websearch.MaxResults {
			break
		}
	}
	return results, nil
}

// retryDelay reads the smallest reset value from X-RateLimit-Reset
// ("1, 1419704" is per-second, per-month). Defaults to one second.
func retryDelay(h http.Header) time.Duration {
	minReset := -1
	for _, part := range strings.Split(h.Get("X-RateLimit-Reset"), ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			continue
		}
		if minReset < 0 || n < minReset {
			minReset = n
		}
	}
	if minReset <= 0 {
		return time.Second
	}
	return time.Duration(minReset) * time.Second
}

// stripTags removes the <strong> highlighting Brave puts in descriptions.
func stripTags(s string) string {
	r := strings.NewReplacer("<strong>", "", "</strong>", "", "&#x27;", "'", "&quot;", `"`, "&amp;", "&")
	return strings.TrimSpace(r.Replace(s))
}
