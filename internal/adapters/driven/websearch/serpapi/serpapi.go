// Package serpapi implements web search against the SerpAPI Google endpoint.
package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
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
	DefaultEndpoint = "https://serpapi.com/search.json"
	DefaultTimeout  = 15 * time.Second

	// requestsPerSecond keeps well inside SerpAPI's hourly plan limits.
	requestsPerSecond = 2
)

// Config holds configuration for the SerpAPI provider.
type Config struct {
	// APIKey is the SerpAPI key (required).
	APIKey string

	// Endpoint overrides the search URL. Used by tests.
	Endpoint string

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration
}

// Search queries SerpAPI.
type Search struct {
	client   *http.Client
	endpoint string
	apiKey   string
	limiter  *rate.Limiter
}

// response holds the parts of the SerpAPI payload used for answers.
type response struct {
	Error     string `json:"error"`
	AnswerBox *struct {
		Title   string `json:"title"`
		Answer  string `json:"answer"`
		Snippet string `json:"snippet"`
		Link    string `json:"link"`
	} `json:"answer_box"`
	KnowledgeGraph *struct {
		Title       string `json:"title"`
		Type        string `json:"type"`
		Description string `json:"description"`
		Website     string `json:"website"`
	} `json:"knowledge_graph"`
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
}

// New creates a SerpAPI provider.
func New(cfg Config) (*Search, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("serpapi: API key is required")
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
	return domain.SearchProviderSerpAPI.String()
}

// Search returns the answer box, knowledge graph and organic results for query,
// in that order.
func (s *Search) Search(ctx context.Context, query string) ([]domain.WebResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("serpapi: %w: empty query", domain.ErrInvalidInput)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("serpapi: %w", err)
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", query)
	params.Set("api_key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("serpapi: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("serpapi: %w", domain.ErrRateLimited)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("serpapi: read response: %w", err)
	}

	var payload response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("serpapi: decode response: %w", err)
	}
	if payload.Error != "" {
		// SerpAPI reports an empty result page as an error.
		if strings.Contains(payload.Error, "hasn't returned any results") {
			return []domain.WebResult{}, nil
		}
		return nil, fmt.Errorf("serpapi error: %s", payload.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi error (status %d): %s", resp.StatusCode, string(body))
	}

	return payload.results(), nil
}

func (r response) results() []domain.WebResult {
	results := make([]domain.WebResult, 0, websearch.MaxResults)

	if box := r.AnswerBox; box != nil {
		snippet := box.Answer
		if snippet == "" {
			snippet = box.Snippet
		}
		if snippet != "" {
			results = append(results, domain.WebResult{Title: box.Title, URL: box.Link, Snippet: snippet})
		}
	}

	if kg := r.KnowledgeGraph; kg != nil && kg.Description != "" {
		title := kg.Title
		if kg.Type != "" {
			title = fmt.Sprintf("%s (%s)", kg.Title, kg.Type)
		}
		results = append(results, domain.WebResult{Title: title, URL: kg.Website, Snippet: kg.Description})
	}

	for _, o := range r.OrganicResults {
		if len(results) >= websearch.MaxResults {
			break
		}
		if o.Snippet == "" && o.Title == "" {
			continue
		}
		results = append(results, domain.WebResult{Title: o.Title, URL: o.Link, Snippet: o.Snippet})
	}
	return results
}
