// Package duckduckgo implements keyless web search by scraping DuckDuckGo lite.
package duckduckgo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driven/websearch"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
	"github.com/custodia-labs/jukebox-cli/internal/core/ports/driven"
)

// Ensure Search implements the interface.
var _ driven.WebSearch = (*Search)(nil)

// Default configuration values.
const (
	DefaultEndpoint = "https://lite.duckduckgo.com/lite/"
	DefaultTimeout  = 15 * time.Second

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// maxBody bounds the HTML read from a result page.
	maxBody = 1 << 20
)

// Config holds configuration for the DuckDuckGo provider.
type Config struct {
	// Endpoint overrides the lite URL. Used by tests.
	Endpoint string

	// Timeout is the request timeout (default: 15s).
	Timeout time.Duration
}

// Search scrapes DuckDuckGo lite result pages.
type Search struct {
	client   *http.Client
	endpoint string
	limiter  *rate.Limiter
}

// New creates a DuckDuckGo provider.
func New(cfg Config) *Search {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Search{
		client:   &http.Client{Timeout: cfg.Timeout},
		endpoint: cfg.Endpoint,
		limiter:  rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Name returns the provider name.
func (s *Search) Name() string {
	return domain.SearchProviderDuckDuckGo.String()
}

// Search posts the query to the lite form and parses the result table.
func (s *Search) Search(ctx context.Context, query string) ([]domain.WebResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("duckduckgo: %w: empty query", domain.ErrInvalidInput)
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("duckduckgo: %w", err)
	}

	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("duckduckgo: %w", domain.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("duckduckgo: http %d", resp.StatusCode)
	}

	results, err := parseResults(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: %w", err)
	}
	return results, nil
}

// parseResults walks the lite page. Each result is an a.result-link
// followed later by a td.result-snippet.
func parseResults(r io.Reader) ([]domain.WebResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	results := make([]domain.WebResult, 0, websearch.MaxResults)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "a" && hasClass(n, "result-link"):
				if len(results) < websearch.MaxResults {
					title := textContent(n)
					if link := resolveLink(attr(n, "href")); link != "" && title != "" {
						results = append(results, domain.WebResult{Title: title, URL: link})
					}
				}
				return
			case n.Data == "td" && hasClass(n, "result-snippet"):
				if len(results) > 0 && results[len(results)-1].Snippet == "" {
					results[len(results)-1].Snippet = textContent(n)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return results, nil
}

// resolveLink unwraps DuckDuckGo redirect links (//duckduckgo.com/l/?uddg=...).
func resolveLink(href string) string {
	href = strings.TrimSpace(href)
	if !strings.Contains(href, "duckduckgo.com/l/") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Query().Get("uddg")
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(b.String()), " ")
}
