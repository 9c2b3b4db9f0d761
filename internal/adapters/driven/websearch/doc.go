// Package websearch groups the web search adapters.
//
// Each subpackage implements driven.WebSearch against one provider:
//
//   - serpapi: Google results through SerpAPI (answer box, knowledge graph, organic)
//   - brave: Brave Search API
//   - duckduckgo: DuckDuckGo lite HTML, no API key
//   - cached: decorator that memoises any provider through a driven.SearchCache
//
// Providers pace outgoing requests with golang.org/x/time/rate and return at
// most MaxResults items.
package websearch

// MaxResults caps the number of results a provider returns.
const MaxResults = 5
