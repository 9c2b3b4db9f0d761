package driven

import (
	"context"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// WebSearch executes a query against a web search provider.
type WebSearch interface {
	// Search returns the provider's top results for query.
	Search(ctx context.Context, query string) ([]domain.WebResult, error)

	// Name identifies the provider in logs and errors.
	Name() string
}
