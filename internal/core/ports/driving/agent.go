package driving

import (
	"context"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// MusicAgent answers music questions and finds tracks.
type MusicAgent interface {
	// Ask runs the agent graph for a single user request and returns the final state.
	Ask(ctx context.Context, query string) (*domain.AgentState, error)
}
