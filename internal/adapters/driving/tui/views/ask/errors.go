package ask

import "errors"

// Error definitions for the ask view.
var (
	// ErrNoAgent indicates that no music agent was provided.
	ErrNoAgent = errors.New("music agent is required")

	// ErrNoPlayer indicates that no player service was provided.
	ErrNoPlayer = errors.New("player is not available")
)
