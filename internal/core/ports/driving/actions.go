package driving

import (
	"context"

	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// PlayerService provides actions on found tracks for external actors.
// This is used by TUI and CLI adapters.
type PlayerService interface {
	// Play opens the track's audio file in the default player.
	Play(ctx context.Context, track *domain.Track) error

	// CopyLyrics copies the track's lyrics to the system clipboard.
	CopyLyrics(ctx context.Context, track *domain.Track) error
}
