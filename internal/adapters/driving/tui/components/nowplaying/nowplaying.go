// Package nowplaying renders the selected track with its audio status and lyrics.
package nowplaying

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/jukebox-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/jukebox-cli/internal/core/domain"
)

// LyricsPreviewLen is how many characters of lyrics are shown.
const LyricsPreviewLen = 1500

// Panel renders a single track.
type Panel struct {
	styles *styles.Styles
	width  int
}

// NewPanel creates a now-playing panel.
func NewPanel(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Panel{styles: s, width: 80}
}

// SetWidth sets the panel width.
func (p *Panel) SetWidth(width int) {
	p.width = width
}

// View renders the track, or nothing when track is nil.
func (p *Panel) View(track *domain.Track) string {
	if track == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(p.styles.NowPlaying.Render("Now Playing: "))
	b.WriteString(p.styles.Normal.Render(fmt.Sprintf("%s by %s", track.Title, track.Artist)))
	b.WriteString("\n")

	if !track.HasAudio() {
		path := track.FilePath
		if path == "" {
			path = "(none)"
		}
		b.WriteString(p.styles.Error.Render("Audio file not found: " + path))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if track.Lyrics == "" {
		b.WriteString(p.styles.Muted.Render("No lyrics available for this track."))
		return b.String()
	}

	width := p.width - 4
	if width < 20 {
		width = 20
	}
	b.WriteString(p.styles.Subtitle.Render("Lyrics"))
	b.WriteString("\n")
	b.WriteString(p.styles.Panel.Width(width).Render(track.LyricsPreview(LyricsPreviewLen)))
	return b.String()
}
