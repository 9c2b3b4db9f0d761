// Package markdown renders agent answers as terminal markdown.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const minWrap = 20

// Renderer caches a glamour renderer for the current wrap width.
type Renderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// NewRenderer creates a renderer using a standard glamour style
// ("dark", "light", "notty", ...). An empty style means "dark".
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = "dark"
	}
	return &Renderer{style: style}
}

// SetWidth changes the wrap width. The glamour renderer is rebuilt lazily.
func (r *Renderer) SetWidth(width int) {
	if width < minWrap {
		width = minWrap
	}
	if width != r.width {
		r.width = width
		r.renderer = nil
	}
}

// Render converts markdown to styled terminal text. If glamour fails the
// input is returned unchanged so the answer is never lost.
func (r *Renderer) Render(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if r.renderer == nil {
		width := r.width
		if width == 0 {
			width = 80
		}
		tr, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		r.renderer = tr
	}

	out, err := r.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}
