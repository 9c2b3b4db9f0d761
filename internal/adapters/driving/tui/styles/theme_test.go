package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()
	require.NotNil(t, theme)

	accents := []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error}
	seen := make(map[lipgloss.Color]bool, len(accents))
	for _, c := range accents {
		assert.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate accent %s", c)
		seen[c] = true
	}
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s.Theme())
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestStyles_Render(t *testing.T) {
	s := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"title":       s.Title,
		"selected":    s.Selected,
		"panel":       s.Panel,
		"now playing": s.NowPlaying,
		"status bar":  s.StatusBar,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, style.Render("Bohemian Rhapsody"), "Bohemian Rhapsody")
		})
	}
}

func TestStyles_PanelHasBorder(t *testing.T) {
	s := DefaultStyles()

	rendered := s.Panel.Render("lyrics")
	assert.Greater(t, lipgloss.Height(rendered), 1)
}
