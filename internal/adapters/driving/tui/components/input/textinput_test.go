package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueryInput(t *testing.T) {
	in := NewQueryInput(nil)

	require.NotNil(t, in)
	assert.NotNil(t, in.styles)
	assert.Empty(t, in.Value())
	assert.True(t, in.Focused())
	assert.NotNil(t, in.Init())
}

func TestQueryInput_Typing(t *testing.T) {
	in := NewQueryInput(nil)

	for _, r := range "imagine" {
		in, _ = in.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	assert.Equal(t, "imagine", in.Value())
	assert.Contains(t, in.View(), "Ask")
}

func TestQueryInput_FocusAndReset(t *testing.T) {
	in := NewQueryInput(nil)
	in.SetValue("who is freddie mercury")

	in.Blur()
	assert.False(t, in.Focused())
	in.Focus()
	assert.True(t, in.Focused())

	in.Reset()
	assert.Empty(t, in.Value())
}

func TestQueryInput_SetWidth(t *testing.T) {
	in := NewQueryInput(nil)

	in.SetWidth(100)
	assert.Equal(t, 100, in.Width())
	assert.Equal(t, 100-len("Ask: ")-6, in.textinput.Width)

	in.SetWidth(10)
	assert.Equal(t, 20, in.textinput.Width)
}
