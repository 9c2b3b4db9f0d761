package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer("notty")
	r.SetWidth(60)

	out := r.Render("**Freddie Mercury** was the lead vocalist of *Queen*.")

	assert.Contains(t, out, "Freddie Mercury")
	assert.Contains(t, out, "Queen")
}

func TestRenderer_EmptyInput(t *testing.T) {
	r := NewRenderer("")

	assert.Empty(t, r.Render("   \n"))
}

func TestRenderer_SetWidthResetsRenderer(t *testing.T) {
	r := NewRenderer("notty")
	r.Render("warm up")
	assert.NotNil(t, r.renderer)

	r.SetWidth(5)
	assert.Nil(t, r.renderer)
	assert.Equal(t, minWrap, r.width)

	r.SetWidth(minWrap)
	assert.Nil(t, r.renderer)
}
