package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatWebResults(t *testing.T) {
	assert.Equal(t, "No results found.", FormatWebResults(nil))

	got := FormatWebResults([]WebResult{
		{Title: "Queen", URL: "https://example.com/queen", Snippet: "British rock band"},
		{Snippet: "Formed in 1970"},
	})

	assert.Equal(t, "- Queen: British rock band (https://example.com/queen)\n- Formed in 1970", got)
}
