package booklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML("Some *emphasis* and a [link](https://example.org/).")
	require.NoError(t, err)
	assert.Contains(t, out, "<em>emphasis</em>")
	assert.Contains(t, out, `<a href="https://example.org/">link</a>`)
}

func TestRenderHTMLPassesRawHTMLThrough(t *testing.T) {
	out, err := RenderHTML("Before <br> after.")
	require.NoError(t, err)
	assert.Contains(t, out, "<br>")
}
