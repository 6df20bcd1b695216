package booklist

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"
)

// The descriptions occasionally contain raw HTML snippets carried over
// from the forum posts the lists originate from, so the renderer must
// pass HTML through unchanged.
var descriptionEngine = goldmark.New(
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// RenderHTML converts a record description from Markdown to an HTML
// fragment for calibre's comments field.
func RenderHTML(description string) (string, error) {
	var buf bytes.Buffer
	if err := descriptionEngine.Convert([]byte(description), &buf); err != nil {
		return "", fmt.Errorf("render description: %w", err)
	}
	return buf.String(), nil
}
