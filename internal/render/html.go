package render

import (
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	// Headings are emitted as raw HTML and must survive conversion.
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// HTML converts hybrid Markdown produced by RenderDocument into HTML.
func HTML(w io.Writer, src []byte) error {
	return markdown.Convert(src, w)
}
