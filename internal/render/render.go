// Package render serializes a document tree into hybrid Markdown/HTML text.
//
// Section headings are emitted as raw <hN> elements carrying a "py-<id>"
// anchor, so a table of contents and cross-document links can point at them
// regardless of the Markdown flavour used to display the output.
package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/agentflare-ai/refmd/internal/document"
)

// AnchorPrefix is prepended to section IDs to form heading anchors.
const AnchorPrefix = "py-"

// maxHeading is the deepest heading level HTML knows about. Deeper sections
// are clamped to it.
const maxHeading = 6

// Options controls the renderer output.
type Options struct {
	// TOC renders a table of contents at the top of every document.
	TOC bool
	// TOCDepth is the deepest section depth listed in the table of contents.
	TOCDepth int
	// SectionKind prefixes headings with the section kind.
	SectionKind bool
	// SignatureBlock renders signatures as fenced code blocks instead of a
	// blockquote.
	SignatureBlock bool
	// SignatureLanguage is the info string of signature code blocks.
	SignatureLanguage string
}

// DefaultOptions mirrors the defaults of the configuration file.
func DefaultOptions() Options {
	return Options{
		TOC:               true,
		TOCDepth:          2,
		SectionKind:       true,
		SignatureBlock:    true,
		SignatureLanguage: "python",
	}
}

// Renderer writes documents. It never modifies the tree.
type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// RenderDocument writes doc to w. The output is assembled in memory first, so
// w sees a single write.
func (r *Renderer) RenderDocument(w io.Writer, doc *document.Document) error {
	var buf bytes.Buffer
	if r.opts.TOC {
		r.renderTOC(&buf, doc)
	}
	r.renderNode(&buf, doc)
	_, err := w.Write(buf.Bytes())
	return err
}

// Bytes renders doc into a new byte slice.
func (r *Renderer) Bytes(doc *document.Document) []byte {
	var buf bytes.Buffer
	_ = r.RenderDocument(&buf, doc)
	return buf.Bytes()
}

func (r *Renderer) renderTOC(buf *bytes.Buffer, doc *document.Document) {
	buf.WriteString("__Table of Contents__\n\n")
	for _, s := range doc.Sections() {
		depth := s.Depth()
		if depth > r.opts.TOCDepth {
			continue
		}
		buf.WriteString(strings.Repeat("    ", depth-1))
		if s.ID == "" {
			fmt.Fprintf(buf, "* %s\n", s.Label)
			continue
		}
		fmt.Fprintf(buf, "* [%s](#%s%s)\n", s.Label, AnchorPrefix, s.ID)
	}
	buf.WriteString("\n")
}

func (r *Renderer) renderNode(buf *bytes.Buffer, n document.Node) {
	switch n := n.(type) {
	case *document.Document:
		r.renderChildren(buf, n)
	case *document.Section:
		r.renderSection(buf, n)
	case *document.Text:
		buf.WriteString(n.Text)
	case *document.CrossReference:
		fmt.Fprintf(buf, "`%s`", n.Display())
	}
}

func (r *Renderer) renderChildren(buf *bytes.Buffer, n document.Node) {
	for _, child := range n.Children() {
		r.renderNode(buf, child)
	}
}

func (r *Renderer) renderSection(buf *bytes.Buffer, s *document.Section) {
	level := min(s.Depth(), maxHeading)
	fmt.Fprintf(buf, "<h%d", level)
	if s.ID != "" {
		fmt.Fprintf(buf, ` id="%s%s"`, AnchorPrefix, html.EscapeString(s.ID))
	}
	buf.WriteString(">")
	if r.opts.SectionKind && s.Kind != "" {
		fmt.Fprintf(buf, "<small>%s</small> ", s.Kind)
	}
	fmt.Fprintf(buf, "%s</h%d>\n\n", s.Label, level)

	if s.Signature != "" {
		if r.opts.SignatureBlock {
			fmt.Fprintf(buf, "```%s\n%s\n```\n", r.opts.SignatureLanguage, s.Signature)
		} else {
			fmt.Fprintf(buf, "> `%s`\n\n", s.Signature)
		}
	}
	r.renderChildren(buf, s)
}
