package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	pathStyle = lipgloss.NewStyle().
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

// reporter prints one line per written document and a closing summary.
type reporter struct {
	w        io.Writer
	files    int
	bytes    uint64
	sections int
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w}
}

func (r *reporter) wrote(path string, size, sections int) {
	r.files++
	r.bytes += uint64(size)
	r.sections += sections
	fmt.Fprintf(r.w, "%s %s %s\n",
		successStyle.Render("wrote"),
		pathStyle.Render(path),
		dimStyle.Render(fmt.Sprintf("(%s, %d sections)", humanize.Bytes(uint64(size)), sections)),
	)
}

func (r *reporter) summary(dir string) {
	fmt.Fprintf(r.w, "%s\n", dimStyle.Render(fmt.Sprintf("%d %s, %d sections, %s in %s",
		r.files, plural(r.files, "document", "documents"), r.sections, humanize.Bytes(r.bytes), dir)))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
