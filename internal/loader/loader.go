// Package loader builds the raw document tree from a Source.
//
// A module spec is an identifier followed by zero or more '+' markers. Each
// marker includes one more level of members: "pkg" documents only the
// package, "pkg+" adds its top-level members and "pkg++" their members too.
package loader

import (
	"context"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/agentflare-ai/refmd/internal/document"
	"github.com/pkg/errors"
)

// Sorting orders.
const (
	SortByName = "name"
	SortByLine = "line"
)

// FilterDocstring is the filter tag satisfied by any non-empty docstring.
const FilterDocstring = "docstring"

// Options controls which members are loaded and in which order.
type Options struct {
	// Sorting is SortByName or SortByLine.
	Sorting string
	// Filter lists tags a member must carry to be included.
	Filter []string
}

// Loader turns module specs into sections.
type Loader struct {
	source Source
	opts   Options
	logger *slog.Logger
}

func New(source Source, opts Options, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Sorting == "" {
		opts.Sorting = SortByLine
	}
	return &Loader{source: source, opts: opts, logger: logger}
}

// ParseModspec splits a module spec into its identifier and the number of
// levels to load, which is at least 1.
func ParseModspec(modspec string) (string, int) {
	ident := strings.TrimRight(modspec, "+")
	return ident, len(modspec) - len(ident) + 1
}

// DocumentPath derives the output path for a comma separated list of module
// specs from the first entry. Leading "./" and any ".." segments are dropped
// so the document stays inside the build directory.
func DocumentPath(modules, ext string) string {
	first, _, _ := strings.Cut(modules, ",")
	ident, _ := ParseModspec(strings.TrimSpace(first))
	var parts []string
	for _, part := range strings.Split(path.Clean("/"+ident), "/") {
		if part == "" || part == "." || part == ".." {
			continue
		}
		parts = append(parts, part)
	}
	name := strings.Join(parts, "/")
	if name == "" {
		name = "index"
	}
	return name + ext
}

// LoadDocument loads every module spec in the comma separated list modules
// into doc.
func (l *Loader) LoadDocument(ctx context.Context, modules string, doc *document.Document) error {
	for _, modspec := range strings.Split(modules, ",") {
		modspec = strings.TrimSpace(modspec)
		if modspec == "" {
			continue
		}
		ident, depth := ParseModspec(modspec)
		desc, err := l.describe(ctx, ident)
		if err != nil {
			return err
		}
		if err := l.build(ctx, doc, desc, depth, 1); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) describe(ctx context.Context, ident string) (*Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	desc, err := l.source.Describe(ctx, ident)
	if err != nil {
		l.logger.Error("error while loading", "identifier", ident, "error", err)
		return nil, errors.Wrapf(err, "load %q", ident)
	}
	return desc, nil
}

func (l *Loader) build(ctx context.Context, parent document.Node, desc *Descriptor, maxDepth, depth int) error {
	section := document.NewSection(desc.Kind, desc.Identifier, desc.Label(), desc.Signature)
	if err := section.Append(document.NewText(Trim(desc.Docstring))); err != nil {
		return err
	}
	if err := parent.Append(section); err != nil {
		return err
	}
	l.logger.Debug("loaded section", "identifier", desc.Identifier, "kind", desc.Kind, "depth", depth)
	if depth >= maxDepth {
		return nil
	}

	members, err := l.members(ctx, desc)
	if err != nil {
		return err
	}
	for _, member := range members {
		if err := l.build(ctx, section, member, maxDepth, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// members describes the children of desc that pass the filter, ordered per
// the sorting option. With line sorting, members without a line number come
// first, ordered by name.
func (l *Loader) members(ctx context.Context, desc *Descriptor) ([]*Descriptor, error) {
	var byName, byLine []*Descriptor
	for _, name := range desc.Children {
		member, err := l.describe(ctx, desc.Identifier+"."+name)
		if err != nil {
			return nil, err
		}
		if !l.accept(member) {
			continue
		}
		if l.opts.Sorting == SortByLine && member.Line > 0 {
			byLine = append(byLine, member)
		} else {
			byName = append(byName, member)
		}
	}
	slices.SortStableFunc(byName, func(a, b *Descriptor) int {
		return strings.Compare(strings.ToLower(a.Name()), strings.ToLower(b.Name()))
	})
	slices.SortStableFunc(byLine, func(a, b *Descriptor) int {
		return a.Line - b.Line
	})
	return append(byName, byLine...), nil
}

func (l *Loader) accept(desc *Descriptor) bool {
	for _, tag := range l.opts.Filter {
		if !desc.Has(tag) {
			return false
		}
	}
	return true
}
