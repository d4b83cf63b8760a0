package loader

import (
	"context"
	"slices"
	"strings"
)

// Descriptor is what a Source knows about one documented object.
type Descriptor struct {
	// Identifier is the absolute, dotted name of the object.
	Identifier string `yaml:"identifier" json:"identifier"`
	Kind       string `yaml:"kind" json:"kind"`
	// Title is the heading label. It defaults to the last identifier segment.
	Title     string `yaml:"title,omitempty" json:"title,omitempty"`
	Docstring string `yaml:"docstring,omitempty" json:"docstring,omitempty"`
	Signature string `yaml:"signature,omitempty" json:"signature,omitempty"`
	// Line is the source line of the definition, 0 when unknown.
	Line       int      `yaml:"line,omitempty" json:"line,omitempty"`
	Attributes []string `yaml:"attributes,omitempty" json:"attributes,omitempty"`
	// Children are member names relative to Identifier.
	Children []string `yaml:"children,omitempty" json:"children,omitempty"`
}

// Name returns the last segment of the identifier.
func (d *Descriptor) Name() string {
	if i := strings.LastIndexByte(d.Identifier, '.'); i >= 0 {
		return d.Identifier[i+1:]
	}
	return d.Identifier
}

// Label returns Title or, when empty, Name.
func (d *Descriptor) Label() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name()
}

// Has reports whether the descriptor carries tag. The tag "docstring" is
// satisfied by a non-empty docstring, any other tag must be listed in
// Attributes.
func (d *Descriptor) Has(tag string) bool {
	if tag == FilterDocstring {
		return d.Docstring != ""
	}
	return slices.Contains(d.Attributes, tag)
}

// Source resolves identifiers into descriptors. It is the boundary to
// whatever introspects the documented code.
type Source interface {
	Describe(ctx context.Context, identifier string) (*Descriptor, error)
}
