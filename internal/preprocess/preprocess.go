// Package preprocess rewrites a loaded document tree before rendering.
//
// Preprocessors run in sequence over the whole Root. Most of them only care
// about Text nodes and implement TextPreprocessor; EachText takes care of
// walking the tree while the preprocessor substitutes the nodes it visits.
package preprocess

import (
	"fmt"

	"github.com/agentflare-ai/refmd/internal/document"
)

// Preprocessor modifies the document tree in place.
type Preprocessor interface {
	Preprocess(root *document.Root) error
}

// TextPreprocessor rewrites a single Text node, usually by substituting it
// with a run of new nodes.
type TextPreprocessor interface {
	PreprocessText(text *document.Text) error
}

// EachText calls p for every Text node below n. Children are visited from a
// snapshot, so p may substitute the node it is given.
func EachText(n document.Node, p TextPreprocessor) error {
	for t := range n.Hierarchy(document.IsText, true) {
		if err := p.PreprocessText(t.(*document.Text)); err != nil {
			return err
		}
	}
	return nil
}

// Group runs preprocessors in order. Adjacent Text nodes are merged after
// every step so the next preprocessor sees whole lines again.
type Group []Preprocessor

func (g Group) Preprocess(root *document.Root) error {
	for _, p := range g {
		if err := p.Preprocess(root); err != nil {
			return err
		}
		root.CollapseText()
	}
	return nil
}

// Options configures the built-in preprocessors.
type Options struct {
	// Reorganize groups module members into Data Members, Functions and
	// Classes sections.
	Reorganize bool
}

// Names lists the built-in preprocessors accepted by New.
var Names = []string{"pydoc", "sphinx"}

// New builds a Group from preprocessor names.
func New(names []string, opts Options) (Group, error) {
	group := make(Group, 0, len(names))
	for _, name := range names {
		switch name {
		case "pydoc":
			group = append(group, &Pydoc{Reorganize: opts.Reorganize})
		case "sphinx":
			group = append(group, Sphinx{})
		default:
			return nil, fmt.Errorf("unknown preprocessor %q", name)
		}
	}
	return group, nil
}
