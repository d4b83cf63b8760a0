// Package document is the object model refmd builds before rendering.
//
// A tree starts out as Sections holding a single Text node with the raw
// docstring. Preprocessors then split and rewrite Text nodes in place (for
// example into a Text, CrossReference, Text run) without copying the rest of
// the tree. Every node has exactly one parent at a time; attaching a node
// that already lives somewhere else detaches it first.
//
// Nodes must be created with their constructors (NewText, NewSection, ...).
package document

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Node is the closed set of tree elements: *Text, *CrossReference, *Section,
// *Document and *Root.
type Node interface {
	// Parent returns the node this node is attached to, or nil.
	Parent() Node
	// Children returns a snapshot of the child sequence. Mutating the tree
	// while ranging over the snapshot is safe.
	Children() []Node
	// Append detaches child from its current parent and adds it at the end.
	Append(child Node) error
	// Insert detaches child from its current parent and adds it at index.
	Insert(index int, child Node) error
	// Remove detaches the node from its parent. It is a no-op when detached.
	Remove()
	// Substitute replaces the node in its parent with nodes, in order.
	Substitute(nodes ...Node) error
	// CollapseText merges runs of consecutive Text children, recursively.
	CollapseText()
	// Hierarchy yields the subtree depth-first in pre-order.
	Hierarchy(filter func(Node) bool, includeSelf bool) iter.Seq[Node]
	// Clone returns a detached deep copy.
	Clone() Node

	base() *node
}

// node carries the parent/children links shared by every Node. The parent
// field is a back-reference only; ownership runs through children.
type node struct {
	self     Node
	parent   Node
	children []Node
}

func (n *node) base() *node { return n }

func (n *node) Parent() Node { return n.parent }

func (n *node) Children() []Node { return slices.Clone(n.children) }

func (n *node) Remove() {
	parent := n.parent
	n.parent = nil
	if parent == nil {
		return
	}
	pb := parent.base()
	if i := slices.Index(pb.children, n.self); i >= 0 {
		pb.children = slices.Delete(pb.children, i, i+1)
	}
}

func (n *node) Append(child Node) error {
	return n.attach(-1, child)
}

func (n *node) Insert(index int, child Node) error {
	return n.attach(index, child)
}

// attach inserts child at index, or at the end when index is negative. The
// index is applied after child has been detached, clamped to the valid range.
func (n *node) attach(index int, child Node) error {
	if err := checkAttach(n.self, child); err != nil {
		return err
	}
	child.Remove()
	child.base().parent = n.self
	if index < 0 || index > len(n.children) {
		index = len(n.children)
	}
	n.children = slices.Insert(n.children, index, child)
	return nil
}

func (n *node) Substitute(nodes ...Node) error {
	parent := n.parent
	if parent == nil {
		return fmt.Errorf("%w: cannot substitute %s, it has no parent", ErrInvalidOperation, describe(n.self))
	}
	seen := make(map[Node]struct{}, len(nodes))
	for _, nd := range nodes {
		if nd == n.self {
			return fmt.Errorf("%w: a node cannot substitute itself", ErrInvalidOperation)
		}
		if _, dup := seen[nd]; dup {
			return fmt.Errorf("%w: %s appears twice in substitution", ErrInvalidOperation, describe(nd))
		}
		seen[nd] = struct{}{}
		if err := checkAttach(parent, nd); err != nil {
			return err
		}
	}
	for _, nd := range nodes {
		nd.Remove()
		nd.base().parent = parent
	}
	pb := parent.base()
	i := slices.Index(pb.children, n.self)
	pb.children = slices.Replace(pb.children, i, i+1, nodes...)
	n.parent = nil
	return nil
}

func (n *node) CollapseText() {
	merged := make([]Node, 0, len(n.children))
	var (
		run *Text
		buf strings.Builder
	)
	flush := func() {
		if run != nil && buf.Len() > 0 {
			run.Text = buf.String()
			merged = append(merged, run)
		} else if run != nil {
			run.parent = nil
		}
		run = nil
		buf.Reset()
	}
	for _, child := range n.children {
		if t, ok := child.(*Text); ok {
			if run == nil {
				run = t
			} else {
				t.parent = nil
			}
			buf.WriteString(t.Text)
			continue
		}
		flush()
		child.CollapseText()
		merged = append(merged, child)
	}
	flush()
	n.children = merged
}

func (n *node) Hierarchy(filter func(Node) bool, includeSelf bool) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		walk(n.self, filter, includeSelf, yield)
	}
}

func walk(nd Node, filter func(Node) bool, include bool, yield func(Node) bool) bool {
	if include && (filter == nil || filter(nd)) {
		if !yield(nd) {
			return false
		}
	}
	for _, child := range nd.Children() {
		if !walk(child, filter, true, yield) {
			return false
		}
	}
	return true
}

func cloneChildren(dst Node, src *node) Node {
	for _, child := range src.children {
		// Clones of valid children are always attachable to a clone of
		// their parent.
		_ = dst.base().attach(-1, child.Clone())
	}
	return dst
}

// checkAttach enforces the structural rules of the tree.
func checkAttach(parent, child Node) error {
	if child == nil {
		return fmt.Errorf("%w: expected a node, got nil", ErrInvalidNode)
	}
	switch parent.(type) {
	case *Text, *CrossReference:
		return fmt.Errorf("%w: %s cannot have children", ErrInvalidOperation, describe(parent))
	case *Root:
		if _, ok := child.(*Document); !ok {
			return fmt.Errorf("%w: root only holds documents, got %s", ErrInvalidNode, describe(child))
		}
	}
	switch child.(type) {
	case *Section:
		switch parent.(type) {
		case *Section, *Document:
		default:
			return fmt.Errorf("%w: section can only be attached to a section or document, got %s",
				ErrInvalidNode, describe(parent))
		}
	case *Document:
		if _, ok := parent.(*Root); !ok {
			return fmt.Errorf("%w: document can only be attached to a root, got %s", ErrInvalidNode, describe(parent))
		}
	case *Root:
		return fmt.Errorf("%w: root cannot be attached", ErrInvalidNode)
	}
	for p := parent; p != nil; p = p.Parent() {
		if p == child {
			return fmt.Errorf("%w: attaching %s would create a cycle", ErrInvalidOperation, describe(child))
		}
	}
	return nil
}

func describe(n Node) string {
	if s, ok := n.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", n)
}
