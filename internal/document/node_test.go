package document

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(nodes []Node) []string {
	var out []string
	for _, n := range nodes {
		switch v := n.(type) {
		case *Text:
			out = append(out, "T:"+v.Text)
		case *CrossReference:
			out = append(out, "R:"+v.ID)
		case *Section:
			out = append(out, "S:"+v.Label)
		default:
			out = append(out, describe(n))
		}
	}
	return out
}

func count(nodes []Node, target Node) int {
	n := 0
	for _, c := range nodes {
		if c == target {
			n++
		}
	}
	return n
}

func TestAppendSetsParent(t *testing.T) {
	a := NewSection("class", "a", "A", "")
	b := NewText("b")

	require.NoError(t, a.Append(b))
	assert.Equal(t, Node(a), b.Parent())
	assert.Equal(t, 1, count(a.Children(), b))

	require.NoError(t, a.Append(b))
	assert.Equal(t, 1, count(a.Children(), b), "appending twice keeps a single entry")
	assert.Len(t, a.Children(), 1)
}

func TestAppendDetachesFromPreviousParent(t *testing.T) {
	first := NewSection("module", "first", "first", "")
	second := NewSection("module", "second", "second", "")
	child := NewText("x")

	require.NoError(t, first.Append(child))
	require.NoError(t, second.Append(child))

	assert.Empty(t, first.Children())
	assert.Equal(t, Node(second), child.Parent())
}

func TestInsert(t *testing.T) {
	s := NewSection("module", "m", "m", "")
	a, b, c := NewText("a"), NewText("b"), NewText("c")
	require.NoError(t, s.Append(a))
	require.NoError(t, s.Append(c))
	require.NoError(t, s.Insert(1, b))
	assert.Equal(t, []string{"T:a", "T:b", "T:c"}, texts(s.Children()))

	// Moving an existing child re-inserts it after detaching.
	require.NoError(t, s.Insert(0, c))
	assert.Equal(t, []string{"T:c", "T:a", "T:b"}, texts(s.Children()))

	// Out of range indices clamp to the end.
	d := NewText("d")
	require.NoError(t, s.Insert(99, d))
	assert.Equal(t, []string{"T:c", "T:a", "T:b", "T:d"}, texts(s.Children()))
}

func TestLeafNodesRejectChildren(t *testing.T) {
	tests := []struct {
		name string
		leaf Node
	}{
		{"text", NewText("leaf")},
		{"cross-reference", NewCrossReference("x", "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.leaf.Append(NewText("child")), ErrInvalidOperation)
			assert.ErrorIs(t, tt.leaf.Insert(0, NewText("child")), ErrInvalidOperation)
			assert.Empty(t, tt.leaf.Children())
		})
	}
}

func TestAttachRejectsInvalidNodes(t *testing.T) {
	s := NewSection("module", "m", "m", "")
	assert.ErrorIs(t, s.Append(nil), ErrInvalidNode)

	doc := NewDocument("a.md")
	assert.ErrorIs(t, s.Append(doc), ErrInvalidNode, "documents only live under a root")

	assert.ErrorIs(t, s.Append(s), ErrInvalidOperation)

	child := NewSection("class", "c", "c", "")
	require.NoError(t, s.Append(child))
	assert.ErrorIs(t, child.Append(s), ErrInvalidOperation, "cycles are rejected")
}

func TestSectionParentMustBeSectionOrDocument(t *testing.T) {
	root := NewRoot()
	err := root.node.attach(-1, NewSection("module", "m", "m", ""))
	assert.ErrorIs(t, err, ErrInvalidNode)

	doc := NewDocument("a.md")
	assert.NoError(t, doc.Append(NewSection("module", "m", "m", "")))
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := NewSection("module", "m", "m", "")
	child := NewText("x")
	require.NoError(t, s.Append(child))

	child.Remove()
	child.Remove()
	assert.Nil(t, child.Parent())
	assert.Empty(t, s.Children())
}

func TestSubstitutePreservesPosition(t *testing.T) {
	s := NewSection("module", "m", "m", "")
	nodes := []*Text{NewText("0"), NewText("1"), NewText("2"), NewText("3")}
	for _, n := range nodes {
		require.NoError(t, s.Append(n))
	}

	repl := []Node{NewText("a"), NewCrossReference("b", ""), NewText("c")}
	require.NoError(t, nodes[2].Substitute(repl...))

	children := s.Children()
	assert.Len(t, children, 4-1+3)
	assert.Equal(t, []string{"T:0", "T:1", "T:a", "R:b", "T:c", "T:3"}, texts(children))
	for _, r := range repl {
		assert.Equal(t, Node(s), r.Parent())
	}
	assert.Nil(t, nodes[2].Parent())
}

func TestSubstituteWithNothingRemoves(t *testing.T) {
	s := NewSection("module", "m", "m", "")
	x := NewText("x")
	require.NoError(t, s.Append(x))
	require.NoError(t, x.Substitute())
	assert.Empty(t, s.Children())
}

func TestSubstituteMovesNodesFromOtherParents(t *testing.T) {
	a := NewSection("module", "a", "a", "")
	b := NewSection("module", "b", "b", "")
	target := NewText("target")
	moved := NewText("moved")
	require.NoError(t, a.Append(target))
	require.NoError(t, b.Append(moved))

	require.NoError(t, target.Substitute(moved))
	assert.Empty(t, b.Children())
	assert.Equal(t, []string{"T:moved"}, texts(a.Children()))
}

func TestSubstituteErrors(t *testing.T) {
	detached := NewText("x")
	assert.ErrorIs(t, detached.Substitute(NewText("y")), ErrInvalidOperation)

	s := NewSection("module", "m", "m", "")
	x := NewText("x")
	require.NoError(t, s.Append(x))
	assert.ErrorIs(t, x.Substitute(x), ErrInvalidOperation)
	assert.ErrorIs(t, x.Substitute(nil), ErrInvalidNode)

	y := NewText("y")
	assert.ErrorIs(t, x.Substitute(y, y), ErrInvalidOperation)
	assert.Equal(t, []string{"T:x"}, texts(s.Children()), "failed substitution leaves the tree untouched")
}

func TestCollapseText(t *testing.T) {
	doc := NewDocument("a.md")
	sec := NewSection("module", "m", "m", "")
	require.NoError(t, doc.Append(NewText("a")))
	require.NoError(t, doc.Append(NewText("b")))
	require.NoError(t, doc.Append(sec))
	require.NoError(t, doc.Append(NewText("c")))
	require.NoError(t, sec.Append(NewText("x")))
	require.NoError(t, sec.Append(NewText("")))
	require.NoError(t, sec.Append(NewCrossReference("ref", "")))
	require.NoError(t, sec.Append(NewText("y")))
	require.NoError(t, sec.Append(NewText("z")))

	doc.CollapseText()
	assert.Equal(t, []string{"T:ab", "S:m", "T:c"}, texts(doc.Children()))
	assert.Equal(t, []string{"T:x", "R:ref", "T:yz"}, texts(sec.Children()))

	for _, child := range doc.Children() {
		assert.Equal(t, Node(doc), child.Parent())
	}

	before := texts(slices.Collect(doc.Hierarchy(nil, true)))
	doc.CollapseText()
	assert.Equal(t, before, texts(slices.Collect(doc.Hierarchy(nil, true))), "collapse is idempotent")
}

func TestCollapseTextDropsEmptyRuns(t *testing.T) {
	s := NewSection("module", "m", "m", "")
	empty := NewText("")
	require.NoError(t, s.Append(empty))
	s.CollapseText()
	assert.Empty(t, s.Children())
	assert.Nil(t, empty.Parent())
}

func TestHierarchy(t *testing.T) {
	doc := NewDocument("a.md")
	m := NewSection("module", "m", "m", "")
	c := NewSection("class", "m.C", "C", "")
	f := NewSection("function", "m.f", "f", "")
	require.NoError(t, doc.Append(m))
	require.NoError(t, m.Append(NewText("doc")))
	require.NoError(t, m.Append(c))
	require.NoError(t, c.Append(f))

	all := texts(slices.Collect(doc.Hierarchy(nil, true)))
	assert.Equal(t, []string{`Document(path="a.md")`, "S:m", "T:doc", "S:C", "S:f"}, all)

	sections := texts(slices.Collect(doc.Hierarchy(IsSection, false)))
	assert.Equal(t, []string{"S:m", "S:C", "S:f"}, sections)

	// Each call starts a fresh traversal and early exit is honoured.
	var first []Node
	for n := range doc.Hierarchy(IsSection, false) {
		first = append(first, n)
		break
	}
	assert.Equal(t, []string{"S:m"}, texts(first))
	assert.Len(t, slices.Collect(doc.Hierarchy(IsSection, false)), 3)
}

func TestSectionDepthAndDocument(t *testing.T) {
	doc := NewDocument("a.md")
	m := NewSection("module", "m", "m", "")
	c := NewSection("class", "m.C", "C", "")
	f := NewSection("function", "m.C.f", "f", "")
	require.NoError(t, doc.Append(m))
	require.NoError(t, m.Append(c))
	require.NoError(t, c.Append(f))

	assert.Equal(t, 1, m.Depth())
	assert.Equal(t, 2, c.Depth())
	assert.Equal(t, 3, f.Depth())
	assert.Same(t, doc, f.Document())
	assert.Nil(t, NewSection("", "", "", "").Document())
}

func TestClone(t *testing.T) {
	s := NewSection("class", "m.C", "C", "C()")
	require.NoError(t, s.Append(NewText("body")))
	require.NoError(t, s.Append(NewCrossReference("m.D", "D")))

	clone := s.Clone().(*Section)
	assert.Nil(t, clone.Parent())
	assert.Equal(t, s.String(), clone.String())
	assert.Equal(t, texts(s.Children()), texts(clone.Children()))

	clone.Children()[0].(*Text).Text = "changed"
	assert.Equal(t, "body", s.Children()[0].(*Text).Text)
	for _, child := range clone.Children() {
		assert.Equal(t, Node(clone), child.Parent())
	}
}

func TestTextString(t *testing.T) {
	assert.Equal(t, `Text("short")`, NewText("short").String())
	assert.Equal(t, `Text("0123456789012345678…")`, NewText("0123456789012345678901234").String())
}
