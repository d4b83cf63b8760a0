package preprocess

import (
	"strings"
	"testing"

	"github.com/agentflare-ai/refmd/internal/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dump renders nodes in a compact form for comparisons.
func dump(nodes []document.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		switch v := n.(type) {
		case *document.Text:
			out = append(out, "T:"+v.Text)
		case *document.CrossReference:
			out = append(out, "R:"+v.ID+"|"+v.Label)
		case *document.Section:
			out = append(out, "S:"+v.Label)
		}
	}
	return out
}

func TestRewriteLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "parameters",
			in:   "# Parameters\nx (int): desc\n",
			want: []string{"__Parameters__\n\n", "- __x__: desc\n", "\n"},
		},
		{
			name: "arguments without type",
			in:   "# Arguments\n  a: first value",
			want: []string{"__Arguments__\n\n", "- __a__: first value\n"},
		},
		{
			name: "attributes members raises",
			in:   "# Attributes\nname (str): the name\n# Members\nsize: bytes\n# Raises\nValueError: if bad",
			want: []string{
				"__Attributes__\n\n", "- `name`: the name\n",
				"__Members__\n\n", "- `size`: bytes\n",
				"__Raises__\n\n", "- `ValueError`: if bad\n",
			},
		},
		{
			name: "returns",
			in:   "# Returns\nint: Another integer.",
			want: []string{"__Returns__\n\n", "`int`: Another integer.\n"},
		},
		{
			name: "heading is case insensitive and trimmed",
			in:   "# PARAMETERS  \nx: y",
			want: []string{"__PARAMETERS  __\n\n", "- __x__: y\n"},
		},
		{
			name: "unknown heading passes lines through",
			in:   "# Example\nfoo: bar",
			want: []string{"__Example__\n\n", "foo: bar\n"},
		},
		{
			name: "no heading",
			in:   "key: value\n## Not a heading",
			want: []string{"key: value\n", "## Not a heading\n"},
		},
		{
			name: "continuation lines are not merged",
			in:   "# Arguments\nx: first\n  continued here",
			want: []string{"__Arguments__\n\n", "- __x__: first\n", "  continued here\n"},
		},
		{
			name: "code blocks are verbatim",
			in:   "# Parameters\n```\n# Raises\nx: 1\n```\ny: 2",
			want: []string{"__Parameters__\n\n", "```\n", "# Raises\n", "x: 1\n", "```\n", "- __y__: 2\n"},
		},
		{
			name: "bold field heading ends the block",
			in:   "# Parameters\nx: y\n**Returns**:\nthe result: ok",
			want: []string{"__Parameters__\n\n", "- __x__: y\n", "**Returns**:\n", "the result: ok\n"},
		},
		{
			name: "escaped colon",
			in:   "# Parameters\na\\: b",
			want: []string{"__Parameters__\n\n", "a\\: b\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteLines(tt.in))
		})
	}
}

func TestSplitReferences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "call and trailing dot",
			in:   "see #Foo.bar() and #Baz.",
			want: []string{"T:see ", "R:Foo.bar|Foo.bar()", "T: and ", "R:Baz|Baz", "T:."},
		},
		{
			name: "line start",
			in:   "#mod.func is used\n#other",
			want: []string{"R:mod.func|mod.func", "T: is used\n", "R:other|other"},
		},
		{
			name: "tab prefix",
			in:   "a\t#b_c1 d",
			want: []string{"T:a\t", "R:b_c1|b_c1", "T: d"},
		},
		{
			name: "no space before marker",
			in:   "issue#12 and foo#bar",
			want: []string{"T:issue#12 and foo#bar"},
		},
		{
			name: "parens keep the dot",
			in:   "#a.b.() x",
			want: []string{"R:a.b.|a.b.()", "T: x"},
		},
		{
			name: "unicode identifiers",
			in:   "see #Größe.",
			want: []string{"T:see ", "R:Größe|Größe", "T:."},
		},
		{
			name: "unmatched",
			in:   "plain text\n",
			want: []string{"T:plain text\n"},
		},
		{
			name: "empty",
			in:   "",
			want: []string{"T:"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dump(SplitReferences(tt.in)))
		})
	}
}

func TestPydocPreprocessText(t *testing.T) {
	sec := document.NewSection("function", "m.f", "f()", "")
	body := document.NewText("See #Foo.\n# Parameters\nx (int): the #Bar() value")
	require.NoError(t, sec.Append(body))

	p := &Pydoc{}
	require.NoError(t, p.PreprocessText(body))

	assert.Nil(t, body.Parent())
	assert.Equal(t, []string{
		"T:See ", "R:Foo|Foo", "T:.", "T:\n",
		"T:__Parameters__\n\n",
		"T:- __x__: the ", "R:Bar|Bar()", "T: value\n",
	}, dump(sec.Children()))
}

func TestPydocPreprocessRoot(t *testing.T) {
	root := document.NewRoot()
	doc := document.NewDocument("m.md")
	mod := document.NewSection(KindModule, "m", "m", "")
	require.NoError(t, mod.Append(document.NewText("Module #m.f()")))
	fn := document.NewSection(KindFunction, "m.f", "f()", "m.f()")
	require.NoError(t, fn.Append(document.NewText("# Returns\nint: a number")))
	require.NoError(t, mod.Append(fn))
	require.NoError(t, doc.Append(mod))
	require.NoError(t, root.AddDocument(doc))

	require.NoError(t, (&Pydoc{Reorganize: true}).Preprocess(root))

	children := mod.Children()
	require.Len(t, children, 4)
	assert.Equal(t, []string{"T:Module ", "R:m.f|m.f()", "T:\n", "S:Functions"}, dump(children))

	group := children[3].(*document.Section)
	assert.Empty(t, group.ID)
	require.Len(t, group.Children(), 1)
	assert.Same(t, fn, group.Children()[0])
	assert.Equal(t, []string{"T:__Returns__\n\n", "T:`int`: a number\n"}, dump(fn.Children()))
}

func TestPydocWithoutReorganize(t *testing.T) {
	root := document.NewRoot()
	doc := document.NewDocument("m.md")
	mod := document.NewSection(KindModule, "m", "m", "")
	require.NoError(t, mod.Append(document.NewSection(KindClass, "m.C", "C", "")))
	require.NoError(t, doc.Append(mod))
	require.NoError(t, root.AddDocument(doc))

	require.NoError(t, (&Pydoc{}).Preprocess(root))
	assert.Equal(t, []string{"S:C"}, dump(mod.Children()))
}

func TestGroup(t *testing.T) {
	group, err := New([]string{"sphinx", "pydoc"}, Options{})
	require.NoError(t, err)
	require.Len(t, group, 2)

	root := document.NewRoot()
	doc := document.NewDocument("m.md")
	sec := document.NewSection(KindFunction, "m.f", "f()", "")
	require.NoError(t, sec.Append(document.NewText("Does things.\n:param x: the #X\n:returns: nothing")))
	require.NoError(t, doc.Append(sec))
	require.NoError(t, root.AddDocument(doc))

	require.NoError(t, group.Preprocess(root))

	var b strings.Builder
	for _, n := range sec.Children() {
		switch v := n.(type) {
		case *document.Text:
			b.WriteString(v.Text)
		case *document.CrossReference:
			b.WriteString("`" + v.Display() + "`")
		}
	}
	assert.Equal(t,
		"Does things.\n\n\n**Arguments**:\n- `x`: the `X`\n\n\n**Returns**:\nnothing\n\n",
		b.String())

	_, err = New([]string{"nope"}, Options{})
	assert.Error(t, err)
}

func TestGroupMixedDocstring(t *testing.T) {
	group, err := New([]string{"sphinx", "pydoc"}, Options{})
	require.NoError(t, err)

	root := document.NewRoot()
	doc := document.NewDocument("m.md")
	sec := document.NewSection(KindFunction, "m.f", "f()", "")
	require.NoError(t, sec.Append(document.NewText("Does.\n# Parameters\nx: the x\n:returns: the result")))
	require.NoError(t, doc.Append(sec))
	require.NoError(t, root.AddDocument(doc))

	require.NoError(t, group.Preprocess(root))

	require.Len(t, sec.Children(), 1)
	assert.Equal(t,
		"Does.\n__Parameters__\n\n- __x__: the x\n\n\n**Returns**:\nthe result\n\n",
		sec.Children()[0].(*document.Text).Text)
}
