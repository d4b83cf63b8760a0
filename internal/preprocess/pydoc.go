package preprocess

import (
	"regexp"
	"strings"

	"github.com/agentflare-ai/refmd/internal/document"
)

// Pydoc understands the docstring convention where a `# Heading` line
// opens a block and the heading decides how the following lines look:
//
//	# Parameters
//	a (int): An integer.
//
//	# Returns
//	int: Another integer.
//
//	# Raises
//	ValueError: If something bad happens.
//
// Headings always become bold lines. Under "Arguments" and "Parameters" every
// `name (type): text` line becomes a bullet with a bold name; under
// "Attributes", "Members" and "Raises" the name is set as code; under
// "Returns" the name is set as code without a bullet. The type in parentheses
// is dropped. A bold "**Name**:" line, as written by Sphinx, ends the block.
//
// A second pass turns `#symbol` and `#symbol()` references into
// CrossReference nodes.
type Pydoc struct {
	Reorganize bool
}

var (
	headingPattern = regexp.MustCompile(`^# (.*)$`)
	//                                      | name      | type         | text
	memberPattern = regexp.MustCompile(`\s*([^\\:]+?)(\s*\(.+\))?:(.*)$`)
	refPattern    = regexp.MustCompile(`(?m)(^| |\t)#([\p{L}\p{N}_.]+)(\(\))?`)
	// Block headings emitted by Sphinx, such as "**Returns**:".
	boldHeadingPattern = regexp.MustCompile(`^\*\*[^*]+\*\*:\s*$`)
)

var memberStyles = map[string]string{
	"arguments":  "- __${1}__:${3}",
	"parameters": "- __${1}__:${3}",
	"attributes": "- `${1}`:${3}",
	"members":    "- `${1}`:${3}",
	"raises":     "- `${1}`:${3}",
	"returns":    "`${1}`:${3}",
}

func (p *Pydoc) Preprocess(root *document.Root) error {
	if err := EachText(root, p); err != nil {
		return err
	}
	if !p.Reorganize {
		return nil
	}
	for _, doc := range root.Documents() {
		for _, child := range doc.Children() {
			if s, ok := child.(*document.Section); ok && s.Kind == KindModule {
				if err := Reorganize(s); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// PreprocessText rewrites t line by line and then extracts cross-references
// from every resulting line.
func (p *Pydoc) PreprocessText(t *document.Text) error {
	lines := RewriteLines(t.Text)
	nodes := make([]document.Node, len(lines))
	for i, line := range lines {
		nodes[i] = document.NewText(line)
	}
	if err := t.Substitute(nodes...); err != nil {
		return err
	}
	for _, n := range nodes {
		line := n.(*document.Text)
		if err := line.Substitute(SplitReferences(line.Text)...); err != nil {
			return err
		}
	}
	return nil
}

// RewriteLines applies the heading and member rules to every line of text.
// Each returned line keeps its trailing newline. Lines inside fenced code
// blocks are returned untouched.
func RewriteLines(text string) []string {
	var (
		out     []string
		inCode  bool
		current string
	)
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
		}
		if inCode {
			out = append(out, line+"\n")
			continue
		}
		line, current = rewriteLine(line, current)
		out = append(out, line+"\n")
	}
	return out
}

// rewriteLine handles a single line without its newline. It returns the new
// line and the heading block it belongs to.
func rewriteLine(line, current string) (string, string) {
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		current = strings.ToLower(strings.TrimSpace(m[1]))
		line = headingPattern.ReplaceAllString(line, "__${1}__\n")
	} else if boldHeadingPattern.MatchString(line) {
		current = ""
	}
	if style, ok := memberStyles[current]; ok {
		line = memberPattern.ReplaceAllString(line, style)
	}
	return line, current
}

// SplitReferences breaks content into Text and CrossReference nodes. A
// reference without parentheses that ends in a dot loses the dot, which is
// emitted as its own Text node.
func SplitReferences(content string) []document.Node {
	var (
		nodes []document.Node
		index int
	)
	for _, m := range refPattern.FindAllStringSubmatchIndex(content, -1) {
		// m[3] is the end of the prefix group, where '#' sits.
		if m[3] > index {
			nodes = append(nodes, document.NewText(content[index:m[3]]))
		}
		ref := content[m[4]:m[5]]
		var parens string
		if m[6] >= 0 {
			parens = content[m[6]:m[7]]
		}
		trailingDot := parens == "" && strings.HasSuffix(ref, ".")
		if trailingDot {
			ref = strings.TrimSuffix(ref, ".")
		}
		nodes = append(nodes, document.NewCrossReference(ref, ref+parens))
		if trailingDot {
			nodes = append(nodes, document.NewText("."))
		}
		index = m[1]
	}
	if index < len(content) || len(nodes) == 0 {
		nodes = append(nodes, document.NewText(content[index:]))
	}
	return nodes
}
