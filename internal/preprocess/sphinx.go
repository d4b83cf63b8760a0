package preprocess

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agentflare-ai/refmd/internal/document"
)

// Sphinx converts reStructuredText field lists into the Markdown layout used
// by Pydoc. Recognized fields are collected per keyword and appended to the
// end of the text:
//
//	:param name: text
//	:returns: text
//	:raises ValueError: text
//
// Lines following a field belong to the same keyword. Text without any
// field is left alone.
type Sphinx struct{}

var (
	sphinxParam  = regexp.MustCompile(`^:(?:param|parameter)\s+([\p{L}\p{N}_]+)\s*:(.*)$`)
	sphinxReturn = regexp.MustCompile(`^:(?:return|returns)\s*:(.*)$`)
	sphinxRaise  = regexp.MustCompile(`^:(?:raises|raise)\s+([\p{L}\p{N}_]+)\s*:(.*)$`)
)

func (s Sphinx) Preprocess(root *document.Root) error {
	return EachText(root, s)
}

func (Sphinx) PreprocessText(t *document.Text) error {
	var (
		nodes   []document.Node
		inCode  bool
		keyword string
		order   []string
		fields  = map[string][]string{}
	)
	add := func(key, item string) {
		if _, ok := fields[key]; !ok {
			order = append(order, key)
		}
		fields[key] = append(fields[key], item)
	}

	for _, line := range strings.Split(t.Text, "\n") {
		if strings.HasPrefix(line, "```") {
			inCode = !inCode
		}
		if !inCode {
			if m := sphinxParam.FindStringSubmatch(line); m != nil {
				keyword = "Arguments"
				add(keyword, fmt.Sprintf("- `%s`: %s", m[1], strings.TrimSpace(m[2])))
				continue
			}
			if m := sphinxReturn.FindStringSubmatch(line); m != nil {
				keyword = "Returns"
				add(keyword, strings.TrimSpace(m[1]))
				continue
			}
			if m := sphinxRaise.FindStringSubmatch(line); m != nil {
				keyword = "Raises"
				add(keyword, fmt.Sprintf("- `%s`: %s", m[1], strings.TrimSpace(m[2])))
				continue
			}
		}
		if keyword != "" {
			add(keyword, line)
		} else {
			nodes = append(nodes, document.NewText(line+"\n"))
		}
	}

	if len(order) == 0 {
		return nil
	}
	for _, key := range order {
		nodes = append(nodes, document.NewText("\n\n"), document.NewText("**"+key+"**:\n"))
		for _, item := range fields[key] {
			nodes = append(nodes, document.NewText(item+"\n"))
		}
	}
	return t.Substitute(nodes...)
}
