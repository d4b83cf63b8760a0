package preprocess

import (
	"github.com/agentflare-ai/refmd/internal/document"
)

// Section kinds with special meaning to the reorganization pass.
const (
	KindModule   = "module"
	KindClass    = "class"
	KindFunction = "function"
)

// Labels of the grouping sections created by Reorganize, in output order.
const (
	LabelDataMembers = "Data Members"
	LabelFunctions   = "Functions"
	LabelClasses     = "Classes"
)

// Reorganize moves the direct Section children of module under grouping
// sections for data members, functions and classes. Each group keeps the
// relative order of its members and is only created when it has any. The
// groups carry no ID, so nothing can reference them. Other children of the
// module stay where they are.
func Reorganize(module *document.Section) error {
	var classes, functions, other []document.Node
	for _, child := range module.Children() {
		s, ok := child.(*document.Section)
		if !ok {
			continue
		}
		switch s.Kind {
		case KindClass:
			classes = append(classes, s)
		case KindFunction:
			functions = append(functions, s)
		default:
			other = append(other, s)
		}
		s.Remove()
	}

	groups := []struct {
		label   string
		members []document.Node
	}{
		{LabelDataMembers, other},
		{LabelFunctions, functions},
		{LabelClasses, classes},
	}
	for _, g := range groups {
		if len(g.members) == 0 {
			continue
		}
		group := document.NewSection("", "", g.label, "")
		for _, member := range g.members {
			if err := group.Append(member); err != nil {
				return err
			}
		}
		if err := module.Append(group); err != nil {
			return err
		}
	}
	return nil
}
