package document

import "fmt"

// Text is a block of prose rendered as-is. It cannot have children.
type Text struct {
	node
	Text string
}

// NewText returns a detached Text node.
func NewText(text string) *Text {
	t := &Text{Text: text}
	t.self = t
	return t
}

func (t *Text) Append(Node) error {
	return fmt.Errorf("%w: text nodes cannot have children", ErrInvalidOperation)
}

func (t *Text) Insert(int, Node) error {
	return fmt.Errorf("%w: text nodes cannot have children", ErrInvalidOperation)
}

func (t *Text) Clone() Node { return NewText(t.Text) }

func (t *Text) String() string {
	text := []rune(t.Text)
	if len(text) > 20 {
		text = append(text[:19], '…')
	}
	return fmt.Sprintf("Text(%q)", string(text))
}

// CrossReference points at the section with the given ID. Label is what gets
// displayed; when empty the ID is shown instead.
type CrossReference struct {
	node
	ID    string
	Label string
}

// NewCrossReference returns a detached CrossReference node.
func NewCrossReference(id, label string) *CrossReference {
	r := &CrossReference{ID: id, Label: label}
	r.self = r
	return r
}

func (r *CrossReference) Append(Node) error {
	return fmt.Errorf("%w: cross-references cannot have children", ErrInvalidOperation)
}

func (r *CrossReference) Insert(int, Node) error {
	return fmt.Errorf("%w: cross-references cannot have children", ErrInvalidOperation)
}

// Display returns the label, falling back to the target ID.
func (r *CrossReference) Display() string {
	if r.Label != "" {
		return r.Label
	}
	return r.ID
}

func (r *CrossReference) Clone() Node { return NewCrossReference(r.ID, r.Label) }

func (r *CrossReference) String() string {
	return fmt.Sprintf("CrossReference(id=%q, label=%q)", r.ID, r.Label)
}

// Section is a documented entity: a module, class, function and so on. An
// empty ID marks a structural grouping that cannot be cross-referenced.
type Section struct {
	node
	Kind      string
	ID        string
	Label     string
	Signature string
}

// NewSection returns a detached Section.
func NewSection(kind, id, label, signature string) *Section {
	s := &Section{Kind: kind, ID: id, Label: label, Signature: signature}
	s.self = s
	return s
}

// Document walks up the ancestors and returns the first Document, or nil.
func (s *Section) Document() *Document {
	for p := s.Parent(); p != nil; p = p.Parent() {
		if d, ok := p.(*Document); ok {
			return d
		}
	}
	return nil
}

// Depth counts the Section ancestors of s, including s itself.
func (s *Section) Depth() int {
	depth := 0
	for n := Node(s); n != nil; n = n.Parent() {
		if _, ok := n.(*Section); ok {
			depth++
		}
	}
	return depth
}

func (s *Section) Clone() Node {
	return cloneChildren(NewSection(s.Kind, s.ID, s.Label, s.Signature), &s.node)
}

func (s *Section) String() string {
	return fmt.Sprintf("Section(kind=%q, id=%q, label=%q)", s.Kind, s.ID, s.Label)
}

// Document is a top-level container written to one output file. Path is the
// slash separated location relative to the build directory.
type Document struct {
	node
	Path string
}

// NewDocument returns a detached Document.
func NewDocument(path string) *Document {
	d := &Document{Path: path}
	d.self = d
	return d
}

// Sections yields every Section in the document in pre-order.
func (d *Document) Sections() []*Section {
	var sections []*Section
	for n := range d.Hierarchy(IsSection, false) {
		sections = append(sections, n.(*Section))
	}
	return sections
}

// Remove detaches d. A document held by a Root is also dropped from the
// root's index, as with RemoveDocuments.
func (d *Document) Remove() {
	if r, ok := d.parent.(*Root); ok {
		r.RemoveDocuments(d)
		return
	}
	d.node.Remove()
}

// Substitute is refused for documents held by a Root; replacing a document
// goes through RemoveDocuments and AddDocument so paths stay unique.
func (d *Document) Substitute(nodes ...Node) error {
	if _, ok := d.parent.(*Root); ok {
		return fmt.Errorf("%w: use RemoveDocuments and AddDocument to replace %s", ErrInvalidOperation, d)
	}
	return d.node.Substitute(nodes...)
}

func (d *Document) Clone() Node {
	return cloneChildren(NewDocument(d.Path), &d.node)
}

func (d *Document) String() string {
	return fmt.Sprintf("Document(path=%q)", d.Path)
}

// IsSection is a Hierarchy filter selecting Section nodes.
func IsSection(n Node) bool {
	_, ok := n.(*Section)
	return ok
}

// IsText is a Hierarchy filter selecting Text nodes.
func IsText(n Node) bool {
	_, ok := n.(*Text)
	return ok
}
