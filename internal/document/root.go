package document

import "fmt"

// Root owns every Document of a generation run and indexes them by path and
// their sections by ID.
//
// The section index is a snapshot: structural changes made after a document
// was added are only picked up by Reindex. Section IDs that collide overwrite
// each other, the last one indexed wins.
type Root struct {
	node
	documents map[string]*Document
	sections  map[string]*Section
}

// NewRoot returns an empty Root.
func NewRoot() *Root {
	r := &Root{
		documents: make(map[string]*Document),
		sections:  make(map[string]*Section),
	}
	r.self = r
	return r
}

// Append rejects direct attachment; documents must go through AddDocument so
// the index stays in sync.
func (r *Root) Append(child Node) error {
	return fmt.Errorf("%w: use AddDocument to attach %s to a root", ErrInvalidOperation, describe(child))
}

func (r *Root) Insert(_ int, child Node) error {
	return r.Append(child)
}

// AddDocument attaches doc and indexes its sections.
func (r *Root) AddDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: expected a document, got nil", ErrInvalidNode)
	}
	if doc.Path == "" {
		return fmt.Errorf("%w: document has no path", ErrDuplicateKey)
	}
	if _, ok := r.documents[doc.Path]; ok {
		return fmt.Errorf("%w: document %q already exists", ErrDuplicateKey, doc.Path)
	}
	if err := r.node.attach(-1, doc); err != nil {
		return err
	}
	r.documents[doc.Path] = doc
	r.indexSections(doc)
	return nil
}

// RemoveDocuments detaches the documents and drops them and their sections
// from the index.
func (r *Root) RemoveDocuments(docs ...*Document) {
	for _, doc := range docs {
		if doc == nil {
			continue
		}
		if r.documents[doc.Path] == doc {
			delete(r.documents, doc.Path)
		}
		r.unindexSections(doc)
		if doc.Parent() == Node(r) {
			doc.node.Remove()
		}
	}
}

// RemoveSections detaches the sections and drops them, and any identified
// descendants, from the index.
func (r *Root) RemoveSections(sections ...*Section) {
	for _, s := range sections {
		if s == nil {
			continue
		}
		r.unindexSections(s)
		s.Remove()
	}
}

// FindDocument returns the document registered under path. With create set,
// a missing document is created and registered.
func (r *Root) FindDocument(path string, create bool) (*Document, error) {
	if doc, ok := r.documents[path]; ok {
		return doc, nil
	}
	if !create {
		return nil, nil
	}
	doc := NewDocument(path)
	if err := r.AddDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Documents returns the registered documents in attachment order.
func (r *Root) Documents() []*Document {
	docs := make([]*Document, 0, len(r.children))
	for _, child := range r.children {
		if doc, ok := child.(*Document); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// FindSection searches the tree for the first section with the given ID in
// traversal order. Unlike LookupSection it does not consult the index.
func (r *Root) FindSection(id string) *Section {
	for n := range r.Hierarchy(IsSection, false) {
		if s := n.(*Section); s.ID == id {
			return s
		}
	}
	return nil
}

// LookupSection returns the indexed section for id.
func (r *Root) LookupSection(id string) (*Section, bool) {
	s, ok := r.sections[id]
	return s, ok
}

// Reindex rebuilds the section index from the current tree.
func (r *Root) Reindex() {
	clear(r.sections)
	for _, doc := range r.Documents() {
		r.indexSections(doc)
	}
}

// Join moves the children of every registered document into a single new
// document at path, which replaces them in the root.
func (r *Root) Join(path string) (*Document, error) {
	joined := NewDocument(path)
	docs := r.Documents()
	for _, doc := range docs {
		for _, child := range doc.Children() {
			if err := joined.Append(child); err != nil {
				return nil, err
			}
		}
	}
	r.RemoveDocuments(docs...)
	if err := r.AddDocument(joined); err != nil {
		return nil, err
	}
	return joined, nil
}

func (r *Root) indexSections(n Node) {
	for s := range n.Hierarchy(IsSection, true) {
		if sec := s.(*Section); sec.ID != "" {
			r.sections[sec.ID] = sec
		}
	}
}

func (r *Root) unindexSections(n Node) {
	for s := range n.Hierarchy(IsSection, true) {
		if sec := s.(*Section); sec.ID != "" && r.sections[sec.ID] == sec {
			delete(r.sections, sec.ID)
		}
	}
}

func (r *Root) Clone() Node {
	clone := NewRoot()
	for _, doc := range r.Documents() {
		_ = clone.AddDocument(doc.Clone().(*Document))
	}
	return clone
}

func (r *Root) String() string {
	return fmt.Sprintf("Root(documents=%d)", len(r.documents))
}
