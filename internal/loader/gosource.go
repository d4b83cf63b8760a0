package loader

import (
	"bytes"
	"context"
	"go/ast"
	"go/doc"
	"go/format"
	"go/token"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/tools/go/packages"
)

// Kinds assigned by GoSource.
const (
	KindModule   = "module"
	KindClass    = "class"
	KindFunction = "function"
	KindData     = "data"
)

// AttrExported marks descriptors of exported Go identifiers.
const AttrExported = "exported"

// GoSource describes Go packages. The identifier of a package is the pattern
// it was loaded with; members hang off it with dots, as in "./pkg.Type.Method".
// Constructors and methods are members of their type.
type GoSource struct {
	// Unexported includes unexported declarations.
	Unexported bool
	// Dir is the working directory for package loading.
	Dir string

	mu          sync.Mutex
	packages    map[string]bool
	descriptors map[string]*Descriptor
}

func NewGoSource() *GoSource {
	return &GoSource{
		packages:    make(map[string]bool),
		descriptors: make(map[string]*Descriptor),
	}
}

func (s *GoSource) Describe(ctx context.Context, identifier string) (*Descriptor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.descriptors == nil {
		s.packages = make(map[string]bool)
		s.descriptors = make(map[string]*Descriptor)
	}
	if d, ok := s.descriptors[identifier]; ok {
		return d, nil
	}
	candidates := candidatePatterns(identifier)
	var loadErr error
	for _, pattern := range candidates {
		if s.packages[pattern] {
			continue
		}
		if err := s.loadPackage(ctx, pattern); err != nil {
			loadErr = err
			continue
		}
		if d, ok := s.descriptors[identifier]; ok {
			return d, nil
		}
	}
	if len(candidates) == 1 && loadErr != nil {
		return nil, loadErr
	}
	return nil, errors.Wrap(ErrNotFound, identifier)
}

// candidatePatterns lists package patterns that could own identifier: the
// identifier itself, then every prefix ending before a dot, longest first.
func candidatePatterns(identifier string) []string {
	patterns := []string{identifier}
	for i := len(identifier) - 1; i > 0; i-- {
		if identifier[i] == '.' && identifier[i-1] != '.' && identifier[i-1] != '/' {
			patterns = append(patterns, identifier[:i])
		}
	}
	return patterns
}

func (s *GoSource) loadPackage(ctx context.Context, pattern string) error {
	s.packages[pattern] = true
	cfg := &packages.Config{
		Context: ctx,
		Dir:     s.Dir,
		Mode: packages.NeedName | packages.NeedCompiledGoFiles | packages.NeedFiles |
			packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedTypesSizes | packages.NeedModule | packages.NeedImports,
	}
	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return errors.Wrapf(err, "load package %s", pattern)
	}
	if len(pkgs) == 0 {
		return errors.Errorf("no Go packages matched %q", pattern)
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return errors.Errorf("%s", pkg.Errors[0])
	}
	mode := doc.Mode(0)
	if s.Unexported {
		mode |= doc.AllDecls | doc.AllMethods
	}
	dpkg, err := doc.NewFromFiles(pkg.Fset, pkg.Syntax, pkg.PkgPath, mode)
	if err != nil {
		return errors.Wrapf(err, "read documentation of %s", pattern)
	}
	d := describer{fset: pkg.Fset, prefix: pattern, out: s.descriptors}
	d.pkg(dpkg)
	return nil
}

// describer flattens a doc.Package into descriptors keyed by identifier.
type describer struct {
	fset   *token.FileSet
	prefix string
	out    map[string]*Descriptor
}

func (d *describer) pkg(p *doc.Package) {
	mod := &Descriptor{
		Identifier: d.prefix,
		Kind:       KindModule,
		Title:      p.Name,
		Docstring:  p.Doc,
		Attributes: []string{AttrExported},
	}
	if p.ImportPath != "" {
		mod.Signature = `import "` + p.ImportPath + `"`
	}
	d.out[mod.Identifier] = mod

	mod.Children = append(mod.Children, d.values(mod, p.Consts)...)
	mod.Children = append(mod.Children, d.values(mod, p.Vars)...)
	mod.Children = append(mod.Children, d.funcs(mod, p.Funcs)...)
	for _, t := range p.Types {
		mod.Children = append(mod.Children, d.typ(mod, t))
	}
}

func (d *describer) typ(parent *Descriptor, t *doc.Type) string {
	desc := d.add(parent, t.Name, &Descriptor{
		Kind:      KindClass,
		Docstring: t.Doc,
		Signature: d.typeSignature(t),
		Line:      d.line(t.Decl),
	})
	desc.Children = append(desc.Children, d.values(desc, t.Consts)...)
	desc.Children = append(desc.Children, d.values(desc, t.Vars)...)
	desc.Children = append(desc.Children, d.funcs(desc, t.Funcs)...)
	desc.Children = append(desc.Children, d.funcs(desc, t.Methods)...)
	return t.Name
}

func (d *describer) funcs(parent *Descriptor, funcs []*doc.Func) []string {
	names := make([]string, 0, len(funcs))
	for _, f := range funcs {
		d.add(parent, f.Name, &Descriptor{
			Kind:      KindFunction,
			Title:     f.Name + "()",
			Docstring: f.Doc,
			Signature: d.funcSignature(f.Decl),
			Line:      d.line(f.Decl),
		})
		names = append(names, f.Name)
	}
	return names
}

func (d *describer) values(parent *Descriptor, values []*doc.Value) []string {
	var names []string
	for _, v := range values {
		sig := d.formatNode(v.Decl)
		specDocs := valueSpecDocs(v.Decl)
		for _, name := range v.Names {
			if name == "_" {
				continue
			}
			docstring := v.Doc
			if docstring == "" {
				docstring = specDocs[name]
			}
			d.add(parent, name, &Descriptor{
				Kind:      KindData,
				Docstring: docstring,
				Signature: sig,
				Line:      d.line(v.Decl),
			})
			names = append(names, name)
		}
	}
	return names
}

// valueSpecDocs maps names in a grouped declaration to the comment of their
// own spec.
func valueSpecDocs(decl *ast.GenDecl) map[string]string {
	docs := make(map[string]string)
	if decl == nil {
		return docs
	}
	for _, spec := range decl.Specs {
		vs, ok := spec.(*ast.ValueSpec)
		if !ok || vs.Doc == nil {
			continue
		}
		for _, name := range vs.Names {
			docs[name.Name] = vs.Doc.Text()
		}
	}
	return docs
}

func (d *describer) add(parent *Descriptor, name string, desc *Descriptor) *Descriptor {
	desc.Identifier = parent.Identifier + "." + name
	if ast.IsExported(name) {
		desc.Attributes = append(desc.Attributes, AttrExported)
	}
	d.out[desc.Identifier] = desc
	return desc
}

func (d *describer) line(n ast.Node) int {
	if n == nil {
		return 0
	}
	return d.fset.Position(n.Pos()).Line
}

func (d *describer) typeSignature(t *doc.Type) string {
	if t.Decl == nil {
		return ""
	}
	for _, spec := range t.Decl.Specs {
		if ts, ok := spec.(*ast.TypeSpec); ok && ts.Name != nil && ts.Name.Name == t.Name {
			return "type " + d.formatNode(ts)
		}
	}
	return d.formatNode(t.Decl)
}

func (d *describer) formatNode(node ast.Node) string {
	if node == nil {
		return ""
	}
	var buf bytes.Buffer
	if err := format.Node(&buf, d.fset, node); err != nil {
		return ""
	}
	return strings.TrimSpace(buf.String())
}

func (d *describer) funcSignature(decl *ast.FuncDecl) string {
	if decl == nil || decl.Type == nil {
		return ""
	}
	var buf bytes.Buffer
	buf.WriteString("func ")
	if decl.Recv != nil && len(decl.Recv.List) > 0 {
		recv := decl.Recv.List[0]
		buf.WriteString("(")
		for i, name := range recv.Names {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(name.Name)
		}
		if len(recv.Names) > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(d.formatNode(recv.Type))
		buf.WriteString(") ")
	}
	buf.WriteString(decl.Name.Name)
	buf.WriteString(strings.TrimPrefix(d.formatNode(decl.Type), "func"))
	return buf.String()
}
