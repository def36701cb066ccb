package codemodel

import (
	"sort"
	"strings"
)

// Package holds top-level classes, resource files and package-level
// annotations and Javadoc. The unnamed package has the empty name.
type Package struct {
	model       *Model
	name        string
	classes     map[string]*DefinedClass
	keys        map[string]*DefinedClass
	resources   []ResourceFile
	annotations []*AnnotationUse
	doc         *DocComment
}

func newPackage(m *Model, name string) *Package {
	return &Package{
		model:   m,
		name:    name,
		classes: make(map[string]*DefinedClass),
		keys:    make(map[string]*DefinedClass),
	}
}

func (p *Package) Name() string    { return p.name }
func (p *Package) IsUnnamed() bool { return p.name == "" }
func (p *Package) Model() *Model   { return p.model }

// Parent returns the enclosing package, nil for the unnamed package.
func (p *Package) Parent() *Package {
	if p.IsUnnamed() {
		return nil
	}
	return p.model.Package(packageOf(p.name))
}

// Class declares a top-level class. A class of the same name, or on a
// case-insensitive model of a name differing only by case, is reported as a
// *ClassExistsError carrying the existing class.
func (p *Package) Class(mods Mods, name string, kind ClassKind) (*DefinedClass, error) {
	checkIdentifier("class", name)
	if existing, ok := p.keys[p.model.classKey(name)]; ok {
		return nil, &ClassExistsError{Existing: existing}
	}
	c := newDefinedClass(p.model, name, mods, kind)
	c.pkg = p
	p.classes[name] = c
	p.keys[p.model.classKey(name)] = c
	log.Debugf("declared %s %s", kind, c.FullName())
	return c, nil
}

// Lookup returns the top-level class of exactly this name, or nil.
func (p *Package) Lookup(name string) *DefinedClass { return p.classes[name] }

func (p *Package) lookupPath(path []string) *DefinedClass {
	c := p.classes[path[0]]
	for _, name := range path[1:] {
		if c == nil {
			return nil
		}
		c = c.lookupNested(name)
	}
	return c
}

// Classes returns a snapshot of the top-level classes sorted by name.
func (p *Package) Classes() []*DefinedClass {
	out := make([]*DefinedClass, 0, len(p.classes))
	for _, c := range p.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Remove drops a top-level class of this package.
func (p *Package) Remove(c *DefinedClass) {
	if p.classes[c.name] != c {
		illegalf("%s is not a class of package %q", c.FullName(), p.name)
	}
	delete(p.classes, c.name)
	delete(p.keys, p.model.classKey(c.name))
}

// AddResource registers a file to emit with this package. A resource of
// the same name is replaced.
func (p *Package) AddResource(r ResourceFile) ResourceFile {
	for i, x := range p.resources {
		if x.Name() == r.Name() {
			p.resources[i] = r
			return r
		}
	}
	p.resources = append(p.resources, r)
	return r
}

// Resources returns a snapshot of the resources sorted by name.
func (p *Package) Resources() []ResourceFile {
	out := append([]ResourceFile(nil), p.resources...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func (p *Package) HasResource(name string) bool {
	for _, r := range p.resources {
		if r.Name() == name {
			return true
		}
	}
	return false
}

func (p *Package) Annotate(c Class) *AnnotationUse {
	a := newAnnotationUse(c)
	p.annotations = append(p.annotations, a)
	return a
}

func (p *Package) Javadoc() *DocComment {
	if p.doc == nil {
		p.doc = &DocComment{}
	}
	return p.doc
}

// hasPackageInfo reports whether the package needs a package-info.java.
func (p *Package) hasPackageInfo() bool {
	if p.IsUnnamed() {
		return false
	}
	return len(p.annotations) > 0 || (p.doc != nil && !p.doc.IsEmpty())
}

// Dir is the package as a relative directory path.
func (p *Package) Dir() string { return strings.ReplaceAll(p.name, ".", "/") }

func (p *Package) declareInfo(f *Formatter) {
	if p.doc != nil {
		p.doc.generate(f)
	}
	for _, a := range p.annotations {
		a.generate(f)
		f.Newline()
	}
	f.Print("package " + p.name + ";").Newline()
}
