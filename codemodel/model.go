// Package codemodel builds Java source code as a tree of Go values and
// prints it. A Model owns every package, declared class and class
// reference; generators populate it through builder methods and Build
// writes one source file per declared class.
package codemodel

import (
	"errors"
	"sort"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jcm/classpath"
	"github.com/dhamidi/jcm/java"
)

var log = commonlog.GetLogger("jcm.codemodel")

type Model struct {
	Void    *PrimitiveType
	Boolean *PrimitiveType
	Byte    *PrimitiveType
	Short   *PrimitiveType
	Char    *PrimitiveType
	Int     *PrimitiveType
	Float   *PrimitiveType
	Long    *PrimitiveType
	Double  *PrimitiveType

	// Null is the type of the null literal.
	Null *NullType

	packages map[string]*Package
	refs     map[string]*ReferencedClass
	directs  map[string]*DirectClass

	loader          classpath.Loader
	caseInsensitive bool
	indent          string
}

type Option func(*Model)

// WithCaseInsensitiveFilenames makes class names that differ only by case
// collide, for output directories on case-insensitive filesystems.
func WithCaseInsensitiveFilenames(on bool) Option {
	return func(m *Model) { m.caseInsensitive = on }
}

// WithClassLoader sets where referenced classes are looked up. The default
// knows only the built-in table of core JDK types.
func WithClassLoader(l classpath.Loader) Option {
	return func(m *Model) { m.loader = l }
}

// WithIndent sets the string used for one level of indentation in
// generated sources.
func WithIndent(s string) Option {
	return func(m *Model) { m.indent = s }
}

func New(opts ...Option) *Model {
	m := &Model{
		packages: make(map[string]*Package),
		refs:     make(map[string]*ReferencedClass),
		directs:  make(map[string]*DirectClass),
		loader:   classpath.BootstrapLoader(),
		indent:   "    ",
	}
	m.Void = &PrimitiveType{model: m, name: "void", boxed: "java.lang.Void"}
	m.Boolean = &PrimitiveType{model: m, name: "boolean", boxed: "java.lang.Boolean"}
	m.Byte = &PrimitiveType{model: m, name: "byte", boxed: "java.lang.Byte"}
	m.Short = &PrimitiveType{model: m, name: "short", boxed: "java.lang.Short"}
	m.Char = &PrimitiveType{model: m, name: "char", boxed: "java.lang.Character"}
	m.Int = &PrimitiveType{model: m, name: "int", boxed: "java.lang.Integer"}
	m.Float = &PrimitiveType{model: m, name: "float", boxed: "java.lang.Float"}
	m.Long = &PrimitiveType{model: m, name: "long", boxed: "java.lang.Long"}
	m.Double = &PrimitiveType{model: m, name: "double", boxed: "java.lang.Double"}
	m.Null = &NullType{model: m}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Model) primitives() []*PrimitiveType {
	return []*PrimitiveType{m.Void, m.Boolean, m.Byte, m.Short, m.Char, m.Int, m.Float, m.Long, m.Double}
}

// Primitive returns the primitive type of the given name, or nil.
func (m *Model) Primitive(name string) *PrimitiveType {
	for _, p := range m.primitives() {
		if p.name == name {
			return p
		}
	}
	return nil
}

// CaseInsensitiveFilenames reports the collision policy the model was
// created with.
func (m *Model) CaseInsensitiveFilenames() bool { return m.caseInsensitive }

// Package returns the package of the given name, creating it on first use.
// The empty name is the unnamed package.
func (m *Model) Package(name string) *Package {
	if p, ok := m.packages[name]; ok {
		return p
	}
	if !IsPackageName(name) {
		illegalf("%q is not a valid package name", name)
	}
	p := newPackage(m, name)
	m.packages[name] = p
	return p
}

func (m *Model) RootPackage() *Package { return m.Package("") }

// Packages returns a snapshot of all packages sorted by name.
func (m *Model) Packages() []*Package {
	pkgs := make([]*Package, 0, len(m.packages))
	for _, p := range m.packages {
		pkgs = append(pkgs, p)
	}
	sort.Slice(pkgs, func(i, j int) bool { return pkgs[i].name < pkgs[j].name })
	return pkgs
}

// DefineClass declares a public top-level class. If the name is taken the
// error is a *ClassExistsError carrying the existing class.
func (m *Model) DefineClass(fullName string, kind ClassKind) (*DefinedClass, error) {
	return m.Package(packageOf(fullName)).Class(Public, simpleName(fullName), kind)
}

// DefinedClass finds a declared class by its canonical name, including
// nested classes ("com.acme.Outer.Inner"). It returns nil when there is
// none.
func (m *Model) DefinedClass(fullName string) *DefinedClass {
	name := fullName
	for {
		pkg, ok := m.packages[packageOf(name)]
		if ok {
			rest := strings.TrimPrefix(fullName, packageOf(name))
			rest = strings.TrimPrefix(rest, ".")
			if c := pkg.lookupPath(strings.Split(rest, ".")); c != nil {
				return c
			}
		}
		if !strings.Contains(name, ".") {
			return nil
		}
		name = packageOf(name)
	}
}

// AnonymousClass returns a new class body without a name that extends base,
// or implements it when base is an interface. Use it with NewObject.
func (m *Model) AnonymousClass(base Class) *DefinedClass {
	if isEnum(base) {
		illegalf("anonymous class cannot extend enum %s", base.FullName())
	}
	c := newDefinedClass(m, "", None, ClassKindClass)
	c.anonymous = true
	if base.IsInterface() {
		c.Implements(base)
	} else {
		c.Extends(base)
	}
	c.base = base
	return c
}

// Ref returns a class by name. Names with generic arguments, array
// brackets or wildcards are parsed; plain names are looked up among the
// declared classes, then on the classpath, trying nested-class spellings
// ("java.util.Map.Entry" finds "java.util.Map$Entry"). A name that cannot be
// resolved yields a DirectClass. Primitive names are an illegal
// declaration; use ParseType for those.
func (m *Model) Ref(name string) Class {
	name = strings.TrimSpace(name)
	if strings.ContainsAny(name, "<[?") {
		t, err := m.ParseType(name)
		if err != nil {
			log.Debugf("unparsable type %q, using it verbatim: %s", name, err)
			return m.DirectClass(name)
		}
		if c, ok := t.(Class); ok {
			return c
		}
	}
	if m.Primitive(name) != nil {
		illegalf("%s: %s", name, ErrPrimitive)
	}
	return m.refName(name)
}

func (m *Model) refName(name string) Class {
	if c := m.DefinedClass(name); c != nil {
		return c
	}
	if rc, ok := m.refs[name]; ok {
		return rc
	}
	if dc, ok := m.directs[name]; ok {
		return dc
	}
	if info := m.load(name); info != nil {
		return m.RefModel(info)
	}
	// Try nested spellings from the innermost dot outwards.
	binary := name
	for i := strings.LastIndexByte(binary, '.'); i > 0; i = strings.LastIndexByte(binary[:i], '.') {
		binary = binary[:i] + "$" + binary[i+1:]
		if rc, ok := m.refs[binary]; ok {
			return rc
		}
		if info := m.load(binary); info != nil {
			return m.RefModel(info)
		}
	}
	if !strings.Contains(name, ".") {
		if info := m.load("java.lang." + name); info != nil {
			return m.RefModel(info)
		}
	}
	return m.DirectClass(name)
}

// refBinary resolves a binary name as found in class metadata.
func (m *Model) refBinary(binary string) Class {
	if rc, ok := m.refs[binary]; ok {
		return rc
	}
	if info := m.load(binary); info != nil {
		return m.RefModel(info)
	}
	return m.refName(strings.ReplaceAll(binary, "$", "."))
}

func (m *Model) load(name string) *java.ClassModel {
	if m.loader == nil {
		return nil
	}
	info, err := m.loader.Load(name)
	if err != nil {
		if !errors.Is(err, classpath.ErrNotFound) {
			log.Warningf("loading %s: %s", name, err)
		}
		return nil
	}
	return info
}

// RefModel returns the pooled reference for class metadata.
func (m *Model) RefModel(info *java.ClassModel) *ReferencedClass {
	if rc, ok := m.refs[info.Name]; ok {
		return rc
	}
	rc := newReferencedClass(m, info)
	m.refs[info.Name] = rc
	return rc
}

// RefType converts an erased type from class metadata. Arrays resolve their
// component; a bare primitive is rejected with ErrPrimitive since primitives
// are only ever the Model's own singletons.
func (m *Model) RefType(t java.TypeModel) (Type, error) {
	if t.ArrayDepth > 0 {
		var component Type
		if p := m.Primitive(t.Name); p != nil {
			component = p
		} else {
			component = m.refBinary(t.Name)
		}
		for i := 0; i < t.ArrayDepth; i++ {
			component = ArrayOf(component)
		}
		return component, nil
	}
	if m.Primitive(t.Name) != nil {
		return nil, ErrPrimitive
	}
	return m.refBinary(t.Name), nil
}

// DirectClass returns the placeholder class printed verbatim as name.
func (m *Model) DirectClass(name string) *DirectClass {
	if dc, ok := m.directs[name]; ok {
		return dc
	}
	dc := &DirectClass{model: m, name: name}
	m.directs[name] = dc
	return dc
}

// classKey is the collision key of a class name: the name itself, or its
// upper case form on a case-insensitive model.
func (m *Model) classKey(name string) string {
	if m.caseInsensitive {
		return strings.ToUpper(name)
	}
	return name
}
