package codemodel

import (
	"strings"

	"github.com/dhamidi/jcm/java"
)

// ReferencedClass is a class that already exists on the classpath. It is
// pooled per Model: looking up the same name twice yields the same value.
type ReferencedClass struct {
	model *Model
	info  *java.ClassModel
	outer string

	typeParams []*TypeVar
}

func newReferencedClass(m *Model, info *java.ClassModel) *ReferencedClass {
	rc := &ReferencedClass{model: m, info: info, outer: info.OuterClass}
	if rc.outer == "" {
		// Class files without an InnerClasses entry still carry the
		// nesting in their binary name.
		if i := strings.LastIndexByte(info.Name, '$'); i > 0 && !isDigits(info.Name[i+1:]) {
			rc.outer = info.Name[:i]
		}
	}
	return rc
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Info returns the class metadata the reference was built from.
func (c *ReferencedClass) Info() *java.ClassModel { return c.info }

func (c *ReferencedClass) Name() string {
	if c.outer != "" && strings.HasPrefix(c.info.Name, c.outer+"$") {
		return c.info.Name[len(c.outer)+1:]
	}
	return simpleName(c.info.Name)
}

func (c *ReferencedClass) FullName() string {
	return strings.ReplaceAll(c.info.Name, "$", ".")
}

func (c *ReferencedClass) BinaryName() string { return c.info.Name }
func (c *ReferencedClass) Model() *Model      { return c.model }
func (c *ReferencedClass) IsPrimitive() bool  { return false }
func (c *ReferencedClass) IsArray() bool      { return false }
func (c *ReferencedClass) IsReference() bool  { return true }

func (c *ReferencedClass) Package() *Package {
	return c.model.Package(c.info.Package)
}

func (c *ReferencedClass) Outer() Class {
	if c.outer == "" {
		return nil
	}
	return c.model.refBinary(c.outer)
}

func (c *ReferencedClass) Super() Class {
	if c.info.SuperClass == "" || c.info.IsInterface() {
		return nil
	}
	return c.model.refBinary(c.info.SuperClass)
}

func (c *ReferencedClass) Interfaces() []Class {
	var out []Class
	for _, name := range c.info.Interfaces {
		out = append(out, c.model.refBinary(name))
	}
	return out
}

func (c *ReferencedClass) IsInterface() bool { return c.info.IsInterface() }

func (c *ReferencedClass) IsAbstract() bool {
	return c.info.IsAbstract || c.info.IsInterface()
}

func (c *ReferencedClass) TypeParams() []*TypeVar {
	if c.typeParams == nil && len(c.info.TypeParameters) > 0 {
		for _, tp := range c.info.TypeParameters {
			tv := &TypeVar{model: c.model, name: tp.Name}
			for _, b := range tp.Bounds {
				if b != objectName {
					tv.bounds = append(tv.bounds, c.model.refBinary(b))
				}
			}
			c.typeParams = append(c.typeParams, tv)
		}
	}
	return c.typeParams
}

func (c *ReferencedClass) TypeArgs() []Class { return nil }

// Narrow returns this class parameterized with args.
func (c *ReferencedClass) Narrow(args ...Class) *NarrowedClass { return Narrow(c, args...) }

// Array returns c[].
func (c *ReferencedClass) Array() *ArrayClass { return ArrayOf(c) }

func (c *ReferencedClass) generate(f *Formatter) { f.className(c) }

// DirectClass is a class known only by name. It is printed exactly as
// given and never imported.
type DirectClass struct {
	model *Model
	name  string
}

func (c *DirectClass) Name() string           { return simpleName(c.name) }
func (c *DirectClass) FullName() string       { return c.name }
func (c *DirectClass) BinaryName() string     { return c.name }
func (c *DirectClass) Model() *Model          { return c.model }
func (c *DirectClass) IsPrimitive() bool      { return false }
func (c *DirectClass) IsArray() bool          { return false }
func (c *DirectClass) IsReference() bool      { return true }
func (c *DirectClass) Outer() Class           { return nil }
func (c *DirectClass) Super() Class           { return c.model.Ref(objectName) }
func (c *DirectClass) Interfaces() []Class    { return nil }
func (c *DirectClass) IsInterface() bool      { return false }
func (c *DirectClass) IsAbstract() bool       { return false }
func (c *DirectClass) TypeParams() []*TypeVar { return nil }
func (c *DirectClass) TypeArgs() []Class      { return nil }

// Package is nil when the name does not start with a valid package.
func (c *DirectClass) Package() *Package {
	if p := packageOf(c.name); IsPackageName(p) {
		return c.model.Package(p)
	}
	return nil
}

func (c *DirectClass) Narrow(args ...Class) *NarrowedClass { return Narrow(c, args...) }
func (c *DirectClass) Array() *ArrayClass                  { return ArrayOf(c) }

func (c *DirectClass) generate(f *Formatter) { f.Print(c.name) }

// ArrayClass is an array of a component type.
type ArrayClass struct {
	component Type
}

// ArrayOf returns the array type whose elements are t.
func ArrayOf(t Type) *ArrayClass { return &ArrayClass{component: t} }

func (a *ArrayClass) Component() Type    { return a.component }
func (a *ArrayClass) Name() string       { return a.component.Name() + "[]" }
func (a *ArrayClass) FullName() string   { return a.component.FullName() + "[]" }
func (a *ArrayClass) BinaryName() string { return a.component.BinaryName() + "[]" }
func (a *ArrayClass) Model() *Model      { return a.component.Model() }
func (a *ArrayClass) IsPrimitive() bool  { return false }
func (a *ArrayClass) IsArray() bool      { return true }
func (a *ArrayClass) IsReference() bool  { return true }
func (a *ArrayClass) Package() *Package  { return nil }
func (a *ArrayClass) Outer() Class       { return nil }
func (a *ArrayClass) Super() Class       { return a.Model().Ref(objectName) }

func (a *ArrayClass) Interfaces() []Class {
	m := a.Model()
	return []Class{m.Ref("java.lang.Cloneable"), m.Ref("java.io.Serializable")}
}

func (a *ArrayClass) IsInterface() bool      { return false }
func (a *ArrayClass) IsAbstract() bool       { return false }
func (a *ArrayClass) TypeParams() []*TypeVar { return nil }
func (a *ArrayClass) TypeArgs() []Class      { return nil }
func (a *ArrayClass) Array() *ArrayClass     { return ArrayOf(a) }

func (a *ArrayClass) generate(f *Formatter) {
	f.Type(a.component)
	f.Print("[]")
}

// NarrowedClass is a generic class with type arguments: List<String>.
type NarrowedClass struct {
	basis Class
	args  []Class
}

// Narrow parameterizes basis with args. Narrowing an already narrowed class
// appends to its arguments.
func Narrow(basis Class, args ...Class) *NarrowedClass {
	if n, ok := basis.(*NarrowedClass); ok {
		return n.Narrow(args...)
	}
	return &NarrowedClass{basis: basis, args: append([]Class(nil), args...)}
}

// Narrow returns a new class with args appended to the type arguments.
func (n *NarrowedClass) Narrow(args ...Class) *NarrowedClass {
	all := append(append([]Class(nil), n.args...), args...)
	return &NarrowedClass{basis: n.basis, args: all}
}

func (n *NarrowedClass) Basis() Class { return n.basis }

func (n *NarrowedClass) Name() string {
	return n.basis.Name() + "<" + joinNames(n.args, Type.Name) + ">"
}

func (n *NarrowedClass) FullName() string {
	return n.basis.FullName() + "<" + joinNames(n.args, Type.FullName) + ">"
}

func (n *NarrowedClass) BinaryName() string {
	return n.basis.BinaryName() + "<" + joinNames(n.args, Type.BinaryName) + ">"
}

func joinNames(args []Class, name func(Type) string) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = name(a)
	}
	return strings.Join(parts, ",")
}

func (n *NarrowedClass) Model() *Model          { return n.basis.Model() }
func (n *NarrowedClass) IsPrimitive() bool      { return false }
func (n *NarrowedClass) IsArray() bool          { return false }
func (n *NarrowedClass) IsReference() bool      { return true }
func (n *NarrowedClass) Package() *Package      { return n.basis.Package() }
func (n *NarrowedClass) Outer() Class           { return n.basis.Outer() }
func (n *NarrowedClass) Super() Class           { return n.basis.Super() }
func (n *NarrowedClass) Interfaces() []Class    { return n.basis.Interfaces() }
func (n *NarrowedClass) IsInterface() bool      { return n.basis.IsInterface() }
func (n *NarrowedClass) IsAbstract() bool       { return n.basis.IsAbstract() }
func (n *NarrowedClass) TypeParams() []*TypeVar { return nil }
func (n *NarrowedClass) TypeArgs() []Class      { return n.args }
func (n *NarrowedClass) Array() *ArrayClass     { return ArrayOf(n) }

func (n *NarrowedClass) generate(f *Formatter) {
	f.Type(n.basis)
	f.Print("<")
	for i, a := range n.args {
		if i > 0 {
			f.Print(", ")
		}
		f.Type(a)
	}
	f.Print(">")
}

// TypeWildcard is "?", "? extends Bound" or "? super Bound".
type TypeWildcard struct {
	model *Model
	bound Class
	super bool
}

// Wildcard returns "? extends bound". A java.lang.Object bound gives the
// unbounded "?".
func Wildcard(bound Class) *TypeWildcard {
	if bound == nil {
		illegalf("wildcard needs a bound; use java.lang.Object for \"?\"")
	}
	w := &TypeWildcard{model: bound.Model(), bound: bound}
	if isObject(bound) {
		w.bound = nil
	}
	return w
}

// WildcardSuper returns "? super bound".
func WildcardSuper(bound Class) *TypeWildcard {
	return &TypeWildcard{model: bound.Model(), bound: bound, super: true}
}

func (w *TypeWildcard) Bound() Class { return w.bound }

func (w *TypeWildcard) Name() string {
	return w.render(Type.Name)
}

func (w *TypeWildcard) FullName() string {
	return w.render(Type.FullName)
}

func (w *TypeWildcard) BinaryName() string {
	return w.render(Type.BinaryName)
}

func (w *TypeWildcard) render(name func(Type) string) string {
	switch {
	case w.bound == nil:
		return "?"
	case w.super:
		return "? super " + name(w.bound)
	}
	return "? extends " + name(w.bound)
}

func (w *TypeWildcard) Model() *Model          { return w.model }
func (w *TypeWildcard) IsPrimitive() bool      { return false }
func (w *TypeWildcard) IsArray() bool          { return false }
func (w *TypeWildcard) IsReference() bool      { return true }
func (w *TypeWildcard) Package() *Package      { return nil }
func (w *TypeWildcard) Outer() Class           { return nil }
func (w *TypeWildcard) Super() Class           { return nil }
func (w *TypeWildcard) Interfaces() []Class    { return nil }
func (w *TypeWildcard) IsInterface() bool      { return false }
func (w *TypeWildcard) IsAbstract() bool       { return true }
func (w *TypeWildcard) TypeParams() []*TypeVar { return nil }
func (w *TypeWildcard) TypeArgs() []Class      { return nil }

func (w *TypeWildcard) generate(f *Formatter) {
	f.Print("?")
	if w.bound == nil {
		return
	}
	if w.super {
		f.Print(" super ")
	} else {
		f.Print(" extends ")
	}
	f.Type(w.bound)
}

// TypeVar is a type parameter of a class or method.
type TypeVar struct {
	model  *Model
	name   string
	bounds []Class
}

// Bound adds an upper bound. The first bound may be a class, later ones
// must be interfaces.
func (v *TypeVar) Bound(c Class) *TypeVar {
	v.bounds = append(v.bounds, c)
	return v
}

func (v *TypeVar) Bounds() []Class { return v.bounds }

func (v *TypeVar) Name() string       { return v.name }
func (v *TypeVar) FullName() string   { return v.name }
func (v *TypeVar) BinaryName() string { return v.name }
func (v *TypeVar) Model() *Model      { return v.model }
func (v *TypeVar) IsPrimitive() bool  { return false }
func (v *TypeVar) IsArray() bool      { return false }
func (v *TypeVar) IsReference() bool  { return true }
func (v *TypeVar) Package() *Package  { return nil }
func (v *TypeVar) Outer() Class       { return nil }

func (v *TypeVar) Super() Class {
	if len(v.bounds) > 0 && !v.bounds[0].IsInterface() {
		return v.bounds[0]
	}
	return v.model.Ref(objectName)
}

func (v *TypeVar) Interfaces() []Class {
	var out []Class
	for _, b := range v.bounds {
		if b.IsInterface() {
			out = append(out, b)
		}
	}
	return out
}

func (v *TypeVar) IsInterface() bool      { return false }
func (v *TypeVar) IsAbstract() bool       { return true }
func (v *TypeVar) TypeParams() []*TypeVar { return nil }
func (v *TypeVar) TypeArgs() []Class      { return nil }
func (v *TypeVar) Array() *ArrayClass     { return ArrayOf(v) }

func (v *TypeVar) generate(f *Formatter) {
	f.noteTypeVar(v.name)
	f.Print(v.name)
}

// declare prints "T extends A & B".
func (v *TypeVar) declare(f *Formatter) {
	f.noteTypeVar(v.name)
	f.Print(v.name)
	for i, b := range v.bounds {
		if i == 0 {
			f.Print(" extends ")
		} else {
			f.Print(" & ")
		}
		f.Type(b)
	}
}

func declareTypeParams(f *Formatter, params []*TypeVar) {
	if len(params) == 0 {
		return
	}
	f.Print("<")
	for i, tv := range params {
		if i > 0 {
			f.Print(", ")
		}
		tv.declare(f)
	}
	f.Print(">")
}
