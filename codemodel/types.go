package codemodel

import (
	"strings"

	"github.com/dhamidi/jcm/java"
)

// Type is anything usable where Java expects a type: a *PrimitiveType or a
// Class.
type Type interface {
	// Name is the name used inside the declaring scope: "int", "Entry",
	// "List<String>".
	Name() string
	// FullName is the canonical name: "java.util.Map.Entry".
	FullName() string
	// BinaryName is the name the JVM uses: "java.util.Map$Entry".
	BinaryName() string
	Model() *Model
	IsPrimitive() bool
	IsArray() bool
	IsReference() bool

	generate(f *Formatter)
}

// Class is a reference type. Implementations are *ReferencedClass,
// *DefinedClass, *ArrayClass, *NarrowedClass, *TypeWildcard, *TypeVar,
// *DirectClass and *NullType.
type Class interface {
	Type
	// Package is the package the class belongs to, nil when it has none.
	Package() *Package
	// Outer is the enclosing class of a nested class.
	Outer() Class
	// Super is the superclass, nil for java.lang.Object, interfaces and
	// unresolved classes.
	Super() Class
	Interfaces() []Class
	IsInterface() bool
	IsAbstract() bool
	TypeParams() []*TypeVar
	// TypeArgs are the type arguments of a parameterized type.
	TypeArgs() []Class
}

// PrimitiveType is one of the nine primitive types, including void. There
// is exactly one instance per name in a Model.
type PrimitiveType struct {
	model *Model
	name  string
	boxed string
}

func (p *PrimitiveType) Name() string       { return p.name }
func (p *PrimitiveType) FullName() string   { return p.name }
func (p *PrimitiveType) BinaryName() string { return p.name }
func (p *PrimitiveType) Model() *Model      { return p.model }
func (p *PrimitiveType) IsPrimitive() bool  { return true }
func (p *PrimitiveType) IsArray() bool      { return false }
func (p *PrimitiveType) IsReference() bool  { return false }

// Boxed returns the wrapper class, java.lang.Void for void.
func (p *PrimitiveType) Boxed() Class { return p.model.Ref(p.boxed) }

// Array returns p[].
func (p *PrimitiveType) Array() *ArrayClass { return ArrayOf(p) }

func (p *PrimitiveType) generate(f *Formatter) { f.Print(p.name) }

// NullType is the type of the null literal.
type NullType struct {
	model *Model
}

func (n *NullType) Name() string           { return "null" }
func (n *NullType) FullName() string       { return "null" }
func (n *NullType) BinaryName() string     { return "null" }
func (n *NullType) Model() *Model          { return n.model }
func (n *NullType) IsPrimitive() bool      { return false }
func (n *NullType) IsArray() bool          { return false }
func (n *NullType) IsReference() bool      { return true }
func (n *NullType) Package() *Package      { return nil }
func (n *NullType) Outer() Class           { return nil }
func (n *NullType) Super() Class           { return nil }
func (n *NullType) Interfaces() []Class    { return nil }
func (n *NullType) IsInterface() bool      { return false }
func (n *NullType) IsAbstract() bool       { return false }
func (n *NullType) TypeParams() []*TypeVar { return nil }
func (n *NullType) TypeArgs() []Class      { return nil }
func (n *NullType) generate(f *Formatter)  { f.Print("null") }

const objectName = "java.lang.Object"

func isObject(t Type) bool {
	c, ok := t.(Class)
	return ok && !t.IsArray() && len(c.TypeArgs()) == 0 && t.FullName() == objectName
}

// SameType reports whether a and b denote the same type. Arrays compare by
// component, parameterized types by their full name, everything else by
// identity.
func SameType(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	switch a := a.(type) {
	case *ArrayClass:
		if b, ok := b.(*ArrayClass); ok {
			return SameType(a.component, b.component)
		}
	case *NarrowedClass:
		if b, ok := b.(*NarrowedClass); ok {
			return a.FullName() == b.FullName()
		}
	case *DirectClass:
		if b, ok := b.(*DirectClass); ok {
			return a.name == b.name
		}
	}
	return false
}

// compareNames orders classes for implements and throws clauses: names
// starting with "java" come first, then each group sorts by full name.
func compareNames(a, b Class) int {
	x, y := a.FullName(), b.FullName()
	p, q := strings.HasPrefix(x, "java"), strings.HasPrefix(y, "java")
	switch {
	case p && !q:
		return -1
	case !p && q:
		return 1
	}
	return strings.Compare(x, y)
}

func isEnum(c Class) bool {
	switch c := c.(type) {
	case *DefinedClass:
		return c.Kind() == ClassKindEnum
	case *ReferencedClass:
		return c.Info() != nil && c.Info().Kind == java.ClassKindEnum
	}
	return false
}

// IsAssignableFrom reports whether a value of type b can be assigned to a
// variable of type a. It is computed structurally: identical types,
// java.lang.Object as the universal supertype, the superclass chain of b,
// and for interface targets the interfaces of b and its supertypes.
func IsAssignableFrom(a, b Type) bool {
	if SameType(a, b) {
		return true
	}
	if isObject(a) {
		return true
	}
	if a.IsPrimitive() || b.IsPrimitive() {
		return false
	}
	if _, ok := b.(*NullType); ok {
		return true
	}
	ac, bc := a.(Class), b.(Class)
	if s := bc.Super(); s != nil && IsAssignableFrom(a, s) {
		return true
	}
	if ac.IsInterface() {
		for _, itf := range bc.Interfaces() {
			if IsAssignableFrom(a, itf) {
				return true
			}
		}
	}
	return false
}

// Box returns the wrapper class of a primitive type and t itself otherwise.
func Box(t Type) Type {
	if p, ok := t.(*PrimitiveType); ok {
		return p.Boxed()
	}
	return t
}

// Unbox returns the primitive type a wrapper class boxes, or t itself.
func Unbox(t Type) Type {
	if _, ok := t.(Class); !ok || t.IsArray() {
		return t
	}
	if m := t.Model(); m != nil {
		for _, p := range m.primitives() {
			if p.boxed == t.FullName() {
				return p
			}
		}
	}
	return t
}

// Erasure strips type arguments and replaces type variables by their first
// bound.
func Erasure(c Class) Class {
	switch c := c.(type) {
	case *NarrowedClass:
		return Erasure(c.basis)
	case *TypeVar:
		if len(c.bounds) > 0 {
			return Erasure(c.bounds[0])
		}
		return c.model.Ref(objectName)
	case *TypeWildcard:
		if c.bound != nil && !c.super {
			return Erasure(c.bound)
		}
		return c.model.Ref(objectName)
	case *ArrayClass:
		if cc, ok := c.component.(Class); ok {
			return ArrayOf(Erasure(cc))
		}
	}
	return c
}

// simpleName returns the part of a dotted name after the last dot.
func simpleName(full string) string {
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		return full[i+1:]
	}
	return full
}

func packageOf(full string) string {
	if i := strings.LastIndexByte(full, '.'); i >= 0 {
		return full[:i]
	}
	return ""
}
