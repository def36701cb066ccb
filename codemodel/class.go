package codemodel

import (
	"fmt"
	"sort"
	"strings"
)

// ClassKind selects the declaration keyword of a DefinedClass.
type ClassKind int

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindEnum
	ClassKindAnnotation
)

func (k ClassKind) String() string {
	switch k {
	case ClassKindInterface:
		return "interface"
	case ClassKindEnum:
		return "enum"
	case ClassKindAnnotation:
		return "@interface"
	}
	return "class"
}

// ParseClassKind is the inverse of ClassKind.String; "annotation" is
// accepted for "@interface".
func ParseClassKind(s string) (ClassKind, error) {
	switch s {
	case "", "class":
		return ClassKindClass, nil
	case "interface":
		return ClassKindInterface, nil
	case "enum":
		return ClassKindEnum, nil
	case "annotation", "@interface":
		return ClassKindAnnotation, nil
	}
	return 0, fmt.Errorf("unknown class kind %q", s)
}

// DefinedClass is a class, interface, enum or annotation type being
// generated.
type DefinedClass struct {
	model *Model
	pkg   *Package
	outer *DefinedClass
	name  string
	mods  Mods
	kind  ClassKind

	anonymous bool
	base      Class

	super      Class
	interfaces []Class

	fields       []*FieldVar
	fieldsByName map[string]*FieldVar
	constructors []*Method
	methods      []*Method

	classes      []*DefinedClass
	classesByKey map[string]*DefinedClass

	enumConstants []*EnumConstant

	init         *Block
	instanceInit *Block
	doc          *DocComment
	annotations  []*AnnotationUse
	typeParams   []*TypeVar
	hidden       bool
	direct       strings.Builder
}

func newDefinedClass(m *Model, name string, mods Mods, kind ClassKind) *DefinedClass {
	return &DefinedClass{
		model:        m,
		name:         name,
		mods:         mods,
		kind:         kind,
		fieldsByName: make(map[string]*FieldVar),
		classesByKey: make(map[string]*DefinedClass),
	}
}

func (c *DefinedClass) Kind() ClassKind   { return c.kind }
func (c *DefinedClass) Mods() Mods        { return c.mods }
func (c *DefinedClass) Model() *Model     { return c.model }
func (c *DefinedClass) IsPrimitive() bool { return false }
func (c *DefinedClass) IsArray() bool     { return false }
func (c *DefinedClass) IsReference() bool { return true }
func (c *DefinedClass) IsAnonymous() bool { return c.anonymous }
func (c *DefinedClass) IsHidden() bool    { return c.hidden }

// Name is the simple name. An anonymous class reports its base.
func (c *DefinedClass) Name() string {
	if c.anonymous {
		return c.base.Name()
	}
	return c.name
}

func (c *DefinedClass) FullName() string {
	switch {
	case c.anonymous:
		return c.base.FullName()
	case c.outer != nil:
		return c.outer.FullName() + "." + c.name
	case c.pkg == nil || c.pkg.IsUnnamed():
		return c.name
	}
	return c.pkg.name + "." + c.name
}

func (c *DefinedClass) BinaryName() string {
	if c.outer != nil && !c.anonymous {
		return c.outer.BinaryName() + "$" + c.name
	}
	return c.FullName()
}

func (c *DefinedClass) Package() *Package {
	if c.outer != nil {
		return c.outer.Package()
	}
	return c.pkg
}

func (c *DefinedClass) Outer() Class {
	if c.outer == nil {
		return nil
	}
	return c.outer
}

// Super is the superclass: the declared one, java.lang.Enum for enums,
// java.lang.Object for other classes and nil for interfaces.
func (c *DefinedClass) Super() Class {
	switch {
	case c.super != nil:
		return c.super
	case c.IsInterface():
		return nil
	case c.kind == ClassKindEnum:
		return c.model.Ref("java.lang.Enum")
	}
	return c.model.Ref(objectName)
}

// Interfaces returns the implemented interfaces, or for an interface its
// superinterfaces, sorted by name.
func (c *DefinedClass) Interfaces() []Class {
	return append([]Class(nil), c.interfaces...)
}

func (c *DefinedClass) IsInterface() bool {
	return c.kind == ClassKindInterface || c.kind == ClassKindAnnotation
}

func (c *DefinedClass) IsAbstract() bool { return c.mods.Has(Abstract) || c.IsInterface() }

func (c *DefinedClass) TypeParams() []*TypeVar { return c.typeParams }
func (c *DefinedClass) TypeArgs() []Class      { return nil }

func (c *DefinedClass) Narrow(args ...Class) *NarrowedClass { return Narrow(c, args...) }
func (c *DefinedClass) Array() *ArrayClass                  { return ArrayOf(c) }

func (c *DefinedClass) generate(f *Formatter) { f.className(c) }

// Extends sets the superclass. Given an interface, it declares a
// superinterface instead. Cyclic inheritance, an outer class extending
// one of its own nested classes, and an interface extending a class are
// illegal declarations.
func (c *DefinedClass) Extends(super Class) *DefinedClass {
	if super == nil {
		illegalf("%s: nil superclass", c.FullName())
	}
	if c.IsInterface() {
		if !super.IsInterface() {
			illegalf("interface %s cannot extend class %s", c.FullName(), super.FullName())
		}
		return c.Implements(super)
	}
	if c.kind == ClassKindEnum {
		illegalf("enum %s cannot extend %s", c.FullName(), super.FullName())
	}
	if super.IsInterface() {
		illegalf("class %s cannot extend interface %s", c.FullName(), super.FullName())
	}
	if dc, ok := Erasure(super).(*DefinedClass); ok {
		for o := dc.outer; o != nil; o = o.outer {
			if o == c {
				illegalf("illegal class inheritance loop: outer class %s may not subclass from inner class %s", c.FullName(), dc.FullName())
			}
		}
	}
	for s := super; s != nil; s = s.Super() {
		if dc, ok := Erasure(s).(*DefinedClass); ok && dc == c {
			illegalf("illegal class inheritance loop: %s extends itself through %s", c.FullName(), super.FullName())
		}
		if isObject(s) {
			break
		}
	}
	c.super = super
	return c
}

// Implements adds an interface. Adding the same interface twice has no
// effect.
func (c *DefinedClass) Implements(itf Class) *DefinedClass {
	for _, i := range c.interfaces {
		if SameType(i, itf) || i.FullName() == itf.FullName() {
			return c
		}
	}
	c.interfaces = append(c.interfaces, itf)
	sort.SliceStable(c.interfaces, func(i, j int) bool {
		return compareNames(c.interfaces[i], c.interfaces[j]) < 0
	})
	return c
}

// Field adds a field. A field of the same name is reported as a
// *FieldExistsError and left unchanged.
func (c *DefinedClass) Field(mods Mods, t Type, name string, init Expr) (*FieldVar, error) {
	if existing, ok := c.fieldsByName[name]; ok {
		return nil, &FieldExistsError{Existing: existing}
	}
	fv := &FieldVar{Var: newVar(mods, t, name, init), owner: c}
	c.fields = append(c.fields, fv)
	c.fieldsByName[name] = fv
	return fv, nil
}

// Fields returns the fields in declaration order.
func (c *DefinedClass) Fields() []*FieldVar { return c.fields }

func (c *DefinedClass) GetField(name string) *FieldVar { return c.fieldsByName[name] }

// RemoveField deletes a field of this class.
func (c *DefinedClass) RemoveField(fv *FieldVar) {
	if c.fieldsByName[fv.name] != fv {
		illegalf("%s is not a field of %s", fv.name, c.FullName())
	}
	delete(c.fieldsByName, fv.name)
	for i, x := range c.fields {
		if x == fv {
			c.fields = append(c.fields[:i], c.fields[i+1:]...)
			break
		}
	}
}

func (c *DefinedClass) Constructor(mods Mods) *Method {
	if c.anonymous {
		illegalf("anonymous class cannot declare a constructor")
	}
	m := &Method{owner: c, mods: mods, name: c.name}
	c.constructors = append(c.constructors, m)
	return m
}

func (c *DefinedClass) Constructors() []*Method { return c.constructors }

// GetConstructor finds the constructor with exactly these parameter
// types.
func (c *DefinedClass) GetConstructor(params ...Type) *Method {
	for _, m := range c.constructors {
		if m.hasSignature(params) {
			return m
		}
	}
	return nil
}

func (c *DefinedClass) Method(mods Mods, ret Type, name string) *Method {
	checkIdentifier("method", name)
	if ret == nil {
		illegalf("method %s needs a return type; use Model.Void", name)
	}
	m := &Method{owner: c, mods: mods, ret: ret, name: name}
	c.methods = append(c.methods, m)
	return m
}

func (c *DefinedClass) Methods() []*Method { return c.methods }

// GetMethod finds the method with this name and exactly these parameter
// types.
func (c *DefinedClass) GetMethod(name string, params ...Type) *Method {
	for _, m := range c.methods {
		if m.name == name && m.hasSignature(params) {
			return m
		}
	}
	return nil
}

// NestedClass declares a member class. A nested class of the same name, or
// on a case-insensitive model of a name differing only by case, is reported
// as a *ClassExistsError.
func (c *DefinedClass) NestedClass(mods Mods, name string, kind ClassKind) (*DefinedClass, error) {
	checkIdentifier("class", name)
	key := c.model.classKey(name)
	if existing, ok := c.classesByKey[key]; ok {
		return nil, &ClassExistsError{Existing: existing}
	}
	nc := newDefinedClass(c.model, name, mods, kind)
	nc.outer = c
	c.classes = append(c.classes, nc)
	c.classesByKey[key] = nc
	return nc, nil
}

// Classes returns the nested classes in declaration order.
func (c *DefinedClass) Classes() []*DefinedClass { return c.classes }

func (c *DefinedClass) lookupNested(name string) *DefinedClass {
	for _, nc := range c.classes {
		if nc.name == name {
			return nc
		}
	}
	return nil
}

// EnumConstant returns the constant of this name, declaring it on first
// use. Constants keep declaration order.
func (c *DefinedClass) EnumConstant(name string) *EnumConstant {
	for _, ec := range c.enumConstants {
		if ec.name == name {
			return ec
		}
	}
	checkIdentifier("enum constant", name)
	ec := newEnumConstant(c, name)
	c.enumConstants = append(c.enumConstants, ec)
	return ec
}

func (c *DefinedClass) EnumConstants() []*EnumConstant { return c.enumConstants }

// Init returns the static initializer, creating it on first use.
func (c *DefinedClass) Init() *Block {
	if c.init == nil {
		c.init = newBlock(true)
	}
	return c.init
}

// InstanceInit returns the instance initializer, creating it on first use.
func (c *DefinedClass) InstanceInit() *Block {
	if c.instanceInit == nil {
		c.instanceInit = newBlock(true)
	}
	return c.instanceInit
}

func (c *DefinedClass) Javadoc() *DocComment {
	if c.doc == nil {
		c.doc = &DocComment{}
	}
	return c.doc
}

func (c *DefinedClass) Annotate(a Class) *AnnotationUse {
	u := newAnnotationUse(a)
	c.annotations = append(c.annotations, u)
	return u
}

func (c *DefinedClass) Annotations() []*AnnotationUse { return c.annotations }

// Generify declares a class type parameter.
func (c *DefinedClass) Generify(name string, bounds ...Class) *TypeVar {
	checkIdentifier("type parameter", name)
	tv := &TypeVar{model: c.model, name: name, bounds: bounds}
	c.typeParams = append(c.typeParams, tv)
	return tv
}

// Hide keeps the class out of the build while it stays referenceable.
func (c *DefinedClass) Hide() *DefinedClass {
	c.hidden = true
	return c
}

func (c *DefinedClass) Show() *DefinedClass {
	c.hidden = false
	return c
}

// Direct appends source text to the end of the class body verbatim.
func (c *DefinedClass) Direct(source string) *DefinedClass {
	c.direct.WriteString(source)
	return c
}

// StaticRef is "Type.field".
func (c *DefinedClass) StaticRef(field string) *FieldRef { return StaticRef(c, field) }

// StaticInvoke is "Type.method(...)".
func (c *DefinedClass) StaticInvoke(method string) *Invocation { return StaticInvoke(c, method) }

// Source renders the class on its own, with fully qualified names and no
// package clause.
func (c *DefinedClass) Source() string {
	var sb strings.Builder
	f := newFormatter(&sb, c.model.indent)
	c.declare(f)
	return sb.String()
}

func (c *DefinedClass) declare(f *Formatter) {
	if c.doc != nil {
		c.doc.generate(f)
	}
	for _, a := range c.annotations {
		a.generate(f)
		f.Newline()
	}
	if s := c.mods.String(); s != "" {
		f.Print(s + " ")
	}
	f.Print(c.kind.String() + " " + c.name)
	declareTypeParams(f, c.typeParams)
	if c.super != nil && !isObject(c.super) {
		f.Print(" extends ")
		f.Type(c.super)
	}
	if len(c.interfaces) > 0 {
		if c.IsInterface() {
			f.Print(" extends ")
		} else {
			f.Print(" implements ")
		}
		for i, itf := range c.interfaces {
			if i > 0 {
				f.Print(", ")
			}
			f.Type(itf)
		}
	}
	f.Print(" ")
	c.declareBody(f)
	f.Newline()
}

// declareBody prints the braces and members in declaration grammar order:
// enum constants, fields, initializers, constructors, methods, nested
// classes, then direct text. Members after the fields are separated by a
// blank line.
func (c *DefinedClass) declareBody(f *Formatter) {
	f.Print("{").Newline().Newline()
	f.Indent()
	printed := false
	separate := func() {
		if printed {
			f.Newline()
		}
		printed = true
	}
	if len(c.enumConstants) > 0 {
		for i, ec := range c.enumConstants {
			if i > 0 {
				f.Print(",").Newline()
			}
			ec.declare(f)
		}
		f.Print(";").Newline()
		printed = true
	} else if c.kind == ClassKindEnum && c.hasMembers() {
		f.Print(";").Newline()
		printed = true
	}
	for _, fv := range c.fields {
		fv.declare(f)
		printed = true
	}
	if c.init != nil {
		separate()
		f.Print("static ")
		f.block(c.init)
		f.Newline()
	}
	if c.instanceInit != nil {
		separate()
		f.block(c.instanceInit)
		f.Newline()
	}
	for _, m := range c.constructors {
		separate()
		m.declare(f)
	}
	for _, m := range c.methods {
		separate()
		m.declare(f)
	}
	for _, nc := range c.classes {
		separate()
		nc.declare(f)
	}
	if c.direct.Len() > 0 {
		separate()
		f.Print(c.direct.String())
		f.EnsureNewline()
	}
	if printed {
		f.Newline()
	}
	f.Outdent()
	f.Print("}")
}

func (c *DefinedClass) hasMembers() bool {
	return len(c.fields) > 0 || len(c.methods) > 0 || len(c.constructors) > 0 ||
		len(c.classes) > 0 || c.init != nil || c.instanceInit != nil || c.direct.Len() > 0
}
