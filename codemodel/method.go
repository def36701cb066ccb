package codemodel

import "sort"

// Method is a method or constructor of a declared class. A constructor has
// no return type.
type Method struct {
	owner        *DefinedClass
	mods         Mods
	ret          Type
	name         string
	params       []*Var
	varParam     *Var
	throws       []Class
	body         *Block
	doc          *DocComment
	annotations  []*AnnotationUse
	typeParams   []*TypeVar
	defaultValue AnnotationValue
}

func (m *Method) Name() string           { return m.name }
func (m *Method) Owner() *DefinedClass   { return m.owner }
func (m *Method) Mods() Mods             { return m.mods }
func (m *Method) IsConstructor() bool    { return m.ret == nil }
func (m *Method) Params() []*Var         { return m.params }
func (m *Method) Varargs() *Var          { return m.varParam }
func (m *Method) TypeParams() []*TypeVar { return m.typeParams }

// Type is the return type, nil for a constructor.
func (m *Method) Type() Type { return m.ret }

func (m *Method) SetMods(mods Mods) *Method {
	m.mods = mods
	return m
}

func (m *Method) SetType(t Type) *Method {
	if m.ret == nil {
		illegalf("constructor of %s has no return type", m.owner.FullName())
	}
	m.ret = t
	return m
}

// Param appends a parameter.
func (m *Method) Param(mods Mods, t Type, name string) *Var {
	m.checkParamName(name)
	if m.varParam != nil {
		illegalf("parameter %s of %s follows the varargs parameter", name, m.name)
	}
	v := newVar(mods, t, name, nil)
	m.params = append(m.params, v)
	return v
}

// VarParam declares the varargs parameter "elem... name". A method has at
// most one.
func (m *Method) VarParam(mods Mods, elem Type, name string) *Var {
	if m.varParam != nil {
		illegalf("method %s already has varargs parameter %s", m.name, m.varParam.name)
	}
	m.checkParamName(name)
	m.varParam = newVar(mods, ArrayOf(elem), name, nil)
	return m.varParam
}

func (m *Method) checkParamName(name string) {
	for _, p := range m.params {
		if p.name == name {
			illegalf("method %s already has a parameter %s", m.name, name)
		}
	}
}

// Throws declares an exception. The clause lists java* classes first, then
// the rest, each group by full name.
func (m *Method) Throws(c Class) *Method {
	for _, t := range m.throws {
		if t.FullName() == c.FullName() {
			return m
		}
	}
	m.throws = append(m.throws, c)
	sort.SliceStable(m.throws, func(i, j int) bool {
		return compareNames(m.throws[i], m.throws[j]) < 0
	})
	return m
}

func (m *Method) ThrownTypes() []Class { return m.throws }

// Body returns the method body, creating it on first use.
func (m *Method) Body() *Block {
	if m.body == nil {
		m.body = newBlock(true)
	}
	return m.body
}

func (m *Method) Javadoc() *DocComment {
	if m.doc == nil {
		m.doc = &DocComment{}
	}
	return m.doc
}

func (m *Method) Annotate(c Class) *AnnotationUse {
	a := newAnnotationUse(c)
	m.annotations = append(m.annotations, a)
	return a
}

func (m *Method) Annotations() []*AnnotationUse { return m.annotations }

// Generify declares a method type parameter.
func (m *Method) Generify(name string, bounds ...Class) *TypeVar {
	checkIdentifier("type parameter", name)
	tv := &TypeVar{model: m.owner.model, name: name, bounds: bounds}
	m.typeParams = append(m.typeParams, tv)
	return tv
}

// DeclareDefaultValue sets the default of an annotation type member.
func (m *Method) DeclareDefaultValue(v AnnotationValue) *Method {
	m.defaultValue = v
	return m
}

// hasSignature reports whether the parameter types equal types.
func (m *Method) hasSignature(types []Type) bool {
	all := m.params
	if m.varParam != nil {
		all = append(all[:len(all):len(all)], m.varParam)
	}
	if len(all) != len(types) {
		return false
	}
	for i, p := range all {
		if !SameType(p.typ, types[i]) {
			return false
		}
	}
	return true
}

func (m *Method) hasBody() bool {
	if m.mods.Has(Abstract) || m.mods.Has(Native) {
		return false
	}
	if m.owner.IsInterface() {
		return m.mods.Has(Default) || m.mods.Has(Static) || m.mods.Has(Private)
	}
	return true
}

func (m *Method) declare(f *Formatter) {
	if m.doc != nil {
		m.doc.generate(f)
	}
	for _, a := range m.annotations {
		a.generate(f)
		f.Newline()
	}
	if s := m.mods.String(); s != "" {
		f.Print(s + " ")
	}
	if len(m.typeParams) > 0 {
		declareTypeParams(f, m.typeParams)
		f.Print(" ")
	}
	if m.ret != nil {
		f.Type(m.ret)
		f.Print(" ")
	}
	f.Print(m.name + "(")
	for i, p := range m.params {
		if i > 0 {
			f.Print(", ")
		}
		p.declare(f)
	}
	if v := m.varParam; v != nil {
		if len(m.params) > 0 {
			f.Print(", ")
		}
		for _, a := range v.annotations {
			a.generate(f)
			f.Print(" ")
		}
		if s := v.mods.String(); s != "" {
			f.Print(s + " ")
		}
		f.Type(v.typ.(*ArrayClass).component)
		f.Print("... " + v.name)
	}
	f.Print(")")
	for i, t := range m.throws {
		if i == 0 {
			f.Print(" throws ")
		} else {
			f.Print(", ")
		}
		f.Type(t)
	}
	if m.defaultValue != nil {
		f.Print(" default ")
		m.defaultValue.generate(f)
	}
	if !m.hasBody() {
		f.Print(";").Newline()
		return
	}
	f.Print(" ")
	f.block(m.Body())
	f.Newline()
}
