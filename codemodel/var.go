package codemodel

// Var is a local variable, parameter or the variable part of a field. As
// an expression it prints its name.
type Var struct {
	ops
	mods        Mods
	typ         Type
	name        string
	init        Expr
	annotations []*AnnotationUse
}

func newVar(mods Mods, t Type, name string, init Expr) *Var {
	checkIdentifier("variable", name)
	if t == nil {
		illegalf("variable %s has no type", name)
	}
	v := &Var{mods: mods, typ: t, name: name, init: init}
	v.self = v
	return v
}

func (v *Var) Name() string    { return v.name }
func (v *Var) Type() Type      { return v.typ }
func (v *Var) Mods() Mods      { return v.mods }
func (v *Var) InitValue() Expr { return v.init }

// Init sets the initializer.
func (v *Var) Init(e Expr) *Var {
	v.init = e
	return v
}

func (v *Var) SetMods(mods Mods) *Var {
	v.mods = mods
	return v
}

// SetType changes the declared type.
func (v *Var) SetType(t Type) *Var {
	v.typ = t
	return v
}

func (v *Var) Annotate(c Class) *AnnotationUse {
	a := newAnnotationUse(c)
	v.annotations = append(v.annotations, a)
	return a
}

func (v *Var) Annotations() []*AnnotationUse { return v.annotations }

func (v *Var) assignable() {}

func (v *Var) generate(f *Formatter) { f.Print(v.name) }

// declare prints "@A mods T name = init" without the terminator.
func (v *Var) declare(f *Formatter) {
	for _, a := range v.annotations {
		a.generate(f)
		f.Print(" ")
	}
	if s := v.mods.String(); s != "" {
		f.Print(s + " ")
	}
	f.Type(v.typ)
	f.Print(" ")
	v.bind(f)
}

// bind prints "name = init".
func (v *Var) bind(f *Formatter) {
	f.Print(v.name)
	if v.init != nil {
		f.Print(" = ")
		f.Expr(v.init)
	}
}

// FieldVar is a field of a declared class.
type FieldVar struct {
	*Var
	owner *DefinedClass
	doc   *DocComment
}

func (fv *FieldVar) Owner() *DefinedClass { return fv.owner }

// Javadoc returns the field's doc comment, creating it on first use.
func (fv *FieldVar) Javadoc() *DocComment {
	if fv.doc == nil {
		fv.doc = &DocComment{}
	}
	return fv.doc
}

func (fv *FieldVar) declare(f *Formatter) {
	if fv.doc != nil {
		fv.doc.generate(f)
	}
	for _, a := range fv.annotations {
		a.generate(f)
		f.Newline()
	}
	if s := fv.mods.String(); s != "" {
		f.Print(s + " ")
	}
	f.Type(fv.typ)
	f.Print(" ")
	fv.bind(f)
	f.Print(";").Newline()
}
