package codemodel

// EnumConstant is a constant of a declared enum. As an expression it
// prints "Type.NAME".
type EnumConstant struct {
	ops
	owner       *DefinedClass
	name        string
	args        []Expr
	doc         *DocComment
	annotations []*AnnotationUse
}

func newEnumConstant(owner *DefinedClass, name string) *EnumConstant {
	ec := &EnumConstant{owner: owner, name: name}
	ec.self = ec
	return ec
}

func (ec *EnumConstant) Name() string         { return ec.name }
func (ec *EnumConstant) Owner() *DefinedClass { return ec.owner }

// Ordinal is the position of the constant in declaration order.
func (ec *EnumConstant) Ordinal() int {
	for i, c := range ec.owner.enumConstants {
		if c == ec {
			return i
		}
	}
	return -1
}

// Arg appends a constructor argument.
func (ec *EnumConstant) Arg(e Expr) *EnumConstant {
	ec.args = append(ec.args, e)
	return ec
}

func (ec *EnumConstant) Javadoc() *DocComment {
	if ec.doc == nil {
		ec.doc = &DocComment{}
	}
	return ec.doc
}

func (ec *EnumConstant) Annotate(c Class) *AnnotationUse {
	a := newAnnotationUse(c)
	ec.annotations = append(ec.annotations, a)
	return a
}

func (ec *EnumConstant) generate(f *Formatter) {
	f.Type(ec.owner)
	f.Print("." + ec.name)
}

func (ec *EnumConstant) declare(f *Formatter) {
	if ec.doc != nil {
		ec.doc.generate(f)
	}
	for _, a := range ec.annotations {
		a.generate(f)
		f.Newline()
	}
	f.Print(ec.name)
	if len(ec.args) > 0 {
		f.args(ec.args)
	}
}
