package codemodel

// Invocation is a method call. The target is an expression, a class for
// static calls, or nothing for an unqualified call.
type Invocation struct {
	ops
	target Expr
	class  Class
	name   string
	method *Method
	args   []Expr
}

func newInvocation(target Expr, class Class, name string, method *Method) *Invocation {
	inv := &Invocation{target: target, class: class, name: name, method: method}
	inv.self = inv
	return inv
}

// Invoke calls a method by name on the implicit receiver. The names
// "this" and "super" produce constructor calls.
func Invoke(name string) *Invocation { return newInvocation(nil, nil, name, nil) }

// InvokeMethod calls m on target; a nil target makes it unqualified.
func InvokeMethod(target Expr, m *Method) *Invocation {
	return newInvocation(target, nil, "", m)
}

// StaticInvoke is "Type.name(...)".
func StaticInvoke(c Class, name string) *Invocation { return newInvocation(nil, c, name, nil) }

// Arg appends an argument.
func (inv *Invocation) Arg(e Expr) *Invocation {
	inv.args = append(inv.args, e)
	return inv
}

func (inv *Invocation) Args() []Expr { return inv.args }

func (inv *Invocation) methodName() string {
	if inv.method != nil {
		return inv.method.name
	}
	return inv.name
}

func (inv *Invocation) generate(f *Formatter) {
	switch {
	case inv.target != nil:
		f.Expr(inv.target)
		f.Print(".")
	case inv.class != nil:
		f.Type(inv.class)
		f.Print(".")
	}
	f.Print(inv.methodName())
	f.args(inv.args)
}

func (inv *Invocation) state(f *Formatter) {
	f.Expr(inv)
	f.Print(";").Newline()
}

// Construction is "new T(args)", or "new Base(args) { ... }" for an
// anonymous class.
type Construction struct {
	ops
	class Class
	args  []Expr
}

// NewObject instantiates c. Pass a class from Model.AnonymousClass to
// declare its body inline.
func NewObject(c Class) *Construction {
	n := &Construction{class: c}
	n.self = n
	return n
}

func (n *Construction) Arg(e Expr) *Construction {
	n.args = append(n.args, e)
	return n
}

func (n *Construction) generate(f *Formatter) {
	f.Print("new ")
	anon, _ := n.class.(*DefinedClass)
	if anon != nil && anon.anonymous {
		f.Type(anon.base)
		f.args(n.args)
		f.Print(" ")
		anon.declareBody(f)
		return
	}
	f.Type(n.class)
	f.args(n.args)
}

func (n *Construction) state(f *Formatter) {
	f.Expr(n)
	f.Print(";").Newline()
}

// ArrayCreation is "new T[n]" or "new T[] {a, b}".
type ArrayCreation struct {
	ops
	elem  Type
	size  Expr
	items []Expr
}

// NewArray creates an array of elem with an initializer list filled by
// Add.
func NewArray(elem Type) *ArrayCreation {
	a := &ArrayCreation{elem: elem}
	a.self = a
	return a
}

// NewArraySize creates an array of elem with size elements.
func NewArraySize(elem Type, size Expr) *ArrayCreation {
	a := NewArray(elem)
	a.size = size
	return a
}

func (a *ArrayCreation) Add(e Expr) *ArrayCreation {
	a.items = append(a.items, e)
	return a
}

func (a *ArrayCreation) generate(f *Formatter) {
	f.Print("new ")
	if a.size == nil {
		f.Type(a.elem)
		f.Print("[] {")
		for i, e := range a.items {
			if i > 0 {
				f.Print(", ")
			}
			f.Expr(e)
		}
		f.Print("}")
		return
	}
	// new int[n][] for an element type of int[].
	base, dims := a.elem, 0
	for {
		ac, ok := base.(*ArrayClass)
		if !ok {
			break
		}
		base = ac.component
		dims++
	}
	f.Type(base)
	f.Print("[")
	f.Expr(a.size)
	f.Print("]")
	for i := 0; i < dims; i++ {
		f.Print("[]")
	}
}
