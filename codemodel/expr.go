package codemodel

// Expr is a value-producing node. Every expression can be combined with
// any other through the operator methods, which build new nodes and never
// modify their operands.
type Expr interface {
	Plus(right Expr) Expr
	Minus(right Expr) Expr
	Mul(right Expr) Expr
	Div(right Expr) Expr
	Mod(right Expr) Expr
	Shl(right Expr) Expr
	Shr(right Expr) Expr
	Shrz(right Expr) Expr
	Band(right Expr) Expr
	Bor(right Expr) Expr
	Xor(right Expr) Expr
	Cand(right Expr) Expr
	Cor(right Expr) Expr
	Lt(right Expr) Expr
	Lte(right Expr) Expr
	Gt(right Expr) Expr
	Gte(right Expr) Expr
	Eq(right Expr) Expr
	Ne(right Expr) Expr
	Not() Expr
	Complement() Expr
	Negate() Expr
	Incr() Expr
	Decr() Expr
	PreIncr() Expr
	PreDecr() Expr
	InstanceOf(t Type) Expr
	Invoke(method string) *Invocation
	InvokeMethod(method *Method) *Invocation
	Ref(field string) *FieldRef
	Component(index Expr) *ArrayComponent

	generate(f *Formatter)
}

// Assignable is an expression that can appear on the left of "=".
type Assignable interface {
	Expr
	assignable()
}

// ops gives a node the operator methods by delegating to the free
// functions with itself as the left operand.
type ops struct{ self Expr }

func (o ops) Plus(r Expr) Expr                     { return Plus(o.self, r) }
func (o ops) Minus(r Expr) Expr                    { return Minus(o.self, r) }
func (o ops) Mul(r Expr) Expr                      { return Mul(o.self, r) }
func (o ops) Div(r Expr) Expr                      { return Div(o.self, r) }
func (o ops) Mod(r Expr) Expr                      { return Mod(o.self, r) }
func (o ops) Shl(r Expr) Expr                      { return Shl(o.self, r) }
func (o ops) Shr(r Expr) Expr                      { return Shr(o.self, r) }
func (o ops) Shrz(r Expr) Expr                     { return Shrz(o.self, r) }
func (o ops) Band(r Expr) Expr                     { return Band(o.self, r) }
func (o ops) Bor(r Expr) Expr                      { return Bor(o.self, r) }
func (o ops) Xor(r Expr) Expr                      { return Xor(o.self, r) }
func (o ops) Cand(r Expr) Expr                     { return Cand(o.self, r) }
func (o ops) Cor(r Expr) Expr                      { return Cor(o.self, r) }
func (o ops) Lt(r Expr) Expr                       { return Lt(o.self, r) }
func (o ops) Lte(r Expr) Expr                      { return Lte(o.self, r) }
func (o ops) Gt(r Expr) Expr                       { return Gt(o.self, r) }
func (o ops) Gte(r Expr) Expr                      { return Gte(o.self, r) }
func (o ops) Eq(r Expr) Expr                       { return Eq(o.self, r) }
func (o ops) Ne(r Expr) Expr                       { return Ne(o.self, r) }
func (o ops) Not() Expr                            { return Not(o.self) }
func (o ops) Complement() Expr                     { return Complement(o.self) }
func (o ops) Negate() Expr                         { return Negate(o.self) }
func (o ops) Incr() Expr                           { return Incr(o.self) }
func (o ops) Decr() Expr                           { return Decr(o.self) }
func (o ops) PreIncr() Expr                        { return PreIncr(o.self) }
func (o ops) PreDecr() Expr                        { return PreDecr(o.self) }
func (o ops) InstanceOf(t Type) Expr               { return InstanceOf(o.self, t) }
func (o ops) Invoke(method string) *Invocation     { return newInvocation(o.self, nil, method, nil) }
func (o ops) InvokeMethod(m *Method) *Invocation   { return newInvocation(o.self, nil, "", m) }
func (o ops) Ref(field string) *FieldRef           { return newFieldRef(o.self, nil, field) }
func (o ops) Component(index Expr) *ArrayComponent { return Component(o.self, index) }

// atom is a leaf printed as fixed text.
type atom struct {
	ops
	text string
}

func newAtom(text string) *atom {
	a := &atom{text: text}
	a.self = a
	return a
}

func (a *atom) generate(f *Formatter) { f.Print(a.text) }

var (
	// True and False are the boolean literals. Cand, Cor and Not fold
	// them away.
	True  Expr = newAtom("true")
	False Expr = newAtom("false")

	litNull  = newAtom("null")
	litThis  = newAtom("this")
	litSuper = newAtom("super")
)

func Null() Expr  { return litNull }
func This() Expr  { return litThis }
func Super() Expr { return litSuper }

// Direct is an expression printed verbatim.
func Direct(source string) Expr { return newAtom(source) }

// BinaryOp is "(left op right)". Every composite operator expression is
// fully parenthesized.
type BinaryOp struct {
	ops
	left  Expr
	op    string
	right Expr
}

func binary(left Expr, op string, right Expr) Expr {
	b := &BinaryOp{left: left, op: op, right: right}
	b.self = b
	return b
}

func (b *BinaryOp) generate(f *Formatter) {
	f.Print("(")
	f.Expr(b.left)
	f.Print(b.op)
	f.Expr(b.right)
	f.Print(")")
}

func Plus(left, right Expr) Expr  { return binary(left, "+", right) }
func Minus(left, right Expr) Expr { return binary(left, "-", right) }
func Mul(left, right Expr) Expr   { return binary(left, "*", right) }
func Div(left, right Expr) Expr   { return binary(left, "/", right) }
func Mod(left, right Expr) Expr   { return binary(left, "%", right) }
func Shl(left, right Expr) Expr   { return binary(left, "<<", right) }
func Shr(left, right Expr) Expr   { return binary(left, ">>", right) }
func Shrz(left, right Expr) Expr  { return binary(left, ">>>", right) }
func Band(left, right Expr) Expr  { return binary(left, "&", right) }
func Bor(left, right Expr) Expr   { return binary(left, "|", right) }
func Xor(left, right Expr) Expr   { return binary(left, "^", right) }
func Lt(left, right Expr) Expr    { return binary(left, "<", right) }
func Lte(left, right Expr) Expr   { return binary(left, "<=", right) }
func Gt(left, right Expr) Expr    { return binary(left, ">", right) }
func Gte(left, right Expr) Expr   { return binary(left, ">=", right) }
func Eq(left, right Expr) Expr    { return binary(left, "==", right) }
func Ne(left, right Expr) Expr    { return binary(left, "!=", right) }

// Cand is the conditional and. Boolean literal operands are folded: the
// left operand is examined first.
func Cand(left, right Expr) Expr {
	switch {
	case left == True:
		return right
	case left == False:
		return left
	case right == True:
		return left
	case right == False:
		return right
	}
	return binary(left, "&&", right)
}

// Cor is the conditional or, folded like Cand.
func Cor(left, right Expr) Expr {
	switch {
	case left == True:
		return left
	case left == False:
		return right
	case right == True:
		return right
	case right == False:
		return left
	}
	return binary(left, "||", right)
}

// InstanceOf is "(e instanceof T)".
func InstanceOf(e Expr, t Type) Expr {
	i := &instanceOf{e: e, t: t}
	i.self = i
	return i
}

type instanceOf struct {
	ops
	e Expr
	t Type
}

func (i *instanceOf) generate(f *Formatter) {
	f.Print("(")
	f.Expr(i.e)
	f.Print(" instanceof ")
	f.Type(i.t)
	f.Print(")")
}

// UnaryOp is "(op e)", or e++ style increments printed without
// parentheses so they remain valid expression statements.
type UnaryOp struct {
	ops
	op      string
	e       Expr
	postfix bool
	tight   bool
}

func unary(op string, e Expr, postfix, tight bool) *UnaryOp {
	u := &UnaryOp{op: op, e: e, postfix: postfix, tight: tight}
	u.self = u
	return u
}

func (u *UnaryOp) generate(f *Formatter) {
	if !u.tight {
		f.Print("(")
	}
	if !u.postfix {
		f.Print(u.op)
	}
	f.Expr(u.e)
	if u.postfix {
		f.Print(u.op)
	}
	if !u.tight {
		f.Print(")")
	}
}

func (u *UnaryOp) state(f *Formatter) {
	f.Expr(u)
	f.Print(";").Newline()
}

// Not negates a boolean. The literals True and False are swapped instead.
func Not(e Expr) Expr {
	switch e {
	case True:
		return False
	case False:
		return True
	}
	return unary("!", e, false, false)
}

func Complement(e Expr) Expr { return unary("~", e, false, false) }
func Negate(e Expr) Expr     { return unary("-", e, false, false) }

// The increments return *UnaryOp so they can be added to a Block as
// statements.
func Incr(e Expr) *UnaryOp    { return unary("++", e, true, true) }
func Decr(e Expr) *UnaryOp    { return unary("--", e, true, true) }
func PreIncr(e Expr) *UnaryOp { return unary("++", e, false, true) }
func PreDecr(e Expr) *UnaryOp { return unary("--", e, false, true) }

// Conditional expression "(cond ? a : b)".
type TernaryOp struct {
	ops
	cond, a, b Expr
}

func Cond(cond, a, b Expr) Expr {
	t := &TernaryOp{cond: cond, a: a, b: b}
	t.self = t
	return t
}

func (t *TernaryOp) generate(f *Formatter) {
	f.Print("(")
	f.Expr(t.cond)
	f.Print(" ? ")
	f.Expr(t.a)
	f.Print(" : ")
	f.Expr(t.b)
	f.Print(")")
}

type cast struct {
	ops
	t Type
	e Expr
}

// Cast is "((T) e)".
func Cast(t Type, e Expr) Expr {
	c := &cast{t: t, e: e}
	c.self = c
	return c
}

func (c *cast) generate(f *Formatter) {
	f.Print("((")
	f.Type(c.t)
	f.Print(") ")
	f.Expr(c.e)
	f.Print(")")
}

// hasTopOp reports whether e prints its own enclosing parentheses, so
// "if" and "while" need not add another pair.
func hasTopOp(e Expr) bool {
	switch e := e.(type) {
	case *BinaryOp, *instanceOf, *TernaryOp, *cast:
		return true
	case *UnaryOp:
		return !e.tight
	}
	return false
}

// Assignment is "lhs = rhs" or a compound form such as "lhs += rhs".
type Assignment struct {
	ops
	lhs Assignable
	op  string
	rhs Expr
}

func newAssignment(lhs Assignable, op string, rhs Expr) *Assignment {
	a := &Assignment{lhs: lhs, op: op, rhs: rhs}
	a.self = a
	return a
}

func Assign(lhs Assignable, rhs Expr) *Assignment     { return newAssignment(lhs, "=", rhs) }
func AssignPlus(lhs Assignable, rhs Expr) *Assignment { return newAssignment(lhs, "+=", rhs) }

func (a *Assignment) generate(f *Formatter) {
	f.Expr(a.lhs)
	f.Print(" " + a.op + " ")
	f.Expr(a.rhs)
}

func (a *Assignment) state(f *Formatter) {
	f.Expr(a)
	f.Print(";").Newline()
}

// FieldRef is a field access: "name", "target.name" or "Type.name".
type FieldRef struct {
	ops
	target Expr
	class  Class
	name   string
}

func newFieldRef(target Expr, class Class, name string) *FieldRef {
	r := &FieldRef{target: target, class: class, name: name}
	r.self = r
	return r
}

// Ref refers to a field or variable by bare name.
func Ref(name string) *FieldRef { return newFieldRef(nil, nil, name) }

// RefThis is "this.name".
func RefThis(name string) *FieldRef { return newFieldRef(litThis, nil, name) }

// StaticRef is "Type.name".
func StaticRef(c Class, name string) *FieldRef { return newFieldRef(nil, c, name) }

func (r *FieldRef) Name() string { return r.name }

func (r *FieldRef) assignable() {}

func (r *FieldRef) generate(f *Formatter) {
	switch {
	case r.target != nil:
		f.Expr(r.target)
		f.Print(".")
	case r.class != nil:
		f.Type(r.class)
		f.Print(".")
	}
	f.Print(r.name)
}

// ArrayComponent is "array[index]".
type ArrayComponent struct {
	ops
	array, index Expr
}

func Component(array, index Expr) *ArrayComponent {
	c := &ArrayComponent{array: array, index: index}
	c.self = c
	return c
}

func (c *ArrayComponent) assignable() {}

func (c *ArrayComponent) generate(f *Formatter) {
	f.Expr(c.array)
	f.Print("[")
	f.Expr(c.index)
	f.Print("]")
}

type dotClass struct {
	ops
	t Type
}

// DotClass is the class literal "T.class".
func DotClass(t Type) Expr {
	d := &dotClass{t: t}
	d.self = d
	return d
}

func (d *dotClass) generate(f *Formatter) {
	f.Type(d.t)
	f.Print(".class")
}
