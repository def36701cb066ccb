package codemodel

// Statement is a node printed as one or more complete lines.
type Statement interface {
	state(f *Formatter)
}

// Block is an ordered, mutable list of statements. New statements are
// inserted at the current position, which starts at the end.
type Block struct {
	stmts  []Statement
	pos    int
	braces bool
}

func newBlock(braces bool) *Block { return &Block{braces: braces} }

// Pos returns the index where the next statement is inserted.
func (b *Block) Pos() int { return b.pos }

// SetPos moves the insertion point and returns the previous one. Positions
// past the end are clamped.
func (b *Block) SetPos(pos int) int {
	old := b.pos
	if pos < 0 {
		pos = 0
	}
	if pos > len(b.stmts) {
		pos = len(b.stmts)
	}
	b.pos = pos
	return old
}

func (b *Block) IsEmpty() bool { return len(b.stmts) == 0 }

func (b *Block) Statements() []Statement { return b.stmts }

func (b *Block) insert(s Statement) {
	b.stmts = append(b.stmts, nil)
	copy(b.stmts[b.pos+1:], b.stmts[b.pos:])
	b.stmts[b.pos] = s
	b.pos++
}

// Add appends a statement: an invocation, assignment, increment or any
// other Statement.
func (b *Block) Add(s Statement) *Block {
	b.insert(s)
	return b
}

// Decl declares a local variable. init may be nil.
func (b *Block) Decl(mods Mods, t Type, name string, init Expr) *Var {
	v := newVar(mods, t, name, init)
	b.insert(declStmt{v})
	return v
}

func (b *Block) Assign(lhs Assignable, rhs Expr) *Block {
	b.insert(Assign(lhs, rhs))
	return b
}

func (b *Block) AssignPlus(lhs Assignable, rhs Expr) *Block {
	b.insert(AssignPlus(lhs, rhs))
	return b
}

// Invoke adds a call of name on target, or an unqualified call when
// target is nil, and returns it so arguments can be added.
func (b *Block) Invoke(target Expr, name string) *Invocation {
	inv := newInvocation(target, nil, name, nil)
	b.insert(inv)
	return inv
}

func (b *Block) StaticInvoke(c Class, name string) *Invocation {
	inv := StaticInvoke(c, name)
	b.insert(inv)
	return inv
}

func (b *Block) If(test Expr) *Conditional {
	c := &Conditional{test: test, then: newBlock(true)}
	b.insert(c)
	return c
}

func (b *Block) For() *ForLoop {
	l := &ForLoop{body: newBlock(true)}
	b.insert(l)
	return l
}

// ForEach adds "for (T name : collection)" and returns the loop; its Var
// is the loop variable.
func (b *Block) ForEach(t Type, name string, collection Expr) *ForEach {
	l := &ForEach{v: newVar(None, t, name, nil), collection: collection, body: newBlock(true)}
	b.insert(l)
	return l
}

func (b *Block) While(test Expr) *WhileLoop {
	l := &WhileLoop{test: test, body: newBlock(true)}
	b.insert(l)
	return l
}

func (b *Block) Do(test Expr) *DoLoop {
	l := &DoLoop{test: test, body: newBlock(true)}
	b.insert(l)
	return l
}

func (b *Block) Switch(test Expr) *Switch {
	s := &Switch{test: test}
	b.insert(s)
	return s
}

func (b *Block) Try() *TryBlock {
	t := &TryBlock{body: newBlock(true)}
	b.insert(t)
	return t
}

func (b *Block) Throw(e Expr) *Block {
	b.insert(&keywordStmt{keyword: "throw", e: e})
	return b
}

// Return adds "return e;", or a bare "return;" when e is nil.
func (b *Block) Return(e Expr) *Block {
	b.insert(&keywordStmt{keyword: "return", e: e})
	return b
}

// Break adds "break;" or "break label;" when label is not nil.
func (b *Block) Break(label *Label) *Block {
	b.insert(&jumpStmt{keyword: "break", label: label})
	return b
}

func (b *Block) Continue(label *Label) *Block {
	b.insert(&jumpStmt{keyword: "continue", label: label})
	return b
}

// Label adds "name:" before the next statement.
func (b *Block) Label(name string) *Label {
	checkIdentifier("label", name)
	l := &Label{name: name}
	b.insert(l)
	return l
}

// Block adds a nested "{ ... }" block.
func (b *Block) Block() *Block {
	nb := newBlock(true)
	b.insert(nb)
	return nb
}

// Direct adds source text verbatim as a statement.
func (b *Block) Direct(source string) *Block {
	b.insert(directStmt(source))
	return b
}

func (b *Block) state(f *Formatter) {
	if b.braces {
		f.block(b)
		f.Newline()
		return
	}
	f.statements(b)
}

type declStmt struct{ v *Var }

func (d declStmt) state(f *Formatter) {
	d.v.declare(f)
	f.Print(";").Newline()
}

type keywordStmt struct {
	keyword string
	e       Expr
}

func (k *keywordStmt) state(f *Formatter) {
	f.Print(k.keyword)
	if k.e != nil {
		f.Print(" ")
		f.Expr(k.e)
	}
	f.Print(";").Newline()
}

type jumpStmt struct {
	keyword string
	label   *Label
}

func (j *jumpStmt) state(f *Formatter) {
	f.Print(j.keyword)
	if j.label != nil {
		f.Print(" " + j.label.name)
	}
	f.Print(";").Newline()
}

type Label struct{ name string }

func (l *Label) Name() string { return l.name }

func (l *Label) state(f *Formatter) { f.Print(l.name + ":").Newline() }

type directStmt string

func (d directStmt) state(f *Formatter) {
	f.Print(string(d))
	f.p.EnsureNewline()
}

// Conditional is an if statement with optional else-if chain and else.
type Conditional struct {
	test      Expr
	then      *Block
	otherwise *Block
	elseIf    bool
}

func (c *Conditional) Then() *Block { return c.then }

// Else returns the else block, creating it on first use.
func (c *Conditional) Else() *Block {
	if c.otherwise == nil {
		c.otherwise = newBlock(true)
	}
	return c.otherwise
}

// ElseIf chains "else if (test)" and returns the new conditional.
func (c *Conditional) ElseIf(test Expr) *Conditional {
	c.elseIf = true
	return c.Else().If(test)
}

func (c *Conditional) state(f *Formatter) {
	if c.test == True {
		f.statements(c.then)
		return
	}
	if c.test == False {
		if c.otherwise != nil {
			f.statements(c.otherwise)
		}
		return
	}
	c.head(f)
}

func (c *Conditional) head(f *Formatter) {
	f.Print("if ")
	f.test(c.test)
	f.Print(" ")
	f.block(c.then)
	if c.otherwise != nil {
		f.Print(" else ")
		if inner, ok := c.chained(); ok {
			inner.head(f)
			return
		}
		f.block(c.otherwise)
	}
	f.Newline()
}

// chained returns the nested conditional when the else block holds only
// an else-if.
func (c *Conditional) chained() (*Conditional, bool) {
	if !c.elseIf || len(c.otherwise.stmts) != 1 {
		return nil, false
	}
	inner, ok := c.otherwise.stmts[0].(*Conditional)
	if !ok || inner.test == True || inner.test == False {
		return nil, false
	}
	return inner, true
}

type ForLoop struct {
	inits   []Statement
	test    Expr
	updates []Expr
	body    *Block
}

// Init declares a loop variable.
func (l *ForLoop) Init(mods Mods, t Type, name string, e Expr) *Var {
	v := newVar(mods, t, name, e)
	l.inits = append(l.inits, declStmt{v})
	return v
}

// InitAssign assigns an existing variable in the init part.
func (l *ForLoop) InitAssign(v Assignable, e Expr) *ForLoop {
	l.inits = append(l.inits, Assign(v, e))
	return l
}

func (l *ForLoop) Test(e Expr) *ForLoop {
	l.test = e
	return l
}

func (l *ForLoop) Update(e Expr) *ForLoop {
	l.updates = append(l.updates, e)
	return l
}

func (l *ForLoop) Body() *Block { return l.body }

func (l *ForLoop) state(f *Formatter) {
	f.Print("for (")
	first := true
	for _, s := range l.inits {
		if !first {
			f.Print(", ")
		}
		switch s := s.(type) {
		case declStmt:
			if first {
				s.v.declare(f)
			} else {
				s.v.bind(f)
			}
		case *Assignment:
			f.Expr(s)
		}
		first = false
	}
	f.Print(";")
	if l.test != nil {
		f.Print(" ")
		f.Expr(l.test)
	}
	f.Print(";")
	for i, u := range l.updates {
		if i == 0 {
			f.Print(" ")
		} else {
			f.Print(", ")
		}
		f.Expr(u)
	}
	f.Print(") ")
	f.block(l.body)
	f.Newline()
}

type ForEach struct {
	v          *Var
	collection Expr
	body       *Block
}

func (l *ForEach) Var() *Var    { return l.v }
func (l *ForEach) Body() *Block { return l.body }

func (l *ForEach) state(f *Formatter) {
	f.Print("for (")
	f.Type(l.v.typ)
	f.Print(" " + l.v.name + " : ")
	f.Expr(l.collection)
	f.Print(") ")
	f.block(l.body)
	f.Newline()
}

type WhileLoop struct {
	test Expr
	body *Block
}

func (l *WhileLoop) Body() *Block { return l.body }

func (l *WhileLoop) state(f *Formatter) {
	f.Print("while ")
	f.test(l.test)
	f.Print(" ")
	f.block(l.body)
	f.Newline()
}

type DoLoop struct {
	test Expr
	body *Block
}

func (l *DoLoop) Body() *Block { return l.body }

func (l *DoLoop) state(f *Formatter) {
	f.Print("do ")
	f.block(l.body)
	f.Print(" while ")
	f.test(l.test)
	f.Print(";").Newline()
}

type Switch struct {
	test  Expr
	cases []*Case
	def   *Case
}

// Case adds "case label:" and returns it; statements go into its Body.
func (s *Switch) Case(label Expr) *Case {
	c := &Case{label: label, body: newBlock(false)}
	s.cases = append(s.cases, c)
	return c
}

// Default returns the default case, creating it on first use.
func (s *Switch) Default() *Case {
	if s.def == nil {
		s.def = &Case{body: newBlock(false)}
	}
	return s.def
}

func (s *Switch) state(f *Formatter) {
	f.Print("switch ")
	f.test(s.test)
	f.Print(" {").Newline()
	f.Indent()
	cases := s.cases
	if s.def != nil {
		cases = append(cases[:len(cases):len(cases)], s.def)
	}
	for _, c := range cases {
		if c.label == nil {
			f.Print("default:").Newline()
		} else {
			f.Print("case ")
			f.Expr(c.label)
			f.Print(":").Newline()
		}
		f.Indent()
		f.statements(c.body)
		f.Outdent()
	}
	f.Outdent()
	f.Print("}").Newline()
}

type Case struct {
	label Expr
	body  *Block
}

func (c *Case) Body() *Block { return c.body }

type TryBlock struct {
	body    *Block
	catches []*CatchBlock
	finally *Block
}

func (t *TryBlock) Body() *Block { return t.body }

// Catch adds a catch clause for exception.
func (t *TryBlock) Catch(exception Class) *CatchBlock {
	c := &CatchBlock{exception: exception, body: newBlock(true)}
	t.catches = append(t.catches, c)
	return c
}

// Finally returns the finally block, creating it on first use.
func (t *TryBlock) Finally() *Block {
	if t.finally == nil {
		t.finally = newBlock(true)
	}
	return t.finally
}

func (t *TryBlock) state(f *Formatter) {
	f.Print("try ")
	f.block(t.body)
	for _, c := range t.catches {
		f.Print(" catch (")
		f.Type(c.exception)
		name := "e"
		if c.v != nil {
			name = c.v.name
		}
		f.Print(" " + name + ") ")
		f.block(c.body)
	}
	if t.finally != nil {
		f.Print(" finally ")
		f.block(t.finally)
	}
	f.Newline()
}

type CatchBlock struct {
	exception Class
	v         *Var
	body      *Block
}

// Param names the exception variable. The first call fixes the name; later
// calls return the same variable.
func (c *CatchBlock) Param(name string) *Var {
	if c.v == nil {
		c.v = newVar(None, c.exception, name, nil)
	}
	return c.v
}

func (c *CatchBlock) Body() *Block { return c.body }
