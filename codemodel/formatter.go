package codemodel

import (
	"io"
	"sort"
	"strings"

	"github.com/dhamidi/jcm/format"
)

type formatMode int

const (
	// modeStandalone prints every class by its full name.
	modeStandalone formatMode = iota
	// modeCollect records the classes a compilation unit refers to.
	modeCollect
	// modePrint prints the unit with imports resolved by modeCollect.
	modePrint
)

// Formatter prints the declaration tree as indented Java source. A
// compilation unit is formatted twice: a collecting pass that records which
// classes are referenced, then the printing pass. A Formatter is used for
// one unit only, so formatting the same tree again gives identical bytes.
type Formatter struct {
	p      *format.Printer
	indent string
	last   byte

	mode     formatMode
	pkg      *Package
	unit     *DefinedClass
	declared map[string]bool
	typeVars map[string]bool
	seen     map[string]map[string]bool
	short    map[string]bool
	imports  []string
}

func newFormatter(w io.Writer, indent string) *Formatter {
	return &Formatter{
		p:      format.NewPrinter(w, format.WithIndent(indent)),
		indent: indent,
		last:   '\n',
	}
}

// Print writes s. A space is inserted where the previous token and s
// would otherwise run together, as in "a- -1".
func (f *Formatter) Print(s string) *Formatter {
	if s == "" {
		return f
	}
	if !f.p.AtLineStart() && needSpace(f.last, s[0]) {
		f.p.Print(" ")
	}
	f.p.Print(s)
	f.last = s[len(s)-1]
	return f
}

func needSpace(last, next byte) bool {
	switch {
	case last == '+' && next == '+', last == '-' && next == '-':
		return true
	case last == '/' && (next == '/' || next == '*'):
		return true
	}
	return false
}

func (f *Formatter) Newline() *Formatter {
	f.p.Newline()
	f.last = '\n'
	return f
}

func (f *Formatter) EnsureNewline() *Formatter {
	if !f.p.AtLineStart() {
		f.Newline()
	}
	return f
}

func (f *Formatter) Indent() *Formatter {
	f.p.Indent()
	return f
}

func (f *Formatter) Outdent() *Formatter {
	f.p.Outdent()
	return f
}

func (f *Formatter) Type(t Type)           { t.generate(f) }
func (f *Formatter) Expr(e Expr)           { e.generate(f) }
func (f *Formatter) Statement(s Statement) { s.state(f) }

func (f *Formatter) args(args []Expr) {
	f.Print("(")
	for i, a := range args {
		if i > 0 {
			f.Print(", ")
		}
		f.Expr(a)
	}
	f.Print(")")
}

// test prints a condition in parentheses unless it brings its own.
func (f *Formatter) test(e Expr) {
	if hasTopOp(e) {
		f.Expr(e)
		return
	}
	f.Print("(")
	f.Expr(e)
	f.Print(")")
}

// block prints "{", the statements indented, and "}" without a trailing
// newline.
func (f *Formatter) block(b *Block) {
	f.Print("{").Newline()
	f.Indent()
	f.statements(b)
	f.Outdent()
	f.Print("}")
}

func (f *Formatter) statements(b *Block) {
	for _, s := range b.stmts {
		s.state(f)
	}
}

func (f *Formatter) noteTypeVar(name string) {
	if f.mode == modeCollect {
		f.typeVars[name] = true
	}
}

// className prints a top-level class by simple or full name depending on
// the unit's imports. Nested classes print through their outer class.
func (f *Formatter) className(c Class) {
	if o := c.Outer(); o != nil {
		f.Type(o)
		f.Print("." + c.Name())
		return
	}
	switch f.mode {
	case modeCollect:
		name := c.Name()
		if f.seen[name] == nil {
			f.seen[name] = make(map[string]bool)
		}
		f.seen[name][c.FullName()] = true
	case modePrint:
		if f.short[c.FullName()] {
			f.Print(c.Name())
			return
		}
	}
	f.Print(c.FullName())
}

// typeText renders c to a string, taking part in import resolution.
func (f *Formatter) typeText(c Class) string {
	var sb strings.Builder
	saved, last := f.p, f.last
	f.p = format.NewPrinter(&sb)
	f.Type(c)
	f.p, f.last = saved, last
	return sb.String()
}

// writeUnit prints c as a compilation unit: package clause, imports and
// the class declaration.
func (f *Formatter) writeUnit(c *DefinedClass) {
	out := f.p
	f.p = format.NewPrinter(io.Discard, format.WithIndent(f.indent))
	f.mode = modeCollect
	f.unit = c
	f.pkg = c.Package()
	f.declared = make(map[string]bool)
	f.typeVars = make(map[string]bool)
	f.seen = make(map[string]map[string]bool)
	declareNames(c, f.declared)
	c.declare(f)
	f.resolveImports()

	f.p = out
	f.last = '\n'
	f.mode = modePrint
	if !f.pkg.IsUnnamed() {
		f.Print("package " + f.pkg.name + ";").Newline().Newline()
	}
	for _, imp := range f.imports {
		f.Print("import " + imp + ";").Newline()
	}
	if len(f.imports) > 0 {
		f.Newline()
	}
	c.declare(f)
}

func declareNames(c *DefinedClass, names map[string]bool) {
	names[c.name] = true
	for _, nc := range c.classes {
		declareNames(nc, names)
	}
}

// resolveImports decides for every top-level class seen in the collecting
// pass whether it prints by its simple name, and which of those need an
// import statement.
func (f *Formatter) resolveImports() {
	f.short = make(map[string]bool)
	f.imports = nil
	unitName := f.unit.FullName()
	for name, classes := range f.seen {
		if len(classes) != 1 {
			// Ambiguous: the unit's own class keeps its simple name.
			if _, ok := classes[unitName]; ok {
				f.short[unitName] = true
			}
			continue
		}
		for full := range classes {
			if full == unitName {
				f.short[full] = true
				continue
			}
			if f.typeVars[name] || f.declared[name] {
				continue
			}
			pkg := packageOf(full)
			switch {
			case pkg == f.pkg.name, pkg == "":
				f.short[full] = true
			case pkg == "java.lang":
				f.short[full] = f.pkg.Lookup(name) == nil
			default:
				f.short[full] = true
				f.imports = append(f.imports, full)
			}
		}
	}
	sort.Strings(f.imports)
}

// Render prints an expression with fully qualified class names.
func Render(e Expr) string {
	var sb strings.Builder
	e.generate(newFormatter(&sb, "    "))
	return sb.String()
}

// RenderType prints a type with fully qualified class names.
func RenderType(t Type) string {
	var sb strings.Builder
	t.generate(newFormatter(&sb, "    "))
	return sb.String()
}

// RenderStatement prints a statement, including its trailing newline.
func RenderStatement(s Statement) string {
	var sb strings.Builder
	s.state(newFormatter(&sb, "    "))
	return sb.String()
}
