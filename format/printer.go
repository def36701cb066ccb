package format

import (
	"io"
	"strings"
)

// Printer writes indented source text. Indentation is emitted lazily at the
// start of the first non-empty write on a line, so blank lines never carry
// trailing whitespace. The first write error is kept and later writes are
// dropped; check Err once at the end.
type Printer struct {
	w           io.Writer
	indent      int
	indentStr   string
	atLineStart bool
	column      int
	err         error
}

type PrinterOption func(*Printer)

// WithIndent sets the string written once per indentation level.
func WithIndent(s string) PrinterOption {
	return func(p *Printer) { p.indentStr = s }
}

func NewPrinter(w io.Writer, opts ...PrinterOption) *Printer {
	p := &Printer{
		w:           w,
		indentStr:   "    ",
		atLineStart: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Print writes s. Embedded newlines end the line and the following text is
// indented at the current level.
func (p *Printer) Print(s string) *Printer {
	for {
		idx := strings.IndexByte(s, '\n')
		if idx < 0 {
			break
		}
		if idx > 0 {
			p.writeIndent()
			p.write(s[:idx])
		}
		p.Newline()
		s = s[idx+1:]
	}
	if s != "" {
		p.writeIndent()
		p.write(s)
	}
	return p
}

// Space writes a single space unless the line is empty so far.
func (p *Printer) Space() *Printer {
	if !p.atLineStart {
		p.write(" ")
	}
	return p
}

func (p *Printer) Newline() *Printer {
	p.write("\n")
	p.atLineStart = true
	p.column = 0
	return p
}

// EnsureNewline ends the current line unless nothing was written on it yet.
func (p *Printer) EnsureNewline() *Printer {
	if !p.atLineStart {
		p.Newline()
	}
	return p
}

func (p *Printer) Indent() *Printer {
	p.indent++
	return p
}

func (p *Printer) Outdent() *Printer {
	if p.indent > 0 {
		p.indent--
	}
	return p
}

func (p *Printer) Level() int { return p.indent }

func (p *Printer) AtLineStart() bool { return p.atLineStart }

func (p *Printer) Column() int { return p.column }

func (p *Printer) Err() error { return p.err }

func (p *Printer) writeIndent() {
	if !p.atLineStart {
		return
	}
	for i := 0; i < p.indent; i++ {
		p.write(p.indentStr)
	}
	p.atLineStart = false
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
	p.column += len(s)
}
