package format

import (
	"bytes"
	"errors"
	"testing"
)

func TestPrinter(t *testing.T) {
	t.Run("indents lazily", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf)
		p.Print("class A {").Newline().Indent()
		p.Newline()
		p.Print("int x;").Newline().Outdent()
		p.Print("}").Newline()
		want := "class A {\n\n    int x;\n}\n"
		if got := buf.String(); got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("embedded newlines", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf, WithIndent("\t"))
		p.Indent().Indent()
		p.Print("a();\n\nb();")
		want := "\t\ta();\n\n\t\tb();"
		if got := buf.String(); got != want {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("ensure newline", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf)
		p.EnsureNewline()
		p.Print("x").EnsureNewline().EnsureNewline()
		if got := buf.String(); got != "x\n" {
			t.Errorf("output = %q, want %q", got, "x\n")
		}
	})

	t.Run("space", func(t *testing.T) {
		var buf bytes.Buffer
		p := NewPrinter(&buf)
		p.Space().Print("a").Space().Print("b")
		if got := buf.String(); got != "a b" {
			t.Errorf("output = %q, want %q", got, "a b")
		}
		if p.Column() != 3 {
			t.Errorf("Column() = %d, want 3", p.Column())
		}
	})

	t.Run("outdent floors at zero", func(t *testing.T) {
		p := NewPrinter(&bytes.Buffer{})
		p.Outdent()
		if p.Level() != 0 {
			t.Errorf("Level() = %d, want 0", p.Level())
		}
	})

	t.Run("sticky error", func(t *testing.T) {
		w := &failWriter{}
		p := NewPrinter(w)
		p.Print("a").Newline().Print("b")
		if !errors.Is(p.Err(), errFail) {
			t.Errorf("Err() = %v, want %v", p.Err(), errFail)
		}
		if w.calls != 1 {
			t.Errorf("writes after failure = %d, want 1", w.calls)
		}
	})
}

var errFail = errors.New("disk full")

type failWriter struct{ calls int }

func (w *failWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errFail
}
