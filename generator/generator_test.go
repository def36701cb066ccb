package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/jcm/codemodel"
)

type input struct {
	name string
	kind string
}

func (i input) InputName() string { return i.name }

func TestPipelineAppliesAcceptingGenerators(t *testing.T) {
	m := codemodel.New()
	var calls []string
	record := func(label string) func(*codemodel.Model, input) error {
		return func(m *codemodel.Model, in input) error {
			calls = append(calls, label+":"+in.name)
			return nil
		}
	}
	p := NewPipeline(m,
		Func("classes", func(in input) bool { return in.kind == "class" }, record("classes")),
		Func("all", nil, record("all")),
	)
	err := p.Run(context.Background(), input{"a", "class"}, input{"b", "enum"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := []string{"classes:a", "all:a", "all:b"}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestPipelineRecoversDeclarationPanics(t *testing.T) {
	m := codemodel.New()
	bad := Func("bad", nil, func(m *codemodel.Model, in input) error {
		c, err := m.DefineClass("p."+in.name, codemodel.ClassKindClass)
		if err != nil {
			return err
		}
		c.Extends(c)
		return nil
	})
	ran := false
	good := Func("good", nil, func(m *codemodel.Model, in input) error {
		ran = true
		return nil
	})
	err := NewPipeline(m, bad).Add(good).Run(context.Background(), input{name: "Loop"})
	if !errors.Is(err, codemodel.ErrIllegalDeclaration) {
		t.Fatalf("Run() error = %v, want ErrIllegalDeclaration", err)
	}
	var gerr *Error
	if !errors.As(err, &gerr) || gerr.Generator != "bad" || gerr.Input != "Loop" {
		t.Errorf("Run() error = %#v, want generator bad on Loop", gerr)
	}
	if !ran {
		t.Error("a failing generator stopped the next one")
	}
	if !strings.Contains(err.Error(), "generator bad on Loop") {
		t.Errorf("error text %q does not name the generator", err)
	}
}

func TestPipelineReturnsErrors(t *testing.T) {
	m := codemodel.New()
	g := Func("dup", nil, func(m *codemodel.Model, in input) error {
		_, err := m.DefineClass("p.Same", codemodel.ClassKindClass)
		return err
	})
	err := NewPipeline(m, g).Run(context.Background(), input{name: "one"}, input{name: "two"})
	var exists *codemodel.ClassExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("Run() error = %v, want *ClassExistsError", err)
	}
	if exists.Existing.FullName() != "p.Same" {
		t.Errorf("existing class = %s", exists.Existing.FullName())
	}
}

func TestPipelineOtherPanicsPropagate(t *testing.T) {
	defer func() {
		if r := recover(); r != "boom" {
			t.Errorf("recovered %v, want boom", r)
		}
	}()
	g := Func("panics", nil, func(*codemodel.Model, input) error { panic("boom") })
	NewPipeline(codemodel.New(), g).Run(context.Background(), input{name: "x"})
	t.Error("Run returned normally")
}

func TestPipelineStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	g := Func("count", nil, func(*codemodel.Model, input) error {
		n++
		cancel()
		return nil
	})
	err := NewPipeline(codemodel.New(), g).Run(ctx, input{name: "a"}, input{name: "b"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if n != 1 {
		t.Errorf("generator ran %d times, want 1", n)
	}
}

func TestInputName(t *testing.T) {
	if got := inputName(input{name: "x"}); got != "x" {
		t.Errorf("inputName(input) = %q", got)
	}
	if got := inputName(42); got != "42" {
		t.Errorf("inputName(42) = %q", got)
	}
}
