// Package generator runs code generators over a sequence of inputs. Each
// generator decides whether it applies to an input and, if so, populates a
// shared codemodel.Model through its builder methods.
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jcm/codemodel"
)

var log = commonlog.GetLogger("jcm.generator")

// Generator contributes declarations to a Model for the inputs it accepts.
type Generator[In any] interface {
	Name() string
	Accepts(in In) bool
	Generate(m *codemodel.Model, in In) error
}

type funcGenerator[In any] struct {
	name     string
	accepts  func(In) bool
	generate func(*codemodel.Model, In) error
}

// Func builds a Generator from functions. A nil accepts applies the
// generator to every input.
func Func[In any](name string, accepts func(In) bool, generate func(*codemodel.Model, In) error) Generator[In] {
	return &funcGenerator[In]{name: name, accepts: accepts, generate: generate}
}

func (g *funcGenerator[In]) Name() string { return g.name }

func (g *funcGenerator[In]) Accepts(in In) bool {
	return g.accepts == nil || g.accepts(in)
}

func (g *funcGenerator[In]) Generate(m *codemodel.Model, in In) error {
	return g.generate(m, in)
}

// Error reports a generator that failed on one input.
type Error struct {
	Generator string
	Input     string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("generator %s on %s: %v", e.Generator, e.Input, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Pipeline applies its generators in order to each input. Generators run
// one at a time since the Model is not safe for concurrent use.
type Pipeline[In any] struct {
	model      *codemodel.Model
	generators []Generator[In]
}

func NewPipeline[In any](m *codemodel.Model, gens ...Generator[In]) *Pipeline[In] {
	return &Pipeline[In]{model: m, generators: gens}
}

func (p *Pipeline[In]) Add(g Generator[In]) *Pipeline[In] {
	p.generators = append(p.generators, g)
	return p
}

func (p *Pipeline[In]) Model() *codemodel.Model { return p.model }

// Run feeds every input to every accepting generator. A generator that
// fails, or that panics with a declaration error, is reported and the
// remaining generators still run; the failures are returned joined.
// Cancelling ctx stops before the next generator starts.
func (p *Pipeline[In]) Run(ctx context.Context, inputs ...In) error {
	var errs []error
	for _, in := range inputs {
		for _, g := range p.generators {
			if err := ctx.Err(); err != nil {
				return errors.Join(append(errs, err)...)
			}
			name := inputName(in)
			if !g.Accepts(in) {
				log.Debugf("%s skips %s", g.Name(), name)
				continue
			}
			log.Infof("running %s on %s", g.Name(), name)
			if err := p.run(g, in); err != nil {
				log.Errorf("%s", err)
				errs = append(errs, &Error{Generator: g.Name(), Input: name, Err: err})
			}
		}
	}
	return errors.Join(errs...)
}

// run calls the generator, turning a declaration panic into an error.
// Other panics are not ours to handle and propagate.
func (p *Pipeline[In]) run(g Generator[In], in In) (err error) {
	defer func() {
		if r := recover(); r != nil {
			var de *codemodel.DeclarationError
			if e, ok := r.(error); ok && errors.As(e, &de) {
				err = de
				return
			}
			panic(r)
		}
	}()
	return g.Generate(p.model, in)
}

func inputName(in any) string {
	switch v := in.(type) {
	case interface{ InputName() string }:
		return v.InputName()
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", in)
}
