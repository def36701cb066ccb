package blueprint

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/dhamidi/jcm/codemodel"
	"github.com/dhamidi/jcm/generator"
)

// Generate populates m from the blueprints. Types are declared by a first
// pass over every blueprint so later passes can refer to any of them
// regardless of order.
func Generate(ctx context.Context, m *codemodel.Model, bps ...*Blueprint) error {
	if err := generator.NewPipeline(m, Declarations()).Run(ctx, bps...); err != nil {
		return err
	}
	return generator.NewPipeline(m, Members()...).Run(ctx, bps...)
}

// Declarations declares every type of a blueprint with its type parameters.
// A type that already exists with the same kind is reused, so blueprints can
// extend classes a program declared itself.
func Declarations() generator.Generator[*Blueprint] {
	return generator.Func("declare", hasTypes, func(m *codemodel.Model, bp *Blueprint) error {
		pkg := m.Package(bp.Package)
		for _, t := range bp.Types {
			c, err := pkg.Class(classMods(&t), t.Name, t.ClassKind())
			var exists *codemodel.ClassExistsError
			if errors.As(err, &exists) && exists.Existing.Kind() == t.ClassKind() && exists.Existing.Name() == t.Name {
				log.Infof("extending existing %s", exists.Existing.FullName())
				c, err = exists.Existing, nil
			}
			if err != nil {
				return err
			}
			for _, tp := range t.TypeParams {
				if typeVar(c, tp) == nil {
					c.Generify(tp)
				}
			}
		}
		return nil
	})
}

// Members returns the generators that fill in declared types, in the order
// they run.
func Members() []generator.Generator[*Blueprint] {
	return []generator.Generator[*Blueprint]{
		eachType("header", func(*Type) bool { return true }, genHeader),
		eachType("fields", func(t *Type) bool { return len(t.Fields) > 0 }, genFields),
		eachType("enum", isKind(codemodel.ClassKindEnum), genConstants),
		eachType("constructor", needsConstructor, genConstructor),
		eachType("accessors", func(t *Type) bool { return t.Accessors }, genAccessors),
		eachType("value", func(t *Type) bool { return t.Value }, genValue),
		eachType("builder", func(t *Type) bool { return t.Builder }, genBuilder),
		eachType("methods", func(t *Type) bool { return len(t.Methods) > 0 }, genMethods),
		eachType("annotation", isKind(codemodel.ClassKindAnnotation), genMembers),
		generator.Func("resources", hasResources, genResources),
	}
}

func hasTypes(bp *Blueprint) bool { return len(bp.Types) > 0 }

func hasResources(bp *Blueprint) bool {
	return len(bp.Resources) > 0 || bp.Doc != ""
}

func isKind(k codemodel.ClassKind) func(*Type) bool {
	return func(t *Type) bool { return t.ClassKind() == k }
}

func classMods(t *Type) codemodel.Mods {
	mods := codemodel.Public
	if t.Abstract {
		mods |= codemodel.Abstract
	}
	if t.Final {
		mods |= codemodel.Final
	}
	return mods
}

// target is one declared type being generated.
type target struct {
	*Type
	class *codemodel.DefinedClass
	r     *resolver
}

// eachType adapts a per-type step into a generator over blueprints.
func eachType(name string, accepts func(*Type) bool, step func(*target) error) generator.Generator[*Blueprint] {
	return generator.Func(name,
		func(bp *Blueprint) bool {
			for i := range bp.Types {
				if accepts(&bp.Types[i]) {
					return true
				}
			}
			return false
		},
		func(m *codemodel.Model, bp *Blueprint) error {
			for i := range bp.Types {
				t := &bp.Types[i]
				if !accepts(t) {
					continue
				}
				c := m.DefinedClass(t.FullName(bp.Package))
				if c == nil {
					return fmt.Errorf("%s was not declared", t.FullName(bp.Package))
				}
				if err := step(&target{Type: t, class: c, r: &resolver{m: m, pkg: bp.Package, class: c}}); err != nil {
					return fmt.Errorf("%s: %w", t.Name, err)
				}
			}
			return nil
		})
}

func genHeader(t *target) error {
	c := t.class
	if t.Doc != "" {
		c.Javadoc().Append(t.Doc)
	}
	for _, a := range t.Annotations {
		c.Annotate(t.r.ref(a))
	}
	if t.Extends != "" {
		super, err := t.r.classType(t.Extends)
		if err != nil {
			return err
		}
		c.Extends(super)
	}
	for _, itf := range t.Implements {
		ic, err := t.r.classType(itf)
		if err != nil {
			return err
		}
		c.Implements(ic)
	}
	return nil
}

func genFields(t *target) error {
	for _, f := range t.Fields {
		typ, err := t.r.typ(f.Type)
		if err != nil {
			return err
		}
		var init codemodel.Expr
		if f.Init != "" {
			init = codemodel.Direct(f.Init)
		}
		fv, err := t.class.Field(fieldMods(t, &f), typ, f.Name, init)
		if err != nil {
			return err
		}
		if f.Doc != "" {
			fv.Javadoc().Append(f.Doc)
		}
	}
	return nil
}

func fieldMods(t *target, f *Field) codemodel.Mods {
	if t.class.IsInterface() {
		return codemodel.None
	}
	var mods codemodel.Mods
	if f.Static {
		mods = codemodel.Public | codemodel.Static
	} else {
		mods = codemodel.Private
	}
	if f.Final {
		mods |= codemodel.Final
	}
	return mods
}

func genConstants(t *target) error {
	for _, k := range t.Constants {
		ec := t.class.EnumConstant(k.Name)
		for _, arg := range k.Args {
			ec.Arg(codemodel.Direct(arg))
		}
		if k.Doc != "" {
			ec.Javadoc().Append(k.Doc)
		}
	}
	return nil
}

// constructorFields are the instance fields without an initializer, the
// parameters of the generated constructor.
func constructorFields(t *Type) []Field {
	var out []Field
	for _, f := range t.Fields {
		if !f.Static && f.Init == "" {
			out = append(out, f)
		}
	}
	return out
}

func needsConstructor(t *Type) bool {
	k := t.ClassKind()
	return (k == codemodel.ClassKindClass || k == codemodel.ClassKindEnum) && len(constructorFields(t)) > 0
}

func genConstructor(t *target) error {
	mods := codemodel.Public
	if t.class.Kind() == codemodel.ClassKindEnum {
		mods = codemodel.None
	}
	fields := constructorFields(t.Type)
	types := make([]codemodel.Type, len(fields))
	for i, f := range fields {
		types[i] = t.class.GetField(f.Name).Type()
	}
	if t.class.GetConstructor(types...) != nil {
		return nil
	}
	ctor := t.class.Constructor(mods)
	for i, f := range fields {
		p := ctor.Param(codemodel.None, types[i], f.Name)
		ctor.Body().Assign(codemodel.RefThis(f.Name), p)
	}
	return nil
}

func genAccessors(t *target) error {
	m := t.class.Model()
	for _, f := range t.Fields {
		if f.Static {
			continue
		}
		fv := t.class.GetField(f.Name)
		prefix := "get"
		if fv.Type() == m.Boolean {
			prefix = "is"
		}
		getter := t.class.Method(codemodel.Public, fv.Type(), prefix+capitalize(f.Name))
		getter.Body().Return(codemodel.RefThis(f.Name))
		if f.Final {
			continue
		}
		setter := t.class.Method(codemodel.Public, m.Void, "set"+capitalize(f.Name))
		p := setter.Param(codemodel.None, fv.Type(), f.Name)
		setter.Body().Assign(codemodel.RefThis(f.Name), p)
	}
	return nil
}

// genValue adds equals, hashCode and toString over the instance fields.
func genValue(t *target) error {
	m := t.class.Model()
	c := t.class
	objects := m.Ref("java.util.Objects")
	override := m.Ref("java.lang.Override")

	var fields []Field
	for _, f := range t.Fields {
		if !f.Static {
			fields = append(fields, f)
		}
	}

	equals := c.Method(codemodel.Public, m.Boolean, "equals")
	equals.Annotate(override)
	o := equals.Param(codemodel.None, m.Ref("java.lang.Object"), "o")
	body := equals.Body()
	body.If(codemodel.Eq(codemodel.This(), o)).Then().Return(codemodel.True)
	body.If(codemodel.Not(o.InstanceOf(c))).Then().Return(codemodel.False)
	other := body.Decl(codemodel.None, c, "other", codemodel.Cast(c, o))
	test := codemodel.True
	for _, f := range fields {
		test = codemodel.Cand(test, codemodel.StaticInvoke(objects, "equals").
			Arg(codemodel.RefThis(f.Name)).
			Arg(other.Ref(f.Name)))
	}
	body.Return(test)

	hash := c.Method(codemodel.Public, m.Int, "hashCode")
	hash.Annotate(override)
	call := codemodel.StaticInvoke(objects, "hash")
	for _, f := range fields {
		call.Arg(codemodel.RefThis(f.Name))
	}
	hash.Body().Return(call)

	str := c.Method(codemodel.Public, m.Ref("java.lang.String"), "toString")
	str.Annotate(override)
	var text codemodel.Expr = codemodel.LitString(c.Name() + "{}")
	for i, f := range fields {
		switch i {
		case 0:
			text = codemodel.LitString(c.Name() + "{" + f.Name + "=").Plus(codemodel.RefThis(f.Name))
		default:
			text = text.Plus(codemodel.LitString(", " + f.Name + "=")).Plus(codemodel.RefThis(f.Name))
		}
	}
	if len(fields) > 0 {
		text = text.Plus(codemodel.LitString("}"))
	}
	str.Body().Return(text)
	return nil
}

// genBuilder adds a static nested Builder with one fluent setter per
// constructor parameter. An existing Builder class is completed rather
// than replaced.
func genBuilder(t *target) error {
	c := t.class
	b, err := c.NestedClass(codemodel.Public|codemodel.Static, "Builder", codemodel.ClassKindClass)
	var exists *codemodel.ClassExistsError
	if errors.As(err, &exists) {
		log.Debugf("reusing %s", exists.Existing.FullName())
		b, err = exists.Existing, nil
	}
	if err != nil {
		return err
	}

	build := codemodel.NewObject(c)
	for _, f := range constructorFields(t.Type) {
		typ := c.GetField(f.Name).Type()
		if _, err := b.Field(codemodel.Private, typ, f.Name, nil); err != nil {
			var fe *codemodel.FieldExistsError
			if !errors.As(err, &fe) {
				return err
			}
		}
		if b.GetMethod(f.Name, typ) == nil {
			set := b.Method(codemodel.Public, b, f.Name)
			p := set.Param(codemodel.None, typ, f.Name)
			set.Body().Assign(codemodel.RefThis(f.Name), p)
			set.Body().Return(codemodel.This())
		}
		build.Arg(codemodel.RefThis(f.Name))
	}
	if b.GetMethod("build") == nil {
		b.Method(codemodel.Public, c, "build").Body().Return(build)
	}
	if c.GetMethod("builder") == nil {
		c.Method(codemodel.Public|codemodel.Static, b, "builder").Body().Return(codemodel.NewObject(b))
	}
	return nil
}

func genMethods(t *target) error {
	m := t.class.Model()
	for _, bm := range t.Methods {
		var ret codemodel.Type = m.Void
		if bm.Returns != "" {
			var err error
			if ret, err = t.r.typ(bm.Returns); err != nil {
				return err
			}
		}
		meth := t.class.Method(methodMods(t, &bm), ret, bm.Name)
		for _, p := range bm.Params {
			pt, err := t.r.typ(p.Type)
			if err != nil {
				return err
			}
			meth.Param(codemodel.None, pt, p.Name)
		}
		for _, th := range bm.Throws {
			meth.Throws(t.r.ref(th))
		}
		if bm.Doc != "" {
			meth.Javadoc().Append(bm.Doc)
		}
		if bm.Body != "" {
			meth.Body().Direct(bm.Body)
		}
	}
	return nil
}

func methodMods(t *target, bm *Method) codemodel.Mods {
	switch {
	case t.class.IsInterface() && bm.Body != "":
		return codemodel.Default
	case t.class.IsInterface():
		return codemodel.None
	case bm.Body == "":
		return codemodel.Public | codemodel.Abstract
	}
	return codemodel.Public
}

func genMembers(t *target) error {
	for _, mem := range t.Members {
		typ, err := t.r.typ(mem.Type)
		if err != nil {
			return err
		}
		meth := t.class.Method(codemodel.None, typ, mem.Name)
		if mem.Default != "" {
			meth.DeclareDefaultValue(codemodel.Direct(mem.Default))
		}
	}
	return nil
}

func genResources(m *codemodel.Model, bp *Blueprint) error {
	pkg := m.Package(bp.Package)
	if bp.Doc != "" {
		pkg.Javadoc().Append(bp.Doc)
	}
	for _, r := range bp.Resources {
		switch {
		case r.Text != "":
			pkg.AddResource(codemodel.NewTextFile(r.Name, r.Text))
		case len(r.Properties) > 0:
			props := codemodel.NewPropertiesFile(r.Name)
			for _, p := range r.Properties {
				props.Add(p.Key, p.Value)
			}
			pkg.AddResource(props)
		case r.Copy != "":
			path := r.Copy
			if !filepath.IsAbs(path) && bp.Source != "" {
				path = filepath.Join(filepath.Dir(bp.Source), path)
			}
			pkg.AddResource(codemodel.NewStaticFile(path, true))
		}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func typeVar(c *codemodel.DefinedClass, name string) *codemodel.TypeVar {
	for _, tv := range c.TypeParams() {
		if tv.Name() == name {
			return tv
		}
	}
	return nil
}

// resolver turns type names written in a blueprint into model types.
// Simple names of types declared in the blueprint's package are qualified
// first, and the declaring class's type parameters are in scope.
type resolver struct {
	m     *codemodel.Model
	pkg   string
	class *codemodel.DefinedClass
}

var nameToken = regexp.MustCompile(`[\p{L}_$][\p{L}\p{N}_$.]*`)

func (r *resolver) qualify(s string) string {
	return nameToken.ReplaceAllStringFunc(s, func(tok string) string {
		if strings.Contains(tok, ".") || tok == "extends" || tok == "super" {
			return tok
		}
		if r.class != nil && typeVar(r.class, tok) != nil {
			return tok
		}
		if r.pkg != "" && r.m.DefinedClass(r.pkg+"."+tok) != nil {
			return r.pkg + "." + tok
		}
		return tok
	})
}

func (r *resolver) typ(s string) (codemodel.Type, error) {
	s = strings.TrimSpace(s)
	if r.class != nil {
		if tv := typeVar(r.class, s); tv != nil {
			return tv, nil
		}
	}
	return r.m.ParseType(r.qualify(s))
}

// classType is typ restricted to reference types.
func (r *resolver) classType(s string) (codemodel.Class, error) {
	t, err := r.typ(s)
	if err != nil {
		return nil, err
	}
	c, ok := t.(codemodel.Class)
	if !ok {
		return nil, fmt.Errorf("%s is not a class type", s)
	}
	return c, nil
}

// ref resolves a plain class name, as used by annotations and throws.
func (r *resolver) ref(s string) codemodel.Class {
	return r.m.Ref(r.qualify(strings.TrimSpace(s)))
}
