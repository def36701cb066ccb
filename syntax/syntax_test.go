package syntax

import (
	"context"
	"strings"
	"testing"

	"github.com/dhamidi/jcm/blueprint"
	"github.com/dhamidi/jcm/codemodel"
	"github.com/dhamidi/jcm/writer"
)

func TestCheckValidSource(t *testing.T) {
	src := []byte(`package p;

public class A {
    int x;
}
`)
	problems, err := Check("A.java", src)
	if err != nil {
		t.Fatal(err)
	}
	if len(problems) != 0 {
		t.Errorf("Check() = %v, want no problems", problems)
	}
}

func TestCheckReportsErrors(t *testing.T) {
	src := []byte(`package p;

public class A {
    int x = ;
}
`)
	problems, err := Check("A.java", src)
	if err != nil {
		t.Fatal(err)
	}
	if len(problems) == 0 {
		t.Fatal("Check() found no problems")
	}
	if p := problems[0]; p.Line != 4 || p.Path != "A.java" {
		t.Errorf("first problem = %v, want one on line 4", p)
	}
	if s := problems[0].String(); !strings.HasPrefix(s, "A.java:4:") {
		t.Errorf("String() = %q", s)
	}
}

// The model's output must always parse. This covers the printer's
// trickier corners: operators, generics, anonymous classes, annotations
// and every statement kind.
func TestGeneratedSourcesParse(t *testing.T) {
	m := codemodel.New()
	c, err := m.DefineClass("com.acme.Everything", codemodel.ClassKindClass)
	if err != nil {
		t.Fatal(err)
	}
	tv := c.Generify("T", m.Ref("java.lang.Comparable"))
	c.Annotate(m.Ref("java.lang.SuppressWarnings")).ParamArray("value").AddString("unchecked").AddString("rawtypes")
	list, err := c.Field(codemodel.Private|codemodel.Final, m.Ref("java.util.List<T>"), "items", codemodel.NewObject(m.Ref("java.util.ArrayList<T>")))
	if err != nil {
		t.Fatal(err)
	}

	run := c.Method(codemodel.Public, m.Int, "run")
	p := run.Param(codemodel.Final, tv, "limit")
	run.VarParam(codemodel.None, m.Ref("java.lang.String"), "names")
	run.Throws(m.Ref("java.io.IOException"))
	b := run.Body()
	sum := b.Decl(codemodel.None, m.Int, "sum", codemodel.Lit(0))
	loop := b.For()
	i := loop.Init(codemodel.None, m.Int, "i", codemodel.Lit(0))
	loop.Test(i.Lt(list.Invoke("size")))
	loop.Update(codemodel.Incr(i))
	loop.Body().AssignPlus(sum, codemodel.Negate(i).Mul(codemodel.Lit(2)).Shl(codemodel.Lit(1)))
	loop.Body().Add(codemodel.Decr(sum))
	each := b.ForEach(m.Ref("java.lang.String"), "n", codemodel.Ref("names"))
	each.Body().If(each.Var().Invoke("isEmpty")).Then().Continue(nil)
	outer := b.Label("outer")
	w := b.While(codemodel.Gt(sum, codemodel.Lit(100)))
	w.Body().Assign(sum, codemodel.Cond(codemodel.Not(codemodel.Eq(sum, codemodel.Lit(0))), sum.Div(codemodel.Lit(2)), codemodel.Lit(1)))
	w.Body().Break(outer)
	b.Do(codemodel.Lt(sum, codemodel.Lit(0))).Body().Add(codemodel.PreIncr(sum))
	sw := b.Switch(sum)
	sw.Case(codemodel.Lit(1)).Body().Return(codemodel.Lit(1))
	sw.Default().Body().Break(nil)
	try := b.Try()
	try.Body().Add(codemodel.StaticInvoke(m.Ref("java.lang.System"), "gc"))
	try.Catch(m.Ref("java.lang.RuntimeException")).Body().Throw(codemodel.NewObject(m.Ref("java.io.IOException")).Arg(codemodel.LitString("tab\there \"quoted\" é")))
	try.Finally().Add(codemodel.Decr(sum))
	anon := m.AnonymousClass(m.Ref("java.lang.Runnable"))
	anon.Method(codemodel.Public, m.Void, "run").Body().Direct("System.out.println(\"ran\");")
	b.Decl(codemodel.None, m.Ref("java.lang.Runnable"), "r", codemodel.NewObject(anon))
	b.Decl(codemodel.None, m.Int.Array(), "xs", codemodel.NewArray(m.Int).Add(codemodel.Lit(1)).Add(codemodel.LitChar('x')))
	b.Decl(codemodel.None, m.Ref("java.lang.Class<?>"), "k", codemodel.DotClass(c))
	b.Return(codemodel.Cast(m.Int, codemodel.LitLong(5)).Plus(codemodel.Component(codemodel.Ref("xs"), codemodel.Lit(0))))
	_ = p

	e, err := m.DefineClass("com.acme.Color", codemodel.ClassKindEnum)
	if err != nil {
		t.Fatal(err)
	}
	e.EnumConstant("RED").Arg(codemodel.LitFloat(1.5))
	e.EnumConstant("GREEN").Arg(codemodel.LitDouble(1e-9))
	e.Constructor(codemodel.None).Param(codemodel.None, m.Double, "weight")

	bp, err := blueprint.Read(strings.NewReader(`
package: com.acme
types:
  - name: Point
    type_params: [V]
    fields:
      - {name: x, type: int}
      - {name: label, type: V}
      - {name: ORIGIN, type: String, static: true, final: true, init: '"0,0"'}
    accessors: true
    value: true
  - name: Sized
    kind: interface
    methods:
      - {name: size, returns: int}
      - {name: isEmpty, returns: boolean, body: "return size() == 0;"}
  - name: Marker
    kind: annotation
    members: [{name: value, type: "String[]", default: "{}"}]
`), "yaml")
	if err != nil {
		t.Fatal(err)
	}
	if err := blueprint.Generate(context.Background(), m, bp); err != nil {
		t.Fatal(err)
	}

	out := writer.NewMemoryCodeWriter()
	if err := m.Build(out, nil); err != nil {
		t.Fatal(err)
	}
	files := map[string][]byte{}
	for _, path := range out.Paths() {
		files[path] = out.Get(path)
	}
	if len(files) < 5 {
		t.Fatalf("built %d files: %v", len(files), out.Paths())
	}

	chk, err := NewChecker()
	if err != nil {
		t.Fatal(err)
	}
	defer chk.Close()
	for _, p := range chk.CheckAll(files) {
		t.Errorf("%s\n%s", p, files[p.Path])
	}
}
