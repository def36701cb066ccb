package codemodel

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"

	"github.com/dhamidi/jcm/writer"
)

// shapes declares the model whose output is recorded in
// testdata/shapes.txtar.
func shapes(t *testing.T) *Model {
	t.Helper()
	m := New()
	str := m.Ref("java.lang.String")
	list := m.Ref("java.util.List")

	color := define(t, m, "com.acme.Color", ClassKindEnum)
	for _, name := range []string{"RED", "GREEN", "BLUE"} {
		color.EnumConstant(name)
	}

	shape := define(t, m, "com.acme.Shape", ClassKindInterface)
	shape.Javadoc().Append("A closed figure.")
	shape.Extends(Narrow(m.Ref("java.lang.Comparable"), shape))
	shape.Method(None, m.Double, "area")
	shape.Method(None, Narrow(list, shape), "parts")
	shape.Method(Default, m.Boolean, "isEmpty").Body().Return(Eq(Invoke("area"), LitDouble(0)))

	circle := define(t, m, "com.acme.Circle", ClassKindClass)
	circle.Implements(shape)
	circle.Javadoc().Append("A circle.").Tag("author", "jcm")
	circle.Annotate(m.Ref("java.lang.SuppressWarnings")).ParamString("value", "unchecked")
	if _, err := circle.Field(Public|Static|Final, m.Double, "UNIT", LitDouble(1)); err != nil {
		t.Fatal(err)
	}
	radius, err := circle.Field(Private|Final, m.Double, "radius", nil)
	if err != nil {
		t.Fatal(err)
	}
	children, err := circle.Field(Private, Narrow(list, shape), "children",
		NewObject(Narrow(m.Ref("java.util.ArrayList"), shape)))
	if err != nil {
		t.Fatal(err)
	}
	circle.Init().StaticInvoke(color, "valueOf").Arg(LitString("RED"))

	ctor := circle.Constructor(Public)
	ctor.Javadoc().Append("Creates a circle.").Param("radius", "the radius")
	ctor.Body().Assign(RefThis("radius"), ctor.Param(None, m.Double, "radius"))

	area := circle.Method(Public, m.Double, "area")
	area.Annotate(m.Ref("java.lang.Override"))
	area.Body().Return(Mul(Mul(LitDouble(3.14), radius), radius))

	parts := circle.Method(Public, Narrow(list, shape), "parts")
	parts.Annotate(m.Ref("java.lang.Override"))
	parts.Body().Return(children)

	of := circle.Method(Public|Static, circle, "of")
	radii := of.VarParam(None, m.Double, "radii")
	of.Throws(m.Ref("java.lang.IllegalStateException"))
	of.Throws(m.Ref("java.io.IOException"))
	of.Body().If(Eq(radii.Ref("length"), Lit(0))).Then().
		Throw(NewObject(m.Ref("java.lang.IllegalStateException")).Arg(LitString("no radius")))
	of.Body().Return(NewObject(circle).Arg(radii.Component(Lit(0))))

	builder, err := circle.NestedClass(Public|Static, "Builder", ClassKindClass)
	if err != nil {
		t.Fatal(err)
	}
	builder.Method(Public, circle, "build").Body().Return(NewObject(circle).Arg(LitDouble(1)))

	named := define(t, m, "com.acme.Named", ClassKindAnnotation)
	named.Method(None, str, "value")
	named.Method(None, m.Int, "order").DeclareDefaultValue(Lit(0))

	pkg := m.Package("com.acme")
	pkg.Javadoc().Append("Shapes.")
	pkg.AddResource(NewPropertiesFile("shapes.properties").Add("circle.sides", "0").Add("a key", "x=y"))
	pkg.AddResource(NewTextFile("README.txt", "hello\n"))
	return m
}

func TestBuildShapes(t *testing.T) {
	archive, err := txtar.ParseFile(filepath.Join("testdata", "shapes.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	src, res := writer.NewMemoryCodeWriter(), writer.NewMemoryCodeWriter()
	m := shapes(t)
	if err := m.Build(src, res); err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	var wantPaths []string
	for _, f := range archive.Files {
		wantPaths = append(wantPaths, f.Name)
		dir, path, _ := strings.Cut(f.Name, "/")
		out := src
		if dir == "res" {
			out = res
		}
		if diff := cmp.Diff(string(f.Data), string(out.Get(path))); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", f.Name, diff)
		}
	}
	var gotPaths []string
	for _, p := range src.Paths() {
		gotPaths = append(gotPaths, "src/"+p)
	}
	for _, p := range res.Paths() {
		gotPaths = append(gotPaths, "res/"+p)
	}
	if diff := cmp.Diff(wantPaths, gotPaths); diff != "" {
		t.Errorf("artifact paths mismatch (-want +got):\n%s", diff)
	}
	if got, want := m.CountArtifacts(), src.Len()+res.Len(); got != want {
		t.Errorf("CountArtifacts() = %d, Build wrote %d", got, want)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	first, second := writer.NewMemoryCodeWriter(), writer.NewMemoryCodeWriter()
	m := shapes(t)
	if err := m.Build(first, nil); err != nil {
		t.Fatal(err)
	}
	if err := m.Build(second, nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first.Order(), second.Order()); diff != "" {
		t.Fatalf("write order differs (-first +second):\n%s", diff)
	}
	for _, p := range first.Paths() {
		if !bytes.Equal(first.Get(p), second.Get(p)) {
			t.Errorf("%s differs between builds", p)
		}
	}

	other := writer.NewMemoryCodeWriter()
	if err := shapes(t).Build(other, nil); err != nil {
		t.Fatal(err)
	}
	for _, p := range first.Paths() {
		if !bytes.Equal(first.Get(p), other.Get(p)) {
			t.Errorf("%s differs between equal models", p)
		}
	}
}

func TestImports(t *testing.T) {
	m := New()
	define(t, m, "com.other.Widget", ClassKindClass)
	svc := define(t, m, "com.acme.Service", ClassKindClass)
	define(t, m, "com.acme.Helper", ClassKindClass)
	str, integer := m.Ref("java.lang.String"), m.Ref("java.lang.Integer")

	if _, err := svc.Field(Private, Narrow(m.Ref("java.util.List"), str), "names", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Field(Private, m.Ref("com.acme.Helper"), "helper", nil); err != nil {
		t.Fatal(err)
	}
	first := svc.Method(Public, m.Ref("com.other.Widget"), "first")
	first.Param(None, Narrow(m.Ref("java.util.Map.Entry"), str, integer), "e")
	first.Body().Return(Null())

	want := `package com.acme;

import com.other.Widget;
import java.util.List;
import java.util.Map;

public class Service {

    private List<String> names;
    private Helper helper;

    public Widget first(Map.Entry<String, Integer> e) {
        return null;
    }

}
`
	if diff := cmp.Diff(want, buildOne(t, m, "com/acme/Service.java")); diff != "" {
		t.Errorf("Service.java mismatch (-want +got):\n%s", diff)
	}
}

func TestAmbiguousNames(t *testing.T) {
	m := New()
	define(t, m, "com.other.List", ClassKindClass)
	c := define(t, m, "com.acme.Lists", ClassKindClass)
	if _, err := c.Field(Private, m.Ref("java.util.List"), "a", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Field(Private, m.Ref("com.other.List"), "b", nil); err != nil {
		t.Fatal(err)
	}
	want := `package com.acme;

public class Lists {

    private java.util.List a;
    private com.other.List b;

}
`
	if diff := cmp.Diff(want, buildOne(t, m, "com/acme/Lists.java")); diff != "" {
		t.Errorf("Lists.java mismatch (-want +got):\n%s", diff)
	}
}

func TestShadowedJavaLang(t *testing.T) {
	m := New()
	define(t, m, "com.acme.String", ClassKindClass)
	c := define(t, m, "com.acme.Text", ClassKindClass)
	if _, err := c.Field(Private, m.Ref("java.lang.String"), "value", nil); err != nil {
		t.Fatal(err)
	}
	tv := c.Generify("Integer")
	if _, err := c.Field(Private, tv, "n", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Field(Private, m.Ref("java.lang.Integer"), "boxed", nil); err != nil {
		t.Fatal(err)
	}
	got := buildOne(t, m, "com/acme/Text.java")
	for _, line := range []string{
		"public class Text<Integer> {",
		"    private java.lang.String value;",
		"    private Integer n;",
		"    private java.lang.Integer boxed;",
	} {
		if !strings.Contains(got, line+"\n") {
			t.Errorf("missing %q in:\n%s", line, got)
		}
	}
	if strings.Contains(got, "import") {
		t.Errorf("unexpected import in:\n%s", got)
	}
}

func TestAnonymousClass(t *testing.T) {
	m := New()
	c := define(t, m, "com.acme.Main", ClassKindClass)
	anon := m.AnonymousClass(m.Ref("java.lang.Runnable"))
	run := anon.Method(Public, m.Void, "run")
	run.Annotate(m.Ref("java.lang.Override"))
	run.Body().Invoke(StaticRef(m.Ref("java.lang.System"), "out"), "println").Arg(LitString("hi"))
	c.Method(Public|Static, m.Ref("java.lang.Runnable"), "task").Body().Return(NewObject(anon))

	want := `package com.acme;

public class Main {

    public static Runnable task() {
        return new Runnable() {

            @Override
            public void run() {
                System.out.println("hi");
            }

        };
    }

}
`
	if diff := cmp.Diff(want, buildOne(t, m, "com/acme/Main.java")); diff != "" {
		t.Errorf("Main.java mismatch (-want +got):\n%s", diff)
	}
	expectIllegal(t, func() { anon.Constructor(Public) })
}

func TestHiddenClassesAreSkipped(t *testing.T) {
	m := New()
	define(t, m, "p.Visible", ClassKindClass)
	define(t, m, "p.Secret", ClassKindClass).Hide()
	out := writer.NewMemoryCodeWriter()
	if err := m.Build(out, nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"p/Visible.java"}, out.Paths()); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}
	if m.CountArtifacts() != 1 {
		t.Errorf("CountArtifacts() = %d, want 1", m.CountArtifacts())
	}
}

func TestPackageInfo(t *testing.T) {
	m := New()
	pkg := m.Package("com.acme.api")
	pkg.Annotate(m.Ref("java.lang.Deprecated"))
	pkg.Javadoc().Append("The public API.")
	got := buildOne(t, m, "com/acme/api/package-info.java")
	want := `/**
 * The public API.
 */
@java.lang.Deprecated
package com.acme.api;
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("package-info.java mismatch (-want +got):\n%s", diff)
	}

	empty := New()
	empty.Package("com.acme").Javadoc()
	if n := empty.CountArtifacts(); n != 0 {
		t.Errorf("empty Javadoc produced %d artifacts", n)
	}
}

func TestBuildDir(t *testing.T) {
	m := New()
	define(t, m, "com.acme.Foo", ClassKindClass)
	static := filepath.Join(t.TempDir(), "logo.txt")
	if err := os.WriteFile(static, []byte("logo"), 0o644); err != nil {
		t.Fatal(err)
	}
	m.Package("com.acme").AddResource(NewStaticFile(static, true))
	m.Package("com.acme").AddResource(NewBinaryFile("data.bin", []byte{0, 1, 2}))

	srcDir, resDir := t.TempDir(), t.TempDir()
	if err := m.BuildDir(srcDir, resDir); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{
		filepath.Join(srcDir, "com", "acme", "Foo.java"),
		filepath.Join(resDir, "com", "acme", "logo.txt"),
		filepath.Join(resDir, "com", "acme", "data.bin"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing %s: %v", p, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(resDir, "com", "acme", "logo.txt"))
	if err != nil || string(data) != "logo" {
		t.Errorf("logo.txt = %q, %v", data, err)
	}
}

func TestStaticFileMissing(t *testing.T) {
	m := New()
	m.Package("p").AddResource(NewStaticFile(filepath.Join(t.TempDir(), "nope.txt"), true))
	if err := m.Build(writer.NewMemoryCodeWriter(), nil); err == nil {
		t.Error("Build() succeeded with a missing static file")
	}
}

func TestResourceReplacement(t *testing.T) {
	m := New()
	pkg := m.Package("p")
	pkg.AddResource(NewTextFile("a.txt", "one"))
	pkg.AddResource(NewTextFile("a.txt", "two"))
	if len(pkg.Resources()) != 1 || !pkg.HasResource("a.txt") {
		t.Fatalf("Resources() = %v", pkg.Resources())
	}
	if got := buildOne(t, m, "p/a.txt"); got != "two" {
		t.Errorf("a.txt = %q, want two", got)
	}
}
