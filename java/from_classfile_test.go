package java

import (
	"encoding/binary"
	"testing"

	"github.com/dhamidi/jcm/classfile"
)

type poolBuilder struct {
	pool classfile.ConstantPool
}

func newPoolBuilder() *poolBuilder {
	return &poolBuilder{pool: classfile.ConstantPool{nil}}
}

func (b *poolBuilder) add(c *classfile.Constant) uint16 {
	b.pool = append(b.pool, c)
	return uint16(len(b.pool) - 1)
}

func (b *poolBuilder) utf8(s string) uint16 {
	return b.add(&classfile.Constant{Tag: classfile.ConstantUtf8, Text: s})
}

func (b *poolBuilder) class(name string) uint16 {
	return b.add(&classfile.Constant{Tag: classfile.ConstantClass, Ref1: b.utf8(name)})
}

func u2s(vals ...uint16) []byte {
	out := make([]byte, 2*len(vals))
	for i, v := range vals {
		binary.BigEndian.PutUint16(out[2*i:], v)
	}
	return out
}

func nestedGenericClass() *classfile.ClassFile {
	b := newPoolBuilder()
	this := b.class("com/acme/Registry$Entry")
	outer := b.class("com/acme/Registry")
	object := b.class("java/lang/Object")
	comparable := b.class("java/lang/Comparable")
	ioe := b.class("java/io/IOException")
	sig := b.utf8("<K::Ljava/lang/Comparable<TK;>;V:Ljava/lang/Object;>Ljava/lang/Object;Ljava/lang/Comparable<Lcom/acme/Registry$Entry<TK;TV;>;>;")
	methodSig := b.utf8("<T:Ljava/lang/Number;>(TT;)V")
	entryName := b.utf8("Entry")

	return &classfile.ClassFile{
		MajorVersion: 61,
		Pool:         b.pool,
		AccessFlags:  classfile.AccFinal,
		ThisClass:    this,
		SuperClass:   object,
		Interfaces:   []uint16{comparable},
		Fields: []classfile.Member{
			{AccessFlags: classfile.AccPrivate | classfile.AccFinal, Name: "key", Descriptor: "Ljava/lang/Comparable;"},
			{AccessFlags: classfile.AccSynthetic | classfile.AccFinal, Name: "this$0", Descriptor: "Lcom/acme/Registry;"},
		},
		Methods: []classfile.Member{
			{AccessFlags: classfile.AccPublic, Name: "<init>", Descriptor: "(Ljava/lang/Comparable;Ljava/lang/Object;)V"},
			{AccessFlags: classfile.AccStatic, Name: "<clinit>", Descriptor: "()V"},
			{
				AccessFlags: classfile.AccPublic,
				Name:        "accept",
				Descriptor:  "(Ljava/lang/Number;)V",
				Attributes: []classfile.Attribute{
					{Name: classfile.AttrSignature, Data: u2s(methodSig)},
					{Name: classfile.AttrExceptions, Data: u2s(1, ioe)},
				},
			},
			{AccessFlags: classfile.AccPublic | classfile.AccVarargs, Name: "all", Descriptor: "([[I)[Ljava/lang/String;"},
			{AccessFlags: classfile.AccPublic | classfile.AccBridge | classfile.AccSynthetic, Name: "compareTo", Descriptor: "(Ljava/lang/Object;)I"},
		},
		Attributes: []classfile.Attribute{
			{Name: classfile.AttrSignature, Data: u2s(sig)},
			{Name: classfile.AttrInnerClasses, Data: u2s(1, this, outer, entryName, uint16(classfile.AccPublic|classfile.AccStatic|classfile.AccFinal))},
		},
	}
}

func TestClassModelFromClassFile(t *testing.T) {
	model, err := ClassModelFromClassFile(nestedGenericClass())
	if err != nil {
		t.Fatalf("ClassModelFromClassFile() error = %v", err)
	}

	t.Run("names", func(t *testing.T) {
		if model.Name != "com.acme.Registry$Entry" {
			t.Errorf("Name = %q, want %q", model.Name, "com.acme.Registry$Entry")
		}
		if model.Package != "com.acme" {
			t.Errorf("Package = %q, want %q", model.Package, "com.acme")
		}
		if model.SimpleName != "Entry" {
			t.Errorf("SimpleName = %q, want %q", model.SimpleName, "Entry")
		}
		if model.OuterClass != "com.acme.Registry" || !model.IsNested() {
			t.Errorf("OuterClass = %q, want com.acme.Registry", model.OuterClass)
		}
	})

	t.Run("inner class flags win", func(t *testing.T) {
		if model.Visibility != VisibilityPublic {
			t.Errorf("Visibility = %q, want public", model.Visibility)
		}
		if !model.IsStatic {
			t.Error("IsStatic = false, want true")
		}
		if model.Kind != ClassKindClass {
			t.Errorf("Kind = %q, want class", model.Kind)
		}
	})

	t.Run("hierarchy", func(t *testing.T) {
		if model.SuperClass != "java.lang.Object" {
			t.Errorf("SuperClass = %q", model.SuperClass)
		}
		if len(model.Interfaces) != 1 || model.Interfaces[0] != "java.lang.Comparable" {
			t.Errorf("Interfaces = %v", model.Interfaces)
		}
	})

	t.Run("type parameters", func(t *testing.T) {
		if len(model.TypeParameters) != 2 {
			t.Fatalf("TypeParameters = %+v, want 2", model.TypeParameters)
		}
		k, v := model.TypeParameters[0], model.TypeParameters[1]
		if k.Name != "K" || len(k.Bounds) != 1 || k.Bounds[0] != "java.lang.Comparable" {
			t.Errorf("K = %+v", k)
		}
		if v.Name != "V" || len(v.Bounds) != 1 || v.Bounds[0] != "java.lang.Object" {
			t.Errorf("V = %+v", v)
		}
	})

	t.Run("members", func(t *testing.T) {
		if len(model.Fields) != 1 || model.Field("key") == nil {
			t.Fatalf("Fields = %+v, want only key", model.Fields)
		}
		if model.Field("key").Type.Name != "java.lang.Comparable" {
			t.Errorf("key type = %v", model.Field("key").Type)
		}
		var names []string
		for _, m := range model.Methods {
			names = append(names, m.Name)
		}
		if len(names) != 3 {
			t.Fatalf("Methods = %v, want <init>, accept, all", names)
		}
		if !model.Methods[0].IsConstructor() {
			t.Errorf("Methods[0] = %q, want constructor", model.Methods[0].Name)
		}
	})

	t.Run("method details", func(t *testing.T) {
		accept := model.MethodsNamed("accept")
		if len(accept) != 1 {
			t.Fatalf("MethodsNamed(accept) = %d", len(accept))
		}
		m := accept[0]
		if !m.ReturnType.IsVoid() {
			t.Errorf("ReturnType = %v, want void", m.ReturnType)
		}
		if len(m.Exceptions) != 1 || m.Exceptions[0] != "java.io.IOException" {
			t.Errorf("Exceptions = %v", m.Exceptions)
		}
		if len(m.TypeParameters) != 1 || m.TypeParameters[0].Name != "T" {
			t.Errorf("TypeParameters = %+v", m.TypeParameters)
		}
		if len(m.Parameters) != 1 || m.Parameters[0].Name != "arg0" {
			t.Errorf("Parameters = %+v", m.Parameters)
		}

		all := model.MethodsNamed("all")[0]
		if !all.IsVarargs {
			t.Error("all IsVarargs = false")
		}
		if got := all.Parameters[0].Type.String(); got != "int[][]" {
			t.Errorf("all parameter = %q, want int[][]", got)
		}
		if got := all.ReturnType.String(); got != "java.lang.String[]" {
			t.Errorf("all return = %q, want java.lang.String[]", got)
		}
	})
}

func TestTypeModel(t *testing.T) {
	tests := []struct {
		tm        TypeModel
		primitive bool
		array     bool
		void      bool
	}{
		{TypeModel{Name: "int"}, true, false, false},
		{TypeModel{Name: "int", ArrayDepth: 1}, false, true, false},
		{TypeModel{Name: "void"}, false, false, true},
		{TypeModel{Name: "java.lang.String"}, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.tm.String(), func(t *testing.T) {
			if got := tt.tm.IsPrimitive(); got != tt.primitive {
				t.Errorf("IsPrimitive() = %v, want %v", got, tt.primitive)
			}
			if got := tt.tm.IsArray(); got != tt.array {
				t.Errorf("IsArray() = %v, want %v", got, tt.array)
			}
			if got := tt.tm.IsVoid(); got != tt.void {
				t.Errorf("IsVoid() = %v, want %v", got, tt.void)
			}
		})
	}
}
