package classfile

import (
	"reflect"
	"testing"
)

func TestParseFieldDescriptor(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"I", "int"},
		{"Z", "boolean"},
		{"Ljava/lang/String;", "java.lang.String"},
		{"[[J", "long[][]"},
		{"[Ljava/util/Map$Entry;", "java.util.Map$Entry[]"},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			ft := ParseFieldDescriptor(tt.desc)
			if ft == nil {
				t.Fatalf("ParseFieldDescriptor(%q) = nil", tt.desc)
			}
			if got := ft.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}

	for _, bad := range []string{"", "X", "L;", "Ljava/lang/String", "II"} {
		if ft := ParseFieldDescriptor(bad); ft != nil {
			t.Errorf("ParseFieldDescriptor(%q) = %v, want nil", bad, ft)
		}
	}
}

func TestParseMethodDescriptor(t *testing.T) {
	md := ParseMethodDescriptor("(I[Ljava/lang/String;J)Ljava/lang/Object;")
	if md == nil {
		t.Fatal("ParseMethodDescriptor() = nil")
	}
	var params []string
	for _, p := range md.Parameters {
		params = append(params, p.String())
	}
	want := []string{"int", "java.lang.String[]", "long"}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("Parameters = %v, want %v", params, want)
	}
	if md.ReturnType == nil || md.ReturnType.String() != "java.lang.Object" {
		t.Errorf("ReturnType = %v, want java.lang.Object", md.ReturnType)
	}

	void := ParseMethodDescriptor("()V")
	if void == nil || void.ReturnType != nil || len(void.Parameters) != 0 {
		t.Errorf("ParseMethodDescriptor(()V) = %+v", void)
	}

	for _, bad := range []string{"V", "(I", "(I)", "(I)VV"} {
		if md := ParseMethodDescriptor(bad); md != nil {
			t.Errorf("ParseMethodDescriptor(%q) = %+v, want nil", bad, md)
		}
	}
}

func TestNameConversions(t *testing.T) {
	if got := InternalToSourceName("java/util/Map$Entry"); got != "java.util.Map$Entry" {
		t.Errorf("InternalToSourceName() = %q", got)
	}
	if got := SourceToInternalName("java.util.List"); got != "java/util/List" {
		t.Errorf("SourceToInternalName() = %q", got)
	}
	if got := BinaryToCanonicalName("java.util.Map$Entry"); got != "java.util.Map.Entry" {
		t.Errorf("BinaryToCanonicalName() = %q", got)
	}
}

func TestParseClassSignature(t *testing.T) {
	t.Run("generic map", func(t *testing.T) {
		cs, err := ParseClassSignature("<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/Map<TK;TV;>;")
		if err != nil {
			t.Fatalf("ParseClassSignature() error = %v", err)
		}
		want := &ClassSignature{
			TypeParams: []TypeParam{
				{Name: "K", Bounds: []string{"java/lang/Object"}},
				{Name: "V", Bounds: []string{"java/lang/Object"}},
			},
			Super:      "java/lang/Object",
			Interfaces: []string{"java/util/Map"},
		}
		if !reflect.DeepEqual(cs, want) {
			t.Errorf("ParseClassSignature() = %+v, want %+v", cs, want)
		}
	})

	t.Run("interface bound", func(t *testing.T) {
		cs, err := ParseClassSignature("<T::Ljava/lang/Comparable<-TT;>;>Ljava/lang/Object;")
		if err != nil {
			t.Fatalf("ParseClassSignature() error = %v", err)
		}
		if len(cs.TypeParams) != 1 {
			t.Fatalf("TypeParams = %v, want one", cs.TypeParams)
		}
		tp := cs.TypeParams[0]
		if tp.Name != "T" || !reflect.DeepEqual(tp.Bounds, []string{"java/lang/Comparable"}) {
			t.Errorf("TypeParams[0] = %+v", tp)
		}
	})

	t.Run("inner class supertype", func(t *testing.T) {
		cs, err := ParseClassSignature("Lcom/acme/Outer<Ljava/lang/String;>.Inner<[I>;")
		if err != nil {
			t.Fatalf("ParseClassSignature() error = %v", err)
		}
		if cs.Super != "com/acme/Outer$Inner" {
			t.Errorf("Super = %q, want %q", cs.Super, "com/acme/Outer$Inner")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		for _, sig := range []string{"<T", "Ljava/lang/Object", "<T:Q;>Ljava/lang/Object;"} {
			if _, err := ParseClassSignature(sig); err == nil {
				t.Errorf("ParseClassSignature(%q) error = nil", sig)
			}
		}
	})
}

func TestParseMethodTypeParams(t *testing.T) {
	params, err := ParseMethodTypeParams("<E:Ljava/lang/Number;>(TE;)V")
	if err != nil {
		t.Fatalf("ParseMethodTypeParams() error = %v", err)
	}
	want := []TypeParam{{Name: "E", Bounds: []string{"java/lang/Number"}}}
	if !reflect.DeepEqual(params, want) {
		t.Errorf("ParseMethodTypeParams() = %+v, want %+v", params, want)
	}

	none, err := ParseMethodTypeParams("(I)V")
	if err != nil || none != nil {
		t.Errorf("ParseMethodTypeParams(no params) = %v, %v", none, err)
	}
}
