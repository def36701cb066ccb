// Package java describes compiled Java types as plain Go values. A
// ClassModel is what the code model needs to know about a class it did not
// define itself: its name, kind, hierarchy, generic parameters and members.
package java

type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
	VisibilityPackage   Visibility = "package"
)

type ClassKind string

const (
	ClassKindClass      ClassKind = "class"
	ClassKindInterface  ClassKind = "interface"
	ClassKindEnum       ClassKind = "enum"
	ClassKindAnnotation ClassKind = "annotation"
)

// ClassModel describes one class. Name is the binary name in dotted form,
// so nested classes keep their '$' ("java.util.Map$Entry").
type ClassModel struct {
	Name           string
	SimpleName     string
	Package        string
	SuperClass     string
	Interfaces     []string
	Visibility     Visibility
	Kind           ClassKind
	IsFinal        bool
	IsAbstract     bool
	IsStatic       bool
	IsDeprecated   bool
	OuterClass     string
	TypeParameters []TypeParameterModel
	InnerClasses   []InnerClassModel
	Fields         []FieldModel
	Methods        []MethodModel
}

// IsNested reports whether the class is declared inside another class.
func (c *ClassModel) IsNested() bool { return c.OuterClass != "" }

func (c *ClassModel) IsInterface() bool {
	return c.Kind == ClassKindInterface || c.Kind == ClassKindAnnotation
}

func (c *ClassModel) Field(name string) *FieldModel {
	for i := range c.Fields {
		if c.Fields[i].Name == name {
			return &c.Fields[i]
		}
	}
	return nil
}

func (c *ClassModel) MethodsNamed(name string) []MethodModel {
	var out []MethodModel
	for _, m := range c.Methods {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

type FieldModel struct {
	Name          string
	Type          TypeModel
	Visibility    Visibility
	IsStatic      bool
	IsFinal       bool
	IsVolatile    bool
	IsTransient   bool
	IsEnum        bool
	ConstantValue any
}

type MethodModel struct {
	Name           string
	ReturnType     TypeModel
	Parameters     []ParameterModel
	Visibility     Visibility
	IsStatic       bool
	IsFinal        bool
	IsAbstract     bool
	IsSynchronized bool
	IsNative       bool
	IsVarargs      bool
	Exceptions     []string
	TypeParameters []TypeParameterModel
}

// IsConstructor reports whether the method is an instance initializer.
func (m *MethodModel) IsConstructor() bool { return m.Name == "<init>" }

type ParameterModel struct {
	Name string
	Type TypeModel
}

// TypeModel is an erased type reference: a primitive keyword, "void", or a
// dotted binary class name, plus array dimensions.
type TypeModel struct {
	Name       string
	ArrayDepth int
}

func (t TypeModel) IsPrimitive() bool {
	if t.ArrayDepth > 0 {
		return false
	}
	switch t.Name {
	case "boolean", "byte", "char", "short", "int", "long", "float", "double":
		return true
	}
	return false
}

func (t TypeModel) IsArray() bool {
	return t.ArrayDepth > 0
}

func (t TypeModel) IsVoid() bool {
	return t.Name == "void" && t.ArrayDepth == 0
}

func (t TypeModel) String() string {
	s := t.Name
	for i := 0; i < t.ArrayDepth; i++ {
		s += "[]"
	}
	return s
}

// TypeParameterModel is a formal type parameter. Bounds are erased class
// names; an unbounded parameter has none.
type TypeParameterModel struct {
	Name   string
	Bounds []string
}

type InnerClassModel struct {
	InnerClass string
	OuterClass string
	InnerName  string
	Visibility Visibility
	IsStatic   bool
}
