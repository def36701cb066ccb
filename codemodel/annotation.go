package codemodel

// AnnotationValue is anything that can be an annotation member value: an
// expression, a nested *AnnotationUse or an *AnnotationArrayMember.
type AnnotationValue interface {
	generate(f *Formatter)
}

type annotationMember struct {
	name  string
	value AnnotationValue
}

// AnnotationUse is one "@Type(...)" on a declaration.
type AnnotationUse struct {
	class   Class
	members []annotationMember
}

func newAnnotationUse(c Class) *AnnotationUse { return &AnnotationUse{class: c} }

func (a *AnnotationUse) AnnotationClass() Class { return a.class }

// Param sets a member. Setting a member again replaces its value in place.
func (a *AnnotationUse) Param(name string, v AnnotationValue) *AnnotationUse {
	checkIdentifier("annotation member", name)
	for i := range a.members {
		if a.members[i].name == name {
			a.members[i].value = v
			return a
		}
	}
	a.members = append(a.members, annotationMember{name: name, value: v})
	return a
}

func (a *AnnotationUse) ParamString(name, v string) *AnnotationUse {
	return a.Param(name, LitString(v))
}

func (a *AnnotationUse) ParamInt(name string, v int) *AnnotationUse {
	return a.Param(name, Lit(v))
}

func (a *AnnotationUse) ParamBool(name string, v bool) *AnnotationUse {
	return a.Param(name, LitBool(v))
}

// ParamClass sets a class literal member: name = T.class.
func (a *AnnotationUse) ParamClass(name string, t Type) *AnnotationUse {
	return a.Param(name, DotClass(t))
}

// ParamEnum sets an enum constant member: name = E.CONSTANT.
func (a *AnnotationUse) ParamEnum(name string, enum Class, constant string) *AnnotationUse {
	return a.Param(name, StaticRef(enum, constant))
}

// ParamAnnotation sets a nested annotation member and returns it.
func (a *AnnotationUse) ParamAnnotation(name string, c Class) *AnnotationUse {
	nested := newAnnotationUse(c)
	a.Param(name, nested)
	return nested
}

// ParamArray sets an array-valued member and returns it for filling.
func (a *AnnotationUse) ParamArray(name string) *AnnotationArrayMember {
	arr := &AnnotationArrayMember{}
	a.Param(name, arr)
	return arr
}

// generate prints "@Foo", "@Foo(v)" when the only member is value, or
// "@Foo(a = x, b = y)".
func (a *AnnotationUse) generate(f *Formatter) {
	f.Print("@")
	f.Type(a.class)
	if len(a.members) == 0 {
		return
	}
	f.Print("(")
	if len(a.members) == 1 && a.members[0].name == "value" {
		a.members[0].value.generate(f)
	} else {
		for i, m := range a.members {
			if i > 0 {
				f.Print(", ")
			}
			f.Print(m.name + " = ")
			m.value.generate(f)
		}
	}
	f.Print(")")
}

// AnnotationArrayMember is an array member value "{a, b}".
type AnnotationArrayMember struct {
	values []AnnotationValue
}

func (arr *AnnotationArrayMember) Add(v AnnotationValue) *AnnotationArrayMember {
	arr.values = append(arr.values, v)
	return arr
}

func (arr *AnnotationArrayMember) AddString(v string) *AnnotationArrayMember {
	return arr.Add(LitString(v))
}

func (arr *AnnotationArrayMember) AddClass(t Type) *AnnotationArrayMember {
	return arr.Add(DotClass(t))
}

// AddAnnotation appends a nested annotation and returns it.
func (arr *AnnotationArrayMember) AddAnnotation(c Class) *AnnotationUse {
	a := newAnnotationUse(c)
	arr.values = append(arr.values, a)
	return a
}

func (arr *AnnotationArrayMember) Len() int { return len(arr.values) }

func (arr *AnnotationArrayMember) generate(f *Formatter) {
	f.Print("{")
	for i, v := range arr.values {
		if i > 0 {
			f.Print(", ")
		}
		v.generate(f)
	}
	f.Print("}")
}
