// Package classfile reads the parts of JVM class files that describe a type
// from the outside: its name, hierarchy, members and generic signature.
// Method bodies are skipped.
package classfile

import (
	"encoding/binary"
)

type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	Pool         ConstantPool
	AccessFlags  AccessFlags
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []Member
	Methods      []Member
	Attributes   []Attribute
}

// Member is a field or a method with its names already resolved against
// the constant pool.
type Member struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string
	Attributes  []Attribute
}

type Attribute struct {
	Name string
	Data []byte
}

// InnerClass is one entry of the InnerClasses attribute.
type InnerClass struct {
	Inner       string
	Outer       string
	SimpleName  string
	AccessFlags AccessFlags
}

func (cf *ClassFile) ClassName() string {
	return cf.Pool.ClassName(cf.ThisClass)
}

func (cf *ClassFile) SuperClassName() string {
	if cf.SuperClass == 0 {
		return ""
	}
	return cf.Pool.ClassName(cf.SuperClass)
}

func (cf *ClassFile) InterfaceNames() []string {
	names := make([]string, len(cf.Interfaces))
	for i, idx := range cf.Interfaces {
		names[i] = cf.Pool.ClassName(idx)
	}
	return names
}

func (cf *ClassFile) IsInterface() bool {
	return cf.AccessFlags.IsInterface() && !cf.AccessFlags.IsAnnotation()
}

func (cf *ClassFile) IsAnnotation() bool { return cf.AccessFlags.IsAnnotation() }
func (cf *ClassFile) IsEnum() bool       { return cf.AccessFlags.IsEnum() }
func (cf *ClassFile) IsModule() bool     { return cf.AccessFlags.IsModule() }

func (cf *ClassFile) Attribute(name string) *Attribute {
	return findAttribute(cf.Attributes, name)
}

func (cf *ClassFile) Field(name string) *Member {
	for i := range cf.Fields {
		if cf.Fields[i].Name == name {
			return &cf.Fields[i]
		}
	}
	return nil
}

func (cf *ClassFile) MethodsNamed(name string) []*Member {
	var methods []*Member
	for i := range cf.Methods {
		if cf.Methods[i].Name == name {
			methods = append(methods, &cf.Methods[i])
		}
	}
	return methods
}

// Signature returns the generic class signature, or "" for non-generic
// classes compiled without one.
func (cf *ClassFile) Signature() string {
	return cf.utf8Attribute(cf.Attributes, AttrSignature)
}

func (cf *ClassFile) SourceFile() string {
	return cf.utf8Attribute(cf.Attributes, AttrSourceFile)
}

func (cf *ClassFile) IsDeprecated() bool {
	return cf.Attribute(AttrDeprecated) != nil
}

func (cf *ClassFile) InnerClasses() []InnerClass {
	attr := cf.Attribute(AttrInnerClasses)
	if attr == nil || len(attr.Data) < 2 {
		return nil
	}
	count := int(binary.BigEndian.Uint16(attr.Data))
	data := attr.Data[2:]
	var inners []InnerClass
	for i := 0; i < count && len(data) >= 8; i++ {
		inners = append(inners, InnerClass{
			Inner:       cf.Pool.ClassName(binary.BigEndian.Uint16(data[0:])),
			Outer:       cf.Pool.ClassName(binary.BigEndian.Uint16(data[2:])),
			SimpleName:  cf.Pool.Utf8(binary.BigEndian.Uint16(data[4:])),
			AccessFlags: AccessFlags(binary.BigEndian.Uint16(data[6:])),
		})
		data = data[8:]
	}
	return inners
}

// MemberSignature returns the generic signature of a field or method.
func (cf *ClassFile) MemberSignature(m *Member) string {
	return cf.utf8Attribute(m.Attributes, AttrSignature)
}

// Exceptions returns the internal names of the checked exceptions a method
// declares.
func (cf *ClassFile) Exceptions(m *Member) []string {
	attr := findAttribute(m.Attributes, AttrExceptions)
	if attr == nil || len(attr.Data) < 2 {
		return nil
	}
	count := int(binary.BigEndian.Uint16(attr.Data))
	var names []string
	for i := 0; i < count && 2+2*i+2 <= len(attr.Data); i++ {
		names = append(names, cf.Pool.ClassName(binary.BigEndian.Uint16(attr.Data[2+2*i:])))
	}
	return names
}

// ConstantValue returns the compile-time constant of a static field, or nil.
func (cf *ClassFile) ConstantValue(m *Member) any {
	attr := findAttribute(m.Attributes, AttrConstantValue)
	if attr == nil || len(attr.Data) < 2 {
		return nil
	}
	return cf.Pool.Value(binary.BigEndian.Uint16(attr.Data))
}

func (cf *ClassFile) utf8Attribute(attrs []Attribute, name string) string {
	attr := findAttribute(attrs, name)
	if attr == nil || len(attr.Data) < 2 {
		return ""
	}
	return cf.Pool.Utf8(binary.BigEndian.Uint16(attr.Data))
}

func findAttribute(attrs []Attribute, name string) *Attribute {
	for i := range attrs {
		if attrs[i].Name == name {
			return &attrs[i]
		}
	}
	return nil
}
