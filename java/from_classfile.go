package java

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dhamidi/jcm/classfile"
)

func ClassModelFromFile(path string) (*ClassModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ClassModelFromReader(f)
}

func ClassModelFromReader(r io.Reader) (*ClassModel, error) {
	cf, err := classfile.Parse(r)
	if err != nil {
		return nil, err
	}
	return ClassModelFromClassFile(cf)
}

// ClassModelFromClassFile converts a parsed class file. Synthetic and bridge
// members and the static initializer are left out.
func ClassModelFromClassFile(cf *classfile.ClassFile) (*ClassModel, error) {
	className := classfile.InternalToSourceName(cf.ClassName())
	if className == "" {
		return nil, fmt.Errorf("class file has no class name")
	}
	pkg, simpleName := splitClassName(className)

	model := &ClassModel{
		Name:         className,
		SimpleName:   simpleName,
		Package:      pkg,
		Visibility:   visibilityFromAccessFlags(cf.AccessFlags),
		Kind:         classKindFromClassFile(cf),
		IsFinal:      cf.AccessFlags.IsFinal(),
		IsAbstract:   cf.AccessFlags.IsAbstract(),
		IsDeprecated: cf.IsDeprecated(),
	}

	if cf.SuperClass != 0 {
		model.SuperClass = classfile.InternalToSourceName(cf.SuperClassName())
	}
	for _, iface := range cf.InterfaceNames() {
		model.Interfaces = append(model.Interfaces, classfile.InternalToSourceName(iface))
	}

	if sig := cf.Signature(); sig != "" {
		cs, err := classfile.ParseClassSignature(sig)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", className, err)
		}
		model.TypeParameters = typeParameterModels(cs.TypeParams)
	}

	for _, ic := range cf.InnerClasses() {
		inner := InnerClassModel{
			InnerClass: classfile.InternalToSourceName(ic.Inner),
			OuterClass: classfile.InternalToSourceName(ic.Outer),
			InnerName:  ic.SimpleName,
			Visibility: visibilityFromAccessFlags(ic.AccessFlags),
			IsStatic:   ic.AccessFlags.IsStatic(),
		}
		model.InnerClasses = append(model.InnerClasses, inner)
		// The entry for this class itself carries the source-level flags,
		// which the class header loses.
		if inner.InnerClass == className && inner.OuterClass != "" {
			model.OuterClass = inner.OuterClass
			model.SimpleName = inner.InnerName
			model.Visibility = inner.Visibility
			model.IsStatic = inner.IsStatic
		}
	}

	for i := range cf.Fields {
		field := &cf.Fields[i]
		if field.AccessFlags.IsSynthetic() {
			continue
		}
		model.Fields = append(model.Fields, fieldModelFromMember(cf, field))
	}

	for i := range cf.Methods {
		method := &cf.Methods[i]
		if method.AccessFlags.IsSynthetic() || method.AccessFlags.Has(classfile.AccBridge) {
			continue
		}
		if method.Name == "<clinit>" {
			continue
		}
		mm, err := methodModelFromMember(cf, method)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", className, err)
		}
		model.Methods = append(model.Methods, mm)
	}

	return model, nil
}

func splitClassName(fullName string) (pkg, simpleName string) {
	lastDot := strings.LastIndex(fullName, ".")
	if lastDot == -1 {
		return "", fullName
	}
	return fullName[:lastDot], fullName[lastDot+1:]
}

func visibilityFromAccessFlags(flags classfile.AccessFlags) Visibility {
	if flags.IsPublic() {
		return VisibilityPublic
	}
	if flags.IsProtected() {
		return VisibilityProtected
	}
	if flags.IsPrivate() {
		return VisibilityPrivate
	}
	return VisibilityPackage
}

func classKindFromClassFile(cf *classfile.ClassFile) ClassKind {
	if cf.IsAnnotation() {
		return ClassKindAnnotation
	}
	if cf.IsEnum() {
		return ClassKindEnum
	}
	if cf.IsInterface() {
		return ClassKindInterface
	}
	return ClassKindClass
}

func fieldModelFromMember(cf *classfile.ClassFile, f *classfile.Member) FieldModel {
	return FieldModel{
		Name:          f.Name,
		Type:          typeModelFromFieldType(classfile.ParseFieldDescriptor(f.Descriptor)),
		Visibility:    visibilityFromAccessFlags(f.AccessFlags),
		IsStatic:      f.AccessFlags.IsStatic(),
		IsFinal:       f.AccessFlags.IsFinal(),
		IsVolatile:    f.AccessFlags.Has(classfile.AccVolatile),
		IsTransient:   f.AccessFlags.Has(classfile.AccTransient),
		IsEnum:        f.AccessFlags.IsEnum(),
		ConstantValue: cf.ConstantValue(f),
	}
}

func methodModelFromMember(cf *classfile.ClassFile, m *classfile.Member) (MethodModel, error) {
	desc := classfile.ParseMethodDescriptor(m.Descriptor)
	if desc == nil {
		return MethodModel{}, fmt.Errorf("method %s: malformed descriptor %q", m.Name, m.Descriptor)
	}
	model := MethodModel{
		Name:           m.Name,
		ReturnType:     typeModelFromFieldType(desc.ReturnType),
		Visibility:     visibilityFromAccessFlags(m.AccessFlags),
		IsStatic:       m.AccessFlags.IsStatic(),
		IsFinal:        m.AccessFlags.IsFinal(),
		IsAbstract:     m.AccessFlags.IsAbstract(),
		IsSynchronized: m.AccessFlags.Has(classfile.AccSynchronized),
		IsNative:       m.AccessFlags.Has(classfile.AccNative),
		IsVarargs:      m.AccessFlags.Has(classfile.AccVarargs),
	}
	for i := range desc.Parameters {
		model.Parameters = append(model.Parameters, ParameterModel{
			Name: fmt.Sprintf("arg%d", i),
			Type: typeModelFromFieldType(&desc.Parameters[i]),
		})
	}
	for _, exc := range cf.Exceptions(m) {
		model.Exceptions = append(model.Exceptions, classfile.InternalToSourceName(exc))
	}
	if sig := cf.MemberSignature(m); sig != "" {
		params, err := classfile.ParseMethodTypeParams(sig)
		if err != nil {
			return MethodModel{}, fmt.Errorf("method %s: %w", m.Name, err)
		}
		model.TypeParameters = typeParameterModels(params)
	}
	return model, nil
}

func typeModelFromFieldType(ft *classfile.FieldType) TypeModel {
	if ft == nil {
		return TypeModel{Name: "void"}
	}
	model := TypeModel{ArrayDepth: ft.ArrayDepth}
	if ft.BaseType != "" {
		model.Name = ft.BaseType
	} else {
		model.Name = classfile.InternalToSourceName(ft.ClassName)
	}
	return model
}

func typeParameterModels(params []classfile.TypeParam) []TypeParameterModel {
	var out []TypeParameterModel
	for _, tp := range params {
		m := TypeParameterModel{Name: tp.Name}
		for _, b := range tp.Bounds {
			m.Bounds = append(m.Bounds, classfile.InternalToSourceName(b))
		}
		out = append(out, m)
	}
	return out
}
