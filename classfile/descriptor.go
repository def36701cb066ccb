package classfile

import "strings"

// FieldType is a decoded field descriptor. Exactly one of BaseType and
// ClassName is set; ClassName is in internal form.
type FieldType struct {
	BaseType   string
	ClassName  string
	ArrayDepth int
}

func (ft *FieldType) String() string {
	var sb strings.Builder
	if ft.BaseType != "" {
		sb.WriteString(ft.BaseType)
	} else {
		sb.WriteString(InternalToSourceName(ft.ClassName))
	}
	for i := 0; i < ft.ArrayDepth; i++ {
		sb.WriteString("[]")
	}
	return sb.String()
}

func (ft *FieldType) IsArray() bool     { return ft.ArrayDepth > 0 }
func (ft *FieldType) IsPrimitive() bool { return ft.BaseType != "" && ft.ArrayDepth == 0 }

type MethodDescriptor struct {
	Parameters []FieldType
	// ReturnType is nil for void methods.
	ReturnType *FieldType
}

func ParseFieldDescriptor(desc string) *FieldType {
	ft, n := parseFieldType(desc, 0)
	if n != len(desc) {
		return nil
	}
	return ft
}

func ParseMethodDescriptor(desc string) *MethodDescriptor {
	if !strings.HasPrefix(desc, "(") {
		return nil
	}
	md := &MethodDescriptor{}
	i := 1
	for i < len(desc) && desc[i] != ')' {
		ft, n := parseFieldType(desc, i)
		if ft == nil {
			return nil
		}
		md.Parameters = append(md.Parameters, *ft)
		i += n
	}
	if i >= len(desc) {
		return nil
	}
	i++
	switch {
	case i >= len(desc):
		return nil
	case desc[i:] == "V":
	default:
		ft, n := parseFieldType(desc, i)
		if ft == nil || i+n != len(desc) {
			return nil
		}
		md.ReturnType = ft
	}
	return md
}

var baseTypes = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
}

func parseFieldType(desc string, start int) (*FieldType, int) {
	ft := &FieldType{}
	i := start
	for i < len(desc) && desc[i] == '[' {
		ft.ArrayDepth++
		i++
	}
	if i >= len(desc) {
		return nil, 0
	}
	if base, ok := baseTypes[desc[i]]; ok {
		ft.BaseType = base
		return ft, i - start + 1
	}
	if desc[i] != 'L' {
		return nil, 0
	}
	end := strings.IndexByte(desc[i:], ';')
	if end < 2 {
		return nil, 0
	}
	ft.ClassName = desc[i+1 : i+end]
	return ft, i - start + end + 1
}

// InternalToSourceName turns "java/util/Map$Entry" into "java.util.Map$Entry".
// Nested class separators are kept; see BinaryToCanonicalName.
func InternalToSourceName(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}

func SourceToInternalName(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

// BinaryToCanonicalName turns "java.util.Map$Entry" into "java.util.Map.Entry".
func BinaryToCanonicalName(name string) string {
	return strings.ReplaceAll(name, "$", ".")
}
