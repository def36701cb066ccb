package format

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jcm/java"
)

// The line format describes one class per block of tab-separated records:
//
//	class	com.acme.Foo	public,final	java.lang.Object	java.io.Serializable	T:java.lang.Number	-
//	field	count	int	private	-
//	method	get	int	-	public	-	java.io.IOException	-
//
// Absent values are written as "-". Lines starting with '#' are comments.

type LineModelEncoder struct {
	w     io.Writer
	model *java.ClassModel
}

func NewLineModelEncoder(w io.Writer) *LineModelEncoder {
	return &LineModelEncoder{w: w}
}

func (e *LineModelEncoder) Encode(model *java.ClassModel) error {
	e.model = model
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineModelEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	m := e.model
	if m == nil {
		return nil, fmt.Errorf("no class model to encode")
	}

	fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		m.Kind,
		m.Name,
		e.classModifiersStr(),
		orDash(m.SuperClass),
		listStr(m.Interfaces),
		typeParamsStr(m.TypeParameters),
		orDash(m.OuterClass),
	)

	for _, f := range m.Fields {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\t%s\n",
			f.Name,
			f.Type.String(),
			f.Visibility,
			e.fieldModifiersStr(f),
		)
	}

	for _, method := range m.Methods {
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			method.Name,
			method.ReturnType.String(),
			e.parametersStr(method.Parameters),
			method.Visibility,
			e.methodModifiersStr(method),
			listStr(method.Exceptions),
			typeParamsStr(method.TypeParameters),
		)
	}

	return []byte(sb.String()), nil
}

func (e *LineModelEncoder) classModifiersStr() string {
	m := e.model
	var mods []string
	mods = append(mods, string(m.Visibility))
	if m.IsStatic {
		mods = append(mods, "static")
	}
	if m.IsFinal {
		mods = append(mods, "final")
	}
	if m.IsAbstract {
		mods = append(mods, "abstract")
	}
	if m.IsDeprecated {
		mods = append(mods, "deprecated")
	}
	return strings.Join(mods, ",")
}

func (e *LineModelEncoder) fieldModifiersStr(f java.FieldModel) string {
	var mods []string
	if f.IsStatic {
		mods = append(mods, "static")
	}
	if f.IsFinal {
		mods = append(mods, "final")
	}
	if f.IsVolatile {
		mods = append(mods, "volatile")
	}
	if f.IsTransient {
		mods = append(mods, "transient")
	}
	if f.IsEnum {
		mods = append(mods, "enum")
	}
	return listStr(mods)
}

func (e *LineModelEncoder) methodModifiersStr(m java.MethodModel) string {
	var mods []string
	if m.IsStatic {
		mods = append(mods, "static")
	}
	if m.IsFinal {
		mods = append(mods, "final")
	}
	if m.IsAbstract {
		mods = append(mods, "abstract")
	}
	if m.IsSynchronized {
		mods = append(mods, "synchronized")
	}
	if m.IsNative {
		mods = append(mods, "native")
	}
	if m.IsVarargs {
		mods = append(mods, "varargs")
	}
	return listStr(mods)
}

func (e *LineModelEncoder) parametersStr(params []java.ParameterModel) string {
	var parts []string
	for _, p := range params {
		parts = append(parts, p.Type.String())
	}
	return listStr(parts)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func listStr(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ",")
}

func typeParamsStr(params []java.TypeParameterModel) string {
	var parts []string
	for _, tp := range params {
		if len(tp.Bounds) == 0 {
			parts = append(parts, tp.Name)
			continue
		}
		parts = append(parts, tp.Name+":"+strings.Join(tp.Bounds, "&"))
	}
	return listStr(parts)
}

// LineModelDecoder reads class models written by LineModelEncoder.
type LineModelDecoder struct {
	s       *bufio.Scanner
	line    int
	pending *java.ClassModel
}

func NewLineModelDecoder(r io.Reader) *LineModelDecoder {
	return &LineModelDecoder{s: bufio.NewScanner(r)}
}

// Decode returns the next class, or io.EOF when the input is exhausted.
func (d *LineModelDecoder) Decode() (*java.ClassModel, error) {
	current := d.pending
	d.pending = nil
	for d.s.Scan() {
		d.line++
		text := d.s.Text()
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cols := strings.Split(text, "\t")
		switch cols[0] {
		case "field":
			if current == nil {
				return nil, d.errorf("field before class header")
			}
			f, err := decodeField(cols)
			if err != nil {
				return nil, d.errorf("%v", err)
			}
			current.Fields = append(current.Fields, f)
		case "method":
			if current == nil {
				return nil, d.errorf("method before class header")
			}
			m, err := decodeMethod(cols)
			if err != nil {
				return nil, d.errorf("%v", err)
			}
			current.Methods = append(current.Methods, m)
		default:
			header, err := decodeHeader(cols)
			if err != nil {
				return nil, d.errorf("%v", err)
			}
			if current != nil {
				d.pending = header
				return current, nil
			}
			current = header
		}
	}
	if err := d.s.Err(); err != nil {
		return nil, err
	}
	if current == nil {
		return nil, io.EOF
	}
	return current, nil
}

func (d *LineModelDecoder) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", d.line, fmt.Sprintf(format, args...))
}

// DecodeAll reads every class in r.
func DecodeAll(r io.Reader) ([]*java.ClassModel, error) {
	d := NewLineModelDecoder(r)
	var out []*java.ClassModel
	for {
		m, err := d.Decode()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
}

func decodeHeader(cols []string) (*java.ClassModel, error) {
	if len(cols) < 3 {
		return nil, fmt.Errorf("class header needs at least 3 columns, got %d", len(cols))
	}
	kind := java.ClassKind(cols[0])
	switch kind {
	case java.ClassKindClass, java.ClassKindInterface, java.ClassKindEnum, java.ClassKindAnnotation:
	default:
		return nil, fmt.Errorf("unknown record kind %q", cols[0])
	}
	m := &java.ClassModel{Name: cols[1], Kind: kind}
	if i := strings.LastIndex(m.Name, "."); i >= 0 {
		m.Package, m.SimpleName = m.Name[:i], m.Name[i+1:]
	} else {
		m.SimpleName = m.Name
	}
	m.Visibility = java.VisibilityPackage
	for _, mod := range splitList(cols[2]) {
		switch mod {
		case "public", "protected", "private", "package":
			m.Visibility = java.Visibility(mod)
		case "static":
			m.IsStatic = true
		case "final":
			m.IsFinal = true
		case "abstract":
			m.IsAbstract = true
		case "deprecated":
			m.IsDeprecated = true
		default:
			return nil, fmt.Errorf("unknown class modifier %q", mod)
		}
	}
	if len(cols) > 3 && cols[3] != "-" {
		m.SuperClass = cols[3]
	}
	if len(cols) > 4 {
		m.Interfaces = splitList(cols[4])
	}
	if len(cols) > 5 {
		m.TypeParameters = decodeTypeParams(cols[5])
	}
	if len(cols) > 6 && cols[6] != "-" {
		m.OuterClass = cols[6]
		if strings.HasPrefix(m.Name, m.OuterClass+"$") {
			m.SimpleName = m.Name[len(m.OuterClass)+1:]
		}
	}
	return m, nil
}

func decodeField(cols []string) (java.FieldModel, error) {
	if len(cols) != 5 {
		return java.FieldModel{}, fmt.Errorf("field record needs 5 columns, got %d", len(cols))
	}
	f := java.FieldModel{
		Name:       cols[1],
		Type:       decodeType(cols[2]),
		Visibility: java.Visibility(cols[3]),
	}
	for _, mod := range splitList(cols[4]) {
		switch mod {
		case "static":
			f.IsStatic = true
		case "final":
			f.IsFinal = true
		case "volatile":
			f.IsVolatile = true
		case "transient":
			f.IsTransient = true
		case "enum":
			f.IsEnum = true
		default:
			return java.FieldModel{}, fmt.Errorf("unknown field modifier %q", mod)
		}
	}
	return f, nil
}

func decodeMethod(cols []string) (java.MethodModel, error) {
	if len(cols) < 6 {
		return java.MethodModel{}, fmt.Errorf("method record needs at least 6 columns, got %d", len(cols))
	}
	m := java.MethodModel{
		Name:       cols[1],
		ReturnType: decodeType(cols[2]),
		Visibility: java.Visibility(cols[4]),
	}
	for i, p := range splitList(cols[3]) {
		m.Parameters = append(m.Parameters, java.ParameterModel{
			Name: fmt.Sprintf("arg%d", i),
			Type: decodeType(p),
		})
	}
	for _, mod := range splitList(cols[5]) {
		switch mod {
		case "static":
			m.IsStatic = true
		case "final":
			m.IsFinal = true
		case "abstract":
			m.IsAbstract = true
		case "synchronized":
			m.IsSynchronized = true
		case "native":
			m.IsNative = true
		case "varargs":
			m.IsVarargs = true
		default:
			return java.MethodModel{}, fmt.Errorf("unknown method modifier %q", mod)
		}
	}
	if len(cols) > 6 {
		m.Exceptions = splitList(cols[6])
	}
	if len(cols) > 7 {
		m.TypeParameters = decodeTypeParams(cols[7])
	}
	return m, nil
}

func decodeType(s string) java.TypeModel {
	t := java.TypeModel{Name: s}
	for strings.HasSuffix(t.Name, "[]") {
		t.Name = strings.TrimSuffix(t.Name, "[]")
		t.ArrayDepth++
	}
	return t
}

func decodeTypeParams(s string) []java.TypeParameterModel {
	var out []java.TypeParameterModel
	for _, part := range splitList(s) {
		name, bounds, found := strings.Cut(part, ":")
		tp := java.TypeParameterModel{Name: name}
		if found {
			tp.Bounds = strings.Split(bounds, "&")
		}
		out = append(out, tp)
	}
	return out
}

func splitList(s string) []string {
	if s == "" || s == "-" {
		return nil
	}
	return strings.Split(s, ",")
}
