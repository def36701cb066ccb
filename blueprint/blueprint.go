// Package blueprint describes Java types declaratively and generates them
// into a codemodel.Model. A blueprint is a YAML, JSON or TOML document:
//
//	package: com.acme.shapes
//	doc: Shapes.
//	types:
//	  - name: Point
//	    fields:
//	      - {name: x, type: int, final: true}
//	      - {name: y, type: int, final: true}
//	    accessors: true
//	    value: true
//	    builder: true
//	resources:
//	  - name: shapes.properties
//	    properties:
//	      - {key: origin, value: "0,0"}
package blueprint

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jcm/codemodel"
)

var log = commonlog.GetLogger("jcm.blueprint")

type Blueprint struct {
	Package   string     `mapstructure:"package" validate:"omitempty,java_package"`
	Doc       string     `mapstructure:"doc"`
	Types     []Type     `mapstructure:"types" validate:"dive"`
	Resources []Resource `mapstructure:"resources" validate:"dive"`

	// Source is the file the blueprint was read from, if any.
	Source string `mapstructure:"-"`
}

// Type is one top-level class, interface, enum or annotation type.
type Type struct {
	Name        string   `mapstructure:"name" validate:"required,java_ident"`
	Kind        string   `mapstructure:"kind" validate:"omitempty,oneof=class interface enum annotation @interface"`
	Doc         string   `mapstructure:"doc"`
	Abstract    bool     `mapstructure:"abstract"`
	Final       bool     `mapstructure:"final"`
	Extends     string   `mapstructure:"extends"`
	Implements  []string `mapstructure:"implements"`
	TypeParams  []string `mapstructure:"type_params" validate:"dive,java_ident"`
	Annotations []string `mapstructure:"annotations" validate:"dive,java_name"`

	Fields    []Field    `mapstructure:"fields" validate:"dive"`
	Constants []Constant `mapstructure:"constants" validate:"dive"`
	Methods   []Method   `mapstructure:"methods" validate:"dive"`
	Members   []Member   `mapstructure:"members" validate:"dive"`

	// Accessors adds a getter for every instance field and a setter for
	// every non-final one.
	Accessors bool `mapstructure:"accessors"`
	// Value adds equals, hashCode and toString over the instance fields.
	Value bool `mapstructure:"value"`
	// Builder adds a static nested Builder class.
	Builder bool `mapstructure:"builder"`
}

type Field struct {
	Name   string `mapstructure:"name" validate:"required,java_ident"`
	Type   string `mapstructure:"type" validate:"required"`
	Doc    string `mapstructure:"doc"`
	Init   string `mapstructure:"init"`
	Final  bool   `mapstructure:"final"`
	Static bool   `mapstructure:"static"`
}

type Constant struct {
	Name string   `mapstructure:"name" validate:"required,java_ident"`
	Args []string `mapstructure:"args"`
	Doc  string   `mapstructure:"doc"`
}

// Method is an abstract interface method, or a default method when Body
// is set.
type Method struct {
	Name    string   `mapstructure:"name" validate:"required,java_ident"`
	Returns string   `mapstructure:"returns"`
	Params  []Param  `mapstructure:"params" validate:"dive"`
	Throws  []string `mapstructure:"throws" validate:"dive,java_name"`
	Doc     string   `mapstructure:"doc"`
	Body    string   `mapstructure:"body"`
}

type Param struct {
	Name string `mapstructure:"name" validate:"required,java_ident"`
	Type string `mapstructure:"type" validate:"required"`
}

// Member is an annotation type element.
type Member struct {
	Name    string `mapstructure:"name" validate:"required,java_ident"`
	Type    string `mapstructure:"type" validate:"required"`
	Default string `mapstructure:"default"`
}

// Resource is a file placed next to the package's classes. Exactly one of
// Text, Properties or Copy must be set.
type Resource struct {
	Name       string     `mapstructure:"name" validate:"required,excludesall=/\\"`
	Text       string     `mapstructure:"text"`
	Properties []Property `mapstructure:"properties" validate:"dive"`
	Copy       string     `mapstructure:"copy"`
}

type Property struct {
	Key   string `mapstructure:"key" validate:"required"`
	Value string `mapstructure:"value"`
}

// InputName identifies the blueprint in generator logs and errors.
func (bp *Blueprint) InputName() string {
	if bp.Source != "" {
		return bp.Source
	}
	if bp.Package == "" {
		return "(unnamed package)"
	}
	return bp.Package
}

// ClassKind maps Kind onto the model's class kinds. An empty kind is a class.
func (t *Type) ClassKind() codemodel.ClassKind {
	if t.Kind == "" {
		return codemodel.ClassKindClass
	}
	k, err := codemodel.ParseClassKind(t.Kind)
	if err != nil {
		// rejected by Validate
		return codemodel.ClassKindClass
	}
	return k
}

// FullName is the type's qualified name within pkg.
func (t *Type) FullName(pkg string) string {
	if pkg == "" {
		return t.Name
	}
	return pkg + "." + t.Name
}

// Load reads a blueprint file. The format follows the file extension.
func Load(path string) (*Blueprint, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading blueprint %s: %w", path, err)
	}
	bp, err := decodeViper(v)
	if err != nil {
		return nil, fmt.Errorf("blueprint %s: %w", path, err)
	}
	bp.Source = path
	log.Debugf("loaded %s: %d types, %d resources", path, len(bp.Types), len(bp.Resources))
	return bp, nil
}

// Read parses a blueprint in the given format ("yaml", "json" or "toml").
func Read(r io.Reader, format string) (*Blueprint, error) {
	v := viper.New()
	v.SetConfigType(format)
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("reading blueprint: %w", err)
	}
	return decodeViper(v)
}

func decodeViper(v *viper.Viper) (*Blueprint, error) {
	bp, err := Decode(v.AllSettings())
	if err != nil {
		return nil, err
	}
	if err := Validate(bp); err != nil {
		return nil, err
	}
	return bp, nil
}

// Decode builds a Blueprint from generic data. Comma-separated strings are
// accepted where lists are expected and unknown keys are errors.
func Decode(input any) (*Blueprint, error) {
	var bp Blueprint
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &bp,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       splitListHook,
	})
	if err != nil {
		return nil, err
	}
	if err := d.Decode(input); err != nil {
		return nil, fmt.Errorf("decoding blueprint: %w", err)
	}
	return &bp, nil
}

// splitListHook turns "a, b" into []string{"a", "b"}.
var splitListHook mapstructure.DecodeHookFuncType = func(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	if s == "" {
		return []string{}, nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("java_ident", func(fl validator.FieldLevel) bool {
		return codemodel.IsJavaIdentifier(fl.Field().String())
	})
	v.RegisterValidation("java_package", func(fl validator.FieldLevel) bool {
		return codemodel.IsPackageName(fl.Field().String())
	})
	v.RegisterValidation("java_name", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s != "" && codemodel.IsPackageName(s)
	})
	return v
}

// Validate checks a decoded blueprint. Field errors are reported as
// validator.ValidationErrors.
func Validate(bp *Blueprint) error {
	if err := validate.Struct(bp); err != nil {
		return fmt.Errorf("invalid blueprint: %w", err)
	}
	seen := map[string]bool{}
	for _, t := range bp.Types {
		key := strings.ToUpper(t.Name)
		if seen[key] {
			return fmt.Errorf("invalid blueprint: type %s is declared twice", t.Name)
		}
		seen[key] = true
	}
	for _, r := range bp.Resources {
		set := 0
		if r.Text != "" {
			set++
		}
		if len(r.Properties) > 0 {
			set++
		}
		if r.Copy != "" {
			set++
		}
		if set != 1 {
			return fmt.Errorf("invalid blueprint: resource %s needs exactly one of text, properties or copy", r.Name)
		}
	}
	return nil
}
