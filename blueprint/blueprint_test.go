package blueprint

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"

	"github.com/dhamidi/jcm/codemodel"
)

const pointYAML = `
package: com.acme.geo
doc: Geometry.
types:
  - name: Point
    implements: java.io.Serializable, java.lang.Cloneable
    fields:
      - {name: x, type: int, final: true}
      - {name: y, type: int, final: true}
    value: true
resources:
  - name: geo.properties
    properties:
      - {key: origin.x, value: "0"}
`

func TestReadYAML(t *testing.T) {
	bp, err := Read(strings.NewReader(pointYAML), "yaml")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if bp.Package != "com.acme.geo" || bp.Doc != "Geometry." {
		t.Errorf("package, doc = %q, %q", bp.Package, bp.Doc)
	}
	if len(bp.Types) != 1 {
		t.Fatalf("got %d types, want 1", len(bp.Types))
	}
	p := bp.Types[0]
	if diff := cmp.Diff([]string{"java.io.Serializable", "java.lang.Cloneable"}, p.Implements); diff != "" {
		t.Errorf("implements mismatch (-want +got):\n%s", diff)
	}
	want := []Field{{Name: "x", Type: "int", Final: true}, {Name: "y", Type: "int", Final: true}}
	if diff := cmp.Diff(want, p.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if !p.Value || p.ClassKind() != codemodel.ClassKindClass {
		t.Errorf("value = %v, kind = %v", p.Value, p.ClassKind())
	}
	if diff := cmp.Diff([]Property{{Key: "origin.x", Value: "0"}}, bp.Resources[0].Properties); diff != "" {
		t.Errorf("properties mismatch (-want +got):\n%s", diff)
	}
}

func TestReadJSONAndTOML(t *testing.T) {
	tests := []struct {
		format string
		src    string
	}{
		{"json", `{"package": "p", "types": [{"name": "Color", "kind": "enum", "constants": [{"name": "RED"}]}]}`},
		{"toml", "package = \"p\"\n\n[[types]]\nname = \"Color\"\nkind = \"enum\"\n\n[[types.constants]]\nname = \"RED\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			bp, err := Read(strings.NewReader(tt.src), tt.format)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if len(bp.Types) != 1 || bp.Types[0].ClassKind() != codemodel.ClassKindEnum {
				t.Fatalf("types = %+v", bp.Types)
			}
			if got := bp.Types[0].Constants; len(got) != 1 || got[0].Name != "RED" {
				t.Errorf("constants = %+v", got)
			}
		})
	}
}

func TestLoadSetsSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geo.yaml")
	if err := os.WriteFile(path, []byte(pointYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	bp, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if bp.Source != path || bp.InputName() != path {
		t.Errorf("Source = %q, InputName() = %q", bp.Source, bp.InputName())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of a missing file succeeded")
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(map[string]any{
		"package": "p",
		"types":   []any{map[string]any{"name": "A", "extend": "B"}},
	})
	if err == nil || !strings.Contains(err.Error(), "extend") {
		t.Errorf("Decode() error = %v, want one naming the unknown key", err)
	}
}

func TestDecodeWeakTypes(t *testing.T) {
	bp, err := Decode(map[string]any{
		"types": []any{map[string]any{
			"name":      "A",
			"abstract":  "true",
			"constants": []any{map[string]any{"name": "X", "args": "1, 2"}},
		}},
	})
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bp.Types[0].Abstract {
		t.Error("abstract not decoded from a string")
	}
	if diff := cmp.Diff([]string{"1", "2"}, bp.Types[0].Constants[0].Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		bp    Blueprint
		field string
	}{
		{"bad package", Blueprint{Package: "com.1acme"}, "Package"},
		{"keyword type name", Blueprint{Types: []Type{{Name: "class"}}}, "Name"},
		{"missing field type", Blueprint{Types: []Type{{Name: "A", Fields: []Field{{Name: "x"}}}}}, "Type"},
		{"unknown kind", Blueprint{Types: []Type{{Name: "A", Kind: "record"}}}, "Kind"},
		{"bad annotation name", Blueprint{Types: []Type{{Name: "A", Annotations: []string{"java..Override"}}}}, "Annotations[0]"},
		{"resource in a directory", Blueprint{Resources: []Resource{{Name: "a/b.txt", Text: "x"}}}, "Name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.bp)
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Validate() error = %v, want validation errors", err)
			}
			if got := verrs[0].Field(); got != tt.field {
				t.Errorf("failing field = %q, want %q", got, tt.field)
			}
		})
	}
}

func TestValidateStructure(t *testing.T) {
	tests := []struct {
		name string
		bp   Blueprint
		want string
	}{
		{"duplicate type", Blueprint{Types: []Type{{Name: "A"}, {Name: "A"}}}, "declared twice"},
		{"empty resource", Blueprint{Resources: []Resource{{Name: "a.txt"}}}, "exactly one"},
		{"two contents", Blueprint{Resources: []Resource{{Name: "a.txt", Text: "x", Copy: "y"}}}, "exactly one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(&tt.bp)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want %q", err, tt.want)
			}
		})
	}
}
