package classpath

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/jcm/java"
)

// minimalClass returns the bytes of an empty public class.
func minimalClass(name, super string) []byte {
	var b bytes.Buffer
	u2 := func(v uint16) { binary.Write(&b, binary.BigEndian, v) }
	utf8 := func(s string) {
		b.WriteByte(1)
		u2(uint16(len(s)))
		b.WriteString(s)
	}
	binary.Write(&b, binary.BigEndian, uint32(0xCAFEBABE))
	u2(0)
	u2(61)
	u2(5)
	utf8(name)
	b.WriteByte(7)
	u2(1)
	utf8(super)
	b.WriteByte(7)
	u2(3)
	u2(0x0021)
	u2(2)
	u2(4)
	u2(0) // interfaces
	u2(0) // fields
	u2(0) // methods
	u2(0) // attributes
	return b.Bytes()
}

func writeJar(t *testing.T, path string, classes map[string][]byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, data := range classes {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write(data)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestBootstrap(t *testing.T) {
	table := Bootstrap()
	tests := []struct {
		name  string
		kind  java.ClassKind
		super string
	}{
		{"java.lang.Object", java.ClassKindClass, ""},
		{"java.lang.String", java.ClassKindClass, "java.lang.Object"},
		{"java.lang.Integer", java.ClassKindClass, "java.lang.Number"},
		{"java.util.List", java.ClassKindInterface, ""},
		{"java.util.ArrayList", java.ClassKindClass, "java.util.AbstractList"},
		{"java.lang.Override", java.ClassKindAnnotation, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, ok := table[tt.name]
			if !ok {
				t.Fatalf("Bootstrap()[%q] missing", tt.name)
			}
			if m.Kind != tt.kind {
				t.Errorf("Kind = %q, want %q", m.Kind, tt.kind)
			}
			if m.SuperClass != tt.super {
				t.Errorf("SuperClass = %q, want %q", m.SuperClass, tt.super)
			}
		})
	}

	entry := table["java.util.Map$Entry"]
	if entry == nil || entry.SimpleName != "Entry" || entry.OuterClass != "java.util.Map" {
		t.Errorf("Map$Entry = %+v", entry)
	}
	if tps := table["java.util.Map"].TypeParameters; len(tps) != 2 || tps[0].Name != "K" || tps[1].Name != "V" {
		t.Errorf("Map type parameters = %+v", tps)
	}
}

func TestClasspathLoad(t *testing.T) {
	dir := t.TempDir()
	classes := filepath.Join(dir, "classes")
	if err := os.MkdirAll(filepath.Join(classes, "com", "acme"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(classes, "com", "acme", "Widget.class"),
		minimalClass("com/acme/Widget", "java/lang/Object"), 0o644); err != nil {
		t.Fatal(err)
	}
	jar := filepath.Join(dir, "lib.jar")
	writeJar(t, jar, map[string][]byte{
		"org/lib/Base.class":        minimalClass("org/lib/Base", "java/lang/Object"),
		"org/lib/Base$Nested.class": minimalClass("org/lib/Base$Nested", "org/lib/Base"),
		"META-INF/MANIFEST.MF":      []byte("Manifest-Version: 1.0\n"),
	})

	cp, err := New([]string{classes, jar})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer cp.Close()

	t.Run("directory", func(t *testing.T) {
		m, err := cp.Load("com.acme.Widget")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if m.SimpleName != "Widget" || m.Visibility != java.VisibilityPublic {
			t.Errorf("Load() = %+v", m)
		}
	})

	t.Run("jar nested", func(t *testing.T) {
		m, err := cp.Load("org.lib.Base$Nested")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if m.SuperClass != "org.lib.Base" {
			t.Errorf("SuperClass = %q, want org.lib.Base", m.SuperClass)
		}
	})

	t.Run("cached identity", func(t *testing.T) {
		a, _ := cp.Load("org.lib.Base")
		b, _ := cp.Load("org.lib.Base")
		if a == nil || a != b {
			t.Errorf("Load() twice returned %p and %p", a, b)
		}
	})

	t.Run("bootstrap first", func(t *testing.T) {
		m, err := cp.Load("java.lang.String")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if m != Bootstrap()["java.lang.String"] {
			t.Error("Load(java.lang.String) did not come from the bootstrap table")
		}
	})

	t.Run("not found", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			_, err := cp.Load("com.acme.Missing")
			if !errors.Is(err, ErrNotFound) {
				t.Errorf("Load() error = %v, want ErrNotFound", err)
			}
		}
	})
}

func TestClasspathWithoutBootstrap(t *testing.T) {
	cp, err := New(nil, WithoutBootstrap())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := cp.Load("java.lang.Object"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
}

func TestNewBadEntry(t *testing.T) {
	dir := t.TempDir()
	notJar := filepath.Join(dir, "junk.jar")
	if err := os.WriteFile(notJar, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{filepath.Join(dir, "missing"), notJar} {
		if _, err := New([]string{p}); err == nil {
			t.Errorf("New(%q) error = nil", p)
		}
	}
}

func TestBootstrapLoader(t *testing.T) {
	l := BootstrapLoader()
	m, err := l.Load("java.util.Map$Entry")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if m.OuterClass != "java.util.Map" {
		t.Errorf("OuterClass = %q, want java.util.Map", m.OuterClass)
	}
	if _, err := l.Load("com.acme.Missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(missing) error = %v, want ErrNotFound", err)
	}
}
