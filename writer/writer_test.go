package writer

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

func writeArtifact(t *testing.T, w CodeWriter, pkg, name, content string) {
	t.Helper()
	wc, err := w.Open(pkg, name)
	if err != nil {
		t.Fatalf("Open(%q, %q) error = %v", pkg, name, err)
	}
	if _, err := io.WriteString(wc, content); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := wc.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestPath(t *testing.T) {
	tests := []struct {
		pkg, name, want string
	}{
		{"", "Foo.java", "Foo.java"},
		{"com.acme", "Foo.java", "com/acme/Foo.java"},
		{"com.acme", "package-info.java", "com/acme/package-info.java"},
	}
	for _, tt := range tests {
		if got := Path(tt.pkg, tt.name); got != tt.want {
			t.Errorf("Path(%q, %q) = %q, want %q", tt.pkg, tt.name, got, tt.want)
		}
	}
}

func TestValidatePath(t *testing.T) {
	valid := []string{"Foo.java", "com/acme/Foo.java", "META-INF/services/x"}
	for _, p := range valid {
		if err := ValidatePath(p); err != nil {
			t.Errorf("ValidatePath(%q) error = %v", p, err)
		}
	}
	invalid := []string{"", "/etc/passwd", "C:/x", "../x", "a/../../x", "a//b", "./a"}
	for _, p := range invalid {
		if err := ValidatePath(p); err == nil {
			t.Errorf("ValidatePath(%q) error = nil", p)
		}
	}
}

func TestFileCodeWriter(t *testing.T) {
	root := t.TempDir()
	w := NewFileCodeWriter(root)
	writeArtifact(t, w, "com.acme", "Foo.java", "class Foo {}\n")
	writeArtifact(t, w, "com.acme", "Foo.java", "class Foo { int x; }\n")
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	got, err := os.ReadFile(filepath.Join(root, "com", "acme", "Foo.java"))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "class Foo { int x; }\n" {
		t.Errorf("content = %q", got)
	}

	entries, _ := os.ReadDir(filepath.Join(root, "com", "acme"))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (temp files left behind?)", len(entries))
	}

	t.Run("no overwrite", func(t *testing.T) {
		w := NewFileCodeWriter(root)
		w.Overwrite = false
		wc, err := w.Open("com.acme", "Foo.java")
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		io.WriteString(wc, "x")
		if err := wc.Close(); err == nil {
			t.Error("Close() over existing file error = nil")
		}
	})

	t.Run("rejects bad names", func(t *testing.T) {
		if _, err := w.Open("", "../escape.java"); err == nil {
			t.Error("Open(../escape.java) error = nil")
		}
	})
}

func TestMemoryCodeWriter(t *testing.T) {
	w := NewMemoryCodeWriter()
	writeArtifact(t, w, "b", "B.java", "b")
	writeArtifact(t, w, "a", "A.java", "a")
	writeArtifact(t, w, "b", "B.java", "b2")

	if w.Len() != 2 {
		t.Errorf("Len() = %d, want 2", w.Len())
	}
	if got := strings.Join(w.Paths(), ","); got != "a/A.java,b/B.java" {
		t.Errorf("Paths() = %q", got)
	}
	if got := strings.Join(w.Order(), ","); got != "b/B.java,a/A.java" {
		t.Errorf("Order() = %q", got)
	}
	if got := string(w.Get("b/B.java")); got != "b2" {
		t.Errorf("Get() = %q, want b2", got)
	}
	w.Reset()
	if w.Len() != 0 {
		t.Errorf("Len() after Reset = %d", w.Len())
	}
}

func TestZipCodeWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewZipCodeWriter(&buf)
	writeArtifact(t, w, "com.acme", "Foo.java", "class Foo {}\n")
	writeArtifact(t, w, "", "app.properties", "a=1\n")
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	if got := strings.Join(names, ","); got != "com/acme/Foo.java,app.properties" {
		t.Errorf("entries = %q", got)
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "class Foo {}\n" {
		t.Errorf("entry content = %q", data)
	}
}

func TestSingleStreamCodeWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewSingleStreamCodeWriter(&buf)
	writeArtifact(t, w, "p", "A.java", "class A {}\n")
	writeArtifact(t, w, "p", "B.java", "class B {}\n")
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	want := banner + "p/A.java" + banner + "\nclass A {}\n" +
		banner + "p/B.java" + banner + "\nclass B {}\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestPrologCodeWriter(t *testing.T) {
	mem := NewMemoryCodeWriter()
	w := NewPrologCodeWriter(mem, "Generated file.\nDo not edit.\n")
	writeArtifact(t, w, "p", "A.java", "class A {}\n")
	want := "// Generated file.\n// Do not edit.\n\nclass A {}\n"
	if got := string(mem.Get("p/A.java")); got != want {
		t.Errorf("content = %q, want %q", got, want)
	}

	plain := NewPrologCodeWriter(mem, "")
	writeArtifact(t, plain, "p", "B.java", "class B {}\n")
	if got := string(mem.Get("p/B.java")); got != "class B {}\n" {
		t.Errorf("content without prolog = %q", got)
	}
}

func TestProgressCodeWriter(t *testing.T) {
	var seen []string
	w := NewProgressCodeWriter(NewMemoryCodeWriter(), 2, func(done, total int, path string) {
		seen = append(seen, path)
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
		if done != len(seen) {
			t.Errorf("done = %d, want %d", done, len(seen))
		}
	})
	writeArtifact(t, w, "p", "A.java", "")
	writeArtifact(t, w, "p", "B.java", "")
	if got := strings.Join(seen, ","); got != "p/A.java,p/B.java" {
		t.Errorf("progress paths = %q", got)
	}
}

func TestTxtarCodeWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewTxtarCodeWriter(&buf)
	writeArtifact(t, w, "p", "A.java", "class A {}\n")
	writeArtifact(t, w, "", "x.txt", "hello\n")
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	ar := txtar.Parse(buf.Bytes())
	if len(ar.Files) != 2 {
		t.Fatalf("archive has %d files, want 2", len(ar.Files))
	}
	if ar.Files[0].Name != "p/A.java" || string(ar.Files[0].Data) != "class A {}\n" {
		t.Errorf("Files[0] = %s %q", ar.Files[0].Name, ar.Files[0].Data)
	}
	if len(w.Archive().Files) != 2 {
		t.Errorf("Archive() has %d files", len(w.Archive().Files))
	}
}
