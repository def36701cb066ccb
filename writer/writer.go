// Package writer provides the output destinations a code model is built
// into. A CodeWriter hands out one stream per artifact; the artifact is
// complete when that stream is closed.
package writer

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// CodeWriter receives build artifacts. pkg is a dotted package name ("" for
// the unnamed package) and name a file name within it.
type CodeWriter interface {
	Open(pkg, name string) (io.WriteCloser, error)
	// Close releases the writer once every artifact has been written.
	Close() error
}

// Path maps a package and file name to a slash-separated relative path.
func Path(pkg, name string) string {
	if pkg == "" {
		return name
	}
	return strings.ReplaceAll(pkg, ".", "/") + "/" + name
}

// ValidatePath checks that path is relative, slash-separated, clean and
// stays below the output root.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path is empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return errors.New("absolute paths not allowed")
	}
	if len(path) >= 2 && path[1] == ':' && ((path[0] >= 'A' && path[0] <= 'Z') || (path[0] >= 'a' && path[0] <= 'z')) {
		return errors.New("absolute paths not allowed")
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return errors.New("path traversal not allowed")
		}
	}
	cleaned := filepath.ToSlash(filepath.Clean(path))
	if cleaned != path {
		return fmt.Errorf("path is not clean (expected %q, got %q)", cleaned, path)
	}
	return nil
}

// openPath validates and returns the artifact path for pkg and name.
func openPath(pkg, name string) (string, error) {
	path := Path(pkg, name)
	if err := ValidatePath(path); err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	return path, nil
}

// bufferedFile collects an artifact and hands it to commit on Close.
type bufferedFile struct {
	buf    strings.Builder
	commit func(content []byte) error
	closed bool
}

func (f *bufferedFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, errors.New("write to closed artifact")
	}
	return f.buf.Write(p)
}

func (f *bufferedFile) Close() error {
	if f.closed {
		return nil
	}
	f.closed = true
	return f.commit([]byte(f.buf.String()))
}
