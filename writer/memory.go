package writer

import (
	"io"
	"sort"
)

// MemoryCodeWriter keeps every artifact in memory, keyed by path.
type MemoryCodeWriter struct {
	files map[string][]byte
	order []string
}

func NewMemoryCodeWriter() *MemoryCodeWriter {
	return &MemoryCodeWriter{files: make(map[string][]byte)}
}

func (w *MemoryCodeWriter) Open(pkg, name string) (io.WriteCloser, error) {
	path, err := openPath(pkg, name)
	if err != nil {
		return nil, err
	}
	return &bufferedFile{commit: func(content []byte) error {
		if _, ok := w.files[path]; !ok {
			w.order = append(w.order, path)
		}
		w.files[path] = content
		return nil
	}}, nil
}

func (w *MemoryCodeWriter) Close() error { return nil }

// Get returns the content of one artifact, or nil.
func (w *MemoryCodeWriter) Get(path string) []byte {
	return w.files[path]
}

// Paths returns the artifact paths in sorted order.
func (w *MemoryCodeWriter) Paths() []string {
	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Order returns the artifact paths in the order they were first written.
func (w *MemoryCodeWriter) Order() []string {
	return append([]string(nil), w.order...)
}

func (w *MemoryCodeWriter) Len() int { return len(w.files) }

func (w *MemoryCodeWriter) Reset() {
	w.files = make(map[string][]byte)
	w.order = nil
}
