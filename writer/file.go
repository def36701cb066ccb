package writer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("jcm.writer")

// FileCodeWriter writes artifacts below Root. Each file is written to a
// temporary file and renamed into place when its stream is closed.
type FileCodeWriter struct {
	Root string

	// Mode is the file permission mode (default: 0644).
	Mode os.FileMode

	// Overwrite controls behavior for existing files. If false, opening
	// over an existing file fails on Close.
	Overwrite bool
}

func NewFileCodeWriter(root string) *FileCodeWriter {
	return &FileCodeWriter{
		Root:      root,
		Mode:      0644,
		Overwrite: true,
	}
}

func (w *FileCodeWriter) Open(pkg, name string) (io.WriteCloser, error) {
	path, err := openPath(pkg, name)
	if err != nil {
		return nil, err
	}
	return &bufferedFile{commit: func(content []byte) error {
		return w.writeFile(path, content)
	}}, nil
}

func (w *FileCodeWriter) Close() error { return nil }

func (w *FileCodeWriter) writeFile(path string, content []byte) error {
	fullPath := filepath.Join(w.Root, filepath.FromSlash(path))

	absRoot, err := filepath.Abs(w.Root)
	if err != nil {
		return fmt.Errorf("resolve root directory: %w", err)
	}
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if !strings.HasPrefix(absPath, absRoot+string(filepath.Separator)) {
		return fmt.Errorf("path escapes root directory: %q", path)
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	mode := w.Mode
	if mode == 0 {
		mode = 0644
	}

	tempFile, err := os.CreateTemp(dir, ".jcm-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() { _ = os.Remove(tempPath) }

	_, writeErr := tempFile.Write(content)
	closeErr := tempFile.Close()
	if writeErr != nil {
		cleanup()
		return fmt.Errorf("write temp file: %w", writeErr)
	}
	if closeErr != nil {
		cleanup()
		return fmt.Errorf("close temp file: %w", closeErr)
	}
	if err := os.Chmod(tempPath, mode); err != nil {
		cleanup()
		return fmt.Errorf("set file mode: %w", err)
	}

	if w.Overwrite {
		if err := os.Rename(tempPath, fullPath); err != nil {
			cleanup()
			return fmt.Errorf("rename temp file: %w", err)
		}
	} else {
		// Link fails if the target exists, unlike Rename.
		if err := os.Link(tempPath, fullPath); err != nil {
			cleanup()
			if errors.Is(err, os.ErrExist) {
				return fmt.Errorf("file already exists: %q", path)
			}
			return fmt.Errorf("create file: %w", err)
		}
		cleanup()
	}

	log.Debugf("wrote %s (%d bytes)", fullPath, len(content))
	return nil
}
