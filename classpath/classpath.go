// Package classpath loads class metadata by binary name from directories,
// jar files and a built-in table of core JDK types.
package classpath

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/jcm/java"
)

var log = commonlog.GetLogger("jcm.classpath")

var ErrNotFound = errors.New("class not found")

// Loader resolves binary class names ("java.util.Map$Entry") to class
// models.
type Loader interface {
	Load(name string) (*java.ClassModel, error)
}

type entry interface {
	open(path string) (io.ReadCloser, error)
	close() error
	String() string
}

// Classpath searches the bootstrap table first, then each entry in order.
// Results, including misses, are cached.
type Classpath struct {
	entries   []entry
	bootstrap map[string]*java.ClassModel
	cache     map[string]*java.ClassModel
	misses    map[string]bool
}

type Option func(*Classpath)

// WithoutBootstrap leaves the built-in JDK table out of the search.
func WithoutBootstrap() Option {
	return func(cp *Classpath) { cp.bootstrap = nil }
}

// New opens every path. Directories are searched as package roots; any
// other path is opened as a jar.
func New(paths []string, opts ...Option) (*Classpath, error) {
	cp := &Classpath{
		bootstrap: Bootstrap(),
		cache:     make(map[string]*java.ClassModel),
		misses:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(cp)
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil {
			cp.Close()
			return nil, fmt.Errorf("classpath entry %s: %w", p, err)
		}
		if info.IsDir() {
			cp.entries = append(cp.entries, dirEntry(p))
			continue
		}
		zr, err := zip.OpenReader(p)
		if err != nil {
			cp.Close()
			return nil, fmt.Errorf("open jar %s: %w", p, err)
		}
		je := &jarEntry{path: p, zr: zr, files: make(map[string]*zip.File, len(zr.File))}
		for _, f := range zr.File {
			if strings.HasSuffix(f.Name, ".class") {
				je.files[f.Name] = f
			}
		}
		log.Debugf("indexed %d classes in %s", len(je.files), p)
		cp.entries = append(cp.entries, je)
	}
	return cp, nil
}

func (cp *Classpath) Load(name string) (*java.ClassModel, error) {
	if m, ok := cp.bootstrap[name]; ok {
		return m, nil
	}
	if m, ok := cp.cache[name]; ok {
		return m, nil
	}
	if cp.misses[name] {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	path := strings.ReplaceAll(name, ".", "/") + ".class"
	for _, e := range cp.entries {
		rc, err := e.open(path)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s from %s: %w", name, e, err)
		}
		m, err := java.ClassModelFromReader(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("load %s from %s: %w", name, e, err)
		}
		cp.cache[name] = m
		return m, nil
	}

	log.Debugf("unresolved class %s", name)
	cp.misses[name] = true
	return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
}

func (cp *Classpath) Close() error {
	var errs []error
	for _, e := range cp.entries {
		if err := e.close(); err != nil {
			errs = append(errs, err)
		}
	}
	cp.entries = nil
	return errors.Join(errs...)
}

type dirEntry string

func (d dirEntry) open(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(string(d), filepath.FromSlash(path)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (d dirEntry) close() error   { return nil }
func (d dirEntry) String() string { return string(d) }

type jarEntry struct {
	path  string
	zr    *zip.ReadCloser
	files map[string]*zip.File
}

func (j *jarEntry) open(path string) (io.ReadCloser, error) {
	f, ok := j.files[path]
	if !ok {
		return nil, ErrNotFound
	}
	return f.Open()
}

func (j *jarEntry) close() error   { return j.zr.Close() }
func (j *jarEntry) String() string { return j.path }
