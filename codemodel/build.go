package codemodel

import (
	"errors"
	"fmt"
	"io"

	"github.com/dhamidi/jcm/writer"
)

// Build writes one source file per visible top-level class, a
// package-info.java for each package with annotations or Javadoc, and
// every resource file. Resources go to res, or to src when res is nil.
// Packages and classes are snapshotted before they are visited, so code
// run while formatting may add to the model. Both writers are closed
// before Build returns.
func (m *Model) Build(src, res writer.CodeWriter) (err error) {
	if res == nil {
		res = src
	}
	defer func() {
		errs := []error{err, src.Close()}
		if res != src {
			errs = append(errs, res.Close())
		}
		err = errors.Join(errs...)
	}()

	count := 0
	for _, pkg := range m.Packages() {
		for _, c := range pkg.Classes() {
			if c.hidden {
				continue
			}
			if err := m.emit(src, pkg.name, c.name+".java", func(w io.Writer) error {
				f := newFormatter(w, m.indent)
				f.writeUnit(c)
				return f.p.Err()
			}); err != nil {
				return err
			}
			count++
		}
		if pkg.hasPackageInfo() {
			if err := m.emit(src, pkg.name, "package-info.java", func(w io.Writer) error {
				f := newFormatter(w, m.indent)
				pkg.declareInfo(f)
				return f.p.Err()
			}); err != nil {
				return err
			}
			count++
		}
		for _, r := range pkg.Resources() {
			dst := src
			if r.IsResource() {
				dst = res
			}
			if err := m.emit(dst, pkg.name, r.Name(), r.build); err != nil {
				return err
			}
			count++
		}
	}
	log.Infof("built %d artifacts in %d packages", count, len(m.packages))
	return nil
}

func (m *Model) emit(w writer.CodeWriter, pkg, name string, body func(io.Writer) error) error {
	path := writer.Path(pkg, name)
	log.Debugf("writing %s", path)
	wc, err := w.Open(pkg, name)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	err = body(wc)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// BuildDir builds into directories. An empty resDir puts resources next
// to the sources.
func (m *Model) BuildDir(srcDir, resDir string) error {
	src := writer.NewFileCodeWriter(srcDir)
	if resDir == "" || resDir == srcDir {
		return m.Build(src, nil)
	}
	return m.Build(src, writer.NewFileCodeWriter(resDir))
}

// CountArtifacts returns how many files Build would write for the model as
// it is now.
func (m *Model) CountArtifacts() int {
	n := 0
	for _, pkg := range m.Packages() {
		for _, c := range pkg.Classes() {
			if !c.hidden {
				n++
			}
		}
		if pkg.hasPackageInfo() {
			n++
		}
		n += len(pkg.resources)
	}
	return n
}
