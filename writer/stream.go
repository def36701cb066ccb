package writer

import (
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/tools/txtar"
)

// ZipCodeWriter stores every artifact as a deflated entry of one zip
// archive. Artifacts must be written one after another.
type ZipCodeWriter struct {
	zw *zip.Writer
}

func NewZipCodeWriter(w io.Writer) *ZipCodeWriter {
	return &ZipCodeWriter{zw: zip.NewWriter(w)}
}

func (w *ZipCodeWriter) Open(pkg, name string) (io.WriteCloser, error) {
	path, err := openPath(pkg, name)
	if err != nil {
		return nil, err
	}
	entry, err := w.zw.Create(path)
	if err != nil {
		return nil, fmt.Errorf("zip entry %s: %w", path, err)
	}
	return nopCloser{entry}, nil
}

func (w *ZipCodeWriter) Close() error { return w.zw.Close() }

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// SingleStreamCodeWriter concatenates every artifact into one stream, each
// preceded by a banner naming its path. Used for previews.
type SingleStreamCodeWriter struct {
	w *bufio.Writer
}

const banner = "-----------------------------------"

func NewSingleStreamCodeWriter(w io.Writer) *SingleStreamCodeWriter {
	return &SingleStreamCodeWriter{w: bufio.NewWriter(w)}
}

func (s *SingleStreamCodeWriter) Open(pkg, name string) (io.WriteCloser, error) {
	path, err := openPath(pkg, name)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintf(s.w, "%s%s%s\n", banner, path, banner); err != nil {
		return nil, err
	}
	return nopCloser{s.w}, nil
}

func (s *SingleStreamCodeWriter) Close() error { return s.w.Flush() }

// PrologCodeWriter writes a comment header at the top of every artifact
// before passing it to the wrapped writer. Each prolog line becomes a
// "// " comment line.
type PrologCodeWriter struct {
	inner  CodeWriter
	prolog string
}

func NewPrologCodeWriter(inner CodeWriter, prolog string) *PrologCodeWriter {
	return &PrologCodeWriter{inner: inner, prolog: prolog}
}

func (p *PrologCodeWriter) Open(pkg, name string) (io.WriteCloser, error) {
	wc, err := p.inner.Open(pkg, name)
	if err != nil {
		return nil, err
	}
	if p.prolog == "" {
		return wc, nil
	}
	var sb strings.Builder
	for _, line := range strings.Split(strings.TrimRight(p.prolog, "\n"), "\n") {
		sb.WriteString("// ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	if _, err := io.WriteString(wc, sb.String()); err != nil {
		wc.Close()
		return nil, err
	}
	return wc, nil
}

func (p *PrologCodeWriter) Close() error { return p.inner.Close() }

// ProgressFunc is told about each artifact as it is opened. done counts
// artifacts including this one.
type ProgressFunc func(done, total int, path string)

// ProgressCodeWriter reports progress to a callback and delegates to the
// wrapped writer.
type ProgressCodeWriter struct {
	inner    CodeWriter
	total    int
	done     int
	progress ProgressFunc
}

func NewProgressCodeWriter(inner CodeWriter, total int, progress ProgressFunc) *ProgressCodeWriter {
	return &ProgressCodeWriter{inner: inner, total: total, progress: progress}
}

func (p *ProgressCodeWriter) Open(pkg, name string) (io.WriteCloser, error) {
	p.done++
	if p.progress != nil {
		p.progress(p.done, p.total, Path(pkg, name))
	}
	return p.inner.Open(pkg, name)
}

func (p *ProgressCodeWriter) Close() error { return p.inner.Close() }

// TxtarCodeWriter collects artifacts into a txtar archive, which is written
// to the underlying stream on Close when one was given.
type TxtarCodeWriter struct {
	w       io.Writer
	archive txtar.Archive
}

func NewTxtarCodeWriter(w io.Writer) *TxtarCodeWriter {
	return &TxtarCodeWriter{w: w}
}

func (t *TxtarCodeWriter) Open(pkg, name string) (io.WriteCloser, error) {
	path, err := openPath(pkg, name)
	if err != nil {
		return nil, err
	}
	return &bufferedFile{commit: func(content []byte) error {
		t.archive.Files = append(t.archive.Files, txtar.File{Name: path, Data: content})
		return nil
	}}, nil
}

// Archive returns the artifacts collected so far.
func (t *TxtarCodeWriter) Archive() *txtar.Archive {
	return &t.archive
}

func (t *TxtarCodeWriter) Close() error {
	if t.w == nil {
		return nil
	}
	_, err := t.w.Write(txtar.Format(&t.archive))
	return err
}
