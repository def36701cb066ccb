package codemodel

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResourceFile is a non-class artifact emitted with a package.
// Resources go to the resource output, the rest to the source output.
type ResourceFile interface {
	Name() string
	IsResource() bool
	build(w io.Writer) error
}

// TextFile is a resource with string content.
type TextFile struct {
	name    string
	content string
}

func NewTextFile(name, content string) *TextFile {
	return &TextFile{name: name, content: content}
}

func (t *TextFile) Name() string        { return t.name }
func (t *TextFile) IsResource() bool    { return true }
func (t *TextFile) SetContent(s string) { t.content = s }

func (t *TextFile) build(w io.Writer) error {
	_, err := io.WriteString(w, t.content)
	return err
}

// BinaryFile is a resource with byte content.
type BinaryFile struct {
	name string
	data []byte
}

func NewBinaryFile(name string, data []byte) *BinaryFile {
	return &BinaryFile{name: name, data: data}
}

func (b *BinaryFile) Name() string     { return b.name }
func (b *BinaryFile) IsResource() bool { return true }
func (b *BinaryFile) Data() []byte     { return b.data }

func (b *BinaryFile) Write(p []byte) (int, error) {
	b.data = append(b.data, p...)
	return len(p), nil
}

func (b *BinaryFile) build(w io.Writer) error {
	_, err := w.Write(b.data)
	return err
}

// StaticFile copies a file from disk when the model is built. A static
// Java source is not a resource and goes to the source output.
type StaticFile struct {
	path     string
	resource bool
}

func NewStaticFile(path string, resource bool) *StaticFile {
	return &StaticFile{path: path, resource: resource}
}

func (s *StaticFile) Name() string     { return filepath.Base(s.path) }
func (s *StaticFile) IsResource() bool { return s.resource }

func (s *StaticFile) build(w io.Writer) error {
	in, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("static file: %w", err)
	}
	defer in.Close()
	_, err = io.Copy(w, in)
	return err
}

// PropertiesFile is a .properties resource written with keys sorted.
type PropertiesFile struct {
	name  string
	props map[string]string
}

func NewPropertiesFile(name string) *PropertiesFile {
	return &PropertiesFile{name: name, props: make(map[string]string)}
}

func (p *PropertiesFile) Name() string     { return p.name }
func (p *PropertiesFile) IsResource() bool { return true }

func (p *PropertiesFile) Add(key, value string) *PropertiesFile {
	p.props[key] = value
	return p
}

func (p *PropertiesFile) Get(key string) (string, bool) {
	v, ok := p.props[key]
	return v, ok
}

func (p *PropertiesFile) build(w io.Writer) error {
	keys := make([]string, 0, len(p.props))
	for k := range p.props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	for _, k := range keys {
		sb.WriteString(escapeProperty(k, true))
		sb.WriteByte('=')
		sb.WriteString(escapeProperty(p.props[k], false))
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// escapeProperty escapes s the way java.util.Properties.store does, minus
// the \u escapes: the files are written as UTF-8.
func escapeProperty(s string, key bool) string {
	var sb strings.Builder
	for i, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\f':
			sb.WriteString(`\f`)
		case '=', ':', '#', '!':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case ' ':
			if key || i == 0 {
				sb.WriteString(`\ `)
			} else {
				sb.WriteByte(' ')
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
