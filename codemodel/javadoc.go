package codemodel

import "strings"

type docTag struct {
	name string
	arg  string
	ref  Class
	text string
}

// DocComment is a Javadoc comment: free text followed by block tags.
type DocComment struct {
	parts []any // string or Class
	tags  []docTag
	ret   *docTag
}

// Append adds text. Newlines start new comment lines.
func (d *DocComment) Append(text string) *DocComment {
	d.parts = append(d.parts, text)
	return d
}

// AppendType adds a type name, which takes part in import resolution.
func (d *DocComment) AppendType(c Class) *DocComment {
	d.parts = append(d.parts, c)
	return d
}

func (d *DocComment) Param(name, text string) *DocComment {
	d.tags = append(d.tags, docTag{name: "param", arg: name, text: text})
	return d
}

func (d *DocComment) Return(text string) *DocComment {
	d.ret = &docTag{name: "return", text: text}
	return d
}

func (d *DocComment) Throws(c Class, text string) *DocComment {
	d.tags = append(d.tags, docTag{name: "throws", ref: c, text: text})
	return d
}

// Tag adds an arbitrary block tag such as "@since 1.2" or "@deprecated".
func (d *DocComment) Tag(name, text string) *DocComment {
	d.tags = append(d.tags, docTag{name: strings.TrimPrefix(name, "@"), text: text})
	return d
}

func (d *DocComment) IsEmpty() bool {
	return len(d.parts) == 0 && len(d.tags) == 0 && d.ret == nil
}

// generate prints the comment followed by a newline. Tags come after the
// text in the order params, return, then the rest as added.
func (d *DocComment) generate(f *Formatter) {
	f.Print("/**").Newline()
	var body strings.Builder
	for _, p := range d.parts {
		switch p := p.(type) {
		case string:
			body.WriteString(p)
		case Class:
			body.WriteString(f.typeText(p))
		}
	}
	text := strings.TrimRight(body.String(), "\n")
	if text != "" {
		for _, line := range strings.Split(text, "\n") {
			docLine(f, line)
		}
	}
	tags := d.orderedTags()
	if text != "" && len(tags) > 0 {
		docLine(f, "")
	}
	for _, t := range tags {
		line := "@" + t.name
		switch {
		case t.ref != nil:
			line += " " + f.typeText(t.ref)
		case t.arg != "":
			line += " " + t.arg
		}
		lines := strings.Split(t.text, "\n")
		if lines[0] != "" {
			line += " " + lines[0]
		}
		docLine(f, line)
		for _, l := range lines[1:] {
			docLine(f, "    "+l)
		}
	}
	f.Print(" */").Newline()
}

func (d *DocComment) orderedTags() []docTag {
	var out []docTag
	for _, t := range d.tags {
		if t.name == "param" {
			out = append(out, t)
		}
	}
	if d.ret != nil {
		out = append(out, *d.ret)
	}
	for _, t := range d.tags {
		if t.name != "param" {
			out = append(out, t)
		}
	}
	return out
}

func docLine(f *Formatter, line string) {
	line = strings.TrimRight(line, " \t")
	if line == "" {
		f.Print(" *").Newline()
		return
	}
	f.Print(" * " + line).Newline()
}
