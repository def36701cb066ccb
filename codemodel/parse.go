package codemodel

import (
	"fmt"
	"strings"
	"unicode"
)

// ParseType parses a Java type expression: primitive and class names,
// arrays ("int[][]"), type arguments ("java.util.Map<String,Integer>") and
// wildcards ("? extends Number", "? super T", "?"). Class names resolve as
// in Ref.
func (m *Model) ParseType(s string) (Type, error) {
	p := &typeParser{m: m, src: s}
	var t Type
	var err error
	if p.peek() == '?' {
		t, err = p.parseArg()
	} else {
		t, err = p.parseType()
	}
	if err != nil {
		return nil, fmt.Errorf("parse type %q: %w", s, err)
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("parse type %q: unexpected %q at %d", s, p.src[p.pos:], p.pos)
	}
	return t, nil
}

type typeParser struct {
	m   *Model
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *typeParser) peek() byte {
	p.skipSpace()
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *typeParser) consume(tok string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *typeParser) name() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '.' || r == '$' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || r >= 0x80 {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return "", fmt.Errorf("expected a name at %d", start)
	}
	name := p.src[start:p.pos]
	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		return "", fmt.Errorf("malformed name %q", name)
	}
	return name, nil
}

func (p *typeParser) parseType() (Type, error) {
	name, err := p.name()
	if err != nil {
		return nil, err
	}
	var t Type
	if prim := p.m.Primitive(name); prim != nil {
		t = prim
	} else {
		c := p.m.refName(name)
		if p.peek() == '<' {
			p.pos++
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			c = Narrow(c, args...)
		}
		t = c
	}
	for p.consume("[") {
		if !p.consume("]") {
			return nil, fmt.Errorf("expected ']' at %d", p.pos)
		}
		t = ArrayOf(t)
	}
	return t, nil
}

// parseArgs parses type arguments after "<" up to and including ">".
func (p *typeParser) parseArgs() ([]Class, error) {
	var args []Class
	for {
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.consume(",") {
			continue
		}
		if p.consume(">") {
			return args, nil
		}
		return nil, fmt.Errorf("expected ',' or '>' at %d", p.pos)
	}
}

func (p *typeParser) parseArg() (Class, error) {
	if p.consume("?") {
		switch {
		case p.consume("extends "):
			bound, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			return Wildcard(bound), nil
		case p.consume("super "):
			bound, err := p.parseClass()
			if err != nil {
				return nil, err
			}
			return WildcardSuper(bound), nil
		}
		return Wildcard(p.m.Ref(objectName)), nil
	}
	return p.parseClass()
}

func (p *typeParser) parseClass() (Class, error) {
	t, err := p.parseType()
	if err != nil {
		return nil, err
	}
	c, ok := t.(Class)
	if !ok {
		return nil, fmt.Errorf("%s: %w", t.Name(), ErrPrimitive)
	}
	return c, nil
}
