package classfile

import (
	"fmt"
	"strings"
)

// TypeParam is a formal type parameter from a generic signature. Bounds hold
// the erased internal names of the class and interface bounds.
type TypeParam struct {
	Name   string
	Bounds []string
}

type ClassSignature struct {
	TypeParams []TypeParam
	Super      string
	Interfaces []string
}

// ParseClassSignature decodes a class Signature attribute such as
// "<K:Ljava/lang/Object;V:Ljava/lang/Object;>Ljava/lang/Object;Ljava/util/Map<TK;TV;>;".
// Type arguments of the supertypes are dropped.
func ParseClassSignature(sig string) (*ClassSignature, error) {
	p := &sigParser{s: sig}
	cs := &ClassSignature{}
	var err error
	if cs.TypeParams, err = p.typeParams(); err != nil {
		return nil, err
	}
	if cs.Super, err = p.classType(); err != nil {
		return nil, err
	}
	for !p.done() {
		iface, err := p.classType()
		if err != nil {
			return nil, err
		}
		cs.Interfaces = append(cs.Interfaces, iface)
	}
	return cs, nil
}

// ParseMethodTypeParams decodes only the formal type parameters of a method
// signature; the rest is described by the plain descriptor.
func ParseMethodTypeParams(sig string) ([]TypeParam, error) {
	p := &sigParser{s: sig}
	return p.typeParams()
}

type sigParser struct {
	s   string
	pos int
}

func (p *sigParser) done() bool { return p.pos >= len(p.s) }

func (p *sigParser) peek() byte {
	if p.done() {
		return 0
	}
	return p.s[p.pos]
}

func (p *sigParser) expect(c byte) error {
	if p.peek() != c {
		return fmt.Errorf("signature %q: expected %q at offset %d", p.s, c, p.pos)
	}
	p.pos++
	return nil
}

func (p *sigParser) typeParams() ([]TypeParam, error) {
	if p.peek() != '<' {
		return nil, nil
	}
	p.pos++
	var params []TypeParam
	for p.peek() != '>' {
		if p.done() {
			return nil, fmt.Errorf("signature %q: unterminated type parameters", p.s)
		}
		colon := strings.IndexByte(p.s[p.pos:], ':')
		if colon <= 0 {
			return nil, fmt.Errorf("signature %q: malformed type parameter at offset %d", p.s, p.pos)
		}
		tp := TypeParam{Name: p.s[p.pos : p.pos+colon]}
		p.pos += colon
		for p.peek() == ':' {
			p.pos++
			if p.peek() == ':' {
				// empty class bound, interface bounds follow
				continue
			}
			bound, err := p.referenceType()
			if err != nil {
				return nil, err
			}
			tp.Bounds = append(tp.Bounds, bound)
		}
		params = append(params, tp)
	}
	p.pos++
	return params, nil
}

// referenceType parses a ReferenceTypeSignature and returns its erasure.
func (p *sigParser) referenceType() (string, error) {
	switch p.peek() {
	case 'L':
		return p.classType()
	case 'T':
		end := strings.IndexByte(p.s[p.pos:], ';')
		if end < 0 {
			return "", fmt.Errorf("signature %q: unterminated type variable", p.s)
		}
		p.pos += end + 1
		return "java/lang/Object", nil
	case '[':
		p.pos++
		if _, ok := baseTypes[p.peek()]; ok {
			p.pos++
			return "java/lang/Object", nil
		}
		if _, err := p.referenceType(); err != nil {
			return "", err
		}
		return "java/lang/Object", nil
	}
	return "", fmt.Errorf("signature %q: unexpected %q at offset %d", p.s, p.peek(), p.pos)
}

// classType parses "Lpkg/Outer<args>.Inner<args>;" and returns
// "pkg/Outer$Inner".
func (p *sigParser) classType() (string, error) {
	if err := p.expect('L'); err != nil {
		return "", err
	}
	var name strings.Builder
	for {
		c := p.peek()
		switch c {
		case 0:
			return "", fmt.Errorf("signature %q: unterminated class type", p.s)
		case ';':
			p.pos++
			return name.String(), nil
		case '<':
			if err := p.skipTypeArgs(); err != nil {
				return "", err
			}
		case '.':
			name.WriteByte('$')
			p.pos++
		default:
			name.WriteByte(c)
			p.pos++
		}
	}
}

func (p *sigParser) skipTypeArgs() error {
	if err := p.expect('<'); err != nil {
		return err
	}
	for p.peek() != '>' {
		switch p.peek() {
		case 0:
			return fmt.Errorf("signature %q: unterminated type arguments", p.s)
		case '*':
			p.pos++
		case '+', '-':
			p.pos++
			if _, err := p.referenceType(); err != nil {
				return err
			}
		default:
			if _, err := p.referenceType(); err != nil {
				return err
			}
		}
	}
	p.pos++
	return nil
}
