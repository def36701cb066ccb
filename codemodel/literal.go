package codemodel

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf16"
)

// Lit is an int literal. Values outside the Java int range are an illegal
// declaration; use LitLong for those.
func Lit(v int) Expr {
	if v < math.MinInt32 || v > math.MaxInt32 {
		illegalf("int literal %d out of range; use LitLong", v)
	}
	return newAtom(strconv.Itoa(v))
}

func LitLong(v int64) Expr { return newAtom(strconv.FormatInt(v, 10) + "L") }

// LitFloat prints v the way java.lang.Float.toString does, with an F
// suffix. NaN and the infinities become the wrapper constants.
func LitFloat(v float32) Expr {
	if s, ok := specialFloat("java.lang.Float", float64(v)); ok {
		return newAtom(s)
	}
	return newAtom(javaFloatString(float64(v), 32) + "F")
}

// LitDouble prints v the way java.lang.Double.toString does, with a D
// suffix.
func LitDouble(v float64) Expr {
	if s, ok := specialFloat("java.lang.Double", v); ok {
		return newAtom(s)
	}
	return newAtom(javaFloatString(v, 64) + "D")
}

func LitBool(v bool) Expr {
	if v {
		return True
	}
	return False
}

// LitChar is a char literal. Runes outside the Basic Multilingual Plane do
// not fit a Java char.
func LitChar(r rune) Expr {
	if r > 0xFFFF {
		illegalf("%U does not fit in a char", r)
	}
	return newAtom("'" + quotify('\'', string(r)) + "'")
}

func LitString(s string) Expr {
	return newAtom(`"` + quotify('"', s) + `"`)
}

func specialFloat(wrapper string, v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return wrapper + ".NaN", true
	case math.IsInf(v, 1):
		return wrapper + ".POSITIVE_INFINITY", true
	case math.IsInf(v, -1):
		return wrapper + ".NEGATIVE_INFINITY", true
	}
	return "", false
}

// javaFloatString formats v with the shortest digits that round-trip:
// plain decimal for magnitudes in [1e-3, 1e7), otherwise d.dddE[-]n. The
// fraction always has at least one digit.
func javaFloatString(v float64, bits int) string {
	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(v, 'f', -1, bits)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(v, 'e', -1, bits)
	mant, exp, _ := strings.Cut(s, "e")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	if exp[0] == '+' {
		exp = exp[1:]
	}
	// Go pads the exponent to two digits.
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(strings.TrimPrefix(exp, "-"), "0")
	if exp == "" {
		exp = "0"
	}
	if neg {
		exp = "-" + exp
	}
	return mant + "E" + exp
}

const (
	charEscape = "\b\t\n\f\r\"'\\"
	charMacro  = "btnfr\"'\\"
)

// quotify escapes s for a literal delimited by quote. The other quote
// character is left alone; anything outside printable ASCII becomes a
// \uXXXX escape of its UTF-16 code units.
func quotify(quote rune, s string) string {
	var sb strings.Builder
	for _, c := range utf16.Encode([]rune(s)) {
		r := rune(c)
		if j := strings.IndexRune(charEscape, r); j >= 0 && r < 0x80 {
			if (quote == '"' && r == '\'') || (quote == '\'' && r == '"') {
				sb.WriteRune(r)
			} else {
				sb.WriteByte('\\')
				sb.WriteByte(charMacro[j])
			}
			continue
		}
		if r < 0x20 || r > 0x7E {
			hex := strconv.FormatInt(int64(c), 16)
			sb.WriteString(`\u`)
			sb.WriteString(strings.Repeat("0", 4-len(hex)))
			sb.WriteString(hex)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
