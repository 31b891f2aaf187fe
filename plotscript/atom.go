package plotscript

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type AtomKind uint8

const (
	NoneKind AtomKind = iota
	NumberKind
	ComplexKind
	SymbolKind
	StringKind
)

// Atom is a terminal value. Only the field matching kind is meaningful.
type Atom struct {
	kind AtomKind
	num  float64
	cplx complex128
	text string
}

func NewNumber(f float64) Atom {
	return Atom{kind: NumberKind, num: f}
}

func NewComplex(c complex128) Atom {
	return Atom{kind: ComplexKind, cplx: c}
}

func NewSymbol(s string) Atom {
	return Atom{kind: SymbolKind, text: s}
}

// NewString holds s without surrounding quotes.
func NewString(s string) Atom {
	return Atom{kind: StringKind, text: s}
}

// NewAtomFromToken classifies a token as read by the parser.
// A token that starts like a number but carries trailing characters
// (say "1abc" or "-5x") yields a None atom.
func NewAtomFromToken(token string) Atom {
	if token == "" {
		return Atom{}
	}
	if token[0] == '"' {
		s := strings.TrimPrefix(token, `"`)
		s = strings.TrimSuffix(s, `"`)
		return NewString(s)
	}
	n := numberPrefix(token)
	switch {
	case n == 0:
		return NewSymbol(token)
	case n < len(token):
		return Atom{}
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return Atom{}
	}
	return NewNumber(f)
}

// numberPrefix returns the length of the longest prefix of token written
// in decimal or exponent notation, or 0 if there is none.
// inf, nan, hex floats and digit separators are not numbers here.
func numberPrefix(token string) int {
	i := 0
	if i < len(token) && (token[i] == '+' || token[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(token) && isDigit(token[i]); i++ {
		digits++
	}
	if i < len(token) && token[i] == '.' {
		i++
		for ; i < len(token) && isDigit(token[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(token) && (token[i] == 'e' || token[i] == 'E') {
		j := i + 1
		if j < len(token) && (token[j] == '+' || token[j] == '-') {
			j++
		}
		start := j
		for ; j < len(token) && isDigit(token[j]); j++ {
		}
		if j > start {
			i = j
		}
	}
	return i
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func (a Atom) Kind() AtomKind { return a.kind }
func (a Atom) IsNone() bool { return a.kind == NoneKind }
func (a Atom) IsNumber() bool { return a.kind == NumberKind }
func (a Atom) IsComplex() bool { return a.kind == ComplexKind }
func (a Atom) IsSymbol() bool { return a.kind == SymbolKind }
func (a Atom) IsString() bool { return a.kind == StringKind }
func (a Atom) isNumeric() bool { return a.kind == NumberKind || a.kind == ComplexKind }

// AsNumber returns the real part of a complex atom and 0 for non-numbers.
func (a Atom) AsNumber() float64 {
	switch a.kind {
	case NumberKind:
		return a.num
	case ComplexKind:
		return real(a.cplx)
	}
	return 0
}

func (a Atom) AsComplex() complex128 {
	switch a.kind {
	case NumberKind:
		return complex(a.num, 0)
	case ComplexKind:
		return a.cplx
	}
	return 0
}

// AsSymbol returns the text of both symbols and strings.
func (a Atom) AsSymbol() string {
	if a.kind == SymbolKind || a.kind == StringKind {
		return a.text
	}
	return ""
}

func (a Atom) AsString() string {
	if a.kind == StringKind {
		return a.text
	}
	return ""
}

// Equal compares numbers within twice machine epsilon.
// This is not transitive near the tolerance.
func (a Atom) Equal(b Atom) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case NoneKind:
		return true
	case NumberKind:
		return closeEnough(a.num, b.num)
	case ComplexKind:
		return closeEnough(real(a.cplx), real(b.cplx)) && closeEnough(imag(a.cplx), imag(b.cplx))
	}
	return a.text == b.text
}

var epsilon = math.Nextafter(1, 2) - 1

func closeEnough(x, y float64) bool {
	diff := math.Abs(x - y)
	if math.IsNaN(diff) {
		return false
	}
	return diff <= 2*epsilon
}

func (a Atom) String() string {
	switch a.kind {
	case NumberKind:
		return formatNumber(a.num)
	case ComplexKind:
		return fmt.Sprintf("(%s,%s)", formatNumber(real(a.cplx)), formatNumber(imag(a.cplx)))
	case SymbolKind:
		return a.text
	case StringKind:
		return `"` + a.text + `"`
	}
	return ""
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
