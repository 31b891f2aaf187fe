package plotscript

import (
	"math"
	"testing"
)

func TestAtomFromToken(t *testing.T) {
	for i, tt := range []struct {
		token string
		kind  AtomKind
		want  string
	}{
		{token: "42", kind: NumberKind, want: "42"},
		{token: "-3.5", kind: NumberKind, want: "-3.5"},
		{token: "1e3", kind: NumberKind, want: "1000"},
		{token: "+", kind: SymbolKind, want: "+"},
		{token: "-", kind: SymbolKind, want: "-"},
		{token: "make-point", kind: SymbolKind, want: "make-point"},
		{token: "inf", kind: SymbolKind, want: "inf"},
		{token: "nan", kind: SymbolKind, want: "nan"},
		{token: `"hello"`, kind: StringKind, want: `"hello"`},
		{token: "1abc", kind: NoneKind, want: ""},
		{token: "0x10", kind: NoneKind, want: ""},
		{token: "-5abc", kind: NoneKind, want: ""},
		{token: ".5x", kind: NoneKind, want: ""},
		{token: "1e", kind: NoneKind, want: ""},
		{token: "1.", kind: NumberKind, want: "1"},
		{token: ".25", kind: NumberKind, want: "0.25"},
		{token: "+2E-1", kind: NumberKind, want: "0.2"},
		{token: "-x", kind: SymbolKind, want: "-x"},
		{token: "e2", kind: SymbolKind, want: "e2"},
		{token: ".", kind: SymbolKind, want: "."},
	} {
		a := NewAtomFromToken(tt.token)
		if a.Kind() != tt.kind {
			t.Errorf("%d) %q: got kind %d want %d", i, tt.token, a.Kind(), tt.kind)
		}
		if got := a.String(); got != tt.want {
			t.Errorf("%d) %q: got %s want %s", i, tt.token, got, tt.want)
		}
	}
}

func TestAtomProjections(t *testing.T) {
	num := NewNumber(2)
	cplx := NewComplex(complex(3, 4))
	sym := NewSymbol("x")
	s := NewString("text")
	none := Atom{}

	if num.AsNumber() != 2 || cplx.AsNumber() != 3 || sym.AsNumber() != 0 {
		t.Error("AsNumber")
	}
	if num.AsComplex() != complex(2, 0) || cplx.AsComplex() != complex(3, 4) || s.AsComplex() != 0 {
		t.Error("AsComplex")
	}
	if sym.AsSymbol() != "x" || s.AsSymbol() != "text" || num.AsSymbol() != "" {
		t.Error("AsSymbol")
	}
	if s.AsString() != "text" || sym.AsString() != "" || none.AsString() != "" {
		t.Error("AsString")
	}
	if !s.IsString() || s.IsSymbol() || !sym.IsSymbol() || sym.IsString() {
		t.Error("strings and symbols are distinct kinds")
	}
	if got := cplx.String(); got != "(3,4)" {
		t.Errorf("got %s want (3,4)", got)
	}
}

func TestAtomEqual(t *testing.T) {
	eps := math.Nextafter(1, 2) - 1
	for i, tt := range []struct {
		a, b Atom
		want bool
	}{
		{a: Atom{}, b: Atom{}, want: true},
		{a: NewNumber(1), b: NewNumber(1), want: true},
		{a: NewNumber(1), b: NewNumber(1 + eps), want: true},
		{a: NewNumber(1), b: NewNumber(1 + 2*eps), want: true},
		{a: NewNumber(1), b: NewNumber(1 + 4*eps), want: false},
		{a: NewNumber(math.NaN()), b: NewNumber(math.NaN()), want: false},
		{a: NewComplex(complex(1, 1)), b: NewComplex(complex(1, 1+eps)), want: true},
		{a: NewComplex(complex(1, 1)), b: NewComplex(complex(1, 2)), want: false},
		{a: NewNumber(1), b: NewComplex(complex(1, 0)), want: false},
		{a: NewSymbol("a"), b: NewSymbol("a"), want: true},
		{a: NewSymbol("a"), b: NewString("a"), want: false},
		{a: NewString("a"), b: NewString("b"), want: false},
		{a: Atom{}, b: NewSymbol(""), want: false},
	} {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%d) %v == %v: got %t want %t", i, tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Equal(tt.a); got != tt.want {
			t.Errorf("%d) not symmetric", i)
		}
	}
}

// Equality within tolerance does not chain: a~b and b~c but not a~c.
func TestAtomEqualNotTransitive(t *testing.T) {
	eps := math.Nextafter(1, 2) - 1
	a, b, c := NewNumber(1), NewNumber(1+2*eps), NewNumber(1+4*eps)
	if !a.Equal(b) || !b.Equal(c) {
		t.Fatal("neighbours should be equal")
	}
	if a.Equal(c) {
		t.Fatal("tolerance should not chain")
	}
}
