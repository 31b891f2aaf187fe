package plotscript

import (
	"math"
	"math/cmplx"
)

var builtins = map[string]Procedure{
	"+":          add,
	"-":          sub,
	"*":          mul,
	"/":          div,
	"^":          pow,
	"sqrt":       sqrt,
	"ln":         ln,
	"sin":        realFunc("sin", math.Sin),
	"cos":        realFunc("cos", math.Cos),
	"tan":        realFunc("tan", math.Tan),
	"real":       complexFunc("real", func(c complex128) Atom { return NewNumber(real(c)) }),
	"imag":       complexFunc("imag", func(c complex128) Atom { return NewNumber(imag(c)) }),
	"mag":        complexFunc("mag", func(c complex128) Atom { return NewNumber(cmplx.Abs(c)) }),
	"arg":        complexFunc("arg", func(c complex128) Atom { return NewNumber(cmplx.Phase(c)) }),
	"conj":       complexFunc("conj", func(c complex128) Atom { return NewComplex(cmplx.Conj(c)) }),
	"first":      first,
	"rest":       rest,
	"length":     length,
	"append":     appendList,
	"join":       join,
	"range":      rangeList,
	"make-point": makePoint,
	"make-line":  makeLine,
	"make-text":  makeText,
}

// NewEnv returns a global environment with all builtins and constants.
func NewEnv() *Env {
	env := newEmptyEnv()
	for name, f := range builtins {
		env.AddBuiltin(name, f)
	}
	env.Define("pi", number(math.Pi))
	env.Define("e", number(math.E))
	env.Define("I", NewExpression(NewComplex(1i)))
	return env
}

func numeric(e Expression) bool {
	return len(e.tail) == 0 && e.head.isNumeric()
}

// numericArgs checks every argument and reports whether any is complex.
func numericArgs(name string, args []Expression) (bool, error) {
	isComplex := false
	for _, a := range args {
		if !numeric(a) {
			return false, semanticError("in call to %s, argument not a number", name)
		}
		isComplex = isComplex || a.head.IsComplex()
	}
	return isComplex, nil
}

func numberResult(isComplex bool, c complex128) Expression {
	if isComplex {
		return NewExpression(NewComplex(c))
	}
	return number(real(c))
}

func arity(name string, args []Expression, n int) error {
	if len(args) != n {
		return semanticError("in call to %s: invalid number of arguments", name)
	}
	return nil
}

func add(args []Expression) (Expression, error) {
	isComplex, err := numericArgs("add", args)
	if err != nil {
		return Expression{}, err
	}
	var sum complex128
	for _, a := range args {
		sum += a.head.AsComplex()
	}
	return numberResult(isComplex, sum), nil
}

func mul(args []Expression) (Expression, error) {
	isComplex, err := numericArgs("mul", args)
	if err != nil {
		return Expression{}, err
	}
	var product complex128 = 1
	for _, a := range args {
		product *= a.head.AsComplex()
	}
	return numberResult(isComplex, product), nil
}

// sub negates a single argument.
func sub(args []Expression) (Expression, error) {
	isComplex, err := numericArgs("subtract", args)
	if err != nil {
		return Expression{}, err
	}
	switch len(args) {
	case 1:
		return numberResult(isComplex, -args[0].head.AsComplex()), nil
	case 2:
		return numberResult(isComplex, args[0].head.AsComplex()-args[1].head.AsComplex()), nil
	}
	return Expression{}, semanticError("in call to subtract: invalid number of arguments")
}

// div takes the reciprocal of a single argument.
func div(args []Expression) (Expression, error) {
	isComplex, err := numericArgs("division", args)
	if err != nil {
		return Expression{}, err
	}
	switch len(args) {
	case 1:
		if !isComplex {
			return number(1 / args[0].head.num), nil
		}
		return numberResult(true, 1/args[0].head.AsComplex()), nil
	case 2:
		if !isComplex {
			return number(args[0].head.num / args[1].head.num), nil
		}
		return numberResult(true, args[0].head.AsComplex()/args[1].head.AsComplex()), nil
	}
	return Expression{}, semanticError("in call to division: invalid number of arguments")
}

func pow(args []Expression) (Expression, error) {
	if err := arity("exponential", args, 2); err != nil {
		return Expression{}, err
	}
	isComplex, err := numericArgs("exponential", args)
	if err != nil {
		return Expression{}, err
	}
	if !isComplex {
		return number(math.Pow(args[0].head.num, args[1].head.num)), nil
	}
	return numberResult(true, cmplx.Pow(args[0].head.AsComplex(), args[1].head.AsComplex())), nil
}

// sqrt of a negative number is complex.
func sqrt(args []Expression) (Expression, error) {
	if err := arity("sqrt", args, 1); err != nil {
		return Expression{}, err
	}
	isComplex, err := numericArgs("sqrt", args)
	if err != nil {
		return Expression{}, err
	}
	a := args[0].head
	if !isComplex && a.num >= 0 {
		return number(math.Sqrt(a.num)), nil
	}
	return numberResult(true, cmplx.Sqrt(a.AsComplex())), nil
}

func ln(args []Expression) (Expression, error) {
	if err := arity("ln", args, 1); err != nil {
		return Expression{}, err
	}
	a := args[0]
	if len(a.tail) > 0 || !a.head.IsNumber() || a.head.num <= 0 {
		return Expression{}, semanticError("in call to ln: argument not a positive number")
	}
	return number(math.Log(a.head.num)), nil
}

func realFunc(name string, f func(float64) float64) Procedure {
	return func(args []Expression) (Expression, error) {
		if err := arity(name, args, 1); err != nil {
			return Expression{}, err
		}
		a := args[0]
		if len(a.tail) > 0 || !a.head.IsNumber() {
			return Expression{}, semanticError("in call to %s: argument not a number", name)
		}
		return number(f(a.head.num)), nil
	}
}

func complexFunc(name string, f func(complex128) Atom) Procedure {
	return func(args []Expression) (Expression, error) {
		if err := arity(name, args, 1); err != nil {
			return Expression{}, err
		}
		a := args[0]
		if len(a.tail) > 0 || !a.head.IsComplex() {
			return Expression{}, semanticError("in call to %s: argument not complex", name)
		}
		return NewExpression(f(a.head.cplx)), nil
	}
}

func listArg(name string, args []Expression, i int) (Expression, error) {
	if !args[i].IsList() {
		return Expression{}, semanticError("in call to %s: argument not a list", name)
	}
	return args[i], nil
}

func first(args []Expression) (Expression, error) {
	if err := arity("first", args, 1); err != nil {
		return Expression{}, err
	}
	l, err := listArg("first", args, 0)
	if err != nil {
		return Expression{}, err
	}
	if len(l.tail) == 0 {
		return Expression{}, semanticError("in call to first: argument is an empty list")
	}
	return l.tail[0], nil
}

func rest(args []Expression) (Expression, error) {
	if err := arity("rest", args, 1); err != nil {
		return Expression{}, err
	}
	l, err := listArg("rest", args, 0)
	if err != nil {
		return Expression{}, err
	}
	if len(l.tail) == 0 {
		return Expression{}, semanticError("in call to rest: argument is an empty list")
	}
	return NewList(l.tail[1:]...), nil
}

func length(args []Expression) (Expression, error) {
	if err := arity("length", args, 1); err != nil {
		return Expression{}, err
	}
	l, err := listArg("length", args, 0)
	if err != nil {
		return Expression{}, err
	}
	return number(float64(len(l.tail))), nil
}

func appendList(args []Expression) (Expression, error) {
	if err := arity("append", args, 2); err != nil {
		return Expression{}, err
	}
	l, err := listArg("append", args, 0)
	if err != nil {
		return Expression{}, err
	}
	items := append(l.Tail(), args[1])
	return NewList(items...), nil
}

func join(args []Expression) (Expression, error) {
	if err := arity("join", args, 2); err != nil {
		return Expression{}, err
	}
	l1, err := listArg("join", args, 0)
	if err != nil {
		return Expression{}, err
	}
	l2, err := listArg("join", args, 1)
	if err != nil {
		return Expression{}, err
	}
	return NewList(append(l1.Tail(), l2.tail...)...), nil
}

// (range start stop step) includes stop when it is hit exactly.
func rangeList(args []Expression) (Expression, error) {
	if err := arity("range", args, 3); err != nil {
		return Expression{}, err
	}
	for _, a := range args {
		if len(a.tail) > 0 || !a.head.IsNumber() {
			return Expression{}, semanticError("in call to range: argument not a number")
		}
	}
	start, stop, step := args[0].head.num, args[1].head.num, args[2].head.num
	if start >= stop {
		return Expression{}, semanticError("in call to range: begin greater than end")
	}
	if step <= 0 {
		return Expression{}, semanticError("in call to range: negative or zero increment")
	}
	var items []Expression
	for i := 0; ; i++ {
		x := start + float64(i)*step
		if x > stop {
			break
		}
		items = append(items, number(x))
	}
	return NewList(items...), nil
}

func makePoint(args []Expression) (Expression, error) {
	if err := arity("make-point", args, 2); err != nil {
		return Expression{}, err
	}
	for _, a := range args {
		if len(a.tail) > 0 || !a.head.IsNumber() {
			return Expression{}, semanticError("in call to make-point: argument not a number")
		}
	}
	pt := NewList(args[0], args[1])
	pt = pt.WithProperty("object-name", str("point"))
	return pt.WithProperty("size", number(0)), nil
}

func makeLine(args []Expression) (Expression, error) {
	if err := arity("make-line", args, 2); err != nil {
		return Expression{}, err
	}
	for _, a := range args {
		if !a.HasProperty("object-name", "point") {
			return Expression{}, semanticError("in call to make-line: argument not a point")
		}
	}
	l := NewList(args[0], args[1])
	l = l.WithProperty("object-name", str("line"))
	return l.WithProperty("thickness", number(1)), nil
}

func makeText(args []Expression) (Expression, error) {
	if err := arity("make-text", args, 1); err != nil {
		return Expression{}, err
	}
	if len(args[0].tail) > 0 || !args[0].head.IsString() {
		return Expression{}, semanticError("in call to make-text: argument not a string")
	}
	origin, err := makePoint([]Expression{number(0), number(0)})
	if err != nil {
		return Expression{}, err
	}
	t := NewExpression(args[0].head)
	t = t.WithProperty("object-name", str("text"))
	t = t.WithProperty("position", origin)
	t = t.WithProperty("text-scale", number(1))
	return t.WithProperty("text-rotation", number(0)), nil
}
