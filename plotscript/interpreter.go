package plotscript

import (
	"errors"
	"io"
	"strings"
)

// Interpreter owns one global environment. It is not safe for concurrent
// use; only Interrupt may be touched from another goroutine.
type Interpreter struct {
	Env       *Env
	Interrupt *Interrupt
	program   Expression
	parsed    bool
}

func New() *Interpreter {
	return &Interpreter{Env: NewEnv(), Interrupt: &Interrupt{}}
}

// ParseStream parses a program for a later Evaluate and reports success.
func (i *Interpreter) ParseStream(r io.Reader) bool {
	e, err := Parse(r)
	if err != nil {
		i.parsed = false
		return false
	}
	i.program, i.parsed = e, true
	return true
}

// Evaluate runs the program from the last successful ParseStream.
func (i *Interpreter) Evaluate() (Expression, error) {
	if !i.parsed {
		return Expression{}, errors.New("no program parsed")
	}
	return i.EvalExpr(i.program)
}

func (i *Interpreter) EvalExpr(e Expression) (Expression, error) {
	return Eval(i.Env, e, i.Interrupt)
}

func (i *Interpreter) Eval(input string) (Expression, error) {
	e, err := Parse(strings.NewReader(input))
	if err != nil {
		return Expression{}, err
	}
	return i.EvalExpr(e)
}
