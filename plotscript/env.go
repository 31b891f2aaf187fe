package plotscript

import (
	"github.com/benbjohnson/immutable"
)

// Procedure is a builtin implemented in Go.
type Procedure func(args []Expression) (Expression, error)

// Env maps symbols to values and to builtin procedures. Both maps are
// persistent, so copying an Env for a procedure call is O(1) and the
// callee's bindings never leak back to the caller.
type Env struct {
	exprs *immutable.Map[string, Expression]
	procs *immutable.Map[string, Procedure]
}

func newEmptyEnv() *Env {
	return &Env{
		exprs: immutable.NewMap[string, Expression](nil),
		procs: immutable.NewMap[string, Procedure](nil),
	}
}

func (e *Env) Lookup(s string) (Expression, bool) {
	return e.exprs.Get(s)
}

func (e *Env) IsProc(s string) bool {
	_, ok := e.procs.Get(s)
	return ok
}

func (e *Env) Proc(s string) (Procedure, bool) {
	return e.procs.Get(s)
}

// Define binds s, shadowing any previous binding.
func (e *Env) Define(s string, v Expression) {
	e.exprs = e.exprs.Set(s, v)
}

func (e *Env) AddBuiltin(s string, f Procedure) {
	e.procs = e.procs.Set(s, f)
}

func (e *Env) Copy() *Env {
	c := *e
	return &c
}

type process struct {
	interrupt *Interrupt
}

// Eval evaluates e against env. A nil intr is never set.
func Eval(env *Env, e Expression, intr *Interrupt) (Expression, error) {
	p := &process{interrupt: intr}
	return p.eval(env, e)
}

func (p *process) eval(env *Env, e Expression) (Expression, error) {
	if p.interrupt.IsSet() {
		return Expression{}, ErrInterrupted
	}
	if e.head.IsSymbol() && e.head.text == "list" {
		return p.evalList(env, e)
	}
	if len(e.tail) == 0 {
		return lookup(env, e.head)
	}
	if e.head.IsSymbol() {
		if form, ok := specialForms[e.head.text]; ok {
			return form(p, env, e)
		}
	}
	// procedure call
	args := make([]Expression, len(e.tail))
	for i, arg := range e.tail {
		evarg, err := p.eval(env, arg)
		if err != nil {
			return Expression{}, err
		}
		args[i] = evarg
	}
	return p.apply(env, e.head, args)
}

func lookup(env *Env, head Atom) (Expression, error) {
	switch {
	case head.IsSymbol():
		v, ok := env.Lookup(head.text)
		if !ok {
			return Expression{}, semanticError("during handle lookup: unknown symbol %s", head.text)
		}
		return v, nil
	case head.IsNumber(), head.IsComplex(), head.IsString():
		return NewExpression(head), nil
	}
	return Expression{}, semanticError("during handle lookup: invalid type in terminal expression")
}

func (p *process) evalList(env *Env, e Expression) (Expression, error) {
	items := make([]Expression, len(e.tail))
	for i, t := range e.tail {
		v, err := p.eval(env, t)
		if err != nil {
			return Expression{}, err
		}
		items[i] = v
	}
	return NewList(items...), nil
}

// apply calls the lambda bound to op, or else the builtin named op.
func (p *process) apply(env *Env, op Atom, args []Expression) (Expression, error) {
	if fn, ok := lambdaNamed(env, op); ok {
		return p.callLambda(env, fn, args)
	}
	if !op.IsSymbol() {
		return Expression{}, semanticError("during evaluation: not a symbol")
	}
	proc, ok := env.Proc(op.text)
	if !ok {
		return Expression{}, semanticError("during evaluation: symbol does not name a procedure")
	}
	return proc(args)
}

func lambdaNamed(env *Env, op Atom) (Expression, bool) {
	if !op.IsSymbol() {
		return Expression{}, false
	}
	fn, ok := env.Lookup(op.text)
	return fn, ok && fn.IsLambda()
}

// callLambda evaluates the body in a copy of the calling environment,
// not the one the lambda was defined in.
func (p *process) callLambda(env *Env, fn Expression, args []Expression) (Expression, error) {
	params := fn.tail[0]
	if len(args) != len(params.tail) {
		return Expression{}, semanticError("during apply: error in call to procedure: invalid number of arguments")
	}
	inner := env.Copy()
	for i, param := range params.tail {
		inner.Define(param.head.text, args[i])
	}
	return p.eval(inner, fn.tail[1])
}
