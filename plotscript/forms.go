package plotscript

// specialForm receives its arguments unevaluated.
type specialForm func(p *process, env *Env, e Expression) (Expression, error)

var specialForms map[string]specialForm

func init() {
	specialForms = map[string]specialForm{
		"begin":           begin,
		"define":          define,
		"lambda":          lambda,
		"apply":           applyForm,
		"map":             mapForm,
		"set-property":    setProperty,
		"get-property":    getProperty,
		"discrete-plot":   discretePlot,
		"continuous-plot": continuousPlot,
	}
}

var (
	reservedForms     = map[string]bool{"define": true, "begin": true, "lambda": true, "list": true}
	reservedConstants = map[string]bool{"pi": true, "e": true, "I": true}
)

func begin(p *process, env *Env, e Expression) (Expression, error) {
	var result Expression
	for _, t := range e.tail {
		r, err := p.eval(env, t)
		if err != nil {
			return Expression{}, err
		}
		result = r
	}
	return result, nil
}

func define(p *process, env *Env, e Expression) (Expression, error) {
	if len(e.tail) != 2 {
		return Expression{}, semanticError("during handle define: invalid number of arguments to define")
	}
	target := e.tail[0].head
	if !target.IsSymbol() {
		return Expression{}, semanticError("during handle define: first argument to define not symbol")
	}
	s := target.text
	switch {
	case reservedForms[s]:
		return Expression{}, semanticError("during handle define: attempt to redefine a special-form")
	case env.IsProc(s):
		return Expression{}, semanticError("during handle define: attempt to redefine a built-in procedure")
	case reservedConstants[s]:
		return Expression{}, semanticError("during handle define: attempt to redefine a built-in symbol")
	}
	v, err := p.eval(env, e.tail[1])
	if err != nil {
		return Expression{}, err
	}
	env.Define(s, v)
	return v, nil
}

// lambda keeps the body unevaluated; (lambda (x y) body) has the
// template parsed as head x with tail (y).
func lambda(p *process, env *Env, e Expression) (Expression, error) {
	if len(e.tail) != 2 {
		return Expression{}, semanticError("during handle lambda: invalid number of arguments to lambda")
	}
	tmpl := e.tail[0]
	formals := make([]Expression, 0, len(tmpl.tail)+1)
	for _, a := range append([]Expression{NewExpression(tmpl.head)}, tmpl.tail...) {
		if !a.head.IsSymbol() || len(a.tail) > 0 {
			return Expression{}, semanticError("during handle lambda: parameter is not a symbol")
		}
		formals = append(formals, NewExpression(a.head))
	}
	return newLambda(NewList(formals...), e.tail[1]), nil
}

// checkProcedure validates the operator of apply and map, which must
// name a lambda or be a bare builtin name.
func checkProcedure(env *Env, form string, op Expression) error {
	if _, ok := lambdaNamed(env, op.head); ok {
		return nil
	}
	if !op.head.IsSymbol() || !env.IsProc(op.head.text) || len(op.tail) > 0 {
		return semanticError("first argument to %s not a procedure", form)
	}
	return nil
}

func applyForm(p *process, env *Env, e Expression) (Expression, error) {
	if len(e.tail) != 2 {
		return Expression{}, semanticError("during apply: invalid number of arguments")
	}
	if err := checkProcedure(env, "apply", e.tail[0]); err != nil {
		return Expression{}, err
	}
	args, err := p.eval(env, e.tail[1])
	if err != nil {
		return Expression{}, err
	}
	if !args.IsList() {
		return Expression{}, semanticError("second argument to apply not a list")
	}
	return p.apply(env, e.tail[0].head, args.tail)
}

func mapForm(p *process, env *Env, e Expression) (Expression, error) {
	if len(e.tail) != 2 {
		return Expression{}, semanticError("during map: invalid number of arguments")
	}
	if err := checkProcedure(env, "map", e.tail[0]); err != nil {
		return Expression{}, err
	}
	list, err := p.eval(env, e.tail[1])
	if err != nil {
		return Expression{}, err
	}
	if !list.IsList() {
		return Expression{}, semanticError("second argument to map not a list")
	}
	results := make([]Expression, len(list.tail))
	for i, item := range list.tail {
		r, err := p.apply(env, e.tail[0].head, []Expression{item})
		if err != nil {
			return Expression{}, err
		}
		results[i] = r
	}
	return NewList(results...), nil
}

func setProperty(p *process, env *Env, e Expression) (Expression, error) {
	if len(e.tail) != 3 {
		return Expression{}, semanticError("invalid number of arguments for set-property")
	}
	key := e.tail[0].head
	if !key.IsString() {
		return Expression{}, semanticError("first argument to set-property not a string")
	}
	base, err := p.eval(env, e.tail[2])
	if err != nil {
		return Expression{}, err
	}
	v, err := p.eval(env, e.tail[1])
	if err != nil {
		return Expression{}, err
	}
	return base.WithProperty(key.text, v), nil
}

func getProperty(p *process, env *Env, e Expression) (Expression, error) {
	if len(e.tail) != 2 {
		return Expression{}, semanticError("invalid number of arguments for get-property")
	}
	key := e.tail[0].head
	if !key.IsString() {
		return Expression{}, semanticError("first argument to get-property not a string")
	}
	target, err := p.eval(env, e.tail[1])
	if err != nil {
		return Expression{}, err
	}
	return target.Property(key.text), nil
}
