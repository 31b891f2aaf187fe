package plotscript

import (
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
)

type Kind uint8

const (
	ExprNone Kind = iota
	ExprSingleton
	ExprList
	ExprLambda
	ExprPlot
)

// Expression is both the parsed program and the value it evaluates to.
// Tails are never mutated after construction, so copies share them.
type Expression struct {
	kind  Kind
	head  Atom
	tail  []Expression
	props *immutable.Map[string, Expression]
}

func NewExpression(a Atom) Expression {
	return Expression{kind: ExprSingleton, head: a}
}

// NewCompound is the node the parser builds for (head tail...).
func NewCompound(head Atom, tail ...Expression) Expression {
	return Expression{kind: ExprSingleton, head: head, tail: tail}
}

func NewList(items ...Expression) Expression {
	return Expression{kind: ExprList, tail: items}
}

func newLambda(params, body Expression) Expression {
	return Expression{kind: ExprLambda, tail: []Expression{params, body}}
}

func newPlot(plotType string, items []Expression) Expression {
	e := Expression{kind: ExprPlot, tail: items}
	return e.WithProperty("type", NewExpression(NewString(plotType)))
}

func number(f float64) Expression {
	return NewExpression(NewNumber(f))
}

func str(s string) Expression {
	return NewExpression(NewString(s))
}

func (e Expression) Kind() Kind { return e.kind }
func (e Expression) Head() Atom { return e.head }
func (e Expression) TailLen() int { return len(e.tail) }
func (e Expression) IsNone() bool { return e.kind == ExprNone }
func (e Expression) IsList() bool { return e.kind == ExprList }
func (e Expression) IsLambda() bool { return e.kind == ExprLambda }
func (e Expression) IsPlot() bool { return e.kind == ExprPlot }

// Tail returns a copy of the children.
func (e Expression) Tail() []Expression {
	return append([]Expression(nil), e.tail...)
}

// Property returns a None expression if key is not set.
func (e Expression) Property(key string) Expression {
	if e.props == nil {
		return Expression{}
	}
	v, _ := e.props.Get(key)
	return v
}

// WithProperty returns a copy of e with key set to v. e itself is unchanged.
func (e Expression) WithProperty(key string, v Expression) Expression {
	props := e.props
	if props == nil {
		props = immutable.NewMap[string, Expression](nil)
	}
	e.props = props.Set(key, v)
	return e
}

func (e Expression) PropertyKeys() []string {
	if e.props == nil {
		return nil
	}
	keys := make([]string, 0, e.props.Len())
	itr := e.props.Iterator()
	for !itr.Done() {
		k, _, _ := itr.Next()
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HasProperty reports whether key holds the string value.
func (e Expression) HasProperty(key, value string) bool {
	return e.Property(key).Equal(str(value))
}

func (e Expression) IsDP() bool {
	if e.props != nil {
		if t, ok := e.props.Get("type"); ok {
			return t.Equal(str("DP"))
		}
	}
	return e.kind == ExprPlot
}

// IsCP answers from the first non-"type" property in key order.
// This mirrors long-standing behaviour: a plot carrying count properties
// never reports CP. Renderers should read the "type" property instead.
func (e Expression) IsCP() bool {
	for _, k := range e.PropertyKeys() {
		if k != "type" {
			return e.Property(k).Equal(str("CP"))
		}
	}
	return false
}

// NumericProperty returns -1 if key is not set.
func (e Expression) NumericProperty(key string) float64 {
	if e.props == nil {
		return -1
	}
	v, ok := e.props.Get(key)
	if !ok {
		return -1
	}
	return v.head.AsNumber()
}

// TextProperties gives the placement of a text drawable.
// Scale is never below 1; all defaults apply when position is unset.
func (e Expression) TextProperties() (x, y, scale, rotation float64) {
	pos := e.Property("position")
	if pos.TailLen() < 2 {
		return 0, 0, 1, 0
	}
	scale = 1
	if s := e.NumericProperty("text-scale"); s >= 1 {
		scale = s
	}
	rotation = e.Property("text-rotation").head.AsNumber()
	return pos.tail[0].head.AsNumber(), pos.tail[1].head.AsNumber(), scale, rotation
}

// Equal ignores properties.
func (e Expression) Equal(o Expression) bool {
	if !e.head.Equal(o.head) || len(e.tail) != len(o.tail) {
		return false
	}
	for i := range e.tail {
		if !e.tail[i].Equal(o.tail[i]) {
			return false
		}
	}
	return true
}

func (e Expression) String() string {
	if e.kind == ExprNone {
		return "NONE"
	}
	if e.head.IsComplex() && len(e.tail) == 0 {
		return e.head.String()
	}
	var b strings.Builder
	b.WriteByte('(')
	if !e.head.IsNone() {
		b.WriteString(e.head.String())
		if len(e.tail) > 0 {
			b.WriteByte(' ')
		}
	}
	for i, t := range e.tail {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	b.WriteByte(')')
	return b.String()
}
