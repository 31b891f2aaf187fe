package plotscript

import (
	"math"
	"strconv"
)

// Continuous plots are scaled into a plotSize square and sampled
// over cpSegments equal steps.
const (
	plotSize     = 20.0
	titleOffset  = 3.0
	ordinateGap  = 3.0
	boundsOffset = 2.0
	boundsGap    = 2.0
	cpSegments   = 50
	snapEpsilon  = 0.001
)

type bounds struct {
	xmin, xmax, ymin, ymax float64
}

// dataBounds is seeded at +-999, so data lying entirely beyond that on
// an axis gets a wrong bound.
func dataBounds(points [][2]float64) bounds {
	b := bounds{xmin: 999, xmax: -999, ymin: 999, ymax: -999}
	for _, pt := range points {
		b.xmin = math.Min(b.xmin, pt[0])
		b.xmax = math.Max(b.xmax, pt[0])
		b.ymin = math.Min(b.ymin, pt[1])
		b.ymax = math.Max(b.ymax, pt[1])
	}
	return b
}

func (b bounds) center() (float64, float64) {
	return (b.xmin + b.xmax) / 2, (b.ymin + b.ymax) / 2
}

func (b bounds) containsZeroX() bool { return b.xmin <= 0 && 0 <= b.xmax }
func (b bounds) containsZeroY() bool { return b.ymin <= 0 && 0 <= b.ymax }

// scene accumulates drawables built through the make-* builtins.
// The first error sticks and later calls become no-ops.
type scene struct {
	p     *process
	env   *Env
	items []Expression
	err   error
}

func (s *scene) call(name string, args ...Expression) Expression {
	if s.err != nil {
		return Expression{}
	}
	e, err := s.p.apply(s.env, NewSymbol(name), args)
	if err != nil {
		s.err = err
	}
	return e
}

func (s *scene) point(x, y float64) Expression {
	return s.call("make-point", number(x), number(y))
}

func (s *scene) line(a, b Expression) Expression {
	return s.call("make-line", a, b)
}

func (s *scene) text(t string, pos Expression) Expression {
	e := s.call("make-text", str(t))
	if s.err != nil {
		return e
	}
	return e.WithProperty("position", pos)
}

func (s *scene) add(items ...Expression) {
	if s.err != nil {
		return
	}
	s.items = append(s.items, items...)
}

// box adds the left, right, top and bottom edges of b.
func (s *scene) box(b bounds) {
	topLeft := s.point(b.xmin, b.ymax)
	topRight := s.point(b.xmax, b.ymax)
	botLeft := s.point(b.xmin, b.ymin)
	botRight := s.point(b.xmax, b.ymin)
	s.add(
		s.line(topLeft, botLeft),
		s.line(topRight, botRight),
		s.line(topLeft, topRight),
		s.line(botLeft, botRight),
	)
}

func (s *scene) axes(b bounds, xAxis, yAxis bool) {
	if xAxis {
		s.add(s.line(s.point(b.xmax, 0), s.point(b.xmin, 0)))
	}
	if yAxis {
		s.add(s.line(s.point(0, b.ymax), s.point(0, b.ymin)))
	}
}

// pairs unpacks a list of two-element lists.
func pairs(form, what string, list Expression) ([][2]Expression, error) {
	out := make([][2]Expression, len(list.tail))
	for i, item := range list.tail {
		if !item.IsList() || len(item.tail) != 2 {
			return nil, semanticError("%s in %s is not a list of two elements", what, form)
		}
		out[i] = [2]Expression{item.tail[0], item.tail[1]}
	}
	return out, nil
}

func discretePlot(p *process, env *Env, e Expression) (Expression, error) {
	if len(e.tail) != 2 {
		return Expression{}, semanticError("invalid number of arguments for discrete-plot")
	}
	data, err := p.eval(env, e.tail[0])
	if err != nil {
		return Expression{}, err
	}
	options, err := p.eval(env, e.tail[1])
	if err != nil {
		return Expression{}, err
	}
	if !data.IsList() || !options.IsList() {
		return Expression{}, semanticError("an argument to discrete-plot is not a list")
	}
	dataPairs, err := pairs("discrete-plot", "data point", data)
	if err != nil {
		return Expression{}, err
	}
	optionPairs, err := pairs("discrete-plot", "option", options)
	if err != nil {
		return Expression{}, err
	}
	points := make([][2]float64, len(dataPairs))
	for i, dp := range dataPairs {
		points[i] = [2]float64{dp[0].head.AsNumber(), dp[1].head.AsNumber()}
	}
	b := dataBounds(points)

	s := &scene{p: p, env: env}
	s.box(b)
	for _, v := range []float64{b.xmin, b.xmax, b.ymin, b.ymax} {
		s.add(str(strconv.FormatFloat(v, 'f', 6, 64)))
	}
	for _, opt := range optionPairs {
		s.add(opt[1])
	}
	// stems stop at the bottom edge when the box lies above the origin
	stemBottom := -math.Max(0, b.ymin)
	for _, pt := range points {
		marker := s.point(pt[0], -pt[1])
		stem := s.line(marker, s.point(pt[0], stemBottom))
		s.add(marker, stem)
	}
	s.axes(b, b.containsZeroY(), b.containsZeroX())
	if s.err != nil {
		return Expression{}, s.err
	}

	dp := newPlot("DP", s.items)
	dp = dp.WithProperty("numpoints", number(float64(len(points))))
	dp = dp.WithProperty("numoptions", number(float64(len(optionPairs))))
	return dp, nil
}

func continuousPlot(p *process, env *Env, e Expression) (Expression, error) {
	if len(e.tail) != 2 && len(e.tail) != 3 {
		return Expression{}, semanticError("invalid number of arguments for continuous-plot")
	}
	fn, err := p.eval(env, e.tail[0])
	if err != nil {
		return Expression{}, err
	}
	if !fn.IsLambda() {
		return Expression{}, semanticError("first argument to continuous-plot not a lambda")
	}
	bnds, err := p.eval(env, e.tail[1])
	if err != nil {
		return Expression{}, err
	}
	if !bnds.IsList() {
		return Expression{}, semanticError("second argument to continuous-plot not a list")
	}
	options := NewList()
	if len(e.tail) == 3 {
		options, err = p.eval(env, e.tail[2])
		if err != nil {
			return Expression{}, err
		}
		if !options.IsList() {
			return Expression{}, semanticError("third argument to continuous-plot not a list")
		}
	}
	if len(bnds.tail) != 2 || !bnds.tail[0].head.IsNumber() || !bnds.tail[1].head.IsNumber() {
		return Expression{}, semanticError("bounds of continuous-plot must be a list of two numbers")
	}
	al := math.Min(bnds.tail[0].head.num, bnds.tail[1].head.num)
	au := math.Max(bnds.tail[0].head.num, bnds.tail[1].head.num)
	if al == au {
		return Expression{}, semanticError("bounds of continuous-plot are empty")
	}
	optionPairs, err := pairs("continuous-plot", "option", options)
	if err != nil {
		return Expression{}, err
	}

	xs := make([]float64, cpSegments+1)
	ys := make([]float64, cpSegments+1)
	ol, ou := math.Inf(1), math.Inf(-1)
	for i := range xs {
		xs[i] = al + float64(i)*(au-al)/cpSegments
		y, err := p.callLambda(env, fn, []Expression{number(xs[i])})
		if err != nil {
			return Expression{}, err
		}
		if !y.head.IsNumber() {
			return Expression{}, semanticError("continuous-plot function did not return a number")
		}
		ys[i] = y.head.num
		ol = math.Min(ol, ys[i])
		ou = math.Max(ou, ys[i])
	}

	xscale := plotSize / (au - al)
	yscale := -1.0
	if ou != ol {
		yscale = -plotSize / (ou - ol)
	}
	// screen coordinates: y grows downwards, so ymin sits below ymax
	b := bounds{xmin: al * xscale, xmax: au * xscale, ymin: ol * yscale, ymax: ou * yscale}
	xmid, ymid := b.center()

	s := &scene{p: p, env: env}
	s.box(b)
	s.axes(b, ol <= 0 && 0 <= ou, al <= 0 && 0 <= au)
	var prev Expression
	for i := range xs {
		pt := s.point(snap(xs[i]*xscale), snap(ys[i]*yscale))
		if i > 0 {
			s.add(s.line(prev, pt))
		}
		prev = pt
	}

	labels := []Expression{
		s.text(formatNumber(al), s.point(b.xmin, b.ymin+boundsOffset)),
		s.text(formatNumber(au), s.point(b.xmax, b.ymin+boundsOffset)),
		s.text(formatNumber(ol), s.point(b.xmin-boundsGap, b.ymin)),
		s.text(formatNumber(ou), s.point(b.xmin-boundsGap, b.ymax)),
	}
	scale := 1.0
	for _, opt := range optionPairs {
		key := opt[0].head
		if !key.IsString() {
			return Expression{}, semanticError("option name in continuous-plot is not a string")
		}
		label := opt[1].head.AsSymbol()
		switch key.text {
		case "title":
			labels = append(labels, s.text(label, s.point(xmid, b.ymax-titleOffset)))
		case "abscissa-label":
			labels = append(labels, s.text(label, s.point(xmid, b.ymin+titleOffset)))
		case "ordinate-label":
			t := s.text(label, s.point(b.xmin-ordinateGap, ymid))
			labels = append(labels, t.WithProperty("text-rotation", number(-math.Pi/2)))
		case "text-scale":
			scale = opt[1].head.AsNumber()
		default:
			return Expression{}, semanticError("unknown option %s to continuous-plot", key.text)
		}
	}
	for _, l := range labels {
		s.add(l.WithProperty("text-scale", number(scale)))
	}
	if s.err != nil {
		return Expression{}, s.err
	}

	cp := newPlot("CP", s.items)
	cp = cp.WithProperty("numpoints", number(float64(len(xs))))
	cp = cp.WithProperty("numoptions", number(float64(len(optionPairs))))
	return cp, nil
}

func snap(v float64) float64 {
	if v > -snapEpsilon && v < snapEpsilon {
		return 0
	}
	return v
}
