package svg

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wudi/texfig/coords"
	"github.com/wudi/texfig/observability"
	"github.com/wudi/texfig/recovery"
	"github.com/wudi/texfig/shape"
)

// Read decodes an SVG document and imports it.
func Read(r io.Reader, cfg Config) (Result, error) {
	doc, err := Decode(r)
	if err != nil {
		return Result{}, err
	}
	return Import(doc, cfg), nil
}

// Import rebuilds the drawing of doc. A node that cannot be read is
// reported to the recovery strategy and skipped.
func Import(doc *Document, cfg Config) Result {
	im := &importer{doc: doc, cfg: cfg.withDefaults(), log: &recovery.Log{}}
	im.nodes(doc.Children, coords.Identity())
	return Result{Drawing: shape.NewDrawing(im.shapes...), Errors: *im.log}
}

type importer struct {
	doc    *Document
	cfg    Config
	log    *recovery.Log
	shapes []shape.Shape
	failed bool
}

func (im *importer) report(err error, el *Element, name string) {
	loc := recovery.Location{Component: "svg", Line: el.Line, Column: el.Column, Name: name}
	switch im.cfg.Recovery.OnError(err, loc) {
	case recovery.ActionFail:
		im.log.Add(err, loc)
		im.failed = true
	case recovery.ActionWarn:
		im.log.Add(err, loc)
		im.cfg.Logger.Warn("node skipped",
			observability.String(observability.FieldElement, name),
			observability.Int(observability.FieldLine, loc.Line),
			observability.Int(observability.FieldColumn, loc.Column),
			observability.Error("error", err))
	default:
		im.cfg.Logger.Debug("node ignored",
			observability.String(observability.FieldElement, name),
			observability.Int(observability.FieldLine, loc.Line),
			observability.Int(observability.FieldColumn, loc.Column),
			observability.Error("error", err))
	}
}

// localTransform composes the transform attribute of el with m.
func localTransform(el *Element, m coords.Matrix) (coords.Matrix, error) {
	v, ok := el.Attrs.Get("transform")
	if !ok {
		return m, nil
	}
	t, err := ParseTransform(v)
	if err != nil {
		return m, err
	}
	return t.Multiply(m), nil
}

// nodes imports ns; m maps their coordinates to the document.
func (im *importer) nodes(ns []Node, m coords.Matrix) {
	for _, n := range ns {
		if im.failed {
			return
		}
		el := n.element()
		typ, typed := el.Attrs.LD("type")
		if g, ok := n.(*Group); ok && typed {
			s, err := im.typed(g, typ)
			if err != nil {
				im.report(err, el, typ)
				continue
			}
			materialise(s, m)
			im.shapes = append(im.shapes, s)
			continue
		}
		if typed {
			continue
		}
		if el.Err != nil {
			im.report(el.Err, el, nodeName(n))
			continue
		}
		local, err := localTransform(el, m)
		if err != nil {
			im.report(err, el, nodeName(n))
			continue
		}
		if g, ok := n.(*Group); ok {
			im.nodes(g.Children, local)
			continue
		}
		s, err := bare(n, local)
		if err != nil {
			im.report(err, el, nodeName(n))
			continue
		}
		if s != nil {
			im.shapes = append(im.shapes, s)
		}
	}
}

func nodeName(n Node) string {
	switch n := n.(type) {
	case *Group:
		return "g"
	case *Points:
		return n.Kind.String()
	case *Line:
		return "line"
	case *TextNode:
		return "text"
	}
	return "node"
}

// bare turns an element without latexdraw attributes into a
// default-styled shape. Elements with no shape counterpart give nil.
func bare(n Node, m coords.Matrix) (shape.Shape, error) {
	switch n := n.(type) {
	case *Points:
		pts := make([]coords.Point, len(n.Points))
		for i, p := range n.Points {
			pts[i] = m.Transform(p)
		}
		if len(pts) < 2 {
			return nil, fmt.Errorf("%w: %s with %d points", ErrMalformedPointsSyntax, n.Kind, len(pts))
		}
		if n.Kind == KindPolygon {
			return shape.NewPolygon(pts...), nil
		}
		return shape.NewPolyline(pts...), nil
	case *Line:
		p1 := m.Transform(coords.Point{X: n.X1, Y: n.Y1})
		p2 := m.Transform(coords.Point{X: n.X2, Y: n.Y2})
		return shape.NewLine(p1, p2), nil
	case *TextNode:
		text := strings.TrimSpace(n.Content)
		if text == "" {
			return nil, nil
		}
		return shape.NewText(m.Transform(coords.Point{X: n.X, Y: n.Y}), text), nil
	}
	return nil, nil
}

// materialise applies the transform of enclosing groups to an imported
// shape: points shapes are mapped point by point, others are moved with
// their gravity centre.
func materialise(s shape.Shape, m coords.Matrix) {
	if m.IsIdentity() {
		return
	}
	type pointsShape interface {
		NbPoints() int
		PointAt(i int) coords.Point
		SetPointAt(i int, p coords.Point)
	}
	if ps, ok := s.(pointsShape); ok {
		for i := 0; i < ps.NbPoints(); i++ {
			ps.SetPointAt(i, m.Transform(ps.PointAt(i)))
		}
		return
	}
	c := s.GravityCentre()
	nc := m.Transform(c)
	s.Translate(nc.X-c.X, nc.Y-c.Y)
}

// mainNode is the child of a shape group without a latexdraw:type.
func mainNode(g *Group) Node {
	for _, c := range g.Children {
		if _, ok := c.element().Attrs.LD("type"); !ok {
			return c
		}
	}
	return nil
}

func mainNodes(g *Group) []Node {
	var out []Node
	for _, c := range g.Children {
		if _, ok := c.element().Attrs.LD("type"); !ok {
			out = append(out, c)
		}
	}
	return out
}

func layer(g *Group, typ string) Node {
	for _, c := range g.Children {
		if v, ok := c.element().Attrs.LD("type"); ok && v == typ {
			return c
		}
	}
	return nil
}

func (im *importer) typed(g *Group, typ string) (shape.Shape, error) {
	kind, ok := shape.ParseKind(typ)
	if !ok {
		return nil, fmt.Errorf("%w: unknown shape type %q", ErrMalformedMarkupStructure, typ)
	}
	for _, c := range g.Children {
		if err := c.element().Err; err != nil {
			return nil, err
		}
	}
	r := &attrReader{a: g.Attrs}
	var s shape.Shape
	var err error
	switch kind {
	case shape.KindLine, shape.KindPolyline, shape.KindPolygon:
		s, err = im.points(g, kind)
	case shape.KindPlot:
		s, err = im.plot(g, r)
	case shape.KindDot:
		s, err = im.dot(g, r)
	case shape.KindAxes:
		s, err = im.axes(g, r)
	case shape.KindGrid:
		s, err = im.grid(g, r)
	case shape.KindText:
		s, err = im.text(g, r)
	default:
		err = fmt.Errorf("%w: unknown shape type %q", ErrMalformedMarkupStructure, typ)
	}
	if err != nil {
		return nil, err
	}
	if rot, ok := s.(shape.Rotatable); ok {
		r.float(ld("rotation"), rot.SetRotationAngle)
	}
	if r.err != nil {
		return nil, r.err
	}
	return s, nil
}

func (im *importer) points(g *Group, kind shape.Kind) (shape.Shape, error) {
	var pts []coords.Point
	var attrs Attrs
	switch main := mainNode(g).(type) {
	case *Points:
		pts, attrs = main.Points, main.Attrs
	case *Line:
		if kind == shape.KindPolygon {
			return nil, fmt.Errorf("%w: polygon drawn as a line", ErrMalformedMarkupStructure)
		}
		pts = []coords.Point{{X: main.X1, Y: main.Y1}, {X: main.X2, Y: main.Y2}}
		attrs = main.Attrs
	default:
		return nil, fmt.Errorf("%w: %s without points", ErrMalformedMarkupStructure, kind)
	}
	if len(pts) < 2 || (kind == shape.KindLine && len(pts) != 2) {
		return nil, fmt.Errorf("%w: %s with %d points", ErrMalformedPointsSyntax, kind, len(pts))
	}
	var s shape.Shape
	switch kind {
	case shape.KindLine:
		s = shape.NewLine(pts[0], pts[1])
	case shape.KindPolyline:
		s = shape.NewPolyline(pts...)
	default:
		s = shape.NewPolygon(pts...)
	}
	if err := im.style(s, g, attrs); err != nil {
		return nil, err
	}
	return s, nil
}

// style reads the stroke, fill, arrows and extra layers of a shape from its
// group.
func (im *importer) style(s shape.Shape, g *Group, main Attrs) error {
	r := &attrReader{a: main}
	if v, ok := main.Get("stroke"); ok {
		c, visible, err := ParseColor(v)
		switch {
		case err != nil:
			return err
		case visible:
			s.SetLineColor(c)
		default:
			if t, ok := s.(shape.ThicknessAdjustable); ok {
				t.SetLineStyle(shape.LineNone)
			}
		}
	}
	if f, ok := s.(shape.Fillable); ok {
		if v, ok := main.Get("fill"); ok {
			c, filled, err := ParseColor(v)
			if err != nil {
				return err
			}
			if filled {
				f.SetFilling(shape.FillPlain)
				f.SetFillColor(c)
			}
		}
	}

	sep := 0.0
	if d, ok := s.(shape.DoubleBorderable); ok {
		if n := layer(g, layerDouble); n != nil {
			lr := &attrReader{a: n.element().Attrs}
			d.SetDoubleBorder(true)
			lr.color("stroke", d.SetDoubleColor)
			lr.length("stroke-width", d.SetDoubleSep)
			if lr.err != nil {
				return lr.err
			}
			sep = d.DoubleSep()
		}
	}
	if t, ok := s.(shape.ThicknessAdjustable); ok {
		r.length("stroke-width", func(w float64) {
			if sep > 0 {
				w = (w - sep) / 2
			}
			t.SetThickness(w)
		})
		if v, ok := main.Get("stroke-dasharray"); ok && t.LineStyle() != shape.LineNone {
			nums, err := parseNumbers(v)
			if err != nil {
				return err
			}
			if len(nums) >= 2 && nums[0] < nums[1] {
				t.SetLineStyle(shape.LineDotted)
			} else if len(nums) > 0 {
				t.SetLineStyle(shape.LineDashed)
			}
		}
	}
	if sh, ok := s.(shape.Shadowable); ok {
		if n := layer(g, layerShadow); n != nil {
			lr := &attrReader{a: n.element().Attrs}
			sh.SetShadow(true)
			lr.color("stroke", sh.SetShadowColor)
			lr.float(ld("shadow-size"), sh.SetShadowSize)
			lr.float(ld("shadow-angle"), sh.SetShadowAngle)
			if lr.err != nil {
				return lr.err
			}
		}
	}
	if r.err != nil {
		return r.err
	}
	if ar, ok := s.(shape.Arrowable); ok {
		if err := im.arrow(main, "marker-start", ar.ArrowAt(0)); err != nil {
			return err
		}
		if err := im.arrow(main, "marker-end", ar.ArrowAt(-1)); err != nil {
			return err
		}
	}
	return nil
}

// arrow reads the marker referenced by the attribute name into a.
func (im *importer) arrow(attrs Attrs, name string, a *shape.Arrow) error {
	v, ok := attrs.Get(name)
	if !ok || a == nil {
		return nil
	}
	id := strings.TrimSpace(v)
	if !strings.HasPrefix(id, "url(#") || !strings.HasSuffix(id, ")") {
		return fmt.Errorf("%w: %s=%q", ErrMalformedMarkupStructure, name, v)
	}
	id = id[len("url(#") : len(id)-1]
	m := im.doc.Marker(id)
	if m == nil {
		return fmt.Errorf("%w: no marker %q", ErrMalformedMarkupStructure, id)
	}
	r := &attrReader{a: m.Attrs}
	r.token(ld("style"), func(v string) bool {
		st, ok := shape.ParseArrowStyle(v)
		a.SetStyle(st)
		return ok
	})
	r.pair(ld("arrow-size"), a.SetArrowSize)
	r.float(ld("arrow-length"), a.SetArrowLength)
	r.float(ld("arrow-inset"), a.SetArrowInset)
	r.pair(ld("tbar-size"), a.SetTBarSize)
	r.float(ld("bracket-length"), a.SetBracketLength)
	r.float(ld("rbracket-length"), a.SetRBracketLength)
	r.pair(ld("dot-size"), a.SetDotSize)
	return r.err
}

func (im *importer) plot(g *Group, r *attrReader) (shape.Shape, error) {
	eq, ok := g.Attrs.LD("equation")
	if !ok {
		return nil, fmt.Errorf("%w: plot without equation", ErrMalformedMarkupStructure)
	}
	p := shape.NewPlot(coords.Point{}, eq, 0, 1)
	p.SetSampleTimeout(im.cfg.SampleTimeout)
	var minX, maxX float64
	r.point(ld("position"), p.SetPosition)
	r.float(ld("min"), func(v float64) { minX = v })
	r.float(ld("max"), func(v float64) { maxX = v })
	p.SetRange(minX, maxX)
	r.integer(ld("plot-points"), p.SetNbPoints)
	r.token(ld("plot-style"), func(v string) bool {
		st, ok := shape.ParsePlotStyle(v)
		p.SetPlotStyle(st)
		return ok
	})
	r.pair(ld("scale"), p.SetScale)
	r.flag(ld("polar"), p.SetPolar)
	r.flag(ld("algebraic"), p.SetAlgebraic)
	if r.err != nil {
		return nil, r.err
	}
	if main := mainNode(g); main != nil {
		if err := im.style(p, g, main.element().Attrs); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (im *importer) dot(g *Group, r *attrReader) (shape.Shape, error) {
	d := shape.NewDot(coords.Point{})
	r.point(ld("position"), d.SetPosition)
	r.token(ld("dot-style"), func(v string) bool {
		st, ok := shape.ParseDotStyle(v)
		d.SetStyle(st)
		return ok
	})
	r.float(ld("dot-size"), d.SetDiameter)
	r.color("stroke", d.SetLineColor)
	if d.Style().IsFillable() {
		r.color("fill", d.SetFillColor)
	}
	return d, r.err
}

func (im *importer) grid(g *Group, r *attrReader) (shape.Shape, error) {
	gr := shape.NewGrid(coords.Point{})
	gridBase(r, gr.SetPosition, gr.SetOrigin, gr.SetGridBounds)
	r.float(ld("unit"), gr.SetUnit)
	r.float(ld("grid-width"), gr.SetGridWidth)
	r.float(ld("subgrid-width"), gr.SetSubGridWidth)
	r.float(ld("labels-size"), gr.SetLabelsSize)
	r.integer(ld("subgrid-div"), gr.SetSubGridDiv)
	r.integer(ld("grid-dots"), gr.SetGridDots)
	r.integer(ld("subgrid-dots"), gr.SetSubGridDots)
	r.color(ld("subgrid-color"), gr.SetSubGridColor)
	r.color(ld("labels-color"), gr.SetGridLabelsColor)
	r.flag(ld("x-label-south"), gr.SetXLabelSouth)
	r.flag(ld("y-label-west"), gr.SetYLabelWest)
	if main := mainNode(g); main != nil {
		mr := &attrReader{a: main.element().Attrs}
		mr.color("stroke", gr.SetGridColor)
		if mr.err != nil {
			return nil, mr.err
		}
	}
	return gr, r.err
}

func gridBase(r *attrReader, pos, origin func(coords.Point), bounds func(start, end coords.Point)) {
	r.point(ld("position"), pos)
	r.point(ld("origin"), origin)
	var start, end coords.Point
	var ok1, ok2 bool
	r.point(ld("grid-start"), func(p coords.Point) { start, ok1 = p, true })
	r.point(ld("grid-end"), func(p coords.Point) { end, ok2 = p, true })
	if ok1 && ok2 {
		bounds(start, end)
	}
}

func (im *importer) axes(g *Group, r *attrReader) (shape.Shape, error) {
	a := shape.NewAxes(coords.Point{})
	gridBase(r, a.SetPosition, a.SetOrigin, a.SetGridBounds)
	r.pair(ld("increment"), a.SetIncrement)
	r.pair(ld("dist-labels"), a.SetDistLabels)
	r.token(ld("labels"), func(v string) bool {
		st, ok := shape.ParsePlottingStyle(v)
		a.SetLabelsDisplayed(st)
		return ok
	})
	r.token(ld("ticks"), func(v string) bool {
		st, ok := shape.ParsePlottingStyle(v)
		a.SetTicksDisplayed(st)
		return ok
	})
	r.token(ld("ticks-style"), func(v string) bool {
		st, ok := shape.ParseTicksStyle(v)
		a.SetTicksStyle(st)
		return ok
	})
	r.float(ld("ticks-size"), a.SetTicksSize)
	r.token(ld("axes-style"), func(v string) bool {
		st, ok := shape.ParseAxesStyle(v)
		a.SetAxesStyle(st)
		return ok
	})
	r.flag(ld("show-origin"), a.SetShowOrigin)
	if r.err != nil {
		return nil, r.err
	}

	mains := mainNodes(g)
	if len(mains) == 0 {
		return a, nil
	}
	mr := &attrReader{a: mains[0].element().Attrs}
	if v, ok := mr.a.Get("stroke"); ok && strings.TrimSpace(v) == "none" {
		a.SetLineStyle(shape.LineNone)
	} else {
		mr.color("stroke", a.SetLineColor)
	}
	mr.length("stroke-width", a.SetThickness)
	if v, ok := mr.a.Get("stroke-dasharray"); ok && a.LineStyle() != shape.LineNone {
		if nums, err := parseNumbers(v); err == nil && len(nums) >= 2 && nums[0] < nums[1] {
			a.SetLineStyle(shape.LineDotted)
		} else {
			a.SetLineStyle(shape.LineDashed)
		}
	}
	if mr.err != nil {
		return nil, mr.err
	}
	// The Y axis comes first, then the X axis.
	ends := [][2]int{
		{shape.AxesArrowYNear, shape.AxesArrowYFar},
		{shape.AxesArrowXNear, shape.AxesArrowXFar},
	}
	for i, n := range mains {
		if _, ok := n.(*Line); !ok || i >= len(ends) {
			continue
		}
		attrs := n.element().Attrs
		if err := im.arrow(attrs, "marker-start", a.ArrowAt(ends[i][0])); err != nil {
			return nil, err
		}
		if err := im.arrow(attrs, "marker-end", a.ArrowAt(ends[i][1])); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func (im *importer) text(g *Group, r *attrReader) (shape.Shape, error) {
	main, ok := mainNode(g).(*TextNode)
	if !ok || main.Content == "" {
		return nil, fmt.Errorf("%w: text without content", ErrMalformedMarkupStructure)
	}
	t := shape.NewText(coords.Point{X: main.X, Y: main.Y}, main.Content)
	r.point(ld("position"), t.SetPosition)
	mr := &attrReader{a: main.Attrs}
	mr.color("fill", t.SetLineColor)
	if mr.err != nil {
		return nil, mr.err
	}
	return t, r.err
}

// attrReader reads attributes into setters. Missing attributes leave the
// defaults; the first malformed one is kept in err.
type attrReader struct {
	a   Attrs
	err error
}

func (r *attrReader) get(name string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	v, ok := r.a.Get(name)
	return strings.TrimSpace(v), ok
}

func (r *attrReader) fail(name, v string) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: %s=%q", ErrMalformedMarkupStructure, name, v)
	}
}

func (r *attrReader) float(name string, set func(float64)) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	nums, err := parseNumbers(v)
	if err != nil || len(nums) != 1 {
		r.fail(name, v)
		return
	}
	set(nums[0])
}

func (r *attrReader) length(name string, set func(float64)) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	f, err := parseLength(v)
	if err != nil {
		r.fail(name, v)
		return
	}
	set(f)
}

func (r *attrReader) pair(name string, set func(a, b float64)) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	nums, err := parseNumbers(v)
	if err != nil || len(nums) != 2 {
		r.fail(name, v)
		return
	}
	set(nums[0], nums[1])
}

func (r *attrReader) point(name string, set func(coords.Point)) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	pts, err := ParsePoints(v)
	if err != nil || len(pts) != 1 {
		r.fail(name, v)
		return
	}
	set(pts[0])
}

func (r *attrReader) integer(name string, set func(int)) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(name, v)
		return
	}
	set(n)
}

func (r *attrReader) flag(name string, set func(bool)) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(name, v)
		return
	}
	set(b)
}

func (r *attrReader) color(name string, set func(shape.Color)) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	c, visible, err := ParseColor(v)
	if err != nil {
		r.fail(name, v)
		return
	}
	if visible {
		set(c)
	}
}

// token passes the value to parse, which reports whether it is known.
func (r *attrReader) token(name string, parse func(string) bool) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	if !parse(v) {
		r.fail(name, v)
	}
}
