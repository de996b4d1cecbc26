package svg

import (
	"math"
	"strconv"

	"github.com/wudi/texfig/coords"
	"github.com/wudi/texfig/layout"
	"github.com/wudi/texfig/numfmt"
	"github.com/wudi/texfig/shape"
)

// margin is added around the drawing bounds in the viewBox.
const margin = 10.0

// Dash patterns of dashed and dotted lines, following the PSTricks
// dash=5pt 5pt and dotsep=3pt defaults. A dotted line has a shorter on
// length than off length.
var (
	dashOn  = shape.PtToPx(5)
	dashOff = shape.PtToPx(5)
	dotSep  = shape.PtToPx(3)
)

type generator struct {
	doc     *Document
	markers map[string]bool
}

// Generate builds the SVG document of a drawing. Plots are sampled with
// the default evaluators; a plot that cannot be sampled within its timeout
// fails the call.
func Generate(d *shape.Drawing) (*Document, error) {
	if err := d.SampleErr(); err != nil {
		return nil, err
	}
	g := &generator{doc: &Document{}, markers: make(map[string]bool)}
	for i, s := range d.Shapes() {
		if grp := g.shape(s); grp != nil {
			grp.ID = "id" + strconv.Itoa(i)
			g.doc.Children = append(g.doc.Children, grp)
		}
	}
	if b := d.Bounds(); b.IsValid() {
		b = b.Expand(margin)
		g.doc.ViewBox = b
		g.doc.Width, g.doc.Height = b.Width(), b.Height()
	}
	return g.doc, nil
}

func (g *generator) shape(s shape.Shape) *Group {
	grp := &Group{}
	grp.Attrs.SetLD("type", s.Kind().String())
	if r, ok := s.(shape.Rotatable); ok && r.RotationAngle() != 0 {
		c := s.GravityCentre()
		grp.Attrs.SetLD("rotation", numfmt.Cut(r.RotationAngle()))
		grp.Attrs.Set("transform", "rotate("+numfmt.Cut(r.RotationAngle()*180/math.Pi)+" "+pair(c.X, c.Y)+")")
	}
	switch s := s.(type) {
	case *shape.Line:
		grp.Children = g.layers(s, pointsNode(KindPolyline, s.Points()))
	case *shape.Polyline:
		grp.Children = g.layers(s, pointsNode(KindPolyline, s.Points()))
	case *shape.Polygon:
		grp.Children = g.layers(s, pointsNode(KindPolygon, s.Points()))
	case *shape.Plot:
		g.plot(grp, s)
	case *shape.Dot:
		g.dot(grp, s)
	case *shape.Axes:
		g.axes(grp, s)
	case *shape.Grid:
		g.grid(grp, s)
	case *shape.Text:
		g.text(grp, s)
	default:
		return nil
	}
	return grp
}

func pointsNode(kind PointsKind, pts []coords.Point) func(Attrs) Node {
	return func(a Attrs) Node {
		return &Points{Element: Element{Attrs: a}, Kind: kind, Points: pts}
	}
}

func point(p coords.Point) string { return FormatPoints([]coords.Point{p}) }

func boolString(b bool) string { return strconv.FormatBool(b) }

// strokeWidth is the width of the main stroke: a double border is drawn
// as a wide stroke with the separation painted over it.
func strokeWidth(s shape.Shape) float64 {
	t, ok := s.(shape.ThicknessAdjustable)
	if !ok {
		return 0
	}
	w := t.Thickness()
	if d, ok := s.(shape.DoubleBorderable); ok && d.HasDoubleBorder() {
		w = 2*w + d.DoubleSep()
	}
	return w
}

// styleAttrs sets the stroke and fill of the main element of s.
func styleAttrs(a *Attrs, s shape.Shape) {
	a.Set("stroke", paint(s.LineColor()))
	if t, ok := s.(shape.ThicknessAdjustable); ok {
		a.Set("stroke-width", numfmt.Cut(strokeWidth(s)))
		switch t.LineStyle() {
		case shape.LineNone:
			a.Set("stroke", "none")
		case shape.LineDashed:
			a.Set("stroke-dasharray", numfmt.Cut(dashOn)+","+numfmt.Cut(dashOff))
		case shape.LineDotted:
			a.Set("stroke-dasharray", numfmt.Cut(t.Thickness()/2)+","+numfmt.Cut(dotSep+t.Thickness()))
			a.Set("stroke-linecap", "round")
		}
	}
	fill := "none"
	if f, ok := s.(shape.Fillable); ok && f.IsFilled() {
		fill = paint(f.FillColor())
		if d, ok := s.(*shape.Dot); ok {
			fill = paint(d.InteriorColor())
		}
	}
	a.Set("fill", fill)
}

// setMarkers puts the first and last arrows of s on its main element.
func (g *generator) setMarkers(a *Attrs, s shape.Shape) {
	col := s.LineColor()
	ar, ok := s.(shape.Arrowable)
	if !ok {
		return
	}
	t := 0.0
	if ta, ok := s.(shape.ThicknessAdjustable); ok {
		t = ta.Thickness()
	}
	if u := g.marker(ar.ArrowAt(0), true, t, col); u != "" {
		a.Set("marker-start", u)
	}
	if u := g.marker(ar.ArrowAt(-1), false, t, col); u != "" {
		a.Set("marker-end", u)
	}
}

// layers returns the shadow, background, main and double border elements
// of s, each built by geom.
func (g *generator) layers(s shape.Shape, geom func(Attrs) Node) []Node {
	var out []Node
	width := numfmt.Cut(strokeWidth(s))
	filled := false
	if f, ok := s.(shape.Fillable); ok {
		filled = f.IsFilled()
	}
	lineStyle := shape.LineSolid
	if t, ok := s.(shape.ThicknessAdjustable); ok {
		lineStyle = t.LineStyle()
	}

	if sh, ok := s.(shape.Shadowable); ok && sh.HasShadow() {
		var a Attrs
		a.SetLD("type", layerShadow)
		a.SetLD("shadow-size", numfmt.Cut(sh.ShadowSize()))
		a.SetLD("shadow-angle", numfmt.Cut(sh.ShadowAngle()))
		a.Set("stroke", paint(sh.ShadowColor()))
		a.Set("stroke-width", width)
		fill := "none"
		if filled {
			fill = paint(sh.ShadowColor())
		}
		a.Set("fill", fill)
		dx := sh.ShadowSize() * math.Cos(sh.ShadowAngle())
		dy := -sh.ShadowSize() * math.Sin(sh.ShadowAngle())
		a.Set("transform", "translate("+pair(dx, dy)+")")
		out = append(out, geom(a))

		if filled && lineStyle != shape.LineNone {
			var bg Attrs
			bg.SetLD("type", layerBackground)
			bg.Set("stroke", "none")
			bg.Set("fill", paint(s.(shape.Fillable).FillColor()))
			out = append(out, geom(bg))
		}
	}

	var main Attrs
	styleAttrs(&main, s)
	g.setMarkers(&main, s)
	out = append(out, geom(main))

	if d, ok := s.(shape.DoubleBorderable); ok && d.HasDoubleBorder() {
		var a Attrs
		a.SetLD("type", layerDouble)
		a.Set("stroke", paint(d.DoubleColor()))
		a.Set("stroke-width", numfmt.Cut(d.DoubleSep()))
		a.Set("fill", "none")
		out = append(out, geom(a))
	}
	return out
}

func (g *generator) plot(grp *Group, p *shape.Plot) {
	minX, maxX := p.Range()
	sx, sy := p.Scale()
	grp.Attrs.SetLD("position", point(p.Position()))
	grp.Attrs.SetLD("equation", p.Equation())
	grp.Attrs.SetLD("min", numfmt.Cut(minX))
	grp.Attrs.SetLD("max", numfmt.Cut(maxX))
	grp.Attrs.SetLD("plot-points", strconv.Itoa(p.NbPoints()))
	grp.Attrs.SetLD("plot-style", p.PlotStyle().String())
	grp.Attrs.SetLD("scale", pair(sx, sy))
	grp.Attrs.SetLD("polar", boolString(p.IsPolar()))
	grp.Attrs.SetLD("algebraic", boolString(p.IsAlgebraic()))
	kind := KindPolyline
	if p.PlotStyle() == shape.PlotPolygon {
		kind = KindPolygon
	}
	grp.Children = g.layers(p, pointsNode(kind, p.Points()))
}

func (g *generator) dot(grp *Group, d *shape.Dot) {
	grp.Attrs.SetLD("position", point(d.Position()))
	grp.Attrs.SetLD("dot-style", d.Style().String())
	grp.Attrs.SetLD("dot-size", numfmt.Cut(d.Diameter()))
	styleAttrs(&grp.Attrs, d)

	c, r := d.Position(), d.Diameter()/2
	gap := d.GeneralGap()
	stroke := func(n Node, w float64) Node {
		n.element().Attrs.Set("stroke-width", numfmt.Cut(w))
		return n
	}
	path := func(pts ...coords.Point) string {
		var b []byte
		for i := 0; i+1 < len(pts); i += 2 {
			b = append(b, 'M')
			b = numfmt.AppendCut(b, pts[i].X)
			b = append(b, ',')
			b = numfmt.AppendCut(b, pts[i].Y)
			b = append(b, " L"...)
			b = numfmt.AppendCut(b, pts[i+1].X)
			b = append(b, ',')
			b = numfmt.AppendCut(b, pts[i+1].Y)
			b = append(b, ' ')
		}
		return string(b)
	}
	regular := func(n int, start float64) []coords.Point {
		pts := make([]coords.Point, n)
		for i := range pts {
			a := start + float64(i)*2*math.Pi/float64(n)
			pts[i] = coords.Point{X: c.X + r*math.Cos(a), Y: c.Y - r*math.Sin(a)}
		}
		return pts
	}
	polygon := func(pts []coords.Point) Node {
		return stroke(&Points{Kind: KindPolygon, Points: pts}, gap)
	}
	plus := path(c.Translate(-r, 0), c.Translate(r, 0), c.Translate(0, -r), c.Translate(0, r))
	k := r * math.Sqrt2 / 2
	cross := path(c.Translate(-k, -k), c.Translate(k, k), c.Translate(-k, k), c.Translate(k, -k))

	switch d.Style() {
	case shape.DotDisc:
		grp.Children = []Node{&Circle{Element: Element{Attrs: Attrs{{"stroke", "none"}}}, CX: c.X, CY: c.Y, R: r}}
	case shape.DotO, shape.DotOPlus, shape.DotOTimes:
		grp.Children = []Node{stroke(&Circle{CX: c.X, CY: c.Y, R: r - gap/2}, gap)}
		switch d.Style() {
		case shape.DotOPlus:
			grp.Children = append(grp.Children, stroke(&Path{D: plus}, gap))
		case shape.DotOTimes:
			grp.Children = append(grp.Children, stroke(&Path{D: cross}, gap))
		}
	case shape.DotPlus:
		grp.Children = []Node{stroke(&Path{D: plus}, gap)}
	case shape.DotX:
		grp.Children = []Node{stroke(&Path{D: cross}, gap)}
	case shape.DotAsterisk:
		var pts []coords.Point
		for i := 0; i < 3; i++ {
			a := math.Pi/2 + float64(i)*math.Pi/3
			dx, dy := r*math.Cos(a), r*math.Sin(a)
			pts = append(pts, c.Translate(-dx, dy), c.Translate(dx, -dy))
		}
		grp.Children = []Node{stroke(&Path{D: path(pts...)}, gap)}
	case shape.DotBar:
		grp.Children = []Node{stroke(&Path{D: path(c.Translate(0, -r), c.Translate(0, r))}, d.BarThickness())}
	case shape.DotDiamond, shape.DotFDiamond:
		w := r * math.Tan(shape.GoldenAngle)
		grp.Children = []Node{polygon([]coords.Point{c.Translate(0, -r), c.Translate(w, 0), c.Translate(0, r), c.Translate(-w, 0)})}
	case shape.DotPentagon, shape.DotFPentagon:
		grp.Children = []Node{polygon(regular(5, math.Pi/2))}
	case shape.DotSquare, shape.DotFSquare:
		grp.Children = []Node{polygon(regular(4, math.Pi/4))}
	case shape.DotTriangle, shape.DotFTriangle:
		grp.Children = []Node{polygon(regular(3, math.Pi/2))}
	}
}

func (g *generator) axes(grp *Group, a *shape.Axes) {
	ix, iy := a.Increment()
	dx, dy := a.DistLabels()
	grp.Attrs.SetLD("position", point(a.Position()))
	grp.Attrs.SetLD("origin", point(a.Origin()))
	grp.Attrs.SetLD("grid-start", point(a.GridStart()))
	grp.Attrs.SetLD("grid-end", point(a.GridEnd()))
	grp.Attrs.SetLD("increment", pair(ix, iy))
	grp.Attrs.SetLD("dist-labels", pair(dx, dy))
	grp.Attrs.SetLD("labels", a.LabelsDisplayed().String())
	grp.Attrs.SetLD("ticks", a.TicksDisplayed().String())
	grp.Attrs.SetLD("ticks-style", a.TicksStyle().String())
	grp.Attrs.SetLD("ticks-size", numfmt.Cut(a.TicksSize()))
	grp.Attrs.SetLD("axes-style", a.AxesStyle().String())
	grp.Attrs.SetLD("show-origin", boolString(a.ShowOrigin()))

	t, col := a.Thickness(), a.LineColor()
	axis := func(near, far int) Node {
		l, _ := a.ArrowLine(a.ArrowAt(near))
		n := &Line{X1: l.P1.X, Y1: l.P1.Y, X2: l.P2.X, Y2: l.P2.Y}
		styleAttrs(&n.Attrs, a)
		if u := g.marker(a.ArrowAt(near), true, t, col); u != "" {
			n.Attrs.Set("marker-start", u)
		}
		if u := g.marker(a.ArrowAt(far), false, t, col); u != "" {
			n.Attrs.Set("marker-end", u)
		}
		return n
	}
	switch a.AxesStyle() {
	case shape.AxesStyleAxes:
		grp.Children = append(grp.Children, axis(shape.AxesArrowYNear, shape.AxesArrowYFar), axis(shape.AxesArrowXNear, shape.AxesArrowXFar))
	case shape.AxesStyleFrame:
		b := a.Bounds()
		r := &Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Width(), Height: b.Height()}
		styleAttrs(&r.Attrs, a)
		grp.Children = append(grp.Children, r)
	}

	if a.TicksDisplayed() == shape.PlottingNone {
		return
	}
	size := a.TicksSize()
	before, after := size, size
	switch a.TicksStyle() {
	case shape.TicksTop:
		after = 0
	case shape.TicksBottom:
		before = 0
	}
	var b []byte
	xs, ys := a.Ticks()
	seg := func(x1, y1, x2, y2 float64) {
		b = append(b, 'M')
		b = append(b, pair(x1, y1)...)
		b = append(b, " L"...)
		b = append(b, pair(x2, y2)...)
		b = append(b, ' ')
	}
	if a.TicksDisplayed() != shape.PlottingY {
		for _, p := range xs {
			seg(p.X, p.Y-before, p.X, p.Y+after)
		}
	}
	if a.TicksDisplayed() != shape.PlottingX {
		for _, p := range ys {
			seg(p.X-after, p.Y, p.X+before, p.Y)
		}
	}
	if len(b) > 0 {
		ticks := &Path{D: string(b)}
		ticks.Attrs.SetLD("type", "ticks")
		ticks.Attrs.Set("stroke", paint(col))
		ticks.Attrs.Set("stroke-width", numfmt.Cut(t))
		ticks.Attrs.Set("fill", "none")
		grp.Children = append(grp.Children, ticks)
	}
}

func linesPath(lines []coords.Line) string {
	var b []byte
	for _, l := range lines {
		b = append(b, 'M')
		b = append(b, pair(l.P1.X, l.P1.Y)...)
		b = append(b, " L"...)
		b = append(b, pair(l.P2.X, l.P2.Y)...)
		b = append(b, ' ')
	}
	return string(b)
}

func (g *generator) grid(grp *Group, gr *shape.Grid) {
	grp.Attrs.SetLD("position", point(gr.Position()))
	grp.Attrs.SetLD("origin", point(gr.Origin()))
	grp.Attrs.SetLD("grid-start", point(gr.GridStart()))
	grp.Attrs.SetLD("grid-end", point(gr.GridEnd()))
	grp.Attrs.SetLD("unit", numfmt.Cut(gr.Unit()))
	grp.Attrs.SetLD("grid-width", numfmt.Cut(gr.GridWidth()))
	grp.Attrs.SetLD("subgrid-width", numfmt.Cut(gr.SubGridWidth()))
	grp.Attrs.SetLD("labels-size", numfmt.Cut(gr.LabelsSize()))
	grp.Attrs.SetLD("subgrid-div", strconv.Itoa(gr.SubGridDiv()))
	grp.Attrs.SetLD("grid-dots", strconv.Itoa(gr.GridDots()))
	grp.Attrs.SetLD("subgrid-dots", strconv.Itoa(gr.SubGridDots()))
	grp.Attrs.SetLD("subgrid-color", paint(gr.SubGridColor()))
	grp.Attrs.SetLD("labels-color", paint(gr.GridLabelsColor()))
	grp.Attrs.SetLD("x-label-south", boolString(gr.XLabelSouth()))
	grp.Attrs.SetLD("y-label-west", boolString(gr.YLabelWest()))

	if sub := gr.SubLines(); len(sub) > 0 {
		p := &Path{D: linesPath(sub)}
		p.Attrs.SetLD("type", "subgrid")
		p.Attrs.Set("stroke", paint(gr.SubGridColor()))
		p.Attrs.Set("stroke-width", numfmt.Cut(gr.SubGridWidth()*shape.PPC))
		p.Attrs.Set("fill", "none")
		if n := gr.SubGridDots(); n > 0 {
			p.Attrs.Set("stroke-dasharray", dots(gr.SubGridWidth()*shape.PPC, gr.Unit()*shape.PPC/float64(n*gr.SubGridDiv())))
		}
		grp.Children = append(grp.Children, p)
	}
	main := &Path{D: linesPath(gr.Lines())}
	main.Attrs.Set("stroke", paint(gr.GridColor()))
	main.Attrs.Set("stroke-width", numfmt.Cut(gr.Thickness()))
	main.Attrs.Set("fill", "none")
	if n := gr.GridDots(); n > 0 {
		main.Attrs.Set("stroke-dasharray", dots(gr.Thickness(), gr.Unit()*shape.PPC/float64(n)))
	}
	grp.Children = append(grp.Children, main)
}

// dots is the dash array of a dotted grid line with one dot every step.
func dots(width, step float64) string {
	off := step - width
	if off < 0 {
		off = 0
	}
	return numfmt.Cut(width) + "," + numfmt.Cut(off)
}

func (g *generator) text(grp *Group, t *shape.Text) {
	pos := t.Position()
	grp.Attrs.SetLD("position", point(pos))
	size := shape.PtToPx(shape.TextSize)

	main := &TextNode{X: pos.X, Y: pos.Y, Content: t.Text()}
	main.Attrs.Set("text-anchor", "middle")
	main.Attrs.Set("font-size", numfmt.Cut(size))
	main.Attrs.Set("fill", paint(t.LineColor()))
	grp.Children = []Node{main}

	if !t.HasMath() {
		return
	}
	content, err := mathContent(t.Text())
	if err != nil {
		return
	}
	ext := t.Extent()
	fo := &ForeignObject{
		X:       pos.X - ext.Width/2,
		Y:       pos.Y - ext.Ascent,
		Width:   math.Max(ext.Width, size),
		Height:  math.Max(ext.Height(), size),
		Content: content,
	}
	fo.Attrs.SetLD("type", "mathml")
	// The hidden <text> keeps the label source for reimport.
	main.Attrs.Set("visibility", "hidden")
	grp.Children = append(grp.Children, fo)
}

// mathContent renders a label as an XHTML fragment with one MathML element
// per math segment.
func mathContent(text string) (string, error) {
	var b []byte
	b = append(b, `<div xmlns="http://www.w3.org/1999/xhtml">`...)
	for _, seg := range layout.SplitMath(text) {
		if !seg.Math {
			b = appendEscaped(b, seg.Text)
			continue
		}
		m, err := layout.MathML(seg.Text)
		if err != nil {
			return "", err
		}
		b = append(b, m...)
	}
	b = append(b, "</div>"...)
	return string(b), nil
}

func appendEscaped(b []byte, s string) []byte {
	for _, r := range s {
		switch r {
		case '<':
			b = append(b, "&lt;"...)
		case '>':
			b = append(b, "&gt;"...)
		case '&':
			b = append(b, "&amp;"...)
		default:
			b = append(b, string(r)...)
		}
	}
	return b
}
