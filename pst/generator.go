package pst

import (
	"fmt"
	"math"
	"strings"

	"github.com/wudi/texfig/coords"
	"github.com/wudi/texfig/numfmt"
	"github.com/wudi/texfig/shape"
)

// Options controls Generate.
type Options struct {
	// Picture wraps the code in a pspicture environment fitted to the
	// drawing bounds.
	Picture bool
}

// colorDefs collects the \newrgbcolor definitions needed by generated code.
type colorDefs struct {
	seen map[string]bool
	defs []string
}

func (c *colorDefs) name(col shape.Color) string {
	n := col.TeXName()
	if _, ok := col.DviPsName(); ok || c.seen[n] {
		return n
	}
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	c.seen[n] = true
	c.defs = append(c.defs, fmt.Sprintf(`\newrgbcolor{%s}{%s %s %s}`, n,
		numfmt.CutFloat(col.R), numfmt.CutFloat(col.G), numfmt.CutFloat(col.B)))
	return n
}

type generator struct {
	cols colorDefs
}

// Generate returns the PSTricks code of a drawing, one shape per line. It
// fails when a plot cannot be sampled within its timeout.
func Generate(d *shape.Drawing, opts Options) (string, error) {
	if err := d.SampleErr(); err != nil {
		return "", err
	}
	g := &generator{}
	var b strings.Builder
	bounds := d.Bounds()
	picture := opts.Picture && bounds.IsValid()
	if picture {
		fmt.Fprintf(&b, "\\begin{pspicture}(%s,%s)(%s,%s)\n",
			numfmt.Cut(bounds.Min.X/shape.PPC), numfmt.Cut(-bounds.Max.Y/shape.PPC),
			numfmt.Cut(bounds.Max.X/shape.PPC), numfmt.Cut(-bounds.Min.Y/shape.PPC))
	}
	for _, s := range d.Shapes() {
		g.writeShape(&b, s)
		b.WriteByte('\n')
	}
	if picture {
		b.WriteString("\\end{pspicture}\n")
	}
	return b.String(), nil
}

// GenerateShape returns the code of a single shape, preceded by the colour
// definitions it needs. A rotated plot that cannot be sampled is rotated
// around its position.
func GenerateShape(s shape.Shape) string {
	g := &generator{}
	var b strings.Builder
	g.writeShape(&b, s)
	return b.String()
}

func (g *generator) writeShape(b *strings.Builder, s shape.Shape) {
	start := len(g.cols.defs)
	code := g.shapeCode(s)
	for _, def := range g.cols.defs[start:] {
		b.WriteString(def)
		b.WriteByte('\n')
	}
	b.WriteString(code)
}

// shapeCode wraps rotated shapes in a \rput rotating around their gravity
// centre; the shape itself is then written relative to that centre.
func (g *generator) shapeCode(s shape.Shape) string {
	if t, ok := s.(*shape.Text); ok {
		return g.text(t)
	}
	r, ok := s.(shape.Rotatable)
	if !ok || numfmt.Equal(r.RotationAngle(), 0) {
		return g.body(s, coords.Point{})
	}
	c := s.GravityCentre()
	return `\rput{` + numfmt.CutFloat(-r.RotationAngle()*180/math.Pi) + `}` +
		point(c, coords.Point{}) + `{` + g.body(s, c) + `}`
}

func (g *generator) body(s shape.Shape, org coords.Point) string {
	switch v := s.(type) {
	case *shape.Dot:
		return g.dot(v, org)
	case *shape.Line:
		return g.polyline(`\psline`, v, v.Points(), org)
	case *shape.Polyline:
		return g.polyline(`\psline`, v, v.Points(), org)
	case *shape.Polygon:
		return g.polyline(`\pspolygon`, v, v.Points(), org)
	case *shape.Axes:
		return positioned(v.Position(), org, g.axes(v))
	case *shape.Grid:
		return positioned(v.Position(), org, g.grid(v))
	case *shape.Plot:
		return positioned(v.Position(), org, g.plot(v))
	}
	return ""
}

// point writes p relative to org in PSTricks coordinates.
func point(p, org coords.Point) string {
	return "(" + numfmt.Cut((p.X-org.X)/shape.PPC) + "," + numfmt.Cut((org.Y-p.Y)/shape.PPC) + ")"
}

func intPoint(p coords.Point) string {
	return fmt.Sprintf("(%d,%d)", int(p.X), int(p.Y))
}

func cutPoint(p coords.Point) string {
	return "(" + numfmt.Cut(p.X) + "," + numfmt.Cut(p.Y) + ")"
}

func positioned(pos, org coords.Point, code string) string {
	x, y := (pos.X-org.X)/shape.PPC, (org.Y-pos.Y)/shape.PPC
	if numfmt.Equal(x, 0) && numfmt.Equal(y, 0) {
		return code
	}
	return `\rput(` + numfmt.Cut(x) + "," + numfmt.Cut(y) + "){" + code + "}"
}

func (g *generator) newParams() *paramList { return &paramList{cols: &g.cols} }

func (g *generator) lineParams(l *paramList, s shape.Shape) {
	if !s.LineColor().Equals(shape.Black) {
		l.color("linecolor", s.LineColor())
	}
	if t, ok := s.(shape.ThicknessAdjustable); ok {
		if !numfmt.Equal(t.Thickness()/shape.PPC, shape.DefaultThickness/shape.PPC) {
			l.num("linewidth", t.Thickness()/shape.PPC)
		}
		if t.LineStyle() != shape.LineSolid {
			l.add("linestyle", t.LineStyle().String())
		}
	}
}

func (g *generator) fillParams(l *paramList, f shape.Fillable) {
	if !f.IsFilled() {
		return
	}
	l.add("fillstyle", shape.FillPlain.String())
	if !f.FillColor().Equals(shape.White) {
		l.color("fillcolor", f.FillColor())
	}
}

func (g *generator) shadowParams(l *paramList, s shape.Shadowable) {
	if !s.HasShadow() {
		return
	}
	l.flag("shadow", true)
	if !s.ShadowColor().Equals(shape.DarkGray) {
		l.color("shadowcolor", s.ShadowColor())
	}
	if !numfmt.Equal(s.ShadowSize()/shape.PPC, shape.DefaultShadowSize/shape.PPC) {
		l.num("shadowsize", s.ShadowSize()/shape.PPC)
	}
	if !numfmt.Equal(s.ShadowAngle(), shape.DefaultShadowAngle) {
		l.cutFloat("shadowangle", s.ShadowAngle()*180/math.Pi)
	}
}

func (g *generator) doubleParams(l *paramList, d shape.DoubleBorderable) {
	if !d.HasDoubleBorder() {
		return
	}
	l.flag("doubleline", true)
	if !numfmt.Equal(d.DoubleSep()/shape.PPC, shape.DefaultDoubleSep/shape.PPC) {
		l.num("doublesep", d.DoubleSep()/shape.PPC)
	}
	if !d.DoubleColor().Equals(shape.White) {
		l.color("doublecolor", d.DoubleColor())
	}
}

// styledArrow returns the first arrow with a style: PSTricks has a single
// set of arrow parameters per macro.
func styledArrow(a shape.Arrowable) *shape.Arrow {
	for _, arrow := range a.Arrows() {
		if arrow.HasStyle() {
			return arrow
		}
	}
	return nil
}

func (g *generator) arrowParams(l *paramList, s shape.Arrowable) {
	a := styledArrow(s)
	if a == nil {
		return
	}
	hasStyle := func(pred func(shape.ArrowStyle) bool) bool {
		for _, arrow := range s.Arrows() {
			if pred(arrow.Style()) {
				return true
			}
		}
		return false
	}
	if hasStyle(shape.ArrowStyle.IsArrow) {
		if dim, num := a.ArrowSize(); !numfmt.Equal(dim, shape.DefaultArrowSizeDim) || !numfmt.Equal(num, shape.DefaultArrowSizeNum) {
			l.dimFactor("arrowsize", dim, num)
		}
		if !numfmt.Equal(a.ArrowLength(), shape.DefaultArrowLength) {
			l.cutFloat("arrowlength", a.ArrowLength())
		}
		if !numfmt.Equal(a.ArrowInset(), shape.DefaultArrowInset) {
			l.cutFloat("arrowinset", a.ArrowInset())
		}
	}
	if hasStyle(shape.ArrowStyle.IsBar) {
		if dim, num := a.TBarSize(); !numfmt.Equal(dim, shape.DefaultTBarSizeDim) || !numfmt.Equal(num, shape.DefaultTBarSizeNum) {
			l.dimFactor("tbarsize", dim, num)
		}
		if !numfmt.Equal(a.BracketLength(), shape.DefaultBracketLength) {
			l.cutFloat("bracketlength", a.BracketLength())
		}
		if !numfmt.Equal(a.RBracketLength(), shape.DefaultRBracketLength) {
			l.cutFloat("rbracketlength", a.RBracketLength())
		}
	}
	if hasStyle(shape.ArrowStyle.IsCircle) {
		if dim, num := a.DotSize(); !numfmt.Equal(dim, shape.DefaultDotSizeDim) || !numfmt.Equal(num, shape.DefaultArrowDotSizeNum) {
			l.dimFactor("dotsize", dim, num)
		}
	}
}

// arrowsArg returns the {start-end} argument, or "" without arrows.
func arrowsArg(start, end *shape.Arrow) string {
	if !start.HasStyle() && !end.HasStyle() {
		return ""
	}
	return "{" + start.Style().PSTToken(true) + "-" + end.Style().PSTToken(false) + "}"
}

func (g *generator) dot(d *shape.Dot, org coords.Point) string {
	l := g.newParams()
	if !d.LineColor().Equals(shape.Black) {
		l.color("linecolor", d.LineColor())
	}
	if d.Style() != shape.DotDisc {
		l.add("dotstyle", d.Style().String())
	}
	l.num("dotsize", d.Diameter()/shape.PPC)
	if d.Style().IsFillable() && !d.FillColor().Equals(shape.White) {
		l.color("fillcolor", d.FillColor())
	}
	return `\psdots` + l.String() + point(d.Position(), org)
}

type pointsShape interface {
	shape.Fillable
	shape.ThicknessAdjustable
	shape.Shadowable
	shape.DoubleBorderable
}

func (g *generator) polyline(macro string, s pointsShape, pts []coords.Point, org coords.Point) string {
	l := g.newParams()
	g.lineParams(l, s)
	g.fillParams(l, s)
	g.shadowParams(l, s)
	g.doubleParams(l, s)
	var arrows string
	if a, ok := s.(shape.Arrowable); ok {
		g.arrowParams(l, a)
		arrows = arrowsArg(a.ArrowAt(0), a.ArrowAt(-1))
	}
	var b strings.Builder
	b.WriteString(macro)
	b.WriteString(l.String())
	b.WriteString(arrows)
	for _, p := range pts {
		b.WriteString(point(p, org))
	}
	return b.String()
}

func (g *generator) axes(a *shape.Axes) string {
	l := g.newParams()
	g.lineParams(l, a)
	ix, iy := a.Increment()
	if !numfmt.Equal(ix, shape.DefaultAxesIncrement) {
		l.cutFloat("Dx", ix)
	}
	if !numfmt.Equal(iy, shape.DefaultAxesIncrement) {
		l.cutFloat("Dy", iy)
	}
	dx, dy := a.DistLabels()
	if !numfmt.Equal(dx, shape.DefaultAxesDistLabels) {
		l.cutFloat("dx", dx)
	}
	if !numfmt.Equal(dy, shape.DefaultAxesDistLabels) {
		l.cutFloat("dy", dy)
	}
	if a.LabelsDisplayed() != shape.PlottingAll {
		l.add("labels", a.LabelsDisplayed().String())
	}
	if a.TicksDisplayed() != shape.PlottingAll {
		l.add("ticks", a.TicksDisplayed().String())
	}
	if a.TicksStyle() != shape.TicksFull {
		l.add("tickstyle", a.TicksStyle().String())
	}
	if !numfmt.Equal(a.TicksSize(), shape.DefaultTicksSize) {
		l.add("ticksize", numfmt.Cut(shape.PxToPt(a.TicksSize()))+"pt")
	}
	if a.AxesStyle() != shape.AxesStyleAxes {
		l.add("axesstyle", a.AxesStyle().String())
	}
	if !a.ShowOrigin() {
		l.flag("showorigin", false)
	}
	g.arrowParams(l, a)
	return `\psaxes` + l.String() +
		arrowsArg(a.ArrowAt(shape.AxesArrowYNear), a.ArrowAt(shape.AxesArrowYFar)) +
		cutPoint(a.Origin()) + cutPoint(a.GridStart()) + cutPoint(a.GridEnd())
}

// grid writes integer coordinates; label sides are encoded by swapping the
// bounds.
func (g *generator) grid(gr *shape.Grid) string {
	l := g.newParams()
	if !numfmt.Equal(gr.GridWidth(), shape.DefaultGridWidth) {
		l.cutFloat("gridwidth", gr.GridWidth())
	}
	if !numfmt.Equal(gr.SubGridWidth(), shape.DefaultSubGridWidth) {
		l.cutFloat("subgridwidth", gr.SubGridWidth())
	}
	if !numfmt.Equal(gr.LabelsSize(), shape.DefaultGridLabelsSize) {
		l.add("gridlabels", numfmt.Cut(gr.LabelsSize())+"pt")
	}
	if gr.SubGridDiv() != shape.DefaultSubGridDiv {
		l.integer("subgriddiv", gr.SubGridDiv())
	}
	if gr.GridDots() != 0 {
		l.integer("griddots", gr.GridDots())
	}
	if gr.SubGridDots() != 0 {
		l.integer("subgriddots", gr.SubGridDots())
	}
	if !gr.GridLabelsColor().Equals(shape.DefaultGridLabelsColor) {
		l.color("gridlabelcolor", gr.GridLabelsColor())
	}
	if !numfmt.Equal(gr.Unit(), shape.DefaultGridUnit) {
		l.add("unit", numfmt.CutFloat(gr.Unit())+"cm")
	}
	if !gr.GridColor().Equals(shape.DefaultGridColor) {
		l.color("gridcolor", gr.GridColor())
	}
	if !gr.SubGridColor().Equals(shape.DefaultSubGridColor) {
		l.color("subgridcolor", gr.SubGridColor())
	}

	start, end := gr.GridStart(), gr.GridEnd()
	if !gr.XLabelSouth() {
		start.Y, end.Y = end.Y, start.Y
	}
	if !gr.YLabelWest() {
		start.X, end.X = end.X, start.X
	}
	return `\psgrid` + l.String() + intPoint(gr.Origin()) + intPoint(start) + intPoint(end)
}

func (g *generator) plot(p *shape.Plot) string {
	l := g.newParams()
	g.lineParams(l, p)
	g.fillParams(l, p)
	g.shadowParams(l, p)
	if p.NbPoints() != shape.DefaultPlotPoints {
		l.integer("plotpoints", p.NbPoints())
	}
	if p.PlotStyle() != shape.PlotLine {
		l.add("plotstyle", p.PlotStyle().String())
	}
	xs, ys := p.Scale()
	if !numfmt.Equal(xs, shape.DefaultPlotScale) {
		l.cutFloat("xunit", xs)
	}
	if !numfmt.Equal(ys, shape.DefaultPlotScale) {
		l.cutFloat("yunit", ys)
	}
	if p.IsPolar() {
		l.flag("polarplot", true)
	}
	if p.IsAlgebraic() {
		l.flag("algebraic", true)
	}
	g.arrowParams(l, p)
	minX, maxX := p.Range()
	return `\psplot` + l.String() + arrowsArg(p.ArrowAt(0), p.ArrowAt(-1)) +
		"{" + numfmt.Cut(minX) + "}{" + numfmt.Cut(maxX) + "}{" + p.Equation() + "}"
}

func (g *generator) text(t *shape.Text) string {
	var b strings.Builder
	b.WriteString(`\rput`)
	if !numfmt.Equal(t.RotationAngle(), 0) {
		b.WriteString("{" + numfmt.CutFloat(-t.RotationAngle()*180/math.Pi) + "}")
	}
	b.WriteString(point(t.Position(), coords.Point{}))
	b.WriteByte('{')
	if !t.LineColor().Equals(shape.Black) {
		b.WriteString(`\textcolor{` + g.cols.name(t.LineColor()) + "}{" + t.Text() + "}")
	} else {
		b.WriteString(t.Text())
	}
	b.WriteByte('}')
	return b.String()
}
