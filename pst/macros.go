package pst

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wudi/texfig/coords"
	"github.com/wudi/texfig/numfmt"
	"github.com/wudi/texfig/scanner"
	"github.com/wudi/texfig/shape"
)

// maxPoints bounds the coordinate list of a single macro.
const maxPoints = 1 << 16

func missingCoords(n int) error {
	return fmt.Errorf("%w: need at least %d coordinates", ErrMalformedMacroArguments, n)
}

func isStarred(cmd scanner.Token) bool { return strings.HasSuffix(cmd.Value, "*") }

// \psdots[params](x1,y1)(x2,y2)... and \psdot[params](x,y)
func parseDots(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	p, err := f.params()
	if err != nil {
		return nil, err
	}
	max := maxPoints
	if strings.TrimSuffix(cmd.Value, "*") == "psdot" {
		max = 1
	}
	pts, err := f.coords(p, max)
	if err != nil {
		return nil, err
	}
	if len(pts) == 0 {
		return nil, missingCoords(1)
	}
	out := make([]shape.Shape, 0, len(pts))
	for _, pt := range pts {
		d := shape.NewDot(f.toDrawing(pt))
		if err := f.applyDot(d, p); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (f *frame) applyDot(d *shape.Dot, p params) error {
	if err := f.applyLineColor(d, p); err != nil {
		return err
	}
	if v, ok := p["dotstyle"]; ok {
		st, ok := shape.ParseDotStyle(v)
		if !ok {
			return malformed("dotstyle", v, nil)
		}
		d.SetStyle(st)
	}
	lw, ok, err := p.dimPx("linewidth")
	if err != nil {
		return err
	}
	if !ok {
		lw = shape.DefaultThickness
	}
	// PSTricks sizes dots as dim + num*linewidth, 2pt 2 by default.
	dim, num, ok, err := p.dimFactor("dotsize")
	if err != nil {
		return err
	}
	if !ok {
		dim, num = shape.PtToPx(2), 2
	}
	d.SetDiameter(dim + num*lw)
	if c, ok, err := f.paramColor(p, "fillcolor"); err != nil {
		return err
	} else if ok {
		d.SetFillColor(c)
	}
	return nil
}

type lineShape interface {
	pointsShape
	shape.Arrowable
}

// \psline[params]{arrows}(x1,y1)(x2,y2)...
func parseLine(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	p, err := f.params()
	if err != nil {
		return nil, err
	}
	start, end, err := f.arrows()
	if err != nil {
		return nil, err
	}
	pts, err := f.coords(p, maxPoints)
	if err != nil {
		return nil, err
	}
	if len(pts) < 2 {
		return nil, missingCoords(2)
	}
	for i := range pts {
		pts[i] = f.toDrawing(pts[i])
	}
	var s lineShape
	if len(pts) == 2 {
		s = shape.NewLine(pts[0], pts[1])
	} else {
		s = shape.NewPolyline(pts...)
	}
	if err := f.applyPoints(s, p, isStarred(cmd)); err != nil {
		return nil, err
	}
	if err := applyArrows(s, p); err != nil {
		return nil, err
	}
	s.SetArrowStyle(0, start)
	s.SetArrowStyle(-1, end)
	return []shape.Shape{s}, nil
}

// \pspolygon[params](x1,y1)(x2,y2)...; arrows are accepted and ignored.
func parsePolygon(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	p, err := f.params()
	if err != nil {
		return nil, err
	}
	if _, _, err := f.arrows(); err != nil {
		return nil, err
	}
	pts, err := f.coords(p, maxPoints)
	if err != nil {
		return nil, err
	}
	if len(pts) < 2 {
		return nil, missingCoords(2)
	}
	for i := range pts {
		pts[i] = f.toDrawing(pts[i])
	}
	s := shape.NewPolygon(pts...)
	if err := f.applyPoints(s, p, isStarred(cmd)); err != nil {
		return nil, err
	}
	return []shape.Shape{s}, nil
}

// \psaxes[params]{arrows}(origin)(start)(end); one coordinate is the end,
// two are origin=start and end.
func parseAxes(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	p, err := f.params()
	if err != nil {
		return nil, err
	}
	startArrow, endArrow, err := f.arrows()
	if err != nil {
		return nil, err
	}
	pts, err := f.rawCoords(3)
	if err != nil {
		return nil, err
	}
	origin, start, end, err := gridCoords(pts)
	if err != nil {
		return nil, err
	}
	a := shape.NewAxes(f.offset)
	a.SetOrigin(origin)
	a.SetGridBounds(minPoint(start, end), maxPoint(start, end))
	if err := f.applyStroke(a, p); err != nil {
		return nil, err
	}
	if err := applyAxes(a, p); err != nil {
		return nil, err
	}
	if err := applyArrows(a, p); err != nil {
		return nil, err
	}
	a.SetArrowStyle(shape.AxesArrowYNear, startArrow)
	a.SetArrowStyle(shape.AxesArrowYFar, endArrow)
	return []shape.Shape{a}, nil
}

func gridCoords(pts []coords.Point) (origin, start, end coords.Point, err error) {
	switch len(pts) {
	case 1:
		end = pts[0]
	case 2:
		origin, start, end = pts[0], pts[0], pts[1]
	case 3:
		origin, start, end = pts[0], pts[1], pts[2]
	default:
		err = missingCoords(1)
	}
	return
}

func minPoint(a, b coords.Point) coords.Point {
	return coords.Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)}
}

func maxPoint(a, b coords.Point) coords.Point {
	return coords.Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)}
}

func applyAxes(a *shape.Axes, p params) error {
	ix, iy := a.Increment()
	if v, ok, err := p.number("Dx"); err != nil {
		return err
	} else if ok {
		ix = v
	}
	if v, ok, err := p.number("Dy"); err != nil {
		return err
	} else if ok {
		iy = v
	}
	a.SetIncrement(ix, iy)

	dx, dy := a.DistLabels()
	if v, ok, err := p.dim("dx"); err != nil {
		return err
	} else if ok {
		dx = v
	}
	if v, ok, err := p.dim("dy"); err != nil {
		return err
	} else if ok {
		dy = v
	}
	a.SetDistLabels(dx, dy)

	if v, ok := p["labels"]; ok {
		s, ok := shape.ParsePlottingStyle(v)
		if !ok {
			return malformed("labels", v, nil)
		}
		a.SetLabelsDisplayed(s)
	}
	if v, ok := p["ticks"]; ok {
		s, ok := shape.ParsePlottingStyle(v)
		if !ok {
			return malformed("ticks", v, nil)
		}
		a.SetTicksDisplayed(s)
	}
	if v, ok := p["tickstyle"]; ok {
		s, ok := shape.ParseTicksStyle(v)
		if !ok {
			return malformed("tickstyle", v, nil)
		}
		a.SetTicksStyle(s)
	}
	if v, ok := p["axesstyle"]; ok {
		s, ok := shape.ParseAxesStyle(v)
		if !ok {
			return malformed("axesstyle", v, nil)
		}
		a.SetAxesStyle(s)
	}
	if v, ok := p["ticksize"]; ok {
		// ticksize may give a length on each side of the axis.
		var size float64
		for _, field := range strings.Fields(v) {
			cm, err := numfmt.ParseDim(field, numfmt.CM)
			if err != nil {
				return malformed("ticksize", v, err)
			}
			size = math.Max(size, math.Abs(cm))
		}
		a.SetTicksSize(size * shape.PPC)
	}
	if v, ok, err := p.boolean("showorigin"); err != nil {
		return err
	} else if ok {
		a.SetShowOrigin(v)
	}
	return nil
}

// \psgrid[params](origin)(start)(end). Reversed bounds move the labels to
// the other side.
func parseGrid(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	p, err := f.params()
	if err != nil {
		return nil, err
	}
	pts, err := f.rawCoords(3)
	if err != nil {
		return nil, err
	}
	g := shape.NewGrid(f.offset)
	if len(pts) > 0 {
		origin, start, end, err := gridCoords(pts)
		if err != nil {
			return nil, err
		}
		g.SetOrigin(origin)
		g.SetGridBounds(minPoint(start, end), maxPoint(start, end))
		g.SetYLabelWest(start.X <= end.X)
		g.SetXLabelSouth(start.Y <= end.Y)
	}
	if err := f.applyGrid(g, p); err != nil {
		return nil, err
	}
	return []shape.Shape{g}, nil
}

func (f *frame) applyGrid(g *shape.Grid, p params) error {
	if v, ok, err := p.dim("gridwidth"); err != nil {
		return err
	} else if ok {
		g.SetGridWidth(v)
	}
	if v, ok, err := p.dim("subgridwidth"); err != nil {
		return err
	} else if ok {
		g.SetSubGridWidth(v)
	}
	if v, ok, err := p.dim("gridlabels"); err != nil {
		return err
	} else if ok {
		g.SetLabelsSize(numfmt.FromCm(v, numfmt.PT))
	}
	for _, set := range []struct {
		key string
		fn  func(int)
	}{
		{"subgriddiv", g.SetSubGridDiv},
		{"griddots", g.SetGridDots},
		{"subgriddots", g.SetSubGridDots},
	} {
		if v, ok, err := p.integer(set.key); err != nil {
			return err
		} else if ok {
			set.fn(v)
		}
	}
	if v, ok, err := p.dim("unit"); err != nil {
		return err
	} else if ok {
		g.SetUnit(v)
	}
	for _, set := range []struct {
		key string
		fn  func(shape.Color)
	}{
		{"gridlabelcolor", g.SetGridLabelsColor},
		{"gridcolor", g.SetGridColor},
		{"subgridcolor", g.SetSubGridColor},
	} {
		if c, ok, err := f.paramColor(p, set.key); err != nil {
			return err
		} else if ok {
			set.fn(c)
		}
	}
	return nil
}

// \psplot[params]{arrows}{xmin}{xmax}{function}
func parsePlot(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	p, err := f.params()
	if err != nil {
		return nil, err
	}
	var groups []string
	for len(groups) < 4 && f.peekIs(scanner.TokenLBrace) {
		g, err := f.braceGroup()
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	start, end := shape.ArrowNone, shape.ArrowNone
	switch len(groups) {
	case 4:
		if start, end, err = parseArrows(groups[0]); err != nil {
			return nil, err
		}
		groups = groups[1:]
	case 3:
	default:
		return nil, fmt.Errorf("%w: \\psplot needs {xmin}{xmax}{function}", ErrMalformedMacroArguments)
	}
	minX, err := plainNumber("xmin", groups[0])
	if err != nil {
		return nil, err
	}
	maxX, err := plainNumber("xmax", groups[1])
	if err != nil {
		return nil, err
	}
	if minX >= maxX {
		return nil, fmt.Errorf("%w: empty plot range [%s,%s]", ErrMalformedMacroArguments, groups[0], groups[1])
	}
	pl := shape.NewPlot(f.offset, strings.TrimSpace(groups[2]), minX, maxX)
	if err := f.applyStroke(pl, p); err != nil {
		return nil, err
	}
	if err := f.applyFill(pl, p, isStarred(cmd)); err != nil {
		return nil, err
	}
	if err := f.applyShadow(pl, p); err != nil {
		return nil, err
	}
	if err := applyPlot(pl, p); err != nil {
		return nil, err
	}
	if err := applyArrows(pl, p); err != nil {
		return nil, err
	}
	pl.SetArrowStyle(0, start)
	pl.SetArrowStyle(-1, end)
	pl.SetSampleTimeout(f.run.parser.cfg.SampleTimeout)
	if _, err := pl.Function(f.run.scripting); err != nil {
		return nil, fmt.Errorf("%w: function %q: %v", ErrMalformedMacroArguments, pl.Equation(), err)
	}
	return []shape.Shape{pl}, nil
}

func plainNumber(key, s string) (float64, error) {
	v, rest, err := numfmt.ParseNumber(s)
	if err != nil || rest != "" {
		return 0, malformed(key, s, err)
	}
	return v, nil
}

func applyPlot(pl *shape.Plot, p params) error {
	if v, ok, err := p.integer("plotpoints"); err != nil {
		return err
	} else if ok {
		pl.SetNbPoints(v)
	}
	if v, ok := p["plotstyle"]; ok {
		s, ok := shape.ParsePlotStyle(v)
		if !ok {
			return malformed("plotstyle", v, nil)
		}
		pl.SetPlotStyle(s)
	}
	xs, ys := pl.Scale()
	if v, ok, err := p.dim("xunit"); err != nil {
		return err
	} else if ok {
		xs = v
	}
	if v, ok, err := p.dim("yunit"); err != nil {
		return err
	} else if ok {
		ys = v
	}
	pl.SetScale(xs, ys)
	if v, ok, err := p.boolean("polarplot"); err != nil {
		return err
	} else if ok {
		pl.SetPolar(v)
	}
	if v, ok, err := p.boolean("algebraic"); err != nil {
		return err
	} else if ok {
		pl.SetAlgebraic(v)
	}
	return nil
}

// \rput[refpoint]{angle}(x,y){body}. A body made of drawing macros is
// parsed in a frame translated to (x,y) and rotated around it; any other
// body is a text label.
func parseRput(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	if _, _, err := f.optGroup(scanner.TokenLBracket, '[', ']'); err != nil {
		return nil, err
	}
	var angle float64
	if raw, ok, err := f.optGroup(scanner.TokenLBrace, '{', '}'); err != nil {
		return nil, err
	} else if ok {
		if angle, err = parseAngle(raw); err != nil {
			return nil, err
		}
	}
	pts, err := f.coords(f.defaults, 1)
	if err != nil {
		return nil, err
	}
	if len(pts) != 1 {
		return nil, missingCoords(1)
	}
	origin := f.toDrawing(pts[0])

	if !f.peekIs(scanner.TokenLBrace) {
		return nil, fmt.Errorf("%w: \\rput needs a {body}", ErrMalformedMacroArguments)
	}
	if _, err := f.sc.Next(); err != nil {
		return nil, err
	}
	line, col := f.sc.Position()
	base := f.base + f.sc.Offset()
	body, err := f.sc.ReadGroup('{', '}')
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMacroArguments, err)
	}
	theta := -angle * math.Pi / 180

	if f.drawsShapes(body) {
		child, err := f.child(body, line, col, base, origin)
		if err != nil {
			return nil, err
		}
		shapes := child.parseAll()
		if theta != 0 {
			for _, s := range shapes {
				rotateAround(s, origin, theta)
			}
		}
		return shapes, nil
	}

	text := strings.TrimSpace(body)
	var textColor *shape.Color
	if name, inner, ok := splitTextColor(text); ok {
		c, err := f.color(name)
		if err != nil {
			return nil, err
		}
		textColor, text = &c, strings.TrimSpace(inner)
	}
	if text == "" {
		return nil, nil
	}
	t := shape.NewText(origin, text)
	if textColor != nil {
		t.SetLineColor(*textColor)
	}
	t.SetRotationAngle(theta)
	return []shape.Shape{t}, nil
}

// rotateAround moves the gravity centre of s around o and adds angle to
// its rotation.
func rotateAround(s shape.Shape, o coords.Point, angle float64) {
	r, ok := s.(shape.Rotatable)
	if !ok {
		return
	}
	gc := s.GravityCentre()
	if nc := gc.Rotate(o, angle); nc.IsValid() {
		s.Translate(nc.X-gc.X, nc.Y-gc.Y)
	}
	r.SetRotationAngle(r.RotationAngle() + angle)
}

// parseAngle reads an \rput angle: degrees, optionally starred, or one of
// the U, L, D, R shortcuts.
func parseAngle(raw string) (float64, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "*")
	switch s {
	case "", "U":
		return 0, nil
	case "L":
		return 90, nil
	case "D":
		return 180, nil
	case "R":
		return 270, nil
	}
	return plainNumber("angle", s)
}

// drawsShapes reports whether body starts with a known macro.
func (f *frame) drawsShapes(body string) bool {
	tok, err := scanner.New(body, f.run.parser.cfg.Scanner).Next()
	if err != nil || tok.Type != scanner.TokenCommand {
		return false
	}
	_, ok := f.run.parser.handlers[tok.Value]
	return ok
}

// splitTextColor unwraps \textcolor{name}{text}.
func splitTextColor(s string) (name, text string, ok bool) {
	sc := scanner.New(s, scanner.Config{})
	tok, err := sc.Next()
	if err != nil || tok.Type != scanner.TokenCommand || tok.Value != "textcolor" {
		return "", "", false
	}
	var groups [2]string
	for i := range groups {
		if tok, err := sc.Next(); err != nil || tok.Type != scanner.TokenLBrace {
			return "", "", false
		}
		if groups[i], err = sc.ReadGroup('{', '}'); err != nil {
			return "", "", false
		}
	}
	return groups[0], groups[1], true
}

// \psset{params}
func parsePsset(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	raw, err := f.braceGroup()
	if err != nil {
		return nil, err
	}
	local, err := parseParams(raw)
	if err != nil {
		return nil, err
	}
	f.defaults = f.defaults.merge(local)
	return nil, nil
}

// \newrgbcolor{name}{r g b}
func parseNewRGBColor(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	name, err := f.braceGroup()
	if err != nil {
		return nil, err
	}
	spec, err := f.braceGroup()
	if err != nil {
		return nil, err
	}
	c, err := parseColorSpec("rgb", strings.Fields(spec))
	if err != nil {
		return nil, err
	}
	f.run.colors[strings.TrimSpace(name)] = c
	return nil, nil
}

// \definecolor{name}{model}{spec}
func parseDefineColor(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	var args [3]string
	for i := range args {
		g, err := f.braceGroup()
		if err != nil {
			return nil, err
		}
		args[i] = strings.TrimSpace(g)
	}
	c, err := parseColorSpec(args[1], strings.Split(args[2], ","))
	if err != nil {
		return nil, err
	}
	f.run.colors[args[0]] = c
	return nil, nil
}

func parseColorSpec(model string, fields []string) (shape.Color, error) {
	bad := fmt.Errorf("%w: %s colour %q", ErrMalformedMacroArguments, model, strings.Join(fields, ","))
	nums := func(n int, scale float64) ([]float64, error) {
		if len(fields) != n {
			return nil, bad
		}
		out := make([]float64, n)
		for i, s := range fields {
			v, err := plainNumber(model, strings.TrimSpace(s))
			if err != nil {
				return nil, bad
			}
			out[i] = v / scale
		}
		return out, nil
	}
	switch model {
	case "rgb":
		v, err := nums(3, 1)
		if err != nil {
			return shape.Color{}, err
		}
		return shape.RGB(v[0], v[1], v[2]), nil
	case "RGB":
		v, err := nums(3, 255)
		if err != nil {
			return shape.Color{}, err
		}
		return shape.RGB(v[0], v[1], v[2]), nil
	case "gray":
		v, err := nums(1, 1)
		if err != nil {
			return shape.Color{}, err
		}
		return shape.RGB(v[0], v[0], v[0]), nil
	case "cmyk":
		v, err := nums(4, 1)
		if err != nil {
			return shape.Color{}, err
		}
		k := 1 - v[3]
		return shape.RGB((1-v[0])*k, (1-v[1])*k, (1-v[2])*k), nil
	case "HTML":
		if len(fields) != 1 || len(strings.TrimSpace(fields[0])) != 6 {
			return shape.Color{}, bad
		}
		h, err := strconv.ParseUint(strings.TrimSpace(fields[0]), 16, 32)
		if err != nil {
			return shape.Color{}, bad
		}
		return shape.RGB(float64(h>>16&0xff)/255, float64(h>>8&0xff)/255, float64(h&0xff)/255), nil
	}
	return shape.Color{}, bad
}

// \begin{pspicture}(x0,y0)(x1,y1); the picture box is recomputed on output.
func parseBegin(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	env, err := f.braceGroup()
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(strings.TrimSpace(env), "pspicture") {
		return nil, nil
	}
	if _, _, err := f.optGroup(scanner.TokenLBracket, '[', ']'); err != nil {
		return nil, err
	}
	_, err = f.rawCoords(2)
	return nil, err
}

func parseEnd(f *frame, cmd scanner.Token) ([]shape.Shape, error) {
	_, err := f.braceGroup()
	return nil, err
}

func (f *frame) applyLineColor(s shape.Shape, p params) error {
	c, ok, err := f.paramColor(p, "linecolor")
	if err != nil {
		return err
	}
	if ok {
		s.SetLineColor(c)
	}
	return nil
}

func (f *frame) applyStroke(s shape.ThicknessAdjustable, p params) error {
	if err := f.applyLineColor(s, p); err != nil {
		return err
	}
	if v, ok, err := p.dimPx("linewidth"); err != nil {
		return err
	} else if ok {
		s.SetThickness(v)
	}
	if v, ok := p["linestyle"]; ok {
		ls, ok := shape.ParseLineStyle(v)
		if !ok {
			return malformed("linestyle", v, nil)
		}
		s.SetLineStyle(ls)
	}
	return nil
}

// applyFill handles fillstyle and fillcolor. Starred macros are filled
// with the line colour.
func (f *frame) applyFill(s shape.Fillable, p params, star bool) error {
	if v, ok := p["fillstyle"]; ok {
		if v == shape.FillNone.String() {
			s.SetFilling(shape.FillNone)
		} else {
			s.SetFilling(shape.FillPlain)
		}
	}
	if c, ok, err := f.paramColor(p, "fillcolor"); err != nil {
		return err
	} else if ok {
		s.SetFillColor(c)
	}
	if star {
		s.SetFilling(shape.FillPlain)
		s.SetFillColor(s.LineColor())
	}
	return nil
}

func (f *frame) applyShadow(s shape.Shadowable, p params) error {
	if v, ok, err := p.boolean("shadow"); err != nil {
		return err
	} else if ok {
		s.SetShadow(v)
	}
	if c, ok, err := f.paramColor(p, "shadowcolor"); err != nil {
		return err
	} else if ok {
		s.SetShadowColor(c)
	}
	if v, ok, err := p.dimPx("shadowsize"); err != nil {
		return err
	} else if ok {
		s.SetShadowSize(v)
	}
	if v, ok, err := p.number("shadowangle"); err != nil {
		return err
	} else if ok {
		s.SetShadowAngle(v * math.Pi / 180)
	}
	return nil
}

func (f *frame) applyDouble(s shape.DoubleBorderable, p params) error {
	if v, ok, err := p.boolean("doubleline"); err != nil {
		return err
	} else if ok {
		s.SetDoubleBorder(v)
	}
	if v, ok, err := p.dimPx("doublesep"); err != nil {
		return err
	} else if ok {
		s.SetDoubleSep(v)
	}
	if c, ok, err := f.paramColor(p, "doublecolor"); err != nil {
		return err
	} else if ok {
		s.SetDoubleColor(c)
	}
	return nil
}

func (f *frame) applyPoints(s pointsShape, p params, star bool) error {
	if err := f.applyStroke(s, p); err != nil {
		return err
	}
	if err := f.applyFill(s, p, star); err != nil {
		return err
	}
	if err := f.applyShadow(s, p); err != nil {
		return err
	}
	return f.applyDouble(s, p)
}

// applyArrows sets the arrow parameters shared by every arrow of s.
func applyArrows(s shape.Arrowable, p params) error {
	for _, a := range s.Arrows() {
		if dim, num, ok, err := p.dimFactor("arrowsize"); err != nil {
			return err
		} else if ok {
			a.SetArrowSize(dim, num)
		}
		if v, ok, err := p.number("arrowlength"); err != nil {
			return err
		} else if ok {
			a.SetArrowLength(v)
		}
		if v, ok, err := p.number("arrowinset"); err != nil {
			return err
		} else if ok {
			a.SetArrowInset(v)
		}
		if dim, num, ok, err := p.dimFactor("tbarsize"); err != nil {
			return err
		} else if ok {
			a.SetTBarSize(dim, num)
		}
		if v, ok, err := p.number("bracketlength"); err != nil {
			return err
		} else if ok {
			a.SetBracketLength(v)
		}
		if v, ok, err := p.number("rbracketlength"); err != nil {
			return err
		} else if ok {
			a.SetRBracketLength(v)
		}
		if dim, num, ok, err := p.dimFactor("dotsize"); err != nil {
			return err
		} else if ok {
			a.SetDotSize(dim, num)
		}
	}
	return nil
}
