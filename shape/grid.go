package shape

import (
	"math"

	"github.com/wudi/texfig/coords"
)

// gridBase holds what Axes and Grid share: where the macro origin sits in
// the drawing, the origin and the bounds in macro units.
type gridBase struct {
	Base
	position  coords.Point
	origin    coords.Point
	gridStart coords.Point
	gridEnd   coords.Point
}

func newGridBase(pos coords.Point) gridBase {
	return gridBase{
		Base:     newBase(),
		position: pos,
		gridEnd:  coords.Point{X: 2, Y: 2},
	}
}

func (g *gridBase) Position() coords.Point { return g.position }
func (g *gridBase) SetPosition(p coords.Point) {
	if p.IsValid() {
		g.position = p
	}
}

func (g *gridBase) Origin() coords.Point { return g.origin }
func (g *gridBase) SetOrigin(p coords.Point) {
	if p.IsValid() {
		g.origin = p
	}
}

func (g *gridBase) GridStart() coords.Point { return g.gridStart }
func (g *gridBase) GridEnd() coords.Point   { return g.gridEnd }

// SetGridBounds sets both corners; start must not exceed end on either axis.
func (g *gridBase) SetGridBounds(start, end coords.Point) {
	if start.IsValid() && end.IsValid() && start.X <= end.X && start.Y <= end.Y {
		g.gridStart, g.gridEnd = start, end
	}
}

// boundsIn returns the drawing box of the grid for a given unit in cm.
func (g *gridBase) boundsIn(unit float64) coords.Rect {
	f := unit * PPC
	return coords.RectOf(
		coords.Point{X: g.position.X + g.gridStart.X*f, Y: g.position.Y - g.gridStart.Y*f},
		coords.Point{X: g.position.X + g.gridEnd.X*f, Y: g.position.Y - g.gridEnd.Y*f},
	)
}

func (g *gridBase) Translate(dx, dy float64) { g.SetPosition(g.position.Translate(dx, dy)) }

func (g *gridBase) MirrorHorizontal(origin coords.Point) { g.SetPosition(mirrorH(g.position, origin)) }
func (g *gridBase) MirrorVertical(origin coords.Point)   { g.SetPosition(mirrorV(g.position, origin)) }

// PSTricks \psgrid defaults. Widths are in centimetres.
var (
	DefaultGridWidth    = ptToCm(0.8)
	DefaultSubGridWidth = ptToCm(0.4)
)

const (
	DefaultGridUnit       = 1.0
	DefaultGridLabelsSize = 10.0
	DefaultSubGridDiv     = 5
)

var (
	DefaultGridColor       = Black
	DefaultSubGridColor    = Gray
	DefaultGridLabelsColor = Black
)

func ptToCm(pt float64) float64 { return PtToPx(pt) / PPC }

type Grid struct {
	gridBase
	unit         float64
	gridWidth    float64
	subGridWidth float64
	labelsSize   float64
	subGridDiv   int
	gridDots     int
	subGridDots  int

	subGridColor, labelsColor Color

	xLabelSouth, yLabelWest bool
}

func NewGrid(pos coords.Point) *Grid {
	return &Grid{
		gridBase:     newGridBase(pos),
		unit:         DefaultGridUnit,
		gridWidth:    DefaultGridWidth,
		subGridWidth: DefaultSubGridWidth,
		labelsSize:   DefaultGridLabelsSize,
		subGridDiv:   DefaultSubGridDiv,
		subGridColor: DefaultSubGridColor,
		labelsColor:  DefaultGridLabelsColor,
		xLabelSouth:  true,
		yLabelWest:   true,
	}
}

func (g *Grid) Kind() Kind { return KindGrid }

// Unit is the size of one grid cell in centimetres.
func (g *Grid) Unit() float64 { return g.unit }
func (g *Grid) SetUnit(v float64) {
	if validPositive(v) {
		g.unit = v
	}
}

func (g *Grid) GridWidth() float64 { return g.gridWidth }
func (g *Grid) SetGridWidth(v float64) {
	if validPositive(v) {
		g.gridWidth = v
	}
}

// Thickness is the main grid width in pixels.
func (g *Grid) Thickness() float64     { return g.gridWidth * PPC }
func (g *Grid) SetThickness(t float64) { g.SetGridWidth(t / PPC) }

// LineStyle is dotted when the main grid is drawn with dots. The grid
// style only follows GridDots, so SetLineStyle has no effect.
func (g *Grid) LineStyle() LineStyle {
	if g.gridDots > 0 {
		return LineDotted
	}
	return LineSolid
}

func (g *Grid) SetLineStyle(LineStyle) {}

func (g *Grid) SubGridWidth() float64 { return g.subGridWidth }
func (g *Grid) SetSubGridWidth(v float64) {
	if validPositive(v) {
		g.subGridWidth = v
	}
}

// LabelsSize is the label font size in points; zero hides labels.
func (g *Grid) LabelsSize() float64 { return g.labelsSize }
func (g *Grid) SetLabelsSize(v float64) {
	if validNonNeg(v) {
		g.labelsSize = v
	}
}

func (g *Grid) SubGridDiv() int { return g.subGridDiv }
func (g *Grid) SetSubGridDiv(n int) {
	if n > 0 {
		g.subGridDiv = n
	}
}

// GridDots is the number of dots per cell side; zero draws solid lines.
func (g *Grid) GridDots() int { return g.gridDots }
func (g *Grid) SetGridDots(n int) {
	if n >= 0 {
		g.gridDots = n
	}
}

func (g *Grid) SubGridDots() int { return g.subGridDots }
func (g *Grid) SetSubGridDots(n int) {
	if n >= 0 {
		g.subGridDots = n
	}
}

// GridColor is the line colour of the main grid.
func (g *Grid) GridColor() Color           { return g.lineColor }
func (g *Grid) SetGridColor(c Color)       { g.lineColor = c }
func (g *Grid) SubGridColor() Color        { return g.subGridColor }
func (g *Grid) SetSubGridColor(c Color)    { g.subGridColor = c }
func (g *Grid) GridLabelsColor() Color     { return g.labelsColor }
func (g *Grid) SetGridLabelsColor(c Color) { g.labelsColor = c }

func (g *Grid) XLabelSouth() bool      { return g.xLabelSouth }
func (g *Grid) SetXLabelSouth(on bool) { g.xLabelSouth = on }
func (g *Grid) YLabelWest() bool       { return g.yLabelWest }
func (g *Grid) SetYLabelWest(on bool)  { g.yLabelWest = on }

func (g *Grid) Bounds() coords.Rect { return g.boundsIn(g.unit) }

func (g *Grid) GravityCentre() coords.Point { return g.Bounds().Centre() }

// Lines returns the main grid lines in drawing coordinates, vertical
// lines first.
func (g *Grid) Lines() []coords.Line {
	return g.linesEvery(1)
}

// SubLines returns the sub-grid lines, without those overlapping the main
// grid.
func (g *Grid) SubLines() []coords.Line {
	if g.subGridDiv <= 1 {
		return nil
	}
	all := g.linesEvery(g.subGridDiv)
	out := all[:0]
	for _, l := range all {
		if !g.onMainLine(l) {
			out = append(out, l)
		}
	}
	return out
}

func (g *Grid) linesEvery(div int) []coords.Line {
	f := g.unit * PPC
	step := 1 / float64(div)
	var lines []coords.Line
	x0, x1 := g.gridStart.X, g.gridEnd.X
	y0, y1 := g.gridStart.Y, g.gridEnd.Y
	px := func(x, y float64) coords.Point {
		return coords.Point{X: g.position.X + x*f, Y: g.position.Y - y*f}
	}
	for i := 0; ; i++ {
		x := x0 + float64(i)*step
		if x > x1+1e-9 || len(lines) >= maxTicks {
			break
		}
		lines = append(lines, coords.NewLine(px(x, y0), px(x, y1)))
	}
	for i := 0; ; i++ {
		y := y0 + float64(i)*step
		if y > y1+1e-9 || len(lines) >= 2*maxTicks {
			break
		}
		lines = append(lines, coords.NewLine(px(x0, y), px(x1, y)))
	}
	return lines
}

func (g *Grid) onMainLine(l coords.Line) bool {
	f := g.unit * PPC
	var v float64
	if l.P1.X == l.P2.X {
		v = (l.P1.X-g.position.X)/f - g.gridStart.X
	} else {
		v = (g.position.Y-l.P1.Y)/f - g.gridStart.Y
	}
	return math.Abs(v-math.Round(v)) < 1e-9
}
