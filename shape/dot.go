package shape

import (
	"math"

	"github.com/wudi/texfig/coords"
)

type DotStyle int

const (
	DotDisc DotStyle = iota
	DotO
	DotOPlus
	DotOTimes
	DotPlus
	DotX
	DotAsterisk
	DotBar
	DotDiamond
	DotFDiamond
	DotPentagon
	DotFPentagon
	DotSquare
	DotFSquare
	DotTriangle
	DotFTriangle
)

var dotStyleNames = [...]string{
	"*", "o", "oplus", "otimes", "+", "x", "asterisk", "|",
	"diamond", "diamond*", "pentagon", "pentagon*", "square", "square*", "triangle", "triangle*",
}

func (s DotStyle) String() string { return token(dotStyleNames[:], int(s)) }

func ParseDotStyle(s string) (DotStyle, bool) { return parseToken[DotStyle](dotStyleNames[:], s) }

// IsFillable reports the hollow styles whose interior takes the fill colour.
func (s DotStyle) IsFillable() bool {
	switch s {
	case DotO, DotOPlus, DotOTimes, DotDiamond, DotPentagon, DotSquare, DotTriangle:
		return true
	}
	return false
}

const (
	// DefaultDotDiameter is in pixels.
	DefaultDotDiameter = 20.0
	// ThicknessOStyleFactor scales the stroke of circle-based styles.
	ThicknessOStyleFactor = 16.0
)

// GoldenAngle is atan(1/φ), the half apex angle of the diamond style.
var GoldenAngle = math.Atan(2 / (1 + math.Sqrt(5)))

type Dot struct {
	Base
	centre    coords.Point
	style     DotStyle
	diameter  float64
	fillColor Color
}

func NewDot(centre coords.Point) *Dot {
	return &Dot{
		Base:      newBase(),
		centre:    centre,
		style:     DotDisc,
		diameter:  DefaultDotDiameter,
		fillColor: White,
	}
}

func (d *Dot) Kind() Kind { return KindDot }

func (d *Dot) Position() coords.Point { return d.centre }
func (d *Dot) SetPosition(p coords.Point) {
	if p.IsValid() {
		d.centre = p
	}
}

func (d *Dot) Style() DotStyle     { return d.style }
func (d *Dot) SetStyle(s DotStyle) { d.style = s }

func (d *Dot) Diameter() float64 { return d.diameter }
func (d *Dot) SetDiameter(v float64) {
	if validPositive(v) {
		d.diameter = v
	}
}

// Filling follows the style: filled styles are always plain.
func (d *Dot) Filling() FillingStyle {
	if d.IsFilled() {
		return FillPlain
	}
	return FillNone
}

// SetFilling is a no-op; the style alone decides whether a dot is filled.
func (d *Dot) SetFilling(FillingStyle) {}

// FillColor is the fill colour of fillable styles, black otherwise.
func (d *Dot) FillColor() Color {
	if d.style.IsFillable() {
		return d.fillColor
	}
	return Black
}

// InteriorColor is the colour a filled dot is painted with: the fill colour
// of fillable styles and the line colour of the others.
func (d *Dot) InteriorColor() Color {
	if d.style.IsFillable() {
		return d.fillColor
	}
	return d.lineColor
}

func (d *Dot) SetFillColor(c Color) { d.fillColor = c }

// IsFilled reports whether the style is rendered with an interior.
func (d *Dot) IsFilled() bool {
	switch d.style {
	case DotFDiamond, DotFPentagon, DotFSquare, DotFTriangle, DotDisc:
		return true
	}
	return d.style.IsFillable()
}

// TopLeftBottomRight computes the bounding corners of the dot for its
// current style.
func (d *Dot) TopLeftBottomRight() (tl, br coords.Point) {
	x, y, diam := d.centre.X, d.centre.Y, d.diameter
	tlx, tly := x-diam, y-diam
	brx, bry := x+diam, y+diam
	dec := 2 * diam / ThicknessOStyleFactor

	switch d.style {
	case DotAsterisk:
		r := tly + diam/5 - (bry-diam/5)/2 + dec
		tl = coords.Point{X: math.Cos(7*math.Pi/6)*r + x, Y: tly + diam/5 - dec}
		br = coords.Point{X: math.Cos(math.Pi/6)*r + x, Y: bry - diam/5 + dec}
	case DotBar:
		th := diam / 8
		tl = coords.Point{X: x - th, Y: tly}
		br = coords.Point{X: x + th, Y: bry + diam/1.875}
	case DotDiamond, DotFDiamond:
		p := 2 * math.Abs(tlx-brx) / (2 * math.Sin(GoldenAngle)) * math.Cos(GoldenAngle)
		x1, x2 := brx-1.5*dec, tlx+1.5*dec
		tl = coords.Point{X: math.Min(x1, x2), Y: (tly+bry)/2 + p/2 - 1.5*dec}
		br = coords.Point{X: math.Max(x1, x2), Y: (tly+bry)/2 - p/2 + 1.5*dec}
	case DotPentagon, DotFPentagon:
		dist := diam + dec
		xv := math.Sin(2*math.Pi/5) * dist
		tl = coords.Point{X: x - xv, Y: tly - dec}
		br = coords.Point{X: x + xv, Y: 0.25*(math.Sqrt(5)+1)*dist + y + dec}
	case DotTriangle, DotFTriangle:
		tl = coords.Point{X: tlx - 0.3*dec, Y: tly - 1.5*dec}
		br = coords.Point{X: brx + 0.3*dec, Y: bry - 3*dec}
	case DotPlus:
		gap := diam / 80
		tl = coords.Point{X: tlx - gap, Y: tly - gap}
		br = coords.Point{X: brx + gap, Y: bry + gap}
	case DotX:
		gap := diam / 5
		tl = coords.Point{X: tlx - gap, Y: tly - gap}
		br = coords.Point{X: brx + gap, Y: bry + gap}
	default:
		tl = coords.Point{X: tlx, Y: tly}
		br = coords.Point{X: brx, Y: bry}
	}
	return tl, br
}

// Gaps used when drawing the dot glyphs.
func (d *Dot) PlusGap() float64      { return d.diameter / 160 }
func (d *Dot) CrossGap() float64     { return d.diameter / 10 }
func (d *Dot) BarGap() float64       { return d.diameter / 3.75 }
func (d *Dot) BarThickness() float64 { return d.diameter / 8 }
func (d *Dot) GeneralGap() float64   { return d.diameter / ThicknessOStyleFactor }

func (d *Dot) OGap() float64 {
	k := 2.6
	if d.style == DotO {
		k = 3.6
	}
	return d.diameter * (0.1 / k) * 2
}

// LazyBounds is the box of the dot disc, ignoring the style.
func (d *Dot) LazyBounds() coords.Rect {
	r := d.diameter / 2
	return coords.Rect{
		Min: coords.Point{X: d.centre.X - r, Y: d.centre.Y - r},
		Max: coords.Point{X: d.centre.X + r, Y: d.centre.Y + r},
	}
}

func (d *Dot) Bounds() coords.Rect {
	tl, br := d.TopLeftBottomRight()
	return coords.RectOf(tl, br)
}

func (d *Dot) GravityCentre() coords.Point { return d.centre }

func (d *Dot) Translate(dx, dy float64) { d.SetPosition(d.centre.Translate(dx, dy)) }

func (d *Dot) MirrorHorizontal(origin coords.Point) { d.SetPosition(mirrorH(d.centre, origin)) }
func (d *Dot) MirrorVertical(origin coords.Point)   { d.SetPosition(mirrorV(d.centre, origin)) }
