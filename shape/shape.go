// Package shape holds the drawing model shared by the PSTricks and SVG
// converters.
//
// Drawing coordinates are pixels with y growing downwards; PPC pixels make
// one centimetre. Each variant carries its own attributes and implements
// the capability interfaces (Fillable, Arrowable, ...) that apply to it.
// Setters validate their input and silently keep the previous value when
// it is rejected. Geometry is computed on demand from the current
// attributes; nothing is cached.
package shape

import (
	"math"

	"github.com/wudi/texfig/coords"
	"github.com/wudi/texfig/numfmt"
)

// PPC is the number of pixels per centimetre.
const PPC = 50.0

// PtToPx converts TeX points to pixels.
func PtToPx(pt float64) float64 { return numfmt.ToCm(pt, numfmt.PT) * PPC }

// PxToPt converts pixels to TeX points.
func PxToPt(px float64) float64 { return numfmt.FromCm(px/PPC, numfmt.PT) }

// Kind identifies a shape variant.
type Kind int

const (
	KindDot Kind = iota
	KindAxes
	KindGrid
	KindLine
	KindPolyline
	KindPolygon
	KindPlot
	KindText
)

var kindNames = [...]string{"dot", "axes", "grid", "line", "polyline", "polygon", "plot", "text"}

func (k Kind) String() string { return token(kindNames[:], int(k)) }

func ParseKind(s string) (Kind, bool) { return parseToken[Kind](kindNames[:], s) }

// Shape is implemented by every variant.
type Shape interface {
	Kind() Kind
	LineColor() Color
	SetLineColor(c Color)
	Bounds() coords.Rect
	GravityCentre() coords.Point
	Translate(dx, dy float64)
	MirrorHorizontal(origin coords.Point)
	MirrorVertical(origin coords.Point)
}

type Rotatable interface {
	Shape
	RotationAngle() float64
	SetRotationAngle(angle float64)
}

type Fillable interface {
	Shape
	Filling() FillingStyle
	SetFilling(f FillingStyle)
	FillColor() Color
	SetFillColor(c Color)
	IsFilled() bool
}

type ThicknessAdjustable interface {
	Shape
	Thickness() float64
	SetThickness(t float64)
	LineStyle() LineStyle
	SetLineStyle(s LineStyle)
}

type Shadowable interface {
	Shape
	HasShadow() bool
	SetShadow(on bool)
	ShadowColor() Color
	SetShadowColor(c Color)
	ShadowSize() float64
	SetShadowSize(s float64)
	ShadowAngle() float64
	SetShadowAngle(a float64)
}

type DoubleBorderable interface {
	Shape
	HasDoubleBorder() bool
	SetDoubleBorder(on bool)
	DoubleColor() Color
	SetDoubleColor(c Color)
	DoubleSep() float64
	SetDoubleSep(s float64)
}

type Arrowable interface {
	Shape
	Arrows() []*Arrow
	ArrowAt(i int) *Arrow
	SetArrowStyle(i int, s ArrowStyle)
	// ArrowLine returns the segment an arrow is drawn on, oriented from
	// the arrow tip inwards.
	ArrowLine(a *Arrow) (coords.Line, bool)
}

// Base carries the attributes common to every shape.
type Base struct {
	lineColor Color
	rotation  float64
}

func newBase() Base { return Base{lineColor: Black} }

func (b *Base) LineColor() Color       { return b.lineColor }
func (b *Base) SetLineColor(c Color)   { b.lineColor = c }
func (b *Base) RotationAngle() float64 { return b.rotation }

// SetRotationAngle sets the rotation in radians, normalised to (-2π, 2π).
func (b *Base) SetRotationAngle(angle float64) {
	if coords.IsValidCoord(angle) {
		b.rotation = math.Mod(angle, 2*math.Pi)
	}
}

// stroke holds the line attributes of thickness-adjustable shapes.
type stroke struct {
	thickness float64
	lineStyle LineStyle
}

// DefaultThickness is the PSTricks linewidth (0.8pt) in pixels.
var DefaultThickness = PtToPx(0.8)

func newStroke() stroke { return stroke{thickness: DefaultThickness, lineStyle: LineSolid} }

func (s *stroke) Thickness() float64 { return s.thickness }
func (s *stroke) SetThickness(t float64) {
	if t > 0 && coords.IsValidCoord(t) {
		s.thickness = t
	}
}
func (s *stroke) LineStyle() LineStyle     { return s.lineStyle }
func (s *stroke) SetLineStyle(l LineStyle) { s.lineStyle = l }

type fill struct {
	filling   FillingStyle
	fillColor Color
}

func newFill() fill { return fill{filling: FillNone, fillColor: White} }

func (f *fill) Filling() FillingStyle     { return f.filling }
func (f *fill) SetFilling(s FillingStyle) { f.filling = s }
func (f *fill) FillColor() Color          { return f.fillColor }
func (f *fill) SetFillColor(c Color)      { f.fillColor = c }
func (f *fill) IsFilled() bool            { return f.filling != FillNone }

// Shadow defaults follow PSTricks: shadowsize=3pt, shadowangle=-45.
var (
	DefaultShadowSize  = PtToPx(3)
	DefaultShadowAngle = -math.Pi / 4
	DefaultDoubleSep   = PtToPx(1.25 * 0.8)
)

type shadow struct {
	on    bool
	color Color
	size  float64
	angle float64
}

func newShadow() shadow {
	return shadow{color: DarkGray, size: DefaultShadowSize, angle: DefaultShadowAngle}
}

func (s *shadow) HasShadow() bool        { return s.on }
func (s *shadow) SetShadow(on bool)      { s.on = on }
func (s *shadow) ShadowColor() Color     { return s.color }
func (s *shadow) SetShadowColor(c Color) { s.color = c }
func (s *shadow) ShadowSize() float64    { return s.size }
func (s *shadow) SetShadowSize(v float64) {
	if v > 0 && coords.IsValidCoord(v) {
		s.size = v
	}
}
func (s *shadow) ShadowAngle() float64 { return s.angle }
func (s *shadow) SetShadowAngle(a float64) {
	if coords.IsValidCoord(a) {
		s.angle = a
	}
}

type double struct {
	on    bool
	color Color
	sep   float64
}

func newDouble() double { return double{color: White, sep: DefaultDoubleSep} }

func (d *double) HasDoubleBorder() bool   { return d.on }
func (d *double) SetDoubleBorder(on bool) { d.on = on }
func (d *double) DoubleColor() Color      { return d.color }
func (d *double) SetDoubleColor(c Color)  { d.color = c }
func (d *double) DoubleSep() float64      { return d.sep }
func (d *double) SetDoubleSep(v float64) {
	if v > 0 && coords.IsValidCoord(v) {
		d.sep = v
	}
}

// validPositive is the acceptance rule of size-like setters.
func validPositive(v float64) bool { return v > 0 && coords.IsValidCoord(v) }

func mirrorH(p, origin coords.Point) coords.Point { return p.HorizontalSymmetry(origin) }
func mirrorV(p, origin coords.Point) coords.Point { return p.VerticalSymmetry(origin) }

func isBad(v float64) bool { return !coords.IsValidCoord(v) }
