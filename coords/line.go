package coords

import "math"

// Line is a segment from P1 to P2.
type Line struct{ P1, P2 Point }

func NewLine(p1, p2 Point) Line { return Line{P1: p1, P2: p2} }

func (l Line) IsValid() bool   { return l.P1.IsValid() && l.P2.IsValid() }
func (l Line) Length() float64 { return l.P1.Distance(l.P2) }

// Angle is the direction of P1->P2 in radians.
func (l Line) Angle() float64 { return l.P2.Angle(l.P1) }

// Rect is an axis-aligned rectangle; Min is the top-left corner in
// drawing coordinates (y grows downwards).
type Rect struct{ Min, Max Point }

// RectOf returns the smallest rectangle holding every valid point.
func RectOf(pts ...Point) Rect {
	r := Rect{Min: Invalid, Max: Invalid}
	for _, p := range pts {
		r = r.Add(p)
	}
	return r
}

func (r Rect) IsValid() bool { return r.Min.IsValid() && r.Max.IsValid() }

// Add grows r so that it contains p. Invalid points are ignored.
func (r Rect) Add(p Point) Rect {
	if !p.IsValid() {
		return r
	}
	if !r.IsValid() {
		return Rect{Min: p, Max: p}
	}
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}

func (r Rect) Union(o Rect) Rect {
	if !o.IsValid() {
		return r
	}
	return r.Add(o.Min).Add(o.Max)
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }
func (r Rect) Centre() Point   { return r.Min.Middle(r.Max) }

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	if !r.IsValid() {
		return r
	}
	return Rect{Min: r.Min.Translate(-d, -d), Max: r.Max.Translate(d, d)}
}
