package coords

import "math"

// MaxCoord bounds the magnitude of a valid coordinate.
const MaxCoord = 1e12

// Invalid is returned by operations whose result is not a valid point.
var Invalid = Point{X: math.NaN(), Y: math.NaN()}

type Point struct{ X, Y float64 }

// IsValidCoord reports whether v is finite and within MaxCoord.
func IsValidCoord(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && math.Abs(v) < MaxCoord
}

func (p Point) IsValid() bool { return IsValidCoord(p.X) && IsValidCoord(p.Y) }

func checked(x, y float64) Point {
	if !IsValidCoord(x) || !IsValidCoord(y) {
		return Invalid
	}
	return Point{X: x, Y: y}
}

// Equals compares both coordinates with tolerance eps.
func (p Point) Equals(o Point, eps float64) bool {
	return math.Abs(p.X-o.X) <= eps && math.Abs(p.Y-o.Y) <= eps
}

func (p Point) Translate(dx, dy float64) Point {
	if !p.IsValid() {
		return Invalid
	}
	return checked(p.X+dx, p.Y+dy)
}

// Rotate turns p around centre by angle radians.
func (p Point) Rotate(centre Point, angle float64) Point {
	if !p.IsValid() || !centre.IsValid() || !IsValidCoord(angle) {
		return Invalid
	}
	return RotateAround(angle, centre).Transform(p)
}

// CentralSymmetry mirrors p across centre.
func (p Point) CentralSymmetry(centre Point) Point {
	if !p.IsValid() || !centre.IsValid() {
		return Invalid
	}
	return checked(2*centre.X-p.X, 2*centre.Y-p.Y)
}

// HorizontalSymmetry mirrors p across the vertical line x = origin.X.
func (p Point) HorizontalSymmetry(origin Point) Point {
	if !p.IsValid() || !origin.IsValid() {
		return Invalid
	}
	return checked(2*origin.X-p.X, p.Y)
}

// VerticalSymmetry mirrors p across the horizontal line y = origin.Y.
func (p Point) VerticalSymmetry(origin Point) Point {
	if !p.IsValid() || !origin.IsValid() {
		return Invalid
	}
	return checked(p.X, 2*origin.Y-p.Y)
}

// Angle returns the angle of the vector origin->p in radians, in [0, 2π).
// NaN is returned when either point is invalid.
func (p Point) Angle(origin Point) float64 {
	if !p.IsValid() || !origin.IsValid() {
		return math.NaN()
	}
	a := math.Atan2(p.Y-origin.Y, p.X-origin.X)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func (p Point) Distance(o Point) float64 { return math.Hypot(p.X-o.X, p.Y-o.Y) }

func (p Point) Middle(o Point) Point {
	if !p.IsValid() || !o.IsValid() {
		return Invalid
	}
	return Point{X: (p.X + o.X) / 2, Y: (p.Y + o.Y) / 2}
}
