package shape

import "github.com/wudi/texfig/coords"

// pointsShape is the common part of shapes defined by a list of points.
type pointsShape struct {
	Base
	stroke
	fill
	shadow
	double
	points []coords.Point
}

func newPointsShape(pts []coords.Point) pointsShape {
	return pointsShape{
		Base:   newBase(),
		stroke: newStroke(),
		fill:   newFill(),
		shadow: newShadow(),
		double: newDouble(),
		points: append([]coords.Point(nil), pts...),
	}
}

// Points returns a copy of the points.
func (s *pointsShape) Points() []coords.Point { return append([]coords.Point(nil), s.points...) }

func (s *pointsShape) NbPoints() int { return len(s.points) }

// PointAt returns the point at index i; -1 designates the last one.
func (s *pointsShape) PointAt(i int) coords.Point {
	if i == -1 {
		i = len(s.points) - 1
	}
	if i < 0 || i >= len(s.points) {
		return coords.Invalid
	}
	return s.points[i]
}

func (s *pointsShape) SetPointAt(i int, p coords.Point) {
	if i == -1 {
		i = len(s.points) - 1
	}
	if i >= 0 && i < len(s.points) && p.IsValid() {
		s.points[i] = p
	}
}

func (s *pointsShape) Bounds() coords.Rect { return coords.RectOf(s.points...) }

func (s *pointsShape) GravityCentre() coords.Point { return s.Bounds().Centre() }

func (s *pointsShape) Translate(dx, dy float64) {
	for i, p := range s.points {
		s.points[i] = p.Translate(dx, dy)
	}
}

func (s *pointsShape) MirrorHorizontal(origin coords.Point) {
	for i, p := range s.points {
		s.points[i] = mirrorH(p, origin)
	}
}

func (s *pointsShape) MirrorVertical(origin coords.Point) {
	for i, p := range s.points {
		s.points[i] = mirrorV(p, origin)
	}
}

// endArrowLine returns the first or last segment of pts, oriented from the
// arrow tip inwards.
func endArrowLine(pts []coords.Point, role ArrowRole) (coords.Line, bool) {
	n := len(pts)
	if n < 2 {
		return coords.Line{}, false
	}
	switch role {
	case RoleStart:
		return coords.NewLine(pts[0], pts[1]), true
	case RoleEnd:
		return coords.NewLine(pts[n-1], pts[n-2]), true
	}
	return coords.Line{}, false
}

// Line is a segment between exactly two points.
type Line struct {
	pointsShape
	arrowSet
}

func NewLine(p1, p2 coords.Point) *Line {
	return &Line{
		pointsShape: newPointsShape([]coords.Point{p1, p2}),
		arrowSet:    newArrowSet(RoleStart, RoleEnd),
	}
}

func (l *Line) Kind() Kind { return KindLine }

func (l *Line) ArrowLine(a *Arrow) (coords.Line, bool) {
	if a == nil {
		return coords.Line{}, false
	}
	return endArrowLine(l.points, a.Role())
}

// Polyline is an open sequence of at least two points.
type Polyline struct {
	pointsShape
	arrowSet
}

// NewPolyline returns nil when fewer than two points are given.
func NewPolyline(pts ...coords.Point) *Polyline {
	if len(pts) < 2 {
		return nil
	}
	return &Polyline{
		pointsShape: newPointsShape(pts),
		arrowSet:    newArrowSet(RoleStart, RoleEnd),
	}
}

func (p *Polyline) Kind() Kind { return KindPolyline }

func (p *Polyline) ArrowLine(a *Arrow) (coords.Line, bool) {
	if a == nil {
		return coords.Line{}, false
	}
	return endArrowLine(p.points, a.Role())
}

// AddPoint appends a point to the polyline.
func (p *Polyline) AddPoint(pt coords.Point) {
	if pt.IsValid() {
		p.points = append(p.points, pt)
	}
}

// Polygon is a closed sequence of at least two points.
type Polygon struct {
	pointsShape
}

// NewPolygon returns nil when fewer than two points are given.
func NewPolygon(pts ...coords.Point) *Polygon {
	if len(pts) < 2 {
		return nil
	}
	return &Polygon{pointsShape: newPointsShape(pts)}
}

func (p *Polygon) Kind() Kind { return KindPolygon }

func (p *Polygon) AddPoint(pt coords.Point) {
	if pt.IsValid() {
		p.points = append(p.points, pt)
	}
}
