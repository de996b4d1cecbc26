package shape

import (
	"errors"

	"github.com/wudi/texfig/coords"
)

// Drawing is an ordered collection of shapes.
type Drawing struct {
	shapes []Shape
}

func NewDrawing(shapes ...Shape) *Drawing {
	d := &Drawing{}
	for _, s := range shapes {
		d.Add(s)
	}
	return d
}

// Add appends s; nil shapes are ignored.
func (d *Drawing) Add(s Shape) {
	if s != nil {
		d.shapes = append(d.shapes, s)
	}
}

func (d *Drawing) Shapes() []Shape { return d.shapes }
func (d *Drawing) Len() int        { return len(d.shapes) }
func (d *Drawing) IsEmpty() bool   { return len(d.shapes) == 0 }

func (d *Drawing) ShapeAt(i int) Shape {
	if i < 0 || i >= len(d.shapes) {
		return nil
	}
	return d.shapes[i]
}

// Bounds is the union of the shape bounds; invalid for an empty drawing.
func (d *Drawing) Bounds() coords.Rect {
	r := coords.Rect{Min: coords.Invalid, Max: coords.Invalid}
	for _, s := range d.shapes {
		b := s.Bounds()
		if !b.IsValid() {
			continue
		}
		if !r.IsValid() {
			r = b
			continue
		}
		r = r.Union(b)
	}
	return r
}

// SampleErr returns the sampling errors of the plots of d, joined.
func (d *Drawing) SampleErr() error {
	var errs []error
	for _, s := range d.shapes {
		if p, ok := s.(*Plot); ok {
			if _, err := p.Samples(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (d *Drawing) Translate(dx, dy float64) {
	for _, s := range d.shapes {
		s.Translate(dx, dy)
	}
}
