package svg

import "github.com/wudi/texfig/coords"

// Attr is a presentation or latexdraw attribute. Latexdraw attributes are
// named with the latexdraw: prefix.
type Attr struct {
	Name  string
	Value string
}

// Attrs keeps attributes in document order.
type Attrs []Attr

func (a Attrs) Get(name string) (string, bool) {
	for _, at := range a {
		if at.Name == name {
			return at.Value, true
		}
	}
	return "", false
}

// Set replaces the value of name or appends it.
func (a *Attrs) Set(name, value string) {
	for i := range *a {
		if (*a)[i].Name == name {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{name, value})
}

// LD returns a latexdraw attribute.
func (a Attrs) LD(name string) (string, bool) { return a.Get(ld(name)) }

func (a *Attrs) SetLD(name, value string) { a.Set(ld(name), value) }

func ld(name string) string { return LDPrefix + ":" + name }

// Element holds what every node has. Line and Column locate decoded nodes;
// Err is set when Decode could not read the node's own attributes.
type Element struct {
	ID     string
	Attrs  Attrs
	Line   int
	Column int
	Err    error
}

func (e *Element) element() *Element { return e }

// Node is an element of the tree.
type Node interface {
	element() *Element
}

// Document is the root <svg> element.
type Document struct {
	Element
	Width, Height float64
	ViewBox       coords.Rect
	Defs          []Node
	Children      []Node
}

// Marker returns the marker of Defs with the given id.
func (d *Document) Marker(id string) *Marker {
	for _, n := range d.Defs {
		if m, ok := n.(*Marker); ok && m.ID == id {
			return m
		}
	}
	return nil
}

type Group struct {
	Element
	Children []Node
}

type PointsKind int

const (
	KindPolyline PointsKind = iota
	KindPolygon
)

func (k PointsKind) String() string {
	if k == KindPolygon {
		return "polygon"
	}
	return "polyline"
}

// Points is a <polyline> or a <polygon>.
type Points struct {
	Element
	Kind   PointsKind
	Points []coords.Point
}

func (p *Points) Closed() bool { return p.Kind == KindPolygon }

type Line struct {
	Element
	X1, Y1, X2, Y2 float64
}

type Circle struct {
	Element
	CX, CY, R float64
}

type Rect struct {
	Element
	X, Y, Width, Height float64
}

type Path struct {
	Element
	D string
}

type TextNode struct {
	Element
	X, Y    float64
	Content string
}

// ForeignObject embeds markup from another namespace; Content is raw XML.
type ForeignObject struct {
	Element
	X, Y, Width, Height float64
	Content             string
}

type Marker struct {
	Element
	Width, Height float64
	RefX, RefY    float64
	Orient        string
	Children      []Node
}
