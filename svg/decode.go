package svg

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/wudi/texfig/coords"
)

// Decode reads an SVG document. Structural errors, such as broken XML or a
// root that is not <svg>, fail the whole decode; errors in the attributes
// of a node are stored in its Element.Err.
func Decode(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	dec.Entity = xml.HTMLEntity
	d := &decoder{dec: dec}

	var root xml.StartElement
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no svg element", ErrMalformedMarkupStructure)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMarkupStructure, err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			root = se
			break
		}
	}
	if root.Name.Local != "svg" {
		return nil, fmt.Errorf("%w: root element is <%s>", ErrMalformedMarkupStructure, root.Name.Local)
	}

	doc := &Document{}
	el, geom := d.element(root, "width", "height", "viewBox")
	doc.Element = el
	if v, ok := geom["width"]; ok {
		doc.Width, _ = parseLength(v)
	}
	if v, ok := geom["height"]; ok {
		doc.Height, _ = parseLength(v)
	}
	if v, ok := geom["viewBox"]; ok {
		if nums, err := parseNumbers(v); err == nil && len(nums) == 4 {
			doc.ViewBox = coords.Rect{
				Min: coords.Point{X: nums[0], Y: nums[1]},
				Max: coords.Point{X: nums[0] + nums[2], Y: nums[1] + nums[3]},
			}
		}
	}
	children, err := d.children(doc)
	if err != nil {
		return nil, err
	}
	doc.Children = children
	return doc, nil
}

type decoder struct {
	dec *xml.Decoder
}

// element reads the attributes of se. Attributes named in geometry are
// kept apart for the caller.
func (d *decoder) element(se xml.StartElement, geometry ...string) (Element, map[string]string) {
	line, col := d.dec.InputPos()
	el := Element{Line: line, Column: col}
	geom := make(map[string]string, len(geometry))
	for _, a := range se.Attr {
		name := attrName(a.Name)
		switch {
		case name == "":
		case name == "id":
			el.ID = a.Value
		case isGeometry(name, geometry):
			geom[name] = a.Value
		default:
			el.Attrs = append(el.Attrs, Attr{name, a.Value})
		}
	}
	return el, geom
}

func isGeometry(name string, geometry []string) bool {
	for _, g := range geometry {
		if g == name {
			return true
		}
	}
	return false
}

// attrName maps decoded names back to their written form. Namespace
// declarations are dropped.
func attrName(n xml.Name) string {
	switch {
	case n.Space == "xmlns" || (n.Space == "" && n.Local == "xmlns"):
		return ""
	case n.Space == LDNamespace || n.Space == LDPrefix:
		return ld(n.Local)
	}
	return n.Local
}

func (d *decoder) children(doc *Document) ([]Node, error) {
	var out []Node
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMarkupStructure, err)
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return out, nil
		case xml.StartElement:
			n, err := d.node(doc, t)
			if err != nil {
				return nil, err
			}
			if n != nil {
				out = append(out, n)
			}
		}
	}
}

// numbers parses the named geometry attributes. Missing ones are zero.
func numbers(el *Element, geom map[string]string, dst map[string]*float64) {
	for name, p := range dst {
		v, ok := geom[name]
		if !ok {
			continue
		}
		f, err := parseLength(v)
		if err != nil && el.Err == nil {
			el.Err = fmt.Errorf("%s: %w", name, err)
		}
		*p = f
	}
}

func (d *decoder) node(doc *Document, se xml.StartElement) (Node, error) {
	switch se.Name.Local {
	case "g":
		el, _ := d.element(se)
		children, err := d.children(doc)
		if err != nil {
			return nil, err
		}
		return &Group{Element: el, Children: children}, nil
	case "defs":
		children, err := d.children(doc)
		if err != nil {
			return nil, err
		}
		doc.Defs = append(doc.Defs, children...)
		return nil, nil
	case "marker":
		el, geom := d.element(se, "markerWidth", "markerHeight", "refX", "refY", "orient")
		m := &Marker{Element: el, Orient: geom["orient"]}
		numbers(&m.Element, geom, map[string]*float64{
			"markerWidth": &m.Width, "markerHeight": &m.Height, "refX": &m.RefX, "refY": &m.RefY,
		})
		children, err := d.children(doc)
		if err != nil {
			return nil, err
		}
		m.Children = children
		return m, nil
	case "text":
		el, geom := d.element(se, "x", "y")
		t := &TextNode{Element: el}
		numbers(&t.Element, geom, map[string]*float64{"x": &t.X, "y": &t.Y})
		content, err := d.text()
		if err != nil {
			return nil, err
		}
		t.Content = content
		return t, nil
	}

	var n Node
	switch se.Name.Local {
	case "polyline", "polygon":
		el, geom := d.element(se, "points")
		p := &Points{Element: el}
		if se.Name.Local == "polygon" {
			p.Kind = KindPolygon
		}
		pts, err := ParsePoints(geom["points"])
		if err != nil {
			p.Err = err
		}
		p.Points = pts
		n = p
	case "line":
		el, geom := d.element(se, "x1", "y1", "x2", "y2")
		l := &Line{Element: el}
		numbers(&l.Element, geom, map[string]*float64{"x1": &l.X1, "y1": &l.Y1, "x2": &l.X2, "y2": &l.Y2})
		n = l
	case "circle":
		el, geom := d.element(se, "cx", "cy", "r")
		c := &Circle{Element: el}
		numbers(&c.Element, geom, map[string]*float64{"cx": &c.CX, "cy": &c.CY, "r": &c.R})
		n = c
	case "rect":
		el, geom := d.element(se, "x", "y", "width", "height")
		r := &Rect{Element: el}
		numbers(&r.Element, geom, map[string]*float64{"x": &r.X, "y": &r.Y, "width": &r.Width, "height": &r.Height})
		n = r
	case "path":
		el, geom := d.element(se, "d")
		n = &Path{Element: el, D: geom["d"]}
	case "foreignObject":
		el, geom := d.element(se, "x", "y", "width", "height")
		f := &ForeignObject{Element: el}
		numbers(&f.Element, geom, map[string]*float64{"x": &f.X, "y": &f.Y, "width": &f.Width, "height": &f.Height})
		n = f
	}
	if err := d.dec.Skip(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMarkupStructure, err)
	}
	return n, nil
}

// text collects the character data up to the end of the current element,
// including that of nested <tspan> elements.
func (d *decoder) text() (string, error) {
	var b strings.Builder
	depth := 0
	for {
		tok, err := d.dec.Token()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedMarkupStructure, err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return b.String(), nil
			}
			depth--
		}
	}
}
