package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/wudi/texfig/numfmt"
)

// Encode writes doc as an indented SVG file.
func Encode(w io.Writer, doc *Document) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	e := &encoder{enc: xml.NewEncoder(w)}
	e.enc.Indent("", "  ")

	root := Attrs{
		{"xmlns", Namespace},
		{"xmlns:" + LDPrefix, LDNamespace},
	}
	if doc.Width > 0 && doc.Height > 0 {
		root = append(root, Attr{"width", numfmt.Cut(doc.Width)}, Attr{"height", numfmt.Cut(doc.Height)})
	}
	if vb := doc.ViewBox; vb.IsValid() && vb.Width() > 0 && vb.Height() > 0 {
		root = append(root, Attr{"viewBox", strings.Join([]string{
			numfmt.Cut(vb.Min.X), numfmt.Cut(vb.Min.Y), numfmt.Cut(vb.Width()), numfmt.Cut(vb.Height()),
		}, " ")})
	}
	e.start("svg", doc.ID, root, doc.Attrs)
	if len(doc.Defs) > 0 {
		e.start("defs", "", nil, nil)
		e.nodes(doc.Defs)
		e.end("defs")
	}
	e.nodes(doc.Children)
	e.end("svg")
	if e.err != nil {
		return e.err
	}
	if err := e.enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// encoder keeps the first write error.
type encoder struct {
	enc *xml.Encoder
	err error
}

func (e *encoder) token(t xml.Token) {
	if e.err == nil {
		e.err = e.enc.EncodeToken(t)
	}
}

func (e *encoder) start(name, id string, geometry, attrs Attrs) {
	se := xml.StartElement{Name: xml.Name{Local: name}}
	if id != "" {
		se.Attr = append(se.Attr, xml.Attr{Name: xml.Name{Local: "id"}, Value: id})
	}
	for _, list := range []Attrs{geometry, attrs} {
		for _, a := range list {
			se.Attr = append(se.Attr, xml.Attr{Name: xml.Name{Local: a.Name}, Value: a.Value})
		}
	}
	e.token(se)
}

func (e *encoder) end(name string) {
	e.token(xml.EndElement{Name: xml.Name{Local: name}})
}

func (e *encoder) leaf(name string, el *Element, geometry Attrs) {
	e.start(name, el.ID, geometry, el.Attrs)
	e.end(name)
}

func (e *encoder) nodes(ns []Node) {
	for _, n := range ns {
		e.node(n)
	}
}

func num(name string, v float64) Attr { return Attr{name, numfmt.Cut(v)} }

func (e *encoder) node(n Node) {
	switch n := n.(type) {
	case *Group:
		e.start("g", n.ID, nil, n.Attrs)
		e.nodes(n.Children)
		e.end("g")
	case *Points:
		e.leaf(n.Kind.String(), &n.Element, Attrs{{"points", FormatPoints(n.Points)}})
	case *Line:
		e.leaf("line", &n.Element, Attrs{num("x1", n.X1), num("y1", n.Y1), num("x2", n.X2), num("y2", n.Y2)})
	case *Circle:
		e.leaf("circle", &n.Element, Attrs{num("cx", n.CX), num("cy", n.CY), num("r", n.R)})
	case *Rect:
		e.leaf("rect", &n.Element, Attrs{num("x", n.X), num("y", n.Y), num("width", n.Width), num("height", n.Height)})
	case *Path:
		e.leaf("path", &n.Element, Attrs{{"d", n.D}})
	case *TextNode:
		e.start("text", n.ID, Attrs{num("x", n.X), num("y", n.Y)}, n.Attrs)
		e.token(xml.CharData(n.Content))
		e.end("text")
	case *ForeignObject:
		e.start("foreignObject", n.ID, Attrs{num("x", n.X), num("y", n.Y), num("width", n.Width), num("height", n.Height)}, n.Attrs)
		e.raw(n.Content)
		e.end("foreignObject")
	case *Marker:
		e.start("marker", n.ID, Attrs{
			num("markerWidth", n.Width), num("markerHeight", n.Height),
			num("refX", n.RefX), num("refY", n.RefY), {"orient", n.Orient},
		}, n.Attrs)
		e.nodes(n.Children)
		e.end("marker")
	}
}

// raw copies an XML fragment token by token, keeping prefixed names as
// written.
func (e *encoder) raw(content string) {
	if e.err != nil || content == "" {
		return
	}
	dec := xml.NewDecoder(strings.NewReader(content))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			return
		}
		if err != nil {
			e.err = fmt.Errorf("%w: foreign content: %v", ErrMalformedMarkupStructure, err)
			return
		}
		switch t := tok.(type) {
		case xml.StartElement:
			se := xml.StartElement{Name: flatName(t.Name)}
			for _, a := range t.Attr {
				se.Attr = append(se.Attr, xml.Attr{Name: flatName(a.Name), Value: a.Value})
			}
			e.token(se)
		case xml.EndElement:
			e.token(xml.EndElement{Name: flatName(t.Name)})
		case xml.CharData:
			e.token(t.Copy())
		}
	}
}

func flatName(n xml.Name) xml.Name {
	if n.Space == "" {
		return n
	}
	return xml.Name{Local: n.Space + ":" + n.Local}
}
