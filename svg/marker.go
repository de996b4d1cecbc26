package svg

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/wudi/texfig/numfmt"
	"github.com/wudi/texfig/shape"
)

func pair(a, b float64) string { return numfmt.Cut(a) + " " + numfmt.Cut(b) }

// arrowAttrs lists the latexdraw attributes that describe an arrow.
func arrowAttrs(a *shape.Arrow) Attrs {
	var at Attrs
	at.SetLD("style", a.Style().String())
	at.SetLD("arrow-size", pair(a.ArrowSize()))
	at.SetLD("arrow-length", numfmt.Cut(a.ArrowLength()))
	at.SetLD("arrow-inset", numfmt.Cut(a.ArrowInset()))
	at.SetLD("tbar-size", pair(a.TBarSize()))
	at.SetLD("bracket-length", numfmt.Cut(a.BracketLength()))
	at.SetLD("rbracket-length", numfmt.Cut(a.RBracketLength()))
	at.SetLD("dot-size", pair(a.DotSize()))
	return at
}

// marker returns the url of the marker drawing a on a line of the given
// thickness and colour. Markers are shared by every arrow with the same
// look.
func (g *generator) marker(a *shape.Arrow, atStart bool, thickness float64, col shape.Color) string {
	if a == nil || !a.HasStyle() {
		return ""
	}
	orient := "auto"
	if atStart {
		orient = "auto-start-reverse"
	}
	attrs := arrowAttrs(a)

	var key strings.Builder
	fmt.Fprintf(&key, "%s|%s|%s", orient, paint(col), numfmt.Cut(thickness))
	for _, at := range attrs {
		fmt.Fprintf(&key, "|%s=%s", at.Name, at.Value)
	}
	sum := blake2b.Sum256([]byte(key.String()))
	id := "arrow-" + hex.EncodeToString(sum[:8])

	if !g.markers[id] {
		g.markers[id] = true
		m := &Marker{Element: Element{ID: id, Attrs: attrs}, Orient: orient}
		m.Attrs.Set("markerUnits", "userSpaceOnUse")
		m.Attrs.Set("overflow", "visible")
		drawArrow(m, a, thickness, col)
		g.doc.Defs = append(g.doc.Defs, m)
	}
	return "url(#" + id + ")"
}

// drawArrow fills the marker box with the arrow glyph. The x axis of the
// marker follows the line outwards; the line ends at (RefX, RefY).
func drawArrow(m *Marker, a *shape.Arrow, t float64, col shape.Color) {
	c := paint(col)
	filled := func(d string) *Path {
		return &Path{Element: Element{Attrs: Attrs{{"fill", c}, {"stroke", "none"}}}, D: d}
	}
	stroked := func(d string) *Path {
		return &Path{Element: Element{Attrs: Attrs{{"fill", "none"}, {"stroke", c}, {"stroke-width", numfmt.Cut(t)}}}, D: d}
	}
	p := func(x, y float64) string { return numfmt.Cut(x) + "," + numfmt.Cut(y) }

	sizeDim, sizeNum := a.ArrowSize()
	w := sizeDim + sizeNum*t
	l := w * a.ArrowLength()
	in := l * a.ArrowInset()
	tbDim, tbNum := a.TBarSize()
	tb := tbDim + tbNum*t
	dotDim, dotNum := a.DotSize()
	dd := dotDim + dotNum*t

	switch st := a.Style(); st {
	case shape.ArrowLeft, shape.ArrowDoubleLeft:
		head := func(x float64) string {
			return "M" + p(x, 0) + " L" + p(x+l, w/2) + " L" + p(x, w) + " L" + p(x+in, w/2) + " Z"
		}
		d := head(0)
		m.Width, m.Height, m.RefX, m.RefY = l, w, l, w/2
		if st == shape.ArrowDoubleLeft {
			d += " " + head(l)
			m.Width, m.RefX = 2*l, 2*l
		}
		m.Children = []Node{filled(d)}
	case shape.ArrowRight, shape.ArrowDoubleRight:
		head := func(x float64) string {
			return "M" + p(x+l, 0) + " L" + p(x, w/2) + " L" + p(x+l, w) + " L" + p(x+l-in, w/2) + " Z"
		}
		d := head(0)
		m.Width, m.Height, m.RefX, m.RefY = l, w, l, w/2
		if st == shape.ArrowDoubleRight {
			d += " " + head(l)
			m.Width, m.RefX = 2*l, 2*l
		}
		m.Children = []Node{filled(d)}
	case shape.ArrowBarEnd, shape.ArrowBarIn:
		m.Width, m.Height, m.RefX, m.RefY = t, tb, t/2, tb/2
		if st == shape.ArrowBarIn {
			m.RefX = t
		}
		m.Children = []Node{&Rect{Element: Element{Attrs: Attrs{{"fill", c}}}, Width: t, Height: tb}}
	case shape.ArrowLeftSquareBracket, shape.ArrowRightSquareBracket:
		bl := a.BracketLength() * tb
		d := "M" + p(0, 0) + " L" + p(bl, 0) + " L" + p(bl, tb) + " L" + p(0, tb)
		m.RefX = bl
		if st == shape.ArrowRightSquareBracket {
			d = "M" + p(bl, 0) + " L" + p(0, 0) + " L" + p(0, tb) + " L" + p(bl, tb)
			m.RefX = 0
		}
		m.Width, m.Height, m.RefY = bl, tb, tb/2
		m.Children = []Node{stroked(d)}
	case shape.ArrowLeftRoundBracket, shape.ArrowRightRoundBracket:
		rl := a.RBracketLength() * tb
		d := "M" + p(0, 0) + " Q" + p(2*rl, tb/2) + " " + p(0, tb)
		m.RefX = rl
		if st == shape.ArrowRightRoundBracket {
			d = "M" + p(rl, 0) + " Q" + p(-rl, tb/2) + " " + p(rl, tb)
			m.RefX = 0
		}
		m.Width, m.Height, m.RefY = rl, tb, tb/2
		m.Children = []Node{stroked(d)}
	case shape.ArrowRoundEnd:
		m.Width, m.Height, m.RefX, m.RefY = t, t, t/2, t/2
		m.Children = []Node{&Circle{Element: Element{Attrs: Attrs{{"fill", c}}}, CX: t / 2, CY: t / 2, R: t / 2}}
	case shape.ArrowSquareEnd:
		m.Width, m.Height, m.RefX, m.RefY = t, t, t/2, t/2
		m.Children = []Node{&Rect{Element: Element{Attrs: Attrs{{"fill", c}}}, Width: t, Height: t}}
	case shape.ArrowCircleEnd, shape.ArrowDiskEnd, shape.ArrowCircleIn, shape.ArrowDiskIn:
		m.Width, m.Height, m.RefX, m.RefY = dd, dd, dd/2, dd/2
		if st == shape.ArrowCircleIn || st == shape.ArrowDiskIn {
			m.RefX = dd
		}
		circle := &Circle{Element: Element{Attrs: Attrs{{"stroke", c}, {"stroke-width", numfmt.Cut(t)}}}, CX: dd / 2, CY: dd / 2, R: (dd - t) / 2}
		if st == shape.ArrowDiskEnd || st == shape.ArrowDiskIn {
			circle.Attrs.Set("fill", c)
		} else {
			circle.Attrs.Set("fill", "white")
		}
		m.Children = []Node{circle}
	}
}
