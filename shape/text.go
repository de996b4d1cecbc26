package shape

import (
	"github.com/wudi/texfig/coords"
	"github.com/wudi/texfig/fonts"
	"github.com/wudi/texfig/layout"
)

// TextSize is the font size of text shapes, in points.
const TextSize = 10.0

// Text is a label whose position is the centre of its baseline, as with
// \rput.
type Text struct {
	Base
	position coords.Point
	text     string
}

func NewText(pos coords.Point, text string) *Text {
	return &Text{Base: newBase(), position: pos, text: text}
}

func (t *Text) Kind() Kind { return KindText }

func (t *Text) Position() coords.Point { return t.position }
func (t *Text) SetPosition(p coords.Point) {
	if p.IsValid() {
		t.position = p
	}
}

func (t *Text) Text() string { return t.text }

// SetText ignores empty strings.
func (t *Text) SetText(s string) {
	if s != "" {
		t.text = s
	}
}

// HasMath reports whether the text holds $...$ segments.
func (t *Text) HasMath() bool { return layout.HasMath(t.text) }

// Extent measures the text in pixels. Math segments are measured as their
// source.
func (t *Text) Extent() fonts.Extent {
	var plain string
	for _, seg := range layout.SplitMath(t.text) {
		plain += seg.Text
	}
	ext, err := fonts.Measure(plain, PtToPx(TextSize))
	if err != nil {
		size := PtToPx(TextSize)
		return fonts.Extent{Width: 0.5 * size * float64(len([]rune(plain))), Ascent: 0.8 * size, Descent: 0.2 * size}
	}
	return ext
}

func (t *Text) Bounds() coords.Rect {
	ext := t.Extent()
	half := ext.Width / 2
	return coords.Rect{
		Min: coords.Point{X: t.position.X - half, Y: t.position.Y - ext.Ascent},
		Max: coords.Point{X: t.position.X + half, Y: t.position.Y + ext.Descent},
	}
}

func (t *Text) GravityCentre() coords.Point { return t.position }

func (t *Text) Translate(dx, dy float64) { t.SetPosition(t.position.Translate(dx, dy)) }

func (t *Text) MirrorHorizontal(origin coords.Point) { t.SetPosition(mirrorH(t.position, origin)) }
func (t *Text) MirrorVertical(origin coords.Point)   { t.SetPosition(mirrorV(t.position, origin)) }
