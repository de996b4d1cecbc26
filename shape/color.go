package shape

import (
	"fmt"
	"image/color"
	"math"
)

// Color is an RGBA colour with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

func RGB(r, g, b float64) Color { return Color{R: clamp01(r), G: clamp01(g), B: clamp01(b), A: 1} }

// The dvips base palette known to PSTricks without definitions.
var (
	Black     = RGB(0, 0, 0)
	White     = RGB(1, 1, 1)
	Red       = RGB(1, 0, 0)
	Green     = RGB(0, 1, 0)
	Blue      = RGB(0, 0, 1)
	Cyan      = RGB(0, 1, 1)
	Magenta   = RGB(1, 0, 1)
	Yellow    = RGB(1, 1, 0)
	Gray      = RGB(0.5, 0.5, 0.5)
	LightGray = RGB(0.75, 0.75, 0.75)
	DarkGray  = RGB(0.25, 0.25, 0.25)
)

var dvipsPalette = []struct {
	name string
	c    Color
}{
	{"black", Black}, {"white", White}, {"red", Red}, {"green", Green},
	{"blue", Blue}, {"cyan", Cyan}, {"magenta", Magenta}, {"yellow", Yellow},
	{"gray", Gray}, {"lightgray", LightGray}, {"darkgray", DarkGray},
}

// DviPsName returns the palette name of c, if it has one.
func (c Color) DviPsName() (string, bool) {
	for _, e := range dvipsPalette {
		if e.c.Equals(c) {
			return e.name, true
		}
	}
	return "", false
}

// ColorByName looks a palette colour up.
func ColorByName(name string) (Color, bool) {
	for _, e := range dvipsPalette {
		if e.name == name {
			return e.c, true
		}
	}
	return Color{}, false
}

// Equals compares colours at 8-bit resolution.
func (c Color) Equals(o Color) bool {
	r1, g1, b1, a1 := c.RGBA8()
	r2, g2, b2, a2 := o.RGBA8()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

func (c Color) RGBA8() (r, g, b, a uint8) {
	return to8(c.R), to8(c.G), to8(c.B), to8(c.A)
}

// NRGBA converts to the image/color model.
func (c Color) NRGBA() color.NRGBA {
	r, g, b, a := c.RGBA8()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func FromNRGBA(c color.NRGBA) Color {
	return Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: float64(c.A) / 255}
}

// Hex formats c as #rrggbb, ignoring alpha.
func (c Color) Hex() string {
	r, g, b, _ := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// TeXName is the name a non-palette colour gets when it is defined for
// PSTricks.
func (c Color) TeXName() string {
	if n, ok := c.DviPsName(); ok {
		return n
	}
	return "col" + c.Hex()[1:]
}

func to8(v float64) uint8 { return uint8(math.Round(clamp01(v) * 255)) }

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
