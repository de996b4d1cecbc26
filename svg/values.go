package svg

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/image/colornames"

	"github.com/wudi/texfig/coords"
	"github.com/wudi/texfig/numfmt"
	"github.com/wudi/texfig/shape"
)

func isWsp(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' }

func skipWsp(b []byte, i int) int {
	for i < len(b) && isWsp(b[i]) {
		i++
	}
	return i
}

// ParsePoints reads the points attribute: whitespace separated x,y pairs.
func ParsePoints(s string) ([]coords.Point, error) {
	b := []byte(s)
	var pts []coords.Point
	i := skipWsp(b, 0)
	for i < len(b) {
		x, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, fmt.Errorf("%w: number expected at %d in %q", ErrMalformedPointsSyntax, i, s)
		}
		i = skipWsp(b, i+n)
		if i >= len(b) || b[i] != ',' {
			return nil, fmt.Errorf("%w: comma expected at %d in %q", ErrMalformedPointsSyntax, i, s)
		}
		i = skipWsp(b, i+1)
		y, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, fmt.Errorf("%w: number expected at %d in %q", ErrMalformedPointsSyntax, i, s)
		}
		i += n
		if i < len(b) && !isWsp(b[i]) {
			return nil, fmt.Errorf("%w: separator expected at %d in %q", ErrMalformedPointsSyntax, i, s)
		}
		p := coords.Point{X: x, Y: y}
		if !p.IsValid() {
			return nil, fmt.Errorf("%w: invalid point in %q", ErrMalformedPointsSyntax, s)
		}
		pts = append(pts, p)
		i = skipWsp(b, i)
	}
	return pts, nil
}

// FormatPoints writes pts in the points attribute syntax.
func FormatPoints(pts []coords.Point) string {
	var b []byte
	for i, p := range pts {
		if i > 0 {
			b = append(b, ' ')
		}
		b = numfmt.AppendCut(b, p.X)
		b = append(b, ',')
		b = numfmt.AppendCut(b, p.Y)
	}
	return string(b)
}

// parseLength reads a number with an optional px suffix.
func parseLength(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	v, n := strconv.ParseFloat([]byte(s))
	if n == 0 || n != len(s) {
		return 0, fmt.Errorf("%w: bad number %q", ErrMalformedMarkupStructure, s)
	}
	return v, nil
}

// parseNumbers reads a comma or whitespace separated number list.
func parseNumbers(s string) ([]float64, error) {
	b := []byte(s)
	var out []float64
	i := skipWsp(b, 0)
	for i < len(b) {
		v, n := strconv.ParseFloat(b[i:])
		if n == 0 {
			return nil, fmt.Errorf("%w: bad number list %q", ErrMalformedMarkupStructure, s)
		}
		out = append(out, v)
		i = skipWsp(b, i+n)
		if i < len(b) && b[i] == ',' {
			i = skipWsp(b, i+1)
		}
	}
	return out, nil
}

// ParseTransform reads a transform attribute into a matrix applied in
// document order, innermost function first.
func ParseTransform(s string) (coords.Matrix, error) {
	m := coords.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		close := strings.IndexByte(rest, ')')
		if open <= 0 || close < open {
			return coords.Matrix{}, fmt.Errorf("%w: transform %q", ErrMalformedMarkupStructure, s)
		}
		name := strings.TrimSpace(rest[:open])
		args, err := parseNumbers(rest[open+1 : close])
		if err != nil {
			return coords.Matrix{}, err
		}
		t, err := transformFunc(name, args)
		if err != nil {
			return coords.Matrix{}, fmt.Errorf("%w: transform %q", err, s)
		}
		// transform="A B" maps p to A(B(p)).
		m = t.Multiply(m)
		rest = strings.TrimLeft(rest[close+1:], " \t\r\n,")
	}
	return m, nil
}

func transformFunc(name string, a []float64) (coords.Matrix, error) {
	bad := fmt.Errorf("%w: %s with %d arguments", ErrMalformedMarkupStructure, name, len(a))
	switch name {
	case "matrix":
		if len(a) != 6 {
			return coords.Matrix{}, bad
		}
		return coords.Matrix{a[0], a[1], a[2], a[3], a[4], a[5]}, nil
	case "translate":
		switch len(a) {
		case 1:
			return coords.Translate(a[0], 0), nil
		case 2:
			return coords.Translate(a[0], a[1]), nil
		}
	case "scale":
		switch len(a) {
		case 1:
			return coords.Scale(a[0], a[0]), nil
		case 2:
			return coords.Scale(a[0], a[1]), nil
		}
	case "rotate":
		switch len(a) {
		case 1:
			return coords.Rotate(a[0] * math.Pi / 180), nil
		case 3:
			return coords.RotateAround(a[0]*math.Pi/180, coords.Point{X: a[1], Y: a[2]}), nil
		}
	case "skewX":
		if len(a) == 1 {
			return coords.Matrix{1, 0, math.Tan(a[0] * math.Pi / 180), 1, 0, 0}, nil
		}
	case "skewY":
		if len(a) == 1 {
			return coords.Matrix{1, math.Tan(a[0] * math.Pi / 180), 0, 1, 0, 0}, nil
		}
	}
	return coords.Matrix{}, bad
}

// ParseColor reads a paint value. ok is false for "none".
func ParseColor(s string) (c shape.Color, ok bool, err error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "none" || s == "transparent":
		return shape.Color{}, false, nil
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[4:len(s)-1], ",")
		if len(parts) != 3 {
			break
		}
		var v [3]float64
		for i, p := range parts {
			p = strings.TrimSpace(p)
			scale := 255.0
			if strings.HasSuffix(p, "%") {
				p, scale = strings.TrimSuffix(p, "%"), 100
			}
			f, err := parseLength(p)
			if err != nil {
				return shape.Color{}, false, err
			}
			v[i] = f / scale
		}
		return shape.RGB(v[0], v[1], v[2]), true, nil
	default:
		if rgba, found := colornames.Map[strings.ToLower(s)]; found {
			return shape.FromNRGBA(color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: 255}), true, nil
		}
	}
	return shape.Color{}, false, fmt.Errorf("%w: colour %q", ErrMalformedMarkupStructure, s)
}

func parseHexColor(s string) (shape.Color, bool, error) {
	h := s[1:]
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	bad := fmt.Errorf("%w: colour %q", ErrMalformedMarkupStructure, s)
	if len(h) != 6 {
		return shape.Color{}, false, bad
	}
	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexDigit(h[2*i])
		lo, ok2 := hexDigit(h[2*i+1])
		if !ok1 || !ok2 {
			return shape.Color{}, false, bad
		}
		rgb[i] = hi<<4 | lo
	}
	return shape.FromNRGBA(color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}), true, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// paint formats c for a fill or stroke attribute.
func paint(c shape.Color) string { return c.Hex() }
