package numfmt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// Unit is a TeX length unit.
type Unit string

const (
	CM Unit = "cm"
	MM Unit = "mm"
	PT Unit = "pt"
	BP Unit = "bp"
	IN Unit = "in"
)

// PtPerCm is the number of TeX points in a centimetre.
const PtPerCm = 72.27 / 2.54

var cmPerUnit = map[Unit]float64{
	CM: 1,
	MM: 0.1,
	PT: 1 / PtPerCm,
	BP: 2.54 / 72,
	IN: 2.54,
}

var ErrMalformedDimension = errors.New("malformed dimension")

// ToCm converts v expressed in u to centimetres.
func ToCm(v float64, u Unit) float64 { return v * cmPerUnit[u] }

// FromCm converts v centimetres to u.
func FromCm(v float64, u Unit) float64 { return v / cmPerUnit[u] }

// ParseNumber reads a leading number and returns it with the rest of s.
func ParseNumber(s string) (float64, string, error) {
	s = strings.TrimSpace(s)
	v, n := strconv.ParseFloat([]byte(s))
	if n == 0 {
		return 0, s, fmt.Errorf("%w: %q is not a number", ErrMalformedDimension, s)
	}
	return v, strings.TrimSpace(s[n:]), nil
}

// ParseDim parses a TeX dimension such as "0.8pt" or "3.5cm" and returns
// it in centimetres. A bare number is read in def units.
func ParseDim(s string, def Unit) (float64, error) {
	v, rest, err := ParseNumber(s)
	if err != nil {
		return 0, err
	}
	if rest == "" {
		return ToCm(v, def), nil
	}
	f, ok := cmPerUnit[Unit(rest)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrMalformedDimension, rest)
	}
	return v * f, nil
}
