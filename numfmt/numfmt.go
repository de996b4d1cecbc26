// Package numfmt implements the "cut number" formatting shared by the
// PSTricks and SVG generators, and its inverse.
//
// A cut number is a value rounded to a fixed number of decimals and
// written without trailing zeros: 2.0 is written "2", 3.50004 is written
// "3.5". Parsing a cut number yields the rounded value, so a round trip
// through text is exact only up to the rounding.
package numfmt

import (
	"math"
	"strconv"
)

const (
	// Precision is the number of decimals kept for general values.
	Precision = 4
	// FloatPrecision is the number of decimals kept for float-like display
	// values (line widths, units, label distances).
	FloatPrecision = 3
	// Epsilon is the tolerance used to compare values against defaults.
	Epsilon = 1e-4
)

// Round rounds v half away from zero to prec decimals.
func Round(v float64, prec int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow10(prec)
	r := math.Round(v*p) / p
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}

// Cut formats v with Precision decimals.
func Cut(v float64) string { return string(AppendCut(nil, v)) }

// CutFloat formats v as a float-like value: single precision, then
// FloatPrecision decimals.
func CutFloat(v float64) string { return string(AppendCutFloat(nil, v)) }

func AppendCut(b []byte, v float64) []byte {
	return strconv.AppendFloat(b, Round(v, Precision), 'f', -1, 64)
}

func AppendCutFloat(b []byte, v float64) []byte {
	return strconv.AppendFloat(b, Round(float64(float32(v)), FloatPrecision), 'f', -1, 64)
}

// ParseCut parses a number written by Cut or CutFloat.
func ParseCut(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// Equal reports whether a and b are equal within Epsilon.
func Equal(a, b float64) bool { return math.Abs(a-b) <= Epsilon }
