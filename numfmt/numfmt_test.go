package numfmt

import (
	"errors"
	"math"
	"testing"
)

func TestCut(t *testing.T) {
	tests := []struct {
		in  float64
		cut string
		flt string
	}{
		{2.0, "2", "2"},
		{3.5, "3.5", "3.5"},
		{0.1 + 0.2, "0.3", "0.3"},
		{1.23456, "1.2346", "1.235"},
		{-0.00001, "0", "0"},
		{-12.5, "-12.5", "-12.5"},
		{1e6, "1000000", "1000000"},
	}
	for _, tc := range tests {
		if got := Cut(tc.in); got != tc.cut {
			t.Errorf("Cut(%v) = %q, want %q", tc.in, got, tc.cut)
		}
		if got := CutFloat(tc.in); got != tc.flt {
			t.Errorf("CutFloat(%v) = %q, want %q", tc.in, got, tc.flt)
		}
	}
}

func TestCutRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1.00004, 2.71828, -3.14159, 123.45678, 1e-5} {
		got, err := ParseCut(Cut(v))
		if err != nil {
			t.Fatalf("ParseCut(%q): %v", Cut(v), err)
		}
		if got != Round(v, Precision) {
			t.Errorf("round trip of %v: got %v want %v", v, got, Round(v, Precision))
		}
	}
}

func TestParseDim(t *testing.T) {
	tests := []struct {
		in   string
		def  Unit
		want float64
	}{
		{"3.5cm", PT, 3.5},
		{"10mm", CM, 1},
		{"2", CM, 2},
		{"72.27pt", CM, 2.54},
		{"1in", CM, 2.54},
		{" 0.5 cm", CM, 0.5},
	}
	for _, tc := range tests {
		got, err := ParseDim(tc.in, tc.def)
		if err != nil {
			t.Fatalf("ParseDim(%q): %v", tc.in, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("ParseDim(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "cm", "2furlong"} {
		if _, err := ParseDim(bad, CM); !errors.Is(err, ErrMalformedDimension) {
			t.Errorf("ParseDim(%q): expected ErrMalformedDimension, got %v", bad, err)
		}
	}
}

func TestEqual(t *testing.T) {
	if !Equal(ToCm(0.8, PT), 0.0281) {
		t.Fatalf("0.8pt should equal its cut value in cm")
	}
	if Equal(1, 1.001) {
		t.Fatalf("values differing by 1e-3 must not be equal")
	}
}
