package layout

import (
	"reflect"
	"strings"
	"testing"
)

func TestMathML(t *testing.T) {
	out, err := MathML(`E = mc^2`)
	if err != nil {
		t.Fatalf("MathML failed: %v", err)
	}
	if !strings.HasPrefix(out, "<math") || !strings.HasSuffix(out, "</math>") {
		t.Fatalf("expected a single math element, got %q", out)
	}
	if !strings.Contains(out, "<msup>") {
		t.Fatalf("expected a superscript in %q", out)
	}
}

func TestSplitMath(t *testing.T) {
	tests := []struct {
		in   string
		want []Segment
	}{
		{"plain", []Segment{{Text: "plain"}}},
		{"$x^2$", []Segment{{Text: "x^2", Math: true}}},
		{"f: $x$ and $y$.", []Segment{
			{Text: "f: "}, {Text: "x", Math: true}, {Text: " and "}, {Text: "y", Math: true}, {Text: "."},
		}},
		{"costs 5$", []Segment{{Text: "costs 5$"}}},
		{"", nil},
	}
	for _, tc := range tests {
		if got := SplitMath(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitMath(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	if !HasMath("a $b$") || HasMath("a b") {
		t.Fatalf("HasMath mismatch")
	}
}
