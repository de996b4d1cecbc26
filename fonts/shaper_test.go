package fonts

import (
	"testing"

	"github.com/go-text/typesetting/language"
)

func TestDetectScript(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect language.Script
	}{
		{"Latin", "Hello World", language.Latin},
		{"Greek", "Γειά σου", language.Greek},
		{"Cyrillic", "Привет мир", language.Cyrillic},
		{"Digits only", "1234", language.Latin},
		{"Mixed, Latin dominant", "Hello World שלום", language.Latin},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := detectScript([]rune(tc.input)); got != tc.expect {
				t.Fatalf("detectScript(%q) = %v, want %v", tc.input, got, tc.expect)
			}
		})
	}
}

func TestMeasure(t *testing.T) {
	short, err := Measure("ab", 10)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	long, err := Measure("abab", 10)
	if err != nil {
		t.Fatalf("measure: %v", err)
	}
	if short.Width <= 0 {
		t.Fatalf("expected a positive width, got %v", short.Width)
	}
	if d := long.Width - 2*short.Width; d > 0.05 || d < -0.05 {
		t.Fatalf("width should be additive without kerning: %v vs %v", long.Width, short.Width)
	}
	big, _ := Measure("ab", 20)
	if d := big.Width - 2*short.Width; d > 0.1 || d < -0.1 {
		t.Fatalf("width should scale with size: %v vs %v", big.Width, short.Width)
	}
	if short.Height() != 10 {
		t.Fatalf("expected height equal to the size, got %v", short.Height())
	}
	if e, _ := Measure("", 10); e.Width != 0 {
		t.Fatalf("empty text should have no width")
	}
}
