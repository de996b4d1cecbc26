package scripting

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func TestGojaEngine_ContextCancellation(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()

	if _, err := engine.Execute(ctx, "while (true) {}"); err == nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}

	if _, err := engine.Execute(context.Background(), "1 + 1"); err != nil {
		t.Fatalf("engine should recover after cancellation, got %v", err)
	}
}

func TestGojaEngine_ImmediateCancel(t *testing.T) {
	engine := NewEngine()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := engine.Execute(ctx, "42"); err == nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
}

func TestCompileFormula(t *testing.T) {
	engine := NewEngine()
	tests := []struct {
		expr string
		x    float64
		want float64
	}{
		{"x^2", 3, 9},
		{"2*x + 1", 0.5, 2},
		{"sin(x)", math.Pi / 2, 1},
		{"sqrt(x)*Pi", 4, 2 * math.Pi},
		{"ln(E)", 0, 1},
	}
	for _, tc := range tests {
		f, err := engine.Compile(tc.expr)
		if err != nil {
			t.Fatalf("Compile(%q): %v", tc.expr, err)
		}
		got, err := f.Eval(context.Background(), tc.x)
		if err != nil {
			t.Fatalf("Eval(%q, %v): %v", tc.expr, tc.x, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%q at %v = %v, want %v", tc.expr, tc.x, got, tc.want)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	engine := NewEngine()
	for _, expr := range []string{"", "x +", "x )"} {
		if _, err := engine.Compile(expr); !errors.Is(err, ErrInvalidFormula) {
			t.Errorf("Compile(%q): expected ErrInvalidFormula, got %v", expr, err)
		}
	}
	f, err := engine.Compile("undefinedFn(x)")
	if err != nil {
		t.Fatalf("compile should defer name resolution: %v", err)
	}
	if _, err := f.Eval(context.Background(), 1); !errors.Is(err, ErrInvalidFormula) {
		t.Fatalf("expected ErrInvalidFormula at evaluation, got %v", err)
	}
}
