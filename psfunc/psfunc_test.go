package psfunc

import (
	"errors"
	"math"
	"testing"
)

func TestDup(t *testing.T) {
	st := NewStack()
	if err := (DupCommand{}).Apply(st, 0); !errors.Is(err, ErrStackUnderflow) {
		t.Fatalf("dup on empty stack: expected ErrStackUnderflow, got %v", err)
	}
	if st.Len() != 0 {
		t.Fatalf("failed dup must not touch the stack")
	}

	st.Push(1)
	st.Push(7.5)
	if err := (DupCommand{}).Apply(st, 0); err != nil {
		t.Fatalf("dup: %v", err)
	}
	if st.Len() != 3 {
		t.Fatalf("dup should grow the stack by one, got size %d", st.Len())
	}
	vals := st.Values()
	if vals[0] != 7.5 || vals[1] != 7.5 || vals[2] != 1 {
		t.Fatalf("unexpected stack after dup: %v", vals)
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		src  string
		x    float64
		want float64
	}{
		{"x 2 mul", 3, 6},
		{"x dup mul 1 add", 4, 17},
		{"1 x sub", 0.25, 0.75},
		{"2 x exch div", 4, 2},
		{"x sin", 90, 1},
		{"x cos", 180, -1},
		{"x 2 exp", -3, 9},
		{"x sqrt", 16, 4},
		{"x abs neg", 5, -5},
		{"7 x idiv", 2, 3},
		{"7 x mod", 3, 1},
		{"x round", -2.5, -2},
		{"x 0 gt", 1, 1},
		{"x 0 gt x 5 lt and", 7, 0},
		{"1 1 atan", 0, 45},
		{"100 log", 0, 2},
		{"x 1 pop", 42, 42},
	}
	for _, tc := range tests {
		got, err := Eval(tc.src, tc.x)
		if err != nil {
			t.Fatalf("Eval(%q, %v): %v", tc.src, tc.x, err)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Eval(%q, %v) = %v, want %v", tc.src, tc.x, got, tc.want)
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{"add", ErrStackUnderflow},
		{"1 exch", ErrStackUnderflow},
		{"", ErrStackUnderflow},
		{"x -1 mul sqrt", ErrInvalidOperand},
		{"1 0 div", ErrInvalidOperand},
		{"0 ln", ErrInvalidOperand},
		{"-8 0.5 exp", ErrInvalidOperand},
		{"x frobnicate", ErrUnknownCommand},
	}
	for _, tc := range tests {
		if _, err := Eval(tc.src, 2); !errors.Is(err, tc.want) {
			t.Errorf("Eval(%q): expected %v, got %v", tc.src, tc.want, err)
		}
	}
}

func TestFreshStackPerEvaluation(t *testing.T) {
	p, err := Compile("x x")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	for i := 0; i < 3; i++ {
		v, err := p.Eval(float64(i))
		if err != nil || v != float64(i) {
			t.Fatalf("eval %d: got %v, %v", i, v, err)
		}
	}
}

func TestRegister(t *testing.T) {
	in := NewInterpreter()
	in.Register("pi", PushCommand{Value: math.Pi})
	p, err := in.Compile("pi 2 div")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if v, _ := p.Eval(0); math.Abs(v-math.Pi/2) > 1e-12 {
		t.Fatalf("unexpected value %v", v)
	}
	if _, err := Compile("pi"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("registration must not leak into the default interpreter")
	}
}
