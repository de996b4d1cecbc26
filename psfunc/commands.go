package psfunc

import (
	"fmt"
	"math"
)

// Command is one instruction of a postfix program. x is the plot variable.
type Command interface {
	Apply(st *Stack, x float64) error
}

// DupCommand pushes a copy of the top value.
type DupCommand struct{}

func (DupCommand) Apply(st *Stack, _ float64) error {
	if err := st.Require("dup", 1); err != nil {
		return err
	}
	v, _ := st.Peek()
	st.Push(v)
	return nil
}

// ExchCommand swaps the two top values.
type ExchCommand struct{}

func (ExchCommand) Apply(st *Stack, _ float64) error {
	if err := st.Require("exch", 2); err != nil {
		return err
	}
	a, _ := st.Pop()
	b, _ := st.Pop()
	st.Push(a)
	st.Push(b)
	return nil
}

type PopCommand struct{}

func (PopCommand) Apply(st *Stack, _ float64) error {
	if err := st.Require("pop", 1); err != nil {
		return err
	}
	_, err := st.Pop()
	return err
}

// PushCommand pushes a literal.
type PushCommand struct{ Value float64 }

func (c PushCommand) Apply(st *Stack, _ float64) error {
	st.Push(c.Value)
	return nil
}

// VarCommand pushes the plot variable.
type VarCommand struct{}

func (VarCommand) Apply(st *Stack, x float64) error {
	st.Push(x)
	return nil
}

type unaryCommand struct {
	name string
	fn   func(a float64) (float64, error)
}

func (c unaryCommand) Apply(st *Stack, _ float64) error {
	if err := st.Require(c.name, 1); err != nil {
		return err
	}
	a, _ := st.Pop()
	r, err := c.fn(a)
	if err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	st.Push(r)
	return nil
}

// binaryCommand pops b then a and pushes fn(a, b).
type binaryCommand struct {
	name string
	fn   func(a, b float64) (float64, error)
}

func (c binaryCommand) Apply(st *Stack, _ float64) error {
	if err := st.Require(c.name, 2); err != nil {
		return err
	}
	b, _ := st.Pop()
	a, _ := st.Pop()
	r, err := c.fn(a, b)
	if err != nil {
		return fmt.Errorf("%s: %w", c.name, err)
	}
	st.Push(r)
	return nil
}

func pure1(f func(float64) float64) func(float64) (float64, error) {
	return func(a float64) (float64, error) { return f(a), nil }
}

func pure2(f func(a, b float64) float64) func(float64, float64) (float64, error) {
	return func(a, b float64) (float64, error) { return f(a, b), nil }
}

func boolean(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidOperand, fmt.Sprintf(format, args...))
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

// builtins maps PostScript calculator operators to their commands.
var builtins = map[string]Command{
	"dup":  DupCommand{},
	"exch": ExchCommand{},
	"pop":  PopCommand{},
	"x":    VarCommand{},

	"true":  PushCommand{Value: 1},
	"false": PushCommand{Value: 0},

	"add": binaryCommand{"add", pure2(func(a, b float64) float64 { return a + b })},
	"sub": binaryCommand{"sub", pure2(func(a, b float64) float64 { return a - b })},
	"mul": binaryCommand{"mul", pure2(func(a, b float64) float64 { return a * b })},
	"div": binaryCommand{"div", func(a, b float64) (float64, error) {
		if b == 0 {
			return 0, invalid("division by zero")
		}
		return a / b, nil
	}},
	"idiv": binaryCommand{"idiv", func(a, b float64) (float64, error) {
		if math.Trunc(b) == 0 {
			return 0, invalid("division by zero")
		}
		return math.Trunc(math.Trunc(a) / math.Trunc(b)), nil
	}},
	"mod": binaryCommand{"mod", func(a, b float64) (float64, error) {
		if math.Trunc(b) == 0 {
			return 0, invalid("modulo by zero")
		}
		return math.Mod(math.Trunc(a), math.Trunc(b)), nil
	}},
	"exp": binaryCommand{"exp", func(a, b float64) (float64, error) {
		if a < 0 && b != math.Trunc(b) {
			return 0, invalid("negative base %v with fractional exponent %v", a, b)
		}
		if a == 0 && b < 0 {
			return 0, invalid("zero base with negative exponent")
		}
		return math.Pow(a, b), nil
	}},
	"atan": binaryCommand{"atan", func(num, den float64) (float64, error) {
		if num == 0 && den == 0 {
			return 0, invalid("atan of 0/0")
		}
		deg := math.Atan2(num, den) * 180 / math.Pi
		if deg < 0 {
			deg += 360
		}
		return deg, nil
	}},

	"eq": binaryCommand{"eq", pure2(func(a, b float64) float64 { return boolean(a == b) })},
	"ne": binaryCommand{"ne", pure2(func(a, b float64) float64 { return boolean(a != b) })},
	"gt": binaryCommand{"gt", pure2(func(a, b float64) float64 { return boolean(a > b) })},
	"ge": binaryCommand{"ge", pure2(func(a, b float64) float64 { return boolean(a >= b) })},
	"lt": binaryCommand{"lt", pure2(func(a, b float64) float64 { return boolean(a < b) })},
	"le": binaryCommand{"le", pure2(func(a, b float64) float64 { return boolean(a <= b) })},
	"and": binaryCommand{"and", pure2(func(a, b float64) float64 {
		return boolean(a != 0 && b != 0)
	})},
	"or": binaryCommand{"or", pure2(func(a, b float64) float64 {
		return boolean(a != 0 || b != 0)
	})},
	"not": unaryCommand{"not", pure1(func(a float64) float64 { return boolean(a == 0) })},

	"neg": unaryCommand{"neg", pure1(func(a float64) float64 { return -a })},
	"abs": unaryCommand{"abs", pure1(math.Abs)},
	"sqrt": unaryCommand{"sqrt", func(a float64) (float64, error) {
		if a < 0 {
			return 0, invalid("square root of %v", a)
		}
		return math.Sqrt(a), nil
	}},
	"ln": unaryCommand{"ln", func(a float64) (float64, error) {
		if a <= 0 {
			return 0, invalid("logarithm of %v", a)
		}
		return math.Log(a), nil
	}},
	"log": unaryCommand{"log", func(a float64) (float64, error) {
		if a <= 0 {
			return 0, invalid("logarithm of %v", a)
		}
		return math.Log10(a), nil
	}},
	"sin":      unaryCommand{"sin", pure1(func(a float64) float64 { return math.Sin(toRad(a)) })},
	"cos":      unaryCommand{"cos", pure1(func(a float64) float64 { return math.Cos(toRad(a)) })},
	"floor":    unaryCommand{"floor", pure1(math.Floor)},
	"ceiling":  unaryCommand{"ceiling", pure1(math.Ceil)},
	"round":    unaryCommand{"round", pure1(func(a float64) float64 { return math.Floor(a + 0.5) })},
	"truncate": unaryCommand{"truncate", pure1(math.Trunc)},
	"cvi":      unaryCommand{"cvi", pure1(math.Trunc)},
	"cvr":      unaryCommand{"cvr", pure1(func(a float64) float64 { return a })},
}
