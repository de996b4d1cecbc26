package psfunc

import (
	"errors"
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
)

var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrUnknownCommand = errors.New("unknown command")
	ErrInvalidOperand = errors.New("invalid operand")
)

// Stack is the operand stack of one evaluation.
type Stack struct {
	s *arraystack.Stack
}

func NewStack() *Stack { return &Stack{s: arraystack.New()} }

func (st *Stack) Push(v float64) { st.s.Push(v) }
func (st *Stack) Len() int       { return st.s.Size() }

func (st *Stack) Pop() (float64, error) {
	v, ok := st.s.Pop()
	if !ok {
		return 0, ErrStackUnderflow
	}
	return v.(float64), nil
}

func (st *Stack) Peek() (float64, error) {
	v, ok := st.s.Peek()
	if !ok {
		return 0, ErrStackUnderflow
	}
	return v.(float64), nil
}

// Values returns the stack content, top first.
func (st *Stack) Values() []float64 {
	vals := st.s.Values()
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v.(float64)
	}
	return out
}

// Require fails with ErrStackUnderflow when fewer than n values are stacked.
func (st *Stack) Require(name string, n int) error {
	if st.Len() < n {
		return fmt.Errorf("%w: %s needs %d operand(s), stack holds %d", ErrStackUnderflow, name, n, st.Len())
	}
	return nil
}
