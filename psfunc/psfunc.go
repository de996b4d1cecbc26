// Package psfunc evaluates the PostScript calculator functions used by
// \psplot: postfix programs over a stack of numbers with a single input
// variable x.
package psfunc

import (
	"fmt"
	"strconv"
	"strings"
)

// Interpreter resolves operator names to commands.
type Interpreter struct {
	commands map[string]Command
}

// NewInterpreter returns an interpreter knowing the built-in operators.
func NewInterpreter() *Interpreter {
	cmds := make(map[string]Command, len(builtins))
	for k, v := range builtins {
		cmds[k] = v
	}
	return &Interpreter{commands: cmds}
}

// Register adds or replaces an operator.
func (in *Interpreter) Register(name string, c Command) { in.commands[name] = c }

// Program is a compiled postfix function.
type Program struct {
	src  string
	cmds []Command
}

func (p *Program) String() string { return p.src }
func (p *Program) Len() int       { return len(p.cmds) }

// Compile tokenizes src. Unknown operators fail with ErrUnknownCommand.
func (in *Interpreter) Compile(src string) (*Program, error) {
	fields := strings.Fields(src)
	p := &Program{src: strings.Join(fields, " "), cmds: make([]Command, 0, len(fields))}
	for _, tok := range fields {
		if c, ok := in.commands[tok]; ok {
			p.cmds = append(p.cmds, c)
			continue
		}
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			p.cmds = append(p.cmds, PushCommand{Value: v})
			continue
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, tok)
	}
	return p, nil
}

// Run executes the program on st.
func (p *Program) Run(st *Stack, x float64) error {
	for _, c := range p.cmds {
		if err := c.Apply(st, x); err != nil {
			return err
		}
	}
	return nil
}

// Eval runs the program on a fresh stack and returns the top value.
func (p *Program) Eval(x float64) (float64, error) {
	st := NewStack()
	if err := p.Run(st, x); err != nil {
		return 0, err
	}
	v, err := st.Pop()
	if err != nil {
		return 0, fmt.Errorf("%w: program left no result", ErrStackUnderflow)
	}
	return v, nil
}

var std = NewInterpreter()

// Compile compiles src with the built-in operators.
func Compile(src string) (*Program, error) { return std.Compile(src) }

// Eval compiles and evaluates src for x.
func Eval(src string, x float64) (float64, error) {
	p, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return p.Eval(x)
}
