package scripting

import "context"

// Evaluator evaluates plot formulas written in infix notation.
type Evaluator interface {
	// Compile prepares expr, a function of the variable x.
	Compile(expr string) (Formula, error)
}

// Formula is a compiled function of one variable.
type Formula interface {
	Eval(ctx context.Context, x float64) (float64, error)
	String() string
}
