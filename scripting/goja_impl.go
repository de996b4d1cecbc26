package scripting

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

var ErrInvalidFormula = errors.New("invalid formula")

// mathPrelude exposes Math members as bare names, the way algebraic
// PSTricks formulas use them.
const mathPrelude = `var sin = Math.sin, cos = Math.cos, tan = Math.tan,
	asin = Math.asin, acos = Math.acos, atan = Math.atan,
	sqrt = Math.sqrt, exp = Math.exp, ln = Math.log, log = Math.log10,
	abs = Math.abs, floor = Math.floor, ceil = Math.ceil, round = Math.round,
	pow = Math.pow, PI = Math.PI, Pi = Math.PI, E = Math.E;`

// GojaEngine runs formulas in a goja runtime. It is not safe for
// concurrent use.
type GojaEngine struct {
	vm *goja.Runtime
}

func NewEngine() *GojaEngine {
	vm := goja.New()
	if _, err := vm.RunString(mathPrelude); err != nil {
		panic(fmt.Sprintf("scripting: prelude: %v", err))
	}
	return &GojaEngine{vm: vm}
}

// Execute runs script and exports its completion value. The run is
// interrupted when ctx is done.
func (e *GojaEngine) Execute(ctx context.Context, script string) (interface{}, error) {
	var val goja.Value
	err := e.guard(ctx, func() error {
		var err error
		val, err = e.vm.RunString(script)
		return err
	})
	if err != nil {
		return nil, err
	}
	return val.Export(), nil
}

func (e *GojaEngine) guard(ctx context.Context, run func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	defer e.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	err := run()
	if err != nil {
		if interruptedErr, ok := err.(*goja.InterruptedError); ok {
			if cause := interruptedErr.Unwrap(); cause != nil {
				return cause
			}
			return context.Canceled
		}
		return err
	}
	return nil
}

// Compile turns expr into a Formula. "^" is read as exponentiation.
func (e *GojaEngine) Compile(expr string) (Formula, error) {
	src := strings.TrimSpace(expr)
	if src == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidFormula)
	}
	body := strings.ReplaceAll(src, "^", "**")
	v, err := e.vm.RunString("(function(x) { return (" + body + "); })")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormula, err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not callable", ErrInvalidFormula, src)
	}
	return &gojaFormula{e: e, fn: fn, src: src}, nil
}

type gojaFormula struct {
	e   *GojaEngine
	fn  goja.Callable
	src string
}

func (f *gojaFormula) String() string { return f.src }

func (f *gojaFormula) Eval(ctx context.Context, x float64) (float64, error) {
	var res goja.Value
	err := f.e.guard(ctx, func() error {
		var err error
		res, err = f.fn(goja.Undefined(), f.e.vm.ToValue(x))
		return err
	})
	if err != nil {
		if ctx != nil && ctx.Err() != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", ErrInvalidFormula, err)
	}
	return res.ToFloat(), nil
}
