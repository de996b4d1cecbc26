// Package pst generates and parses PSTricks drawing macros.
//
// Generated code uses centimetres with y growing upwards; the shape model
// uses pixels (shape.PPC per centimetre) with y growing downwards. Parsing
// is recursive descent over scanner tokens, one production per macro.
package pst

import (
	"errors"
	"time"

	"github.com/wudi/texfig/observability"
	"github.com/wudi/texfig/recovery"
	"github.com/wudi/texfig/scanner"
	"github.com/wudi/texfig/scripting"
	"github.com/wudi/texfig/shape"
)

var (
	ErrMalformedMacroArguments = errors.New("malformed macro arguments")
	ErrUnknownMacro            = errors.New("unknown macro")
)

// Config configures a Parser. Zero values select the defaults.
type Config struct {
	// Recovery decides what happens after an error. The default is
	// lenient and skips unknown macros silently.
	Recovery recovery.Strategy
	Logger   observability.Logger
	Scanner  scanner.Config
	// Scripting compiles the equations of algebraic plots. It is shared by
	// every Parse call of a Parser; nil gives each call a new goja engine.
	Scripting scripting.Evaluator
	// SampleTimeout bounds the sampling of each parsed plot. Default
	// shape.DefaultSampleTimeout.
	SampleTimeout time.Duration
	// MaxNesting bounds nested \rput bodies. Default 32.
	MaxNesting int
}

const defaultMaxNesting = 32

// Result is the outcome of a parse call. Errors holds every recorded
// error, in source order.
type Result struct {
	Drawing *shape.Drawing
	Errors  recovery.Log
}

// Err returns the recorded errors joined, or nil.
func (r Result) Err() error { return r.Errors.Err() }
