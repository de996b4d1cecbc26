// Package svg converts drawings to and from SVG documents.
//
// Shapes are written as groups carrying a latexdraw:type attribute and the
// latexdraw:* attributes needed to rebuild them exactly. The visual
// children of a group are layered: shadow, filled background, main
// element, double border. Only the main element, the one without a
// latexdraw:type, is read back together with the group attributes; bare
// polyline, polygon and line elements are imported as default-styled
// shapes.
package svg

import (
	"errors"
	"time"

	"github.com/wudi/texfig/observability"
	"github.com/wudi/texfig/recovery"
	"github.com/wudi/texfig/shape"
)

const (
	Namespace   = "http://www.w3.org/2000/svg"
	LDNamespace = "http://latexdraw.sourceforge.net/"
	LDPrefix    = "latexdraw"
)

var (
	ErrMalformedPointsSyntax    = errors.New("malformed points syntax")
	ErrMalformedMarkupStructure = errors.New("malformed markup structure")
)

// Layer types of the children of a shape group.
const (
	layerShadow     = "shadow"
	layerBackground = "background"
	layerDouble     = "dbleborders"
)

// Config configures Import. Zero values select the defaults.
type Config struct {
	// Recovery decides what happens after a node-level error; the
	// default records the error and skips the node.
	Recovery recovery.Strategy
	Logger   observability.Logger
	// SampleTimeout bounds the sampling of each imported plot. Default
	// shape.DefaultSampleTimeout.
	SampleTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.Recovery == nil {
		c.Recovery = recovery.NewLenientStrategy()
	}
	c.Logger = observability.OrNop(c.Logger)
	return c
}

// Result is the outcome of an import.
type Result struct {
	Drawing *shape.Drawing
	Errors  recovery.Log
}

func (r Result) Err() error { return r.Errors.Err() }
