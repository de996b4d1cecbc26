package shape

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/wudi/texfig/coords"
	"github.com/wudi/texfig/psfunc"
	"github.com/wudi/texfig/scripting"
)

const (
	DefaultPlotPoints = 50
	DefaultPlotScale  = 1.0
)

// DefaultSampleTimeout bounds the evaluation of all the samples of a plot.
const DefaultSampleTimeout = 2 * time.Second

// Plot is the graph of a function of x, sampled over [MinX, MaxX].
type Plot struct {
	Base
	stroke
	fill
	shadow
	arrowSet
	position   coords.Point
	equation   string
	minX, maxX float64
	nbPoints   int
	style      PlotStyle
	xScale     float64
	yScale     float64
	polar      bool
	algebraic  bool
	timeout    time.Duration
	samples    *plotSamples
}

// plotSamples caches the sampling of the current plot state.
type plotSamples struct {
	pts []coords.Point
	err error
}

func NewPlot(pos coords.Point, equation string, minX, maxX float64) *Plot {
	p := &Plot{
		Base:     newBase(),
		stroke:   newStroke(),
		fill:     newFill(),
		shadow:   newShadow(),
		arrowSet: newArrowSet(RoleStart, RoleEnd),
		position: pos,
		equation: equation,
		nbPoints: DefaultPlotPoints,
		xScale:   DefaultPlotScale,
		yScale:   DefaultPlotScale,
		maxX:     1,
		timeout:  DefaultSampleTimeout,
	}
	p.SetRange(minX, maxX)
	return p
}

func (p *Plot) Kind() Kind { return KindPlot }

func (p *Plot) Position() coords.Point { return p.position }
func (p *Plot) SetPosition(pt coords.Point) {
	if pt.IsValid() {
		p.position = pt
		p.samples = nil
	}
}

// Equation is a PostScript program, or an infix expression when the plot
// is algebraic.
func (p *Plot) Equation() string { return p.equation }
func (p *Plot) SetEquation(eq string) {
	p.equation = eq
	p.samples = nil
}

func (p *Plot) Range() (minX, maxX float64) { return p.minX, p.maxX }

// SetRange requires minX < maxX.
func (p *Plot) SetRange(minX, maxX float64) {
	if coords.IsValidCoord(minX) && coords.IsValidCoord(maxX) && minX < maxX {
		p.minX, p.maxX = minX, maxX
		p.samples = nil
	}
}

func (p *Plot) NbPoints() int { return p.nbPoints }
func (p *Plot) SetNbPoints(n int) {
	if n >= 2 {
		p.nbPoints = n
		p.samples = nil
	}
}

func (p *Plot) PlotStyle() PlotStyle     { return p.style }
func (p *Plot) SetPlotStyle(s PlotStyle) { p.style = s }

// Scale returns xunit and yunit in centimetres.
func (p *Plot) Scale() (x, y float64) { return p.xScale, p.yScale }
func (p *Plot) SetScale(x, y float64) {
	if validPositive(x) {
		p.xScale = x
	}
	if validPositive(y) {
		p.yScale = y
	}
	p.samples = nil
}

func (p *Plot) IsPolar() bool { return p.polar }
func (p *Plot) SetPolar(on bool) {
	p.polar = on
	p.samples = nil
}

func (p *Plot) IsAlgebraic() bool { return p.algebraic }
func (p *Plot) SetAlgebraic(on bool) {
	p.algebraic = on
	p.samples = nil
}

func (p *Plot) SampleTimeout() time.Duration { return p.timeout }

// SetSampleTimeout requires a positive duration.
func (p *Plot) SetSampleTimeout(d time.Duration) {
	if d > 0 {
		p.timeout = d
		p.samples = nil
	}
}

// Function compiles the equation. ev is used for algebraic plots; a nil
// ev falls back to a fresh goja engine.
func (p *Plot) Function(ev scripting.Evaluator) (func(context.Context, float64) (float64, error), error) {
	if !p.algebraic {
		prog, err := psfunc.Compile(p.equation)
		if err != nil {
			return nil, err
		}
		return func(_ context.Context, x float64) (float64, error) { return prog.Eval(x) }, nil
	}
	if ev == nil {
		ev = scripting.NewEngine()
	}
	f, err := ev.Compile(p.equation)
	if err != nil {
		return nil, err
	}
	return f.Eval, nil
}

// Sample evaluates the plot and returns its points in drawing coordinates.
// Samples whose evaluation fails or is not finite are skipped; only a
// compile error or a cancelled context is returned.
func (p *Plot) Sample(ctx context.Context, ev scripting.Evaluator) ([]coords.Point, error) {
	fn, err := p.Function(ev)
	if err != nil {
		return nil, err
	}
	pts := make([]coords.Point, 0, p.nbPoints)
	step := (p.maxX - p.minX) / float64(p.nbPoints-1)
	for i := 0; i < p.nbPoints; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x := p.minX + float64(i)*step
		y, err := fn(ctx, x)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
			continue
		}
		if p.polar {
			rad := x * math.Pi / 180
			x, y = y*math.Cos(rad), y*math.Sin(rad)
		}
		pt := coords.Point{
			X: p.position.X + x*p.xScale*PPC,
			Y: p.position.Y - y*p.yScale*PPC,
		}
		if pt.IsValid() {
			pts = append(pts, pt)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return pts, nil
}

// Samples returns the points of the plot, sampled with the default
// evaluators within SampleTimeout. The result is kept until an attribute
// it depends on changes.
func (p *Plot) Samples() ([]coords.Point, error) {
	if p.samples == nil {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		pts, err := p.Sample(ctx, nil)
		cancel()
		if err != nil {
			err = fmt.Errorf("plot %q: %w", p.equation, err)
		}
		p.samples = &plotSamples{pts: pts, err: err}
	}
	return append([]coords.Point(nil), p.samples.pts...), p.samples.err
}

// Points is Samples without the error.
func (p *Plot) Points() []coords.Point {
	pts, _ := p.Samples()
	return pts
}

func (p *Plot) ArrowLine(a *Arrow) (coords.Line, bool) {
	if a == nil {
		return coords.Line{}, false
	}
	return endArrowLine(p.Points(), a.Role())
}

// Bounds falls back to the position when nothing can be sampled.
func (p *Plot) Bounds() coords.Rect {
	pts := p.Points()
	if len(pts) == 0 {
		return coords.RectOf(p.position)
	}
	return coords.RectOf(pts...)
}

func (p *Plot) GravityCentre() coords.Point { return p.Bounds().Centre() }

func (p *Plot) Translate(dx, dy float64) { p.SetPosition(p.position.Translate(dx, dy)) }

func (p *Plot) MirrorHorizontal(origin coords.Point) { p.SetPosition(mirrorH(p.position, origin)) }
func (p *Plot) MirrorVertical(origin coords.Point)   { p.SetPosition(mirrorV(p.position, origin)) }
