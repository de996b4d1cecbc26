package shape

import "github.com/wudi/texfig/coords"

// Axes arrow indices.
const (
	AxesArrowYNear = iota
	AxesArrowXNear
	AxesArrowYFar
	AxesArrowXFar
)

const (
	DefaultAxesIncrement  = 1.0
	DefaultAxesDistLabels = 1.0
)

const maxTicks = 4096

// DefaultTicksSize is the PSTricks ticksize (2pt) in pixels.
var DefaultTicksSize = PtToPx(2)

type Axes struct {
	gridBase
	stroke
	arrowSet
	incrementX, incrementY   float64
	distLabelsX, distLabelsY float64
	labels                   PlottingStyle
	ticks                    PlottingStyle
	ticksStyle               TicksStyle
	ticksSize                float64
	axesStyle                AxesStyle
	showOrigin               bool
}

func NewAxes(pos coords.Point) *Axes {
	return &Axes{
		gridBase:    newGridBase(pos),
		stroke:      newStroke(),
		arrowSet:    newArrowSet(RoleYNear, RoleXNear, RoleYFar, RoleXFar),
		incrementX:  DefaultAxesIncrement,
		incrementY:  DefaultAxesIncrement,
		distLabelsX: DefaultAxesDistLabels,
		distLabelsY: DefaultAxesDistLabels,
		labels:      PlottingAll,
		ticks:       PlottingAll,
		ticksStyle:  TicksFull,
		ticksSize:   DefaultTicksSize,
		axesStyle:   AxesStyleAxes,
		showOrigin:  true,
	}
}

func (a *Axes) Kind() Kind { return KindAxes }

// SetArrowStyle also styles the arrow paired with index i, so both axes
// keep the same decoration on the same side.
func (a *Axes) SetArrowStyle(i int, s ArrowStyle) {
	if i == -1 {
		i = len(a.arrows) - 1
	}
	var pair int
	switch i {
	case AxesArrowYNear:
		pair = AxesArrowXNear
	case AxesArrowXNear:
		pair = AxesArrowYNear
	case AxesArrowYFar:
		pair = AxesArrowXFar
	case AxesArrowXFar:
		pair = AxesArrowYFar
	default:
		return
	}
	a.arrows[i].SetStyle(s)
	a.arrows[pair].SetStyle(s)
}

// ArrowLine returns the axis segment an arrow sits on, starting at the tip.
func (a *Axes) ArrowLine(arrow *Arrow) (coords.Line, bool) {
	if arrow == nil {
		return coords.Line{}, false
	}
	x, y := a.position.X, a.position.Y
	switch arrow.Role() {
	case RoleYNear, RoleYFar:
		p1 := coords.Point{X: x, Y: y - a.gridStart.Y*PPC}
		p2 := coords.Point{X: x, Y: y - a.gridEnd.Y*PPC}
		if arrow.Role() == RoleYFar {
			return coords.NewLine(p2, p1), true
		}
		return coords.NewLine(p1, p2), true
	case RoleXNear, RoleXFar:
		p1 := coords.Point{X: x + a.gridStart.X*PPC, Y: y}
		p2 := coords.Point{X: x + a.gridEnd.X*PPC, Y: y}
		if arrow.Role() == RoleXFar {
			return coords.NewLine(p2, p1), true
		}
		return coords.NewLine(p1, p2), true
	}
	return coords.Line{}, false
}

func (a *Axes) Increment() (x, y float64) { return a.incrementX, a.incrementY }
func (a *Axes) SetIncrement(x, y float64) {
	if validPositive(x) {
		a.incrementX = x
	}
	if validPositive(y) {
		a.incrementY = y
	}
}

func (a *Axes) DistLabels() (x, y float64) { return a.distLabelsX, a.distLabelsY }
func (a *Axes) SetDistLabels(x, y float64) {
	if validPositive(x) {
		a.distLabelsX = x
	}
	if validPositive(y) {
		a.distLabelsY = y
	}
}

func (a *Axes) LabelsDisplayed() PlottingStyle     { return a.labels }
func (a *Axes) SetLabelsDisplayed(s PlottingStyle) { a.labels = s }
func (a *Axes) TicksDisplayed() PlottingStyle      { return a.ticks }
func (a *Axes) SetTicksDisplayed(s PlottingStyle)  { a.ticks = s }
func (a *Axes) TicksStyle() TicksStyle             { return a.ticksStyle }
func (a *Axes) SetTicksStyle(s TicksStyle)         { a.ticksStyle = s }
func (a *Axes) AxesStyle() AxesStyle               { return a.axesStyle }
func (a *Axes) SetAxesStyle(s AxesStyle)           { a.axesStyle = s }
func (a *Axes) ShowOrigin() bool                   { return a.showOrigin }
func (a *Axes) SetShowOrigin(on bool)              { a.showOrigin = on }

// TicksSize is in pixels.
func (a *Axes) TicksSize() float64 { return a.ticksSize }
func (a *Axes) SetTicksSize(v float64) {
	if validPositive(v) {
		a.ticksSize = v
	}
}

func (a *Axes) Bounds() coords.Rect { return a.boundsIn(1) }

func (a *Axes) GravityCentre() coords.Point { return a.Bounds().Centre() }

// Ticks returns the tick positions along each axis in drawing
// coordinates, skipping the origin when it is hidden.
func (a *Axes) Ticks() (xs, ys []coords.Point) {
	x, y := a.position.X, a.position.Y
	for v := a.gridStart.X; v <= a.gridEnd.X+1e-9 && len(xs) < maxTicks; v += a.incrementX {
		if v == 0 && !a.showOrigin {
			continue
		}
		xs = append(xs, coords.Point{X: x + v*PPC, Y: y})
	}
	for v := a.gridStart.Y; v <= a.gridEnd.Y+1e-9 && len(ys) < maxTicks; v += a.incrementY {
		if v == 0 && !a.showOrigin {
			continue
		}
		ys = append(ys, coords.Point{X: x, Y: y - v*PPC})
	}
	return xs, ys
}
