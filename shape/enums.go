package shape

func token(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

func parseToken[T ~int](names []string, s string) (T, bool) {
	for i, n := range names {
		if n == s {
			return T(i), true
		}
	}
	return 0, false
}

type LineStyle int

const (
	LineSolid LineStyle = iota
	LineDashed
	LineDotted
	LineNone
)

var lineStyleNames = [...]string{"solid", "dashed", "dotted", "none"}

func (s LineStyle) String() string              { return token(lineStyleNames[:], int(s)) }
func ParseLineStyle(s string) (LineStyle, bool) { return parseToken[LineStyle](lineStyleNames[:], s) }

type FillingStyle int

const (
	FillNone FillingStyle = iota
	FillPlain
)

var fillingNames = [...]string{"none", "solid"}

func (s FillingStyle) String() string { return token(fillingNames[:], int(s)) }
func ParseFillingStyle(s string) (FillingStyle, bool) {
	return parseToken[FillingStyle](fillingNames[:], s)
}

// PlottingStyle selects the axes that get labels or ticks.
type PlottingStyle int

const (
	PlottingAll PlottingStyle = iota
	PlottingX
	PlottingY
	PlottingNone
)

var plottingNames = [...]string{"all", "x", "y", "none"}

func (s PlottingStyle) String() string { return token(plottingNames[:], int(s)) }
func ParsePlottingStyle(s string) (PlottingStyle, bool) {
	return parseToken[PlottingStyle](plottingNames[:], s)
}

type TicksStyle int

const (
	TicksFull TicksStyle = iota
	TicksTop
	TicksBottom
)

var ticksNames = [...]string{"full", "top", "bottom"}

func (s TicksStyle) String() string               { return token(ticksNames[:], int(s)) }
func ParseTicksStyle(s string) (TicksStyle, bool) { return parseToken[TicksStyle](ticksNames[:], s) }

type AxesStyle int

const (
	AxesStyleAxes AxesStyle = iota
	AxesStyleFrame
	AxesStyleNone
)

var axesStyleNames = [...]string{"axes", "frame", "none"}

func (s AxesStyle) String() string              { return token(axesStyleNames[:], int(s)) }
func ParseAxesStyle(s string) (AxesStyle, bool) { return parseToken[AxesStyle](axesStyleNames[:], s) }

type PlotStyle int

const (
	PlotLine PlotStyle = iota
	PlotCurve
	PlotDots
	PlotPolygon
	PlotECurve
	PlotCCurve
)

var plotStyleNames = [...]string{"line", "curve", "dots", "polygon", "ecurve", "ccurve"}

func (s PlotStyle) String() string              { return token(plotStyleNames[:], int(s)) }
func ParsePlotStyle(s string) (PlotStyle, bool) { return parseToken[PlotStyle](plotStyleNames[:], s) }
