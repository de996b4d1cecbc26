package pst

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/wudi/texfig/coords"
	"github.com/wudi/texfig/numfmt"
	"github.com/wudi/texfig/observability"
	"github.com/wudi/texfig/recovery"
	"github.com/wudi/texfig/shape"
)

func pt(x, y float64) coords.Point { return coords.Point{X: x, Y: y} }

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func parseOK(t *testing.T, src string) *shape.Drawing {
	t.Helper()
	res := Parse(src, Config{})
	if !res.Errors.Empty() {
		t.Fatalf("Parse(%q): unexpected errors: %v", src, res.Err())
	}
	return res.Drawing
}

func generate(t *testing.T, d *shape.Drawing, opts Options) string {
	t.Helper()
	code, err := Generate(d, opts)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return code
}

func single[T shape.Shape](t *testing.T, d *shape.Drawing) T {
	t.Helper()
	if d.Len() != 1 {
		t.Fatalf("expected 1 shape, got %d", d.Len())
	}
	s, ok := d.ShapeAt(0).(T)
	if !ok {
		t.Fatalf("unexpected shape type %T", d.ShapeAt(0))
	}
	return s
}

func TestGridDefaultsRoundTrip(t *testing.T) {
	code := GenerateShape(shape.NewGrid(pt(0, 0)))
	if code != `\psgrid(0,0)(0,0)(2,2)` {
		t.Fatalf("unexpected code %q", code)
	}
	g := single[*shape.Grid](t, parseOK(t, code))
	def := shape.NewGrid(pt(0, 0))
	checks := []struct {
		name      string
		got, want float64
	}{
		{"gridwidth", g.GridWidth(), def.GridWidth()},
		{"subgridwidth", g.SubGridWidth(), def.SubGridWidth()},
		{"unit", g.Unit(), def.Unit()},
		{"labels", g.LabelsSize(), def.LabelsSize()},
		{"subgriddiv", float64(g.SubGridDiv()), float64(def.SubGridDiv())},
		{"griddots", float64(g.GridDots()), 0},
	}
	for _, c := range checks {
		if !numfmt.Equal(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if !g.GridColor().Equals(shape.DefaultGridColor) || !g.SubGridColor().Equals(shape.DefaultSubGridColor) {
		t.Errorf("colours changed: %v %v", g.GridColor(), g.SubGridColor())
	}
	if !g.XLabelSouth() || !g.YLabelWest() {
		t.Errorf("label sides changed")
	}
	if g.GridStart() != pt(0, 0) || g.GridEnd() != pt(2, 2) {
		t.Errorf("bounds = %v %v", g.GridStart(), g.GridEnd())
	}
}

func TestGridNonDefaultRoundTrip(t *testing.T) {
	g := shape.NewGrid(pt(0, 0))
	g.SetGridWidth(2)
	g.SetUnit(3.5)
	code := GenerateShape(g)
	for _, want := range []string{"gridwidth=2", "unit=3.5cm"} {
		if !strings.Contains(code, want) {
			t.Errorf("%q does not contain %q", code, want)
		}
	}
	back := single[*shape.Grid](t, parseOK(t, code))
	if !numfmt.Equal(back.GridWidth(), 2) || !numfmt.Equal(back.Unit(), 3.5) {
		t.Fatalf("got gridwidth %v unit %v", back.GridWidth(), back.Unit())
	}
}

func TestGridLabelSides(t *testing.T) {
	g := single[*shape.Grid](t, parseOK(t, `\psgrid(0,0)(2,2)(0,0)`))
	if g.XLabelSouth() || g.YLabelWest() {
		t.Fatalf("reversed bounds should move the labels")
	}
	if g.GridStart() != pt(0, 0) || g.GridEnd() != pt(2, 2) {
		t.Fatalf("bounds = %v %v", g.GridStart(), g.GridEnd())
	}
	if code := GenerateShape(g); code != `\psgrid(0,0)(2,2)(0,0)` {
		t.Fatalf("regenerated %q", code)
	}
}

func TestParseAxes(t *testing.T) {
	a := single[*shape.Axes](t, parseOK(t, `\psaxes[Dx=2,ticksize=-3pt 2pt,showorigin=false]{->}(0,0)(1,2)(3,4)`))
	if a.Origin() != pt(0, 0) || a.GridStart() != pt(1, 2) || a.GridEnd() != pt(3, 4) {
		t.Fatalf("origin %v start %v end %v", a.Origin(), a.GridStart(), a.GridEnd())
	}
	if ix, _ := a.Increment(); ix != 2 {
		t.Errorf("Dx = %v", ix)
	}
	if a.ShowOrigin() {
		t.Errorf("showorigin not applied")
	}
	if !near(a.TicksSize(), shape.PtToPx(3), 1e-9) {
		t.Errorf("ticksize = %v", a.TicksSize())
	}
	for i, want := range []shape.ArrowStyle{shape.ArrowNone, shape.ArrowNone, shape.ArrowLeft, shape.ArrowLeft} {
		if got := a.ArrowAt(i).Style(); got != want {
			t.Errorf("arrow %d = %s, want %s", i, got, want)
		}
	}
}

func TestAxesRoundTrip(t *testing.T) {
	a := shape.NewAxes(pt(100, -50))
	a.SetGridBounds(pt(-1, -1), pt(3, 2))
	a.SetTicksStyle(shape.TicksBottom)
	a.SetArrowStyle(shape.AxesArrowYFar, shape.ArrowRight)
	back := single[*shape.Axes](t, parseOK(t, GenerateShape(a)))
	if !back.Position().Equals(a.Position(), 1e-6) {
		t.Errorf("position = %v", back.Position())
	}
	if back.GridStart() != a.GridStart() || back.GridEnd() != a.GridEnd() {
		t.Errorf("bounds = %v %v", back.GridStart(), back.GridEnd())
	}
	if back.TicksStyle() != shape.TicksBottom {
		t.Errorf("tickstyle = %v", back.TicksStyle())
	}
	if back.ArrowAt(shape.AxesArrowXFar).Style() != shape.ArrowRight {
		t.Errorf("far arrows not restored")
	}
}

func TestMalformedMacroIsSkipped(t *testing.T) {
	src := `\psset{linewidth=0.1}\psline(0,0)(1,1)\psline[linewidth=abc](0,0)(1,1)\psdots(1,1)`
	res := Parse(src, Config{})
	if res.Drawing.Len() != 2 {
		t.Fatalf("expected 2 shapes, got %d", res.Drawing.Len())
	}
	if len(res.Errors) != 1 || !res.Errors.Has(ErrMalformedMacroArguments) {
		t.Fatalf("unexpected errors: %v", res.Err())
	}
	loc := res.Errors[0].Location
	if want := strings.Index(src, `\psline[`) + 1; loc.Line != 1 || loc.Column != want {
		t.Errorf("location %v, want column %d", loc, want)
	}
	l := res.Drawing.ShapeAt(0).(*shape.Line)
	if !near(l.Thickness(), 5, 1e-9) {
		t.Errorf("psset linewidth not applied: %v", l.Thickness())
	}
}

func TestUnknownMacros(t *testing.T) {
	src := `\centering \foo{bar} \psline(0,0)(1,1)`

	res := Parse(src, Config{})
	if res.Drawing.Len() != 1 || !res.Errors.Empty() {
		t.Fatalf("lenient: %d shapes, errors %v", res.Drawing.Len(), res.Err())
	}

	res = Parse(src, Config{Recovery: recovery.NewStrictStrategy()})
	if res.Drawing.Len() != 0 || !res.Errors.Has(ErrUnknownMacro) {
		t.Fatalf("strict: %d shapes, errors %v", res.Drawing.Len(), res.Err())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"one point line", `\psline(0,0)`},
		{"bad coordinate", `\psline(0,a)(1,1)`},
		{"bad arrows", `\psline{?-?}(0,0)(1,1)`},
		{"unknown colour", `\psline[linecolor=nocolour](0,0)(1,1)`},
		{"bad linestyle", `\psline[linestyle=wavy](0,0)(1,1)`},
		{"unbalanced", `\psline[linewidth=1(0,0)(1,1)`},
		{"bad function", `\psplot{0}{1}{x foo}`},
		{"empty range", `\psplot{1}{0}{x}`},
		{"missing rput body", `\rput(1,1)`},
		{"bad colour spec", `\definecolor{c}{rgb}{1,2}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := Parse(tc.src, Config{})
			if res.Drawing.Len() != 0 {
				t.Errorf("expected no shapes, got %d", res.Drawing.Len())
			}
			if !res.Errors.Has(ErrMalformedMacroArguments) {
				t.Errorf("expected ErrMalformedMacroArguments, got %v", res.Err())
			}
		})
	}
}

func TestLineRoundTrip(t *testing.T) {
	l := shape.NewLine(pt(0, 0), pt(100, -50))
	l.SetLineColor(shape.RGB(1, 0.5, 0))
	l.SetThickness(shape.PtToPx(2))
	l.SetLineStyle(shape.LineDashed)
	l.SetShadow(true)
	l.SetDoubleBorder(true)
	l.SetArrowStyle(0, shape.ArrowLeft)
	l.SetArrowStyle(-1, shape.ArrowCircleEnd)
	l.ArrowAt(0).SetArrowLength(2)

	code := GenerateShape(l)
	if !strings.HasPrefix(code, `\newrgbcolor{colff8000}{1 0.5 0}`+"\n") {
		t.Fatalf("missing colour definition in %q", code)
	}
	if !strings.Contains(code, "{<-o}(0,0)(2,1)") {
		t.Fatalf("unexpected code %q", code)
	}

	back := single[*shape.Line](t, parseOK(t, code))
	if !back.LineColor().Equals(l.LineColor()) {
		t.Errorf("colour = %v", back.LineColor())
	}
	if !near(back.Thickness(), l.Thickness(), 0.01) || back.LineStyle() != shape.LineDashed {
		t.Errorf("stroke = %v %v", back.Thickness(), back.LineStyle())
	}
	if !back.HasShadow() || !back.HasDoubleBorder() {
		t.Errorf("shadow/double lost")
	}
	if back.ArrowAt(0).Style() != shape.ArrowLeft || back.ArrowAt(1).Style() != shape.ArrowCircleEnd {
		t.Errorf("arrows = %v %v", back.ArrowAt(0).Style(), back.ArrowAt(1).Style())
	}
	if back.ArrowAt(0).ArrowLength() != 2 {
		t.Errorf("arrowlength = %v", back.ArrowAt(0).ArrowLength())
	}
	if !back.PointAt(1).Equals(pt(100, -50), 1e-6) {
		t.Errorf("end point = %v", back.PointAt(1))
	}
}

func TestColourDefinedOnce(t *testing.T) {
	c := shape.RGB(0.2, 0.4, 0.6)
	l1 := shape.NewLine(pt(0, 0), pt(50, 0))
	l1.SetLineColor(c)
	l2 := shape.NewPolygon(pt(0, 0), pt(50, 0), pt(50, 50))
	l2.SetFillColor(c)
	l2.SetFilling(shape.FillPlain)
	code := generate(t, shape.NewDrawing(l1, l2), Options{})
	if n := strings.Count(code, `\newrgbcolor`); n != 1 {
		t.Fatalf("%d colour definitions in %q", n, code)
	}
	d := parseOK(t, code)
	if d.Len() != 2 || !d.ShapeAt(1).(*shape.Polygon).FillColor().Equals(c) {
		t.Fatalf("fill colour lost in %q", code)
	}
}

func TestRotatedPolygonRoundTrip(t *testing.T) {
	p := shape.NewPolygon(pt(0, 0), pt(100, 0), pt(100, -50))
	p.SetRotationAngle(math.Pi / 6)
	code := GenerateShape(p)
	if !strings.HasPrefix(code, `\rput{-30}(`) {
		t.Fatalf("unexpected code %q", code)
	}
	back := single[*shape.Polygon](t, parseOK(t, code))
	if !near(back.RotationAngle(), math.Pi/6, 1e-6) {
		t.Errorf("rotation = %v", back.RotationAngle())
	}
	for i, want := range p.Points() {
		if got := back.PointAt(i); !got.Equals(want, 0.05) {
			t.Errorf("point %d = %v, want %v", i, got, want)
		}
	}
}

func TestRputText(t *testing.T) {
	txt := single[*shape.Text](t, parseOK(t, `\rput{90}(1,2){\textcolor{red}{Hello $x$}}`))
	if txt.Text() != "Hello $x$" || !txt.LineColor().Equals(shape.Red) {
		t.Fatalf("text %q colour %v", txt.Text(), txt.LineColor())
	}
	if !txt.Position().Equals(pt(50, -100), 1e-9) {
		t.Errorf("position = %v", txt.Position())
	}
	if !near(txt.RotationAngle(), -math.Pi/2, 1e-9) {
		t.Errorf("rotation = %v", txt.RotationAngle())
	}
	if code := GenerateShape(txt); code != `\rput{90}(1,2){\textcolor{red}{Hello $x$}}` {
		t.Errorf("regenerated %q", code)
	}
}

func TestRputTranslatesBody(t *testing.T) {
	d := single[*shape.Dot](t, parseOK(t, `\rput(1,1){\psdots[dotsize=0.2](1,0)}`))
	if !d.Position().Equals(pt(100, -50), 1e-9) {
		t.Errorf("position = %v", d.Position())
	}
	if !near(d.Diameter(), 10, 1e-9) {
		t.Errorf("diameter = %v", d.Diameter())
	}
}

func TestDotsDefaultSize(t *testing.T) {
	d := parseOK(t, `\psdots[dotstyle=o,fillcolor=yellow](0,0)(1,1)`)
	if d.Len() != 2 {
		t.Fatalf("expected 2 dots, got %d", d.Len())
	}
	dot := d.ShapeAt(1).(*shape.Dot)
	want := shape.PtToPx(2) + 2*shape.DefaultThickness
	if !near(dot.Diameter(), want, 1e-9) {
		t.Errorf("diameter = %v, want %v", dot.Diameter(), want)
	}
	if dot.Style() != shape.DotO || !dot.FillColor().Equals(shape.Yellow) {
		t.Errorf("style %v fill %v", dot.Style(), dot.FillColor())
	}
}

func TestPssetUnit(t *testing.T) {
	l := single[*shape.Line](t, parseOK(t, `\psset{unit=2}\psline(0,0)(1,1)`))
	if !l.PointAt(1).Equals(pt(100, -100), 1e-9) {
		t.Fatalf("end = %v", l.PointAt(1))
	}
	l = single[*shape.Line](t, parseOK(t, `\psset{xunit=2cm}\psline(0,0)(1,1)`))
	if !l.PointAt(1).Equals(pt(100, -50), 1e-9) {
		t.Fatalf("end = %v", l.PointAt(1))
	}
}

func TestPlotRoundTrip(t *testing.T) {
	p := single[*shape.Plot](t, parseOK(t, `\psplot[plotpoints=10,algebraic]{->}{0}{2}{x*x}`))
	if p.NbPoints() != 10 || !p.IsAlgebraic() || p.Equation() != "x*x" {
		t.Fatalf("plot = %d %v %q", p.NbPoints(), p.IsAlgebraic(), p.Equation())
	}
	if lo, hi := p.Range(); lo != 0 || hi != 2 {
		t.Fatalf("range = %v %v", lo, hi)
	}
	if p.ArrowAt(-1).Style() != shape.ArrowLeft {
		t.Errorf("arrow = %v", p.ArrowAt(-1).Style())
	}
	back := single[*shape.Plot](t, parseOK(t, GenerateShape(p)))
	if back.NbPoints() != 10 || !back.IsAlgebraic() || back.ArrowAt(-1).Style() != shape.ArrowLeft {
		t.Errorf("regenerated plot differs")
	}
}

func TestDefineColor(t *testing.T) {
	tests := []struct {
		src  string
		want shape.Color
	}{
		{`\definecolor{c}{rgb}{1,0.5,0}`, shape.RGB(1, 0.5, 0)},
		{`\definecolor{c}{RGB}{255,128,0}`, shape.RGB(1, 128.0/255, 0)},
		{`\definecolor{c}{gray}{0.5}`, shape.Gray},
		{`\definecolor{c}{HTML}{FF8000}`, shape.RGB(1, 128.0/255, 0)},
		{`\newrgbcolor{c}{0 0 1}`, shape.Blue},
	}
	for _, tc := range tests {
		d := parseOK(t, tc.src+`\psline[linecolor=c](0,0)(1,1)`)
		if got := single[*shape.Line](t, d).LineColor(); !got.Equals(tc.want) {
			t.Errorf("%s: colour %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestPictureEnvironment(t *testing.T) {
	d := shape.NewDrawing(shape.NewLine(pt(0, 0), pt(100, -100)))
	code := generate(t, d, Options{Picture: true})
	if !strings.HasPrefix(code, `\begin{pspicture}(0,0)(2,2)`) || !strings.HasSuffix(code, "\\end{pspicture}\n") {
		t.Fatalf("unexpected code %q", code)
	}
	if back := parseOK(t, code); back.Len() != 1 {
		t.Fatalf("expected 1 shape, got %d", back.Len())
	}
}

func TestNestingLimit(t *testing.T) {
	src := strings.Repeat(`\rput(0,0){`, 5) + `\psdots(0,0)` + strings.Repeat("}", 5)
	res := Parse(src, Config{MaxNesting: 3})
	if res.Drawing.Len() != 0 || !errors.Is(res.Err(), ErrMalformedMacroArguments) {
		t.Fatalf("%d shapes, errors %v", res.Drawing.Len(), res.Err())
	}
	if d := parseOK(t, src); d.Len() != 1 {
		t.Fatalf("expected 1 shape without limit, got %d", d.Len())
	}
}

func TestRunawayPlotFailsGenerate(t *testing.T) {
	res := Parse(`\psplot[algebraic]{0}{1}{(function(){while(true){}})()}`, Config{SampleTimeout: 100 * time.Millisecond})
	if res.Drawing.Len() != 1 || !res.Errors.Empty() {
		t.Fatalf("%d shapes, errors %v", res.Drawing.Len(), res.Err())
	}
	done := make(chan error, 1)
	go func() {
		_, err := Generate(res.Drawing, Options{Picture: true})
		done <- err
	}()
	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("err = %v, want deadline exceeded", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Generate did not return")
	}
}

func TestParserCallsKeepSeparateState(t *testing.T) {
	p := NewParser(Config{})
	first := p.Parse(`\newrgbcolor{c}{1 0 0}\psplot{0}{1}{x foo}`)
	if len(first.Errors) != 1 {
		t.Fatalf("first parse: errors %v", first.Err())
	}
	second := p.Parse(`\psdots(0,0)`)
	if !second.Errors.Empty() || second.Drawing.Len() != 1 {
		t.Fatalf("second parse: %d shapes, errors %v", second.Drawing.Len(), second.Err())
	}
	if len(first.Errors) != 1 {
		t.Errorf("first log changed: %v", first.Err())
	}
	third := p.Parse(`\psline[linecolor=c](0,0)(1,1)`)
	if !third.Errors.Has(ErrMalformedMacroArguments) {
		t.Errorf("colour defined by an earlier parse leaked: %v", third.Err())
	}
}

func TestSkippedMacroLogsLocation(t *testing.T) {
	var buf bytes.Buffer
	logger := observability.NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	res := Parse("\\psdots(0,0)\n  \\psline(0,a)(1,1)", Config{Logger: logger})
	if res.Drawing.Len() != 1 || len(res.Errors) != 1 {
		t.Fatalf("%d shapes, errors %v", res.Drawing.Len(), res.Err())
	}
	out := buf.String()
	for _, want := range []string{"macro skipped", "macro=psline", "line=2", "column=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}
