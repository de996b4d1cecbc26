package shape

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/wudi/texfig/coords"
)

func pt(x, y float64) coords.Point { return coords.Point{X: x, Y: y} }

func assertPoint(t *testing.T, name string, got, want coords.Point) {
	t.Helper()
	if !got.Equals(want, 1e-9) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestDotNaiveCorners(t *testing.T) {
	for _, st := range []DotStyle{DotDisc, DotO, DotOPlus, DotOTimes} {
		d := NewDot(pt(10, 20))
		d.SetStyle(st)
		d.SetDiameter(4)
		tl, br := d.TopLeftBottomRight()
		assertPoint(t, st.String()+" tl", tl, pt(6, 16))
		assertPoint(t, st.String()+" br", br, pt(14, 24))
	}
}

func TestDotStyleGeometry(t *testing.T) {
	d := NewDot(pt(0, 0))
	d.SetDiameter(16)
	dec := 2.0

	d.SetStyle(DotTriangle)
	tl, br := d.TopLeftBottomRight()
	assertPoint(t, "triangle tl", tl, pt(-16-0.3*dec, -16-1.5*dec))
	assertPoint(t, "triangle br", br, pt(16+0.3*dec, 16-3*dec))

	d.SetStyle(DotBar)
	tl, br = d.TopLeftBottomRight()
	assertPoint(t, "bar tl", tl, pt(-2, -16))
	assertPoint(t, "bar br", br, pt(2, 16+16/1.875))

	d.SetStyle(DotPentagon)
	tl, br = d.TopLeftBottomRight()
	dist := 16 + dec
	assertPoint(t, "pentagon tl", tl, pt(-math.Sin(2*math.Pi/5)*dist, -16-dec))
	assertPoint(t, "pentagon br", br, pt(math.Sin(2*math.Pi/5)*dist, 0.25*(math.Sqrt(5)+1)*dist+dec))

	d.SetStyle(DotDiamond)
	tl, br = d.TopLeftBottomRight()
	if tl.X >= br.X {
		t.Errorf("diamond corners not ordered on x: %v %v", tl, br)
	}
}

func TestDotFilled(t *testing.T) {
	tests := []struct {
		style            DotStyle
		fillable, filled bool
	}{
		{DotDisc, false, true},
		{DotO, true, true},
		{DotFSquare, false, true},
		{DotSquare, true, true},
		{DotPlus, false, false},
		{DotBar, false, false},
		{DotFTriangle, false, true},
	}
	for _, tc := range tests {
		d := NewDot(pt(0, 0))
		d.SetStyle(tc.style)
		d.SetFilling(FillNone)
		if d.Style().IsFillable() != tc.fillable || d.IsFilled() != tc.filled {
			t.Errorf("%s: fillable=%v filled=%v", tc.style, d.Style().IsFillable(), d.IsFilled())
		}
	}
}

func TestDotRejectsInvalidDiameter(t *testing.T) {
	d := NewDot(pt(0, 0))
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		d.SetDiameter(v)
	}
	if d.Diameter() != DefaultDotDiameter {
		t.Fatalf("diameter = %v", d.Diameter())
	}
}

func TestAxesArrowPairing(t *testing.T) {
	tests := []struct{ set, pair int }{
		{AxesArrowYNear, AxesArrowXNear},
		{AxesArrowXNear, AxesArrowYNear},
		{AxesArrowYFar, AxesArrowXFar},
		{AxesArrowXFar, AxesArrowYFar},
	}
	for _, tc := range tests {
		a := NewAxes(pt(0, 0))
		a.SetArrowStyle(tc.set, ArrowRight)
		for i, arrow := range a.Arrows() {
			want := ArrowNone
			if i == tc.set || i == tc.pair {
				want = ArrowRight
			}
			if arrow.Style() != want {
				t.Errorf("set %d: arrow %d style %s, want %s", tc.set, i, arrow.Style(), want)
			}
		}
	}
}

func TestAxesArrowLine(t *testing.T) {
	a := NewAxes(pt(100, 200))
	a.SetGridBounds(pt(-1, -2), pt(3, 4))

	l, ok := a.ArrowLine(a.ArrowAt(AxesArrowYNear))
	if !ok {
		t.Fatal("no line for Y-near")
	}
	assertPoint(t, "ynear p1", l.P1, pt(100, 200+2*PPC))
	assertPoint(t, "ynear p2", l.P2, pt(100, 200-4*PPC))

	l, _ = a.ArrowLine(a.ArrowAt(AxesArrowYFar))
	assertPoint(t, "yfar p1", l.P1, pt(100, 200-4*PPC))

	l, _ = a.ArrowLine(a.ArrowAt(AxesArrowXNear))
	assertPoint(t, "xnear p1", l.P1, pt(100-PPC, 200))
	assertPoint(t, "xnear p2", l.P2, pt(100+3*PPC, 200))

	l, _ = a.ArrowLine(a.ArrowAt(AxesArrowXFar))
	assertPoint(t, "xfar p1", l.P1, pt(100+3*PPC, 200))

	if _, ok := a.ArrowLine(nil); ok {
		t.Fatal("nil arrow has a line")
	}
}

func TestGridDefaultsAndRejects(t *testing.T) {
	g := NewGrid(pt(0, 0))
	if g.Unit() != 1 || g.SubGridDiv() != 5 || g.LabelsSize() != 10 || !g.XLabelSouth() || !g.YLabelWest() {
		t.Fatalf("unexpected defaults: %+v", g)
	}
	g.SetUnit(-2)
	g.SetGridWidth(0)
	g.SetSubGridDiv(0)
	g.SetGridBounds(pt(3, 0), pt(1, 1))
	if g.Unit() != 1 || g.GridWidth() != DefaultGridWidth || g.SubGridDiv() != 5 {
		t.Fatalf("invalid values accepted")
	}
	if g.GridStart() != pt(0, 0) || g.GridEnd() != pt(2, 2) {
		t.Fatalf("inverted bounds accepted: %v %v", g.GridStart(), g.GridEnd())
	}
}

func TestGridLines(t *testing.T) {
	g := NewGrid(pt(0, 0))
	if got := len(g.Lines()); got != 6 {
		t.Fatalf("main lines = %d, want 6", got)
	}
	// 11 positions per axis at 1/5 steps, minus the 3 main ones.
	if got := len(g.SubLines()); got != 16 {
		t.Fatalf("sub lines = %d, want 16", got)
	}
}

func TestPolylineArrowLines(t *testing.T) {
	p := NewPolyline(pt(0, 0), pt(10, 0), pt(10, 10))
	start, _ := p.ArrowLine(p.ArrowAt(0))
	end, _ := p.ArrowLine(p.ArrowAt(-1))
	assertPoint(t, "start", start.P1, pt(0, 0))
	assertPoint(t, "start dir", start.P2, pt(10, 0))
	assertPoint(t, "end", end.P1, pt(10, 10))
	assertPoint(t, "end dir", end.P2, pt(10, 0))

	if NewPolyline(pt(0, 0)) != nil || NewPolygon(pt(0, 0)) != nil {
		t.Fatal("single-point shapes accepted")
	}
}

func TestMirrorAndTranslate(t *testing.T) {
	l := NewLine(pt(0, 0), pt(10, 5))
	l.MirrorHorizontal(pt(20, 0))
	assertPoint(t, "mirrored", l.PointAt(0), pt(40, 0))
	l.MirrorVertical(pt(0, 10))
	assertPoint(t, "mirrored", l.PointAt(1), pt(30, 15))
	l.Translate(1, 1)
	assertPoint(t, "translated", l.PointAt(0), pt(41, 21))
}

func TestPlotSample(t *testing.T) {
	p := NewPlot(pt(0, 0), "x 2 mul", 0, 4)
	p.SetNbPoints(5)
	pts, err := p.Sample(context.Background(), nil)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(pts) != 5 {
		t.Fatalf("got %d points", len(pts))
	}
	for i, q := range pts {
		x := float64(i)
		assertPoint(t, "sample", q, pt(x*PPC, -2*x*PPC))
	}
}

func TestPlotSkipsDomainErrors(t *testing.T) {
	p := NewPlot(pt(0, 0), "x sqrt", -2, 2)
	p.SetNbPoints(5)
	pts, err := p.Sample(context.Background(), nil)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(pts) != 3 {
		t.Fatalf("got %d points, want 3", len(pts))
	}
	p.SetEquation("x foo")
	if _, err := p.Sample(context.Background(), nil); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestPlotAlgebraic(t *testing.T) {
	p := NewPlot(pt(0, 0), "x^2", 0, 2)
	p.SetAlgebraic(true)
	p.SetNbPoints(3)
	pts, err := p.Sample(context.Background(), nil)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	assertPoint(t, "last", pts[2], pt(2*PPC, -4*PPC))
}

func TestPlotRejects(t *testing.T) {
	p := NewPlot(pt(0, 0), "x", 0, 1)
	p.SetNbPoints(1)
	p.SetRange(3, 2)
	p.SetScale(0, -1)
	if p.NbPoints() != DefaultPlotPoints {
		t.Errorf("nbPoints = %d", p.NbPoints())
	}
	if lo, hi := p.Range(); lo != 0 || hi != 1 {
		t.Errorf("range = %v,%v", lo, hi)
	}
	if x, y := p.Scale(); x != 1 || y != 1 {
		t.Errorf("scale = %v,%v", x, y)
	}
}

func TestColorNames(t *testing.T) {
	if n, ok := RGB(1, 0, 0).DviPsName(); !ok || n != "red" {
		t.Fatalf("red name = %q %v", n, ok)
	}
	c := RGB(1, 0.5, 0)
	if _, ok := c.DviPsName(); ok {
		t.Fatal("orange is not in the palette")
	}
	if c.TeXName() != "colff8000" {
		t.Fatalf("TeXName = %q", c.TeXName())
	}
}

func TestArrowTokens(t *testing.T) {
	for s := ArrowNone; s <= ArrowDiskIn; s++ {
		for _, atStart := range []bool{true, false} {
			got, ok := ArrowStyleFromPST(s.PSTToken(atStart), atStart)
			if !ok || got != s {
				t.Errorf("%s start=%v: round trip gave %s", s, atStart, got)
			}
		}
	}
}

func TestDrawingBounds(t *testing.T) {
	d := NewDrawing(NewLine(pt(0, 0), pt(10, 10)), nil, NewLine(pt(-5, 3), pt(2, 20)))
	if d.Len() != 2 {
		t.Fatalf("len = %d", d.Len())
	}
	b := d.Bounds()
	assertPoint(t, "min", b.Min, pt(-5, 0))
	assertPoint(t, "max", b.Max, pt(10, 20))
	if NewDrawing().Bounds().IsValid() {
		t.Fatal("empty drawing has bounds")
	}
}

func TestDotFillColor(t *testing.T) {
	d := NewDot(pt(0, 0))
	d.SetLineColor(Blue)
	d.SetFillColor(Red)
	if !d.FillColor().Equals(Black) || !d.InteriorColor().Equals(Blue) {
		t.Errorf("disc: fill %v, interior %v", d.FillColor(), d.InteriorColor())
	}
	d.SetStyle(DotO)
	if !d.FillColor().Equals(Red) || !d.InteriorColor().Equals(Red) {
		t.Errorf("o: fill %v, interior %v", d.FillColor(), d.InteriorColor())
	}
}

func TestPlotSamplesCached(t *testing.T) {
	p := NewPlot(pt(0, 0), "x 2 mul", 0, 4)
	p.SetNbPoints(5)
	pts, err := p.Samples()
	if err != nil || len(pts) != 5 {
		t.Fatalf("samples = %d, %v", len(pts), err)
	}
	pts[0] = pt(1000, 1000)
	assertPoint(t, "cached", p.Points()[0], pt(0, 0))

	p.SetNbPoints(3)
	if n := len(p.Points()); n != 3 {
		t.Fatalf("got %d points after SetNbPoints, want 3", n)
	}
	p.Translate(10, 0)
	assertPoint(t, "translated", p.Points()[0], pt(10, 0))
}

func TestPlotSamplingTimesOut(t *testing.T) {
	p := NewPlot(pt(0, 0), "(function(){while(true){}})()", 0, 1)
	p.SetAlgebraic(true)
	p.SetSampleTimeout(50 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := p.Samples()
		done <- err
	}()
	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("err = %v, want deadline exceeded", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("sampling did not stop")
	}
	if b := p.Bounds(); !b.Min.Equals(pt(0, 0), 0) {
		t.Errorf("bounds = %v, want the position", b)
	}
	if err := NewDrawing(p).SampleErr(); err == nil {
		t.Error("drawing reports no sampling error")
	}
}
