package pst

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/wudi/texfig/coords"
	"github.com/wudi/texfig/numfmt"
	"github.com/wudi/texfig/observability"
	"github.com/wudi/texfig/recovery"
	"github.com/wudi/texfig/scanner"
	"github.com/wudi/texfig/scripting"
	"github.com/wudi/texfig/shape"
)

// macroHandler parses the arguments of one macro whose command token was
// just read and returns the shapes it draws.
type macroHandler func(f *frame, cmd scanner.Token) ([]shape.Shape, error)

// Parser turns PSTricks code into a drawing. It can be reused for several
// sources. Each Parse call has its own error log, colour table and, unless
// Config.Scripting is set, its own formula engine; a Parser with a shared
// Config.Scripting must not be used from several goroutines.
type Parser struct {
	cfg      Config
	handlers map[string]macroHandler
}

func NewParser(cfg Config) *Parser {
	if cfg.Recovery == nil {
		cfg.Recovery = recovery.NewLenientStrategy(ErrUnknownMacro)
	}
	cfg.Logger = observability.OrNop(cfg.Logger)
	if cfg.MaxNesting <= 0 {
		cfg.MaxNesting = defaultMaxNesting
	}
	p := &Parser{cfg: cfg, handlers: make(map[string]macroHandler)}
	p.register("psdots", parseDots)
	p.register("psdots*", parseDots)
	p.register("psdot", parseDots)
	p.register("psdot*", parseDots)
	p.register("psline", parseLine)
	p.register("psline*", parseLine)
	p.register("pspolygon", parsePolygon)
	p.register("pspolygon*", parsePolygon)
	p.register("psaxes", parseAxes)
	p.register("psaxes*", parseAxes)
	p.register("psgrid", parseGrid)
	p.register("psplot", parsePlot)
	p.register("psplot*", parsePlot)
	p.register("rput", parseRput)
	p.register("rput*", parseRput)
	p.register("psset", parsePsset)
	p.register("newrgbcolor", parseNewRGBColor)
	p.register("definecolor", parseDefineColor)
	p.register("begin", parseBegin)
	p.register("end", parseEnd)
	return p
}

func (p *Parser) register(name string, h macroHandler) { p.handlers[name] = h }

// Parse is a convenience wrapper around NewParser(cfg).Parse(src).
func Parse(src string, cfg Config) Result {
	return NewParser(cfg).Parse(src)
}

// Parse reads every macro of src. Errors are handled according to the
// recovery strategy; the returned drawing holds the shapes of every macro
// parsed before a fatal error.
func (p *Parser) Parse(src string) Result {
	run := &run{
		parser:    p,
		log:       &recovery.Log{},
		colors:    make(map[string]shape.Color),
		scripting: p.cfg.Scripting,
	}
	if run.scripting == nil {
		run.scripting = scripting.NewEngine()
	}
	root := &frame{
		run:      run,
		sc:       scanner.New(src, p.cfg.Scanner),
		defaults: params{},
	}
	d := shape.NewDrawing(root.parseAll()...)
	return Result{Drawing: d, Errors: *run.log}
}

// run is the state shared by the frames of one Parse call.
type run struct {
	parser    *Parser
	log       *recovery.Log
	colors    map[string]shape.Color
	scripting scripting.Evaluator
	failed    bool
}

// frame is the state of one macro sequence: the whole source or the body
// of an \rput. Offset is the drawing position of the frame origin.
type frame struct {
	run      *run
	sc       *scanner.Scanner
	base     int
	offset   coords.Point
	defaults params
	depth    int
}

func (f *frame) parseAll() []shape.Shape {
	var out []shape.Shape
	for !f.run.failed {
		tok, err := f.sc.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line, col := f.sc.Position()
			f.report(fmt.Errorf("%w: %v", ErrMalformedMacroArguments, err), scanner.Token{Line: line, Column: col, Pos: f.sc.Offset()})
			f.sc.SkipTo(scanner.TokenCommand)
			continue
		}
		if tok.Type != scanner.TokenCommand {
			continue
		}
		h, ok := f.run.parser.handlers[tok.Value]
		if !ok {
			f.report(fmt.Errorf("%w: \\%s", ErrUnknownMacro, tok.Value), tok)
			continue
		}
		shapes, err := h(f, tok)
		if err != nil {
			f.report(err, tok)
			f.sc.SkipTo(scanner.TokenCommand)
			continue
		}
		out = append(out, shapes...)
	}
	return out
}

func (f *frame) report(err error, tok scanner.Token) {
	loc := recovery.Location{
		Component: "pst",
		Line:      tok.Line,
		Column:    tok.Column,
		Offset:    f.base + tok.Pos,
		Name:      tok.Value,
	}
	cfg := f.run.parser.cfg
	switch cfg.Recovery.OnError(err, loc) {
	case recovery.ActionFail:
		f.run.log.Add(err, loc)
		f.run.failed = true
	case recovery.ActionWarn:
		f.run.log.Add(err, loc)
		cfg.Logger.Warn("macro skipped", locationFields(loc, err)...)
	default:
		cfg.Logger.Debug("macro ignored", locationFields(loc, err)...)
	}
}

func locationFields(loc recovery.Location, err error) []observability.Field {
	return []observability.Field{
		observability.String(observability.FieldMacro, loc.Name),
		observability.Int(observability.FieldLine, loc.Line),
		observability.Int(observability.FieldColumn, loc.Column),
		observability.Error("error", err),
	}
}

// child returns the frame of a body starting at line:col, translated to
// the drawing position origin.
func (f *frame) child(body string, line, col, base int, origin coords.Point) (*frame, error) {
	if f.depth+1 > f.run.parser.cfg.MaxNesting {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrMalformedMacroArguments, f.run.parser.cfg.MaxNesting)
	}
	return &frame{
		run:      f.run,
		sc:       scanner.NewAt(body, line, col, f.run.parser.cfg.Scanner),
		base:     base,
		offset:   origin,
		defaults: f.defaults.clone(),
		depth:    f.depth + 1,
	}, nil
}

// peekIs reports whether the next token has type t.
func (f *frame) peekIs(t scanner.TokenType) bool {
	tok, err := f.sc.Peek()
	return err == nil && tok.Type == t
}

// optGroup reads an optional group opened by a token of type t.
func (f *frame) optGroup(t scanner.TokenType, open, close byte) (string, bool, error) {
	if !f.peekIs(t) {
		return "", false, nil
	}
	if _, err := f.sc.Next(); err != nil {
		return "", false, err
	}
	raw, err := f.sc.ReadGroup(open, close)
	if err != nil {
		return "", true, fmt.Errorf("%w: %v", ErrMalformedMacroArguments, err)
	}
	return raw, true, nil
}

func (f *frame) braceGroup() (string, error) {
	raw, ok, err := f.optGroup(scanner.TokenLBrace, '{', '}')
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: missing {argument}", ErrMalformedMacroArguments)
	}
	return raw, nil
}

// params reads the optional [key=value] argument and returns it merged
// over the \psset defaults.
func (f *frame) params() (params, error) {
	raw, ok, err := f.optGroup(scanner.TokenLBracket, '[', ']')
	if err != nil {
		return nil, err
	}
	if !ok {
		return f.defaults.clone(), nil
	}
	local, err := parseParams(raw)
	if err != nil {
		return nil, err
	}
	return f.defaults.merge(local), nil
}

// arrows reads the optional {start-end} argument.
func (f *frame) arrows() (start, end shape.ArrowStyle, err error) {
	raw, ok, err := f.optGroup(scanner.TokenLBrace, '{', '}')
	if err != nil || !ok {
		return shape.ArrowNone, shape.ArrowNone, err
	}
	return parseArrows(raw)
}

func parseArrows(raw string) (start, end shape.ArrowStyle, err error) {
	s, e, ok := strings.Cut(strings.TrimSpace(raw), "-")
	if !ok {
		return 0, 0, fmt.Errorf("%w: arrows %q", ErrMalformedMacroArguments, raw)
	}
	start, ok1 := shape.ArrowStyleFromPST(strings.TrimSpace(s), true)
	end, ok2 := shape.ArrowStyleFromPST(strings.TrimSpace(e), false)
	if !ok1 || !ok2 {
		return 0, 0, fmt.Errorf("%w: arrows %q", ErrMalformedMacroArguments, raw)
	}
	return start, end, nil
}

// rawCoords reads up to max (x,y) arguments as plain numbers.
func (f *frame) rawCoords(max int) ([]coords.Point, error) {
	var pts []coords.Point
	for len(pts) < max {
		raw, ok, err := f.optGroup(scanner.TokenLParen, '(', ')')
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		p, err := parsePair(raw, 1, 1)
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// coords reads (x,y) arguments in centimetres scaled by the units of p.
func (f *frame) coords(p params, max int) ([]coords.Point, error) {
	ux, err := p.unit("x")
	if err != nil {
		return nil, err
	}
	uy, err := p.unit("y")
	if err != nil {
		return nil, err
	}
	var pts []coords.Point
	for len(pts) < max {
		raw, ok, err := f.optGroup(scanner.TokenLParen, '(', ')')
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		pt, err := parsePair(raw, ux, uy)
		if err != nil {
			return nil, err
		}
		pts = append(pts, pt)
	}
	return pts, nil
}

// parsePair reads "x,y". Unitless values are multiplied by the unit;
// values with a unit are converted to centimetres.
func parsePair(raw string, ux, uy float64) (coords.Point, error) {
	xs, ys, ok := strings.Cut(raw, ",")
	if !ok {
		return coords.Point{}, fmt.Errorf("%w: coordinate %q", ErrMalformedMacroArguments, raw)
	}
	x, err := coordinate(xs, ux)
	if err != nil {
		return coords.Point{}, err
	}
	y, err := coordinate(ys, uy)
	if err != nil {
		return coords.Point{}, err
	}
	return coords.Point{X: x, Y: y}, nil
}

func coordinate(s string, unit float64) (float64, error) {
	v, rest, err := numfmt.ParseNumber(s)
	if err != nil {
		return 0, fmt.Errorf("%w: coordinate %q", ErrMalformedMacroArguments, s)
	}
	if rest == "" {
		return v * unit, nil
	}
	cm, err := numfmt.ParseDim(s, numfmt.CM)
	if err != nil {
		return 0, fmt.Errorf("%w: coordinate %q: %v", ErrMalformedMacroArguments, s, err)
	}
	return cm, nil
}

// toDrawing maps a point in centimetres relative to the frame to the
// drawing.
func (f *frame) toDrawing(p coords.Point) coords.Point {
	return coords.Point{X: f.offset.X + p.X*shape.PPC, Y: f.offset.Y - p.Y*shape.PPC}
}

func (f *frame) color(name string) (shape.Color, error) {
	name = strings.TrimSpace(name)
	if c, ok := f.run.colors[name]; ok {
		return c, nil
	}
	if c, ok := shape.ColorByName(name); ok {
		return c, nil
	}
	return shape.Color{}, fmt.Errorf("%w: unknown colour %q", ErrMalformedMacroArguments, name)
}

// paramColor returns the colour named by key, if set.
func (f *frame) paramColor(p params, key string) (shape.Color, bool, error) {
	v, ok := p[key]
	if !ok {
		return shape.Color{}, false, nil
	}
	c, err := f.color(v)
	return c, true, err
}
