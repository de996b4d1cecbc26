package pst

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/wudi/texfig/numfmt"
	"github.com/wudi/texfig/shape"
)

// param is one key=value pair of an optional argument.
type param struct {
	key, value string
}

// paramList builds the [key=value,...] argument of a generated macro.
type paramList struct {
	items []param
	cols  *colorDefs
}

func (l *paramList) add(key, value string) { l.items = append(l.items, param{key, value}) }

func (l *paramList) num(key string, v float64)       { l.add(key, numfmt.Cut(v)) }
func (l *paramList) cutFloat(key string, v float64)  { l.add(key, numfmt.CutFloat(v)) }
func (l *paramList) integer(key string, v int)       { l.add(key, strconv.Itoa(v)) }
func (l *paramList) flag(key string, v bool)         { l.add(key, strconv.FormatBool(v)) }
func (l *paramList) color(key string, c shape.Color) { l.add(key, l.cols.name(c)) }

// dimFactor writes the "dim num" pair of arrowsize-like parameters.
func (l *paramList) dimFactor(key string, dimPx, num float64) {
	l.add(key, numfmt.Cut(dimPx/shape.PPC)+"cm "+numfmt.CutFloat(num))
}

func (l *paramList) String() string {
	if len(l.items) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range l.items {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(p.value)
	}
	b.WriteByte(']')
	return b.String()
}

// params holds parsed parameters; later keys override earlier ones.
type params map[string]string

func (p params) clone() params {
	out := make(params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func (p params) merge(o params) params {
	out := p.clone()
	for k, v := range o {
		out[k] = v
	}
	return out
}

// parseParams splits "k=v, k2={a,b}" at top-level commas.
func parseParams(raw string) (params, error) {
	out := params{}
	for _, item := range splitTopLevel(raw, ',') {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		k, v, ok := strings.Cut(item, "=")
		k = strings.TrimSpace(k)
		if k == "" {
			return nil, fmt.Errorf("%w: empty key in %q", ErrMalformedMacroArguments, item)
		}
		if !ok {
			// A bare key is a boolean switch.
			v = "true"
		}
		v = strings.TrimSpace(v)
		if strings.HasPrefix(v, "{") && strings.HasSuffix(v, "}") {
			v = strings.TrimSpace(v[1 : len(v)-1])
		}
		out[k] = v
	}
	return out, nil
}

func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func malformed(key, value string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrMalformedMacroArguments, key, value, err)
	}
	return fmt.Errorf("%w: %s=%q", ErrMalformedMacroArguments, key, value)
}

// number returns a plain number.
func (p params) number(key string) (float64, bool, error) {
	v, ok := p[key]
	if !ok {
		return 0, false, nil
	}
	f, rest, err := numfmt.ParseNumber(v)
	if err != nil || rest != "" {
		return 0, true, malformed(key, v, err)
	}
	return f, true, nil
}

func (p params) integer(key string) (int, bool, error) {
	f, ok, err := p.number(key)
	if !ok || err != nil {
		return 0, ok, err
	}
	if f != math.Trunc(f) {
		return 0, true, malformed(key, p[key], nil)
	}
	return int(f), true, nil
}

// dim returns a dimension in centimetres; unitless values are in cm.
func (p params) dim(key string) (float64, bool, error) {
	v, ok := p[key]
	if !ok {
		return 0, false, nil
	}
	cm, err := numfmt.ParseDim(v, numfmt.CM)
	if err != nil {
		return 0, true, malformed(key, v, err)
	}
	return cm, true, nil
}

// dimPx returns a dimension in pixels.
func (p params) dimPx(key string) (float64, bool, error) {
	cm, ok, err := p.dim(key)
	return cm * shape.PPC, ok, err
}

// dimFactor parses "dim [num]" values such as arrowsize=2pt 3.
func (p params) dimFactor(key string) (dimPx, num float64, ok bool, err error) {
	v, ok := p[key]
	if !ok {
		return 0, 0, false, nil
	}
	fields := strings.Fields(v)
	if len(fields) == 0 || len(fields) > 2 {
		return 0, 0, true, malformed(key, v, nil)
	}
	cm, err := numfmt.ParseDim(fields[0], numfmt.CM)
	if err != nil {
		return 0, 0, true, malformed(key, v, err)
	}
	if len(fields) == 2 {
		if num, err = strconv.ParseFloat(fields[1], 64); err != nil {
			return 0, 0, true, malformed(key, v, err)
		}
	}
	return cm * shape.PPC, num, true, nil
}

func (p params) boolean(key string) (bool, bool, error) {
	v, ok := p[key]
	if !ok {
		return false, false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, true, malformed(key, v, err)
	}
	return b, true, nil
}

// unit returns the coordinate scale of an axis in centimetres.
func (p params) unit(axis string) (float64, error) {
	u := 1.0
	if v, ok, err := p.dim("unit"); err != nil {
		return 0, err
	} else if ok {
		u = v
	}
	if v, ok, err := p.dim(axis + "unit"); err != nil {
		return 0, err
	} else if ok {
		u = v
	}
	if u <= 0 {
		return 0, malformed(axis+"unit", fmt.Sprint(u), nil)
	}
	return u, nil
}
