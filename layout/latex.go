package layout

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	treeblood "github.com/wyatt915/goldmark-treeblood"
	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var ErrNoMath = errors.New("no math in conversion output")

// MathML converts a LaTeX math expression (without delimiters) to a
// standalone <math> element.
func MathML(latex string) (string, error) {
	// Wrap LaTeX in display math delimiters for goldmark processing
	source := "$$" + latex + "$$"

	md := goldmark.New(
		goldmark.WithExtensions(
			treeblood.MathML(),
		),
	)

	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("convert latex: %w", err)
	}

	doc, err := html.Parse(&buf)
	if err != nil {
		return "", fmt.Errorf("parse mathml: %w", err)
	}
	n := findMath(doc)
	if n == nil {
		return "", ErrNoMath
	}
	var out strings.Builder
	if err := html.Render(&out, n); err != nil {
		return "", err
	}
	return out.String(), nil
}

func findMath(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && (n.DataAtom == atom.Math || n.Data == "math") {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := findMath(c); m != nil {
			return m
		}
	}
	return nil
}

// Segment is a run of label text, either plain or inline math.
type Segment struct {
	Text string
	Math bool
}

// SplitMath cuts a label at its $...$ delimiters. An unmatched "$" is
// kept as plain text.
func SplitMath(s string) []Segment {
	var segs []Segment
	for s != "" {
		i := strings.IndexByte(s, '$')
		if i < 0 {
			break
		}
		j := strings.IndexByte(s[i+1:], '$')
		if j < 0 {
			break
		}
		if i > 0 {
			segs = append(segs, Segment{Text: s[:i]})
		}
		segs = append(segs, Segment{Text: s[i+1 : i+1+j], Math: true})
		s = s[i+j+2:]
	}
	if s != "" {
		segs = append(segs, Segment{Text: s})
	}
	return segs
}

// HasMath reports whether s holds at least one $...$ segment.
func HasMath(s string) bool {
	for _, seg := range SplitMath(s) {
		if seg.Math {
			return true
		}
	}
	return false
}
