package fonts

import (
	"bytes"
	"fmt"
	"sync"
	"unicode"

	"github.com/go-text/typesetting/di"
	gofont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Extent is the size of a shaped line of text, in the unit of the font
// size it was measured with.
type Extent struct {
	Width   float64
	Ascent  float64
	Descent float64
}

func (e Extent) Height() float64 { return e.Ascent + e.Descent }

var (
	regularOnce sync.Once
	regular     *gofont.Face
	regularErr  error
)

// regularFace parses the Go regular font once.
func regularFace() (*gofont.Face, error) {
	regularOnce.Do(func() {
		regular, regularErr = gofont.ParseTTF(bytes.NewReader(goregular.TTF))
	})
	return regular, regularErr
}

// Measure shapes text with the Go regular face at size and returns its
// extent. Ascent and descent follow the usual 0.8/0.2 em split.
func Measure(text string, size float64) (Extent, error) {
	if text == "" || size <= 0 {
		return Extent{}, nil
	}
	face, err := regularFace()
	if err != nil {
		return Extent{}, fmt.Errorf("load regular face: %w", err)
	}

	runes := []rune(text)
	script := detectScript(runes)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: scriptDirection(script),
		Face:      face,
		Size:      fixed.Int26_6(size * 64),
		Script:    script,
		Language:  language.DefaultLanguage(),
	}
	output := (&shaping.HarfbuzzShaper{}).Shape(input)

	var width float64
	for _, g := range output.Glyphs {
		width += float64(g.XAdvance) / 64.0
	}
	return Extent{Width: width, Ascent: size * 0.8, Descent: size * 0.2}, nil
}

func scriptDirection(script language.Script) di.Direction {
	switch script {
	case language.Arabic, language.Hebrew:
		return di.DirectionRTL
	default:
		return di.DirectionLTR
	}
}

// detectScript returns the most frequent script among runes, Latin when
// none is recognised.
func detectScript(runes []rune) language.Script {
	counts := make(map[language.Script]int)
	best, bestCount := language.Latin, 0
	for _, r := range runes {
		s := scriptFromRune(r)
		if s == language.Unknown {
			continue
		}
		counts[s]++
		if counts[s] > bestCount {
			best, bestCount = s, counts[s]
		}
	}
	return best
}

func scriptFromRune(r rune) language.Script {
	switch {
	case unicode.Is(unicode.Latin, r):
		return language.Latin
	case unicode.Is(unicode.Greek, r):
		return language.Greek
	case unicode.Is(unicode.Cyrillic, r):
		return language.Cyrillic
	case unicode.Is(unicode.Arabic, r):
		return language.Arabic
	case unicode.Is(unicode.Hebrew, r):
		return language.Hebrew
	}
	return language.Unknown
}
