package shape

// ArrowStyle is the decoration drawn at the end of a line.
type ArrowStyle int

const (
	ArrowNone ArrowStyle = iota
	ArrowLeft
	ArrowRight
	ArrowDoubleLeft
	ArrowDoubleRight
	ArrowBarEnd
	ArrowBarIn
	ArrowLeftSquareBracket
	ArrowRightSquareBracket
	ArrowLeftRoundBracket
	ArrowRightRoundBracket
	ArrowRoundEnd
	ArrowSquareEnd
	ArrowCircleEnd
	ArrowDiskEnd
	ArrowCircleIn
	ArrowDiskIn
)

var arrowStyleNames = [...]string{
	"none", "leftArrow", "rightArrow", "leftDbleArrow", "rightDbleArrow",
	"barEnd", "barIn", "leftSquareBracket", "rightSquareBracket",
	"leftRoundBracket", "rightRoundBracket", "roundEnd", "squareEnd",
	"circleEnd", "diskEnd", "circleIn", "diskIn",
}

// PSTricks tokens when the arrow sits at the start of the line ({X-})
// and at its end ({-X}).
var (
	arrowStartTokens = [...]string{
		"", "<", ">", "<<", ">>", "|", "|*", "[", "]", "(", ")", "c", "C", "o", "*", "oo", "**",
	}
	arrowEndTokens = [...]string{
		"", ">", "<", ">>", "<<", "|", "|*", "]", "[", ")", "(", "c", "C", "o", "*", "oo", "**",
	}
)

func (s ArrowStyle) String() string { return token(arrowStyleNames[:], int(s)) }

func ParseArrowStyle(s string) (ArrowStyle, bool) {
	return parseToken[ArrowStyle](arrowStyleNames[:], s)
}

// PSTToken returns the PSTricks token of s at the start or end of a line.
func (s ArrowStyle) PSTToken(atStart bool) string {
	if atStart {
		return token(arrowStartTokens[:], int(s))
	}
	return token(arrowEndTokens[:], int(s))
}

// ArrowStyleFromPST maps a PSTricks token back to a style.
func ArrowStyleFromPST(tok string, atStart bool) (ArrowStyle, bool) {
	if tok == "" {
		return ArrowNone, true
	}
	if atStart {
		return parseToken[ArrowStyle](arrowStartTokens[:], tok)
	}
	return parseToken[ArrowStyle](arrowEndTokens[:], tok)
}

// IsBar reports styles sized by tbarsize.
func (s ArrowStyle) IsBar() bool {
	switch s {
	case ArrowBarEnd, ArrowBarIn, ArrowLeftSquareBracket, ArrowRightSquareBracket,
		ArrowLeftRoundBracket, ArrowRightRoundBracket:
		return true
	}
	return false
}

// IsArrow reports the pointed styles sized by arrowsize.
func (s ArrowStyle) IsArrow() bool {
	switch s {
	case ArrowLeft, ArrowRight, ArrowDoubleLeft, ArrowDoubleRight:
		return true
	}
	return false
}

// IsCircle reports styles sized by dotsize.
func (s ArrowStyle) IsCircle() bool {
	switch s {
	case ArrowCircleEnd, ArrowDiskEnd, ArrowCircleIn, ArrowDiskIn:
		return true
	}
	return false
}

// ArrowRole tells which end of its owner an arrow decorates.
type ArrowRole int

const (
	RoleStart ArrowRole = iota
	RoleEnd
	RoleYNear
	RoleXNear
	RoleYFar
	RoleXFar
)

// Default PSTricks arrow parameters. Dimensions are in pixels.
var (
	DefaultArrowSizeDim = PtToPx(2)
	DefaultTBarSizeDim  = PtToPx(2)
	DefaultDotSizeDim   = PtToPx(0.5)
)

const (
	DefaultArrowSizeNum    = 3.0
	DefaultArrowLength     = 1.4
	DefaultArrowInset      = 0.4
	DefaultTBarSizeNum     = 5.0
	DefaultBracketLength   = 0.15
	DefaultRBracketLength  = 0.15
	DefaultArrowDotSizeNum = 2.5
	arrowLengthLimit       = 1e3
)

// Arrow is the decoration at one end of an Arrowable shape.
type Arrow struct {
	role  ArrowRole
	style ArrowStyle

	sizeDim, sizeNum float64
	length, inset    float64
	tbarDim, tbarNum float64
	bracketLength    float64
	rbracketLength   float64
	dotDim, dotNum   float64
}

func NewArrow(role ArrowRole) *Arrow {
	return &Arrow{
		role:           role,
		sizeDim:        DefaultArrowSizeDim,
		sizeNum:        DefaultArrowSizeNum,
		length:         DefaultArrowLength,
		inset:          DefaultArrowInset,
		tbarDim:        DefaultTBarSizeDim,
		tbarNum:        DefaultTBarSizeNum,
		bracketLength:  DefaultBracketLength,
		rbracketLength: DefaultRBracketLength,
		dotDim:         DefaultDotSizeDim,
		dotNum:         DefaultArrowDotSizeNum,
	}
}

func (a *Arrow) Role() ArrowRole       { return a.role }
func (a *Arrow) Style() ArrowStyle     { return a.style }
func (a *Arrow) SetStyle(s ArrowStyle) { a.style = s }
func (a *Arrow) HasStyle() bool        { return a.style != ArrowNone }

// ArrowSize returns arrowsize as a dimension (px) and a linewidth factor.
func (a *Arrow) ArrowSize() (dim, num float64) { return a.sizeDim, a.sizeNum }
func (a *Arrow) SetArrowSize(dim, num float64) {
	if validNonNeg(dim) && validNonNeg(num) {
		a.sizeDim, a.sizeNum = dim, num
	}
}

func (a *Arrow) ArrowLength() float64 { return a.length }
func (a *Arrow) SetArrowLength(v float64) {
	if validNonNeg(v) && v < arrowLengthLimit {
		a.length = v
	}
}

func (a *Arrow) ArrowInset() float64 { return a.inset }
func (a *Arrow) SetArrowInset(v float64) {
	if validNonNeg(v) && v < 1 {
		a.inset = v
	}
}

func (a *Arrow) TBarSize() (dim, num float64) { return a.tbarDim, a.tbarNum }
func (a *Arrow) SetTBarSize(dim, num float64) {
	if validNonNeg(dim) && validNonNeg(num) {
		a.tbarDim, a.tbarNum = dim, num
	}
}

func (a *Arrow) BracketLength() float64 { return a.bracketLength }
func (a *Arrow) SetBracketLength(v float64) {
	if validNonNeg(v) {
		a.bracketLength = v
	}
}

func (a *Arrow) RBracketLength() float64 { return a.rbracketLength }
func (a *Arrow) SetRBracketLength(v float64) {
	if validNonNeg(v) {
		a.rbracketLength = v
	}
}

func (a *Arrow) DotSize() (dim, num float64) { return a.dotDim, a.dotNum }
func (a *Arrow) SetDotSize(dim, num float64) {
	if validNonNeg(dim) && validNonNeg(num) {
		a.dotDim, a.dotNum = dim, num
	}
}

// CopyParams copies every parameter but the role and style.
func (a *Arrow) CopyParams(o *Arrow) {
	role, style := a.role, a.style
	*a = *o
	a.role, a.style = role, style
}

func validNonNeg(v float64) bool { return v >= 0 && !isBad(v) }

// arrowSet is the arrow storage of Arrowable shapes.
type arrowSet struct {
	arrows []*Arrow
}

func newArrowSet(roles ...ArrowRole) arrowSet {
	set := arrowSet{arrows: make([]*Arrow, len(roles))}
	for i, r := range roles {
		set.arrows[i] = NewArrow(r)
	}
	return set
}

func (s *arrowSet) Arrows() []*Arrow { return s.arrows }

// ArrowAt returns the arrow at index i; -1 designates the last one.
func (s *arrowSet) ArrowAt(i int) *Arrow {
	if i == -1 {
		i = len(s.arrows) - 1
	}
	if i < 0 || i >= len(s.arrows) {
		return nil
	}
	return s.arrows[i]
}

func (s *arrowSet) SetArrowStyle(i int, st ArrowStyle) {
	if a := s.ArrowAt(i); a != nil {
		a.SetStyle(st)
	}
}

// HasArrows reports whether any arrow is styled.
func (s *arrowSet) HasArrows() bool {
	for _, a := range s.arrows {
		if a.HasStyle() {
			return true
		}
	}
	return false
}
