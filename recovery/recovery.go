package recovery

import (
	"errors"
	"fmt"
	"strings"
)

// Strategy decides what a parser does after a recoverable error.
type Strategy interface {
	OnError(err error, location Location) Action
}

// Location points at the source of an error. Line and Column are 1-based
// and zero when unknown.
type Location struct {
	Component string
	Line      int
	Column    int
	Offset    int
	Name      string // macro or element name
}

func (l Location) String() string {
	var b strings.Builder
	b.WriteString(l.Component)
	if l.Line > 0 {
		fmt.Fprintf(&b, " %d:%d", l.Line, l.Column)
	}
	if l.Name != "" {
		fmt.Fprintf(&b, " (%s)", l.Name)
	}
	return b.String()
}

type Action int

const (
	ActionFail Action = iota
	ActionSkip
	ActionWarn
)

// Error is a parse error tied to its location.
type Error struct {
	Location Location
	Err      error
}

func (e *Error) Error() string { return fmt.Sprintf("[%s] %v", e.Location, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

// Log accumulates the errors of one parse call.
type Log []*Error

func (l *Log) Add(err error, loc Location) *Error {
	e := &Error{Location: loc, Err: err}
	*l = append(*l, e)
	return e
}

func (l Log) Empty() bool { return len(l) == 0 }

// Has reports whether any recorded error matches target.
func (l Log) Has(target error) bool {
	for _, e := range l {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}

// Err joins the recorded errors, or returns nil for an empty log.
func (l Log) Err() error {
	if len(l) == 0 {
		return nil
	}
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errors.Join(errs...)
}
