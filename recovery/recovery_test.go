package recovery

import (
	"errors"
	"strings"
	"testing"
)

var errUnknown = errors.New("unknown")

func TestStrategies(t *testing.T) {
	loc := Location{Component: "pst", Line: 2, Column: 5, Name: "psfoo"}
	if got := NewStrictStrategy().OnError(errUnknown, loc); got != ActionFail {
		t.Fatalf("strict: expected ActionFail, got %v", got)
	}
	lenient := NewLenientStrategy(errUnknown)
	if got := lenient.OnError(errUnknown, loc); got != ActionSkip {
		t.Fatalf("lenient: expected ActionSkip for silent error, got %v", got)
	}
	if got := lenient.OnError(errors.New("other"), loc); got != ActionWarn {
		t.Fatalf("lenient: expected ActionWarn, got %v", got)
	}
}

func TestLog(t *testing.T) {
	var log Log
	if !log.Empty() || log.Err() != nil {
		t.Fatalf("new log should be empty")
	}
	e := log.Add(errUnknown, Location{Component: "svg", Name: "polyline"})
	if !errors.Is(e, errUnknown) {
		t.Fatalf("recorded error should unwrap to its cause")
	}
	log.Add(errors.New("second"), Location{Component: "svg", Line: 3, Column: 1})
	if len(log) != 2 || !log.Has(errUnknown) {
		t.Fatalf("unexpected log %v", log)
	}
	msg := log.Err().Error()
	if !strings.Contains(msg, "[svg (polyline)] unknown") || !strings.Contains(msg, "[svg 3:1] second") {
		t.Fatalf("unexpected joined message %q", msg)
	}
}
