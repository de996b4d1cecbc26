package recovery

import "errors"

// StrictStrategy implements a fail-fast recovery strategy.
type StrictStrategy struct{}

func NewStrictStrategy() *StrictStrategy {
	return &StrictStrategy{}
}

func (s *StrictStrategy) OnError(err error, location Location) Action {
	return ActionFail
}

// LenientStrategy keeps parsing after every error. Unknown input is
// skipped silently, anything else is reported as a warning.
type LenientStrategy struct {
	// Silent lists errors that are skipped without being reported.
	Silent []error
}

func NewLenientStrategy(silent ...error) *LenientStrategy {
	return &LenientStrategy{Silent: silent}
}

func (s *LenientStrategy) OnError(err error, location Location) Action {
	for _, target := range s.Silent {
		if errors.Is(err, target) {
			return ActionSkip
		}
	}
	return ActionWarn
}
