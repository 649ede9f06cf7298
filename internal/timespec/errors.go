package timespec

import "fmt"

// ErrorKind classifies a ParseError.
type ErrorKind int

const (
	NotInteger ErrorKind = iota
	OutOfRange
	Inverted
	ZeroStep
)

// ParseError reports the token that made a specification invalid together
// with the range the field accepts.
type ParseError struct {
	Kind  ErrorKind
	Token string
	Min   int
	Max   int
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case OutOfRange:
		return fmt.Sprintf("number '%s' is not in range '%d..%d'", e.Token, e.Min, e.Max)
	case Inverted:
		return fmt.Sprintf("interval '%s' is inverted", e.Token)
	case ZeroStep:
		return fmt.Sprintf("step '%s' must be positive", e.Token)
	default:
		return fmt.Sprintf("%s is not an integer", e.Token)
	}
}

// MissingSeparatorError is returned by ParseEvent when the spec is not of
// the form hour:minute.
type MissingSeparatorError struct {
	Spec string
}

func (e *MissingSeparatorError) Error() string {
	return fmt.Sprintf("schedule %q: expected hour:minute", e.Spec)
}
