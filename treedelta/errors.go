package treedelta

import "fmt"

// TrackerError is the error taxonomy for this package, following the
// teacher's DOMError shape: a named kind plus a message, with
// constructors per kind rather than distinct error types.
type TrackerError struct {
	Kind    string
	Message string
}

func (e *TrackerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// ErrInvariantViolation marks a failure of the debug self-check: should
// be impossible, always indicates a bug in the engine itself.
func ErrInvariantViolation(message string) *TrackerError {
	return &TrackerError{Kind: "InvariantViolation", Message: message}
}

// ErrAmbiguousRange marks a Range() call with no root whose
// contributions span more than one root tree.
func ErrAmbiguousRange(message string) *TrackerError {
	return &TrackerError{Kind: "AmbiguousRange", Message: message}
}
