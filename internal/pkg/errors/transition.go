package errors

import "fmt"

// InvalidTransitionError reports a status edge that is not in the
// transition table, carrying both ends for diagnosability.
type InvalidTransitionError struct {
	Current   string
	Requested string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.Current, e.Requested)
}

func NewInvalidTransition(current, requested string) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Requested: requested}
}
