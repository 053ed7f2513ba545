package timer

import "errors"

// ErrInvalidTransition is returned when an operation is not valid in the
// machine's current state.
var ErrInvalidTransition = errors.New("invalid transition")

var (
	errFutureStart  = errors.New("a session cannot start in the future")
	errZeroStart    = errors.New("start time is required")
	errInvalidHands = errors.New("hands played must be a whole number of at least 0")
)
