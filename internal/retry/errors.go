package retry

import (
	"errors"
	"fmt"
)

// Errors returned by the retry package.
var (
	// ErrCancelled is matched by every error returned when an execution is
	// cancelled through its context.
	ErrCancelled = errors.New("retry cancelled")

	// ErrUnknownPolicy indicates a policy kind that FromConfig does not know.
	ErrUnknownPolicy = errors.New("unknown retry policy")
)

// CancelledError is returned when the context is done before the operation
// succeeds or retries are exhausted.
type CancelledError struct {
	// Attempts is the number of attempts that were started.
	Attempts int
	// LastErr is the error from the last attempt, if any.
	LastErr error
	// Cause is the context's cancellation cause.
	Cause error
}

// Error implements the error interface.
func (e *CancelledError) Error() string {
	msg := fmt.Sprintf("%v after %d attempt(s)", ErrCancelled, e.Attempts)
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.LastErr != nil {
		msg = fmt.Sprintf("%s (last error: %v)", msg, e.LastErr)
	}
	return msg
}

// Unwrap exposes ErrCancelled and the context cause to errors.Is.
// LastErr is not part of the chain.
func (e *CancelledError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCancelled}
	}
	return []error{ErrCancelled, e.Cause}
}
