package document

import (
	"errors"
	"fmt"
)

// Errors returned by document operations.
var (
	// ErrUnknownAttribute indicates a format attribute name that is not recognized.
	ErrUnknownAttribute = errors.New("unknown format attribute")

	// ErrInvalidAttribute indicates a format attribute value that is out of range.
	ErrInvalidAttribute = errors.New("invalid format attribute value")

	// ErrInvalidSnapshot indicates encoded snapshot data that cannot be decoded.
	ErrInvalidSnapshot = errors.New("invalid snapshot data")
)

// AttributeError describes a failure to apply a format attribute.
type AttributeError struct {
	Key   string
	Value string
	Err   error
}

// Error implements the error interface.
func (e *AttributeError) Error() string {
	return fmt.Sprintf("format attribute %s=%q: %v", e.Key, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *AttributeError) Unwrap() error {
	return e.Err
}
