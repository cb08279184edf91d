package script

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned when running code on a closed session.
var ErrSessionClosed = errors.New("script session is closed")

// ScriptError wraps a failure raised while running a script.
type ScriptError struct {
	// Path is the script file or chunk name.
	Path string
	// Err is the underlying Lua or Go error.
	Err error
}

// Error implements the error interface.
func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScriptError) Unwrap() error {
	return e.Err
}
