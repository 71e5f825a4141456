package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call exceeds the timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrBadInstance is returned when a factory does not return a table.
	ErrBadInstance = errors.New("lua factory did not return an instance table")
)
