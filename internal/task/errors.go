package task

import "errors"

// Task manager errors.
var (
	// ErrDuplicateTask is returned when a task name is already in use.
	ErrDuplicateTask = errors.New("task already exists")

	// ErrInvalidTask is returned when a task fails validation.
	ErrInvalidTask = errors.New("invalid task")
)
