// Package app provides the Demon shell: the owned top-level object that
// wires the event bus, the task manager, the script loaders and the game
// viewport, and drives them one frame at a time.
package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrShutdown is returned by Frame after Shutdown.
	ErrShutdown = errors.New("application shut down")
)

// InitError represents a failure while building the application.
type InitError struct {
	Component string // Component that failed (e.g., "settings", "watcher")
	Err       error  // Underlying error
}

func (e *InitError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("init %s: %v", e.Component, e.Err)
	}
	return "init " + e.Component
}

func (e *InitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
