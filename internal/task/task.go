package task

import (
	"fmt"
	"time"
)

// Status is returned by a hook to tell the manager whether to keep it.
type Status int

const (
	// Cont keeps the task registered.
	Cont Status = iota
	// Done removes the task after this run.
	Done
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case Cont:
		return "cont"
	case Done:
		return "done"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Frame describes the tick a hook runs in.
type Frame struct {
	// Index is the frame counter, starting at 1.
	Index uint64

	// DT is the time since the previous frame in seconds.
	DT float64

	// Time is the wall clock time the frame started.
	Time time.Time
}

// Func is a per-frame hook.
type Func func(f Frame) Status

// Task is a named per-frame hook.
type Task struct {
	// Name identifies the task. Names are unique within a manager.
	Name string

	// Owner groups tasks for RemoveOwner. Scripts use their own name.
	Owner string

	// Sort orders tasks; lower runs first.
	Sort int

	// Priority breaks ties between equal Sort values; higher runs first.
	Priority int

	// Delay is the number of Poll calls to skip before the first run.
	Delay int

	// Fn is the hook.
	Fn Func
}

// Validate checks that the task can be scheduled.
func (t Task) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidTask)
	}
	if t.Fn == nil {
		return fmt.Errorf("%w: task %q has no func", ErrInvalidTask, t.Name)
	}
	if t.Delay < 0 {
		return fmt.Errorf("%w: task %q has negative delay", ErrInvalidTask, t.Name)
	}
	return nil
}
