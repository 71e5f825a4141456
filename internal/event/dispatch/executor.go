package dispatch

import (
	"runtime/debug"
	"sync/atomic"
	"time"
)

// Result represents the outcome of one callback execution.
type Result struct {
	// Label identifies the callback (owner/event or task name).
	Label string

	// Panicked is true if the callback panicked.
	Panicked bool

	// PanicValue is the value passed to panic(), if Panicked is true.
	PanicValue any

	// PanicStack is the stack trace at the point of panic.
	PanicStack []byte

	// Duration is how long the callback took to execute.
	Duration time.Duration
}

// IsSuccess returns true if the callback returned normally.
func (r Result) IsSuccess() bool {
	return !r.Panicked
}

// PanicHandler is called when a callback panics.
// It receives the callback label, the panic value, and the stack trace.
type PanicHandler func(label string, panicValue any, stack []byte)

// Executor runs callbacks with panic recovery and timing.
type Executor struct {
	panicHandler PanicHandler

	executed atomic.Uint64
	panicked atomic.Uint64
}

// Option configures an Executor.
type Option func(*Executor)

// WithPanicHandler sets the panic handler for the executor.
func WithPanicHandler(h PanicHandler) Option {
	return func(e *Executor) {
		e.panicHandler = h
	}
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes fn and returns its result. A panic inside fn is recovered
// and reported; it never propagates to the caller.
func (e *Executor) Run(label string, fn func()) (result Result) {
	result.Label = label
	start := time.Now()
	e.executed.Add(1)

	defer func() {
		result.Duration = time.Since(start)

		if r := recover(); r != nil {
			stack := debug.Stack()
			result.Panicked = true
			result.PanicValue = r
			result.PanicStack = stack
			e.panicked.Add(1)

			if e.panicHandler != nil {
				func() {
					// A panicking panic handler must not crash the frame loop either.
					defer func() { _ = recover() }()
					e.panicHandler(label, r, stack)
				}()
			}
		}
	}()

	fn()
	return result
}

// Stats returns execution counters.
func (e *Executor) Stats() Stats {
	return Stats{
		Executed: e.executed.Load(),
		Panicked: e.panicked.Load(),
	}
}

// Stats holds executor counters.
type Stats struct {
	Executed uint64
	Panicked uint64
}
