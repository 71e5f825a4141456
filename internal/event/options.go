package event

import "github.com/rs/zerolog"

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used to report recovered callback panics.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Bus) {
		b.logger = l
	}
}

// WithMetrics attaches bus metrics.
func WithMetrics(m *Metrics) Option {
	return func(b *Bus) {
		b.metrics = m
	}
}

// WithPointerClassifier overrides how DispatchFrameEvents recognises
// pointer-class events. A nil classifier is ignored.
func WithPointerClassifier(fn func(name string) bool) Option {
	return func(b *Bus) {
		if fn != nil {
			b.isPointer = fn
		}
	}
}
