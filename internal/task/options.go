package task

import "github.com/rs/zerolog"

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used to report hook panics.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithMetrics attaches manager metrics.
func WithMetrics(mt *Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}
