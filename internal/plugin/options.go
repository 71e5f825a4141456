package plugin

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLogger sets the loader logger.
func WithLogger(l zerolog.Logger) LoaderOption {
	return func(ld *Loader) {
		ld.logger = l
	}
}

// WithMetrics attaches loader metrics.
func WithMetrics(m *Metrics) LoaderOption {
	return func(ld *Loader) {
		ld.metrics = m
	}
}

// WithTracerProvider sets the provider for load and unload spans. The
// global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) LoaderOption {
	return func(ld *Loader) {
		if tp != nil {
			ld.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithName labels the loader in logs, spans and metrics.
func WithName(name string) LoaderOption {
	return func(ld *Loader) {
		ld.name = name
	}
}
