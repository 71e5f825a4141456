package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/dshills/demon/internal/config"
	"github.com/dshills/demon/internal/plugin"
)

// Options configures an Application.
type Options struct {
	// Settings are the resolved file, environment and flag settings.
	Settings config.Settings

	// PanelLines caps the UI panel per render pass.
	PanelLines int
}

// DefaultOptions returns options built from config.DefaultSettings.
func DefaultOptions() Options {
	return Options{
		Settings:   config.DefaultSettings(),
		PanelLines: DefaultPanelLines,
	}
}

// Option configures an Application at construction.
type Option func(*Application)

// WithLogger sets the base logger.
func WithLogger(l zerolog.Logger) Option {
	return func(app *Application) {
		app.logger = l
	}
}

// WithRegistry sets the in-process script registry used for module paths
// without a handled extension.
func WithRegistry(r *plugin.Registry) Option {
	return func(app *Application) {
		app.scripts = r
	}
}

// WithModuleSystem routes module paths ending in ext to sys, replacing
// the default system for that extension.
func WithModuleSystem(ext string, sys plugin.ModuleSystem) Option {
	return func(app *Application) {
		app.systems[ext] = sys
	}
}

// WithMetricsRegistry sets the Prometheus registry the collectors are
// registered on.
func WithMetricsRegistry(reg *prometheus.Registry) Option {
	return func(app *Application) {
		app.promReg = reg
	}
}

// WithKV supplies the key/value settings instead of reading
// Settings.ConfigFile.
func WithKV(kv map[string]string) Option {
	return func(app *Application) {
		app.kv = kv
	}
}
