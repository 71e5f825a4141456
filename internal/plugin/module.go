package plugin

import "github.com/dshills/demon/internal/script"

// Factory creates one behavior instance. Returning nil signals failure.
type Factory func(host *script.Host) script.Behavior

// Module is an opened module.
type Module interface {
	// Lookup resolves a factory symbol.
	Lookup(symbol string) (Factory, error)

	// Close releases the module. No factory from it may be called after.
	Close() error
}

// ModuleSystem opens modules by path.
type ModuleSystem interface {
	Open(path string) (Module, error)
}

// ModuleSystemFunc adapts a function to ModuleSystem.
type ModuleSystemFunc func(path string) (Module, error)

// Open calls f(path).
func (f ModuleSystemFunc) Open(path string) (Module, error) {
	return f(path)
}
