package plugin

import (
	"fmt"
	"slices"
	"sync"
)

// Registry is an in-process module system. Factories compiled into the
// binary are registered under a module path and resolved like symbols of a
// shared object.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]map[string]Factory
	open    map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]map[string]Factory),
		open:    make(map[string]int),
	}
}

// Register adds the factory for script name to module path.
func (r *Registry) Register(path, name string, f Factory) error {
	return r.RegisterSymbol(path, SymbolFor(name), f)
}

// RegisterSymbol adds a factory under an explicit symbol name.
func (r *Registry) RegisterSymbol(path, symbol string, f Factory) error {
	if f == nil {
		return fmt.Errorf("registry: nil factory for %s in %q", symbol, path)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	syms, ok := r.modules[path]
	if !ok {
		syms = make(map[string]Factory)
		r.modules[path] = syms
	}
	if _, dup := syms[symbol]; dup {
		return fmt.Errorf("registry: symbol %s already registered in %q", symbol, path)
	}
	syms[symbol] = f
	return nil
}

// MustRegister is like Register but panics on error. Intended for
// package-level registration of built-in scripts.
func (r *Registry) MustRegister(path, name string, f Factory) {
	if err := r.Register(path, name, f); err != nil {
		panic(err)
	}
}

// Paths returns the registered module paths, sorted.
func (r *Registry) Paths() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	paths := make([]string, 0, len(r.modules))
	for p := range r.modules {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Symbols returns the symbols registered under path, sorted.
func (r *Registry) Symbols(path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	syms := make([]string, 0, len(r.modules[path]))
	for s := range r.modules[path] {
		syms = append(syms, s)
	}
	slices.Sort(syms)
	return syms
}

// OpenCount returns how many modules for path are open.
func (r *Registry) OpenCount(path string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.open[path]
}

// Open implements ModuleSystem.
func (r *Registry) Open(path string) (Module, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.modules[path]; !ok {
		return nil, fmt.Errorf("registry: no module %q", path)
	}
	r.open[path]++
	return &registryModule{reg: r, path: path}, nil
}

type registryModule struct {
	reg    *Registry
	path   string
	closed bool
}

func (m *registryModule) Lookup(symbol string) (Factory, error) {
	m.reg.mu.RLock()
	defer m.reg.mu.RUnlock()

	if m.closed {
		return nil, ErrModuleClosed
	}
	f, ok := m.reg.modules[m.path][symbol]
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, ErrSymbolNotFound)
	}
	return f, nil
}

func (m *registryModule) Close() error {
	m.reg.mu.Lock()
	defer m.reg.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	m.reg.open[m.path]--
	return nil
}
