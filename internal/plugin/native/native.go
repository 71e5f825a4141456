// Package native opens Go shared objects built with -buildmode=plugin as
// script modules.
//
// A module exports one function per script:
//
//	func create_instance_Player(h *script.Host) script.Behavior
//
// The Go runtime cannot unload shared objects, so Close only stops further
// lookups; reloading a changed file needs a new path.
package native

import (
	"fmt"
	goplugin "plugin"
	"sync"

	"github.com/dshills/demon/internal/plugin"
	"github.com/dshills/demon/internal/script"
)

// Opener loads a shared object. It is plugin.Open from the standard
// library unless replaced for tests.
type Opener func(path string) (Lookuper, error)

// Lookuper resolves exported symbols.
type Lookuper interface {
	Lookup(symbol string) (goplugin.Symbol, error)
}

// System opens shared objects.
type System struct {
	open Opener
}

// NewSystem creates a native module system backed by the standard plugin
// package.
func NewSystem() *System {
	return &System{open: func(path string) (Lookuper, error) {
		return goplugin.Open(path)
	}}
}

// NewSystemWithOpener creates a system using open to load modules.
func NewSystemWithOpener(open Opener) *System {
	return &System{open: open}
}

// Open implements plugin.ModuleSystem.
func (s *System) Open(path string) (plugin.Module, error) {
	lib, err := s.open(path)
	if err != nil {
		return nil, err
	}
	return &module{lib: lib}, nil
}

type module struct {
	mu     sync.Mutex
	lib    Lookuper
	closed bool
}

func (m *module) Lookup(symbol string) (plugin.Factory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, plugin.ErrModuleClosed
	}
	sym, err := m.lib.Lookup(symbol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, plugin.ErrSymbolNotFound)
	}
	f, err := asFactory(sym)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}
	return f, nil
}

func (m *module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// asFactory accepts exported functions and exported factory variables.
func asFactory(sym goplugin.Symbol) (plugin.Factory, error) {
	switch f := sym.(type) {
	case func(*script.Host) script.Behavior:
		return f, nil
	case plugin.Factory:
		return f, nil
	case *func(*script.Host) script.Behavior:
		return *f, nil
	case *plugin.Factory:
		return *f, nil
	default:
		return nil, fmt.Errorf("unsupported factory type %T", sym)
	}
}
