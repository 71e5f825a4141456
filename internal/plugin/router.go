package plugin

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Router dispatches Open to a module system chosen by file extension.
type Router struct {
	mu       sync.RWMutex
	byExt    map[string]ModuleSystem
	fallback ModuleSystem
}

// NewRouter creates a router. Paths whose extension has no handler go to
// fallback, which may be nil.
func NewRouter(fallback ModuleSystem) *Router {
	return &Router{
		byExt:    make(map[string]ModuleSystem),
		fallback: fallback,
	}
}

// Handle routes paths ending in ext (for example ".lua") to sys.
func (r *Router) Handle(ext string, sys ModuleSystem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byExt[normalizeExt(ext)] = sys
}

// SystemFor returns the module system that would open path.
func (r *Router) SystemFor(path string) (ModuleSystem, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if sys, ok := r.byExt[normalizeExt(filepath.Ext(path))]; ok {
		return sys, true
	}
	return r.fallback, r.fallback != nil
}

// Open implements ModuleSystem.
func (r *Router) Open(path string) (Module, error) {
	sys, ok := r.SystemFor(path)
	if !ok {
		return nil, fmt.Errorf("%q: %w", path, ErrNoModuleSystem)
	}
	return sys.Open(path)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
