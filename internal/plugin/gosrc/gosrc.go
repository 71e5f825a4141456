// Package gosrc opens Go source files as script modules by interpreting them
// with yaegi.
//
// A module is a package main file importing the script API:
//
//	package main
//
//	import "github.com/dshills/demon/internal/script"
//
//	func create_instance_Counter(h *script.Host) *script.Funcs {
//		return &script.Funcs{Name: "Counter", Update: func(s *script.Script, dt float64) {}}
//	}
package gosrc

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"os"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/dshills/demon/internal/event"
	"github.com/dshills/demon/internal/plugin"
	"github.com/dshills/demon/internal/script"
)

// DefaultEvalTimeout bounds evaluation of a module file.
const DefaultEvalTimeout = 5 * time.Second

// ErrBadFactory is returned when a symbol is not a factory function.
var ErrBadFactory = errors.New("symbol is not func(*script.Host) *script.Funcs")

// AllowedPackages are the standard library packages modules may import.
var AllowedPackages = []string{
	"fmt/fmt",
	"math/math",
	"math/rand/rand",
	"sort/sort",
	"strconv/strconv",
	"strings/strings",
	"time/time",
}

// Exports is the script API visible to interpreted modules.
var Exports = interp.Exports{
	"github.com/dshills/demon/internal/script/script": {
		"Funcs":          reflect.ValueOf((*script.Funcs)(nil)),
		"Script":         reflect.ValueOf((*script.Script)(nil)),
		"Host":           reflect.ValueOf((*script.Host)(nil)),
		"Button":         reflect.ValueOf((*script.Button)(nil)),
		"ButtonMap":      reflect.ValueOf((*script.ButtonMap)(nil)),
		"UI":             reflect.ValueOf((*script.UI)(nil)),
		"TaskSuffix":     reflect.ValueOf(script.TaskSuffix),
		"ListenerSuffix": reflect.ValueOf(script.ListenerSuffix),
	},
	"github.com/dshills/demon/internal/event/event": {
		"GameModeEnabled":  reflect.ValueOf(event.GameModeEnabled),
		"GameModeDisabled": reflect.ValueOf(event.GameModeDisabled),
		"RenderUI":         reflect.ValueOf(event.RenderUI),
		"WindowEvent":      reflect.ValueOf(event.WindowEvent),
	},
}

// System interprets Go source files.
type System struct {
	timeout time.Duration
	logger  zerolog.Logger
}

// Option configures a System.
type Option func(*System)

// WithEvalTimeout sets the evaluation timeout. Zero disables it.
func WithEvalTimeout(d time.Duration) Option {
	return func(s *System) {
		s.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *System) {
		s.logger = l
	}
}

// NewSystem creates a yaegi module system.
func NewSystem(opts ...Option) *System {
	s := &System{timeout: DefaultEvalTimeout, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open implements plugin.ModuleSystem.
func (s *System) Open(path string) (plugin.Module, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	i := interp.New(interp.Options{})
	if err := i.Use(restrictedStdlib()); err != nil {
		return nil, err
	}
	if err := i.Use(Exports); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	if _, err := i.EvalWithContext(ctx, stripBuildDirectives(string(src))); err != nil {
		return nil, fmt.Errorf("eval %s: %w", path, err)
	}

	s.logger.Debug().Str("module", path).Msg("go source module evaluated")
	return &module{interp: i}, nil
}

func restrictedStdlib() interp.Exports {
	restricted := interp.Exports{}
	for _, key := range AllowedPackages {
		if syms, ok := stdlib.Symbols[key]; ok {
			restricted[key] = syms
		}
	}
	return restricted
}

// stripBuildDirectives drops leading build constraints, which are for the
// Go toolchain only.
func stripBuildDirectives(src string) string {
	lines := strings.Split(src, "\n")
	i := 0
	for i < len(lines) {
		l := strings.TrimSpace(lines[i])
		if strings.HasPrefix(l, "//go:build") || strings.HasPrefix(l, "// +build") || l == "" {
			i++
			continue
		}
		break
	}
	return strings.Join(lines[i:], "\n")
}

type module struct {
	mu     sync.Mutex
	interp *interp.Interpreter
}

func (m *module) Lookup(symbol string) (plugin.Factory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.interp == nil {
		return nil, plugin.ErrModuleClosed
	}
	// Only names are resolved; anything else would run as code.
	if !token.IsIdentifier(symbol) {
		return nil, fmt.Errorf("%q: %w", symbol, plugin.ErrSymbolNotFound)
	}
	v, err := m.interp.Eval(symbol)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, plugin.ErrSymbolNotFound)
	}
	if !v.IsValid() || !v.CanInterface() {
		return nil, fmt.Errorf("%s: %w", symbol, ErrBadFactory)
	}
	fn, ok := v.Interface().(func(*script.Host) *script.Funcs)
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, ErrBadFactory)
	}

	return func(h *script.Host) script.Behavior {
		f := fn(h)
		if f == nil {
			return nil
		}
		if f.Name == "" {
			f.Name = plugin.ScriptName(symbol)
		}
		return script.NewFuncBehavior(h, *f)
	}, nil
}

// Close drops the interpreter. Behaviors already created keep their
// closures alive until they are destroyed.
func (m *module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.interp = nil
	return nil
}
