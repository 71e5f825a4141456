package plugin

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/dshills/demon/internal/script"
)

const tracerName = "github.com/dshills/demon/internal/plugin"

// instance is one live behavior and the symbol that created it.
type instance struct {
	name     string
	symbol   string
	behavior script.Behavior
}

// pass is the record of one successful Load call. The module outlives
// every instance in it.
type pass struct {
	id        string
	path      string
	symbols   []string
	host      *script.Host
	module    Module
	instances []*instance
	loadedAt  time.Time
}

// ModuleInfo describes a loaded module.
type ModuleInfo struct {
	Path     string
	PassID   string
	Symbols  []string
	Scripts  []string
	LoadedAt time.Time
}

// Loader creates behaviors from modules and owns them until UnloadAll.
type Loader struct {
	mu sync.RWMutex

	sys  ModuleSystem
	name string

	state State

	// Successful passes in load order.
	passes []*pass

	// Live instances by script name.
	byName map[string]*instance

	// Event handlers (protected by mu)
	handlers []EventHandler

	logger  zerolog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// NewLoader creates a loader opening modules through sys.
func NewLoader(sys ModuleSystem, opts ...LoaderOption) *Loader {
	l := &Loader{
		sys:    sys,
		name:   "default",
		byName: make(map[string]*instance),
		logger: zerolog.Nop(),
		tracer: otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.logger = l.logger.With().Str("loader", l.name).Logger()
	return l
}

// Name returns the loader label.
func (l *Loader) Name() string { return l.name }

// State returns the loader state.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Get returns the live instance named name, or ErrNotFound.
func (l *Loader) Get(name string) (script.Behavior, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	inst, ok := l.byName[name]
	if !ok {
		return nil, fmt.Errorf("script %q: %w", name, ErrNotFound)
	}
	return inst.behavior, nil
}

// Names returns the live script names, sorted.
func (l *Loader) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	names := make([]string, 0, len(l.byName))
	for n := range l.byName {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of live instances.
func (l *Loader) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.byName)
}

// Modules describes the loaded modules in load order.
func (l *Loader) Modules() []ModuleInfo {
	l.mu.RLock()
	defer l.mu.RUnlock()

	infos := make([]ModuleInfo, 0, len(l.passes))
	for _, p := range l.passes {
		info := ModuleInfo{
			Path:     p.path,
			PassID:   p.id,
			Symbols:  slices.Clone(p.symbols),
			LoadedAt: p.loadedAt,
		}
		for _, inst := range p.instances {
			info.Scripts = append(info.Scripts, inst.name)
		}
		infos = append(infos, info)
	}
	return infos
}

// Load opens the module at path, creates one instance per symbol with
// host, records the instances by name and starts them. Any failure rolls
// the whole pass back and leaves the loader as it was.
func (l *Loader) Load(ctx context.Context, symbols []string, path string, host *script.Host) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !l.begin(StateLoading) {
		return ErrLoaderBusy
	}

	symbols = uniqueSymbols(symbols)
	start := time.Now()
	_, span := l.tracer.Start(ctx, "plugin.Load", trace.WithAttributes(
		attribute.String("plugin.loader", l.name),
		attribute.String("plugin.path", path),
		attribute.StringSlice("plugin.symbols", symbols),
	))
	defer span.End()

	p, err := l.load(symbols, path, host)
	l.end()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.metrics.observeLoad(l.name, "error", time.Since(start).Seconds())
		l.logger.Error().
			Err(err).
			Str("module", path).
			Strs("missing", MissingSymbols(err)).
			Msg("script load failed")
		l.emit(LoaderEvent{Type: EventError, Path: path, Error: err})
		return err
	}

	l.metrics.observeLoad(l.name, "ok", time.Since(start).Seconds())
	l.metrics.setInstances(l.name, l.Len())
	if p == nil {
		return nil
	}

	scripts := passScripts(p)
	span.SetAttributes(attribute.String("plugin.pass", p.id), attribute.StringSlice("plugin.scripts", scripts))
	l.logger.Info().
		Str("module", path).
		Str("pass", p.id).
		Strs("scripts", scripts).
		Msg("scripts loaded")
	l.emit(LoaderEvent{Type: EventLoaded, Path: path, PassID: p.id, Scripts: scripts})
	return nil
}

// load runs the pass. It returns a nil pass when there was nothing to load.
func (l *Loader) load(symbols []string, path string, host *script.Host) (*pass, error) {
	mod, err := l.sys.Open(path)
	if err != nil {
		return nil, &ModuleLoadError{Path: path, Err: err}
	}

	if len(symbols) == 0 {
		if err := mod.Close(); err != nil {
			return nil, &ModuleLoadError{Path: path, Err: err}
		}
		return nil, nil
	}

	// Resolve every symbol before creating anything.
	factories := make([]Factory, len(symbols))
	var missing []string
	for i, sym := range symbols {
		f, err := mod.Lookup(sym)
		if err != nil || f == nil {
			missing = append(missing, sym)
			continue
		}
		factories[i] = f
	}
	if len(missing) > 0 {
		l.closeModule(path, mod)
		return nil, &SymbolResolutionError{Path: path, Missing: missing}
	}

	// Create one instance per symbol.
	created := make([]*instance, 0, len(symbols))
	for i, sym := range symbols {
		b, err := callFactory(factories[i], host)
		if err != nil || b == nil {
			l.rollback(path, mod, created)
			return nil, &InstanceCreationError{Path: path, Symbol: sym, Err: err}
		}
		created = append(created, &instance{symbol: sym, behavior: b})
	}

	for _, inst := range created {
		inst.name = inst.behavior.Name()
		if inst.name == "" {
			l.rollback(path, mod, created)
			return nil, &InstanceCreationError{Path: path, Symbol: inst.symbol, Err: errors.New("empty script name")}
		}
	}

	// Names must be unique within the pass and across the loader.
	l.mu.Lock()
	seen := make(map[string]bool, len(created))
	for _, inst := range created {
		if _, live := l.byName[inst.name]; live || seen[inst.name] {
			l.mu.Unlock()
			l.rollback(path, mod, created)
			return nil, &DuplicateScriptNameError{Path: path, Name: inst.name}
		}
		seen[inst.name] = true
	}

	p := &pass{
		id:        uuid.NewString(),
		path:      path,
		symbols:   symbols,
		host:      host,
		module:    mod,
		instances: created,
		loadedAt:  time.Now(),
	}
	slices.SortFunc(p.instances, func(a, b *instance) int {
		return cmp.Compare(a.name, b.name)
	})
	l.passes = append(l.passes, p)
	for _, inst := range p.instances {
		l.byName[inst.name] = inst
	}
	l.mu.Unlock()

	// Start in name order. Siblings are already retrievable with Get.
	for _, inst := range p.instances {
		if err := callStart(inst.behavior); err != nil {
			l.mu.Lock()
			l.passes = slices.DeleteFunc(l.passes, func(x *pass) bool { return x == p })
			for _, i := range p.instances {
				delete(l.byName, i.name)
			}
			l.mu.Unlock()

			l.rollback(path, mod, p.instances)
			return nil, &InstanceCreationError{Path: path, Symbol: inst.symbol, Err: err}
		}
	}
	return p, nil
}

// UnloadAll stops and destroys every instance, then closes every module.
// It is a no-op on an empty loader.
func (l *Loader) UnloadAll(ctx context.Context) error {
	if !l.begin(StateUnloading) {
		return ErrLoaderBusy
	}

	l.mu.Lock()
	passes := l.passes
	l.passes = nil
	l.byName = make(map[string]*instance)
	l.mu.Unlock()

	if len(passes) == 0 {
		l.end()
		return nil
	}

	_, span := l.tracer.Start(ctx, "plugin.UnloadAll", trace.WithAttributes(
		attribute.String("plugin.loader", l.name),
		attribute.Int("plugin.modules", len(passes)),
	))
	defer span.End()

	// Every instance goes before any module is closed.
	for i := len(passes) - 1; i >= 0; i-- {
		l.teardown(passes[i].instances)
	}

	var errs []error
	for i := len(passes) - 1; i >= 0; i-- {
		p := passes[i]
		if err := p.module.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close module %q: %w", p.path, err))
		}
		l.metrics.incUnload(l.name)
	}

	l.end()
	l.metrics.setInstances(l.name, 0)

	for _, p := range passes {
		scripts := passScripts(p)
		l.logger.Info().Str("module", p.path).Str("pass", p.id).Strs("scripts", scripts).Msg("scripts unloaded")
		l.emit(LoaderEvent{Type: EventUnloaded, Path: p.path, PassID: p.id, Scripts: scripts})
	}

	if err := errors.Join(errs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Reload unloads everything and replays every recorded load pass with its
// original symbols and host. Passes that fail to load again are reported
// in the joined error; the others stay loaded.
func (l *Loader) Reload(ctx context.Context) error {
	l.mu.RLock()
	busy := l.state.IsBusy()
	passes := slices.Clone(l.passes)
	l.mu.RUnlock()
	if busy {
		return ErrLoaderBusy
	}

	ctx, span := l.tracer.Start(ctx, "plugin.Reload", trace.WithAttributes(
		attribute.String("plugin.loader", l.name),
	))
	defer span.End()

	if err := l.UnloadAll(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("reload unload failed: %w", err)
	}

	var errs []error
	for _, p := range passes {
		if err := l.Load(ctx, p.symbols, p.path, p.host); err != nil {
			errs = append(errs, fmt.Errorf("reload %q: %w", p.path, err))
		}
	}

	l.emit(LoaderEvent{Type: EventReloaded, Scripts: l.Names()})

	if err := errors.Join(errs...); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// begin moves the loader into a busy state unless it already is in one.
func (l *Loader) begin(s State) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state.IsBusy() {
		return false
	}
	l.state = s
	return true
}

// end leaves the busy state.
func (l *Loader) end() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.passes) > 0 {
		l.state = StateLoaded
	} else {
		l.state = StateUnloaded
	}
}

// rollback tears down instances created by a failed pass and closes its
// module.
func (l *Loader) rollback(path string, mod Module, created []*instance) {
	l.teardown(created)
	l.closeModule(path, mod)
}

func (l *Loader) closeModule(path string, mod Module) {
	if err := mod.Close(); err != nil {
		l.logger.Warn().Err(err).Str("module", path).Msg("module close failed")
	}
}

// teardown stops then destroys instances in reverse order.
func (l *Loader) teardown(instances []*instance) {
	for i := len(instances) - 1; i >= 0; i-- {
		inst := instances[i]
		if err := guard(inst.behavior.Stop); err != nil {
			l.logger.Error().Err(err).Str("script", inst.name).Msg("script stop panicked")
		}
		if d, ok := inst.behavior.(script.Destroyer); ok {
			if err := guard(d.Destroy); err != nil {
				l.logger.Error().Err(err).Str("script", inst.name).Msg("script destroy panicked")
			}
		}
	}
}

func passScripts(p *pass) []string {
	names := make([]string, len(p.instances))
	for i, inst := range p.instances {
		names[i] = inst.name
	}
	return names
}

func callFactory(f Factory, host *script.Host) (b script.Behavior, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("factory panicked: %v", r)
		}
	}()
	return f(host), nil
}

func callStart(b script.Behavior) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("start panicked: %v", r)
		}
	}()
	return b.Start()
}

func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}
