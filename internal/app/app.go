package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/dshills/demon/internal/config"
	"github.com/dshills/demon/internal/config/watcher"
	"github.com/dshills/demon/internal/event"
	"github.com/dshills/demon/internal/plugin"
	"github.com/dshills/demon/internal/plugin/gosrc"
	"github.com/dshills/demon/internal/plugin/lua"
	"github.com/dshills/demon/internal/plugin/native"
	"github.com/dshills/demon/internal/renderer/layout"
	"github.com/dshills/demon/internal/script"
	"github.com/dshills/demon/internal/task"
)

// Application is the Demon shell. Build it with New; it owns everything it
// creates and releases it in Shutdown. Frame, the game mode operations and
// Shutdown must be called from one goroutine.
type Application struct {
	opts     Options
	settings config.Settings
	logger   zerolog.Logger

	promReg *prometheus.Registry
	metrics *Metrics

	bus   *event.Bus
	tasks *task.Manager

	scripts *plugin.Registry
	systems map[string]plugin.ModuleSystem
	router  *plugin.Router
	editor  *plugin.Loader
	game    *plugin.Loader
	host    *script.Host
	kv      map[string]string

	view    *layout.View
	pointer *pointerState
	panel   *Panel
	uiCells layout.Cells

	watcher *watcher.Watcher

	// ctx is the context of the frame in progress; bus callbacks use it.
	ctx context.Context

	frame   uint64
	elapsed float64
	width   int
	height  int

	mu       sync.Mutex
	gameMode bool
	shutdown bool

	quit atomic.Bool
}

// New builds an application from opts. The key/value config is optional;
// a missing file is logged and the application starts with no entries.
// Editor scripts are loaded before New returns; a failed load is logged and
// leaves the editor loader empty.
func New(opts Options, options ...Option) (*Application, error) {
	app := &Application{
		opts:     opts,
		settings: opts.Settings,
		logger:   zerolog.Nop(),
		systems:  make(map[string]plugin.ModuleSystem),
		ctx:      context.Background(),
	}
	for _, opt := range options {
		opt(app)
	}

	if err := app.settings.Validate(); err != nil {
		return nil, &InitError{Component: "settings", Err: err}
	}
	if app.promReg == nil {
		app.promReg = prometheus.NewRegistry()
	}
	if app.scripts == nil {
		app.scripts = plugin.NewRegistry()
	}

	app.metrics = NewMetrics(app.promReg)
	app.bus = event.NewBus(
		event.WithLogger(WithComponent(app.logger, "event")),
		event.WithMetrics(event.NewMetrics(app.promReg)),
	)
	app.tasks = task.NewManager(
		task.WithLogger(WithComponent(app.logger, "task")),
		task.WithMetrics(task.NewMetrics(app.promReg)),
	)

	style, err := layout.ParseStyle(app.settings.GameViewStyle)
	if err != nil {
		return nil, &InitError{Component: "layout", Err: err}
	}
	app.view = layout.NewView(style, app.settings.GameViewSize,
		layout.WithAnimation(app.settings.ViewAnimationSeconds))
	app.pointer = newPointerState(app.view.Rect)
	app.panel = NewPanel(opts.PanelLines)

	app.router = app.buildRouter()
	loaderLog := WithComponent(app.logger, "plugin")
	pluginMetrics := plugin.NewMetrics(app.promReg)
	app.editor = plugin.NewLoader(app.router,
		plugin.WithName("editor"),
		plugin.WithLogger(loaderLog),
		plugin.WithMetrics(pluginMetrics),
	)
	app.game = plugin.NewLoader(app.router,
		plugin.WithName("game"),
		plugin.WithLogger(loaderLog),
		plugin.WithMetrics(pluginMetrics),
	)

	if app.kv == nil {
		app.kv = app.loadKV()
	}
	app.host = &script.Host{
		Bus:      app.bus,
		Tasks:    app.tasks,
		Pointer:  app.pointer,
		UI:       app.panel,
		Logger:   WithComponent(app.logger, "script"),
		Settings: app.kv,
		Lookup:   app.lookup,
	}

	app.bindEngineKeys()
	app.updateGameView()

	if app.settings.Watch {
		app.startWatcher()
	}

	if err := app.loadEditorScripts(app.ctx); err != nil {
		app.logger.Warn().Err(err).Msg("editor scripts not loaded")
	}
	return app, nil
}

// buildRouter maps file extensions to module systems. Paths with any other
// extension, or none, resolve against the script registry.
func (app *Application) buildRouter() *plugin.Router {
	r := plugin.NewRouter(app.scripts)
	r.Handle(".lua", lua.NewSystem(
		lua.WithLogger(WithComponent(app.logger, "lua")),
		lua.WithStateOptions(lua.WithExecutionTimeout(
			time.Duration(app.settings.LuaTimeoutMillis)*time.Millisecond)),
	))
	r.Handle(".go", gosrc.NewSystem(gosrc.WithLogger(WithComponent(app.logger, "gosrc"))))
	r.Handle(".so", native.NewSystem())
	for ext, sys := range app.systems {
		r.Handle(ext, sys)
	}
	return r
}

func (app *Application) loadKV() map[string]string {
	kv, err := config.LoadKV(app.settings.ConfigFile)
	if err != nil {
		app.logger.Warn().Err(err).Str("path", app.settings.ConfigFile).Msg("configuration file unavailable")
	}
	return kv
}

// startWatcher watches the symbol list and the script files. Failures are
// logged; the application runs without hot reload.
func (app *Application) startWatcher() {
	w, err := watcher.New(watcher.WithLogger(WithComponent(app.logger, "watcher")))
	if err != nil {
		app.logger.Warn().Err(err).Msg("file watcher unavailable")
		return
	}
	paths := []string{app.settings.SymbolFile}
	for _, m := range []string{app.settings.EditorModule, app.settings.GameModule} {
		if filepath.Ext(m) != "" {
			paths = append(paths, app.modulePath(m))
		}
	}
	for _, p := range paths {
		if err := w.Watch(p); err != nil {
			app.logger.Warn().Err(err).Str("path", p).Msg("cannot watch file")
		}
	}
	w.Start()
	app.watcher = w
}

// modulePath resolves a script file against the project_dir setting.
// Registry module names are returned unchanged.
func (app *Application) modulePath(path string) string {
	if filepath.Ext(path) == "" || filepath.IsAbs(path) {
		return path
	}
	if dir := app.kv["project_dir"]; dir != "" {
		return filepath.Join(dir, path)
	}
	return path
}

// symbols reads the symbol list. When the file is unavailable the symbols
// registered for a registry module are used instead.
func (app *Application) symbols(module string) ([]string, error) {
	syms, err := config.LoadSymbols(app.settings.SymbolFile)
	if err == nil {
		return syms, nil
	}
	if reg := app.scripts.Symbols(module); len(reg) > 0 {
		app.logger.Debug().Str("module", module).Msg("symbol file unavailable, using registered symbols")
		return reg, nil
	}
	return nil, err
}

func (app *Application) loadEditorScripts(ctx context.Context) error {
	module := app.modulePath(app.settings.EditorModule)
	syms, err := app.symbols(module)
	if err != nil {
		return err
	}
	syms = plugin.FilterSymbols(syms, app.settings.EditorPrefix)
	if len(syms) == 0 {
		return nil
	}
	return app.editor.Load(ctx, syms, module, app.host)
}

func (app *Application) loadGameScripts(ctx context.Context) error {
	module := app.modulePath(app.settings.GameModule)
	syms, err := app.symbols(module)
	if err != nil {
		return err
	}
	syms = plugin.ExcludeSymbols(syms, app.settings.EditorPrefix)
	if len(syms) == 0 {
		return nil
	}
	return app.game.Load(ctx, syms, module, app.host)
}

// lookup finds a live script by name, game scripts first.
func (app *Application) lookup(name string) (script.Behavior, error) {
	if b, err := app.game.Get(name); err == nil {
		return b, nil
	}
	return app.editor.Get(name)
}

// Find returns the live script named name.
func (app *Application) Find(name string) (script.Behavior, error) {
	return app.lookup(name)
}

// ReloadScripts unloads both loaders and loads them again from a fresh
// read of the symbol list. Game scripts are loaded only in game mode.
func (app *Application) ReloadScripts(ctx context.Context) error {
	var errs []error
	if err := app.editor.UnloadAll(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := app.loadEditorScripts(ctx); err != nil {
		errs = append(errs, err)
	}
	if app.GameMode() {
		if err := app.game.UnloadAll(ctx); err != nil {
			errs = append(errs, err)
		}
		if err := app.loadGameScripts(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		app.metrics.incReload("error")
		app.logger.Error().Err(err).Msg("script reload failed")
		return err
	}
	app.metrics.incReload("ok")
	app.logger.Info().Strs("editor", app.editor.Names()).Strs("game", app.game.Names()).Msg("scripts reloaded")
	return nil
}

// RequestQuit makes the current or next Frame return ErrQuit.
func (app *Application) RequestQuit() {
	if !app.quit.Swap(true) {
		app.logger.Info().Msg("quit requested")
	}
}

// QuitRequested reports whether RequestQuit was called.
func (app *Application) QuitRequested() bool {
	return app.quit.Load()
}

// GameMode reports whether game mode is enabled.
func (app *Application) GameMode() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.gameMode
}

// Bus returns the event bus.
func (app *Application) Bus() *event.Bus { return app.bus }

// Tasks returns the task manager.
func (app *Application) Tasks() *task.Manager { return app.tasks }

// Host returns the context handed to script factories.
func (app *Application) Host() *script.Host { return app.host }

// EditorLoader returns the loader holding the editor scripts.
func (app *Application) EditorLoader() *plugin.Loader { return app.editor }

// GameLoader returns the loader holding the game scripts.
func (app *Application) GameLoader() *plugin.Loader { return app.game }

// View returns the game viewport layout.
func (app *Application) View() *layout.View { return app.view }

// Panel returns the UI panel.
func (app *Application) Panel() *Panel { return app.panel }

// Logger returns the base logger.
func (app *Application) Logger() zerolog.Logger { return app.logger }

// Registry returns the Prometheus registry holding every collector.
func (app *Application) Registry() *prometheus.Registry { return app.promReg }

// Settings returns the settings the application was built with.
func (app *Application) Settings() config.Settings { return app.settings }

// KV returns the key/value configuration entries.
func (app *Application) KV() map[string]string { return app.kv }

// FrameIndex returns the number of frames run.
func (app *Application) FrameIndex() uint64 { return app.frame }

// Elapsed returns the sum of frame deltas in seconds.
func (app *Application) Elapsed() float64 { return app.elapsed }

// WindowSize returns the size last reported by a window event.
func (app *Application) WindowSize() (int, int) { return app.width, app.height }

// Shutdown exits game mode, unloads every script and clears the bus and
// the task manager. It is idempotent.
func (app *Application) Shutdown(ctx context.Context) error {
	app.mu.Lock()
	if app.shutdown {
		app.mu.Unlock()
		return nil
	}
	app.shutdown = true
	wasGame := app.gameMode
	app.gameMode = false
	app.mu.Unlock()

	if wasGame {
		app.bus.Trigger(event.GameModeDisabled)
		app.metrics.setGameMode(false)
	}
	app.tasks.Remove(ScriptsUnloadTask)

	var errs []error
	if err := app.game.UnloadAll(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := app.editor.UnloadAll(ctx); err != nil {
		errs = append(errs, err)
	}
	if app.watcher != nil {
		if err := app.watcher.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	app.bus.UnsubscribeAll()
	app.bus.ClearListeners()
	app.tasks.Clear()

	app.logger.Info().Uint64("frames", app.frame).Msg("shutdown complete")
	return errors.Join(errs...)
}

func (app *Application) isShutdown() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.shutdown
}
