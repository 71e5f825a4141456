package lua

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/demon/internal/plugin"
	"github.com/dshills/demon/internal/script"
)

// System opens Lua files as plugin modules.
type System struct {
	stateOpts []StateOption
	logger    zerolog.Logger
}

// Option configures a System.
type Option func(*System)

// WithStateOptions sets the options for every state the system creates.
func WithStateOptions(opts ...StateOption) Option {
	return func(s *System) {
		s.stateOpts = append(s.stateOpts, opts...)
	}
}

// WithLogger sets the logger for module errors.
func WithLogger(l zerolog.Logger) Option {
	return func(s *System) {
		s.logger = l
	}
}

// NewSystem creates a Lua module system.
func NewSystem(opts ...Option) *System {
	s := &System{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open implements plugin.ModuleSystem. The file runs once in a fresh state.
func (s *System) Open(path string) (plugin.Module, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	state := NewState(s.stateOpts...)
	if err := state.DoFile(path); err != nil {
		state.Close()
		return nil, fmt.Errorf("run %s: %w", path, err)
	}
	return &Module{
		path:   path,
		state:  state,
		logger: s.logger.With().Str("module", path).Logger(),
	}, nil
}

// Module is an opened Lua file.
type Module struct {
	path   string
	state  *State
	logger zerolog.Logger
}

// State returns the module's Lua state.
func (m *Module) State() *State { return m.state }

// Lookup implements plugin.Module. Symbols are global Lua functions.
func (m *Module) Lookup(symbol string) (plugin.Factory, error) {
	if m.state.IsClosed() {
		return nil, plugin.ErrModuleClosed
	}
	fn, ok := m.state.GetGlobal(symbol).(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("%s: %w", symbol, plugin.ErrSymbolNotFound)
	}
	return func(host *script.Host) script.Behavior {
		b, err := m.create(symbol, fn, host)
		if err != nil {
			m.logger.Error().Err(err).Str("symbol", symbol).Msg("lua factory failed")
			return nil
		}
		return b
	}, nil
}

// Close implements plugin.Module.
func (m *Module) Close() error {
	return m.state.Close()
}

// create calls the factory and wraps the returned table.
func (m *Module) create(symbol string, fn *lua.LFunction, host *script.Host) (script.Behavior, error) {
	inst := &instance{state: m.state, host: host}
	hostTable := inst.hostTable()

	ret, err := m.state.Call(fn, 1, hostTable)
	if err != nil {
		return nil, err
	}
	tbl, ok := ret[0].(*lua.LTable)
	if !ok {
		return nil, ErrBadInstance
	}

	name := lua.LVAsString(tbl.RawGetString("name"))
	if name == "" {
		name = plugin.ScriptName(symbol)
	}
	buttons, err := parseButtons(tbl.RawGetString("buttons"))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", symbol, err)
	}

	inst.table = tbl
	inst.behavior = script.NewFuncBehavior(host, inst.funcs(name, buttons))
	return inst.behavior, nil
}
