package script

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/demon/internal/event"
	"github.com/dshills/demon/internal/task"
)

// Suffixes appended to the script name for the resources it registers.
const (
	TaskSuffix     = "Task"
	ListenerSuffix = "EventListener"
)

// Script is the embeddable base implementing Behavior.
type Script struct {
	name string
	host *Host
	impl any
	log  zerolog.Logger

	mu       sync.Mutex
	started  bool
	updating bool
	dt       float64
	buttons  ButtonMap
	input    map[string]bool
}

// New creates the base for a behavior named name. impl is the concrete
// behavior; the hook interfaces it implements are called by the base.
// impl may be nil.
func New(name string, host *Host, impl any) *Script {
	if host == nil {
		host = &Host{}
	}
	return &Script{
		name:  name,
		host:  host,
		impl:  impl,
		log:   host.Logger.With().Str("script", name).Logger(),
		input: make(map[string]bool),
	}
}

// Name returns the script name.
func (s *Script) Name() string { return s.name }

// Host returns the host the script was created with.
func (s *Script) Host() *Host { return s.host }

// Logger returns the script logger.
func (s *Script) Logger() *zerolog.Logger { return &s.log }

// TaskName returns the name of the per-frame update task.
func (s *Script) TaskName() string { return s.name + TaskSuffix }

// ListenerName returns the name of the all-events listener.
func (s *Script) ListenerName() string { return s.name + ListenerSuffix }

// DT returns the delta time of the last update in seconds.
func (s *Script) DT() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dt
}

// Started reports whether Start ran and Stop did not.
func (s *Script) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Updating reports whether the update task is attached.
func (s *Script) Updating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updating
}

// Start wires the script into the host. Calling Start on a started script
// is a no-op. If the implementation's OnStart fails, the wiring is removed
// and the error returned.
func (s *Script) Start() error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	if bus := s.host.Bus; bus != nil {
		bus.AddListener(s.ListenerName(), s.dispatch)
		bus.Subscribe(s.name, event.GameModeDisabled, s.StopUpdate)
		bus.Subscribe(s.name, event.RenderUI, s.renderUI)
	}

	if err := s.StartUpdate(); err != nil {
		s.Stop()
		return err
	}

	if st, ok := s.impl.(Starter); ok {
		if err := st.OnStart(); err != nil {
			s.Stop()
			return fmt.Errorf("script %q: start: %w", s.name, err)
		}
	}

	s.log.Debug().Msg("script started")
	return nil
}

// Stop detaches the script from the host. It is idempotent and a no-op
// before Start. The script stays usable and may be started again.
func (s *Script) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.updating = false
	s.mu.Unlock()

	if st, ok := s.impl.(Stopper); ok {
		st.OnStop()
	}

	if s.host.Tasks != nil {
		s.host.Tasks.RemoveOwner(s.name)
	}
	if bus := s.host.Bus; bus != nil {
		bus.Unsubscribe(s.name)
		bus.RemoveListener(s.ListenerName())
	}

	s.log.Debug().Msg("script stopped")
}

// StartUpdate attaches the per-frame update task. It is a no-op when the
// task is attached or the host has no task manager.
func (s *Script) StartUpdate() error {
	tasks := s.host.Tasks
	if tasks == nil || tasks.Has(s.TaskName()) {
		return nil
	}
	err := tasks.Add(task.Task{
		Name:  s.TaskName(),
		Owner: s.name,
		Fn:    s.update,
	})
	if err != nil {
		return fmt.Errorf("script %q: %w", s.name, err)
	}
	s.mu.Lock()
	s.updating = true
	s.mu.Unlock()
	return nil
}

// StopUpdate detaches only the per-frame update task. Listener and
// subscriptions stay.
func (s *Script) StopUpdate() {
	if s.host.Tasks != nil {
		s.host.Tasks.Remove(s.TaskName())
	}
	s.mu.Lock()
	s.updating = false
	s.mu.Unlock()
}

// Accept subscribes cb to name under the script's owner name, so Stop
// removes it.
func (s *Script) Accept(name string, cb event.Callback) {
	if s.host.Bus != nil {
		s.host.Bus.Subscribe(s.name, name, cb)
	}
}

// Trigger triggers name on the host bus.
func (s *Script) Trigger(name string) {
	if s.host.Bus != nil {
		s.host.Bus.Trigger(name)
	}
}

func (s *Script) update(f task.Frame) task.Status {
	if !s.host.gateOpen() {
		return task.Cont
	}
	s.mu.Lock()
	s.dt = f.DT
	s.mu.Unlock()

	if u, ok := s.impl.(Updater); ok {
		u.OnUpdate(f.DT)
	}
	return task.Cont
}

// dispatch is the all-events listener: the button table first, then the
// implementation's handler.
func (s *Script) dispatch(name string) {
	s.HandleButton(name)
	if h, ok := s.impl.(EventHandler); ok {
		h.OnEvent(name)
	}
}

func (s *Script) renderUI() {
	if s.host.UI == nil {
		return
	}
	if r, ok := s.impl.(UIRenderer); ok {
		r.RenderUI(s.host.UI)
	}
}
