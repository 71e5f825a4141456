package script

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dshills/demon/internal/event"
	"github.com/dshills/demon/internal/task"
)

// Behavior is the contract every plugin-created instance satisfies.
type Behavior interface {
	// Name returns the script name. It must match the factory symbol suffix.
	Name() string

	// Start wires the behavior into the host.
	Start() error

	// Stop detaches the behavior from the host. It is idempotent.
	Stop()
}

// Destroyer is implemented by behaviors that release resources when the
// loader discards them, after Stop.
type Destroyer interface {
	Destroy()
}

// Hook interfaces a behavior implementation may satisfy.
type (
	// Starter runs after the base wiring in Start.
	Starter interface {
		OnStart() error
	}

	// Stopper runs before the base wiring is removed in Stop.
	Stopper interface {
		OnStop()
	}

	// Updater runs once per frame while the update task is attached and
	// the pointer gate is open.
	Updater interface {
		OnUpdate(dt float64)
	}

	// EventHandler sees every raw frame event name.
	EventHandler interface {
		OnEvent(name string)
	}

	// UIRenderer draws into the UI panel on every render_ui pass.
	UIRenderer interface {
		RenderUI(ui UI)
	}
)

// PointerState reports where the pointer is.
type PointerState interface {
	// HasPointer reports whether the game viewport has the pointer.
	HasPointer() bool

	// EditorHasPointer reports whether the editor viewport has the pointer.
	EditorHasPointer() bool

	// PointerCentered reports whether the pointer is locked to the center.
	PointerCentered() bool
}

// UI is the immediate-mode text panel behaviors render into.
type UI interface {
	Print(line string)
}

// ErrNotFound reports an unknown script name. Host.Find returns it when
// the host has no Lookup func.
var ErrNotFound = errors.New("script not found")

// Host is the shared context handed to factories. It replaces a global
// editor object: everything a behavior may touch is reachable from here.
type Host struct {
	// Bus is the event bus.
	Bus *event.Bus

	// Tasks is the per-frame task manager.
	Tasks *task.Manager

	// Pointer reports pointer context. A nil Pointer leaves the update
	// gate open.
	Pointer PointerState

	// UI is the text panel. A nil UI disables RenderUI.
	UI UI

	// Logger is the base logger; behaviors log with their name attached.
	Logger zerolog.Logger

	// Settings are the key/value configuration entries.
	Settings map[string]string

	// Lookup finds sibling behaviors by name.
	Lookup func(name string) (Behavior, error)
}

// Setting returns the configuration value for key, or def when unset.
func (h *Host) Setting(key, def string) string {
	if h == nil || h.Settings == nil {
		return def
	}
	if v, ok := h.Settings[key]; ok {
		return v
	}
	return def
}

// Find returns the sibling behavior named name.
func (h *Host) Find(name string) (Behavior, error) {
	if h == nil || h.Lookup == nil {
		return nil, fmt.Errorf("script %q: %w", name, ErrNotFound)
	}
	return h.Lookup(name)
}

// gateOpen reports whether per-frame updates should run.
func (h *Host) gateOpen() bool {
	if h.Pointer == nil {
		return true
	}
	return h.Pointer.HasPointer() ||
		(h.Pointer.EditorHasPointer() && h.Pointer.PointerCentered())
}
