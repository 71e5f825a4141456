package plugin

// EventHandler receives loader lifecycle notifications.
// Handlers run synchronously on the loader's goroutine and must not call
// Load, UnloadAll or Reload. Panics in handlers are recovered.
type EventHandler func(event LoaderEvent)

// LoaderEvent describes a completed loader operation.
type LoaderEvent struct {
	Type    LoaderEventType
	Path    string
	PassID  string
	Scripts []string
	Error   error
}

// LoaderEventType is the type of loader event.
type LoaderEventType int

const (
	// EventLoaded is emitted after a load pass started all its scripts.
	EventLoaded LoaderEventType = iota
	// EventUnloaded is emitted after a module's scripts were destroyed and
	// the module closed.
	EventUnloaded
	// EventReloaded is emitted after Reload replayed every pass.
	EventReloaded
	// EventError is emitted when a load pass fails.
	EventError
)

// String returns a string representation of the event type.
func (t LoaderEventType) String() string {
	switch t {
	case EventLoaded:
		return "loaded"
	case EventUnloaded:
		return "unloaded"
	case EventReloaded:
		return "reloaded"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Subscribe adds an event handler.
// Returns an unsubscribe function to remove the handler.
func (l *Loader) Subscribe(handler EventHandler) func() {
	if handler == nil {
		return func() {}
	}

	l.mu.Lock()
	l.handlers = append(l.handlers, handler)
	index := len(l.handlers) - 1
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		// Nil the slot so later indices stay valid.
		if index < len(l.handlers) {
			l.handlers[index] = nil
		}
	}
}

// emit delivers ev to every handler, outside the lock.
func (l *Loader) emit(ev LoaderEvent) {
	l.mu.RLock()
	handlers := make([]EventHandler, len(l.handlers))
	copy(handlers, l.handlers)
	l.mu.RUnlock()

	for _, h := range handlers {
		if h == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					l.logger.Error().
						Str("event", ev.Type.String()).
						Interface("panic", r).
						Msg("loader event handler panicked")
				}
			}()
			h(ev)
		}()
	}
}
