package event

// AddListener registers fn as the all-events observer named name. An
// existing listener with the same name is replaced in place, so at most one
// observer per name is ever active. A nil fn is ignored.
func (b *Bus) AddListener(name string, fn ListenerFunc) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	next := make([]listener, len(b.listeners), len(b.listeners)+1)
	copy(next, b.listeners)
	for i := range next {
		if next[i].name == name {
			next[i].fn = fn
			b.listeners = next
			return
		}
	}
	b.listeners = append(next, listener{name: name, fn: fn})
}

// RemoveListener removes the listener named name. Unknown names are a no-op.
func (b *Bus) RemoveListener(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	kept := make([]listener, 0, len(b.listeners))
	for _, l := range b.listeners {
		if l.name != name {
			kept = append(kept, l)
		}
	}
	b.listeners = kept
}

// ClearListeners removes every listener.
func (b *Bus) ClearListeners() {
	b.mu.Lock()
	b.listeners = nil
	b.mu.Unlock()
}

// HasListener reports whether a listener named name is registered.
func (b *Bus) HasListener(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.listeners {
		if l.name == name {
			return true
		}
	}
	return false
}

// ListenerNames returns the registered listener names in registration order.
func (b *Bus) ListenerNames() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, len(b.listeners))
	for i, l := range b.listeners {
		names[i] = l.name
	}
	return names
}

// notifyListeners shows one raw event name to every listener in snapshot.
func (b *Bus) notifyListeners(snapshot []listener, name string) {
	for _, l := range snapshot {
		fn := l.fn
		res := b.exec.Run(l.name, func() { fn(name) })
		b.metrics.incDelivered(kindListener)
		if res.Panicked {
			b.metrics.incPanic(kindListener)
			b.logger.Error().
				Str("listener", l.name).
				Str("event", name).
				Interface("panic", res.PanicValue).
				Bytes("stack", res.PanicStack).
				Msg("event listener panicked")
		}
	}
}
