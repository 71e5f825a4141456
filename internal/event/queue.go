package event

// Post queues a raw event for the next DispatchFrameEvents call. Arrival
// order is preserved.
func (b *Bus) Post(ev Event) {
	b.mu.Lock()
	b.queue = append(b.queue, ev)
	b.mu.Unlock()
}

// PostName queues a raw event built from name and params.
func (b *Bus) PostName(name string, params ...Param) {
	b.Post(New(name, params...))
}

// Pending returns a copy of the events queued since the last dispatch.
func (b *Bus) Pending() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Event, len(b.queue))
	copy(out, b.queue)
	return out
}

// DispatchFrameEvents delivers every event queued since the previous call,
// in arrival order, and clears the queue. For each event all listeners
// receive the raw name first; then, unless suppressPointer is set and the
// event is pointer-class, the event is triggered by name. Events posted
// while dispatching are kept for the next call.
func (b *Bus) DispatchFrameEvents(suppressPointer bool) {
	b.mu.Lock()
	events := b.queue
	b.queue = nil
	listeners := b.listeners
	b.mu.Unlock()

	for _, ev := range events {
		b.metrics.incDispatched()
		b.notifyListeners(listeners, ev.Name)

		if suppressPointer && b.isPointer(ev.Name) {
			b.metrics.incSuppressed()
			continue
		}
		b.Trigger(ev.Name)
	}
}
