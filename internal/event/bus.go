package event

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/demon/internal/event/dispatch"
)

// Callback is invoked when a subscribed event is triggered.
type Callback func()

// ListenerFunc observes the raw name of every dispatched frame event.
type ListenerFunc func(name string)

// subscription is one (owner, event name, callback) triple.
type subscription struct {
	owner string
	name  string
	cb    Callback
}

// listener is a named all-events observer.
type listener struct {
	name string
	fn   ListenerFunc
}

// Bus is a synchronous, same-goroutine publish/subscribe hub for named
// events. The zero value is not usable; create one with NewBus.
type Bus struct {
	mu sync.Mutex

	// Subscriptions in registration order.
	subs []subscription

	// Listeners in first-registration order.
	listeners []listener

	// Raw events posted since the last DispatchFrameEvents.
	queue []Event

	isPointer func(name string) bool
	exec      *dispatch.Executor
	logger    zerolog.Logger
	metrics   *Metrics
}

// NewBus creates a new event bus with the given options.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		isPointer: IsPointerEvent,
		exec:      dispatch.NewExecutor(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers cb to run whenever name is triggered. The same owner
// may register several callbacks for one name; all of them run, in
// registration order. A nil callback is ignored.
func (b *Bus) Subscribe(owner, name string, cb Callback) {
	if cb == nil {
		return
	}
	b.mu.Lock()
	b.subs = append(b.subs, subscription{owner: owner, name: name, cb: cb})
	b.mu.Unlock()
}

// Unsubscribe removes every subscription registered under owner.
// It is a no-op for an owner without subscriptions.
func (b *Bus) Unsubscribe(owner string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = filterSubs(b.subs, func(s subscription) bool {
		return s.owner == owner
	})
}

// UnsubscribeEvent removes only the subscriptions of owner for name.
func (b *Bus) UnsubscribeEvent(owner, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = filterSubs(b.subs, func(s subscription) bool {
		return s.owner == owner && s.name == name
	})
}

// UnsubscribeAll clears every subscription. Used at full shutdown.
func (b *Bus) UnsubscribeAll() {
	b.mu.Lock()
	b.subs = nil
	b.mu.Unlock()
}

// HasSubscription reports whether owner has any subscription.
func (b *Bus) HasSubscription(owner string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.owner == owner {
			return true
		}
	}
	return false
}

// HasEvent reports whether owner is subscribed to name.
func (b *Bus) HasEvent(owner, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		if s.owner == owner && s.name == name {
			return true
		}
	}
	return false
}

// SubscriptionCount returns the number of live subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Trigger synchronously invokes every callback subscribed to name, in
// registration order. Subscriptions added or removed by a callback take
// effect on the next Trigger call. An event without subscribers is a no-op.
func (b *Bus) Trigger(name string) {
	b.mu.Lock()
	var matched []subscription
	for _, s := range b.subs {
		if s.name == name {
			matched = append(matched, s)
		}
	}
	b.mu.Unlock()

	b.metrics.incTriggered()

	for _, s := range matched {
		res := b.exec.Run(s.owner+"/"+s.name, s.cb)
		b.metrics.incDelivered(kindSubscription)
		if res.Panicked {
			b.metrics.incPanic(kindSubscription)
			b.logger.Error().
				Str("owner", s.owner).
				Str("event", s.name).
				Interface("panic", res.PanicValue).
				Bytes("stack", res.PanicStack).
				Msg("event callback panicked")
		}
	}
}

// filterSubs returns subs without the entries matching drop. It allocates a
// new slice so snapshots taken by in-flight Trigger calls stay intact.
func filterSubs(subs []subscription, drop func(subscription) bool) []subscription {
	kept := make([]subscription, 0, len(subs))
	for _, s := range subs {
		if !drop(s) {
			kept = append(kept, s)
		}
	}
	return kept
}
