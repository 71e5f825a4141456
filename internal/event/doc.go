// Package event provides the named-event bus shared by the editor shell and
// every scripted behavior.
//
// The bus carries two kinds of subscribers:
//
//   - Subscriptions: (owner, event name, callback) triples. The owner groups
//     subscriptions so a behavior can drop all of them with one
//     Unsubscribe(owner) call during teardown.
//
//   - Listeners: all-events observers keyed by their own name. A listener
//     receives the raw name of every event drained from the frame queue.
//     Registering a listener under an existing name replaces it.
//
// # Frame delivery
//
// The frame driver posts raw input events with Post during a tick and calls
// DispatchFrameEvents once per frame. Every queued event is first shown to all
// listeners, then delivered through Trigger unless pointer events are being
// withheld (a modal UI owns the pointer) and the event is pointer-class:
//
//	bus.Post(event.New("mouse-move"))
//	bus.Post(event.New("a"))
//	bus.DispatchFrameEvents(true) // listeners see both, Trigger only sees "a"
//
// # Reentrancy
//
// Callbacks run on the caller's goroutine with no bus lock held. Trigger and
// DispatchFrameEvents iterate over a snapshot, so a callback may subscribe,
// unsubscribe or trigger other events; table mutations become visible on the
// next call. A panicking callback is recovered and logged, and delivery
// continues with the next subscriber.
package event
