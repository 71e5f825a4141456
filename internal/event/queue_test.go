package event

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBus_AddListenerReplaces(t *testing.T) {
	bus := NewBus()

	var first, second []string
	bus.AddListener("L", func(name string) { first = append(first, name) })
	bus.AddListener("L", func(name string) { second = append(second, name) })

	assert.Equal(t, []string{"L"}, bus.ListenerNames())

	bus.PostName("key-a")
	bus.DispatchFrameEvents(false)

	assert.Empty(t, first)
	assert.Equal(t, []string{"key-a"}, second)
}

func TestBus_ReplaceKeepsPosition(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.AddListener("one", func(string) { order = append(order, "one") })
	bus.AddListener("two", func(string) { order = append(order, "two") })
	bus.AddListener("one", func(string) { order = append(order, "one'") })

	bus.PostName("x")
	bus.DispatchFrameEvents(false)
	assert.Equal(t, []string{"one'", "two"}, order)
}

func TestBus_RemoveAndClearListeners(t *testing.T) {
	bus := NewBus()

	seen := 0
	bus.AddListener("a", func(string) { seen++ })
	bus.AddListener("b", func(string) { seen++ })

	bus.RemoveListener("a")
	bus.RemoveListener("missing")
	assert.False(t, bus.HasListener("a"))
	assert.True(t, bus.HasListener("b"))

	bus.PostName("x")
	bus.DispatchFrameEvents(false)
	assert.Equal(t, 1, seen)

	bus.ClearListeners()
	bus.PostName("y")
	bus.DispatchFrameEvents(false)
	assert.Equal(t, 1, seen)
	assert.Empty(t, bus.ListenerNames())
}

func TestBus_DispatchFrameEventsSuppressesPointer(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	bus := NewBus(WithMetrics(metrics))

	var heard, triggered []string
	bus.AddListener("overlay", func(name string) { heard = append(heard, name) })
	bus.Subscribe("game", "mouse-move", func() { triggered = append(triggered, "mouse-move") })
	bus.Subscribe("game", "key-a", func() { triggered = append(triggered, "key-a") })

	bus.PostName("mouse-move")
	bus.PostName("key-a")
	bus.DispatchFrameEvents(true)

	assert.Equal(t, []string{"mouse-move", "key-a"}, heard)
	assert.Equal(t, []string{"key-a"}, triggered)
	assert.Empty(t, bus.Pending())
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.dispatched))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.suppressed))
}

func TestBus_DispatchFrameEventsWithoutSuppression(t *testing.T) {
	bus := NewBus()

	var triggered []string
	bus.Subscribe("game", "mouse1", func() { triggered = append(triggered, "mouse1") })
	bus.PostName("mouse1")
	bus.DispatchFrameEvents(false)

	assert.Equal(t, []string{"mouse1"}, triggered)
}

func TestBus_DispatchOrderListenersBeforeTrigger(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.AddListener("l", func(name string) { order = append(order, "listen:"+name) })
	bus.Subscribe("s", "a", func() { order = append(order, "trigger:a") })
	bus.Subscribe("s", "b", func() { order = append(order, "trigger:b") })

	bus.PostName("a")
	bus.PostName("b")
	bus.DispatchFrameEvents(false)

	assert.Equal(t, []string{"listen:a", "trigger:a", "listen:b", "trigger:b"}, order)
}

func TestBus_PostDuringDispatchDeferred(t *testing.T) {
	bus := NewBus()

	count := 0
	bus.Subscribe("s", "a", func() {
		count++
		bus.PostName("a")
	})

	bus.PostName("a")
	bus.DispatchFrameEvents(false)
	assert.Equal(t, 1, count)
	assert.Len(t, bus.Pending(), 1)

	bus.DispatchFrameEvents(false)
	assert.Equal(t, 2, count)
}

func TestBus_ListenerPanicIsolated(t *testing.T) {
	bus := NewBus()

	heard := 0
	bus.AddListener("bad", func(string) { panic("nope") })
	bus.AddListener("good", func(string) { heard++ })

	bus.PostName("x")
	assert.NotPanics(t, func() { bus.DispatchFrameEvents(false) })
	assert.Equal(t, 1, heard)
}

func TestBus_CustomPointerClassifier(t *testing.T) {
	bus := NewBus(WithPointerClassifier(func(name string) bool {
		return strings.HasPrefix(name, "touch")
	}))

	var triggered []string
	bus.Subscribe("s", "touch-move", func() { triggered = append(triggered, "touch-move") })
	bus.Subscribe("s", "mouse-move", func() { triggered = append(triggered, "mouse-move") })

	bus.PostName("touch-move")
	bus.PostName("mouse-move")
	bus.DispatchFrameEvents(true)

	assert.Equal(t, []string{"mouse-move"}, triggered)
}

func TestBus_DispatchEmptyQueue(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() { bus.DispatchFrameEvents(true) })
}
