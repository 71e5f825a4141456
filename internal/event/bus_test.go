package event

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_TriggerNoSubscribers(t *testing.T) {
	bus := NewBus()
	assert.NotPanics(t, func() { bus.Trigger("nothing") })
	assert.Equal(t, 0, bus.SubscriptionCount())
}

func TestBus_SubscribeTrigger(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe("Player", "jump", func() { calls++ })

	bus.Trigger("jump")
	assert.Equal(t, 1, calls)

	bus.UnsubscribeEvent("Player", "jump")
	bus.Trigger("jump")
	assert.Equal(t, 1, calls)
}

func TestBus_RegistrationOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe("a", "go", func() { order = append(order, "a1") })
	bus.Subscribe("b", "go", func() { order = append(order, "b") })
	bus.Subscribe("a", "go", func() { order = append(order, "a2") })
	bus.Subscribe("a", "other", func() { order = append(order, "x") })

	bus.Trigger("go")
	assert.Equal(t, []string{"a1", "b", "a2"}, order)
}

func TestBus_UnsubscribeOwner(t *testing.T) {
	bus := NewBus()

	var fired []string
	bus.Subscribe("Player", "jump", func() { fired = append(fired, "jump") })
	bus.Subscribe("Player", "duck", func() { fired = append(fired, "duck") })
	bus.Subscribe("Hud", "jump", func() { fired = append(fired, "hud") })

	bus.Unsubscribe("Player")
	assert.False(t, bus.HasSubscription("Player"))
	assert.True(t, bus.HasSubscription("Hud"))

	bus.Trigger("jump")
	bus.Trigger("duck")
	assert.Equal(t, []string{"hud"}, fired)

	// Idempotent.
	assert.NotPanics(t, func() {
		bus.Unsubscribe("Player")
		bus.Unsubscribe("nobody")
		bus.UnsubscribeEvent("nobody", "jump")
	})
}

func TestBus_UnsubscribeEventKeepsOtherEvents(t *testing.T) {
	bus := NewBus()

	jumps, ducks := 0, 0
	bus.Subscribe("Player", "jump", func() { jumps++ })
	bus.Subscribe("Player", "duck", func() { ducks++ })

	bus.UnsubscribeEvent("Player", "jump")
	assert.False(t, bus.HasEvent("Player", "jump"))
	assert.True(t, bus.HasEvent("Player", "duck"))

	bus.Trigger("jump")
	bus.Trigger("duck")
	assert.Equal(t, 0, jumps)
	assert.Equal(t, 1, ducks)
}

func TestBus_UnsubscribeAll(t *testing.T) {
	bus := NewBus()
	called := false
	bus.Subscribe("a", "e", func() { called = true })
	bus.Subscribe("b", "e", func() { called = true })

	bus.UnsubscribeAll()
	bus.Trigger("e")

	assert.False(t, called)
	assert.Equal(t, 0, bus.SubscriptionCount())
}

func TestBus_SubscribeDuringTrigger(t *testing.T) {
	bus := NewBus()

	late := 0
	bus.Subscribe("outer", "tick", func() {
		bus.Subscribe("inner", "tick", func() { late++ })
	})

	bus.Trigger("tick")
	assert.Equal(t, 0, late, "subscriber added during trigger must not run in the same pass")

	bus.Trigger("tick")
	assert.Equal(t, 1, late)
}

func TestBus_UnsubscribeDuringTrigger(t *testing.T) {
	bus := NewBus()

	second := 0
	bus.Subscribe("first", "tick", func() { bus.Unsubscribe("second") })
	bus.Subscribe("second", "tick", func() { second++ })

	// Removal becomes visible on the next call only.
	bus.Trigger("tick")
	assert.Equal(t, 1, second)

	bus.Trigger("tick")
	assert.Equal(t, 1, second)
}

func TestBus_PanickingCallbackDoesNotAbortDelivery(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	bus := NewBus(WithLogger(zerolog.New(&buf)), WithMetrics(metrics))

	after := 0
	bus.Subscribe("bad", "go", func() { panic("boom") })
	bus.Subscribe("good", "go", func() { after++ })

	require.NotPanics(t, func() { bus.Trigger("go") })
	assert.Equal(t, 1, after)
	assert.Contains(t, buf.String(), "event callback panicked")
	assert.Contains(t, buf.String(), `"owner":"bad"`)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.panics.WithLabelValues(kindSubscription)))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.delivered.WithLabelValues(kindSubscription)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.triggered))
}

func TestBus_NilCallbackIgnored(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("a", "e", nil)
	bus.AddListener("l", nil)
	assert.Equal(t, 0, bus.SubscriptionCount())
	assert.False(t, bus.HasListener("l"))
}

func TestBus_TriggerFromCallback(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe("a", "first", func() {
		order = append(order, "first")
		bus.Trigger("second")
	})
	bus.Subscribe("b", "second", func() { order = append(order, "second") })

	bus.Trigger("first")
	assert.Equal(t, []string{"first", "second"}, order)
}
