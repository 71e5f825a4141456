package task

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(log *[]string, name string, status Status) Func {
	return func(Frame) Status {
		*log = append(*log, name)
		return status
	}
}

func TestManager_AddDuplicate(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.Add(Task{Name: "a", Fn: func(Frame) Status { return Cont }}))

	err := m.Add(Task{Name: "a", Fn: func(Frame) Status { return Cont }})
	assert.ErrorIs(t, err, ErrDuplicateTask)
	assert.Equal(t, 1, m.Len())
}

func TestManager_AddInvalid(t *testing.T) {
	m := NewManager()
	assert.ErrorIs(t, m.Add(Task{Fn: func(Frame) Status { return Cont }}), ErrInvalidTask)
	assert.ErrorIs(t, m.Add(Task{Name: "nofn"}), ErrInvalidTask)
	assert.ErrorIs(t, m.Add(Task{Name: "neg", Delay: -1, Fn: func(Frame) Status { return Cont }}), ErrInvalidTask)
	assert.Equal(t, 0, m.Len())
}

func TestManager_PollOrder(t *testing.T) {
	m := NewManager()
	var log []string

	require.NoError(t, m.Add(Task{Name: "late", Sort: 10, Fn: record(&log, "late", Cont)}))
	require.NoError(t, m.Add(Task{Name: "low", Sort: 0, Priority: 1, Fn: record(&log, "low", Cont)}))
	require.NoError(t, m.Add(Task{Name: "high", Sort: 0, Priority: 5, Fn: record(&log, "high", Cont)}))
	require.NoError(t, m.Add(Task{Name: "low2", Sort: 0, Priority: 1, Fn: record(&log, "low2", Cont)}))

	m.Poll(Frame{Index: 1})
	assert.Equal(t, []string{"high", "low", "low2", "late"}, log)
	assert.Equal(t, []string{"high", "low", "low2", "late"}, m.Names())
}

func TestManager_DoneRemoves(t *testing.T) {
	m := NewManager()
	var log []string
	require.NoError(t, m.Add(Task{Name: "once", Fn: record(&log, "once", Done)}))

	m.Poll(Frame{Index: 1})
	m.Poll(Frame{Index: 2})

	assert.Equal(t, []string{"once"}, log)
	assert.False(t, m.Has("once"))
}

func TestManager_Delay(t *testing.T) {
	m := NewManager()
	var frames []uint64
	require.NoError(t, m.Add(Task{
		Name:  "ScriptsUnloadTask",
		Delay: 1,
		Fn: func(f Frame) Status {
			frames = append(frames, f.Index)
			return Done
		},
	}))

	m.Poll(Frame{Index: 1})
	assert.Empty(t, frames)

	m.Poll(Frame{Index: 2})
	assert.Equal(t, []uint64{2}, frames)
	assert.Equal(t, 0, m.Len())
}

func TestManager_AddDuringPollRunsNextFrame(t *testing.T) {
	m := NewManager()
	var log []string

	require.NoError(t, m.Add(Task{
		Name: "spawner",
		Fn: func(Frame) Status {
			_ = m.Add(Task{Name: "child", Fn: record(&log, "child", Cont)})
			return Done
		},
	}))

	m.Poll(Frame{Index: 1})
	assert.Empty(t, log)
	assert.True(t, m.Has("child"))

	m.Poll(Frame{Index: 2})
	assert.Equal(t, []string{"child"}, log)
}

func TestManager_RemoveDuringPollSkips(t *testing.T) {
	m := NewManager()
	var log []string

	require.NoError(t, m.Add(Task{Name: "killer", Priority: 1, Fn: func(Frame) Status {
		m.Remove("victim")
		return Cont
	}}))
	require.NoError(t, m.Add(Task{Name: "victim", Fn: record(&log, "victim", Cont)}))

	m.Poll(Frame{Index: 1})
	assert.Empty(t, log)
	assert.False(t, m.Has("victim"))
}

func TestManager_RemoveOwner(t *testing.T) {
	m := NewManager()
	noop := func(Frame) Status { return Cont }
	require.NoError(t, m.Add(Task{Name: "a", Owner: "Player", Fn: noop}))
	require.NoError(t, m.Add(Task{Name: "b", Owner: "Player", Fn: noop}))
	require.NoError(t, m.Add(Task{Name: "c", Owner: "Hud", Fn: noop}))

	assert.Equal(t, 2, m.RemoveOwner("Player"))
	assert.Equal(t, 0, m.RemoveOwner("Player"))
	assert.Equal(t, []string{"c"}, m.Names())
}

func TestManager_RemoveAndReAdd(t *testing.T) {
	m := NewManager()
	noop := func(Frame) Status { return Cont }
	require.NoError(t, m.Add(Task{Name: "a", Fn: noop}))
	assert.True(t, m.Remove("a"))
	assert.False(t, m.Remove("a"))
	require.NoError(t, m.Add(Task{Name: "a", Fn: noop}))
	assert.True(t, m.Has("a"))
}

func TestManager_PanicIsolated(t *testing.T) {
	var buf bytes.Buffer
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	m := NewManager(WithLogger(zerolog.New(&buf)), WithMetrics(metrics))

	var log []string
	require.NoError(t, m.Add(Task{Name: "bad", Priority: 1, Fn: func(Frame) Status { panic("kaboom") }}))
	require.NoError(t, m.Add(Task{Name: "good", Fn: record(&log, "good", Cont)}))

	require.NotPanics(t, func() { m.Poll(Frame{Index: 7}) })

	assert.Equal(t, []string{"good"}, log)
	assert.True(t, m.Has("bad"), "panicking task stays registered")
	assert.Contains(t, buf.String(), "task hook panicked")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.panics.WithLabelValues("bad")))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.runs))
	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.active))
}

func TestManager_Clear(t *testing.T) {
	m := NewManager()
	var log []string
	require.NoError(t, m.Add(Task{Name: "clearer", Priority: 1, Fn: func(Frame) Status {
		m.Clear()
		return Cont
	}}))
	require.NoError(t, m.Add(Task{Name: "other", Fn: record(&log, "other", Cont)}))

	m.Poll(Frame{Index: 1})
	assert.Empty(t, log)
	assert.Equal(t, 0, m.Len())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "cont", Cont.String())
	assert.Equal(t, "done", Done.String())
	assert.Equal(t, "status(9)", Status(9).String())
}
