package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestNew_Defaults(t *testing.T) {
	w := newWatcher(t)
	assert.Equal(t, 100*time.Millisecond, w.debounce)
	assert.Equal(t, 64, cap(w.events))

	w = newWatcher(t, WithDebounce(0), WithBuffer(4))
	assert.Zero(t, w.debounce)
	assert.Equal(t, 4, cap(w.events))
}

func TestOperation_String(t *testing.T) {
	tests := []struct {
		op   Operation
		want string
	}{
		{OpWrite, "write"},
		{OpCreate, "create"},
		{OpRemove, "remove"},
		{OpRename, "rename"},
		{Operation(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestTranslate(t *testing.T) {
	op, ok := translate(fsnotify.Write)
	assert.True(t, ok)
	assert.Equal(t, OpWrite, op)

	op, ok = translate(fsnotify.Create | fsnotify.Write)
	assert.True(t, ok)
	assert.Equal(t, OpCreate, op)

	_, ok = translate(fsnotify.Chmod)
	assert.False(t, ok)
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "game.lua")
	b := filepath.Join(dir, "export_functions.txt")

	w := newWatcher(t)
	require.NoError(t, w.Watch(a))
	require.NoError(t, w.Watch(b))
	require.NoError(t, w.Watch(a))
	assert.Len(t, w.WatchedFiles(), 2)
	assert.Equal(t, 1, len(w.dirs))

	require.NoError(t, w.Unwatch(a))
	require.NoError(t, w.Unwatch(b))
	assert.Empty(t, w.WatchedFiles())
	assert.Empty(t, w.dirs)

	assert.Error(t, w.Watch(filepath.Join(dir, "missing", "x.lua")))
}

func TestWatcher_QueueCoalesces(t *testing.T) {
	w := newWatcher(t)
	now := time.Now()

	w.queueEvent(Event{Path: "/a", Op: OpCreate, Time: now})
	w.queueEvent(Event{Path: "/a", Op: OpWrite, Time: now})
	assert.Equal(t, OpCreate, w.pendingFiles["/a"].Op)

	w.queueEvent(Event{Path: "/a", Op: OpRemove, Time: now})
	assert.Equal(t, OpRemove, w.pendingFiles["/a"].Op)

	w.queueEvent(Event{Path: "/a", Op: OpCreate, Time: now})
	assert.Equal(t, OpWrite, w.pendingFiles["/a"].Op)
}

func TestWatcher_ProcessPendingOnlyStable(t *testing.T) {
	w := newWatcher(t, WithDebounce(time.Second))
	w.pendingFiles["/old"] = pendingEvent{Op: OpWrite, Time: time.Now().Add(-2 * time.Second)}
	w.pendingFiles["/new"] = pendingEvent{Op: OpWrite, Time: time.Now()}

	w.processPendingEvents()

	require.Len(t, w.events, 1)
	ev := <-w.events
	assert.Equal(t, "/old", ev.Path)
	assert.Contains(t, w.pendingFiles, "/new")
}

func TestWatcher_DetectsWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.lua")
	require.NoError(t, os.WriteFile(path, []byte("-- v1"), 0o644))

	w := newWatcher(t, WithDebounce(20*time.Millisecond))
	require.NoError(t, w.Watch(path))

	var mu sync.Mutex
	var handled []Event
	w.OnChange(func(ev Event) {
		mu.Lock()
		handled = append(handled, ev)
		mu.Unlock()
	})
	w.OnChange(func(Event) { panic("handler failure") })

	w.Start()
	defer w.Stop()
	assert.True(t, w.IsRunning())

	// Unwatched siblings are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.lua"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("-- v2"), 0o644))

	select {
	case ev := <-w.Events():
		assert.Equal(t, path, ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no event delivered")
	}

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(handled) > 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w := newWatcher(t)
	w.Stop()
	w.Start()
	w.Start()
	w.Stop()
	w.Stop()
	assert.False(t, w.IsRunning())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Watch("x"), ErrClosed)
}
