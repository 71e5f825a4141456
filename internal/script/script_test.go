package script

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/demon/internal/event"
	"github.com/dshills/demon/internal/task"
)

type fakePointer struct {
	game, editor, centered bool
}

func (p *fakePointer) HasPointer() bool       { return p.game }
func (p *fakePointer) EditorHasPointer() bool { return p.editor }
func (p *fakePointer) PointerCentered() bool  { return p.centered }

type panel struct{ lines []string }

func (p *panel) Print(line string) { p.lines = append(p.lines, line) }

type walker struct {
	*Script
	updates  []float64
	events   []string
	started  int
	stopped  int
	startErr error
}

func (w *walker) OnStart() error      { w.started++; return w.startErr }
func (w *walker) OnStop()             { w.stopped++ }
func (w *walker) OnUpdate(dt float64) { w.updates = append(w.updates, dt) }
func (w *walker) OnEvent(name string) { w.events = append(w.events, name) }
func (w *walker) RenderUI(ui UI)      { ui.Print("walker " + w.Name()) }

func newHost() (*Host, *fakePointer, *panel) {
	ptr := &fakePointer{game: true}
	ui := &panel{}
	return &Host{
		Bus:     event.NewBus(),
		Tasks:   task.NewManager(),
		Pointer: ptr,
		UI:      ui,
	}, ptr, ui
}

func newWalker(h *Host) *walker {
	w := &walker{}
	w.Script = New("Walker", h, w)
	return w
}

func TestScript_StartRegisters(t *testing.T) {
	h, _, _ := newHost()
	w := newWalker(h)

	require.NoError(t, w.Start())

	assert.True(t, h.Tasks.Has("WalkerTask"))
	assert.True(t, h.Bus.HasListener("WalkerEventListener"))
	assert.True(t, h.Bus.HasEvent("Walker", event.GameModeDisabled))
	assert.True(t, h.Bus.HasEvent("Walker", event.RenderUI))
	assert.True(t, w.Started())
	assert.True(t, w.Updating())
	assert.Equal(t, 1, w.started)
}

func TestScript_StartTwiceIsNoop(t *testing.T) {
	h, _, _ := newHost()
	w := newWalker(h)

	require.NoError(t, w.Start())
	require.NoError(t, w.Start())

	assert.Equal(t, 1, w.started)
	assert.Equal(t, 1, h.Tasks.Len())
	assert.Equal(t, 2, h.Bus.SubscriptionCount())
}

func TestScript_StopRemovesEverything(t *testing.T) {
	h, _, _ := newHost()
	w := newWalker(h)
	require.NoError(t, w.Start())

	w.Stop()

	assert.False(t, h.Tasks.Has("WalkerTask"))
	assert.False(t, h.Bus.HasListener("WalkerEventListener"))
	assert.False(t, h.Bus.HasSubscription("Walker"))
	assert.False(t, w.Started())
	assert.Equal(t, 1, w.stopped)

	// Idempotent.
	w.Stop()
	assert.Equal(t, 1, w.stopped)
}

func TestScript_StopBeforeStart(t *testing.T) {
	h, _, _ := newHost()
	w := newWalker(h)
	assert.NotPanics(t, w.Stop)
	assert.Equal(t, 0, w.stopped)
}

func TestScript_StartErrorRollsBack(t *testing.T) {
	h, _, _ := newHost()
	w := newWalker(h)
	w.startErr = errors.New("no model")

	err := w.Start()
	require.Error(t, err)
	assert.ErrorIs(t, err, w.startErr)

	assert.False(t, h.Tasks.Has("WalkerTask"))
	assert.False(t, h.Bus.HasListener("WalkerEventListener"))
	assert.False(t, h.Bus.HasSubscription("Walker"))
}

func TestScript_UpdateGatedOnPointer(t *testing.T) {
	h, ptr, _ := newHost()
	w := newWalker(h)
	require.NoError(t, w.Start())

	h.Tasks.Poll(task.Frame{Index: 1, DT: 0.5})
	assert.Equal(t, []float64{0.5}, w.updates)
	assert.Equal(t, 0.5, w.DT())

	// Pointer over the editor but not centered: gate closed.
	ptr.game, ptr.editor, ptr.centered = false, true, false
	h.Tasks.Poll(task.Frame{Index: 2, DT: 0.25})
	assert.Len(t, w.updates, 1)

	// Editor with centered pointer: gate open.
	ptr.centered = true
	h.Tasks.Poll(task.Frame{Index: 3, DT: 0.125})
	assert.Equal(t, []float64{0.5, 0.125}, w.updates)

	// Pointer nowhere.
	ptr.editor, ptr.centered = false, false
	h.Tasks.Poll(task.Frame{Index: 4, DT: 1})
	assert.Len(t, w.updates, 2)
}

func TestScript_NilPointerUpdatesAlways(t *testing.T) {
	h := &Host{Bus: event.NewBus(), Tasks: task.NewManager()}
	w := newWalker(h)
	require.NoError(t, w.Start())

	h.Tasks.Poll(task.Frame{Index: 1, DT: 0.1})
	assert.Len(t, w.updates, 1)
}

func TestScript_GameModeDisabledStopsUpdate(t *testing.T) {
	h, _, _ := newHost()
	w := newWalker(h)
	require.NoError(t, w.Start())

	h.Bus.Trigger(event.GameModeDisabled)

	assert.False(t, h.Tasks.Has("WalkerTask"))
	assert.False(t, w.Updating())
	assert.True(t, h.Bus.HasListener("WalkerEventListener"))

	h.Tasks.Poll(task.Frame{Index: 1, DT: 0.1})
	assert.Empty(t, w.updates)

	require.NoError(t, w.StartUpdate())
	h.Tasks.Poll(task.Frame{Index: 2, DT: 0.1})
	assert.Len(t, w.updates, 1)
}

func TestScript_RenderUI(t *testing.T) {
	h, _, ui := newHost()
	w := newWalker(h)
	require.NoError(t, w.Start())

	h.Bus.Trigger(event.RenderUI)
	assert.Equal(t, []string{"walker Walker"}, ui.lines)
}

func TestScript_ButtonMap(t *testing.T) {
	h, _, _ := newHost()
	w := newWalker(h)
	w.RegisterButtons(ButtonMap{
		"w":    {Flag: "forward", Down: true},
		"w-up": {Flag: "forward", Down: false},
		"a":    {Flag: "left", Down: true},
	})
	require.NoError(t, w.Start())

	assert.Equal(t, map[string]bool{"forward": false, "left": false}, w.Input())

	h.Bus.PostName("w")
	h.Bus.PostName("a")
	h.Bus.PostName("unmapped")
	h.Bus.DispatchFrameEvents(false)

	assert.True(t, w.IsDown("forward"))
	assert.True(t, w.IsDown("left"))
	assert.False(t, w.IsDown("nope"))
	assert.Equal(t, []string{"w", "a", "unmapped"}, w.events)

	h.Bus.PostName("w-up")
	h.Bus.DispatchFrameEvents(false)
	assert.False(t, w.IsDown("forward"))
}

func TestScript_RegisterButtonsResets(t *testing.T) {
	w := New("x", nil, nil)
	w.RegisterButtons(ButtonMap{"w": {Flag: "forward", Down: true}})
	assert.True(t, w.HandleButton("w"))
	assert.True(t, w.IsDown("forward"))

	w.RegisterButtons(ButtonMap{"s": {Flag: "back", Down: true}})
	assert.Equal(t, map[string]bool{"back": false}, w.Input())
	assert.False(t, w.HandleButton("w"))
}

func TestScript_AcceptOwnedByScript(t *testing.T) {
	h, _, _ := newHost()
	w := newWalker(h)
	require.NoError(t, w.Start())

	jumps := 0
	w.Accept("jump", func() { jumps++ })
	w.Trigger("jump")
	assert.Equal(t, 1, jumps)

	w.Stop()
	h.Bus.Trigger("jump")
	assert.Equal(t, 1, jumps)
}

func TestScript_RestartAfterStop(t *testing.T) {
	h, _, _ := newHost()
	w := newWalker(h)
	require.NoError(t, w.Start())
	w.Stop()
	require.NoError(t, w.Start())

	assert.True(t, h.Tasks.Has("WalkerTask"))
	assert.Equal(t, 2, w.started)
}

func TestHost_SettingAndFind(t *testing.T) {
	var nilHost *Host
	assert.Equal(t, "def", nilHost.Setting("k", "def"))

	h := &Host{Settings: map[string]string{"speed": "25"}}
	assert.Equal(t, "25", h.Setting("speed", "1"))
	assert.Equal(t, "1", h.Setting("missing", "1"))

	_, err := h.Find("Player")
	assert.ErrorIs(t, err, ErrNotFound)

	target := New("Player", h, nil)
	h.Lookup = func(name string) (Behavior, error) { return target, nil }
	got, err := h.Find("Player")
	require.NoError(t, err)
	assert.Equal(t, "Player", got.Name())
}

func TestScript_LoggerCarriesName(t *testing.T) {
	var buf bytes.Buffer
	s := New("Player", &Host{Logger: zerolog.New(&buf)}, nil)

	s.Logger().Info().Msg("ready")
	assert.Contains(t, buf.String(), `"script":"Player"`)
	assert.Contains(t, buf.String(), `"message":"ready"`)
}

func TestHost_FindWithoutLookup(t *testing.T) {
	_, err := (&Host{}).Find("Player")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"Player"`)
}
