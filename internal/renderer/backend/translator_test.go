package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/demon/internal/event"
)

func names(evs []event.Event) []string {
	out := make([]string, len(evs))
	for i, e := range evs {
		out[i] = e.Name
	}
	return out
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), "a"},
		{"upper", tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModNone), "shift-g"},
		{"shifted digit", tcell.NewEventKey(tcell.KeyRune, '!', tcell.ModNone), "shift-1"},
		{"shifted five", tcell.NewEventKey(tcell.KeyRune, '%', tcell.ModNone), "shift-5"},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), "space"},
		{"ctrl", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), "control-s"},
		{"alt", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "alt-x"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "escape"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "enter"},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), "tab"},
		{"arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "arrow_up"},
		{"function", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "f5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyName(tt.ev))
		})
	}
}

func TestTranslator_SyntheticRelease(t *testing.T) {
	tr := NewTranslator()

	got := tr.Frame([]tcell.Event{
		tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'G', tcell.ModNone),
	})
	assert.Equal(t, []string{"w", "shift-g"}, names(got))

	got = tr.Frame(nil)
	assert.Equal(t, []string{"w-up", "shift-g-up"}, names(got))

	assert.Empty(t, tr.Frame(nil))
}

func TestTranslator_Mouse(t *testing.T) {
	tr := NewTranslator()

	_, _, ok := tr.Pointer()
	assert.False(t, ok)

	got := tr.Frame([]tcell.Event{
		tcell.NewEventMouse(10, 5, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone),
		tcell.NewEventMouse(12, 5, tcell.Button1|tcell.Button2, tcell.ModNone),
		tcell.NewEventMouse(12, 5, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(12, 5, tcell.WheelUp, tcell.ModNone),
	})
	assert.Equal(t, []string{
		"mouse-move", "mouse1",
		"mouse-move", "mouse3",
		"mouse1-up", "mouse3-up",
		"mouse-wheel-up",
	}, names(got))

	x, y, ok := tr.Pointer()
	assert.True(t, ok)
	assert.Equal(t, 12, x)
	assert.Equal(t, 5, y)

	p, ok := got[2].Param(0)
	require.True(t, ok)
	v, _ := p.Int()
	assert.Equal(t, int64(12), v)

	for _, e := range got {
		assert.True(t, event.IsPointerEvent(e.Name), e.Name)
	}
}

func TestTranslator_ResizeAndFocus(t *testing.T) {
	tr := NewTranslator()
	got := tr.Frame([]tcell.Event{
		tcell.NewEventResize(100, 40),
		tcell.NewEventFocus(false),
		tcell.NewEventFocus(true),
	})
	require.Equal(t, []string{event.WindowEvent, FocusOut, FocusIn}, names(got))

	w, _ := got[0].Param(0)
	h, _ := got[0].Param(1)
	wv, _ := w.Int()
	hv, _ := h.Int()
	assert.Equal(t, int64(100), wv)
	assert.Equal(t, int64(40), hv)
}

func TestTranslator_FocusOutDropsPointer(t *testing.T) {
	tr := NewTranslator()
	tr.Frame([]tcell.Event{tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone)})
	_, _, ok := tr.Pointer()
	require.True(t, ok)

	got := tr.Frame([]tcell.Event{tcell.NewEventFocus(false)})
	assert.Equal(t, []string{FocusOut}, names(got))
	_, _, ok = tr.Pointer()
	assert.False(t, ok)

	// The same cell is reported again after focus returns.
	got = tr.Frame([]tcell.Event{tcell.NewEventMouse(4, 2, tcell.ButtonNone, tcell.ModNone)})
	assert.Equal(t, []string{MouseMove}, names(got))
	_, _, ok = tr.Pointer()
	assert.True(t, ok)
}
