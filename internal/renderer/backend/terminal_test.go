package backend

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/demon/internal/renderer/layout"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("")
	term := NewTerminalWithScreen(sim)
	require.NoError(t, term.Init())
	sim.SetSize(40, 10)
	t.Cleanup(term.Shutdown)
	return term, sim
}

func simLine(sim tcell.SimulationScreen, y int) string {
	cells, w, _ := sim.GetContents()
	var out []rune
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) > 0 {
			out = append(out, c.Runes[0])
		} else {
			out = append(out, ' ')
		}
	}
	return string(out)
}

func TestTerminal_Poll(t *testing.T) {
	term, sim := newSimTerminal(t)

	require.NoError(t, sim.PostEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))

	var key *tcell.EventKey
	require.Eventually(t, func() bool {
		for _, ev := range term.Poll() {
			if k, ok := ev.(*tcell.EventKey); ok {
				key = k
			}
		}
		return key != nil
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 'q', key.Rune())

	assert.Empty(t, term.Poll())
}

func TestTerminal_Draw(t *testing.T) {
	term, sim := newSimTerminal(t)

	w, h := term.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 10, h)

	term.Clear()
	n := term.DrawText(2, 1, "hello", tcell.StyleDefault)
	assert.Equal(t, 5, n)
	term.DrawBox(layout.Cells{X: 0, Y: 3, W: 10, H: 4}, "game", tcell.StyleDefault)
	term.Show()

	assert.Equal(t, "hello", simLine(sim, 1)[2:7])
	assert.Equal(t, tcell.RuneULCorner, []rune(simLine(sim, 3))[0])
	assert.Equal(t, " game ", string([]rune(simLine(sim, 3))[1:7]))

	// Clipped at the right edge.
	assert.Equal(t, 3, term.DrawText(37, 0, "abcdef", tcell.StyleDefault))
}

func TestTerminal_ShutdownIdempotent(t *testing.T) {
	term, _ := newSimTerminal(t)
	term.Shutdown()
	term.Shutdown()
}

func TestNullBackend(t *testing.T) {
	b := NewNullBackend(20, 5)
	require.NoError(t, b.Init())

	b.DrawText(1, 0, "hud", tcell.StyleDefault)
	b.DrawBox(layout.Cells{X: 0, Y: 1, W: 6, H: 3}, "", tcell.StyleDefault)
	b.Show()

	assert.Equal(t, " hud", b.Line(0))
	assert.Equal(t, string([]rune{tcell.RuneLLCorner, tcell.RuneHLine, tcell.RuneHLine, tcell.RuneHLine, tcell.RuneHLine, tcell.RuneLRCorner}), b.Line(3))
	assert.Equal(t, 1, b.Shows())

	b.Inject(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))
	b.Resize(30, 6)
	evs := b.Poll()
	require.Len(t, evs, 2)
	_, ok := evs[1].(*tcell.EventResize)
	assert.True(t, ok)
	assert.Empty(t, b.Poll())

	w, h := b.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 6, h)
	assert.Equal(t, "", b.Line(99))
}
