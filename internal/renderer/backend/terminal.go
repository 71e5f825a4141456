package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/demon/internal/renderer/layout"
)

// Terminal implements Backend using tcell for terminal output.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	events chan tcell.Event
	wg     sync.WaitGroup
	inited bool
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen wraps an existing screen, such as a
// tcell.SimulationScreen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen, events: make(chan tcell.Event, 256)}
}

// Screen returns the underlying screen.
func (t *Terminal) Screen() tcell.Screen { return t.screen }

// Init initializes the screen and starts the event pump.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.inited {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return err
	}

	// Enable mouse support by default
	t.screen.EnableMouse()
	t.screen.EnableFocus()
	t.screen.HideCursor()

	t.inited = true
	t.wg.Add(1)
	go t.pump()
	return nil
}

// pump moves screen events into the buffered channel until the screen is
// finalized.
func (t *Terminal) pump() {
	defer t.wg.Done()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		default:
			// Frame loop stalled; drop rather than block the terminal.
		}
	}
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	if !t.inited {
		t.mu.Unlock()
		return
	}
	t.inited = false
	t.screen.Fini()
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) Poll() []tcell.Event {
	var evs []tcell.Event
	for {
		select {
		case ev := <-t.events:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

func (t *Terminal) DrawText(x, y int, s string, style tcell.Style) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	return drawText(func(cx, cy int, r rune) {
		t.screen.SetContent(cx, cy, r, nil, style)
	}, w, h, x, y, s)
}

func (t *Terminal) DrawBox(c layout.Cells, title string, style tcell.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, h := t.screen.Size()
	drawBox(func(cx, cy int, r rune) {
		t.screen.SetContent(cx, cy, r, nil, style)
	}, w, h, c, title)
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}
