// Package backend provides the terminal frame source: drawing for the
// layout and UI panel, and raw input translated into engine event names.
package backend

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/demon/internal/renderer/layout"
)

// Backend defines the interface for terminal/display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// Poll returns the events received since the last call without
	// blocking.
	Poll() []tcell.Event

	// Clear clears the entire screen with the default style.
	Clear()

	// DrawText writes s starting at x, y and returns the number of cells
	// used. Text past the right edge is cut.
	DrawText(x, y int, s string, style tcell.Style) int

	// DrawBox outlines c with an optional title on the top edge.
	DrawBox(c layout.Cells, title string, style tcell.Style)

	// Show synchronizes the internal buffer with the actual display.
	Show()
}

// NullBackend is an in-memory backend for tests. Events queued with
// Inject are returned by the next Poll.
type NullBackend struct {
	mu     sync.Mutex
	width  int
	height int
	cells  [][]rune
	queue  []tcell.Event
	shows  int
	inited bool
}

// NewNullBackend creates a null backend with the given size.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{width: width, height: height}
	b.clear()
	return b
}

func (b *NullBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inited = true
	return nil
}

func (b *NullBackend) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inited = false
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// Resize changes the size and queues a resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.clear()
	b.mu.Unlock()
	b.Inject(tcell.NewEventResize(width, height))
}

// Inject queues events for the next Poll.
func (b *NullBackend) Inject(evs ...tcell.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.queue = append(b.queue, evs...)
}

func (b *NullBackend) Poll() []tcell.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	evs := b.queue
	b.queue = nil
	return evs
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clear()
}

func (b *NullBackend) clear() {
	b.cells = make([][]rune, b.height)
	for y := range b.cells {
		row := make([]rune, b.width)
		for x := range row {
			row[x] = ' '
		}
		b.cells[y] = row
	}
}

func (b *NullBackend) DrawText(x, y int, s string, _ tcell.Style) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return drawText(func(cx, cy int, r rune) { b.cells[cy][cx] = r }, b.width, b.height, x, y, s)
}

func (b *NullBackend) DrawBox(c layout.Cells, title string, _ tcell.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	drawBox(func(cx, cy int, r rune) { b.cells[cy][cx] = r }, b.width, b.height, c, title)
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shows++
}

// Line returns row y with trailing blanks removed.
func (b *NullBackend) Line(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	return strings.TrimRight(string(b.cells[y]), " ")
}

// Shows returns how many times Show was called.
func (b *NullBackend) Shows() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.shows
}

type setFunc func(x, y int, r rune)

func drawText(set setFunc, width, height, x, y int, s string) int {
	if y < 0 || y >= height {
		return 0
	}
	n := 0
	for _, r := range s {
		cx := x + n
		if cx >= width {
			break
		}
		if cx >= 0 {
			set(cx, y, r)
		}
		n++
	}
	return n
}

func drawBox(set setFunc, width, height int, c layout.Cells, title string) {
	if c.Empty() {
		return
	}
	put := func(x, y int, r rune) {
		if x >= 0 && y >= 0 && x < width && y < height {
			set(x, y, r)
		}
	}
	x1, y1 := c.X+c.W-1, c.Y+c.H-1
	for x := c.X; x <= x1; x++ {
		put(x, c.Y, tcell.RuneHLine)
		put(x, y1, tcell.RuneHLine)
	}
	for y := c.Y; y <= y1; y++ {
		put(c.X, y, tcell.RuneVLine)
		put(x1, y, tcell.RuneVLine)
	}
	put(c.X, c.Y, tcell.RuneULCorner)
	put(x1, c.Y, tcell.RuneURCorner)
	put(c.X, y1, tcell.RuneLLCorner)
	put(x1, y1, tcell.RuneLRCorner)

	if title != "" && c.W > 4 {
		runes := []rune(" " + title + " ")
		if len(runes) > c.W-2 {
			runes = runes[:c.W-2]
		}
		for i, r := range runes {
			put(c.X+1+i, c.Y, r)
		}
	}
}
