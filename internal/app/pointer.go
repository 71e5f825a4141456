package app

import (
	"sync"

	"github.com/dshills/demon/internal/renderer/layout"
)

// pointerState tracks where the pointer is relative to the game view and
// the UI panel. It implements script.PointerState.
//
// Until the first pointer report the game view is assumed to have the
// pointer, so headless runs and terminals without mouse support still
// update scripts. After focus loss neither view has it until the next
// report.
type pointerState struct {
	mu sync.RWMutex

	rect func() layout.Rect

	known    bool
	lost     bool
	x, y     float64
	overUI   bool
	centered bool
}

func newPointerState(rect func() layout.Rect) *pointerState {
	return &pointerState{rect: rect}
}

// move records a pointer position in normalized coordinates.
func (p *pointerState) move(x, y float64, overUI bool) {
	p.mu.Lock()
	p.known = true
	p.lost = false
	p.x, p.y = x, y
	p.overUI = overUI
	p.mu.Unlock()
}

// forget drops the position, as when the window loses focus.
func (p *pointerState) forget() {
	p.mu.Lock()
	p.known = false
	p.lost = true
	p.overUI = false
	p.mu.Unlock()
}

func (p *pointerState) setCentered(on bool) {
	p.mu.Lock()
	p.centered = on
	p.mu.Unlock()
}

func (p *pointerState) inGame() (known, lost, in bool) {
	p.mu.RLock()
	known, lost, x, y := p.known, p.lost, p.x, p.y
	p.mu.RUnlock()
	if !known {
		return false, lost, false
	}
	return true, false, p.rect().Contains(x, y)
}

// HasPointer implements script.PointerState.
func (p *pointerState) HasPointer() bool {
	known, lost, in := p.inGame()
	if lost {
		return false
	}
	return !known || in
}

// EditorHasPointer implements script.PointerState.
func (p *pointerState) EditorHasPointer() bool {
	known, _, in := p.inGame()
	return known && !in
}

// PointerCentered implements script.PointerState.
func (p *pointerState) PointerCentered() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.centered
}

// OverUI reports whether the pointer is over the UI panel.
func (p *pointerState) OverUI() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.known && p.overUI
}
