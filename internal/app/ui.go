package app

import (
	"strings"
	"sync"
)

// DefaultPanelLines caps the lines kept per render pass.
const DefaultPanelLines = 64

// Panel collects the lines behaviors print during one render_ui pass. It
// implements script.UI.
type Panel struct {
	mu    sync.Mutex
	lines []string
	max   int
}

// NewPanel creates a panel keeping at most max lines per pass. A
// non-positive max uses DefaultPanelLines.
func NewPanel(max int) *Panel {
	if max <= 0 {
		max = DefaultPanelLines
	}
	return &Panel{max: max}
}

// Print appends line. Embedded newlines start new lines; lines past the
// cap are dropped.
func (p *Panel) Print(line string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, l := range strings.Split(line, "\n") {
		if len(p.lines) >= p.max {
			return
		}
		p.lines = append(p.lines, l)
	}
}

// Lines returns a copy of the lines printed since the last Reset.
func (p *Panel) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.lines))
	copy(out, p.lines)
	return out
}

// Len returns the number of lines printed since the last Reset.
func (p *Panel) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.lines)
}

// Reset clears the panel for the next pass.
func (p *Panel) Reset() {
	p.mu.Lock()
	p.lines = p.lines[:0]
	p.mu.Unlock()
}
