package stock

import (
	"strings"
	"sync"

	"github.com/dshills/demon/internal/event"
	"github.com/dshills/demon/internal/renderer/backend"
	"github.com/dshills/demon/internal/script"
)

// OverlayHistory is the number of raw events the overlay shows.
const OverlayHistory = 8

// Overlay is the editor script. It watches every raw event and shows the
// most recent ones together with the current mode.
type Overlay struct {
	*script.Script

	mu     sync.Mutex
	recent []string
	game   bool
}

// NewOverlay is the Editor_Overlay factory.
func NewOverlay(host *script.Host) script.Behavior {
	o := &Overlay{}
	o.Script = script.New(OverlayName, host, o)
	return o
}

// OnStart follows the game mode events.
func (o *Overlay) OnStart() error {
	o.Accept(event.GameModeEnabled, func() { o.setGame(true) })
	o.Accept(event.GameModeDisabled, func() { o.setGame(false) })
	return nil
}

func (o *Overlay) setGame(on bool) {
	o.mu.Lock()
	o.game = on
	o.mu.Unlock()
}

// OnEvent implements script.EventHandler. Pointer motion is not recorded.
func (o *Overlay) OnEvent(name string) {
	if name == backend.MouseMove {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recent = append(o.recent, name)
	if len(o.recent) > OverlayHistory {
		o.recent = o.recent[len(o.recent)-OverlayHistory:]
	}
}

// Recent returns the most recent events, oldest first.
func (o *Overlay) Recent() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.recent))
	copy(out, o.recent)
	return out
}

// RenderUI implements script.UIRenderer.
func (o *Overlay) RenderUI(ui script.UI) {
	o.mu.Lock()
	mode := "editor"
	if o.game {
		mode = "game"
	}
	recent := strings.Join(o.recent, " ")
	o.mu.Unlock()

	ui.Print("mode: " + mode)
	if recent != "" {
		ui.Print("events: " + recent)
	}
}
