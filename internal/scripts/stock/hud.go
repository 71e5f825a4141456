package stock

import (
	"fmt"

	"github.com/dshills/demon/internal/script"
)

// Hud prints the player and camera state on every UI pass.
type Hud struct {
	*script.Script
}

// NewHud is the Hud factory.
func NewHud(host *script.Host) script.Behavior {
	h := &Hud{}
	h.Script = script.New(HudName, host, h)
	return h
}

// RenderUI implements script.UIRenderer.
func (h *Hud) RenderUI(ui script.UI) {
	b, err := h.Host().Find(PlayerName)
	if err != nil {
		ui.Print("player: -")
		return
	}
	if p, ok := b.(*Player); ok {
		pos := p.Position()
		state := "idle"
		if p.Moving() {
			state = "running"
		}
		ui.Print(fmt.Sprintf("player: x=%.1f y=%.1f heading=%.0f %s", pos.X, pos.Y, p.Heading(), state))
	}

	if b, err := h.Host().Find(FollowCamName); err == nil {
		if c, ok := b.(*FollowCam); ok {
			ui.Print(fmt.Sprintf("camera: distance=%.1f", c.Distance()))
		}
	}
}
