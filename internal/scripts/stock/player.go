package stock

import (
	"math"
	"sync"

	"github.com/dshills/demon/internal/script"
)

// Player movement rates.
const (
	TurnRate = 300.0 // degrees per second
	RunSpeed = 25.0  // units per second
)

var playerButtons = script.ButtonMap{
	"a":    {Flag: "left", Down: true},
	"d":    {Flag: "right", Down: true},
	"w":    {Flag: "forward", Down: true},
	"a-up": {Flag: "left", Down: false},
	"d-up": {Flag: "right", Down: false},
	"w-up": {Flag: "forward", Down: false},
}

// Player is a character roaming the ground plane. a and d turn it, w runs
// it forward along its heading.
type Player struct {
	*script.Script

	mu      sync.RWMutex
	pos     Vec2
	heading float64
	moving  bool
}

// NewPlayer is the Player factory.
func NewPlayer(host *script.Host) script.Behavior {
	p := &Player{}
	p.Script = script.New(PlayerName, host, p)
	p.RegisterButtons(playerButtons)
	return p
}

// OnUpdate integrates heading and position.
func (p *Player) OnUpdate(dt float64) {
	left, right, forward := p.IsDown("left"), p.IsDown("right"), p.IsDown("forward")

	p.mu.Lock()
	defer p.mu.Unlock()

	if left {
		p.heading += TurnRate * dt
	}
	if right {
		p.heading -= TurnRate * dt
	}
	p.heading = math.Mod(p.heading, 360)
	if p.heading < 0 {
		p.heading += 360
	}

	if forward {
		rad := p.heading * math.Pi / 180
		step := RunSpeed * dt
		p.pos = p.pos.Add(Vec2{X: step * math.Sin(rad), Y: -step * math.Cos(rad)})
	}

	moving := forward || left || right
	if moving != p.moving {
		p.moving = moving
		if moving {
			p.Logger().Debug().Msg("running")
		} else {
			p.Logger().Debug().Msg("idle")
		}
	}
}

// Position returns the player position.
func (p *Player) Position() Vec2 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pos
}

// Heading returns the heading in degrees, in [0, 360).
func (p *Player) Heading() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.heading
}

// Moving reports whether any movement key is held.
func (p *Player) Moving() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.moving
}
