package stock

import (
	"sync"

	"github.com/dshills/demon/internal/script"
)

// Follow camera constraints.
const (
	CamMinDistance = 5.0
	CamMaxDistance = 20.0
	CamPanSpeed    = 20.0 // units per second
)

var camButtons = script.ButtonMap{
	"e":    {Flag: "cam-left", Down: true},
	"q":    {Flag: "cam-right", Down: true},
	"e-up": {Flag: "cam-left", Down: false},
	"q-up": {Flag: "cam-right", Down: false},
}

// FollowCam keeps a camera between CamMinDistance and CamMaxDistance of
// the Player. e and q pan it sideways.
type FollowCam struct {
	*script.Script

	mu       sync.RWMutex
	target   Positioner
	pos      Vec2
	attached bool
}

// NewFollowCam is the FollowCam factory.
func NewFollowCam(host *script.Host) script.Behavior {
	c := &FollowCam{}
	c.Script = script.New(FollowCamName, host, c)
	c.RegisterButtons(camButtons)
	return c
}

// OnUpdate pans the camera and applies the distance constraint.
func (c *FollowCam) OnUpdate(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.target == nil {
		t, ok := findPositioner(c.Host(), PlayerName)
		if !ok {
			return
		}
		c.target = t
	}
	target := c.target.Position()
	if !c.attached {
		c.pos = Vec2{X: target.X, Y: target.Y - CamMaxDistance}
		c.attached = true
	}

	switch {
	case c.IsDown("cam-left"):
		c.pos.X -= CamPanSpeed * dt
	case c.IsDown("cam-right"):
		c.pos.X += CamPanSpeed * dt
	}

	v := target.Sub(c.pos)
	d := v.Len()
	switch {
	case d > CamMaxDistance:
		c.pos = c.pos.Add(v.Scale((d - CamMaxDistance) / d))
	case d > 0 && d < CamMinDistance:
		c.pos = c.pos.Sub(v.Scale((CamMinDistance - d) / d))
	}
}

// OnStop forgets the target so a reloaded Player is found again.
func (c *FollowCam) OnStop() {
	c.mu.Lock()
	c.target = nil
	c.attached = false
	c.mu.Unlock()
}

// Position returns the camera position.
func (c *FollowCam) Position() Vec2 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pos
}

// Distance returns the distance to the target, or zero before the camera
// found one.
func (c *FollowCam) Distance() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.target == nil {
		return 0
	}
	return c.target.Position().Sub(c.pos).Len()
}
