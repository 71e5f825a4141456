// Package stock provides the demo scripts compiled into the binary. They
// are registered in the registry module "builtin" and loaded like any
// other module: the symbol list decides which ones run.
package stock

import (
	"math"

	"github.com/dshills/demon/internal/plugin"
	"github.com/dshills/demon/internal/script"
)

// Module is the registry path the stock scripts are registered under.
const Module = "builtin"

// Script names.
const (
	PlayerName    = "Player"
	FollowCamName = "FollowCam"
	HudName       = "Hud"
	TextNodeName  = "TextNode"
	OverlayName   = "Editor_Overlay"
)

// Register adds every stock script to r under Module.
func Register(r *plugin.Registry) error {
	factories := []struct {
		name string
		f    plugin.Factory
	}{
		{PlayerName, NewPlayer},
		{FollowCamName, NewFollowCam},
		{HudName, NewHud},
		{TextNodeName, NewTextNode},
		{OverlayName, NewOverlay},
	}
	for _, e := range factories {
		if err := r.Register(Module, e.name, e.f); err != nil {
			return err
		}
	}
	return nil
}

// Vec2 is a point on the ground plane.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * k.
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }

// Len returns the length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Positioner is a script with a position, such as Player.
type Positioner interface {
	Position() Vec2
}

// findPositioner looks up a sibling script that has a position.
func findPositioner(host *script.Host, name string) (Positioner, bool) {
	b, err := host.Find(name)
	if err != nil {
		return nil, false
	}
	p, ok := b.(Positioner)
	return p, ok
}
