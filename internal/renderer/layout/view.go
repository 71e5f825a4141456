package layout

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// GrowSteps is the number of Grow calls from the minimum to full size.
const GrowSteps = 4

// View is the game viewport: its style and an animated size between the
// minimum and 1.
type View struct {
	style    Style
	min      float64
	size     float64
	target   float64
	duration float32
	easing   ease.TweenFunc
	tween    *gween.Tween
}

// ViewOption configures a View.
type ViewOption func(*View)

// WithAnimation sets how long size changes take, in seconds. Zero snaps.
func WithAnimation(seconds float64) ViewOption {
	return func(v *View) {
		if seconds >= 0 {
			v.duration = float32(seconds)
		}
	}
}

// WithEasing sets the easing function for size changes.
func WithEasing(fn ease.TweenFunc) ViewOption {
	return func(v *View) {
		if fn != nil {
			v.easing = fn
		}
	}
}

// NewView creates a view at its minimum size. The minimum is clamped to
// (0, 1].
func NewView(style Style, min float64, opts ...ViewOption) *View {
	if min <= 0 || min > 1 {
		min = 1
	}
	v := &View{
		style:  style,
		min:    min,
		size:   min,
		target: min,
		easing: ease.OutQuad,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Style returns the current style.
func (v *View) Style() Style { return v.style }

// SetStyle changes the anchor. It takes effect immediately.
func (v *View) SetStyle(s Style) { v.style = s }

// Min returns the minimum size.
func (v *View) Min() float64 { return v.min }

// Size returns the current, possibly mid-animation, size.
func (v *View) Size() float64 { return v.size }

// Target returns the size the view is moving toward.
func (v *View) Target() float64 { return v.target }

// Animating reports whether a size change is in progress.
func (v *View) Animating() bool { return v.tween != nil }

// Step returns the Grow and Shrink increment.
func (v *View) Step() float64 { return (1 - v.min) / GrowSteps }

// Grow increases the target size by one step, up to 1.
func (v *View) Grow() { v.SetSize(v.target + v.Step()) }

// Shrink decreases the target size by one step, down to the minimum.
func (v *View) Shrink() { v.SetSize(v.target - v.Step()) }

// SetSize sets the target size, clamped to [min, 1].
func (v *View) SetSize(size float64) {
	size = clamp(size, v.min, 1)
	if size == v.target {
		return
	}
	v.target = size
	if v.duration <= 0 {
		v.size = size
		v.tween = nil
		return
	}
	v.tween = gween.New(float32(v.size), float32(size), v.duration, v.easing)
}

// Update advances the animation by dt seconds. It reports whether the size
// changed.
func (v *View) Update(dt float64) bool {
	if v.tween == nil {
		return false
	}
	cur, done := v.tween.Update(float32(dt))
	if done {
		v.size = v.target
		v.tween = nil
		return true
	}
	v.size = clamp(float64(cur), v.min, 1)
	return true
}

// Rect returns the viewport rectangle at the current size.
func (v *View) Rect() Rect {
	return Compute(v.style, v.size, v.size)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
