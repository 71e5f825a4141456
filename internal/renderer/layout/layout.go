// Package layout computes where the game viewport sits inside the editor
// window.
//
// Rectangles use normalized window coordinates: x grows to the right and y
// grows upward, both in [0, 1].
package layout

import (
	"fmt"
	"math"
)

// Style anchors the game viewport.
type Style int

const (
	Center Style = iota
	BottomLeft
	BottomRight
	TopLeft
	TopRight
)

var styleNames = [...]string{
	Center:      "center",
	BottomLeft:  "bottom_left",
	BottomRight: "bottom_right",
	TopLeft:     "top_left",
	TopRight:    "top_right",
}

// String returns the style name.
func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "unknown"
	}
	return styleNames[s]
}

// ParseStyle parses a style name.
func ParseStyle(name string) (Style, error) {
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return Center, fmt.Errorf("unknown view style %q", name)
}

// Rect is a normalized rectangle.
type Rect struct {
	Left, Right, Bottom, Top float64
}

// Compute places a w by h viewport with the given style. Unknown styles
// are centered.
func Compute(style Style, w, h float64) Rect {
	switch style {
	case BottomLeft:
		return Rect{Left: 0, Right: w, Bottom: 0, Top: h}
	case BottomRight:
		return Rect{Left: 1 - w, Right: 1, Bottom: 0, Top: h}
	case TopLeft:
		return Rect{Left: 0, Right: w, Bottom: 1 - h, Top: 1}
	case TopRight:
		return Rect{Left: 1 - w, Right: 1, Bottom: 1 - h, Top: 1}
	default:
		return Rect{Left: 0.5 - w/2, Right: 0.5 + w/2, Bottom: 0.5 - h/2, Top: 0.5 + h/2}
	}
}

// Width returns the rectangle width.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the rectangle height.
func (r Rect) Height() float64 { return r.Top - r.Bottom }

// Region maps r from [0, 1] to the [-1, 1] range used by pointer regions.
func (r Rect) Region() Rect {
	return Rect{
		Left:   2*r.Left - 1,
		Right:  2*r.Right - 1,
		Bottom: 2*r.Bottom - 1,
		Top:    2*r.Top - 1,
	}
}

// Contains reports whether the point lies inside r. The left and bottom
// edges are inclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right && y >= r.Bottom && y < r.Top
}

// Cells is a rectangle of terminal cells. Y grows downward.
type Cells struct {
	X, Y, W, H int
}

// Contains reports whether the cell lies inside c.
func (c Cells) Contains(x, y int) bool {
	return x >= c.X && x < c.X+c.W && y >= c.Y && y < c.Y+c.H
}

// Empty reports whether c has no area.
func (c Cells) Empty() bool { return c.W <= 0 || c.H <= 0 }

// ToCells maps r onto a cols by rows grid.
func (r Rect) ToCells(cols, rows int) Cells {
	x0 := int(math.Round(r.Left * float64(cols)))
	x1 := int(math.Round(r.Right * float64(cols)))
	y0 := int(math.Round((1 - r.Top) * float64(rows)))
	y1 := int(math.Round((1 - r.Bottom) * float64(rows)))
	return Cells{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Normalize converts a cell position to normalized coordinates at the
// cell's center.
func Normalize(x, y, cols, rows int) (float64, float64) {
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	nx := (float64(x) + 0.5) / float64(cols)
	ny := 1 - (float64(y)+0.5)/float64(rows)
	return nx, ny
}
