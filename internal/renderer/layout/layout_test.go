package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		style Style
		want  Rect
	}{
		{Center, Rect{Left: 0.25, Right: 0.75, Bottom: 0.25, Top: 0.75}},
		{BottomLeft, Rect{Left: 0, Right: 0.5, Bottom: 0, Top: 0.5}},
		{BottomRight, Rect{Left: 0.5, Right: 1, Bottom: 0, Top: 0.5}},
		{TopLeft, Rect{Left: 0, Right: 0.5, Bottom: 0.5, Top: 1}},
		{TopRight, Rect{Left: 0.5, Right: 1, Bottom: 0.5, Top: 1}},
		{Style(42), Rect{Left: 0.25, Right: 0.75, Bottom: 0.25, Top: 0.75}},
	}

	for _, tt := range tests {
		t.Run(tt.style.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.style, 0.5, 0.5))
		})
	}
}

func TestRect_Region(t *testing.T) {
	r := Compute(BottomLeft, 0.5, 0.5).Region()
	assert.Equal(t, Rect{Left: -1, Right: 0, Bottom: -1, Top: 0}, r)
}

func TestRect_Contains(t *testing.T) {
	r := Compute(TopRight, 0.5, 0.5)
	assert.True(t, r.Contains(0.75, 0.75))
	assert.True(t, r.Contains(0.5, 0.5))
	assert.False(t, r.Contains(0.25, 0.75))
	assert.False(t, r.Contains(1, 1))
}

func TestRect_ToCells(t *testing.T) {
	c := Compute(BottomLeft, 0.5, 0.5).ToCells(80, 24)
	assert.Equal(t, Cells{X: 0, Y: 12, W: 40, H: 12}, c)
	assert.True(t, c.Contains(0, 23))
	assert.False(t, c.Contains(0, 11))
	assert.False(t, c.Empty())

	c = Compute(TopRight, 0.5, 0.5).ToCells(80, 24)
	assert.Equal(t, Cells{X: 40, Y: 0, W: 40, H: 12}, c)
}

func TestNormalize(t *testing.T) {
	x, y := Normalize(0, 23, 80, 24)
	assert.InDelta(t, 0.00625, x, 1e-9)
	assert.InDelta(t, 1.0/48, y, 1e-9)

	x, y = Normalize(3, 3, 0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestParseStyle(t *testing.T) {
	for _, s := range []Style{Center, BottomLeft, BottomRight, TopLeft, TopRight} {
		got, err := ParseStyle(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseStyle("middle")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Style(-1).String())
}
