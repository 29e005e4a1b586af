package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeltaPercent(t *testing.T) {
	canvas := Rect{Left: 100, Top: 50, Width: 600, Height: 300}

	dx, dy, ok := DeltaPercent(Point{X: 200, Y: 100}, Point{X: 260, Y: 115}, canvas)
	assert.True(t, ok)
	assert.InDelta(t, 10.0, dx, 1e-9)
	assert.InDelta(t, 5.0, dy, 1e-9)

	_, _, ok = DeltaPercent(Point{}, Point{X: 1}, Rect{Width: 0, Height: 10})
	assert.False(t, ok)
}

func TestToPercent(t *testing.T) {
	canvas := Rect{Left: 10, Top: 20, Width: 200, Height: 100}

	p, ok := ToPercent(Point{X: 110, Y: 45}, canvas)
	assert.True(t, ok)
	assert.InDelta(t, 50.0, p.X, 1e-9)
	assert.InDelta(t, 25.0, p.Y, 1e-9)

	// off-canvas pointers map outside [0, 100]
	p, _ = ToPercent(Point{X: 0, Y: 220}, canvas)
	assert.Less(t, p.X, 0.0)
	assert.Greater(t, p.Y, 100.0)
}

func TestBoxToScreen(t *testing.T) {
	canvas := Rect{Left: 100, Top: 100, Width: 400, Height: 200}
	r := BoxToScreen(25, 25, 50, 50, canvas)

	assert.Equal(t, Rect{Left: 200, Top: 150, Width: 200, Height: 100}, r)
	assert.Equal(t, Point{X: 300, Y: 200}, r.Center())
}

func TestAngle(t *testing.T) {
	c := Point{X: 50, Y: 50}

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"right", Point{X: 60, Y: 50}, 0},
		{"below", Point{X: 50, Y: 60}, 90},
		{"left", Point{X: 40, Y: 50}, 180},
		{"above", Point{X: 50, Y: 40}, -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Degrees(Angle(c, tt.p)), 1e-9)
		})
	}
}

func TestRotate(t *testing.T) {
	c := Point{X: 0, Y: 0}
	p := Rotate(Point{X: 10, Y: 0}, c, 90)

	assert.InDelta(t, 0, p.X, 1e-9)
	assert.InDelta(t, 10, p.Y, 1e-9)

	back := Rotate(p, c, -90)
	assert.InDelta(t, 10, back.X, 1e-9)
	assert.InDelta(t, 0, back.Y, 1e-9)
}

func TestRectContainsAndFinite(t *testing.T) {
	r := Rect{Left: 0, Top: 0, Width: 10, Height: 10}
	assert.True(t, r.Contains(Point{X: 10, Y: 10}))
	assert.False(t, r.Contains(Point{X: 10.1, Y: 5}))
	assert.True(t, Rect{Width: 0, Height: 5}.Empty())

	assert.True(t, Finite(1))
	assert.False(t, Finite(math.NaN()))
	assert.False(t, Finite(math.Inf(-1)))
}
