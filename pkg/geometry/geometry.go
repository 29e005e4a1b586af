// Package geometry converts between pointer pixels and canvas percentages.
//
// Layer geometry is kept in percent of the canvas so it does not depend on the
// rendered size. Pixels only appear at the interaction and render boundary, where
// the canvas rectangle is measured again for every event.
package geometry

import "math"

// Point is a position in screen pixels (or terminal cells).
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in screen pixels, as returned by a
// bounding-rect measurement of the canvas element.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Empty reports whether the rectangle has no area. Percent conversions against an
// empty canvas are undefined.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Left+r.Width &&
		p.Y >= r.Top && p.Y <= r.Top+r.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// DeltaPercent converts the pointer movement from start to current into percent
// of the canvas width and height. ok is false for an empty canvas.
func DeltaPercent(start, current Point, canvas Rect) (dx, dy float64, ok bool) {
	if canvas.Empty() {
		return 0, 0, false
	}
	dx = (current.X - start.X) / canvas.Width * 100
	dy = (current.Y - start.Y) / canvas.Height * 100
	return dx, dy, true
}

// ToPercent converts a pointer position into percent coordinates of the canvas.
func ToPercent(p Point, canvas Rect) (Point, bool) {
	if canvas.Empty() {
		return Point{}, false
	}
	return Point{
		X: (p.X - canvas.Left) / canvas.Width * 100,
		Y: (p.Y - canvas.Top) / canvas.Height * 100,
	}, true
}

// BoxToScreen maps a percent box onto the canvas, returning pixels.
func BoxToScreen(x, y, width, height float64, canvas Rect) Rect {
	return Rect{
		Left:   canvas.Left + x/100*canvas.Width,
		Top:    canvas.Top + y/100*canvas.Height,
		Width:  width / 100 * canvas.Width,
		Height: height / 100 * canvas.Height,
	}
}

// Angle returns the angle of p around center in radians, as atan2(dy, dx).
// Screen y grows downward, so positive angles turn clockwise.
func Angle(center, p Point) float64 {
	return math.Atan2(p.Y-center.Y, p.X-center.X)
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Rotate turns p around center by deg degrees, clockwise on screen.
func Rotate(p, center Point, deg float64) Point {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	dx, dy := p.X-center.X, p.Y-center.Y
	return Point{
		X: center.X + dx*cos - dy*sin,
		Y: center.Y + dx*sin + dy*cos,
	}
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
