package editor

import (
	"math"

	"github.com/inkstudio/inkstudio/pkg/geometry"
	"github.com/inkstudio/inkstudio/pkg/models"
)

// HandleMetrics sizes the interactive handles drawn on the selected layer, in
// the same units as the canvas rectangle.
type HandleMetrics struct {
	// Radius is the half-size of a handle's square hit area.
	Radius float64
	// RotateOffset is the distance from the top edge's midpoint to the
	// rotate handle's center.
	RotateOffset float64
}

// DefaultHandleMetrics match a 24px handle with the rotate knob 20px above the
// layer.
var DefaultHandleMetrics = HandleMetrics{Radius: 12, RotateOffset: 20}

// HandlePositions returns the screen centers of the resize and rotate handles
// of layer, rotated with it.
func HandlePositions(layer models.Layer, canvas geometry.Rect, m HandleMetrics) (resize, rotate geometry.Point) {
	box := geometry.BoxToScreen(layer.X, layer.Y, layer.Width, layer.Height, canvas)
	center := box.Center()
	resize = geometry.Rotate(geometry.Point{X: box.Left + box.Width, Y: box.Top + box.Height}, center, layer.Rotation)
	rotate = geometry.Rotate(geometry.Point{X: center.X, Y: box.Top - m.RotateOffset}, center, layer.Rotation)
	return resize, rotate
}

// HitTest finds the layer part under p. Handles of the selected layer win over
// any body; bodies are tested from the top of the stack down. The base layer is
// never hit. A HitNone result inside the canvas is a background click.
func HitTest(stack models.Stack, selected string, p geometry.Point, canvas geometry.Rect, m HandleMetrics) HitTarget {
	if canvas.Empty() {
		return HitTarget{}
	}

	if layer, ok := stack.Find(selected); ok && !layer.IsBase {
		resize, rotate := HandlePositions(layer, canvas, m)
		if near(p, resize, m.Radius) {
			return HitTarget{Kind: HitResizeHandle, LayerID: layer.ID}
		}
		if near(p, rotate, m.Radius) {
			return HitTarget{Kind: HitRotateHandle, LayerID: layer.ID}
		}
	}

	for i := len(stack) - 1; i >= 0; i-- {
		layer := stack[i]
		if layer.IsBase {
			continue
		}
		box := geometry.BoxToScreen(layer.X, layer.Y, layer.Width, layer.Height, canvas)
		local := geometry.Rotate(p, box.Center(), -layer.Rotation)
		if box.Contains(local) {
			return HitTarget{Kind: HitBody, LayerID: layer.ID}
		}
	}
	return HitTarget{}
}

func near(p, q geometry.Point, radius float64) bool {
	return math.Abs(p.X-q.X) <= radius && math.Abs(p.Y-q.Y) <= radius
}
