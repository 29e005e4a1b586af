package editor

import "github.com/inkstudio/inkstudio/pkg/geometry"

// Gesture is the transient origin data of one pointer interaction. A nil
// Gesture means the engine is idle. The set of implementations is closed.
type Gesture interface {
	// LayerID returns the layer the gesture acts on.
	LayerID() string
	isGesture()
}

// DragGesture moves a layer by the pointer displacement since Pointer.
type DragGesture struct {
	Layer   string
	Pointer geometry.Point
	LayerX  float64
	LayerY  float64
}

// ResizeGesture scales a layer uniformly from its size at gesture start.
type ResizeGesture struct {
	Layer   string
	Pointer geometry.Point
	Width   float64
	Height  float64
}

// RotateGesture turns a layer by the angle swept around Center.
type RotateGesture struct {
	Layer         string
	Center        geometry.Point
	StartAngle    float64 // radians
	StartRotation float64 // degrees
}

func (g DragGesture) LayerID() string   { return g.Layer }
func (g ResizeGesture) LayerID() string { return g.Layer }
func (g RotateGesture) LayerID() string { return g.Layer }

func (DragGesture) isGesture()   {}
func (ResizeGesture) isGesture() {}
func (RotateGesture) isGesture() {}
