package editor

import (
	"math"

	"github.com/inkstudio/inkstudio/pkg/geometry"
	"github.com/inkstudio/inkstudio/pkg/models"
)

// State is the interaction state of the transform engine.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResizing
	StateRotating
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	case StateRotating:
		return "rotating"
	default:
		return "idle"
	}
}

// HitKind says which part of a layer a pointer-down landed on.
type HitKind int

const (
	HitNone HitKind = iota
	HitBody
	HitResizeHandle
	HitRotateHandle
)

func (k HitKind) String() string {
	switch k {
	case HitBody:
		return "body"
	case HitResizeHandle:
		return "resize"
	case HitRotateHandle:
		return "rotate"
	default:
		return "none"
	}
}

// ParseHitKind converts the names returned by HitKind.String.
func ParseHitKind(s string) (HitKind, bool) {
	for _, k := range []HitKind{HitNone, HitBody, HitResizeHandle, HitRotateHandle} {
		if k.String() == s {
			return k, true
		}
	}
	return HitNone, false
}

// HitTarget is the layer part under the pointer.
type HitTarget struct {
	Kind    HitKind
	LayerID string
}

// Engine turns pointer gestures into layer property edits. It shares the
// editor's store, history and selection and is not safe for concurrent use.
type Engine struct {
	store     *Store
	history   *History
	selection *Selection
	gesture   Gesture
}

// NewEngine returns an idle engine working on the given components.
func NewEngine(store *Store, history *History, selection *Selection) *Engine {
	return &Engine{store: store, history: history, selection: selection}
}

// State returns the current interaction state.
func (e *Engine) State() State {
	switch e.gesture.(type) {
	case DragGesture:
		return StateDragging
	case ResizeGesture:
		return StateResizing
	case RotateGesture:
		return StateRotating
	default:
		return StateIdle
	}
}

// Gesture returns the active gesture, or nil when idle.
func (e *Engine) Gesture() Gesture {
	return e.gesture
}

// PointerDown starts a gesture on target. A new start replaces any stale
// gesture. Presses on the base layer, on unknown layers, or on the handles of a
// layer that is not selected start nothing. It reports whether a gesture began.
func (e *Engine) PointerDown(target HitTarget, p geometry.Point, canvas geometry.Rect) bool {
	layer, ok := e.store.Layer(target.LayerID)
	if !ok || layer.IsBase {
		return false
	}

	switch target.Kind {
	case HitBody:
		e.selection.Select(layer.ID)
		e.gesture = DragGesture{Layer: layer.ID, Pointer: p, LayerX: layer.X, LayerY: layer.Y}
		return true

	case HitResizeHandle:
		if !e.selection.Is(layer.ID) {
			return false
		}
		e.history.Snapshot(e.store.layers)
		e.gesture = ResizeGesture{Layer: layer.ID, Pointer: p, Width: layer.Width, Height: layer.Height}
		return true

	case HitRotateHandle:
		if !e.selection.Is(layer.ID) || canvas.Empty() {
			return false
		}
		e.history.Snapshot(e.store.layers)
		center := geometry.BoxToScreen(layer.X, layer.Y, layer.Width, layer.Height, canvas).Center()
		e.gesture = RotateGesture{
			Layer:         layer.ID,
			Center:        center,
			StartAngle:    geometry.Angle(center, p),
			StartRotation: layer.Rotation,
		}
		return true
	}
	return false
}

// PointerMove applies the active gesture for the pointer at p. canvas is the
// canvas rectangle measured for this event. Moves while idle, against an empty
// canvas, or after the gesture's layer lost the selection change nothing.
func (e *Engine) PointerMove(p geometry.Point, canvas geometry.Rect) bool {
	if e.gesture == nil || !e.selection.Is(e.gesture.LayerID()) {
		return false
	}

	switch g := e.gesture.(type) {
	case DragGesture:
		dx, dy, ok := geometry.DeltaPercent(g.Pointer, p, canvas)
		if !ok {
			return false
		}
		x := e.store.SetProperty(g.Layer, models.PropX, g.LayerX+dx)
		y := e.store.SetProperty(g.Layer, models.PropY, g.LayerY+dy)
		return x || y

	case ResizeGesture:
		d, _, ok := geometry.DeltaPercent(g.Pointer, p, canvas)
		if !ok {
			return false
		}
		w := e.store.SetProperty(g.Layer, models.PropWidth, math.Max(models.MinLayerSize, g.Width+d))
		h := e.store.SetProperty(g.Layer, models.PropHeight, math.Max(models.MinLayerSize, g.Height+d))
		return w || h

	case RotateGesture:
		angle := geometry.Angle(g.Center, p)
		return e.store.SetProperty(g.Layer, models.PropRotation, g.StartRotation+geometry.Degrees(angle-g.StartAngle))
	}
	return false
}

// PointerUp ends any gesture.
func (e *Engine) PointerUp() {
	e.gesture = nil
}

// BackgroundClick clears the selection. An active gesture keeps running until
// pointer-up.
func (e *Engine) BackgroundClick() {
	e.selection.SelectNone()
}

// Reset drops transient gesture state.
func (e *Engine) Reset() {
	e.gesture = nil
}
