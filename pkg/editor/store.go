package editor

import (
	"math"

	"github.com/google/uuid"

	"github.com/inkstudio/inkstudio/pkg/geometry"
	"github.com/inkstudio/inkstudio/pkg/models"
)

// Placement is the initial geometry of an added layer, in percent of the canvas.
type Placement struct {
	X, Y          float64
	Width, Height float64
	Rotation      float64
	Opacity       float64
}

// DefaultPlacement centers a layer at half the canvas size.
func DefaultPlacement() Placement {
	return Placement{X: 25, Y: 25, Width: 50, Height: 50, Opacity: 1}
}

// Store owns the ordered layer stack. Array order is z-order; the base layer
// stays at index 0 for the life of the store.
//
// Store does no locking and takes no history snapshots; Editor does both.
type Store struct {
	layers models.Stack
	newID  func() string
}

// NewStore seeds a stack holding only the base layer.
func NewStore(baseImage string, newID func() string) *Store {
	if newID == nil {
		newID = uuid.NewString
	}
	return &Store{
		layers: models.Stack{models.NewBaseLayer(baseImage)},
		newID:  newID,
	}
}

// Add appends a non-base layer on top of the stack and returns its id.
// Sizes below the minimum are raised to it and opacity is clamped to [0, 1].
func (s *Store) Add(image string, p Placement) string {
	id := s.newID()
	for id == "" || id == models.BaseLayerID || s.layers.Index(id) >= 0 {
		id = uuid.NewString()
	}

	opacity := p.Opacity
	if !geometry.Finite(opacity) {
		opacity = 1
	}
	opacity = math.Min(1, math.Max(0, opacity))

	s.layers = append(s.layers, models.Layer{
		ID:       id,
		Image:    image,
		X:        finiteOr(p.X, 25),
		Y:        finiteOr(p.Y, 25),
		Width:    math.Max(models.MinLayerSize, finiteOr(p.Width, 50)),
		Height:   math.Max(models.MinLayerSize, finiteOr(p.Height, 50)),
		Rotation: finiteOr(p.Rotation, 0),
		Opacity:  opacity,
	})
	return id
}

// Remove deletes the non-base layer with id. It reports whether the stack changed.
func (s *Store) Remove(id string) bool {
	i := s.layers.Index(id)
	if i <= 0 || s.layers[i].IsBase {
		return false
	}
	s.layers = append(s.layers[:i], s.layers[i+1:]...)
	return true
}

// reorderTarget returns the indexes swapped by a reorder, or ok=false when the
// move would touch index 0 or leave the stack.
func (s *Store) reorderTarget(id string, dir models.Direction) (from, to int, ok bool) {
	from = s.layers.Index(id)
	if from <= 0 || s.layers[from].IsBase {
		return 0, 0, false
	}
	switch dir {
	case models.DirectionUp:
		to = from + 1
	case models.DirectionDown:
		to = from - 1
	default:
		return 0, 0, false
	}
	if to <= 0 || to >= len(s.layers) {
		return 0, 0, false
	}
	return from, to, true
}

// CanReorder reports whether Reorder(id, dir) would change the stack.
func (s *Store) CanReorder(id string, dir models.Direction) bool {
	_, _, ok := s.reorderTarget(id, dir)
	return ok
}

// Reorder swaps the layer with its neighbour in dir. Moves involving the base
// layer or running past either end are ignored.
func (s *Store) Reorder(id string, dir models.Direction) bool {
	from, to, ok := s.reorderTarget(id, dir)
	if !ok {
		return false
	}
	s.layers[from], s.layers[to] = s.layers[to], s.layers[from]
	return true
}

// SetProperty edits one scalar field in place. Edits to the base layer, unknown
// layers, non-finite values, sizes under the minimum and opacity outside [0, 1]
// are ignored.
func (s *Store) SetProperty(id string, prop models.Property, value float64) bool {
	i := s.layers.Index(id)
	if i <= 0 || s.layers[i].IsBase || !geometry.Finite(value) {
		return false
	}
	switch prop {
	case models.PropX, models.PropY, models.PropRotation:
	case models.PropWidth, models.PropHeight:
		if value < models.MinLayerSize {
			return false
		}
	case models.PropOpacity:
		if value < 0 || value > 1 {
			return false
		}
	default:
		return false
	}
	s.layers[i].Set(prop, value)
	return true
}

// ReplaceImage swaps the image of a non-base layer, as done by refinement.
func (s *Store) ReplaceImage(id, image string) bool {
	i := s.layers.Index(id)
	if i <= 0 || s.layers[i].IsBase || image == "" {
		return false
	}
	s.layers[i].Image = image
	return true
}

// ReplaceAll swaps in a whole stack. Only undo uses it.
func (s *Store) ReplaceAll(stack models.Stack) {
	s.layers = stack.Clone()
}

// Layers returns a copy of the stack.
func (s *Store) Layers() models.Stack {
	return s.layers.Clone()
}

// Layer returns the layer with id.
func (s *Store) Layer(id string) (models.Layer, bool) {
	return s.layers.Find(id)
}

// Len returns the number of layers, base included.
func (s *Store) Len() int {
	return len(s.layers)
}

func finiteOr(v, fallback float64) float64 {
	if geometry.Finite(v) {
		return v
	}
	return fallback
}
