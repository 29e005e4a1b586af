package models

import (
	"errors"
	"fmt"
	"math"
)

const (
	// BaseLayerID is the reserved id of the bottom layer holding the design being edited.
	BaseLayerID = "base"

	// MinLayerSize is the smallest width or height, in percent of the canvas,
	// a layer may have.
	MinLayerSize = 5.0
)

// Layer is a positioned, sized, rotated, opacity-weighted image reference.
// Geometry is expressed in percent of the canvas, top-left anchored.
type Layer struct {
	ID       string  `yaml:"id" json:"id"`
	Image    string  `yaml:"image" json:"image"`
	X        float64 `yaml:"x" json:"x"`
	Y        float64 `yaml:"y" json:"y"`
	Width    float64 `yaml:"width" json:"width"`
	Height   float64 `yaml:"height" json:"height"`
	Rotation float64 `yaml:"rotation" json:"rotation"`
	Opacity  float64 `yaml:"opacity" json:"opacity"`
	IsBase   bool    `yaml:"is_base" json:"isBase"`
}

// NewBaseLayer returns the full-canvas base layer for image.
func NewBaseLayer(image string) Layer {
	return Layer{
		ID:      BaseLayerID,
		Image:   image,
		Width:   100,
		Height:  100,
		Opacity: 1,
		IsBase:  true,
	}
}

// NormalizedRotation returns the rotation rounded to whole degrees in [0, 360).
// The stored rotation is never normalized; this is for display only.
func (l Layer) NormalizedRotation() int {
	r := int(math.Round(l.Rotation)) % 360
	if r < 0 {
		r += 360
	}
	return r
}

// OpacityPercent returns the opacity as a whole percentage.
func (l Layer) OpacityPercent() int {
	return int(math.Round(l.Opacity * 100))
}

// Stack is an ordered sequence of layers. Index 0 is the bottom of the z-order.
type Stack []Layer

// Clone returns an independent copy of the stack.
func (s Stack) Clone() Stack {
	if s == nil {
		return nil
	}
	out := make(Stack, len(s))
	copy(out, s)
	return out
}

// Index returns the position of the layer with id, or -1.
func (s Stack) Index(id string) int {
	for i, l := range s {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the layer with id.
func (s Stack) Find(id string) (Layer, bool) {
	if i := s.Index(id); i >= 0 {
		return s[i], true
	}
	return Layer{}, false
}

// Stack invariant violations reported by Validate.
var (
	ErrEmptyStack       = errors.New("stack has no layers")
	ErrBaseNotAtBottom  = errors.New("base layer is not at index 0")
	ErrMultipleBase     = errors.New("more than one base layer")
	ErrLayerTooSmall    = errors.New("layer is smaller than the minimum size")
	ErrDuplicateLayerID = errors.New("duplicate layer id")
	ErrOpacityRange     = errors.New("opacity outside [0, 1]")
)

// Validate checks the stack invariants.
func (s Stack) Validate() error {
	if len(s) == 0 {
		return ErrEmptyStack
	}
	if !s[0].IsBase {
		return ErrBaseNotAtBottom
	}
	seen := make(map[string]bool, len(s))
	for i, l := range s {
		if i > 0 && l.IsBase {
			return fmt.Errorf("layer %q at index %d: %w", l.ID, i, ErrMultipleBase)
		}
		if l.Width < MinLayerSize || l.Height < MinLayerSize {
			return fmt.Errorf("layer %q (%.2fx%.2f): %w", l.ID, l.Width, l.Height, ErrLayerTooSmall)
		}
		if l.Opacity < 0 || l.Opacity > 1 {
			return fmt.Errorf("layer %q (%.2f): %w", l.ID, l.Opacity, ErrOpacityRange)
		}
		if seen[l.ID] {
			return fmt.Errorf("layer %q: %w", l.ID, ErrDuplicateLayerID)
		}
		seen[l.ID] = true
	}
	return nil
}
