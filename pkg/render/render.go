// Package render turns a layer stack into an ordered list of draw operations.
// It does not rasterize; hosts paint the operations with whatever surface they
// have, bottom first.
package render

import (
	"fmt"

	"github.com/inkstudio/inkstudio/pkg/geometry"
	"github.com/inkstudio/inkstudio/pkg/models"
)

// Blend is the compositing mode of a draw operation.
type Blend int

const (
	// BlendNormal paints over what is beneath. Only the base layer uses it.
	BlendNormal Blend = iota
	// BlendMultiply darkens what is beneath, so white element backgrounds
	// disappear over the base design.
	BlendMultiply
)

func (b Blend) String() string {
	switch b {
	case BlendMultiply:
		return "multiply"
	default:
		return "normal"
	}
}

// MarshalText encodes the blend by name.
func (b Blend) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText decodes a blend name.
func (b *Blend) UnmarshalText(text []byte) error {
	switch string(text) {
	case "normal":
		*b = BlendNormal
	case "multiply":
		*b = BlendMultiply
	default:
		return fmt.Errorf("unknown blend mode: %q", text)
	}
	return nil
}

// DrawOp paints one layer image into Rect, rotated by Rotation degrees
// clockwise about Origin, at Opacity.
type DrawOp struct {
	LayerID  string         `json:"layerId" yaml:"layer_id"`
	Image    string         `json:"image" yaml:"image"`
	Blend    Blend          `json:"blend" yaml:"blend"`
	Opacity  float64        `json:"opacity" yaml:"opacity"`
	Rect     geometry.Rect  `json:"rect" yaml:"rect"`
	Rotation float64        `json:"rotation" yaml:"rotation"`
	Origin   geometry.Point `json:"origin" yaml:"origin"`
}

// DrawList maps stack onto canvas in painter order. Rects are recomputed from
// the percent geometry every call, so callers pass the canvas size measured for
// the frame being drawn.
func DrawList(stack models.Stack, canvas geometry.Rect) []DrawOp {
	ops := make([]DrawOp, 0, len(stack))
	for _, layer := range stack {
		rect := geometry.BoxToScreen(layer.X, layer.Y, layer.Width, layer.Height, canvas)
		blend := BlendMultiply
		if layer.IsBase {
			blend = BlendNormal
		}
		ops = append(ops, DrawOp{
			LayerID:  layer.ID,
			Image:    layer.Image,
			Blend:    blend,
			Opacity:  layer.Opacity,
			Rect:     rect,
			Rotation: layer.Rotation,
			Origin:   rect.Center(),
		})
	}
	return ops
}

// Contains reports whether p falls inside the op's rotated rectangle.
func (op DrawOp) Contains(p geometry.Point) bool {
	return op.Rect.Contains(geometry.Rotate(p, op.Origin, -op.Rotation))
}
