package models

import (
	"errors"
	"hash/fnv"
	"strings"
	"time"
)

// Concept-related errors
var (
	ErrEmptyConceptName   = errors.New("concept name cannot be empty")
	ErrConceptNameTooLong = errors.New("concept name cannot exceed 80 characters")
	ErrEmptyConceptImage  = errors.New("concept has no image")
)

// TattooStyle is one of the art styles offered when generating a concept.
type TattooStyle string

const (
	StyleFineLine       TattooStyle = "Fine-line"
	StyleRealism        TattooStyle = "Realism"
	StyleTribal         TattooStyle = "Tribal"
	StyleAnime          TattooStyle = "Anime"
	StyleGothic         TattooStyle = "Gothic"
	StyleWatercolor     TattooStyle = "Watercolor"
	StyleMinimalist     TattooStyle = "Minimalist"
	StyleTraditional    TattooStyle = "Traditional"
	StyleNeoTraditional TattooStyle = "Neo-traditional"
	StyleBlackwork      TattooStyle = "Blackwork"
	StyleGeometric      TattooStyle = "Geometric"
	StyleBiomechanical  TattooStyle = "Biomechanical"
)

// Styles lists every style in menu order.
var Styles = []TattooStyle{
	StyleFineLine, StyleRealism, StyleTraditional, StyleAnime,
	StyleGeometric, StyleWatercolor, StyleMinimalist, StyleBlackwork,
	StyleNeoTraditional, StyleTribal, StyleGothic, StyleBiomechanical,
}

// ParseStyle matches a style name case-insensitively. Spaces and hyphens are
// interchangeable ("fine line" == "Fine-line").
func ParseStyle(s string) (TattooStyle, bool) {
	want := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
	for _, st := range Styles {
		if strings.ToLower(string(st)) == want {
			return st, true
		}
	}
	return "", false
}

// Concept is a finished design saved by the user.
type Concept struct {
	ID         string      `json:"id" yaml:"id"`
	Name       string      `json:"name" yaml:"name"`
	Summary    string      `json:"summary,omitempty" yaml:"summary,omitempty"`
	Style      TattooStyle `json:"style,omitempty" yaml:"style,omitempty"`
	Prompt     string      `json:"prompt,omitempty" yaml:"prompt,omitempty"`
	Image      string      `json:"image" yaml:"image"`
	Placements []string    `json:"placements,omitempty" yaml:"placements,omitempty"`
	CreatedAt  time.Time   `json:"created_at" yaml:"created_at"`
}

// Validate checks the fields required to save a concept.
func (c *Concept) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return ErrEmptyConceptName
	}
	if len(name) > 80 {
		return ErrConceptNameTooLong
	}
	if c.Image == "" {
		return ErrEmptyConceptImage
	}
	return nil
}

// LayerPalette provides the colors used to tell layers apart on the terminal canvas.
var LayerPalette = []string{
	"#e74c3c", // red
	"#3498db", // blue
	"#2ecc71", // green
	"#f39c12", // orange
	"#9b59b6", // purple
	"#1abc9c", // turquoise
	"#e67e22", // dark orange
	"#16a085", // dark turquoise
	"#8e44ad", // dark purple
	"#f1c40f", // yellow
	"#d35400", // pumpkin
	"#2980b9", // belize hole
}

// GetLayerColor returns a stable palette color for a layer id.
func GetLayerColor(layerID string) string {
	h := fnv.New32a()
	h.Write([]byte(layerID))
	return LayerPalette[int(h.Sum32()%uint32(len(LayerPalette)))]
}
