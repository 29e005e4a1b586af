// Package provider talks to the image generation service that supplies new
// layer images to the editor.
package provider

import (
	"context"
	"strings"

	"github.com/inkstudio/inkstudio/pkg/models"
)

// ElementProvider generates an isolated design element from a free-text
// description. The returned string is an opaque image reference, usually a
// data URI, usable as a layer image.
type ElementProvider interface {
	GenerateElement(ctx context.Context, prompt string) (string, error)
}

// Refiner reworks an existing image according to prompt.
type Refiner interface {
	Refine(ctx context.Context, image, prompt string) (string, error)
}

// ElementPrompt expands the user's description with template. The first %s in
// template is replaced by the description; any other text, percent signs
// included, is kept as written. A template without %s gets the description
// appended after a comma.
func ElementPrompt(template, description string) string {
	description = strings.TrimSpace(description)
	if template == "" {
		template = models.DefaultElementPrompt
	}
	if !strings.Contains(template, "%s") {
		return template + ", " + description
	}
	return strings.Replace(template, "%s", description, 1)
}
