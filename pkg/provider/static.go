package provider

import (
	"context"
	"sync"
)

// StaticProvider answers every request with the same image. It backs offline
// mode and tests.
type StaticProvider struct {
	Image string
	Err   error

	mu      sync.Mutex
	prompts []string
}

// NewStaticProvider returns a provider yielding image, or the placeholder when
// image is empty.
func NewStaticProvider(image string) *StaticProvider {
	if image == "" {
		image = PlaceholderImage()
	}
	return &StaticProvider{Image: image}
}

// GenerateElement records the prompt and returns the configured image or error.
func (p *StaticProvider) GenerateElement(ctx context.Context, prompt string) (string, error) {
	p.mu.Lock()
	p.prompts = append(p.prompts, prompt)
	p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.Err != nil {
		return "", p.Err
	}
	return p.Image, nil
}

// Refine behaves like GenerateElement and ignores the input image.
func (p *StaticProvider) Refine(ctx context.Context, image, prompt string) (string, error) {
	return p.GenerateElement(ctx, prompt)
}

// Prompts returns the prompts received so far.
func (p *StaticProvider) Prompts() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.prompts))
	copy(out, p.prompts)
	return out
}
