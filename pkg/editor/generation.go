package editor

import (
	"context"
	"strings"

	"github.com/inkstudio/inkstudio/pkg/provider"
)

const (
	msgGenerateFailed = "Failed to generate new element."
	msgRefineFailed   = "Failed to refine element."
)

func normalizePrompt(prompt string) string {
	return strings.TrimSpace(prompt)
}

// begin claims the generating guard. The caller must call finish.
func (e *Editor) begin() (provider.ElementProvider, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case e.closed:
		return nil, ErrClosed
	case e.provider == nil:
		return nil, ErrNoProvider
	case e.generating:
		return nil, ErrGenerating
	}
	e.generating = true
	return e.provider, nil
}

// finish releases the guard. It must be called with e.mu held.
func (e *Editor) finish() {
	e.generating = false
}

func (e *Editor) release() {
	e.mu.Lock()
	e.finish()
	e.mu.Unlock()
}

// RequestElement asks the provider for an image described by prompt and adds
// it as a new selected layer at the default placement. Only one request may be
// outstanding; another call meanwhile fails with ErrGenerating. The provider is
// called without holding the editor lock. On failure the stack is unchanged and
// the error is a *GenerationError.
func (e *Editor) RequestElement(ctx context.Context, prompt string) (string, error) {
	prompt = normalizePrompt(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}

	p, err := e.begin()
	if err != nil {
		return "", err
	}

	image, err := p.GenerateElement(ctx, prompt)
	if err == nil && image == "" {
		err = provider.ErrNoImage
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.finish()

	if err != nil {
		e.logger.Printf("element generation failed for %q: %v", prompt, err)
		return "", &GenerationError{Message: msgGenerateFailed, Err: err}
	}
	if e.closed {
		e.logger.Printf("discarding element for %q: editor closed", prompt)
		return "", ErrClosed
	}
	return e.addLayer(image, DefaultPlacement()), nil
}

// RefineLayer asks the provider to rework the image of layer id and replaces it.
// The provider must implement provider.Refiner. It shares the generating guard
// with RequestElement.
func (e *Editor) RefineLayer(ctx context.Context, id, prompt string) error {
	prompt = normalizePrompt(prompt)
	if prompt == "" {
		return ErrEmptyPrompt
	}

	p, err := e.begin()
	if err != nil {
		return err
	}
	refiner, ok := p.(provider.Refiner)
	if !ok {
		e.release()
		return ErrRefineNotSupported
	}

	e.mu.Lock()
	layer, found := e.store.Layer(id)
	e.mu.Unlock()
	if !found || layer.IsBase {
		e.release()
		return ErrLayerNotFound
	}

	image, err := refiner.Refine(ctx, layer.Image, prompt)
	if err == nil && image == "" {
		err = provider.ErrNoImage
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.finish()

	if err != nil {
		e.logger.Printf("refining layer %s failed: %v", id, err)
		return &GenerationError{Message: msgRefineFailed, Err: err}
	}
	if e.closed {
		return ErrClosed
	}
	if _, ok := e.store.Layer(id); !ok {
		return ErrLayerNotFound
	}
	e.history.Snapshot(e.store.layers)
	e.store.ReplaceImage(id, image)
	return nil
}
