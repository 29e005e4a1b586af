package editor

import "errors"

// Errors returned by the asynchronous element operations. Synchronous edits never
// fail; requests that would break a stack invariant are ignored instead.
var (
	ErrGenerating         = errors.New("an element is already being generated")
	ErrEmptyPrompt        = errors.New("element description is empty")
	ErrClosed             = errors.New("editor is closed")
	ErrNoProvider         = errors.New("no element provider configured")
	ErrRefineNotSupported = errors.New("element provider cannot refine images")
	ErrLayerNotFound      = errors.New("layer not found")
)

// GenerationError reports a failed call to the element provider. Message is
// meant for the user; Err keeps the cause for logs and errors.Is.
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	return e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
