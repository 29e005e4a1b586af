// Package editor implements the layer compositing core: the layer stack, undo
// history, single selection, the pointer gesture engine and the one
// asynchronous operation, asking an element provider for a new layer image.
//
// Every exported Editor method is serialized by a mutex so hosts may call from
// several goroutines. Invariant-violating requests are ignored and reported
// through a false return, never as errors.
package editor

import (
	"io"
	"log"
	"sync"

	"github.com/inkstudio/inkstudio/pkg/geometry"
	"github.com/inkstudio/inkstudio/pkg/models"
	"github.com/inkstudio/inkstudio/pkg/provider"
)

// Editor is one editing session over a base image.
type Editor struct {
	mu sync.Mutex

	store     *Store
	history   *History
	selection *Selection
	engine    *Engine

	provider   provider.ElementProvider
	generating bool
	closed     bool
	onClose    func()
	logger     *log.Logger
	newID      func() string
}

// Option configures an Editor.
type Option func(*Editor)

// WithProvider sets the element provider used by RequestElement.
func WithProvider(p provider.ElementProvider) Option {
	return func(e *Editor) { e.provider = p }
}

// WithOnClose sets the callback invoked once by Close.
func WithOnClose(fn func()) Option {
	return func(e *Editor) { e.onClose = fn }
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithIDGenerator overrides how new layer ids are made.
func WithIDGenerator(fn func() string) Option {
	return func(e *Editor) { e.newID = fn }
}

// Open starts a session whose stack holds only the base layer for baseImage.
func Open(baseImage string, opts ...Option) *Editor {
	e := &Editor{
		logger: log.New(io.Discard, "[EDITOR] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.store = NewStore(baseImage, e.newID)
	e.history = &History{}
	e.selection = &Selection{}
	e.engine = NewEngine(e.store, e.history, e.selection)
	return e
}

// Layers returns a copy of the stack, bottom first.
func (e *Editor) Layers() models.Stack {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Layers()
}

// Layer returns a copy of the layer with id.
func (e *Editor) Layer(id string) (models.Layer, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.Layer(id)
}

// Selected returns the selected layer id.
func (e *Editor) Selected() (string, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selection.Selected()
}

// SelectedLayer returns a copy of the selected layer.
func (e *Editor) SelectedLayer() (models.Layer, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, ok := e.selection.Selected()
	if !ok {
		return models.Layer{}, false
	}
	return e.store.Layer(id)
}

// Select selects the layer with id. The base layer and unknown ids are ignored.
func (e *Editor) Select(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.store.Layer(id); !ok {
		return false
	}
	return e.selection.Select(id)
}

// SelectNone clears the selection.
func (e *Editor) SelectNone() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.SelectNone()
}

// AddLayer snapshots the stack, appends a layer for image at p and selects it.
func (e *Editor) AddLayer(image string, p Placement) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addLayer(image, p)
}

func (e *Editor) addLayer(image string, p Placement) string {
	e.history.Snapshot(e.store.layers)
	id := e.store.Add(image, p)
	e.selection.Select(id)
	e.logger.Printf("added layer %s", id)
	return id
}

// RemoveLayer snapshots the stack, removes the layer with id and clears the
// selection. The snapshot is taken even when nothing is removed.
func (e *Editor) RemoveLayer(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history.Snapshot(e.store.layers)
	removed := e.store.Remove(id)
	e.selection.SelectNone()
	if g := e.engine.Gesture(); removed && g != nil && g.LayerID() == id {
		e.engine.Reset()
	}
	return removed
}

// Reorder moves the layer one step in dir. Only valid moves take a snapshot.
func (e *Editor) Reorder(id string, dir models.Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reorder(id, dir)
}

// ReorderSelected moves the selected layer one step in dir.
func (e *Editor) ReorderSelected(dir models.Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, ok := e.selection.Selected()
	if !ok {
		return false
	}
	return e.reorder(id, dir)
}

func (e *Editor) reorder(id string, dir models.Direction) bool {
	if !e.store.CanReorder(id, dir) {
		return false
	}
	e.history.Snapshot(e.store.layers)
	return e.store.Reorder(id, dir)
}

// SetProperty edits one scalar field of a layer without a snapshot.
func (e *Editor) SetProperty(id string, prop models.Property, value float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.store.SetProperty(id, prop, value)
}

// SetOpacityPercent sets opacity from a 0-100 slider value.
func (e *Editor) SetOpacityPercent(id string, percent int) bool {
	return e.SetProperty(id, models.PropOpacity, float64(percent)/100)
}

// Undo restores the most recent snapshot, clears the selection and drops any
// gesture. It reports false when there was nothing to undo.
func (e *Editor) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	stack, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.store.ReplaceAll(stack)
	e.selection.SelectNone()
	e.engine.Reset()
	return true
}

// CanUndo reports whether Undo would change anything.
func (e *Editor) CanUndo() bool {
	return e.HistoryLen() > 0
}

// HistoryLen returns the number of snapshots available.
func (e *Editor) HistoryLen() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Len()
}

// PointerDown starts a gesture on target.
func (e *Editor) PointerDown(target HitTarget, p geometry.Point, canvas geometry.Rect) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engine.PointerDown(target, p, canvas)
}

// PointerMove feeds the active gesture.
func (e *Editor) PointerMove(p geometry.Point, canvas geometry.Rect) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engine.PointerMove(p, canvas)
}

// PointerUp ends the active gesture.
func (e *Editor) PointerUp() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.engine.PointerUp()
}

// BackgroundClick clears the selection without ending a gesture.
func (e *Editor) BackgroundClick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.engine.BackgroundClick()
}

// HitTest resolves p against the current stack and selection.
func (e *Editor) HitTest(p geometry.Point, canvas geometry.Rect, m HandleMetrics) HitTarget {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, _ := e.selection.Selected()
	return HitTest(e.store.layers, id, p, canvas, m)
}

// GestureState returns the engine state.
func (e *Editor) GestureState() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.engine.State()
}

// Generating reports whether a provider call is outstanding.
func (e *Editor) Generating() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generating
}

// CanRequest reports whether RequestElement would be accepted for prompt.
func (e *Editor) CanRequest(prompt string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return !e.closed && !e.generating && e.provider != nil && normalizePrompt(prompt) != ""
}

// Close marks the session closed and runs the on-close callback once. Results
// of provider calls still in flight are discarded when they arrive.
func (e *Editor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.engine.Reset()
	fn := e.onClose
	e.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Closed reports whether Close was called.
func (e *Editor) Closed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.closed
}
