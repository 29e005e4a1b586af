package editor

import (
	"github.com/jinzhu/copier"

	"github.com/inkstudio/inkstudio/pkg/models"
)

// History is a LIFO of full stack snapshots taken before destructive edits.
// It grows for the whole session and has no redo side: undoing discards the
// popped entry.
type History struct {
	entries []models.Stack
}

// Snapshot pushes a deep copy of stack.
func (h *History) Snapshot(stack models.Stack) {
	var entry models.Stack
	err := copier.CopyWithOption(&entry, &stack, copier.Option{DeepCopy: true})
	if err != nil || len(entry) != len(stack) {
		entry = stack.Clone()
	}
	h.entries = append(h.entries, entry)
}

// Undo pops the most recent snapshot. ok is false when there is nothing to undo.
func (h *History) Undo() (models.Stack, bool) {
	n := len(h.entries)
	if n == 0 {
		return nil, false
	}
	top := h.entries[n-1]
	h.entries[n-1] = nil
	h.entries = h.entries[:n-1]
	return top, true
}

// Len returns the number of snapshots available to undo.
func (h *History) Len() int {
	return len(h.entries)
}

// Clear drops every snapshot.
func (h *History) Clear() {
	h.entries = nil
}
