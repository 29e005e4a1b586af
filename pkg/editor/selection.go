package editor

import "github.com/inkstudio/inkstudio/pkg/models"

// Selection holds the id of at most one selected layer. It never holds the
// base layer.
type Selection struct {
	id string
}

// Select sets the selection. The base layer id and empty ids are ignored.
func (s *Selection) Select(id string) bool {
	if id == "" || id == models.BaseLayerID {
		return false
	}
	s.id = id
	return true
}

// SelectNone clears the selection.
func (s *Selection) SelectNone() {
	s.id = ""
}

// Selected returns the selected id, if any.
func (s *Selection) Selected() (string, bool) {
	return s.id, s.id != ""
}

// Is reports whether id is the selected layer.
func (s *Selection) Is(id string) bool {
	return id != "" && s.id == id
}
