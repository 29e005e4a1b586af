package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/inkstudio/inkstudio/pkg/editor"
	"github.com/inkstudio/inkstudio/pkg/geometry"
	"github.com/inkstudio/inkstudio/pkg/models"
	"github.com/inkstudio/inkstudio/pkg/provider"
	"github.com/inkstudio/inkstudio/pkg/render"
)

type openRequest struct {
	Image string `json:"image"`
}

type promptRequest struct {
	Prompt string `json:"prompt"`
}

type reorderRequest struct {
	Direction string `json:"direction"`
}

type selectRequest struct {
	LayerID string `json:"layerId"`
}

type pointerRequest struct {
	Type   string         `json:"type"` // down, move, up, background
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Canvas geometry.Rect  `json:"canvas"`
	Target *targetPayload `json:"target,omitempty"`
}

type targetPayload struct {
	Kind    string `json:"kind"`
	LayerID string `json:"layerId"`
}

type sessionPayload struct {
	ID         string       `json:"id"`
	Layers     models.Stack `json:"layers"`
	Selected   string       `json:"selected"`
	CanUndo    bool         `json:"canUndo"`
	Generating bool         `json:"generating"`
	Gesture    string       `json:"gesture"`
}

func mapSession(s *session) sessionPayload {
	selected, _ := s.Editor.Selected()
	return sessionPayload{
		ID:         s.ID,
		Layers:     s.Editor.Layers(),
		Selected:   selected,
		CanUndo:    s.Editor.CanUndo(),
		Generating: s.Editor.Generating(),
		Gesture:    s.Editor.GestureState().String(),
	}
}

func errorJSON(c fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func decode(c fiber.Ctx, v interface{}) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return json.Unmarshal(c.Body(), v)
}

func (s *Server) lookup(c fiber.Ctx) (*session, error) {
	sess, ok := s.sessions.Get(c.Params("id"))
	if !ok {
		return nil, errorJSON(c, http.StatusNotFound, "session not found")
	}
	return sess, nil
}

func (s *Server) providerTimeout() time.Duration {
	if s.settings.Provider.TimeoutSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(s.settings.Provider.TimeoutSeconds) * time.Second
}

func (s *Server) openSession(c fiber.Ctx) error {
	var req openRequest
	if err := decode(c, &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}

	// local paths are not readable through the API
	image := strings.TrimSpace(req.Image)
	if image == "" {
		return errorJSON(c, http.StatusBadRequest, "image required")
	}
	if strings.HasPrefix(image, "data:") {
		if _, _, err := provider.ParseDataURI(image); err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
	} else if !provider.IsRemoteRef(image) {
		return errorJSON(c, http.StatusBadRequest, "image must be a data URI or an http(s) URL")
	}

	sess := s.sessions.Open(image)
	s.logger.Printf("session %s opened", sess.ID)
	return c.Status(http.StatusCreated).JSON(mapSession(sess))
}

func (s *Server) getSession(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if sess == nil {
		return err
	}
	return c.JSON(mapSession(sess))
}

func (s *Server) closeSession(c fiber.Ctx) error {
	if !s.sessions.Close(c.Params("id")) {
		return errorJSON(c, http.StatusNotFound, "session not found")
	}
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) requestElement(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if sess == nil {
		return err
	}

	var req promptRequest
	if err := decode(c, &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.providerTimeout())
	defer cancel()

	id, err := sess.Editor.RequestElement(ctx, req.Prompt)
	if err != nil {
		return s.generationError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"layerId": id,
		"session": mapSession(sess),
	})
}

func (s *Server) refineLayer(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if sess == nil {
		return err
	}

	var req promptRequest
	if err := decode(c, &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.providerTimeout())
	defer cancel()

	if err := sess.Editor.RefineLayer(ctx, c.Params("layer"), req.Prompt); err != nil {
		return s.generationError(c, err)
	}
	return c.JSON(mapSession(sess))
}

func (s *Server) generationError(c fiber.Ctx, err error) error {
	var genErr *editor.GenerationError
	switch {
	case errors.Is(err, editor.ErrEmptyPrompt):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, editor.ErrGenerating):
		return errorJSON(c, http.StatusConflict, err.Error())
	case errors.Is(err, editor.ErrLayerNotFound):
		return errorJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, editor.ErrNoProvider), errors.Is(err, editor.ErrRefineNotSupported):
		return errorJSON(c, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, editor.ErrClosed):
		return errorJSON(c, http.StatusGone, err.Error())
	case errors.As(err, &genErr):
		s.logger.Printf("generation failed: %v", genErr.Err)
		return errorJSON(c, http.StatusBadGateway, genErr.Message)
	}
	return errorJSON(c, http.StatusInternalServerError, err.Error())
}

func (s *Server) removeLayer(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if sess == nil {
		return err
	}
	removed := sess.Editor.RemoveLayer(c.Params("layer"))
	return c.JSON(fiber.Map{"changed": removed, "session": mapSession(sess)})
}

func (s *Server) reorderLayer(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if sess == nil {
		return err
	}

	var req reorderRequest
	if err := decode(c, &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}
	dir, err := models.ParseDirection(req.Direction)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	changed := sess.Editor.Reorder(c.Params("layer"), dir)
	return c.JSON(fiber.Map{"changed": changed, "session": mapSession(sess)})
}

// updateLayer applies property edits given as {"x": 10, "opacity": 0.5}.
// Edits that would break a layer invariant are skipped and reported false.
func (s *Server) updateLayer(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if sess == nil {
		return err
	}

	var req map[string]float64
	if err := decode(c, &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}

	layerID := c.Params("layer")
	applied := make(map[string]bool, len(req))
	for name, value := range req {
		prop, err := models.ParseProperty(name)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, err.Error())
		}
		applied[string(prop)] = sess.Editor.SetProperty(layerID, prop, value)
	}

	return c.JSON(fiber.Map{"changed": applied, "session": mapSession(sess)})
}

func (s *Server) selectLayer(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if sess == nil {
		return err
	}

	var req selectRequest
	if err := decode(c, &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}

	changed := true
	if req.LayerID == "" {
		sess.Editor.SelectNone()
	} else {
		changed = sess.Editor.Select(req.LayerID)
	}
	return c.JSON(fiber.Map{"changed": changed, "session": mapSession(sess)})
}

// pointer feeds one raw pointer event to the gesture engine. A pointer-down
// without an explicit target is hit tested against the stack; a miss inside
// the canvas counts as a background click.
func (s *Server) pointer(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if sess == nil {
		return err
	}

	var req pointerRequest
	if err := decode(c, &req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "invalid json")
	}
	p := geometry.Point{X: req.X, Y: req.Y}
	ed := sess.Editor

	changed := false
	switch req.Type {
	case "down":
		var target editor.HitTarget
		if req.Target != nil {
			kind, ok := editor.ParseHitKind(req.Target.Kind)
			if !ok {
				return errorJSON(c, http.StatusBadRequest, "invalid target kind")
			}
			target = editor.HitTarget{Kind: kind, LayerID: req.Target.LayerID}
		} else {
			target = ed.HitTest(p, req.Canvas, editor.DefaultHandleMetrics)
		}
		if target.Kind == editor.HitNone {
			if req.Canvas.Contains(p) {
				ed.BackgroundClick()
				changed = true
			}
			break
		}
		changed = ed.PointerDown(target, p, req.Canvas)
	case "move":
		changed = ed.PointerMove(p, req.Canvas)
	case "up":
		ed.PointerUp()
		changed = true
	case "background":
		ed.BackgroundClick()
		changed = true
	default:
		return errorJSON(c, http.StatusBadRequest, "type must be one of down, move, up, background")
	}

	return c.JSON(fiber.Map{"changed": changed, "session": mapSession(sess)})
}

func (s *Server) undo(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if sess == nil {
		return err
	}
	undone := sess.Editor.Undo()
	return c.JSON(fiber.Map{"changed": undone, "session": mapSession(sess)})
}

// drawList returns the painter-order draw operations for a canvas of the
// given width and height in pixels (default 1000x1000).
func (s *Server) drawList(c fiber.Ctx) error {
	sess, err := s.lookup(c)
	if sess == nil {
		return err
	}

	width, werr := strconv.ParseFloat(c.Query("width", "1000"), 64)
	height, herr := strconv.ParseFloat(c.Query("height", "1000"), 64)
	if werr != nil || herr != nil || width <= 0 || height <= 0 {
		return errorJSON(c, http.StatusBadRequest, "width and height must be positive numbers")
	}

	ops := render.DrawList(sess.Editor.Layers(), geometry.Rect{Width: width, Height: height})
	return c.JSON(fiber.Map{"operations": ops})
}
