// Package server exposes editor sessions over HTTP.
package server

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/inkstudio/inkstudio/pkg/models"
	"github.com/inkstudio/inkstudio/pkg/provider"
)

// Server is the HTTP host of editor sessions.
type Server struct {
	app      *fiber.App
	sessions *SessionManager
	settings *models.Settings
	logger   *log.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the diagnostics logger. Request logging goes to the same
// writer.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds the app and its routes. p may be nil, in which case element
// requests fail with 503.
func New(settings *models.Settings, p provider.ElementProvider, opts ...Option) *Server {
	s := &Server{
		settings: settings,
		logger:   log.New(io.Discard, "[SERVER] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sessions = NewSessionManager(p, s.logger)

	s.app = fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(settings.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(settings.Server.WriteTimeout) * time.Second,
		AppName:      "InkStudio",
	})

	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
		Stream:     s.logger.Writer(),
	}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{"*"},
		AllowMethods: []string{"*"},
	}))

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health/live", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "alive"})
	})
	s.app.Get("/health/ready", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ready", "sessions": s.sessions.Len()})
	})

	s.app.Post("/sessions", s.openSession)
	s.app.Get("/sessions/:id", s.getSession)
	s.app.Delete("/sessions/:id", s.closeSession)
	s.app.Post("/sessions/:id/elements", s.requestElement)
	s.app.Delete("/sessions/:id/layers/:layer", s.removeLayer)
	s.app.Post("/sessions/:id/layers/:layer/reorder", s.reorderLayer)
	s.app.Patch("/sessions/:id/layers/:layer", s.updateLayer)
	s.app.Post("/sessions/:id/layers/:layer/refine", s.refineLayer)
	s.app.Post("/sessions/:id/select", s.selectLayer)
	s.app.Post("/sessions/:id/pointer", s.pointer)
	s.app.Post("/sessions/:id/undo", s.undo)
	s.app.Get("/sessions/:id/draw", s.drawList)
}

// App returns the underlying fiber app.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured port until Shutdown.
func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%s", s.settings.Server.Port)
	s.logger.Printf("Starting InkStudio server on %s", addr)
	return s.app.Listen(addr)
}

// Shutdown closes every session and stops the listener.
func (s *Server) Shutdown() error {
	s.sessions.CloseAll()
	return s.app.Shutdown()
}
