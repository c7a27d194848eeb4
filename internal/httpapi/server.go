package httpapi

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/adaptiq/internal/assessment"
	"github.com/abhisek/adaptiq/internal/material"
	"github.com/abhisek/adaptiq/internal/session"
)

// Config configures the HTTP API.
type Config struct {
	Generator assessment.Generator

	// Registry holds live sessions. A nil Registry gets a fresh one.
	Registry *session.Registry

	// RateLimit is the number of requests per minute allowed from one IP.
	// Zero disables limiting.
	RateLimit int

	// AccessLog receives one line per request. Nil means stderr.
	AccessLog io.Writer

	Logger *slog.Logger
}

// DefaultRateLimit is used by the serve command.
const DefaultRateLimit = 60

// Server exposes sessions over HTTP. All state is in memory.
type Server struct {
	app       *fiber.App
	registry  *session.Registry
	generator assessment.Generator
	validate  *validator.Validate
	logger    *slog.Logger

	// base outlives every request and is cancelled by Shutdown.
	base   context.Context
	cancel context.CancelFunc
}

// New builds a Server and registers its routes.
func New(cfg Config) *Server {
	if cfg.Registry == nil {
		cfg.Registry = session.NewRegistry(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.AccessLog == nil {
		cfg.AccessLog = os.Stderr
	}

	s := &Server{
		registry:  cfg.Registry,
		generator: cfg.Generator,
		validate:  validator.New(),
		logger:    cfg.Logger,
	}
	s.base, s.cancel = context.WithCancel(context.Background())

	s.app = fiber.New(fiber.Config{
		AppName:               "adaptiq",
		DisableStartupMessage: true,
		// Leave room for multipart framing around a maximum-size upload.
		BodyLimit:    int(material.MaxFileSize) + 1<<20,
		ReadTimeout:  30 * time.Second,
		ErrorHandler: s.handleError,
	})

	s.app.Use(recoverMiddleware())
	s.app.Use(requestIDMiddleware())
	s.app.Use(accessLogMiddleware(cfg.AccessLog))
	if cfg.RateLimit > 0 {
		s.app.Use(rateLimiter(cfg.RateLimit))
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "sessions": s.registry.Len()})
	})

	v1 := s.app.Group("/v1")
	v1.Post("/sessions", s.createSession)
	v1.Delete("/sessions/:id", s.deleteSession)

	sessions := v1.Group("/sessions/:id")
	sessions.Post("/assessment", s.generateFromText)
	sessions.Post("/material", s.generateFromUpload)
	sessions.Post("/attempts", s.recordAttempt)
	sessions.Get("/report", s.report)
	sessions.Post("/restart", s.restart)
}

// App returns the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("http api listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits up to timeout for
// in-flight requests, then cancels any model call still running.
func (s *Server) Shutdown(timeout time.Duration) error {
	defer s.cancel()
	return s.app.ShutdownWithTimeout(timeout)
}

// Serve listens on addr until ctx is done or the listener fails, then
// gives in-flight requests up to drain to finish.
func (s *Server) Serve(ctx context.Context, addr string, drain time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Listen(addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down http api")
		return s.Shutdown(drain)
	})
	return g.Wait()
}
