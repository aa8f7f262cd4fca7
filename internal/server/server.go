// Package server exposes the exercises and the result history over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/mrled/suns/drills/internal/api"
	"github.com/mrled/suns/drills/internal/logger"
	"github.com/mrled/suns/drills/internal/model"
	"github.com/mrled/suns/drills/internal/service/runner"
)

const requestIDHeader = "X-Request-ID"

// ShutdownTimeout bounds how long Serve waits for in-flight requests
const ShutdownTimeout = 5 * time.Second

// Server serves the HTTP API
type Server struct {
	app    *fiber.App
	repo   model.ResultRepository
	runner *runner.Runner
	log    *slog.Logger
}

// New builds a server. Runs are recorded in repo.
func New(repo model.ResultRepository, log *slog.Logger) *Server {
	log = logger.WithService(log, "http")
	s := &Server{
		repo:   repo,
		runner: runner.New(repo, runner.WithLogger(log)),
		log:    log,
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          s.handleError,
	})
	s.app.Use(s.requestID, s.logRequests)

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(api.HealthResponse{Status: "ok"})
	})
	v1 := s.app.Group("/v1")
	v1.Post("/run", s.run)
	v1.Get("/results", s.listResults)
	v1.Get("/results/:id", s.getResult)

	return s
}

// App returns the underlying fiber application
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve listens on addr until ctx is cancelled
func (s *Server) Serve(ctx context.Context, addr string) error {
	go func() {
		<-ctx.Done()
		if err := s.app.ShutdownWithTimeout(ShutdownTimeout); err != nil {
			s.log.Warn("Server shutdown failed", slog.String("error", err.Error()))
		}
	}()

	s.log.Info("HTTP server listening", slog.String("address", addr))
	return s.app.Listen(addr)
}

func (s *Server) run(c *fiber.Ctx) error {
	var req runner.Request
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}
	if req.Kind == "" {
		return fiber.NewError(fiber.StatusBadRequest, "kind field is required")
	}

	result, err := s.runner.Run(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.JSON(api.NewResultView(result))
}

func (s *Server) listResults(c *fiber.Ctx) error {
	query, err := api.ParseQuery(c.Queries())
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	results, err := s.repo.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(api.NewResultsResponse(query.Apply(results)))
}

func (s *Server) getResult(c *fiber.Ctx) error {
	result, err := s.repo.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(api.NewResultView(result))
}

// handleError renders every error as an api.ErrorResponse
func (s *Server) handleError(c *fiber.Ctx, err error) error {
	status := api.StatusFor(err)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	}
	if status >= fiber.StatusInternalServerError {
		s.log.Error("Request failed",
			slog.String("request_id", requestIDFrom(c)),
			slog.String("error", err.Error()))
	}
	return c.Status(status).JSON(api.ErrorResponse{Error: err.Error()})
}

func (s *Server) requestID(c *fiber.Ctx) error {
	id := c.Get(requestIDHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Locals(requestIDHeader, id)
	c.Set(requestIDHeader, id)
	return c.Next()
}

func (s *Server) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	status := c.Response().StatusCode()
	if err != nil {
		status = api.StatusFor(err)
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
	}
	s.log.Info("Request completed",
		slog.String("request_id", requestIDFrom(c)),
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)))
	return err
}

func requestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDHeader).(string)
	return id
}
