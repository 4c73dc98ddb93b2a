package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	apimw "github.com/aniview/aniview/internal/api/middleware"
	"github.com/aniview/aniview/internal/catalog"
	"github.com/aniview/aniview/internal/config"
	"github.com/aniview/aniview/internal/library"
	"github.com/aniview/aniview/internal/scheduler"
	"github.com/aniview/aniview/internal/settings"
)

// Server handles HTTP requests for the AniView API. It is glue over the
// injected services: all domain behavior lives in the service packages.
type Server struct {
	echo   *echo.Echo
	logger zerolog.Logger
	cfg    *config.Config

	catalogService  *catalog.Service
	libraryService  *library.Service
	settingsService *settings.Service
	sched           *scheduler.Scheduler
}

// NewServer creates a new API server instance. Services are constructed by
// the caller and passed in; the server never reaches for ambient state.
func NewServer(
	cfg *config.Config,
	catalogService *catalog.Service,
	libraryService *library.Service,
	settingsService *settings.Service,
	sched *scheduler.Scheduler,
	logger zerolog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:            e,
		logger:          logger.With().Str("component", "api").Logger(),
		cfg:             cfg,
		catalogService:  catalogService,
		libraryService:  libraryService,
		settingsService: settingsService,
		sched:           sched,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.Recover())
	s.echo.Use(middleware.RequestID())
	s.echo.Use(apimw.SecurityHeaders())
	s.echo.Use(middleware.BodyLimit("1M"))

	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Debug().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("Request handled")
			return nil
		},
	}))
}

func (s *Server) setupRoutes() {
	v1 := s.echo.Group("/api/v1")

	catalog.NewHandlers(s.catalogService).RegisterRoutes(v1.Group("/catalog"))
	library.NewHandlers(s.libraryService, s.cfg.User.Ref).RegisterRoutes(v1.Group("/library"))
	settings.NewHandlers(s.settingsService).RegisterRoutes(v1.Group("/settings"))

	v1.GET("/health", s.Health)
	v1.GET("/tasks", s.ListTasks)
	v1.POST("/tasks/:id/run", s.RunTask)
}

// Health reports process liveness.
// GET /api/v1/health
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ListTasks reports the registered background tasks.
// GET /api/v1/tasks
func (s *Server) ListTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, s.sched.ListTasks())
}

// RunTask manually triggers a background task outside its schedule.
// POST /api/v1/tasks/:id/run
func (s *Server) RunTask(c echo.Context) error {
	id := c.Param("id")
	if err := s.sched.RunTask(id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusAccepted, map[string]string{
		"message": "task started",
		"taskId":  id,
	})
}

// Echo returns the underlying echo instance.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start starts the HTTP server on the given address.
func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
