package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/config"
	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
	apperrors "github.com/Shajey/allergy-angel-v1-sub002/internal/errors"
)

// postgresHealthChecker is a minimal interface for PostgreSQL health checks
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

// redisHealthChecker is a minimal interface for Redis health checks
type redisHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       domain.AppService
	db        postgresHealthChecker
	redis     redisHealthChecker
	startTime time.Time
}

// NewServer wires the HTTP layer. redis may be nil when no rate limiting
// backend is configured; readiness then skips the Redis check.
func NewServer(cfg *config.Config, app domain.AppService, db postgresHealthChecker, redis redisHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       app,
		db:        db,
		redis:     redis,
		startTime: time.Now(),
	}

	// Register routes
	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
