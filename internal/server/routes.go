package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API routes
	s.echo.POST("/api/checks", s.handleSubmitCheck)
	s.echo.GET("/api/profiles/:id", s.handleGetProfile)
	s.echo.PUT("/api/profiles/:id", s.handleSaveProfile)
	s.echo.GET("/api/profiles/:id/insights", s.handleInsights)
}
