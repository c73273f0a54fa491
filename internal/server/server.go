package server

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mlindemann/menucard-importer/internal/export"
	"github.com/mlindemann/menucard-importer/internal/pipeline"
	"github.com/mlindemann/menucard-importer/internal/repository"
)

// Server wires the processing pipeline and exporters to HTTP handlers.
type Server struct {
	processor *pipeline.Processor
	renderer  *export.Renderer
	jobs      *repository.JobStore // optional
	logger    *slog.Logger
}

func New(processor *pipeline.Processor, renderer *export.Renderer, jobs *repository.JobStore, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{processor: processor, renderer: renderer, jobs: jobs, logger: logger}
}

// Router builds the echo instance with all routes registered.
func (s *Server) Router() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	e.GET("/healthz", s.handleHealth)
	e.POST("/api/menus/process", s.handleProcess)
	e.POST("/api/menus/export/csv", s.handleExportCSV)
	e.POST("/api/menus/export/xlsx", s.handleExportXLSX)
	e.GET("/api/jobs", s.handleListJobs)

	return e
}
