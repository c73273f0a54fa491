package server

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mlindemann/menucard-importer/internal/common"
	"github.com/mlindemann/menucard-importer/internal/export"
	"github.com/mlindemann/menucard-importer/internal/menu"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleProcess accepts one multipart file upload, runs the full pipeline,
// and returns the structured items plus per-chunk statuses. A partially
// failed upload still answers 200 with the salvaged items and a warning
// trail; only file-level failures produce an error status.
func (s *Server) handleProcess(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return errorResponse(c, common.NewAppError("INVALID_INPUT",
			"multipart field 'file' is required", common.ErrInvalidInput))
	}

	f, err := fh.Open()
	if err != nil {
		return errorResponse(c, common.WrapError(err, "open upload"))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return errorResponse(c, common.WrapError(err, "read upload"))
	}

	out, err := s.processor.ProcessFile(c.Request().Context(), data, fh.Filename)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// exportRequest carries records posted back for rendering, typically after
// the user edited them in the table UI.
type exportRequest struct {
	Items []menu.ItemRecord `json:"items"`
}

func (s *Server) handleExportCSV(c echo.Context) error {
	var req exportRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, common.NewAppError("INVALID_INPUT", "invalid JSON body", common.ErrInvalidInput))
	}

	csvText, err := s.renderer.RenderCSV(req.Items)
	if err != nil {
		return errorResponse(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="menu.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", []byte(csvText))
}

func (s *Server) handleExportXLSX(c echo.Context) error {
	var req exportRequest
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, common.NewAppError("INVALID_INPUT", "invalid JSON body", common.ErrInvalidInput))
	}

	data, err := export.RenderXLSX(req.Items, s.logger)
	if err != nil {
		return errorResponse(c, err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="menu.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) handleListJobs(c echo.Context) error {
	if s.jobs == nil {
		return errorResponse(c, common.NewAppError("NOT_FOUND", "job history is disabled", common.ErrNotFound))
	}

	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return errorResponse(c, common.NewAppError("INVALID_INPUT", "limit must be a positive integer", common.ErrInvalidInput))
		}
		limit = n
	}

	jobs, err := s.jobs.List(c.Request().Context(), limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, jobs)
}
