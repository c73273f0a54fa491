package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mlindemann/menucard-importer/internal/common"
)

// apiError is the JSON error envelope returned by all handlers.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	switch {
	case errors.Is(err, common.ErrNoExtractableText):
		status, code = http.StatusUnprocessableEntity, "NO_EXTRACTABLE_TEXT"
	case errors.Is(err, common.ErrExtraction):
		status, code = http.StatusBadRequest, "EXTRACTION_ERROR"
	case errors.Is(err, common.ErrInvalidInput):
		status, code = http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, common.ErrConfiguration):
		status, code = http.StatusInternalServerError, "CONFIGURATION_ERROR"
	case errors.Is(err, common.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	}

	var app *common.AppError
	if errors.As(err, &app) {
		return c.JSON(status, apiError{Code: app.Code, Message: app.Message})
	}
	return c.JSON(status, apiError{Code: code, Message: err.Error()})
}
