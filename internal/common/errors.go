package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error taxonomy. Extraction and configuration errors are fatal per file;
// completion and parse errors are caught per chunk and degrade that chunk
// to zero items.
var (
	ErrExtraction        = errors.New("extraction failed")
	ErrNoExtractableText = errors.New("no extractable text")
	ErrCompletion        = errors.New("completion backend error")
	ErrResponseParse     = errors.New("response parse error")
	ErrConfiguration     = errors.New("configuration error")
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidInput      = errors.New("invalid input")
)

func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
