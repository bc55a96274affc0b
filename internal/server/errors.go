package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-pdf/internal/rendering"
	"github.com/jonathan/resume-pdf/internal/schemas"
	"github.com/jonathan/resume-pdf/internal/server/middleware"
	"github.com/jonathan/resume-pdf/internal/types"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBodyTooLarge indicates the request body exceeded the configured limit
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		docErr        *schemas.DocumentError
		fieldErrs     validator.ValidationErrors
		tooLarge      *ErrBodyTooLarge
		pageLimit     *rendering.PageLimitError
	)
	switch {
	case errors.As(err, &validationErr), errors.As(err, &schemaErr), errors.As(err, &docErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &pageLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the client-facing text for err. Internal errors are
// not described to the client.
func errorMessage(err error, status int) string {
	if status == http.StatusInternalServerError {
		return "internal error"
	}

	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		return "invalid request: " + schemaErr.Summary()
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		parts := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
		}
		return "invalid request: " + strings.Join(parts, "; ")
	}

	if status == http.StatusServiceUnavailable {
		return "request timed out"
	}
	return err.Error()
}

// fail logs err and writes it as a JSON error response
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[server] %s %s failed: %v", r.Method, r.URL.Path, err)
	}
	s.errorResponse(w, r, status, errorMessage(err, status))
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.jsonResponse(w, status, types.ErrorResponse{
		Error:     message,
		RequestID: middleware.GetRequestID(r.Context()),
	})
}
