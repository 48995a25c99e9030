package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"gamersdb/backend/internal/models"
)

// Error codes returned alongside the message.
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeUnavailable     = "UNAVAILABLE"
	CodeInternalError   = "INTERNAL_ERROR"
)

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
	Code  string `json:"code" example:"NOT_FOUND"`
}

// statusFor maps catalog errors onto an HTTP status and error code.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidArgument):
		return http.StatusBadRequest, CodeInvalidArgument
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, models.ErrUnavailable):
		return http.StatusServiceUnavailable, CodeUnavailable
	default:
		return http.StatusInternalServerError, CodeInternalError
	}
}

// respondError writes err as an ErrorResponse. Server-side failures are
// logged and their details are not sent to the client.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status, code := statusFor(err)

	message := err.Error()
	switch status {
	case http.StatusServiceUnavailable:
		message = "Catalog store unavailable"
	case http.StatusInternalServerError:
		message = "Internal server error"
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code})
}

// bindError reports a request body that could not be decoded or validated.
func bindError(c *gin.Context, logger *slog.Logger, err error) {
	respondError(c, logger, fmt.Errorf("%w: %s", models.ErrInvalidArgument, err.Error()))
}
