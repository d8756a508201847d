package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ValidationError reports a malformed or incomplete request.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string { return e.Message }

// ConflictError reports a write that collides with existing state.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string { return e.Message }

// NotFoundError reports an unknown id.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string { return e.Message }

// UnauthorizedError reports missing or invalid credentials.
type UnauthorizedError struct {
	Message string
}

func (e UnauthorizedError) Error() string { return e.Message }

// ForbiddenError reports an authenticated caller acting outside its rights.
type ForbiddenError struct {
	Message string
}

func (e ForbiddenError) Error() string { return e.Message }

// BackendError wraps a failed store or auth call. Message is what the client sees;
// Err is only logged.
type BackendError struct {
	Message string
	Err     error
}

func (e BackendError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e BackendError) Unwrap() error { return e.Err }

// NewBackendError wraps err under a client-facing message.
func NewBackendError(message string, err error) error {
	return BackendError{Message: message, Err: err}
}

// StatusFor maps a domain error to its HTTP status and client message.
func StatusFor(err error) (int, string) {
	var (
		validation   ValidationError
		conflict     ConflictError
		notFound     NotFoundError
		unauthorized UnauthorizedError
		forbidden    ForbiddenError
		backend      BackendError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, validation.Message
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Message
	case errors.As(err, &notFound):
		return http.StatusNotFound, notFound.Message
	case errors.As(err, &unauthorized):
		return http.StatusUnauthorized, unauthorized.Message
	case errors.As(err, &forbidden):
		return http.StatusForbidden, forbidden.Message
	case errors.As(err, &backend):
		return http.StatusInternalServerError, backend.Message
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// RespondError writes err as {error: message} with the matching status.
// Server-side failures are logged with the request logger.
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	status, message := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(message, zap.Error(err))
	} else {
		logger.Debug(message, zap.Int("status", status), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": message})
}

// ErrorHandler is a middleware to catch panics and return a JSON 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
		}()
		c.Next()
	}
}
