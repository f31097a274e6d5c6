package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"order-forecast/pkg/calculator"
	"order-forecast/pkg/models"
)

// Standard error codes
const (
	CodeBadRequest        = "BAD_REQUEST"
	CodeNoBaseline        = "NO_BASELINE"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeTimeout           = "TIMEOUT"
	CodeInternalError     = "INTERNAL_ERROR"
)

// AppError is an error with the HTTP status and code it is reported under.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Wrap attaches the underlying cause.
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

func NewAppError(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func ErrBadRequest(message string) *AppError {
	return NewAppError(CodeBadRequest, message, http.StatusBadRequest)
}

func ErrRateLimitExceeded() *AppError {
	return NewAppError(CodeRateLimitExceeded, "cache reload rate limit exceeded", http.StatusTooManyRequests)
}

func ErrInternal(message string) *AppError {
	if message == "" {
		message = "an internal error occurred"
	}
	return NewAppError(CodeInternalError, message, http.StatusInternalServerError)
}

// MapError converts domain errors into AppErrors.
func MapError(err error) *AppError {
	var appErr *AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, calculator.ErrNoBaseline):
		return NewAppError(CodeNoBaseline, "growth is undefined without orders in the last period", http.StatusUnprocessableEntity).Wrap(err)
	case errors.Is(err, models.ErrUnknownMode), errors.Is(err, models.ErrUnknownGroupKey):
		return ErrBadRequest(err.Error()).Wrap(err)
	case errors.Is(err, context.DeadlineExceeded):
		return NewAppError(CodeTimeout, "request timed out", http.StatusGatewayTimeout).Wrap(err)
	default:
		return ErrInternal("").Wrap(err)
	}
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

func respondError(c *gin.Context, logger *slog.Logger, err error) {
	appErr := MapError(err)

	level := slog.LevelError
	if appErr.HTTPStatus < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	attrs := []any{
		"code", appErr.Code,
		"status", appErr.HTTPStatus,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	}
	if appErr.Err != nil {
		attrs = append(attrs, "error", appErr.Err.Error())
	}
	logger.Log(c.Request.Context(), level, "API error", attrs...)

	c.AbortWithStatusJSON(appErr.HTTPStatus, errorResponse{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	})
}
