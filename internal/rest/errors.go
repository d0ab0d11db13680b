package rest

import (
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"

	"github.com/daniilsolovey/news-cms/internal/auth"
	"github.com/daniilsolovey/news-cms/internal/newsportal"
)

const (
	msgValidation   = "The given data was invalid."
	msgNotFound     = "Resource not found"
	msgUnauthorized = "Unauthenticated."
	msgForbidden    = "This action is unauthorized."
	msgInternal     = "internal error"
)

// newError maps domain errors to a status and a client-safe body.
func newError(err error) (int, ErrorResponse) {
	var (
		ve       validation.Errors
		conflict newsportal.ConflictError
		httpErr  *echo.HTTPError
	)

	switch {
	case errors.As(err, &ve):
		fields := make(map[string]string, len(ve))
		for field, fieldErr := range ve {
			fields[field] = fieldErr.Error()
		}
		return http.StatusUnprocessableEntity, ErrorResponse{Message: msgValidation, Errors: fields}
	case errors.As(err, &conflict):
		return http.StatusUnprocessableEntity, ErrorResponse{Message: conflict.Message}
	case errors.Is(err, newsportal.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{Message: msgNotFound}
	case errors.Is(err, newsportal.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{Message: msgForbidden}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrorResponse{Message: "invalid credentials"}
	case errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, ErrorResponse{Message: "token expired"}
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{Message: msgUnauthorized}
	case errors.Is(err, auth.ErrUnknownProvider):
		return http.StatusBadRequest, ErrorResponse{Message: "Invalid provider"}
	case errors.Is(err, auth.ErrInvalidState):
		return http.StatusBadRequest, ErrorResponse{Message: "invalid oauth state"}
	case errors.Is(err, auth.ErrOAuthFailed):
		return http.StatusInternalServerError, ErrorResponse{Message: "OAuth exchange failed"}
	case errors.As(err, &httpErr):
		msg := http.StatusText(httpErr.Code)
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}
		return httpErr.Code, ErrorResponse{Message: msg}
	}

	return http.StatusInternalServerError, ErrorResponse{Message: msgInternal}
}

// NewErrorHandler writes every handler error as JSON. Server errors are logged
// with details that never reach the client.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := newError(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.Error("failed to write error response", "error", err)
		}
	}
}

// badRequest wraps binding and decoding failures.
func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request parameters").SetInternal(err)
}
