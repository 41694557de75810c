package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/uwgen/media-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes. The offending path of
	// a traversal attempt is never part of the response.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, domain.Message(err)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, domain.Message(err)
	case errors.Is(err, domain.ErrInactiveAccount):
		return http.StatusForbidden, domain.Message(err)
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, domain.Message(err)
	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, domain.Message(err)
	case errors.Is(err, domain.ErrFileNotFound):
		return http.StatusNotFound, domain.Message(err)
	case errors.Is(err, domain.ErrPathTraversalDetected):
		return http.StatusForbidden, domain.Message(err)
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest, domain.Message(err)
	case errors.Is(err, domain.ErrProviderKeyNotSet):
		return http.StatusBadRequest, domain.Message(err)
	case errors.Is(err, domain.ErrDecryptionFailed):
		// Implies data corruption or a programming error, never user error.
		log.Error().
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("credential decryption failed")
		return http.StatusInternalServerError, domain.Message(err)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
