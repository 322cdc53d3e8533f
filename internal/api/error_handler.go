package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/onevoker/TimeTracker/internal/api/metrics"
	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// domainStatus maps domain sentinels to HTTP status codes. Order matters only
// for errors wrapping more than one sentinel.
var domainStatus = []struct {
	err  error
	code int
}{
	{domain.ErrUnauthenticated, http.StatusUnauthorized},
	{domain.ErrInvalidToken, http.StatusUnauthorized},
	{domain.ErrAuthenticationFailed, http.StatusUnauthorized},
	{domain.ErrUnauthorized, http.StatusForbidden},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrProjectNotFound, http.StatusNotFound},
	{domain.ErrRecordNotFound, http.StatusNotFound},
	{domain.ErrRoleNotFound, http.StatusNotFound},
	{domain.ErrDuplicateUser, http.StatusConflict},
	{domain.ErrDuplicateProject, http.StatusConflict},
	{domain.ErrDuplicateRole, http.StatusConflict},
	{domain.ErrUserInProject, http.StatusConflict},
	{domain.ErrUserNotInProject, http.StatusConflict},
	{domain.ErrProjectUnchanged, http.StatusConflict},
	{domain.ErrInvalidInput, http.StatusBadRequest},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", "code": "<status text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg, Code: http.StatusText(code)})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		metrics.AuthorizationDeniedTotal.WithLabelValues("unauthenticated").Inc()
	case errors.Is(err, domain.ErrUnauthorized):
		metrics.AuthorizationDeniedTotal.WithLabelValues("forbidden").Inc()
	}

	for _, m := range domainStatus {
		if !errors.Is(err, m.err) {
			continue
		}
		// Input errors carry the offending detail; the rest answer with the
		// sentinel text so internal wrapping stays private.
		if m.err == domain.ErrInvalidInput {
			return m.code, err.Error()
		}
		return m.code, m.err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
