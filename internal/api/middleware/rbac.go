package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onevoker/TimeTracker/internal/api/metrics"
	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// RequireRole rejects requests whose principal lacks role. Requests without
// a principal fail with domain.ErrUnauthenticated.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := domain.PrincipalFromContext(c.Request().Context())
			if !ok {
				return domain.ErrUnauthenticated
			}
			if !p.HasRole(role) {
				metrics.AuthorizationDeniedTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, "access denied: "+string(role)+" required")
			}
			return next(c)
		}
	}
}
