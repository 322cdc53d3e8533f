package middleware

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/onevoker/TimeTracker/internal/api/metrics"
	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/pkg/logger"
)

const bearerPrefix = "Bearer "

// PrincipalKey is the echo context key holding the authenticated *domain.Principal.
const PrincipalKey = "principal"

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string, now time.Time) (jwt.MapClaims, error)
}

// ClaimsMapper builds a principal from verified claims.
type ClaimsMapper interface {
	FromClaims(claims jwt.MapClaims) (*domain.Principal, error)
}

// Authenticate attaches the principal of a valid bearer token to the request.
// It never rejects: requests without a usable token continue unauthenticated
// and RequireRole or the ownership checks decide what they may do.
func Authenticate(verifier TokenVerifier, mapper ClaimsMapper) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthGateTotal.WithLabelValues("anonymous").Inc()
				return next(c)
			}

			p, err := principalFromToken(verifier, mapper, token)
			if err != nil {
				metrics.AuthGateTotal.WithLabelValues("invalid").Inc()
				log := logger.FromContext(c.Request().Context())
				log.Debug().Err(err).Msg("bearer token rejected, continuing unauthenticated")
				return next(c)
			}

			metrics.AuthGateTotal.WithLabelValues("authenticated").Inc()
			c.Set(PrincipalKey, p)
			c.SetRequest(c.Request().WithContext(domain.WithPrincipal(c.Request().Context(), p)))
			return next(c)
		}
	}
}

func principalFromToken(verifier TokenVerifier, mapper ClaimsMapper, token string) (*domain.Principal, error) {
	claims, err := verifier.Verify(token, time.Now())
	if err != nil {
		return nil, err
	}
	return mapper.FromClaims(claims)
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-sensitively.
func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := header[len(bearerPrefix):]
	if token == "" {
		return "", false
	}
	return token, true
}
