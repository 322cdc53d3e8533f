package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onevoker/TimeTracker/internal/api/metrics"
	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a ROLE_User account and returns a token for it.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Username and password"
// @Success      201   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("register", "failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("register", "success").Inc()
	return c.JSON(http.StatusCreated, tokenResponse{Token: res.Token})
}

// Login authenticates a user and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      credentialsRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAuthenticationFailed) {
			metrics.LoginsTotal.WithLabelValues("login", "failure").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("login", "success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: res.Token})
}
