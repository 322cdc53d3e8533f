package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onevoker/TimeTracker/internal/core/ports"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	service  ports.UserService
	verifier ports.Verifier
}

func NewUserHandler(service ports.UserService, verifier ports.Verifier) *UserHandler {
	return &UserHandler{service: service, verifier: verifier}
}

// List handles GET /users.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.UserView
// @Failure      401  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  ports.UserView
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	user, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Records handles GET /users/:id/records.
//
// @Summary      List a user's records
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {array}   ports.RecordView
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/records [get]
func (h *UserHandler) Records(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	records, err := h.service.Records(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Projects handles GET /users/:id/projects.
//
// @Summary      List a user's projects
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {array}   domain.Project
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/projects [get]
func (h *UserHandler) Projects(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	projects, err := h.service.Projects(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Update handles PUT /users/:id. Only the user themself may change their
// credentials.
//
// @Summary      Update own credentials
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      int                 true  "User id"
// @Param        body  body      credentialsRequest  true  "New username and password"
// @Success      204
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req credentialsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.verifier.VerifySameUser(id, principal(c)); err != nil {
		return err
	}
	if err := h.service.Update(c.Request().Context(), id, req.Username, req.Password); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /users/:id. Allowed for the user themself or an admin.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path      int  true  "User id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.verifier.VerifySameUserOrAdmin(id, principal(c)); err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
