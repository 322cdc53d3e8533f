package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onevoker/TimeTracker/internal/core/ports"
)

// ProjectHandler handles HTTP requests for projects and membership.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      projectRequest  true  "Project"
// @Success      201   {object}  domain.Project
// @Failure      409   {object}  errorResponse
// @Router       /projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.Create(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// List handles GET /projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Project
// @Router       /projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

// Get handles GET /projects/:id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project id"
// @Success      200  {object}  domain.Project
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Members handles GET /projects/:id/users.
//
// @Summary      List project members
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Project id"
// @Success      200  {array}   ports.UserView
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id}/users [get]
func (h *ProjectHandler) Members(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	users, err := h.service.Members(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Update handles PUT /projects/:id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Security     BearerAuth
// @Param        id    path      int             true  "Project id"
// @Param        body  body      projectRequest  true  "Project"
// @Success      204
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /projects/{id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req projectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.Request().Context(), id, req.Name, req.Description); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /projects/:id.
//
// @Summary      Delete a project and its records
// @Tags         projects
// @Security     BearerAuth
// @Param        id   path  int  true  "Project id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /projects/{id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddUser handles POST /projects/:projectId/users/:userId.
//
// @Summary      Add a user to a project
// @Tags         projects
// @Security     BearerAuth
// @Param        projectId  path  int  true  "Project id"
// @Param        userId     path  int  true  "User id"
// @Success      204
// @Failure      404        {object}  errorResponse
// @Failure      409        {object}  errorResponse
// @Router       /projects/{projectId}/users/{userId} [post]
func (h *ProjectHandler) AddUser(c echo.Context) error {
	projectID, userID, err := membershipIDs(c)
	if err != nil {
		return err
	}
	if err := h.service.AddUser(c.Request().Context(), projectID, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RemoveUser handles DELETE /projects/:projectId/users/:userId.
//
// @Summary      Remove a user from a project
// @Tags         projects
// @Security     BearerAuth
// @Param        projectId  path  int  true  "Project id"
// @Param        userId     path  int  true  "User id"
// @Success      204
// @Failure      404        {object}  errorResponse
// @Failure      409        {object}  errorResponse
// @Router       /projects/{projectId}/users/{userId} [delete]
func (h *ProjectHandler) RemoveUser(c echo.Context) error {
	projectID, userID, err := membershipIDs(c)
	if err != nil {
		return err
	}
	if err := h.service.RemoveUser(c.Request().Context(), projectID, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func membershipIDs(c echo.Context) (projectID, userID int, err error) {
	if projectID, err = pathID(c, "projectId"); err != nil {
		return 0, 0, err
	}
	if userID, err = pathID(c, "userId"); err != nil {
		return 0, 0, err
	}
	return projectID, userID, nil
}
