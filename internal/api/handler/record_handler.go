package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onevoker/TimeTracker/internal/core/ports"
)

// RecordHandler handles HTTP requests for time records.
type RecordHandler struct {
	service  ports.RecordService
	verifier ports.Verifier
}

func NewRecordHandler(service ports.RecordService, verifier ports.Verifier) *RecordHandler {
	return &RecordHandler{service: service, verifier: verifier}
}

// Create handles POST /records/projects/:projectId/users/:userId. Users log
// time only for themselves and only on projects they belong to.
//
// @Summary      Log hours on a project
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      int            true  "Project id"
// @Param        userId     path      int            true  "User id"
// @Param        body       body      recordRequest  true  "Hours and description"
// @Success      201        {object}  ports.RecordView
// @Failure      403        {object}  errorResponse
// @Failure      409        {object}  errorResponse
// @Router       /records/projects/{projectId}/users/{userId} [post]
func (h *RecordHandler) Create(c echo.Context) error {
	projectID, userID, err := membershipIDs(c)
	if err != nil {
		return err
	}
	var req recordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.verifier.VerifySameUser(userID, principal(c)); err != nil {
		return err
	}

	ctx := c.Request().Context()
	created, err := h.service.Create(ctx, userID, projectID, ports.RecordInput{Hours: req.Hours, Description: req.Description})
	if err != nil {
		return err
	}
	view, err := h.service.Get(ctx, created.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, view)
}

// List handles GET /records.
//
// @Summary      List all records
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ports.RecordView
// @Router       /records [get]
func (h *RecordHandler) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

// Get handles GET /records/:id.
//
// @Summary      Get a record
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Record id"
// @Success      200  {object}  ports.RecordView
// @Failure      404  {object}  errorResponse
// @Router       /records/{id} [get]
func (h *RecordHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	view, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Update handles PUT /records/:id. Only the record's owner may change it.
//
// @Summary      Update a record
// @Tags         records
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  int            true  "Record id"
// @Param        body  body  recordRequest  true  "Hours and description"
// @Success      204
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /records/{id} [put]
func (h *RecordHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req recordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.verifier.VerifyUserByRecordID(ctx, id, principal(c)); err != nil {
		return err
	}
	if err := h.service.Update(ctx, id, ports.RecordInput{Hours: req.Hours, Description: req.Description}); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /records/:id. Only the record's owner may delete it.
//
// @Summary      Delete a record
// @Tags         records
// @Security     BearerAuth
// @Param        id   path  int  true  "Record id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /records/{id} [delete]
func (h *RecordHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.verifier.VerifyUserForDeleteRecord(ctx, id, principal(c)); err != nil {
		return err
	}
	if err := h.service.Delete(ctx, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Between handles GET /records/between-dates.
//
// @Summary      Records created in a date range
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        startDate  query     string  true  "RFC 3339 start, inclusive"
// @Param        endDate    query     string  true  "RFC 3339 end, inclusive"
// @Success      200        {array}   ports.RecordView
// @Failure      400        {object}  errorResponse
// @Router       /records/between-dates [get]
func (h *RecordHandler) Between(c echo.Context) error {
	return h.between(c, ports.RecordFilter{})
}

// BetweenForProject handles GET /records/projects/:projectId/between-dates.
//
// @Summary      Project records in a date range
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      int     true  "Project id"
// @Param        startDate  query     string  true  "RFC 3339 start, inclusive"
// @Param        endDate    query     string  true  "RFC 3339 end, inclusive"
// @Success      200        {array}   ports.RecordView
// @Router       /records/projects/{projectId}/between-dates [get]
func (h *RecordHandler) BetweenForProject(c echo.Context) error {
	projectID, err := pathID(c, "projectId")
	if err != nil {
		return err
	}
	return h.between(c, ports.RecordFilter{ProjectID: &projectID})
}

// BetweenForUser handles GET /records/users/:userId/between-dates.
//
// @Summary      User records in a date range
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        userId     path      int     true  "User id"
// @Param        startDate  query     string  true  "RFC 3339 start, inclusive"
// @Param        endDate    query     string  true  "RFC 3339 end, inclusive"
// @Success      200        {array}   ports.RecordView
// @Router       /records/users/{userId}/between-dates [get]
func (h *RecordHandler) BetweenForUser(c echo.Context) error {
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	return h.between(c, ports.RecordFilter{UserID: &userID})
}

// BetweenForProjectUser handles GET /records/projects/:projectId/users/:userId/between-dates.
//
// @Summary      A user's records on a project in a date range
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        projectId  path      int     true  "Project id"
// @Param        userId     path      int     true  "User id"
// @Param        startDate  query     string  true  "RFC 3339 start, inclusive"
// @Param        endDate    query     string  true  "RFC 3339 end, inclusive"
// @Success      200        {array}   ports.RecordView
// @Router       /records/projects/{projectId}/users/{userId}/between-dates [get]
func (h *RecordHandler) BetweenForProjectUser(c echo.Context) error {
	projectID, userID, err := membershipIDs(c)
	if err != nil {
		return err
	}
	return h.between(c, ports.RecordFilter{ProjectID: &projectID, UserID: &userID})
}

func (h *RecordHandler) between(c echo.Context, filter ports.RecordFilter) error {
	window, err := dateRange(c)
	if err != nil {
		return err
	}
	filter.Range = window
	records, err := h.service.Between(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
