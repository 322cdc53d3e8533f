package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// principal returns the caller attached by the authentication gate, or nil.
func principal(c echo.Context) *domain.Principal {
	p, _ := domain.PrincipalFromContext(c.Request().Context())
	return p
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

// bindAndValidate decodes the request into req and runs the validator.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// dateRange reads the inclusive startDate/endDate query window (RFC 3339).
func dateRange(c echo.Context) (*domain.DateRange, error) {
	var q dateRangeQuery
	if err := bindAndValidate(c, &q); err != nil {
		return nil, err
	}
	from, err := time.Parse(time.RFC3339, q.StartDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "startDate must be an RFC 3339 timestamp")
	}
	to, err := time.Parse(time.RFC3339, q.EndDate)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "endDate must be an RFC 3339 timestamp")
	}
	return &domain.DateRange{From: from.UTC(), To: to.UTC()}, nil
}
