package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

type stubActivityRepo struct {
	limit int
}

func (s *stubActivityRepo) Insert(context.Context, *domain.ActivityEntry) error { return nil }

func (s *stubActivityRepo) Recent(_ context.Context, limit int) ([]*domain.ActivityEntry, error) {
	s.limit = limit
	return []*domain.ActivityEntry{}, nil
}

type stubRoleService struct {
	ports.RoleService
	addRoleFn func(ctx context.Context, username string, role domain.Role) (string, error)
}

func (s *stubRoleService) AddRoleToUser(ctx context.Context, username string, role domain.Role) (string, error) {
	return s.addRoleFn(ctx, username, role)
}

func TestAdminHandler_ActivityLimit(t *testing.T) {
	tests := []struct {
		query     string
		wantLimit int
		wantCode  int
	}{
		{query: "", wantLimit: defaultActivityLimit, wantCode: http.StatusOK},
		{query: "?limit=10", wantLimit: 10, wantCode: http.StatusOK},
		{query: "?limit=100000", wantLimit: maxActivityLimit, wantCode: http.StatusOK},
		{query: "?limit=0", wantCode: http.StatusBadRequest},
		{query: "?limit=abc", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run("limit"+tt.query, func(t *testing.T) {
			repo := &stubActivityRepo{}
			h := NewAdminHandler(&stubRoleService{}, repo)

			e := newTestEcho()
			req := httptest.NewRequest(http.MethodGet, "/admin/activity"+tt.query, nil)
			rec := httptest.NewRecorder()
			err := h.Activity(e.NewContext(req, rec))

			if tt.wantCode == http.StatusBadRequest {
				var he *echo.HTTPError
				if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
					t.Fatalf("expected 400 HTTPError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if repo.limit != tt.wantLimit {
				t.Fatalf("expected limit %d, got %d", tt.wantLimit, repo.limit)
			}
		})
	}
}

func TestAdminHandler_AddRole(t *testing.T) {
	stub := &stubRoleService{
		addRoleFn: func(_ context.Context, username string, role domain.Role) (string, error) {
			if username != "bob" || role != domain.RoleAdmin {
				t.Fatalf("unexpected args: %s %s", username, role)
			}
			return "To bob was added role ROLE_Admin", nil
		},
	}
	h := NewAdminHandler(stub, &stubActivityRepo{})

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/admin/add-role?username=bob&roleName=ROLE_Admin", nil)
	rec := httptest.NewRecorder()

	if err := h.AddRole(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "To bob was added role ROLE_Admin") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
