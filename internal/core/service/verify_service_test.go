package service

import (
	"context"
	"errors"
	"testing"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

func principal(id int, roles ...domain.Role) *domain.Principal {
	return &domain.Principal{UserID: id, Username: "user", Roles: roles}
}

func TestVerifyService_VerifySameUser(t *testing.T) {
	svc := NewVerifyService(newStubRecordRepo())

	cases := []struct {
		name    string
		target  int
		p       *domain.Principal
		wantErr error
	}{
		{"self", 7, principal(7, domain.RoleUser), nil},
		{"other user", 8, principal(7, domain.RoleUser), domain.ErrUnauthorized},
		{"admin on other user", 7, principal(8, domain.RoleUser, domain.RoleAdmin), domain.ErrUnauthorized},
		{"no principal", 7, nil, domain.ErrUnauthenticated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.VerifySameUser(tc.target, tc.p)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestVerifyService_VerifySameUserOrAdmin(t *testing.T) {
	svc := NewVerifyService(newStubRecordRepo())

	cases := []struct {
		name    string
		target  int
		p       *domain.Principal
		wantErr error
	}{
		{"self without admin", 7, principal(7, domain.RoleUser), nil},
		{"self with no roles", 7, principal(7), nil},
		{"admin on other user", 7, principal(8, domain.RoleUser, domain.RoleAdmin), nil},
		{"admin without user role", 7, principal(8, domain.RoleAdmin), nil},
		{"plain user on other user", 7, principal(8, domain.RoleUser), domain.ErrUnauthorized},
		{"no principal", 7, nil, domain.ErrUnauthenticated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.VerifySameUserOrAdmin(tc.target, tc.p)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestVerifyService_RecordOwnership(t *testing.T) {
	records := newStubRecordRepo()
	records.seed(&domain.Record{ID: 100, UserID: 7, Hours: 2})
	svc := NewVerifyService(records)
	ctx := context.Background()

	owner := principal(7, domain.RoleUser)
	foreignAdmin := principal(8, domain.RoleUser, domain.RoleAdmin)

	checks := map[string]func(context.Context, int, *domain.Principal) error{
		"update": svc.VerifyUserByRecordID,
		"delete": svc.VerifyUserForDeleteRecord,
	}
	for name, check := range checks {
		t.Run(name, func(t *testing.T) {
			if err := check(ctx, 100, owner); err != nil {
				t.Errorf("owner: expected success, got %v", err)
			}
			if err := check(ctx, 100, foreignAdmin); !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("foreign admin: expected ErrUnauthorized, got %v", err)
			}
			if err := check(ctx, 101, owner); !errors.Is(err, domain.ErrRecordNotFound) {
				t.Errorf("missing record: expected ErrRecordNotFound, got %v", err)
			}
			if err := check(ctx, 100, nil); !errors.Is(err, domain.ErrUnauthenticated) {
				t.Errorf("no principal: expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestVerifyService_HasRole(t *testing.T) {
	svc := NewVerifyService(newStubRecordRepo())

	if !svc.HasRole(principal(1, domain.RoleAdmin), domain.RoleAdmin) {
		t.Error("expected admin role")
	}
	if svc.HasRole(principal(1, domain.RoleAdmin), domain.RoleUser) {
		t.Error("ROLE_Admin must not imply ROLE_User")
	}
	if svc.HasRole(nil, domain.RoleUser) {
		t.Error("nil principal must hold no roles")
	}
}
