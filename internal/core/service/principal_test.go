package service

import (
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

func TestPrincipalExtractor_FromClaims(t *testing.T) {
	extractor := NewPrincipalExtractor(testClaims)

	p, err := extractor.FromClaims(jwt.MapClaims{
		"sub":      "7",
		"username": "alice",
		"roles":    []any{"ROLE_User", "ROLE_Admin"},
	})
	if err != nil {
		t.Fatalf("FromClaims: %v", err)
	}
	if p.UserID != 7 || p.Username != "alice" {
		t.Errorf("got %+v", p)
	}
	if !p.HasRole(domain.RoleUser) || !p.HasRole(domain.RoleAdmin) {
		t.Errorf("expected both roles, got %v", p.Roles)
	}
}

func TestPrincipalExtractor_MissingRolesIsEmpty(t *testing.T) {
	extractor := NewPrincipalExtractor(testClaims)

	for name, claims := range map[string]jwt.MapClaims{
		"absent": {"sub": "7", "username": "alice"},
		"null":   {"sub": "7", "username": "alice", "roles": nil},
		"empty":  {"sub": "7", "username": "alice", "roles": []any{}},
	} {
		t.Run(name, func(t *testing.T) {
			p, err := extractor.FromClaims(claims)
			if err != nil {
				t.Fatalf("FromClaims: %v", err)
			}
			if p.Roles == nil || len(p.Roles) != 0 {
				t.Errorf("expected empty non-nil roles, got %#v", p.Roles)
			}
		})
	}
}

func TestPrincipalExtractor_Invalid(t *testing.T) {
	extractor := NewPrincipalExtractor(testClaims)

	cases := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{"missing sub", jwt.MapClaims{"username": "alice"}},
		{"non numeric sub", jwt.MapClaims{"sub": "alice", "username": "alice"}},
		{"sub not a string", jwt.MapClaims{"sub": 7, "username": "alice"}},
		{"missing username", jwt.MapClaims{"sub": "7"}},
		{"username not a string", jwt.MapClaims{"sub": "7", "username": 12}},
		{"roles scalar", jwt.MapClaims{"sub": "7", "username": "alice", "roles": "ROLE_User"}},
		{"roles with non string", jwt.MapClaims{"sub": "7", "username": "alice", "roles": []any{"ROLE_User", 1}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := extractor.FromClaims(tc.claims)
			if !errors.Is(err, domain.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
