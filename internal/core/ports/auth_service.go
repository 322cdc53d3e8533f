package ports

import (
	"context"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// AuthResult is returned by a successful login or registration.
type AuthResult struct {
	Principal *domain.Principal
	Token     string
}

// AuthService authenticates credentials and issues bearer tokens.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

// Verifier enforces the ownership rules that gate mutations.
type Verifier interface {
	VerifySameUser(targetUserID int, p *domain.Principal) error
	VerifySameUserOrAdmin(targetUserID int, p *domain.Principal) error
	VerifyUserByRecordID(ctx context.Context, recordID int, p *domain.Principal) error
	VerifyUserForDeleteRecord(ctx context.Context, recordID int, p *domain.Principal) error
}

// RoleService is the admin-facing role management use case.
type RoleService interface {
	AddRoleToUser(ctx context.Context, username string, role domain.Role) (string, error)
	CreateUserWithRole(ctx context.Context, username, password string, role domain.Role) (string, error)
	CreateRole(ctx context.Context, role domain.Role) (*domain.RoleEntry, error)
	ListRoles(ctx context.Context) ([]*domain.RoleEntry, error)
}
