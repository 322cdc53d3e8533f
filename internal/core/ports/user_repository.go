package ports

import (
	"context"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// UserRepository defines persistence for stored credential records.
type UserRepository interface {
	// Create assigns an ID and persists the user. Returns domain.ErrDuplicateUser
	// when the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id int) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	UpdateCredentials(ctx context.Context, id int, username, passwordHash string) error
	AddRole(ctx context.Context, id int, role domain.Role) error
	Delete(ctx context.Context, id int) error
}

// RoleRepository holds the set of known role names.
type RoleRepository interface {
	Create(ctx context.Context, name domain.Role) (*domain.RoleEntry, error)
	FindByName(ctx context.Context, name domain.Role) (*domain.RoleEntry, error)
	List(ctx context.Context) ([]*domain.RoleEntry, error)
}
