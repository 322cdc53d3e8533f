package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

type roleService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	hasher   *PasswordHasher
	activity ports.ActivityRecorder
	log      zerolog.Logger
	now      func() time.Time
}

// NewRoleService returns a RoleService implementation.
func NewRoleService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher *PasswordHasher,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.RoleService {
	return &roleService{
		users:    users,
		roles:    roles,
		hasher:   hasher,
		activity: activity,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// AddRoleToUser grants role to username. Granting a role the user already
// holds is reported in the message, not as an error.
func (s *roleService) AddRoleToUser(ctx context.Context, username string, role domain.Role) (string, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	entry, err := s.roles.FindByName(ctx, role)
	if err != nil {
		return "", err
	}
	if user.HasRole(entry.Name) {
		return "This user already has this role", nil
	}

	if err := s.users.AddRole(ctx, user.ID, entry.Name); err != nil {
		return "", fmt.Errorf("add role: %w", err)
	}
	s.activity.Record(newActivity(actorID(ctx), domain.ActionRoleGranted, "user", user.ID, s.now()))
	s.log.Info().Int("user_id", user.ID).Str("role", string(entry.Name)).Msg("role granted")

	return fmt.Sprintf("To %s was added role %s", user.Username, entry.Name), nil
}

// CreateUserWithRole registers a user holding role directly. ROLE_Admin
// accounts also receive ROLE_User.
func (s *roleService) CreateUserWithRole(ctx context.Context, username, password string, role domain.Role) (string, error) {
	if username == "" || password == "" {
		return "", fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return "", domain.ErrDuplicateUser
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	entry, err := s.roles.FindByName(ctx, role)
	if err != nil {
		return "", err
	}
	roles := []domain.Role{entry.Name}
	if entry.Name == domain.RoleAdmin {
		userRole, err := s.roles.FindByName(ctx, domain.RoleUser)
		if err != nil {
			return "", err
		}
		roles = append(roles, userRole.Name)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}
	now := s.now()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return "", fmt.Errorf("create user with role: %w", err)
	}
	s.activity.Record(newActivity(actorID(ctx), domain.ActionUserRegistered, "user", created.ID, now))

	msg := fmt.Sprintf("%s was created with role %s", created.Username, entry.Name)
	if entry.Name == domain.RoleAdmin {
		msg += " (admins also receive ROLE_User)"
	}
	return msg, nil
}

// CreateRole adds a new role name. Names must start with ROLE_.
func (s *roleService) CreateRole(ctx context.Context, role domain.Role) (*domain.RoleEntry, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role name must start with %s", domain.ErrInvalidInput, domain.RolePrefix)
	}
	entry, err := s.roles.Create(ctx, role)
	if err != nil {
		return nil, err
	}
	s.activity.Record(newActivity(actorID(ctx), domain.ActionRoleCreated, "role", entry.ID, s.now()))
	return entry, nil
}

func (s *roleService) ListRoles(ctx context.Context) ([]*domain.RoleEntry, error) {
	return s.roles.List(ctx)
}
