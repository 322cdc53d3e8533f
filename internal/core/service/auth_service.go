package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	codec    *TokenCodec
	hasher   *PasswordHasher
	activity ports.ActivityRecorder
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	codec *TokenCodec,
	hasher *PasswordHasher,
	activity ports.ActivityRecorder,
) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		codec:    codec,
		hasher:   hasher,
		activity: activity,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Register creates a ROLE_User account and logs it in.
func (s *AuthService) Register(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrDuplicateUser
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register: %w", err)
	}

	role, err := s.roles.FindByName(ctx, domain.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Roles:        []domain.Role{role.Name},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	s.activity.Record(newActivity(created.ID, domain.ActionUserRegistered, "user", created.ID, now))

	return s.Login(ctx, username, password)
}

// Login checks credentials and issues a token. An unknown username and a
// wrong password fail with the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrAuthenticationFailed
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		s.hasher.Burn(password)
		return nil, domain.ErrAuthenticationFailed
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Matches(user.PasswordHash, password) {
		return nil, domain.ErrAuthenticationFailed
	}

	principal := domain.NewPrincipal(user)
	token, err := s.codec.Issue(principal.UserID, principal.Username, domain.RoleNames(principal.Roles), s.now())
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Principal: principal, Token: token}, nil
}
