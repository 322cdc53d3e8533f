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

type userService struct {
	users    ports.UserRepository
	projects ports.ProjectRepository
	records  ports.RecordRepository
	hasher   *PasswordHasher
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(
	users ports.UserRepository,
	projects ports.ProjectRepository,
	records ports.RecordRepository,
	hasher *PasswordHasher,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.UserService {
	return &userService{
		users:    users,
		projects: projects,
		records:  records,
		hasher:   hasher,
		activity: activity,
		log:      log,
	}
}

func (s *userService) List(ctx context.Context) ([]ports.UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ports.UserView, 0, len(users))
	for _, u := range users {
		out = append(out, ports.UserView{ID: u.ID, Username: u.Username})
	}
	return out, nil
}

func (s *userService) Get(ctx context.Context, id int) (*ports.UserView, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ports.UserView{ID: u.ID, Username: u.Username}, nil
}

// Records lists every record owned by the user.
func (s *userService) Records(ctx context.Context, id int) ([]ports.RecordView, error) {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}
	records, err := s.records.List(ctx, ports.RecordFilter{UserID: &id})
	if err != nil {
		return nil, err
	}
	return newRecordJoiner(s.users, s.projects).views(ctx, records)
}

// Projects lists the projects the user is a member of.
func (s *userService) Projects(ctx context.Context, id int) ([]*domain.Project, error) {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.projects.ListByMember(ctx, id)
}

// Update replaces the username and password. The new username must not be
// taken, including by the user being updated.
func (s *userService) Update(ctx context.Context, id int, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return domain.ErrDuplicateUser
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	if err := s.users.UpdateCredentials(ctx, id, username, hash); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.activity.Record(newActivity(actorID(ctx), domain.ActionUserUpdated, "user", id, time.Now().UTC()))
	return nil
}

// Delete removes the user along with their records and project memberships.
// The account itself goes last so a failed cascade can be retried.
func (s *userService) Delete(ctx context.Context, id int) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.records.DeleteByUser(ctx, id); err != nil {
		return fmt.Errorf("delete user records: %w", err)
	}
	if err := s.projects.RemoveMemberEverywhere(ctx, id); err != nil {
		return fmt.Errorf("delete user memberships: %w", err)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.activity.Record(newActivity(actorID(ctx), domain.ActionUserDeleted, "user", id, time.Now().UTC()))
	s.log.Info().Int("user_id", id).Msg("user deleted")
	return nil
}
