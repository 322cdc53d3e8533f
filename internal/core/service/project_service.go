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

type projectService struct {
	projects ports.ProjectRepository
	users    ports.UserRepository
	records  ports.RecordRepository
	activity ports.ActivityRecorder
	log      zerolog.Logger
}

// NewProjectService returns a ProjectService implementation.
func NewProjectService(
	projects ports.ProjectRepository,
	users ports.UserRepository,
	records ports.RecordRepository,
	activity ports.ActivityRecorder,
	log zerolog.Logger,
) ports.ProjectService {
	return &projectService{
		projects: projects,
		users:    users,
		records:  records,
		activity: activity,
		log:      log,
	}
}

func (s *projectService) Create(ctx context.Context, name, description string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", domain.ErrInvalidInput)
	}
	created, err := s.projects.Create(ctx, &domain.Project{Name: name, Description: description})
	if err != nil {
		return nil, err
	}
	s.record(ctx, domain.ActionProjectCreated, created.ID)
	return created, nil
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Get(ctx context.Context, id int) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// Members lists the users assigned to the project.
func (s *projectService) Members(ctx context.Context, id int) ([]ports.UserView, error) {
	p, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]ports.UserView, 0, len(p.MemberIDs))
	for _, uid := range p.MemberIDs {
		u, err := s.users.FindByID(ctx, uid)
		if errors.Is(err, domain.ErrUserNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, ports.UserView{ID: u.ID, Username: u.Username})
	}
	return out, nil
}

// Update renames the project. Resubmitting the current name and description
// is rejected with domain.ErrProjectUnchanged.
func (s *projectService) Update(ctx context.Context, id int, name, description string) error {
	if name == "" {
		return fmt.Errorf("%w: project name is required", domain.ErrInvalidInput)
	}
	current, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Name == name && current.Description == description {
		return domain.ErrProjectUnchanged
	}
	if err := s.projects.Update(ctx, id, name, description); err != nil {
		return err
	}
	s.record(ctx, domain.ActionProjectUpdated, id)
	return nil
}

// Delete removes the project and every record logged against it.
func (s *projectService) Delete(ctx context.Context, id int) error {
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.records.DeleteByProject(ctx, id); err != nil {
		return fmt.Errorf("delete project records: %w", err)
	}
	s.record(ctx, domain.ActionProjectDeleted, id)
	s.log.Info().Int("project_id", id).Msg("project deleted")
	return nil
}

func (s *projectService) AddUser(ctx context.Context, projectID, userID int) error {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if p.HasMember(userID) {
		return domain.ErrUserInProject
	}
	if err := s.projects.AddMember(ctx, projectID, userID); err != nil {
		return err
	}
	s.record(ctx, domain.ActionProjectUserAdded, projectID)
	return nil
}

func (s *projectService) RemoveUser(ctx context.Context, projectID, userID int) error {
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if !p.HasMember(userID) {
		return domain.ErrUserNotInProject
	}
	if err := s.projects.RemoveMember(ctx, projectID, userID); err != nil {
		return err
	}
	s.record(ctx, domain.ActionProjectUserRemoved, projectID)
	return nil
}

func (s *projectService) record(ctx context.Context, action string, projectID int) {
	s.activity.Record(newActivity(actorID(ctx), action, "project", projectID, time.Now().UTC()))
}
