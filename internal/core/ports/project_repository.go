package ports

import (
	"context"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// ProjectRepository defines persistence for projects and their membership.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id int) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListByMember(ctx context.Context, userID int) ([]*domain.Project, error)
	Update(ctx context.Context, id int, name, description string) error
	Delete(ctx context.Context, id int) error
	AddMember(ctx context.Context, projectID, userID int) error
	RemoveMember(ctx context.Context, projectID, userID int) error
	// RemoveMemberEverywhere drops userID from every project it belongs to.
	RemoveMemberEverywhere(ctx context.Context, userID int) error
}
