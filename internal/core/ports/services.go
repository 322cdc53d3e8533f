package ports

import (
	"context"
	"time"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// UserView is the public shape of a user.
type UserView struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// RecordView is a record joined with its owner and project names.
type RecordView struct {
	ID          int       `json:"id"`
	ProjectName string    `json:"projectName,omitempty"`
	Username    string    `json:"username"`
	Hours       int       `json:"hours"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RecordInput carries the mutable fields of a record.
type RecordInput struct {
	Hours       int
	Description string
}

// UserService covers reads and self-service updates of user accounts.
type UserService interface {
	List(ctx context.Context) ([]UserView, error)
	Get(ctx context.Context, id int) (*UserView, error)
	Records(ctx context.Context, id int) ([]RecordView, error)
	Projects(ctx context.Context, id int) ([]*domain.Project, error)
	Update(ctx context.Context, id int, username, password string) error
	Delete(ctx context.Context, id int) error
}

// ProjectService covers project administration and membership.
type ProjectService interface {
	Create(ctx context.Context, name, description string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Get(ctx context.Context, id int) (*domain.Project, error)
	Members(ctx context.Context, id int) ([]UserView, error)
	Update(ctx context.Context, id int, name, description string) error
	Delete(ctx context.Context, id int) error
	AddUser(ctx context.Context, projectID, userID int) error
	RemoveUser(ctx context.Context, projectID, userID int) error
}

// RecordService covers time records.
type RecordService interface {
	Create(ctx context.Context, userID, projectID int, in RecordInput) (*domain.Record, error)
	List(ctx context.Context) ([]RecordView, error)
	Get(ctx context.Context, id int) (*RecordView, error)
	Update(ctx context.Context, id int, in RecordInput) error
	Delete(ctx context.Context, id int) error
	Between(ctx context.Context, filter RecordFilter) ([]RecordView, error)
}
