package ports

import (
	"context"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// RecordFilter narrows a record listing. Nil fields are not applied.
type RecordFilter struct {
	UserID    *int
	ProjectID *int
	Range     *domain.DateRange
}

// RecordRepository defines persistence for time records.
type RecordRepository interface {
	Create(ctx context.Context, r *domain.Record) (*domain.Record, error)
	FindByID(ctx context.Context, id int) (*domain.Record, error)
	List(ctx context.Context, filter RecordFilter) ([]*domain.Record, error)
	Update(ctx context.Context, id, hours int, description string) error
	Delete(ctx context.Context, id int) error
	DeleteByUser(ctx context.Context, userID int) error
	DeleteByProject(ctx context.Context, projectID int) error
}

// RecordOwnerLookup resolves the owning user of a record. Returns
// domain.ErrRecordNotFound when the record does not exist.
type RecordOwnerLookup interface {
	OwnerOf(ctx context.Context, recordID int) (int, error)
}
