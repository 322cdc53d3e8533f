package ports

import (
	"context"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// ActivityRepository persists the audit trail.
type ActivityRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityEntry) error
	Recent(ctx context.Context, limit int) ([]*domain.ActivityEntry, error)
}

// ActivityRecorder accepts audit entries without blocking the caller.
type ActivityRecorder interface {
	Record(entry domain.ActivityEntry)
}
