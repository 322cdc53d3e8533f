package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

// NopRecorder discards activity entries.
type NopRecorder struct{}

func (NopRecorder) Record(domain.ActivityEntry) {}

func newActivity(actorID int, action, resource string, resourceID int, at time.Time) domain.ActivityEntry {
	return domain.ActivityEntry{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		At:         at,
	}
}

// actorID returns the id of the authenticated caller, or 0 for internal calls.
func actorID(ctx context.Context) int {
	if p, ok := domain.PrincipalFromContext(ctx); ok {
		return p.UserID
	}
	return 0
}
