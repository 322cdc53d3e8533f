package service

import (
	"context"
	"fmt"
	"time"

	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

// OwnerCacheInvalidator drops a cached record owner. Implemented by the
// Redis owner cache.
type OwnerCacheInvalidator interface {
	Invalidate(ctx context.Context, recordID int) error
}

type recordService struct {
	records  ports.RecordRepository
	users    ports.UserRepository
	projects ports.ProjectRepository
	owners   OwnerCacheInvalidator
	activity ports.ActivityRecorder
	now      func() time.Time
}

// NewRecordService returns a RecordService implementation. owners may be nil
// when no owner cache is in front of the record store.
func NewRecordService(
	records ports.RecordRepository,
	users ports.UserRepository,
	projects ports.ProjectRepository,
	owners OwnerCacheInvalidator,
	activity ports.ActivityRecorder,
) ports.RecordService {
	return &recordService{
		records:  records,
		users:    users,
		projects: projects,
		owners:   owners,
		activity: activity,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create logs hours for userID against projectID. The user must be a
// member of the project.
func (s *recordService) Create(ctx context.Context, userID, projectID int, in ports.RecordInput) (*domain.Record, error) {
	if in.Hours <= 0 {
		return nil, fmt.Errorf("%w: hours must be positive", domain.ErrInvalidInput)
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	p, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !p.HasMember(userID) {
		return nil, domain.ErrUserNotInProject
	}

	pid := projectID
	created, err := s.records.Create(ctx, &domain.Record{
		UserID:      userID,
		ProjectID:   &pid,
		Hours:       in.Hours,
		Description: in.Description,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	s.record(ctx, domain.ActionRecordCreated, created.ID)
	return created, nil
}

func (s *recordService) List(ctx context.Context) ([]ports.RecordView, error) {
	return s.Between(ctx, ports.RecordFilter{})
}

func (s *recordService) Get(ctx context.Context, id int) (*ports.RecordView, error) {
	r, err := s.records.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	v, err := newRecordJoiner(s.users, s.projects).view(ctx, r)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Update changes hours and description. The owner never changes.
func (s *recordService) Update(ctx context.Context, id int, in ports.RecordInput) error {
	if in.Hours <= 0 {
		return fmt.Errorf("%w: hours must be positive", domain.ErrInvalidInput)
	}
	if err := s.records.Update(ctx, id, in.Hours, in.Description); err != nil {
		return err
	}
	s.record(ctx, domain.ActionRecordUpdated, id)
	return nil
}

func (s *recordService) Delete(ctx context.Context, id int) error {
	if err := s.records.Delete(ctx, id); err != nil {
		return err
	}
	if s.owners != nil {
		_ = s.owners.Invalidate(ctx, id)
	}
	s.record(ctx, domain.ActionRecordDeleted, id)
	return nil
}

// Between lists records matching filter. Range bounds are inclusive.
func (s *recordService) Between(ctx context.Context, filter ports.RecordFilter) ([]ports.RecordView, error) {
	if filter.Range != nil && filter.Range.To.Before(filter.Range.From) {
		return nil, fmt.Errorf("%w: endDate is before startDate", domain.ErrInvalidInput)
	}
	records, err := s.records.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return newRecordJoiner(s.users, s.projects).views(ctx, records)
}

func (s *recordService) record(ctx context.Context, action string, recordID int) {
	s.activity.Record(newActivity(actorID(ctx), action, "record", recordID, s.now()))
}
