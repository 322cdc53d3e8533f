package service

import (
	"context"
	"errors"

	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

// recordJoiner resolves owner and project names for record responses,
// memoizing lookups for the duration of one call.
type recordJoiner struct {
	users    ports.UserRepository
	projects ports.ProjectRepository

	usernames    map[int]string
	projectNames map[int]string
}

func newRecordJoiner(users ports.UserRepository, projects ports.ProjectRepository) *recordJoiner {
	return &recordJoiner{
		users:        users,
		projects:     projects,
		usernames:    make(map[int]string),
		projectNames: make(map[int]string),
	}
}

func (j *recordJoiner) view(ctx context.Context, r *domain.Record) (ports.RecordView, error) {
	v := ports.RecordView{
		ID:          r.ID,
		Hours:       r.Hours,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
	}

	name, ok := j.usernames[r.UserID]
	if !ok {
		u, err := j.users.FindByID(ctx, r.UserID)
		switch {
		case err == nil:
			name = u.Username
		case errors.Is(err, domain.ErrUserNotFound):
		default:
			return v, err
		}
		j.usernames[r.UserID] = name
	}
	v.Username = name

	if r.ProjectID != nil {
		pname, ok := j.projectNames[*r.ProjectID]
		if !ok {
			p, err := j.projects.FindByID(ctx, *r.ProjectID)
			switch {
			case err == nil:
				pname = p.Name
			case errors.Is(err, domain.ErrProjectNotFound):
			default:
				return v, err
			}
			j.projectNames[*r.ProjectID] = pname
		}
		v.ProjectName = pname
	}
	return v, nil
}

func (j *recordJoiner) views(ctx context.Context, records []*domain.Record) ([]ports.RecordView, error) {
	out := make([]ports.RecordView, 0, len(records))
	for _, r := range records {
		v, err := j.view(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
