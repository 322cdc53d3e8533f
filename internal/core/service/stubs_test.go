package service

import (
	"context"
	"sort"
	"sync"

	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs shared by the service tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID   map[int]*domain.User
	nextID int
	err    error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[int]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	if u.ID == 0 {
		u.ID = r.nextID
	}
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	r.byID[u.ID] = cloneUser(u)
	return u
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, existing := range r.byID {
		if existing.Username == u.Username {
			return nil, domain.ErrDuplicateUser
		}
	}
	c := cloneUser(u)
	c.ID = r.nextID
	r.nextID++
	r.byID[c.ID] = c
	return cloneUser(c), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.byID {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) UpdateCredentials(_ context.Context, id int, username, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Username = username
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) AddRole(_ context.Context, id int, role domain.Role) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Roles = append(u.Roles, role)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubRoleRepo struct {
	roles []*domain.RoleEntry
}

func newStubRoleRepo(names ...domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{}
	for i, n := range names {
		r.roles = append(r.roles, &domain.RoleEntry{ID: i + 1, Name: n})
	}
	return r
}

func (r *stubRoleRepo) Create(_ context.Context, name domain.Role) (*domain.RoleEntry, error) {
	for _, e := range r.roles {
		if e.Name == name {
			return nil, domain.ErrDuplicateRole
		}
	}
	e := &domain.RoleEntry{ID: len(r.roles) + 1, Name: name}
	r.roles = append(r.roles, e)
	return e, nil
}

func (r *stubRoleRepo) FindByName(_ context.Context, name domain.Role) (*domain.RoleEntry, error) {
	for _, e := range r.roles {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) List(_ context.Context) ([]*domain.RoleEntry, error) {
	return r.roles, nil
}

type stubProjectRepo struct {
	byID   map[int]*domain.Project
	nextID int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{byID: make(map[int]*domain.Project), nextID: 1}
}

func cloneProject(p *domain.Project) *domain.Project {
	clone := *p
	clone.MemberIDs = append([]int(nil), p.MemberIDs...)
	return &clone
}

func (r *stubProjectRepo) seed(p *domain.Project) *domain.Project {
	if p.ID == 0 {
		p.ID = r.nextID
	}
	if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	r.byID[p.ID] = cloneProject(p)
	return p
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	for _, existing := range r.byID {
		if existing.Name == p.Name {
			return nil, domain.ErrDuplicateProject
		}
	}
	c := cloneProject(p)
	c.ID = r.nextID
	r.nextID++
	r.byID[c.ID] = c
	return cloneProject(c), nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id int) (*domain.Project, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

func (r *stubProjectRepo) List(_ context.Context) ([]*domain.Project, error) {
	out := make([]*domain.Project, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubProjectRepo) ListByMember(ctx context.Context, userID int) ([]*domain.Project, error) {
	all, _ := r.List(ctx)
	var out []*domain.Project
	for _, p := range all {
		if p.HasMember(userID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProjectRepo) Update(_ context.Context, id int, name, description string) error {
	p, ok := r.byID[id]
	if !ok {
		return domain.ErrProjectNotFound
	}
	for _, other := range r.byID {
		if other.ID != id && other.Name == name {
			return domain.ErrDuplicateProject
		}
	}
	p.Name, p.Description = name, description
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubProjectRepo) AddMember(_ context.Context, projectID, userID int) error {
	p, ok := r.byID[projectID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.MemberIDs = append(p.MemberIDs, userID)
	return nil
}

func (r *stubProjectRepo) RemoveMember(_ context.Context, projectID, userID int) error {
	p, ok := r.byID[projectID]
	if !ok {
		return domain.ErrProjectNotFound
	}
	p.MemberIDs = removeInt(p.MemberIDs, userID)
	return nil
}

func (r *stubProjectRepo) RemoveMemberEverywhere(_ context.Context, userID int) error {
	for _, p := range r.byID {
		p.MemberIDs = removeInt(p.MemberIDs, userID)
	}
	return nil
}

func removeInt(ids []int, v int) []int {
	out := ids[:0]
	for _, id := range ids {
		if id != v {
			out = append(out, id)
		}
	}
	return out
}

type stubRecordRepo struct {
	byID   map[int]*domain.Record
	nextID int
}

func newStubRecordRepo() *stubRecordRepo {
	return &stubRecordRepo{byID: make(map[int]*domain.Record), nextID: 1}
}

func (r *stubRecordRepo) seed(rec *domain.Record) *domain.Record {
	if rec.ID == 0 {
		rec.ID = r.nextID
	}
	if rec.ID >= r.nextID {
		r.nextID = rec.ID + 1
	}
	c := *rec
	r.byID[rec.ID] = &c
	return rec
}

func (r *stubRecordRepo) Create(_ context.Context, rec *domain.Record) (*domain.Record, error) {
	c := *rec
	c.ID = r.nextID
	r.nextID++
	r.byID[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubRecordRepo) FindByID(_ context.Context, id int) (*domain.Record, error) {
	rec, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	c := *rec
	return &c, nil
}

func (r *stubRecordRepo) List(_ context.Context, f ports.RecordFilter) ([]*domain.Record, error) {
	var out []*domain.Record
	for _, rec := range r.byID {
		if f.UserID != nil && rec.UserID != *f.UserID {
			continue
		}
		if f.ProjectID != nil && (rec.ProjectID == nil || *rec.ProjectID != *f.ProjectID) {
			continue
		}
		if f.Range != nil && !f.Range.Contains(rec.CreatedAt) {
			continue
		}
		c := *rec
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubRecordRepo) Update(_ context.Context, id, hours int, description string) error {
	rec, ok := r.byID[id]
	if !ok {
		return domain.ErrRecordNotFound
	}
	rec.Hours, rec.Description = hours, description
	return nil
}

func (r *stubRecordRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubRecordRepo) DeleteByUser(_ context.Context, userID int) error {
	for id, rec := range r.byID {
		if rec.UserID == userID {
			delete(r.byID, id)
		}
	}
	return nil
}

func (r *stubRecordRepo) DeleteByProject(_ context.Context, projectID int) error {
	for id, rec := range r.byID {
		if rec.ProjectID != nil && *rec.ProjectID == projectID {
			delete(r.byID, id)
		}
	}
	return nil
}

// OwnerOf lets the record stub double as a RecordOwnerLookup.
func (r *stubRecordRepo) OwnerOf(ctx context.Context, recordID int) (int, error) {
	rec, err := r.FindByID(ctx, recordID)
	if err != nil {
		return 0, err
	}
	return rec.UserID, nil
}

type stubRecorder struct {
	mu      sync.Mutex
	entries []domain.ActivityEntry
}

func (s *stubRecorder) Record(e domain.ActivityEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

func (s *stubRecorder) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Action)
	}
	return out
}

type stubInvalidator struct {
	invalidated []int
}

func (s *stubInvalidator) Invalidate(_ context.Context, recordID int) error {
	s.invalidated = append(s.invalidated, recordID)
	return nil
}

func intPtr(v int) *int { return &v }
