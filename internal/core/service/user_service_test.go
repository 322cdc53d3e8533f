package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

type userFixture struct {
	users    *stubUserRepo
	projects *stubProjectRepo
	records  *stubRecordRepo
	rec      *stubRecorder
	svc      ports.UserService
}

func newUserFixture() *userFixture {
	f := &userFixture{
		users:    newStubUserRepo(),
		projects: newStubProjectRepo(),
		records:  newStubRecordRepo(),
		rec:      &stubRecorder{},
	}
	f.svc = NewUserService(f.users, f.projects, f.records, NewPasswordHasher(bcrypt.MinCost), f.rec, zerolog.Nop())
	return f
}

func TestUserService_ListAndGet(t *testing.T) {
	f := newUserFixture()
	f.users.seed(&domain.User{ID: 1, Username: "alice"})
	f.users.seed(&domain.User{ID: 2, Username: "bob"})

	all, err := f.svc.List(context.Background())
	if err != nil || len(all) != 2 || all[0].Username != "alice" {
		t.Fatalf("List = %v, %v", all, err)
	}
	if _, err := f.svc.Get(context.Background(), 9); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Records_JoinsNames(t *testing.T) {
	f := newUserFixture()
	f.users.seed(&domain.User{ID: 1, Username: "alice"})
	f.projects.seed(&domain.Project{ID: 5, Name: "Apollo", MemberIDs: []int{1}})
	f.records.seed(&domain.Record{ID: 10, UserID: 1, ProjectID: intPtr(5), Hours: 3, CreatedAt: t0})
	f.records.seed(&domain.Record{ID: 11, UserID: 1, Hours: 1, CreatedAt: t0})
	f.records.seed(&domain.Record{ID: 12, UserID: 2, ProjectID: intPtr(5), Hours: 1, CreatedAt: t0})

	views, err := f.svc.Records(context.Background(), 1)
	if err != nil {
		t.Fatalf("Records: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 records, got %d", len(views))
	}
	if views[0].ProjectName != "Apollo" || views[0].Username != "alice" {
		t.Errorf("unexpected view %+v", views[0])
	}
	if views[1].ProjectName != "" {
		t.Errorf("record without project should have empty project name, got %q", views[1].ProjectName)
	}
}

func TestUserService_Update(t *testing.T) {
	f := newUserFixture()
	f.users.seed(&domain.User{ID: 1, Username: "alice", PasswordHash: "old"})
	f.users.seed(&domain.User{ID: 2, Username: "bob"})
	ctx := context.Background()

	if err := f.svc.Update(ctx, 1, "bob", "pw"); !errors.Is(err, domain.ErrDuplicateUser) {
		t.Errorf("expected ErrDuplicateUser, got %v", err)
	}
	if err := f.svc.Update(ctx, 9, "zed", "pw"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if err := f.svc.Update(ctx, 1, "alicia", "newpw"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	u, _ := f.users.FindByID(ctx, 1)
	if u.Username != "alicia" {
		t.Errorf("username = %q", u.Username)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("newpw")) != nil {
		t.Error("password was not re-hashed")
	}
}

func TestUserService_Delete_Cascades(t *testing.T) {
	f := newUserFixture()
	f.users.seed(&domain.User{ID: 1, Username: "alice"})
	f.projects.seed(&domain.Project{ID: 5, Name: "Apollo", MemberIDs: []int{1, 2}})
	f.records.seed(&domain.Record{ID: 10, UserID: 1, ProjectID: intPtr(5), Hours: 3, CreatedAt: time.Now()})
	f.records.seed(&domain.Record{ID: 11, UserID: 2, ProjectID: intPtr(5), Hours: 3, CreatedAt: time.Now()})

	if err := f.svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok := f.records.byID[10]; ok {
		t.Error("record of deleted user still present")
	}
	if _, ok := f.records.byID[11]; !ok {
		t.Error("record of other user removed")
	}
	if p, _ := f.projects.FindByID(context.Background(), 5); p.HasMember(1) {
		t.Error("deleted user still a project member")
	}
	if err := f.svc.Delete(context.Background(), 1); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("second delete: expected ErrUserNotFound, got %v", err)
	}
}

type failingRecordRepo struct {
	*stubRecordRepo
}

func (r failingRecordRepo) DeleteByUser(context.Context, int) error {
	return errors.New("mongo unavailable")
}

func TestUserService_Delete_KeepsUserWhenCascadeFails(t *testing.T) {
	f := newUserFixture()
	f.users.seed(&domain.User{ID: 1, Username: "alice"})
	svc := NewUserService(f.users, f.projects, failingRecordRepo{f.records}, NewPasswordHasher(bcrypt.MinCost), f.rec, zerolog.Nop())

	if err := svc.Delete(context.Background(), 1); err == nil {
		t.Fatal("expected cascade error")
	}
	if _, err := f.users.FindByID(context.Background(), 1); err != nil {
		t.Errorf("user must survive a failed cascade, got %v", err)
	}
	if len(f.rec.entries) != 0 {
		t.Errorf("no activity expected, got %d entries", len(f.rec.entries))
	}
}
