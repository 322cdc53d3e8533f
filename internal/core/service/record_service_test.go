package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

type recordFixture struct {
	users    *stubUserRepo
	projects *stubProjectRepo
	records  *stubRecordRepo
	owners   *stubInvalidator
	rec      *stubRecorder
	svc      ports.RecordService
}

func newRecordFixture() *recordFixture {
	f := &recordFixture{
		users:    newStubUserRepo(),
		projects: newStubProjectRepo(),
		records:  newStubRecordRepo(),
		owners:   &stubInvalidator{},
		rec:      &stubRecorder{},
	}
	svc := NewRecordService(f.records, f.users, f.projects, f.owners, f.rec).(*recordService)
	svc.now = func() time.Time { return t0 }
	f.svc = svc
	f.users.seed(&domain.User{ID: 7, Username: "alice"})
	f.users.seed(&domain.User{ID: 8, Username: "bob"})
	f.projects.seed(&domain.Project{ID: 1, Name: "Apollo", MemberIDs: []int{7}})
	return f
}

func TestRecordService_Create(t *testing.T) {
	f := newRecordFixture()

	r, err := f.svc.Create(context.Background(), 7, 1, ports.RecordInput{Hours: 4, Description: "design"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if r.UserID != 7 || r.ProjectID == nil || *r.ProjectID != 1 || !r.CreatedAt.Equal(t0) {
		t.Errorf("unexpected record %+v", r)
	}
	if got := f.rec.actions(); len(got) != 1 || got[0] != domain.ActionRecordCreated {
		t.Errorf("activity = %v", got)
	}
}

func TestRecordService_Create_Rejections(t *testing.T) {
	f := newRecordFixture()
	ctx := context.Background()

	cases := []struct {
		name      string
		userID    int
		projectID int
		hours     int
		wantErr   error
	}{
		{"not a member", 8, 1, 2, domain.ErrUserNotInProject},
		{"unknown user", 99, 1, 2, domain.ErrUserNotFound},
		{"unknown project", 7, 99, 2, domain.ErrProjectNotFound},
		{"zero hours", 7, 1, 0, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, tc.userID, tc.projectID, ports.RecordInput{Hours: tc.hours})
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRecordService_UpdateAndDelete(t *testing.T) {
	f := newRecordFixture()
	f.records.seed(&domain.Record{ID: 100, UserID: 7, ProjectID: intPtr(1), Hours: 1, CreatedAt: t0})
	ctx := context.Background()

	if err := f.svc.Update(ctx, 100, ports.RecordInput{Hours: 6, Description: "more"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	v, err := f.svc.Get(ctx, 100)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v.Hours != 6 || v.Description != "more" || v.Username != "alice" || v.ProjectName != "Apollo" {
		t.Errorf("unexpected view %+v", v)
	}
	if f.records.byID[100].UserID != 7 {
		t.Error("owner changed on update")
	}

	if err := f.svc.Delete(ctx, 100); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(f.owners.invalidated) != 1 || f.owners.invalidated[0] != 100 {
		t.Errorf("owner cache not invalidated: %v", f.owners.invalidated)
	}
	if _, err := f.svc.Get(ctx, 100); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestRecordService_Between_Inclusive(t *testing.T) {
	f := newRecordFixture()
	f.records.seed(&domain.Record{ID: 1, UserID: 7, ProjectID: intPtr(1), Hours: 1, CreatedAt: t0})
	f.records.seed(&domain.Record{ID: 2, UserID: 7, ProjectID: intPtr(1), Hours: 1, CreatedAt: t0.Add(24 * time.Hour)})
	f.records.seed(&domain.Record{ID: 3, UserID: 7, ProjectID: intPtr(1), Hours: 1, CreatedAt: t0.Add(48 * time.Hour)})
	ctx := context.Background()

	views, err := f.svc.Between(ctx, ports.RecordFilter{
		ProjectID: intPtr(1),
		Range:     &domain.DateRange{From: t0, To: t0.Add(24 * time.Hour)},
	})
	if err != nil {
		t.Fatalf("Between: %v", err)
	}
	if len(views) != 2 || views[0].ID != 1 || views[1].ID != 2 {
		t.Errorf("expected records 1 and 2, got %+v", views)
	}

	_, err = f.svc.Between(ctx, ports.RecordFilter{Range: &domain.DateRange{From: t0, To: t0.Add(-time.Second)}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for inverted range, got %v", err)
	}
}
