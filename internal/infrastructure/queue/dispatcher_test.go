package queue

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

type stubActivityRepo struct {
	mu       sync.Mutex
	inserted []domain.ActivityEntry
	err      error
}

func (r *stubActivityRepo) Insert(_ context.Context, e *domain.ActivityEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.inserted = append(r.inserted, *e)
	return nil
}

func (r *stubActivityRepo) Recent(_ context.Context, limit int) ([]*domain.ActivityEntry, error) {
	return nil, nil
}

func TestDispatcher_WritesAllEntriesInActorOrder(t *testing.T) {
	repo := &stubActivityRepo{}
	d := NewDispatcher(3, repo, zerolog.Nop())
	d.Start(context.Background())

	for i := 0; i < 30; i++ {
		d.Record(domain.ActivityEntry{ActorID: i % 2, ResourceID: i, Action: domain.ActionRecordCreated})
	}
	d.Stop()

	if len(repo.inserted) != 30 {
		t.Fatalf("expected 30 entries, got %d", len(repo.inserted))
	}
	last := map[int]int{0: -1, 1: -1}
	for _, e := range repo.inserted {
		if e.ResourceID <= last[e.ActorID] {
			t.Fatalf("actor %d entries out of order: %d after %d", e.ActorID, e.ResourceID, last[e.ActorID])
		}
		last[e.ActorID] = e.ResourceID
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	repo := &stubActivityRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())

	// Workers not started yet: the single queue fills up.
	for i := 0; i < channelBuffer+10; i++ {
		d.Record(domain.ActivityEntry{ActorID: 1, ResourceID: i})
	}
	d.Start(context.Background())
	d.Stop()

	if len(repo.inserted) != channelBuffer {
		t.Fatalf("expected %d entries, got %d", channelBuffer, len(repo.inserted))
	}
}

func TestDispatcher_RecordAfterStopIsNoop(t *testing.T) {
	repo := &stubActivityRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())
	d.Start(context.Background())
	d.Stop()
	d.Stop()

	d.Record(domain.ActivityEntry{ActorID: 1})
	if len(repo.inserted) != 0 {
		t.Fatalf("expected no entries, got %d", len(repo.inserted))
	}
}

func TestDispatcher_WriteErrorDoesNotStopWorker(t *testing.T) {
	repo := &stubActivityRepo{err: errors.New("mongo down")}
	d := NewDispatcher(1, repo, zerolog.Nop())
	d.Start(context.Background())

	d.Record(domain.ActivityEntry{ActorID: 1})
	d.Record(domain.ActivityEntry{ActorID: 1})
	d.Stop()
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(4, &stubActivityRepo{}, zerolog.Nop())
	for _, id := range []int{0, 1, 7, 42, -5, math.MinInt, math.MaxInt} {
		a, b := d.shardIndex(id), d.shardIndex(id)
		if a != b || a < 0 || a >= 4 {
			t.Errorf("shardIndex(%d) = %d, %d", id, a, b)
		}
	}
}

func TestNewDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &stubActivityRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
