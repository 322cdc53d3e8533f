package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

type fakeKV struct {
	data   map[string]string
	ttl    map[string]time.Duration
	getErr error
	setErr error
	delErr error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeKV) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeKV) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	f.data[key] = fmt.Sprint(value)
	f.ttl[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeKV) Del(_ context.Context, keys ...string) *redis.IntCmd {
	if f.delErr != nil {
		return redis.NewIntResult(0, f.delErr)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

type countingLookup struct {
	owners map[int]int
	calls  int
}

func (l *countingLookup) OwnerOf(_ context.Context, recordID int) (int, error) {
	l.calls++
	owner, ok := l.owners[recordID]
	if !ok {
		return 0, domain.ErrRecordNotFound
	}
	return owner, nil
}

func TestOwnerCache_MissThenHit(t *testing.T) {
	kv := newFakeKV()
	store := &countingLookup{owners: map[int]int{100: 7}}
	cache := NewOwnerCache(kv, store, time.Minute, zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		owner, err := cache.OwnerOf(ctx, 100)
		if err != nil || owner != 7 {
			t.Fatalf("OwnerOf = %d, %v", owner, err)
		}
	}
	if store.calls != 1 {
		t.Fatalf("expected one store lookup, got %d", store.calls)
	}
	if kv.data["record:owner:100"] != "7" || kv.ttl["record:owner:100"] != time.Minute {
		t.Fatalf("unexpected cache entry %q ttl %s", kv.data["record:owner:100"], kv.ttl["record:owner:100"])
	}
}

func TestOwnerCache_ReadErrorFallsBackToStore(t *testing.T) {
	kv := newFakeKV()
	kv.data["record:owner:100"] = "99"
	kv.getErr = errors.New("connection refused")
	store := &countingLookup{owners: map[int]int{100: 7}}
	cache := NewOwnerCache(kv, store, time.Minute, zerolog.Nop())

	owner, err := cache.OwnerOf(context.Background(), 100)
	if err != nil || owner != 7 {
		t.Fatalf("OwnerOf = %d, %v", owner, err)
	}
	if store.calls != 1 {
		t.Fatalf("expected store lookup, got %d", store.calls)
	}
}

func TestOwnerCache_WriteErrorIsIgnored(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("read only replica")
	cache := NewOwnerCache(kv, &countingLookup{owners: map[int]int{100: 7}}, time.Minute, zerolog.Nop())

	if owner, err := cache.OwnerOf(context.Background(), 100); err != nil || owner != 7 {
		t.Fatalf("OwnerOf = %d, %v", owner, err)
	}
}

func TestOwnerCache_MissingRecordNotCached(t *testing.T) {
	kv := newFakeKV()
	cache := NewOwnerCache(kv, &countingLookup{owners: map[int]int{}}, time.Minute, zerolog.Nop())

	if _, err := cache.OwnerOf(context.Background(), 404); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if len(kv.data) != 0 {
		t.Fatalf("nothing should be cached, got %v", kv.data)
	}
}

func TestOwnerCache_Invalidate(t *testing.T) {
	kv := newFakeKV()
	store := &countingLookup{owners: map[int]int{100: 7}}
	cache := NewOwnerCache(kv, store, 0, zerolog.Nop())
	ctx := context.Background()

	if _, err := cache.OwnerOf(ctx, 100); err != nil {
		t.Fatalf("OwnerOf: %v", err)
	}
	if kv.ttl["record:owner:100"] != defaultOwnerTTL {
		t.Fatalf("expected default ttl, got %s", kv.ttl["record:owner:100"])
	}
	if err := cache.Invalidate(ctx, 100); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok := kv.data["record:owner:100"]; ok {
		t.Fatal("entry still cached after Invalidate")
	}

	delete(store.owners, 100)
	if _, err := cache.OwnerOf(ctx, 100); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound after invalidation, got %v", err)
	}

	kv.delErr = errors.New("timeout")
	if err := cache.Invalidate(ctx, 100); err == nil {
		t.Fatal("expected invalidate error")
	}
}
