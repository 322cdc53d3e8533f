package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/onevoker/TimeTracker/internal/core/ports"
)

const defaultOwnerTTL = 10 * time.Minute

// KeyValue is the subset of the Redis API the owner cache uses. *redis.Client
// satisfies it.
type KeyValue interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// OwnerCache caches record owners in front of the record store.
// Key format: record:owner:<record_id>
//
// A record's owner never changes, so entries only need dropping on delete.
// Redis failures fall through to the store.
type OwnerCache struct {
	client KeyValue
	next   ports.RecordOwnerLookup
	ttl    time.Duration
	log    zerolog.Logger
}

// NewOwnerCache wraps next. If ttl <= 0, defaultOwnerTTL is used.
func NewOwnerCache(client KeyValue, next ports.RecordOwnerLookup, ttl time.Duration, log zerolog.Logger) *OwnerCache {
	if ttl <= 0 {
		ttl = defaultOwnerTTL
	}
	return &OwnerCache{client: client, next: next, ttl: ttl, log: log}
}

func (c *OwnerCache) OwnerOf(ctx context.Context, recordID int) (int, error) {
	key := c.key(recordID)

	owner, err := c.client.Get(ctx, key).Int()
	if err == nil {
		return owner, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Int("record_id", recordID).Msg("owner cache read failed, using store")
	}

	owner, err = c.next.OwnerOf(ctx, recordID)
	if err != nil {
		return 0, err
	}
	if err := c.client.Set(ctx, key, owner, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Int("record_id", recordID).Msg("owner cache write failed")
	}
	return owner, nil
}

// Invalidate drops the cached owner of recordID.
func (c *OwnerCache) Invalidate(ctx context.Context, recordID int) error {
	if err := c.client.Del(ctx, c.key(recordID)).Err(); err != nil {
		return fmt.Errorf("owner cache invalidate: %w", err)
	}
	return nil
}

func (c *OwnerCache) key(recordID int) string {
	return "record:owner:" + strconv.Itoa(recordID)
}
