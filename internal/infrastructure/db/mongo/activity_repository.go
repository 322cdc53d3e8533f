package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

const collectionActivity = "activity_log"

// ActivityRepository persists the audit trail written by the activity dispatcher.
type ActivityRepository struct {
	col *mongo.Collection
}

func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivity)}
}

type activityDoc struct {
	ID         string    `bson:"_id"`
	ActorID    int       `bson:"actor_id"`
	Action     string    `bson:"action"`
	Resource   string    `bson:"resource"`
	ResourceID int       `bson:"resource_id"`
	At         time.Time `bson:"at"`
}

func (r *ActivityRepository) Insert(ctx context.Context, e *domain.ActivityEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, activityDoc{
		ID:         e.ID,
		ActorID:    e.ActorID,
		Action:     e.Action,
		Resource:   e.Resource,
		ResourceID: e.ResourceID,
		At:         e.At,
	})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *ActivityRepository) Recent(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	var docs []activityDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode activity: %w", err)
	}
	out := make([]*domain.ActivityEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.ActivityEntry{
			ID:         d.ID,
			ActorID:    d.ActorID,
			Action:     d.Action,
			Resource:   d.Resource,
			ResourceID: d.ResourceID,
			At:         d.At.UTC(),
		})
	}
	return out, nil
}

func (r *ActivityRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "at", Value: -1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}}},
	})
	return err
}
