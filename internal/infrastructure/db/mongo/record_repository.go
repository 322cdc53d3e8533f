package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/onevoker/TimeTracker/internal/core/domain"
	"github.com/onevoker/TimeTracker/internal/core/ports"
)

const collectionRecords = "records"

type RecordRepository struct {
	col *mongo.Collection
	seq *sequence
}

func NewRecordRepository(db *mongo.Database) *RecordRepository {
	return &RecordRepository{col: db.Collection(collectionRecords), seq: newSequence(db, collectionRecords)}
}

type recordDoc struct {
	ID          int       `bson:"_id"`
	UserID      int       `bson:"user_id"`
	ProjectID   *int      `bson:"project_id,omitempty"`
	Hours       int       `bson:"hours"`
	Description string    `bson:"description"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d *recordDoc) toDomain() *domain.Record {
	return &domain.Record{
		ID:          d.ID,
		UserID:      d.UserID,
		ProjectID:   d.ProjectID,
		Hours:       d.Hours,
		Description: d.Description,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func (r *RecordRepository) Create(ctx context.Context, rec *domain.Record) (*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := recordDoc{
		ID:          id,
		UserID:      rec.UserID,
		ProjectID:   rec.ProjectID,
		Hours:       rec.Hours,
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert record: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RecordRepository) FindByID(ctx context.Context, id int) (*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc recordDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("find record: %w", err)
	}
	return doc.toDomain(), nil
}

// OwnerOf reads only the owner field of a record.
func (r *RecordRepository) OwnerOf(ctx context.Context, recordID int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		UserID int `bson:"user_id"`
	}
	opts := options.FindOne().SetProjection(bson.M{"user_id": 1})
	if err := r.col.FindOne(ctx, bson.M{"_id": recordID}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrRecordNotFound
		}
		return 0, fmt.Errorf("find record owner: %w", err)
	}
	return doc.UserID, nil
}

// List returns records matching filter, oldest id first. Range bounds are
// inclusive.
func (r *RecordRepository) List(ctx context.Context, filter ports.RecordFilter) ([]*domain.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.UserID != nil {
		q["user_id"] = *filter.UserID
	}
	if filter.ProjectID != nil {
		q["project_id"] = *filter.ProjectID
	}
	if filter.Range != nil {
		q["created_at"] = bson.M{"$gte": filter.Range.From, "$lte": filter.Range.To}
	}

	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	var docs []recordDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	out := make([]*domain.Record, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *RecordRepository) Update(ctx context.Context, id, hours int, description string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"hours": hours, "description": description}},
	)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

func (r *RecordRepository) DeleteByUser(ctx context.Context, userID int) error {
	return r.deleteMany(ctx, bson.M{"user_id": userID})
}

func (r *RecordRepository) DeleteByProject(ctx context.Context, projectID int) error {
	return r.deleteMany(ctx, bson.M{"project_id": projectID})
}

func (r *RecordRepository) deleteMany(ctx context.Context, filter bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete records: %w", err)
	}
	return nil
}

func (r *RecordRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: 1}}},
	})
	return err
}
