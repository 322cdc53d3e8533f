package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/onevoker/TimeTracker/internal/core/domain"
)

const collectionRoles = "roles"

type RoleRepository struct {
	col *mongo.Collection
	seq *sequence
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{col: db.Collection(collectionRoles), seq: newSequence(db, collectionRoles)}
}

type roleDoc struct {
	ID   int    `bson:"_id"`
	Name string `bson:"name"`
}

func (r *RoleRepository) Create(ctx context.Context, name domain.Role) (*domain.RoleEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := r.col.InsertOne(ctx, roleDoc{ID: id, Name: string(name)}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateRole
		}
		return nil, fmt.Errorf("insert role: %w", err)
	}
	return &domain.RoleEntry{ID: id, Name: name}, nil
}

func (r *RoleRepository) FindByName(ctx context.Context, name domain.Role) (*domain.RoleEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc roleDoc
	if err := r.col.FindOne(ctx, bson.M{"name": string(name)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.RoleEntry{ID: doc.ID, Name: domain.Role(doc.Name)}, nil
}

func (r *RoleRepository) List(ctx context.Context) ([]*domain.RoleEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	var docs []roleDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	out := make([]*domain.RoleEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.RoleEntry{ID: d.ID, Name: domain.Role(d.Name)})
	}
	return out, nil
}

// Seed inserts each role that is not stored yet.
func (r *RoleRepository) Seed(ctx context.Context, names ...domain.Role) error {
	for _, name := range names {
		_, err := r.FindByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrRoleNotFound) {
			return err
		}
		if _, err := r.Create(ctx, name); err != nil && !errors.Is(err, domain.ErrDuplicateRole) {
			return err
		}
	}
	return nil
}

func (r *RoleRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
