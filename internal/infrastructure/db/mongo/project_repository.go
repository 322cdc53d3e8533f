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

const collectionProjects = "projects"

type ProjectRepository struct {
	col *mongo.Collection
	seq *sequence
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects), seq: newSequence(db, collectionProjects)}
}

type projectDoc struct {
	ID          int    `bson:"_id"`
	Name        string `bson:"name"`
	Description string `bson:"description"`
	MemberIDs   []int  `bson:"member_ids"`
}

func (d *projectDoc) toDomain() *domain.Project {
	return &domain.Project{ID: d.ID, Name: d.Name, Description: d.Description, MemberIDs: d.MemberIDs}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	members := p.MemberIDs
	if members == nil {
		members = []int{}
	}
	doc := projectDoc{ID: id, Name: p.Name, Description: p.Description, MemberIDs: members}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateProject
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc projectDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProjectRepository) ListByMember(ctx context.Context, userID int) ([]*domain.Project, error) {
	return r.find(ctx, bson.M{"member_ids": userID})
}

func (r *ProjectRepository) find(ctx context.Context, filter bson.M) ([]*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	out := make([]*domain.Project, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id int, name, description string) error {
	return r.updateOne(ctx, id, bson.M{"$set": bson.M{"name": name, "description": description}})
}

func (r *ProjectRepository) AddMember(ctx context.Context, projectID, userID int) error {
	return r.updateOne(ctx, projectID, bson.M{"$addToSet": bson.M{"member_ids": userID}})
}

func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID int) error {
	return r.updateOne(ctx, projectID, bson.M{"$pull": bson.M{"member_ids": userID}})
}

func (r *ProjectRepository) RemoveMemberEverywhere(ctx context.Context, userID int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateMany(ctx,
		bson.M{"member_ids": userID},
		bson.M{"$pull": bson.M{"member_ids": userID}},
	)
	if err != nil {
		return fmt.Errorf("remove member %d: %w", userID, err)
	}
	return nil
}

func (r *ProjectRepository) updateOne(ctx context.Context, id int, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateProject
		}
		return fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "member_ids", Value: 1}}},
	})
	return err
}
