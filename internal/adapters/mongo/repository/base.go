package repository

import (
	"context"
	"errors"

	"github.com/newmandigital/catalog/internal/adapters/mongo/document"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	errNotFound     = errors.New("entity not found")
	errDuplicateKey = errors.New("duplicate key")
)

type BaseRepository[T document.Document] struct {
	collection *mongo.Collection
}

func NewBaseRepository[T document.Document](db *mongo.Database, collectionName string) *BaseRepository[T] {
	return &BaseRepository[T]{
		collection: db.Collection(collectionName),
	}
}

func (r *BaseRepository[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var entity T
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entity)
	if err != nil {
		return nil, parseError(err)
	}

	return &entity, nil
}

func (r *BaseRepository[T]) Find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, parseError(err)
	}
	defer cursor.Close(ctx)

	entities := make([]T, 0)
	if err = cursor.All(ctx, &entities); err != nil {
		return nil, parseError(err)
	}

	return entities, nil
}

func (r *BaseRepository[T]) Insert(ctx context.Context, entity *T) error {
	if _, err := r.collection.InsertOne(ctx, entity); err != nil {
		return parseError(err)
	}
	return nil
}

func (r *BaseRepository[T]) Update(ctx context.Context, id string, update bson.M) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
	)
	if err != nil {
		return parseError(err)
	}

	if result.MatchedCount == 0 {
		return errNotFound
	}

	return nil
}

func (r *BaseRepository[T]) DeleteByID(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return parseError(err)
	}

	if result.DeletedCount == 0 {
		return errNotFound
	}

	return nil
}

// parseError folds driver errors into the package sentinels; repositories
// translate those into domain errors.
func parseError(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return errNotFound
	case mongo.IsDuplicateKeyError(err):
		return errDuplicateKey
	}
	return err
}
