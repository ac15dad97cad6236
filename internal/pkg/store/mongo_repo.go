package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionInterface is the slice of *mongo.Collection the repositories
// use; tests substitute a mock.
type CollectionInterface interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

type MongoRepository[T any] struct {
	collection CollectionInterface
}

func NewMongoRepository[T any](collection CollectionInterface) *MongoRepository[T] {
	return &MongoRepository[T]{collection: collection}
}

func (r *MongoRepository[T]) Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error) {
	result, err := r.collection.InsertOne(ctx, document)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Read a document by filter
func (r *MongoRepository[T]) Read(ctx context.Context, filter interface{}) (T, error) {
	var result T
	if err := r.collection.FindOne(ctx, filter).Decode(&result); err != nil {
		return result, err
	}
	return result, nil
}

// ReadSorted returns the first document by filter under the given sort.
func (r *MongoRepository[T]) ReadSorted(ctx context.Context, filter interface{}, sort bson.D) (T, error) {
	var result T
	opt := options.FindOne().SetSort(sort)
	if err := r.collection.FindOne(ctx, filter, opt).Decode(&result); err != nil {
		return result, err
	}
	return result, nil
}

func (r *MongoRepository[T]) Find(ctx context.Context, filter interface{}) ([]T, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []T
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, nil
}

// Update a document
func (r *MongoRepository[T]) Update(ctx context.Context, filter interface{}, update interface{}) error {
	if _, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": update}); err != nil {
		return err
	}
	return nil
}

// CompareAndSwap applies update only when filter still matches and returns
// the post-update document. mongo.ErrNoDocuments signals a lost race.
func (r *MongoRepository[T]) CompareAndSwap(ctx context.Context, filter interface{}, update interface{}) (T, error) {
	var result T
	opt := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opt).Decode(&result); err != nil {
		return result, err
	}
	return result, nil
}

func (r *MongoRepository[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, err
	}
	return count, nil
}
