package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"artmuseum/internal/sequence"
)

// nextDocumentID returns the next sequential business id stored in field.
// Without an allocator it is the document count plus one, which two
// concurrent creators can both observe.
func nextDocumentID(ctx context.Context, coll *mongo.Collection, alloc sequence.Allocator, key, field string) (int64, error) {
	if alloc == nil {
		count, err := coll.CountDocuments(ctx, bson.D{})
		if err != nil {
			return 0, err
		}
		return count + 1, nil
	}
	return alloc.Next(ctx, key, func(ctx context.Context) (int64, error) {
		return maxDocumentField(ctx, coll, field)
	})
}

func maxDocumentField(ctx context.Context, coll *mongo.Collection, field string) (int64, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: field, Value: -1}}).SetProjection(bson.D{{Key: field, Value: 1}})
	var top bson.M
	err := coll.FindOne(ctx, bson.D{}, opts).Decode(&top)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	switch v := top[field].(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	}
	return 0, nil
}
