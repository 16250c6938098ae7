package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"artmuseum/internal/document"
	apperrors "artmuseum/internal/errors"
)

// DocumentRepository is CRUD over one document collection addressed by the
// native ObjectID in hex form.
type DocumentRepository[T any] interface {
	GetByID(ctx context.Context, id string) (*T, error)
	List(ctx context.Context) ([]T, error)
	FindBy(ctx context.Context, field string, value any) ([]T, error)
	Create(ctx context.Context, doc *T) error
	Replace(ctx context.Context, id string, doc *T) error
	Delete(ctx context.Context, id string) error
}

type mongoDocumentRepository[T any, PT document.Pointer[T]] struct {
	coll *mongo.Collection
}

// NewMongoDocumentRepository serves the named collection.
func NewMongoDocumentRepository[T any, PT document.Pointer[T]](db *mongo.Database, name string) DocumentRepository[T] {
	return &mongoDocumentRepository[T, PT]{coll: db.Collection(name)}
}

func parseObjectID(op, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s: %w", op, apperrors.ErrInvalidID)
	}
	return oid, nil
}

func (r *mongoDocumentRepository[T, PT]) GetByID(ctx context.Context, id string) (*T, error) {
	op := fmt.Sprintf("mongo get %s %s", r.coll.Name(), id)
	oid, err := parseObjectID(op, id)
	if err != nil {
		return nil, err
	}
	var doc T
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, translate(op, err)
	}
	return &doc, nil
}

func (r *mongoDocumentRepository[T, PT]) List(ctx context.Context) ([]T, error) {
	return r.find(ctx, "mongo list "+r.coll.Name(), bson.D{})
}

func (r *mongoDocumentRepository[T, PT]) FindBy(ctx context.Context, field string, value any) ([]T, error) {
	return r.find(ctx, fmt.Sprintf("mongo find %s by %s", r.coll.Name(), field), bson.M{field: value})
}

func (r *mongoDocumentRepository[T, PT]) find(ctx context.Context, op string, filter any) ([]T, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, translate(op, err)
	}
	docs := []T{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate(op, err)
	}
	return docs, nil
}

func (r *mongoDocumentRepository[T, PT]) Create(ctx context.Context, doc *T) error {
	PT(doc).SetObjectID(primitive.NewObjectID())
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translate("mongo create "+r.coll.Name(), err)
	}
	return nil
}

// Replace swaps the stored document for doc wholesale, keeping its id.
func (r *mongoDocumentRepository[T, PT]) Replace(ctx context.Context, id string, doc *T) error {
	op := fmt.Sprintf("mongo replace %s %s", r.coll.Name(), id)
	oid, err := parseObjectID(op, id)
	if err != nil {
		return err
	}
	PT(doc).SetObjectID(oid)

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return translate(op, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	return nil
}

func (r *mongoDocumentRepository[T, PT]) Delete(ctx context.Context, id string) error {
	op := fmt.Sprintf("mongo delete %s %s", r.coll.Name(), id)
	oid, err := parseObjectID(op, id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return translate(op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	return nil
}
