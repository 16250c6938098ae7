package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"artmuseum/internal/document"
	apperrors "artmuseum/internal/errors"
	"artmuseum/internal/model"
	"artmuseum/internal/sequence"
)

type mongoCollectionRepository struct {
	coll  *mongo.Collection
	alloc sequence.Allocator
}

// NewMongoCollectionRepository addresses collections by their sequential
// CollectionID field. alloc may be nil.
func NewMongoCollectionRepository(db *mongo.Database, alloc sequence.Allocator) CollectionRepository {
	return &mongoCollectionRepository{coll: db.Collection(document.CollectionsCollection), alloc: alloc}
}

func (r *mongoCollectionRepository) find(ctx context.Context, id int64) (*document.Collection, error) {
	var doc document.Collection
	if err := r.coll.FindOne(ctx, bson.M{"CollectionID": id}).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *mongoCollectionRepository) GetByID(ctx context.Context, id int64) (*model.Collection, error) {
	doc, err := r.find(ctx, id)
	if err != nil {
		return nil, translate(fmt.Sprintf("mongo get collection %d", id), err)
	}
	c := doc.Model()
	return &c, nil
}

func (r *mongoCollectionRepository) List(ctx context.Context) ([]model.Collection, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "CollectionID", Value: 1}}))
	if err != nil {
		return nil, translate("mongo list collections", err)
	}
	var docs []document.Collection
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate("mongo list collections", err)
	}
	out := make([]model.Collection, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Model())
	}
	return out, nil
}

func (r *mongoCollectionRepository) Create(ctx context.Context, collection *model.Collection) error {
	id, err := nextDocumentID(ctx, r.coll, r.alloc, "collections", "CollectionID")
	if err != nil {
		return translate("mongo next collection id", err)
	}

	doc := document.FromCollection(*collection)
	doc.CollectionID = id
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translate("mongo create collection", err)
	}

	collection.ID = id
	collection.DocumentID = doc.ID.Hex()
	return nil
}

// UpdateOwner replaces the whole document with the new owner set.
func (r *mongoCollectionRepository) UpdateOwner(ctx context.Context, id, ownerID int64) (*model.Collection, error) {
	op := fmt.Sprintf("mongo update collection %d owner", id)

	doc, err := r.find(ctx, id)
	if err != nil {
		return nil, translate(op, err)
	}
	doc.OwnerID = &ownerID

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return nil, translate(op, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	c := doc.Model()
	return &c, nil
}

func (r *mongoCollectionRepository) Delete(ctx context.Context, id int64) error {
	op := fmt.Sprintf("mongo delete collection %d", id)
	res, err := r.coll.DeleteOne(ctx, bson.M{"CollectionID": id})
	if err != nil {
		return translate(op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	return nil
}
