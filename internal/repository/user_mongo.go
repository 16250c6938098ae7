package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"artmuseum/internal/document"
	apperrors "artmuseum/internal/errors"
	"artmuseum/internal/model"
	"artmuseum/internal/sequence"
)

type mongoUserRepository struct {
	coll  *mongo.Collection
	alloc sequence.Allocator
	now   func() time.Time
}

// NewMongoUserRepository addresses users by their sequential UserID field.
// alloc may be nil.
func NewMongoUserRepository(db *mongo.Database, alloc sequence.Allocator) UserRepository {
	return &mongoUserRepository{coll: db.Collection(document.UsersCollection), alloc: alloc, now: time.Now}
}

func (r *mongoUserRepository) findOne(ctx context.Context, op string, filter bson.M) (*model.User, error) {
	var doc document.User
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(op, err)
	}
	u := doc.Model()
	return &u, nil
}

func (r *mongoUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.findOne(ctx, fmt.Sprintf("mongo get user %d", id), bson.M{"UserID": id})
}

func (r *mongoUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "mongo find user by email", bson.M{"Email": email})
}

func (r *mongoUserRepository) List(ctx context.Context) ([]model.User, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "UserID", Value: 1}}))
	if err != nil {
		return nil, translate("mongo list users", err)
	}
	var docs []document.User
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate("mongo list users", err)
	}
	out := make([]model.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Model())
	}
	return out, nil
}

func (r *mongoUserRepository) Create(ctx context.Context, user *model.User) error {
	id, err := nextDocumentID(ctx, r.coll, r.alloc, "users", "UserID")
	if err != nil {
		return translate("mongo next user id", err)
	}

	doc := document.FromUser(*user)
	doc.ID = primitive.NewObjectID()
	doc.UserID = id
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return translate("mongo create user", err)
	}

	user.ID = id
	user.DocumentID = doc.ID.Hex()
	return nil
}

func (r *mongoUserRepository) UpdateRoles(ctx context.Context, id int64, roles string) (*model.User, error) {
	op := fmt.Sprintf("mongo update user %d roles", id)
	res, err := r.coll.UpdateOne(ctx, bson.M{"UserID": id}, bson.M{
		"$set": bson.M{"Roles": roles, "UpdatedAt": r.now().UTC()},
	})
	if err != nil {
		return nil, translate(op, err)
	}
	if res.MatchedCount == 0 {
		return nil, fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

func (r *mongoUserRepository) Delete(ctx context.Context, id int64) error {
	op := fmt.Sprintf("mongo delete user %d", id)
	res, err := r.coll.DeleteOne(ctx, bson.M{"UserID": id})
	if err != nil {
		return translate(op, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	return nil
}
