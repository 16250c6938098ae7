package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"artmuseum/internal/document"
)

// ArtistRepository adds lookup by the relational artist key that copied
// documents carry.
type ArtistRepository interface {
	DocumentRepository[document.Artist]
	FindByArtistID(ctx context.Context, artistID int64) ([]document.Artist, error)
}

type mongoArtistRepository struct {
	DocumentRepository[document.Artist]
}

// NewMongoArtistRepository serves the Artists collection.
func NewMongoArtistRepository(db *mongo.Database) ArtistRepository {
	return &mongoArtistRepository{
		DocumentRepository: NewMongoDocumentRepository[document.Artist](db, document.ArtistsCollection),
	}
}

func (r *mongoArtistRepository) FindByArtistID(ctx context.Context, artistID int64) ([]document.Artist, error) {
	return r.FindBy(ctx, "ArtistID", artistID)
}
