// Package document holds the BSON shapes stored in the document backend and
// the mappings from relational rows into them. Field names follow the
// PascalCase convention already present in the catalog database.
package document

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names in the document database.
const (
	ArtistsCollection            = "Artists"
	ArtworksCollection           = "Artworks"
	CollectionItemsCollection    = "CollectionItems"
	CollectionsCollection        = "Collections"
	ExhibitionArtworksCollection = "ExhibitionArtworks"
	ExhibitionsCollection        = "Exhibitions"
	LocationsCollection          = "Locations"
	MediaFilesCollection         = "MediaFiles"
	OwnersCollection             = "Owners"
	OwnershipsCollection         = "Ownerships"
	RestorationsCollection       = "Restorations"
	TransactionsCollection       = "Transactions"
	UsersCollection              = "Users"
)

// Document is implemented by every stored shape that carries a native id.
type Document interface {
	GetObjectID() primitive.ObjectID
	SetObjectID(id primitive.ObjectID)
}

// Pointer constrains a type parameter to *T implementing Document.
type Pointer[T any] interface {
	*T
	Document
}

func decimal128(d decimal.NullDecimal) *primitive.Decimal128 {
	if !d.Valid {
		return nil
	}
	v, err := primitive.ParseDecimal128(d.Decimal.String())
	if err != nil {
		return nil
	}
	return &v
}

func int64Ptr(v int64) *int64 { return &v }
