package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"artmuseum/internal/model"
)

// Collection mirrors its sequential id inside the document as CollectionID.
type Collection struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CollectionID int64              `bson:"CollectionID"`
	Name         string             `bson:"Name"`
	Description  *string            `bson:"Description,omitempty"`
	OwnerID      *int64             `bson:"OwnerID,omitempty"`
}

// FromCollection maps a relational collection row.
func FromCollection(m model.Collection) Collection {
	return Collection{
		CollectionID: m.ID,
		Name:         m.Name,
		Description:  m.Description,
		OwnerID:      m.OwnerID,
	}
}

// Model converts back to the shared entity, exposing the native id as DocumentID.
func (d Collection) Model() model.Collection {
	return model.Collection{
		ID:          d.CollectionID,
		DocumentID:  d.ID.Hex(),
		OwnerID:     d.OwnerID,
		Name:        d.Name,
		Description: d.Description,
	}
}

// User keeps the password hash so copied accounts can still authenticate.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       int64              `bson:"UserID"`
	UserName     string             `bson:"UserName"`
	Email        string             `bson:"Email"`
	PasswordHash string             `bson:"PasswordHash"`
	Roles        string             `bson:"Roles"`
	CreatedAt    time.Time          `bson:"CreatedAt"`
	UpdatedAt    time.Time          `bson:"UpdatedAt"`
}

// FromUser maps a relational user row. The email is normalized the way
// lookups expect it.
func FromUser(m model.User) User {
	return User{
		UserID:       m.ID,
		UserName:     m.UserName,
		Email:        model.NormalizeEmail(m.Email),
		PasswordHash: m.PasswordHash,
		Roles:        m.Roles,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// Model converts back to the shared entity.
func (d User) Model() model.User {
	return model.User{
		ID:           d.UserID,
		DocumentID:   d.ID.Hex(),
		UserName:     d.UserName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Roles:        d.Roles,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// CollectionItem is the stored collection membership.
type CollectionItem struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CollectionID int64              `bson:"CollectionID"`
	ArtworkID    int64              `bson:"ArtworkID"`
	DateAdded    *time.Time         `bson:"DateAdded,omitempty"`
	ItemNotes    *string            `bson:"ItemNotes,omitempty"`
}

// FromCollectionItem maps a relational collection_items row.
func FromCollectionItem(m model.CollectionItem) CollectionItem {
	return CollectionItem{
		CollectionID: m.CollectionID,
		ArtworkID:    m.ArtworkID,
		DateAdded:    m.DateAdded,
		ItemNotes:    m.ItemNotes,
	}
}

// ExhibitionArtwork is the stored exhibition placement.
type ExhibitionArtwork struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	ExhibitionID int64              `bson:"ExhibitionID"`
	ArtworkID    int64              `bson:"ArtworkID"`
	DisplayLabel *string            `bson:"DisplayLabel,omitempty"`
	Notes        *string            `bson:"Notes,omitempty"`
}

// FromExhibitionArtwork maps a relational exhibition_artworks row.
func FromExhibitionArtwork(m model.ExhibitionArtwork) ExhibitionArtwork {
	return ExhibitionArtwork{
		ExhibitionID: m.ExhibitionID,
		ArtworkID:    m.ArtworkID,
		DisplayLabel: m.DisplayLabel,
		Notes:        m.Notes,
	}
}

// Ownership is the stored ownership period.
type Ownership struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	OwnershipID      int64              `bson:"OwnershipID"`
	ArtworkID        int64              `bson:"ArtworkID"`
	OwnerID          int64              `bson:"OwnerID"`
	AcquiredDate     *time.Time         `bson:"AcquiredDate,omitempty"`
	RelinquishedDate *time.Time         `bson:"RelinquishedDate,omitempty"`
	SourceDocument   *string            `bson:"SourceDocument,omitempty"`
	Notes            *string            `bson:"Notes,omitempty"`
}

// FromOwnership maps a relational ownership row.
func FromOwnership(m model.Ownership) Ownership {
	return Ownership{
		OwnershipID:      m.ID,
		ArtworkID:        m.ArtworkID,
		OwnerID:          m.OwnerID,
		AcquiredDate:     m.AcquiredDate,
		RelinquishedDate: m.RelinquishedDate,
		SourceDocument:   m.SourceDocument,
		Notes:            m.Notes,
	}
}

// Restoration is the stored restoration record. Cost is kept exact.
type Restoration struct {
	ID              primitive.ObjectID    `bson:"_id,omitempty"`
	RestorationID   int64                 `bson:"RestorationID"`
	ArtworkID       int64                 `bson:"ArtworkID"`
	RestorationDate *time.Time            `bson:"RestorationDate,omitempty"`
	Conservator     *string               `bson:"Conservator,omitempty"`
	RestorationType *string               `bson:"RestorationType,omitempty"`
	Details         *string               `bson:"Details,omitempty"`
	ConditionBefore *string               `bson:"ConditionBefore,omitempty"`
	ConditionAfter  *string               `bson:"ConditionAfter,omitempty"`
	Cost            *primitive.Decimal128 `bson:"Cost,omitempty"`
	Currency        *string               `bson:"Currency,omitempty"`
}

// FromRestoration maps a relational restoration row.
func FromRestoration(m model.Restoration) Restoration {
	return Restoration{
		RestorationID:   m.ID,
		ArtworkID:       m.ArtworkID,
		RestorationDate: m.RestorationDate,
		Conservator:     m.Conservator,
		RestorationType: m.RestorationType,
		Details:         m.Details,
		ConditionBefore: m.ConditionBefore,
		ConditionAfter:  m.ConditionAfter,
		Cost:            decimal128(m.Cost),
		Currency:        m.Currency,
	}
}

// Transaction is the stored transaction record. Price is kept exact.
type Transaction struct {
	ID            primitive.ObjectID    `bson:"_id,omitempty"`
	TransactionID int64                 `bson:"TransactionID"`
	ArtworkID     int64                 `bson:"ArtworkID"`
	TxnDate       *time.Time            `bson:"TxnDate,omitempty"`
	TxnType       *string               `bson:"TxnType,omitempty"`
	FromOwnerID   *int64                `bson:"FromOwnerID,omitempty"`
	ToOwnerID     *int64                `bson:"ToOwnerID,omitempty"`
	Price         *primitive.Decimal128 `bson:"Price,omitempty"`
	Currency      *string               `bson:"Currency,omitempty"`
	Notes         *string               `bson:"Notes,omitempty"`
}

// FromTransaction maps a relational transaction row.
func FromTransaction(m model.Transaction) Transaction {
	return Transaction{
		TransactionID: m.ID,
		ArtworkID:     m.ArtworkID,
		TxnDate:       m.TxnDate,
		TxnType:       m.TxnType,
		FromOwnerID:   m.FromOwnerID,
		ToOwnerID:     m.ToOwnerID,
		Price:         decimal128(m.Price),
		Currency:      m.Currency,
		Notes:         m.Notes,
	}
}
