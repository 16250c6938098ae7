package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ownership is one period during which an owner held an artwork.
type Ownership struct {
	ID               int64      `gorm:"column:ownership_id;primaryKey;autoIncrement"`
	ArtworkID        int64      `gorm:"column:artwork_id;not null"`
	OwnerID          int64      `gorm:"column:owner_id;not null"`
	AcquiredDate     *time.Time `gorm:"column:acquired_date"`
	RelinquishedDate *time.Time `gorm:"column:relinquished_date"`
	SourceDocument   *string    `gorm:"column:source_document;size:255"`
	Notes            *string    `gorm:"column:notes;type:text"`
}

// TableName pins the relational table name. The table is singular.
func (Ownership) TableName() string { return "ownership" }

// Restoration records conservation work performed on an artwork.
type Restoration struct {
	ID              int64               `gorm:"column:restoration_id;primaryKey;autoIncrement"`
	ArtworkID       int64               `gorm:"column:artwork_id;not null"`
	RestorationDate *time.Time          `gorm:"column:restoration_date"`
	Conservator     *string             `gorm:"column:conservator;size:255"`
	RestorationType *string             `gorm:"column:restoration_type;size:100"`
	Details         *string             `gorm:"column:details;type:text"`
	ConditionBefore *string             `gorm:"column:condition_before;size:255"`
	ConditionAfter  *string             `gorm:"column:condition_after;size:255"`
	Cost            decimal.NullDecimal `gorm:"column:cost;type:decimal(14,2)"`
	Currency        *string             `gorm:"column:currency;size:3"`
}

// TableName pins the relational table name.
func (Restoration) TableName() string { return "restorations" }

// Transaction is a sale, loan or transfer of an artwork between owners.
type Transaction struct {
	ID          int64               `gorm:"column:transaction_id;primaryKey;autoIncrement"`
	ArtworkID   int64               `gorm:"column:artwork_id;not null"`
	TxnDate     *time.Time          `gorm:"column:txn_date"`
	TxnType     *string             `gorm:"column:txn_type;size:50"`
	FromOwnerID *int64              `gorm:"column:from_owner_id"`
	ToOwnerID   *int64              `gorm:"column:to_owner_id"`
	Price       decimal.NullDecimal `gorm:"column:price;type:decimal(14,2)"`
	Currency    *string             `gorm:"column:currency;size:3"`
	Notes       *string             `gorm:"column:notes;type:text"`
}

// TableName pins the relational table name.
func (Transaction) TableName() string { return "transactions" }

// All lists every relational model, in dependency order, for schema creation.
func All() []any {
	return []any{
		&User{},
		&Artist{},
		&Location{},
		&Owner{},
		&Exhibition{},
		&Collection{},
		&Artwork{},
		&CollectionItem{},
		&ExhibitionArtwork{},
		&MediaFile{},
		&Ownership{},
		&Restoration{},
		&Transaction{},
	}
}
