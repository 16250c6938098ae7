package model

import "time"

// Collection is a named grouping of artworks owned by some party. The owner
// reference is not enforced against users.
type Collection struct {
	ID          int64   `json:"CollectionId" gorm:"column:collection_id;primaryKey;autoIncrement"`
	DocumentID  string  `json:"Id,omitempty" gorm:"-"`
	OwnerID     *int64  `json:"OwnerId" gorm:"column:owner_id"`
	Name        string  `json:"Name" gorm:"column:name;size:255;not null"`
	Description *string `json:"Description" gorm:"column:description;type:text"`
}

// TableName pins the relational table name.
func (Collection) TableName() string { return "collections" }

// CollectionItem links an artwork into a collection.
type CollectionItem struct {
	CollectionID int64      `gorm:"column:collection_id;primaryKey"`
	ArtworkID    int64      `gorm:"column:artwork_id;primaryKey"`
	DateAdded    *time.Time `gorm:"column:date_added"`
	ItemNotes    *string    `gorm:"column:item_notes;type:text"`
}

// TableName pins the relational table name.
func (CollectionItem) TableName() string { return "collection_items" }
