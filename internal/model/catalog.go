package model

import "time"

// Artist is a creator of artworks.
type Artist struct {
	ID          int64      `gorm:"column:artist_id;primaryKey;autoIncrement"`
	FullName    string     `gorm:"column:full_name;size:255;not null"`
	Nationality *string    `gorm:"column:nationality;size:100"`
	BirthDate   *time.Time `gorm:"column:birth_date"`
	DeathDate   *time.Time `gorm:"column:death_date"`
	Biography   *string    `gorm:"column:biography;type:text"`
}

// TableName pins the relational table name.
func (Artist) TableName() string { return "artists" }

// Artwork is a catalogued piece. Artist, location and owner are references.
type Artwork struct {
	ID                   int64      `gorm:"column:artwork_id;primaryKey;autoIncrement"`
	Title                string     `gorm:"column:title;size:255;not null"`
	Medium               *string    `gorm:"column:medium;size:255"`
	YearCreated          *int       `gorm:"column:year_created"`
	Dimensions           *string    `gorm:"column:dimensions;size:255"`
	PrimaryArtistID      *int64     `gorm:"column:primary_artist_id"`
	CurrentLocationID    *int64     `gorm:"column:current_location_id"`
	CurrentOwnerID       *int64     `gorm:"column:current_owner_id"`
	Notes                *string    `gorm:"column:notes;type:text"`
	TriggerGeneratedNote *string    `gorm:"column:trigger_generated_note;type:text"`
	CreatedAt            *time.Time `gorm:"column:created_at"`
}

// TableName pins the relational table name.
func (Artwork) TableName() string { return "artworks" }

// Location is a physical place an artwork can be held.
type Location struct {
	ID      int64   `gorm:"column:location_id;primaryKey;autoIncrement"`
	Name    string  `gorm:"column:name;size:255;not null"`
	Address *string `gorm:"column:address;size:255"`
	Room    *string `gorm:"column:room;size:100"`
	Shelf   *string `gorm:"column:shelf;size:100"`
}

// TableName pins the relational table name.
func (Location) TableName() string { return "locations" }

// Owner is a person or institution that can own artworks.
type Owner struct {
	ID           int64   `gorm:"column:owner_id;primaryKey;autoIncrement"`
	Name         string  `gorm:"column:name;size:255;not null"`
	OwnerType    *string `gorm:"column:owner_type;size:50"`
	ContactEmail *string `gorm:"column:contact_email;size:255"`
	Phone        *string `gorm:"column:phone;size:50"`
	Address      *string `gorm:"column:address;size:255"`
}

// TableName pins the relational table name.
func (Owner) TableName() string { return "owners" }

// Exhibition is a time-boxed showing held at a location.
type Exhibition struct {
	ID          int64      `gorm:"column:exhibition_id;primaryKey;autoIncrement"`
	Name        string     `gorm:"column:name;size:255;not null"`
	StartDate   *time.Time `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
	Description *string    `gorm:"column:description;type:text"`
	LocationID  *int64     `gorm:"column:location_id"`
}

// TableName pins the relational table name.
func (Exhibition) TableName() string { return "exhibitions" }

// ExhibitionArtwork places an artwork in an exhibition.
type ExhibitionArtwork struct {
	ExhibitionID int64   `gorm:"column:exhibition_id;primaryKey"`
	ArtworkID    int64   `gorm:"column:artwork_id;primaryKey"`
	DisplayLabel *string `gorm:"column:display_label;size:255"`
	Notes        *string `gorm:"column:notes;type:text"`
}

// TableName pins the relational table name.
func (ExhibitionArtwork) TableName() string { return "exhibition_artworks" }

// MediaFile is an image or document attached to an artwork and/or artist.
type MediaFile struct {
	ID              int64      `gorm:"column:media_id;primaryKey;autoIncrement"`
	ArtworkID       *int64     `gorm:"column:artwork_id"`
	ArtistID        *int64     `gorm:"column:artist_id"`
	MediaType       *string    `gorm:"column:media_type;size:50"`
	Title           *string    `gorm:"column:title;size:255"`
	FileURL         *string    `gorm:"column:file_url;size:1024"`
	CapturedDate    *time.Time `gorm:"column:captured_date"`
	CopyrightHolder *string    `gorm:"column:copyright_holder;size:255"`
	Notes           *string    `gorm:"column:notes;type:text"`
}

// TableName pins the relational table name.
func (MediaFile) TableName() string { return "media_files" }
