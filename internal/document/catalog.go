package document

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"artmuseum/internal/model"
)

// Artist is the stored artist document. ArtistID keeps the relational key
// when the document was copied from the catalog database.
type Artist struct {
	ID          primitive.ObjectID `json:"Id" bson:"_id,omitempty"`
	ArtistID    *int64             `json:"ArtistID,omitempty" bson:"ArtistID,omitempty"`
	FullName    string             `json:"FullName" bson:"FullName" validate:"required,notblank,max=255"`
	Nationality *string            `json:"Nationality,omitempty" bson:"Nationality,omitempty"`
	BirthDate   *time.Time         `json:"BirthDate,omitempty" bson:"BirthDate,omitempty"`
	DeathDate   *time.Time         `json:"DeathDate,omitempty" bson:"DeathDate,omitempty"`
	Biography   *string            `json:"Biography,omitempty" bson:"Biography,omitempty"`
}

func (d *Artist) GetObjectID() primitive.ObjectID   { return d.ID }
func (d *Artist) SetObjectID(id primitive.ObjectID) { d.ID = id }

// FromArtist maps a relational artist row.
func FromArtist(m model.Artist) Artist {
	return Artist{
		ArtistID:    int64Ptr(m.ID),
		FullName:    m.FullName,
		Nationality: m.Nationality,
		BirthDate:   m.BirthDate,
		DeathDate:   m.DeathDate,
		Biography:   m.Biography,
	}
}

// Artwork is the stored artwork document.
type Artwork struct {
	ID                primitive.ObjectID `json:"Id" bson:"_id,omitempty"`
	ArtworkID         *int64             `json:"ArtworkID,omitempty" bson:"ArtworkID,omitempty"`
	Title             string             `json:"Title" bson:"Title" validate:"required,notblank,max=255"`
	Medium            *string            `json:"Medium,omitempty" bson:"Medium,omitempty"`
	YearCreated       *int               `json:"YearCreated,omitempty" bson:"YearCreated,omitempty"`
	Dimensions        *string            `json:"Dimensions,omitempty" bson:"Dimensions,omitempty"`
	PrimaryArtistID   *int64             `json:"PrimaryArtistID,omitempty" bson:"PrimaryArtistID,omitempty"`
	CurrentLocationID *int64             `json:"CurrentLocationID,omitempty" bson:"CurrentLocationID,omitempty"`
	CurrentOwnerID    *int64             `json:"CurrentOwnerID,omitempty" bson:"CurrentOwnerID,omitempty"`
	Notes             *string            `json:"Notes,omitempty" bson:"Notes,omitempty"`
	CreatedAt         *time.Time         `json:"CreatedAt,omitempty" bson:"CreatedAt,omitempty"`
}

func (d *Artwork) GetObjectID() primitive.ObjectID   { return d.ID }
func (d *Artwork) SetObjectID(id primitive.ObjectID) { d.ID = id }

// FromArtwork maps a relational artwork row.
func FromArtwork(m model.Artwork) Artwork {
	return Artwork{
		ArtworkID:         int64Ptr(m.ID),
		Title:             m.Title,
		Medium:            m.Medium,
		YearCreated:       m.YearCreated,
		Dimensions:        m.Dimensions,
		PrimaryArtistID:   m.PrimaryArtistID,
		CurrentLocationID: m.CurrentLocationID,
		CurrentOwnerID:    m.CurrentOwnerID,
		Notes:             m.Notes,
		CreatedAt:         m.CreatedAt,
	}
}

// Location is the stored location document.
type Location struct {
	ID         primitive.ObjectID `json:"Id" bson:"_id,omitempty"`
	LocationID *int64             `json:"LocationID,omitempty" bson:"LocationID,omitempty"`
	Name       string             `json:"Name" bson:"Name" validate:"required,notblank,max=255"`
	Address    *string            `json:"Address,omitempty" bson:"Address,omitempty"`
	Room       *string            `json:"Room,omitempty" bson:"Room,omitempty"`
	Shelf      *string            `json:"Shelf,omitempty" bson:"Shelf,omitempty"`
}

func (d *Location) GetObjectID() primitive.ObjectID   { return d.ID }
func (d *Location) SetObjectID(id primitive.ObjectID) { d.ID = id }

// FromLocation maps a relational location row.
func FromLocation(m model.Location) Location {
	return Location{
		LocationID: int64Ptr(m.ID),
		Name:       m.Name,
		Address:    m.Address,
		Room:       m.Room,
		Shelf:      m.Shelf,
	}
}

// Exhibition is the stored exhibition document.
type Exhibition struct {
	ID           primitive.ObjectID `json:"Id" bson:"_id,omitempty"`
	ExhibitionID *int64             `json:"ExhibitionID,omitempty" bson:"ExhibitionID,omitempty"`
	Name         string             `json:"Name" bson:"Name" validate:"required,notblank,max=255"`
	StartDate    *time.Time         `json:"StartDate,omitempty" bson:"StartDate,omitempty"`
	EndDate      *time.Time         `json:"EndDate,omitempty" bson:"EndDate,omitempty"`
	Description  *string            `json:"Description,omitempty" bson:"Description,omitempty"`
	LocationID   *int64             `json:"LocationID,omitempty" bson:"LocationID,omitempty"`
}

func (d *Exhibition) GetObjectID() primitive.ObjectID   { return d.ID }
func (d *Exhibition) SetObjectID(id primitive.ObjectID) { d.ID = id }

// FromExhibition maps a relational exhibition row.
func FromExhibition(m model.Exhibition) Exhibition {
	return Exhibition{
		ExhibitionID: int64Ptr(m.ID),
		Name:         m.Name,
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Description:  m.Description,
		LocationID:   m.LocationID,
	}
}

// Owner is the stored owner document.
type Owner struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID      int64              `bson:"OwnerID"`
	Name         string             `bson:"Name"`
	OwnerType    *string            `bson:"OwnerType,omitempty"`
	ContactEmail *string            `bson:"ContactEmail,omitempty"`
	Phone        *string            `bson:"Phone,omitempty"`
	Address      *string            `bson:"Address,omitempty"`
}

// FromOwner maps a relational owner row.
func FromOwner(m model.Owner) Owner {
	return Owner{
		OwnerID:      m.ID,
		Name:         m.Name,
		OwnerType:    m.OwnerType,
		ContactEmail: m.ContactEmail,
		Phone:        m.Phone,
		Address:      m.Address,
	}
}

// MediaFile is the stored media document.
type MediaFile struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	MediaID         int64              `bson:"MediaID"`
	ArtworkID       *int64             `bson:"ArtworkID,omitempty"`
	ArtistID        *int64             `bson:"ArtistID,omitempty"`
	MediaType       *string            `bson:"MediaType,omitempty"`
	Title           *string            `bson:"Title,omitempty"`
	FileURL         *string            `bson:"FileUrl,omitempty"`
	CapturedDate    *time.Time         `bson:"CapturedDate,omitempty"`
	CopyrightHolder *string            `bson:"CopyrightHolder,omitempty"`
	Notes           *string            `bson:"Notes,omitempty"`
}

// FromMediaFile maps a relational media row.
func FromMediaFile(m model.MediaFile) MediaFile {
	return MediaFile{
		MediaID:         m.ID,
		ArtworkID:       m.ArtworkID,
		ArtistID:        m.ArtistID,
		MediaType:       m.MediaType,
		Title:           m.Title,
		FileURL:         m.FileURL,
		CapturedDate:    m.CapturedDate,
		CopyrightHolder: m.CopyrightHolder,
		Notes:           m.Notes,
	}
}
