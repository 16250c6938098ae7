package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "artmuseum/internal/errors"
	"artmuseum/internal/model"
)

// CollectionRepository is implemented once per backend. Ids are backend-local.
type CollectionRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Collection, error)
	List(ctx context.Context) ([]model.Collection, error)
	Create(ctx context.Context, collection *model.Collection) error
	UpdateOwner(ctx context.Context, id, ownerID int64) (*model.Collection, error)
	Delete(ctx context.Context, id int64) error
}

// Purger removes a collection and whatever depends on it inside tx.
type Purger func(tx *gorm.DB, id int64) error

// CallDeleteCollection runs the delete_collection stored procedure, which
// owns the cascade to collection items.
func CallDeleteCollection(tx *gorm.DB, id int64) error {
	return tx.Exec("CALL delete_collection(?)", id).Error
}

type mysqlCollectionRepository struct {
	db    *gorm.DB
	purge Purger
}

// NewMySQLCollectionRepository builds a GORM-backed repository. A nil purge
// uses CallDeleteCollection.
func NewMySQLCollectionRepository(db *gorm.DB, purge Purger) CollectionRepository {
	if purge == nil {
		purge = CallDeleteCollection
	}
	return &mysqlCollectionRepository{db: db, purge: purge}
}

func (r *mysqlCollectionRepository) GetByID(ctx context.Context, id int64) (*model.Collection, error) {
	var c model.Collection
	if err := r.db.WithContext(ctx).Where("collection_id = ?", id).First(&c).Error; err != nil {
		return nil, translate(fmt.Sprintf("mysql get collection %d", id), err)
	}
	return &c, nil
}

func (r *mysqlCollectionRepository) List(ctx context.Context) ([]model.Collection, error) {
	var collections []model.Collection
	if err := r.db.WithContext(ctx).Order("collection_id").Find(&collections).Error; err != nil {
		return nil, translate("mysql list collections", err)
	}
	return collections, nil
}

func (r *mysqlCollectionRepository) Create(ctx context.Context, collection *model.Collection) error {
	collection.ID = 0
	if err := r.db.WithContext(ctx).Create(collection).Error; err != nil {
		return translate("mysql create collection", err)
	}
	return nil
}

// UpdateOwner checks existence first: MySQL reports zero affected rows when
// the value is unchanged, so the row count cannot stand in for NotFound.
func (r *mysqlCollectionRepository) UpdateOwner(ctx context.Context, id, ownerID int64) (*model.Collection, error) {
	var updated model.Collection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).First(&updated).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Collection{}).Where("collection_id = ?", id).Update("owner_id", ownerID).Error; err != nil {
			return err
		}
		updated.OwnerID = &ownerID
		return nil
	})
	if err != nil {
		return nil, translate(fmt.Sprintf("mysql update collection %d owner", id), err)
	}
	return &updated, nil
}

func (r *mysqlCollectionRepository) Delete(ctx context.Context, id int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Collection{}).Where("collection_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.ErrNotFound
		}
		return r.purge(tx, id)
	})
	if err != nil {
		return translate(fmt.Sprintf("mysql delete collection %d", id), err)
	}
	return nil
}
