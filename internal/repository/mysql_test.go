package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "artmuseum/internal/errors"
	"artmuseum/internal/model"
)

func newSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// sqlite has no stored procedures; this does what delete_collection does.
func plainDelete(tx *gorm.DB, id int64) error {
	if err := tx.Where("collection_id = ?", id).Delete(&model.CollectionItem{}).Error; err != nil {
		return err
	}
	return tx.Where("collection_id = ?", id).Delete(&model.Collection{}).Error
}

func ptr[T any](v T) *T { return &v }

func TestMySQLCollectionLifecycle(t *testing.T) {
	db := newSQLiteDB(t)
	repo := NewMySQLCollectionRepository(db, plainDelete)
	ctx := context.Background()

	c := &model.Collection{Name: "Impressionists", Description: ptr("19th century"), OwnerID: ptr(int64(3))}
	require.NoError(t, repo.Create(ctx, c))
	assert.NotZero(t, c.ID)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Impressionists", got.Name)
	assert.Equal(t, int64(3), *got.OwnerID)
	assert.Equal(t, "19th century", *got.Description)

	updated, err := repo.UpdateOwner(ctx, c.ID, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), *updated.OwnerID)

	// same value again must not look like a missing row
	_, err = repo.UpdateOwner(ctx, c.ID, 9)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.CollectionItem{CollectionID: c.ID, ArtworkID: 1}).Error)
	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err = repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	var items int64
	require.NoError(t, db.Model(&model.CollectionItem{}).Count(&items).Error)
	assert.Zero(t, items)
}

func TestMySQLCollectionMissingIDs(t *testing.T) {
	repo := NewMySQLCollectionRepository(newSQLiteDB(t), func(*gorm.DB, int64) error {
		t.Fatal("purge must not run for a missing collection")
		return nil
	})
	ctx := context.Background()

	_, err := repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = repo.UpdateOwner(ctx, 404, 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 404), apperrors.ErrNotFound)
}

func TestMySQLCollectionList(t *testing.T) {
	repo := NewMySQLCollectionRepository(newSQLiteDB(t), plainDelete)
	ctx := context.Background()

	for _, name := range []string{"Prints", "Sculpture", strings.Repeat("x", 255)} {
		require.NoError(t, repo.Create(ctx, &model.Collection{Name: name}))
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Prints", list[0].Name)
	assert.Less(t, list[0].ID, list[1].ID)
}

func TestMySQLUserRepository(t *testing.T) {
	repo := NewMySQLUserRepository(newSQLiteDB(t))
	ctx := context.Background()

	u := &model.User{UserName: "ada", Email: "ada@museum.org", PasswordHash: "hash", Roles: model.RoleUser}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	found, err := repo.FindByEmail(ctx, "ada@museum.org")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	dup := &model.User{UserName: "ada2", Email: "ada@museum.org", PasswordHash: "other", Roles: model.RoleUser}
	assert.ErrorIs(t, repo.Create(ctx, dup), apperrors.ErrConflict)

	updated, err := repo.UpdateRoles(ctx, u.ID, "Admin,User")
	require.NoError(t, err)
	assert.Equal(t, "Admin,User", updated.Roles)
	assert.True(t, updated.HasRole(model.RoleAdmin))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, u.ID), apperrors.ErrNotFound)
	_, err = repo.UpdateRoles(ctx, u.ID, "Admin")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
