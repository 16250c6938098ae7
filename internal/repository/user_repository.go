package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"artmuseum/internal/model"
)

// UserRepository defines persistence operations on users. FindByEmail expects
// an already normalized email.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, user *model.User) error
	UpdateRoles(ctx context.Context, id int64, roles string) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type mysqlUserRepository struct {
	db *gorm.DB
}

// NewMySQLUserRepository builds a GORM-backed repository.
func NewMySQLUserRepository(db *gorm.DB) UserRepository {
	return &mysqlUserRepository{db: db}
}

func (r *mysqlUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(fmt.Sprintf("mysql get user %d", id), err)
	}
	return &user, nil
}

func (r *mysqlUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where(&model.User{Email: email}).First(&user).Error; err != nil {
		return nil, translate("mysql find user by email", err)
	}
	return &user, nil
}

func (r *mysqlUserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("UserId").Find(&users).Error; err != nil {
		return nil, translate("mysql list users", err)
	}
	return users, nil
}

func (r *mysqlUserRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = 0
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return translate("mysql create user", err)
	}
	return nil
}

func (r *mysqlUserRepository) UpdateRoles(ctx context.Context, id int64, roles string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&user).Update("Roles", roles).Error; err != nil {
			return err
		}
		return tx.First(&user, id).Error
	})
	if err != nil {
		return nil, translate(fmt.Sprintf("mysql update user %d roles", id), err)
	}
	return &user, nil
}

func (r *mysqlUserRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return translate(fmt.Sprintf("mysql delete user %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return translate(fmt.Sprintf("mysql delete user %d", id), gorm.ErrRecordNotFound)
	}
	return nil
}
