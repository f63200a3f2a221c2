package repository

import (
	"context"

	"swmanager/internal/model"
)

const entityUser = "User"

// UserRepository defines the interface for data access of User entities
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, page, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
}

type userRepository struct{}

// NewUserRepository returns a new instance of UserRepository
func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return translateWriteError(entityUser, GetDB(ctx).Create(user).Error)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx).First(&user, "user_id = ?", id).Error; err != nil {
		return nil, translateReadError(entityUser, err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := GetDB(ctx).First(&user, "username = ?", username).Error; err != nil {
		return nil, translateReadError(entityUser, err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := GetDB(ctx)
	if err := db.Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, translateReadError(entityUser, err)
	}

	offset := (page - 1) * limit
	if err := db.Order("user_id").Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, translateReadError(entityUser, err)
	}
	return users, total, nil
}

// Update overwrites every column; concurrent updates of the same user are last-commit-wins
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return translateWriteError(entityUser, GetDB(ctx).Model(user).
		Select("username", "password", "role", "full_name").
		Updates(user).Error)
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return translateDeleteError(entityUser, GetDB(ctx).Where("user_id = ?", id).Delete(&model.User{}).Error)
}
