package repository

import (
	"context"
	"errors"

	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, userID uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Patch(ctx context.Context, userID uint, patch *dto.UserPatch) (*model.User, error)

	// Settlement helper; runs inside the caller's transaction.
	Get(ctx context.Context, tx *gorm.DB, userID uint) (*model.User, error)

	CreateResetToken(ctx context.Context, token *model.PasswordResetToken) error
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepoImpl{
		db: db,
	}
}

func (r *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepoImpl) FindByID(ctx context.Context, userID uint) (*model.User, error) {
	return r.Get(ctx, r.db, userID)
}

func (r *userRepoImpl) Get(ctx context.Context, tx *gorm.DB, userID uint) (*model.User, error) {
	var user model.User
	err := tx.WithContext(ctx).
		Where("id = ?", userID).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}

	return &user, nil
}

func (r *userRepoImpl) Patch(ctx context.Context, userID uint, patch *dto.UserPatch) (*model.User, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Bio != nil {
		updates["bio"] = *patch.Bio
	}
	if patch.AvatarURL != nil {
		updates["avatar_url"] = *patch.AvatarURL
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&model.User{}).
			Where("id = ?", userID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, model.ErrUserNotFound
		}
	}

	return r.FindByID(ctx, userID)
}

func (r *userRepoImpl) CreateResetToken(ctx context.Context, token *model.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}
