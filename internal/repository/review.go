package repository

import (
	"context"
	"errors"

	"artmarket-backend/internal/model"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, reviewID uint) (*model.Review, error)
	ListByProduct(ctx context.Context, productID uint) ([]*model.Review, error)
	Delete(ctx context.Context, reviewID uint) error
}

type reviewRepoImpl struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepoImpl{
		db: db,
	}
}

func (r *reviewRepoImpl) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepoImpl) FindByID(ctx context.Context, reviewID uint) (*model.Review, error) {
	var review model.Review
	err := r.db.WithContext(ctx).
		Where("id = ?", reviewID).
		First(&review).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrReviewNotFound
		}
		return nil, err
	}

	return &review, nil
}

func (r *reviewRepoImpl) ListByProduct(ctx context.Context, productID uint) ([]*model.Review, error) {
	var reviews []*model.Review
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

func (r *reviewRepoImpl) Delete(ctx context.Context, reviewID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", reviewID).
		Delete(&model.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrReviewNotFound
	}

	return nil
}
