package repository

import (
	"context"
	"errors"

	"artmarket-backend/internal/model"

	"gorm.io/gorm"
)

type CommissionRepository interface {
	Create(ctx context.Context, commission *model.Commission) error
	FindByID(ctx context.Context, commissionID uint) (*model.Commission, error)
	List(ctx context.Context) ([]*model.Commission, error)
	Delete(ctx context.Context, commissionID uint) error
}

type commissionRepoImpl struct {
	db *gorm.DB
}

func NewCommissionRepository(db *gorm.DB) CommissionRepository {
	return &commissionRepoImpl{
		db: db,
	}
}

func (r *commissionRepoImpl) Create(ctx context.Context, commission *model.Commission) error {
	return r.db.WithContext(ctx).Create(commission).Error
}

func (r *commissionRepoImpl) FindByID(ctx context.Context, commissionID uint) (*model.Commission, error) {
	var commission model.Commission
	err := r.db.WithContext(ctx).
		Where("id = ?", commissionID).
		First(&commission).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrCommissionNotFound
		}
		return nil, err
	}

	return &commission, nil
}

func (r *commissionRepoImpl) List(ctx context.Context) ([]*model.Commission, error) {
	var commissions []*model.Commission
	err := r.db.WithContext(ctx).Find(&commissions).Error
	if err != nil {
		return nil, err
	}

	return commissions, nil
}

func (r *commissionRepoImpl) Delete(ctx context.Context, commissionID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", commissionID).
		Delete(&model.Commission{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrCommissionNotFound
	}

	return nil
}
