package repository

import (
	"context"

	"artmarket-backend/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error
	ExistsForOrder(ctx context.Context, orderID uint) (bool, error)
	ListByOrder(ctx context.Context, orderID uint) ([]*model.Payment, error)
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) Create(ctx context.Context, tx *gorm.DB, payment *model.Payment) error {
	return tx.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepoImpl) ExistsForOrder(ctx context.Context, orderID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("order_id = ?", orderID).
		Count(&count).Error

	return count > 0, err
}

func (r *paymentRepoImpl) ListByOrder(ctx context.Context, orderID uint) ([]*model.Payment, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}
