package repository

import (
	"context"
	"errors"

	"artmarket-backend/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(ctx context.Context, tx *gorm.DB, order *model.Order) error
	CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error
	FindByID(ctx context.Context, orderID uint) (*model.Order, error)
	FindByPaymentRef(ctx context.Context, paymentRef string) (*model.Order, error)
	GetItems(ctx context.Context, tx *gorm.DB, orderID uint) ([]*model.OrderItem, error)
	MarkPaid(ctx context.Context, tx *gorm.DB, orderID uint) error
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order) error {
	return tx.WithContext(ctx).Create(order).Error
}

func (r *orderRepoImpl) CreateItems(ctx context.Context, tx *gorm.DB, items []*model.OrderItem) error {
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("id = ?", orderID).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) FindByPaymentRef(ctx context.Context, paymentRef string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("payment_ref = ?", paymentRef).
		First(&order).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrOrderNotFound
		}
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) GetItems(ctx context.Context, tx *gorm.DB, orderID uint) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := tx.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

// MarkPaid moves a PENDING order to PAID. The status guard keeps the
// transition one-way: a PAID order is never rewritten.
func (r *orderRepoImpl) MarkPaid(ctx context.Context, tx *gorm.DB, orderID uint) error {
	result := tx.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, model.OrderStatusPending).
		Update("status", model.OrderStatusPaid)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}
