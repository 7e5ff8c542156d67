package repository

import (
	"context"
	"errors"

	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID uint) (*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	ListBySeller(ctx context.Context, artistID uint) ([]*model.Product, error)
	Patch(ctx context.Context, productID uint, patch *dto.ProductPatch) (*model.Product, error)
	Delete(ctx context.Context, productID uint) error

	// Settlement helpers; they run inside the caller's transaction.
	Get(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) error
	SetStatus(ctx context.Context, tx *gorm.DB, productID uint, statusID uint) error
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID uint) (*model.Product, error) {
	return r.Get(ctx, r.db, productID)
}

func (r *productRepoImpl) Get(ctx context.Context, tx *gorm.DB, productID uint) (*model.Product, error) {
	var product model.Product
	err := tx.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrProductNotFound
		}
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListBySeller(ctx context.Context, artistID uint) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("artist_id = ?", artistID).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Patch(ctx context.Context, productID uint, patch *dto.ProductPatch) (*model.Product, error) {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Price != nil {
		updates["price"] = *patch.Price
	}
	if patch.Stock != nil {
		updates["stock"] = *patch.Stock
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}
	if patch.StatusID != nil {
		updates["status_id"] = *patch.StatusID
	}
	if patch.FileURL != nil {
		updates["file_url"] = *patch.FileURL
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&model.Product{}).
			Where("id = ?", productID).
			Updates(updates)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, model.ErrProductNotFound
		}
	}

	return r.FindByID(ctx, productID)
}

func (r *productRepoImpl) Delete(ctx context.Context, productID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// DecrementStock is a conditional update: it only applies when enough stock
// remains, which guards against two concurrent confirmations both passing
// the read-side validation.
func (r *productRepoImpl) DecrementStock(ctx context.Context, tx *gorm.DB, productID uint, quantity int) error {
	result := tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return model.ErrInsufficientStock
	}

	return nil
}

func (r *productRepoImpl) SetStatus(ctx context.Context, tx *gorm.DB, productID uint, statusID uint) error {
	return tx.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Update("status_id", statusID).Error
}
