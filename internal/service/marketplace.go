package service

import (
	"context"
	"fmt"

	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/model"
	"artmarket-backend/internal/repository"
)

// MarketplaceService bundles the small CRUD surfaces: categories, reviews,
// commissions.
type MarketplaceService interface {
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategory(ctx context.Context, id uint) (*model.Category, error)
	RenameCategory(ctx context.Context, id uint, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	CreateReview(ctx context.Context, userID uint, req *dto.CreateReviewRequest) (*model.Review, error)
	GetReview(ctx context.Context, id uint) (*model.Review, error)
	ListReviewsByProduct(ctx context.Context, productID uint) ([]*model.Review, error)
	DeleteReview(ctx context.Context, id uint) error

	CreateCommission(ctx context.Context, req *dto.CreateCommissionRequest) (*model.Commission, error)
	GetCommission(ctx context.Context, id uint) (*model.Commission, error)
	ListCommissions(ctx context.Context) ([]*model.Commission, error)
	DeleteCommission(ctx context.Context, id uint) error
}

type marketplaceServiceImpl struct {
	categoryRepo   repository.CategoryRepository
	reviewRepo     repository.ReviewRepository
	commissionRepo repository.CommissionRepository
	productRepo    repository.ProductRepository
}

func NewMarketplaceService(
	categoryRepo repository.CategoryRepository,
	reviewRepo repository.ReviewRepository,
	commissionRepo repository.CommissionRepository,
	productRepo repository.ProductRepository,
) MarketplaceService {
	return &marketplaceServiceImpl{
		categoryRepo:   categoryRepo,
		reviewRepo:     reviewRepo,
		commissionRepo: commissionRepo,
		productRepo:    productRepo,
	}
}

func (s *marketplaceServiceImpl) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	if _, err := s.categoryRepo.FindByName(ctx, name); err == nil {
		return nil, model.ErrCategoryExists
	}

	category := &model.Category{Name: name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("store category in db: %w", err)
	}

	return category, nil
}

func (s *marketplaceServiceImpl) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categoryRepo.List(ctx)
}

func (s *marketplaceServiceImpl) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	return s.categoryRepo.FindByID(ctx, id)
}

func (s *marketplaceServiceImpl) RenameCategory(ctx context.Context, id uint, name string) (*model.Category, error) {
	return s.categoryRepo.Rename(ctx, id, name)
}

func (s *marketplaceServiceImpl) DeleteCategory(ctx context.Context, id uint) error {
	return s.categoryRepo.Delete(ctx, id)
}

func (s *marketplaceServiceImpl) CreateReview(ctx context.Context, userID uint, req *dto.CreateReviewRequest) (*model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	review := &model.Review{
		UserID:    userID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("store review in db: %w", err)
	}

	return review, nil
}

func (s *marketplaceServiceImpl) GetReview(ctx context.Context, id uint) (*model.Review, error) {
	return s.reviewRepo.FindByID(ctx, id)
}

func (s *marketplaceServiceImpl) ListReviewsByProduct(ctx context.Context, productID uint) ([]*model.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

func (s *marketplaceServiceImpl) DeleteReview(ctx context.Context, id uint) error {
	return s.reviewRepo.Delete(ctx, id)
}

func (s *marketplaceServiceImpl) CreateCommission(ctx context.Context, req *dto.CreateCommissionRequest) (*model.Commission, error) {
	if req.Percentage < 0 || req.Percentage > 100 {
		return nil, fmt.Errorf("percentage must be between 0 and 100")
	}
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	commission := &model.Commission{
		ProductID:  req.ProductID,
		Amount:     req.Amount,
		Percentage: req.Percentage,
	}
	if err := s.commissionRepo.Create(ctx, commission); err != nil {
		return nil, fmt.Errorf("store commission in db: %w", err)
	}

	return commission, nil
}

func (s *marketplaceServiceImpl) GetCommission(ctx context.Context, id uint) (*model.Commission, error) {
	return s.commissionRepo.FindByID(ctx, id)
}

func (s *marketplaceServiceImpl) ListCommissions(ctx context.Context) ([]*model.Commission, error) {
	return s.commissionRepo.List(ctx)
}

func (s *marketplaceServiceImpl) DeleteCommission(ctx context.Context, id uint) error {
	return s.commissionRepo.Delete(ctx, id)
}
