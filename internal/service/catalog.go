package service

import (
	"context"
	"fmt"

	"artmarket-backend/internal/dto"
	"artmarket-backend/internal/model"
	"artmarket-backend/internal/repository"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, artistID uint, req *dto.CreateProductRequest) (*model.Product, error)
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	ListProducts(ctx context.Context) ([]*model.Product, error)
	ListBySeller(ctx context.Context, artistID uint) ([]*model.Product, error)
	PatchProduct(ctx context.Context, productID uint, patch *dto.ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID uint) error
}

type catalogServiceImpl struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) CatalogService {
	return &catalogServiceImpl{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *catalogServiceImpl) CreateProduct(ctx context.Context, artistID uint, req *dto.CreateProductRequest) (*model.Product, error) {
	if req.Price < 0 {
		return nil, fmt.Errorf("price must be non-negative")
	}
	if req.Stock < 0 {
		return nil, fmt.Errorf("stock must be non-negative")
	}
	if _, err := s.categoryRepo.FindByID(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	statusID := model.ProductStatusActiveID
	if req.Stock == 0 {
		statusID = model.ProductStatusSoldOutID
	}

	product := &model.Product{
		ArtistID:    artistID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		IsDigital:   req.IsDigital,
		FileURL:     req.FileURL,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		StatusID:    statusID,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("store product in db: %w", err)
	}

	return product, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, productID)
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context) ([]*model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *catalogServiceImpl) ListBySeller(ctx context.Context, artistID uint) ([]*model.Product, error) {
	return s.productRepo.ListBySeller(ctx, artistID)
}

func (s *catalogServiceImpl) PatchProduct(ctx context.Context, productID uint, patch *dto.ProductPatch) (*model.Product, error) {
	if patch.CategoryID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
	}

	return s.productRepo.Patch(ctx, productID, patch)
}

func (s *catalogServiceImpl) DeleteProduct(ctx context.Context, productID uint) error {
	return s.productRepo.Delete(ctx, productID)
}
