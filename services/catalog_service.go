package services

import (
	"context"
	"errors"
	"net/http"

	"rental-order-service/models"
	"rental-order-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService serves the read-only product and category listings the
// storefront renders order forms from.
type CatalogService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	logger     *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products repository.ProductRepository, categories repository.CategoryRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{products: products, categories: categories, logger: logger}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, *ServiceError) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch products", zap.Error(err))
		return nil, &ServiceError{http.StatusInternalServerError, "Failed to fetch products"}
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, *ServiceError) {
	product, err := s.products.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ServiceError{http.StatusNotFound, "Product not found."}
	}
	if err != nil {
		s.logger.Error("Failed to fetch product", zap.String("product_id", id.String()), zap.Error(err))
		return nil, &ServiceError{http.StatusInternalServerError, "Failed to fetch product"}
	}
	return product, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch categories", zap.Error(err))
		return nil, &ServiceError{http.StatusInternalServerError, "Failed to fetch categories"}
	}
	return categories, nil
}
