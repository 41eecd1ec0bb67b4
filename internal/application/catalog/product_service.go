// Package catalog contains the storefront catalog application service.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartauto/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

// ProductService serves the public catalog reads
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// ListProducts returns the full catalog ordered by name
func (s *ProductService) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, err
	}
	return toProductList(products), nil
}

// GetProduct returns a single product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toProduct(product)
	return &dto, nil
}

// LowStockProducts returns products below the dashboard threshold
func (s *ProductService) LowStockProducts(ctx context.Context) ([]Product, error) {
	products, err := s.productRepo.FindBelowStock(ctx, catalog.LowStockThreshold)
	if err != nil {
		s.logger.Error("Failed to list low stock products", zap.Error(err))
		return nil, err
	}
	return toProductList(products), nil
}
