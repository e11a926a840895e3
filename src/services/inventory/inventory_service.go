package inventory

import (
	"context"
	"fmt"

	"go-shop-api/src/infrastructure/log"
	"go-shop-api/src/services/apperr"
)

type inventoryService struct {
	logger            log.Logger
	productRepository ProductRepository
}

type InventoryService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	UpdateProduct(ctx context.Context, productID string, update ProductUpdate) (*Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	ListByCategory(ctx context.Context, category string) ([]Product, error)
}

func NewInventoryService(logger log.Logger, productRepo ProductRepository) InventoryService {
	return &inventoryService{
		logger:            logger,
		productRepository: productRepo,
	}
}

// CreateProduct validates the whole payload before storing it.
func (s *inventoryService) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	if err := apperr.Validate("Product", input); err != nil {
		s.logger.WarnWithExtra(ctx, "Product validation failed", map[string]any{"Error": err.Error()})
		return nil, err
	}

	product := input.toProduct()
	if err := s.productRepository.AddProduct(ctx, &product); err != nil {
		s.logger.Exception(ctx, "Failed to insert product", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.InfoWithExtra(ctx, "Product created", map[string]any{"ProductId": product.ID.Hex()})
	return &product, nil
}

// ListProducts returns products matching every constraint in the filter.
func (s *inventoryService) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	products, err := s.productRepository.FindProducts(ctx, filter)
	if err != nil {
		s.logger.Exception(ctx, "Failed to list products", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *inventoryService) GetProduct(ctx context.Context, productID string) (*Product, error) {
	product, err := s.productRepository.GetProductByID(ctx, productID)
	if err != nil {
		s.logger.Exception(ctx, "Failed to get product "+productID, err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, apperr.NotFound("Product not found")
	}
	return product, nil
}

// UpdateProduct changes name, category, price and description only.
func (s *inventoryService) UpdateProduct(ctx context.Context, productID string, update ProductUpdate) (*Product, error) {
	if err := apperr.Validate("Product", update); err != nil {
		s.logger.WarnWithExtra(ctx, "Product update validation failed", map[string]any{"ProductId": productID, "Error": err.Error()})
		return nil, err
	}

	product, err := s.productRepository.UpdateProduct(ctx, productID, update)
	if err != nil {
		s.logger.Exception(ctx, "Failed to update product "+productID, err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, apperr.NotFound("Product not found")
	}
	return product, nil
}

func (s *inventoryService) DeleteProduct(ctx context.Context, productID string) error {
	deleted, err := s.productRepository.DeleteProduct(ctx, productID)
	if err != nil {
		s.logger.Exception(ctx, "Failed to delete product "+productID, err)
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !deleted {
		return apperr.NotFound("Product not found")
	}
	s.logger.InfoWithExtra(ctx, "Product deleted", map[string]any{"ProductId": productID})
	return nil
}

// ListByCategory matches the category exactly, including case.
func (s *inventoryService) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	return s.ListProducts(ctx, ProductFilter{Categories: []string{category}})
}
