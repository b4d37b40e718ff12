package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/yanis004/WebServices/internal/catalog/domain"
	"github.com/yanis004/WebServices/internal/catalog/repository"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
	"github.com/yanis004/WebServices/pkg/pagination"
)

// ProductService implements the business logic for catalog products.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new catalog product service.
func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// CreateProductInput holds the parameters for creating a catalog product.
type CreateProductInput struct {
	Name  string  `json:"name" validate:"required,min=1,max=255"`
	About string  `json:"about" validate:"required,min=1"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

// CreateProduct creates a new catalog product.
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if input.Price <= 0 {
		return nil, apperrors.InvalidInput("price must be positive")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		Name:      input.Name,
		About:     input.About,
		Price:     input.Price,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "catalog product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}

// GetProduct retrieves a product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return product, nil
}

// ListProducts returns a paginated list of products.
func (s *ProductService) ListProducts(ctx context.Context, params pagination.Params) ([]domain.Product, int, error) {
	products, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	return products, total, nil
}

// DeleteProduct removes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "catalog product deleted", slog.String("product_id", id))
	return nil
}
