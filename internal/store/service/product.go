package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/internal/store/event"
	"github.com/yanis004/WebServices/internal/store/repository"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
	"github.com/yanis004/WebServices/pkg/pagination"
)

// ProductService implements the business logic for product operations.
type ProductService struct {
	repo     repository.ProductRepository
	reviews  repository.ReviewRepository
	producer *event.Producer
	logger   *slog.Logger
}

// NewProductService creates a new product service.
func NewProductService(repo repository.ProductRepository, reviews repository.ReviewRepository, producer *event.Producer, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:     repo,
		reviews:  reviews,
		producer: producer,
		logger:   logger,
	}
}

// CreateProductInput holds the parameters for creating a product.
type CreateProductInput struct {
	Name  string `json:"name" validate:"required,min=1,max=255"`
	About string `json:"about" validate:"required,min=1"`
	Price string `json:"price" validate:"required"`
}

// CreateProduct creates a new product with empty review aggregates.
func (s *ProductService) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	price, err := decimal.NewFromString(input.Price)
	if err != nil {
		return nil, apperrors.InvalidInput("price must be a decimal number")
	}
	if !price.IsPositive() {
		return nil, apperrors.InvalidInput("price must be greater than zero")
	}

	now := time.Now().UTC()
	product := &domain.Product{
		ID:         uuid.New().String(),
		Name:       input.Name,
		About:      input.About,
		Price:      price,
		ReviewIDs:  []string{},
		TotalScore: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	if err := s.producer.PublishProductCreated(ctx, product); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish product.created event",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}

// GetProduct returns the product merged with all of its reviews.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.ProductWithReviews, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product by id: %w", err)
	}

	reviews, err := s.reviews.ListByProductID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list product reviews: %w", err)
	}

	return &domain.ProductWithReviews{
		Product: *product,
		Reviews: reviews,
	}, nil
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

	s.logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}
