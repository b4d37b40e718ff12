package soapsvc

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	apperrors "github.com/yanis004/WebServices/pkg/errors"
)

// ProductService implements the SOAP product operations.
type ProductService struct {
	repo   *ProductRepository
	logger *slog.Logger
}

// NewProductService creates a new SOAP product service.
func NewProductService(repo *ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:   repo,
		logger: logger,
	}
}

// CreateProduct validates the input and inserts a new product.
func (s *ProductService) CreateProduct(ctx context.Context, name, about, price string) (*Product, error) {
	if name == "" || about == "" || price == "" {
		return nil, apperrors.InvalidInput("name, about and price are required")
	}

	d, err := decimal.NewFromString(price)
	if err != nil {
		return nil, apperrors.InvalidInput("price must be a decimal number")
	}
	if d.IsNegative() {
		return nil, apperrors.InvalidInput("price must not be negative")
	}

	now := time.Now().UTC()
	product := &Product{
		ID:        uuid.New().String(),
		Name:      name,
		About:     about,
		Price:     d,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created via soap",
		slog.String("product_id", product.ID),
	)

	return product, nil
}

// PatchProduct applies a partial update. At least one field must be set.
func (s *ProductService) PatchProduct(ctx context.Context, id string, name, about, price *string) (*Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("id is required")
	}
	if name == nil && about == nil && price == nil {
		return nil, apperrors.InvalidInput("at least one of name, about or price must be provided")
	}

	patch := productPatch{Name: name, About: about}
	if price != nil {
		d, err := decimal.NewFromString(*price)
		if err != nil {
			return nil, apperrors.InvalidInput("price must be a decimal number")
		}
		patch.Price = &d
	}

	product, err := s.repo.Patch(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("patch product: %w", err)
	}

	s.logger.InfoContext(ctx, "product patched via soap", slog.String("product_id", id))
	return product, nil
}

// DeleteProduct removes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("id is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.logger.InfoContext(ctx, "product deleted via soap", slog.String("product_id", id))
	return nil
}
