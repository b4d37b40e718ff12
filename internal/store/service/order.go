package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/internal/store/event"
	"github.com/yanis004/WebServices/internal/store/repository"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
	"github.com/yanis004/WebServices/pkg/pagination"
)

// OrderService implements the business logic for order operations.
type OrderService struct {
	repo     repository.OrderRepository
	pricer   *Pricer
	producer *event.Producer
	logger   *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(repo repository.OrderRepository, pricer *Pricer, producer *event.Producer, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		pricer:   pricer,
		producer: producer,
		logger:   logger,
	}
}

// CreateOrderInput holds the parameters for creating an order.
type CreateOrderInput struct {
	UserID     string   `json:"user_id" validate:"required"`
	ProductIDs []string `json:"product_ids" validate:"required,min=1"`
}

// UpdateOrderInput holds the parameters for a partial order update. Nil
// fields are left unchanged.
type UpdateOrderInput struct {
	ProductIDs *[]string `json:"product_ids"`
	Payment    *bool     `json:"payment"`
}

// CreateOrder creates an order priced from the referenced products. The
// total is derived once here and never recomputed.
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if input.UserID == "" {
		return nil, apperrors.InvalidInput("user_id is required")
	}
	if len(input.ProductIDs) == 0 {
		return nil, apperrors.InvalidInput("order must reference at least one product")
	}

	total, err := s.pricer.Quote(ctx, input.ProductIDs)
	if err != nil {
		return nil, fmt.Errorf("price order: %w", err)
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:         uuid.New().String(),
		UserID:     input.UserID,
		ProductIDs: input.ProductIDs,
		Total:      total,
		Payment:    false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.producer.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order.created event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
		// Do not fail the operation if event publishing fails.
	}

	s.logger.InfoContext(ctx, "order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.String("total", order.Total.StringFixed(2)),
	)

	return order, nil
}

// GetOrder retrieves an order by its ID.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return order, nil
}

// ListOrders returns a paginated list of orders.
func (s *OrderService) ListOrders(ctx context.Context, params pagination.Params) ([]domain.Order, int, error) {
	orders, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

// UpdateOrder applies a partial update. At least one field must be set.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, input UpdateOrderInput) (*domain.Order, error) {
	if input.ProductIDs == nil && input.Payment == nil {
		return nil, apperrors.InvalidInput("at least one of product_ids or payment must be provided")
	}
	if input.ProductIDs != nil && len(*input.ProductIDs) == 0 {
		return nil, apperrors.InvalidInput("product_ids must not be empty")
	}

	order, err := s.repo.Update(ctx, id, repository.OrderPatch{
		ProductIDs: input.ProductIDs,
		Payment:    input.Payment,
	})
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}

	s.logger.InfoContext(ctx, "order updated", slog.String("order_id", id))
	return order, nil
}

// DeleteOrder removes an order by its ID.
func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	s.logger.InfoContext(ctx, "order deleted", slog.String("order_id", id))
	return nil
}
