package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/internal/store/event"
	"github.com/yanis004/WebServices/internal/store/repository"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
	pkgkafka "github.com/yanis004/WebServices/pkg/kafka"
	"github.com/yanis004/WebServices/pkg/pagination"
)

// --- Mock Repositories ---

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) List(ctx context.Context, params pagination.Params) ([]domain.Order, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

func (m *mockOrderRepository) Update(ctx context.Context, id string, patch repository.OrderPatch) (*domain.Order, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *mockOrderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) List(ctx context.Context, params pagination.Params) ([]domain.Product, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *mockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepository) PricesByIDs(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Test Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func newOrderTestService(orders *mockOrderRepository, products *mockProductRepository) *OrderService {
	return NewOrderService(orders, NewPricer(products), testProducer(), testLogger())
}

// --- CreateOrder Tests ---

func TestOrderService_CreateOrder_DerivesTotal(t *testing.T) {
	ctx := context.Background()
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newOrderTestService(orders, products)

	ids := []string{"prod-001", "prod-002"}
	products.On("PricesByIDs", ctx, ids).Return(map[string]decimal.Decimal{
		"prod-001": decimal.RequireFromString("10.00"),
		"prod-002": decimal.RequireFromString("19.99"),
	}, nil)
	orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{UserID: "user-001", ProductIDs: ids})
	require.NoError(t, err)

	// (10.00 + 19.99) * 1.2 = 35.988, rounded half-up to 35.99.
	assert.True(t, order.Total.Equal(decimal.RequireFromString("35.99")),
		"total = %s", order.Total)
	assert.False(t, order.Payment)
	assert.NotEmpty(t, order.ID)

	orders.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestOrderService_CreateOrder_SkipsUnknownProducts(t *testing.T) {
	ctx := context.Background()
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newOrderTestService(orders, products)

	ids := []string{"prod-001", "ghost"}
	products.On("PricesByIDs", ctx, ids).Return(map[string]decimal.Decimal{
		"prod-001": decimal.RequireFromString("10.00"),
	}, nil)
	orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{UserID: "user-001", ProductIDs: ids})
	require.NoError(t, err)

	// Unknown IDs contribute nothing to the subtotal.
	assert.True(t, order.Total.Equal(decimal.RequireFromString("12")))
}

func TestOrderService_CreateOrder_CountsDuplicates(t *testing.T) {
	ctx := context.Background()
	orders := new(mockOrderRepository)
	products := new(mockProductRepository)
	svc := newOrderTestService(orders, products)

	ids := []string{"prod-001", "prod-001"}
	products.On("PricesByIDs", ctx, ids).Return(map[string]decimal.Decimal{
		"prod-001": decimal.RequireFromString("10.00"),
	}, nil)
	orders.On("Create", ctx, mock.AnythingOfType("*domain.Order")).Return(nil)

	order, err := svc.CreateOrder(ctx, CreateOrderInput{UserID: "user-001", ProductIDs: ids})
	require.NoError(t, err)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("24")))
}

func TestOrderService_CreateOrder_MissingUserID(t *testing.T) {
	svc := newOrderTestService(new(mockOrderRepository), new(mockProductRepository))

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{ProductIDs: []string{"prod-001"}})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestOrderService_CreateOrder_EmptyProducts(t *testing.T) {
	svc := newOrderTestService(new(mockOrderRepository), new(mockProductRepository))

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{UserID: "user-001"})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

// --- UpdateOrder Tests ---

func TestOrderService_UpdateOrder_EmptyPatch(t *testing.T) {
	svc := newOrderTestService(new(mockOrderRepository), new(mockProductRepository))

	_, err := svc.UpdateOrder(context.Background(), "order-001", UpdateOrderInput{})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestOrderService_UpdateOrder_Success(t *testing.T) {
	ctx := context.Background()
	orders := new(mockOrderRepository)
	svc := newOrderTestService(orders, new(mockProductRepository))

	payment := true
	updated := &domain.Order{ID: "order-001", Payment: true}
	orders.On("Update", ctx, "order-001", repository.OrderPatch{Payment: &payment}).Return(updated, nil)

	order, err := svc.UpdateOrder(ctx, "order-001", UpdateOrderInput{Payment: &payment})
	require.NoError(t, err)
	assert.True(t, order.Payment)

	orders.AssertExpectations(t)
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	ctx := context.Background()
	orders := new(mockOrderRepository)
	svc := newOrderTestService(orders, new(mockProductRepository))

	orders.On("GetByID", ctx, "missing").Return(nil, apperrors.NotFound("order", "missing"))

	_, err := svc.GetOrder(ctx, "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
