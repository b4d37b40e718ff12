package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/internal/store/event"
	"github.com/yanis004/WebServices/internal/store/repository"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
	pkgkafka "github.com/yanis004/WebServices/pkg/kafka"
	"github.com/yanis004/WebServices/internal/store/service"
	"github.com/yanis004/WebServices/pkg/pagination"
)

// --- Mock Repositories ---

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

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) ListByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Update(ctx context.Context, id string, patch repository.ReviewPatch) (*domain.Review, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

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

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, params pagination.Params) ([]domain.User, int, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func (m *mockUserRepository) Replace(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Patch(ctx context.Context, id string, patch repository.UserPatch) (*domain.User, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Test Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testEventProducer() *event.Producer {
	logger := testLogger()
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:19092"})
	return event.NewProducer(pkgkafka.NewProducer(kafkaCfg, logger), logger)
}

func setupRouter(t *testing.T, products *mockProductRepository, orders *mockOrderRepository, reviews *mockReviewRepository, users *mockUserRepository) *chi.Mux {
	t.Helper()

	logger := testLogger()
	producer := testEventProducer()

	productSvc := service.NewProductService(products, reviews, producer, logger)
	orderSvc := service.NewOrderService(orders, service.NewPricer(products), producer, logger)
	reviewSvc := service.NewReviewService(reviews, producer, logger)
	userSvc := service.NewUserService(users, logger)

	r := chi.NewRouter()
	r.Route("/products", func(r chi.Router) {
		h := NewProductHandler(productSvc, logger)
		r.Use(ContentTypeJSON)
		r.Post("/", h.CreateProduct)
		r.Get("/", h.ListProducts)
		r.Get("/{id}", h.GetProduct)
		r.Delete("/{id}", h.DeleteProduct)
	})
	r.Route("/orders", func(r chi.Router) {
		h := NewOrderHandler(orderSvc, logger)
		r.Use(ContentTypeJSON)
		r.Post("/", h.CreateOrder)
		r.Get("/{id}", h.GetOrder)
		r.Patch("/{id}", h.UpdateOrder)
		r.Delete("/{id}", h.DeleteOrder)
	})
	r.Route("/reviews", func(r chi.Router) {
		h := NewReviewHandler(reviewSvc, logger)
		r.Use(ContentTypeJSON)
		r.Post("/", h.CreateReview)
		r.Get("/{id}", h.GetReview)
		r.Patch("/{id}", h.UpdateReview)
		r.Delete("/{id}", h.DeleteReview)
	})
	r.Route("/users", func(r chi.Router) {
		h := NewUserHandler(userSvc, logger)
		r.Use(ContentTypeJSON)
		r.Post("/", h.CreateUser)
		r.Get("/{id}", h.GetUser)
		r.Put("/{id}", h.ReplaceUser)
		r.Patch("/{id}", h.PatchUser)
		r.Delete("/{id}", h.DeleteUser)
	})

	return r
}

func doRequest(router *chi.Mux, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// --- Product Tests ---

func TestProductHandler_Create_Success(t *testing.T) {
	products := new(mockProductRepository)
	router := setupRouter(t, products, new(mockOrderRepository), new(mockReviewRepository), new(mockUserRepository))

	products.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	rec := doRequest(router, http.MethodPost, "/products", map[string]any{
		"name":  "Keyboard",
		"about": "A mechanical keyboard",
		"price": "49.90",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data domain.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, "Keyboard", resp.Data.Name)
}

func TestProductHandler_Create_MissingFields(t *testing.T) {
	router := setupRouter(t, new(mockProductRepository), new(mockOrderRepository), new(mockReviewRepository), new(mockUserRepository))

	rec := doRequest(router, http.MethodPost, "/products", map[string]any{"name": "Keyboard"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_Get_MergesReviews(t *testing.T) {
	products := new(mockProductRepository)
	reviews := new(mockReviewRepository)
	router := setupRouter(t, products, new(mockOrderRepository), reviews, new(mockUserRepository))

	products.On("GetByID", mock.Anything, "prod-001").Return(&domain.Product{
		ID:         "prod-001",
		Name:       "Keyboard",
		ReviewIDs:  []string{"rev-001"},
		TotalScore: 5,
	}, nil)
	reviews.On("ListByProductID", mock.Anything, "prod-001").Return([]domain.Review{
		{ID: "rev-001", ProductID: "prod-001", Score: 5, Content: "Great"},
	}, nil)

	rec := doRequest(router, http.MethodGet, "/products/prod-001", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data domain.ProductWithReviews `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Reviews, 1)
	assert.Equal(t, "rev-001", resp.Data.Reviews[0].ID)
}

func TestProductHandler_Get_NotFound(t *testing.T) {
	products := new(mockProductRepository)
	router := setupRouter(t, products, new(mockOrderRepository), new(mockReviewRepository), new(mockUserRepository))

	products.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("product", "missing"))

	rec := doRequest(router, http.MethodGet, "/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_Delete_NoContent(t *testing.T) {
	products := new(mockProductRepository)
	router := setupRouter(t, products, new(mockOrderRepository), new(mockReviewRepository), new(mockUserRepository))

	products.On("Delete", mock.Anything, "prod-001").Return(nil)

	rec := doRequest(router, http.MethodDelete, "/products/prod-001", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.Bytes())
}

// --- Order Tests ---

func TestOrderHandler_Create_Success(t *testing.T) {
	products := new(mockProductRepository)
	orders := new(mockOrderRepository)
	router := setupRouter(t, products, orders, new(mockReviewRepository), new(mockUserRepository))

	products.On("PricesByIDs", mock.Anything, []string{"p1", "p2"}).Return(map[string]decimal.Decimal{
		"p1": decimal.RequireFromString("10.00"),
		"p2": decimal.RequireFromString("19.99"),
	}, nil)
	orders.On("Create", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil)

	rec := doRequest(router, http.MethodPost, "/orders", map[string]any{
		"user_id":     "u1",
		"product_ids": []string{"p1", "p2"},
	})

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data struct {
			Total string `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "35.99", resp.Data.Total)
}

func TestOrderHandler_Create_EmptyProducts(t *testing.T) {
	router := setupRouter(t, new(mockProductRepository), new(mockOrderRepository), new(mockReviewRepository), new(mockUserRepository))

	rec := doRequest(router, http.MethodPost, "/orders", map[string]any{
		"user_id":     "u1",
		"product_ids": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_Update_EmptyPatch(t *testing.T) {
	router := setupRouter(t, new(mockProductRepository), new(mockOrderRepository), new(mockReviewRepository), new(mockUserRepository))

	rec := doRequest(router, http.MethodPatch, "/orders/order-001", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_Update_Payment(t *testing.T) {
	orders := new(mockOrderRepository)
	router := setupRouter(t, new(mockProductRepository), orders, new(mockReviewRepository), new(mockUserRepository))

	orders.On("Update", mock.Anything, "order-001", mock.MatchedBy(func(p repository.OrderPatch) bool {
		return p.Payment != nil && *p.Payment && p.ProductIDs == nil
	})).Return(&domain.Order{ID: "order-001", Payment: true}, nil)

	rec := doRequest(router, http.MethodPatch, "/orders/order-001", map[string]any{"payment": true})
	assert.Equal(t, http.StatusOK, rec.Code)
}

// --- Review Tests ---

func TestReviewHandler_Create_Success(t *testing.T) {
	reviews := new(mockReviewRepository)
	router := setupRouter(t, new(mockProductRepository), new(mockOrderRepository), reviews, new(mockUserRepository))

	reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(nil)

	rec := doRequest(router, http.MethodPost, "/reviews", map[string]any{
		"user_id":    "u1",
		"product_id": "p1",
		"score":      5,
		"content":    "Great product",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestReviewHandler_Create_ScoreTooHigh(t *testing.T) {
	router := setupRouter(t, new(mockProductRepository), new(mockOrderRepository), new(mockReviewRepository), new(mockUserRepository))

	rec := doRequest(router, http.MethodPost, "/reviews", map[string]any{
		"user_id":    "u1",
		"product_id": "p1",
		"score":      6,
		"content":    "x",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewHandler_Create_UnknownProduct(t *testing.T) {
	reviews := new(mockReviewRepository)
	router := setupRouter(t, new(mockProductRepository), new(mockOrderRepository), reviews, new(mockUserRepository))

	reviews.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).
		Return(apperrors.NotFound("product", "ghost"))

	rec := doRequest(router, http.MethodPost, "/reviews", map[string]any{
		"user_id":    "u1",
		"product_id": "ghost",
		"score":      3,
		"content":    "x",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReviewHandler_Delete_NoContent(t *testing.T) {
	reviews := new(mockReviewRepository)
	router := setupRouter(t, new(mockProductRepository), new(mockOrderRepository), reviews, new(mockUserRepository))

	reviews.On("Delete", mock.Anything, "rev-001").Return(nil)

	rec := doRequest(router, http.MethodDelete, "/reviews/rev-001", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// --- User Tests ---

func TestUserHandler_Create_OmitsPasswordHash(t *testing.T) {
	users := new(mockUserRepository)
	router := setupRouter(t, new(mockProductRepository), new(mockOrderRepository), new(mockReviewRepository), users)

	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	rec := doRequest(router, http.MethodPost, "/users", map[string]any{
		"name":     "alex",
		"email":    "alex@example.com",
		"password": "azerty",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserHandler_Create_BadEmail(t *testing.T) {
	router := setupRouter(t, new(mockProductRepository), new(mockOrderRepository), new(mockReviewRepository), new(mockUserRepository))

	rec := doRequest(router, http.MethodPost, "/users", map[string]any{
		"name":     "alex",
		"email":    "not-an-email",
		"password": "azerty",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Patch_EmptyBody(t *testing.T) {
	router := setupRouter(t, new(mockProductRepository), new(mockOrderRepository), new(mockReviewRepository), new(mockUserRepository))

	rec := doRequest(router, http.MethodPatch, "/users/user-001", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Delete_NotFound(t *testing.T) {
	users := new(mockUserRepository)
	router := setupRouter(t, new(mockProductRepository), new(mockOrderRepository), new(mockReviewRepository), users)

	users.On("Delete", mock.Anything, "missing").Return(apperrors.NotFound("user", "missing"))

	rec := doRequest(router, http.MethodDelete, "/users/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
