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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yanis004/WebServices/internal/catalog/domain"
	"github.com/yanis004/WebServices/internal/catalog/service"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
	"github.com/yanis004/WebServices/pkg/pagination"
)

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

func setupRouter(repo *mockProductRepository) *chi.Mux {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	svc := service.NewProductService(repo, logger)
	handler := NewProductHandler(svc, logger)

	r := chi.NewRouter()
	r.Route("/products", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Post("/", handler.CreateProduct)
		r.Get("/", handler.ListProducts)
		r.Get("/{id}", handler.GetProduct)
		r.Delete("/{id}", handler.DeleteProduct)
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

func TestCreateProduct_Success(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupRouter(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Return(nil)

	rec := doRequest(router, http.MethodPost, "/products", map[string]any{
		"name":  "Keyboard",
		"about": "A mechanical keyboard",
		"price": 49.90,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateProduct_ValidationFailure(t *testing.T) {
	router := setupRouter(new(mockProductRepository))

	rec := doRequest(router, http.MethodPost, "/products", map[string]any{
		"name":  "Keyboard",
		"price": -1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProduct_NotFound(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupRouter(repo)

	repo.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NotFound("product", "missing"))

	rec := doRequest(router, http.MethodGet, "/products/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProducts_DefaultPagination(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupRouter(repo)

	repo.On("List", mock.Anything, pagination.Params{Page: 1, Limit: 10}).
		Return([]domain.Product{{ID: "a", Name: "Keyboard", Price: 49.90}}, 25, nil)

	rec := doRequest(router, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp pagination.Result[domain.Product]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 25, resp.TotalCount)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.Limit)
	assert.Equal(t, 3, resp.TotalPages)
	assert.True(t, resp.HasNext)
}

func TestDeleteProduct_NoContent(t *testing.T) {
	repo := new(mockProductRepository)
	router := setupRouter(repo)

	repo.On("Delete", mock.Anything, "656e0000000000000000abcd").Return(nil)

	rec := doRequest(router, http.MethodDelete, "/products/656e0000000000000000abcd", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
