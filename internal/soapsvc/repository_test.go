package soapsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanis004/WebServices/pkg/database"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
)

func newProductRepo(t *testing.T) (*ProductRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	return NewProductRepository(mock), mock
}

func productColumns() []string {
	return []string{"id", "name", "about", "price", "created_at", "updated_at"}
}

func TestProductRepository_Create_Success(t *testing.T) {
	repo, mock := newProductRepo(t)

	now := time.Now().UTC().Truncate(time.Microsecond)
	p := &Product{
		ID:        "prod-001",
		Name:      "Keyboard",
		About:     "Mechanical, hot-swappable",
		Price:     decimal.RequireFromString("59.9"),
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec("INSERT INTO products").
		WithArgs(p.ID, p.Name, p.About, "59.90", p.CreatedAt, p.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), p)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

// Omitted fields must reach the database as NULL so COALESCE keeps the
// current values.
func TestProductRepository_Patch_PartialFields(t *testing.T) {
	repo, mock := newProductRepo(t)

	now := time.Now().UTC().Truncate(time.Microsecond)
	name := "Keyboard v2"

	mock.ExpectQuery("UPDATE products").
		WithArgs(&name, (*string)(nil), (*string)(nil), pgxmock.AnyArg(), "prod-001").
		WillReturnRows(pgxmock.NewRows(productColumns()).
			AddRow("prod-001", name, "Mechanical", "59.90", now, now))

	got, err := repo.Patch(context.Background(), "prod-001", productPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, "59.90", got.Price.StringFixed(2))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Patch_NotFound(t *testing.T) {
	repo, mock := newProductRepo(t)

	name := "ghost"
	mock.ExpectQuery("UPDATE products").
		WithArgs(&name, (*string)(nil), (*string)(nil), pgxmock.AnyArg(), "missing").
		WillReturnRows(pgxmock.NewRows(productColumns()))

	_, err := repo.Patch(context.Background(), "missing", productPatch{Name: &name})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	repo, mock := newProductRepo(t)

	mock.ExpectExec("DELETE FROM products").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
