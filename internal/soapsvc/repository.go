package soapsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yanis004/WebServices/pkg/database"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
)

// Product is the SOAP-facing product shape. It maps onto the same
// products table the store service owns; review aggregates are left to
// their defaults on insert and never touched here.
type Product struct {
	ID        string
	Name      string
	About     string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// productPatch carries the optional fields of a partial product update.
type productPatch struct {
	Name  *string
	About *string
	Price *decimal.Decimal
}

// ProductRepository persists SOAP product operations in PostgreSQL.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product row with empty review aggregates.
func (r *ProductRepository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (id, name, about, price, review_ids, total_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, '{}', 0, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.About,
		p.Price.StringFixed(2),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// Patch updates only the provided fields via COALESCE and returns the
// resulting row.
func (r *ProductRepository) Patch(ctx context.Context, id string, patch productPatch) (*Product, error) {
	query := `
		UPDATE products
		SET name = COALESCE($1, name),
			about = COALESCE($2, about),
			price = COALESCE($3, price),
			updated_at = $4
		WHERE id = $5
		RETURNING id, name, about, price::text, created_at, updated_at`

	var priceArg *string
	if patch.Price != nil {
		s := patch.Price.StringFixed(2)
		priceArg = &s
	}

	var (
		p     Product
		price string
	)
	err := r.pool.QueryRow(ctx, query, patch.Name, patch.About, priceArg, time.Now().UTC(), id).Scan(
		&p.ID,
		&p.Name,
		&p.About,
		&price,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("patch product: %w", err)
	}

	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse product price: %w", err)
	}

	return &p, nil
}

// Delete removes a product by its ID.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", id)
	}

	return nil
}
