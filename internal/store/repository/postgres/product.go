package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/pkg/database"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
	"github.com/yanis004/WebServices/pkg/pagination"
)

// ProductRepository implements repository.ProductRepository using PostgreSQL.
//
// Prices travel as text on the wire (inserted from a fixed-point string,
// selected with a ::text cast) so the numeric column never loses precision
// to a float round-trip.
type ProductRepository struct {
	pool database.DBTX
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool database.DBTX) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts a new product with empty review aggregates.
func (r *ProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (id, name, about, price, review_ids, total_score, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.pool.Exec(ctx, query,
		p.ID,
		p.Name,
		p.About,
		p.Price.StringFixed(2),
		p.ReviewIDs,
		p.TotalScore,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}

	return nil
}

// GetByID retrieves a product by its ID.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `
		SELECT id, name, about, price::text, review_ids, total_score, created_at, updated_at
		FROM products
		WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("product", id)
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}

	return p, nil
}

// List returns a page of products with the total count.
func (r *ProductRepository) List(ctx context.Context, params pagination.Params) ([]domain.Product, int, error) {
	query := `
		SELECT id, name, about, price::text, review_ids, total_score, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM products
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var totalCount int
	products := make([]domain.Product, 0)

	for rows.Next() {
		var (
			p     domain.Product
			price string
		)

		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.About,
			&price,
			&p.ReviewIDs,
			&p.TotalScore,
			&p.CreatedAt,
			&p.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product row: %w", err)
		}

		if p.Price, err = decimal.NewFromString(price); err != nil {
			return nil, 0, fmt.Errorf("parse product price: %w", err)
		}
		if p.ReviewIDs == nil {
			p.ReviewIDs = []string{}
		}

		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate product rows: %w", err)
	}

	return products, totalCount, nil
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

// PricesByIDs returns the unit price for each requested product that exists.
// IDs with no matching row are simply absent from the result.
func (r *ProductRepository) PricesByIDs(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	query := `SELECT id, price::text FROM products WHERE id = ANY($1)`

	ctx, end := database.TraceQuery(ctx, "products.prices_by_ids", query)
	rows, err := r.pool.Query(ctx, query, ids)
	end(err)
	if err != nil {
		return nil, fmt.Errorf("query product prices: %w", err)
	}
	defer rows.Close()

	prices := make(map[string]decimal.Decimal, len(ids))
	for rows.Next() {
		var (
			id    string
			price string
		)
		if err := rows.Scan(&id, &price); err != nil {
			return nil, fmt.Errorf("scan product price: %w", err)
		}

		d, err := decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse product price: %w", err)
		}
		prices[id] = d
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate price rows: %w", err)
	}

	return prices, nil
}

// scanProduct scans a single product row including the text-cast price.
func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p     domain.Product
		price string
	)

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.About,
		&price,
		&p.ReviewIDs,
		&p.TotalScore,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if p.Price, err = decimal.NewFromString(price); err != nil {
		return nil, fmt.Errorf("parse product price: %w", err)
	}
	if p.ReviewIDs == nil {
		p.ReviewIDs = []string{}
	}

	return &p, nil
}
