package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/internal/store/repository"
	"github.com/yanis004/WebServices/pkg/database"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
	"github.com/yanis004/WebServices/pkg/pagination"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts a new order.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `
		INSERT INTO orders (id, user_id, product_ids, total, payment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	ctx, end := database.TraceQuery(ctx, "orders.create", query)
	_, err := r.pool.Exec(ctx, query,
		o.ID,
		o.UserID,
		o.ProductIDs,
		o.Total.StringFixed(2),
		o.Payment,
		o.CreatedAt,
		o.UpdatedAt,
	)
	end(err)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

// GetByID retrieves an order by its ID.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	query := `
		SELECT id, user_id, product_ids, total::text, payment, created_at, updated_at
		FROM orders
		WHERE id = $1`

	o, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	return o, nil
}

// List returns a page of orders with the total count.
func (r *OrderRepository) List(ctx context.Context, params pagination.Params) ([]domain.Order, int, error) {
	query := `
		SELECT id, user_id, product_ids, total::text, payment, created_at, updated_at,
			   count(*) OVER() AS total_count
		FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var totalCount int
	orders := make([]domain.Order, 0)

	for rows.Next() {
		var (
			o     domain.Order
			total string
		)

		if err := rows.Scan(
			&o.ID,
			&o.UserID,
			&o.ProductIDs,
			&total,
			&o.Payment,
			&o.CreatedAt,
			&o.UpdatedAt,
			&totalCount,
		); err != nil {
			return nil, 0, fmt.Errorf("scan order row: %w", err)
		}

		if o.Total, err = decimal.NewFromString(total); err != nil {
			return nil, 0, fmt.Errorf("parse order total: %w", err)
		}
		if o.ProductIDs == nil {
			o.ProductIDs = []string{}
		}

		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, totalCount, nil
}

// Update patches an order in place. Nil patch fields fall through to the
// stored values via COALESCE. The total is intentionally left alone.
func (r *OrderRepository) Update(ctx context.Context, id string, patch repository.OrderPatch) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET product_ids = COALESCE($1, product_ids),
			payment = COALESCE($2, payment),
			updated_at = $3
		WHERE id = $4
		RETURNING id, user_id, product_ids, total::text, payment, created_at, updated_at`

	var productIDs []string
	if patch.ProductIDs != nil {
		productIDs = *patch.ProductIDs
	}

	row := r.pool.QueryRow(ctx, query, productIDs, patch.Payment, time.Now().UTC(), id)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", id)
		}
		return nil, fmt.Errorf("update order: %w", err)
	}

	return o, nil
}

// Delete removes an order by its ID.
func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", id)
	}

	return nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o     domain.Order
		total string
	)

	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.ProductIDs,
		&total,
		&o.Payment,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if o.Total, err = decimal.NewFromString(total); err != nil {
		return nil, fmt.Errorf("parse order total: %w", err)
	}
	if o.ProductIDs == nil {
		o.ProductIDs = []string{}
	}

	return &o, nil
}
