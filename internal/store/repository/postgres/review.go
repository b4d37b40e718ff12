package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/internal/store/repository"
	"github.com/yanis004/WebServices/pkg/database"
	apperrors "github.com/yanis004/WebServices/pkg/errors"
)

// ReviewRepository implements repository.ReviewRepository using PostgreSQL.
type ReviewRepository struct {
	pool database.DBTX
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool database.DBTX) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

// Create inserts the review and updates the product aggregates in one
// transaction, so a review can never exist without being counted and the
// score increment is pushed down to the database rather than computed from
// a stale read.
func (r *ReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
		INSERT INTO reviews (id, user_id, product_id, score, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = tx.Exec(ctx, insertQuery,
		review.ID,
		review.UserID,
		review.ProductID,
		review.Score,
		review.Content,
		review.CreatedAt,
		review.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}

	aggregateQuery := `
		UPDATE products
		SET review_ids = array_append(review_ids, $1),
			total_score = total_score + $2,
			updated_at = $3
		WHERE id = $4`

	ct, err := tx.Exec(ctx, aggregateQuery, review.ID, review.Score, review.UpdatedAt, review.ProductID)
	if err != nil {
		return fmt.Errorf("update product aggregates: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("product", review.ProductID)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByID retrieves a review by its ID.
func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	query := `
		SELECT id, user_id, product_id, score, content, created_at, updated_at
		FROM reviews
		WHERE id = $1`

	var rv domain.Review
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&rv.ID,
		&rv.UserID,
		&rv.ProductID,
		&rv.Score,
		&rv.Content,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}

	return &rv, nil
}

// ListByProductID returns every review for the given product, oldest first.
func (r *ReviewRepository) ListByProductID(ctx context.Context, productID string) ([]domain.Review, error) {
	query := `
		SELECT id, user_id, product_id, score, content, created_at, updated_at
		FROM reviews
		WHERE product_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(
			&rv.ID,
			&rv.UserID,
			&rv.ProductID,
			&rv.Score,
			&rv.Content,
			&rv.CreatedAt,
			&rv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

// Update patches a review in place. Product aggregates are not adjusted:
// total_score keeps the score the review was created with.
func (r *ReviewRepository) Update(ctx context.Context, id string, patch repository.ReviewPatch) (*domain.Review, error) {
	query := `
		UPDATE reviews
		SET score = COALESCE($1, score),
			content = COALESCE($2, content),
			updated_at = $3
		WHERE id = $4
		RETURNING id, user_id, product_id, score, content, created_at, updated_at`

	var rv domain.Review
	err := r.pool.QueryRow(ctx, query, patch.Score, patch.Content, time.Now().UTC(), id).Scan(
		&rv.ID,
		&rv.UserID,
		&rv.ProductID,
		&rv.Score,
		&rv.Content,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("review", id)
		}
		return nil, fmt.Errorf("update review: %w", err)
	}

	return &rv, nil
}

// Delete removes a review by its ID, leaving the product aggregates as
// they were.
func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("review", id)
	}

	return nil
}
