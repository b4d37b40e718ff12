// Package repository defines the persistence contracts for the store
// service. Implementations live in subpackages named after the backing
// engine.
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/pkg/pagination"
)

// OrderPatch carries the mutable fields of a partial order update. A nil
// field leaves the stored value untouched.
type OrderPatch struct {
	ProductIDs *[]string
	Payment    *bool
}

// ReviewPatch carries the mutable fields of a partial review update.
// Patching a review does not touch the product aggregates.
type ReviewPatch struct {
	Score   *int
	Content *string
}

// UserPatch carries the mutable fields of a partial user update.
// Password, when set, must already be hashed.
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, params pagination.Params) ([]domain.Product, int, error)
	Delete(ctx context.Context, id string) error

	// PricesByIDs returns the unit price for each requested product that
	// exists. Unknown IDs are absent from the result, not an error.
	PricesByIDs(ctx context.Context, ids []string) (map[string]decimal.Decimal, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context, params pagination.Params) ([]domain.Order, int, error)
	Update(ctx context.Context, id string, patch OrderPatch) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}

type ReviewRepository interface {
	// Create inserts the review and folds it into the product aggregates
	// (review_ids append, total_score increment) in a single transaction.
	Create(ctx context.Context, review *domain.Review) error
	GetByID(ctx context.Context, id string) (*domain.Review, error)
	ListByProductID(ctx context.Context, productID string) ([]domain.Review, error)
	Update(ctx context.Context, id string, patch ReviewPatch) (*domain.Review, error)
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context, params pagination.Params) ([]domain.User, int, error)
	Replace(ctx context.Context, user *domain.User) error
	Patch(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
