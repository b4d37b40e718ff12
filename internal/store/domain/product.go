package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product. ReviewIDs and TotalScore are
// denormalized aggregates maintained on review creation: the review ID is
// appended and the submitted score added to the running total.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	About      string          `json:"about"`
	Price      decimal.Decimal `json:"price"`
	ReviewIDs  []string        `json:"review_ids"`
	TotalScore int             `json:"total_score"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ProductWithReviews is the composite read model for a single product:
// the product row merged with every review referencing it.
type ProductWithReviews struct {
	Product
	Reviews []Review `json:"reviews"`
}
