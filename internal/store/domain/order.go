package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// taxFactor is the fixed multiplier applied to an order's subtotal.
var taxFactor = decimal.RequireFromString("1.2")

// Order represents a customer order. Total is computed once at creation
// from the product prices and never recomputed on update.
type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	ProductIDs []string        `json:"product_ids"`
	Total      decimal.Decimal `json:"total"`
	Payment    bool            `json:"payment"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// OrderTotal applies the tax factor to a subtotal and rounds half-up to
// two decimal places.
func OrderTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(taxFactor).Round(2)
}
