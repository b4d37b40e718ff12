package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/yanis004/WebServices/internal/store/domain"
	"github.com/yanis004/WebServices/internal/store/repository"
)

// Pricer derives order totals from stored product prices.
type Pricer struct {
	products repository.ProductRepository
}

// NewPricer creates a pricer backed by the given product repository.
func NewPricer(products repository.ProductRepository) *Pricer {
	return &Pricer{products: products}
}

// Quote sums the unit prices of the referenced products and applies the
// tax factor. Product IDs with no matching row contribute nothing to the
// subtotal; duplicates count once per occurrence.
func (p *Pricer) Quote(ctx context.Context, productIDs []string) (decimal.Decimal, error) {
	prices, err := p.products.PricesByIDs(ctx, productIDs)
	if err != nil {
		return decimal.Zero, fmt.Errorf("load product prices: %w", err)
	}

	subtotal := decimal.Zero
	for _, id := range productIDs {
		if price, ok := prices[id]; ok {
			subtotal = subtotal.Add(price)
		}
	}

	return domain.OrderTotal(subtotal), nil
}
