// Package repository defines the persistence contracts for the catalog
// service.
package repository

import (
	"context"

	"github.com/yanis004/WebServices/internal/catalog/domain"
	"github.com/yanis004/WebServices/pkg/pagination"
)

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, params pagination.Params) ([]domain.Product, int, error)
	Delete(ctx context.Context, id string) error
}
