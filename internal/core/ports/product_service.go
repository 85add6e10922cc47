package ports

import (
	"context"

	"github.com/alshadows/product-catalog/internal/core/domain"
)

// CreateProductInput carries the fields of a new product.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
}

// UpdateProductInput carries a partial update. A nil field leaves the stored
// value untouched; a non-nil field overwrites it, zero values included.
type UpdateProductInput struct {
	Name        *string
	Description *string
	Price       *float64
}

// ListProductsInput carries list parameters. Page is zero-based.
type ListProductsInput struct {
	Page int
	Size int
	Sort string
}

// SearchProductsInput carries search parameters. Page is zero-based.
type SearchProductsInput struct {
	Term string
	Page int
	Size int
}

// ProductService defines use-case operations for the catalog.
type ProductService interface {
	Create(ctx context.Context, input CreateProductInput) (*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, input ListProductsInput) (domain.Page[*domain.Product], error)
	Search(ctx context.Context, input SearchProductsInput) (domain.Page[*domain.Product], error)
}
