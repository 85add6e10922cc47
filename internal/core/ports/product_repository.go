package ports

import (
	"context"

	"github.com/alshadows/product-catalog/internal/core/domain"
)

// ProductRepository defines persistence operations for products.
//
// Implementations must enforce name uniqueness themselves and report a
// collision as domain.ErrDuplicateName; the service-level check only gives
// a better error in the common case.
type ProductRepository interface {
	// Create stores p and assigns p.ID.
	Create(ctx context.Context, p *domain.Product) error
	// FindByID returns domain.ErrNotFound when no product has the id.
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	// Update overwrites every mutable field of the stored product with p's.
	Update(ctx context.Context, p *domain.Product) error
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context, req domain.PageRequest) (domain.Page[*domain.Product], error)
	// Search matches term against name or description, case-insensitively.
	Search(ctx context.Context, term string, req domain.PageRequest) (domain.Page[*domain.Product], error)
}
