package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alshadows/product-catalog/internal/core/domain"
	"github.com/alshadows/product-catalog/internal/core/ports"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultSort     = "id"

	// MaxPage bounds page*size so the store offset never overflows.
	MaxPage = 1_000_000
)

// ProductCache abstracts the read-through product cache (Redis).
//
// Every Invalidate advances the id's version. SetIfVersion stores p only while
// the version still equals the one read before loading p from the store, so a
// read that overlaps an update or delete never re-caches the old snapshot.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, bool, error)
	Version(ctx context.Context, id string) (int64, error)
	SetIfVersion(ctx context.Context, p *domain.Product, version int64) error
	Invalidate(ctx context.Context, id string) error
}

type ProductService struct {
	repo  ports.ProductRepository
	cache ProductCache
	log   zerolog.Logger
	now   func() time.Time
}

// NewProductService wires the catalog rules over repo. cache may be nil.
func NewProductService(repo ports.ProductRepository, cache ProductCache, log zerolog.Logger) *ProductService {
	if cache == nil {
		cache = noopCache{}
	}
	return &ProductService{
		repo:  repo,
		cache: cache,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new product. Names are unique across the catalog.
func (s *ProductService) Create(ctx context.Context, input ports.CreateProductInput) (*domain.Product, error) {
	exists, err := s.repo.ExistsByName(ctx, input.Name)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	if exists {
		return nil, domain.NewProductAlreadyExists(input.Name)
	}

	now := s.now()
	p := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return nil, domain.NewProductAlreadyExists(input.Name)
		}
		s.log.Error().Err(err).Str("name", input.Name).Msg("failed to create product")
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.event(ctx).Str("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return p, nil
}

// Get returns the product with the given id.
func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if cached, ok, err := s.cache.Get(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("product_id", id).Msg("product cache read failed")
	} else if ok {
		return cached, nil
	}

	// The version must be read before the store so a concurrent invalidation
	// is detected when writing back.
	version, verErr := s.cache.Version(ctx, id)
	if verErr != nil {
		s.log.Warn().Err(verErr).Str("product_id", id).Msg("product cache version read failed")
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewProductNotFound(id)
		}
		return nil, fmt.Errorf("get product: %w", err)
	}

	if verErr == nil {
		if err := s.cache.SetIfVersion(ctx, p, version); err != nil {
			s.log.Warn().Err(err).Str("product_id", id).Msg("product cache write failed")
		}
	}
	return p, nil
}

// Update merges the supplied fields onto the stored product. ID and
// CreatedAt never change; UpdatedAt is refreshed.
func (s *ProductService) Update(ctx context.Context, id string, input ports.UpdateProductInput) (*domain.Product, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewProductNotFound(id)
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	if input.Name != nil && *input.Name != existing.Name {
		taken, err := s.repo.ExistsByName(ctx, *input.Name)
		if err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
		if taken {
			return nil, domain.NewProductNameTaken(*input.Name)
		}
	}

	updated := mergeProduct(*existing, input)
	updated.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateName):
			return nil, domain.NewProductNameTaken(updated.Name)
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.NewProductNotFound(id)
		}
		s.log.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.invalidate(ctx, id)
	s.event(ctx).Str("product_id", id).Msg("product updated")
	return &updated, nil
}

// Delete removes the product permanently.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	exists, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if !exists {
		return domain.NewProductNotFound(id)
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewProductNotFound(id)
		}
		s.log.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return fmt.Errorf("delete product: %w", err)
	}

	s.invalidate(ctx, id)
	s.event(ctx).Str("product_id", id).Msg("product deleted")
	return nil
}

// List returns one page of products ordered ascending by input.Sort.
func (s *ProductService) List(ctx context.Context, input ports.ListProductsInput) (domain.Page[*domain.Product], error) {
	req := pageRequest(input.Page, input.Size, input.Sort)
	s.log.Debug().Int("page", req.Page).Int("size", req.Size).Str("sort", req.Sort).Msg("listing products")

	page, err := s.repo.List(ctx, req)
	if err != nil {
		return domain.Page[*domain.Product]{}, fmt.Errorf("list products: %w", err)
	}
	return page, nil
}

// Search returns one page of products whose name or description match the term.
func (s *ProductService) Search(ctx context.Context, input ports.SearchProductsInput) (domain.Page[*domain.Product], error) {
	req := pageRequest(input.Page, input.Size, DefaultSort)
	s.log.Debug().Str("term", input.Term).Int("page", req.Page).Int("size", req.Size).Msg("searching products")

	page, err := s.repo.Search(ctx, input.Term, req)
	if err != nil {
		return domain.Page[*domain.Product]{}, fmt.Errorf("search products: %w", err)
	}
	return page, nil
}

func (s *ProductService) invalidate(ctx context.Context, id string) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.log.Warn().Err(err).Str("product_id", id).Msg("product cache invalidation failed")
	}
}

// event starts an info log line annotated with the acting principal, if known.
func (s *ProductService) event(ctx context.Context) *zerolog.Event {
	e := s.log.Info()
	if p, ok := domain.PrincipalFrom(ctx); ok {
		e = e.Str("actor", p.Username)
	}
	return e
}

// mergeProduct copies every non-nil field of input onto p.
func mergeProduct(p domain.Product, input ports.UpdateProductInput) domain.Product {
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	return p
}

func pageRequest(page, size int, sort string) domain.PageRequest {
	if page < 0 {
		page = 0
	}
	if page > MaxPage {
		page = MaxPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if sort == "" {
		sort = DefaultSort
	}
	return domain.PageRequest{Page: page, Size: size, Sort: sort}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (*domain.Product, bool, error) { return nil, false, nil }
func (noopCache) Version(context.Context, string) (int64, error)             { return 0, nil }
func (noopCache) SetIfVersion(context.Context, *domain.Product, int64) error { return nil }
func (noopCache) Invalidate(context.Context, string) error                   { return nil }
