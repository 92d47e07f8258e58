package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	pkgerrors "github.com/PaquitoSoft/small-shop/pkg/errors"
)

// Service answers the read-only catalog queries consumed by the HTTP layer
// and by the cart core's product validation.
type Service interface {
	ListCategories(ctx context.Context) ([]Category, error)
	FindCategoryByID(ctx context.Context, id string) (*Category, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error)
	FindProductByID(ctx context.Context, id string) (*Product, error)
	ListFeatured(ctx context.Context) ([]Product, error)
}

type service struct {
	repo          Repository
	featuredCount int64
	randomIndex   func(n int64) int64
}

// NewService builds the catalog lookup service.
func NewService(repo Repository, featuredCount int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if featuredCount <= 0 {
		return nil, fmt.Errorf("featured count must be positive")
	}
	return &service{
		repo:          repo,
		featuredCount: int64(featuredCount),
		randomIndex:   rand.Int63n,
	}, nil
}

func (s *service) ListCategories(ctx context.Context) ([]Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog store failed")
	}
	return categories, nil
}

func (s *service) FindCategoryByID(ctx context.Context, id string) (*Category, error) {
	category, err := s.repo.FindCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Category not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog store failed")
	}
	return category, nil
}

func (s *service) ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	products, err := s.repo.ListProductsByCategory(ctx, categoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog store failed")
	}
	return products, nil
}

func (s *service) FindProductByID(ctx context.Context, id string) (*Product, error) {
	product, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog store failed")
	}
	return product, nil
}

// ListFeatured returns a pseudo-random contiguous window over the product
// collection. Repeated calls may overlap; callers get no disjointness
// guarantee.
func (s *service) ListFeatured(ctx context.Context) ([]Product, error) {
	count, err := s.repo.CountProducts(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog store failed")
	}

	var skip int64
	if span := count - s.featuredCount - 1; span > 0 {
		skip = s.randomIndex(span)
	}

	products, err := s.repo.ListProductsWindow(ctx, skip, s.featuredCount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog store failed")
	}
	return products, nil
}
