package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PaquitoSoft/small-shop/api/responses"
	"github.com/PaquitoSoft/small-shop/internal/catalog"
	"github.com/PaquitoSoft/small-shop/pkg/logger"
)

// CategoryList returns every navigable category.
func CategoryList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		categories, err := svc.ListCategories(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, categories)
	}
}

// CategoryDetail returns one category by id.
func CategoryDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		category, err := svc.FindCategoryByID(ctx, chi.URLParam(r, "categoryId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, category)
	}
}

// CategoryProducts lists the products filed under a category.
func CategoryProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		products, err := svc.ListProductsByCategory(ctx, chi.URLParam(r, "categoryId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ProductDetail returns one product by id.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		product, err := svc.FindProductByID(ctx, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// FeaturedProducts returns the rotating storefront highlight window.
func FeaturedProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		products, err := svc.ListFeatured(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}
