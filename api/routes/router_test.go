package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PaquitoSoft/small-shop/internal/cart"
	"github.com/PaquitoSoft/small-shop/internal/catalog"
	"github.com/PaquitoSoft/small-shop/pkg/config"
	pkgerrors "github.com/PaquitoSoft/small-shop/pkg/errors"
)

type stubCatalog struct{}

func (stubCatalog) ListCategories(ctx context.Context) ([]catalog.Category, error) {
	return []catalog.Category{{ID: "women_dresses", Name: "Dresses"}}, nil
}

func (stubCatalog) FindCategoryByID(ctx context.Context, id string) (*catalog.Category, error) {
	return &catalog.Category{ID: id, Name: "Dresses"}, nil
}

func (stubCatalog) ListProductsByCategory(ctx context.Context, categoryID string) ([]catalog.Product, error) {
	return []catalog.Product{}, nil
}

func (stubCatalog) FindProductByID(ctx context.Context, id string) (*catalog.Product, error) {
	return &catalog.Product{ID: id}, nil
}

func (stubCatalog) ListFeatured(ctx context.Context) ([]catalog.Product, error) {
	return []catalog.Product{}, nil
}

type stubCart struct{}

func (stubCart) GetCart(ctx context.Context, sessionID string) (*cart.Cart, error) {
	return &cart.Cart{OrderID: "order-1", OrderItems: []cart.OrderItem{}}, nil
}

func (stubCart) AddItem(ctx context.Context, sessionID string, input cart.AddItemInput) (*cart.Cart, error) {
	return &cart.Cart{OrderID: "order-1"}, nil
}

func (stubCart) UpdateItem(ctx context.Context, sessionID, itemID string, quantity int) (*cart.Cart, error) {
	return &cart.Cart{OrderID: "order-1"}, nil
}

func (stubCart) RemoveItem(ctx context.Context, sessionID, itemID string) (*cart.Cart, error) {
	return &cart.Cart{OrderID: "order-1"}, nil
}

func (stubCart) Checkout(ctx context.Context, sessionID string, input cart.CheckoutInput) (string, error) {
	return "order-1", nil
}

type stubOrderArchive struct{}

func (stubOrderArchive) Record(ctx context.Context, sessionID string, order cart.Order) error {
	return nil
}

func (stubOrderArchive) Get(ctx context.Context, sessionID, orderID string) (*cart.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order ("+orderID+") not found")
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		Session: config.SessionConfig{
			CookieName: "shop-session",
			Secret:     "router-test-secret",
			TTL:        time.Hour,
		},
		Static: config.StaticConfig{Dir: t.TempDir()},
	}
	return NewRouter(Deps{
		Config:         cfg,
		Version:        "test",
		CatalogService: stubCatalog{},
		CartService:    stubCart{},
		OrderArchive:   stubOrderArchive{},
	})
}

func TestRouterVersion(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/version", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body["version"] != "test" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestRouterHealthLive(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterCatalogRoutes(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	for _, path := range []string{
		"/catalog/category",
		"/catalog/category/women_dresses",
		"/catalog/category/women_dresses/products",
		"/catalog/product/0202017039",
		"/catalog/featured-products",
	} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestRouterCartRouteMintsSessionCookie(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/shop-cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "shop-session" {
		t.Fatalf("expected a minted session cookie, got %v", cookies)
	}
}

func TestRouterCatalogRouteSkipsSession(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/catalog/category", nil))

	if len(resp.Result().Cookies()) != 0 {
		t.Fatal("catalog reads must stay anonymous")
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	t.Parallel()

	router := testRouter(t)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
