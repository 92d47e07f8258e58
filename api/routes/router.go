package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PaquitoSoft/small-shop/api/controllers"
	"github.com/PaquitoSoft/small-shop/api/middleware"
	"github.com/PaquitoSoft/small-shop/internal/cart"
	"github.com/PaquitoSoft/small-shop/internal/catalog"
	"github.com/PaquitoSoft/small-shop/internal/orders"
	"github.com/PaquitoSoft/small-shop/pkg/config"
	"github.com/PaquitoSoft/small-shop/pkg/logger"
	"github.com/PaquitoSoft/small-shop/pkg/metrics"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	Version        string
	CatalogService catalog.Service
	CartService    cart.Service
	OrderArchive   orders.Archive
	ReadyChecks    map[string]controllers.Pinger
	Registry       *prometheus.Registry
	HTTPMetrics    *metrics.HTTPMetrics
}

// NewRouter wires the whole HTTP surface. The session middleware runs only
// on cart routes; catalog reads stay anonymous.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	r.Get("/version", controllers.Version(deps.Version))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(deps.Logger, deps.ReadyChecks))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/category", controllers.CategoryList(deps.CatalogService, deps.Logger))
		r.Get("/category/{categoryId}", controllers.CategoryDetail(deps.CatalogService, deps.Logger))
		r.Get("/category/{categoryId}/products", controllers.CategoryProducts(deps.CatalogService, deps.Logger))
		r.Get("/product/{productId}", controllers.ProductDetail(deps.CatalogService, deps.Logger))
		r.Get("/featured-products", controllers.FeaturedProducts(deps.CatalogService, deps.Logger))
	})

	r.Route("/shop-cart", func(r chi.Router) {
		r.Use(middleware.Session(deps.Config.Session, deps.Logger))
		r.Get("/", controllers.CartFetch(deps.CartService, deps.Logger))
		r.Post("/product", controllers.CartAddProduct(deps.CartService, deps.Logger))
		r.Put("/order-item", controllers.CartUpdateOrderItem(deps.CartService, deps.Logger))
		r.Delete("/order-item/{orderItemId}", controllers.CartRemoveOrderItem(deps.CartService, deps.Logger))
		r.Post("/checkout", controllers.CartCheckout(deps.CartService, deps.Logger))
		r.Get("/order-detail/{orderId}", controllers.OrderDetail(deps.OrderArchive, deps.Logger))
	})

	fileServer := http.FileServer(http.Dir(deps.Config.Static.Dir))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	return r
}
