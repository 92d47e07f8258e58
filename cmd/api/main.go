package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/PaquitoSoft/small-shop/api/controllers"
	"github.com/PaquitoSoft/small-shop/api/routes"
	"github.com/PaquitoSoft/small-shop/internal/cart"
	"github.com/PaquitoSoft/small-shop/internal/catalog"
	"github.com/PaquitoSoft/small-shop/internal/orders"
	"github.com/PaquitoSoft/small-shop/internal/session"
	"github.com/PaquitoSoft/small-shop/pkg/config"
	"github.com/PaquitoSoft/small-shop/pkg/db"
	"github.com/PaquitoSoft/small-shop/pkg/logger"
	"github.com/PaquitoSoft/small-shop/pkg/metrics"
	"github.com/PaquitoSoft/small-shop/pkg/redis"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.Mongo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap mongodb", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(context.Background()); err != nil {
			logg.Error(context.Background(), "error closing mongodb", err)
		}
	}()

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionStore, err := session.NewRedisStore(redisClient, cfg.Session.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create session store", err)
		os.Exit(1)
	}

	catalogRepo, err := catalog.NewRepository(dbClient.Database())
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog repository", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo, cfg.Catalog.FeaturedCount)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	orderArchive, err := orders.NewArchive(sessionStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create order archive", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(sessionStore, catalogService, orderArchive, cfg.Cart.CheckoutDelay)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":     cfg.App.Env,
		"addr":    addr,
		"version": version,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			Version:        version,
			CatalogService: catalogService,
			CartService:    cartService,
			OrderArchive:   orderArchive,
			ReadyChecks: map[string]controllers.Pinger{
				"mongodb": dbClient,
				"redis":   redisClient,
			},
			Registry:    registry,
			HTTPMetrics: httpMetrics,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
