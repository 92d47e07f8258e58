package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/PaquitoSoft/small-shop/internal/catalog"
	"github.com/PaquitoSoft/small-shop/internal/importer"
	"github.com/PaquitoSoft/small-shop/pkg/config"
	"github.com/PaquitoSoft/small-shop/pkg/db"
	"github.com/PaquitoSoft/small-shop/pkg/logger"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "importer"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "importer",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.Mongo, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap mongodb", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(context.Background()); err != nil {
			logg.Error(context.Background(), "error closing mongodb", err)
		}
	}()

	catalogRepo, err := catalog.NewRepository(dbClient.Database())
	if err != nil {
		logg.Error(ctx, "failed to create catalog repository", err)
		os.Exit(1)
	}

	imp, err := importer.New(catalogRepo, cfg.Importer, logg)
	if err != nil {
		logg.Error(ctx, "failed to create importer", err)
		os.Exit(1)
	}

	logg.Info(ctx, "starting catalog import")
	if err := imp.Run(ctx); err != nil {
		logg.Error(ctx, "catalog import failed", err)
		os.Exit(1)
	}
	logg.Info(ctx, "catalog import finished")
}
