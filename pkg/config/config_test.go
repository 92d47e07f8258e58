package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Success(t *testing.T) {
	setMinimalEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.App.Env != "production" {
		t.Fatalf("expected App.Env to be production, got %q", cfg.App.Env)
	}
	if cfg.App.Port != "3003" {
		t.Fatalf("expected default port 3003, got %q", cfg.App.Port)
	}
	if cfg.Mongo.Database != "small-shop" {
		t.Fatalf("unexpected mongo database: %q", cfg.Mongo.Database)
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Fatalf("unexpected Redis URL: %q", cfg.Redis.URL)
	}
	if cfg.Session.TTL != 72*time.Hour {
		t.Fatalf("expected session TTL 72h, got %v", cfg.Session.TTL)
	}
	if cfg.Cart.CheckoutDelay != 2*time.Second {
		t.Fatalf("expected checkout delay 2s, got %v", cfg.Cart.CheckoutDelay)
	}
	if cfg.Catalog.FeaturedCount != 8 {
		t.Fatalf("expected featured count 8, got %d", cfg.Catalog.FeaturedCount)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setMinimalEnv(t)
	if err := os.Unsetenv(EnvSessionSecret); err != nil {
		t.Fatalf("failed to unset %s: %v", EnvSessionSecret, err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected missing required env to return an error")
	}
}

func setMinimalEnv(t *testing.T) {
	t.Helper()

	t.Setenv(EnvAppEnv, "production")
	t.Setenv(EnvMongoURI, "mongodb://localhost:27017")
	t.Setenv(EnvRedisURL, "redis://localhost:6379/0")
	t.Setenv(EnvSessionSecret, "secret")
}

func TestAppConfigEnvHelpers(t *testing.T) {
	devConfig := AppConfig{Env: "DEV"}
	if !devConfig.IsDev() {
		t.Fatalf("expected IsDev true for %q", devConfig.Env)
	}
	if devConfig.IsProd() {
		t.Fatalf("expected IsProd false for %q", devConfig.Env)
	}

	prodConfig := AppConfig{Env: "production"}
	if !prodConfig.IsProd() {
		t.Fatalf("expected IsProd true for %q", prodConfig.Env)
	}
}
