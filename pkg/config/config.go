package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "smallshop"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv        = "SMALLSHOP_APP_ENV"
	EnvPort          = "SMALLSHOP_APP_PORT"
	EnvMongoURI      = "SMALLSHOP_MONGO_URI"
	EnvRedisURL      = "SMALLSHOP_REDIS_URL"
	EnvSessionSecret = "SMALLSHOP_SESSION_SECRET"
)

type Config struct {
	App      AppConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Session  SessionConfig
	Cart     CartConfig
	Catalog  CatalogConfig
	Static   StaticConfig
	Importer ImporterConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SMALLSHOP_APP_ENV" required:"true"`
	Port         string `envconfig:"SMALLSHOP_APP_PORT" default:"3003"`
	LogLevel     string `envconfig:"SMALLSHOP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMALLSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type MongoConfig struct {
	URI              string        `envconfig:"SMALLSHOP_MONGO_URI" required:"true"`
	Database         string        `envconfig:"SMALLSHOP_MONGO_DATABASE" default:"small-shop"`
	ConnectTimeout   time.Duration `envconfig:"SMALLSHOP_MONGO_CONNECT_TIMEOUT" default:"10s"`
	SelectionTimeout time.Duration `envconfig:"SMALLSHOP_MONGO_SELECTION_TIMEOUT" default:"5s"`
	MaxPoolSize      uint64        `envconfig:"SMALLSHOP_MONGO_MAX_POOL_SIZE" default:"100"`
	MinPoolSize      uint64        `envconfig:"SMALLSHOP_MONGO_MIN_POOL_SIZE" default:"10"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SMALLSHOP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SMALLSHOP_REDIS_ADDR"`
	Password     string        `envconfig:"SMALLSHOP_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMALLSHOP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMALLSHOP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMALLSHOP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMALLSHOP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMALLSHOP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMALLSHOP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type SessionConfig struct {
	CookieName string        `envconfig:"SMALLSHOP_SESSION_COOKIE_NAME" default:"shop-session"`
	Secret     string        `envconfig:"SMALLSHOP_SESSION_SECRET" required:"true"`
	TTL        time.Duration `envconfig:"SMALLSHOP_SESSION_TTL" default:"72h"`
	Secure     bool          `envconfig:"SMALLSHOP_SESSION_COOKIE_SECURE" default:"false"`
}

type CartConfig struct {
	// CheckoutDelay models the payment/fulfillment call checkout waits on.
	CheckoutDelay time.Duration `envconfig:"SMALLSHOP_CHECKOUT_DELAY" default:"2s"`
}

type CatalogConfig struct {
	FeaturedCount int `envconfig:"SMALLSHOP_FEATURED_PRODUCTS_COUNT" default:"8"`
}

type StaticConfig struct {
	Dir string `envconfig:"SMALLSHOP_STATIC_DIR" default:"data"`
}

type ImporterConfig struct {
	BaseURL     string        `envconfig:"SMALLSHOP_IMPORTER_BASE_URL" default:"http://www2.hm.com/en_gb"`
	ImageDir    string        `envconfig:"SMALLSHOP_IMPORTER_IMAGE_DIR" default:"data/images"`
	HTTPTimeout time.Duration `envconfig:"SMALLSHOP_IMPORTER_HTTP_TIMEOUT" default:"30s"`
	Downloaders int           `envconfig:"SMALLSHOP_IMPORTER_DOWNLOADERS" default:"4"`
	PageSize    int           `envconfig:"SMALLSHOP_IMPORTER_PAGE_SIZE" default:"100"`
}
