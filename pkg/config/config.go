package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds every runtime setting for the WasteWise backend. Values are
// read from the environment with the WASTEWISE_ prefix, e.g.
// WASTEWISE_HTTP_PORT or WASTEWISE_DB_DSN.
type Config struct {
	Environment string `envconfig:"ENV" default:"development"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"wastewise-api"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	HTTP     HTTPConfig
	DB       DBConfig
	Redis    RedisConfig
	Gemini   GeminiConfig
	Limits   LimitConfig
	Features FeatureFlags
}

type HTTPConfig struct {
	Port            int           `envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"20s"`
	IdleTimeout     time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
	AllowedOrigins  []string      `envconfig:"HTTP_ALLOWED_ORIGINS" default:"*"`
}

type DBConfig struct {
	DSN             string        `envconfig:"DB_DSN" default:"host=localhost user=wastewise password=wastewise dbname=wastewise port=5432 sslmode=disable"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"5m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL" default:""`
	Address      string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"REDIS_PASSWORD" default:""`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// GeminiConfig configures the remote completion provider used by the
// chat assistant. An empty APIKey disables the remote call and the
// assistant answers from its local knowledge table only.
type GeminiConfig struct {
	APIKey          string        `envconfig:"GEMINI_API_KEY" default:""`
	Model           string        `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	Timeout         time.Duration `envconfig:"GEMINI_TIMEOUT" default:"8s"`
	Temperature     float32       `envconfig:"GEMINI_TEMPERATURE" default:"0.7"`
	MaxOutputTokens int32         `envconfig:"GEMINI_MAX_OUTPUT_TOKENS" default:"150"`
	TopP            float32       `envconfig:"GEMINI_TOP_P" default:"0.9"`
	TopK            float32       `envconfig:"GEMINI_TOP_K" default:"40"`
}

type LimitConfig struct {
	AssistantWindow      time.Duration `envconfig:"LIMIT_ASSISTANT_WINDOW" default:"60s"`
	AssistantMaxRequests int           `envconfig:"LIMIT_ASSISTANT_MAX_REQUESTS" default:"10"`
	WizardDraftTTL       time.Duration `envconfig:"LIMIT_WIZARD_DRAFT_TTL" default:"30m"`
	IdempotencyTTL       time.Duration `envconfig:"LIMIT_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlags struct {
	// UseSQLite swaps the Postgres driver for an embedded SQLite file,
	// which keeps local demos free of external services.
	UseSQLite  bool   `envconfig:"FEATURE_USE_SQLITE" default:"false"`
	SQLitePath string `envconfig:"FEATURE_SQLITE_PATH" default:"wastewise.db"`

	AutoMigrate bool `envconfig:"FEATURE_AUTO_MIGRATE" default:"false"`

	// DemoTracking makes unknown tracking IDs resolve to a synthetic
	// in-transit order instead of a not-found error.
	DemoTracking bool `envconfig:"FEATURE_DEMO_TRACKING" default:"false"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("WASTEWISE", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid http port %d", c.HTTP.Port)
	}
	if c.Limits.AssistantMaxRequests <= 0 {
		return fmt.Errorf("assistant rate limit must be positive")
	}
	if c.Limits.WizardDraftTTL <= 0 {
		return fmt.Errorf("wizard draft ttl must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// MigrationDialect picks the goose dialect matching the active driver.
func (c *Config) MigrationDialect() string {
	if c.Features.UseSQLite {
		return "sqlite3"
	}
	return "postgres"
}
