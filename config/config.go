package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	CatalogSeed     = "seed"
	CatalogFile     = "file"
	CatalogPostgres = "postgres"
)

type Config struct {
	HTTPAddr       string   `env:"HTTP_ADDR" envDefault:":5200"`
	Env            string   `env:"APP_ENV" envDefault:"development"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	// Empty disables the gateway check.
	ServiceToken string `env:"QUEST_SERVICE_TOKEN"`

	Catalog struct {
		Source       string        `env:"CATALOG_SOURCE" envDefault:"seed"`
		File         string        `env:"CATALOG_FILE"`
		DatabaseURL  string        `env:"DATABASE_URL"`
		SyncURL      string        `env:"CATALOG_SYNC_URL"`
		SyncInterval time.Duration `env:"CATALOG_SYNC_INTERVAL" envDefault:"1m"`
	}

	Wallet struct {
		DetectAttempts uint          `env:"WALLET_DETECT_ATTEMPTS" envDefault:"10"`
		DetectInterval time.Duration `env:"WALLET_DETECT_INTERVAL" envDefault:"100ms"`
		// Zero disables the periodic availability refresh.
		RefreshInterval time.Duration `env:"WALLET_REFRESH_INTERVAL" envDefault:"30s"`
	}

	LeaderboardLogInterval time.Duration `env:"LEADERBOARD_LOG_INTERVAL" envDefault:"5m"`
	AllowRepeatCompletion  bool          `env:"QUEST_ALLOW_REPEAT_COMPLETION" envDefault:"false"`

	R2 struct {
		AccountID       string `env:"ACCOUNT_ID"`
		AccessKeyID     string `env:"ACCESS_KEY_ID"`
		AccessKeySecret string `env:"ACCESS_KEY_SECRET"`
		BucketName      string `env:"BUCKET_NAME"`
	} `envPrefix:"R2_"`
	CDNBaseURL string `env:"CDN_BASE_URL"`
}

// UploadsEnabled reports whether every R2 credential is present.
func (c *Config) UploadsEnabled() bool {
	return c.R2.AccountID != "" && c.R2.AccessKeyID != "" && c.R2.AccessKeySecret != "" &&
		c.R2.BucketName != "" && c.CDNBaseURL != ""
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case CatalogSeed:
	case CatalogFile:
		if c.Catalog.File == "" {
			return errors.New("CATALOG_FILE is required when CATALOG_SOURCE=file")
		}
	case CatalogPostgres:
		if c.Catalog.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required when CATALOG_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.Catalog.Source)
	}
	if c.Catalog.SyncURL != "" && c.Catalog.SyncInterval <= 0 {
		return errors.New("CATALOG_SYNC_INTERVAL must be positive")
	}
	return nil
}
