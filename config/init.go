package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/customeros/webmail/internal/logger"
	"github.com/customeros/webmail/internal/tracing"
)

type Config struct {
	AppConfig      *AppConfig
	GmailConfig    *GmailConfig
	CircuitBreaker *CircuitBreakerConfig
	ArchiveConfig  *ArchiveConfig
	Logger         *logger.Config
	Tracing        *tracing.JaegerConfig
}

func NewConfig() *Config {
	return &Config{
		AppConfig:      &AppConfig{},
		GmailConfig:    &GmailConfig{},
		CircuitBreaker: &CircuitBreakerConfig{},
		ArchiveConfig:  &ArchiveConfig{},
		Logger:         &logger.Config{},
		Tracing:        &tracing.JaegerConfig{},
	}
}

func InitConfig() (*Config, error) {
	config := NewConfig()

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		return nil, errors.Wrap(err, "error loading webmail config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.GmailConfig.DefaultPageSize <= 0 || c.GmailConfig.MaxPageSize < c.GmailConfig.DefaultPageSize {
		return errors.Errorf("invalid page sizes: default %d, max %d", c.GmailConfig.DefaultPageSize, c.GmailConfig.MaxPageSize)
	}
	if c.GmailConfig.MaxBatchIDs <= 0 {
		return errors.New("GMAIL_MAX_BATCH_IDS must be positive")
	}
	if c.GmailConfig.MaxConcurrentFetches <= 0 {
		return errors.New("GMAIL_MAX_CONCURRENT_FETCHES must be positive")
	}
	if c.ArchiveConfig.Enabled {
		switch c.ArchiveConfig.Provider {
		case "r2":
			if c.ArchiveConfig.R2AccountID == "" {
				return errors.New("CLOUDFLARE_R2_ACCOUNT_ID is required for the r2 sent archive")
			}
		case "s3":
		default:
			return errors.Errorf("unknown sent archive provider %q", c.ArchiveConfig.Provider)
		}
		if c.ArchiveConfig.AccessKeyID == "" || c.ArchiveConfig.AccessKeySecret == "" {
			return errors.New("sent archive credentials are required when the archive is enabled")
		}
	}
	return nil
}
