package config

import (
	"time"
)

type AppConfig struct {
	APIPort          string `env:"PORT" envDefault:"12222"`
	APIKey           string `env:"API_KEY"`
	SessionJWTSecret string `env:"SESSION_JWT_SECRET"`
	DisplayTimezone  string `env:"DISPLAY_TIMEZONE" envDefault:"UTC"`
}

type GmailConfig struct {
	BaseURL           string `env:"GMAIL_BASE_URL" envDefault:"https://gmail.googleapis.com/"`
	DefaultPageSize   int64  `env:"GMAIL_DEFAULT_PAGE_SIZE" envDefault:"20"`
	MaxPageSize       int64  `env:"GMAIL_MAX_PAGE_SIZE" envDefault:"500"`
	MaxAttachmentSize int    `env:"GMAIL_MAX_ATTACHMENT_SIZE" envDefault:"36700160"`
	MaxBatchIDs       int    `env:"GMAIL_MAX_BATCH_IDS" envDefault:"100"`

	// upper bound of concurrent metadata fetches for a single list request
	MaxConcurrentFetches int `env:"GMAIL_MAX_CONCURRENT_FETCHES" envDefault:"10"`
}

type CircuitBreakerConfig struct {
	Enabled             bool          `env:"GMAIL_CB_ENABLED" envDefault:"true"`
	MaxRequests         uint32        `env:"GMAIL_CB_MAX_REQUESTS" envDefault:"3"`
	Interval            time.Duration `env:"GMAIL_CB_INTERVAL" envDefault:"60s"`
	Timeout             time.Duration `env:"GMAIL_CB_TIMEOUT" envDefault:"30s"`
	ConsecutiveFailures uint32        `env:"GMAIL_CB_CONSECUTIVE_FAILURES" envDefault:"5"`
}

type ArchiveConfig struct {
	Enabled         bool   `env:"SENT_ARCHIVE_ENABLED" envDefault:"false"`
	Provider        string `env:"SENT_ARCHIVE_PROVIDER" envDefault:"r2"`
	R2AccountID     string `env:"CLOUDFLARE_R2_ACCOUNT_ID"`
	AWSRegion       string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID     string `env:"SENT_ARCHIVE_ACCESS_KEY_ID"`
	AccessKeySecret string `env:"SENT_ARCHIVE_ACCESS_KEY_SECRET"`
	Bucket          string `env:"SENT_ARCHIVE_BUCKET" envDefault:"sent-mail"`
}
