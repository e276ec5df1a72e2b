package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg := NewConfig()
	require.NoError(t, env.Parse(cfg))

	assert.Equal(t, "12222", cfg.AppConfig.APIPort)
	assert.Equal(t, "https://gmail.googleapis.com/", cfg.GmailConfig.BaseURL)
	assert.Equal(t, int64(20), cfg.GmailConfig.DefaultPageSize)
	assert.Equal(t, int64(500), cfg.GmailConfig.MaxPageSize)
	assert.Equal(t, 35*1024*1024, cfg.GmailConfig.MaxAttachmentSize)
	assert.Equal(t, 100, cfg.GmailConfig.MaxBatchIDs)
	assert.Equal(t, 10, cfg.GmailConfig.MaxConcurrentFetches)
	assert.Equal(t, 30*time.Second, cfg.CircuitBreaker.Timeout)
	assert.False(t, cfg.ArchiveConfig.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestParse_FromEnvironment(t *testing.T) {
	t.Setenv("GMAIL_BASE_URL", "http://localhost:9999/")
	t.Setenv("GMAIL_DEFAULT_PAGE_SIZE", "50")
	t.Setenv("SESSION_JWT_SECRET", "secret")

	cfg := NewConfig()
	require.NoError(t, env.Parse(cfg))

	assert.Equal(t, "http://localhost:9999/", cfg.GmailConfig.BaseURL)
	assert.Equal(t, int64(50), cfg.GmailConfig.DefaultPageSize)
	assert.Equal(t, "secret", cfg.AppConfig.SessionJWTSecret)
}

func TestValidate(t *testing.T) {
	t.Run("default larger than max", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, env.Parse(cfg))
		cfg.GmailConfig.DefaultPageSize = 1000
		assert.Error(t, cfg.Validate())
	})

	t.Run("no concurrent fetches", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, env.Parse(cfg))
		cfg.GmailConfig.MaxConcurrentFetches = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("archive without credentials", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, env.Parse(cfg))
		cfg.ArchiveConfig.Enabled = true
		cfg.ArchiveConfig.Provider = "s3"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown archive provider", func(t *testing.T) {
		cfg := NewConfig()
		require.NoError(t, env.Parse(cfg))
		cfg.ArchiveConfig.Enabled = true
		cfg.ArchiveConfig.Provider = "gcs"
		cfg.ArchiveConfig.AccessKeyID = "id"
		cfg.ArchiveConfig.AccessKeySecret = "secret"
		assert.Error(t, cfg.Validate())
	})
}
