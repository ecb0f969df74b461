package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "prospects.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "https://s.jina.ai", cfg.Jina.SearchBaseURL)
	assert.Equal(t, "https://api.firecrawl.dev", cfg.Firecrawl.BaseURL)
	assert.Equal(t, 2, cfg.Fetch.BreakerThreshold)
	assert.Equal(t, 200, cfg.Fetch.MinContentLen)
	assert.Equal(t, 2000, cfg.Fetch.LargeContentLen)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
}

func TestLoad_EnvOverridesDefault(t *testing.T) {
	t.Setenv("PROSPECT_STORE_DRIVER", "postgres")
	t.Setenv("PROSPECT_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate_MissingKeys(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Store: StoreConfig{Driver: "sqlite", DatabaseURL: "prospects.db"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jina.key")
	assert.Contains(t, err.Error(), "firecrawl.key")
}

func TestValidate_UnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Store:     StoreConfig{Driver: "mysql", DatabaseURL: "x"},
		Jina:      JinaConfig{Key: "k"},
		Firecrawl: FirecrawlConfig{Key: "k"},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown store driver")
}

func TestValidate_Complete(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Store:     StoreConfig{Driver: "postgres", DatabaseURL: "postgres://localhost/prospects"},
		Jina:      JinaConfig{Key: "jina-key"},
		Firecrawl: FirecrawlConfig{Key: "fc-key"},
	}
	assert.NoError(t, cfg.Validate())
}
