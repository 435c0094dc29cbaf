package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	assert.Equal(t, "8090", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "mocalake.db", cfg.DatabasePath)
	assert.False(t, cfg.EnableCache)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 10, cfg.PurchaseRateLimit)
	assert.Equal(t, time.Minute, cfg.PurchaseRateWindow)
	assert.True(t, cfg.EnableMetrics)
	assert.Equal(t, "9090", cfg.MetricsPort)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("ENABLE_CACHE", "true")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("PURCHASE_RATE_LIMIT", "5")
	t.Setenv("ENABLE_METRICS", "false")

	cfg := LoadConfig()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.True(t, cfg.EnableCache)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5, cfg.PurchaseRateLimit)
	assert.False(t, cfg.EnableMetrics)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("PURCHASE_RATE_LIMIT", "lots")
	t.Setenv("ENABLE_CACHE", "yes please")
	t.Setenv("CACHE_TTL", "soon")

	cfg := LoadConfig()

	assert.Equal(t, 10, cfg.PurchaseRateLimit)
	assert.False(t, cfg.EnableCache)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}
