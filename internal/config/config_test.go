package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, "instance", cfg.InstancePath)
	assert.Equal(t, filepath.Join("instance", "cache"), cfg.CacheDir)
	assert.Equal(t, filepath.Join("instance", "development.db"), cfg.SQLitePath())
	assert.False(t, cfg.RateLimit.Enabled)
	assert.False(t, cfg.IsProduction())
}

func TestFromViperRejectsUnknownDatabase(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("database.type", "oracle")

	_, err := FromViper(v)
	require.Error(t, err)
}

func TestFromViperRequiresSecretInProduction(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("environment", "production")

	_, err := FromViper(v)
	require.Error(t, err)

	v.Set("secret_key", "s3cret")
	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestFromViperRateLimitNeedsRedis(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("rate_limit.enabled", true)
	v.Set("rate_limit.redis_addr", "")

	_, err := FromViper(v)
	require.Error(t, err)
}
