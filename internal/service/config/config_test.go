package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "http://indivo.org/records/", cfg.BaseURI)
	assert.Equal(t, "xml", cfg.DefaultFormat)
	assert.True(t, cfg.IsDev())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ENV", "production")
	t.Setenv("API_KEY", "secret")
	t.Setenv("DEFAULT_FORMAT", "turtle")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "turtle", cfg.DefaultFormat)
	assert.False(t, cfg.IsDev())
}
