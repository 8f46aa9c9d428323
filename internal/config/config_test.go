package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validProdConfig() *Config {
	return &Config{
		Port:       "8315",
		JWTSecret:  strings.Repeat("s", 40),
		DBPassword: "something-strong",
		DBSSLMode:  "require",
		Env:        "production",
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid production config passes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validProdConfig().Validate())
	})

	t.Run("missing port fails", func(t *testing.T) {
		t.Parallel()
		cfg := validProdConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing jwt secret fails", func(t *testing.T) {
		t.Parallel()
		cfg := validProdConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("default jwt secret rejected in production", func(t *testing.T) {
		t.Parallel()
		cfg := validProdConfig()
		cfg.JWTSecret = "your-secret-key-change-in-production"
		assert.Error(t, cfg.Validate())
	})

	t.Run("short jwt secret rejected in production", func(t *testing.T) {
		t.Parallel()
		cfg := validProdConfig()
		cfg.JWTSecret = "short"
		assert.Error(t, cfg.Validate())
	})

	t.Run("weak db password rejected in production", func(t *testing.T) {
		t.Parallel()
		cfg := validProdConfig()
		cfg.DBPassword = "password"
		assert.Error(t, cfg.Validate())
	})

	t.Run("development tolerates defaults", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{
			Port:      "8315",
			JWTSecret: "your-secret-key-change-in-production",
			Env:       "development",
		}
		assert.NoError(t, cfg.Validate())
	})
}

func TestIsProduction(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: "test"}).IsProduction())
}
