package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("AUTH_TOKEN_SECRET", "s3cret")
		t.Setenv("DB_ADDR", "postgres://estate@localhost/estate")

		cfg, err := loadConfig()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Addr)
		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, 72*time.Hour, cfg.TokenExpiry)
		assert.Equal(t, "estate", cfg.TokenIssuer)
		assert.Equal(t, int32(30), cfg.DB.MaxConns)
		assert.Equal(t, 15*time.Minute, cfg.DB.MaxIdleTime)
		assert.Equal(t, time.Hour, cfg.DB.MaxLifetime)
		assert.Equal(t, 200, cfg.RateLimiter.RequestsPerTimeFrame)
		assert.Equal(t, 5*time.Second, cfg.RateLimiter.TimeFrame)
		assert.False(t, cfg.isProduction())
	})

	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("AUTH_TOKEN_SECRET", "")
		t.Setenv("DB_ADDR", "postgres://estate@localhost/estate")

		_, err := loadConfig()
		assert.ErrorContains(t, err, "AUTH_TOKEN_SECRET")
	})

	t.Run("missing database", func(t *testing.T) {
		t.Setenv("AUTH_TOKEN_SECRET", "s3cret")
		t.Setenv("DB_ADDR", "")

		_, err := loadConfig()
		assert.ErrorContains(t, err, "DB_ADDR")
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("AUTH_TOKEN_SECRET", "s3cret")
		t.Setenv("DB_ADDR", "postgres://estate@localhost/estate")
		t.Setenv("ENV", "production")
		t.Setenv("AUTH_TOKEN_EXP", "1h")
		t.Setenv("RATE_LIMITER_ENABLED", "true")
		t.Setenv("DB_MAX_OPEN_CONNS", "8")
		t.Setenv("DB_MAX_IDLE_TIME", "90s")

		cfg, err := loadConfig()
		require.NoError(t, err)

		assert.True(t, cfg.isProduction())
		assert.Equal(t, time.Hour, cfg.TokenExpiry)
		assert.True(t, cfg.RateLimiter.Enabled)
		assert.Equal(t, int32(8), cfg.DB.MaxConns)
		assert.Equal(t, 90*time.Second, cfg.DB.MaxIdleTime)
	})

	t.Run("bad pool setting", func(t *testing.T) {
		t.Setenv("AUTH_TOKEN_SECRET", "s3cret")
		t.Setenv("DB_ADDR", "postgres://estate@localhost/estate")
		t.Setenv("DB_MAX_IDLE_TIME", "soon")

		_, err := loadConfig()
		assert.ErrorContains(t, err, "DB_MAX_IDLE_TIME")
	})
}
