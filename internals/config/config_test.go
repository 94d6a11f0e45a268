package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Go-Job", cfg.AppName)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 604800, cfg.SessionMaxAge)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 10, cfg.Verification.CodeExpMinutes)
	assert.Equal(t, 3, cfg.Verification.MaxAttempts)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("GOOGLE_CLIENT_ID", "client-123")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("VERIFICATION_EXPIRATION_MINUTES", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "client-123", cfg.Google.ClientID)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Verification.CodeExpMinutes)
	assert.True(t, cfg.IsProduction())
}

func TestCookieConfig_SecureOnlyInProduction(t *testing.T) {
	dev := &Config{AppEnv: "development"}
	assert.False(t, dev.CookieConfig().IsSecure)
	assert.True(t, dev.CookieConfig().HttpOnly)

	prod := &Config{AppEnv: "production", CookieDomain: "go-job.example"}
	cc := prod.CookieConfig()
	assert.True(t, cc.IsSecure)
	assert.Equal(t, "go-job.example", cc.Domain)
}
