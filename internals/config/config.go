package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the full server configuration. It is parsed from the environment
// once in main and handed to each service at construction; nothing reads
// ambient env vars after startup.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"Go-Job"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppURL  string `env:"APP_URL" envDefault:"http://localhost:8080"`
	Port    string `env:"PORT" envDefault:"8080"`

	DatabaseURL string `env:"DB_URL"`

	// JWTSecret signs the user_data session cookie.
	JWTSecret string `env:"JWT_SECRET_KEY"`

	// SessionMaxAge is the session cookie lifetime in seconds (default 7 days).
	SessionMaxAge int    `env:"SESSION_MAX_AGE_SECONDS" envDefault:"604800"`
	CookieDomain  string `env:"COOKIE_DOMAIN"`

	SMTP         SMTPConfig
	Google       GoogleConfig
	Redis        RedisConfig
	Verification VerificationConfig
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"GOOGLE_REDIRECT_URL"`

	// Endpoint overrides, used by tests to point the flow at a fake provider.
	AuthURL     string `env:"-"`
	TokenURL    string `env:"-"`
	UserInfoURL string `env:"-"`
}

type RedisConfig struct {
	// Addr enables the Redis-backed verification code store when set;
	// left empty, codes are held in process memory.
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type VerificationConfig struct {
	CodeExpMinutes  int `env:"VERIFICATION_EXPIRATION_MINUTES" envDefault:"10"`
	MaxAttempts     int `env:"VERIFICATION_MAX_ATTEMPTS" envDefault:"3"`
	ResendCooldownS int `env:"VERIFICATION_RESEND_COOLDOWN_SECONDS" envDefault:"60"`
}

// Load parses the configuration from the current environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// IsProduction reports whether the server runs with production hardening
// (secure cookies) enabled.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CookieConfig derives the shared security baseline for all cookies issued by
// the server.
func (c *Config) CookieConfig() *CookieConfig {
	return &CookieConfig{
		Domain:   c.CookieDomain,
		IsSecure: c.IsProduction(),
		HttpOnly: true, // Always HttpOnly for security
	}
}
