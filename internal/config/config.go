// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
// It is constructed once in main and passed explicitly to every component
// that needs it; nothing reads the environment after startup.
type Config struct {
	APIBaseURL    string `env:"STUDIO_API_URL,required"` // Backend API origin, e.g. https://api.example.com
	SessionSecret string `env:"STUDIO_SESSION_SECRET,required"`
	SessionDBPath string `env:"STUDIO_SESSION_DB_PATH" envDefault:"./data/sessions.db"`
	ServerHost    string `env:"STUDIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"STUDIO_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"STUDIO_ENV" envDefault:"development"`
	LogLevel      string `env:"STUDIO_LOG_LEVEL" envDefault:"info"`
	PreviewsDir   string `env:"STUDIO_PREVIEWS_DIR" envDefault:"./data/previews"`

	// Site identity, used for the sitemap and default page metadata
	SiteURL         string `env:"STUDIO_SITE_URL" envDefault:"http://localhost:8080"`
	SiteName        string `env:"STUDIO_SITE_NAME" envDefault:"Pirus Design"`
	SiteDescription string `env:"STUDIO_SITE_DESCRIPTION" envDefault:"Студия дизайна и медиапроизводства"`

	// Admin account (single-operator studio site; no user table of our own)
	AdminEmail        string `env:"STUDIO_ADMIN_EMAIL,required"`
	AdminPasswordHash string `env:"STUDIO_ADMIN_PASSWORD_HASH,required"` // argon2id hash, see -hash-password

	// Backend client configuration
	APITimeout int `env:"STUDIO_API_TIMEOUT" envDefault:"30"` // Seconds per backend request

	// Page cache (ISR) configuration
	RedisURL       string `env:"STUDIO_REDIS_URL"`                          // Optional Redis URL for the page cache
	CachePrefix    string `env:"STUDIO_CACHE_PREFIX" envDefault:"studio:"`  // Redis key prefix
	RevalidateSecs int    `env:"STUDIO_REVALIDATE_SECS" envDefault:"1800"`  // Public page revalidation window
	CacheMaxSize   int    `env:"STUDIO_CACHE_MAX_SIZE" envDefault:"10000"`  // Max memory cache entries
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// RevalidateWindow returns the public page revalidation window as a duration.
func (c Config) RevalidateWindow() time.Duration {
	return time.Duration(c.RevalidateSecs) * time.Second
}

// APIRequestTimeout returns the per-request backend timeout as a duration.
func (c Config) APIRequestTimeout() time.Duration {
	return time.Duration(c.APITimeout) * time.Second
}

// MinSessionSecretLength is the minimum required length for the session secret.
// AES-256 requires 32 bytes minimum for secure encryption.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("STUDIO_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("STUDIO_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("STUDIO_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	// The backend origin is used for both API calls and resolving
	// storage-served media URLs; a trailing slash would double up.
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if !strings.HasPrefix(cfg.APIBaseURL, "http://") && !strings.HasPrefix(cfg.APIBaseURL, "https://") {
		return nil, fmt.Errorf("STUDIO_API_URL must be an absolute http(s) origin, got %q", cfg.APIBaseURL)
	}
	cfg.SiteURL = strings.TrimRight(cfg.SiteURL, "/")

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
