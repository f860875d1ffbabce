// Package config loads application configuration from environment
// variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store backends.
const (
	BackendGraphQL  = "graphql"
	BackendPostgres = "postgres"
)

// ErrInvalidConfig wraps cross-field validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all application configuration.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Backend selection: graphql (default) or postgres.
	StoreBackend string `env:"STORE_BACKEND" envDefault:"graphql"`

	GraphQLURL         string        `env:"GRAPHQL_URL"`
	GraphQLAdminSecret string        `env:"GRAPHQL_ADMIN_SECRET"`
	GraphQLTimeout     time.Duration `env:"GRAPHQL_TIMEOUT" envDefault:"5s"`

	DatabaseURL string `env:"DATABASE_URL"`

	// Optional. Without Redis, public app responses are not cached and
	// rate limiting is disabled.
	RedisURL string `env:"REDIS_URL"`

	// Public app metadata
	CDNURL            string        `env:"CDN_URL,required"`
	NativeAppsFile    string        `env:"NATIVE_APPS_FILE"`
	PublicAppCacheTTL time.Duration `env:"PUBLIC_APP_CACHE_TTL" envDefault:"5m"`
	PublicAppMaxAge   int           `env:"PUBLIC_APP_MAX_AGE" envDefault:"300"`

	// Dashboard sessions. Team routes are mounted only with a secret.
	SessionJWTSecret string `env:"SESSION_JWT_SECRET"`
	SessionJWTIssuer string `env:"SESSION_JWT_ISSUER"`

	// Rate limiting (per client IP)
	RateLimitEnabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitRPS     int  `env:"RATE_LIMIT_RPS" envDefault:"50"`
	RateLimitBurst   int  `env:"RATE_LIMIT_BURST" envDefault:"100"`

	// Comma-separated proxy addresses or CIDRs whose X-Forwarded-For and
	// X-Real-IP headers are honoured. Empty trusts no proxy.
	TrustedProxies string `env:"TRUSTED_PROXIES" envDefault:""`

	// Comma-separated list of allowed origins
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// SessionsEnabled reports whether dashboard session auth is configured.
func (c *Config) SessionsEnabled() bool {
	return c.SessionJWTSecret != ""
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// GetTrustedProxies parses TrustedProxies. Bare addresses become single-host
// prefixes.
func (c *Config) GetTrustedProxies() ([]netip.Prefix, error) {
	var prefixes []netip.Prefix
	for _, entry := range strings.Split(c.TrustedProxies, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "/") {
			prefix, err := netip.ParsePrefix(entry)
			if err != nil {
				return nil, fmt.Errorf("%w: TRUSTED_PROXIES entry %q: %v", ErrInvalidConfig, entry, err)
			}
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: TRUSTED_PROXIES entry %q: %v", ErrInvalidConfig, entry, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Validate enforces rules env tags cannot express.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendGraphQL:
		if c.GraphQLURL == "" {
			return fmt.Errorf("%w: GRAPHQL_URL is required for the graphql backend", ErrInvalidConfig)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("%w: DATABASE_URL is required for the postgres backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: STORE_BACKEND must be %q or %q, got %q", ErrInvalidConfig, BackendGraphQL, BackendPostgres, c.StoreBackend)
	}

	u, err := url.Parse(c.CDNURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: CDN_URL must be an absolute URL", ErrInvalidConfig)
	}

	if c.SessionJWTSecret != "" && len(c.SessionJWTSecret) < 32 {
		return fmt.Errorf("%w: SESSION_JWT_SECRET must be at least 32 bytes", ErrInvalidConfig)
	}

	if c.RateLimitEnabled && c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		return fmt.Errorf("%w: RATE_LIMIT_BURST must be positive", ErrInvalidConfig)
	}

	if _, err := c.GetTrustedProxies(); err != nil {
		return err
	}

	return nil
}

// Load parses environment variables and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
