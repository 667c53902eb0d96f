package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// DefaultSessionSecret is only accepted in the development environment.
const DefaultSessionSecret = "storefront-dev-session-secret"

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort    int    `env:"STOREFRONT_HTTP_PORT" envDefault:"8000"`

	// Static roots and the entry document returned for unmatched paths.
	PublicDir     string `env:"PUBLIC_DIR" envDefault:"public"`
	SrcDir        string `env:"SRC_DIR" envDefault:"src"`
	EntryDocument string `env:"ENTRY_DOCUMENT" envDefault:"index.html"`
	StaticMaxAge  int    `env:"STATIC_MAX_AGE_SECONDS" envDefault:"0"`

	// Sessions
	SessionStore        string `env:"SESSION_STORE" envDefault:"memory"`
	SessionSecret       string `env:"SESSION_SECRET" envDefault:"storefront-dev-session-secret"`
	SessionTTLHours     int    `env:"SESSION_TTL_HOURS" envDefault:"0"`
	SessionCookieSecure bool   `env:"SESSION_COOKIE_SECURE" envDefault:"false"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`
	// Redis commands slower than this are logged; zero disables.
	RedisSlowCommandMS int `env:"REDIS_SLOW_COMMAND_MS" envDefault:"100"`

	// Session lifecycle events
	EventsEnabled bool     `env:"EVENTS_ENABLED" envDefault:"false"`
	KafkaBrokers  []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Rate limiting
	RateLimitRPS   int `env:"RATE_LIMIT_RPS" envDefault:"100"`
	RateLimitBurst int `env:"RATE_LIMIT_BURST" envDefault:"200"`

	// CORS for the JSON API
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`

	// Peers allowed to set X-Forwarded-For / X-Real-IP. Empty trusts no one.
	TrustedProxyCIDRs []string `env:"TRUSTED_PROXY_CIDRS" envDefault:"" envSeparator:","`

	// Debug endpoints
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32,::1/128" envSeparator:","`
}

// Load reads configuration from the process environment.
func Load() (*Config, error) {
	return load()
}

// LoadFrom reads configuration from environ only.
func LoadFrom(environ map[string]string) (*Config, error) {
	return load(pkgconfig.WithEnvironment(environ))
}

func load(opts ...pkgconfig.Option) (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg, opts...); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SessionTTL returns the session lifetime. Zero means sessions never expire.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

// RedisSlowCommandThreshold returns the slow command logging threshold.
func (c *Config) RedisSlowCommandThreshold() time.Duration {
	return time.Duration(c.RedisSlowCommandMS) * time.Millisecond
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.PublicDir == "" || c.EntryDocument == "" {
		return fmt.Errorf("PUBLIC_DIR and ENTRY_DOCUMENT must be set")
	}
	if c.StaticMaxAge < 0 {
		return fmt.Errorf("invalid STATIC_MAX_AGE_SECONDS: %d", c.StaticMaxAge)
	}
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("invalid SESSION_STORE %q: must be %q or %q", c.SessionStore, SessionStoreMemory, SessionStoreRedis)
	}
	if c.SessionTTLHours < 0 {
		return fmt.Errorf("invalid SESSION_TTL_HOURS: %d", c.SessionTTLHours)
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if c.Environment != "development" && c.SessionSecret == DefaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be changed from default value in %s environment", c.Environment)
	}
	if c.EventsEnabled && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS must be set when EVENTS_ENABLED is true")
	}
	return nil
}
