package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	App    AppConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `env:"SERVER_HOST"`
	Port            string        `env:"SERVER_PORT" envDefault:"8000"`
	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// RedisConfig holds Redis connection settings, used only by the rate limiter
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Environment        string `env:"APP_ENV" envDefault:"development"`
	LogLevel           string `env:"LOG_LEVEL" envDefault:"info"`
	StaticDir          string `env:"STATIC_DIR" envDefault:"web/dist"`
	StoreShards        int    `env:"STORE_SHARDS" envDefault:"32"`
	EnableMetrics      bool   `env:"ENABLE_METRICS" envDefault:"true"`
	RateLimitEnabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"false"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" envDefault:"100"`
	// TrustProxyHeaders makes the rate limiter read the client address from
	// X-Forwarded-For / X-Real-IP. Enable only behind a proxy that sets them,
	// otherwise clients can dodge the limit by rotating the header.
	TrustProxyHeaders  bool   `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

var (
	ErrInvalidShards    = errors.New("STORE_SHARDS must be at least 1")
	ErrInvalidRateLimit = errors.New("RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
)

// Load reads configuration from environment variables, then applies
// command-line flags on top. args excludes the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	fs := flag.NewFlagSet("shortlink", flag.ContinueOnError)
	fs.Func("a", "listen address, host:port", func(value string) error {
		host, port, err := net.SplitHostPort(value)
		if err != nil {
			return fmt.Errorf("invalid listen address %q: %w", value, err)
		}
		cfg.Server.Host = host
		cfg.Server.Port = port
		return nil
	})
	fs.StringVar(&cfg.App.StaticDir, "static", cfg.App.StaticDir, "directory holding the prebuilt static bundle")
	fs.StringVar(&cfg.App.LogLevel, "log-level", cfg.App.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would break the server at runtime
func (c *Config) Validate() error {
	if c.App.StoreShards < 1 {
		return ErrInvalidShards
	}
	if c.App.RateLimitEnabled && c.App.RateLimitPerMinute < 1 {
		return ErrInvalidRateLimit
	}
	return nil
}

// Addr returns the listen address in host:port format
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// RedisAddr returns the Redis address in host:port format
func (c *RedisConfig) RedisAddr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
