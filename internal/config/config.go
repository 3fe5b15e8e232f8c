package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port              string   `mapstructure:"PORT"`
	Env               string   `mapstructure:"ENV"`
	BackendBaseURL    string   `mapstructure:"BACKEND_BASE_URL"`
	BackendTimeoutSec int      `mapstructure:"BACKEND_TIMEOUT_SECONDS"`
	SessionBackend    string   `mapstructure:"SESSION_BACKEND"`
	SessionTTLMin     int      `mapstructure:"SESSION_TTL_MINUTES"`
	SessionCookie     string   `mapstructure:"SESSION_COOKIE"`
	RedisURL          string   `mapstructure:"REDIS_URL"`
	CORSOrigins       []string `mapstructure:"CORS_ORIGINS"`
	RequestTimeoutSec int      `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 15)
	v.SetDefault("SESSION_BACKEND", "memory")
	v.SetDefault("SESSION_TTL_MINUTES", 60)
	v.SetDefault("SESSION_COOKIE", "hx_session")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 30)

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("BACKEND_BASE_URL")
	v.BindEnv("BACKEND_TIMEOUT_SECONDS")
	v.BindEnv("SESSION_BACKEND")
	v.BindEnv("SESSION_TTL_MINUTES")
	v.BindEnv("SESSION_COOKIE")
	v.BindEnv("REDIS_URL")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("REQUEST_TIMEOUT_SECONDS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// SessionTTL returns the configured session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMin) * time.Minute
}

// BackendTimeout returns the per-call timeout for the backend gateway.
func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutSec) * time.Second
}

// RequestTimeout returns the deadline applied to each inbound request.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSec) * time.Second
}

// Validate checks that the configuration is safe to run. The portal refuses
// to start with an unknown session backend, and the redis backend requires
// REDIS_URL so sessions cannot silently land in a process-local map.
func (c *Config) Validate() error {
	switch c.SessionBackend {
	case "memory", "redis":
	default:
		return fmt.Errorf("SESSION_BACKEND must be \"memory\" or \"redis\", got %q", c.SessionBackend)
	}
	if c.SessionBackend == "redis" && c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL is required when SESSION_BACKEND is \"redis\"")
	}
	if c.IsProduction() && c.SessionBackend == "memory" {
		return fmt.Errorf("SESSION_BACKEND=memory loses sessions on restart; use redis in production")
	}
	if c.SessionTTLMin <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.SessionTTLMin)
	}
	return nil
}
