package config

import (
	"fmt"
	"time"
)

// Config holds the application's configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	PprofEnabled bool   `mapstructure:"pprof_enabled"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int    `mapstructure:"max_conns"`
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

type JWTConfig struct {
	Secret   string `mapstructure:"secret"`
	TokenTTL int    `mapstructure:"token_ttl"` // in seconds
}

// RateLimitPolicy is one fixed-window policy: at most Max requests per client
// key within each window of WindowMS milliseconds.
type RateLimitPolicy struct {
	WindowMS int64 `mapstructure:"window_ms"`
	Max      int   `mapstructure:"max"`
}

// Window returns the policy window as a duration.
func (p RateLimitPolicy) Window() time.Duration {
	return time.Duration(p.WindowMS) * time.Millisecond
}

// RateLimitConfig holds the per-route-group admission policies and the
// counter sweep interval.
type RateLimitConfig struct {
	Auth            RateLimitPolicy `mapstructure:"auth"`
	Support         RateLimitPolicy `mapstructure:"support"`
	General         RateLimitPolicy `mapstructure:"general"`
	Admin           RateLimitPolicy `mapstructure:"admin"`
	SweepIntervalMS int64           `mapstructure:"sweep_interval_ms"`
}

// SweepInterval returns the counter-store sweep period.
func (c RateLimitConfig) SweepInterval() time.Duration {
	return time.Duration(c.SweepIntervalMS) * time.Millisecond
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Validate checks for essential configuration values.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret must be set")
	}
	for name, p := range map[string]RateLimitPolicy{
		"auth":    c.RateLimit.Auth,
		"support": c.RateLimit.Support,
		"general": c.RateLimit.General,
		"admin":   c.RateLimit.Admin,
	} {
		if p.WindowMS <= 0 || p.Max <= 0 {
			return fmt.Errorf("rate_limit.%s: window_ms and max must be positive", name)
		}
	}
	return nil
}
