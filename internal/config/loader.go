package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads the configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 15)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("jwt.token_ttl", 86400)
	v.SetDefault("log.level", "info")
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})

	// Admission policies observed in production traffic shapes:
	// auth endpoints are the tightest, ticket creation moderate, the rest share
	// a general ceiling. Windows are 15 minutes.
	v.SetDefault("rate_limit.auth.window_ms", 15*60*1000)
	v.SetDefault("rate_limit.auth.max", 5)
	v.SetDefault("rate_limit.support.window_ms", 15*60*1000)
	v.SetDefault("rate_limit.support.max", 20)
	v.SetDefault("rate_limit.general.window_ms", 15*60*1000)
	v.SetDefault("rate_limit.general.max", 100)
	v.SetDefault("rate_limit.admin.window_ms", 15*60*1000)
	v.SetDefault("rate_limit.admin.max", 100)
	v.SetDefault("rate_limit.sweep_interval_ms", 60*1000)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/backoffice/")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("BACKOFFICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
