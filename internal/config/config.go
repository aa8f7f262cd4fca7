// Package config loads drills settings from an optional YAML file,
// DRILLS_* environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mrled/suns/drills/internal/repository"
)

// EnvPrefix is prepended to every environment variable, e.g. DRILLS_LOG_LEVEL
const EnvPrefix = "DRILLS"

// Config represents the complete drills configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Store  StoreConfig  `mapstructure:"store"`
	Server ServerConfig `mapstructure:"server"`
	Plan   PlanConfig   `mapstructure:"plan"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// StoreConfig selects where run results are recorded
type StoreConfig struct {
	File             string `mapstructure:"file"`
	DynamoDBTable    string `mapstructure:"dynamodb_table"`
	DynamoDBEndpoint string `mapstructure:"dynamodb_endpoint"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// PlanConfig contains plan execution settings
type PlanConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Server: ServerConfig{
			Address: ":8080",
		},
		Plan: PlanConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("log.level must be one of: debug, info, warn, error")
	}

	if f := strings.ToLower(c.Log.Format); f != "json" && f != "text" {
		return fmt.Errorf("log.format must be 'json' or 'text'")
	}

	if c.Server.Address == "" {
		return fmt.Errorf("server.address cannot be empty")
	}

	if c.Plan.Debounce < 0 {
		return fmt.Errorf("plan.debounce cannot be negative")
	}

	return nil
}

// Repository converts the store settings into a repository configuration
func (c *Config) Repository() repository.RepositoryConfig {
	return repository.RepositoryConfig{
		FilePath:       c.Store.File,
		DynamoTable:    c.Store.DynamoDBTable,
		DynamoEndpoint: c.Store.DynamoDBEndpoint,
	}
}

// SetDefaults registers the default values with v so they are visible during unmarshal
func SetDefaults(v *viper.Viper) {
	defaults := DefaultConfig()

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
	v.SetDefault("log.add_source", defaults.Log.AddSource)

	v.SetDefault("store.file", defaults.Store.File)
	v.SetDefault("store.dynamodb_table", defaults.Store.DynamoDBTable)
	v.SetDefault("store.dynamodb_endpoint", defaults.Store.DynamoDBEndpoint)

	v.SetDefault("server.address", defaults.Server.Address)

	v.SetDefault("plan.debounce", defaults.Plan.Debounce)
}

// Load reads configuration into a Config. When configFile is empty, drills.yaml
// is searched for in the current directory and ./configs and finding none is
// not an error. An explicit configFile must exist.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("drills")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
		if configFile != "" || !missing {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
