// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package config loads satchel settings from an optional YAML file and
// SATCHEL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/satchel/ingestion"
	"github.com/poiesic/satchel/search"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// EnvPrefix is the prefix of environment overrides, e.g. SATCHEL_STORE_DRIVER.
const EnvPrefix = "SATCHEL"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds all satchel settings.
type Config struct {
	Store  StoreConfig  `mapstructure:"store"`
	Search SearchConfig `mapstructure:"search"`
	Import ImportConfig `mapstructure:"import"`
	Log    LogConfig    `mapstructure:"log"`
}

// StoreConfig selects and locates the record store.
type StoreConfig struct {
	// Driver is "badger" or "sqlite".
	Driver string `mapstructure:"driver"`

	// Path is the badger directory or the SQLite file.
	// Empty selects a default next to the working directory.
	Path string `mapstructure:"path"`

	// InMemory keeps everything in memory. Path is ignored.
	InMemory bool `mapstructure:"in_memory"`
}

// SearchConfig tunes the searcher.
type SearchConfig struct {
	MaxResults     int           `mapstructure:"max_results"`
	MaxAttempts    int           `mapstructure:"max_attempts"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"`
	CandidateLimit int           `mapstructure:"candidate_limit"`
}

// ImportConfig tunes the import pipeline.
type ImportConfig struct {
	PoolSize  int `mapstructure:"pool_size"`
	BatchSize int `mapstructure:"batch_size"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithDriver sets the store driver.
func WithDriver(driver string) ConfigOption {
	return func(c *Config) {
		c.Store.Driver = driver
	}
}

// WithPath sets the store location.
func WithPath(path string) ConfigOption {
	return func(c *Config) {
		c.Store.Path = path
	}
}

// WithInMemory keeps the store in memory.
func WithInMemory() ConfigOption {
	return func(c *Config) {
		c.Store.InMemory = true
	}
}

// WithMaxResults sets the number of ranked results per search.
func WithMaxResults(n int) ConfigOption {
	return func(c *Config) {
		c.Search.MaxResults = n
	}
}

// WithRetry sets the store retry ceiling and base delay for searches.
func WithRetry(maxAttempts int, delay time.Duration) ConfigOption {
	return func(c *Config) {
		c.Search.MaxAttempts = maxAttempts
		c.Search.RetryDelay = delay
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) ConfigOption {
	return func(c *Config) {
		c.Log.Level = level
	}
}

// DefaultConfig returns a Config with the defaults of every component.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{Driver: DriverBadger},
		Search: SearchConfig{
			MaxResults:  search.DefaultMaxResults,
			MaxAttempts: search.DefaultMaxAttempts,
			RetryDelay:  search.DefaultRetryDelay,
		},
		Import: ImportConfig{
			PoolSize:  max(runtime.NumCPU()/2, 1),
			BatchSize: ingestion.DefaultBatchSize,
		},
		Log: LogConfig{Level: "info"},
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithDriver(DriverSQLite),
//	    WithPath("satchel.db"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Load reads the config file at path, or satchel.yaml from the working
// directory and the user config directory when path is empty, then applies
// SATCHEL_* environment overrides. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("satchel")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "satchel"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("store.in_memory", d.Store.InMemory)

	v.SetDefault("search.max_results", d.Search.MaxResults)
	v.SetDefault("search.max_attempts", d.Search.MaxAttempts)
	v.SetDefault("search.retry_delay", d.Search.RetryDelay)
	v.SetDefault("search.candidate_limit", d.Search.CandidateLimit)

	v.SetDefault("import.pool_size", d.Import.PoolSize)
	v.SetDefault("import.batch_size", d.Import.BatchSize)

	v.SetDefault("log.level", d.Log.Level)
}

// Normalize puts the configuration in canonical form: lower-case names and
// a default path for the chosen driver.
func (c *Config) Normalize() {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Store.Path == "" && !c.Store.InMemory {
		switch c.Store.Driver {
		case DriverBadger:
			c.Store.Path = "satchel-data"
		case DriverSQLite:
			c.Store.Path = "satchel.db"
		}
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch {
	case c.Store.Driver != DriverBadger && c.Store.Driver != DriverSQLite:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	case c.Search.MaxResults < 1 || c.Search.MaxResults > search.MaxResultsLimit:
		return fmt.Errorf("%w: search.max_results must be between 1 and %d", ErrInvalidConfig, search.MaxResultsLimit)
	case c.Search.MaxAttempts < 1:
		return fmt.Errorf("%w: search.max_attempts must be at least 1", ErrInvalidConfig)
	case c.Search.RetryDelay < 0:
		return fmt.Errorf("%w: search.retry_delay cannot be negative", ErrInvalidConfig)
	case c.Search.CandidateLimit < 0:
		return fmt.Errorf("%w: search.candidate_limit cannot be negative", ErrInvalidConfig)
	case c.Import.PoolSize < 1:
		return fmt.Errorf("%w: import.pool_size must be at least 1", ErrInvalidConfig)
	case c.Import.BatchSize < 1:
		return fmt.Errorf("%w: import.batch_size must be at least 1", ErrInvalidConfig)
	case !slices.Contains(logLevels, c.Log.Level):
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}

// SlogLevel returns the configured level for log/slog.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
