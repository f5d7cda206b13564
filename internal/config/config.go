// Package config loads prism settings from an optional YAML file, a .env
// file and PRISM_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/prism/internal/gateway"
	"github.com/abhisek/prism/internal/logger"
	"github.com/abhisek/prism/internal/taxonomy"
)

// Assist modes.
const (
	AssistRemote = "remote"
	AssistLocal  = "local"
)

// Config is the resolved configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy"`
	Assist   AssistConfig   `mapstructure:"assist"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	DB       string         `mapstructure:"db"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type TaxonomyConfig struct {
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
	CacheSize int           `mapstructure:"cache_size"`
	Retries   int           `mapstructure:"retries"`
	RetryWait time.Duration `mapstructure:"retry_wait"`
	Redis     RedisConfig   `mapstructure:"redis"`
}

// RedisConfig selects the shared taxonomy cache. An empty Addr keeps the
// cache in-process.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type AssistConfig struct {
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

func setDefaults(v *viper.Viper) {
	gw := gateway.DefaultConfig()
	tx := taxonomy.DefaultConfig()

	v.SetDefault("api.base_url", gw.BaseURL)
	v.SetDefault("api.timeout", gw.Timeout)
	v.SetDefault("taxonomy.cache_ttl", tx.TTL)
	v.SetDefault("taxonomy.cache_size", tx.CacheSize)
	v.SetDefault("taxonomy.retries", tx.Retries)
	v.SetDefault("taxonomy.retry_wait", tx.RetryWait)
	v.SetDefault("taxonomy.redis.addr", "")
	v.SetDefault("taxonomy.redis.password", "")
	v.SetDefault("taxonomy.redis.db", 0)
	v.SetDefault("taxonomy.redis.prefix", "prism:taxonomy:")
	v.SetDefault("assist.mode", AssistRemote)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("metrics.addr", "")
	v.SetDefault("db", "")
}

// Load resolves configuration. An empty path reads DefaultPath when it
// exists; an explicit path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PRISM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Assist.Mode {
	case AssistRemote, AssistLocal:
	default:
		return fmt.Errorf("assist.mode must be %q or %q, got %q", AssistRemote, AssistLocal, c.Assist.Mode)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive")
	}
	return nil
}

// Gateway returns the API client settings.
func (c *Config) Gateway() gateway.Config {
	return gateway.Config{BaseURL: c.API.BaseURL, Timeout: c.API.Timeout}
}

// TaxonomyClient returns the cache and retry settings.
func (c *Config) TaxonomyClient() taxonomy.Config {
	cfg := taxonomy.DefaultConfig()
	cfg.TTL = c.Taxonomy.CacheTTL
	cfg.CacheSize = c.Taxonomy.CacheSize
	cfg.Retries = c.Taxonomy.Retries
	cfg.RetryWait = c.Taxonomy.RetryWait
	return cfg
}

// Logger returns logger options. interactive selects the default log file
// when none is configured.
func (c *Config) Logger(interactive bool) logger.Options {
	opts := logger.Options{Level: c.Log.Level, Format: c.Log.Format, File: c.Log.File}
	if opts.File == "" && interactive {
		opts.File = DefaultLogFile()
	}
	return opts
}

// DefaultPath is $XDG_CONFIG_HOME/prism/prism.yaml, or empty when no home
// directory can be resolved.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "prism", "prism.yaml")
}

// DefaultLogFile is $XDG_STATE_HOME/prism/prism.log.
func DefaultLogFile() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "prism.log")
		}
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "prism", "prism.log")
}
