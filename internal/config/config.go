// Package config loads flowtower settings from an optional TOML file, a
// .env file and the process environment.
//
// Precedence, lowest first: built-in defaults, the config file, then
// environment variables. Command-line flags are applied on top by the CLI.
//
//	[spacing]
//	interval_y = 40
//	diamond = { width = 60, height = 24 }
//
//	[render]
//	style = "sketch"
//	formats = ["svg", "png"]
//	scale = 2.0
//
//	[server]
//	addr = ":8080"
//	redis_url = "redis://localhost:6379/0"
//	cache_size = 512
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/flowtower/pkg/cache"
	"github.com/matzehuels/flowtower/pkg/errors"
	"github.com/matzehuels/flowtower/pkg/layout"
	"github.com/matzehuels/flowtower/pkg/pipeline"
)

const appName = "flowtower"

// Environment variables read by Load.
const (
	EnvAddr       = "FLOWTOWER_ADDR"
	EnvRedisURL   = "FLOWTOWER_REDIS_URL"
	EnvCacheSize  = "FLOWTOWER_CACHE_SIZE"
	EnvCacheScope = "FLOWTOWER_CACHE_SCOPE"
)

// DefaultAddr is the listen address of `flowtower serve`.
const DefaultAddr = ":8080"

// Config is the merged configuration.
type Config struct {
	Spacing layout.Spacing `toml:"spacing"`
	Render  Render         `toml:"render"`
	Server  Server         `toml:"server"`
}

// Render holds rendering defaults.
type Render struct {
	Style   string   `toml:"style"`
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
}

// Server holds settings for the HTTP API.
type Server struct {
	Addr      string `toml:"addr"`
	RedisURL  string `toml:"redis_url"`
	CacheSize int    `toml:"cache_size"`

	// CacheScope prefixes cache keys so deployments sharing one Redis
	// keep separate entries.
	CacheScope string `toml:"cache_scope"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Spacing: layout.DefaultSpacing(),
		Render: Render{
			Style:   pipeline.DefaultStyle,
			Formats: []string{pipeline.FormatSVG},
			Scale:   pipeline.DefaultScale,
		},
		Server: Server{
			Addr:      DefaultAddr,
			CacheSize: cache.DefaultMemoryEntries,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/flowtower/config.toml, falling back
// to ~/.config/flowtower/config.toml.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config file at path, then applies .env and environment
// overrides. An empty path means DefaultPath, which may be absent; an
// explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.decodeFile(path, explicit); err != nil {
			return Config{}, err
		}
	}

	// A missing .env is the normal case.
	_ = godotenv.Load()
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string, required bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if required {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := getenv(EnvRedisURL); v != "" {
		c.Server.RedisURL = v
	}
	if v := getenv(EnvCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "%s must be an integer", EnvCacheSize)
		}
		c.Server.CacheSize = n
	}
	if v := getenv(EnvCacheScope); v != "" {
		c.Server.CacheScope = v
	}
	return nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Spacing.Validate(); err != nil {
		return err
	}
	if err := pipeline.ValidateStyle(c.Render.Style); err != nil {
		return err
	}
	if err := pipeline.ValidateFormats(c.Render.Formats); err != nil {
		return err
	}
	if c.Render.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "render scale must be positive (got %v)", c.Render.Scale)
	}
	if c.Server.CacheSize < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server cache_size must not be negative (got %d)", c.Server.CacheSize)
	}
	return nil
}

// PipelineOptions returns pipeline options seeded from the config.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Spacing: c.Spacing,
		Formats: append([]string(nil), c.Render.Formats...),
		Style:   c.Render.Style,
		Scale:   c.Render.Scale,
	}
}
