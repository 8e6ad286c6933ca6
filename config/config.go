// Package config loads versefill settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/versefill"
	"github.com/fwojciec/versefill/detect"
	"github.com/fwojciec/versefill/fetch"
	"github.com/fwojciec/versefill/gemini"
	"github.com/fwojciec/versefill/render"
	"gopkg.in/yaml.v3"
)

// Config holds the settings of one versefill invocation.
type Config struct {
	DBPath      string         `yaml:"db_path"`
	Layout      string         `yaml:"layout"`
	Fanout      int            `yaml:"fanout"`
	MarginWidth int            `yaml:"margin_width"`
	ScopePolicy string         `yaml:"scope_policy"`
	Resolver    ResolverConfig `yaml:"resolver"`
}

// ResolverConfig holds the settings of the Gemini resolver.
type ResolverConfig struct {
	Enabled           bool          `yaml:"enabled"`
	Model             string        `yaml:"model"`
	APIKey            string        `yaml:"api_key"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	MaxInputTokens    int           `yaml:"max_input_tokens"`
}

// Default returns the built-in settings.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		DBPath:      filepath.Join(home, ".versefill", "verses.db"),
		Layout:      string(render.LayoutInline),
		Fanout:      fetch.DefaultFanout,
		MarginWidth: render.DefaultMarginWidth,
		ScopePolicy: detect.ScopeLatest.String(),
		Resolver: ResolverConfig{
			Model:             gemini.DefaultModel,
			Timeout:           detect.DefaultResolverTimeout,
			RequestsPerSecond: gemini.DefaultRequestsPerSecond,
		},
	}
}

// DefaultPath returns the config file read when no path is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".versefill", "config.yaml")
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. A missing file is not an error. Returns EINVALID
// if the resulting settings are invalid.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, versefill.Errorf(versefill.EINVALID, "parsing %s: %v", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	cfg.DBPath = expandUserPath(cfg.DBPath)

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	applyEnv(&c.DBPath, "VERSEFILL_DB")
	applyEnv(&c.Layout, "VERSEFILL_LAYOUT")
	applyEnv(&c.Resolver.APIKey, "GEMINI_API_KEY")
	if v := strings.TrimSpace(os.Getenv("VERSEFILL_RESOLVER")); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return versefill.Errorf(versefill.EINVALID, "VERSEFILL_RESOLVER: %q is not a boolean", v)
		}
		c.Resolver.Enabled = enabled
	}
	return nil
}

// Validate returns an error if a setting is out of range.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return versefill.Errorf(versefill.EINVALID, "db_path required")
	}
	if _, err := render.ParseLayout(c.Layout); err != nil {
		return err
	}
	if _, err := detect.ParseScopePolicy(c.ScopePolicy); err != nil {
		return err
	}
	if c.Fanout < 1 {
		return versefill.Errorf(versefill.EINVALID, "fanout must be at least 1")
	}
	if c.MarginWidth < 1 {
		return versefill.Errorf(versefill.EINVALID, "margin_width must be at least 1")
	}
	if c.Resolver.Timeout <= 0 {
		return versefill.Errorf(versefill.EINVALID, "resolver.timeout must be positive")
	}
	if c.Resolver.RequestsPerSecond <= 0 {
		return versefill.Errorf(versefill.EINVALID, "resolver.requests_per_second must be positive")
	}
	if c.Resolver.MaxInputTokens < 0 {
		return versefill.Errorf(versefill.EINVALID, "resolver.max_input_tokens must not be negative")
	}
	return nil
}

func applyEnv(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
