// Package config provides configuration loading from a YAML file and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = 3000

	// DefaultLogLevel is used when no level is configured.
	DefaultLogLevel = "info"
)

// Environment variables that override file settings.
const (
	EnvPort        = "PORT"
	EnvRoot        = "BLOCKBOARD_ROOT"
	EnvCompression = "BLOCKBOARD_COMPRESSION"
	EnvRateLimit   = "BLOCKBOARD_RATE_LIMIT"
	EnvLogLevel    = "BLOCKBOARD_LOG_LEVEL"
)

var (
	// ErrInvalidPort is returned when the port is outside 1-65535.
	ErrInvalidPort = errors.New("port must be between 1 and 65535")

	// ErrInvalidRoot is returned when the asset root is not a readable directory.
	ErrInvalidRoot = errors.New("asset root is not a readable directory")
)

// Config holds the application configuration.
type Config struct {
	Port int `yaml:"port"`

	// Root is a directory to serve instead of the embedded bundle.
	Root string `yaml:"root"`

	Compression bool `yaml:"compression"`

	// CacheAssets keeps compressed bodies in memory between requests.
	CacheAssets bool `yaml:"cache_assets"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
	LogLevel  string          `yaml:"log_level"`
}

// RateLimitConfig limits requests per client IP. RPS 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

// Enabled reports whether rate limiting is switched on.
func (r RateLimitConfig) Enabled() bool {
	return r.RPS > 0
}

// BurstOrDefault returns the burst size, at least 1 and at least RPS.
func (r RateLimitConfig) BurstOrDefault() int {
	if r.Burst > 0 {
		return r.Burst
	}
	if b := int(r.RPS); b > 1 {
		return b
	}
	return 1
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:        DefaultPort,
		Compression: true,
		CacheAssets: true,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads the YAML file at path (if any), then applies environment
// overrides. A missing file at a non-empty path is an error; an empty path
// means defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPort, err)
		}
		c.Port = port
	}
	if v := os.Getenv(EnvRoot); v != "" {
		c.Root = v
	}
	if v := os.Getenv(EnvCompression); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCompression, err)
		}
		c.Compression = on
	}
	if v := os.Getenv(EnvRateLimit); v != "" {
		rl, err := parseRateLimit(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvRateLimit, err)
		}
		c.RateLimit = rl
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

// parseRateLimit reads "rps" or "rps:burst".
func parseRateLimit(v string) (RateLimitConfig, error) {
	rpsText, burstText, hasBurst := strings.Cut(v, ":")

	rps, err := strconv.ParseFloat(strings.TrimSpace(rpsText), 64)
	if err != nil {
		return RateLimitConfig{}, fmt.Errorf("invalid rate %q", rpsText)
	}
	rl := RateLimitConfig{RPS: rps}

	if hasBurst {
		burst, err := strconv.Atoi(strings.TrimSpace(burstText))
		if err != nil {
			return RateLimitConfig{}, fmt.Errorf("invalid burst %q", burstText)
		}
		rl.Burst = burst
	}
	return rl, nil
}

// Validate checks the configuration for values the server cannot run with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, c.Port)
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit: rps and burst cannot be negative")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if c.Root != "" {
		info, err := os.Stat(c.Root)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRoot, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%w: %s", ErrInvalidRoot, c.Root)
		}
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
