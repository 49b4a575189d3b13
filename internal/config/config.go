package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings shared by all gosolid commands.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is text or json.
	LogFormat string `yaml:"log_format"`

	// WeldTolerance merges STL facet corners closer than this into one
	// vertex. Zero welds only identical coordinates.
	WeldTolerance float64 `yaml:"weld_tolerance"`

	// Precision is the number of decimals printed for measurements.
	Precision int `yaml:"precision"`

	// WatchDebounce delays reloads after a file change.
	WatchDebounce time.Duration `yaml:"watch_debounce"`

	// AutoOrient orients solids after loading.
	AutoOrient bool `yaml:"auto_orient"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:      "warn",
		LogFormat:     "text",
		WeldTolerance: 1e-6,
		Precision:     6,
		WatchDebounce: 250 * time.Millisecond,
		AutoOrient:    true,
	}
}

// Load builds the configuration with priority: env > file > defaults. An
// empty path or a missing file leaves the defaults in place.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadFromEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("config file not found, using defaults", slog.String("path", path))
			return nil
		}
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("GOSOLID_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GOSOLID_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("GOSOLID_WELD_TOLERANCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: GOSOLID_WELD_TOLERANCE %q: %w", ErrInvalid, v, err)
		}
		cfg.WeldTolerance = f
	}
	if v := os.Getenv("GOSOLID_PRECISION"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: GOSOLID_PRECISION %q: %w", ErrInvalid, v, err)
		}
		cfg.Precision = i
	}
	if v := os.Getenv("GOSOLID_WATCH_DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: GOSOLID_WATCH_DEBOUNCE %q: %w", ErrInvalid, v, err)
		}
		cfg.WatchDebounce = d
	}
	if v := os.Getenv("GOSOLID_AUTO_ORIENT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: GOSOLID_AUTO_ORIENT %q: %w", ErrInvalid, v, err)
		}
		cfg.AutoOrient = b
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log_level %q must be debug, info, warn or error", ErrInvalid, c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q must be text or json", ErrInvalid, c.LogFormat)
	}
	if c.WeldTolerance < 0 {
		return fmt.Errorf("%w: weld_tolerance must be >= 0", ErrInvalid)
	}
	if c.Precision < 0 || c.Precision > 15 {
		return fmt.Errorf("%w: precision must be between 0 and 15", ErrInvalid)
	}
	if c.WatchDebounce < 0 {
		return fmt.Errorf("%w: watch_debounce must be >= 0", ErrInvalid)
	}
	return nil
}
