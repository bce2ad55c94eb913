// Package config resolves focuslog settings from defaults, an optional
// ~/.focuslog/config.yaml and FOCUSLOG_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/focuslog/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	dirName  = ".focuslog"
	fileName = "config.yaml"

	// DefaultTimezone matches the zone the day picker has always opened in.
	DefaultTimezone = "Asia/Tokyo"
)

// Config is the top-level structure for ~/.focuslog/config.yaml.
type Config struct {
	DBPath      string            `yaml:"db_path"`
	Timezone    string            `yaml:"timezone"`
	Source      domain.SourceMode `yaml:"source"`
	APIURL      string            `yaml:"api_url"`
	TimeoutMs   int               `yaml:"timeout_ms"`
	MaxRetries  int               `yaml:"max_retries"`
	LogUseCases bool              `yaml:"log_use_cases"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Home is the directory holding the config, database and credentials.
	Home string `yaml:"-"`
}

// TelemetryConfig controls the optional OTLP metrics exporter.
type TelemetryConfig struct {
	Endpoint string `yaml:"endpoint"`
	Insecure bool   `yaml:"insecure"`
}

// Dir returns the focuslog directory under the given user home.
func Dir(userHome string) string {
	return filepath.Join(userHome, dirName)
}

// DefaultConfig returns a Config with sensible defaults rooted at home.
func DefaultConfig(home string) Config {
	return Config{
		DBPath:     filepath.Join(home, "focuslog.db"),
		Timezone:   DefaultTimezone,
		Source:     domain.SourceLocal,
		TimeoutMs:  10000,
		MaxRetries: 1,
		Home:       home,
	}
}

// Load builds the effective configuration for the focuslog directory home.
// A missing config file is not an error.
func Load(home string) (Config, error) {
	cfg := DefaultConfig(home)

	if err := mergeFile(&cfg, filepath.Join(home, fileName)); err != nil {
		return cfg, err
	}
	applyEnv(&cfg)

	if !domain.ValidSourceModes[string(cfg.Source)] {
		return cfg, fmt.Errorf("unknown source %q (want local or remote)", cfg.Source)
	}
	if _, err := cfg.Location(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Location loads the configured IANA zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Timeout returns the per-request timeout for the remote session source.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	// Unmarshal over the defaults so absent keys keep their default values.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FOCUSLOG_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("FOCUSLOG_TZ"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("FOCUSLOG_SOURCE"); v != "" {
		cfg.Source = domain.SourceMode(v)
	}
	if v := os.Getenv("FOCUSLOG_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("FOCUSLOG_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("FOCUSLOG_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("FOCUSLOG_LOG"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FOCUSLOG_OTEL_ENDPOINT"); v != "" {
		cfg.Telemetry.Endpoint = v
	}
	if v := os.Getenv("FOCUSLOG_OTEL_INSECURE"); v != "" {
		cfg.Telemetry.Insecure, _ = strconv.ParseBool(v)
	}
}
