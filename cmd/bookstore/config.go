package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the bookstore server configuration.
type Config struct {
	Addr        string          `yaml:"addr" toml:"addr" validate:"required,hostname_port"`
	ContextPath string          `yaml:"context_path" toml:"context_path" validate:"omitempty,startswith=/,endsnotwith=/"`
	Charset     string          `yaml:"charset" toml:"charset" validate:"required"`
	MaxForwards int             `yaml:"max_forwards" toml:"max_forwards" validate:"gte=1,lte=100"`
	Codec       string          `yaml:"codec" toml:"codec" validate:"oneof=json yaml"`
	Tracing     bool            `yaml:"tracing" toml:"tracing"`
	Log         LogConfig       `yaml:"log" toml:"log"`
	Metrics     MetricsConfig   `yaml:"metrics" toml:"metrics"`
	RateLimit   RateLimitConfig `yaml:"rate_limit" toml:"rate_limit"`
}

// LogConfig selects the log level and handler format.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" toml:"format" validate:"oneof=text json"`
}

// MetricsConfig mounts the Prometheus endpoint below the context path.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Path    string `yaml:"path" toml:"path" validate:"required,startswith=/"`
}

// RateLimitConfig caps the write routes. A zero RPS disables the limit.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" toml:"rps" validate:"gte=0"`
	Burst int     `yaml:"burst" toml:"burst" validate:"gte=0"`
}

func defaultConfig() Config {
	return Config{
		Addr:        ":8080",
		Charset:     "utf-8",
		MaxForwards: 10,
		Codec:       "json",
		Log:         LogConfig{Level: "info", Format: "text"},
		Metrics:     MetricsConfig{Enabled: true, Path: "/metrics"},
	}
}

var errUnsupportedFormat = errors.New("unsupported config format")

// loadConfig reads the file at path over the defaults and validates the
// result. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err := os.Open(path) //nolint:gosec // user-provided CLI flag
		if err != nil {
			return fmt.Errorf("open config: %w", err)
		}
		defer f.Close() //nolint:errcheck // read-only file

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		return nil

	case ".toml":
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("decode %s: unknown keys %v", path, undecoded)
		}
		return nil

	default:
		return fmt.Errorf("%w: %q", errUnsupportedFormat, ext)
	}
}

// newLogger builds the process logger from the log section.
func newLogger(cfg LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
