package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"viewport2d/internal/geom"
)

type Config struct {
	Step       float64 `envconfig:"STEP" default:"1"`
	WindowMode string  `envconfig:"WINDOW_MODE" default:"legacy"`
	ZoomIn     float64 `envconfig:"ZOOM_IN" default:"0.9"`
	ZoomOut    float64 `envconfig:"ZOOM_OUT" default:"1.1"`
	LogFile    string  `envconfig:"LOG_FILE" default:"viewport2d.log"`
	LogLevel   string  `envconfig:"LOG_LEVEL" default:"info"`
	ExportDir  string  `envconfig:"EXPORT_DIR"`
}

// Load reads VIEWPORT2D_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("viewport2d", &cfg); err != nil {
		return nil, err
	}
	if _, err := cfg.Mode(); err != nil {
		return nil, err
	}
	if cfg.ZoomIn <= 0 || cfg.ZoomOut <= 0 {
		return nil, fmt.Errorf("config: zoom factors must be positive, got %v and %v", cfg.ZoomIn, cfg.ZoomOut)
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Mode() (geom.Mode, error) { return geom.ParseMode(c.WindowMode) }

func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return l, nil
}
