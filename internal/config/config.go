// Package config loads the gradebook command configuration.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "gradebook.toml"

// AppConfig is the gradebook configuration.
type AppConfig struct {
	Workbook WorkbookConfig `toml:"workbook"`
	Log      LogConfig      `toml:"log"`
	Output   OutputConfig   `toml:"output"`
}

// WorkbookConfig controls how workbooks are exported.
type WorkbookConfig struct {
	DataSheet      string `toml:"data_sheet"`
	ConfigSheet    string `toml:"config_sheet"`
	HeaderFill     string `toml:"header_fill"`
	NativeFormulas bool   `toml:"native_formulas"`
}

// LogConfig controls diagnostics.
type LogConfig struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // text, json
}

// OutputConfig controls JSON output.
type OutputConfig struct {
	Pretty bool `toml:"pretty"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Workbook: WorkbookConfig{
			DataSheet:      "Calificaciones",
			ConfigSheet:    "Configuracion",
			HeaderFill:     "#E2E8F0",
			NativeFormulas: true,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file is not an error unless required is set.
func Load(path string, required bool) (*AppConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv applies environment overrides.
func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("GRADEBOOK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("GRADEBOOK_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// Save writes the configuration to path.
func Save(path string, cfg *AppConfig) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SlogLevel maps the configured level name to a slog level.
func (c LogConfig) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %s", c.Level)
}

// NewLogger builds a structured logger writing to w.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := c.SlogLevel()
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("invalid log format: %s", c.Format)
}
