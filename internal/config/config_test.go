package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissing(t *testing.T) {
	t.Setenv("GRADEBOOK_LOG_LEVEL", "")
	t.Setenv("GRADEBOOK_LOG_FORMAT", "")
	path := filepath.Join(t.TempDir(), "missing.toml")

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workbook.DataSheet != "Calificaciones" || !cfg.Workbook.NativeFormulas || cfg.Log.Level != "warn" {
		t.Errorf("Expected defaults, got %+v", cfg)
	}

	if _, err := Load(path, true); err == nil {
		t.Error("Expected an error for a required missing file")
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("GRADEBOOK_LOG_LEVEL", "")
	t.Setenv("GRADEBOOK_LOG_FORMAT", "")
	path := filepath.Join(t.TempDir(), "gradebook.toml")
	content := `
[workbook]
data_sheet = "Notas"
native_formulas = false

[log]
level = "debug"

[output]
pretty = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workbook.DataSheet != "Notas" || cfg.Workbook.NativeFormulas {
		t.Errorf("Unexpected workbook config: %+v", cfg.Workbook)
	}
	if cfg.Workbook.ConfigSheet != "Configuracion" {
		t.Errorf("Expected default config sheet to survive, got %q", cfg.Workbook.ConfigSheet)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" || !cfg.Output.Pretty {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[workbook\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, false); err == nil {
		t.Error("Expected a parse error")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("GRADEBOOK_LOG_LEVEL", "error")
	t.Setenv("GRADEBOOK_LOG_FORMAT", "json")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.toml"), false)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Level != "error" || cfg.Log.Format != "json" {
		t.Errorf("Expected env overrides, got %+v", cfg.Log)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("GRADEBOOK_LOG_LEVEL", "")
	t.Setenv("GRADEBOOK_LOG_FORMAT", "")
	path := filepath.Join(t.TempDir(), "out.toml")

	cfg := DefaultConfig()
	cfg.Workbook.HeaderFill = "#FFEEAA"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path, true)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Expected %+v, got %+v", cfg, loaded)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := LogConfig{Level: tt.level}.SlogLevel()
		if (err != nil) != tt.wantErr || got != tt.expected {
			t.Errorf("SlogLevel(%q) = %v, %v", tt.level, got, err)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := LogConfig{Level: "warn", Format: "json"}.NewLogger(&buf)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}

	logger.Info("hidden")
	logger.Warn("shown", "label", "Examen")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"label":"Examen"`) {
		t.Errorf("Expected JSON attributes, got %s", out)
	}

	if _, err := (LogConfig{Format: "xml"}).NewLogger(&buf); err == nil {
		t.Error("Expected an error for an unknown format")
	}
}
