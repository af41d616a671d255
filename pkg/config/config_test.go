package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadSuccess(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	content := `{
		"storage": {
			"path": "/tmp/flashdeck-test/cards.db"
		},
		"logging": {
			"level": "debug",
			"gorm_level": "warn"
		}
	}`

	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Path != "/tmp/flashdeck-test/cards.db" {
		t.Errorf("expected storage path override, got %q", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.GormLevel != "warn" {
		t.Errorf("expected gorm level warn, got %q", cfg.Logging.GormLevel)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("missing config file should not be an error, got %v", err)
	}
	if cfg.Storage.Path == "" {
		t.Fatalf("expected default storage path")
	}
	if !strings.HasSuffix(cfg.Storage.Path, filepath.Join(".flashdeck", "flashdeck.db")) {
		t.Fatalf("unexpected default storage path %q", cfg.Storage.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.Logging.Level)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	if _, err := Load(configPath); err == nil {
		t.Fatal("expected an error for malformed config")
	}
}

func TestLoadFillsEmptyStoragePath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(configPath, []byte(`{"logging":{"level":"error"}}`), 0o600); err != nil {
		t.Fatalf("failed to write config fixture: %v", err)
	}
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Storage.Path == "" {
		t.Fatalf("expected storage path backfilled from defaults")
	}
	if cfg.Logging.Level != "error" {
		t.Fatalf("expected log level error, got %q", cfg.Logging.Level)
	}
}
