package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type Config struct {
	Storage StorageConfig `json:"storage"`
	Logging LoggingConfig `json:"logging"`
}

type StorageConfig struct {
	// Path to the SQLite database file.
	Path string `json:"path"`
}

type LoggingConfig struct {
	Level     string `json:"level"`
	File      string `json:"file"`
	GormLevel string `json:"gorm_level"`
}

// Default returns the configuration used when no config file exists: the
// database lives under ~/.flashdeck next to nothing else.
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Storage: StorageConfig{
			Path: filepath.Join(home, ".flashdeck", "flashdeck.db"),
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads the JSON config at filename on top of the defaults. A missing
// file is not an error; a malformed one is.
func Load(filename string) (Config, error) {
	cfg := Default()

	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config file: %w", err)
	}
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = Default().Storage.Path
	}
	return cfg, nil
}
