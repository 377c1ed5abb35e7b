package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/PlankLay/internal/model"
)

// DefaultConfigDir returns ~/.planklay, or ./.planklay without a home dir.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".planklay")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig validates config and writes it to path as indented JSON,
// creating missing parent directories.
func SaveAppConfig(path string, config model.AppConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// LoadAppConfig reads the config at path on top of DefaultAppConfig, so
// fields missing from the file keep their defaults. A missing file yields
// the defaults. Values PlankLay cannot use fail with model.ErrInvalidConfig.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return model.AppConfig{}, err
	}
	config.LogLevel = strings.ToLower(config.LogLevel)
	if config.RecentPlans == nil {
		config.RecentPlans = []string{}
	}
	return config, nil
}
