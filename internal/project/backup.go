package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/PlankLay/internal/model"
)

// BackupData bundles the app config and custom profiles in one file.
type BackupData struct {
	Version   string                `json:"version"`
	CreatedAt string                `json:"created_at"`
	Config    model.AppConfig       `json:"config"`
	Profiles  []model.SupplyProfile `json:"profiles"`
}

// ExportAllData exports the config and custom supply profiles to a single
// JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, profiles []model.SupplyProfile) error {
	if profiles == nil {
		profiles = []model.SupplyProfile{}
	}
	backup := BackupData{
		Version:   "1.0.0",
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Profiles:  profiles,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	dir := filepath.Dir(exportPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	if err := os.WriteFile(exportPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a file written by ExportAllData.
// The caller is responsible for applying the imported config and profiles.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if err := backup.Config.Validate(); err != nil {
		return BackupData{}, fmt.Errorf("invalid backup file: %w", err)
	}
	if backup.Config.RecentPlans == nil {
		backup.Config.RecentPlans = []string{}
	}
	if backup.Profiles == nil {
		backup.Profiles = []model.SupplyProfile{}
	}
	for i := range backup.Profiles {
		backup.Profiles[i].IsBuiltIn = false
	}
	return backup, nil
}
