package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/PlankLay/internal/model"
)

// DefaultProfilesPath returns the default file path for custom supply profiles.
func DefaultProfilesPath() string {
	return filepath.Join(DefaultConfigDir(), "profiles.json")
}

// SaveCustomProfiles saves custom supply profiles to a JSON file.
func SaveCustomProfiles(path string, profiles []model.SupplyProfile) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadCustomProfiles loads custom supply profiles from a JSON file.
// A missing file yields no profiles.
func LoadCustomProfiles(path string) ([]model.SupplyProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.SupplyProfile{}, nil
		}
		return nil, err
	}

	var profiles []model.SupplyProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, err
	}

	// Only the binary defines built-ins
	for i := range profiles {
		profiles[i].IsBuiltIn = false
	}
	return profiles, nil
}

// AddCustomProfile validates p and stores it in the profiles file at path,
// replacing any custom profile with the same name.
func AddCustomProfile(path string, p model.SupplyProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	for _, b := range model.SupplyProfiles {
		if b.Name == p.Name {
			return fmt.Errorf("%w %q: name is taken by a built-in profile", model.ErrInvalidProfile, p.Name)
		}
	}

	profiles, err := LoadCustomProfiles(path)
	if err != nil {
		return err
	}
	p.IsBuiltIn = false
	replaced := false
	for i := range profiles {
		if profiles[i].Name == p.Name {
			profiles[i] = p
			replaced = true
		}
	}
	if !replaced {
		profiles = append(profiles, p)
	}
	return SaveCustomProfiles(path, profiles)
}

// ExportProfile writes one profile to a JSON file that ImportProfile reads.
func ExportProfile(path string, profile model.SupplyProfile) error {
	profile.IsBuiltIn = false
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ImportProfile reads a profile written by ExportProfile.
func ImportProfile(path string) (model.SupplyProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.SupplyProfile{}, err
	}

	var profile model.SupplyProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return model.SupplyProfile{}, err
	}

	profile.IsBuiltIn = false
	if profile.Name == "" {
		return model.SupplyProfile{}, errors.New("imported profile has no name")
	}
	if err := profile.Validate(); err != nil {
		return model.SupplyProfile{}, err
	}
	return profile, nil
}
