package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/PlankLay/internal/model"
)

func TestSaveAndLoadCustomProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")

	profiles := []model.SupplyProfile{
		{Name: "Oak", DefaultLength: 1800, DefaultWidth: 190, Capacity: 20, IsBuiltIn: true},
		{Name: "Vinyl", DefaultLength: 1220, DefaultWidth: 180, Capacity: 10, PricePerBoard: 4.5},
	}

	if err := SaveCustomProfiles(path, profiles); err != nil {
		t.Fatalf("SaveCustomProfiles failed: %v", err)
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatalf("LoadCustomProfiles failed: %v", err)
	}
	if len(loaded) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(loaded))
	}
	if loaded[0].IsBuiltIn {
		t.Error("loaded profiles must not be marked built-in")
	}
	if loaded[1].PricePerBoard != 4.5 {
		t.Errorf("expected price 4.5, got %f", loaded[1].PricePerBoard)
	}
}

func TestLoadCustomProfilesMissingFile(t *testing.T) {
	profiles, err := LoadCustomProfiles(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profiles == nil || len(profiles) != 0 {
		t.Errorf("expected empty slice, got %v", profiles)
	}
}

func TestLoadCustomProfilesInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")
	if err := os.WriteFile(path, []byte("[{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCustomProfiles(path); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestAddCustomProfileReplacesByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")

	if err := AddCustomProfile(path, model.SupplyProfile{Name: "Oak", DefaultLength: 1800, DefaultWidth: 190, Capacity: 20}); err != nil {
		t.Fatalf("AddCustomProfile failed: %v", err)
	}
	if err := AddCustomProfile(path, model.SupplyProfile{Name: "Oak", DefaultLength: 1800, DefaultWidth: 190, Capacity: 30}); err != nil {
		t.Fatalf("AddCustomProfile failed: %v", err)
	}

	loaded, err := LoadCustomProfiles(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded) != 1 || loaded[0].Capacity != 30 {
		t.Errorf("expected one Oak profile with capacity 30, got %+v", loaded)
	}
}

func TestAddCustomProfileRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.json")

	err := AddCustomProfile(path, model.SupplyProfile{Name: "Broken", DefaultWidth: 190})
	if !errors.Is(err, model.ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
	err = AddCustomProfile(path, model.SupplyProfile{Name: "Generic", DefaultLength: 1, DefaultWidth: 1})
	if !errors.Is(err, model.ErrInvalidProfile) {
		t.Errorf("expected built-in name clash to fail, got %v", err)
	}
}

func TestExportImportProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oak.json")
	src, ok := model.FindSupplyProfile("Opened Pack", nil)
	if !ok {
		t.Fatal("built-in profile missing")
	}

	if err := ExportProfile(path, src); err != nil {
		t.Fatalf("ExportProfile failed: %v", err)
	}
	got, err := ImportProfile(path)
	if err != nil {
		t.Fatalf("ImportProfile failed: %v", err)
	}
	if got.IsBuiltIn {
		t.Error("imported profile must not be built-in")
	}
	if got.FirstBoardShortenBy != 1500 || got.Capacity != 74 {
		t.Errorf("profile fields lost: %+v", got)
	}
}

func TestImportProfileWithoutName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anon.json")
	if err := os.WriteFile(path, []byte(`{"default_length":1000,"default_width":100}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportProfile(path); err == nil {
		t.Fatal("expected error for profile without name")
	}
}
