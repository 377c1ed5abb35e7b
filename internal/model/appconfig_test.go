package model

import (
	"errors"
	"testing"
)

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultLayoutSettings()

	if cfg.DefaultMaxRows != defaults.MaxRows {
		t.Errorf("MaxRows mismatch: config=%d settings=%d", cfg.DefaultMaxRows, defaults.MaxRows)
	}
	if cfg.DefaultStripPolicy != defaults.StripPolicy {
		t.Errorf("StripPolicy mismatch: config=%s settings=%s", cfg.DefaultStripPolicy, defaults.StripPolicy)
	}
	if cfg.DefaultProfile != "Generic" {
		t.Errorf("expected default profile=Generic, got %s", cfg.DefaultProfile)
	}
	if cfg.RecentPlans == nil {
		t.Error("RecentPlans should not be nil")
	}
}

func TestApplyToSettingsFillsOnlyZeroValues(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultMaxRows = 42
	cfg.DefaultStripPolicy = StripRelease

	var s LayoutSettings
	cfg.ApplyToSettings(&s)
	if s.MaxRows != 42 {
		t.Errorf("expected MaxRows=42, got %d", s.MaxRows)
	}
	if s.StripPolicy != StripRelease {
		t.Errorf("expected StripPolicy=release, got %s", s.StripPolicy)
	}

	s = LayoutSettings{MaxRows: 7, StripPolicy: StripDiscard}
	cfg.ApplyToSettings(&s)
	if s.MaxRows != 7 || s.StripPolicy != StripDiscard {
		t.Errorf("explicit settings were overwritten: %+v", s)
	}
}

func TestAddRecentPlan(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentPlan("a.yaml", 2)
	cfg.AddRecentPlan("b.yaml", 2)
	cfg.AddRecentPlan("a.yaml", 2)
	cfg.AddRecentPlan("c.yaml", 2)

	if len(cfg.RecentPlans) != 2 {
		t.Fatalf("expected 2 recent plans, got %d", len(cfg.RecentPlans))
	}
	if cfg.RecentPlans[0] != "c.yaml" || cfg.RecentPlans[1] != "a.yaml" {
		t.Errorf("unexpected recent plans order: %v", cfg.RecentPlans)
	}
}

func TestAppConfigValidate(t *testing.T) {
	if err := DefaultAppConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	tests := []struct {
		name   string
		modify func(*AppConfig)
		ok     bool
	}{
		{"empty strip policy", func(c *AppConfig) { c.DefaultStripPolicy = "" }, true},
		{"release policy", func(c *AppConfig) { c.DefaultStripPolicy = StripRelease }, true},
		{"unknown strip policy", func(c *AppConfig) { c.DefaultStripPolicy = "burn" }, false},
		{"upper case log level", func(c *AppConfig) { c.LogLevel = "DEBUG" }, true},
		{"empty log level", func(c *AppConfig) { c.LogLevel = "" }, true},
		{"unknown log level", func(c *AppConfig) { c.LogLevel = "trace" }, false},
		{"negative max rows", func(c *AppConfig) { c.DefaultMaxRows = -1 }, false},
		{"max rows at limit", func(c *AppConfig) { c.DefaultMaxRows = MaxRowsLimit }, true},
		{"max rows over limit", func(c *AppConfig) { c.DefaultMaxRows = MaxRowsLimit + 1 }, false},
		{"zero wall width", func(c *AppConfig) { c.DefaultWallWidth = 0 }, false},
		{"waste over 100", func(c *AppConfig) { c.DefaultWastePct = 150 }, false},
	}
	for _, tt := range tests {
		cfg := DefaultAppConfig()
		tt.modify(&cfg)
		err := cfg.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tt.name, err)
		}
	}
}
