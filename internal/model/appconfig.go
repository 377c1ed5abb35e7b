package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is returned for app config values PlankLay cannot use.
var ErrInvalidConfig = errors.New("invalid app config")

// LogLevels lists the accepted values of AppConfig.LogLevel.
var LogLevels = []string{"debug", "info", "warn", "error"}

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new plans
	DefaultProfile     string            `json:"default_profile"`
	DefaultMaxRows     int               `json:"default_max_rows"`
	DefaultStripPolicy OffsetStripPolicy `json:"default_strip_policy"`
	DefaultWallWidth   float64           `json:"default_wall_width"`
	DefaultWastePct    float64           `json:"default_waste_pct"` // Used by purchase estimates

	// Application preferences
	OutputDir   string   `json:"output_dir"`
	LogLevel    string   `json:"log_level"` // "debug", "info", "warn", "error"
	ServeAddr   string   `json:"serve_addr"`
	RecentPlans []string `json:"recent_plans"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultLayoutSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultLayoutSettings()
	return AppConfig{
		DefaultProfile:     "Generic",
		DefaultMaxRows:     defaults.MaxRows,
		DefaultStripPolicy: defaults.StripPolicy,
		DefaultWallWidth:   200,
		DefaultWastePct:    10,
		OutputDir:          ".",
		LogLevel:           "info",
		ServeAddr:          ":8080",
		RecentPlans:        []string{},
	}
}

// Validate checks the defaults a config would hand to new plans. An empty
// strip policy or log level means the built-in default.
func (c AppConfig) Validate() error {
	if c.DefaultStripPolicy != "" && !c.DefaultStripPolicy.Valid() {
		return fmt.Errorf("%w: unknown default strip policy %q", ErrInvalidConfig, c.DefaultStripPolicy)
	}
	if c.DefaultMaxRows < 0 || c.DefaultMaxRows > MaxRowsLimit {
		return fmt.Errorf("%w: default max rows %d must be in [0, %d]", ErrInvalidConfig, c.DefaultMaxRows, MaxRowsLimit)
	}
	if c.DefaultWallWidth <= 0 {
		return fmt.Errorf("%w: default wall width %.1f must be positive", ErrInvalidConfig, c.DefaultWallWidth)
	}
	if c.DefaultWastePct < 0 || c.DefaultWastePct > 100 {
		return fmt.Errorf("%w: default waste %.1f%% must be in [0, 100]", ErrInvalidConfig, c.DefaultWastePct)
	}
	if c.LogLevel != "" && !validLogLevel(c.LogLevel) {
		return fmt.Errorf("%w: unknown log level %q, want one of %s",
			ErrInvalidConfig, c.LogLevel, strings.Join(LogLevels, ", "))
	}
	return nil
}

func validLogLevel(level string) bool {
	for _, l := range LogLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}

// ApplyToSettings copies the default values from AppConfig into a
// LayoutSettings struct. Fields a plan already sets are kept.
func (c AppConfig) ApplyToSettings(s *LayoutSettings) {
	if s.MaxRows <= 0 {
		s.MaxRows = c.DefaultMaxRows
	}
	if s.StripPolicy == "" {
		s.StripPolicy = c.DefaultStripPolicy
	}
}

// AddRecentPlan moves path to the front of the recent plans list, keeping
// at most max entries.
func (c *AppConfig) AddRecentPlan(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentPlans {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > max {
		recent = recent[:max]
	}
	c.RecentPlans = recent
}
