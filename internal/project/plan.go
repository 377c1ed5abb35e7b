package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/PlankLay/internal/model"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for plan files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported plan format")

// PlanFile is the on-disk form of a plan. A plan either names a supply
// profile or embeds one, and either lists regions or describes a room from
// which a single region is built.
type PlanFile struct {
	ID          string               `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string               `json:"name" yaml:"name"`
	ProfileName string               `json:"profile_name,omitempty" yaml:"profile_name,omitempty"`
	Profile     *model.SupplyProfile `json:"profile,omitempty" yaml:"profile,omitempty"`
	Settings    model.LayoutSettings `json:"settings" yaml:"settings"`
	Room        *model.Room          `json:"room,omitempty" yaml:"room,omitempty"`
	Orientation model.Orientation    `json:"orientation,omitempty" yaml:"orientation,omitempty"` // Room layouts only
	Offset      float64              `json:"first_row_offset,omitempty" yaml:"first_row_offset,omitempty"`
	Regions     []model.Region       `json:"regions,omitempty" yaml:"regions,omitempty"`
}

func planFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".json":
		return "json", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// ReadPlanFile parses a plan file without resolving it.
func ReadPlanFile(path string) (PlanFile, error) {
	format, err := planFormat(path)
	if err != nil {
		return PlanFile{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return PlanFile{}, err
	}

	var pf PlanFile
	if format == "yaml" {
		err = yaml.Unmarshal(data, &pf)
	} else {
		err = json.Unmarshal(data, &pf)
	}
	if err != nil {
		return PlanFile{}, fmt.Errorf("failed to parse plan %s: %w", path, err)
	}
	return pf, nil
}

// Resolve turns the file form into a runnable plan. Profile names are
// looked up among custom profiles first, then built-ins; config supplies
// defaults the file leaves unset.
func (pf PlanFile) Resolve(config model.AppConfig, custom []model.SupplyProfile) (model.Plan, error) {
	var profile model.SupplyProfile
	switch {
	case pf.Profile != nil:
		profile = *pf.Profile
		profile.IsBuiltIn = false
	default:
		name := pf.ProfileName
		if name == "" {
			name = config.DefaultProfile
		}
		p, ok := model.FindSupplyProfile(name, custom)
		if !ok {
			return model.Plan{}, fmt.Errorf("%w: unknown profile %q", model.ErrInvalidProfile, name)
		}
		profile = p
	}

	plan := model.NewPlan(pf.Name, profile)
	if pf.ID != "" {
		plan.ID = pf.ID
	}
	if err := pf.Settings.Validate(); err != nil {
		return model.Plan{}, err
	}
	plan.Settings = pf.Settings
	config.ApplyToSettings(&plan.Settings)
	plan.Settings = plan.Settings.WithDefaults()

	plan.Regions = append(plan.Regions, pf.Regions...)
	if pf.Room != nil {
		if err := pf.Room.Validate(); err != nil {
			return model.Plan{}, fmt.Errorf("%w: %v", model.ErrInvalidRegion, err)
		}
		room := *pf.Room
		plan.Room = &room
		if len(pf.Regions) == 0 {
			o := pf.Orientation
			if o == "" {
				o = model.Horizontal
			}
			plan.Regions = append(plan.Regions, room.Region("floor", o, pf.Offset))
		}
	}

	if err := plan.Validate(); err != nil {
		return model.Plan{}, err
	}
	return plan, nil
}

// LoadPlan reads and resolves a plan file in one step.
func LoadPlan(path string, config model.AppConfig, custom []model.SupplyProfile) (model.Plan, error) {
	pf, err := ReadPlanFile(path)
	if err != nil {
		return model.Plan{}, err
	}
	plan, err := pf.Resolve(config, custom)
	if err != nil {
		return model.Plan{}, fmt.Errorf("plan %s: %w", path, err)
	}
	return plan, nil
}

// SavePlan writes a resolved plan with its embedded profile, in YAML or
// JSON depending on the file extension.
func SavePlan(path string, plan model.Plan) error {
	format, err := planFormat(path)
	if err != nil {
		return err
	}
	profile := plan.Profile
	profile.IsBuiltIn = false
	pf := PlanFile{
		ID:       plan.ID,
		Name:     plan.Name,
		Profile:  &profile,
		Settings: plan.Settings,
		Room:     plan.Room,
		Regions:  plan.Regions,
	}

	var data []byte
	if format == "yaml" {
		data, err = yaml.Marshal(pf)
	} else {
		data, err = json.MarshalIndent(pf, "", "  ")
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
