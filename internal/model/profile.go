package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidProfile is returned when a supply profile cannot issue boards.
var ErrInvalidProfile = errors.New("invalid supply profile")

// MaxCapacity bounds the fresh boards of one profile, far above any
// real delivery.
const MaxCapacity = 100000

// SupplyProfile defines the fresh stock a factory hands out.
type SupplyProfile struct {
	ID                  string  `json:"id" yaml:"id"`
	Name                string  `json:"name" yaml:"name"`
	Description         string  `json:"description" yaml:"description"`
	DefaultLength       float64 `json:"default_length" yaml:"default_length"`                 // mm
	DefaultWidth        float64 `json:"default_width" yaml:"default_width"`                   // mm
	Capacity            int     `json:"capacity" yaml:"capacity"`                             // Fresh boards available
	FirstBoardShortenBy float64 `json:"first_board_shorten_by" yaml:"first_board_shorten_by"` // 0 = no opened pack
	PricePerBoard       float64 `json:"price_per_board" yaml:"price_per_board"`
	IsBuiltIn           bool    `json:"is_built_in" yaml:"-"`
}

func NewSupplyProfile(name string, length, width float64, capacity int) SupplyProfile {
	return SupplyProfile{
		ID:            uuid.New().String()[:8],
		Name:          name,
		DefaultLength: length,
		DefaultWidth:  width,
		Capacity:      capacity,
	}
}

// Validate checks that the profile can issue boards with positive size.
func (p SupplyProfile) Validate() error {
	if p.DefaultLength <= 0 || p.DefaultWidth <= 0 {
		return fmt.Errorf("%w %q: board size must be positive, got %.1fx%.1f",
			ErrInvalidProfile, p.Name, p.DefaultLength, p.DefaultWidth)
	}
	if p.Capacity < 0 || p.Capacity > MaxCapacity {
		return fmt.Errorf("%w %q: capacity %d must be in [0, %d]", ErrInvalidProfile, p.Name, p.Capacity, MaxCapacity)
	}
	if p.FirstBoardShortenBy < 0 || p.FirstBoardShortenBy >= p.DefaultLength {
		return fmt.Errorf("%w %q: first board shortening %.1f must be in [0, %.1f)",
			ErrInvalidProfile, p.Name, p.FirstBoardShortenBy, p.DefaultLength)
	}
	return nil
}

// BoardArea returns the face area of one fresh board in square mm.
func (p SupplyProfile) BoardArea() float64 {
	return p.DefaultLength * p.DefaultWidth
}

// Built-in supply profiles
var SupplyProfiles = []SupplyProfile{
	{
		ID:                  "opened74",
		Name:                "Opened Pack",
		Description:         "74 boards 2050x625, first board already shortened by 1500",
		DefaultLength:       2050,
		DefaultWidth:        625,
		Capacity:            74,
		FirstBoardShortenBy: 1500,
		IsBuiltIn:           true,
	},
	{
		ID:            "small7",
		Name:          "Small Pack",
		Description:   "7 boards 2050x625, unopened",
		DefaultLength: 2050,
		DefaultWidth:  625,
		Capacity:      7,
		IsBuiltIn:     true,
	},
	{
		ID:            "generic",
		Name:          "Generic",
		Description:   "40 boards 2000x600",
		DefaultLength: 2000,
		DefaultWidth:  600,
		Capacity:      40,
		IsBuiltIn:     true,
	},
}

// SupplyProfileNames returns the names of all built-in profiles.
func SupplyProfileNames() []string {
	var names []string
	for _, p := range SupplyProfiles {
		names = append(names, p.Name)
	}
	return names
}

// FindSupplyProfile looks a profile up by name among custom profiles first,
// then built-ins.
func FindSupplyProfile(name string, custom []SupplyProfile) (SupplyProfile, bool) {
	for _, p := range custom {
		if p.Name == name {
			return p, true
		}
	}
	for _, p := range SupplyProfiles {
		if p.Name == name {
			return p, true
		}
	}
	return SupplyProfile{}, false
}
