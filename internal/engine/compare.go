package engine

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/piwi3910/PlankLay/internal/model"
)

// ComparisonScenario defines a named variant of a plan to compare.
type ComparisonScenario struct {
	Name     string
	Profile  model.SupplyProfile
	Settings model.LayoutSettings
}

// ComparisonResult holds the layout result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       model.PlanResult
	Err          error
	BoardsPlaced int
	FreshUsed    int
	Reused       int
	LeftoverArea float64
	Exhausted    bool
}

// CompareScenarios runs the plan once per scenario, each against its own
// factory, and returns the results in scenario order. Scenario logs are
// discarded.
func CompareScenarios(scenarios []ComparisonScenario, plan model.Plan) []ComparisonResult {
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		variant := plan
		variant.Profile = scenario.Profile
		variant.Settings = scenario.Settings

		result, err := Run(variant, quiet)

		var leftover float64
		for _, b := range result.Leftover {
			leftover += b.Area()
		}

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Result:       result,
			Err:          err,
			BoardsPlaced: result.BoardsPlaced(),
			FreshUsed:    result.FreshUsed,
			Reused:       result.Reused,
			LeftoverArea: leftover,
			Exhausted:    result.Exhausted,
		})
	}

	return results
}

// BuildDefaultScenarios generates what-if variants of a plan: the plan as
// given, the other first-row strip policy, an unopened pack, and each
// built-in profile with different board dimensions.
func BuildDefaultScenarios(plan model.Plan) []ComparisonScenario {
	base := plan.Settings.WithDefaults()
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Plan",
			Profile:  plan.Profile,
			Settings: base,
		},
	}

	// Scenario: the other strip policy, only meaningful with an offset
	for _, r := range plan.Regions {
		if r.FirstRowOffset > 0 {
			alt := base
			if base.StripPolicy == model.StripRelease {
				alt.StripPolicy = model.StripDiscard
			} else {
				alt.StripPolicy = model.StripRelease
			}
			scenarios = append(scenarios, ComparisonScenario{
				Name:     fmt.Sprintf("Strips: %s", alt.StripPolicy),
				Profile:  plan.Profile,
				Settings: alt,
			})
			break
		}
	}

	// Scenario: same stock from an unopened pack
	if plan.Profile.FirstBoardShortenBy > 0 {
		fresh := plan.Profile
		fresh.FirstBoardShortenBy = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Unopened Pack",
			Profile:  fresh,
			Settings: base,
		})
	}

	// Scenario: built-in profiles with other board sizes
	for _, p := range model.SupplyProfiles {
		if p.DefaultLength == plan.Profile.DefaultLength && p.DefaultWidth == plan.Profile.DefaultWidth {
			continue
		}
		if !fitsOffsets(plan, p) {
			continue
		}
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("%s (%.0fx%.0f)", p.Name, p.DefaultLength, p.DefaultWidth),
			Profile:  p,
			Settings: base,
		})
	}

	return scenarios
}

// fitsOffsets reports whether every first-row offset of the plan is
// narrower than boards from profile.
func fitsOffsets(plan model.Plan, profile model.SupplyProfile) bool {
	for _, r := range plan.Regions {
		if r.FirstRowOffset >= profile.DefaultWidth {
			return false
		}
	}
	return true
}
