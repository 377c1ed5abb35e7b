package engine

import (
	"fmt"
	"log/slog"

	"github.com/piwi3910/PlankLay/internal/model"
)

// Run lays every region of the plan in order from one shared factory, so
// offcuts left by one region are reused by the next. A row-limit error in
// a region stops the run and is returned with the layouts made so far.
func Run(plan model.Plan, logger *slog.Logger) (model.PlanResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := plan.Validate(); err != nil {
		return model.PlanResult{}, fmt.Errorf("plan %q: %w", plan.Name, err)
	}

	factory, err := NewBoardFactory(plan.Profile, logger)
	if err != nil {
		return model.PlanResult{}, fmt.Errorf("plan %q: %w", plan.Name, err)
	}
	settings := plan.Settings.WithDefaults()

	result := model.PlanResult{
		Plan:    plan.Name,
		Profile: plan.Profile.Name,
		Layouts: make([]model.Layout, 0, len(plan.Regions)),
	}

	var runErr error
	for _, region := range plan.Regions {
		logger.Info("layout: placing region",
			"plan", plan.Name, "region", region.Name, "orientation", region.Orientation,
			"fresh_left", factory.Remaining(), "stacked", factory.Stacked())
		layout, err := NewPlacer(factory, region, settings, logger).Place()
		result.Layouts = append(result.Layouts, layout)
		if layout.Exhausted {
			result.Exhausted = true
		}
		if err != nil {
			runErr = fmt.Errorf("plan %q: %w", plan.Name, err)
			break
		}
	}

	result.Leftover = factory.Offcuts()
	result.FreshUsed = factory.FreshIssued()
	result.Reused = factory.Reused()
	result.Remaining = factory.Remaining()

	logger.Info("layout: plan finished",
		"plan", plan.Name, "boards", result.BoardsPlaced(), "fresh", result.FreshUsed,
		"reused", result.Reused, "leftover", len(result.Leftover), "exhausted", result.Exhausted)
	return result, runErr
}
