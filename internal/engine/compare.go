package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/piwi3910/GiftPack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.SolverSettings
}

// ComparisonResult holds the solve result and computed statistics for a
// single scenario.
type ComparisonResult struct {
	Scenario    ComparisonScenario
	Result      model.SolveResult
	SolvedCount int
	Nodes       int64
	Elapsed     time.Duration
}

// CompareStrategies solves the problem once per scenario and returns the
// results in scenario order. Every scenario must reach the same solved count;
// the interesting columns are Nodes and Elapsed.
func CompareStrategies(ctx context.Context, scenarios []ComparisonScenario, problem model.Problem) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := New(scenario.Settings).SolveProblem(ctx, problem)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		results = append(results, ComparisonResult{
			Scenario:    scenario,
			Result:      result,
			SolvedCount: result.SolvedCount(),
			Nodes:       result.TotalNodes(),
			Elapsed:     result.Elapsed,
		})
	}

	return results, nil
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, toggling one heuristic at a time.
func BuildDefaultScenarios(base model.SolverSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	altOrder := base
	if base.QueueOrder == model.QueueLargestFirst {
		altOrder.QueueOrder = model.QueueCatalog
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Catalog Order",
			Settings: altOrder,
		})
	} else {
		altOrder.QueueOrder = model.QueueLargestFirst
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Largest First",
			Settings: altOrder,
		})
	}

	if base.AreaPrecheck {
		noPrecheck := base
		noPrecheck.AreaPrecheck = false
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Area Precheck",
			Settings: noPrecheck,
		})
	}

	if base.DedupOrientations {
		allOrientations := base
		allOrientations.DedupOrientations = false
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "All Six Orientations",
			Settings: allOrientations,
		})
	}

	return scenarios
}
