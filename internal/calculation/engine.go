package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/ramp/cost-calculator/internal/domain"
)

// CalculationEngine runs the amortization calculator for single inputs and
// scenario files, checking every result before handing it out.
type CalculationEngine struct {
	Debug  bool // Log every period of each computed series
	Logger Logger
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Calculate computes one set of inputs. Horizon adjustments are logged at
// info, negative savings at warn; neither is an error.
func (ce *CalculationEngine) Calculate(ctx context.Context, in domain.CalculatorInputs) (*domain.AmortizationResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err := Compute(in)
	if err != nil {
		if errors.Is(err, domain.ErrInvariantViolation) {
			ce.Logger.Errorf("amortization result rejected: %v", err)
		}
		return nil, err
	}

	if result.HorizonAdjusted {
		ce.Logger.Infof("analysis horizon raised from %d to %d %ss (rebuild %d + %d-year incentive window)",
			result.RequestedHorizon, result.EffectiveHorizon, result.Inputs.Granularity.Unit(),
			result.Inputs.RebuildDuration, domain.IncentiveWindowYears)
	}
	if result.NegativeSavings {
		ce.Logger.Warnf("reduced annual cost $%sM exceeds current annual cost $%sM; savings and payouts are negative",
			result.Inputs.ReducedAnnualCost.StringFixed(2), result.Inputs.CurrentAnnualCost.StringFixed(2))
	}
	if ce.Debug {
		ce.logSeries(result)
	}
	return result, nil
}

func (ce *CalculationEngine) logSeries(result *domain.AmortizationResult) {
	ce.Logger.Debugf("%-8s %12s %12s %12s %12s", "PERIOD", "BASELINE", "MODERNIZED", "PAYOUT", "SAVINGS")
	for i := 0; i < result.Periods(); i++ {
		ce.Logger.Debugf("%-8d %12s %12s %12s %12s", i+1,
			result.Series.Baseline[i].StringFixed(2),
			result.Series.Modernized[i].StringFixed(2),
			result.Payouts[i].StringFixed(2),
			result.Series.Savings[i].StringFixed(2))
	}
	ce.Logger.Debugf("TOTAL    %12s %12s %12s %12s",
		result.Totals.Baseline.StringFixed(2),
		result.Totals.Modernized.StringFixed(2),
		result.Totals.Payouts.StringFixed(2),
		result.Totals.Savings.StringFixed(2))
}

// RunScenario calculates a single scenario resolved against the file-level settings in config.
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (*domain.ScenarioResult, error) {
	if scenario == nil {
		return nil, errors.New("scenario is nil")
	}
	ce.Logger.Debugf("running scenario %q", scenario.Name)

	result, err := ce.Calculate(ctx, scenario.CalculatorInputs(config))
	if err != nil {
		return nil, err
	}
	return &domain.ScenarioResult{
		Name:        scenario.Name,
		Description: scenario.Description,
		Result:      result,
	}, nil
}

// RunScenarios runs all scenarios in order and returns a comparison
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	if config == nil || len(config.Scenarios) == 0 {
		return nil, errors.New("no scenarios to run")
	}

	results := make([]domain.ScenarioResult, 0, len(config.Scenarios))
	for i := range config.Scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result, err := ce.RunScenario(ctx, config, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed for %q: %w", config.Scenarios[i].Name, err)
		}
		results = append(results, *result)
	}

	comparison := &domain.ScenarioComparison{
		Scenarios:    results,
		BestScenario: bestScenario(results),
		Assumptions:  config.GenerateAssumptions(),
		GeneratedAt:  nowFunc(),
	}
	ce.Logger.Infof("ran %d scenario(s); best by total savings: %s", len(results), comparison.BestScenario)
	return comparison, nil
}

// CompareInputs wraps a single calculation in a one-scenario comparison so
// that every report formatter can render it.
func (ce *CalculationEngine) CompareInputs(ctx context.Context, name string, in domain.CalculatorInputs) (*domain.ScenarioComparison, error) {
	result, err := ce.Calculate(ctx, in)
	if err != nil {
		return nil, err
	}
	cfg := &domain.Configuration{Granularity: result.Inputs.Granularity, FiscalYearStart: result.Inputs.FiscalYearStart}
	return &domain.ScenarioComparison{
		Scenarios:    []domain.ScenarioResult{{Name: name, Result: result}},
		BestScenario: name,
		Assumptions:  cfg.GenerateAssumptions(),
		GeneratedAt:  nowFunc(),
	}, nil
}
