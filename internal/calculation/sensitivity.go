package calculation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ramp/cost-calculator/internal/domain"
	money "github.com/ramp/cost-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// maxSensitivitySteps bounds a single sweep.
const maxSensitivitySteps = 200

// SweepValues returns Steps evenly spaced values from MinValue to MaxValue inclusive.
func SweepValues(p domain.SensitivityParameter) ([]decimal.Decimal, error) {
	if p.Steps < 1 || p.Steps > maxSensitivitySteps {
		return nil, &domain.ValidationError{Field: "steps", Reason: fmt.Sprintf("must be between 1 and %d", maxSensitivitySteps)}
	}
	if p.MaxValue.LessThan(p.MinValue) {
		return nil, &domain.ValidationError{Field: "max_value", Reason: "must not be below min_value"}
	}
	if p.Steps == 1 {
		return []decimal.Decimal{p.MinValue}, nil
	}

	step := p.MaxValue.Sub(p.MinValue).Div(decimal.NewFromInt(int64(p.Steps - 1)))
	values := make([]decimal.Decimal, p.Steps)
	for i := range values {
		values[i] = p.MinValue.Add(step.Mul(decimal.NewFromInt(int64(i))))
	}
	values[len(values)-1] = p.MaxValue
	return values, nil
}

// ApplyParameter returns base with the named parameter set to value.
func ApplyParameter(base domain.CalculatorInputs, name string, value decimal.Decimal) (domain.CalculatorInputs, error) {
	in := base
	switch name {
	case domain.ParamReducedCostRatio:
		in.ReducedAnnualCost = base.CurrentAnnualCost.Mul(value)
	case domain.ParamRebuildDuration:
		in.RebuildDuration = int(value.Round(0).IntPart())
	case domain.ParamCurrentAnnualCost:
		in.CurrentAnnualCost = value
	default:
		return in, &domain.ValidationError{Field: "parameter", Reason: fmt.Sprintf("unknown parameter %q (use %s, %s or %s)",
			name, domain.ParamReducedCostRatio, domain.ParamRebuildDuration, domain.ParamCurrentAnnualCost)}
	}
	return in, nil
}

// RunSensitivity sweeps one parameter across its range, computing the full
// model at every value. Steps run concurrently; the points keep sweep order.
func (ce *CalculationEngine) RunSensitivity(ctx context.Context, base domain.CalculatorInputs, p domain.SensitivityParameter) (*domain.SensitivityAnalysis, error) {
	values, err := SweepValues(p)
	if err != nil {
		return nil, err
	}
	if _, err := ApplyParameter(base, p.Name, p.MinValue); err != nil {
		return nil, err
	}

	points := make([]domain.SensitivityPoint, len(values))
	errs := make([]error, len(values))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 8) // Limit concurrent computations

	for i, v := range values {
		wg.Add(1)
		go func(idx int, value decimal.Decimal) {
			defer wg.Done()
			semaphore <- struct{}{}        // Acquire semaphore
			defer func() { <-semaphore }() // Release semaphore

			if err := ctx.Err(); err != nil {
				errs[idx] = err
				return
			}
			in, _ := ApplyParameter(base, p.Name, value)
			result, err := Compute(in)
			if err != nil {
				errs[idx] = fmt.Errorf("%s=%s: %w", p.Name, value.String(), err)
				return
			}
			points[idx] = sensitivityPoint(value, result)
		}(i, v)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("sensitivity sweep failed: %w", err)
	}

	analysis := &domain.SensitivityAnalysis{
		Parameter: p,
		Base:      base,
		Points:    points,
	}
	analysis.BestValue, analysis.Spread = summarizeSweep(points)
	ce.Logger.Infof("sensitivity sweep of %s over %d step(s): best value %s, savings spread $%sM",
		p.Name, len(points), analysis.BestValue.String(), analysis.Spread.StringFixed(2))
	return analysis, nil
}

func sensitivityPoint(value decimal.Decimal, result *domain.AmortizationResult) domain.SensitivityPoint {
	return domain.SensitivityPoint{
		Value:            value,
		Inputs:           result.Inputs,
		TotalBaseline:    result.Totals.Baseline,
		TotalModernized:  result.Totals.Modernized,
		TotalSavings:     result.Totals.Savings,
		TotalPayouts:     result.Totals.Payouts,
		SavingsPercent:   money.NewMoneyFromDecimal(result.Totals.Savings).PercentOf(money.NewMoneyFromDecimal(result.Totals.Baseline)),
		EffectiveHorizon: result.EffectiveHorizon,
	}
}

// summarizeSweep returns the value with the highest total savings and the
// max-min spread of total savings.
func summarizeSweep(points []domain.SensitivityPoint) (decimal.Decimal, decimal.Decimal) {
	if len(points) == 0 {
		return decimal.Zero, decimal.Zero
	}
	best := points[0]
	lowest := points[0].TotalSavings
	for _, pt := range points[1:] {
		if pt.TotalSavings.GreaterThan(best.TotalSavings) {
			best = pt
		}
		if pt.TotalSavings.LessThan(lowest) {
			lowest = pt.TotalSavings
		}
	}
	return best.Value, best.TotalSavings.Sub(lowest)
}
