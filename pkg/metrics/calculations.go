package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "rampcalc"

	granularityLabel = "granularity"
	outcomeLabel     = "outcome"

	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// CalculationMetrics counts calculator runs served over HTTP.
type CalculationMetrics struct {
	calculations       *prometheus.CounterVec
	horizonAdjustments prometheus.Counter
	negativeSavings    prometheus.Counter
	reports            *prometheus.CounterVec
}

// NewCalculationMetrics creates the calculator counters; register them with Collectors.
func NewCalculationMetrics() *CalculationMetrics {
	return &CalculationMetrics{
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Number of amortization calculations partitioned by granularity and outcome.",
		}, []string{granularityLabel, outcomeLabel}),
		horizonAdjustments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "horizon_adjustments_total",
			Help:      "Number of calculations whose analysis horizon was raised to the minimum.",
		}),
		negativeSavings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "negative_savings_total",
			Help:      "Number of calculations where the reduced cost exceeded the current cost.",
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Number of reports rendered partitioned by format.",
		}, []string{"format"}),
	}
}

// ObserveCalculation records one calculator run.
func (c *CalculationMetrics) ObserveCalculation(granularity, outcome string, horizonAdjusted, negativeSavings bool) {
	c.calculations.With(prometheus.Labels{granularityLabel: granularity, outcomeLabel: outcome}).Inc()
	if horizonAdjusted {
		c.horizonAdjustments.Inc()
	}
	if negativeSavings {
		c.negativeSavings.Inc()
	}
}

// ObserveReport records one rendered report.
func (c *CalculationMetrics) ObserveReport(format string) {
	c.reports.WithLabelValues(format).Inc()
}

// Collectors returns the collectors for registration on a custom registry.
func (c *CalculationMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{c.calculations, c.horizonAdjustments, c.negativeSavings, c.reports}
}
