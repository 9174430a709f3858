package server

import (
	"bytes"
	_ "embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/ramp/cost-calculator/internal/calculation"
	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/ramp/cost-calculator/internal/output"
	"github.com/ramp/cost-calculator/pkg/metrics"
)

//go:embed templates/calculator.html.tmpl
var calculatorTemplateSource string

var calculatorTemplate = template.Must(template.New("calculator").Funcs(template.FuncMap{
	"curr": output.FormatCurrency,
	"pct":  output.FormatPercentage,
	"rate": output.FormatRate,
	"neg":  func(d decimal.Decimal) bool { return d.IsNegative() },
}).Parse(calculatorTemplateSource))

// calculatorForm holds the raw query values so the form echoes what was typed.
type calculatorForm struct {
	Current     string
	Reduced     string
	Rebuild     string
	Horizon     string
	Granularity string
}

type calculatorPage struct {
	Form        calculatorForm
	Result      *domain.AmortizationResult
	Error       string
	ErrorField  string
	FeeSchedule []domain.FeeTier
}

var defaultForm = calculatorForm{Current: "100", Rebuild: "1", Horizon: "5", Granularity: string(domain.GranularityYearly)}

// parseCalculatorQuery reads current, reduced, rebuild, horizon and granularity.
// An empty reduced value means the default share of current.
func parseCalculatorQuery(q url.Values, fallback domain.Granularity) (calculatorForm, domain.CalculatorInputs, error) {
	form := calculatorForm{
		Current:     q.Get("current"),
		Reduced:     q.Get("reduced"),
		Rebuild:     q.Get("rebuild"),
		Horizon:     q.Get("horizon"),
		Granularity: q.Get("granularity"),
	}
	var in domain.CalculatorInputs

	current, err := decimal.NewFromString(form.Current)
	if err != nil {
		return form, in, &domain.ValidationError{Field: "current_annual_cost", Reason: "must be a number"}
	}
	in.CurrentAnnualCost = current
	in.ReducedAnnualCost = domain.DefaultReducedCost(current)
	if form.Reduced != "" {
		if in.ReducedAnnualCost, err = decimal.NewFromString(form.Reduced); err != nil {
			return form, in, &domain.ValidationError{Field: "reduced_annual_cost", Reason: "must be a number"}
		}
	}
	if in.RebuildDuration, err = strconv.Atoi(form.Rebuild); err != nil {
		return form, in, &domain.ValidationError{Field: "rebuild_duration", Reason: "must be a whole number of periods"}
	}
	if form.Horizon != "" {
		if in.AnalysisHorizon, err = strconv.Atoi(form.Horizon); err != nil {
			return form, in, &domain.ValidationError{Field: "analysis_horizon", Reason: "must be a whole number of periods"}
		}
	}
	in.Granularity = fallback.OrDefault()
	if form.Granularity != "" {
		if in.Granularity, err = domain.ParseGranularity(form.Granularity); err != nil {
			return form, in, err
		}
	}
	form.Granularity = string(in.Granularity)
	return form, in, nil
}

// handleCalculatorPage recomputes on every request; nothing is cached.
func (s *Server) handleCalculatorPage(w http.ResponseWriter, r *http.Request) {
	page := calculatorPage{Form: defaultForm, FeeSchedule: calculation.FeeSchedule()}
	status := http.StatusOK

	q := r.URL.Query()
	if q.Get("current") == "" {
		q = url.Values{
			"current":     {defaultForm.Current},
			"rebuild":     {defaultForm.Rebuild},
			"horizon":     {defaultForm.Horizon},
			"granularity": {string(s.cfg.Granularity.OrDefault())},
		}
	}

	form, in, err := parseCalculatorQuery(q, s.cfg.Granularity)
	page.Form = form
	if err == nil {
		page.Result, err = s.engine.Calculate(r.Context(), in)
	}
	if err != nil {
		s.observeFailure(in, err)
		page.Error = err.Error()
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			page.ErrorField = verr.Field
			status = http.StatusBadRequest
		} else {
			status = http.StatusInternalServerError
		}
	} else {
		s.metrics.ObserveCalculation(string(in.Granularity), metrics.OutcomeOK, page.Result.HorizonAdjusted, page.Result.NegativeSavings)
	}

	var buf bytes.Buffer
	if err := calculatorTemplate.Execute(&buf, page); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}
