package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ramp/cost-calculator/internal/domain"
)

// CalculateRequest is the JSON body of POST /api/v1/calculate and the base of a sweep.
type CalculateRequest struct {
	Name              string           `json:"name,omitempty" validate:"max=120"`
	CurrentAnnualCost decimal.Decimal  `json:"current_annual_cost" validate:"gt=0"`
	ReducedAnnualCost *decimal.Decimal `json:"reduced_annual_cost,omitempty" validate:"omitempty,gte=0"`
	RebuildDuration   int              `json:"rebuild_duration" validate:"gte=1"`
	AnalysisHorizon   int              `json:"analysis_horizon" validate:"gte=0"`
	Granularity       string           `json:"granularity,omitempty" validate:"omitempty,granularity"`
	FiscalYearStart   int              `json:"fiscal_year_start,omitempty" validate:"omitempty,gte=1900,lte=2200"`
}

// Inputs resolves the request against the server's default granularity.
func (r CalculateRequest) Inputs(defaultGranularity domain.Granularity) domain.CalculatorInputs {
	g := defaultGranularity
	if r.Granularity != "" {
		g, _ = domain.ParseGranularity(r.Granularity)
	}
	in := domain.CalculatorInputs{
		CurrentAnnualCost: r.CurrentAnnualCost,
		ReducedAnnualCost: domain.DefaultReducedCost(r.CurrentAnnualCost),
		RebuildDuration:   r.RebuildDuration,
		AnalysisHorizon:   r.AnalysisHorizon,
		Granularity:       g.OrDefault(),
		FiscalYearStart:   r.FiscalYearStart,
	}
	if r.ReducedAnnualCost != nil {
		in.ReducedAnnualCost = *r.ReducedAnnualCost
	}
	return in
}

// SensitivityRequest is the JSON body of POST /api/v1/sensitivity.
type SensitivityRequest struct {
	Base      CalculateRequest `json:"base"`
	Parameter string           `json:"parameter" validate:"required,oneof=reduced_cost_ratio rebuild_duration current_annual_cost"`
	Min       decimal.Decimal  `json:"min"`
	Max       decimal.Decimal  `json:"max"`
	Steps     int              `json:"steps" validate:"gte=1,lte=200"`
}

type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("granularity", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseGranularity(fl.Field().String())
		return err == nil
	})
	return &requestValidator{v: v}
}

// Struct validates s and converts the first failure into a *domain.ValidationError.
func (rv *requestValidator) Struct(s any) error {
	err := rv.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &domain.ValidationError{Field: fieldPath(fe), Reason: reason(fe)}
	}
	return err
}

// fieldPath drops the top-level struct name: "base.rebuild_duration".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte", "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of %s", fe.Param())
	case "granularity":
		return "unknown granularity (use yearly or monthly)"
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
