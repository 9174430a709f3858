package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/shopspring/decimal"

	"github.com/ramp/cost-calculator/internal/calculation"
	"github.com/ramp/cost-calculator/internal/config"
	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/ramp/cost-calculator/internal/output"
	"github.com/ramp/cost-calculator/pkg/metrics"
)

// ErrResponse is the body of every non-2xx API reply.
type ErrResponse struct {
	HTTPStatusCode int    `json:"-"`
	Error          string `json:"error"`
	Field          string `json:"field,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

// errorResponse maps validation failures to 400, unknown report formats to 404
// and everything else to 500.
func errorResponse(err error) *ErrResponse {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return &ErrResponse{HTTPStatusCode: http.StatusBadRequest, Error: verr.Error(), Field: verr.Field}
	}
	if errors.Is(err, output.ErrUnsupportedFormat) {
		return &ErrResponse{HTTPStatusCode: http.StatusNotFound, Error: err.Error(), Field: "format"}
	}
	return &ErrResponse{HTTPStatusCode: http.StatusInternalServerError, Error: err.Error()}
}

func badRequest(field, msg string) *ErrResponse {
	return &ErrResponse{HTTPStatusCode: http.StatusBadRequest, Error: msg, Field: field}
}

type healthReply struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, healthReply{Status: "ok"})
}

func (s *Server) handleFeeSchedule(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, calculation.FeeSchedule())
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		_ = render.Render(w, r, badRequest("body", "malformed JSON: "+err.Error()))
		return
	}
	in := req.Inputs(s.cfg.Granularity)
	if err := s.validate.Struct(req); err != nil {
		s.metrics.ObserveCalculation(string(in.Granularity), metrics.OutcomeInvalid, false, false)
		_ = render.Render(w, r, errorResponse(err))
		return
	}

	result, err := s.engine.Calculate(r.Context(), in)
	if err != nil {
		s.observeFailure(in, err)
		_ = render.Render(w, r, errorResponse(err))
		return
	}
	s.metrics.ObserveCalculation(string(in.Granularity), metrics.OutcomeOK, result.HorizonAdjusted, result.NegativeSavings)
	render.JSON(w, r, result.Rounded(domain.AmountPlaces))
}

// decodeConfiguration reads a scenario-file shaped JSON body and validates it.
func (s *Server) decodeConfiguration(r *http.Request) (*domain.Configuration, error) {
	var cfg domain.Configuration
	if err := render.DecodeJSON(r.Body, &cfg); err != nil {
		return nil, &domain.ValidationError{Field: "body", Reason: "malformed JSON: " + err.Error()}
	}
	if cfg.Granularity == "" {
		cfg.Granularity = s.cfg.Granularity
	}
	if err := config.NewInputParser().ValidateConfiguration(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Server) runConfiguration(r *http.Request) (*domain.ScenarioComparison, error) {
	cfg, err := s.decodeConfiguration(r)
	if err != nil {
		return nil, err
	}
	comparison, err := s.engine.RunScenarios(r.Context(), cfg)
	if err != nil {
		return nil, err
	}
	for _, sc := range comparison.Scenarios {
		res := sc.Result
		s.metrics.ObserveCalculation(string(res.Inputs.Granularity), metrics.OutcomeOK, res.HorizonAdjusted, res.NegativeSavings)
	}
	return comparison, nil
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	comparison, err := s.runConfiguration(r)
	if err != nil {
		_ = render.Render(w, r, errorResponse(err))
		return
	}
	render.JSON(w, r, comparison.Rounded(domain.AmountPlaces))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	format := output.NormalizeFormatName(chi.URLParam(r, "format"))
	if output.GetFormatterByName(format) == nil {
		_ = render.Render(w, r, errorResponse(fmt.Errorf("%w: %q (available: %s)", output.ErrUnsupportedFormat, format, strings.Join(output.AvailableFormatterNames(), ", "))))
		return
	}
	comparison, err := s.runConfiguration(r)
	if err != nil {
		_ = render.Render(w, r, errorResponse(err))
		return
	}
	data, f, err := output.Render(comparison, format)
	if err != nil {
		_ = render.Render(w, r, errorResponse(err))
		return
	}
	s.metrics.ObserveReport(f.Name())

	w.Header().Set("Content-Type", output.ContentType(f.Name()))
	if output.IsBinary(f.Name()) {
		w.Header().Set("Content-Disposition", `attachment; filename="ramp_report.`+output.Extension(f.Name())+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	var req SensitivityRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		_ = render.Render(w, r, badRequest("body", "malformed JSON: "+err.Error()))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		_ = render.Render(w, r, errorResponse(err))
		return
	}
	param := domain.SensitivityParameter{
		Name:     req.Parameter,
		MinValue: req.Min,
		MaxValue: req.Max,
		Steps:    req.Steps,
	}
	analysis, err := s.engine.RunSensitivity(r.Context(), req.Base.Inputs(s.cfg.Granularity), param)
	if err != nil {
		_ = render.Render(w, r, errorResponse(err))
		return
	}
	render.JSON(w, r, analysis)
}

func (s *Server) handleSpending(w http.ResponseWriter, r *http.Request) {
	years := 5
	if v := r.URL.Query().Get("years"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			_ = render.Render(w, r, badRequest("years", "years must be an integer"))
			return
		}
		years = n
	}
	rate := calculation.DefaultGrowthRate
	if v := r.URL.Query().Get("rate"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			_ = render.Render(w, r, badRequest("rate", "rate must be a decimal fraction such as 0.0922"))
			return
		}
		rate = d
	}

	projection, err := calculation.ProjectSpending(calculation.DefaultSpendingHistory(), rate, years)
	if err != nil {
		_ = render.Render(w, r, errorResponse(err))
		return
	}
	render.JSON(w, r, projection)
}

func (s *Server) observeFailure(in domain.CalculatorInputs, err error) {
	outcome := metrics.OutcomeError
	if errors.Is(err, domain.ErrInvalidInput) {
		outcome = metrics.OutcomeInvalid
	}
	s.metrics.ObserveCalculation(string(in.Granularity.OrDefault()), outcome, false, false)
}
