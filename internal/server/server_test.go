package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramp/cost-calculator/internal/config"
	"github.com/ramp/cost-calculator/internal/domain"
)

func testServer() *Server {
	cfg := &config.ServerConfig{
		Address:      "127.0.0.1:0",
		LogLevel:     "info",
		CORSOrigins:  []string{"*"},
		Granularity:  domain.GranularityYearly,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return New(cfg, nil, nil)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrResponse {
	t.Helper()
	var e ErrResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e), rec.Body.String())
	return e
}

const workedExample = `{"current_annual_cost": 100, "reduced_annual_cost": 10, "rebuild_duration": 1, "analysis_horizon": 5}`

const scenarioBody = `{"scenarios": [
	{"name": "A", "current_annual_cost": 100, "rebuild_duration": 1, "analysis_horizon": 5},
	{"name": "B", "current_annual_cost": 200, "reduced_annual_cost": 50, "rebuild_duration": 1, "analysis_horizon": 5}
]}`

func TestHealth(t *testing.T) {
	rec := do(t, testServer(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestFeeSchedule(t *testing.T) {
	rec := do(t, testServer(), http.MethodGet, "/api/v1/fee-schedule", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var tiers []domain.FeeTier
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tiers))
	require.Len(t, tiers, 4)
	assert.Equal(t, "0.5", tiers[0].Rate.String())
	assert.True(t, tiers[3].Rate.IsZero())
}

func TestCalculate(t *testing.T) {
	rec := do(t, testServer(), http.MethodPost, "/api/v1/calculate", workedExample)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result domain.AmortizationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "281.25", result.Totals.Savings.String())
	assert.Equal(t, "78.75", result.Totals.Payouts.String())
	assert.False(t, result.HorizonAdjusted)
	require.NoError(t, result.CheckInvariants())
}

func TestCalculate_DefaultsReducedCostAndRaisesHorizon(t *testing.T) {
	rec := do(t, testServer(), http.MethodPost, "/api/v1/calculate",
		`{"current_annual_cost": "100", "rebuild_duration": 2, "analysis_horizon": 3}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result domain.AmortizationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "10", result.Inputs.ReducedAnnualCost.String())
	assert.True(t, result.HorizonAdjusted)
	assert.Equal(t, 3, result.RequestedHorizon)
	assert.Equal(t, 5, result.EffectiveHorizon)
}

func TestCalculate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"zero current cost", `{"current_annual_cost": 0, "rebuild_duration": 1, "analysis_horizon": 5}`, "current_annual_cost"},
		{"negative reduced cost", `{"current_annual_cost": 100, "reduced_annual_cost": -1, "rebuild_duration": 1, "analysis_horizon": 5}`, "reduced_annual_cost"},
		{"zero rebuild", `{"current_annual_cost": 100, "rebuild_duration": 0, "analysis_horizon": 5}`, "rebuild_duration"},
		{"unknown granularity", `{"current_annual_cost": 100, "rebuild_duration": 1, "granularity": "weekly"}`, "granularity"},
		{"horizon over limit", `{"current_annual_cost": 100, "rebuild_duration": 1, "analysis_horizon": 51}`, "analysis_horizon"},
		{"rebuild overflows horizon", `{"current_annual_cost": 100, "rebuild_duration": 9223372036854775806, "analysis_horizon": 5}`, "rebuild_duration"},
		{"malformed body", `{"current_annual_cost": `, "body"},
	}
	s := testServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/calculate", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
			e := decodeError(t, rec)
			assert.Equal(t, tt.wantField, e.Field)
			assert.NotEmpty(t, e.Error)
		})
	}
}

func TestCalculate_HighPrecisionReducedCost(t *testing.T) {
	rec := do(t, testServer(), http.MethodPost, "/api/v1/calculate",
		`{"current_annual_cost": 100, "reduced_annual_cost": "10.123456789012345678", "rebuild_duration": 1, "analysis_horizon": 5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result domain.AmortizationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "10.123456789012345678", result.Inputs.ReducedAnnualCost.String())
	assert.Equal(t, "10.12345679", result.Series.Modernized[4].String())
}

func TestCalculate_MonthlyAmountsRounded(t *testing.T) {
	rec := do(t, testServer(), http.MethodPost, "/api/v1/calculate",
		`{"current_annual_cost": 100, "reduced_annual_cost": 10, "rebuild_duration": 12, "analysis_horizon": 48, "granularity": "monthly"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result domain.AmortizationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "100", result.Yearly[0].Baseline.String())
	assert.Equal(t, "400", result.Totals.Baseline.String())
}

func TestCompare(t *testing.T) {
	rec := do(t, testServer(), http.MethodPost, "/api/v1/compare", scenarioBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cmp domain.ScenarioComparison
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmp))
	assert.Equal(t, "B", cmp.BestScenario)
	require.Len(t, cmp.Scenarios, 2)
	assert.NotEmpty(t, cmp.Assumptions)
}

func TestCompare_RejectsDuplicateNames(t *testing.T) {
	body := `{"scenarios": [
		{"name": "Same", "current_annual_cost": 100, "rebuild_duration": 1},
		{"name": "same ", "current_annual_cost": 100, "rebuild_duration": 1}
	]}`
	rec := do(t, testServer(), http.MethodPost, "/api/v1/compare", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "name", e.Field)
	assert.Contains(t, e.Error, "duplicate scenario name")
}

func TestReport(t *testing.T) {
	s := testServer()

	rec := do(t, s, http.MethodPost, "/api/v1/report/csv", scenarioBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Scenario,Granularity,"))

	rec = do(t, s, http.MethodPost, "/api/v1/report/excel", scenarioBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "ramp_report.xlsx")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip archive")

	rec = do(t, s, http.MethodPost, "/api/v1/report/bogus", scenarioBody)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "format", decodeError(t, rec).Field)
}

func TestSensitivity(t *testing.T) {
	body := `{"base": ` + workedExample + `, "parameter": "reduced_cost_ratio", "min": 0.1, "max": 0.5, "steps": 5}`
	rec := do(t, testServer(), http.MethodPost, "/api/v1/sensitivity", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var analysis domain.SensitivityAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &analysis))
	require.Len(t, analysis.Points, 5)
	assert.Equal(t, "281.25", analysis.Points[0].TotalSavings.String())
	assert.Equal(t, "0.1", analysis.BestValue.String())
}

func TestSensitivity_UnknownParameter(t *testing.T) {
	body := `{"base": ` + workedExample + `, "parameter": "discount_rate", "min": 0, "max": 1, "steps": 2}`
	rec := do(t, testServer(), http.MethodPost, "/api/v1/sensitivity", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "parameter", decodeError(t, rec).Field)
}

func TestSpending(t *testing.T) {
	s := testServer()

	rec := do(t, s, http.MethodGet, "/api/v1/spending?years=3", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var projection domain.SpendingProjection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projection))
	assert.Len(t, projection.Points, 9)
	assert.Equal(t, 2027, projection.FinalProjected.Year)

	rec = do(t, s, http.MethodGet, "/api/v1/spending?rate=fast", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "rate", decodeError(t, rec).Field)

	rec = do(t, s, http.MethodGet, "/api/v1/spending?years=500", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "years", decodeError(t, rec).Field)
}

func TestCalculatorPage(t *testing.T) {
	s := testServer()

	rec := do(t, s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "RAMP Cost Savings Calculator")
	assert.Contains(t, body, "$281.25M")
	assert.Contains(t, body, "Year 1 (Rebuild)")

	rec = do(t, s, http.MethodGet, "/?current=250&reduced=40&rebuild=2&horizon=3&granularity=yearly", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Analysis horizon raised from 3 to 5 periods")

	rec = do(t, s, http.MethodGet, "/?current=lots&rebuild=1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid current_annual_cost")
	assert.Contains(t, rec.Body.String(), `class="invalid"`)
}

func TestMetricsEndpoint(t *testing.T) {
	s := testServer()
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/v1/calculate", workedExample).Code)
	require.Equal(t, http.StatusOK, do(t, s, http.MethodPost, "/api/v1/calculate",
		`{"current_annual_cost": 100, "reduced_annual_cost": 120, "rebuild_duration": 1, "analysis_horizon": 2}`).Code)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `rampcalc_calculations_total{granularity="yearly",outcome="ok"} 2`)
	assert.Contains(t, body, "rampcalc_horizon_adjustments_total 1")
	assert.Contains(t, body, "rampcalc_negative_savings_total 1")
	assert.Contains(t, body, "chi_requests_total")
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := testServer()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
