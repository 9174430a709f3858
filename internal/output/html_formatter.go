package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	calc "github.com/ramp/cost-calculator/internal/calculation"
	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a self-contained HTML report with a savings chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"rate": FormatRate,
	"neg":  func(d decimal.Decimal) bool { return d.IsNegative() },
	"add":  func(i, j int) int { return i + j },
	"partial": func(b domain.YearBucket, ppy int) bool {
		return b.IsPartial(ppy)
	},
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartSeries is the per-scenario data the embedded chart script draws.
type chartSeries struct {
	Name    string    `json:"name"`
	Labels  []string  `json:"labels"`
	Savings []float64 `json:"savings"`
	Payouts []float64 `json:"payouts"`
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	var charts []chartSeries
	for _, sc := range results.Scenarios {
		if sc.Result == nil {
			continue
		}
		cs := chartSeries{Name: sc.Name}
		for _, b := range sc.Result.Yearly {
			cs.Labels = append(cs.Labels, b.Label)
			cs.Savings = append(cs.Savings, b.Savings.InexactFloat64())
			cs.Payouts = append(cs.Payouts, b.Payouts.InexactFloat64())
		}
		charts = append(charts, cs)
	}

	data := struct {
		*domain.ScenarioComparison
		Recommendation Recommendation
		Assumptions    []string
		FeeSchedule    []domain.FeeTier
		Ranking        []string
		Charts         []chartSeries
	}{results, AnalyzeScenarios(results), assumptionsFor(results), calc.FeeSchedule(), calc.RankBySavings(results.Scenarios), charts}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
