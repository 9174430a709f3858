package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	calc "github.com/ramp/cost-calculator/internal/calculation"
	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

func mustCompute(t *testing.T, current, reduced string, rebuild, horizon int) *domain.AmortizationResult {
	t.Helper()
	r, err := calc.Compute(domain.CalculatorInputs{
		CurrentAnnualCost: decimal.RequireFromString(current),
		ReducedAnnualCost: decimal.RequireFromString(reduced),
		RebuildDuration:   rebuild,
		AnalysisHorizon:   horizon,
		Granularity:       domain.GranularityYearly,
	})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	return r
}

// buildTestComparison holds two yearly scenarios: A saves 281.25 and B saves 468.75.
func buildTestComparison(t *testing.T) *domain.ScenarioComparison {
	t.Helper()
	return &domain.ScenarioComparison{
		Scenarios: []domain.ScenarioResult{
			{Name: "B", Description: "Larger legacy system", Result: mustCompute(t, "200", "50", 1, 5)},
			{Name: "A", Result: mustCompute(t, "100", "10", 1, 5)},
		},
		BestScenario: "B",
		GeneratedAt:  time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC),
	}
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Recommended: B") {
		t.Fatalf("expected recommendation for B, got: %s", content)
	}
	if strings.Index(content, "A: Savings=$281.25M") > strings.Index(content, "B: Savings=$468.75M") {
		t.Fatalf("scenarios not sorted by name: %s", content)
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"RAMP COST SAVINGS ANALYSIS",
		"INCENTIVE FEE SCHEDULE:",
		"Year 1 after rebuild: 50% of savings",
		"Year 1 (Rebuild)",
		"$281.25M",
		"$100.00M of legacy cost paid during rebuild",
		"SCENARIO COMPARISON",
		"Recommended: B ($468.75M savings, $187.50M more than A)",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in verbose output, got:\n%s", want, content)
		}
	}
}

func TestConsoleVerboseFlagsAdjustmentsAndNegativeSavings(t *testing.T) {
	cmp := &domain.ScenarioComparison{Scenarios: []domain.ScenarioResult{
		{Name: "Overrun", Result: mustCompute(t, "100", "120", 1, 2)},
	}}
	out, err := ConsoleVerboseFormatter{}.Format(cmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "raised from 2 to 4 years") {
		t.Fatalf("expected horizon note, got:\n%s", content)
	}
	if !strings.Contains(content, "WARNING: reduced annual cost exceeds current annual cost") {
		t.Fatalf("expected negative savings warning, got:\n%s", content)
	}
	if !strings.Contains(content, "-$10.00M") {
		t.Fatalf("expected negative amounts, got:\n%s", content)
	}
	if strings.Contains(content, "SCENARIO COMPARISON") {
		t.Fatalf("single scenario should not print a comparison")
	}
}

func TestCSVSummarizerDeterministicOrder(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header+2 rows), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "A,") || !strings.HasPrefix(lines[2], "B,") {
		t.Fatalf("rows not sorted deterministically: %v", lines)
	}
	if !strings.Contains(lines[1], ",500.00,118.75,78.75,281.25,100.00,false") {
		t.Fatalf("unexpected totals for A: %s", lines[1])
	}
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 11 {
		t.Fatalf("expected header + 10 period rows, got %d", len(lines))
	}
	want := []string{
		"A,1,Year 1,rebuild,0,100.0000,0.0000,0.0000,0.0000",
		"A,2,Year 2,incentive,0.5,100.0000,55.0000,45.0000,45.0000",
		"A,4,Year 4,incentive,0.125,100.0000,21.2500,11.2500,78.7500",
		"A,5,Year 5,steady,0,100.0000,10.0000,0.0000,90.0000",
	}
	for _, w := range want {
		if !strings.Contains(string(out), w) {
			t.Fatalf("expected row %q, got:\n%s", w, out)
		}
	}
}

func TestCSVYearlyExporter(t *testing.T) {
	out, err := CSVYearlyExporter{}.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(out), "A,1,Year 1 (Rebuild),1,true,100.00,0.00,0.00,0.00") {
		t.Fatalf("expected rebuild bucket row, got:\n%s", out)
	}
	if !strings.Contains(string(out), "B,2,Year 2,1,false,200.00,125.00,75.00,75.00") {
		t.Fatalf("expected first incentive year for B, got:\n%s", out)
	}
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	cmp := buildTestComparison(t)
	out, err := JSONFormatter{}.Format(cmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded domain.ScenarioComparison
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.BestScenario != "B" || len(decoded.Scenarios) != 2 {
		t.Fatalf("unexpected decoded comparison: %+v", decoded)
	}
	if !decoded.Scenarios[1].Result.Totals.Savings.Equal(decimal.RequireFromString("281.25")) {
		t.Fatalf("savings lost in JSON: %s", decoded.Scenarios[1].Result.Totals.Savings)
	}
}

func TestJSONFormatterRoundsMonthlyAmounts(t *testing.T) {
	r, err := calc.Compute(domain.CalculatorInputs{
		CurrentAnnualCost: decimal.NewFromInt(100),
		ReducedAnnualCost: decimal.NewFromInt(10),
		RebuildDuration:   12,
		AnalysisHorizon:   48,
		Granularity:       domain.GranularityMonthly,
	})
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	cmp := &domain.ScenarioComparison{Scenarios: []domain.ScenarioResult{{Name: "Monthly", Result: r}}}

	out, err := JSONFormatter{}.Format(cmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "99.9999") {
		t.Fatalf("unrounded yearly amounts in JSON output")
	}
	var decoded domain.ScenarioComparison
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got := decoded.Scenarios[0].Result.Yearly[0].Baseline.String(); got != "100" {
		t.Fatalf("yearly baseline got %s want 100", got)
	}
	if r.Totals.Baseline.String() == "400" {
		t.Fatalf("formatting must not round the computed result in place")
	}
}

// Golden snapshot tests (prefix-based) ensure key headers remain stable.
func TestGoldenSnapshots(t *testing.T) {
	cases := []struct {
		name      string
		golden    string
		formatter Formatter
	}{
		{"console_verbose", "console_verbose.golden", ConsoleVerboseFormatter{}},
		{"console_lite", "console_lite.golden", ConsoleFormatter{}},
		{"csv_summary", "csv_summary.golden", CSVSummarizer{}},
		{"csv_detailed", "csv_detailed.golden", CSVDetailedExporter{}},
		{"csv_yearly", "csv_yearly.golden", CSVYearlyExporter{}},
		{"html", "html_prefix.golden", HTMLFormatter{}},
	}

	cmp := buildTestComparison(t)
	update := os.Getenv("UPDATE_GOLDEN") == "1"
	for _, tc := range cases {
		out, err := tc.formatter.Format(cmp)
		if err != nil {
			t.Fatalf("%s: format error: %v", tc.name, err)
		}
		goldenPath := filepath.Join("testdata", tc.golden)
		if update {
			// only first line to keep golden small & stable
			line := firstLine(string(out)) + "\n"
			if err := os.WriteFile(goldenPath, []byte(line), 0644); err != nil {
				t.Fatalf("%s: update golden failed: %v", tc.name, err)
			}
		}
		data, err := os.ReadFile(goldenPath)
		if err != nil {
			t.Fatalf("%s: read golden: %v", tc.name, err)
		}
		if !strings.HasPrefix(string(out), strings.TrimSpace(string(data))) {
			t.Fatalf("%s: output does not match golden prefix %q", tc.name, strings.TrimSpace(string(data)))
		}
	}
}

func TestHTMLFormatterBasic(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	for _, want := range []string{"Scenario 1: B", "Year 1 (Rebuild)", "$468.75M", "Recommended: B", "const charts = "} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in HTML output", want)
		}
	}
}

func TestHTMLAssumptionsSectionPresent(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Key Assumptions") {
		t.Fatalf("expected Key Assumptions section in HTML output")
	}
	if !strings.Contains(content, DefaultAssumptions[1]) {
		t.Fatalf("expected default assumption %q to be rendered in HTML", DefaultAssumptions[1])
	}
}

func TestHTMLMarksNegativeAmounts(t *testing.T) {
	cmp := &domain.ScenarioComparison{Scenarios: []domain.ScenarioResult{
		{Name: "Overrun", Result: mustCompute(t, "100", "120", 1, 4)},
	}}
	out, err := HTMLFormatter{}.Format(cmp)
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, `class="num neg"`) {
		t.Fatalf("expected negative cells to be marked")
	}
	if !strings.Contains(content, "savings and payouts are negative") {
		t.Fatalf("expected negative savings warning")
	}
}

func TestPDFFormatter(t *testing.T) {
	out, err := PDFFormatter{}.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("pdf format error: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF document")
	}
}

func TestXLSXFormatter(t *testing.T) {
	out, err := XLSXFormatter{}.Format(buildTestComparison(t))
	if err != nil {
		t.Fatalf("xlsx format error: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	sheets := strings.Join(f.GetSheetList(), ",")
	if sheets != "Summary,Periods,Yearly" {
		t.Fatalf("unexpected sheets %s", sheets)
	}
	name, err := f.GetCellValue("Summary", "A3")
	if err != nil || name != "A" {
		t.Fatalf("Summary!A3 = %q, %v", name, err)
	}
	savings, err := f.GetCellValue("Summary", "K3")
	if err != nil || savings != "281.25" {
		t.Fatalf("Summary!K3 = %q, %v", savings, err)
	}
	rank, _ := f.GetCellValue("Summary", "M2")
	if rank != "1" {
		t.Fatalf("expected B ranked first, got %q", rank)
	}
	rows, err := f.GetRows("Periods")
	if err != nil {
		t.Fatalf("read Periods: %v", err)
	}
	if len(rows) != 11 {
		t.Fatalf("expected header + 10 period rows, got %d", len(rows))
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func TestFormatterAliasResolution(t *testing.T) {
	cases := map[string]string{
		"console-verbose": "console",
		"summary":         "console-lite",
		"csv-yearly":      "yearly-csv",
		"EXCEL":           "xlsx",
		" pdf ":           "pdf",
	}
	for alias, want := range cases {
		f := GetFormatterByName(alias)
		if f == nil {
			t.Fatalf("alias %q did not resolve to a formatter", alias)
		}
		if f.Name() != want {
			t.Fatalf("alias %q resolved to %q, want %q", alias, f.Name(), want)
		}
	}
}

func TestFormatMetadata(t *testing.T) {
	if Extension("console") != "txt" || Extension("yearly-csv") != "csv" || Extension("xlsx") != "xlsx" {
		t.Fatalf("unexpected extensions")
	}
	if ContentType("pdf") != "application/pdf" || !strings.HasPrefix(ContentType("csv"), "text/csv") {
		t.Fatalf("unexpected content types")
	}
	if !IsBinary("xlsx") || IsBinary("json") {
		t.Fatalf("unexpected binary classification")
	}
	if len(AvailableFormatterNames()) != len(builtInFormatters) {
		t.Fatalf("formatter names out of sync with registry")
	}
}
