package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	calc "github.com/ramp/cost-calculator/internal/calculation"
	"github.com/ramp/cost-calculator/internal/domain"
)

const (
	pdfMarginLeft   = 15.0
	pdfMarginTop    = 15.0
	pdfMarginRight  = 15.0
	pdfMarginBottom = 15.0
	pdfPageWidth    = 210.0
)

// PDFFormatter renders a printable A4 report: assumptions, fee schedule and
// one yearly table per scenario.
type PDFFormatter struct{}

func (p PDFFormatter) Name() string { return "pdf" }

type pdfReport struct {
	pdf   *fpdf.Fpdf
	width float64
}

func (p PDFFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	report := &pdfReport{
		pdf:   fpdf.New("P", "mm", "A4", ""),
		width: pdfPageWidth - pdfMarginLeft - pdfMarginRight,
	}
	report.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	report.pdf.SetAutoPageBreak(true, pdfMarginBottom)
	report.pdf.SetTitle("RAMP Cost Savings Analysis", false)

	report.addCover(results)
	for i, sc := range results.Scenarios {
		if sc.Result == nil {
			continue
		}
		report.addScenario(i+1, sc)
	}
	if len(results.Scenarios) > 1 {
		report.addComparison(results)
	}

	var buf bytes.Buffer
	if err := report.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfReport) heading(text string) {
	r.pdf.SetFont("Arial", "B", 13)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(r.width, 9, text, "", 1, "L", false, 0, "")
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *pdfReport) addCover(results *domain.ScenarioComparison) {
	r.pdf.AddPage()
	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(r.width, 14, "RAMP Cost Savings Analysis", "", 1, "C", false, 0, "")
	if !results.GeneratedAt.IsZero() {
		r.pdf.SetFont("Arial", "I", 10)
		r.pdf.SetTextColor(80, 80, 80)
		r.pdf.CellFormat(r.width, 7, fmt.Sprintf("Generated: %s", results.GeneratedAt.Format("2 January 2006")), "", 1, "C", false, 0, "")
	}
	r.pdf.Ln(6)

	r.heading("Key Assumptions")
	for _, a := range assumptionsFor(results) {
		r.pdf.MultiCell(r.width, 5, "- "+pdfText(a), "", "L", false)
	}
	r.pdf.Ln(4)

	r.heading("Incentive Fee Schedule")
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	for _, tier := range calc.FeeSchedule() {
		r.pdf.CellFormat(r.width*0.75, 6, tier.Description, "1", 0, "L", true, 0, "")
		r.pdf.CellFormat(r.width*0.25, 6, FormatRate(tier.Rate), "1", 1, "R", true, 0, "")
	}
	r.pdf.Ln(4)
}

func (r *pdfReport) addScenario(n int, sc domain.ScenarioResult) {
	res := sc.Result
	r.heading(fmt.Sprintf("Scenario %d: %s", n, pdfText(sc.Name)))
	if sc.Description != "" {
		r.pdf.MultiCell(r.width, 5, pdfText(sc.Description), "", "L", false)
	}
	s := res.Summary
	lines := []string{
		fmt.Sprintf("Current annual cost: %s", FormatCurrency(s.CurrentAnnualCost)),
		fmt.Sprintf("Reduced annual cost: %s (%s of current)", FormatCurrency(s.ReducedAnnualCost), FormatPercentage(s.ReducedCostPercent)),
		fmt.Sprintf("Annual savings after rebuild: %s", FormatCurrency(s.AnnualSavings)),
		fmt.Sprintf("Rebuild: %s year(s); horizon: %s year(s)", s.RebuildYears.String(), s.HorizonYears.String()),
	}
	for _, l := range lines {
		r.pdf.CellFormat(r.width, 5, l, "", 1, "L", false, 0, "")
	}
	if res.HorizonAdjusted {
		r.pdf.SetTextColor(120, 90, 0)
		r.pdf.CellFormat(r.width, 5, fmt.Sprintf("Horizon raised from %d to %d %ss.", res.RequestedHorizon, res.EffectiveHorizon, res.Inputs.Granularity.Unit()), "", 1, "L", false, 0, "")
	}
	if res.NegativeSavings {
		r.pdf.SetTextColor(180, 0, 0)
		r.pdf.CellFormat(r.width, 5, "Reduced cost exceeds current cost: savings are negative.", "", 1, "L", false, 0, "")
	}
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.Ln(2)

	cols := []string{"Year", "Baseline", "Modernized", "Payout", "Savings"}
	widths := []float64{r.width * 0.28, r.width * 0.18, r.width * 0.18, r.width * 0.18, r.width * 0.18}
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	for i, c := range cols {
		align := "R"
		if i == 0 {
			align = "L"
		}
		r.pdf.CellFormat(widths[i], 6, c, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)

	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	for i, b := range res.Yearly {
		fill := i%2 == 1
		r.pdf.SetFillColor(245, 247, 250)
		r.pdf.CellFormat(widths[0], 5.5, b.Label, "1", 0, "L", fill, 0, "")
		r.amountCell(widths[1], FormatCurrency(b.Baseline), fill)
		r.amountCell(widths[2], FormatCurrency(b.Modernized), fill)
		r.amountCell(widths[3], FormatCurrency(b.Payouts), fill)
		r.amountCell(widths[4], FormatCurrency(b.Savings), fill)
		r.pdf.Ln(-1)
	}
	t := res.Totals
	r.pdf.SetFont("Arial", "B", 9)
	r.pdf.CellFormat(widths[0], 6, "Total", "1", 0, "L", false, 0, "")
	r.amountCell(widths[1], FormatCurrency(t.Baseline), false)
	r.amountCell(widths[2], FormatCurrency(t.Modernized), false)
	r.amountCell(widths[3], FormatCurrency(t.Payouts), false)
	r.amountCell(widths[4], FormatCurrency(t.Savings), false)
	r.pdf.Ln(-1)
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.Ln(6)
}

func (r *pdfReport) amountCell(w float64, text string, fill bool) {
	if strings.HasPrefix(text, "-") {
		r.pdf.SetTextColor(180, 0, 0)
	}
	r.pdf.CellFormat(w, 5.5, text, "1", 0, "R", fill, 0, "")
	r.pdf.SetTextColor(50, 50, 50)
}

func (r *pdfReport) addComparison(results *domain.ScenarioComparison) {
	r.heading("Scenario Ranking")
	for rank, name := range calc.RankBySavings(results.Scenarios) {
		res := findScenario(results, name).Result
		r.pdf.CellFormat(r.width, 5, fmt.Sprintf("%d. %s: %s savings, %s payouts", rank+1, pdfText(name),
			FormatCurrency(res.Totals.Savings), FormatCurrency(res.Totals.Payouts)), "", 1, "L", false, 0, "")
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		r.pdf.Ln(2)
		r.pdf.SetFont("Arial", "B", 10)
		r.pdf.CellFormat(r.width, 6, "Recommended: "+pdfText(rec.ScenarioName), "", 1, "L", false, 0, "")
	}
}

// pdfText replaces characters the core PDF fonts cannot encode.
func pdfText(s string) string {
	return strings.NewReplacer("•", "-", "—", "-", "–", "-", "’", "'").Replace(s)
}
