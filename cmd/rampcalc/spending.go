package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/ramp/cost-calculator/internal/calculation"
	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/ramp/cost-calculator/internal/output"
)

func newSpendingCmd(a *app) *cobra.Command {
	var (
		years  int
		rate   decimal.Decimal
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "spending",
		Short: "Project federal IT services spending and its legacy maintenance share",
		RunE: func(cmd *cobra.Command, args []string) error {
			projection, err := calculation.ProjectSpending(calculation.DefaultSpendingHistory(), rate, years)
			if err != nil {
				return err
			}
			a.logger.Sugar().Named("spending").Debugf("projected %d year(s) at %s", years, rate)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(projection)
			}
			printSpending(cmd, projection)
			return nil
		},
	}
	cmd.Flags().IntVar(&years, "years", 5, "Number of years to project past the latest actual year")
	cmd.Flags().Var(newDecimalValue(calculation.DefaultGrowthRate.String(), &rate), "rate", "Annual growth rate as a fraction")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the projection as JSON")
	return cmd
}

func printSpending(cmd *cobra.Command, p *domain.SpendingProjection) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "FEDERAL IT SERVICES SPENDING")
	fmt.Fprintln(w, strings.Repeat("=", 40))
	for _, pt := range p.Points {
		kind := "actual"
		if pt.Projected {
			kind = "projected"
		}
		fmt.Fprintf(w, "%-8s %12s  %s\n", fmt.Sprintf("FY%d", pt.Year), output.FormatBillions(pt.Amount), kind)
	}
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "Historic CAGR: %s; projection rate: %s\n", output.FormatRate(p.HistoricCAGR.Round(4)), output.FormatRate(p.GrowthRate))
	fmt.Fprintf(w, "Legacy maintenance (%s of FY%d): %s\n", output.FormatRate(p.LegacyShare), p.LatestActual.Year, output.FormatBillions(p.LegacyAmount))
}
