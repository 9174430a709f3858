package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramp/cost-calculator/internal/domain"
	"github.com/ramp/cost-calculator/internal/output"
)

func newCalculateCmd(a *app) *cobra.Command {
	var (
		in        inputFlags
		name      string
		format    string
		outputDir string
	)
	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Compute baseline, modernized and savings series for one system",
		Example: `  rampcalc calculate --current 100 --reduced 10 --rebuild 1 --horizon 5
  rampcalc calculate --current 60 --rebuild 18 --granularity monthly --format detailed-csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.engine.CompareInputs(cmd.Context(), name, in.inputs())
			if err != nil {
				return err
			}
			return emit(cmd, results, format, outputDir)
		},
	}
	in.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("current")
	cmd.Flags().StringVar(&name, "name", "Calculation", "Scenario name shown in reports")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Report format (run the formats command for the list)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write the report to a timestamped file in this directory instead of stdout")
	return cmd
}

// emit prints a report to stdout or, with an output directory, writes report files.
func emit(cmd *cobra.Command, results *domain.ScenarioComparison, format, outputDir string) error {
	if outputDir != "" {
		paths, err := output.GenerateReport(results, format, outputDir)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", p)
		}
		return nil
	}

	data, f, err := output.Render(results, format)
	if err != nil {
		return err
	}
	if output.IsBinary(f.Name()) {
		return fmt.Errorf("format %s is binary; use --output to write it to a file", f.Name())
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
