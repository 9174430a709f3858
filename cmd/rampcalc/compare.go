package main

import (
	"github.com/spf13/cobra"

	"github.com/ramp/cost-calculator/internal/config"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		configFile string
		format     string
		outputDir  string
	)
	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Run every scenario in a YAML scenario file and rank them by total savings",
		Example: "  rampcalc compare --config scenarios.yaml --format html --output reports/",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(configFile)
			if err != nil {
				return err
			}
			results, err := a.engine.RunScenarios(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return emit(cmd, results, format, outputDir)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to the scenario file")
	_ = cmd.MarkFlagRequired("config")
	cmd.Flags().StringVarP(&format, "format", "f", "console", "Report format, or \"all\" with --output")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Write the report to a timestamped file in this directory instead of stdout")
	return cmd
}
