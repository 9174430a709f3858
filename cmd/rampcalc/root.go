package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ramp/cost-calculator/internal/calculation"
	rlog "github.com/ramp/cost-calculator/pkg/log"
)

var _ calculation.Logger = (*zap.SugaredLogger)(nil)

// app carries what every subcommand shares once flags are parsed.
type app struct {
	verbose bool
	logger  *zap.Logger
	engine  *calculation.CalculationEngine
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "rampcalc",
		Short:         "Legacy modernization cost savings calculator",
		Long:          "rampcalc compares the cost of keeping a legacy system against rebuilding it,\nincluding the declining incentive fee paid out of the first three years of savings.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init("")
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log every computed period at debug level")

	rootCmd.AddCommand(
		newCalculateCmd(a),
		newCompareCmd(a),
		newSensitivityCmd(a),
		newSpendingCmd(a),
		newExampleConfigCmd(a),
		newFormatsCmd(),
		newServeCmd(a),
	)
	return rootCmd
}

// init builds the logger and engine. level overrides the default of info
// (debug when --verbose is set).
func (a *app) init(level string) error {
	if level == "" {
		level = "info"
	}
	if a.verbose {
		level = "debug"
	}
	lvl, err := rlog.ParseLevel(level)
	if err != nil {
		return err
	}
	a.logger = rlog.InitLog(lvl)
	a.engine = calculation.NewCalculationEngine()
	a.engine.Debug = a.verbose
	a.engine.SetLogger(a.logger.Sugar().Named("engine"))
	return nil
}
