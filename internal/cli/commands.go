// Package cli provides the command-line interface for the value investing
// checklist.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/malcagui2023/ValueInvesting-EMBA/internal/config"
)

const version = "1.0.0"

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "valuecheck",
		Short: "Value investing checklist for stock tickers",
		Long: `valuecheck fetches fundamentals, price history and dividends for a stock
ticker, runs a fixed value-investing checklist (return on equity, margins,
leverage, dividend consistency and more) over a trailing window of fiscal
years, and renders a pass/fail scoreboard with a verdict.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runInteractive(cfg)
		},
	}

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newCheckCmd() *cobra.Command {
	var (
		years   int
		period  string
		csvOut  bool
		noChart bool
	)

	cmd := &cobra.Command{
		Use:   "check [SYMBOL]",
		Short: "Run the checklist for a stock symbol",
		Long: `Run the value investing checklist for a given ticker symbol.
Example: valuecheck check AAPL --years=5 --csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if years > 0 {
				cfg.WindowYears = years
			}
			if period != "" {
				cfg.PricePeriod = period
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runCheck(cmd.Context(), cfg, args[0], csvOut, !noChart)
		},
	}

	cmd.Flags().IntVar(&years, "years", 0, "Trailing window of fiscal years (default from config)")
	cmd.Flags().StringVar(&period, "period", "", "Price history period: 1y, 3y, 5y, 10y or max")
	cmd.Flags().BoolVar(&csvOut, "csv", false, "Export results to a CSV file in the results directory")
	cmd.Flags().BoolVar(&noChart, "no-chart", false, "Skip the price and trend charts")

	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			fmt.Printf("Data directory:    %s\n", cfg.DataDir)
			fmt.Printf("Results directory: %s\n", cfg.ResultsDir)
			fmt.Printf("Cache enabled:     %v (TTL %v)\n", cfg.CacheEnabled, cfg.CacheTTL)
			fmt.Printf("Fetch timeout:     %v\n", cfg.FetchTimeout)
			fmt.Printf("Price period:      %s\n", cfg.PricePeriod)
			fmt.Printf("Window years:      %d\n", cfg.WindowYears)
			fmt.Printf("Verdict bands:     strong >= %.0f%%, watchlist >= %.0f%%\n",
				cfg.StrongCut*100, cfg.WatchlistCut*100)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("valuecheck v%s\n", version)
		},
	}
}
