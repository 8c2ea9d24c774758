package cli

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/malcagui2023/ValueInvesting-EMBA/internal/checklist"
	"github.com/malcagui2023/ValueInvesting-EMBA/internal/config"
	"github.com/malcagui2023/ValueInvesting-EMBA/internal/dataflows"
	"github.com/malcagui2023/ValueInvesting-EMBA/internal/display"
	"github.com/malcagui2023/ValueInvesting-EMBA/internal/export"
)

const chartWidth = 60

// runCheck fetches data for one ticker, evaluates the checklist and renders
// the result. A fetch failure surfaces as a single error; sparse data does
// not.
func runCheck(ctx context.Context, cfg *config.Config, symbol string, csvOut, charts bool) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("preparing directories: %w", err)
	}

	client := dataflows.NewClient(cfg)

	data, err := client.FetchTickerData(ctx, symbol)
	if err != nil {
		return fmt.Errorf("could not load data for %s: %w", symbol, err)
	}

	results, summary, err := checklist.Evaluate(data, cfg)
	if err != nil {
		return err
	}

	fmt.Println(display.RenderScoreboard(data.Profile, data.Quote, results, summary))
	if charts {
		fmt.Println(display.RenderPriceChart(data.Prices, chartWidth))
		fmt.Println(display.RenderTrends(results))
	}

	if csvOut {
		path, err := export.SaveResults(cfg.ResultsDir, data.Symbol, results, summary)
		if err != nil {
			return fmt.Errorf("exporting results: %w", err)
		}
		fmt.Printf("Results saved to %s\n", path)
	}

	return nil
}

// runInteractive prompts for tickers in a loop until an empty answer or an
// aborted prompt ends the session.
func runInteractive(cfg *config.Config) error {
	fmt.Println("Value Investing Checklist — enter a ticker to evaluate, empty to quit.")

	for {
		symbol, err := PromptForTicker()
		if err != nil {
			if errors.Is(err, errPromptAborted) {
				return nil
			}
			return err
		}
		if symbol == "" {
			return nil
		}

		if err := runCheck(context.Background(), cfg, symbol, false, true); err != nil {
			// One bad ticker should not end the session.
			log.Printf("checklist failed for %s: %v", symbol, err)
		}
	}
}
