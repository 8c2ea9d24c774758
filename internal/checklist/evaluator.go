package checklist

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/guregu/null/v6"

	"github.com/malcagui2023/ValueInvesting-EMBA/internal/config"
	"github.com/malcagui2023/ValueInvesting-EMBA/internal/dataflows"
	"github.com/malcagui2023/ValueInvesting-EMBA/internal/fundamentals"
)

// direction is the comparison applied to each year's ratio.
type direction int

const (
	atLeast direction = iota // value >= threshold passes
	below                    // value < threshold passes
)

// Evaluator runs the checklist catalogue with a fixed policy. Construction
// validates the policy so a bad window or band never fails mid-evaluation.
type Evaluator struct {
	windowYears  int
	strongCut    float64
	watchlistCut float64
}

func NewEvaluator(cfg *config.Config) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid evaluator configuration: %w", err)
	}
	return &Evaluator{
		windowYears:  cfg.WindowYears,
		strongCut:    cfg.StrongCut,
		watchlistCut: cfg.WatchlistCut,
	}, nil
}

// Evaluate runs every checklist item against the snapshot and tallies the
// score. It never fails: per-datum holes collapse to unavailable outcomes.
func Evaluate(data *dataflows.TickerData, cfg *config.Config) ([]CheckResult, ScoreSummary, error) {
	e, err := NewEvaluator(cfg)
	if err != nil {
		return nil, ScoreSummary{}, err
	}
	results, summary := e.Evaluate(data)
	return results, summary, nil
}

func (e *Evaluator) Evaluate(data *dataflows.TickerData) ([]CheckResult, ScoreSummary) {
	window := e.window(data.Income)

	results := []CheckResult{
		e.evaluateReturnOnEquity(data, window),
		e.evaluateReturnOnAssets(data, window),
		e.evaluateEPSTrend(data, window),
		e.evaluateNetMargin(data, window),
		e.evaluateGrossMargin(data, window),
		e.evaluateLongTermDebt(data, window),
		manualCheck(LabelOrganizedLabor),
		manualCheck(LabelPricingPower),
		e.evaluateRetainedCapital(data, window),
		e.evaluateDividendHistory(data),
		manualCheck(LabelBarriersToEntry),
	}

	return results, e.Aggregate(results)
}

// window selects the trailing fiscal years to evaluate, newest first,
// narrowing gracefully to however many the income statement actually has.
func (e *Evaluator) window(income *fundamentals.Statement) []int {
	years := income.Years()
	if len(years) > e.windowYears {
		years = years[:e.windowYears]
	}
	return years
}

// evaluateRatioSeries is the shared shape of every threshold check: compute
// the ratio for each window year, classify each available year, and pass
// only when at least one year is available and none fail. When the whole
// window is unavailable the vendor's precomputed profile value, if any,
// decides on its own.
func (e *Evaluator) evaluateRatioSeries(label string, window []int, value func(year int) null.Float, threshold float64, dir direction, percent bool, fallback null.Float) CheckResult {
	series := make(RatioSeries, len(window))
	available, passed := 0, 0

	for _, year := range window {
		v := value(year)
		series[year] = v
		if !v.Valid {
			continue
		}
		available++
		if compare(v.Float64, threshold, dir) {
			passed++
		}
	}

	result := CheckResult{Label: label, Percent: percent, Series: series}

	switch {
	case available > 0 && passed == available:
		result.Outcome = OutcomePass
		result.Detail = fmt.Sprintf("%d/%d years passed", passed, available)
	case available > 0:
		result.Outcome = OutcomeFail
		result.Detail = fmt.Sprintf("%d/%d years passed", passed, available)
	case fallback.Valid:
		// No statement data at all; fall back to the vendor's own ratio.
		if compare(fallback.Float64, threshold, dir) {
			result.Outcome = OutcomePass
		} else {
			result.Outcome = OutcomeFail
		}
		result.Detail = fmt.Sprintf("vendor profile value %s", formatValue(fallback.Float64, percent))
	default:
		result.Outcome = OutcomeUnavailable
		result.Detail = "no data"
	}

	return result
}

func compare(value, threshold float64, dir direction) bool {
	if dir == below {
		return value < threshold
	}
	return value >= threshold
}

func (e *Evaluator) evaluateReturnOnEquity(data *dataflows.TickerData, window []int) CheckResult {
	return e.evaluateRatioSeries(LabelReturnOnEquity, window, func(year int) null.Float {
		return fundamentals.YearlyRatio(data.Income, dataflows.ItemNetIncome, data.Balance, dataflows.ItemTotalEquity, year)
	}, ThresholdROE, atLeast, true, data.Profile.ReturnOnEquity)
}

func (e *Evaluator) evaluateReturnOnAssets(data *dataflows.TickerData, window []int) CheckResult {
	return e.evaluateRatioSeries(LabelReturnOnAssets, window, func(year int) null.Float {
		return fundamentals.YearlyRatio(data.Income, dataflows.ItemNetIncome, data.Balance, dataflows.ItemTotalAssets, year)
	}, ThresholdROA, atLeast, true, data.Profile.ReturnOnAssets)
}

func (e *Evaluator) evaluateNetMargin(data *dataflows.TickerData, window []int) CheckResult {
	return e.evaluateRatioSeries(LabelNetMargin, window, func(year int) null.Float {
		return fundamentals.YearlyRatio(data.Income, dataflows.ItemNetIncome, data.Income, dataflows.ItemTotalRevenue, year)
	}, ThresholdNetMargin, atLeast, true, data.Profile.NetMargin)
}

// evaluateGrossMargin prefers the vendor's Gross Profit row and falls back
// to Total Revenue minus Cost Of Revenue when the row is absent, which it
// frequently is for financial and service companies.
func (e *Evaluator) evaluateGrossMargin(data *dataflows.TickerData, window []int) CheckResult {
	return e.evaluateRatioSeries(LabelGrossMargin, window, func(year int) null.Float {
		revenue := data.Income.Lookup(dataflows.ItemTotalRevenue, year)

		gross := data.Income.Lookup(dataflows.ItemGrossProfit, year)
		if !gross.Valid {
			cost := data.Income.Lookup(dataflows.ItemCostOfRevenue, year)
			if revenue.Valid && cost.Valid {
				gross = null.FloatFrom(revenue.Float64 - cost.Float64)
			}
		}

		return fundamentals.Ratio(gross, revenue)
	}, ThresholdGrossMargin, atLeast, true, data.Profile.GrossMargin)
}

func (e *Evaluator) evaluateLongTermDebt(data *dataflows.TickerData, window []int) CheckResult {
	return e.evaluateRatioSeries(LabelLongTermDebt, window, func(year int) null.Float {
		return fundamentals.YearlyRatio(data.Balance, dataflows.ItemLongTermDebt, data.Income, dataflows.ItemNetIncome, year)
	}, ThresholdDebtToIncome, below, false, null.Float{})
}

// evaluateRetainedCapital computes net income over retained earnings for
// the period, where retained earnings are net income less dividends paid.
// The vendor reports dividends paid as a negative cash-flow line; a company
// that pays none retains everything.
func (e *Evaluator) evaluateRetainedCapital(data *dataflows.TickerData, window []int) CheckResult {
	return e.evaluateRatioSeries(LabelRetainedCapital, window, func(year int) null.Float {
		income := data.Income.Lookup(dataflows.ItemNetIncome, year)
		if !income.Valid {
			return null.Float{}
		}

		paid := 0.0
		if v := data.CashFlow.Lookup(dataflows.ItemDividendsPaid, year); v.Valid {
			paid = math.Abs(v.Float64)
		}

		return fundamentals.Ratio(income, null.FloatFrom(income.Float64-paid))
	}, ThresholdRetainedCapital, atLeast, true, null.Float{})
}

// evaluateEPSTrend walks per-year earnings oldest to newest and requires
// every successive step to rise. Straight differencing, not percent change.
// The diluted EPS row drives the trend when it covers at least two window
// years; net income stands in otherwise, which preserves the trend's sign
// as long as the share count holds steady. One measure drives the whole
// series; per-share and absolute values never mix.
func (e *Evaluator) evaluateEPSTrend(data *dataflows.TickerData, window []int) CheckResult {
	item := dataflows.ItemDilutedEPS
	covered := 0
	for _, year := range window {
		if data.Income.Lookup(item, year).Valid {
			covered++
		}
	}
	if covered < 2 {
		item = dataflows.ItemNetIncome
	}

	series := make(RatioSeries, len(window))
	var years []int
	for _, year := range window {
		v := data.Income.Lookup(item, year)
		series[year] = v
		if v.Valid {
			years = append(years, year)
		}
	}
	sort.Ints(years)

	result := CheckResult{Label: LabelEPSTrend, Series: series}

	if len(years) < 2 {
		result.Outcome = OutcomeUnavailable
		result.Detail = "not enough earnings history"
		return result
	}

	rising, steps := 0, len(years)-1
	for i := 1; i < len(years); i++ {
		if series[years[i]].Float64 > series[years[i-1]].Float64 {
			rising++
		}
	}

	if rising == steps {
		result.Outcome = OutcomePass
	} else {
		result.Outcome = OutcomeFail
	}
	result.Detail = fmt.Sprintf("rising in %d/%d steps", rising, steps)
	return result
}

// evaluateDividendHistory flags any year whose total payout fell below the
// prior year's. A company with no payment record gets a neutral "no
// dividends" outcome that counts toward neither side of the score.
func (e *Evaluator) evaluateDividendHistory(data *dataflows.TickerData) CheckResult {
	result := CheckResult{Label: LabelDividendHistory}

	years, _ := data.Dividends.AnnualTotals()
	if len(years) == 0 {
		result.Outcome = OutcomeNeutral
		result.Detail = "no dividends"
		return result
	}

	cuts := data.Dividends.Cuts()
	if len(cuts) > 0 {
		labels := make([]string, len(cuts))
		for i, y := range cuts {
			labels[i] = fmt.Sprintf("%d", y)
		}
		result.Outcome = OutcomeFail
		result.Detail = fmt.Sprintf("cut in %s", strings.Join(labels, ", "))
		return result
	}

	result.Outcome = OutcomePass
	result.Detail = fmt.Sprintf("%d years, no cuts", len(years))
	return result
}

func manualCheck(label string) CheckResult {
	return CheckResult{
		Label:   label,
		Manual:  true,
		Outcome: OutcomeNeutral,
		Detail:  "requires manual review",
	}
}
