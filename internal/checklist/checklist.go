// Package checklist evaluates the fixed value-investing checklist against a
// fetched ticker snapshot. Quantitative checks compute a per-year ratio
// series over a trailing window of fiscal years and reduce it to a single
// pass/fail; items that cannot be computed stay distinct from both.
package checklist

import (
	"fmt"

	"github.com/guregu/null/v6"
)

// Outcome is the aggregate result of one checklist item. Unavailable and
// Neutral are real outcomes, not errors: a check with no computable data is
// reported as such and kept out of the score entirely.
type Outcome int

const (
	OutcomeUnavailable Outcome = iota
	OutcomePass
	OutcomeFail
	OutcomeNeutral
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeFail:
		return "fail"
	case OutcomeNeutral:
		return "neutral"
	default:
		return "unavailable"
	}
}

// RatioSeries maps fiscal years to an optional ratio value. Every year of
// the evaluation window is present; unavailable years carry an invalid
// float.
type RatioSeries map[int]null.Float

// CheckResult is the outcome of a single checklist item.
type CheckResult struct {
	Label   string      `json:"label"`
	Manual  bool        `json:"manual"`  // human-judgment item, never scored
	Percent bool        `json:"percent"` // render values as percentages
	Series  RatioSeries `json:"series,omitempty"`
	Outcome Outcome     `json:"outcome"`
	Detail  string      `json:"detail"`
}

// ScoreSummary tallies the checklist outcomes. Only quantitative checks
// with a definite pass or fail enter the score; manual, neutral and
// unavailable items are excluded from both numerator and denominator.
type ScoreSummary struct {
	TotalChecks  int    `json:"total_checks"`
	Evaluated    int    `json:"evaluated"`
	Passed       int    `json:"passed"`
	ManualReview int    `json:"manual_review"`
	Verdict      string `json:"verdict"`
}

// Verdict bands.
const (
	VerdictStrong       = "Strong Candidate"
	VerdictWatchlist    = "Watchlist"
	VerdictAvoid        = "Avoid"
	VerdictInsufficient = "Insufficient Data"
)

// Checklist item labels, in display order.
const (
	LabelReturnOnEquity  = "Return on Equity >= 12%"
	LabelReturnOnAssets  = "Return on Assets >= 12%"
	LabelEPSTrend        = "EPS Trend Positive"
	LabelNetMargin       = "Net Margin >= 20%"
	LabelGrossMargin     = "Gross Margin >= 40%"
	LabelLongTermDebt    = "LT Debt < 5x Net Income"
	LabelOrganizedLabor  = "Organized Labor (Manual Review)"
	LabelPricingPower    = "Pricing Power vs Inflation (Manual Review)"
	LabelRetainedCapital = "Return on Retained Capital >= 18%"
	LabelDividendHistory = "Dividend History (No Cuts)"
	LabelBarriersToEntry = "Barriers to Entry (Manual Review)"
)

// Ratio thresholds. Comparisons against "at least" thresholds are
// inclusive: a return on equity of exactly 0.12 passes.
const (
	ThresholdROE             = 0.12
	ThresholdROA             = 0.12
	ThresholdNetMargin       = 0.20
	ThresholdGrossMargin     = 0.40
	ThresholdDebtToIncome    = 5.0
	ThresholdRetainedCapital = 0.18
)

func formatValue(v float64, percent bool) string {
	if percent {
		return fmt.Sprintf("%.1f%%", v*100)
	}
	return fmt.Sprintf("%.2f", v)
}
