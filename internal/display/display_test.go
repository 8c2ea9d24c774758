package display

import (
	"strings"
	"testing"
	"time"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"github.com/malcagui2023/ValueInvesting-EMBA/internal/checklist"
	"github.com/malcagui2023/ValueInvesting-EMBA/internal/dataflows"
)

func TestRenderScoreboardContainsChecksAndScore(t *testing.T) {
	results := []checklist.CheckResult{
		{Label: checklist.LabelReturnOnEquity, Outcome: checklist.OutcomePass, Detail: "5/5 years passed"},
		{Label: checklist.LabelOrganizedLabor, Manual: true, Outcome: checklist.OutcomeNeutral, Detail: "requires manual review"},
	}
	summary := checklist.ScoreSummary{
		TotalChecks: 2, Evaluated: 1, Passed: 1, ManualReview: 1,
		Verdict: checklist.VerdictStrong,
	}

	out := RenderScoreboard(dataflows.Profile{Symbol: "AAPL", Name: "Apple Inc."}, nil, results, summary)

	for _, want := range []string{"Apple Inc.", checklist.LabelReturnOnEquity, "Final Score: 1/1", checklist.VerdictStrong} {
		if !strings.Contains(out, want) {
			t.Fatalf("scoreboard missing %q:\n%s", want, out)
		}
	}
}

func TestRenderScoreboardShowsQuoteInHeader(t *testing.T) {
	profile := dataflows.Profile{Symbol: "AAPL", Name: "Apple Inc.", Currency: "USD"}
	quote := &dataflows.Quote{Price: decimal.NewFromFloat(227.5), ChangePercent: 1.2}

	out := RenderScoreboard(profile, quote, nil, checklist.ScoreSummary{Verdict: checklist.VerdictInsufficient})

	for _, want := range []string{"227.50 USD", "+1.20%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("scoreboard header missing %q:\n%s", want, out)
		}
	}
}

func TestRenderPriceChart(t *testing.T) {
	var prices []*dataflows.MarketData
	for i := 0; i < 100; i++ {
		prices = append(prices, &dataflows.MarketData{
			Date:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Close: decimal.NewFromInt(int64(100 + i)),
		})
	}

	out := RenderPriceChart(prices, 40)
	if !strings.Contains(out, "2024-01-01") {
		t.Fatalf("chart missing start date:\n%s", out)
	}
	if !strings.Contains(out, "low 100") {
		t.Fatalf("chart missing low annotation:\n%s", out)
	}
}

func TestRenderPriceChartEmpty(t *testing.T) {
	if out := RenderPriceChart(nil, 40); !strings.Contains(out, "no price history") {
		t.Fatalf("unexpected empty-chart output: %q", out)
	}
}

func TestRenderTrendsSkipsEmptySeries(t *testing.T) {
	results := []checklist.CheckResult{
		{Label: checklist.LabelReturnOnEquity, Percent: true, Series: checklist.RatioSeries{
			2022: null.FloatFrom(0.10),
			2023: null.FloatFrom(0.14),
		}},
		{Label: checklist.LabelLongTermDebt, Series: checklist.RatioSeries{
			2023: null.Float{},
		}},
	}

	out := RenderTrends(results)
	if !strings.Contains(out, checklist.LabelReturnOnEquity) {
		t.Fatalf("trends missing ROE series:\n%s", out)
	}
	if strings.Contains(out, checklist.LabelLongTermDebt) {
		t.Fatalf("trends should skip all-unavailable series:\n%s", out)
	}
	if !strings.Contains(out, "2023: 14.0%") {
		t.Fatalf("trends missing percent-formatted value:\n%s", out)
	}
}

func TestDownsample(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i)
	}

	out := downsample(values, 10)
	if len(out) != 10 {
		t.Fatalf("downsampled length = %d, want 10", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i] <= out[i-1] {
			t.Fatalf("monotone input must stay monotone, got %v", out)
		}
	}

	short := []float64{1, 2}
	if got := downsample(short, 10); len(got) != 2 {
		t.Fatalf("short input should pass through, got %v", got)
	}
}

func TestSparklineFlatSeries(t *testing.T) {
	out := sparkline([]float64{5, 5, 5}, 5, 5)
	if out != "▁▁▁" {
		t.Fatalf("flat sparkline = %q", out)
	}
}
