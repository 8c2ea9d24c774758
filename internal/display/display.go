// Package display renders checklist results for the terminal.
package display

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/malcagui2023/ValueInvesting-EMBA/internal/checklist"
	"github.com/malcagui2023/ValueInvesting-EMBA/internal/dataflows"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	verdictStrongStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#10B981"))

	verdictWatchStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#F59E0B"))

	verdictAvoidStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#EF4444"))
)

const sparkRunes = "▁▂▃▄▅▆▇█"

// RenderScoreboard formats the checklist results and the score into a
// terminal scoreboard. A nil quote renders the header without a price.
func RenderScoreboard(profile dataflows.Profile, quote *dataflows.Quote, results []checklist.CheckResult, summary checklist.ScoreSummary) string {
	var b strings.Builder

	name := profile.Name
	if name == "" {
		name = profile.Symbol
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("Value Investing Checklist — %s", name)))
	if quote != nil {
		price := quote.Price.StringFixed(2)
		if profile.Currency != "" {
			price += " " + profile.Currency
		}
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%+.2f%%)", price, quote.ChangePercent)))
	}
	b.WriteString("\n\n")

	labelWidth := 0
	for _, r := range results {
		if len(r.Label) > labelWidth {
			labelWidth = len(r.Label)
		}
	}

	for _, r := range results {
		b.WriteString(fmt.Sprintf("  %-*s  %s  %s\n",
			labelWidth, r.Label, statusMark(r), dimStyle.Render(r.Detail)))
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("Final Score: %d/%d", summary.Passed, summary.Evaluated)))
	if summary.ManualReview > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d items need manual review)", summary.ManualReview)))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Verdict: %s\n", verdictBadge(summary.Verdict)))

	return b.String()
}

// RenderPriceChart draws the closing price history as a sparkline with the
// price range annotated.
func RenderPriceChart(prices []*dataflows.MarketData, width int) string {
	if len(prices) == 0 {
		return dimStyle.Render("(no price history)")
	}
	if width < 10 {
		width = 10
	}

	closes := make([]float64, len(prices))
	for i, p := range prices {
		closes[i], _ = p.Close.Float64()
	}

	sampled := downsample(closes, width)
	lo, hi := minMax(sampled)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Close, %s to %s",
		prices[0].Date.Format("2006-01-02"), prices[len(prices)-1].Date.Format("2006-01-02"))))
	b.WriteString("\n  ")
	b.WriteString(sparkline(sampled, lo, hi))
	b.WriteString(fmt.Sprintf("\n  %s\n", dimStyle.Render(fmt.Sprintf("low %.2f · high %.2f", lo, hi))))
	return b.String()
}

// RenderTrends draws a per-year sparkline for every check that produced a
// ratio series with at least one available year.
func RenderTrends(results []checklist.CheckResult) string {
	var b strings.Builder

	for _, r := range results {
		years := availableYears(r.Series)
		if len(years) == 0 {
			continue
		}

		values := make([]float64, len(years))
		cells := make([]string, len(years))
		for i, y := range years {
			values[i] = r.Series[y].Float64
			cells[i] = fmt.Sprintf("%d: %s", y, formatTrendValue(values[i], r.Percent))
		}
		lo, hi := minMax(values)

		b.WriteString(headerStyle.Render(r.Label))
		b.WriteString("\n  ")
		b.WriteString(sparkline(values, lo, hi))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(strings.Join(cells, "  ")))
		b.WriteString("\n")
	}

	if b.Len() == 0 {
		return dimStyle.Render("(no trend data)")
	}
	return b.String()
}

func statusMark(r checklist.CheckResult) string {
	if r.Manual {
		return warnStyle.Render("⚠ manual")
	}
	switch r.Outcome {
	case checklist.OutcomePass:
		return passStyle.Render("✔ pass")
	case checklist.OutcomeFail:
		return failStyle.Render("✘ fail")
	case checklist.OutcomeNeutral:
		return warnStyle.Render("– neutral")
	default:
		return dimStyle.Render("— n/a")
	}
}

func verdictBadge(verdict string) string {
	switch verdict {
	case checklist.VerdictStrong:
		return verdictStrongStyle.Render("🟢 " + verdict)
	case checklist.VerdictWatchlist:
		return verdictWatchStyle.Render("🟡 " + verdict)
	case checklist.VerdictAvoid:
		return verdictAvoidStyle.Render("🔴 " + verdict)
	default:
		return dimStyle.Render(verdict)
	}
}

func availableYears(series checklist.RatioSeries) []int {
	var years []int
	for y, v := range series {
		if v.Valid {
			years = append(years, y)
		}
	}
	sort.Ints(years)
	return years
}

func sparkline(values []float64, lo, hi float64) string {
	runes := []rune(sparkRunes)
	span := hi - lo

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if span > 0 {
			idx = int((v - lo) / span * float64(len(runes)-1))
		}
		b.WriteRune(runes[idx])
	}
	return b.String()
}

func downsample(values []float64, width int) []float64 {
	if len(values) <= width {
		return values
	}

	out := make([]float64, width)
	bucket := float64(len(values)) / float64(width)
	for i := 0; i < width; i++ {
		start := int(float64(i) * bucket)
		end := int(float64(i+1) * bucket)
		if end > len(values) {
			end = len(values)
		}
		sum := 0.0
		for _, v := range values[start:end] {
			sum += v
		}
		out[i] = sum / float64(end-start)
	}
	return out
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func formatTrendValue(v float64, percent bool) string {
	if percent {
		return fmt.Sprintf("%.1f%%", v*100)
	}
	return fmt.Sprintf("%.2f", v)
}
