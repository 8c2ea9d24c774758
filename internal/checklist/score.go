package checklist

// Aggregate tallies checklist outcomes into a score and a verdict band.
// Manual items are counted in their own bucket and never enter the score;
// unavailable and neutral outcomes are excluded from both numerator and
// denominator.
func (e *Evaluator) Aggregate(results []CheckResult) ScoreSummary {
	summary := ScoreSummary{TotalChecks: len(results)}

	for _, r := range results {
		if r.Manual {
			summary.ManualReview++
			continue
		}
		switch r.Outcome {
		case OutcomePass:
			summary.Evaluated++
			summary.Passed++
		case OutcomeFail:
			summary.Evaluated++
		}
	}

	summary.Verdict = e.verdict(summary)
	return summary
}

func (e *Evaluator) verdict(s ScoreSummary) string {
	if s.Evaluated == 0 {
		return VerdictInsufficient
	}

	fraction := float64(s.Passed) / float64(s.Evaluated)
	switch {
	case fraction >= e.strongCut:
		return VerdictStrong
	case fraction >= e.watchlistCut:
		return VerdictWatchlist
	default:
		return VerdictAvoid
	}
}
