// Package export writes checklist results as CSV. The column layout is
// fixed (Metric, Pass/Fail, Value/Details) so exports stay comparable
// across runs.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/malcagui2023/ValueInvesting-EMBA/internal/checklist"
)

var header = []string{"Metric", "Pass/Fail", "Value/Details"}

// WriteCSV writes one row per checklist item plus a final score trailer.
func WriteCSV(w io.Writer, results []checklist.CheckResult, summary checklist.ScoreSummary) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, r := range results {
		row := []string{r.Label, statusCell(r), r.Detail}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", r.Label, err)
		}
	}

	trailer := []string{
		"Final Score",
		fmt.Sprintf("%d/%d", summary.Passed, summary.Evaluated),
		summary.Verdict,
	}
	if err := writer.Write(trailer); err != nil {
		return fmt.Errorf("writing score trailer: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

// SaveResults writes the CSV into the results directory with a timestamped
// name and returns the file path.
func SaveResults(resultsDir, symbol string, results []checklist.CheckResult, summary checklist.ScoreSummary) (string, error) {
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return "", fmt.Errorf("creating results directory: %w", err)
	}

	filename := fmt.Sprintf("%s_checklist_%s.csv", symbol, time.Now().Format("20060102_150405"))
	path := filepath.Join(resultsDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, results, summary); err != nil {
		return "", err
	}
	return path, nil
}

func statusCell(r checklist.CheckResult) string {
	if r.Manual {
		return "Manual"
	}
	switch r.Outcome {
	case checklist.OutcomePass:
		return "Pass"
	case checklist.OutcomeFail:
		return "Fail"
	case checklist.OutcomeNeutral:
		return "Neutral"
	default:
		return "N/A"
	}
}
