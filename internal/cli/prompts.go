package cli

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errPromptAborted marks a prompt ended with ctrl-c/EOF instead of input.
var errPromptAborted = errors.New("prompt aborted")

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// PromptForTicker asks the user for a stock ticker symbol. An empty answer
// is returned as-is so the caller can treat it as "done".
func PromptForTicker() (string, error) {
	var ticker string
	prompt := &survey.Input{
		Message: "Ticker symbol (e.g. AAPL, NVDA):",
		Help:    "Enter a stock ticker symbol to run the checklist against",
	}

	err := survey.AskOne(prompt, &ticker, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if str == "" {
			return nil // empty ends the session
		}
		if len(str) > 10 {
			return fmt.Errorf("ticker symbol too long (max 10 characters)")
		}
		if !symbolPattern.MatchString(str) {
			return fmt.Errorf("invalid ticker format (letters, numbers, dots and hyphens only)")
		}
		return nil
	}))
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", errPromptAborted
		}
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(ticker)), nil
}
