// Package dataflows talks to the market-data vendor. It is the only I/O in
// the application; everything downstream works on the TickerData snapshot it
// returns. A failure here is the single whole-request failure the user sees;
// individual missing line items inside a successful response are up to the
// checklist to tolerate.
package dataflows

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/quote"
	"github.com/shopspring/decimal"

	"github.com/malcagui2023/ValueInvesting-EMBA/internal/config"
	"github.com/malcagui2023/ValueInvesting-EMBA/internal/fundamentals"
)

const quoteSummaryModules = "price,incomeStatementHistory,balanceSheetHistory,cashflowStatementHistory,financialData,defaultKeyStatistics"

// Client fetches quotes, price history, financial statements and dividend
// events for a ticker.
type Client struct {
	http  *resty.Client
	cache *CacheManager
	retry *RetryConfig
	cfg   *config.Config
}

func NewClient(cfg *config.Config) *Client {
	httpClient := resty.New().
		SetBaseURL("https://query1.finance.yahoo.com").
		SetTimeout(cfg.FetchTimeout).
		SetHeader("User-Agent", "Mozilla/5.0 (compatible; ValueChecklist/1.0)")

	cacheDir := filepath.Join(cfg.DataCacheDir, "yahoo_finance")

	return &Client{
		http:  httpClient,
		cache: NewCacheManager(cacheDir, cfg.CacheTTL, cfg.CacheEnabled),
		retry: DefaultRetryConfig(),
		cfg:   cfg,
	}
}

// FetchTickerData retrieves everything one evaluation needs. Any failure
// here means the whole request failed; no partial snapshot is returned.
func (c *Client) FetchTickerData(ctx context.Context, symbol string) (*TickerData, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	profile, income, balance, cashflow, err := c.GetFundamentals(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetching fundamentals for %s: %w", symbol, err)
	}

	dividends, err := c.GetDividends(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetching dividends for %s: %w", symbol, err)
	}

	prices, err := c.GetPriceHistory(symbol, c.cfg.PricePeriod)
	if err != nil {
		return nil, fmt.Errorf("fetching price history for %s: %w", symbol, err)
	}

	// The live quote only decorates the scoreboard header; evaluation
	// never reads it, so a quote failure does not fail the fetch.
	liveQuote, _ := c.GetQuote(symbol)

	return &TickerData{
		Symbol:    symbol,
		Profile:   profile,
		Quote:     liveQuote,
		Income:    income,
		Balance:   balance,
		CashFlow:  cashflow,
		Dividends: dividends,
		Prices:    prices,
		FetchedAt: time.Now(),
	}, nil
}

// GetFundamentals fetches the quoteSummary modules and shapes them into the
// profile and the three statement tables.
func (c *Client) GetFundamentals(ctx context.Context, symbol string) (Profile, *fundamentals.Statement, *fundamentals.Statement, *fundamentals.Statement, error) {
	var envelope quoteSummaryEnvelope

	if !c.cache.Get("yahoo", "quote_summary", symbol, &envelope) {
		err := WithRetry(c.retry, func() error {
			resp, err := c.http.R().
				SetContext(ctx).
				SetQueryParams(map[string]string{
					"modules": quoteSummaryModules,
				}).
				Get("/v10/finance/quoteSummary/" + symbol)
			if err != nil {
				return fmt.Errorf("quote summary request: %w", err)
			}
			if resp.StatusCode() == 404 {
				return fmt.Errorf("unknown symbol %s", symbol)
			}
			if resp.StatusCode() != 200 {
				return fmt.Errorf("vendor returned status %d", resp.StatusCode())
			}
			if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
				return fmt.Errorf("parsing quote summary: %w", err)
			}
			return nil
		})
		if err != nil {
			return Profile{}, nil, nil, nil, err
		}
		// Only well-formed envelopes enter the cache; a body-level vendor
		// error must not be re-served until the TTL expires.
		if _, err := envelope.result(); err == nil {
			c.cache.Set("yahoo", "quote_summary", symbol, &envelope)
		}
	}

	result, err := envelope.result()
	if err != nil {
		return Profile{}, nil, nil, nil, err
	}

	income, balance, cashflow := result.statements()
	return result.profile(symbol), income, balance, cashflow, nil
}

// chartEnvelope maps the vendor's chart payload; only dividend events are
// consumed from it, the bars come from the chart iterator below.
type chartEnvelope struct {
	Chart struct {
		Result []struct {
			Events struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetDividends fetches the dividend payment events over the configured
// trailing period, oldest first. A company with no payouts returns an empty
// history, not an error.
func (c *Client) GetDividends(ctx context.Context, symbol string) (fundamentals.DividendHistory, error) {
	var envelope chartEnvelope

	params := map[string]string{"symbol": symbol, "period": c.cfg.PricePeriod}
	if !c.cache.Get("yahoo", "dividends", params, &envelope) {
		err := WithRetry(c.retry, func() error {
			resp, err := c.http.R().
				SetContext(ctx).
				SetQueryParams(map[string]string{
					"range":    c.cfg.PricePeriod,
					"interval": "3mo",
					"events":   "div",
				}).
				Get("/v8/finance/chart/" + symbol)
			if err != nil {
				return fmt.Errorf("dividend request: %w", err)
			}
			if resp.StatusCode() != 200 {
				return fmt.Errorf("vendor returned status %d", resp.StatusCode())
			}
			if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
				return fmt.Errorf("parsing dividend events: %w", err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if envelope.Chart.Error == nil && len(envelope.Chart.Result) > 0 {
			c.cache.Set("yahoo", "dividends", params, &envelope)
		}
	}

	if cerr := envelope.Chart.Error; cerr != nil {
		return nil, fmt.Errorf("vendor error %s: %s", cerr.Code, cerr.Description)
	}
	if len(envelope.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result")
	}

	var history fundamentals.DividendHistory
	for _, d := range envelope.Chart.Result[0].Events.Dividends {
		history = append(history, fundamentals.Payment{
			Date:   time.Unix(d.Date, 0).UTC(),
			Amount: decimal.NewFromFloat(d.Amount),
		})
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })

	return history, nil
}

// GetPriceHistory fetches daily bars over a trailing period (1y, 3y, 5y,
// 10y or max).
func (c *Client) GetPriceHistory(symbol, period string) ([]*MarketData, error) {
	end := time.Now()
	start, err := periodStart(end, period)
	if err != nil {
		return nil, err
	}

	cacheKey := map[string]string{
		"symbol": symbol,
		"start":  start.Format("2006-01-02"),
		"end":    end.Format("2006-01-02"),
	}
	var cached []*MarketData
	if c.cache.Get("yahoo", "historical", cacheKey, &cached) {
		return cached, nil
	}

	var result []*MarketData
	err = WithRetry(c.retry, func() error {
		params := &chart.Params{
			Symbol:   symbol,
			Start:    datetime.New(&start),
			End:      datetime.New(&end),
			Interval: datetime.OneDay,
		}

		iter := chart.Get(params)

		result = make([]*MarketData, 0)
		for iter.Next() {
			bar := iter.Bar()
			result = append(result, &MarketData{
				Symbol:    symbol,
				Date:      time.Unix(int64(bar.Timestamp), 0),
				Open:      bar.Open,
				High:      bar.High,
				Low:       bar.Low,
				Close:     bar.Close,
				AdjClose:  bar.AdjClose,
				Volume:    int64(bar.Volume),
				Timestamp: time.Now(),
			})
		}

		if err := iter.Err(); err != nil {
			return fmt.Errorf("failed to get historical data for %s: %w", symbol, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.cache.Set("yahoo", "historical", cacheKey, result)
	return result, nil
}

// GetQuote gets the latest market snapshot for a symbol. Only the fields
// the scoreboard header shows are kept.
func (c *Client) GetQuote(symbol string) (*Quote, error) {
	if err := ValidateSymbol(symbol); err != nil {
		return nil, err
	}
	symbol = NormalizeSymbol(symbol)

	var result *Quote
	err := WithRetry(c.retry, func() error {
		q, err := quote.Get(symbol)
		if err != nil {
			return fmt.Errorf("failed to get quote for %s: %w", symbol, err)
		}

		result = &Quote{
			Price:         decimal.NewFromFloat(q.RegularMarketPrice),
			ChangePercent: q.RegularMarketChangePercent,
			AsOf:          time.Now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func periodStart(end time.Time, period string) (time.Time, error) {
	switch period {
	case "1y":
		return end.AddDate(-1, 0, 0), nil
	case "3y":
		return end.AddDate(-3, 0, 0), nil
	case "5y":
		return end.AddDate(-5, 0, 0), nil
	case "10y":
		return end.AddDate(-10, 0, 0), nil
	case "max":
		return end.AddDate(-50, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("invalid price period %q", period)
}
