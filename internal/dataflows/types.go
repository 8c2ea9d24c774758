package dataflows

import (
	"time"

	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"

	"github.com/malcagui2023/ValueInvesting-EMBA/internal/fundamentals"
)

// MarketData represents one bar of stock price data.
type MarketData struct {
	Symbol    string          `json:"symbol"`
	Date      time.Time       `json:"date"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	AdjClose  decimal.Decimal `json:"adj_close"`
	Volume    int64           `json:"volume"`
	Timestamp time.Time       `json:"timestamp"`
}

// Profile carries the vendor's precomputed company attributes. Every ratio
// is optional; service and financial companies routinely omit several.
type Profile struct {
	Symbol            string     `json:"symbol"`
	Name              string     `json:"name"`
	Currency          string     `json:"currency"`
	ReturnOnEquity    null.Float `json:"return_on_equity"`
	ReturnOnAssets    null.Float `json:"return_on_assets"`
	NetMargin         null.Float `json:"net_margin"`
	GrossMargin       null.Float `json:"gross_margin"`
	SharesOutstanding null.Float `json:"shares_outstanding"`
}

// Quote is the latest market snapshot, shown alongside the company name.
type Quote struct {
	Price         decimal.Decimal `json:"price"`
	ChangePercent float64         `json:"change_percent"`
	AsOf          time.Time       `json:"as_of"`
}

// TickerData bundles everything a single checklist evaluation consumes. It
// is built fresh per request and discarded afterwards. Quote is nil when
// the live snapshot was unavailable; evaluation never reads it.
type TickerData struct {
	Symbol    string                       `json:"symbol"`
	Profile   Profile                      `json:"profile"`
	Quote     *Quote                       `json:"quote,omitempty"`
	Income    *fundamentals.Statement      `json:"-"`
	Balance   *fundamentals.Statement      `json:"-"`
	CashFlow  *fundamentals.Statement      `json:"-"`
	Dividends fundamentals.DividendHistory `json:"dividends"`
	Prices    []*MarketData                `json:"prices"`
	FetchedAt time.Time                    `json:"fetched_at"`
}
