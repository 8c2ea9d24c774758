package dataflows

import (
	"fmt"
	"time"

	"github.com/guregu/null/v6"

	"github.com/malcagui2023/ValueInvesting-EMBA/internal/fundamentals"
)

// Canonical line-item names used by the checklist. They mirror the vendor's
// display labels so row lookups stay exact-match.
const (
	ItemNetIncome     = "Net Income"
	ItemTotalRevenue  = "Total Revenue"
	ItemCostOfRevenue = "Cost Of Revenue"
	ItemGrossProfit   = "Gross Profit"
	ItemTotalAssets   = "Total Assets"
	ItemTotalEquity   = "Total Stockholder Equity"
	ItemLongTermDebt  = "Long Term Debt"
	ItemDilutedEPS    = "Diluted EPS"
	ItemDividendsPaid = "Cash Dividends Paid"
)

// rawValue is the vendor's {raw, fmt} number wrapper. A nil pointer means
// the field was absent from this company's schema.
type rawValue struct {
	Raw *float64 `json:"raw"`
	Fmt string   `json:"fmt"`
}

func (v *rawValue) float() (float64, bool) {
	if v == nil || v.Raw == nil {
		return 0, false
	}
	return *v.Raw, true
}

func (v *rawValue) nullFloat() null.Float {
	f, ok := v.float()
	if !ok {
		return null.Float{}
	}
	return null.FloatFrom(f)
}

// quoteSummaryEnvelope maps the vendor's quoteSummary payload for the
// modules the checklist needs.
type quoteSummaryEnvelope struct {
	QuoteSummary struct {
		Result []quoteSummaryResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

type quoteSummaryResult struct {
	Price struct {
		ShortName string `json:"shortName"`
		Symbol    string `json:"symbol"`
		Currency  string `json:"currency"`
	} `json:"price"`
	IncomeStatementHistory struct {
		IncomeStatementHistory []incomeStatementEntry `json:"incomeStatementHistory"`
	} `json:"incomeStatementHistory"`
	BalanceSheetHistory struct {
		BalanceSheetStatements []balanceSheetEntry `json:"balanceSheetStatements"`
	} `json:"balanceSheetHistory"`
	CashflowStatementHistory struct {
		CashflowStatements []cashflowEntry `json:"cashflowStatements"`
	} `json:"cashflowStatementHistory"`
	FinancialData struct {
		ReturnOnEquity *rawValue `json:"returnOnEquity"`
		ReturnOnAssets *rawValue `json:"returnOnAssets"`
		ProfitMargins  *rawValue `json:"profitMargins"`
		GrossMargins   *rawValue `json:"grossMargins"`
	} `json:"financialData"`
	DefaultKeyStatistics struct {
		SharesOutstanding *rawValue `json:"sharesOutstanding"`
	} `json:"defaultKeyStatistics"`
}

type incomeStatementEntry struct {
	EndDate       *rawValue `json:"endDate"`
	TotalRevenue  *rawValue `json:"totalRevenue"`
	CostOfRevenue *rawValue `json:"costOfRevenue"`
	GrossProfit   *rawValue `json:"grossProfit"`
	NetIncome     *rawValue `json:"netIncome"`
	DilutedEPS    *rawValue `json:"dilutedEPS"`
}

type balanceSheetEntry struct {
	EndDate                 *rawValue `json:"endDate"`
	TotalAssets             *rawValue `json:"totalAssets"`
	TotalStockholderEquity  *rawValue `json:"totalStockholderEquity"`
	LongTermDebt            *rawValue `json:"longTermDebt"`
	TotalCurrentLiabilities *rawValue `json:"totalCurrentLiabilities"`
}

type cashflowEntry struct {
	EndDate       *rawValue `json:"endDate"`
	NetIncome     *rawValue `json:"netIncome"`
	DividendsPaid *rawValue `json:"dividendsPaid"`
}

// result extracts the single result object or reports the vendor error.
func (e *quoteSummaryEnvelope) result() (*quoteSummaryResult, error) {
	if qerr := e.QuoteSummary.Error; qerr != nil {
		return nil, fmt.Errorf("vendor error %s: %s", qerr.Code, qerr.Description)
	}
	if len(e.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("empty quote summary result")
	}
	return &e.QuoteSummary.Result[0], nil
}

func entryEnd(end *rawValue) (time.Time, bool) {
	f, ok := end.float()
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(int64(f), 0).UTC(), true
}

// addRow adds a line-item value to a statement when the vendor reported it.
func addRow(s *fundamentals.Statement, item string, end time.Time, v *rawValue) {
	if f, ok := v.float(); ok {
		s.Add(item, end, f)
	}
}

// statements converts the raw payload into the three statement tables,
// preserving the vendor's column order (most recent first).
func (r *quoteSummaryResult) statements() (income, balance, cashflow *fundamentals.Statement) {
	income = fundamentals.NewStatement()
	for _, e := range r.IncomeStatementHistory.IncomeStatementHistory {
		end, ok := entryEnd(e.EndDate)
		if !ok {
			continue
		}
		addRow(income, ItemTotalRevenue, end, e.TotalRevenue)
		addRow(income, ItemCostOfRevenue, end, e.CostOfRevenue)
		addRow(income, ItemGrossProfit, end, e.GrossProfit)
		addRow(income, ItemNetIncome, end, e.NetIncome)
		addRow(income, ItemDilutedEPS, end, e.DilutedEPS)
	}

	balance = fundamentals.NewStatement()
	for _, e := range r.BalanceSheetHistory.BalanceSheetStatements {
		end, ok := entryEnd(e.EndDate)
		if !ok {
			continue
		}
		addRow(balance, ItemTotalAssets, end, e.TotalAssets)
		addRow(balance, ItemTotalEquity, end, e.TotalStockholderEquity)
		addRow(balance, ItemLongTermDebt, end, e.LongTermDebt)
	}

	cashflow = fundamentals.NewStatement()
	for _, e := range r.CashflowStatementHistory.CashflowStatements {
		end, ok := entryEnd(e.EndDate)
		if !ok {
			continue
		}
		addRow(cashflow, ItemNetIncome, end, e.NetIncome)
		addRow(cashflow, ItemDividendsPaid, end, e.DividendsPaid)
	}

	return income, balance, cashflow
}

// profile converts the precomputed vendor attributes.
func (r *quoteSummaryResult) profile(symbol string) Profile {
	return Profile{
		Symbol:            symbol,
		Name:              r.Price.ShortName,
		Currency:          r.Price.Currency,
		ReturnOnEquity:    r.FinancialData.ReturnOnEquity.nullFloat(),
		ReturnOnAssets:    r.FinancialData.ReturnOnAssets.nullFloat(),
		NetMargin:         r.FinancialData.ProfitMargins.nullFloat(),
		GrossMargin:       r.FinancialData.GrossMargins.nullFloat(),
		SharesOutstanding: r.DefaultKeyStatistics.SharesOutstanding.nullFloat(),
	}
}
