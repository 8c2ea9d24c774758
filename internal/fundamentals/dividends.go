package fundamentals

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Payment is one per-share dividend event.
type Payment struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

// DividendHistory is the chronological sequence of dividend payments for a
// company.
type DividendHistory []Payment

// AnnualTotals groups payments by calendar year and sums them. The returned
// years are ascending; every listed year has a total.
func (h DividendHistory) AnnualTotals() ([]int, map[int]decimal.Decimal) {
	totals := make(map[int]decimal.Decimal)
	var years []int
	for _, p := range h {
		y := p.Date.Year()
		if _, ok := totals[y]; !ok {
			years = append(years, y)
		}
		totals[y] = totals[y].Add(p.Amount)
	}
	sort.Ints(years)
	return years, totals
}

// Cuts returns the years whose annual total is strictly below the total of
// the previous year with recorded payments. A single-year history has no
// prior year and therefore no cuts.
func (h DividendHistory) Cuts() []int {
	years, totals := h.AnnualTotals()
	var cuts []int
	for i := 1; i < len(years); i++ {
		if totals[years[i]].LessThan(totals[years[i-1]]) {
			cuts = append(cuts, years[i])
		}
	}
	return cuts
}
