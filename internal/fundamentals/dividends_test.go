package fundamentals

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func paidOn(year, month int, amount string) Payment {
	return Payment{
		Date:   time.Date(year, time.Month(month), 15, 0, 0, 0, 0, time.UTC),
		Amount: decimal.RequireFromString(amount),
	}
}

func TestAnnualTotals(t *testing.T) {
	h := DividendHistory{
		paidOn(2022, 3, "2.5"),
		paidOn(2022, 9, "2.5"),
		paidOn(2023, 3, "3"),
	}

	years, totals := h.AnnualTotals()
	if len(years) != 2 || years[0] != 2022 || years[1] != 2023 {
		t.Fatalf("years = %v, want [2022 2023]", years)
	}
	if !totals[2022].Equal(decimal.RequireFromString("5")) {
		t.Fatalf("2022 total = %s, want 5", totals[2022])
	}
	if !totals[2023].Equal(decimal.RequireFromString("3")) {
		t.Fatalf("2023 total = %s, want 3", totals[2023])
	}
}

func TestCutsDetectsSingleCut(t *testing.T) {
	// 2021: 10, 2022: 8, 2023: 8. One cut in 2022; holding flat after a
	// cut is not another cut.
	h := DividendHistory{
		paidOn(2021, 6, "10"),
		paidOn(2022, 6, "8"),
		paidOn(2023, 6, "8"),
	}

	cuts := h.Cuts()
	if len(cuts) != 1 || cuts[0] != 2022 {
		t.Fatalf("cuts = %v, want [2022]", cuts)
	}
}

func TestCutsSingleYearHistory(t *testing.T) {
	h := DividendHistory{paidOn(2023, 6, "1")}
	if cuts := h.Cuts(); len(cuts) != 0 {
		t.Fatalf("cuts = %v, want none for a single-year history", cuts)
	}
}

func TestCutsEmptyHistory(t *testing.T) {
	var h DividendHistory
	if cuts := h.Cuts(); len(cuts) != 0 {
		t.Fatalf("cuts = %v, want none for empty history", cuts)
	}
}

func TestCutsRisingPayout(t *testing.T) {
	h := DividendHistory{
		paidOn(2021, 6, "1"),
		paidOn(2022, 6, "1.1"),
		paidOn(2023, 6, "1.25"),
	}
	if cuts := h.Cuts(); len(cuts) != 0 {
		t.Fatalf("cuts = %v, want none for rising payout", cuts)
	}
}
