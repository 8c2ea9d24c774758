package fundamentals

import (
	"math"

	"github.com/guregu/null/v6"
)

// Ratio divides numerator by denominator. The result is invalid when either
// input is invalid, the denominator is exactly zero, or the quotient is not
// finite. Degenerate input never propagates as an error.
func Ratio(num, den null.Float) null.Float {
	if !num.Valid || !den.Valid || den.Float64 == 0 {
		return null.Float{}
	}
	v := num.Float64 / den.Float64
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return null.Float{}
	}
	return null.FloatFrom(v)
}

// YearlyRatio looks up both line items for a fiscal year and divides them.
// This is the unit every quantitative checklist item is built from.
func YearlyRatio(num *Statement, numItem string, den *Statement, denItem string, year int) null.Float {
	return Ratio(num.Lookup(numItem, year), den.Lookup(denItem, year))
}
