// Package fundamentals models financial statements as they arrive from the
// market-data vendor: loosely structured tables whose rows are named line
// items and whose columns are fiscal periods. Schema drift is normal here:
// different companies report different line items and different periods, so
// every accessor resolves to an invalid null.Float instead of failing.
package fundamentals

import (
	"math"
	"sort"
	"time"

	"github.com/guregu/null/v6"
)

// Period is a single reported column of a statement: the fiscal period end
// date and the value the vendor reported for it.
type Period struct {
	End   time.Time `json:"end"`
	Value float64   `json:"value"`
}

// Statement is one financial statement (income, balance sheet or cash flow)
// for one company. Rows keep the vendor's column order; periods are never
// re-sorted because ties between duplicate fiscal years break on source
// order.
type Statement struct {
	rows map[string][]Period
}

// NewStatement returns an empty statement.
func NewStatement() *Statement {
	return &Statement{rows: make(map[string][]Period)}
}

// Add appends a reported period to a line item, preserving source order.
func (s *Statement) Add(item string, end time.Time, value float64) {
	s.rows[item] = append(s.rows[item], Period{End: end, Value: value})
}

// Has reports whether the vendor included the line item at all.
func (s *Statement) Has(item string) bool {
	_, ok := s.rows[item]
	return ok
}

// Lookup returns the value of a line item for a fiscal year, or an invalid
// float when the row is absent, no period falls in that year, or the stored
// value is not a finite number. When multiple periods map to the same fiscal
// year the first one in source order wins.
func (s *Statement) Lookup(item string, year int) null.Float {
	if s == nil {
		return null.Float{}
	}
	for _, p := range s.rows[item] {
		if p.End.Year() != year {
			continue
		}
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			return null.Float{}
		}
		return null.FloatFrom(p.Value)
	}
	return null.Float{}
}

// Years returns the distinct fiscal years covered by the statement, newest
// first. The trailing evaluation window is taken from the head of this list.
func (s *Statement) Years() []int {
	if s == nil {
		return nil
	}
	seen := make(map[int]bool)
	var years []int
	for _, periods := range s.rows {
		for _, p := range periods {
			y := p.End.Year()
			if !seen[y] {
				seen[y] = true
				years = append(years, y)
			}
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Len returns the number of line items in the statement.
func (s *Statement) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}
