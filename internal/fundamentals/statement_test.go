package fundamentals

import (
	"math"
	"testing"
	"time"
)

func endOf(year int) time.Time {
	return time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
}

func TestLookupAbsentItem(t *testing.T) {
	s := NewStatement()
	s.Add("Net Income", endOf(2023), 120)

	if got := s.Lookup("Long Term Debt", 2023); got.Valid {
		t.Fatalf("expected invalid for absent line item, got %v", got.Float64)
	}
}

func TestLookupAbsentYear(t *testing.T) {
	s := NewStatement()
	s.Add("Net Income", endOf(2023), 120)

	if got := s.Lookup("Net Income", 2019); got.Valid {
		t.Fatalf("expected invalid for absent year, got %v", got.Float64)
	}
}

func TestLookupEmptyStatement(t *testing.T) {
	s := NewStatement()
	if got := s.Lookup("Net Income", 2023); got.Valid {
		t.Fatalf("expected invalid on empty statement, got %v", got.Float64)
	}
	if years := s.Years(); len(years) != 0 {
		t.Fatalf("expected no years, got %v", years)
	}
}

func TestLookupFirstMatchWinsOnDuplicateYears(t *testing.T) {
	// Two periods ending in the same calendar year: the vendor's column
	// order decides, not the dates.
	s := NewStatement()
	s.Add("Net Income", time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC), 100)
	s.Add("Net Income", time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), 200)

	got := s.Lookup("Net Income", 2023)
	if !got.Valid || got.Float64 != 100 {
		t.Fatalf("expected first column value 100, got %+v", got)
	}
}

func TestLookupNonFiniteValue(t *testing.T) {
	s := NewStatement()
	s.Add("Net Income", endOf(2023), math.NaN())

	if got := s.Lookup("Net Income", 2023); got.Valid {
		t.Fatalf("expected invalid for NaN value, got %v", got.Float64)
	}
}

func TestYearsNewestFirst(t *testing.T) {
	s := NewStatement()
	s.Add("Net Income", endOf(2021), 1)
	s.Add("Net Income", endOf(2023), 3)
	s.Add("Total Revenue", endOf(2022), 2)

	got := s.Years()
	want := []int{2023, 2022, 2021}
	if len(got) != len(want) {
		t.Fatalf("years = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("years = %v, want %v", got, want)
		}
	}
}

func TestNilStatementIsUnavailable(t *testing.T) {
	var s *Statement
	if got := s.Lookup("Net Income", 2023); got.Valid {
		t.Fatal("expected invalid lookup on nil statement")
	}
	if s.Len() != 0 || len(s.Years()) != 0 {
		t.Fatal("expected empty shape on nil statement")
	}
}
