package store

import (
	"testing"

	"maechul/internal/core"
)

func rec(t *testing.T, y, m, d int, label string, amount float64) core.SalesRecord {
	t.Helper()
	r, err := core.NewSalesRecord(core.NewDate(y, m, d), label, "기타", amount)
	if err != nil {
		t.Fatalf("record %d-%d-%d: %v", y, m, d, err)
	}
	return r
}

func TestReplaceAll(t *testing.T) {
	s := New()
	s.ReplaceAll([]core.SalesRecord{rec(t, 2024, 10, 1, "old", 1)})
	s.ReplaceAll([]core.SalesRecord{
		rec(t, 2024, 11, 1, "a", 1),
		rec(t, 2024, 11, 2, "b", 2),
	})

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (previous dataset replaced)", s.Len())
	}
	if len(s.Month(2024, 10)) != 0 {
		t.Error("October records survived ReplaceAll")
	}
}

func TestReplaceMonthLeavesOtherMonths(t *testing.T) {
	s := New()
	s.ReplaceAll([]core.SalesRecord{
		rec(t, 2024, 10, 1, "oct", 100),
		rec(t, 2024, 11, 1, "nov old", 200),
		rec(t, 2023, 11, 1, "last year nov", 300), // same month, other year
	})

	s.ReplaceMonth(2024, 11, []core.SalesRecord{rec(t, 2024, 11, 5, "nov new", 500)})

	nov := s.Month(2024, 11)
	if len(nov) != 1 || nov[0].Label != "nov new" {
		t.Errorf("November = %+v", nov)
	}
	if len(s.Month(2024, 10)) != 1 {
		t.Error("October lost")
	}
	if len(s.Month(2023, 11)) != 1 {
		t.Error("replacement must match on year, not only month")
	}
}

func TestReadsReturnCopies(t *testing.T) {
	s := New()
	s.ReplaceAll([]core.SalesRecord{rec(t, 2024, 11, 1, "a", 1)})

	all := s.All()
	all[0].Label = "mutated"
	if s.All()[0].Label != "a" {
		t.Error("caller mutation leaked into the store")
	}
}

func TestMonths(t *testing.T) {
	s := New()
	s.ReplaceAll([]core.SalesRecord{
		rec(t, 2024, 11, 1, "a", 1),
		rec(t, 2024, 10, 1, "b", 1),
		rec(t, 2024, 11, 2, "c", 1),
	})

	months := s.Months()
	want := []core.YearMonth{{Year: 2024, Month: 11}, {Year: 2024, Month: 10}}
	if len(months) != 2 || months[0] != want[0] || months[1] != want[1] {
		t.Errorf("Months = %v, want %v", months, want)
	}
}

func TestEmptyStore(t *testing.T) {
	s := New()
	if s.Len() != 0 || len(s.All()) != 0 || len(s.Months()) != 0 {
		t.Error("fresh store not empty")
	}
	if got := s.Month(2024, 11); got != nil {
		t.Errorf("Month on empty store = %v, want nil", got)
	}
}
