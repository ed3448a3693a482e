// Package store holds the current sales dataset in memory. The dataset
// is session-scoped: an upload replaces it wholesale, a link load
// replaces one month's slice, and nothing survives a restart.
package store

import (
	"sync"

	"maechul/internal/core"
)

// Store is a concurrency-safe collection of sales records. Records are
// immutable; every mutation swaps slices, so readers always get a
// consistent snapshot copy.
type Store struct {
	mu      sync.Mutex
	records []core.SalesRecord
}

func New() *Store {
	return &Store{}
}

// ReplaceAll swaps the whole dataset for the given records.
func (s *Store) ReplaceAll(records []core.SalesRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append([]core.SalesRecord(nil), records...)
}

// ReplaceMonth drops every record of (year, month) and appends the
// given ones, leaving other months untouched. Loading a shared link for
// a month you already have overwrites just that month.
func (s *Store) ReplaceMonth(year, month int, records []core.SalesRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]core.SalesRecord, 0, len(s.records)+len(records))
	for _, r := range s.records {
		if !r.In(year, month) {
			kept = append(kept, r)
		}
	}
	s.records = append(kept, records...)
}

// Month returns a copy of the records belonging to (year, month).
func (s *Store) Month(year, month int) []core.SalesRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.SalesRecord
	for _, r := range s.records {
		if r.In(year, month) {
			out = append(out, r)
		}
	}
	return out
}

// All returns a copy of the full dataset.
func (s *Store) All() []core.SalesRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.SalesRecord(nil), s.records...)
}

// Len reports the number of records held.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Months lists the distinct (year, month) pairs present, in insertion
// order of first appearance.
func (s *Store) Months() []core.YearMonth {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[core.YearMonth]bool)
	var out []core.YearMonth
	for _, r := range s.records {
		ym := core.YearMonth{Year: r.Year, Month: r.Month}
		if !seen[ym] {
			seen[ym] = true
			out = append(out, ym)
		}
	}
	return out
}
