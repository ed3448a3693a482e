// Package report aggregates canonical sales records into the month view
// the dashboard renders: adjacent-month comparison totals, per-category
// totals and a week-of-month × category breakdown.
package report

import (
	"math"
	"sort"

	"maechul/internal/core"
)

// CategoryTotal is one category's summed amount for a scope.
type CategoryTotal struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// WeekTotal is one calendar-grid week's per-category breakdown.
type WeekTotal struct {
	Week       int             `json:"week"`
	Categories []CategoryTotal `json:"categories"`
	Total      float64         `json:"total"`
}

// Summary is the aggregation result for one (year, month). Categories is
// always the full closed set in configuration order, zero-filled; Weeks
// holds only weeks that have records, in ascending numeric order.
type Summary struct {
	Year      int             `json:"year"`
	Month     int             `json:"month"`
	PrevTotal float64         `json:"prevTotal"`
	Total     float64         `json:"total"`
	NextTotal float64         `json:"nextTotal"`
	Categories []CategoryTotal `json:"categories"`
	Weeks      []WeekTotal     `json:"weeks"`
}

// PrevChange is the percent change from the previous month to this one.
func (s Summary) PrevChange() float64 {
	return PercentChange(s.Total, s.PrevTotal)
}

// NextChange is the percent change from this month to the next.
func (s Summary) NextChange() float64 {
	return PercentChange(s.NextTotal, s.Total)
}

// CategoryShare returns a category's percent of the month total, rounded
// to one decimal. Zero when the total is non-positive.
func (s Summary) CategoryShare(name string) float64 {
	if s.Total <= 0 {
		return 0
	}
	for _, c := range s.Categories {
		if c.Name == name {
			return round1(c.Amount / s.Total * 100)
		}
	}
	return 0
}

// PercentChange computes (current-prev)/prev*100 rounded to one decimal.
// Defined as 0 when either side is non-positive: a division-by-zero guard
// and a product decision that percentages against a negative or empty
// base are meaningless and shown as "no change".
func PercentChange(current, prev float64) float64 {
	if current <= 0 || prev <= 0 {
		return 0
	}
	return round1((current - prev) / prev * 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Engine aggregates records over a fixed, ordered category set.
type Engine struct {
	categories []string
	fallback   string
}

// NewEngine builds an engine keyed by the given closed category set. The
// last entry is treated as the catch-all: records carrying a category
// outside the set (possible for link-loaded data) are counted there.
func NewEngine(categories []string) *Engine {
	if len(categories) == 0 {
		categories = []string{"기타"}
	}
	return &Engine{categories: categories, fallback: categories[len(categories)-1]}
}

// Categories returns the engine's closed set in order.
func (e *Engine) Categories() []string {
	return append([]string(nil), e.categories...)
}

// Aggregate computes the summary for (year, month) over the whole record
// collection. Adjacent-month totals resolve year rollover, so December's
// "next month" is the following January.
func (e *Engine) Aggregate(records []core.SalesRecord, year, month int) Summary {
	current := filterMonth(records, year, month)
	prevYear, prevMonth := core.AdjacentMonth(year, month, -1)
	nextYear, nextMonth := core.AdjacentMonth(year, month, +1)

	return Summary{
		Year:       year,
		Month:      month,
		PrevTotal:  sumAmounts(filterMonth(records, prevYear, prevMonth)),
		Total:      sumAmounts(current),
		NextTotal:  sumAmounts(filterMonth(records, nextYear, nextMonth)),
		Categories: e.categoryTotals(current),
		Weeks:      e.weekTotals(current),
	}
}

// categoryTotals sums per category over the full closed set, zero-filled.
func (e *Engine) categoryTotals(records []core.SalesRecord) []CategoryTotal {
	totals := make(map[string]float64, len(e.categories))
	for _, r := range records {
		totals[e.resolve(r.Category)] += r.Amount
	}
	out := make([]CategoryTotal, 0, len(e.categories))
	for _, name := range e.categories {
		out = append(out, CategoryTotal{Name: name, Amount: totals[name]})
	}
	return out
}

// weekTotals buckets by week-of-month. Only weeks with at least one
// record appear; keys sort numerically, never lexically.
func (e *Engine) weekTotals(records []core.SalesRecord) []WeekTotal {
	byWeek := make(map[int]map[string]float64)
	for _, r := range records {
		week := r.Week
		if week < 1 {
			week = 1
		}
		if byWeek[week] == nil {
			byWeek[week] = make(map[string]float64, len(e.categories))
		}
		byWeek[week][e.resolve(r.Category)] += r.Amount
	}

	weeks := make([]int, 0, len(byWeek))
	for w := range byWeek {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)

	out := make([]WeekTotal, 0, len(weeks))
	for _, w := range weeks {
		wt := WeekTotal{Week: w, Categories: make([]CategoryTotal, 0, len(e.categories))}
		for _, name := range e.categories {
			amount := byWeek[w][name]
			wt.Categories = append(wt.Categories, CategoryTotal{Name: name, Amount: amount})
			wt.Total += amount
		}
		out = append(out, wt)
	}
	return out
}

func (e *Engine) resolve(name string) string {
	for _, c := range e.categories {
		if c == name {
			return name
		}
	}
	return e.fallback
}

func filterMonth(records []core.SalesRecord, year, month int) []core.SalesRecord {
	var out []core.SalesRecord
	for _, r := range records {
		if r.In(year, month) {
			out = append(out, r)
		}
	}
	return out
}

func sumAmounts(records []core.SalesRecord) float64 {
	var sum float64
	for _, r := range records {
		sum += r.Amount
	}
	return sum
}
