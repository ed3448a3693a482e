package core

// SalesRecord is a validated, fully derived sales entry ready for
// aggregation. Year, Month and Week are cached from Date at construction
// and never change afterwards; records are immutable once built and
// "updates" are whole-collection replacements.
type SalesRecord struct {
	Date     Date
	Year     int
	Month    int // 1-12
	Week     int // week-of-month, 1-5
	Label    string
	Category string
	Amount   float64
}

// NewSalesRecord builds a record from its raw parts, deriving the cached
// calendar fields. A zero date or a zero amount is rejected; negative
// amounts are accepted (refunds and corrections pass through the source
// files and the aggregates are expected to net them out).
func NewSalesRecord(date Date, label, category string, amount float64) (SalesRecord, error) {
	if date.IsZero() {
		return SalesRecord{}, ErrNoDate
	}
	if amount == 0 {
		return SalesRecord{}, ErrZeroAmount
	}
	return SalesRecord{
		Date:     date,
		Year:     date.Year(),
		Month:    date.Month(),
		Week:     date.WeekOfMonth(),
		Label:    label,
		Category: category,
		Amount:   amount,
	}, nil
}

// In reports whether the record belongs to the given year and month.
// Aggregation filters on the cached fields only, no date-range math.
func (r SalesRecord) In(year, month int) bool {
	return r.Year == year && r.Month == month
}

// YearMonth identifies one reporting month.
type YearMonth struct {
	Year  int
	Month int // 1-12
}
