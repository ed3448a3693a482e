package core

import (
	"errors"
	"time"
)

type (
	// Date is a calendar date with no time-of-day component, always UTC.
	Date struct {
		time.Time
	}
)

var (
	ErrNoDate     = errors.New("record has no date")
	ErrZeroAmount = errors.New("amount must be a non-zero number")
)

// NewDate creates a Date from year, month (1-12) and day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseISO parses a YYYY-MM-DD string.
func ParseISO(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Month returns the month as an int (1-12).
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// ISO formats the date as YYYY-MM-DD, the wire format used by share links.
func (d Date) ISO() string {
	return d.Time.Format("2006-01-02")
}

// WeekOfMonth returns the calendar-grid row (1-5) containing the date:
// the row a traditional month calendar with Sunday in the first column
// would place the day on. Capped at 5 even when a month spills into a
// sixth partial row. Not an ISO week number.
func (d Date) WeekOfMonth() int {
	first := time.Date(d.Time.Year(), d.Time.Month(), 1, 0, 0, 0, 0, time.UTC)
	firstWeekday := int(first.Weekday()) // Sunday = 0
	week := (d.Day() + firstWeekday + 6) / 7
	if week > 5 {
		week = 5
	}
	return week
}

// AdjacentMonth resolves month arithmetic with year rollover:
// (2024, 12, +1) -> (2025, 1) and (2024, 1, -1) -> (2023, 12).
func AdjacentMonth(year, month, delta int) (int, int) {
	month += delta
	for month > 12 {
		month -= 12
		year++
	}
	for month < 1 {
		month += 12
		year--
	}
	return year, month
}
