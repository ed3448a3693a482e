// Package ingest turns uploaded spreadsheet files into canonical sales
// records: it locates the header row, reads the fixed column layout,
// normalizes heterogeneous date formats and builds validated records.
package ingest

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"maechul/internal/core"
)

// Layouts tried by the free-form parse, most common first. time.Parse
// accepts both padded and unpadded month/day for these.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"2006년 1월 2일",
	"2006-01-02T15:04:05Z07:00",
	"1/2/2006",
}

// Strict fallback: 4-digit year, 1-2 digit month/day, - or / separated,
// anywhere in the cell text.
var datePattern = regexp.MustCompile(`(\d{4})[-/](\d{1,2})[-/](\d{1,2})`)

var serialPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParseCellDate converts a raw cell value into a calendar date. Cells
// arrive as display strings, so the strategies are tried in order:
// spreadsheet serial date (purely numeric, longer than 4 characters —
// converted with the 1900 date system and its leap-year quirk), then the
// free-form layout list, then the strict pattern match. Returns false when
// every strategy fails; the caller skips the row.
func ParseCellDate(raw string) (core.Date, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return core.Date{}, false
	}

	if len(s) > 4 && serialPattern.MatchString(s) {
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
				return core.NewDate(t.Year(), int(t.Month()), t.Day()), true
			}
		}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.NewDate(t.Year(), int(t.Month()), t.Day()), true
		}
	}

	if m := datePattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if month >= 1 && month <= 12 && day >= 1 && day <= 31 {
			return core.NewDate(year, month, day), true
		}
	}

	return core.Date{}, false
}

var amountJunk = regexp.MustCompile(`[^0-9.\-]`)

// ParseAmount parses a raw amount cell, stripping every character that is
// not a digit, '.' or '-' first (currency symbols, thousands separators).
// Zero, non-finite and unparseable amounts return false; negative amounts
// are valid.
func ParseAmount(raw string) (float64, bool) {
	s := amountJunk.ReplaceAllString(strings.TrimSpace(raw), "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v == 0 {
		return 0, false
	}
	return v, true
}
