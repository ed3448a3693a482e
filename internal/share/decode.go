package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"maechul/internal/core"
)

// Kind says what a decoded link carried.
type Kind int

const (
	// KindRecords: per-record data that can be re-aggregated and merged.
	KindRecords Kind = iota
	// KindSummary: legacy links with category totals only. Read-only.
	KindSummary
)

// TotalKey is the summary key legacy links used for the month total.
const TotalKey = "합계"

// Result is a decoded share payload.
type Result struct {
	Kind    Kind
	Year    int
	Month   int
	Label   string
	Notes   string
	Records []core.SalesRecord
	// Summary holds legacy category totals, including TotalKey.
	Summary map[string]float64
	// Skipped counts entries dropped during conversion (bad dates,
	// zero amounts). The rest of the payload still loads.
	Skipped int
}

// SummaryTotal returns the legacy month total, or the sum of category
// totals when the payload did not carry one.
func (r Result) SummaryTotal() float64 {
	if r.Summary == nil {
		return 0
	}
	if total, ok := r.Summary[TotalKey]; ok {
		return total
	}
	var sum float64
	for _, v := range r.Summary {
		sum += v
	}
	return sum
}

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)

// base64Repairer undoes transit damage a base64 value picks up inside a
// query string: query parsing decodes '+' as a space, and pasted links
// wrap across lines. A real base64 payload contains neither.
var base64Repairer = strings.NewReplacer(" ", "+", "\n", "", "\r", "", "\t", "")

// Decode restores a payload from the raw "data" parameter value.
//
// Tolerance, in order: the value may arrive percent-encoded once more
// than expected (copy-paste through chat apps does this); spaces are
// restored to '+' before the base64 check, since query parsing turns
// '+' into a space; a value that is not base64 at all is tried as
// plain JSON for pre-base64 links. ErrDecode and ErrParse stay
// distinct so the UI can say whether the link was corrupted in transit
// or malformed at the source.
func Decode(param string) (Result, error) {
	param = strings.TrimSpace(param)
	if param == "" {
		return Result{}, ErrEmptyPayload
	}

	// PathUnescape, not QueryUnescape: '+' is a base64 alphabet byte
	// and must not collapse to a space.
	if unescaped, err := url.PathUnescape(param); err == nil {
		param = strings.TrimSpace(unescaped)
	}

	var raw []byte
	// The repaired value is only used when it looks like base64. The
	// plain-JSON fallback keeps the untouched param: its string fields
	// may legitimately contain spaces.
	if cleaned := base64Repairer.Replace(param); base64Pattern.MatchString(cleaned) {
		decoded, err := base64.StdEncoding.DecodeString(cleaned)
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		raw = decoded
	} else {
		raw = []byte(param)
	}

	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return fromPayload(p)
}

func fromPayload(p payload) (Result, error) {
	r := Result{
		Year:  p.CurrentYear,
		Month: p.CurrentMonth,
		Label: p.Month,
		Notes: p.ReportText,
	}

	if len(p.SalesData) == 0 {
		if len(p.Summary) == 0 {
			return Result{}, ErrEmptyPayload
		}
		r.Kind = KindSummary
		r.Summary = p.Summary
		return r, nil
	}

	r.Kind = KindRecords
	r.Records = make([]core.SalesRecord, 0, len(p.SalesData))
	for _, e := range p.SalesData {
		rec, err := entryRecord(e)
		if err != nil {
			r.Skipped++
			slog.Warn("skipping share entry",
				slog.String("date", e.Date),
				slog.String("item", e.ItemName),
				slog.Any("error", err))
			continue
		}
		r.Records = append(r.Records, rec)
	}
	if len(r.Records) == 0 {
		return Result{}, fmt.Errorf("%w: every entry was invalid", ErrEmptyPayload)
	}

	// Fill month identity from the data when the payload omitted it.
	if r.Year == 0 || r.Month == 0 {
		r.Year = r.Records[0].Year
		r.Month = r.Records[0].Month
	}
	if r.Label == "" {
		r.Label = MonthLabel(r.Year, r.Month)
	}
	return r, nil
}

func entryRecord(e Entry) (core.SalesRecord, error) {
	d, err := core.ParseISO(e.Date)
	if err != nil {
		return core.SalesRecord{}, err
	}
	return core.NewSalesRecord(d, e.ItemName, e.Category, e.Amount)
}
