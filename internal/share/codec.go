// Package share serializes one month of sales records (plus free-text
// report notes) into a self-contained link parameter, and restores it.
//
// Canonical wire format: JSON payload -> UTF-8 bytes -> standard base64,
// carried in the "data" query parameter. The decoder is deliberately more
// tolerant than the encoder: it accepts an extra layer of percent-encoding,
// repairs the '+' characters query parsing decodes into spaces and, for
// links minted before the base64 step existed, plain JSON.
package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"maechul/internal/core"
)

// Param is the query parameter carrying the encoded payload.
const Param = "data"

// MaxRecommendedURLLength is the point past which some messengers and
// mail clients truncate links. Oversized links are reported, never
// truncated or refused — proceeding is the caller's decision.
const MaxRecommendedURLLength = 2000

var (
	ErrNoData       = errors.New("share: no records to encode")
	ErrDecode       = errors.New("share: link data is not decodable")
	ErrParse        = errors.New("share: link data is not valid JSON")
	ErrEmptyPayload = errors.New("share: link contains no sales data or summary")
)

// Entry is one record on the wire: date as YYYY-MM-DD (no time-of-day),
// plus the fields needed to rebuild a canonical record.
type Entry struct {
	Date     string  `json:"date"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	ItemName string  `json:"itemName"`
}

// payload is the wire shape. Summary is only ever read: legacy links
// carried category totals instead of per-record data.
type payload struct {
	Month        string             `json:"month"`
	SalesData    []Entry            `json:"salesData,omitempty"`
	ReportText   string             `json:"reportText"`
	CurrentMonth int                `json:"currentMonth"`
	CurrentYear  int                `json:"currentYear"`
	Summary      map[string]float64 `json:"summary,omitempty"`
}

// Link is an encoded share URL.
type Link struct {
	URL   string
	Param string
}

// Oversized reports whether the URL exceeds the recommended length.
func (l Link) Oversized() bool {
	return l.OversizedFor(MaxRecommendedURLLength)
}

// OversizedFor reports against a caller-configured limit.
func (l Link) OversizedFor(limit int) bool {
	return limit > 0 && len(l.URL) > limit
}

// MonthLabel formats the display label embedded in payloads, e.g.
// "2024년 11월".
func MonthLabel(year, month int) string {
	return fmt.Sprintf("%d년 %d월", year, month)
}

// Encode builds the share link for one month's records. Multi-byte text
// in labels and notes round-trips intact: JSON keeps it as UTF-8 and
// base64 is byte-safe. Any query string already on baseURL is dropped.
func Encode(baseURL string, year, month int, records []core.SalesRecord, notes string) (Link, error) {
	if len(records) == 0 {
		return Link{}, ErrNoData
	}

	p := payload{
		Month:        MonthLabel(year, month),
		SalesData:    make([]Entry, 0, len(records)),
		ReportText:   notes,
		CurrentMonth: month,
		CurrentYear:  year,
	}
	for _, r := range records {
		p.SalesData = append(p.SalesData, Entry{
			Date:     r.Date.ISO(),
			Category: r.Category,
			Amount:   r.Amount,
			ItemName: r.Label,
		})
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return Link{}, fmt.Errorf("marshal share payload: %w", err)
	}
	param := base64.StdEncoding.EncodeToString(raw)
	base, _, _ := strings.Cut(baseURL, "?")
	return Link{URL: base + "?" + Param + "=" + param, Param: param}, nil
}
