package share

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"maechul/internal/core"
)

func rec(t *testing.T, y, m, d int, label, cat string, amount float64) core.SalesRecord {
	t.Helper()
	r, err := core.NewSalesRecord(core.NewDate(y, m, d), label, cat, amount)
	if err != nil {
		t.Fatalf("record %d-%d-%d: %v", y, m, d, err)
	}
	return r
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	records := []core.SalesRecord{
		rec(t, 2024, 11, 5, "위캔디오 정기구독", "위캔디오", 150000),
		rec(t, 2024, 11, 12, "콘텐츠 제작 (특별 할인)", "콘텐츠", 80000),
		rec(t, 2024, 11, 20, "환불", "기타", -500),
	}
	notes := "11월 매출 보고\n특이사항: 환불 1건"

	link, err := Encode("https://example.com/report", 2024, 11, records, notes)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.HasPrefix(link.URL, "https://example.com/report?data=") {
		t.Errorf("URL = %q", link.URL)
	}

	got, err := Decode(link.Param)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Kind != KindRecords {
		t.Fatalf("Kind = %v, want KindRecords", got.Kind)
	}
	if got.Year != 2024 || got.Month != 11 || got.Label != "2024년 11월" {
		t.Errorf("identity = (%d, %d, %q)", got.Year, got.Month, got.Label)
	}
	if got.Notes != notes {
		t.Errorf("Notes = %q, multi-byte text must survive the trip", got.Notes)
	}
	if len(got.Records) != 3 || got.Skipped != 0 {
		t.Fatalf("got %d records, %d skipped", len(got.Records), got.Skipped)
	}
	if got.Records[0].Label != records[0].Label || got.Records[2].Amount != -500 {
		t.Errorf("records = %+v", got.Records)
	}
}

func TestEncodeRejectsEmptyMonth(t *testing.T) {
	_, err := Encode("https://example.com", 2024, 11, nil, "")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("got %v, want ErrNoData", err)
	}
}

func TestEncodeDropsExistingQuery(t *testing.T) {
	records := []core.SalesRecord{rec(t, 2024, 11, 5, "a", "기타", 100)}
	link, err := Encode("https://example.com/?data=old", 2024, 11, records, "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(link.URL, "old") {
		t.Errorf("stale parameter kept: %q", link.URL)
	}
}

func TestDecodePercentEncodedParam(t *testing.T) {
	records := []core.SalesRecord{rec(t, 2024, 11, 5, "a", "기타", 100)}
	link, err := Encode("https://example.com", 2024, 11, records, "")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Chat apps and mail clients re-escape pasted URLs.
	got, err := Decode(url.QueryEscape(link.Param))
	if err != nil {
		t.Fatalf("Decode(escaped): %v", err)
	}
	if len(got.Records) != 1 {
		t.Errorf("got %d records, want 1", len(got.Records))
	}
}

func TestDecodeRestoresQueryMangledPlus(t *testing.T) {
	// Standard base64 uses '+', which query parsing decodes to a
	// space. A minted link must still load after that round trip.
	records := []core.SalesRecord{
		rec(t, 2024, 11, 5, "위캔디오 정기구독", "콘텐츠", 150000),
	}
	link, err := Encode("https://example.com", 2024, 11, records, "공유 메모")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(link.Param, "+") {
		t.Fatal("fixture must encode to base64 containing '+'")
	}

	got, err := Decode(strings.ReplaceAll(link.Param, "+", " "))
	if err != nil {
		t.Fatalf("Decode(query-mangled): %v", err)
	}
	if len(got.Records) != 1 || got.Records[0].Amount != 150000 {
		t.Errorf("records = %+v", got.Records)
	}
	if got.Notes != "공유 메모" {
		t.Errorf("Notes = %q", got.Notes)
	}
}

func TestDecodePlainJSONBackCompat(t *testing.T) {
	// Links minted before the base64 step carried raw JSON.
	raw := `{"month":"2024년 11월","salesData":[{"date":"2024-11-05","category":"기타","amount":100,"itemName":"a"}],"reportText":"","currentMonth":11,"currentYear":2024}`
	got, err := Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Kind != KindRecords || len(got.Records) != 1 {
		t.Errorf("result = %+v", got)
	}
}

func TestDecodeLegacySummaryOnly(t *testing.T) {
	raw := `{"month":"2024년 10월","reportText":"요약만","currentMonth":10,"currentYear":2024,"summary":{"맑은이러닝":100000,"콘텐츠":50000,"합계":150000}}`
	param := base64.StdEncoding.EncodeToString([]byte(raw))

	got, err := Decode(param)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Kind != KindSummary {
		t.Fatalf("Kind = %v, want KindSummary", got.Kind)
	}
	if got.SummaryTotal() != 150000 {
		t.Errorf("SummaryTotal = %v, want 150000", got.SummaryTotal())
	}
}

func TestDecodeSummaryTotalFallsBackToSum(t *testing.T) {
	r := Result{Summary: map[string]float64{"콘텐츠": 30, "기타": 70}}
	if got := r.SummaryTotal(); got != 100 {
		t.Errorf("SummaryTotal = %v, want 100", got)
	}
}

func TestDecodeSkipsBadEntries(t *testing.T) {
	raw := `{"salesData":[
		{"date":"2024-11-05","category":"기타","amount":100,"itemName":"good"},
		{"date":"not a date","category":"기타","amount":100,"itemName":"bad date"},
		{"date":"2024-11-06","category":"기타","amount":0,"itemName":"zero amount"}
	],"currentMonth":11,"currentYear":2024}`
	param := base64.StdEncoding.EncodeToString([]byte(raw))

	got, err := Decode(param)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Records) != 1 || got.Skipped != 2 {
		t.Errorf("records = %d, skipped = %d, want 1 and 2", len(got.Records), got.Skipped)
	}
}

func TestDecodeFillsMissingMonthIdentity(t *testing.T) {
	raw := `{"salesData":[{"date":"2024-11-05","category":"기타","amount":100,"itemName":"a"}]}`
	param := base64.StdEncoding.EncodeToString([]byte(raw))

	got, err := Decode(param)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.Year != 2024 || got.Month != 11 || got.Label != "2024년 11월" {
		t.Errorf("identity = (%d, %d, %q)", got.Year, got.Month, got.Label)
	}
}

func TestDecodeErrorTaxonomy(t *testing.T) {
	validJSON, _ := json.Marshal(payload{})

	tests := []struct {
		name  string
		param string
		want  error
	}{
		{"empty", "", ErrEmptyPayload},
		{"whitespace only", "   ", ErrEmptyPayload},
		{"corrupted base64", "AAA=truncated==", ErrDecode},
		{"base64 of non-JSON", base64.StdEncoding.EncodeToString([]byte("hello")), ErrParse},
		{"not base64, not JSON", "이건 링크가 아님 !!!", ErrParse},
		{"valid but empty payload", base64.StdEncoding.EncodeToString(validJSON), ErrEmptyPayload},
		{"all entries invalid", base64.StdEncoding.EncodeToString([]byte(
			`{"salesData":[{"date":"","category":"","amount":0,"itemName":""}]}`)), ErrEmptyPayload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.param)
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode(%q) = %v, want %v", tt.param, err, tt.want)
			}
		})
	}
}

func TestLinkOversized(t *testing.T) {
	short := Link{URL: "https://example.com/?data=abc"}
	if short.Oversized() {
		t.Error("short link flagged oversized")
	}
	long := Link{URL: "https://example.com/?data=" + strings.Repeat("A", MaxRecommendedURLLength)}
	if !long.Oversized() {
		t.Error("long link not flagged")
	}
	if long.OversizedFor(0) {
		t.Error("limit 0 must disable the check")
	}
}
