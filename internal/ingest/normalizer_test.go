package ingest

import "testing"

func TestParseCellDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
		y    int
		m    int
		d    int
	}{
		{"iso", "2024-11-05", true, 2024, 11, 5},
		{"iso unpadded", "2024-1-5", true, 2024, 1, 5},
		{"slashes", "2024/11/05", true, 2024, 11, 5},
		{"dots", "2024.11.05", true, 2024, 11, 5},
		{"korean", "2024년 11월 5일", true, 2024, 11, 5},
		{"spreadsheet serial", "45234", true, 2023, 11, 4},
		{"spreadsheet serial another year", "44927", true, 2023, 1, 1},
		{"pattern embedded in text", "일자: 2024-11-5 확정", true, 2024, 11, 5},
		{"whitespace around", "  2024-11-05  ", true, 2024, 11, 5},
		{"short number is not a serial", "1234", false, 0, 0, 0},
		{"garbage", "다음 주 화요일", false, 0, 0, 0},
		{"empty", "", false, 0, 0, 0},
		{"pattern with impossible month", "2024-13-05", false, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCellDate(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseCellDate(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Year() != tt.y || got.Month() != tt.m || got.Day() != tt.d {
				t.Errorf("ParseCellDate(%q) = %d-%d-%d, want %d-%d-%d",
					tt.raw, got.Year(), got.Month(), got.Day(), tt.y, tt.m, tt.d)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ok   bool
		want float64
	}{
		{"plain", "150000", true, 150000},
		{"thousands separators", "1,500,000", true, 1500000},
		{"currency symbol", "₩150,000", true, 150000},
		{"decimal", "1234.5", true, 1234.5},
		{"negative", "-500", true, -500},
		{"negative with symbol", "-₩500", true, -500},
		{"zero rejected", "0", false, 0},
		{"zero with junk rejected", "₩0", false, 0},
		{"text", "미정", false, 0},
		{"empty", "", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}
