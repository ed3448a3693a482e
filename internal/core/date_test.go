package core

import "testing"

func TestWeekOfMonth(t *testing.T) {
	// 2024-09-01 is a Sunday, 2024-09-30 a Monday.
	tests := []struct {
		name string
		d    Date
		want int
	}{
		{"first day of Sunday-start month", NewDate(2024, 9, 1), 1},
		{"last day of first grid row", NewDate(2024, 9, 7), 1},
		{"first day of second grid row", NewDate(2024, 9, 8), 2},
		{"mid month", NewDate(2024, 9, 18), 3},
		{"end of Sunday-start month", NewDate(2024, 9, 30), 5},
		// 2024-12-01 is a Sunday and December has 31 days: day 31 would
		// land on grid row 6, which is capped at 5.
		{"sixth row capped at five", NewDate(2024, 12, 31), 5},
		{"first of month starting mid-week", NewDate(2024, 11, 1), 1}, // Friday
		{"third of month starting Friday", NewDate(2024, 11, 3), 2},   // Sunday
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.WeekOfMonth(); got != tt.want {
				t.Errorf("WeekOfMonth(%s) = %d, want %d", tt.d.ISO(), got, tt.want)
			}
		})
	}
}

func TestAdjacentMonth(t *testing.T) {
	tests := []struct {
		name                 string
		year, month, delta   int
		wantYear, wantMonth  int
	}{
		{"december rolls into next year", 2024, 12, 1, 2025, 1},
		{"january rolls into previous year", 2024, 1, -1, 2023, 12},
		{"no rollover forward", 2024, 5, 1, 2024, 6},
		{"no rollover backward", 2024, 5, -1, 2024, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, m := AdjacentMonth(tt.year, tt.month, tt.delta)
			if y != tt.wantYear || m != tt.wantMonth {
				t.Errorf("AdjacentMonth(%d, %d, %+d) = (%d, %d), want (%d, %d)",
					tt.year, tt.month, tt.delta, y, m, tt.wantYear, tt.wantMonth)
			}
		})
	}
}

func TestParseISO(t *testing.T) {
	d, err := ParseISO("2024-11-05")
	if err != nil {
		t.Fatalf("ParseISO: %v", err)
	}
	if d.Year() != 2024 || d.Month() != 11 || d.Day() != 5 {
		t.Errorf("ParseISO = %d-%d-%d, want 2024-11-5", d.Year(), d.Month(), d.Day())
	}
	if _, err := ParseISO("not a date"); err == nil {
		t.Error("ParseISO accepted garbage")
	}
}
