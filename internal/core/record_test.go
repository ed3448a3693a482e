package core

import (
	"errors"
	"testing"
)

func TestNewSalesRecord(t *testing.T) {
	d := NewDate(2024, 11, 5)

	rec, err := NewSalesRecord(d, "위캔디오 구독", "위캔디오", 150000)
	if err != nil {
		t.Fatalf("NewSalesRecord: %v", err)
	}
	if rec.Year != 2024 || rec.Month != 11 || rec.Week != d.WeekOfMonth() {
		t.Errorf("cached fields = (%d, %d, %d), want (2024, 11, %d)",
			rec.Year, rec.Month, rec.Week, d.WeekOfMonth())
	}
	if !rec.In(2024, 11) || rec.In(2024, 10) {
		t.Error("In() does not match cached year/month")
	}
}

func TestNewSalesRecordRejectsZeroAmount(t *testing.T) {
	_, err := NewSalesRecord(NewDate(2024, 11, 5), "x", "기타", 0)
	if !errors.Is(err, ErrZeroAmount) {
		t.Errorf("zero amount: got %v, want ErrZeroAmount", err)
	}
}

func TestNewSalesRecordAcceptsNegativeAmount(t *testing.T) {
	// Refunds arrive as negative rows and are kept as-is.
	rec, err := NewSalesRecord(NewDate(2024, 11, 5), "환불", "기타", -500)
	if err != nil {
		t.Fatalf("negative amount rejected: %v", err)
	}
	if rec.Amount != -500 {
		t.Errorf("Amount = %v, want -500", rec.Amount)
	}
}

func TestNewSalesRecordRejectsZeroDate(t *testing.T) {
	_, err := NewSalesRecord(Date{}, "x", "기타", 100)
	if !errors.Is(err, ErrNoDate) {
		t.Errorf("zero date: got %v, want ErrNoDate", err)
	}
}
