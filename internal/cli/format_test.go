package cli

import (
	"testing"

	"cashplan/internal/model"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "£0.00"},
		{"5.5", "£5.50"},
		{"999", "£999.00"},
		{"1000", "£1,000.00"},
		{"1234.56", "£1,234.56"},
		{"1234567.89", "£1,234,567.89"},
		{"-12.3", "-£12.30"},
	}
	for _, tc := range cases {
		amount, err := decimal.NewFromString(tc.amount)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.amount, err)
		}
		if got := FormatMoney("£", amount); got != tc.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	if got := FormatSignedMoney("£", decimal.NewFromInt(50)); got != "+£50.00" {
		t.Errorf("positive = %q, want +£50.00", got)
	}
	if got := FormatSignedMoney("£", decimal.NewFromFloat(-12.3)); got != "-£12.30" {
		t.Errorf("negative = %q, want -£12.30", got)
	}
	if got := FormatSignedMoney("£", decimal.Zero); got != "+£0.00" {
		t.Errorf("zero = %q, want +£0.00", got)
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.5); got != "50%" {
		t.Errorf("FormatPercent(0.5) = %q, want 50%%", got)
	}
	if got := FormatPercent(1); got != "100%" {
		t.Errorf("FormatPercent(1) = %q, want 100%%", got)
	}
}

func TestFormatDate(t *testing.T) {
	d, err := model.ParseDate("2025-12-22")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatDate(d); got != "Mon 22 Dec" {
		t.Errorf("FormatDate = %q, want Mon 22 Dec", got)
	}
	if got := FormatDate(model.Date{}); got != "—" {
		t.Errorf("FormatDate(zero) = %q, want —", got)
	}
}

func TestFormatDateRange(t *testing.T) {
	start, _ := model.ParseDate("2025-12-22")
	end, _ := model.ParseDate("2026-01-25")
	if got := FormatDateRange(start, end); got != "22 Dec – 25 Jan" {
		t.Errorf("FormatDateRange = %q", got)
	}
}
