package engine

import (
	"testing"

	"cashplan/internal/model"

	"github.com/shopspring/decimal"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func money(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func moneyPtr(n int64) *decimal.Decimal {
	d := decimal.NewFromInt(n)
	return &d
}

// testPlan covers the common shape: two periods spanning month
// boundaries, a monthly salary, a weekly allowance, a rent bill, and a
// monthly savings rule.
func testPlan(t *testing.T) *model.Plan {
	t.Helper()
	return &model.Plan{
		Setup: model.Setup{
			StartingBalance: money(1000),
			SelectedPeriod:  1,
			MinBalance:      moneyPtr(200),
			AsOf:            mustDate(t, "2025-12-22"),
		},
		IncomeRules: []model.Rule{
			{ID: "rule-salary", Label: "Salary", Amount: money(1500), Cadence: model.CadenceMonthly, Category: "income", Enabled: true},
		},
		OutflowRules: []model.Rule{
			{ID: "rule-groceries", Label: "Groceries", Amount: money(50), Cadence: model.CadenceWeekly, Category: "allowance", Enabled: true},
			{ID: "rule-savings", Label: "Savings Transfer", Amount: money(200), Cadence: model.CadenceMonthly, Category: "savings", Enabled: true},
		},
		Bills: []model.BillTemplate{
			{ID: "bill-rent", Label: "Rent", Amount: money(550), DueDay: 1, Category: "bill", Enabled: true},
		},
		Periods: []model.Period{
			{ID: 1, Label: "Period 1", Start: mustDate(t, "2025-12-22"), End: mustDate(t, "2026-01-25")},
			{ID: 2, Label: "Period 2", Start: mustDate(t, "2026-01-26"), End: mustDate(t, "2026-02-22")},
		},
	}
}

func eventsBySource(events []model.Event) map[string][]model.Event {
	out := map[string][]model.Event{}
	for _, ev := range events {
		out[ev.SourceID] = append(out[ev.SourceID], ev)
	}
	return out
}

func wantEqual(t *testing.T, label string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Fatalf("%s = %s, want %s", label, got, want)
	}
}

func wantDay(t *testing.T, label string, got model.Date, want string) {
	t.Helper()
	w := mustDate(t, want)
	if !got.Equal(w.Time) {
		t.Fatalf("%s = %s, want %s", label, got, want)
	}
}
