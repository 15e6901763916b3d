package engine

import (
	"testing"

	"cashplan/internal/model"

	"github.com/shopspring/decimal"
)

func forecastPlan(t *testing.T) *model.Plan {
	t.Helper()
	plan := testPlan(t)
	plan.Periods = []model.Period{
		{ID: 1, Label: "January 1-10", Start: mustDate(t, "2026-01-01"), End: mustDate(t, "2026-01-10")},
	}
	plan.Setup.AsOf = mustDate(t, "2026-01-05")
	return plan
}

func TestTimeProgress(t *testing.T) {
	period := model.Period{Start: mustDate(t, "2026-01-01"), End: mustDate(t, "2026-01-10")}

	cases := []struct {
		name string
		asOf string
		want float64
	}{
		{"midway", "2026-01-05", 0.5},
		{"first day", "2026-01-01", 0.1},
		{"last day", "2026-01-10", 1},
		{"past the end", "2026-02-01", 1},
		{"before the start", "2025-12-20", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TimeProgress(period, mustDate(t, tc.asOf)); got != tc.want {
				t.Fatalf("TimeProgress = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTimeProgress_ZeroAsOf(t *testing.T) {
	period := model.Period{Start: mustDate(t, "2026-01-01"), End: mustDate(t, "2026-01-10")}
	if got := TimeProgress(period, model.Date{}); got != 0 {
		t.Fatalf("TimeProgress with zero as-of = %v, want 0", got)
	}
}

func TestScenarios_ProjectsAtPace(t *testing.T) {
	plan := forecastPlan(t)
	plan.Transactions = []model.Transaction{
		tx(t, "2026-01-03", "Pay", 500, model.TxIncome),
		tx(t, "2026-01-04", "Shop", 100, model.TxOutflow),
		// after the as-of date, must not count
		tx(t, "2026-01-08", "Late pay", 900, model.TxIncome),
	}

	report := Scenarios(plan, 1)
	pace := report.Pace

	if pace.TimeProgress != 0.5 {
		t.Fatalf("TimeProgress = %v, want 0.5", pace.TimeProgress)
	}
	wantEqual(t, "actual income", pace.ActualIncome, money(500))
	wantEqual(t, "actual spending", pace.ActualSpending, money(100))
	wantEqual(t, "projected income", pace.ProjectedIncome, money(1000))
	wantEqual(t, "projected spending", pace.ProjectedSpending, money(200))
}

func TestScenarios_ZeroProgressUsesRawActuals(t *testing.T) {
	plan := forecastPlan(t)
	plan.Setup.AsOf = mustDate(t, "2025-12-20")
	plan.Transactions = []model.Transaction{}

	report := Scenarios(plan, 1)
	wantEqual(t, "projected income at zero progress", report.Pace.ProjectedIncome, money(0))
}

func TestScenarios_Factors(t *testing.T) {
	plan := forecastPlan(t)
	plan.Transactions = []model.Transaction{
		tx(t, "2026-01-03", "Pay", 500, model.TxIncome),
		tx(t, "2026-01-04", "Shop", 100, model.TxOutflow),
	}

	report := Scenarios(plan, 1)
	if len(report.Scenarios) != 3 {
		t.Fatalf("got %d scenarios, want 3", len(report.Scenarios))
	}
	wantEqual(t, "starting balance", report.StartingBalance, money(1000))

	byName := map[string]model.ScenarioProjection{}
	for _, s := range report.Scenarios {
		byName[s.Name] = s
	}

	pace := byName["pace"]
	wantEqual(t, "pace income", pace.Income, money(1000))
	wantEqual(t, "pace spending", pace.Spending, money(200))
	wantEqual(t, "pace end balance", pace.EndBalance, money(1800))
	// min balance 200: buffer is end balance less the floor
	wantEqual(t, "pace buffer", pace.BufferDelta, money(1600))

	conservative := byName["conservative"]
	wantEqual(t, "conservative income", conservative.Income, money(950))
	wantEqual(t, "conservative spending", conservative.Spending, money(210))
	wantEqual(t, "conservative end balance", conservative.EndBalance, money(1740))

	optimistic := byName["optimistic"]
	wantEqual(t, "optimistic income", optimistic.Income, money(1050))
	wantEqual(t, "optimistic spending", optimistic.Spending, money(190))
}

func TestScenarios_SavingsKeptOutOfSpending(t *testing.T) {
	plan := forecastPlan(t)
	pot := tx(t, "2026-01-03", "To pot", 100, model.TxTransfer)
	plan.Transactions = []model.Transaction{pot}

	pace := Scenarios(plan, 1).Pace
	wantEqual(t, "actual savings", pace.ActualSavings, money(100))
	wantEqual(t, "actual spending", pace.ActualSpending, decimal.Zero)
	wantEqual(t, "projected savings", pace.ProjectedSavings, money(200))
}
