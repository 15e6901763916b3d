package engine

import (
	"cashplan/internal/model"

	"github.com/shopspring/decimal"
)

// scenario multipliers: conservative assumes income runs light and
// spending heavy, optimistic the reverse.
var scenarioDefs = []struct {
	name           string
	incomeFactor   float64
	spendingFactor float64
}{
	{"conservative", 0.95, 1.05},
	{"pace", 1.00, 1.00},
	{"optimistic", 1.05, 0.95},
}

// Scenarios extrapolates the period's actuals to an end-of-period
// outcome at the current pace, then bends that pace into conservative
// and optimistic variants. Extrapolation divides by time progress; at
// the very start of a period (progress 0) the raw actuals are used
// unscaled rather than exploding toward infinity.
func Scenarios(plan *model.Plan, periodID int) model.ForecastReport {
	period := Resolve(plan, periodID)
	starting := StartingBalance(plan, period.ID)
	pace := paceSnapshot(plan, period)

	minBalance := decimal.Zero
	if plan.Setup.MinBalance != nil {
		minBalance = *plan.Setup.MinBalance
	}

	scenarios := make([]model.ScenarioProjection, 0, len(scenarioDefs))
	for _, def := range scenarioDefs {
		income := pace.ProjectedIncome.Mul(decimal.NewFromFloat(def.incomeFactor))
		spending := pace.ProjectedSpending.Mul(decimal.NewFromFloat(def.spendingFactor))
		savings := pace.ProjectedSavings

		leftover := income.Sub(spending).Sub(savings)
		endBalance := starting.Add(leftover)

		scenarios = append(scenarios, model.ScenarioProjection{
			Name:           def.name,
			IncomeFactor:   def.incomeFactor,
			SpendingFactor: def.spendingFactor,
			Income:         income,
			Spending:       spending,
			Savings:        savings,
			Leftover:       leftover,
			EndBalance:     endBalance,
			BufferDelta:    endBalance.Sub(minBalance),
		})
	}

	return model.ForecastReport{
		StartingBalance: starting,
		Pace:            pace,
		Scenarios:       scenarios,
	}
}

// TimeProgress is the elapsed fraction of the period at the plan's
// as-of date, clamped to [0, 1].
func TimeProgress(period model.Period, asOf model.Date) float64 {
	totalDays := period.Days()
	if totalDays <= 0 || asOf.IsZero() || asOf.Before(period.Start.Time) {
		return 0
	}
	elapsed := period.Start.DaysUntil(asOf) + 1
	if elapsed > totalDays {
		elapsed = totalDays
	}
	return float64(elapsed) / float64(totalDays)
}

// paceSnapshot sums the period-to-date actuals and projects them to
// period end. Transfers and savings-category outflows count as
// savings, not spending, so leftover never double-counts them.
func paceSnapshot(plan *model.Plan, period model.Period) model.Pace {
	asOf := plan.Setup.AsOf
	progress := TimeProgress(period, asOf)

	var income, spending, savings decimal.Decimal
	for _, tx := range transactionsIn(plan, period) {
		if !asOf.IsZero() && tx.Date.After(asOf.Time) {
			continue
		}
		switch {
		case tx.Kind == model.TxIncome:
			income = income.Add(tx.Amount)
		case tx.Kind == model.TxTransfer:
			savings = savings.Add(tx.Amount)
		case resolveCategory(plan, tx) == model.CategorySavings:
			savings = savings.Add(tx.Amount)
		default:
			spending = spending.Add(tx.Amount)
		}
	}

	return model.Pace{
		TimeProgress:      progress,
		ActualIncome:      income,
		ActualSpending:    spending,
		ActualSavings:     savings,
		ProjectedIncome:   projectAtPace(income, progress),
		ProjectedSpending: projectAtPace(spending, progress),
		ProjectedSavings:  projectAtPace(savings, progress),
	}
}

func projectAtPace(actual decimal.Decimal, progress float64) decimal.Decimal {
	if progress <= 0 {
		return actual
	}
	return actual.Div(decimal.NewFromFloat(progress))
}
