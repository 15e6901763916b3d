package engine

import (
	"cashplan/internal/model"

	"github.com/shopspring/decimal"
)

// StartingBalance resolves what a period opens with. The first period
// opens with the configured starting balance; every later period opens
// with the projected ending balance of the one before it. The rollover
// is computed as a single forward fold over the sorted period list, so
// one call costs O(periods) rather than recursing per period.
func StartingBalance(plan *model.Plan, periodID int) decimal.Decimal {
	target := Resolve(plan, periodID)
	balance := plan.Setup.StartingBalance

	for _, p := range Sorted(plan) {
		if p.ID >= target.ID {
			break
		}
		balance = endingBalance(plan, p, balance)
	}
	return balance
}

// BuildTimeline projects a running balance across every calendar day
// of the period, one row per day. Only generated events move the
// balance: the timeline forecasts from the budget, never from recorded
// actuals, which keeps it a projection rather than a ledger. Within a
// day income is applied before outflow, and each row carries the
// end-of-day balance.
func BuildTimeline(plan *model.Plan, periodID int, starting decimal.Decimal) []model.TimelineRow {
	period := Resolve(plan, periodID)

	income := map[string]decimal.Decimal{}
	outflow := map[string]decimal.Decimal{}
	for _, ev := range GenerateEvents(plan, period.ID) {
		key := ev.Date.String()
		if ev.Kind == model.EventIncome {
			income[key] = income[key].Add(ev.Amount)
		} else {
			outflow[key] = outflow[key].Add(ev.Amount)
		}
	}

	minBalance := plan.Setup.MinBalance

	rows := make([]model.TimelineRow, 0, period.Days())
	balance := starting
	for d := period.Start; !d.After(period.End.Time); d = d.AddDays(1) {
		key := d.String()
		balance = balance.Add(income[key]).Sub(outflow[key])

		row := model.TimelineRow{Date: d, Balance: balance}
		if minBalance != nil {
			row.BelowMin = balance.LessThan(*minBalance)
		}
		rows = append(rows, row)
	}
	return rows
}

// EndingBalance is the last row's balance, or the starting balance for
// an empty timeline.
func EndingBalance(timeline []model.TimelineRow, starting decimal.Decimal) decimal.Decimal {
	if len(timeline) == 0 {
		return starting
	}
	return timeline[len(timeline)-1].Balance
}

func endingBalance(plan *model.Plan, period model.Period, starting decimal.Decimal) decimal.Decimal {
	return EndingBalance(BuildTimeline(plan, period.ID, starting), starting)
}
