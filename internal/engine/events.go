package engine

import (
	"sort"
	"time"

	"cashplan/internal/model"

	"github.com/shopspring/decimal"
)

// GenerateEvents expands the plan's enabled rules and bills into dated
// occurrences inside the given period. Per-period overrides are
// applied: disabled bills emit nothing, amount overrides replace the
// base amount for this period only. Events come back sorted by date
// with income ahead of outflow on equal dates.
func GenerateEvents(plan *model.Plan, periodID int) []model.Event {
	period := Resolve(plan, periodID)
	disabled := disabledBills(plan, period.ID)

	events := []model.Event{}

	for _, rule := range plan.IncomeRules {
		if !rule.Enabled {
			continue
		}
		amount := effectiveAmount(plan, period.ID, rule.ID, model.TxIncome, rule.Amount)
		for _, d := range ruleOccurrences(rule.Cadence, period) {
			events = append(events, model.Event{
				Date:     d,
				Kind:     model.EventIncome,
				Category: rule.Category,
				Amount:   amount,
				SourceID: rule.ID,
				Label:    rule.Label,
			})
		}
	}

	for _, rule := range plan.OutflowRules {
		if !rule.Enabled {
			continue
		}
		amount := effectiveAmount(plan, period.ID, rule.ID, model.TxOutflow, rule.Amount)
		for _, d := range ruleOccurrences(rule.Cadence, period) {
			events = append(events, model.Event{
				Date:     d,
				Kind:     model.EventOutflow,
				Category: rule.Category,
				Amount:   amount,
				SourceID: rule.ID,
				Label:    rule.Label,
			})
		}
	}

	for _, bill := range plan.Bills {
		if !bill.Enabled || disabled[bill.ID] {
			continue
		}
		due, ok := billOccurrence(bill.DueDay, period)
		if !ok {
			continue
		}
		amount := effectiveAmount(plan, period.ID, bill.ID, model.TxOutflow, bill.Amount)
		events = append(events, model.Event{
			Date:     due,
			Kind:     model.EventOutflow,
			Category: bill.Category,
			Amount:   amount,
			SourceID: bill.ID,
			Label:    bill.Label,
		})
	}

	sortEvents(events)
	return events
}

// UpcomingEvents filters a period's events to those on or after the
// plan's as-of date, optionally restricted to one kind. Pass an empty
// kind for all events.
func UpcomingEvents(plan *model.Plan, periodID int, kind model.EventKind) []model.Event {
	asOf := plan.Setup.AsOf
	out := []model.Event{}
	for _, ev := range GenerateEvents(plan, periodID) {
		if kind != "" && ev.Kind != kind {
			continue
		}
		if !asOf.IsZero() && ev.Date.Before(asOf.Time) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

// NextDueDate returns the bill's first clamped due date on or after
// from. The clamping policy matches GenerateEvents: due day 31 lands
// on Feb 28 (29 in a leap year).
func NextDueDate(bill model.BillTemplate, from model.Date) model.Date {
	due := dueDateIn(from.Year(), from.Month(), bill.DueDay)
	if due.Before(from.Time) {
		next := firstOfNextMonth(from)
		due = dueDateIn(next.Year(), next.Month(), bill.DueDay)
	}
	return due
}

// ruleOccurrences computes a rule's occurrence dates within a period.
// Weekly and biweekly anchor to the period start; monthly rules fire
// once, on the period start date.
func ruleOccurrences(cadence model.Cadence, period model.Period) []model.Date {
	switch cadence {
	case model.CadenceWeekly:
		return stepOccurrences(period, 7)
	case model.CadenceBiweekly:
		return stepOccurrences(period, 14)
	case model.CadenceMonthly:
		return []model.Date{period.Start}
	default:
		return nil
	}
}

func stepOccurrences(period model.Period, step int) []model.Date {
	var out []model.Date
	for d := period.Start; !d.After(period.End.Time); d = d.AddDays(step) {
		out = append(out, d)
	}
	return out
}

// billOccurrence finds the single clamped due date inside the period:
// the due day in the period's starting month, rolled forward one month
// when that lands before the period begins. Periods shorter than a
// month can miss the due day entirely, in which case no event fires.
func billOccurrence(dueDay int, period model.Period) (model.Date, bool) {
	due := dueDateIn(period.Start.Year(), period.Start.Month(), dueDay)
	if due.Before(period.Start.Time) {
		next := firstOfNextMonth(period.Start)
		due = dueDateIn(next.Year(), next.Month(), dueDay)
	}
	if !period.Contains(due) {
		return model.Date{}, false
	}
	return due, true
}

// dueDateIn clamps a due day into the given month.
func dueDateIn(year int, month time.Month, dueDay int) model.Date {
	if dueDay < 1 {
		dueDay = 1
	}
	if last := daysInMonth(year, month); dueDay > last {
		dueDay = last
	}
	return model.NewDate(year, month, dueDay)
}

// firstOfNextMonth normalizes via time.Date so a Jan 31 input cannot
// skip past February.
func firstOfNextMonth(d model.Date) model.Date {
	return model.Date{Time: time.Date(d.Year(), d.Month()+1, 1, 0, 0, 0, 0, time.UTC)}
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func disabledBills(plan *model.Plan, periodID int) map[string]bool {
	out := map[string]bool{}
	for _, ov := range plan.PeriodOverrides {
		if ov.PeriodID != periodID {
			continue
		}
		for _, id := range ov.DisabledBills {
			out[id] = true
		}
	}
	return out
}

func effectiveAmount(plan *model.Plan, periodID int, ruleID string, kind model.TxType, base decimal.Decimal) decimal.Decimal {
	for _, ov := range plan.PeriodRuleOverrides {
		if ov.PeriodID == periodID && ov.RuleID == ruleID && ov.Kind == kind {
			return ov.Amount
		}
	}
	return base
}

// sortEvents orders by date, income before outflow on the same day,
// then label for a stable display order.
func sortEvents(events []model.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if !a.Date.Equal(b.Date.Time) {
			return a.Date.Before(b.Date.Time)
		}
		if a.Kind != b.Kind {
			return a.Kind == model.EventIncome
		}
		return a.Label < b.Label
	})
}
