// Package engine is the cashflow forecasting and variance core. Every
// function is a pure computation over an immutable plan snapshot: no
// state is held between calls and nothing here performs I/O.
package engine

import (
	"sort"

	"cashplan/internal/model"
)

// Resolve looks up a period by id. Unknown ids fall back to the plan's
// selected period; if that is also missing, a one-day period at the
// as-of date is synthesized so callers never handle an absent period.
func Resolve(plan *model.Plan, periodID int) model.Period {
	if p, ok := find(plan, periodID); ok {
		return p
	}
	if p, ok := find(plan, plan.Setup.SelectedPeriod); ok {
		return p
	}
	asOf := plan.Setup.AsOf
	if asOf.IsZero() {
		asOf = model.Today()
	}
	return model.Period{ID: periodID, Label: asOf.String(), Start: asOf, End: asOf}
}

// Sorted returns the plan's periods ordered by id. The plan itself is
// left untouched.
func Sorted(plan *model.Plan) []model.Period {
	out := make([]model.Period, len(plan.Periods))
	copy(out, plan.Periods)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Previous returns the period immediately preceding periodID in id
// order, or false when periodID is the first (or unknown).
func Previous(plan *model.Plan, periodID int) (model.Period, bool) {
	var prev model.Period
	found := false
	for _, p := range Sorted(plan) {
		if p.ID >= periodID {
			break
		}
		prev = p
		found = true
	}
	return prev, found
}

func find(plan *model.Plan, periodID int) (model.Period, bool) {
	for _, p := range plan.Periods {
		if p.ID == periodID {
			return p, true
		}
	}
	return model.Period{}, false
}
