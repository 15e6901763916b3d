package engine

import "cashplan/internal/model"

// MinPoint returns the timeline row with the smallest balance. Ties
// resolve to the earliest day. False for an empty timeline.
func MinPoint(timeline []model.TimelineRow) (model.TimelineRow, bool) {
	if len(timeline) == 0 {
		return model.TimelineRow{}, false
	}
	min := timeline[0]
	for _, row := range timeline[1:] {
		if row.Balance.LessThan(min.Balance) {
			min = row
		}
	}
	return min, true
}

// Risk derives the period's risk summary from its timeline: the lowest
// point, how many days sit below the expected minimum, and the first
// such day. When no minimum balance is configured the analysis is
// skipped entirely rather than faked against a zero threshold, and ok
// is false.
func Risk(plan *model.Plan, timeline []model.TimelineRow) (model.RiskReport, bool) {
	if plan.Setup.MinBalance == nil {
		return model.RiskReport{}, false
	}
	min, ok := MinPoint(timeline)
	if !ok {
		return model.RiskReport{}, false
	}

	report := model.RiskReport{MinPoint: min}
	for _, row := range timeline {
		if !row.BelowMin {
			continue
		}
		report.RiskDays++
		if report.FirstRiskDay == nil {
			d := row.Date
			report.FirstRiskDay = &d
		}
	}
	return report, true
}
