package engine

import (
	"testing"

	"cashplan/internal/model"
)

func TestMinPoint_EarliestWinsTies(t *testing.T) {
	rows := []model.TimelineRow{
		{Date: mustDate(t, "2026-01-01"), Balance: money(500)},
		{Date: mustDate(t, "2026-01-02"), Balance: money(100)},
		{Date: mustDate(t, "2026-01-03"), Balance: money(100)},
		{Date: mustDate(t, "2026-01-04"), Balance: money(300)},
	}

	min, ok := MinPoint(rows)
	if !ok {
		t.Fatal("MinPoint returned false")
	}
	wantEqual(t, "min balance", min.Balance, money(100))
	wantDay(t, "min day", min.Date, "2026-01-02")
}

func TestMinPoint_Empty(t *testing.T) {
	if _, ok := MinPoint(nil); ok {
		t.Fatal("MinPoint reported a minimum for an empty timeline")
	}
}

func TestRisk_CountsDaysBelowMinimum(t *testing.T) {
	plan := testPlan(t)
	plan.Setup.MinBalance = moneyPtr(2000)

	timeline := BuildTimeline(plan, 1, plan.Setup.StartingBalance)
	report, ok := Risk(plan, timeline)
	if !ok {
		t.Fatal("Risk returned false with a minimum configured")
	}

	// Balance drops under 2000 when rent posts on 1 Jan and never
	// recovers inside the period.
	if report.RiskDays != 25 {
		t.Fatalf("RiskDays = %d, want 25", report.RiskDays)
	}
	if report.FirstRiskDay == nil {
		t.Fatal("FirstRiskDay is nil")
	}
	wantDay(t, "first risk day", *report.FirstRiskDay, "2026-01-01")
	wantEqual(t, "min point", report.MinPoint.Balance, money(1500))
}

func TestRisk_NoDaysBelow(t *testing.T) {
	plan := testPlan(t)

	timeline := BuildTimeline(plan, 1, plan.Setup.StartingBalance)
	report, ok := Risk(plan, timeline)
	if !ok {
		t.Fatal("Risk returned false with a minimum configured")
	}
	if report.RiskDays != 0 || report.FirstRiskDay != nil {
		t.Fatalf("RiskDays = %d, FirstRiskDay = %v, want 0 and nil", report.RiskDays, report.FirstRiskDay)
	}
	wantDay(t, "min point day", report.MinPoint.Date, "2026-01-19")
}

func TestRisk_SkippedWithoutMinimum(t *testing.T) {
	plan := testPlan(t)
	plan.Setup.MinBalance = nil

	timeline := BuildTimeline(plan, 1, plan.Setup.StartingBalance)
	if _, ok := Risk(plan, timeline); ok {
		t.Fatal("Risk ran with no minimum balance configured")
	}
}

func TestRisk_EmptyTimeline(t *testing.T) {
	plan := testPlan(t)
	if _, ok := Risk(plan, nil); ok {
		t.Fatal("Risk reported on an empty timeline")
	}
}
