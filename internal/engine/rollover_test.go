package engine

import (
	"testing"

	"cashplan/internal/model"
)

func TestSuggestions(t *testing.T) {
	plan := testPlan(t)

	shop := tx(t, "2026-01-10", "Shop", 240, model.TxOutflow)
	shop.LinkedRuleID = "rule-groceries"
	rent := tx(t, "2026-01-02", "Rent", 560, model.TxOutflow)
	rent.LinkedBillID = "bill-rent"
	coffee := tx(t, "2026-01-12", "Coffee", 35, model.TxOutflow)
	plan.Transactions = []model.Transaction{shop, rent, coffee}

	advice, ok := Suggestions(plan, 2)
	if !ok {
		t.Fatal("Suggestions returned false with a previous period available")
	}
	if advice.PeriodID != 1 {
		t.Fatalf("advice drawn from period %d, want 1", advice.PeriodID)
	}
	wantEqual(t, "unbudgeted", advice.Unbudgeted, money(35))

	if len(advice.Items) != 4 {
		t.Fatalf("got %d suggestions, want 4", len(advice.Items))
	}

	byID := map[string]model.RolloverSuggestion{}
	for _, item := range advice.Items {
		byID[item.SourceID] = item
	}

	groceries := byID["rule-groceries"]
	wantEqual(t, "groceries budget", groceries.Budget, money(250))
	wantEqual(t, "groceries actual", groceries.Actual, money(240))
	if groceries.ReadOnly {
		t.Fatal("rule suggestion marked read-only")
	}
	if groceries.Kind != model.SourceOutflowRule {
		t.Fatalf("groceries kind = %s, want outflow rule", groceries.Kind)
	}

	rentItem := byID["bill-rent"]
	wantEqual(t, "rent budget", rentItem.Budget, money(550))
	wantEqual(t, "rent actual", rentItem.Actual, money(560))
	if !rentItem.ReadOnly {
		t.Fatal("bill suggestion not marked read-only")
	}

	salary := byID["rule-salary"]
	wantEqual(t, "salary budget", salary.Budget, money(1500))
	wantEqual(t, "salary actual", salary.Actual, money(0))
	if salary.Kind != model.SourceIncomeRule {
		t.Fatalf("salary kind = %s, want income rule", salary.Kind)
	}
}

func TestSuggestions_SortedByLabel(t *testing.T) {
	plan := testPlan(t)

	advice, ok := Suggestions(plan, 2)
	if !ok {
		t.Fatal("Suggestions returned false")
	}
	for i := 1; i < len(advice.Items); i++ {
		if advice.Items[i-1].Label > advice.Items[i].Label {
			t.Fatalf("items out of label order: %q after %q",
				advice.Items[i].Label, advice.Items[i-1].Label)
		}
	}
}

func TestSuggestions_FirstPeriod(t *testing.T) {
	plan := testPlan(t)
	if _, ok := Suggestions(plan, 1); ok {
		t.Fatal("Suggestions produced advice for the first period")
	}
}

func TestSuggestions_IdleSourceSkipped(t *testing.T) {
	plan := testPlan(t)
	plan.OutflowRules = append(plan.OutflowRules, model.Rule{
		ID: "rule-dormant", Label: "Dormant", Amount: money(10),
		Cadence: model.CadenceMonthly, Category: "other", Enabled: false,
	})

	advice, ok := Suggestions(plan, 2)
	if !ok {
		t.Fatal("Suggestions returned false")
	}
	for _, item := range advice.Items {
		if item.SourceID == "rule-dormant" {
			t.Fatal("source with no budget and no activity was suggested")
		}
	}
}
