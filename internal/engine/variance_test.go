package engine

import (
	"testing"

	"cashplan/internal/model"
)

// stubMatcher always resolves to a fixed bill id.
type stubMatcher struct{ id string }

func (m stubMatcher) MatchBill(model.Transaction, []model.BillTemplate) (string, bool) {
	if m.id == "" {
		return "", false
	}
	return m.id, true
}

func tx(t *testing.T, date, label string, amount int64, kind model.TxType) model.Transaction {
	t.Helper()
	return model.Transaction{
		ID:     "tx-" + label,
		Date:   mustDate(t, date),
		Label:  label,
		Amount: money(amount),
		Kind:   kind,
	}
}

func TestVarianceByCategory_OnTrack(t *testing.T) {
	plan := testPlan(t)
	groceries := tx(t, "2026-01-10", "Shop", 250, model.TxOutflow)
	groceries.LinkedRuleID = "rule-groceries"
	plan.Transactions = []model.Transaction{groceries}

	got := VarianceByCategory(plan, 1, 0)

	v, ok := got["allowance"]
	if !ok {
		t.Fatal("no allowance entry")
	}
	wantEqual(t, "budgeted", v.Budgeted, money(250))
	wantEqual(t, "actual", v.Actual, money(250))
	wantEqual(t, "variance", v.Variance, money(0))
	if v.Status != model.StatusOnTrack {
		t.Fatalf("status = %s, want on-track", v.Status)
	}
}

func TestVarianceByCategory_PennyOverFlags(t *testing.T) {
	plan := testPlan(t)
	plan.OutflowRules = []model.Rule{
		{ID: "rule-misc", Label: "Misc", Amount: money(100), Cadence: model.CadenceMonthly, Category: "other", Enabled: true},
	}
	plan.Bills = nil
	over := tx(t, "2026-01-10", "Stuff", 101, model.TxOutflow)
	over.Category = "other"
	plan.Transactions = []model.Transaction{over}

	got := VarianceByCategory(plan, 1, 0)
	if got["other"].Status != model.StatusOver {
		t.Fatalf("status = %s, want over at 101 against 100", got["other"].Status)
	}
	wantEqual(t, "variance", got["other"].Variance, money(1))
}

func TestVarianceByCategory_ToleranceBand(t *testing.T) {
	plan := testPlan(t)
	plan.OutflowRules = []model.Rule{
		{ID: "rule-misc", Label: "Misc", Amount: money(100), Cadence: model.CadenceMonthly, Category: "other", Enabled: true},
	}
	plan.Bills = nil
	over := tx(t, "2026-01-10", "Stuff", 104, model.TxOutflow)
	over.Category = "other"
	plan.Transactions = []model.Transaction{over}

	// 104 sits inside a 5% band around 100.
	if got := VarianceByCategory(plan, 1, 0.05); got["other"].Status != model.StatusOnTrack {
		t.Fatalf("status = %s, want on-track inside tolerance", got["other"].Status)
	}
	if got := VarianceByCategory(plan, 1, 0.01); got["other"].Status != model.StatusOver {
		t.Fatalf("status = %s, want over outside tolerance", got["other"].Status)
	}
}

func TestVarianceByCategory_LinkedCategoryWins(t *testing.T) {
	plan := testPlan(t)

	// Miscategorized by hand but explicitly linked to rent: the bill's
	// category must win.
	rent := tx(t, "2026-01-02", "Rent payment", 550, model.TxOutflow)
	rent.Category = "other"
	rent.LinkedBillID = "bill-rent"
	plan.Transactions = []model.Transaction{rent}

	got := VarianceByCategory(plan, 1, 0)
	wantEqual(t, "bill actual", got["bill"].Actual, money(550))
	if _, ok := got["other"]; ok {
		t.Fatal("linked transaction leaked into its own category")
	}
}

func TestVarianceByCategory_OutsidePeriodIgnored(t *testing.T) {
	plan := testPlan(t)
	plan.Transactions = []model.Transaction{
		tx(t, "2026-02-01", "Late shop", 40, model.TxOutflow),
	}

	got := VarianceByCategory(plan, 1, 0)
	wantEqual(t, "allowance actual", got["allowance"].Actual, money(0))
}

func TestVarianceByBill_ExplicitLink(t *testing.T) {
	plan := testPlan(t)
	rent := tx(t, "2026-01-02", "RENT TRANSFER 9913", 560, model.TxOutflow)
	rent.LinkedBillID = "bill-rent"
	plan.Transactions = []model.Transaction{rent}

	got := VarianceByBill(plan, 1, 0, nil)
	v := got["bill-rent"]
	if v.Label != "Rent" {
		t.Fatalf("label = %q, want Rent", v.Label)
	}
	wantEqual(t, "budgeted", v.Budgeted, money(550))
	wantEqual(t, "actual", v.Actual, money(560))
	if v.Status != model.StatusOver {
		t.Fatalf("status = %s, want over", v.Status)
	}
}

func TestVarianceByBill_MatcherFallback(t *testing.T) {
	plan := testPlan(t)
	plan.Transactions = []model.Transaction{
		tx(t, "2026-01-02", "rent to landlord", 550, model.TxOutflow),
	}

	got := VarianceByBill(plan, 1, 0, stubMatcher{id: "bill-rent"})
	wantEqual(t, "matched actual", got["bill-rent"].Actual, money(550))
}

func TestVarianceByBill_NilMatcherSkipsUnlinked(t *testing.T) {
	plan := testPlan(t)
	plan.Transactions = []model.Transaction{
		tx(t, "2026-01-02", "rent to landlord", 550, model.TxOutflow),
	}

	got := VarianceByBill(plan, 1, 0, nil)
	wantEqual(t, "unmatched actual", got["bill-rent"].Actual, money(0))
}

func TestVarianceByBill_RuleLinkedNotOfferedToMatcher(t *testing.T) {
	plan := testPlan(t)
	shop := tx(t, "2026-01-02", "Shop", 50, model.TxOutflow)
	shop.LinkedRuleID = "rule-groceries"
	plan.Transactions = []model.Transaction{shop}

	got := VarianceByBill(plan, 1, 0, stubMatcher{id: "bill-rent"})
	wantEqual(t, "rent actual", got["bill-rent"].Actual, money(0))
}

func TestVarianceByOutflowRule(t *testing.T) {
	plan := testPlan(t)
	shop := tx(t, "2026-01-02", "Shop", 260, model.TxOutflow)
	shop.LinkedRuleID = "rule-groceries"
	unlinked := tx(t, "2026-01-03", "Cash", 30, model.TxOutflow)
	plan.Transactions = []model.Transaction{shop, unlinked}

	got := VarianceByOutflowRule(plan, 1, 0)
	v := got["rule-groceries"]
	wantEqual(t, "budgeted", v.Budgeted, money(250))
	wantEqual(t, "actual", v.Actual, money(260))
	if v.Status != model.StatusOver {
		t.Fatalf("status = %s, want over", v.Status)
	}
}

func TestSavingsReconciliation(t *testing.T) {
	plan := testPlan(t)

	linked := tx(t, "2026-01-02", "To savings pot", 200, model.TxTransfer)
	linked.LinkedRuleID = "rule-savings"
	unlinkedSavings := tx(t, "2026-01-03", "Extra", 25, model.TxTransfer)
	unlinkedSavings.Category = model.CategorySavings
	otherTransfer := tx(t, "2026-01-04", "To joint account", 100, model.TxTransfer)
	otherTransfer.Category = "other"
	notTransfer := tx(t, "2026-01-05", "Shop", 50, model.TxOutflow)
	notTransfer.Category = model.CategorySavings
	plan.Transactions = []model.Transaction{linked, unlinkedSavings, otherTransfer, notTransfer}

	got := SavingsReconciliation(plan, 1, 0)
	wantEqual(t, "budgeted", got.Budgeted, money(200))
	wantEqual(t, "actual", got.Actual, money(225))
	if got.Status != model.StatusOver {
		t.Fatalf("status = %s, want over", got.Status)
	}
}
