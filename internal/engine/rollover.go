package engine

import (
	"sort"

	"cashplan/internal/model"

	"github.com/shopspring/decimal"
)

// Suggestions compares the previous period's actuals against its
// budget, per linked rule and bill, producing candidate override
// amounts for the given period. Transactions with no link land in the
// unbudgeted bucket. Returns false when there is no previous period to
// learn from. Bill entries are marked read-only: a bill's amount is
// owned by its template, so the suggestion is informational only.
func Suggestions(plan *model.Plan, periodID int) (model.RolloverAdvice, bool) {
	current := Resolve(plan, periodID)
	prev, ok := Previous(plan, current.ID)
	if !ok {
		return model.RolloverAdvice{}, false
	}

	budgeted := map[string]decimal.Decimal{}
	for _, ev := range GenerateEvents(plan, prev.ID) {
		budgeted[ev.SourceID] = budgeted[ev.SourceID].Add(ev.Amount)
	}

	actual := map[string]decimal.Decimal{}
	unbudgeted := decimal.Zero
	for _, tx := range transactionsIn(plan, prev) {
		switch {
		case tx.LinkedBillID != "":
			actual[tx.LinkedBillID] = actual[tx.LinkedBillID].Add(tx.Amount)
		case tx.LinkedRuleID != "":
			actual[tx.LinkedRuleID] = actual[tx.LinkedRuleID].Add(tx.Amount)
		default:
			unbudgeted = unbudgeted.Add(tx.Amount)
		}
	}

	advice := model.RolloverAdvice{PeriodID: prev.ID, Unbudgeted: unbudgeted}
	for _, rule := range plan.IncomeRules {
		advice.Items = appendSuggestion(advice.Items, rule.ID, rule.Label,
			model.SourceIncomeRule, budgeted, actual, false)
	}
	for _, rule := range plan.OutflowRules {
		advice.Items = appendSuggestion(advice.Items, rule.ID, rule.Label,
			model.SourceOutflowRule, budgeted, actual, false)
	}
	for _, bill := range plan.Bills {
		advice.Items = appendSuggestion(advice.Items, bill.ID, bill.Label,
			model.SourceBill, budgeted, actual, true)
	}

	sort.SliceStable(advice.Items, func(i, j int) bool {
		return advice.Items[i].Label < advice.Items[j].Label
	})
	return advice, true
}

// appendSuggestion skips sources that neither budgeted nor saw
// activity last period; everything else gets a budget/actual pair.
func appendSuggestion(items []model.RolloverSuggestion, id, label string, kind model.SourceKind,
	budgeted, actual map[string]decimal.Decimal, readOnly bool) []model.RolloverSuggestion {

	budget, hasBudget := budgeted[id]
	spent, hasActual := actual[id]
	if !hasBudget && !hasActual {
		return items
	}
	return append(items, model.RolloverSuggestion{
		SourceID: id,
		Label:    label,
		Kind:     kind,
		Budget:   budget,
		Actual:   spent,
		ReadOnly: readOnly,
	})
}
