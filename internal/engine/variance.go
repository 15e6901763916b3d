package engine

import (
	"sort"

	"cashplan/internal/model"

	"github.com/shopspring/decimal"
)

// Matcher resolves a transaction to a bill when no explicit link
// exists. Implementations are heuristic and injected; the engine only
// consumes the verdict so it stays deterministic and testable with a
// stub.
type Matcher interface {
	MatchBill(tx model.Transaction, bills []model.BillTemplate) (string, bool)
}

// VarianceByCategory compares budgeted event totals against actual
// transaction totals for every category seen in the period. A
// transaction's category comes from its linked bill or rule when a
// link exists, falling back to its own category field otherwise.
// tolerance is the relative band before a variance counts as
// over/under: with tolerance 0 a single penny over budget flags.
func VarianceByCategory(plan *model.Plan, periodID int, tolerance float64) map[string]model.Variance {
	period := Resolve(plan, periodID)

	budgeted := map[string]decimal.Decimal{}
	for _, ev := range GenerateEvents(plan, period.ID) {
		budgeted[ev.Category] = budgeted[ev.Category].Add(ev.Amount)
	}

	actual := map[string]decimal.Decimal{}
	for _, tx := range transactionsIn(plan, period) {
		cat := resolveCategory(plan, tx)
		actual[cat] = actual[cat].Add(tx.Amount)
	}

	out := map[string]model.Variance{}
	for _, cat := range unionKeys(budgeted, actual) {
		out[cat] = makeVariance(cat, budgeted[cat], actual[cat], tolerance)
	}
	return out
}

// VarianceByBill compares each bill's budgeted occurrence against the
// transactions recorded for it. Explicit links win; unlinked
// transactions are offered to the injected matcher (nil disables the
// fuzzy fallback).
func VarianceByBill(plan *model.Plan, periodID int, tolerance float64, matcher Matcher) map[string]model.Variance {
	period := Resolve(plan, periodID)

	bills := map[string]model.BillTemplate{}
	for _, b := range plan.Bills {
		bills[b.ID] = b
	}

	budgeted := map[string]decimal.Decimal{}
	for _, ev := range GenerateEvents(plan, period.ID) {
		if _, ok := bills[ev.SourceID]; ok {
			budgeted[ev.SourceID] = budgeted[ev.SourceID].Add(ev.Amount)
		}
	}

	actual := map[string]decimal.Decimal{}
	for _, tx := range transactionsIn(plan, period) {
		id := tx.LinkedBillID
		if id == "" {
			if tx.LinkedRuleID != "" || matcher == nil {
				continue
			}
			matched, ok := matcher.MatchBill(tx, plan.Bills)
			if !ok {
				continue
			}
			id = matched
		}
		if _, ok := bills[id]; ok {
			actual[id] = actual[id].Add(tx.Amount)
		}
	}

	out := map[string]model.Variance{}
	for _, id := range unionKeys(budgeted, actual) {
		out[id] = makeVariance(bills[id].Label, budgeted[id], actual[id], tolerance)
	}
	return out
}

// VarianceByOutflowRule compares each outflow rule's budgeted
// occurrences against its explicitly linked transactions.
func VarianceByOutflowRule(plan *model.Plan, periodID int, tolerance float64) map[string]model.Variance {
	period := Resolve(plan, periodID)

	rules := map[string]model.Rule{}
	for _, r := range plan.OutflowRules {
		rules[r.ID] = r
	}

	budgeted := map[string]decimal.Decimal{}
	for _, ev := range GenerateEvents(plan, period.ID) {
		if _, ok := rules[ev.SourceID]; ok && ev.Kind == model.EventOutflow {
			budgeted[ev.SourceID] = budgeted[ev.SourceID].Add(ev.Amount)
		}
	}

	actual := map[string]decimal.Decimal{}
	for _, tx := range transactionsIn(plan, period) {
		if tx.LinkedRuleID == "" {
			continue
		}
		if _, ok := rules[tx.LinkedRuleID]; ok {
			actual[tx.LinkedRuleID] = actual[tx.LinkedRuleID].Add(tx.Amount)
		}
	}

	out := map[string]model.Variance{}
	for _, id := range unionKeys(budgeted, actual) {
		out[id] = makeVariance(rules[id].Label, budgeted[id], actual[id], tolerance)
	}
	return out
}

// SavingsReconciliation specializes variance for savings transfers:
// budgeted is the savings-category event total, actual the transfer
// transactions linked to a savings rule (or categorized as savings
// when unlinked).
func SavingsReconciliation(plan *model.Plan, periodID int, tolerance float64) model.Variance {
	period := Resolve(plan, periodID)

	budgeted := decimal.Zero
	for _, ev := range GenerateEvents(plan, period.ID) {
		if ev.Category == model.CategorySavings {
			budgeted = budgeted.Add(ev.Amount)
		}
	}

	actual := decimal.Zero
	for _, tx := range transactionsIn(plan, period) {
		if tx.Kind != model.TxTransfer {
			continue
		}
		if tx.LinkedRuleID != "" {
			if ruleCategory(plan, tx.LinkedRuleID) == model.CategorySavings {
				actual = actual.Add(tx.Amount)
			}
			continue
		}
		if tx.Category == model.CategorySavings {
			actual = actual.Add(tx.Amount)
		}
	}

	return makeVariance(model.CategorySavings, budgeted, actual, tolerance)
}

func makeVariance(label string, budgeted, actual decimal.Decimal, tolerance float64) model.Variance {
	return model.Variance{
		Label:    label,
		Budgeted: budgeted,
		Actual:   actual,
		Variance: actual.Sub(budgeted),
		Status:   varianceStatus(budgeted, actual, tolerance),
	}
}

func varianceStatus(budgeted, actual decimal.Decimal, tolerance float64) model.VarianceStatus {
	if tolerance < 0 {
		tolerance = 0
	}
	upper := budgeted.Mul(decimal.NewFromFloat(1 + tolerance))
	lower := budgeted.Mul(decimal.NewFromFloat(1 - tolerance))
	switch {
	case actual.GreaterThan(upper):
		return model.StatusOver
	case actual.LessThan(lower):
		return model.StatusUnder
	default:
		return model.StatusOnTrack
	}
}

// resolveCategory prefers the category of the linked bill or rule over
// the transaction's own, so manual categorization cannot drift linked
// entries out of their budget line.
func resolveCategory(plan *model.Plan, tx model.Transaction) string {
	if tx.LinkedBillID != "" {
		for _, b := range plan.Bills {
			if b.ID == tx.LinkedBillID {
				return b.Category
			}
		}
	}
	if tx.LinkedRuleID != "" {
		if cat := ruleCategory(plan, tx.LinkedRuleID); cat != "" {
			return cat
		}
	}
	return tx.Category
}

func ruleCategory(plan *model.Plan, ruleID string) string {
	for _, r := range plan.IncomeRules {
		if r.ID == ruleID {
			return r.Category
		}
	}
	for _, r := range plan.OutflowRules {
		if r.ID == ruleID {
			return r.Category
		}
	}
	return ""
}

func transactionsIn(plan *model.Plan, period model.Period) []model.Transaction {
	var out []model.Transaction
	for _, tx := range plan.Transactions {
		if period.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out
}

func unionKeys(a, b map[string]decimal.Decimal) []string {
	seen := map[string]bool{}
	for k := range a {
		seen[k] = true
	}
	for k := range b {
		seen[k] = true
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
