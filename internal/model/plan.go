// Package model defines the plan aggregate and the derived types the
// forecasting engine produces from it.
package model

import "github.com/shopspring/decimal"

// Cadence is how often a recurring rule fires.
type Cadence string

// Supported cadences.
const (
	CadenceWeekly   Cadence = "weekly"
	CadenceBiweekly Cadence = "biweekly"
	CadenceMonthly  Cadence = "monthly"
)

// TxType classifies a recorded transaction.
type TxType string

// Transaction types.
const (
	TxIncome   TxType = "income"
	TxOutflow  TxType = "outflow"
	TxTransfer TxType = "transfer"
)

// CategorySavings is the category that marks savings rules and the
// fallback category for unlinked savings transfers.
const CategorySavings = "savings"

// Plan is the full budgeting state. The engine receives it as a
// read-only snapshot; only the persistence layer mutates it.
type Plan struct {
	Setup               Setup                `json:"setup"`
	IncomeRules         []Rule               `json:"incomeRules"`
	OutflowRules        []Rule               `json:"outflowRules"`
	Bills               []BillTemplate       `json:"bills"`
	Periods             []Period             `json:"periods"`
	PeriodOverrides     []PeriodOverride     `json:"periodOverrides,omitempty"`
	PeriodRuleOverrides []PeriodRuleOverride `json:"periodRuleOverrides,omitempty"`
	Transactions        []Transaction        `json:"transactions"`
}

// Setup holds the plan-wide settings.
type Setup struct {
	StartingBalance decimal.Decimal  `json:"startingBalance"`
	SelectedPeriod  int              `json:"selectedPeriod"`
	MinBalance      *decimal.Decimal `json:"minBalance,omitempty"`
	SpendingCap     decimal.Decimal  `json:"spendingCap"`
	WindowDays      int              `json:"windowDays"`
	AsOf            Date             `json:"asOf"`
}

// Period is a contiguous budgeting date range, inclusive on both ends.
// Periods never overlap and are ordered by ID.
type Period struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Start Date   `json:"start"`
	End   Date   `json:"end"`
}

// Days returns the number of calendar days the period covers.
func (p Period) Days() int {
	return p.Start.DaysUntil(p.End) + 1
}

// Contains reports whether d falls inside the period.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start.Time) && !d.After(p.End.Time)
}

// Rule is a recurring income or outflow definition. Which side it sits
// on is determined by the Plan slice that holds it.
type Rule struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	Cadence  Cadence         `json:"cadence"`
	Category string          `json:"category"`
	Enabled  bool            `json:"enabled"`
}

// BillTemplate is a monthly outflow anchored to a day of month.
// DueDay may be 29-31; occurrences clamp to the month's last day.
type BillTemplate struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	DueDay   int             `json:"dueDay"`
	Category string          `json:"category"`
	Enabled  bool            `json:"enabled"`
}

// PeriodOverride suppresses specific bills for one period only.
type PeriodOverride struct {
	PeriodID      int      `json:"periodId"`
	DisabledBills []string `json:"disabledBills"`
}

// PeriodRuleOverride replaces a rule's amount for one period without
// touching the global rule definition.
type PeriodRuleOverride struct {
	PeriodID int             `json:"periodId"`
	RuleID   string          `json:"ruleId"`
	Kind     TxType          `json:"type"`
	Amount   decimal.Decimal `json:"amount"`
}

// Transaction is a recorded actual. Amounts are always non-negative;
// the type carries the sign.
type Transaction struct {
	ID           string          `json:"id"`
	Date         Date            `json:"date"`
	Label        string          `json:"label"`
	Amount       decimal.Decimal `json:"amount"`
	Kind         TxType          `json:"type"`
	Category     string          `json:"category"`
	Notes        string          `json:"notes,omitempty"`
	LinkedRuleID string          `json:"linkedRuleId,omitempty"`
	LinkedBillID string          `json:"linkedBillId,omitempty"`
	GoalID       string          `json:"goalId,omitempty"`
}
