package model

import "github.com/shopspring/decimal"

// EventKind is the direction of a generated event.
type EventKind string

// Event kinds.
const (
	EventIncome  EventKind = "income"
	EventOutflow EventKind = "outflow"
)

// Event is one dated occurrence of a rule or bill inside a period.
// Events are derived fresh on every engine call and never persisted.
type Event struct {
	Date     Date            `json:"date"`
	Kind     EventKind       `json:"type"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	SourceID string          `json:"sourceId"`
	Label    string          `json:"label"`
}

// TimelineRow is one day's projected end-of-day balance.
type TimelineRow struct {
	Date     Date            `json:"date"`
	Balance  decimal.Decimal `json:"balance"`
	BelowMin bool            `json:"belowMin"`
}

// VarianceStatus classifies actual spend against budget.
type VarianceStatus string

// Variance statuses.
const (
	StatusOver    VarianceStatus = "over"
	StatusUnder   VarianceStatus = "under"
	StatusOnTrack VarianceStatus = "on-track"
)

// Variance is a budget-vs-actual comparison for one category, bill,
// or rule. Variance = Actual - Budgeted.
type Variance struct {
	Label    string          `json:"label,omitempty"`
	Budgeted decimal.Decimal `json:"budgeted"`
	Actual   decimal.Decimal `json:"actual"`
	Variance decimal.Decimal `json:"variance"`
	Status   VarianceStatus  `json:"status"`
}

// RiskReport summarizes balance risk over one period's timeline.
type RiskReport struct {
	MinPoint     TimelineRow `json:"minPoint"`
	RiskDays     int         `json:"riskDays"`
	FirstRiskDay *Date       `json:"firstRiskDay,omitempty"`
}

// Pace holds period-to-date actuals and their pace extrapolation.
type Pace struct {
	TimeProgress      float64         `json:"timeProgress"`
	ActualIncome      decimal.Decimal `json:"actualIncome"`
	ActualSpending    decimal.Decimal `json:"actualSpending"`
	ActualSavings     decimal.Decimal `json:"actualSavings"`
	ProjectedIncome   decimal.Decimal `json:"projectedIncome"`
	ProjectedSpending decimal.Decimal `json:"projectedSpending"`
	ProjectedSavings  decimal.Decimal `json:"projectedSavings"`
}

// ScenarioProjection is one end-of-period outcome under adjusted pace.
type ScenarioProjection struct {
	Name           string          `json:"name"`
	IncomeFactor   float64         `json:"incomeFactor"`
	SpendingFactor float64         `json:"spendingFactor"`
	Income         decimal.Decimal `json:"income"`
	Spending       decimal.Decimal `json:"spending"`
	Savings        decimal.Decimal `json:"savings"`
	Leftover       decimal.Decimal `json:"leftover"`
	EndBalance     decimal.Decimal `json:"endBalance"`
	BufferDelta    decimal.Decimal `json:"bufferDelta"`
}

// ForecastReport bundles the pace snapshot with its three scenarios.
type ForecastReport struct {
	StartingBalance decimal.Decimal      `json:"startingBalance"`
	Pace            Pace                 `json:"pace"`
	Scenarios       []ScenarioProjection `json:"scenarios"`
}

// SourceKind identifies what a rollover suggestion targets.
type SourceKind string

// Rollover suggestion targets.
const (
	SourceIncomeRule  SourceKind = "income"
	SourceOutflowRule SourceKind = "outflow"
	SourceBill        SourceKind = "bill"
)

// RolloverSuggestion pairs one rule's or bill's budget with what was
// actually spent against it last period. Bill entries are read-only:
// bill amounts come from the template, not per-period overrides.
type RolloverSuggestion struct {
	SourceID string          `json:"sourceId"`
	Label    string          `json:"label"`
	Kind     SourceKind      `json:"kind"`
	Budget   decimal.Decimal `json:"budget"`
	Actual   decimal.Decimal `json:"actual"`
	ReadOnly bool            `json:"readOnly"`
}

// RolloverAdvice is the prior period's actual-vs-budget breakdown used
// to seed next-period overrides.
type RolloverAdvice struct {
	PeriodID   int                  `json:"periodId"`
	Items      []RolloverSuggestion `json:"items"`
	Unbudgeted decimal.Decimal      `json:"unbudgeted"`
}
