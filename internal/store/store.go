// Package store persists the plan in SQLite. It is the persistence
// collaborator around the engine: the engine itself only ever sees the
// loaded snapshot.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"cashplan/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

// Store wraps the plan database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the plan database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening plan db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SavePlan replaces the stored plan with the given snapshot.
func (s *Store) SavePlan(plan *model.Plan) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{
		"setup", "periods", "rules", "bills",
		"period_overrides", "period_rule_overrides", "transactions",
	} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	minBalance := sql.NullString{}
	if plan.Setup.MinBalance != nil {
		minBalance = sql.NullString{String: plan.Setup.MinBalance.String(), Valid: true}
	}
	_, err = tx.Exec(`INSERT INTO setup
		(id, starting_balance, selected_period, min_balance, spending_cap, window_days, as_of)
		VALUES (1, ?, ?, ?, ?, ?, ?)`,
		plan.Setup.StartingBalance.String(), plan.Setup.SelectedPeriod, minBalance,
		plan.Setup.SpendingCap.String(), plan.Setup.WindowDays, plan.Setup.AsOf.String(),
	)
	if err != nil {
		return err
	}

	for _, p := range plan.Periods {
		_, err = tx.Exec(`INSERT INTO periods (id, label, start_date, end_date) VALUES (?, ?, ?, ?)`,
			p.ID, p.Label, p.Start.String(), p.End.String())
		if err != nil {
			return err
		}
	}

	if err := insertRules(tx, plan.IncomeRules, model.TxIncome); err != nil {
		return err
	}
	if err := insertRules(tx, plan.OutflowRules, model.TxOutflow); err != nil {
		return err
	}

	for _, b := range plan.Bills {
		_, err = tx.Exec(`INSERT INTO bills (id, label, amount, due_day, category, enabled)
			VALUES (?, ?, ?, ?, ?, ?)`,
			b.ID, b.Label, b.Amount.String(), b.DueDay, b.Category, boolInt(b.Enabled))
		if err != nil {
			return err
		}
	}

	for _, ov := range plan.PeriodOverrides {
		for _, billID := range ov.DisabledBills {
			_, err = tx.Exec(`INSERT OR REPLACE INTO period_overrides (period_id, bill_id) VALUES (?, ?)`,
				ov.PeriodID, billID)
			if err != nil {
				return err
			}
		}
	}

	for _, ov := range plan.PeriodRuleOverrides {
		_, err = tx.Exec(`INSERT OR REPLACE INTO period_rule_overrides (period_id, rule_id, kind, amount)
			VALUES (?, ?, ?, ?)`,
			ov.PeriodID, ov.RuleID, string(ov.Kind), ov.Amount.String())
		if err != nil {
			return err
		}
	}

	for _, t := range plan.Transactions {
		if err := insertTransaction(tx, t); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadPlan reads the full plan snapshot.
func (s *Store) LoadPlan() (*model.Plan, error) {
	plan := &model.Plan{}

	row := s.db.QueryRow(`SELECT starting_balance, selected_period, min_balance,
		spending_cap, window_days, as_of FROM setup WHERE id = 1`)
	var startStr, capStr, asOfStr string
	var minStr sql.NullString
	err := row.Scan(&startStr, &plan.Setup.SelectedPeriod, &minStr,
		&capStr, &plan.Setup.WindowDays, &asOfStr)
	switch {
	case err == sql.ErrNoRows:
		// empty database, an all-zero setup is fine
	case err != nil:
		return nil, err
	default:
		plan.Setup.StartingBalance = parseAmount(startStr)
		plan.Setup.SpendingCap = parseAmount(capStr)
		if minStr.Valid {
			m := parseAmount(minStr.String)
			plan.Setup.MinBalance = &m
		}
		plan.Setup.AsOf = parseDate(asOfStr)
	}

	if err := s.loadPeriods(plan); err != nil {
		return nil, err
	}
	if err := s.loadRules(plan); err != nil {
		return nil, err
	}
	if err := s.loadBills(plan); err != nil {
		return nil, err
	}
	if err := s.loadOverrides(plan); err != nil {
		return nil, err
	}

	txs, err := s.ListTransactions()
	if err != nil {
		return nil, err
	}
	plan.Transactions = txs

	return plan, nil
}

// AddTransaction appends one transaction without rewriting the plan.
func (s *Store) AddTransaction(t model.Transaction) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertTransaction(tx, t); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteTransaction removes a transaction by id.
func (s *Store) DeleteTransaction(id string) error {
	res, err := s.db.Exec("DELETE FROM transactions WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("no transaction with id %s", id)
	}
	return nil
}

// ListTransactions returns all transactions ordered by date.
func (s *Store) ListTransactions() ([]model.Transaction, error) {
	rows, err := s.db.Query(`SELECT id, tx_date, label, amount, kind, category,
		notes, linked_rule_id, linked_bill_id, goal_id
		FROM transactions ORDER BY tx_date, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []model.Transaction
	for rows.Next() {
		var t model.Transaction
		var dateStr, amountStr, kindStr string
		err := rows.Scan(&t.ID, &dateStr, &t.Label, &amountStr, &kindStr, &t.Category,
			&t.Notes, &t.LinkedRuleID, &t.LinkedBillID, &t.GoalID)
		if err != nil {
			return nil, err
		}
		t.Date = parseDate(dateStr)
		t.Amount = parseAmount(amountStr)
		t.Kind = model.TxType(kindStr)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) loadPeriods(plan *model.Plan) error {
	rows, err := s.db.Query("SELECT id, label, start_date, end_date FROM periods ORDER BY id")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var p model.Period
		var startStr, endStr string
		if err := rows.Scan(&p.ID, &p.Label, &startStr, &endStr); err != nil {
			return err
		}
		p.Start = parseDate(startStr)
		p.End = parseDate(endStr)
		plan.Periods = append(plan.Periods, p)
	}
	return rows.Err()
}

func (s *Store) loadRules(plan *model.Plan) error {
	rows, err := s.db.Query("SELECT id, kind, label, amount, cadence, category, enabled FROM rules")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r model.Rule
		var kindStr, amountStr, cadenceStr string
		var enabled int
		if err := rows.Scan(&r.ID, &kindStr, &r.Label, &amountStr, &cadenceStr, &r.Category, &enabled); err != nil {
			return err
		}
		r.Amount = parseAmount(amountStr)
		r.Cadence = model.Cadence(cadenceStr)
		r.Enabled = enabled != 0
		if model.TxType(kindStr) == model.TxIncome {
			plan.IncomeRules = append(plan.IncomeRules, r)
		} else {
			plan.OutflowRules = append(plan.OutflowRules, r)
		}
	}
	return rows.Err()
}

func (s *Store) loadBills(plan *model.Plan) error {
	rows, err := s.db.Query("SELECT id, label, amount, due_day, category, enabled FROM bills")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var b model.BillTemplate
		var amountStr string
		var enabled int
		if err := rows.Scan(&b.ID, &b.Label, &amountStr, &b.DueDay, &b.Category, &enabled); err != nil {
			return err
		}
		b.Amount = parseAmount(amountStr)
		b.Enabled = enabled != 0
		plan.Bills = append(plan.Bills, b)
	}
	return rows.Err()
}

func (s *Store) loadOverrides(plan *model.Plan) error {
	rows, err := s.db.Query("SELECT period_id, bill_id FROM period_overrides ORDER BY period_id")
	if err != nil {
		return err
	}
	byPeriod := map[int][]string{}
	var periodOrder []int
	for rows.Next() {
		var periodID int
		var billID string
		if err := rows.Scan(&periodID, &billID); err != nil {
			_ = rows.Close()
			return err
		}
		if _, seen := byPeriod[periodID]; !seen {
			periodOrder = append(periodOrder, periodID)
		}
		byPeriod[periodID] = append(byPeriod[periodID], billID)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return err
	}
	_ = rows.Close()

	for _, periodID := range periodOrder {
		plan.PeriodOverrides = append(plan.PeriodOverrides, model.PeriodOverride{
			PeriodID:      periodID,
			DisabledBills: byPeriod[periodID],
		})
	}

	ruleRows, err := s.db.Query("SELECT period_id, rule_id, kind, amount FROM period_rule_overrides")
	if err != nil {
		return err
	}
	defer func() { _ = ruleRows.Close() }()

	for ruleRows.Next() {
		var ov model.PeriodRuleOverride
		var kindStr, amountStr string
		if err := ruleRows.Scan(&ov.PeriodID, &ov.RuleID, &kindStr, &amountStr); err != nil {
			return err
		}
		ov.Kind = model.TxType(kindStr)
		ov.Amount = parseAmount(amountStr)
		plan.PeriodRuleOverrides = append(plan.PeriodRuleOverrides, ov)
	}
	return ruleRows.Err()
}

func insertRules(tx *sql.Tx, rules []model.Rule, kind model.TxType) error {
	for _, r := range rules {
		_, err := tx.Exec(`INSERT INTO rules (id, kind, label, amount, cadence, category, enabled)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, string(kind), r.Label, r.Amount.String(), string(r.Cadence), r.Category, boolInt(r.Enabled))
		if err != nil {
			return err
		}
	}
	return nil
}

func insertTransaction(tx *sql.Tx, t model.Transaction) error {
	_, err := tx.Exec(`INSERT OR REPLACE INTO transactions
		(id, tx_date, label, amount, kind, category, notes, linked_rule_id, linked_bill_id, goal_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date.String(), t.Label, t.Amount.String(), string(t.Kind), t.Category,
		t.Notes, t.LinkedRuleID, t.LinkedBillID, t.GoalID)
	return err
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseAmount treats malformed stored amounts as zero: the dashboard
// must keep working on bad data rather than crash.
func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseDate(s string) model.Date {
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}
	}
	return d
}
