package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS setup (
	id              INTEGER PRIMARY KEY CHECK (id = 1),
	starting_balance TEXT NOT NULL DEFAULT '0',
	selected_period INTEGER NOT NULL DEFAULT 0,
	min_balance     TEXT,
	spending_cap    TEXT NOT NULL DEFAULT '0',
	window_days     INTEGER NOT NULL DEFAULT 0,
	as_of           TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS periods (
	id         INTEGER PRIMARY KEY,
	label      TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS rules (
	id       TEXT PRIMARY KEY,
	kind     TEXT NOT NULL,
	label    TEXT NOT NULL,
	amount   TEXT NOT NULL,
	cadence  TEXT NOT NULL,
	category TEXT NOT NULL,
	enabled  INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS bills (
	id       TEXT PRIMARY KEY,
	label    TEXT NOT NULL,
	amount   TEXT NOT NULL,
	due_day  INTEGER NOT NULL,
	category TEXT NOT NULL,
	enabled  INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS period_overrides (
	period_id INTEGER NOT NULL,
	bill_id   TEXT NOT NULL,
	PRIMARY KEY (period_id, bill_id)
);

CREATE TABLE IF NOT EXISTS period_rule_overrides (
	period_id INTEGER NOT NULL,
	rule_id   TEXT NOT NULL,
	kind      TEXT NOT NULL,
	amount    TEXT NOT NULL,
	PRIMARY KEY (period_id, rule_id, kind)
);

CREATE TABLE IF NOT EXISTS transactions (
	id             TEXT PRIMARY KEY,
	tx_date        TEXT NOT NULL,
	label          TEXT NOT NULL,
	amount         TEXT NOT NULL,
	kind           TEXT NOT NULL,
	category       TEXT NOT NULL,
	notes          TEXT NOT NULL DEFAULT '',
	linked_rule_id TEXT NOT NULL DEFAULT '',
	linked_bill_id TEXT NOT NULL DEFAULT '',
	goal_id        TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(tx_date);
`
