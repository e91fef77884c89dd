package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	started_at DATETIME NOT NULL,
	finished_at DATETIME NOT NULL,
	valuation_date TEXT NOT NULL,
	kind TEXT NOT NULL,
	portfolio TEXT NOT NULL,
	trades INTEGER NOT NULL,
	status TEXT NOT NULL,
	error TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS valuations (
	run_id TEXT NOT NULL,
	trade_id TEXT NOT NULL,
	product TEXT NOT NULL,
	currency TEXT NOT NULL,
	amount TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_valuations_run ON valuations(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`
