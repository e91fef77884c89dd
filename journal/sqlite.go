package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rotisserie/eris"

	"github.com/jhizzard/Strata/market"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, eris.Wrap(err, "journal: open sqlite")
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "journal: create schema")
	}

	return &SQLite{db: db}, nil
}

// RecordRun inserts the run, replacing an earlier record with the same id.
func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT OR REPLACE INTO runs
		(run_id, started_at, finished_at, valuation_date, kind, portfolio, trades, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.StartedAt.UTC(), r.FinishedAt.UTC(), market.FormatDate(r.ValuationDate),
		r.Kind, r.Portfolio, r.Trades, r.Status, r.Error,
	)
	return eris.Wrap(err, "journal: record run")
}

func (j *SQLite) RecordValuation(v ValuationRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO valuations
		(run_id, trade_id, product, currency, amount)
		VALUES (?, ?, ?, ?, ?)`,
		v.RunID, v.TradeID, v.Product, string(v.Currency), v.amountString(),
	)
	return eris.Wrap(err, "journal: record valuation")
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
