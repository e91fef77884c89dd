package journal

import (
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/jhizzard/Strata/market"
)

// ErrRunNotFound is returned by GetRun for an unknown run id.
var ErrRunNotFound = eris.New("run not found")

const runColumns = `run_id, started_at, finished_at, valuation_date, kind, portfolio, trades, status, error`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var rec RunRecord
	var valDate string
	if err := s.Scan(
		&rec.RunID,
		&rec.StartedAt,
		&rec.FinishedAt,
		&valDate,
		&rec.Kind,
		&rec.Portfolio,
		&rec.Trades,
		&rec.Status,
		&rec.Error,
	); err != nil {
		return RunRecord{}, err
	}
	if valDate != "" {
		d, err := market.ParseDate(valDate)
		if err != nil {
			return RunRecord{}, err
		}
		rec.ValuationDate = d
	}
	return rec, nil
}

// GetRun returns a single run record by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	row := j.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	rec, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, eris.Wrapf(ErrRunNotFound, "journal: run %q", runID)
		}
		return RunRecord{}, eris.Wrap(err, "journal: get run")
	}
	return rec, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (j *SQLite) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := j.db.Query(`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "journal: list runs")
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, eris.Wrap(err, "journal: scan run")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "journal: list runs")
	}
	return out, nil
}

// ListValuationsByRun returns the valuations of a run in the order they
// were recorded.
func (j *SQLite) ListValuationsByRun(runID string) ([]ValuationRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, trade_id, product, currency, amount
		FROM valuations
		WHERE run_id = ?
		ORDER BY rowid ASC`, runID)
	if err != nil {
		return nil, eris.Wrap(err, "journal: list valuations")
	}
	defer rows.Close()

	var out []ValuationRecord
	for rows.Next() {
		var rec ValuationRecord
		var ccy, amount string
		if err := rows.Scan(&rec.RunID, &rec.TradeID, &rec.Product, &ccy, &amount); err != nil {
			return nil, eris.Wrap(err, "journal: scan valuation")
		}
		rec.Currency = market.Currency(ccy)
		if rec.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, eris.Wrapf(err, "journal: amount of %s", rec.TradeID)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "journal: list valuations")
	}
	return out, nil
}
