package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"

	"github.com/jhizzard/Strata/market"
)

var (
	runsHeader       = []string{"run_id", "started_at", "finished_at", "valuation_date", "kind", "portfolio", "trades", "status", "error"}
	valuationsHeader = []string{"run_id", "trade_id", "product", "currency", "amount"}
)

type CSVJournal struct {
	runs       *csv.Writer
	valuations *csv.Writer
	rf, vf     *os.File
}

// NewCSV appends to the two files, writing headers when a file is new.
func NewCSV(runsPath, valuationsPath string) (*CSVJournal, error) {
	rf, rw, err := openCSV(runsPath, runsHeader)
	if err != nil {
		return nil, err
	}
	vf, vw, err := openCSV(valuationsPath, valuationsHeader)
	if err != nil {
		_ = rf.Close()
		return nil, err
	}
	return &CSVJournal{runs: rw, valuations: vw, rf: rf, vf: vf}, nil
}

func openCSV(path string, header []string) (*os.File, *csv.Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, eris.Wrapf(err, "journal: open %s", path)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, eris.Wrapf(err, "journal: stat %s", path)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := write(w, header); err != nil {
			_ = f.Close()
			return nil, nil, err
		}
	}
	return f, w, nil
}

func write(w *csv.Writer, row []string) error {
	if err := w.Write(row); err != nil {
		return eris.Wrap(err, "journal: write csv")
	}
	w.Flush()
	return eris.Wrap(w.Error(), "journal: flush csv")
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	return write(j.runs, []string{
		r.RunID,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.FinishedAt.UTC().Format(time.RFC3339Nano),
		market.FormatDate(r.ValuationDate),
		r.Kind,
		r.Portfolio,
		strconv.Itoa(r.Trades),
		r.Status,
		r.Error,
	})
}

func (j *CSVJournal) RecordValuation(v ValuationRecord) error {
	return write(j.valuations, []string{
		v.RunID,
		v.TradeID,
		v.Product,
		string(v.Currency),
		v.amountString(),
	})
}

func (j *CSVJournal) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.valuations.Flush()
	if err := j.valuations.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	if err := j.vf.Close(); err != nil {
		return err
	}
	return nil
}
