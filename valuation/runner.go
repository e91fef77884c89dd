package valuation

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/jhizzard/Strata/journal"
	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/pkg/id"
	"github.com/jhizzard/Strata/portfolio"
	"github.com/jhizzard/Strata/pricing"
)

// Run is the outcome of one journaled portfolio valuation.
type Run struct {
	ID            string
	ValuationDate time.Time
	Kind          pricing.ValueKind
	Results       []Result
	// Totals sums the results per currency.
	Totals market.MultiCurrencyAmount
	// Reporting sums the converted results; zero without a reporting currency.
	Reporting market.CurrencyAmount
}

// Runner values portfolios and records every attempt in a journal.
type Runner struct {
	service *Service
	journal journal.Journal
	ids     *id.Generator
	now     func() time.Time
	log     *zap.Logger
}

// NewRunner returns a runner. A nil journal records nothing.
func NewRunner(svc *Service, j journal.Journal, log *zap.Logger) *Runner {
	if j == nil {
		j = journal.Noop{}
	}
	if log == nil {
		log = zap.L()
	}
	return &Runner{
		service: svc,
		journal: j,
		ids:     id.NewGenerator(nil),
		now:     time.Now,
		log:     log.Named("runner"),
	}
}

// Run values p and journals the run. A failed valuation is journaled with
// status failed before its error is returned.
func (r *Runner) Run(ctx context.Context, env pricing.Environment, p *portfolio.Portfolio, kind pricing.ValueKind) (*Run, error) {
	run := &Run{
		ID:            r.ids.Prefixed("run"),
		ValuationDate: env.ValuationDate(),
		Kind:          kind,
	}
	rec := journal.RunRecord{
		RunID:         run.ID,
		StartedAt:     r.now(),
		ValuationDate: run.ValuationDate,
		Kind:          kind.String(),
		Portfolio:     p.Name,
		Trades:        len(p.Trades),
	}
	log := r.log.With(zap.String("run", run.ID), zap.String("portfolio", p.Name))
	log.Info("valuation started",
		zap.Int("trades", len(p.Trades)),
		zap.String("date", market.FormatDate(run.ValuationDate)),
		zap.Stringer("kind", kind))

	results, err := r.service.ValuePortfolio(ctx, env, p.Trades, kind)
	rec.FinishedAt = r.now()
	if err != nil {
		return nil, r.fail(log, rec, err)
	}

	run.Results = results
	if ccy := r.service.ReportingCurrency(); ccy != "" {
		run.Reporting = market.AmountOf(ccy, 0)
	}
	for _, res := range results {
		for _, amt := range res.Value.Amounts() {
			run.Totals = run.Totals.Plus(amt)
			if err := r.journal.RecordValuation(journal.NewValuationRecord(run.ID, res.TradeID, res.Product, amt)); err != nil {
				return nil, r.fail(log, rec, eris.Wrapf(err, "valuation: journal trade %s", res.TradeID))
			}
		}
		if run.Reporting.Currency != "" {
			run.Reporting.Amount += res.Reporting.Amount
		}
	}

	rec.Status = journal.StatusOK
	if err := r.journal.RecordRun(rec); err != nil {
		return nil, eris.Wrap(err, "valuation: journal run")
	}
	log.Info("valuation finished", zap.Duration("elapsed", rec.Duration()), zap.Int("currencies", run.Totals.Size()))
	return run, nil
}

// fail journals rec as a failed run and returns err. A journal error here is
// only logged so the caller sees the original failure.
func (r *Runner) fail(log *zap.Logger, rec journal.RunRecord, err error) error {
	rec.Status, rec.Error = journal.StatusFailed, err.Error()
	if jerr := r.journal.RecordRun(rec); jerr != nil {
		log.Error("journal run", zap.Error(jerr))
	}
	log.Error("valuation failed", zap.Error(err), zap.Duration("elapsed", rec.Duration()))
	return err
}
