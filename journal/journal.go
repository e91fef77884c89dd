package journal

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhizzard/Strata/market"
)

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// RunRecord is the audit line of one portfolio valuation.
type RunRecord struct {
	RunID         string
	StartedAt     time.Time
	FinishedAt    time.Time
	ValuationDate time.Time
	Kind          string
	Portfolio     string
	Trades        int
	Status        string
	Error         string
}

// Duration is the wall time the run took.
func (r RunRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// ValuationRecord is one trade's value in one currency. A swap valued in
// two currencies produces two records.
type ValuationRecord struct {
	RunID    string
	TradeID  string
	Product  string
	Currency market.Currency
	Amount   decimal.Decimal
}

// NewValuationRecord rounds the amount to the currency's minor units.
func NewValuationRecord(runID, tradeID, product string, value market.CurrencyAmount) ValuationRecord {
	return ValuationRecord{
		RunID:    runID,
		TradeID:  tradeID,
		Product:  product,
		Currency: value.Currency,
		Amount:   value.Rounded(),
	}
}

func (v ValuationRecord) amountString() string {
	return v.Amount.StringFixed(v.Currency.MinorUnits())
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordValuation(ValuationRecord) error
	Close() error
}
