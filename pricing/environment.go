package pricing

import (
	"time"

	"github.com/jhizzard/Strata/market"
)

// Environment is the market data a valuation runs against. Lookups must be
// pure functions of the query and fail with an error matching
// ErrDataNotAvailable rather than returning a placeholder value.
type Environment interface {
	ValuationDate() time.Time
	// DiscountFactor is 1 for dates on or before the valuation date.
	DiscountFactor(ccy market.Currency, date time.Time) (float64, error)
	// IndexRate returns the fixing for an observation in the past and the
	// forward rate for one in the future.
	IndexRate(obs RateObservation) (float64, error)
	// FxRate is the number of counter units per base unit observed on
	// fixingDate, or the forward rate for a future fixing.
	FxRate(base, counter market.Currency, fixingDate time.Time) (float64, error)
}

// CreditEnvironment adds the credit data needed to value CDS products.
type CreditEnvironment interface {
	Environment
	// SurvivalProbability is the probability that entity survives to date,
	// given it has survived to the valuation date.
	SurvivalProbability(entity string, date time.Time) (float64, error)
	RecoveryRate(entity string) (float64, error)
}

// RateObservation is one fixing of a rate index over a reset period.
type RateObservation struct {
	Index        market.RateIndex
	FixingDate   time.Time
	StartDate    time.Time
	EndDate      time.Time
	YearFraction float64
}
