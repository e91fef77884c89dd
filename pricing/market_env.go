package pricing

import (
	"maps"
	"time"

	"github.com/jhizzard/Strata/curve"
	"github.com/jhizzard/Strata/market"
)

// MarketEnvironment is an immutable Environment backed by curves, fixing
// series and FX quotes. It also satisfies CreditEnvironment.
type MarketEnvironment struct {
	valuationDate  time.Time
	discountCurves map[market.Currency]*curve.Curve
	indexCurves    map[market.RateIndex]*curve.Curve
	fixings        map[market.RateIndex]map[time.Time]float64
	fxSpots        map[market.CurrencyPair]float64
	fxFixings      map[market.CurrencyPair]map[time.Time]float64
	survival       map[string]*curve.Curve
	recovery       map[string]float64
}

// MarketEnvironmentBuilder collects the data of a MarketEnvironment. The maps
// are copied on Build.
type MarketEnvironmentBuilder struct {
	ValuationDate  time.Time
	DiscountCurves map[market.Currency]*curve.Curve
	IndexCurves    map[market.RateIndex]*curve.Curve
	Fixings        map[market.RateIndex]map[time.Time]float64
	// FxSpots holds the rate for one unit of Base in Counter units.
	FxSpots   map[market.CurrencyPair]float64
	FxFixings map[market.CurrencyPair]map[time.Time]float64
	// SurvivalCurves and RecoveryRates are keyed by legal entity id.
	SurvivalCurves map[string]*curve.Curve
	RecoveryRates  map[string]float64
}

func (b MarketEnvironmentBuilder) Build() (*MarketEnvironment, error) {
	if b.ValuationDate.IsZero() {
		return nil, market.Invalidf("market environment: valuation date is required")
	}
	for ccy, c := range b.DiscountCurves {
		if c == nil {
			return nil, market.Invalidf("market environment: discount curve %s is nil", ccy)
		}
	}
	for idx, c := range b.IndexCurves {
		if c == nil {
			return nil, market.Invalidf("market environment: index curve %s is nil", idx)
		}
	}
	for entity, c := range b.SurvivalCurves {
		if c == nil {
			return nil, market.Invalidf("market environment: survival curve %s is nil", entity)
		}
	}
	for pair, rate := range b.FxSpots {
		if !(rate > 0) {
			return nil, market.Invalidf("market environment: fx rate %s must be positive", pair)
		}
	}
	for pair, series := range b.FxFixings {
		for d, rate := range series {
			if !(rate > 0) {
				return nil, market.Invalidf("market environment: fx fixing %s on %s must be positive", pair, market.FormatDate(d))
			}
		}
	}
	for entity, r := range b.RecoveryRates {
		if r < 0 || r >= 1 {
			return nil, market.Invalidf("market environment: recovery rate %v for %s must be in [0, 1)", r, entity)
		}
	}
	return &MarketEnvironment{
		valuationDate:  market.DateOnly(b.ValuationDate),
		discountCurves: maps.Clone(b.DiscountCurves),
		indexCurves:    maps.Clone(b.IndexCurves),
		fixings:        cloneSeries(b.Fixings),
		fxSpots:        maps.Clone(b.FxSpots),
		fxFixings:      cloneSeries(b.FxFixings),
		survival:       maps.Clone(b.SurvivalCurves),
		recovery:       maps.Clone(b.RecoveryRates),
	}, nil
}

func cloneSeries[K comparable](in map[K]map[time.Time]float64) map[K]map[time.Time]float64 {
	out := make(map[K]map[time.Time]float64, len(in))
	for k, series := range in {
		s := make(map[time.Time]float64, len(series))
		for d, v := range series {
			s[market.DateOnly(d)] = v
		}
		out[k] = s
	}
	return out
}

func (e *MarketEnvironment) ValuationDate() time.Time { return e.valuationDate }

// WithValuationDate returns a copy valued on another date. The underlying
// data is shared, which is safe because nothing mutates it.
func (e *MarketEnvironment) WithValuationDate(d time.Time) *MarketEnvironment {
	out := *e
	out.valuationDate = market.DateOnly(d)
	return &out
}

func (e *MarketEnvironment) DiscountFactor(ccy market.Currency, date time.Time) (float64, error) {
	date = market.DateOnly(date)
	if !date.After(e.valuationDate) {
		return 1, nil
	}
	c, ok := e.discountCurves[ccy]
	if !ok {
		return 0, &DataError{Kind: DataDiscountCurve, Key: string(ccy)}
	}
	return c.DF(date) / c.DF(e.valuationDate), nil
}

// IndexRate uses the published fixing for fixing dates before the valuation
// date. On the valuation date a published fixing wins over the forward.
func (e *MarketEnvironment) IndexRate(obs RateObservation) (float64, error) {
	fixingDate := market.DateOnly(obs.FixingDate)
	if !fixingDate.After(e.valuationDate) {
		if rate, ok := e.fixings[obs.Index][fixingDate]; ok {
			return rate, nil
		}
		if fixingDate.Before(e.valuationDate) {
			return 0, &DataError{Kind: DataFixing, Key: string(obs.Index), Date: fixingDate}
		}
	}
	c, ok := e.indexCurves[obs.Index]
	if !ok {
		return 0, &DataError{Kind: DataIndexCurve, Key: string(obs.Index)}
	}
	start, end := market.DateOnly(obs.StartDate), market.DateOnly(obs.EndDate)
	if !start.Before(end) {
		return 0, market.Invalidf("index rate: %s observation ends on %s before it starts",
			obs.Index, market.FormatDate(end))
	}
	return c.ForwardRate(start, end, obs.YearFraction)
}

// FxRate returns 1 for identical currencies, the recorded fixing for past
// dates, spot on the valuation date, and the covered-interest forward for
// later dates. Quotes are looked up in either direction.
func (e *MarketEnvironment) FxRate(base, counter market.Currency, fixingDate time.Time) (float64, error) {
	if base == counter {
		return 1, nil
	}
	pair := market.CurrencyPair{Base: base, Counter: counter}
	fixingDate = market.DateOnly(fixingDate)
	if fixingDate.Before(e.valuationDate) {
		if rate, ok := lookupFx(e.fxFixings, pair, fixingDate); ok {
			return rate, nil
		}
		return 0, &DataError{Kind: DataFxRate, Key: pair.String(), Date: fixingDate}
	}
	if fixingDate.Equal(e.valuationDate) {
		if rate, ok := lookupFx(e.fxFixings, pair, fixingDate); ok {
			return rate, nil
		}
	}
	spot, ok := e.fxSpots[pair]
	if !ok {
		inverse, found := e.fxSpots[pair.Inverse()]
		if !found {
			return 0, &DataError{Kind: DataFxRate, Key: pair.String()}
		}
		spot = 1 / inverse
	}
	if !fixingDate.After(e.valuationDate) {
		return spot, nil
	}
	dfBase, err := e.DiscountFactor(base, fixingDate)
	if err != nil {
		return 0, err
	}
	dfCounter, err := e.DiscountFactor(counter, fixingDate)
	if err != nil {
		return 0, err
	}
	return spot * dfBase / dfCounter, nil
}

func lookupFx(series map[market.CurrencyPair]map[time.Time]float64, pair market.CurrencyPair, d time.Time) (float64, bool) {
	if rate, ok := series[pair][d]; ok {
		return rate, true
	}
	if rate, ok := series[pair.Inverse()][d]; ok && rate != 0 {
		return 1 / rate, true
	}
	return 0, false
}

func (e *MarketEnvironment) SurvivalProbability(entity string, date time.Time) (float64, error) {
	date = market.DateOnly(date)
	if !date.After(e.valuationDate) {
		return 1, nil
	}
	c, ok := e.survival[entity]
	if !ok {
		return 0, &DataError{Kind: DataSurvivalCurve, Key: entity}
	}
	return c.DF(date) / c.DF(e.valuationDate), nil
}

func (e *MarketEnvironment) RecoveryRate(entity string) (float64, error) {
	r, ok := e.recovery[entity]
	if !ok {
		return 0, &DataError{Kind: DataRecoveryRate, Key: entity}
	}
	return r, nil
}
