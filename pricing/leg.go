package pricing

import (
	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/swap"
)

// LegPricer values a leg as the sum of its period values plus the sum of its
// event values. It knows nothing about concrete component types; those are
// resolved by the period and event pricers it is given.
type LegPricer struct {
	periods PeriodPricer[swap.PaymentPeriod]
	events  EventPricer[swap.PaymentEvent]
}

func NewLegPricer(periods PeriodPricer[swap.PaymentPeriod], events EventPricer[swap.PaymentEvent]) (*LegPricer, error) {
	if periods == nil {
		return nil, market.Invalidf("leg pricer: period pricer is required")
	}
	if events == nil {
		return nil, market.Invalidf("leg pricer: event pricer is required")
	}
	return &LegPricer{periods: periods, events: events}, nil
}

// LegPricer returns a leg pricer dispatching through r.
func (r *Registry) LegPricer() *LegPricer {
	return &LegPricer{periods: r.Periods(), events: r.Events()}
}

func (lp *LegPricer) PresentValue(env Environment, leg swap.ResolvedSwapLeg) (float64, error) {
	return lp.Value(env, leg, PresentValue)
}

func (lp *LegPricer) FutureValue(env Environment, leg swap.ResolvedSwapLeg) (float64, error) {
	return lp.Value(env, leg, FutureValue)
}

// Value returns the leg value in the leg currency. A leg without periods or
// events is worth exactly zero. The first component error aborts the
// valuation and is returned as is.
func (lp *LegPricer) Value(env Environment, leg swap.ResolvedSwapLeg, kind ValueKind) (float64, error) {
	if err := kind.check(); err != nil {
		return 0, err
	}
	periodTotal := 0.0
	for _, p := range leg.PaymentPeriods() {
		var v float64
		var err error
		if kind == FutureValue {
			v, err = lp.periods.FutureValue(env, p)
		} else {
			v, err = lp.periods.PresentValue(env, p)
		}
		if err != nil {
			return 0, err
		}
		periodTotal += v
	}
	eventTotal := 0.0
	for _, e := range leg.PaymentEvents() {
		var v float64
		var err error
		if kind == FutureValue {
			v, err = lp.events.FutureValue(env, e)
		} else {
			v, err = lp.events.PresentValue(env, e)
		}
		if err != nil {
			return 0, err
		}
		eventTotal += v
	}
	return periodTotal + eventTotal, nil
}
