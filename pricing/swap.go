package pricing

import (
	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/swap"
)

// SwapPricer values whole swaps leg by leg. Legs in different currencies are
// kept apart; converting them is the caller's business.
type SwapPricer struct {
	legs *LegPricer
}

func NewSwapPricer(legs *LegPricer) (*SwapPricer, error) {
	if legs == nil {
		return nil, market.Invalidf("swap pricer: leg pricer is required")
	}
	return &SwapPricer{legs: legs}, nil
}

func (sp *SwapPricer) Value(env Environment, s swap.ResolvedSwap, kind ValueKind) (market.MultiCurrencyAmount, error) {
	var total market.MultiCurrencyAmount
	for _, leg := range s.Legs() {
		ccy := leg.Currency()
		if ccy == "" {
			continue
		}
		v, err := sp.legs.Value(env, leg, kind)
		if err != nil {
			return market.MultiCurrencyAmount{}, err
		}
		total = total.Plus(market.AmountOf(ccy, v))
	}
	return total, nil
}

func (sp *SwapPricer) PresentValue(env Environment, s swap.ResolvedSwap) (market.MultiCurrencyAmount, error) {
	return sp.Value(env, s, PresentValue)
}

func (sp *SwapPricer) FutureValue(env Environment, s swap.ResolvedSwap) (market.MultiCurrencyAmount, error) {
	return sp.Value(env, s, FutureValue)
}

func (sp *SwapPricer) ValueTrade(env Environment, t swap.ResolvedSwapTrade, kind ValueKind) (market.MultiCurrencyAmount, error) {
	return sp.Value(env, t.Product(), kind)
}

// Convert expresses a multi-currency amount in one currency at the FX rates
// of the valuation date.
func Convert(env Environment, amount market.MultiCurrencyAmount, ccy market.Currency) (market.CurrencyAmount, error) {
	total := 0.0
	for _, a := range amount.Amounts() {
		fx, err := env.FxRate(a.Currency, ccy, env.ValuationDate())
		if err != nil {
			return market.CurrencyAmount{}, err
		}
		total += a.Amount * fx
	}
	return market.AmountOf(ccy, total), nil
}
