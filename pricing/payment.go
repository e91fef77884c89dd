package pricing

import (
	"time"

	"github.com/jhizzard/Strata/market"
)

// PaymentPricer values single known payments.
type PaymentPricer struct{}

// PresentValue discounts the payment to the valuation date. Payments made
// before the valuation date are worth zero.
func (PaymentPricer) PresentValue(env Environment, p market.Payment) (market.CurrencyAmount, error) {
	if paid(env, p.Date()) {
		return market.AmountOf(p.Currency(), 0), nil
	}
	v, err := discounted(env, p.Currency(), p.Date(), p.Amount())
	if err != nil {
		return market.CurrencyAmount{}, err
	}
	return market.AmountOf(p.Currency(), v), nil
}

func (PaymentPricer) FutureValue(env Environment, p market.Payment) (market.CurrencyAmount, error) {
	if paid(env, p.Date()) {
		return market.AmountOf(p.Currency(), 0), nil
	}
	return p.Value(), nil
}

func (pp PaymentPricer) Value(env Environment, p market.Payment, kind ValueKind) (market.CurrencyAmount, error) {
	if err := kind.check(); err != nil {
		return market.CurrencyAmount{}, err
	}
	if kind == FutureValue {
		return pp.FutureValue(env, p)
	}
	return pp.PresentValue(env, p)
}

// paid reports whether a flow on date settled before the valuation date.
func paid(env Environment, date time.Time) bool {
	return date.Before(market.DateOnly(env.ValuationDate()))
}

func discounted(env Environment, ccy market.Currency, date time.Time, amount float64) (float64, error) {
	df, err := env.DiscountFactor(ccy, date)
	if err != nil {
		return 0, err
	}
	return amount * df, nil
}
