package pricing

import (
	"github.com/jhizzard/Strata/swap"
)

// FixedRatePeriodPricer values notional * rate * yearFraction.
type FixedRatePeriodPricer struct{}

func (FixedRatePeriodPricer) FutureValue(env Environment, p swap.FixedRatePaymentPeriod) (float64, error) {
	if paid(env, p.PaymentDate()) {
		return 0, nil
	}
	return p.Notional() * p.Rate() * p.YearFraction(), nil
}

func (pr FixedRatePeriodPricer) PresentValue(env Environment, p swap.FixedRatePaymentPeriod) (float64, error) {
	if paid(env, p.PaymentDate()) {
		return 0, nil
	}
	fv, err := pr.FutureValue(env, p)
	if err != nil {
		return 0, err
	}
	return discounted(env, p.Currency(), p.PaymentDate(), fv)
}

// FloatingRatePeriodPricer values notional * (gearing * rate + spread) *
// yearFraction, with rate averaged over the period's resets.
type FloatingRatePeriodPricer struct{}

// Rate returns the period's effective rate including gearing and spread.
func (FloatingRatePeriodPricer) Rate(env Environment, p swap.FloatingRatePaymentPeriod) (float64, error) {
	resets := p.Resets()
	rates := make([]float64, len(resets))
	for i, r := range resets {
		rate, err := env.IndexRate(RateObservation{
			Index:        p.Index(),
			FixingDate:   r.FixingDate,
			StartDate:    r.StartDate,
			EndDate:      r.EndDate,
			YearFraction: r.YearFraction,
		})
		if err != nil {
			return 0, err
		}
		rates[i] = rate
	}
	avg, err := p.AveragingMethod().Average(rates, p.Weights())
	if err != nil {
		return 0, err
	}
	return p.Gearing()*avg + p.Spread(), nil
}

func (pr FloatingRatePeriodPricer) FutureValue(env Environment, p swap.FloatingRatePaymentPeriod) (float64, error) {
	if paid(env, p.PaymentDate()) {
		return 0, nil
	}
	rate, err := pr.Rate(env, p)
	if err != nil {
		return 0, err
	}
	return p.Notional() * rate * p.YearFraction(), nil
}

func (pr FloatingRatePeriodPricer) PresentValue(env Environment, p swap.FloatingRatePaymentPeriod) (float64, error) {
	if paid(env, p.PaymentDate()) {
		return 0, nil
	}
	fv, err := pr.FutureValue(env, p)
	if err != nil {
		return 0, err
	}
	return discounted(env, p.Currency(), p.PaymentDate(), fv)
}

// FxResetPeriodPricer converts the reference notional at the FX fixing and
// accrues the fixed rate on the result.
type FxResetPeriodPricer struct{}

// Notional returns the notional in the payment currency.
func (FxResetPeriodPricer) Notional(env Environment, p swap.FxResetPaymentPeriod) (float64, error) {
	ref := p.ReferenceNotional()
	fx, err := env.FxRate(ref.Currency, p.Currency(), p.FxFixingDate())
	if err != nil {
		return 0, err
	}
	return ref.Amount * fx, nil
}

func (pr FxResetPeriodPricer) FutureValue(env Environment, p swap.FxResetPaymentPeriod) (float64, error) {
	if paid(env, p.PaymentDate()) {
		return 0, nil
	}
	notional, err := pr.Notional(env, p)
	if err != nil {
		return 0, err
	}
	return notional * p.Rate() * p.YearFraction(), nil
}

func (pr FxResetPeriodPricer) PresentValue(env Environment, p swap.FxResetPaymentPeriod) (float64, error) {
	if paid(env, p.PaymentDate()) {
		return 0, nil
	}
	fv, err := pr.FutureValue(env, p)
	if err != nil {
		return 0, err
	}
	return discounted(env, p.Currency(), p.PaymentDate(), fv)
}

// KnownAmountPeriodPricer values the agreed payment.
type KnownAmountPeriodPricer struct {
	payments PaymentPricer
}

func (pr KnownAmountPeriodPricer) FutureValue(env Environment, p swap.KnownAmountPaymentPeriod) (float64, error) {
	v, err := pr.payments.FutureValue(env, p.Payment())
	return v.Amount, err
}

func (pr KnownAmountPeriodPricer) PresentValue(env Environment, p swap.KnownAmountPaymentPeriod) (float64, error) {
	v, err := pr.payments.PresentValue(env, p.Payment())
	return v.Amount, err
}
