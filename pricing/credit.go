package pricing

import (
	"github.com/jhizzard/Strata/credit"
)

// CreditCouponPeriodPricer values a CDS coupon as notional * rate *
// yearFraction weighted by the probability of surviving to the coupon's
// effective end date.
type CreditCouponPeriodPricer struct{}

func (CreditCouponPeriodPricer) FutureValue(env Environment, p credit.CreditCouponPaymentPeriod) (float64, error) {
	if paid(env, p.PaymentDate()) {
		return 0, nil
	}
	cenv, err := creditEnvironment(env, p.LegalEntityID())
	if err != nil {
		return 0, err
	}
	q, err := cenv.SurvivalProbability(p.LegalEntityID(), p.EffectiveEndDate())
	if err != nil {
		return 0, err
	}
	return p.Notional() * p.FixedRate() * p.YearFraction() * q, nil
}

func (pr CreditCouponPeriodPricer) PresentValue(env Environment, p credit.CreditCouponPaymentPeriod) (float64, error) {
	if paid(env, p.PaymentDate()) {
		return 0, nil
	}
	fv, err := pr.FutureValue(env, p)
	if err != nil {
		return 0, err
	}
	return discounted(env, p.Currency(), p.PaymentDate(), fv)
}

// RegisterCredit adds the credit coupon pricer to r.
func RegisterCredit(r *Registry) error {
	return RegisterPeriod[credit.CreditCouponPaymentPeriod](r, CreditCouponPeriodPricer{})
}

func creditEnvironment(env Environment, entity string) (CreditEnvironment, error) {
	cenv, ok := env.(CreditEnvironment)
	if !ok {
		return nil, &DataError{Kind: DataSurvivalCurve, Key: entity}
	}
	return cenv, nil
}
