package pricing

import (
	"github.com/jhizzard/Strata/swap"
)

type NotionalExchangePricer struct {
	payments PaymentPricer
}

func (pr NotionalExchangePricer) FutureValue(env Environment, e swap.NotionalExchange) (float64, error) {
	v, err := pr.payments.FutureValue(env, e.Payment())
	return v.Amount, err
}

func (pr NotionalExchangePricer) PresentValue(env Environment, e swap.NotionalExchange) (float64, error) {
	v, err := pr.payments.PresentValue(env, e.Payment())
	return v.Amount, err
}

type TerminationPaymentPricer struct {
	payments PaymentPricer
}

func (pr TerminationPaymentPricer) FutureValue(env Environment, e swap.TerminationPayment) (float64, error) {
	v, err := pr.payments.FutureValue(env, e.Payment())
	return v.Amount, err
}

func (pr TerminationPaymentPricer) PresentValue(env Environment, e swap.TerminationPayment) (float64, error) {
	v, err := pr.payments.PresentValue(env, e.Payment())
	return v.Amount, err
}
