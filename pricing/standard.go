package pricing

import (
	"github.com/jhizzard/Strata/swap"
)

// NewStandardRegistry returns a registry with pricers for every built-in
// period and event type, credit coupons included.
func NewStandardRegistry() *Registry {
	r := NewRegistry()
	must(RegisterPeriod[swap.FixedRatePaymentPeriod](r, FixedRatePeriodPricer{}))
	must(RegisterPeriod[swap.FloatingRatePaymentPeriod](r, FloatingRatePeriodPricer{}))
	must(RegisterPeriod[swap.FxResetPaymentPeriod](r, FxResetPeriodPricer{}))
	must(RegisterPeriod[swap.KnownAmountPaymentPeriod](r, KnownAmountPeriodPricer{}))
	must(RegisterEvent[swap.NotionalExchange](r, NotionalExchangePricer{}))
	must(RegisterEvent[swap.TerminationPayment](r, TerminationPaymentPricer{}))
	must(RegisterCredit(r))
	return r
}

// must panics on registration errors, which only occur for programming
// mistakes such as registering an interface type.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
