package swap

import (
	"time"

	"github.com/jhizzard/Strata/market"
)

// PaymentPeriod is one accrual period of a leg that results in a single
// payment. Concrete variants are plain values; pricers are registered per
// concrete type, so new variants can live in other packages.
type PaymentPeriod interface {
	PaymentDate() time.Time
	StartDate() time.Time
	EndDate() time.Time
	Currency() market.Currency
}

// PaymentEvent is a single payment on a leg that is not tied to an accrual
// period, such as a notional exchange.
type PaymentEvent interface {
	PaymentDate() time.Time
	Currency() market.Currency
}

// CheckAccrual validates the fields shared by accrual-based periods.
func CheckAccrual(kind string, payment, start, end time.Time, yearFraction float64, ccy market.Currency) error {
	switch {
	case payment.IsZero():
		return market.Invalidf("%s: paymentDate is required", kind)
	case start.IsZero():
		return market.Invalidf("%s: startDate is required", kind)
	case end.IsZero():
		return market.Invalidf("%s: endDate is required", kind)
	case !start.Before(end):
		return market.Invalidf("%s: startDate %s must be before endDate %s",
			kind, market.FormatDate(start), market.FormatDate(end))
	case yearFraction < 0:
		return market.Invalidf("%s: yearFraction must not be negative", kind)
	case ccy == "":
		return market.Invalidf("%s: currency is required", kind)
	}
	return nil
}
