package swap

import (
	"time"

	"github.com/jhizzard/Strata/market"
)

// KnownAmountPaymentPeriod is an accrual period whose payment is already
// known, such as a stub agreed as a fixed amount.
type KnownAmountPaymentPeriod struct {
	payment   market.Payment
	startDate time.Time
	endDate   time.Time
}

func NewKnownAmountPaymentPeriod(payment market.Payment, start, end time.Time) (KnownAmountPaymentPeriod, error) {
	if payment.IsZero() {
		return KnownAmountPaymentPeriod{}, market.Invalidf("known amount period: payment is required")
	}
	if err := CheckAccrual("known amount period", payment.Date(), start, end, 0, payment.Currency()); err != nil {
		return KnownAmountPaymentPeriod{}, err
	}
	return KnownAmountPaymentPeriod{
		payment:   payment,
		startDate: market.DateOnly(start),
		endDate:   market.DateOnly(end),
	}, nil
}

func (p KnownAmountPaymentPeriod) Payment() market.Payment   { return p.payment }
func (p KnownAmountPaymentPeriod) PaymentDate() time.Time    { return p.payment.Date() }
func (p KnownAmountPaymentPeriod) StartDate() time.Time      { return p.startDate }
func (p KnownAmountPaymentPeriod) EndDate() time.Time        { return p.endDate }
func (p KnownAmountPaymentPeriod) Currency() market.Currency { return p.payment.Currency() }

// WithPayment returns a copy paying a different amount.
func (p KnownAmountPaymentPeriod) WithPayment(payment market.Payment) (KnownAmountPaymentPeriod, error) {
	return NewKnownAmountPaymentPeriod(payment, p.startDate, p.endDate)
}
