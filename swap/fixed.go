package swap

import (
	"time"

	"github.com/jhizzard/Strata/market"
)

// FixedRatePaymentPeriod pays notional * rate * yearFraction on the payment
// date. A negative notional means the period is paid.
type FixedRatePaymentPeriod struct {
	paymentDate  time.Time
	startDate    time.Time
	endDate      time.Time
	yearFraction float64
	currency     market.Currency
	notional     float64
	rate         float64
}

type FixedRatePaymentPeriodBuilder struct {
	PaymentDate  time.Time
	StartDate    time.Time
	EndDate      time.Time
	YearFraction float64
	Currency     market.Currency
	Notional     float64
	Rate         float64
}

func (b FixedRatePaymentPeriodBuilder) Build() (FixedRatePaymentPeriod, error) {
	if err := CheckAccrual("fixed rate period", b.PaymentDate, b.StartDate, b.EndDate, b.YearFraction, b.Currency); err != nil {
		return FixedRatePaymentPeriod{}, err
	}
	return FixedRatePaymentPeriod{
		paymentDate:  market.DateOnly(b.PaymentDate),
		startDate:    market.DateOnly(b.StartDate),
		endDate:      market.DateOnly(b.EndDate),
		yearFraction: b.YearFraction,
		currency:     b.Currency,
		notional:     b.Notional,
		rate:         b.Rate,
	}, nil
}

func (p FixedRatePaymentPeriod) PaymentDate() time.Time    { return p.paymentDate }
func (p FixedRatePaymentPeriod) StartDate() time.Time      { return p.startDate }
func (p FixedRatePaymentPeriod) EndDate() time.Time        { return p.endDate }
func (p FixedRatePaymentPeriod) YearFraction() float64     { return p.yearFraction }
func (p FixedRatePaymentPeriod) Currency() market.Currency { return p.currency }
func (p FixedRatePaymentPeriod) Notional() float64         { return p.notional }
func (p FixedRatePaymentPeriod) Rate() float64             { return p.rate }

func (p FixedRatePaymentPeriod) ToBuilder() FixedRatePaymentPeriodBuilder {
	return FixedRatePaymentPeriodBuilder{
		PaymentDate:  p.paymentDate,
		StartDate:    p.startDate,
		EndDate:      p.endDate,
		YearFraction: p.yearFraction,
		Currency:     p.currency,
		Notional:     p.notional,
		Rate:         p.rate,
	}
}
