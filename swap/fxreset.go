package swap

import (
	"time"

	"github.com/jhizzard/Strata/market"
)

// FxResetPaymentPeriod is a fixed-rate period whose notional is agreed in a
// reference currency and converted into the payment currency at the FX rate
// observed on the fixing date (a mark-to-market cross-currency leg).
type FxResetPaymentPeriod struct {
	paymentDate       time.Time
	startDate         time.Time
	endDate           time.Time
	yearFraction      float64
	currency          market.Currency
	referenceNotional market.CurrencyAmount
	fxFixingDate      time.Time
	rate              float64
}

type FxResetPaymentPeriodBuilder struct {
	PaymentDate       time.Time
	StartDate         time.Time
	EndDate           time.Time
	YearFraction      float64
	Currency          market.Currency
	ReferenceNotional market.CurrencyAmount
	FxFixingDate      time.Time
	Rate              float64
}

func (b FxResetPaymentPeriodBuilder) Build() (FxResetPaymentPeriod, error) {
	const kind = "fx reset period"
	if err := CheckAccrual(kind, b.PaymentDate, b.StartDate, b.EndDate, b.YearFraction, b.Currency); err != nil {
		return FxResetPaymentPeriod{}, err
	}
	if b.ReferenceNotional.Currency == "" {
		return FxResetPaymentPeriod{}, market.Invalidf("%s: referenceNotional currency is required", kind)
	}
	if b.ReferenceNotional.Currency == b.Currency {
		return FxResetPaymentPeriod{}, market.Invalidf("%s: reference currency must differ from payment currency %s", kind, b.Currency)
	}
	if b.FxFixingDate.IsZero() {
		return FxResetPaymentPeriod{}, market.Invalidf("%s: fxFixingDate is required", kind)
	}
	return FxResetPaymentPeriod{
		paymentDate:       market.DateOnly(b.PaymentDate),
		startDate:         market.DateOnly(b.StartDate),
		endDate:           market.DateOnly(b.EndDate),
		yearFraction:      b.YearFraction,
		currency:          b.Currency,
		referenceNotional: b.ReferenceNotional,
		fxFixingDate:      market.DateOnly(b.FxFixingDate),
		rate:              b.Rate,
	}, nil
}

func (p FxResetPaymentPeriod) PaymentDate() time.Time    { return p.paymentDate }
func (p FxResetPaymentPeriod) StartDate() time.Time      { return p.startDate }
func (p FxResetPaymentPeriod) EndDate() time.Time        { return p.endDate }
func (p FxResetPaymentPeriod) YearFraction() float64     { return p.yearFraction }
func (p FxResetPaymentPeriod) Currency() market.Currency { return p.currency }
func (p FxResetPaymentPeriod) FxFixingDate() time.Time   { return p.fxFixingDate }
func (p FxResetPaymentPeriod) Rate() float64             { return p.rate }

func (p FxResetPaymentPeriod) ReferenceNotional() market.CurrencyAmount {
	return p.referenceNotional
}

func (p FxResetPaymentPeriod) ToBuilder() FxResetPaymentPeriodBuilder {
	return FxResetPaymentPeriodBuilder{
		PaymentDate:       p.paymentDate,
		StartDate:         p.startDate,
		EndDate:           p.endDate,
		YearFraction:      p.yearFraction,
		Currency:          p.currency,
		ReferenceNotional: p.referenceNotional,
		FxFixingDate:      p.fxFixingDate,
		Rate:              p.rate,
	}
}
