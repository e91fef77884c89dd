package credit

import (
	"time"

	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/swap"
)

// CreditCouponPaymentPeriod is one premium coupon of a CDS. The coupon is
// paid only if the reference entity survives to the effective end date, so
// the period carries the effective dates used for survival weighting as well
// as the accrual dates. Notional is always positive; the direction lives on
// the product.
type CreditCouponPaymentPeriod struct {
	paymentDate        time.Time
	startDate          time.Time
	endDate            time.Time
	effectiveStartDate time.Time
	effectiveEndDate   time.Time
	yearFraction       float64
	currency           market.Currency
	notional           float64
	fixedRate          float64
	legalEntityID      string
}

// CreditCouponPaymentPeriodBuilder collects the fields of a coupon. Empty
// effective dates default to the accrual dates.
type CreditCouponPaymentPeriodBuilder struct {
	PaymentDate        time.Time
	StartDate          time.Time
	EndDate            time.Time
	EffectiveStartDate time.Time
	EffectiveEndDate   time.Time
	YearFraction       float64
	Currency           market.Currency
	Notional           float64
	FixedRate          float64
	LegalEntityID      string
}

func (b CreditCouponPaymentPeriodBuilder) Build() (CreditCouponPaymentPeriod, error) {
	const kind = "credit coupon"
	if err := swap.CheckAccrual(kind, b.PaymentDate, b.StartDate, b.EndDate, b.YearFraction, b.Currency); err != nil {
		return CreditCouponPaymentPeriod{}, err
	}
	if b.LegalEntityID == "" {
		return CreditCouponPaymentPeriod{}, market.Invalidf("%s: legalEntityId is required", kind)
	}
	if b.Notional < 0 {
		return CreditCouponPaymentPeriod{}, market.Invalidf("%s: notional must not be negative", kind)
	}
	effStart, effEnd := b.EffectiveStartDate, b.EffectiveEndDate
	if effStart.IsZero() {
		effStart = b.StartDate
	}
	if effEnd.IsZero() {
		effEnd = b.EndDate
	}
	if !effStart.Before(effEnd) {
		return CreditCouponPaymentPeriod{}, market.Invalidf("%s: effectiveStartDate %s must be before effectiveEndDate %s",
			kind, market.FormatDate(effStart), market.FormatDate(effEnd))
	}
	return CreditCouponPaymentPeriod{
		paymentDate:        market.DateOnly(b.PaymentDate),
		startDate:          market.DateOnly(b.StartDate),
		endDate:            market.DateOnly(b.EndDate),
		effectiveStartDate: market.DateOnly(effStart),
		effectiveEndDate:   market.DateOnly(effEnd),
		yearFraction:       b.YearFraction,
		currency:           b.Currency,
		notional:           b.Notional,
		fixedRate:          b.FixedRate,
		legalEntityID:      b.LegalEntityID,
	}, nil
}

func (p CreditCouponPaymentPeriod) PaymentDate() time.Time        { return p.paymentDate }
func (p CreditCouponPaymentPeriod) StartDate() time.Time          { return p.startDate }
func (p CreditCouponPaymentPeriod) EndDate() time.Time            { return p.endDate }
func (p CreditCouponPaymentPeriod) EffectiveStartDate() time.Time { return p.effectiveStartDate }
func (p CreditCouponPaymentPeriod) EffectiveEndDate() time.Time   { return p.effectiveEndDate }
func (p CreditCouponPaymentPeriod) YearFraction() float64         { return p.yearFraction }
func (p CreditCouponPaymentPeriod) Currency() market.Currency     { return p.currency }
func (p CreditCouponPaymentPeriod) Notional() float64             { return p.notional }
func (p CreditCouponPaymentPeriod) FixedRate() float64            { return p.fixedRate }
func (p CreditCouponPaymentPeriod) LegalEntityID() string         { return p.legalEntityID }

// Contains reports whether d falls in [startDate, endDate).
func (p CreditCouponPaymentPeriod) Contains(d time.Time) bool {
	d = market.DateOnly(d)
	return !d.Before(p.startDate) && d.Before(p.endDate)
}

func (p CreditCouponPaymentPeriod) ToBuilder() CreditCouponPaymentPeriodBuilder {
	return CreditCouponPaymentPeriodBuilder{
		PaymentDate:        p.paymentDate,
		StartDate:          p.startDate,
		EndDate:            p.endDate,
		EffectiveStartDate: p.effectiveStartDate,
		EffectiveEndDate:   p.effectiveEndDate,
		YearFraction:       p.yearFraction,
		Currency:           p.currency,
		Notional:           p.notional,
		FixedRate:          p.fixedRate,
		LegalEntityID:      p.legalEntityID,
	}
}
