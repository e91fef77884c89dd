package swap

import (
	"slices"
	"time"

	"github.com/jhizzard/Strata/market"
)

// RateReset is one fixing inside an accrual period: the rate fixed on
// FixingDate for the reset period [StartDate, EndDate).
type RateReset struct {
	FixingDate   time.Time
	StartDate    time.Time
	EndDate      time.Time
	YearFraction float64
}

// Days is the number of calendar days the reset period covers.
func (r RateReset) Days() int {
	return market.DaysBetween(r.StartDate, r.EndDate)
}

func (r RateReset) normalized() RateReset {
	return RateReset{
		FixingDate:   market.DateOnly(r.FixingDate),
		StartDate:    market.DateOnly(r.StartDate),
		EndDate:      market.DateOnly(r.EndDate),
		YearFraction: r.YearFraction,
	}
}

// FloatingRatePaymentPeriod pays notional * (gearing * rate + spread) *
// yearFraction, where rate combines one or more index fixings according to
// the averaging method.
type FloatingRatePaymentPeriod struct {
	paymentDate  time.Time
	startDate    time.Time
	endDate      time.Time
	yearFraction float64
	currency     market.Currency
	notional     float64
	index        market.RateIndex
	spread       float64
	gearing      float64
	resets       []RateReset
	averaging    RateAveragingMethod
}

// FloatingRatePaymentPeriodBuilder collects the fields of a floating period.
// A nil Gearing means 1 and an empty AveragingMethod means Unweighted.
type FloatingRatePaymentPeriodBuilder struct {
	PaymentDate     time.Time
	StartDate       time.Time
	EndDate         time.Time
	YearFraction    float64
	Currency        market.Currency
	Notional        float64
	Index           market.RateIndex
	Spread          float64
	Gearing         *float64
	Resets          []RateReset
	AveragingMethod RateAveragingMethod
}

func (b FloatingRatePaymentPeriodBuilder) Build() (FloatingRatePaymentPeriod, error) {
	const kind = "floating rate period"
	if err := CheckAccrual(kind, b.PaymentDate, b.StartDate, b.EndDate, b.YearFraction, b.Currency); err != nil {
		return FloatingRatePaymentPeriod{}, err
	}
	if b.Index == "" {
		return FloatingRatePaymentPeriod{}, market.Invalidf("%s: index is required", kind)
	}
	if len(b.Resets) == 0 {
		return FloatingRatePaymentPeriod{}, market.Invalidf("%s: at least one reset is required", kind)
	}
	method, err := ParseRateAveragingMethod(string(b.AveragingMethod))
	if err != nil {
		return FloatingRatePaymentPeriod{}, err
	}
	resets := make([]RateReset, len(b.Resets))
	for i, r := range b.Resets {
		if r.FixingDate.IsZero() {
			return FloatingRatePaymentPeriod{}, market.Invalidf("%s: reset %d fixingDate is required", kind, i)
		}
		if r.StartDate.IsZero() || r.EndDate.IsZero() || !r.StartDate.Before(r.EndDate) {
			return FloatingRatePaymentPeriod{}, market.Invalidf("%s: reset %d needs startDate before endDate", kind, i)
		}
		resets[i] = r.normalized()
	}
	gearing := 1.0
	if b.Gearing != nil {
		gearing = *b.Gearing
	}
	return FloatingRatePaymentPeriod{
		paymentDate:  market.DateOnly(b.PaymentDate),
		startDate:    market.DateOnly(b.StartDate),
		endDate:      market.DateOnly(b.EndDate),
		yearFraction: b.YearFraction,
		currency:     b.Currency,
		notional:     b.Notional,
		index:        b.Index,
		spread:       b.Spread,
		gearing:      gearing,
		resets:       resets,
		averaging:    method.OrDefault(),
	}, nil
}

func (p FloatingRatePaymentPeriod) PaymentDate() time.Time    { return p.paymentDate }
func (p FloatingRatePaymentPeriod) StartDate() time.Time      { return p.startDate }
func (p FloatingRatePaymentPeriod) EndDate() time.Time        { return p.endDate }
func (p FloatingRatePaymentPeriod) YearFraction() float64     { return p.yearFraction }
func (p FloatingRatePaymentPeriod) Currency() market.Currency { return p.currency }
func (p FloatingRatePaymentPeriod) Notional() float64         { return p.notional }
func (p FloatingRatePaymentPeriod) Index() market.RateIndex   { return p.index }
func (p FloatingRatePaymentPeriod) Spread() float64           { return p.spread }
func (p FloatingRatePaymentPeriod) Gearing() float64          { return p.gearing }

func (p FloatingRatePaymentPeriod) AveragingMethod() RateAveragingMethod { return p.averaging }

// Resets returns a copy of the fixings in chronological order.
func (p FloatingRatePaymentPeriod) Resets() []RateReset {
	return slices.Clone(p.resets)
}

// Weights returns the averaging weight of each reset: the days covered for
// Weighted and 1 for Unweighted.
func (p FloatingRatePaymentPeriod) Weights() []float64 {
	out := make([]float64, len(p.resets))
	for i, r := range p.resets {
		if p.averaging == Weighted {
			out[i] = float64(r.Days())
		} else {
			out[i] = 1
		}
	}
	return out
}

func (p FloatingRatePaymentPeriod) Equal(other FloatingRatePaymentPeriod) bool {
	return p.paymentDate.Equal(other.paymentDate) &&
		p.startDate.Equal(other.startDate) &&
		p.endDate.Equal(other.endDate) &&
		p.yearFraction == other.yearFraction &&
		p.currency == other.currency &&
		p.notional == other.notional &&
		p.index == other.index &&
		p.spread == other.spread &&
		p.gearing == other.gearing &&
		p.averaging == other.averaging &&
		slices.Equal(p.resets, other.resets)
}

func (p FloatingRatePaymentPeriod) ToBuilder() FloatingRatePaymentPeriodBuilder {
	gearing := p.gearing
	return FloatingRatePaymentPeriodBuilder{
		PaymentDate:     p.paymentDate,
		StartDate:       p.startDate,
		EndDate:         p.endDate,
		YearFraction:    p.yearFraction,
		Currency:        p.currency,
		Notional:        p.notional,
		Index:           p.index,
		Spread:          p.spread,
		Gearing:         &gearing,
		Resets:          slices.Clone(p.resets),
		AveragingMethod: p.averaging,
	}
}
