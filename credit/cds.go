package credit

import (
	"slices"
	"time"

	"github.com/jhizzard/Strata/market"
	"github.com/jhizzard/Strata/swap"
)

// ResolvedCds is a single-name credit default swap with its premium
// schedule expanded into coupons.
//
// The buyer pays the fixed coupons and receives (1 - recovery) * notional if
// the legal entity defaults between the protection start and end dates.
type ResolvedCds struct {
	buySell             market.BuySell
	legalEntityID       string
	currency            market.Currency
	notional            float64
	fixedRate           float64
	recoveryRate        float64
	hasRecoveryRate     bool
	periods             []CreditCouponPaymentPeriod
	protectionStartDate time.Time
	protectionEndDate   time.Time
	paymentOnDefault    bool
}

// ResolvedCdsBuilder collects the fields of a ResolvedCds. Protection dates
// default to the start of the first coupon and the end of the last. A nil
// RecoveryRate defers to the pricing environment.
type ResolvedCdsBuilder struct {
	BuySell             market.BuySell
	LegalEntityID       string
	Currency            market.Currency
	Notional            float64
	FixedRate           float64
	RecoveryRate        *float64
	PaymentPeriods      []CreditCouponPaymentPeriod
	ProtectionStartDate time.Time
	ProtectionEndDate   time.Time
	PaymentOnDefault    bool
}

func (b ResolvedCdsBuilder) Build() (ResolvedCds, error) {
	const kind = "cds"
	switch {
	case !b.BuySell.Valid():
		return ResolvedCds{}, market.Invalidf("%s: buySell is required", kind)
	case b.LegalEntityID == "":
		return ResolvedCds{}, market.Invalidf("%s: legalEntityId is required", kind)
	case b.Currency == "":
		return ResolvedCds{}, market.Invalidf("%s: currency is required", kind)
	case b.Notional <= 0:
		return ResolvedCds{}, market.Invalidf("%s: notional must be positive", kind)
	case len(b.PaymentPeriods) == 0:
		return ResolvedCds{}, market.Invalidf("%s: at least one payment period is required", kind)
	}
	for i, p := range b.PaymentPeriods {
		if p.currency != b.Currency {
			return ResolvedCds{}, market.Invalidf("%s: period %d currency %s differs from %s", kind, i, p.currency, b.Currency)
		}
		if p.legalEntityID != b.LegalEntityID {
			return ResolvedCds{}, market.Invalidf("%s: period %d references %s, not %s", kind, i, p.legalEntityID, b.LegalEntityID)
		}
		if i > 0 && p.startDate.Before(b.PaymentPeriods[i-1].startDate) {
			return ResolvedCds{}, market.Invalidf("%s: period %d is out of order", kind, i)
		}
	}
	start, end := b.ProtectionStartDate, b.ProtectionEndDate
	if start.IsZero() {
		start = b.PaymentPeriods[0].startDate
	}
	if end.IsZero() {
		end = b.PaymentPeriods[len(b.PaymentPeriods)-1].endDate
	}
	if !start.Before(end) {
		return ResolvedCds{}, market.Invalidf("%s: protectionStartDate %s must be before protectionEndDate %s",
			kind, market.FormatDate(start), market.FormatDate(end))
	}
	cds := ResolvedCds{
		buySell:             b.BuySell,
		legalEntityID:       b.LegalEntityID,
		currency:            b.Currency,
		notional:            b.Notional,
		fixedRate:           b.FixedRate,
		periods:             slices.Clone(b.PaymentPeriods),
		protectionStartDate: market.DateOnly(start),
		protectionEndDate:   market.DateOnly(end),
		paymentOnDefault:    b.PaymentOnDefault,
	}
	if b.RecoveryRate != nil {
		if r := *b.RecoveryRate; r < 0 || r >= 1 {
			return ResolvedCds{}, market.Invalidf("%s: recoveryRate %v must be in [0, 1)", kind, r)
		}
		cds.recoveryRate, cds.hasRecoveryRate = *b.RecoveryRate, true
	}
	return cds, nil
}

func (c ResolvedCds) BuySell() market.BuySell        { return c.buySell }
func (c ResolvedCds) LegalEntityID() string          { return c.legalEntityID }
func (c ResolvedCds) Currency() market.Currency      { return c.currency }
func (c ResolvedCds) Notional() float64              { return c.notional }
func (c ResolvedCds) FixedRate() float64             { return c.fixedRate }
func (c ResolvedCds) ProtectionStartDate() time.Time { return c.protectionStartDate }
func (c ResolvedCds) ProtectionEndDate() time.Time   { return c.protectionEndDate }
func (c ResolvedCds) PaymentOnDefault() bool         { return c.paymentOnDefault }

// RecoveryRate returns the contractual recovery rate, if the product fixes one.
func (c ResolvedCds) RecoveryRate() (float64, bool) {
	return c.recoveryRate, c.hasRecoveryRate
}

func (c ResolvedCds) PaymentPeriods() []CreditCouponPaymentPeriod {
	return slices.Clone(c.periods)
}

// PremiumLeg exposes the coupons as a swap leg so they can be valued by the
// generic leg aggregator. The leg is paid by the protection buyer.
func (c ResolvedCds) PremiumLeg() (swap.ResolvedSwapLeg, error) {
	pr := market.Pay
	if c.buySell == market.Sell {
		pr = market.Receive
	}
	periods := make([]swap.PaymentPeriod, len(c.periods))
	for i, p := range c.periods {
		periods[i] = p
	}
	return swap.ResolvedSwapLegBuilder{
		Type:           swap.LegFixed,
		PayReceive:     pr,
		PaymentPeriods: periods,
	}.Build()
}

func (c ResolvedCds) Equal(other ResolvedCds) bool {
	return c.buySell == other.buySell &&
		c.legalEntityID == other.legalEntityID &&
		c.currency == other.currency &&
		c.notional == other.notional &&
		c.fixedRate == other.fixedRate &&
		c.recoveryRate == other.recoveryRate &&
		c.hasRecoveryRate == other.hasRecoveryRate &&
		c.protectionStartDate.Equal(other.protectionStartDate) &&
		c.protectionEndDate.Equal(other.protectionEndDate) &&
		c.paymentOnDefault == other.paymentOnDefault &&
		slices.Equal(c.periods, other.periods)
}

func (c ResolvedCds) ToBuilder() ResolvedCdsBuilder {
	b := ResolvedCdsBuilder{
		BuySell:             c.buySell,
		LegalEntityID:       c.legalEntityID,
		Currency:            c.currency,
		Notional:            c.notional,
		FixedRate:           c.fixedRate,
		PaymentPeriods:      slices.Clone(c.periods),
		ProtectionStartDate: c.protectionStartDate,
		ProtectionEndDate:   c.protectionEndDate,
		PaymentOnDefault:    c.paymentOnDefault,
	}
	if c.hasRecoveryRate {
		r := c.recoveryRate
		b.RecoveryRate = &r
	}
	return b
}
