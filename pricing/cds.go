package pricing

import (
	"time"

	"github.com/jhizzard/Strata/credit"
	"github.com/jhizzard/Strata/market"
)

// CdsTradePricer values CDS trades from the protection buyer's side, flipped
// for sellers:
//
//	value = sign * (protection - premium - accrued on default) + upfront fee
//
// The premium leg goes through the leg aggregator, so coupons are valued by
// whatever pricer the registry holds for credit coupons. The protection leg
// is integrated coupon by coupon with defaults assumed at each interval's
// midpoint. Future values leave every term undiscounted.
type CdsTradePricer struct {
	legs     *LegPricer
	payments PaymentPricer
}

func NewCdsTradePricer(legs *LegPricer) (*CdsTradePricer, error) {
	if legs == nil {
		return nil, market.Invalidf("cds pricer: leg pricer is required")
	}
	return &CdsTradePricer{legs: legs}, nil
}

// CdsValue breaks a CDS valuation into its parts. Premium, Protection and
// AccruedOnDefault are unsigned; Total carries the trade direction.
type CdsValue struct {
	Premium          float64
	Protection       float64
	AccruedOnDefault float64
	UpfrontFee       float64
	Total            market.CurrencyAmount
}

func (p *CdsTradePricer) Value(env Environment, trade credit.ResolvedCdsTrade, kind ValueKind) (market.CurrencyAmount, error) {
	v, err := p.Explain(env, trade, kind)
	if err != nil {
		return market.CurrencyAmount{}, err
	}
	return v.Total, nil
}

func (p *CdsTradePricer) PresentValue(env Environment, trade credit.ResolvedCdsTrade) (market.CurrencyAmount, error) {
	return p.Value(env, trade, PresentValue)
}

func (p *CdsTradePricer) FutureValue(env Environment, trade credit.ResolvedCdsTrade) (market.CurrencyAmount, error) {
	return p.Value(env, trade, FutureValue)
}

func (p *CdsTradePricer) Explain(env Environment, trade credit.ResolvedCdsTrade, kind ValueKind) (CdsValue, error) {
	if err := kind.check(); err != nil {
		return CdsValue{}, err
	}
	product := trade.Product()
	cenv, err := creditEnvironment(env, product.LegalEntityID())
	if err != nil {
		return CdsValue{}, err
	}
	leg, err := product.PremiumLeg()
	if err != nil {
		return CdsValue{}, err
	}

	var out CdsValue
	if out.Premium, err = p.legs.Value(env, leg, kind); err != nil {
		return CdsValue{}, err
	}
	if out.Protection, out.AccruedOnDefault, err = p.protection(cenv, product, kind); err != nil {
		return CdsValue{}, err
	}
	if fee, ok := trade.UpfrontFee(); ok {
		v, err := p.payments.Value(env, fee, kind)
		if err != nil {
			return CdsValue{}, err
		}
		out.UpfrontFee = v.Amount
	}
	total := product.BuySell().Sign()*(out.Protection-out.Premium-out.AccruedOnDefault) + out.UpfrontFee
	out.Total = market.AmountOf(product.Currency(), total)
	return out, nil
}

// protection returns the expected default payout and, when the product pays
// accrued premium on default, the expected accrued premium.
func (p *CdsTradePricer) protection(env CreditEnvironment, cds credit.ResolvedCds, kind ValueKind) (float64, float64, error) {
	entity := cds.LegalEntityID()
	recovery, ok := cds.RecoveryRate()
	if !ok {
		var err error
		if recovery, err = env.RecoveryRate(entity); err != nil {
			return 0, 0, err
		}
	}
	lossGivenDefault := (1 - recovery) * cds.Notional()
	valuationDate := market.DateOnly(env.ValuationDate())

	var protection, accrued float64
	for _, period := range cds.PaymentPeriods() {
		start := latest(period.EffectiveStartDate(), cds.ProtectionStartDate(), valuationDate)
		end := earliest(period.EffectiveEndDate(), cds.ProtectionEndDate())
		if !start.Before(end) {
			continue
		}
		qStart, err := env.SurvivalProbability(entity, start)
		if err != nil {
			return 0, 0, err
		}
		qEnd, err := env.SurvivalProbability(entity, end)
		if err != nil {
			return 0, 0, err
		}
		mid := start.AddDate(0, 0, market.DaysBetween(start, end)/2)
		df := 1.0
		if kind == PresentValue {
			if df, err = env.DiscountFactor(cds.Currency(), mid); err != nil {
				return 0, 0, err
			}
		}
		defaultProb := qStart - qEnd
		protection += lossGivenDefault * df * defaultProb

		if cds.PaymentOnDefault() {
			periodDays := market.DaysBetween(period.StartDate(), period.EndDate())
			accruedDays := market.DaysBetween(period.StartDate(), mid)
			accruedFraction := period.YearFraction() * float64(accruedDays) / float64(periodDays)
			accrued += period.Notional() * period.FixedRate() * accruedFraction * df * defaultProb
		}
	}
	return protection, accrued, nil
}

func latest(first time.Time, rest ...time.Time) time.Time {
	out := first
	for _, t := range rest {
		if t.After(out) {
			out = t
		}
	}
	return out
}

func earliest(first time.Time, rest ...time.Time) time.Time {
	out := first
	for _, t := range rest {
		if t.Before(out) {
			out = t
		}
	}
	return out
}
